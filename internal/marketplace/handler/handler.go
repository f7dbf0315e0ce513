package handler

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"bkap/internal/marketplace/dashboard"
	"bkap/internal/marketplace/models"
	"bkap/internal/platform/i18n"
	dErrors "bkap/pkg/domain-errors"
	"bkap/pkg/platform/httputil"
	"bkap/pkg/requestcontext"
)

// EndpointSource supplies the ordered vendor endpoints.
type EndpointSource interface {
	Endpoints() []models.Endpoint
	Lookup(slug string) (models.Endpoint, bool)
}

// Renderer turns a composed view into markup.
type Renderer interface {
	Render(w io.Writer, view models.View) error
}

// Handler serves the vendor booking dashboard.
type Handler struct {
	endpoints  EndpointSource
	renderer   Renderer
	translator i18n.Translator
	logger     *slog.Logger
}

// New creates a dashboard Handler.
func New(endpoints EndpointSource, renderer Renderer, translator i18n.Translator, logger *slog.Logger) *Handler {
	return &Handler{
		endpoints:  endpoints,
		renderer:   renderer,
		translator: translator,
		logger:     logger,
	}
}

// Register registers the dashboard routes. Callers mount it behind the vendor
// session middleware.
func (h *Handler) Register(r chi.Router) {
	r.Get("/vendor/dashboard", h.handleDashboard)
	r.Get("/vendor/dashboard/{endpoint}", h.handleDashboard)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	target := chi.URLParam(r, "endpoint")
	if target == "" {
		target = models.DashboardSlug
	}

	v, ok := requestcontext.VendorFrom(ctx)
	if !ok || v.ID == "" {
		h.logger.ErrorContext(ctx, "vendor missing from context despite session middleware",
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}
	view := dashboard.Compose(h.endpoints.Endpoints(), target, models.Vendor{ID: v.ID, ShopName: v.ShopName})
	if _, ok := h.endpoints.Lookup(target); !ok {
		view.Heading = h.translator.T(dashboard.DefaultHeading)
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		httputil.WriteJSON(w, http.StatusOK, view)
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, view); err != nil {
		h.logger.ErrorContext(ctx, "failed to render vendor dashboard",
			"request_id", requestcontext.RequestID(ctx),
			"vendor_id", v.ID,
			"endpoint", target,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteHTML(w, http.StatusOK, buf.Bytes())
}

package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bkap/internal/license/models"
	"bkap/pkg/platform/httputil"
	"bkap/pkg/requestcontext"
)

// Service defines the license administration operations.
type Service interface {
	Status(ctx context.Context) (*models.Status, error)
	Activate(ctx context.Context, key string) (*models.Status, error)
	Deactivate(ctx context.Context) (*models.Status, error)
	Check(ctx context.Context) (*models.Status, error)
}

// Handler serves the license settings endpoints.
type Handler struct {
	license Service
	logger  *slog.Logger
}

// New creates a license Handler.
func New(license Service, logger *slog.Logger) *Handler {
	return &Handler{license: license, logger: logger}
}

// Register registers the license routes. Callers mount it behind the admin token middleware.
func (h *Handler) Register(r chi.Router) {
	r.Get("/admin/license", h.handleStatus)
	r.Post("/admin/license/activate", h.handleActivate)
	r.Post("/admin/license/deactivate", h.handleDeactivate)
	r.Post("/admin/license/check", h.handleCheck)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "read license status", func(ctx context.Context) (*models.Status, error) {
		return h.license.Status(ctx)
	})
}

func (h *Handler) handleActivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeJSON[models.ActivateRequest](ctx, w, r, h.logger)
	if !ok {
		return
	}
	h.respond(w, r, "activate license", func(ctx context.Context) (*models.Status, error) {
		return h.license.Activate(ctx, req.LicenseKey)
	})
}

func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "deactivate license", h.license.Deactivate)
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "check license", h.license.Check)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, op string, fn func(context.Context) (*models.Status, error)) {
	ctx := r.Context()
	st, err := fn(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to "+op,
			"request_id", requestcontext.RequestID(ctx),
			"actor_id", requestcontext.ActorID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, st.ToResponse())
}

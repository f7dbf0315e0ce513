package admin

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bkap/internal/admin/screen"
	"bkap/internal/admin/types"
	"bkap/pkg/platform/httputil"
	"bkap/pkg/requestcontext"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body class="wp-admin {{.Screen.ID}}">
<div class="wrap">
{{.Notices}}<h1>{{.Title}}</h1>
</div>
</body></html>
`))

// PageService renders admin pages and reports notice state.
type PageService interface {
	Page(ctx context.Context, scr screen.Context) *types.PageView
	Stats(ctx context.Context, actorID string) (*types.Stats, error)
}

// Handler serves admin page shells and notice stats.
type Handler struct {
	service PageService
	logger  *slog.Logger
}

// New creates a new admin handler
func New(service PageService, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register registers admin routes with the router
func (h *Handler) Register(r chi.Router) {
	r.Get("/admin/stats", h.HandleGetStats)
	r.Get("/admin/{screen}", h.HandleGetPage)
}

// HandleGetPage renders the admin page for the screen in the path. The base
// and post_type query parameters complete the screen context.
func (h *Handler) HandleGetPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	scr := screen.Context{
		ID:       chi.URLParam(r, "screen"),
		Base:     q.Get("base"),
		PostType: q.Get("post_type"),
	}
	if scr.Base == "" {
		scr.Base = scr.ID
	}

	view := h.service.Page(ctx, scr)

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		h.logger.ErrorContext(ctx, "failed to render admin page",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
			"screen", scr.ID,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteHTML(w, http.StatusOK, buf.Bytes())
}

// HandleGetStats returns the notice state for the acting admin
func (h *Handler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	stats, err := h.service.Stats(ctx, requestcontext.ActorID(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get stats",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "admin stats retrieved",
		"request_id", requestID,
	)

	httputil.WriteJSON(w, http.StatusOK, stats)
}

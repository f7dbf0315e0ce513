package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bkap/internal/notice/models"
	dErrors "bkap/pkg/domain-errors"
	"bkap/pkg/platform/httputil"
	"bkap/pkg/requestcontext"
)

// Service records dismissals.
type Service interface {
	Dismiss(ctx context.Context, actorID string, p models.Payload) (string, error)
}

// Handler serves the admin-ajax endpoint the dismissal script posts to.
type Handler struct {
	notices Service
	logger  *slog.Logger
}

// New creates a notice Handler.
func New(notices Service, logger *slog.Logger) *Handler {
	return &Handler{notices: notices, logger: logger}
}

// Register registers the ajax route. Callers mount it behind the admin token
// and form content type middleware.
func (h *Handler) Register(r chi.Router) {
	r.Post("/admin/admin-ajax", h.handleAjax)
}

func (h *Handler) handleAjax(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	actorID := requestcontext.ActorID(ctx)

	if actorID == "" {
		h.logger.ErrorContext(ctx, "actor missing from context despite admin middleware",
			"request_id", requestID,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}

	req, ok := httputil.DecodeForm[models.DismissRequest](ctx, w, r, h.logger)
	if !ok {
		return
	}

	key, err := h.notices.Dismiss(ctx, actorID, req.Payload())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to dismiss notice",
			"request_id", requestID,
			"action", req.Action,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &models.DismissResponse{Dismissed: key})
}

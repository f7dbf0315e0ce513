package service

import (
	"bytes"
	"context"
	"html/template"
	"io"
	"log/slog"

	"bkap/internal/admin/screen"
	"bkap/internal/notice/metrics"
	"bkap/internal/notice/models"
	"bkap/internal/platform/hooks"
	"bkap/internal/platform/i18n"
	"bkap/pkg/requestcontext"
)

var dismissibleTemplate = template.Must(template.New("dismissible-notice").Parse(
	`<div class="notice notice-info is-dismissible {{.Class}}" data-notice="{{.Key}}">` +
		`<p>{{.Message}}</p>` +
		`<button type="button" class="notice-dismiss"><span class="screen-reader-text">{{.DismissLabel}}</span></button>` +
		`</div>`,
))

type dismissibleView struct {
	Class        string
	Key          string
	Message      string
	DismissLabel string
}

// PendingLister lists the notices an actor has not dismissed.
type PendingLister interface {
	Pending(ctx context.Context, actorID string) ([]models.Definition, error)
}

// Renderer writes the dismissible notices on admin pages.
type Renderer struct {
	notices    PendingLister
	translator i18n.Translator
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewRenderer creates a Renderer. translator and m may be nil.
func NewRenderer(notices PendingLister, translator i18n.Translator, m *metrics.Metrics, logger *slog.Logger) *Renderer {
	return &Renderer{notices: notices, translator: translator, metrics: m, logger: logger}
}

// Register subscribes the renderer to admin_notices after the license notice.
func (r *Renderer) Register(bus hooks.Bus) {
	hooks.OnPriority(bus, screen.AdminNotices, hooks.DefaultPriority+10, func(ctx context.Context, ev *screen.NoticesEvent) {
		r.Render(ctx, ev.Out)
	})
}

// Render writes every notice the current actor has not dismissed.
func (r *Renderer) Render(ctx context.Context, w io.Writer) {
	actorID := requestcontext.ActorID(ctx)
	if actorID == "" {
		return
	}
	pending, err := r.notices.Pending(ctx, actorID)
	if err != nil {
		r.logger.WarnContext(ctx, "skipping dismissible notices", "error", err)
		return
	}

	var buf bytes.Buffer
	for _, def := range pending {
		view := dismissibleView{
			Class:        def.Marker.Class(),
			Key:          def.Key,
			Message:      r.t(def.MsgID),
			DismissLabel: r.t("Dismiss this notice."),
		}
		if err := dismissibleTemplate.Execute(&buf, view); err != nil {
			r.logger.ErrorContext(ctx, "failed to render dismissible notice", "notice", def.Key, "error", err)
			return
		}
		if r.metrics != nil {
			r.metrics.IncrementRendered(def.Key)
		}
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		r.logger.WarnContext(ctx, "failed to write dismissible notices", "error", err)
	}
}

func (r *Renderer) t(msgid string) string {
	if r.translator == nil {
		return msgid
	}
	return r.translator.T(msgid)
}

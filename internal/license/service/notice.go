package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"log/slog"

	"bkap/internal/admin/screen"
	"bkap/internal/license/metrics"
	"bkap/internal/license/models"
	"bkap/internal/platform/hooks"
	"bkap/internal/platform/i18n"
)

// InactiveNoticeMsgID is the message id of the inactive license notice.
// %[1]s is the plugin name and %[2]s the license page URL.
const InactiveNoticeMsgID = `We have noticed that the license for <b>%[1]s</b> plugin is not active. To receive automatic updates & support, please activate the license <a href="%[2]s">here</a>.`

var noticeTemplate = template.Must(template.New("license-notice").Parse(
	`<div class="{{.ClassAttr}}"><p>{{.Message}}</p></div>`,
))

// StatusChecker answers whether a license is active.
type StatusChecker interface {
	IsLicenseActive(ctx context.Context, optionKey string) bool
}

// NoticeConfig names the license being watched and where to activate it.
type NoticeConfig struct {
	PluginName       string
	StatusOption     string
	PageURL          string
	SettingsScreenID string
}

type NoticeOption func(*NoticeController)

// WithNoticeMetrics sets the metrics instance for the controller.
func WithNoticeMetrics(m *metrics.Metrics) NoticeOption {
	return func(c *NoticeController) {
		c.metrics = m
	}
}

// NoticeController renders the inactive license warning on admin pages.
type NoticeController struct {
	checker    StatusChecker
	cfg        NoticeConfig
	translator i18n.Translator
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewNoticeController creates a controller. translator may be nil, in which
// case the message id is used as is.
func NewNoticeController(checker StatusChecker, cfg NoticeConfig, translator i18n.Translator, logger *slog.Logger, opts ...NoticeOption) *NoticeController {
	c := &NoticeController{
		checker:    checker,
		cfg:        cfg,
		translator: translator,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register subscribes the controller to admin_notices on bus.
func (c *NoticeController) Register(bus hooks.Bus) {
	hooks.On(bus, screen.AdminNotices, func(ctx context.Context, ev *screen.NoticesEvent) {
		c.Render(ctx, ev.Out, ev.Screen)
	})
}

// ShouldShowNotice reports whether the notice belongs on scr.
func (c *NoticeController) ShouldShowNotice(ctx context.Context, scr screen.Context) bool {
	show, _ := c.decide(ctx, scr)
	return show
}

func (c *NoticeController) decide(ctx context.Context, scr screen.Context) (bool, string) {
	active := c.checker.IsLicenseActive(ctx, c.cfg.StatusOption)
	excluded := scr.PostType == "page" || scr.PostType == "post" || scr.Base == "update" || scr.ID == c.cfg.SettingsScreenID
	show := !active && !excluded

	switch {
	case show:
		return true, ""
	case active:
		return false, metrics.ReasonLicenseActive
	default:
		return false, metrics.ReasonExcludedScreen
	}
}

// Descriptor builds the notice for the configured plugin.
func (c *NoticeController) Descriptor() models.NoticeDescriptor {
	msgid := InactiveNoticeMsgID
	if c.translator != nil {
		msgid = c.translator.T(msgid)
	}
	message := fmt.Sprintf(msgid,
		template.HTMLEscapeString(c.cfg.PluginName),
		template.HTMLEscapeString(c.cfg.PageURL),
	)
	return models.NoticeDescriptor{
		Classes: []string{"notice", "notice-error"},
		Message: template.HTML(message), //nolint:gosec // arguments are escaped above
	}
}

// Render writes the notice fragment to w when ShouldShowNotice holds for scr.
func (c *NoticeController) Render(ctx context.Context, w io.Writer, scr screen.Context) {
	show, reason := c.decide(ctx, scr)
	if !show {
		if c.metrics != nil {
			c.metrics.IncrementNoticeSuppressed(reason)
		}
		return
	}

	var buf bytes.Buffer
	if err := noticeTemplate.Execute(&buf, c.Descriptor()); err != nil {
		c.logger.ErrorContext(ctx, "failed to render license notice", "error", err)
		return
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		c.logger.WarnContext(ctx, "failed to write license notice", "error", err)
		return
	}
	if c.metrics != nil {
		c.metrics.IncrementNoticeShown()
	}
}

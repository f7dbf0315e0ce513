package admin

import (
	"bytes"
	"context"
	"html/template"
	"strings"

	"bkap/internal/admin/screen"
	"bkap/internal/admin/types"
	noticeModels "bkap/internal/notice/models"
	"bkap/internal/platform/hooks"
	dErrors "bkap/pkg/domain-errors"
)

// Bus dispatches admin events and reports subscriber counts.
type Bus interface {
	hooks.Bus
	Count(event string) int
}

// LicenseChecker reports whether the stored license is active.
type LicenseChecker interface {
	IsLicenseActive(ctx context.Context, optionKey string) bool
}

// NoticeLister lists the dismissible notices an admin has not dismissed.
type NoticeLister interface {
	Pending(ctx context.Context, actorID string) ([]noticeModels.Definition, error)
}

// Service renders admin page shells and reports notice state.
type Service struct {
	bus          Bus
	license      LicenseChecker
	notices      NoticeLister
	statusOption string
}

// NewService creates a new admin service
func NewService(bus Bus, license LicenseChecker, notices NoticeLister, statusOption string) *Service {
	return &Service{
		bus:          bus,
		license:      license,
		notices:      notices,
		statusOption: statusOption,
	}
}

// Page dispatches admin_notices for scr and returns the page view with the
// collected notice markup.
func (s *Service) Page(ctx context.Context, scr screen.Context) *types.PageView {
	var buf bytes.Buffer
	hooks.Emit(ctx, s.bus, screen.AdminNotices, &screen.NoticesEvent{Screen: scr, Out: &buf})
	return &types.PageView{
		Screen:  scr,
		Title:   titleFor(scr.ID),
		Notices: template.HTML(buf.String()), //nolint:gosec // subscribers write escaped markup
	}
}

// Stats returns the notice state seen by actorID.
func (s *Service) Stats(ctx context.Context, actorID string) (*types.Stats, error) {
	pending, err := s.notices.Pending(ctx, actorID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list pending notices")
	}
	keys := make([]string, 0, len(pending))
	for _, def := range pending {
		keys = append(keys, def.Key)
	}
	return &types.Stats{
		LicenseActive:     s.license.IsLicenseActive(ctx, s.statusOption),
		NoticeSubscribers: s.bus.Count(screen.AdminNotices.Name),
		PendingNotices:    keys,
	}, nil
}

func titleFor(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool { return r == '_' || r == '-' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

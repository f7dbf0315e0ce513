// Package service records admin notice dismissals and renders the notices an
// actor has not dismissed yet.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mssola/useragent"

	"bkap/internal/notice/metrics"
	"bkap/internal/notice/models"
	"bkap/internal/platform/privacy"
	dErrors "bkap/pkg/domain-errors"
	"bkap/pkg/requestcontext"
)

// Store persists dismissals per actor.
//
// Error Contract:
//   - Dismiss is idempotent
//   - Infrastructure failures are returned wrapped
type Store interface {
	Dismiss(ctx context.Context, actorID, key string) error
	IsDismissed(ctx context.Context, actorID, key string) (bool, error)
	ListDismissed(ctx context.Context, actorID string) ([]string, error)
}

// Publisher forwards dismissal events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, ev *models.DismissedEvent) error
}

type Option func(*Service)

// WithPublisher publishes a DismissedEvent after every dismissal.
func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithMetrics sets the metrics instance for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// Service records dismissals.
type Service struct {
	store     Store
	publisher Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

func New(store Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dismiss records that actorID dismissed the notice named by p and returns its key.
// Publishing failures are logged and never fail the dismissal.
func (s *Service) Dismiss(ctx context.Context, actorID string, p models.Payload) (string, error) {
	if actorID == "" {
		return "", dErrors.New(dErrors.CodeUnauthorized, "missing actor context")
	}
	key, ok := models.KeyFor(p)
	if !ok {
		return "", dErrors.New(dErrors.CodeValidation, "unknown notice")
	}
	if err := s.store.Dismiss(ctx, actorID, key); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to record dismissal")
	}
	if s.metrics != nil {
		s.metrics.IncrementDismissals(key)
	}

	s.logger.InfoContext(ctx, "admin notice dismissed",
		"request_id", requestcontext.RequestID(ctx),
		"actor_id", actorID,
		"notice", key,
	)
	s.publish(ctx, &models.DismissedEvent{
		ID:          uuid.NewString(),
		ActorID:     actorID,
		NoticeKey:   key,
		Action:      p.Action,
		Browser:     describeClient(requestcontext.UserAgent(ctx)),
		ClientIP:    privacy.AnonymizeIP(requestcontext.ClientIP(ctx)),
		DismissedAt: s.now().UTC(),
	})
	return key, nil
}

// Pending returns the notice definitions actorID has not dismissed, in render order.
func (s *Service) Pending(ctx context.Context, actorID string) ([]models.Definition, error) {
	dismissed, err := s.store.ListDismissed(ctx, actorID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list dismissals")
	}
	seen := make(map[string]struct{}, len(dismissed))
	for _, k := range dismissed {
		seen[k] = struct{}{}
	}
	var pending []models.Definition
	for _, def := range models.Definitions {
		if _, ok := seen[def.Key]; !ok {
			pending = append(pending, def)
		}
	}
	return pending, nil
}

func (s *Service) publish(ctx context.Context, ev *models.DismissedEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		if s.metrics != nil {
			s.metrics.IncrementPublishFailures()
		}
		s.logger.WarnContext(ctx, "failed to publish dismissal event",
			"event_id", ev.ID,
			"error", err,
		)
	}
}

// describeClient renders a User-Agent as "Browser on OS".
func describeClient(userAgent string) string {
	if userAgent == "" {
		return ""
	}
	ua := useragent.New(userAgent)
	browser, _ := ua.Browser()
	os := ua.OS()
	if browser == "" {
		browser = "Unknown Browser"
	}
	if os == "" {
		os = "Unknown OS"
	}
	return strings.TrimSpace(browser + " on " + os)
}

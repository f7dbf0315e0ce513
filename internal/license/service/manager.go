package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bkap/internal/license/metrics"
	"bkap/internal/license/models"
	"bkap/internal/sentinel"
	dErrors "bkap/pkg/domain-errors"
)

// OptionStore persists options.
//
// Error Contract:
//   - Get returns sentinel.ErrNotFound when the option does not exist
//   - Delete of a missing option is not an error
type OptionStore interface {
	Get(ctx context.Context, name string) (string, error)
	Set(ctx context.Context, name, value string) error
	Delete(ctx context.Context, name string) error
}

// Remote is the remote licensing service.
//
// Error Contract:
//   - Transport failures are returned as CodeServiceUnavailable or CodeTimeout domain errors
//   - A reachable service that refuses the key returns a RemoteLicense, not an error
type Remote interface {
	Activate(ctx context.Context, key string) (*models.RemoteLicense, error)
	Deactivate(ctx context.Context, key string) (*models.RemoteLicense, error)
	Check(ctx context.Context, key string) (*models.RemoteLicense, error)
}

// UpdateSource reports the newest plugin version the updater has seen.
type UpdateSource interface {
	LatestVersion() (string, bool)
	UpdateAvailable() (bool, error)
}

// ManagerConfig names the options holding the license.
type ManagerConfig struct {
	PluginName   string
	KeyOption    string
	StatusOption string
}

type ManagerOption func(*Manager)

// WithManagerMetrics sets the metrics instance for the manager.
func WithManagerMetrics(m *metrics.Metrics) ManagerOption {
	return func(mg *Manager) {
		mg.metrics = m
	}
}

// WithUpdates adds update availability to reported statuses.
func WithUpdates(u UpdateSource) ManagerOption {
	return func(mg *Manager) {
		mg.updates = u
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) ManagerOption {
	return func(mg *Manager) {
		if now != nil {
			mg.now = now
		}
	}
}

// Manager activates, deactivates and checks the plugin license against the
// remote service and keeps the key and status options current.
type Manager struct {
	options OptionStore
	remote  Remote
	cfg     ManagerConfig
	metrics *metrics.Metrics
	updates UpdateSource
	logger  *slog.Logger
	now     func() time.Time
}

func NewManager(options OptionStore, remote Remote, cfg ManagerConfig, logger *slog.Logger, opts ...ManagerOption) *Manager {
	m := &Manager{
		options: options,
		remote:  remote,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Status reports the stored license state without contacting the remote service.
func (m *Manager) Status(ctx context.Context) (*models.Status, error) {
	key, err := m.optional(ctx, m.cfg.KeyOption)
	if err != nil {
		return nil, err
	}
	status, err := m.optional(ctx, m.cfg.StatusOption)
	if err != nil {
		return nil, err
	}
	return m.status(key, status, ""), nil
}

// Activate stores key and activates it remotely.
func (m *Manager) Activate(ctx context.Context, key string) (*models.Status, error) {
	if key == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "license key is required")
	}
	if err := m.options.Set(ctx, m.cfg.KeyOption, key); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store license key")
	}

	lic, err := m.call(ctx, "activate_license", key, m.remote.Activate)
	if err != nil {
		return nil, err
	}
	if err := m.options.Set(ctx, m.cfg.StatusOption, lic.Status); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store license status")
	}
	if !lic.Success || lic.Status != models.StatusValid {
		m.logger.WarnContext(ctx, "license activation rejected",
			"status", lic.Status,
			"reason", lic.Error,
		)
		return nil, dErrors.New(dErrors.CodeLicenseRejected, models.RejectionMessage(lic, m.cfg.PluginName))
	}

	m.logger.InfoContext(ctx, "license activated", "expires", lic.Expires)
	return m.status(key, lic.Status, lic.Expires), nil
}

// Deactivate releases the stored key remotely and clears the stored status.
func (m *Manager) Deactivate(ctx context.Context) (*models.Status, error) {
	key, err := m.requireKey(ctx)
	if err != nil {
		return nil, err
	}

	lic, err := m.call(ctx, "deactivate_license", key, m.remote.Deactivate)
	if err != nil {
		return nil, err
	}
	if lic.Status != models.StatusDeactivated {
		return nil, dErrors.New(dErrors.CodeLicenseRejected, "license could not be deactivated")
	}
	if err := m.options.Delete(ctx, m.cfg.StatusOption); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear license status")
	}

	m.logger.InfoContext(ctx, "license deactivated")
	return m.status(key, "", ""), nil
}

// Check asks the remote service for the key's current status and stores it.
func (m *Manager) Check(ctx context.Context) (*models.Status, error) {
	key, err := m.requireKey(ctx)
	if err != nil {
		return nil, err
	}

	lic, err := m.call(ctx, "check_license", key, m.remote.Check)
	if err != nil {
		return nil, err
	}
	if err := m.options.Set(ctx, m.cfg.StatusOption, lic.Status); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store license status")
	}
	return m.status(key, lic.Status, lic.Expires), nil
}

func (m *Manager) call(ctx context.Context, action, key string, fn func(context.Context, string) (*models.RemoteLicense, error)) (*models.RemoteLicense, error) {
	start := m.now()
	lic, err := fn(ctx, key)
	outcome := "ok"
	if err != nil {
		outcome = string(dErrors.CodeOf(err))
	}
	if m.metrics != nil {
		m.metrics.ObserveRemoteCall(action, outcome, m.now().Sub(start).Seconds())
	}
	if err != nil {
		level := slog.LevelError
		if dErrors.Temporary(err) {
			level = slog.LevelWarn
		}
		m.logger.Log(ctx, level, "remote licensing call failed",
			"action", action,
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeServiceUnavailable, "licensing service unavailable")
	}
	return lic, nil
}

func (m *Manager) requireKey(ctx context.Context) (string, error) {
	key, err := m.optional(ctx, m.cfg.KeyOption)
	if err != nil {
		return "", err
	}
	if key == "" {
		return "", dErrors.New(dErrors.CodeNotFound, "no license key stored")
	}
	return key, nil
}

func (m *Manager) optional(ctx context.Context, name string) (string, error) {
	v, err := m.options.Get(ctx, name)
	if errors.Is(err, sentinel.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("failed to read option %s", name))
	}
	return v, nil
}

func (m *Manager) status(key, status, expires string) *models.Status {
	st := &models.Status{
		PluginName: m.cfg.PluginName,
		KeySet:     key != "",
		MaskedKey:  models.MaskKey(key),
		Status:     status,
		Active:     status == models.StatusValid,
		Expires:    expires,
		CheckedAt:  m.now(),
	}
	if m.updates == nil {
		return st
	}
	if latest, ok := m.updates.LatestVersion(); ok {
		st.LatestVersion = latest
		available, err := m.updates.UpdateAvailable()
		if err != nil {
			m.logger.Warn("cannot compare plugin versions", "latest", latest, "error", err)
		}
		st.UpdateAvailable = available
	}
	return st
}

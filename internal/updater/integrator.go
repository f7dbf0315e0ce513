// Package updater hands the plugin's version metadata and stored license key
// to the remote update checker at startup.
package updater

import (
	"context"
	"errors"
	"log/slog"

	"bkap/internal/sentinel"
)

// Metadata is the initialization object handed to the update checker.
type Metadata struct {
	Version  string `json:"version"`
	License  string `json:"license"`
	ItemName string `json:"item_name"`
	Author   string `json:"author"`
}

// Updater is the remote update-check subsystem. Init owns every remote
// failure; callers never see one.
type Updater interface {
	Init(ctx context.Context, storeURL string, meta Metadata)
}

// OptionReader reads persisted options.
type OptionReader interface {
	Get(ctx context.Context, name string) (string, error)
}

// Config holds the static plugin metadata.
type Config struct {
	StoreURL  string
	KeyOption string
	Version   string
	ItemName  string
	Author    string
}

type Option func(*Integrator)

// WithUpdater injects the update checker. Without one Bootstrap does nothing.
func WithUpdater(u Updater) Option {
	return func(i *Integrator) {
		i.updater = u
	}
}

// Integrator wires the stored license key into the update checker.
type Integrator struct {
	options OptionReader
	updater Updater
	cfg     Config
	logger  *slog.Logger
}

func New(options OptionReader, cfg Config, logger *slog.Logger, opts ...Option) *Integrator {
	i := &Integrator{options: options, cfg: cfg, logger: logger}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Bootstrap reads the license key once and initializes the updater with it.
func (i *Integrator) Bootstrap(ctx context.Context) {
	if i.updater == nil {
		i.logger.InfoContext(ctx, "no updater configured, skipping update checks")
		return
	}

	key, err := i.options.Get(ctx, i.cfg.KeyOption)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		i.logger.WarnContext(ctx, "license key unreadable, initializing updater without it",
			"option", i.cfg.KeyOption,
			"error", err,
		)
	}

	i.updater.Init(ctx, i.cfg.StoreURL, Metadata{
		Version:  i.cfg.Version,
		License:  key,
		ItemName: i.cfg.ItemName,
		Author:   i.cfg.Author,
	})
}

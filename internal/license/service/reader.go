package service

import (
	"context"
	"errors"
	"log/slog"

	"bkap/internal/license/models"
	"bkap/internal/sentinel"
)

// OptionReader reads persisted options.
//
// Error Contract:
//   - Get returns sentinel.ErrNotFound when the option does not exist
type OptionReader interface {
	Get(ctx context.Context, name string) (string, error)
}

// Reader reads the persisted license status of a plugin.
type Reader struct {
	options OptionReader
	logger  *slog.Logger
}

// NewReader creates a license status reader over options.
func NewReader(options OptionReader, logger *slog.Logger) *Reader {
	return &Reader{options: options, logger: logger}
}

// Record loads the license record stored under optionKey. Unreadable status
// is reported as absent.
func (r *Reader) Record(ctx context.Context, optionKey string) models.Record {
	rec := models.Record{PluginID: optionKey}
	value, err := r.options.Get(ctx, optionKey)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) && r.logger != nil {
			r.logger.WarnContext(ctx, "license status unreadable, treating as inactive",
				"option", optionKey,
				"error", err,
			)
		}
		return rec
	}
	rec.Status = &value
	return rec
}

// IsLicenseActive reports whether the status stored under optionKey is exactly "valid".
func (r *Reader) IsLicenseActive(ctx context.Context, optionKey string) bool {
	return r.Record(ctx, optionKey).IsActive()
}

package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bkap/internal/license/service/mocks"
	"bkap/internal/options"
)

const statusOption = "edd_sample_license_status"

func TestReaderIsLicenseActive(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("true only for the exact string valid", func(t *testing.T) {
		for value, want := range map[string]bool{
			"valid":    true,
			"VALID":    false,
			"valid ":   false,
			"expired":  false,
			"inactive": false,
			"":         false,
		} {
			store := options.NewInMemory(map[string]string{statusOption: value})
			assert.Equal(t, want, NewReader(store, logger).IsLicenseActive(ctx, statusOption), "status %q", value)
		}
	})

	t.Run("absent status is inactive", func(t *testing.T) {
		r := NewReader(options.NewInMemory(nil), logger)
		assert.False(t, r.IsLicenseActive(ctx, statusOption))
		assert.Nil(t, r.Record(ctx, statusOption).Status)
	})

	t.Run("unreadable status fails closed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockOptionStore(ctrl)
		store.EXPECT().Get(gomock.Any(), statusOption).Return("", errors.New("connection reset"))

		assert.False(t, NewReader(store, logger).IsLicenseActive(ctx, statusOption))
	})
}

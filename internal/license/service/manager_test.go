package service

//go:generate mockgen -source=manager.go -destination=mocks/manager_mock.go -package=mocks

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"bkap/internal/license/models"
	"bkap/internal/license/service/mocks"
	"bkap/internal/sentinel"
	dErrors "bkap/pkg/domain-errors"
)

const (
	keyOption = "edd_sample_license_key"
	testKey   = "0123456789abcdef0123456789abcdef"
)

type ManagerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	options *mocks.MockOptionStore
	remote  *mocks.MockRemote
	manager *Manager
	now     time.Time
}

func (s *ManagerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.options = mocks.NewMockOptionStore(s.ctrl)
	s.remote = mocks.NewMockRemote(s.ctrl)
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.manager = NewManager(s.options, s.remote, ManagerConfig{
		PluginName:   "Booking & Appointment Plugin for WooCommerce",
		KeyOption:    keyOption,
		StatusOption: statusOption,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)), WithClock(func() time.Time { return s.now }))
}

func (s *ManagerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) TestActivate() {
	ctx := context.Background()

	s.Run("valid key stores key and status", func() {
		gomock.InOrder(
			s.options.EXPECT().Set(ctx, keyOption, testKey).Return(nil),
			s.remote.EXPECT().Activate(ctx, testKey).Return(&models.RemoteLicense{Success: true, Status: "valid", Expires: "2027-01-01 23:59:59"}, nil),
			s.options.EXPECT().Set(ctx, statusOption, "valid").Return(nil),
		)

		st, err := s.manager.Activate(ctx, testKey)
		s.Require().NoError(err)
		s.True(st.Active)
		s.Equal("valid", st.Status)
		s.Equal("2027-01-01 23:59:59", st.Expires)
		s.Equal("****************************cdef", st.MaskedKey)
		s.Equal(s.now, st.CheckedAt)
	})

	s.Run("rejected key stores the remote status", func() {
		s.options.EXPECT().Set(ctx, keyOption, testKey).Return(nil)
		s.remote.EXPECT().Activate(ctx, testKey).Return(&models.RemoteLicense{Status: "invalid", Error: "expired", Expires: "2025-01-01"}, nil)
		s.options.EXPECT().Set(ctx, statusOption, "invalid").Return(nil)

		_, err := s.manager.Activate(ctx, testKey)
		s.True(dErrors.HasCode(err, dErrors.CodeLicenseRejected))
		s.Contains(err.Error(), "expired on 2025-01-01")
	})

	s.Run("remote failure leaves status untouched", func() {
		s.options.EXPECT().Set(ctx, keyOption, testKey).Return(nil)
		s.remote.EXPECT().Activate(ctx, testKey).Return(nil, dErrors.New(dErrors.CodeTimeout, "deadline exceeded"))

		_, err := s.manager.Activate(ctx, testKey)
		s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
	})

	s.Run("empty key", func() {
		_, err := s.manager.Activate(ctx, "")
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *ManagerSuite) TestDeactivate() {
	ctx := context.Background()

	s.Run("deactivated clears status", func() {
		s.options.EXPECT().Get(ctx, keyOption).Return(testKey, nil)
		s.remote.EXPECT().Deactivate(ctx, testKey).Return(&models.RemoteLicense{Success: true, Status: "deactivated"}, nil)
		s.options.EXPECT().Delete(ctx, statusOption).Return(nil)

		st, err := s.manager.Deactivate(ctx)
		s.Require().NoError(err)
		s.False(st.Active)
		s.True(st.KeySet)
	})

	s.Run("failed deactivation keeps status", func() {
		s.options.EXPECT().Get(ctx, keyOption).Return(testKey, nil)
		s.remote.EXPECT().Deactivate(ctx, testKey).Return(&models.RemoteLicense{Status: "failed"}, nil)

		_, err := s.manager.Deactivate(ctx)
		s.True(dErrors.HasCode(err, dErrors.CodeLicenseRejected))
	})

	s.Run("no key stored", func() {
		s.options.EXPECT().Get(ctx, keyOption).Return("", sentinel.ErrNotFound)

		_, err := s.manager.Deactivate(ctx)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ManagerSuite) TestCheck() {
	ctx := context.Background()

	s.options.EXPECT().Get(ctx, keyOption).Return(testKey, nil)
	s.remote.EXPECT().Check(ctx, testKey).Return(&models.RemoteLicense{Success: true, Status: "expired", Expires: "2025-06-30"}, nil)
	s.options.EXPECT().Set(ctx, statusOption, "expired").Return(nil)

	st, err := s.manager.Check(ctx)
	s.Require().NoError(err)
	s.False(st.Active)
	s.Equal("expired", st.Status)
}

func (s *ManagerSuite) TestStatus() {
	ctx := context.Background()

	s.Run("reads stored options", func() {
		s.options.EXPECT().Get(ctx, keyOption).Return(testKey, nil)
		s.options.EXPECT().Get(ctx, statusOption).Return("valid", nil)

		st, err := s.manager.Status(ctx)
		s.Require().NoError(err)
		s.True(st.Active)
	})

	s.Run("nothing stored", func() {
		s.options.EXPECT().Get(ctx, keyOption).Return("", sentinel.ErrNotFound)
		s.options.EXPECT().Get(ctx, statusOption).Return("", sentinel.ErrNotFound)

		st, err := s.manager.Status(ctx)
		s.Require().NoError(err)
		s.False(st.KeySet)
		s.False(st.Active)
	})

	s.Run("store failure", func() {
		s.options.EXPECT().Get(ctx, keyOption).Return("", errors.New("boom"))

		_, err := s.manager.Status(ctx)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ManagerSuite) TestStatusReportsUpdates() {
	ctx := context.Background()
	updates := mocks.NewMockUpdateSource(s.ctrl)
	manager := NewManager(s.options, s.remote, ManagerConfig{
		KeyOption:    keyOption,
		StatusOption: statusOption,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)), WithUpdates(updates))

	s.Run("newer version known", func() {
		s.options.EXPECT().Get(ctx, keyOption).Return(testKey, nil)
		s.options.EXPECT().Get(ctx, statusOption).Return("valid", nil)
		updates.EXPECT().LatestVersion().Return("5.20.1", true)
		updates.EXPECT().UpdateAvailable().Return(true, nil)

		st, err := manager.Status(ctx)
		s.Require().NoError(err)
		s.Equal("5.20.1", st.LatestVersion)
		s.True(st.UpdateAvailable)
		s.True(st.ToResponse().UpdateAvailable)
	})

	s.Run("no version fetched yet", func() {
		s.options.EXPECT().Get(ctx, keyOption).Return(testKey, nil)
		s.options.EXPECT().Get(ctx, statusOption).Return("valid", nil)
		updates.EXPECT().LatestVersion().Return("", false)

		st, err := manager.Status(ctx)
		s.Require().NoError(err)
		s.Empty(st.LatestVersion)
		s.False(st.UpdateAvailable)
	})

	s.Run("unparseable versions are not an error", func() {
		s.options.EXPECT().Get(ctx, keyOption).Return(testKey, nil)
		s.options.EXPECT().Get(ctx, statusOption).Return("valid", nil)
		updates.EXPECT().LatestVersion().Return("nightly", true)
		updates.EXPECT().UpdateAvailable().Return(false, errors.New("invalid version"))

		st, err := manager.Status(ctx)
		s.Require().NoError(err)
		s.Equal("nightly", st.LatestVersion)
		s.False(st.UpdateAvailable)
	})
}

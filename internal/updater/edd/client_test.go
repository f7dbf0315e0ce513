package edd

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel/trace/noop"

	"bkap/internal/updater"
	dErrors "bkap/pkg/domain-errors"
	"bkap/pkg/platform/circuit"
)

const testKey = "0123456789abcdef0123456789abcdef"

type fakeStore struct {
	mu       sync.Mutex
	requests []url.Values
	status   int
	body     string
	delay    time.Duration
}

func (f *fakeStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	f.mu.Lock()
	f.requests = append(f.requests, r.PostForm)
	status, body, delay := f.status, f.body, f.delay
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (f *fakeStore) set(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status, f.body = status, body
}

func (f *fakeStore) last() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

type ClientSuite struct {
	suite.Suite
	store  *fakeStore
	server *httptest.Server
	client *Client
}

func (s *ClientSuite) SetupTest() {
	s.store = &fakeStore{}
	s.server = httptest.NewServer(s.store)
	s.client = New(Config{
		StoreURL: s.server.URL,
		ItemName: "Booking & Appointment Plugin for WooCommerce",
		SiteURL:  "https://shop.example.com",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)),
		WithHTTPClient(s.server.Client()),
		WithBreaker(circuit.New("edd-test", circuit.WithFailureThreshold(2), circuit.WithCooldown(time.Hour))),
		WithTracer(noop.NewTracerProvider().Tracer("test")),
	)
}

func (s *ClientSuite) TearDownTest() {
	s.client.Wait()
	s.server.Close()
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) TestActivate() {
	s.store.set(http.StatusOK, `{"success":true,"license":"valid","item_name":"Booking","expires":"2027-01-01 23:59:59","site_count":1,"license_limit":5,"customer_email":"owner@example.com"}`)

	lic, err := s.client.Activate(context.Background(), testKey)
	s.Require().NoError(err)
	s.True(lic.Success)
	s.Equal("valid", lic.Status)
	s.Equal("2027-01-01 23:59:59", lic.Expires)
	s.Equal(5, lic.LicenseLimit)

	form := s.store.last()
	s.Equal("activate_license", form.Get("edd_action"))
	s.Equal(testKey, form.Get("license"))
	s.Equal("Booking & Appointment Plugin for WooCommerce", form.Get("item_name"))
	s.Equal("https://shop.example.com", form.Get("url"))
}

func (s *ClientSuite) TestRejectedLicenseIsNotAnError() {
	s.store.set(http.StatusOK, `{"success":false,"license":"invalid","error":"no_activations_left"}`)

	lic, err := s.client.Check(context.Background(), testKey)
	s.Require().NoError(err)
	s.False(lic.Success)
	s.Equal("no_activations_left", lic.Error)
	s.Equal("check_license", s.store.last().Get("edd_action"))
}

func (s *ClientSuite) TestDeactivate() {
	s.store.set(http.StatusOK, `{"success":true,"license":"deactivated"}`)

	lic, err := s.client.Deactivate(context.Background(), testKey)
	s.Require().NoError(err)
	s.Equal("deactivated", lic.Status)
}

func (s *ClientSuite) TestServerErrorsOpenTheCircuit() {
	s.store.set(http.StatusInternalServerError, `oops`)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := s.client.Check(ctx, testKey)
		s.True(dErrors.HasCode(err, dErrors.CodeServiceUnavailable))
	}
	s.Equal(2, s.store.count())

	_, err := s.client.Check(ctx, testKey)
	s.True(dErrors.HasCode(err, dErrors.CodeServiceUnavailable))
	s.ErrorIs(err, circuit.ErrOpen)
	s.Equal(2, s.store.count(), "open circuit does not reach the store")
}

func (s *ClientSuite) TestMalformedResponse() {
	s.store.set(http.StatusOK, `<html>maintenance</html>`)

	_, err := s.client.Activate(context.Background(), testKey)
	s.True(dErrors.HasCode(err, dErrors.CodeServiceUnavailable))
}

func (s *ClientSuite) TestInitRunsOneBackgroundVersionCheck() {
	s.store.set(http.StatusOK, `{"new_version":"5.20.1","stable_version":"5.20.1","name":"Booking","slug":"woocommerce-booking"}`)

	s.client.Init(context.Background(), "", updater.Metadata{
		Version:  "5.19.0",
		License:  testKey,
		ItemName: "Booking & Appointment Plugin for WooCommerce",
		Author:   "Tyche Softwares",
	})
	s.client.Wait()

	s.Equal(1, s.store.count())
	form := s.store.last()
	s.Equal("get_version", form.Get("edd_action"))
	s.Equal("5.19.0", form.Get("version"))
	s.Equal(testKey, form.Get("license"))
	s.Equal("Tyche Softwares", form.Get("author"))

	info, ok := s.client.Latest()
	s.Require().True(ok)
	s.Equal("5.20.1", info.NewVersion)

	available, err := s.client.UpdateAvailable()
	s.Require().NoError(err)
	s.True(available)

	latest, ok := s.client.LatestVersion()
	s.True(ok)
	s.Equal("5.20.1", latest)
}

func (s *ClientSuite) TestInitFailureStaysInside() {
	s.store.set(http.StatusBadGateway, ``)

	s.NotPanics(func() {
		s.client.Init(context.Background(), "", updater.Metadata{Version: "5.19.0"})
		s.client.Wait()
	})
	_, ok := s.client.Latest()
	s.False(ok)
	_, ok = s.client.LatestVersion()
	s.False(ok)
}

func TestTimeout(t *testing.T) {
	store := &fakeStore{delay: 200 * time.Millisecond, body: `{}`}
	server := httptest.NewServer(store)
	defer server.Close()

	c := New(Config{StoreURL: server.URL, Timeout: 20 * time.Millisecond}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := c.Check(context.Background(), testKey)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
}

func TestIsUpdateAvailable(t *testing.T) {
	cases := []struct {
		current, latest string
		want            bool
	}{
		{"5.19.0", "5.20.0", true},
		{"5.19.0", "5.19.0", false},
		{"5.20.0", "5.19.9", false},
		{"v5.19", "5.19.1", true},
	}
	for _, tc := range cases {
		got, err := isUpdateAvailable(tc.current, tc.latest)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s -> %s", tc.current, tc.latest)
	}

	_, err := isUpdateAvailable("dev", "5.19.0")
	assert.Error(t, err)
}

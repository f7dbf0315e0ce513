package handler

//go:generate mockgen -source=handler.go -destination=mocks/handler_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"bkap/internal/marketplace/dashboard"
	"bkap/internal/marketplace/handler/mocks"
	"bkap/internal/marketplace/models"
	"bkap/internal/marketplace/registry"
	"bkap/internal/platform/i18n"
	"bkap/pkg/requestcontext"
	"bkap/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	reg        *registry.Registry
	translator i18n.Translator
	logger     *slog.Logger
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	reg, err := registry.New("/vendor/dashboard",
		testutil.NewEndpointsBuilder().With("a", "A").With("b", "B").With("c", "C").Build())
	s.Require().NoError(err)
	s.reg = reg

	catalog, err := i18n.Default()
	s.Require().NoError(err)
	s.translator = catalog.Translator("woocommerce-booking", "de_DE")
	s.logger = slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) router(renderer Renderer) http.Handler {
	r := chi.NewRouter()
	New(s.reg, renderer, s.translator, s.logger).Register(r)
	return r
}

func (s *HandlerSuite) get(h http.Handler, path, accept string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	ctx := requestcontext.WithVendor(context.Background(), requestcontext.Vendor{ID: "42", ShopName: "Sunny Stays"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(ctx))
	return rec
}

func (s *HandlerSuite) TestRendersEndpointPage() {
	renderer, err := dashboard.NewRenderer()
	s.Require().NoError(err)

	rec := s.get(s.router(renderer), "/vendor/dashboard/b", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	s.Contains(body, `<h2 class="bkap-dashboard-heading">B</h2>`)
	s.Contains(body, `data-vendor="42"`)
	s.Contains(body, `href="/vendor/dashboard/c"`)
}

func (s *HandlerSuite) TestJSONView() {
	renderer := mocks.NewMockRenderer(s.ctrl)

	rec := s.get(s.router(renderer), "/vendor/dashboard/a", "application/json")

	s.Equal(http.StatusOK, rec.Code)
	var view models.View
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &view))
	s.Equal("A", view.Heading)
	s.Equal("a", view.TargetSlug)
	s.Equal(models.Vendor{ID: "42", ShopName: "Sunny Stays"}, view.Vendor)
	s.Require().Len(view.Groups, 2)
	s.Equal("/vendor/dashboard/a", view.Groups[0][0].URL)
}

func (s *HandlerSuite) TestUnknownEndpointUsesTranslatedDefaultHeading() {
	renderer := mocks.NewMockRenderer(s.ctrl)
	renderer.EXPECT().Render(gomock.Any(), gomock.Any()).DoAndReturn(func(w io.Writer, view models.View) error {
		s.Equal("Buchung", view.Heading)
		s.Equal("zzz", view.TargetSlug)
		_, err := io.WriteString(w, "<div></div>")
		return err
	})

	rec := s.get(s.router(renderer), "/vendor/dashboard/zzz", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("<div></div>", rec.Body.String())
}

func (s *HandlerSuite) TestRootTargetsDashboard() {
	renderer := mocks.NewMockRenderer(s.ctrl)
	renderer.EXPECT().Render(gomock.Any(), gomock.Any()).DoAndReturn(func(_ io.Writer, view models.View) error {
		s.Equal(models.DashboardSlug, view.TargetSlug)
		s.Equal("Dashboard", view.Heading)
		return nil
	})

	rec := s.get(s.router(renderer), "/vendor/dashboard", "")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerSuite) TestRenderFailure() {
	renderer := mocks.NewMockRenderer(s.ctrl)
	renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(errors.New("template exploded"))

	rec := s.get(s.router(renderer), "/vendor/dashboard/a", "")

	s.Equal(http.StatusInternalServerError, rec.Code)
}

func (s *HandlerSuite) TestUsesEndpointSource() {
	source := mocks.NewMockEndpointSource(s.ctrl)
	source.EXPECT().Endpoints().Return(testutil.NewEndpointsBuilder().With("x", "X").Build())
	source.EXPECT().Lookup("x").Return(models.Endpoint{Slug: "x", Name: "X"}, true)
	renderer := mocks.NewMockRenderer(s.ctrl)
	renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(nil)

	r := chi.NewRouter()
	New(source, renderer, s.translator, s.logger).Register(r)
	rec := s.get(r, "/vendor/dashboard/x", "")

	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerSuite) TestMissingVendorIsInternalError() {
	renderer := mocks.NewMockRenderer(s.ctrl)

	req := httptest.NewRequest(http.MethodGet, "/vendor/dashboard/a", nil)
	rec := httptest.NewRecorder()
	s.router(renderer).ServeHTTP(rec, req)

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.JSONEq(`{"error":"internal_error","error_description":"authentication context error"}`, rec.Body.String())
}

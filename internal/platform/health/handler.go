// Package health serves the liveness, readiness and status probes.
package health

import (
	"context"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"bkap/pkg/platform/httputil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// CheckFunc reports the health of one dependency; nil means healthy.
type CheckFunc func(ctx context.Context) error

// LicenseFunc reports whether the plugin license is currently active.
type LicenseFunc func(ctx context.Context) bool

type probe struct {
	name  string
	check CheckFunc
}

// Handler serves the probe endpoints. Dependencies register themselves as
// they are wired so the readiness probe only covers what is running.
type Handler struct {
	started     time.Time
	environment string
	timeout     time.Duration
	license     LicenseFunc

	mu     sync.RWMutex
	probes []probe
}

// Option configures a Handler.
type Option func(*Handler)

// WithTimeout bounds the time all readiness checks may take together.
func WithTimeout(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// WithLicense adds the license state to the status response.
func WithLicense(fn LicenseFunc) Option {
	return func(h *Handler) { h.license = fn }
}

func New(environment string, opts ...Option) *Handler {
	h := &Handler{
		started:     time.Now(),
		environment: environment,
		timeout:     2 * time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterCheck adds or replaces a named readiness check.
func (h *Handler) RegisterCheck(name string, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	idx := slices.IndexFunc(h.probes, func(p probe) bool { return p.name == name })
	if idx >= 0 {
		h.probes[idx].check = check
		return
	}
	h.probes = append(h.probes, probe{name: name, check: check})
	slices.SortFunc(h.probes, func(a, b probe) int {
		switch {
		case a.name < b.name:
			return -1
		case a.name > b.name:
			return 1
		}
		return 0
	})
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.HandleStatus)
	r.Get("/health/live", h.HandleLiveness)
	r.Get("/health/ready", h.HandleReadiness)
}

type livenessResponse struct {
	Status string `json:"status"`
}

func (h *Handler) HandleLiveness(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, livenessResponse{Status: "alive"})
}

type readinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HandleReadiness answers 503 when any registered dependency is down.
func (h *Handler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	probes := slices.Clone(h.probes)
	h.mu.RUnlock()

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	errs := make([]error, len(probes))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range probes {
		g.Go(func() error {
			errs[i] = p.check(gctx)
			return nil
		})
	}
	_ = g.Wait()

	resp := readinessResponse{Status: "ready", Checks: make(map[string]string, len(probes))}
	code := http.StatusOK
	for i, p := range probes {
		if errs[i] == nil {
			resp.Checks[p.name] = "up"
			continue
		}
		resp.Checks[p.name] = "down: " + errs[i].Error()
		resp.Status = "not_ready"
		code = http.StatusServiceUnavailable
	}
	httputil.WriteJSON(w, code, resp)
}

type statusResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	Environment   string `json:"environment"`
	License       string `json:"license,omitempty"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Timestamp     string `json:"timestamp"`
}

// HandleStatus reports build and runtime information. An inactive license
// does not make the service unhealthy.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Status:        "healthy",
		Version:       Version,
		Environment:   h.environment,
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}
	if h.license != nil {
		resp.License = "inactive"
		if h.license(r.Context()) {
			resp.License = "active"
		}
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// Package edd talks to an Easy Digital Downloads Software Licensing store:
// license activation, deactivation and checks, and plugin version lookups.
package edd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/mod/semver"

	"bkap/internal/license/models"
	"bkap/internal/updater"
	dErrors "bkap/pkg/domain-errors"
	"bkap/pkg/platform/circuit"
)

const (
	actionActivate   = "activate_license"
	actionDeactivate = "deactivate_license"
	actionCheck      = "check_license"
	actionGetVersion = "get_version"

	maxResponseBytes = 1 << 20
)

// Config identifies the store and the site the license is used on.
type Config struct {
	StoreURL string
	ItemName string
	SiteURL  string
	Timeout  time.Duration
}

// VersionInfo is the store's answer to get_version.
type VersionInfo struct {
	NewVersion    string `json:"new_version"`
	StableVersion string `json:"stable_version"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Homepage      string `json:"homepage"`
	Package       string `json:"package"`
	LastUpdated   string `json:"last_updated"`
	Requires      string `json:"requires"`
	Tested        string `json:"tested"`
}

type licenseResponse struct {
	Success       bool   `json:"success"`
	License       string `json:"license"`
	Error         string `json:"error"`
	ItemName      string `json:"item_name"`
	Expires       string `json:"expires"`
	CustomerEmail string `json:"customer_email"`
	SiteCount     int    `json:"site_count"`
	LicenseLimit  int    `json:"license_limit"`
}

type Option func(*Client)

// WithHTTPClient replaces the default client built from Config.Timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithBreaker replaces the default circuit breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) {
		if b != nil {
			c.breaker = b
		}
	}
}

// WithTracer replaces the global "bkap/edd" tracer.
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) {
		if t != nil {
			c.tracer = t
		}
	}
}

// Client is the concrete updater and remote licensing client.
type Client struct {
	cfg     Config
	http    *http.Client
	breaker *circuit.Breaker
	tracer  trace.Tracer
	logger  *slog.Logger

	mu       sync.RWMutex
	storeURL string
	meta     updater.Metadata
	latest   *VersionInfo
	wg       sync.WaitGroup
}

func New(cfg Config, logger *slog.Logger, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c := &Client{
		cfg:      cfg,
		http:     &http.Client{Timeout: timeout},
		breaker:  circuit.New("edd"),
		tracer:   otel.Tracer("bkap/edd"),
		logger:   logger,
		storeURL: cfg.StoreURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init implements updater.Updater. It records the metadata and runs one
// version check in the background; failures are logged here and go no further.
func (c *Client) Init(ctx context.Context, storeURL string, meta updater.Metadata) {
	c.mu.Lock()
	if storeURL != "" {
		c.storeURL = storeURL
	}
	c.meta = meta
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx := context.WithoutCancel(ctx)
		info, err := c.GetVersion(ctx)
		if err != nil {
			c.logger.WarnContext(ctx, "plugin version check failed", "error", err)
			return
		}
		if ok, _ := c.UpdateAvailable(); ok {
			c.logger.InfoContext(ctx, "plugin update available",
				"installed", meta.Version,
				"available", info.NewVersion,
			)
		}
	}()
}

// Wait blocks until the background version check started by Init returns.
func (c *Client) Wait() {
	c.wg.Wait()
}

// Latest returns the last version information fetched from the store.
func (c *Client) Latest() (*VersionInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.latest == nil {
		return nil, false
	}
	info := *c.latest
	return &info, true
}

// LatestVersion returns the newest version fetched from the store.
func (c *Client) LatestVersion() (string, bool) {
	info, ok := c.Latest()
	if !ok || info.NewVersion == "" {
		return "", false
	}
	return info.NewVersion, true
}

// UpdateAvailable compares the installed version with the last fetched one.
func (c *Client) UpdateAvailable() (bool, error) {
	c.mu.RLock()
	installed := c.meta.Version
	latest := c.latest
	c.mu.RUnlock()
	if latest == nil {
		return false, nil
	}
	return isUpdateAvailable(installed, latest.NewVersion)
}

// GetVersion asks the store for the newest version of the plugin.
func (c *Client) GetVersion(ctx context.Context) (*VersionInfo, error) {
	c.mu.RLock()
	meta := c.meta
	c.mu.RUnlock()

	form := url.Values{}
	form.Set("version", meta.Version)
	form.Set("author", meta.Author)
	var info VersionInfo
	if err := c.call(ctx, actionGetVersion, meta.License, form, &info); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.latest = &info
	c.mu.Unlock()
	return &info, nil
}

// Activate implements the license service's Remote.
func (c *Client) Activate(ctx context.Context, key string) (*models.RemoteLicense, error) {
	return c.license(ctx, actionActivate, key)
}

// Deactivate implements the license service's Remote.
func (c *Client) Deactivate(ctx context.Context, key string) (*models.RemoteLicense, error) {
	return c.license(ctx, actionDeactivate, key)
}

// Check implements the license service's Remote.
func (c *Client) Check(ctx context.Context, key string) (*models.RemoteLicense, error) {
	return c.license(ctx, actionCheck, key)
}

func (c *Client) license(ctx context.Context, action, key string) (*models.RemoteLicense, error) {
	var resp licenseResponse
	if err := c.call(ctx, action, key, nil, &resp); err != nil {
		return nil, err
	}
	return &models.RemoteLicense{
		Success:       resp.Success,
		Status:        resp.License,
		Error:         resp.Error,
		Expires:       resp.Expires,
		ItemName:      resp.ItemName,
		CustomerEmail: resp.CustomerEmail,
		SiteCount:     resp.SiteCount,
		LicenseLimit:  resp.LicenseLimit,
	}, nil
}

// call posts an edd_action to the store and decodes the JSON answer into out.
func (c *Client) call(ctx context.Context, action, key string, extra url.Values, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, "edd."+action, trace.WithAttributes(
		attribute.String("edd.action", action),
		attribute.String("edd.item_name", c.cfg.ItemName),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	form := url.Values{}
	for k, vs := range extra {
		form[k] = vs
	}
	form.Set("edd_action", action)
	form.Set("license", key)
	form.Set("item_name", c.cfg.ItemName)
	form.Set("url", c.cfg.SiteURL)

	c.mu.RLock()
	storeURL := c.storeURL
	c.mu.RUnlock()

	err = c.breaker.Execute(func() error {
		return c.post(ctx, storeURL, form, out)
	})
	span.SetAttributes(attribute.String("edd.circuit", c.breaker.State().String()))

	switch {
	case err == nil:
		return nil
	case errors.Is(err, circuit.ErrOpen):
		return dErrors.Wrap(err, dErrors.CodeServiceUnavailable, "licensing service circuit open")
	case errors.Is(err, context.DeadlineExceeded) || isTimeout(err):
		return dErrors.Wrap(err, dErrors.CodeTimeout, "licensing service timed out")
	default:
		return dErrors.Wrap(err, dErrors.CodeServiceUnavailable, "licensing service unavailable")
	}
}

func (c *Client) post(ctx context.Context, storeURL string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, storeURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", form.Get("edd_action"), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("store responded %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

func isUpdateAvailable(current, latest string) (bool, error) {
	currentSemver, ok := normalizeSemver(current)
	if !ok {
		return false, fmt.Errorf("invalid installed version: %s", current)
	}
	latestSemver, ok := normalizeSemver(latest)
	if !ok {
		return false, fmt.Errorf("invalid store version: %s", latest)
	}
	return semver.Compare(latestSemver, currentSemver) > 0, nil
}

func normalizeSemver(raw string) (string, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", false
	}
	if !strings.HasPrefix(value, "v") {
		value = "v" + value
	}
	normalized := semver.Canonical(value)
	if normalized == "" {
		return "", false
	}
	return normalized, true
}

package client

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"bkap/internal/notice/models"
)

// Effects plays the visual transition of a dismissed notice.
type Effects interface {
	FadeOut(noticeID string)
	Collapse(noticeID string)
}

type noEffects struct{}

func (noEffects) FadeOut(string)  {}
func (noEffects) Collapse(string) {}

type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithHeader adds a header to every dismissal request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// WithEffects sets the transition played before a notice is removed.
func WithEffects(e Effects) Option {
	return func(c *Client) {
		if e != nil {
			c.effects = e
		}
	}
}

// WithLogger sets the logger for dismissal request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// Client posts dismissal payloads to the admin-ajax endpoint.
type Client struct {
	ajaxURL string
	http    *http.Client
	headers http.Header
	effects Effects
	logger  *slog.Logger
	wg      sync.WaitGroup
}

// New creates a client posting to ajaxURL.
func New(ajaxURL string, opts ...Option) *Client {
	c := &Client{
		ajaxURL: ajaxURL,
		http:    http.DefaultClient,
		headers: http.Header{},
		effects: noEffects{},
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Bind attaches the dismiss handler to every recognised notice on the page
// that has a dismiss control. Existing handlers are unbound first, so binding
// the same page again never doubles submissions.
func (c *Client) Bind(p *Page) {
	for _, n := range p.Notices() {
		marker, ok := n.Marker()
		if !ok || !n.HasDismissControl {
			continue
		}
		payload, _ := models.PayloadFor(marker)
		p.Off(n.ID)
		p.On(n.ID, func(p *Page, n Notice) {
			c.effects.FadeOut(n.ID)
			c.effects.Collapse(n.ID)
			p.Remove(n.ID)
			c.PostAsync(payload)
		})
	}
}

// PostAsync sends payload in the background and returns immediately. The
// response is discarded and failures are only logged.
func (c *Client) PostAsync(payload models.Payload) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.post(payload)
	}()
}

// Wait blocks until every background post has finished.
func (c *Client) Wait() {
	c.wg.Wait()
}

func (c *Client) post(payload models.Payload) {
	ctx := context.Background()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ajaxURL, strings.NewReader(payload.Values().Encode()))
	if err != nil {
		c.logger.DebugContext(ctx, "dismissal request not built", "error", err)
		return
	}
	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "dismissal request failed", "action", payload.Action, "error", err)
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

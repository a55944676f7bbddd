package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// Config controls collector behavior.
type Config struct {
	UserAgent    string
	Timeout      time.Duration
	ProbeTimeout time.Duration
	// Transport overrides the underlying HTTP transport; tests use it to
	// route arbitrary hostnames at a local server.
	Transport http.RoundTripper
}

// Client implements Fetcher using the Colly collector.
type Client struct {
	cfg           Config
	baseCollector *colly.Collector
	logger        *zap.Logger
}

// NewClient builds a Client. A nil logger falls back to zap.NewNop.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.ProbeTimeout == 0 {
		cfg.ProbeTimeout = 8 * time.Second
	}
	// colly v2.1.0's Async option sets Async=true regardless of its
	// argument; the collector is synchronous by default, which is what we
	// want, so no option is passed.
	c := colly.NewCollector()
	c.IgnoreRobotsTxt = true
	if cfg.Transport != nil {
		// Clones share the backend, so the transport applies per request.
		c.WithTransport(cfg.Transport)
	}
	return &Client{cfg: cfg, baseCollector: c, logger: logger}
}

// Get executes a single HTTP GET using Colly.
func (c *Client) Get(ctx context.Context, url string) (Page, error) {
	var (
		page       Page
		statusCode int
		fetchErr   error
	)
	collector := c.newCollector(c.cfg.Timeout)
	collector.OnResponse(func(r *colly.Response) {
		page = Page{
			URL:        r.Request.URL.String(),
			StatusCode: r.StatusCode,
			Body:       append([]byte(nil), r.Body...),
		}
	})
	collector.OnError(func(r *colly.Response, err error) {
		if r != nil {
			statusCode = r.StatusCode
		}
		fetchErr = err
	})

	// Colly reports non-2xx responses through both OnError and the Visit
	// return value, so the status captured in the callback takes priority.
	if err := runVisit(ctx, func() error { return collector.Visit(url) }); err != nil {
		if statusCode > 0 {
			return Page{}, &StatusError{Code: statusCode}
		}
		if fetchErr != nil {
			return Page{}, fmt.Errorf("fetch %s: %w", url, fetchErr)
		}
		return Page{}, err
	}
	if page.StatusCode < 200 || page.StatusCode > 299 {
		return Page{}, &StatusError{Code: page.StatusCode}
	}
	return page, nil
}

// Probe issues a HEAD request and reports whether the URL answers 2xx.
func (c *Client) Probe(ctx context.Context, url string) bool {
	var (
		statusCode int
		fetchErr   error
	)
	collector := c.newCollector(c.cfg.ProbeTimeout)
	collector.OnResponse(func(r *colly.Response) {
		statusCode = r.StatusCode
	})
	collector.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	if err := runVisit(ctx, func() error { return collector.Head(url) }); err != nil {
		c.logger.Debug("probe failed", zap.String("url", url), zap.Error(err))
		return false
	}
	if fetchErr != nil {
		return false
	}
	return statusCode >= 200 && statusCode <= 299
}

func (c *Client) newCollector(timeout time.Duration) *colly.Collector {
	collector := c.baseCollector.Clone()
	if c.cfg.UserAgent != "" {
		collector.UserAgent = c.cfg.UserAgent
	}
	collector.IgnoreRobotsTxt = true
	collector.SetRequestTimeout(timeout)
	return collector
}

// runVisit runs a colly visit in a goroutine so the context can cut the
// wait short. The underlying request still runs to its own timeout.
func runVisit(ctx context.Context, visit func() error) error {
	done := make(chan error, 1)
	go func() {
		done <- visit()
	}()
	select {
	case <-ctx.Done():
		return fmt.Errorf("fetch canceled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("visit failed: %w", err)
		}
		return nil
	}
}

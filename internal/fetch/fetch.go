// Package fetch provides the HTTP capabilities the pipeline consumes:
// fetching a page body and probing a URL for existence.
package fetch

import (
	"context"
	"fmt"
)

// Page is the result of a successful fetch.
type Page struct {
	// URL is the final URL after redirects.
	URL string
	// StatusCode is the response status.
	StatusCode int
	// Body holds the raw response bytes.
	Body []byte
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// Fetcher is the capability interface consumed by resolver, locator and
// matcher. Implementations must follow redirects and apply short timeouts.
type Fetcher interface {
	// Get fetches url and returns the page. Non-2xx responses return a
	// *StatusError; transport failures return the underlying error.
	Get(ctx context.Context, url string) (Page, error)
	// Probe reports whether url answers a lightweight HEAD-equivalent
	// request with a 200-class status.
	Probe(ctx context.Context, url string) bool
}

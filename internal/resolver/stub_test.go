package resolver

import (
	"context"
	"errors"
	"net/http"

	"github.com/jobscout/jobscout/internal/fetch"
)

// stubFetcher serves canned pages keyed by URL. URLs without an entry act
// like dead hosts.
type stubFetcher struct {
	pages   map[string]fetch.Page
	errs    map[string]error
	probeOK map[string]bool
	gets    []string
	probes  []string
}

var statusErr404 = fetch.StatusError{Code: http.StatusNotFound}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{
		pages:   make(map[string]fetch.Page),
		errs:    make(map[string]error),
		probeOK: make(map[string]bool),
	}
}

func (f *stubFetcher) addPage(url, body string) {
	f.pages[url] = fetch.Page{URL: url, StatusCode: http.StatusOK, Body: []byte(body)}
}

func (f *stubFetcher) Get(_ context.Context, url string) (fetch.Page, error) {
	f.gets = append(f.gets, url)
	if err, ok := f.errs[url]; ok {
		return fetch.Page{}, err
	}
	if page, ok := f.pages[url]; ok {
		return page, nil
	}
	return fetch.Page{}, errors.New("connection refused")
}

func (f *stubFetcher) Probe(_ context.Context, url string) bool {
	f.probes = append(f.probes, url)
	return f.probeOK[url]
}

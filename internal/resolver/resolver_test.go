package resolver

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jobscout/jobscout/internal/normalize"
)

func newTestResolver(f *stubFetcher, cfg Config) *Resolver {
	norm := normalize.New(nil)
	verifier := NewVerifier(f, true, nil)
	return New(cfg, f, verifier, norm, nil)
}

func TestCandidateDomainsOrderAndDedup(t *testing.T) {
	t.Parallel()

	r := newTestResolver(newStubFetcher(), Config{})
	domains := r.candidateDomains("Acme Corp")

	// "corp" is a suffix word, so the cleaned variant is plain "acme".
	require.Equal(t, "acme.com", domains[0])
	require.Equal(t, "acme.co.uk", domains[1])
	require.Contains(t, domains, "acmecorp.com")
	require.Contains(t, domains, "acme-corp.co.uk")

	seen := make(map[string]int)
	for _, d := range domains {
		seen[d]++
		require.Equal(t, 1, seen[d], "duplicate candidate %s", d)
	}
}

func TestCandidateDomainsRejectUnusableVariants(t *testing.T) {
	t.Parallel()

	r := newTestResolver(newStubFetcher(), Config{})
	for _, d := range r.candidateDomains("O'Brien & Co.") {
		// Raw variants carrying punctuation cannot form hostnames and
		// must be dropped, leaving only cleaned ones.
		require.NotContains(t, d, "'")
		require.NotContains(t, d, "&")
	}
}

func TestResolveByDirectGuess(t *testing.T) {
	t.Parallel()

	f := newStubFetcher()
	f.probeOK["https://acme.com"] = true
	f.addPage("https://acme.com", `<html><body><h1>Acme</h1></body></html>`)

	r := newTestResolver(f, Config{})
	site, ok := r.Resolve(context.Background(), "Acme Corp")
	require.True(t, ok)
	require.Equal(t, "https://acme.com", site)
	// First verified probe wins; no search fallback issued.
	for _, g := range f.gets {
		require.NotContains(t, g, "duckduckgo")
	}
}

func TestResolveGuessSkipsUnverifiedCandidate(t *testing.T) {
	t.Parallel()

	f := newStubFetcher()
	// acmewidgets.com exists but belongs to someone else; the .co.uk
	// candidate is the real company.
	f.probeOK["https://acmewidgets.com"] = true
	f.addPage("https://acmewidgets.com", `<html><body>squatter parking page</body></html>`)
	f.probeOK["https://acmewidgets.co.uk"] = true
	f.addPage("https://acmewidgets.co.uk", `<html><body>Acme Widgets of Sheffield</body></html>`)

	r := newTestResolver(f, Config{})
	site, ok := r.Resolve(context.Background(), "Acme Widgets")
	require.True(t, ok)
	require.Equal(t, "https://acmewidgets.co.uk", site)
}

func searchPage(hrefs ...string) string {
	body := "<html><body>"
	for _, h := range hrefs {
		body += `<a class="result__a" href="` + h + `">result</a>`
	}
	return body + "</body></html>"
}

func TestResolveBySearchFallback(t *testing.T) {
	t.Parallel()

	f := newStubFetcher()
	cfg := Config{SearchBaseURL: "https://search.test/html/"}
	searchURL := cfg.SearchBaseURL + "?q=" + url.QueryEscape("Obscure Widgets official website UK")

	wrapped := "//duckduckgo.test/l/?uddg=" + url.QueryEscape("https://obscurewidgets.example/")
	f.addPage(searchURL, searchPage(
		"https://www.linkedin.com/company/obscure-widgets",
		wrapped,
	))
	f.addPage("https://obscurewidgets.example/", `<html><body>Obscure Widgets - official site</body></html>`)

	r := newTestResolver(f, cfg)
	r.cfg.SkipDomains = []string{"linkedin.com"}

	site, ok := r.resolveBySearch(context.Background(), "Obscure Widgets")
	require.True(t, ok)
	require.Equal(t, "https://obscurewidgets.example/", site)
}

func TestResolveBySearchHonorsResultCap(t *testing.T) {
	t.Parallel()

	f := newStubFetcher()
	cfg := Config{SearchBaseURL: "https://search.test/html/", SearchResults: 2}
	searchURL := cfg.SearchBaseURL + "?q=" + url.QueryEscape("Acme official website UK")

	f.addPage(searchURL, searchPage(
		"https://first.example/",
		"https://second.example/",
		"https://third.example/",
	))
	// Only the third result would verify, but it is beyond the cap.
	f.addPage("https://third.example/", `<html><body>Acme</body></html>`)
	f.errs["https://first.example/"] = &statusErr404
	f.errs["https://second.example/"] = &statusErr404

	r := newTestResolver(f, cfg)
	_, ok := r.resolveBySearch(context.Background(), "Acme")
	require.False(t, ok)
}

func TestResolveByReferenceFallback(t *testing.T) {
	t.Parallel()

	f := newStubFetcher()
	cfg := Config{ReferenceBaseURL: "https://ref.test/wiki/"}
	article := cfg.ReferenceBaseURL + "Acme_Widgets"

	f.addPage(article, `<html><body>
<a class="external" href="https://twitter.com/acmewidgets">social</a>
<a class="external" href="https://acmewidgets.example.com">official</a>
</body></html>`)
	f.addPage("https://acmewidgets.example.com", `<html><body>Acme Widgets</body></html>`)

	r := newTestResolver(f, cfg)
	r.cfg.SkipDomains = []string{"twitter.com"}

	site, ok := r.resolveByReference(context.Background(), "Acme Widgets")
	require.True(t, ok)
	require.Equal(t, "https://acmewidgets.example.com", site)
}

func TestResolveExhaustedReturnsAbsent(t *testing.T) {
	t.Parallel()

	f := newStubFetcher()
	r := newTestResolver(f, Config{
		SearchBaseURL:    "https://search.test/html/",
		ReferenceBaseURL: "https://ref.test/wiki/",
	})
	// No probes answer, search and reference endpoints are dead: the
	// resolver reports absent rather than erroring.
	site, ok := r.Resolve(context.Background(), "Nonexistent Widgets")
	require.False(t, ok)
	require.Empty(t, site)
}

func TestUnwrapRedirect(t *testing.T) {
	t.Parallel()

	direct := unwrapRedirect("https://example.com/page")
	require.Equal(t, "https://example.com/page", direct)

	wrapped := unwrapRedirect("//duckduckgo.test/l/?uddg=" + url.QueryEscape("https://example.com/"))
	require.Equal(t, "https://example.com/", wrapped)

	require.Empty(t, unwrapRedirect("javascript:void(0)"))
	require.Empty(t, unwrapRedirect("//duckduckgo.test/l/?uddg="+url.QueryEscape("javascript:alert(1)")))
}

func TestSkippableMatchesSubdomains(t *testing.T) {
	t.Parallel()

	r := newTestResolver(newStubFetcher(), Config{
		SkipDomains: []string{"linkedin.com", "wikipedia.org"},
	})
	require.True(t, r.skippable("linkedin.com"))
	require.True(t, r.skippable("uk.linkedin.com"))
	require.True(t, r.skippable("www.linkedin.com"))
	require.True(t, r.skippable("en.wikipedia.org"))
	require.False(t, r.skippable("notlinkedin.com"))
	require.False(t, r.skippable("acme.com"))
}

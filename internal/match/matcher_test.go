package match

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jobscout/jobscout/internal/fetch"
)

var testKeywords = []string{
	"devops engineer",
	"senior devops engineer",
	"cloud engineer",
	"senior cloud engineer",
	"infrastructure engineer",
	"senior infrastructure engineer",
}

type stubFetcher struct {
	pages map[string]fetch.Page
}

func (f *stubFetcher) Get(_ context.Context, url string) (fetch.Page, error) {
	if page, ok := f.pages[url]; ok {
		return page, nil
	}
	return fetch.Page{}, errors.New("connection refused")
}

func (f *stubFetcher) Probe(context.Context, string) bool { return false }

func scanBody(t *testing.T, body string) []string {
	t.Helper()
	f := &stubFetcher{pages: map[string]fetch.Page{
		"https://acme.com/careers": {
			URL:        "https://acme.com/careers",
			StatusCode: http.StatusOK,
			Body:       []byte(body),
		},
	}}
	m := New(testKeywords, f, nil)
	return m.Scan(context.Background(), "https://acme.com/careers")
}

func TestScanFindsHeadingPosting(t *testing.T) {
	t.Parallel()

	got := scanBody(t, `<html><body>
<h3>Senior DevOps Engineer</h3>
<p>Join our platform team.</p>
</body></html>`)
	// "devops engineer" is a substring of the heading too, so both match.
	require.Equal(t, []string{"devops engineer", "senior devops engineer"}, got)
}

func TestScanListItemPostings(t *testing.T) {
	t.Parallel()

	got := scanBody(t, `<html><body><ul>
<li>Cloud Engineer - Manchester</li>
<li>Office Manager</li>
</ul></body></html>`)
	require.Equal(t, []string{"cloud engineer"}, got)
}

func TestScanIgnoresFooterOnlyMention(t *testing.T) {
	t.Parallel()

	// The only mention is inside a nav anchor; the wrapping div has no
	// direct text, so there is no block-level posting to match.
	got := scanBody(t, `<html><body>
<h1>Our openings</h1>
<p>Nothing right now.</p>
<div class="footer"><a href="/jobs/cloud">cloud engineer</a></div>
</body></html>`)
	require.Empty(t, got)
}

func TestScanDistinctResults(t *testing.T) {
	t.Parallel()

	got := scanBody(t, `<html><body>
<h3>Infrastructure Engineer</h3>
<h3>Infrastructure Engineer (Edinburgh)</h3>
</body></html>`)
	require.Equal(t, []string{"infrastructure engineer"}, got)
}

func TestScanCaseInsensitive(t *testing.T) {
	t.Parallel()

	got := scanBody(t, `<html><body><p>SENIOR CLOUD ENGINEER wanted</p></body></html>`)
	require.Contains(t, got, "senior cloud engineer")
	require.Contains(t, got, "cloud engineer")
}

func TestScanFetchFailureYieldsEmpty(t *testing.T) {
	t.Parallel()

	m := New(testKeywords, &stubFetcher{pages: map[string]fetch.Page{}}, nil)
	require.Empty(t, m.Scan(context.Background(), "https://dead.example/careers"))
}

// Package match scans career pages for configured job-title keywords.
package match

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/jobscout/jobscout/internal/fetch"
	"github.com/jobscout/jobscout/internal/htmltext"
)

// blockSelector covers the block-level elements a real job posting lives
// in. A keyword only counts when some block's own direct text carries it,
// which filters out footer/navigation boilerplate nested in wrappers.
const blockSelector = "h1, h2, h3, h4, h5, h6, p, li, div"

// Matcher scans pages for keyword phrases.
type Matcher struct {
	keywords []string
	fetcher  fetch.Fetcher
	logger   *zap.Logger
}

// New builds a Matcher over the configured keyword phrases.
func New(keywords []string, fetcher fetch.Fetcher, logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{keywords: keywords, fetcher: fetcher, logger: logger}
}

// Scan fetches the career page and returns the distinct keywords found,
// in configured order. A keyword matches only when it appears in the
// page's visible text and at least one block-level element's text
// contains it. Fetch failure yields an empty result, not an error.
func (m *Matcher) Scan(ctx context.Context, careerURL string) []string {
	page, err := m.fetcher.Get(ctx, careerURL)
	if err != nil {
		m.logger.Debug("career page fetch failed", zap.String("url", careerURL), zap.Error(err))
		return nil
	}
	doc, err := htmltext.Parse(page.Body)
	if err != nil {
		return nil
	}
	return m.scanDocument(doc)
}

func (m *Matcher) scanDocument(doc *goquery.Document) []string {
	text := strings.ToLower(htmltext.Visible(doc))

	var found []string
	for _, keyword := range m.keywords {
		kw := strings.ToLower(keyword)
		if !strings.Contains(text, kw) {
			continue
		}
		if hasBlockWith(doc, kw) {
			found = append(found, kw)
		}
	}
	return found
}

func hasBlockWith(doc *goquery.Document, keyword string) bool {
	match := false
	doc.Find(blockSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(ownText(s)), keyword) {
			match = true
			return false
		}
		return true
	})
	return match
}

// ownText returns only the element's direct text, excluding descendants,
// so a wrapper div does not match on behalf of a nested nav link.
func ownText(s *goquery.Selection) string {
	var b strings.Builder
	for _, node := range s.Nodes {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
		}
	}
	return b.String()
}

package resolver

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/htmltext"
)

// resolveBySearch queries the HTML search endpoint for the company's
// official website and verifies the ranked results in order, skipping
// known non-authoritative domains.
func (r *Resolver) resolveBySearch(ctx context.Context, companyName string) (string, bool) {
	query := companyName + " official website UK"
	searchURL := r.cfg.SearchBaseURL + "?q=" + url.QueryEscape(query)

	page, err := r.fetcher.Get(ctx, searchURL)
	if err != nil {
		r.logger.Debug("search fetch failed", zap.String("company", companyName), zap.Error(err))
		return "", false
	}
	doc, err := htmltext.Parse(page.Body)
	if err != nil {
		return "", false
	}

	var results []string
	doc.Find("a.result__a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		if result := unwrapRedirect(href); result != "" {
			results = append(results, result)
		}
	})
	if len(results) > r.cfg.SearchResults {
		results = results[:r.cfg.SearchResults]
	}

	for _, result := range results {
		host := hostOf(result)
		if host == "" || r.skippable(host) {
			continue
		}
		if r.verifier.Verify(ctx, result, companyName) {
			return result, true
		}
	}
	return "", false
}

// unwrapRedirect extracts the destination from the search engine's
// redirect wrapper (the uddg query parameter), falling back to the href
// itself when it is already a direct http(s) link.
func unwrapRedirect(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if dest := u.Query().Get("uddg"); dest != "" {
		if du, err := url.Parse(dest); err == nil && (du.Scheme == "http" || du.Scheme == "https") {
			return dest
		}
		return ""
	}
	if u.Scheme == "http" || u.Scheme == "https" {
		return href
	}
	return ""
}

package resolver

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/htmltext"
)

// referenceExtraTLDs widen the accepted endings for reference-sourced
// links beyond the guessing TLD set.
var referenceExtraTLDs = []string{".net", ".io"}

// resolveByReference loads the encyclopedia article for the company and
// scans its external links for the first acceptable, verifiable domain.
func (r *Resolver) resolveByReference(ctx context.Context, companyName string) (string, bool) {
	article := r.cfg.ReferenceBaseURL + url.PathEscape(strings.ReplaceAll(strings.TrimSpace(companyName), " ", "_"))

	page, err := r.fetcher.Get(ctx, article)
	if err != nil {
		r.logger.Debug("reference fetch failed", zap.String("company", companyName), zap.Error(err))
		return "", false
	}
	doc, err := htmltext.Parse(page.Body)
	if err != nil {
		return "", false
	}

	accepted := append(append([]string(nil), r.cfg.TLDs...), referenceExtraTLDs...)

	var found string
	doc.Find("a.external").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			return true
		}
		if strings.HasPrefix(href, "//") {
			href = "https:" + href
		}
		u, err := url.Parse(href)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return true
		}
		host := strings.ToLower(u.Hostname())
		if host == "" || r.skippable(host) {
			return true
		}
		if !hasAcceptedTLD(host, accepted) {
			return true
		}
		if r.verifier.Verify(ctx, href, companyName) {
			found = href
			return false
		}
		return true
	})
	return found, found != ""
}

func hasAcceptedTLD(host string, tlds []string) bool {
	for _, tld := range tlds {
		if strings.HasSuffix(host, tld) {
			return true
		}
	}
	return false
}

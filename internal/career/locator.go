// Package career discovers the pages on a company site that are likely to
// list open positions.
package career

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/fetch"
	"github.com/jobscout/jobscout/internal/htmltext"
)

// Config tunes career-page discovery. Zero values fall back to defaults.
type Config struct {
	// Indicators are substrings of an anchor's href or text that mark a
	// link as career-related.
	Indicators []string
	// ProbePaths are well-known relative paths checked after the anchor
	// scan.
	ProbePaths []string
	// MaxPages caps the returned URLs.
	MaxPages int
}

func (c *Config) applyDefaults() {
	if len(c.Indicators) == 0 {
		c.Indicators = []string{
			"careers", "career", "jobs", "job", "work-with-us", "join-us",
			"opportunities", "employment", "hiring", "vacancies", "positions",
		}
	}
	if len(c.ProbePaths) == 0 {
		c.ProbePaths = []string{"/careers", "/career", "/jobs", "/job-opportunities"}
	}
	if c.MaxPages <= 0 {
		c.MaxPages = 3
	}
}

// Locator finds candidate career pages on a resolved website.
type Locator struct {
	cfg     Config
	fetcher fetch.Fetcher
	logger  *zap.Logger
}

// New builds a Locator.
func New(cfg Config, fetcher fetch.Fetcher, logger *zap.Logger) *Locator {
	cfg.applyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Locator{cfg: cfg, fetcher: fetcher, logger: logger}
}

// Locate returns up to MaxPages career-page URLs: anchors whose href or
// text contains an indicator word first, then well-known path probes. A
// homepage fetch failure degrades to an empty list; only an unusable site
// URL is an error.
func (l *Locator) Locate(ctx context.Context, siteURL string) ([]string, error) {
	base, err := url.Parse(siteURL)
	if err != nil {
		return nil, fmt.Errorf("parse site url: %w", err)
	}

	var found []string
	seen := make(map[string]struct{})
	add := func(u string) {
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		found = append(found, u)
	}

	page, err := l.fetcher.Get(ctx, siteURL)
	if err != nil {
		l.logger.Debug("homepage fetch failed", zap.String("site", siteURL), zap.Error(err))
		return nil, nil
	}
	doc, err := htmltext.Parse(page.Body)
	if err != nil {
		return nil, nil
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if href == "" {
			return
		}
		hrefLower := strings.ToLower(href)
		text := strings.ToLower(s.Text())
		for _, indicator := range l.cfg.Indicators {
			if !strings.Contains(hrefLower, indicator) && !strings.Contains(text, indicator) {
				continue
			}
			ref, err := url.Parse(href)
			if err != nil {
				return
			}
			add(base.ResolveReference(ref).String())
			return
		}
	})

	for _, path := range l.cfg.ProbePaths {
		ref, err := url.Parse(path)
		if err != nil {
			continue
		}
		probe := base.ResolveReference(ref).String()
		if _, ok := seen[probe]; ok {
			continue
		}
		if l.fetcher.Probe(ctx, probe) {
			add(probe)
		}
	}

	if len(found) > l.cfg.MaxPages {
		found = found[:l.cfg.MaxPages]
	}
	return found, nil
}

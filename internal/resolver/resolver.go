// Package resolver maps company names to believed-official website URLs.
//
// Three strategies run in fixed priority order, short-circuiting on the
// first candidate that passes verification: direct domain guessing, a web
// search fallback, and an encyclopedic reference fallback. Every fetch
// failure inside a strategy means "this candidate failed", never a
// resolver-level error.
package resolver

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/fetch"
	"github.com/jobscout/jobscout/internal/normalize"
)

// Config tunes resolution heuristics. Zero values fall back to defaults.
type Config struct {
	// TLDs are the domain endings tried during direct guessing.
	TLDs []string
	// SkipDomains are non-authoritative hosts discarded from search and
	// reference results (social networks, registries, encyclopedias).
	SkipDomains []string
	// SearchResults caps how many ranked search hits are inspected.
	SearchResults int
	// SearchBaseURL is the HTML search endpoint; overridable for tests.
	SearchBaseURL string
	// ReferenceBaseURL is the encyclopedia article root; overridable for tests.
	ReferenceBaseURL string
}

func (c *Config) applyDefaults() {
	if len(c.TLDs) == 0 {
		c.TLDs = []string{".com", ".co.uk", ".uk", ".org"}
	}
	if c.SearchResults <= 0 {
		c.SearchResults = 5
	}
	if c.SearchBaseURL == "" {
		c.SearchBaseURL = "https://html.duckduckgo.com/html/"
	}
	if c.ReferenceBaseURL == "" {
		c.ReferenceBaseURL = "https://en.wikipedia.org/wiki/"
	}
}

// Resolver resolves company names to verified website URLs.
type Resolver struct {
	cfg      Config
	fetcher  fetch.Fetcher
	verifier *Verifier
	norm     *normalize.Normalizer
	logger   *zap.Logger
}

// New builds a Resolver.
func New(cfg Config, fetcher fetch.Fetcher, verifier *Verifier, norm *normalize.Normalizer, logger *zap.Logger) *Resolver {
	cfg.applyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		cfg:      cfg,
		fetcher:  fetcher,
		verifier: verifier,
		norm:     norm,
		logger:   logger,
	}
}

// Resolve returns the first verified website for the company, trying
// direct domain guesses, then search, then the reference fallback. The
// second return is false when every strategy exhausts.
func (r *Resolver) Resolve(ctx context.Context, companyName string) (string, bool) {
	if site, ok := r.resolveByGuessing(ctx, companyName); ok {
		r.logger.Debug("resolved by domain guess",
			zap.String("company", companyName), zap.String("site", site))
		return site, true
	}
	if site, ok := r.resolveBySearch(ctx, companyName); ok {
		r.logger.Debug("resolved by search",
			zap.String("company", companyName), zap.String("site", site))
		return site, true
	}
	if site, ok := r.resolveByReference(ctx, companyName); ok {
		r.logger.Debug("resolved by reference",
			zap.String("company", companyName), zap.String("site", site))
		return site, true
	}
	return "", false
}

// resolveByGuessing probes candidate domains built from name variants and
// accepts the first that exists and verifies. The scan order is
// deterministic: variants in fixed order, each against every TLD.
func (r *Resolver) resolveByGuessing(ctx context.Context, companyName string) (string, bool) {
	for _, domain := range r.candidateDomains(companyName) {
		candidate := "https://" + domain
		if !r.fetcher.Probe(ctx, candidate) {
			continue
		}
		if r.verifier.Verify(ctx, candidate, companyName) {
			return candidate, true
		}
	}
	return "", false
}

func (r *Resolver) candidateDomains(companyName string) []string {
	clean := r.norm.Clean(companyName)
	rawLower := strings.ToLower(strings.TrimSpace(companyName))

	variants := dedupe([]string{
		strings.ReplaceAll(clean, " ", ""),
		strings.ReplaceAll(clean, " ", "-"),
		strings.ReplaceAll(rawLower, " ", ""),
		strings.ReplaceAll(rawLower, " ", "-"),
		r.norm.Acronym(companyName),
	})

	var domains []string
	for _, v := range variants {
		if v == "" || !isDomainLabel(v) {
			continue
		}
		for _, tld := range r.cfg.TLDs {
			domains = append(domains, v+tld)
		}
	}
	return domains
}

// isDomainLabel rejects variants that cannot form a hostname, such as raw
// names still carrying punctuation.
func isDomainLabel(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return false
		}
	}
	return s != "" && !strings.HasPrefix(s, "-") && !strings.HasSuffix(s, "-")
}

// skippable reports whether the host belongs to a known non-authoritative
// domain (exact or subdomain match).
func (r *Resolver) skippable(host string) bool {
	host = strings.ToLower(strings.TrimPrefix(host, "www."))
	for _, d := range r.cfg.SkipDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

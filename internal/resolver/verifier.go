package resolver

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/fetch"
	"github.com/jobscout/jobscout/internal/htmltext"
)

// Verifier scores whether a fetched page plausibly belongs to a company.
type Verifier struct {
	fetcher fetch.Fetcher
	// assumeOnFetchFailure keeps the optimistic policy: a page we cannot
	// fetch is assumed to belong to the company. Recall over precision.
	assumeOnFetchFailure bool
	logger               *zap.Logger
}

// NewVerifier builds a Verifier.
func NewVerifier(fetcher fetch.Fetcher, assumeOnFetchFailure bool, logger *zap.Logger) *Verifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{
		fetcher:              fetcher,
		assumeOnFetchFailure: assumeOnFetchFailure,
		logger:               logger,
	}
}

// Verify fetches url and checks how many company-name tokens appear in the
// page's visible text. At least half the usable tokens must match. Non-2xx
// responses fail verification; transport failures follow the optimistic
// policy flag.
func (v *Verifier) Verify(ctx context.Context, url, companyName string) bool {
	page, err := v.fetcher.Get(ctx, url)
	if err != nil {
		var statusErr *fetch.StatusError
		if errors.As(err, &statusErr) {
			return false
		}
		v.logger.Debug("verification fetch failed",
			zap.String("url", url),
			zap.Bool("assumed", v.assumeOnFetchFailure),
			zap.Error(err))
		return v.assumeOnFetchFailure
	}

	doc, err := htmltext.Parse(page.Body)
	if err != nil {
		return v.assumeOnFetchFailure
	}
	text := strings.ToLower(htmltext.Visible(doc))

	var usable, hits int
	for _, tok := range strings.Fields(strings.ToLower(companyName)) {
		if len(tok) <= 2 {
			continue
		}
		usable++
		if strings.Contains(text, tok) {
			hits++
		}
	}
	if usable == 0 {
		return true
	}
	return hits*2 >= usable
}

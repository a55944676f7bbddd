// Package batch drives the per-company pipeline across one bounded run:
// resolve website, locate career pages, scan for job keywords, record the
// outcome, alert, checkpoint.
package batch

import (
	"context"
	"crypto/rand"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/ledger"
	"github.com/jobscout/jobscout/internal/metrics"
	"github.com/jobscout/jobscout/internal/notify"
)

// Resolver maps a company name to a verified website URL.
type Resolver interface {
	Resolve(ctx context.Context, companyName string) (string, bool)
}

// Locator finds candidate career pages on a resolved site.
type Locator interface {
	Locate(ctx context.Context, siteURL string) ([]string, error)
}

// Matcher scans a career page for configured job keywords.
type Matcher interface {
	Scan(ctx context.Context, careerURL string) []string
}

// Store persists the outcome ledger between runs. Load should return a
// usable empty ledger alongside any error; the runner starts empty rather
// than abort when the snapshot is unreadable.
type Store interface {
	Load(maxAttempts int) (*ledger.Ledger, error)
	Save(l *ledger.Ledger) error
}

// Source supplies the ordered company-name list.
type Source func() ([]string, error)

// Config bounds one batch.
type Config struct {
	MaxCompanies int
	MaxAttempts  int
	DelayMin     time.Duration
	DelayMax     time.Duration
}

// CompanyResult captures one successful company.
type CompanyResult struct {
	Company     string    `json:"company"`
	Website     string    `json:"website"`
	CareerPages []string  `json:"career_pages"`
	FoundJobs   []string  `json:"found_jobs"`
	Timestamp   time.Time `json:"timestamp"`
}

// Summary aggregates a finished batch.
type Summary struct {
	RunID     uuid.UUID       `json:"run_id"`
	Processed int             `json:"processed"`
	Results   []CompanyResult `json:"results"`
	Reset     bool            `json:"reset"`
}

// Runner orchestrates batches. Companies are processed strictly
// sequentially with a randomized politeness delay in between; the ledger
// is saved after every company so a crash loses at most the in-flight one.
// Runs on the same Runner are serialized: the store is a single-writer
// resource, and an overlapping run would clobber the earlier run's saves
// with its own stale load.
type Runner struct {
	cfg      Config
	resolver Resolver
	locator  Locator
	matcher  Matcher
	store    Store
	source   Source
	notifier notify.Notifier
	logger   *zap.Logger

	runMu sync.Mutex

	// test seams
	pause func(ctx context.Context, d time.Duration)
	now   func() time.Time
}

// New constructs a Runner.
func New(
	cfg Config,
	resolver Resolver,
	locator Locator,
	matcher Matcher,
	store Store,
	source Source,
	notifier notify.Notifier,
	logger *zap.Logger,
) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxCompanies <= 0 {
		cfg.MaxCompanies = 10
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = ledger.DefaultMaxAttempts
	}
	return &Runner{
		cfg:      cfg,
		resolver: resolver,
		locator:  locator,
		matcher:  matcher,
		store:    store,
		source:   source,
		notifier: notifier,
		logger:   logger,
		pause:    timerPause,
		now:      time.Now,
	}
}

// Run executes one bounded batch and returns its summary. The only fatal
// error is an unreadable input source; everything else degrades to a
// recorded per-company failure.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	r.runMu.Lock()
	defer r.runMu.Unlock()

	summary := Summary{RunID: uuid.New()}
	log := r.logger.With(zap.String("run_id", summary.RunID.String()))

	led, err := r.store.Load(r.cfg.MaxAttempts)
	if err != nil {
		// Start empty: favor reprocessing over silent data loss.
		log.Warn("ledger load failed, starting empty", zap.Error(err))
	}
	if led == nil {
		led = ledger.New(r.cfg.MaxAttempts)
	}

	names, err := r.source()
	if err != nil {
		log.Error("input source unavailable", zap.Error(err))
		r.send(ctx, notify.FormatFatal(err))
		return summary, err
	}

	eligible := led.Eligible(names)
	if len(eligible) == 0 && led.ResetIfExhausted(names) {
		summary.Reset = true
		log.Info("all companies processed, outcome set cleared")
		eligible = led.Eligible(names)
	}
	if len(eligible) > r.cfg.MaxCompanies {
		eligible = eligible[:r.cfg.MaxCompanies]
	}
	metrics.ObserveBatch(len(eligible))
	log.Info("batch starting",
		zap.Int("eligible", len(eligible)),
		zap.Int("known", len(names)))

	for i, name := range eligible {
		if ctx.Err() != nil {
			log.Warn("batch interrupted", zap.Int("processed", summary.Processed))
			return summary, ctx.Err()
		}

		result := r.processCompany(ctx, name, led, log)
		summary.Processed++
		if result != nil {
			summary.Results = append(summary.Results, *result)
		}

		if err := r.store.Save(led); err != nil {
			// The in-memory ledger still reflects the attempt;
			// durability for this company is not guaranteed.
			log.Error("ledger save failed", zap.String("company", name), zap.Error(err))
		}

		if i < len(eligible)-1 {
			r.pause(ctx, r.delay())
		}
	}

	log.Info("batch complete",
		zap.Int("processed", summary.Processed),
		zap.Int("matched", len(summary.Results)))

	if len(summary.Results) > 0 {
		companies := make([]string, 0, len(summary.Results))
		for _, res := range summary.Results {
			companies = append(companies, res.Company)
		}
		r.send(ctx, notify.FormatSummary(summary.Processed, companies))
	}
	return summary, nil
}

// processCompany walks one company through the pipeline and records its
// outcome. A non-nil result means the company succeeded.
func (r *Runner) processCompany(ctx context.Context, name string, led *ledger.Ledger, log *zap.Logger) *CompanyResult {
	key := ledger.Key(name)
	log = log.With(zap.String("company", name))
	log.Info("processing company")

	website, ok := r.resolver.Resolve(ctx, name)
	if !ok {
		log.Warn("no website found")
		led.RecordFailure(key, ledger.ReasonNoWebsite, nil)
		metrics.ObserveOutcome(string(ledger.ReasonNoWebsite))
		return nil
	}
	log.Info("website resolved", zap.String("website", website))

	pages, err := r.locator.Locate(ctx, website)
	if err != nil {
		log.Warn("career page discovery failed", zap.Error(err))
		led.RecordFailure(key, ledger.ReasonError, err)
		metrics.ObserveOutcome(string(ledger.ReasonError))
		return nil
	}
	if len(pages) == 0 {
		log.Warn("no career pages found")
		led.RecordFailure(key, ledger.ReasonNoCareerPages, nil)
		metrics.ObserveOutcome(string(ledger.ReasonNoCareerPages))
		return nil
	}

	var jobs []string
	seen := make(map[string]struct{})
	for _, page := range pages {
		for _, kw := range r.matcher.Scan(ctx, page) {
			if _, ok := seen[kw]; ok {
				continue
			}
			seen[kw] = struct{}{}
			jobs = append(jobs, kw)
		}
	}
	if len(jobs) == 0 {
		log.Info("no matching openings")
		led.RecordFailure(key, ledger.ReasonNoJobs, nil)
		metrics.ObserveOutcome(string(ledger.ReasonNoJobs))
		return nil
	}

	led.RecordSuccess(key)
	metrics.ObserveOutcome("succeeded")
	metrics.ObserveMatches(len(jobs))
	log.Info("openings found", zap.Strings("jobs", jobs))

	result := &CompanyResult{
		Company:     name,
		Website:     website,
		CareerPages: pages,
		FoundJobs:   jobs,
		Timestamp:   r.now(),
	}
	r.send(ctx, notify.FormatSuccess(name, website, jobs, pages, result.Timestamp))
	return result
}

// send delivers a notification best-effort.
func (r *Runner) send(ctx context.Context, text string) {
	if r.notifier == nil {
		return
	}
	if err := r.notifier.Notify(ctx, text); err != nil {
		r.logger.Error("notification failed", zap.Error(err))
	}
}

// delay picks a uniform duration inside the politeness band.
func (r *Runner) delay() time.Duration {
	lo, hi := r.cfg.DelayMin, r.cfg.DelayMax
	if hi <= lo {
		return lo
	}
	span := big.NewInt(int64(hi - lo))
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return lo
	}
	return lo + time.Duration(n.Int64())
}

func timerPause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

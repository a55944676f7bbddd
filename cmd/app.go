package cmd

import (
	"context"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/batch"
	"github.com/jobscout/jobscout/internal/career"
	"github.com/jobscout/jobscout/internal/config"
	"github.com/jobscout/jobscout/internal/fetch"
	"github.com/jobscout/jobscout/internal/ledger"
	"github.com/jobscout/jobscout/internal/match"
	"github.com/jobscout/jobscout/internal/normalize"
	"github.com/jobscout/jobscout/internal/notify"
	"github.com/jobscout/jobscout/internal/resolver"
	"github.com/jobscout/jobscout/internal/source"
)

// app bundles the wired service graph shared by the subcommands.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	store  *ledger.FileStore
	runner *batch.Runner
}

type appKeyType struct{}

var appKey appKeyType

func withApp(ctx context.Context, a *app) context.Context {
	return context.WithValue(ctx, appKey, a)
}

func appFrom(ctx context.Context) (*app, bool) {
	a, ok := ctx.Value(appKey).(*app)
	return a, ok && a != nil
}

// newApp builds the full pipeline from configuration. It is a variable so
// tests can substitute a stub graph.
var newApp = func(cfgPath string) (*app, error) {
	cfg, logger, err := loadConfigAndLogger(cfgPath)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)

	fetcher := fetch.NewClient(fetch.Config{
		UserAgent:    cfg.HTTP.UserAgent,
		Timeout:      cfg.FetchTimeout(),
		ProbeTimeout: cfg.ProbeTimeout(),
	}, logger)

	norm := normalize.New(cfg.Normalize.Suffixes)
	verifier := resolver.NewVerifier(fetcher, cfg.Resolver.AssumeOnFetchFailure, logger)
	res := resolver.New(resolver.Config{
		TLDs:          cfg.Resolver.TLDs,
		SkipDomains:   cfg.Resolver.SkipDomains,
		SearchResults: cfg.Resolver.SearchResults,
	}, fetcher, verifier, norm, logger)

	locator := career.New(career.Config{
		Indicators: cfg.Career.Indicators,
		ProbePaths: cfg.Career.ProbePaths,
		MaxPages:   cfg.Career.MaxPages,
	}, fetcher, logger)

	matcher := match.New(cfg.Match.Keywords, fetcher, logger)

	store := ledger.NewFileStore(cfg.Ledger.Path)

	var notifier notify.Notifier = notify.NewLogNotifier(logger)
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		notifier = notify.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	}

	delayMin, delayMax := cfg.DelayBand()
	runner := batch.New(batch.Config{
		MaxCompanies: cfg.Batch.MaxCompanies,
		MaxAttempts:  cfg.Batch.MaxAttempts,
		DelayMin:     delayMin,
		DelayMax:     delayMax,
	}, res, locator, matcher, store,
		func() ([]string, error) { return source.Load(cfg.Input.Path) },
		notifier, logger)

	return &app{
		cfg:    cfg,
		logger: logger,
		store:  store,
		runner: runner,
	}, nil
}

// Close flushes buffered log entries.
func (a *app) Close() {
	_ = a.logger.Sync()
}

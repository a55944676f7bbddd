// Package config loads and validates jobscout configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Input     InputConfig     `mapstructure:"input"`
	Ledger    LedgerConfig    `mapstructure:"ledger"`
	Batch     BatchConfig     `mapstructure:"batch"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Resolver  ResolverConfig  `mapstructure:"resolver"`
	Normalize NormalizeConfig `mapstructure:"normalize"`
	Career    CareerConfig    `mapstructure:"career"`
	Match     MatchConfig     `mapstructure:"match"`
	Watch     WatchConfig     `mapstructure:"watch"`
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// InputConfig locates the company list.
type InputConfig struct {
	Path string `mapstructure:"path"`
}

// LedgerConfig locates the durable progress snapshot.
type LedgerConfig struct {
	Path string `mapstructure:"path"`
}

// BatchConfig governs orchestrator behavior.
type BatchConfig struct {
	MaxCompanies    int `mapstructure:"max_companies"`
	DelayMinSeconds int `mapstructure:"delay_min_seconds"`
	DelayMaxSeconds int `mapstructure:"delay_max_seconds"`
	MaxAttempts     int `mapstructure:"max_attempts"`
}

// HTTPConfig configures the fetch layer.
type HTTPConfig struct {
	TimeoutSeconds      int    `mapstructure:"timeout_seconds"`
	ProbeTimeoutSeconds int    `mapstructure:"probe_timeout_seconds"`
	UserAgent           string `mapstructure:"user_agent"`
}

// TelegramConfig holds notifier credentials. Both fields empty disables
// Telegram delivery; alerts then go to the log only.
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

// ResolverConfig tunes website resolution heuristics.
type ResolverConfig struct {
	// AssumeOnFetchFailure keeps the optimistic verification policy:
	// an unverifiable page is assumed to belong to the company.
	AssumeOnFetchFailure bool     `mapstructure:"assume_on_fetch_failure"`
	SearchResults        int      `mapstructure:"search_results"`
	TLDs                 []string `mapstructure:"tlds"`
	SkipDomains          []string `mapstructure:"skip_domains"`
}

// NormalizeConfig lists corporate suffix words stripped from names.
type NormalizeConfig struct {
	Suffixes []string `mapstructure:"suffixes"`
}

// CareerConfig tunes career-page discovery.
type CareerConfig struct {
	Indicators []string `mapstructure:"indicators"`
	ProbePaths []string `mapstructure:"probe_paths"`
	MaxPages   int      `mapstructure:"max_pages"`
}

// MatchConfig lists the job-title keywords scanned for.
type MatchConfig struct {
	Keywords []string `mapstructure:"keywords"`
}

// WatchConfig controls the recurring-batch mode.
type WatchConfig struct {
	Schedule string `mapstructure:"schedule"`
}

// ServerConfig controls the status HTTP server in watch mode.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// LoggingConfig toggles zap development features and the minimum level.
type LoggingConfig struct {
	Development bool   `mapstructure:"development"`
	Level       string `mapstructure:"level"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("JOBSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input.path", "companies.xlsx")
	v.SetDefault("ledger.path", "processed_companies.json")
	v.SetDefault("batch.max_companies", 10)
	v.SetDefault("batch.delay_min_seconds", 2)
	v.SetDefault("batch.delay_max_seconds", 5)
	v.SetDefault("batch.max_attempts", 3)
	v.SetDefault("http.timeout_seconds", 10)
	v.SetDefault("http.probe_timeout_seconds", 8)
	v.SetDefault("http.user_agent",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")
	v.SetDefault("resolver.assume_on_fetch_failure", true)
	v.SetDefault("resolver.search_results", 5)
	v.SetDefault("resolver.tlds", []string{".com", ".co.uk", ".uk", ".org"})
	v.SetDefault("resolver.skip_domains", []string{
		"linkedin.com", "facebook.com", "twitter.com", "x.com",
		"instagram.com", "youtube.com", "wikipedia.org", "wikimedia.org",
		"companieshouse.gov.uk", "find-and-update.company-information.service.gov.uk",
		"endole.co.uk", "dnb.com", "crunchbase.com", "glassdoor.com",
		"glassdoor.co.uk", "indeed.com", "indeed.co.uk",
	})
	v.SetDefault("normalize.suffixes", []string{
		"ltd", "limited", "plc", "inc", "corp", "corporation",
		"group", "holdings", "uk", "technology", "tech", "digital", "systems",
	})
	v.SetDefault("career.indicators", []string{
		"careers", "career", "jobs", "job", "work-with-us", "join-us",
		"opportunities", "employment", "hiring", "vacancies", "positions",
	})
	v.SetDefault("career.probe_paths", []string{
		"/careers", "/career", "/jobs", "/job-opportunities",
	})
	v.SetDefault("career.max_pages", 3)
	v.SetDefault("match.keywords", []string{
		"devops engineer",
		"senior devops engineer",
		"cloud engineer",
		"senior cloud engineer",
		"infrastructure engineer",
		"senior infrastructure engineer",
	})
	v.SetDefault("watch.schedule", "0 */6 * * *")
	v.SetDefault("server.port", 8799)
	v.SetDefault("logging.development", false)
	v.SetDefault("logging.level", "info")
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Input.Path) == "" {
		return fmt.Errorf("input.path must be set")
	}
	if strings.TrimSpace(c.Ledger.Path) == "" {
		return fmt.Errorf("ledger.path must be set")
	}
	if c.Batch.MaxCompanies <= 0 {
		return fmt.Errorf("batch.max_companies must be > 0")
	}
	if c.Batch.MaxAttempts <= 0 {
		return fmt.Errorf("batch.max_attempts must be > 0")
	}
	if c.Batch.DelayMinSeconds < 0 || c.Batch.DelayMaxSeconds < c.Batch.DelayMinSeconds {
		return fmt.Errorf("batch delay band is invalid")
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be > 0")
	}
	if c.HTTP.ProbeTimeoutSeconds <= 0 {
		return fmt.Errorf("http.probe_timeout_seconds must be > 0")
	}
	if len(c.Match.Keywords) == 0 {
		return fmt.Errorf("match.keywords must not be empty")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	return nil
}

// FetchTimeout converts the page timeout config into a duration.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// ProbeTimeout converts the probe timeout config into a duration.
func (c Config) ProbeTimeout() time.Duration {
	return time.Duration(c.HTTP.ProbeTimeoutSeconds) * time.Second
}

// DelayBand returns the inter-company politeness delay bounds.
func (c Config) DelayBand() (time.Duration, time.Duration) {
	return time.Duration(c.Batch.DelayMinSeconds) * time.Second,
		time.Duration(c.Batch.DelayMaxSeconds) * time.Second
}

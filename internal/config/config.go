// Package config loads and validates pipeline configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	HTTP       HTTPConfig       `mapstructure:"http"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Fetcher    FetcherConfig    `mapstructure:"fetcher"`
	Aggregator AggregatorConfig `mapstructure:"aggregator"`
	Scorer     ScorerConfig     `mapstructure:"scorer"`
	Keywords   []string         `mapstructure:"keywords"`
	Sources    SourcesConfig    `mapstructure:"sources"`
	Server     ServerConfig     `mapstructure:"server"`
	Report     ReportConfig     `mapstructure:"report"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// HTTPConfig configures per-request timeout and retry behavior.
type HTTPConfig struct {
	TimeoutSeconds   int    `mapstructure:"timeout_seconds"`
	RetryAttempts    int    `mapstructure:"retry_attempts"`
	RetryBaseDelayMs int    `mapstructure:"retry_base_delay_ms"`
	UserAgent        string `mapstructure:"user_agent"`
}

// RateLimitConfig governs the shared token bucket.
type RateLimitConfig struct {
	RequestsPerSecond int `mapstructure:"requests_per_second"`
}

// FetcherConfig bounds per-source fan-out.
type FetcherConfig struct {
	MaxConcurrentRequests int `mapstructure:"max_concurrent_requests"`
	PerSourceItemCap      int `mapstructure:"per_source_item_cap"`
}

// AggregatorConfig holds the cross-source merge policy.
type AggregatorConfig struct {
	// PartialOnCancel returns the merged partial result when cancellation
	// arrives after at least one source has fully completed.
	PartialOnCancel bool `mapstructure:"partial_on_cancel"`
}

// ScorerConfig bounds the relevance scorer.
type ScorerConfig struct {
	// MaxKeywords caps matcher size; scoring uses at most this many of the
	// configured keywords.
	MaxKeywords int `mapstructure:"max_keywords"`
	// Workers sizes the scoring pool; 0 means one per available CPU.
	Workers int `mapstructure:"workers"`
}

// SourcesConfig enumerates the configured content sources.
type SourcesConfig struct {
	HackerNews HackerNewsConfig `mapstructure:"hackernews"`
	Blogs      []BlogConfig     `mapstructure:"blogs"`
}

// HackerNewsConfig configures the Hacker News API source.
type HackerNewsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url"`
}

// BlogConfig configures one blog-index source.
type BlogConfig struct {
	Name         string `mapstructure:"name"`
	IndexURL     string `mapstructure:"index_url"`
	LinkSelector string `mapstructure:"link_selector"`
}

// ServerConfig controls the optional diagnostics HTTP listener.
type ServerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

// ReportConfig controls result rendering.
type ReportConfig struct {
	TopN int `mapstructure:"top_n"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FEEDRANK")
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
	v.SetDefault("http.timeout_seconds", 10)
	v.SetDefault("http.retry_attempts", 3)
	v.SetDefault("http.retry_base_delay_ms", 250)
	v.SetDefault("http.user_agent", "feedrank/0.1")
	v.SetDefault("rate_limit.requests_per_second", 10)
	v.SetDefault("fetcher.max_concurrent_requests", 8)
	v.SetDefault("fetcher.per_source_item_cap", 30)
	v.SetDefault("aggregator.partial_on_cancel", true)
	v.SetDefault("scorer.max_keywords", 20)
	v.SetDefault("scorer.workers", 0)
	v.SetDefault("sources.hackernews.enabled", true)
	v.SetDefault("sources.hackernews.base_url", "https://hacker-news.firebaseio.com/v0")
	v.SetDefault("server.enabled", false)
	v.SetDefault("server.addr", ":9090")
	v.SetDefault("report.top_n", 10)
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be > 0")
	}
	if c.HTTP.RetryAttempts < 1 {
		return fmt.Errorf("http.retry_attempts must be >= 1")
	}
	if c.HTTP.RetryBaseDelayMs <= 0 {
		return fmt.Errorf("http.retry_base_delay_ms must be > 0")
	}
	if c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("rate_limit.requests_per_second must be > 0")
	}
	if c.Fetcher.MaxConcurrentRequests <= 0 {
		return fmt.Errorf("fetcher.max_concurrent_requests must be > 0")
	}
	if c.Fetcher.PerSourceItemCap <= 0 {
		return fmt.Errorf("fetcher.per_source_item_cap must be > 0")
	}
	if c.Scorer.MaxKeywords <= 0 {
		return fmt.Errorf("scorer.max_keywords must be > 0")
	}
	if c.Scorer.Workers < 0 {
		return fmt.Errorf("scorer.workers must be >= 0")
	}
	if c.Report.TopN <= 0 {
		return fmt.Errorf("report.top_n must be > 0")
	}
	if len(c.Keywords) == 0 {
		return fmt.Errorf("keywords must not be empty")
	}
	seen := make(map[string]struct{}, len(c.Keywords))
	for _, kw := range c.Keywords {
		if kw == "" {
			return fmt.Errorf("keywords must not contain empty strings")
		}
		if _, dup := seen[kw]; dup {
			return fmt.Errorf("keywords must be distinct: %q repeated", kw)
		}
		seen[kw] = struct{}{}
	}
	for i, blog := range c.Sources.Blogs {
		if blog.Name == "" {
			return fmt.Errorf("sources.blogs[%d].name must be set", i)
		}
		if blog.IndexURL == "" {
			return fmt.Errorf("sources.blogs[%d].index_url must be set", i)
		}
	}
	if c.Server.Enabled && c.Server.Addr == "" {
		return fmt.Errorf("server.addr must be set when server is enabled")
	}
	return nil
}

// Timeout converts the HTTP timeout into a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// RetryBaseDelay converts the base backoff into a duration.
func (c Config) RetryBaseDelay() time.Duration {
	return time.Duration(c.HTTP.RetryBaseDelayMs) * time.Millisecond
}

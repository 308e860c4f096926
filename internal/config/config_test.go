package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			TimeoutSeconds:   10,
			RetryAttempts:    3,
			RetryBaseDelayMs: 250,
		},
		RateLimit:  RateLimitConfig{RequestsPerSecond: 10},
		Fetcher:    FetcherConfig{MaxConcurrentRequests: 8, PerSourceItemCap: 30},
		Scorer:     ScorerConfig{MaxKeywords: 20},
		Report:     ReportConfig{TopN: 10},
		Keywords:   []string{"rust", "async"},
		Aggregator: AggregatorConfig{PartialOnCancel: true},
	}
}

func TestValidate_OK(t *testing.T) {
	t.Parallel()
	require.NoError(t, validConfig().Validate())
}

func TestValidate_Rejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero timeout", func(c *Config) { c.HTTP.TimeoutSeconds = 0 }},
		{"zero attempts", func(c *Config) { c.HTTP.RetryAttempts = 0 }},
		{"zero base delay", func(c *Config) { c.HTTP.RetryBaseDelayMs = 0 }},
		{"zero rate", func(c *Config) { c.RateLimit.RequestsPerSecond = 0 }},
		{"zero concurrency", func(c *Config) { c.Fetcher.MaxConcurrentRequests = 0 }},
		{"zero item cap", func(c *Config) { c.Fetcher.PerSourceItemCap = 0 }},
		{"zero max keywords", func(c *Config) { c.Scorer.MaxKeywords = 0 }},
		{"negative workers", func(c *Config) { c.Scorer.Workers = -1 }},
		{"no keywords", func(c *Config) { c.Keywords = nil }},
		{"empty keyword", func(c *Config) { c.Keywords = []string{"rust", ""} }},
		{"duplicate keyword", func(c *Config) { c.Keywords = []string{"rust", "rust"} }},
		{"blog without name", func(c *Config) {
			c.Sources.Blogs = []BlogConfig{{IndexURL: "https://example.com"}}
		}},
		{"blog without url", func(c *Config) {
			c.Sources.Blogs = []BlogConfig{{Name: "blog"}}
		}},
		{"server enabled without addr", func(c *Config) {
			c.Server = ServerConfig{Enabled: true}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tc.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_FileAndDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
keywords:
  - rust
  - async
rate_limit:
  requests_per_second: 5
sources:
  hackernews:
    enabled: true
  blogs:
    - name: rustblog
      index_url: https://blog.rust-lang.org/
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 5, cfg.RateLimit.RequestsPerSecond)
	require.Equal(t, []string{"rust", "async"}, cfg.Keywords)
	require.Equal(t, 3, cfg.HTTP.RetryAttempts)
	require.Equal(t, 10*time.Second, cfg.Timeout())
	require.Equal(t, 250*time.Millisecond, cfg.RetryBaseDelay())
	require.True(t, cfg.Aggregator.PartialOnCancel)
	require.Len(t, cfg.Sources.Blogs, 1)
}

func TestLoad_InvalidFailsTerminally(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keywords: []\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

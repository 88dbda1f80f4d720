package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/newsarchive"
	"github.com/fwojciec/newsarchive/export"
	"github.com/fwojciec/newsarchive/goquery"
	nahttp "github.com/fwojciec/newsarchive/http"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by LoadConfig.
const (
	EnvConfig   = "NEWSARCHIVE_CONFIG"
	EnvDataset  = "NEWSARCHIVE_DATASET"
	EnvAddr     = "NEWSARCHIVE_ADDR"
	EnvLogLevel = "NEWSARCHIVE_LOG_LEVEL"
)

// Config holds the program settings.
type Config struct {
	Dataset string        `yaml:"dataset"`
	Server  ServerConfig  `yaml:"server"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Content ContentConfig `yaml:"content"`
	Export  ExportConfig  `yaml:"export"`
	Images  ImagesConfig  `yaml:"images"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	StreamInterval time.Duration `yaml:"stream_interval"`
}

type FetchConfig struct {
	Timeout        time.Duration `yaml:"timeout"`
	UserAgent      string        `yaml:"user_agent"`
	AcceptLanguage string        `yaml:"accept_language"`

	// RatePerDomain is the request rate allowed per host. Zero disables
	// rate limiting.
	RatePerDomain float64 `yaml:"rate_per_domain"`

	// Retries is how many times a transient page fetch failure is retried,
	// with doubling delays from one second.
	Retries int `yaml:"retries"`

	// Browser renders pages in headless Chrome instead of plain HTTP.
	Browser bool `yaml:"browser"`
}

type ContentConfig struct {
	Selectors           []string `yaml:"selectors"`
	FallbackSelector    string   `yaml:"fallback_selector"`
	FallbackMinChars    int      `yaml:"fallback_min_chars"`
	ReadabilityFallback bool     `yaml:"readability_fallback"`
	InteractiveRule     string   `yaml:"interactive_rule"`
	ExportRule          string   `yaml:"export_rule"`
}

type ExportConfig struct {
	ArtifactDir  string        `yaml:"artifact_dir"`
	Format       string        `yaml:"format"`
	Workers      int           `yaml:"workers"`
	QueueSize    int           `yaml:"queue_size"`
	CleanupDelay time.Duration `yaml:"cleanup_delay"`
}

type ImagesConfig struct {
	Dir         string `yaml:"dir"`
	Concurrency int    `yaml:"concurrency"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the settings used when no file overrides them.
func DefaultConfig() *Config {
	return &Config{
		Dataset: "palestine_news.json",
		Server: ServerConfig{
			Addr:           "127.0.0.1:5000",
			StreamInterval: nahttp.DefaultStreamInterval,
		},
		Fetch: FetchConfig{
			Timeout:        nahttp.DefaultFetchTimeout,
			UserAgent:      nahttp.DefaultUserAgent,
			AcceptLanguage: nahttp.DefaultAcceptLanguage,
			RatePerDomain:  2.5,
			Retries:        2,
		},
		Content: ContentConfig{
			Selectors:        goquery.DefaultContentSelectors,
			FallbackSelector: goquery.DefaultFallbackSelector,
			FallbackMinChars: goquery.DefaultFallbackMinChars,
			InteractiveRule:  newsarchive.GroupRule.Name,
			ExportRule:       newsarchive.FlushRule.Name,
		},
		Export: ExportConfig{
			ArtifactDir:  filepath.Join(os.TempDir(), "newsarchive"),
			Format:       "xlsx",
			Workers:      export.DefaultWorkers,
			QueueSize:    export.DefaultQueueSize,
			CleanupDelay: export.DefaultCleanupDelay,
		},
		Images: ImagesConfig{
			Dir:         "palestine_news_images",
			Concurrency: 4,
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig reads settings in order of increasing precedence: defaults,
// the YAML file, then environment variables. A .env file in the working
// directory is loaded into the environment first. An empty path falls back
// to NEWSARCHIVE_CONFIG; with neither set only defaults and environment
// apply.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := DefaultConfig()
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, newsarchive.Errorf(newsarchive.EINVALID, "parse config %s: %v", path, err)
		}
	}

	if v := os.Getenv(EnvDataset); v != "" {
		cfg.Dataset = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate returns an error if a setting is out of range.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if _, err := newsarchive.LookupParagraphRule(c.Content.InteractiveRule); err != nil {
		return err
	}
	if _, err := newsarchive.LookupParagraphRule(c.Content.ExportRule); err != nil {
		return err
	}
	switch c.Export.Format {
	case "xlsx", "md":
	default:
		return newsarchive.Errorf(newsarchive.EINVALID, "unknown export format %q", c.Export.Format)
	}
	if c.Fetch.Retries < 0 {
		return newsarchive.Errorf(newsarchive.EINVALID, "fetch.retries must not be negative")
	}
	if c.Images.Concurrency < 1 {
		return newsarchive.Errorf(newsarchive.EINVALID, "images.concurrency must be positive")
	}
	return nil
}

// ParseLevel converts a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, newsarchive.Errorf(newsarchive.EINVALID, "unknown log level %q", s)
}

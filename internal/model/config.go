package model

import (
	"time"

	"github.com/ppiankov/faqharvest/internal/logger"
)

// Config holds the complete harvester configuration
type Config struct {
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Robots       RobotsConfig       `yaml:"robots" mapstructure:"robots"`
	Sources      SourcesConfig      `yaml:"sources" mapstructure:"sources"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
	Logging      logger.Config      `yaml:"logging" mapstructure:"logging"`
}

// HTTPConfig controls page fetching
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"` // 0 disables the client timeout
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	MaxAttempts  int           `yaml:"max_attempts" mapstructure:"max_attempts"`
	InsecureTLS  bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	HTTPProxy    string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// CacheConfig controls the fetched page cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// RateLimitingConfig controls per-domain politeness
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// RobotsConfig controls robots.txt handling
type RobotsConfig struct {
	Respect bool `yaml:"respect" mapstructure:"respect"`
}

// SourcesConfig selects and locates sources
type SourcesConfig struct {
	Only      []string `yaml:"only" mapstructure:"only"`
	PinnedDir string   `yaml:"pinned_dir" mapstructure:"pinned_dir"`
}

// OutputConfig controls where the dataset is written
type OutputConfig struct {
	Dir     string `yaml:"dir" mapstructure:"dir"`
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      0,
			UserAgent:    "faqharvest/0.3 (+https://github.com/ppiankov/faqharvest)",
			MaxBodyBytes: 10_000_000,
			MaxAttempts:  1,
			InsecureTLS:  true,
		},
		Cache: CacheConfig{
			Enabled:   false,
			Dir:       ".faqharvest-cache",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   6 * time.Hour,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2,
			BurstSize:         2,
		},
		Robots: RobotsConfig{
			Respect: false,
		},
		Sources: SourcesConfig{
			PinnedDir: "data/pinned",
		},
		Output: OutputConfig{
			Dir: "data",
		},
		Logging: logger.Config{
			Level:  "info",
			Format: "console",
		},
	}
}

package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the complete application configuration, populated from
// defaults, config file, environment variables, and CLI flags
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Search      SearchConfig      `yaml:"search" mapstructure:"search"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	History     HistoryConfig     `yaml:"history" mapstructure:"history"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls the research page fetcher
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	HTTPProxy    string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// LLMConfig controls the optional consulting-brief generation
type LLMConfig struct {
	Provider    string  `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama, "" = disabled
	Model       string  `yaml:"model" mapstructure:"model"`
	APIKey      string  `yaml:"-" mapstructure:"-"` // Never written to config files
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	Timeout     int     `yaml:"timeout" mapstructure:"timeout"` // seconds
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// SearchConfig controls the ask-mode research step
type SearchConfig struct {
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"` // Search API base URL ("" = disabled)
	APIKey     string  `yaml:"-" mapstructure:"-"`
	MaxResults int     `yaml:"max_results" mapstructure:"max_results"`
	RateLimit  float64 `yaml:"rate_limit" mapstructure:"rate_limit"` // requests/second per domain
	RateBurst  int     `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// CacheConfig controls caching of fetched research pages
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig controls worker counts
type ConcurrencyConfig struct {
	Workers      int `yaml:"workers" mapstructure:"workers"`             // Batch advise workers
	FetchWorkers int `yaml:"fetch_workers" mapstructure:"fetch_workers"` // Concurrent research fetches
}

// HistoryConfig controls the local advisory store
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool   `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool   `yaml:"include_footer" mapstructure:"include_footer"`
	BrandTitle    string `yaml:"brand_title" mapstructure:"brand_title"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "BivenueCopilot/0.1 (+https://github.com/bivenue/copilot)",
			MaxBodyBytes: 2_000_000,
		},
		LLM: LLMConfig{
			Provider:    "", // Disabled by default
			Model:       "",
			Timeout:     60,
			Temperature: 0.2,
			MaxTokens:   1400,
		},
		Search: SearchConfig{
			MaxResults: 5,
			RateLimit:  1.0,
			RateBurst:  3,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       defaultCacheDir(),
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers:      4,
			FetchWorkers: 5,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    defaultHistoryPath(),
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
			BrandTitle:    "Bivenue Copilot",
		},
	}
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".copilot-cache"
	}
	return filepath.Join(home, ".copilot", "cache")
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "copilot-history.db"
	}
	return filepath.Join(home, ".copilot", "history.db")
}

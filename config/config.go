package config

import (
	"fmt"
	"time"
)

// Config holds catalog runtime configuration.
type Config struct {
	// ProductsSource and ShopsSource are file paths or http(s) URLs of the
	// delimited record files. ShopsSource may be empty.
	ProductsSource string
	ShopsSource    string

	Delimiter rune
	Timeout   time.Duration
	UserAgent string

	// KnownCategories is the closed set of category keys indexed by
	// Collection.ByCategory. Records outside it keep their key verbatim but
	// are not indexed.
	KnownCategories []string

	MinQueryLength    int
	MaxSearchResults  int
	MaxRecentSearches int
	DebounceWindow    time.Duration

	BestSellerThreshold int
	CacheSize           int

	// RedisAddr enables the Redis-backed recent-search store when set;
	// empty falls back to the in-memory store.
	RedisAddr string
	KeyPrefix string

	OutputFile   string
	OutputFormat string // csv, json, or dual
	MetricsAddr  string
	Verbose      bool
}

// DefaultConfig returns conservative defaults for the catalog pipeline.
func DefaultConfig() *Config {
	return &Config{
		Delimiter: ',',
		Timeout:   10 * time.Second,
		UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/117.0.0.0 Safari/537.36",
		KnownCategories: []string{
			"thoi-trang",
			"dien-tu",
			"gia-dung",
			"my-pham",
			"me-be",
			"the-thao",
		},
		MinQueryLength:      2,
		MaxSearchResults:    10,
		MaxRecentSearches:   10,
		DebounceWindow:      300 * time.Millisecond,
		BestSellerThreshold: 100,
		CacheSize:           8,
		KeyPrefix:           "shopcatalog",
		OutputFile:          "output/results.csv",
		OutputFormat:        "csv",
	}
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.Delimiter == 0 {
		return fmt.Errorf("delimiter cannot be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}
	if c.MinQueryLength < 1 {
		return fmt.Errorf("min query length must be positive")
	}
	if c.MaxSearchResults <= 0 {
		return fmt.Errorf("max search results must be positive")
	}
	if c.MaxRecentSearches <= 0 {
		return fmt.Errorf("max recent searches must be positive")
	}
	if c.DebounceWindow < 0 {
		return fmt.Errorf("debounce window cannot be negative")
	}
	if c.BestSellerThreshold < 0 {
		return fmt.Errorf("best seller threshold cannot be negative")
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("cache size must be positive")
	}
	if c.KeyPrefix == "" {
		return fmt.Errorf("key prefix cannot be empty")
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if c.OutputFormat != "csv" && c.OutputFormat != "json" && c.OutputFormat != "dual" {
		return fmt.Errorf("output format must be csv, json, or dual")
	}
	return nil
}

package config

import "testing"

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}, wantErr: false},
		{name: "pipe delimiter", mutate: func(c *Config) { c.Delimiter = '|' }, wantErr: false},
		{name: "zero delimiter", mutate: func(c *Config) { c.Delimiter = 0 }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.Timeout = 0 }, wantErr: true},
		{name: "empty user agent", mutate: func(c *Config) { c.UserAgent = "" }, wantErr: true},
		{name: "zero min query length", mutate: func(c *Config) { c.MinQueryLength = 0 }, wantErr: true},
		{name: "zero max search results", mutate: func(c *Config) { c.MaxSearchResults = 0 }, wantErr: true},
		{name: "zero max recent searches", mutate: func(c *Config) { c.MaxRecentSearches = 0 }, wantErr: true},
		{name: "negative debounce window", mutate: func(c *Config) { c.DebounceWindow = -1 }, wantErr: true},
		{name: "zero debounce window", mutate: func(c *Config) { c.DebounceWindow = 0 }, wantErr: false},
		{name: "negative best seller threshold", mutate: func(c *Config) { c.BestSellerThreshold = -1 }, wantErr: true},
		{name: "zero cache size", mutate: func(c *Config) { c.CacheSize = 0 }, wantErr: true},
		{name: "empty key prefix", mutate: func(c *Config) { c.KeyPrefix = "" }, wantErr: true},
		{name: "empty output file", mutate: func(c *Config) { c.OutputFile = "" }, wantErr: true},
		{name: "json output format", mutate: func(c *Config) { c.OutputFormat = "json" }, wantErr: false},
		{name: "dual output format", mutate: func(c *Config) { c.OutputFormat = "dual" }, wantErr: false},
		{name: "unknown output format", mutate: func(c *Config) { c.OutputFormat = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

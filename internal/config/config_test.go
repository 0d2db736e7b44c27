package config

import (
	"errors"
	"runtime"
	"strings"
	"testing"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	if cfg.HRP != "wit" {
		t.Errorf("HRP = %q, want %q", cfg.HRP, "wit")
	}
	if cfg.Threads != runtime.NumCPU() {
		t.Errorf("Threads = %d, want %d", cfg.Threads, runtime.NumCPU())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
		wantHRP string
	}{
		{name: "defaults with vanity", mutate: func(c *Config) { c.Vanity = "h3ll0" }, wantHRP: "wit"},
		{name: "empty vanity", mutate: func(c *Config) { c.Vanity = "" }, wantHRP: "wit"},
		{name: "upper hrp lowered", mutate: func(c *Config) { c.HRP = "TWIT" }, wantHRP: "twit"},
		{name: "invalid vanity b", mutate: func(c *Config) { c.Vanity = "abc" }, wantErr: ErrInvalidVanity},
		{name: "empty hrp", mutate: func(c *Config) { c.HRP = "" }, wantErr: ErrInvalidHRP},
		{name: "hrp too long for an address", mutate: func(c *Config) { c.HRP = strings.Repeat("w", 52) }, wantErr: ErrInvalidHRP},
		{name: "longest hrp", mutate: func(c *Config) { c.HRP = strings.Repeat("w", 51) }, wantHRP: strings.Repeat("w", 51)},
		{name: "zero threads", mutate: func(c *Config) { c.Threads = 0 }, wantErr: ErrInvalidThreads},
		{name: "negative threads", mutate: func(c *Config) { c.Threads = -4 }, wantErr: ErrInvalidThreads},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			cfg.Threads = 2
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
			if cfg.HRP != tt.wantHRP {
				t.Errorf("HRP = %q, want %q", cfg.HRP, tt.wantHRP)
			}
		})
	}
}

func TestClampThreads(t *testing.T) {
	tests := []struct {
		name    string
		threads int
		numCPU  int
		want    int
	}{
		{name: "clamped to hardware", threads: 999, numCPU: 8, want: 8},
		{name: "below hardware", threads: 3, numCPU: 8, want: 3},
		{name: "equal", threads: 8, numCPU: 8, want: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			cfg.Threads = tt.threads
			if got := cfg.ClampThreads(tt.numCPU); got != tt.want {
				t.Errorf("ClampThreads() = %d, want %d", got, tt.want)
			}
			if cfg.Threads != tt.want {
				t.Errorf("Threads = %d, want %d", cfg.Threads, tt.want)
			}
		})
	}
}

func TestGetTargetDescription(t *testing.T) {
	cfg := NewConfig()
	cfg.Vanity = "qq"
	if got := cfg.GetTargetDescription(); got != "prefix: wit1qq" {
		t.Errorf("GetTargetDescription() = %q", got)
	}

	cfg.Vanity = ""
	if got := cfg.GetTargetDescription(); got != "any address: wit1" {
		t.Errorf("GetTargetDescription() = %q", got)
	}
}

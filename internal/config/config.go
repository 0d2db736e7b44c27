package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/screa/bech32-vanity-miner/internal/crypto"
)

// DefaultHRP is the human-readable part used when --hrp is not given
const DefaultHRP = "wit"

// Errors
var (
	ErrInvalidVanity  = errors.New("invalid vanity string")
	ErrInvalidHRP     = errors.New("invalid human-readable part")
	ErrInvalidThreads = errors.New("the `threads` argument must be a positive number")
)

// Config holds the application configuration
type Config struct {
	Vanity      string
	HRP         string
	Threads     int
	Verbose     bool
	LogFile     string
	MetricsAddr string
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		HRP:     DefaultHRP,
		Threads: runtime.NumCPU(),
	}
}

// Validate validates the configuration and normalizes the hrp to lower case.
// It must pass before any worker is started.
func (c *Config) Validate() error {
	if err := crypto.ValidateVanity(c.Vanity); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidVanity, err)
	}
	if err := crypto.ValidateHRP(c.HRP); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidHRP, err)
	}
	c.HRP = strings.ToLower(c.HRP)
	if c.Threads <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidThreads, c.Threads)
	}
	return nil
}

// ClampThreads limits Threads to the available hardware parallelism and
// returns the effective value.
func (c *Config) ClampThreads(numCPU int) int {
	if numCPU > 0 && c.Threads > numCPU {
		c.Threads = numCPU
	}
	return c.Threads
}

// Prefix returns the literal every matching address starts with
func (c *Config) Prefix() string {
	return crypto.AddressPrefix(c.HRP, c.Vanity)
}

// GetTargetDescription returns a human-readable description of the target
func (c *Config) GetTargetDescription() string {
	if c.Vanity == "" {
		return "any address: " + c.Prefix()
	}
	return "prefix: " + c.Prefix()
}

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// World-control channel.
	Server         string
	ConnectTimeout time.Duration

	// Execution timing.
	SettleSetup  time.Duration
	SettleFreeze time.Duration
	SettleTick   time.Duration
	PlaceStagger time.Duration

	// Assertion retry budget.
	PollAttempts int
	PollInterval time.Duration

	// Result output.
	OutputJSONFile string
	OutputJSONDir  string

	// Optional MySQL run-history DSN; empty disables history recording.
	HistoryDSN string

	// Paths to ignore when scanning for spec files.
	PathsToIgnore []string

	// Command flags.
	Flags Flags
}

// Flags holds command-line flags.
type Flags struct {
	Server          string
	Recursive       bool
	NameFilter      string
	BreakAfterSetup bool
	BreakMode       string
	OpenFaills      bool
	Timeline        bool
}

// New creates a Config with defaults.
func New() *Config {
	cfg := &Config{
		ConnectTimeout: DefaultConnectTimeout,
		SettleSetup:    DefaultSettleSetup,
		SettleFreeze:   DefaultSettleFreeze,
		SettleTick:     DefaultSettleTick,
		PlaceStagger:   DefaultPlaceStagger,
		PollAttempts:   DefaultPollAttempts,
		PollInterval:   DefaultPollInterval,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
	}
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// LoadEnv applies .env and environment overrides. The .env file is optional.
func (c *Config) LoadEnv() {
	if err := godotenv.Load(".env"); err != nil {
		_ = err
	}
	if v := os.Getenv("FLINT_SERVER"); v != "" {
		c.Server = v
	}
	if v := os.Getenv("FLINT_HISTORY_DSN"); v != "" {
		c.HistoryDSN = v
	}
	if v := os.Getenv("FLINT_POLL_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.PollAttempts = n
		}
	}
	if v := os.Getenv("FLINT_POLL_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.PollInterval = time.Duration(n) * time.Millisecond
		}
	}
}

// GetServer returns the world address, preferring the flag over environment.
func (c *Config) GetServer() string {
	if c.Flags.Server != "" {
		return c.Flags.Server
	}
	return c.Server
}

// GetOutputPath returns the absolute path of the results JSON file, so run
// and faills always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.PollAttempts != DefaultPollAttempts {
		t.Errorf("expected %d poll attempts, got %d", DefaultPollAttempts, cfg.PollAttempts)
	}
	if cfg.PollInterval != DefaultPollInterval {
		t.Errorf("expected %v poll interval, got %v", DefaultPollInterval, cfg.PollInterval)
	}
	if cfg.ConnectTimeout != DefaultConnectTimeout {
		t.Errorf("expected %v connect timeout, got %v", DefaultConnectTimeout, cfg.ConnectTimeout)
	}
	if cfg.OutputJSONFile != DefaultOutputJSONFile || cfg.OutputJSONDir != DefaultOutputJSONDir {
		t.Errorf("unexpected output config: %s / %s", cfg.OutputJSONDir, cfg.OutputJSONFile)
	}
	if len(cfg.PathsToIgnore) != len(DefaultPathsToIgnore) {
		t.Errorf("unexpected ignore list: %v", cfg.PathsToIgnore)
	}
	if cfg.Server != "" {
		t.Errorf("server must default to empty, got %q", cfg.Server)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Run("reads overrides", func(t *testing.T) {
		t.Setenv("FLINT_SERVER", "localhost:8080")
		t.Setenv("FLINT_HISTORY_DSN", "user:pw@tcp(localhost:3306)/flint")
		t.Setenv("FLINT_POLL_ATTEMPTS", "20")
		t.Setenv("FLINT_POLL_INTERVAL_MS", "25")

		cfg := New()
		cfg.LoadEnv()

		if cfg.Server != "localhost:8080" {
			t.Errorf("server = %q", cfg.Server)
		}
		if cfg.HistoryDSN != "user:pw@tcp(localhost:3306)/flint" {
			t.Errorf("history DSN = %q", cfg.HistoryDSN)
		}
		if cfg.PollAttempts != 20 {
			t.Errorf("poll attempts = %d", cfg.PollAttempts)
		}
		if cfg.PollInterval != 25*time.Millisecond {
			t.Errorf("poll interval = %v", cfg.PollInterval)
		}
	})

	t.Run("ignores invalid numeric overrides", func(t *testing.T) {
		t.Setenv("FLINT_POLL_ATTEMPTS", "lots")
		t.Setenv("FLINT_POLL_INTERVAL_MS", "-5")

		cfg := New()
		cfg.LoadEnv()

		if cfg.PollAttempts != DefaultPollAttempts {
			t.Errorf("poll attempts = %d", cfg.PollAttempts)
		}
		if cfg.PollInterval != DefaultPollInterval {
			t.Errorf("poll interval = %v", cfg.PollInterval)
		}
	})
}

func TestGetServer(t *testing.T) {
	cfg := New()
	cfg.Server = "env-host:8080"

	if got := cfg.GetServer(); got != "env-host:8080" {
		t.Errorf("expected env value, got %q", got)
	}

	cfg.Flags.Server = "flag-host:8080"
	if got := cfg.GetServer(); got != "flag-host:8080" {
		t.Errorf("flag must win over environment, got %q", got)
	}
}

func TestGetOutputPath(t *testing.T) {
	cfg := New()
	cfg.OutputJSONDir = t.TempDir()
	cfg.OutputJSONFile = "run-results.json"

	got := cfg.GetOutputPath()
	if !filepath.IsAbs(got) {
		t.Errorf("expected absolute path, got %q", got)
	}
	if filepath.Base(got) != "run-results.json" {
		t.Errorf("unexpected file name in %q", got)
	}
}

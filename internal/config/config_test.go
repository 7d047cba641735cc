package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseMergesOverDefaults(t *testing.T) {
	t.Parallel()

	raw := []byte(`
server:
  addr: ":9000"
  shutdownTimeout: 2s
dataset:
  path: data/launches.csv
chart:
  format: png
scatter:
  ignorePayloadRange: true
`)

	cfg, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Server.Addr != ":9000" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}
	if cfg.Server.ShutdownTimeout != 2*time.Second {
		t.Fatalf("unexpected shutdown timeout: %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Dataset.Path != "data/launches.csv" {
		t.Fatalf("unexpected dataset path: %s", cfg.Dataset.Path)
	}
	if cfg.Dataset.Table != "spacex_launches" {
		t.Fatalf("default table lost in merge: %s", cfg.Dataset.Table)
	}
	if cfg.Chart.Format != "png" || cfg.Chart.Width != 800 || cfg.Chart.Height != 480 {
		t.Fatalf("unexpected chart config: %+v", cfg.Chart)
	}
	if !cfg.Scatter.IgnorePayloadRange {
		t.Fatalf("expected ignorePayloadRange to be set")
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("unexpected log level: %s", cfg.Logging.Level)
	}
}

func TestParseRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte("chart:\n  format: gif\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Chart.Format != "svg" {
		t.Fatalf("expected svg fallback, got %s", cfg.Chart.Format)
	}
}

func TestParseInvalidYAML(t *testing.T) {
	t.Parallel()

	if _, err := Parse([]byte("server: [")); err == nil {
		t.Fatalf("expected error for malformed yaml")
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dashboard.yaml")
	if err := os.WriteFile(path, []byte("dataset:\n  path: from-file.csv\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv(serverAddrEnv, "127.0.0.1:8080")
	t.Setenv(datasetPathEnv, "")
	t.Setenv(databaseDSNEnv, "postgres://localhost/launches")
	t.Setenv(logLevelEnv, "debug")

	cfg := Load()

	if cfg.Server.Addr != "127.0.0.1:8080" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}
	if cfg.Dataset.Path != "from-file.csv" {
		t.Fatalf("unexpected dataset path: %s", cfg.Dataset.Path)
	}
	if cfg.Dataset.DSN != "postgres://localhost/launches" {
		t.Fatalf("unexpected dsn: %s", cfg.Dataset.DSN)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected level: %s", cfg.Logging.Level)
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	t.Setenv(configPathEnv, filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv(serverAddrEnv, "")
	t.Setenv(datasetPathEnv, "")
	t.Setenv(databaseDSNEnv, "")
	t.Setenv(logLevelEnv, "")

	cfg := Load()
	if cfg.Server.Addr != ":8050" || cfg.Dataset.Path != "spacex_launch_dash.csv" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

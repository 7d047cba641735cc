package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv  = "LAUNCH_DASHBOARD_CONFIG"
	serverAddrEnv  = "DASHBOARD_ADDR"
	datasetPathEnv = "DASHBOARD_DATASET"
	databaseDSNEnv = "DATABASE_DSN"
	logLevelEnv    = "LOG_LEVEL"

	defaultShutdownTimeout = 5 * time.Second
)

// Config holds high-level settings required across the application.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Dataset DatasetConfig `yaml:"dataset"`
	Chart   ChartConfig   `yaml:"chart"`
	Scatter ScatterConfig `yaml:"scatter"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// DatasetConfig selects where launch records come from.
// A non-empty DSN switches loading from the CSV file to Postgres.
type DatasetConfig struct {
	Path    string `yaml:"path"`
	DSN     string `yaml:"dsn"`
	Table   string `yaml:"table"`
	OrderBy string `yaml:"orderBy"`
}

// ChartConfig controls image rendering.
type ChartConfig struct {
	Format string `yaml:"format"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// ScatterConfig toggles the payload-range filter of the scatter chart.
// IgnorePayloadRange reproduces the reference dashboard, where the slider had no effect.
type ScatterConfig struct {
	IgnorePayloadRange bool `yaml:"ignorePayloadRange"`
}

// LoggingConfig sets the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			fileCfg, err := Parse(raw)
			if err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = fileCfg
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.normalize()

	return cfg
}

// Parse decodes YAML and merges it over the defaults.
func Parse(raw []byte) (Config, error) {
	var fileCfg Config
	if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
		return Config{}, err
	}
	cfg := mergeConfig(defaultConfig(), fileCfg)
	cfg.normalize()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(serverAddrEnv); v != "" {
		c.Server.Addr = v
	}

	if v := os.Getenv(datasetPathEnv); v != "" {
		c.Dataset.Path = v
	}

	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Dataset.DSN = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func (c *Config) normalize() {
	switch c.Chart.Format {
	case "svg", "png":
	default:
		log.Printf("config: unknown chart format %q, reverting to svg", c.Chart.Format)
		c.Chart.Format = "svg"
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = defaultShutdownTimeout
	}
}

func mergeConfig(base, override Config) Config {
	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}
	if override.Server.ShutdownTimeout > 0 {
		base.Server.ShutdownTimeout = override.Server.ShutdownTimeout
	}

	if override.Dataset.Path != "" {
		base.Dataset.Path = override.Dataset.Path
	}
	if override.Dataset.DSN != "" {
		base.Dataset.DSN = override.Dataset.DSN
	}
	if override.Dataset.Table != "" {
		base.Dataset.Table = override.Dataset.Table
	}
	if override.Dataset.OrderBy != "" {
		base.Dataset.OrderBy = override.Dataset.OrderBy
	}

	if override.Chart.Format != "" {
		base.Chart.Format = override.Chart.Format
	}
	if override.Chart.Width > 0 {
		base.Chart.Width = override.Chart.Width
	}
	if override.Chart.Height > 0 {
		base.Chart.Height = override.Chart.Height
	}

	base.Scatter.IgnorePayloadRange = override.Scatter.IgnorePayloadRange

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{Addr: ":8050", ShutdownTimeout: defaultShutdownTimeout},
		Dataset: DatasetConfig{
			Path:    "spacex_launch_dash.csv",
			Table:   "spacex_launches",
			OrderBy: "flight_number",
		},
		Chart:   ChartConfig{Format: "svg", Width: 800, Height: 480},
		Logging: LoggingConfig{Level: "info"},
	}
}

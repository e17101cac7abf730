package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/storefront/internal/logging"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendNuts   = "nutsdb"
	BackendMemory = "memory"
)

// Config holds runtime settings for the storefront CLI.
//
// Fields:
//   - Backend: which kv store holds the data (sqlite, nutsdb or memory).
//   - DataPath: SQLite file, or nutsdb directory. Ignored by memory.
//   - LogLevel / LogFormat: see logging.New.
//   - RecentWindow: how far back user stats count a registration as recent.
type Config struct {
	Backend      string        `env:"STOREFRONT_BACKEND"`
	DataPath     string        `env:"STOREFRONT_DATA_PATH"`
	LogLevel     string        `env:"STOREFRONT_LOG_LEVEL"`
	LogFormat    string        `env:"STOREFRONT_LOG_FORMAT"`
	RecentWindow time.Duration `env:"STOREFRONT_RECENT_WINDOW"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Backend = BackendSQLite
	c.DataPath = "storefront.db"
	c.LogLevel = "info"
	c.LogFormat = logging.FormatText
	c.RecentWindow = 30 * 24 * time.Hour
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendNuts:
		if strings.TrimSpace(c.DataPath) == "" {
			return fmt.Errorf("data path is required for backend %q", c.Backend)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}

	switch strings.ToLower(c.LogFormat) {
	case logging.FormatText, logging.FormatJSON, logging.FormatZap:
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}

	if c.RecentWindow <= 0 {
		return fmt.Errorf("recent window must be positive, got %s", c.RecentWindow)
	}
	return nil
}

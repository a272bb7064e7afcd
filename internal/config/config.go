package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/exoshivam/folio/internal/logging"
	"github.com/spf13/pflag"
)

// Config holds runtime settings for the folio CLI.
type Config struct {
	APIBaseURL     string
	ShareOrigin    string
	DataDir        string
	DBFile         string
	RequestTimeout time.Duration
	// Ephemeral keeps all local state in memory for one run.
	Ephemeral bool
	LogDriver string
	LogLevel  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000/api"
	c.ShareOrigin = "http://localhost:5173"
	c.DataDir = ".folio"
	c.DBFile = "folio.db"
	c.RequestTimeout = 15 * time.Second
	c.Ephemeral = false
	c.LogDriver = logging.DriverSlog
	c.LogLevel = "warn"
}

// Load builds a Config from defaults, the config file, the environment and
// the flags registered on fs by RegisterFlags. Later sources win. fs may be
// nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	env, err := newEnv(dotEnvFile)
	if err != nil {
		return nil, err
	}

	path := configPath(fs, env)
	if path != "" {
		if err := parseFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := parseEnv(cfg, env); err != nil {
		return nil, err
	}
	if fs != nil {
		if err := applyFlags(cfg, fs); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: api url %q must be an absolute http(s) url", c.APIBaseURL)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("config: timeout must not be negative, got %s", c.RequestTimeout)
	}
	switch c.LogDriver {
	case logging.DriverSlog, logging.DriverZap:
	default:
		return fmt.Errorf("config: unknown log driver %q", c.LogDriver)
	}
	if !c.Ephemeral && c.DBFile == "" {
		return fmt.Errorf("config: db file must be set")
	}
	return nil
}

// DBPath is where the preference database lives.
func (c *Config) DBPath() string {
	if filepath.IsAbs(c.DBFile) {
		return c.DBFile
	}
	return filepath.Join(c.DataDir, c.DBFile)
}

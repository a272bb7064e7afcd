package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	dotEnvFile = ".env"

	EnvConfig      = "FOLIO_CONFIG"
	EnvAPIURL      = "FOLIO_API_URL"
	EnvShareOrigin = "FOLIO_SHARE_ORIGIN"
	EnvDataDir     = "FOLIO_DATA_DIR"
	EnvDBFile      = "FOLIO_DB_FILE"
	EnvTimeout     = "FOLIO_TIMEOUT"
	EnvEphemeral   = "FOLIO_EPHEMERAL"
	EnvLogDriver   = "FOLIO_LOG_DRIVER"
	EnvLogLevel    = "FOLIO_LOG_LEVEL"
)

// env looks variables up in the process environment first, then in the
// .env file. An empty process variable counts as unset.
type env struct {
	dotenv map[string]string
}

func newEnv(path string) (*env, error) {
	m, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &env{dotenv: map[string]string{}}, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return &env{dotenv: m}, nil
}

func (e *env) lookup(key string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v, true
	}
	v, ok := e.dotenv[key]
	return v, ok
}

func parseEnv(cfg *Config, e *env) error {
	strs := map[string]*string{
		EnvAPIURL:      &cfg.APIBaseURL,
		EnvShareOrigin: &cfg.ShareOrigin,
		EnvDataDir:     &cfg.DataDir,
		EnvDBFile:      &cfg.DBFile,
		EnvLogDriver:   &cfg.LogDriver,
		EnvLogLevel:    &cfg.LogLevel,
	}
	for key, dst := range strs {
		if v, ok := e.lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := e.lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := e.lookup(EnvEphemeral); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvEphemeral, err)
		}
		cfg.Ephemeral = b
	}
	return nil
}

package config

import (
	"github.com/spf13/pflag"
)

// Flag names shared with the CLI.
const (
	FlagConfig    = "config"
	FlagAPI       = "api"
	FlagDataDir   = "data-dir"
	FlagTimeout   = "timeout"
	FlagEphemeral = "ephemeral"
	FlagLogDriver = "log-driver"
	FlagLogLevel  = "log-level"
)

// RegisterFlags declares the configuration flags on fs. Their defaults are
// informational only; a flag overrides other sources only when set.
func RegisterFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(FlagConfig, "c", "", "path to a YAML or JSON config file")
	fs.String(FlagAPI, d.APIBaseURL, "base URL of the portfolio API")
	fs.String(FlagDataDir, d.DataDir, "directory for local state")
	fs.Duration(FlagTimeout, d.RequestTimeout, "per-request timeout (0 disables)")
	fs.Bool(FlagEphemeral, false, "keep local state in memory for this run only")
	fs.String(FlagLogDriver, d.LogDriver, "log backend: slog or zap")
	fs.String(FlagLogLevel, d.LogLevel, "log level: debug, info, warn or error")
}

func configPath(fs *pflag.FlagSet, e *env) string {
	if fs != nil && fs.Changed(FlagConfig) {
		if v, err := fs.GetString(FlagConfig); err == nil {
			return v
		}
	}
	v, _ := e.lookup(EnvConfig)
	return v
}

func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	var err error
	str := func(name string, dst *string) {
		if err != nil || !fs.Changed(name) {
			return
		}
		*dst, err = fs.GetString(name)
	}
	str(FlagAPI, &cfg.APIBaseURL)
	str(FlagDataDir, &cfg.DataDir)
	str(FlagLogDriver, &cfg.LogDriver)
	str(FlagLogLevel, &cfg.LogLevel)

	if err == nil && fs.Changed(FlagTimeout) {
		cfg.RequestTimeout, err = fs.GetDuration(FlagTimeout)
	}
	if err == nil && fs.Changed(FlagEphemeral) {
		cfg.Ephemeral, err = fs.GetBool(FlagEphemeral)
	}
	return err
}

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape. Pointers tell "absent" from zero so a
// file only overrides what it names. yaml.v3 reads JSON documents as well.
type fileConfig struct {
	APIBaseURL  *string        `yaml:"api_url"`
	ShareOrigin *string        `yaml:"share_origin"`
	DataDir     *string        `yaml:"data_dir"`
	DBFile      *string        `yaml:"db_file"`
	Timeout     *time.Duration `yaml:"timeout"`
	Ephemeral   *bool          `yaml:"ephemeral"`
	Log         struct {
		Driver *string `yaml:"driver"`
		Level  *string `yaml:"level"`
	} `yaml:"log"`
}

func parseFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	setString(&cfg.APIBaseURL, fc.APIBaseURL)
	setString(&cfg.ShareOrigin, fc.ShareOrigin)
	setString(&cfg.DataDir, fc.DataDir)
	setString(&cfg.DBFile, fc.DBFile)
	setString(&cfg.LogDriver, fc.Log.Driver)
	setString(&cfg.LogLevel, fc.Log.Level)
	if fc.Timeout != nil {
		cfg.RequestTimeout = *fc.Timeout
	}
	if fc.Ephemeral != nil {
		cfg.Ephemeral = *fc.Ephemeral
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

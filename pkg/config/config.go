// Package config loads eduhub settings from .eduhub.yaml and EDUHUB_* env.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/eduhub/pkg/store"
)

const (
	// EnvConfigPath names a directory searched for .eduhub.yaml first.
	EnvConfigPath = "EDUHUB_CONFIG_PATH"

	defaultPath     = "~/.eduhub"
	defaultLevel    = "warn"
	defaultMinDelay = 600 * time.Millisecond
	defaultJitter   = 700 * time.Millisecond
)

// Config holds resolved settings. It satisfies store.Config.
type Config struct {
	Path           string        `json:"path"`
	StoreBackend   store.Backend `json:"backend"`
	LogLevel       string        `json:"logLevel"`
	UploadMinDelay time.Duration `json:"uploadMinDelay"`
	UploadJitter   time.Duration `json:"uploadJitter"`
	File           string        `json:"file,omitempty"`
}

// BasePath implements store.Config.
func (c *Config) BasePath() string { return c.Path }

// Backend implements store.Config.
func (c *Config) Backend() store.Backend { return c.StoreBackend }

// Load reads the config file (if any), env overrides and defaults.
func Load() (*Config, error) {
	viper.SetDefault("path", defaultPath)
	viper.SetDefault("backend", string(store.BackendDiskv))
	viper.SetDefault("log.level", defaultLevel)
	viper.SetDefault("upload.min-delay", defaultMinDelay)
	viper.SetDefault("upload.jitter", defaultJitter)
	viper.SetConfigName(".eduhub") // .yaml is implicit
	viper.SetEnvPrefix("EDUHUB")
	viper.AutomaticEnv()

	if override := os.Getenv(EnvConfigPath); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("config: expand path: %w", err)
	}
	backend, err := store.ParseBackend(viper.GetString("backend"))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg := &Config{
		Path:           path,
		StoreBackend:   backend,
		LogLevel:       viper.GetString("log.level"),
		UploadMinDelay: viper.GetDuration("upload.min-delay"),
		UploadJitter:   viper.GetDuration("upload.jitter"),
		File:           viper.ConfigFileUsed(),
	}
	if cfg.UploadMinDelay < 0 {
		cfg.UploadMinDelay = 0
	}
	if cfg.UploadJitter < 0 {
		cfg.UploadJitter = 0
	}
	return cfg, nil
}

// Package config loads application configuration from environment variables,
// in the usual precedence: process environment first, .env file (loaded by
// main) as fallback.
package config

import (
	"os"
	"strconv"

	"tabview/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Upload UploadConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	UIPort  string
	APIPort string
	GinMode string
}

// UploadConfig holds upload handling limits
type UploadConfig struct {
	// MaxBytes caps the accepted upload size; the whole file is held in
	// memory for the session's lifetime.
	MaxBytes int64
}

// Defaults
const (
	defaultUIPort       = "8080"
	defaultAPIPort      = "8081"
	defaultGinMode      = "release"
	defaultMaxUploadMB  = 50
	bytesPerMB          = 1 << 20
	maxUploadUpperBound = 1024 // MB; beyond this the in-memory model is the wrong tool
)

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			UIPort:  envOr("TABVIEW_UI_PORT", defaultUIPort),
			APIPort: envOr("TABVIEW_API_PORT", defaultAPIPort),
			GinMode: envOr("GIN_MODE", defaultGinMode),
		},
		Upload: UploadConfig{
			MaxBytes: defaultMaxUploadMB * bytesPerMB,
		},
	}

	if raw := os.Getenv("TABVIEW_MAX_UPLOAD_MB"); raw != "" {
		mb, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.Wrap(err, "TABVIEW_MAX_UPLOAD_MB must be an integer")
		}
		if mb <= 0 || mb > maxUploadUpperBound {
			return nil, errors.ConfigInvalid("TABVIEW_MAX_UPLOAD_MB out of range")
		}
		cfg.Upload.MaxBytes = int64(mb) * bytesPerMB
	}

	if err := validate(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Server.UIPort == "" {
		return errors.ConfigInvalid("UI port cannot be empty")
	}
	if cfg.Server.APIPort == "" {
		return errors.ConfigInvalid("API port cannot be empty")
	}
	if cfg.Server.UIPort == cfg.Server.APIPort {
		return errors.ConfigInvalid("UI and API ports must differ")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

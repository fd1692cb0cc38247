// Package config loads the contactform runtime configuration from YAML,
// applies defaults and CONTACTFORM_* environment overrides, and validates the
// result.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces every environment override.
const EnvPrefix = "CONTACTFORM_"

// Config is the root configuration document.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Layout string       `yaml:"layout"`  // optional layout file or directory; empty uses the embedded form
	FormID string       `yaml:"form_id"` // form to mount from the layout
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr          string        `yaml:"addr"`
	ShutdownGrace time.Duration `yaml:"shutdown_grace"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	CookieName    string        `yaml:"cookie_name"`
	CSRFField     string        `yaml:"csrf_field"`
	DefaultStyles bool          `yaml:"default_styles"`
}

// LogConfig selects the log level and optional destination file.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns the configuration used when no file is supplied.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:          ":8080",
			ShutdownGrace: 5 * time.Second,
			SessionTTL:    30 * time.Minute,
			CookieName:    "contactform_session",
			CSRFField:     "_csrf",
			DefaultStyles: true,
		},
		FormID: "contact",
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadEnv loads .env style files into the process environment. Missing files
// are skipped; variables already set are left alone.
func LoadEnv(files ...string) error {
	for _, file := range files {
		if file == "" {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: load env %s: %w", file, err)
		}
	}
	return nil
}

// Load reads configuration from configPath. A blank or missing path yields
// the defaults. Environment overrides are applied before validation.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("config: parse config file: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid config: %w", err)
	}
	return &cfg, nil
}

// applyDefaults fills zero values left by a partial YAML document.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.Server.CookieName == "" {
		c.Server.CookieName = defaults.Server.CookieName
	}
	if c.Server.CSRFField == "" {
		c.Server.CSRFField = defaults.Server.CSRFField
	}
	if c.FormID == "" {
		c.FormID = defaults.FormID
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			return nil
		}
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
		}
		*dst = d
		return nil
	}

	str("ADDR", &c.Server.Addr)
	str("COOKIE_NAME", &c.Server.CookieName)
	str("LAYOUT", &c.Layout)
	str("FORM_ID", &c.FormID)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FILE", &c.Log.File)
	if err := dur("SESSION_TTL", &c.Server.SessionTTL); err != nil {
		return err
	}
	return dur("SHUTDOWN_GRACE", &c.Server.ShutdownGrace)
}

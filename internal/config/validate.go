package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
)

// Validate checks every field and reports all failures at once as
// criterio.FieldErrors.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("server.addr", c.Server.Addr, notBlank),
		criterio.Run("server.cookie_name", c.Server.CookieName, notBlank, cookieToken),
		criterio.Run("server.csrf_field", c.Server.CSRFField, notBlank),
		criterio.Run("server.session_ttl", c.Server.SessionTTL, positive),
		criterio.Run("server.shutdown_grace", c.Server.ShutdownGrace, nonNegative),
		criterio.Run("form_id", c.FormID, notBlank),
		criterio.Run("layout", c.Layout, existsOrEmpty),
		criterio.Run("log.level", c.Log.Level, logLevel),
	)
}

func notBlank(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}

func cookieToken(value string) error {
	if strings.ContainsAny(value, " \t;,=\"") {
		return fmt.Errorf("%q is not a valid cookie name", value)
	}
	return nil
}

func positive(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("must be greater than zero")
	}
	return nil
}

func nonNegative(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func existsOrEmpty(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	return nil
}

func logLevel(level string) error {
	if _, err := zerolog.ParseLevel(level); err != nil {
		return fmt.Errorf("unknown level %q", level)
	}
	return nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	want := DefaultConfig()
	assert.Equal(t, &want, cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeFile(t, "contactform.yaml", `
server:
  addr: "127.0.0.1:9000"
  session_ttl: 10m
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 10*time.Minute, cfg.Server.SessionTTL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "contactform_session", cfg.Server.CookieName)
	assert.Equal(t, "contact", cfg.FormID)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONTACTFORM_ADDR", ":7070")
	t.Setenv("CONTACTFORM_SESSION_TTL", "90s")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, 90*time.Second, cfg.Server.SessionTTL)
}

func TestLoad_BadEnvDuration(t *testing.T) {
	t.Setenv("CONTACTFORM_SHUTDOWN_GRACE", "soon")

	_, err := Load("")
	assert.ErrorContains(t, err, "CONTACTFORM_SHUTDOWN_GRACE")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeFile(t, "bad.yaml", "server: [")
	_, err := Load(path)
	assert.ErrorContains(t, err, "parse config file")
}

func TestValidate_CollectsAllFieldErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.SessionTTL = 0
	cfg.Server.CookieName = "bad name"
	cfg.Log.Level = "loud"
	cfg.Layout = filepath.Join(t.TempDir(), "nope.yaml")

	err := cfg.Validate()

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 4)
}

func TestLoadEnv(t *testing.T) {
	path := writeFile(t, ".env", "CONTACTFORM_TEST_VALUE=from-dotenv\n")
	t.Setenv("CONTACTFORM_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("CONTACTFORM_TEST_VALUE"))

	require.NoError(t, LoadEnv(path, filepath.Join(t.TempDir(), "missing.env")))
	assert.Equal(t, "from-dotenv", os.Getenv("CONTACTFORM_TEST_VALUE"))
}

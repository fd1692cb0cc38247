package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "contactform.log")

	logger, closer, err := New("info", path)
	require.NoError(t, err)

	logger.Debug().Msg("hidden")
	logger.Info().Str("field", "email").Msg("visible")
	closer()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "visible", entry["message"])
	assert.Equal(t, "email", entry["field"])
	assert.Contains(t, entry, "time")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New("loud", "")
	assert.Error(t, err)
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := Component(NewWriter(&buf, zerolog.DebugLevel), "server")
	logger.Debug().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "server", entry["cmp"])
}

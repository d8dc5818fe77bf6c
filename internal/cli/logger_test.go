package cli

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_DefaultsToJSONOffTerminal(t *testing.T) {
	var buf bytes.Buffer

	NewLogger(slog.LevelInfo, "", &buf).Info("org created", "slug", "acme")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "org created", record["msg"])
	assert.Equal(t, "acme", record["slug"])
}

func TestNewLogger_ExplicitTextAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.LevelWarn, "text", &buf)

	logger.Info("hidden")
	logger.Warn("shown", "path", "/tmp/data.json")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "path=/tmp/data.json")
}

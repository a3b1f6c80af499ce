package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var obj map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &obj))
		out = append(out, obj)
	}
	return out
}

func TestJSONFields(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "framelink-sim", "debug", "json")
	require.NoError(t, err)

	log.Info("transport bound", "transport", "console", "round", 2)
	log.Error("read failed", "error", errors.New("unplugged"))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)

	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "transport bound", lines[0]["message"])
	assert.Equal(t, "framelink-sim", lines[0]["app"])
	assert.Equal(t, "console", lines[0]["transport"])
	assert.Equal(t, float64(2), lines[0]["round"])

	assert.Equal(t, "error", lines[1]["level"])
	assert.Equal(t, "unplugged", lines[1]["error"])
}

func TestBadKeys(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "test", "debug", "json")
	require.NoError(t, err)

	log.Warn("odd", 7, "x", "dangling")
	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "dangling", lines[0]["!BADKEY"])
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "test", "warn", "json")
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")
	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "shown", lines[0]["message"])
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "test", "info", "console")
	require.NoError(t, err)

	log.Info("session started", "version", "0.1.0")
	assert.Contains(t, buf.String(), "session started")
	assert.Contains(t, buf.String(), "0.1.0")
}

func TestBadLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "test", "loud", "json")
	require.Error(t, err)
}

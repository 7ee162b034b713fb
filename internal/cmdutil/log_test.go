package cmdutil

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, LogOptions{}.Level())
	assert.Equal(t, slog.LevelDebug, LogOptions{Verbose: true}.Level())
	assert.Equal(t, slog.LevelWarn, LogOptions{Brief: true}.Level())
}

func TestNewLoggerConsole(t *testing.T) {
	var buf bytes.Buffer
	log, closer, err := NewLogger(&buf, LogOptions{Brief: true})
	require.NoError(t, err)
	defer func() { _ = closer.Close() }()

	log.Info("hidden")
	log.Warn("shown", "k", 1)
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "k=1")
	// Not a terminal: no ANSI escapes.
	assert.NotContains(t, out, "\x1b[")
}

func TestNewLoggerExclusiveFlags(t *testing.T) {
	_, _, err := NewLogger(&bytes.Buffer{}, LogOptions{Verbose: true, Brief: true})
	assert.Error(t, err)
}

func TestNewLoggerFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "bedmap.log")
	var buf bytes.Buffer
	log, closer, err := NewLogger(&buf, LogOptions{Verbose: true, File: fn})
	require.NoError(t, err)

	log.Debug("selected", "lines", 3)
	require.NoError(t, closer.Close())

	assert.Contains(t, buf.String(), "selected")
	data, err := os.ReadFile(fn)
	require.NoError(t, err)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &rec))
	assert.Equal(t, "selected", rec["msg"])
	assert.Equal(t, "DEBUG", rec["level"])
	assert.EqualValues(t, 3, rec["lines"])
}

func TestNewLoggerBadFile(t *testing.T) {
	_, _, err := NewLogger(&bytes.Buffer{}, LogOptions{File: filepath.Join(t.TempDir(), "no", "such", "dir.log")})
	assert.Error(t, err)
}

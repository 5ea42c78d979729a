package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_TextToFallback(t *testing.T) {
	var buf bytes.Buffer
	l, c, err := New(Options{Level: slog.LevelInfo, Format: "text", Component: "cli"}, &buf)
	require.NoError(t, err)
	defer c.Close()

	l.Debug("hidden")
	l.Info("shown", "day", "day1")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "component=cli")
	assert.Contains(t, out, "day=day1")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, _, err := New(Options{Level: slog.LevelDebug, Format: "json"}, &buf)
	require.NoError(t, err)

	WithComponent(l, "store").Debug("migrated")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "migrated", rec["msg"])
	assert.Equal(t, "store", rec["component"])
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "counterline.log")
	l, c, err := New(Options{Level: slog.LevelInfo}, nil)
	require.NoError(t, err)
	l.Info("to nowhere")
	require.NoError(t, c.Close())

	l, c, err = New(Options{Level: slog.LevelInfo, File: path}, nil)
	require.NoError(t, err)
	l.Info("to file")
	require.NoError(t, c.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "to file"))
}

package logger

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Format(t *testing.T) {
	var buf bytes.Buffer
	log, _ := New(Options{Format: "json", Output: &buf})
	log.Info("hello", "id", 3)

	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"id":3`)
}

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	log, _ := New(Options{Level: "warn", Output: &buf})

	assert.False(t, log.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, log.Enabled(context.Background(), slog.LevelWarn))
}

func TestNew_BadValuesFallBack(t *testing.T) {
	var buf bytes.Buffer
	log, _ := New(Options{Level: "loud", Format: "xml", Output: &buf})

	assert.True(t, log.Enabled(context.Background(), slog.LevelInfo))
	assert.Contains(t, buf.String(), "could not parse logger level")
	assert.Contains(t, buf.String(), "could not parse logger format")
}

func TestNew_Logfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "addressbook.log")
	log, closeLog := New(Options{Logfile: path})
	log.Info("written to file")
	require.NoError(t, closeLog())
	assert.ErrorIs(t, closeLog(), os.ErrClosed, "the log file is closed")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestNew_CloseWithoutFile(t *testing.T) {
	var buf bytes.Buffer
	_, closeLog := New(Options{Output: &buf})
	assert.NoError(t, closeLog())
}

func TestNew_DevNull(t *testing.T) {
	log, closeLog := New(Options{Logfile: os.DevNull})
	assert.NoError(t, closeLog())
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}

package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"WARN", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.InfoLevel},
		{"nonsense", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestConfigure_Level(t *testing.T) {
	t.Setenv("NUSH_LOG_LEVEL", "debug")
	require.NoError(t, Configure("", "", false))
	assert.Equal(t, log.InfoLevel, Logger.GetLevel(), "the environment is read by config, not here")

	require.NoError(t, Configure("error", "", false))
	assert.Equal(t, log.ErrorLevel, Logger.GetLevel())

	require.NoError(t, Configure("debug", "", true))
	assert.Equal(t, log.InfoLevel, Logger.GetLevel())
}

func TestConfigure_LogFile(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	require.NoError(t, Configure("info", first, false))
	assert.FileExists(t, first)
	previous := openFile
	require.NotNil(t, previous)

	second := filepath.Join(dir, "second.log")
	require.NoError(t, Configure("info", second, false))
	assert.FileExists(t, second)
	_, err := previous.Write([]byte("x"))
	assert.ErrorIs(t, err, os.ErrClosed)

	Info("hello")
	data, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")

	require.NoError(t, Configure("info", "", false))
	assert.Nil(t, openFile)
	assert.NoError(t, Close())
}

func TestConfigure_BadLogFileKeepsPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nush.log")
	require.NoError(t, Configure("info", path, false))
	t.Cleanup(func() { _ = Close() })
	kept := openFile

	err := Configure("info", filepath.Join(t.TempDir(), "missing", "nush.log"), false)
	require.Error(t, err)
	assert.Same(t, kept, openFile)
}

func TestNewStyledLogger(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Configure("debug", "", false))
	SetOutput(&buf)
	defer SetOutput(&bytes.Buffer{})

	l := NewStyledLogger("Parser")
	assert.Equal(t, log.DebugLevel, l.GetLevel())

	l.Debug("bound", "keyword", "export alias")
	assert.Contains(t, buf.String(), "Parser")
	assert.Contains(t, buf.String(), "bound")
}

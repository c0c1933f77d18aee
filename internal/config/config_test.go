package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New(), afero.NewMemMapFs(), "/etc/nush")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.Root)
	assert.False(t, cfg.Plain)
}

func TestLoad_Layers(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/nush/config.yaml", []byte(
		"log_level: warn\nroot: /srv\nhistory_file: /tmp/history\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/etc/nush/.env", []byte(
		"NUSH_LOG_LEVEL=error\nOTHER=ignored\n"), 0o644))
	t.Setenv("NUSH_PLAIN", "true")

	cfg, err := Load(viper.New(), fs, "/etc/nush")
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.LogLevel, ".env overrides config.yaml")
	assert.Equal(t, "/srv", cfg.Root)
	assert.Equal(t, "/tmp/history", cfg.HistoryFile)
	assert.True(t, cfg.Plain)
}

func TestLoad_EnvOverridesDotEnv(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/.env", []byte("NUSH_LOG_LEVEL=error\n"), 0o644))
	t.Setenv("NUSH_LOG_LEVEL", "debug")

	cfg, err := Load(viper.New(), fs, "/cfg")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/config.yaml", []byte("log_level: loud\n"), 0o644))

	_, err := Load(viper.New(), fs, "/cfg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")

	require.NoError(t, afero.WriteFile(fs, "/bad/config.yaml", []byte("log_level: [\n"), 0o644))
	_, err = Load(viper.New(), fs, "/bad")
	assert.Error(t, err)
}

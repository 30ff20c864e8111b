package appcfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hide_secrets_in_console: true\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "en", c.Language)
	assert.Equal(t, "info", c.LogLevel)
	assert.True(t, c.HideSecretsInConsole)
	assert.Empty(t, c.LogsDir)
}

func TestLoadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte("language: ru\nlog_level: debug\nlogs_dir: logs\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{Language: "ru", LogLevel: "debug", LogsDir: "logs"}, c)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

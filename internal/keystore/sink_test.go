package keystore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDurableReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "mnemonic.txt")

	require.NoError(t, WriteDurable(path, []byte("one"), 0o600))
	require.NoError(t, WriteDurable(path, []byte("two"), 0o600))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(b))

	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), st.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestWriteNewRefusesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteNew(path, []byte("first"), 0o600))

	err := WriteNew(path, []byte("second"), 0o600)
	assert.ErrorIs(t, err, os.ErrExist)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(b))
}

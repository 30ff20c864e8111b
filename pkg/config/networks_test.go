package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults(t *testing.T) {
	ns := DefaultNetworks()

	n, err := ns.Resolve("Devnet", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Devnet", n.Name)
	assert.Equal(t, "https://fullnode.devnet.aptoslabs.com/v1", n.RestURL)
	assert.Equal(t, "https://faucet.devnet.aptoslabs.com", n.FaucetURL)

	n, err = ns.Resolve("mainnet", "", "")
	require.NoError(t, err)
	assert.Empty(t, n.FaucetURL)
}

func TestResolveOverrides(t *testing.T) {
	n, err := DefaultNetworks().Resolve("custom", "http://node:8080/v1", "http://faucet:8081")
	require.NoError(t, err)
	assert.Equal(t, "Custom", n.Name)
	assert.Equal(t, "http://node:8080/v1", n.RestURL)
	assert.Equal(t, "http://faucet:8081", n.FaucetURL)
}

func TestResolveUnknown(t *testing.T) {
	_, err := DefaultNetworks().Resolve("moonnet", "", "")
	assert.ErrorContains(t, err, "unknown network")
}

func TestLoadNetworks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "networks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`networks:
  staging:
    name: Custom
    rest_url: http://staging:8080/v1
`), 0o644))

	ns, err := LoadNetworks(path)
	require.NoError(t, err)
	assert.Contains(t, ns.Keys(), "devnet")

	n, err := ns.Resolve("staging", "", "")
	require.NoError(t, err)
	assert.Equal(t, "http://staging:8080/v1", n.RestURL)
}

func TestLoadNetworksValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "networks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("networks:\n  x:\n    name: X\n"), 0o644))
	_, err := LoadNetworks(path)
	assert.ErrorContains(t, err, "rest_url")

	_, err = LoadNetworks(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

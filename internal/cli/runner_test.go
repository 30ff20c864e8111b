package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AptosTools/internal/mnemonic"
	"AptosTools/internal/ops/encdec"
	"AptosTools/internal/provision"
	"AptosTools/pkg/appcfg"
)

func newTestRunner(password string) (*Runner, *bytes.Buffer) {
	var out bytes.Buffer
	r := NewRunner(appcfg.Default())
	r.Out = &out
	r.Backup = encdec.LightParams()
	r.ReadPassword = func(string) (string, error) { return password, nil }
	return r, &out
}

func TestGenerateAndVerify(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "wallets")
	r, out := newTestRunner("")

	require.NoError(t, r.Run([]string{"aptostools", "generate", "-d", dir, "-n", "devnet", "-c", "3"}))

	raw, err := os.ReadFile(filepath.Join(dir, provision.DefaultMnemonicFile))
	require.NoError(t, err)
	assert.NoError(t, mnemonic.BIP39{}.Validate(string(raw)))
	assert.Contains(t, out.String(), string(raw))
	assert.Contains(t, out.String(), "Done: 3 written, 0 skipped")

	out.Reset()
	require.NoError(t, r.Run([]string{"aptostools", "verify", "-d", dir, "-c", "3"}))
	assert.Contains(t, out.String(), "All profiles match the mnemonic.")
	assert.Equal(t, 3, strings.Count(out.String(), " ok\n"))
}

func TestGenerateRefusesExistingMnemonic(t *testing.T) {
	dir := t.TempDir()
	mnPath := filepath.Join(dir, provision.DefaultMnemonicFile)
	require.NoError(t, os.WriteFile(mnPath, []byte("keep me"), 0o600))

	r, _ := newTestRunner("")
	err := r.Run([]string{"aptostools", "generate", "-d", dir, "-n", "testnet", "-c", "1"})
	require.ErrorIs(t, err, provision.ErrMnemonicExists)

	b, err := os.ReadFile(mnPath)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(b))

	require.NoError(t, r.Run([]string{"aptostools", "generate", "-d", dir, "-n", "testnet", "-c", "1", "--force"}))
	b, err = os.ReadFile(mnPath)
	require.NoError(t, err)
	assert.NotEqual(t, "keep me", string(b))
}

func TestGenerateUnknownNetwork(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "x")
	r, _ := newTestRunner("")
	err := r.Run([]string{"aptostools", "generate", "-d", dir, "-n", "moonnet"})
	assert.ErrorContains(t, err, "unknown network")
	assert.NoDirExists(t, dir)
}

func TestGenerateEncryptedAndReveal(t *testing.T) {
	dir := t.TempDir()
	r, out := newTestRunner("s3cret")

	require.NoError(t, r.Run([]string{"aptostools", "generate", "-d", dir, "-n", "local", "-c", "1", "--encrypt", "--hint", "usual"}))
	backup := filepath.Join(dir, provision.DefaultMnemonicFile+".json")
	assert.Contains(t, out.String(), backup)

	raw, err := os.ReadFile(filepath.Join(dir, provision.DefaultMnemonicFile))
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, r.Run([]string{"aptostools", "reveal", "--file", backup}))
	assert.Equal(t, string(raw)+"\n", out.String())
}

func TestGenerateEncryptRejectsMismatch(t *testing.T) {
	r, _ := newTestRunner("")
	calls := 0
	r.ReadPassword = func(string) (string, error) {
		calls++
		return strings.Repeat("x", calls), nil
	}
	err := r.Run([]string{"aptostools", "generate", "-d", t.TempDir(), "-n", "devnet", "--encrypt"})
	assert.ErrorContains(t, err, "passwords do not match")
}

func TestVerifyFailsOnMissingProfile(t *testing.T) {
	dir := t.TempDir()
	r, out := newTestRunner("")
	require.NoError(t, r.Run([]string{"aptostools", "generate", "-d", dir, "-n", "devnet", "-c", "1"}))

	out.Reset()
	err := r.Run([]string{"aptostools", "verify", "-d", dir, "-c", "2"})
	assert.ErrorContains(t, err, "verification failed")
	assert.Contains(t, out.String(), " missing\n")
}

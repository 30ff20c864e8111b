package encdec

import (
	"path/filepath"
	"testing"

	gethks "github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AptosTools/internal/mnemonic"
)

const phrase = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestBackupRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aptos_mnemonic.txt.json")
	require.NoError(t, WriteBackup(path, phrase+"\n", "hunter2", LightParams()))

	got, err := Reveal(path, "hunter2")
	require.NoError(t, err)
	assert.Equal(t, phrase, got)
}

func TestDecryptWrongPassword(t *testing.T) {
	blob, err := EncryptMnemonic(phrase, "right", LightParams())
	require.NoError(t, err)

	_, err = DecryptMnemonic(blob, "wrong", mnemonic.BIP39{})
	assert.ErrorIs(t, err, gethks.ErrDecrypt)
}

func TestEncryptEmptyPassword(t *testing.T) {
	_, err := EncryptMnemonic(phrase, "", LightParams())
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestDecryptRejectsForeignJSON(t *testing.T) {
	_, err := DecryptMnemonic([]byte(`{"kind":"other"}`), "x", mnemonic.BIP39{})
	assert.ErrorContains(t, err, "kind")

	_, err = DecryptMnemonic([]byte(`not json`), "x", mnemonic.BIP39{})
	assert.ErrorContains(t, err, "invalid backup json")
}

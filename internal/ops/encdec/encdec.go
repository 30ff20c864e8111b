// Package encdec wraps a seed phrase in a Web3 Secret Storage (keystore v3)
// envelope so it can sit next to the plain mnemonic file or replace it.
package encdec

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	gethks "github.com/ethereum/go-ethereum/accounts/keystore"

	"AptosTools/internal/keystore"
	"AptosTools/internal/mnemonic"
)

const backupKind = "aptos-mnemonic"

var ErrEmptyPassword = errors.New("empty password")

// Params are the scrypt cost parameters.
type Params struct {
	ScryptN int
	ScryptP int
}

// StandardParams matches the geth keystore defaults.
func StandardParams() Params {
	return Params{ScryptN: gethks.StandardScryptN, ScryptP: gethks.StandardScryptP}
}

// LightParams is cheap enough for tests and low-end machines.
func LightParams() Params {
	return Params{ScryptN: gethks.LightScryptN, ScryptP: gethks.LightScryptP}
}

// Backup is the on-disk JSON envelope.
type Backup struct {
	Kind    string            `json:"kind"`
	Version int               `json:"version"`
	Crypto  gethks.CryptoJSON `json:"crypto"`
}

// EncryptMnemonic seals phrase with password.
func EncryptMnemonic(phrase, password string, p Params) ([]byte, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}
	cj, err := gethks.EncryptDataV3([]byte(mnemonic.Normalize(phrase)), []byte(password), p.ScryptN, p.ScryptP)
	if err != nil {
		return nil, fmt.Errorf("encrypt mnemonic: %w", err)
	}
	return json.MarshalIndent(Backup{Kind: backupKind, Version: 1, Crypto: cj}, "", "  ")
}

// DecryptMnemonic opens a blob produced by EncryptMnemonic and validates the phrase.
func DecryptMnemonic(blob []byte, password string, codec mnemonic.Codec) (string, error) {
	var b Backup
	if err := json.Unmarshal(blob, &b); err != nil {
		return "", fmt.Errorf("invalid backup json: %w", err)
	}
	if b.Kind != backupKind {
		return "", fmt.Errorf("invalid backup json: kind %q", b.Kind)
	}
	plain, err := gethks.DecryptDataV3(b.Crypto, password)
	if err != nil {
		return "", err
	}
	phrase := string(plain)
	if err := codec.Validate(phrase); err != nil {
		return "", fmt.Errorf("decrypted backup: %w", err)
	}
	return phrase, nil
}

// WriteBackup encrypts phrase into path, replacing any previous backup.
func WriteBackup(path, phrase, password string, p Params) error {
	blob, err := EncryptMnemonic(phrase, password, p)
	if err != nil {
		return err
	}
	if err := keystore.WriteDurable(path, blob, 0o600); err != nil {
		return fmt.Errorf("write backup %q: %w", path, err)
	}
	return nil
}

// Reveal reads and decrypts the backup at path.
func Reveal(path, password string) (string, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read backup: %w", err)
	}
	return DecryptMnemonic(blob, password, mnemonic.BIP39{})
}

package mnemonic

import (
	"errors"
	"fmt"
	"strings"

	bip39 "github.com/tyler-smith/go-bip39"
)

var (
	ErrInvalidMnemonic = errors.New("invalid mnemonic phrase")
	ErrInvalidStrength = errors.New("entropy strength must be 128..256 bits in steps of 32")
)

// SeedSize is the length of a BIP-39 seed.
const SeedSize = 64

// Codec generates, checks and stretches seed phrases.
type Codec interface {
	Generate() (string, error)
	Validate(phrase string) error
	ToSeed(phrase string) ([]byte, error)
}

// BIP39 is the English-wordlist BIP-39 codec with an empty passphrase.
type BIP39 struct {
	Strength int // entropy bits, 128=12 words, 256=24 words
}

func (b BIP39) Generate() (string, error) {
	strength := b.Strength
	if strength == 0 {
		strength = 128 // 12 words
	}
	if strength < 128 || strength > 256 || strength%32 != 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidStrength, strength)
	}
	entropy, err := bip39.NewEntropy(strength)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

func (BIP39) Validate(phrase string) error {
	phrase = Normalize(phrase)
	if phrase == "" {
		return fmt.Errorf("%w: empty", ErrInvalidMnemonic)
	}
	// MnemonicToByteArray checks both the wordlist and the checksum.
	if _, err := bip39.MnemonicToByteArray(phrase); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
	}
	return nil
}

// ToSeed runs PBKDF2-HMAC-SHA512 (2048 rounds, salt "mnemonic") over a validated phrase.
func (b BIP39) ToSeed(phrase string) ([]byte, error) {
	if err := b.Validate(phrase); err != nil {
		return nil, err
	}
	return bip39.NewSeed(Normalize(phrase), ""), nil
}

// Normalize trims the phrase and collapses runs of whitespace, so a phrase read
// back from a file compares equal to the generated one.
func Normalize(phrase string) string {
	return strings.Join(strings.Fields(phrase), " ")
}

// Package hdkey implements SLIP-0010 hierarchical derivation for Ed25519.
// Ed25519 only defines hardened children, so every path segment must be hardened.
package hdkey

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
)

// HardenedOffset is added to an index to mark it hardened (the ' in a path).
const HardenedOffset uint32 = 0x80000000

var (
	ErrSeedLength  = errors.New("seed must be 16..64 bytes")
	ErrNonHardened = errors.New("ed25519 supports hardened derivation only")
)

var masterSecret = []byte("ed25519 seed")

// KeyPair is an extended Ed25519 key: the 32-byte private scalar seed, its public
// point and the chain code used to derive children.
type KeyPair struct {
	PrivateKey [32]byte
	PublicKey  [32]byte
	ChainCode  [32]byte
}

// Signer returns the stdlib form of the private key.
func (k KeyPair) Signer() ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(k.PrivateKey[:])
}

// Curve derives master and child keys.
type Curve interface {
	Master(seed []byte) (KeyPair, error)
	Child(parent KeyPair, index uint32) (KeyPair, error)
}

// Ed25519 is the SLIP-0010 ed25519 curve.
type Ed25519 struct{}

func (Ed25519) Master(seed []byte) (KeyPair, error) {
	if len(seed) < 16 || len(seed) > 64 {
		return KeyPair{}, fmt.Errorf("%w: got %d", ErrSeedLength, len(seed))
	}
	mac := hmac.New(sha512.New, masterSecret)
	mac.Write(seed)
	return split(mac.Sum(nil)), nil
}

func (Ed25519) Child(parent KeyPair, index uint32) (KeyPair, error) {
	if index < HardenedOffset {
		return KeyPair{}, fmt.Errorf("%w: index %d", ErrNonHardened, index)
	}
	data := make([]byte, 0, 1+32+4)
	data = append(data, 0x00)
	data = append(data, parent.PrivateKey[:]...)
	data = binary.BigEndian.AppendUint32(data, index)

	mac := hmac.New(sha512.New, parent.ChainCode[:])
	mac.Write(data)
	return split(mac.Sum(nil)), nil
}

func split(sum []byte) KeyPair {
	var k KeyPair
	copy(k.PrivateKey[:], sum[:32])
	copy(k.ChainCode[:], sum[32:])
	pub := ed25519.NewKeyFromSeed(k.PrivateKey[:]).Public().(ed25519.PublicKey)
	copy(k.PublicKey[:], pub)
	return k
}

// Derive walks path from the master key of seed. The whole path is checked for
// non-hardened segments before any key is computed.
func Derive(curve Curve, seed []byte, path accounts.DerivationPath) (KeyPair, error) {
	if err := checkHardened(path); err != nil {
		return KeyPair{}, err
	}
	key, err := curve.Master(seed)
	if err != nil {
		return KeyPair{}, err
	}
	for _, idx := range path {
		if key, err = curve.Child(key, idx); err != nil {
			return KeyPair{}, err
		}
	}
	return key, nil
}

func checkHardened(path accounts.DerivationPath) error {
	for i, idx := range path {
		if idx < HardenedOffset {
			return fmt.Errorf("%w: segment %d (%d) of %s", ErrNonHardened, i, idx, path)
		}
	}
	return nil
}

package crypto

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/crypto/sha3"
)

// Ed25519Scheme is the authentication key scheme byte for a single Ed25519 key.
const Ed25519Scheme byte = 0x00

// AddressLength is the size of an Aptos account address.
const AddressLength = 32

// Address is an Aptos account address.
type Address [AddressLength]byte

// AddressOf returns SHA3-256(pub || scheme), the authentication key of a fresh
// single-key account, which is also its address.
func AddressOf(pub [32]byte) Address {
	h := sha3.New256()
	h.Write(pub[:])
	h.Write([]byte{Ed25519Scheme})
	var a Address
	copy(a[:], h.Sum(nil))
	return a
}

// Hex is the lowercase address without 0x, as used for directory names and the
// account field of a profile.
func (a Address) Hex() string { return hex.EncodeToString(a[:]) }

func (a Address) String() string { return "0x" + a.Hex() }

// ParseAddress accepts the address with or without 0x.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, fmt.Errorf("parse address %q: %w", s, err)
	}
	if len(b) != AddressLength {
		return Address{}, fmt.Errorf("parse address %q: want %d bytes, got %d", s, AddressLength, len(b))
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

func PrivToHex(priv [32]byte) string { return hexutil.Encode(priv[:]) }

func PubToHex(pub [32]byte) string { return hexutil.Encode(pub[:]) }

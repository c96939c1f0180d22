// Package types defines the primitive chain types shared by the wallet,
// the transaction codec and the API clients.
package types

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// AddressSize is the length of an address in bytes.
const AddressSize = 20

// Address is the 160-bit hash of a compressed public key.
// Binary messages embed these raw bytes; JSON sign documents use the bech32 form.
type Address [AddressSize]byte

// AddressFromBytes copies a 20-byte slice into an Address.
func AddressFromBytes(b []byte) (Address, error) {
	if len(b) != AddressSize {
		return Address{}, fmt.Errorf("%w: address must be %d bytes, got %d", ErrInvalidAddress, AddressSize, len(b))
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

// IsZero returns true if the address is all zeros.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Bech32 returns the address encoded with the given human-readable prefix.
func (a Address) Bech32(hrp string) string {
	s, err := EncodeAddress(hrp, a[:])
	if err != nil {
		// Only reachable with an empty or non-printable HRP.
		return hrp + ":" + a.Hex()
	}
	return s
}

// String returns the raw hex-encoded address. Use Bech32 for display on a network.
func (a Address) String() string {
	return a.Hex()
}

// Hex returns the lowercase hex encoding of the address bytes.
func (a Address) Hex() string {
	return hex.EncodeToString(a[:])
}

// Bytes returns a copy of the address as a byte slice.
func (a Address) Bytes() []byte {
	b := make([]byte, AddressSize)
	copy(b, a[:])
	return b
}

// EncodeAddress bech32-encodes a 20-byte public key hash under hrp.
func EncodeAddress(hrp string, hash []byte) (string, error) {
	if len(hash) != AddressSize {
		return "", fmt.Errorf("%w: address must be %d bytes, got %d", ErrInvalidAddress, AddressSize, len(hash))
	}
	return Bech32Encode(hrp, hash)
}

// DecodeAddress decodes a bech32 address and checks that it carries the expected prefix.
func DecodeAddress(hrp, s string) (Address, error) {
	got, data, err := Bech32Decode(s)
	if err != nil {
		return Address{}, err
	}
	if got != hrp {
		return Address{}, fmt.Errorf("%w: prefix %q, want %q", ErrInvalidAddress, got, hrp)
	}
	return AddressFromBytes(data)
}

// ParseAddress decodes a bech32 address on either public network and
// reports which network its prefix belongs to.
func ParseAddress(s string) (Address, Network, error) {
	hrp, data, err := Bech32Decode(strings.TrimSpace(s))
	if err != nil {
		return Address{}, Mainnet, err
	}
	net, ok := NetworkFromHRP(hrp)
	if !ok {
		return Address{}, Mainnet, fmt.Errorf("%w: unknown prefix %q", ErrInvalidAddress, hrp)
	}
	a, err := AddressFromBytes(data)
	if err != nil {
		return Address{}, Mainnet, err
	}
	return a, net, nil
}

// HexToAddress converts a raw hex string to an Address.
func HexToAddress(s string) (Address, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: invalid hex: %v", ErrInvalidAddress, err)
	}
	return AddressFromBytes(b)
}

// MarshalText encodes the address as lowercase hex.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}

// UnmarshalText decodes a hex address.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := HexToAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

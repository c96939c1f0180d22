package types

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// Bech32Encode encodes a human-readable part and 8-bit data into a bech32 string.
// The payload is regrouped into 5-bit words before the checksum is computed.
func Bech32Encode(hrp string, data []byte) (string, error) {
	if hrp == "" {
		return "", fmt.Errorf("%w: empty HRP", ErrInvalidAddress)
	}
	conv, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("%w: convert bits: %v", ErrInvalidAddress, err)
	}
	s, err := bech32.Encode(hrp, conv)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	return s, nil
}

// Bech32Decode decodes a bech32 string into its human-readable part and 8-bit data.
func Bech32Decode(s string) (string, []byte, error) {
	if s == "" {
		return "", nil, fmt.Errorf("%w: empty string", ErrInvalidAddress)
	}
	hrp, words, err := bech32.Decode(s)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	data, err := bech32.ConvertBits(words, 5, 8, false)
	if err != nil {
		return "", nil, fmt.Errorf("%w: convert bits: %v", ErrInvalidAddress, err)
	}
	return strings.ToLower(hrp), data, nil
}

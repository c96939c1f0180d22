package types

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// hash160 of the compressed public key for private key
// 90335b9d2153ad1a9799a3ccc070bd64b4164e9642ee1dd48053c33f9a3a05e9.
const vectorHash = "ba36f0fad74d8f41045463e4774f328f4af779e5"

func vectorAddress(t *testing.T) Address {
	t.Helper()
	a, err := HexToAddress(vectorHash)
	require.NoError(t, err)
	return a
}

func TestAddress_IsZero(t *testing.T) {
	var zero Address
	require.True(t, zero.IsZero())
	require.False(t, Address{0x01}.IsZero())
}

func TestAddress_Bech32_KnownVector(t *testing.T) {
	a := vectorAddress(t)
	require.Equal(t, "bnb1hgm0p7khfk85zpz5v0j8wnej3a90w709vhkdfu", a.Bech32(MainnetHRP))
	require.Equal(t, "tbnb1hgm0p7khfk85zpz5v0j8wnej3a90w709zzlffd", a.Bech32(TestnetHRP))
}

func TestDecodeAddress(t *testing.T) {
	want := vectorAddress(t)

	got, err := DecodeAddress(TestnetHRP, "tbnb1hgm0p7khfk85zpz5v0j8wnej3a90w709zzlffd")
	require.NoError(t, err)
	require.Equal(t, want, got)

	// Uppercase is a valid bech32 rendering of the same address.
	got, err = DecodeAddress(TestnetHRP, strings.ToUpper("tbnb1hgm0p7khfk85zpz5v0j8wnej3a90w709zzlffd"))
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestDecodeAddress_Errors(t *testing.T) {
	tests := []struct {
		name string
		hrp  string
		in   string
	}{
		{"wrong prefix", MainnetHRP, "tbnb1hgm0p7khfk85zpz5v0j8wnej3a90w709zzlffd"},
		{"bad checksum", TestnetHRP, "tbnb1hgm0p7khfk85zpz5v0j8wnej3a90w709zzlffe"},
		{"empty", MainnetHRP, ""},
		{"no separator", MainnetHRP, "bnbhgm0p7khfk85zpz5v0j8wnej3a90w709vhkdfu"},
		{"invalid char", MainnetHRP, "bnb1hgm0p7khfk85zpz5v0j8wnej3a90w709vhkdfb"},
		{"short payload", MainnetHRP, "bnb1qqqsyqcyq5rqwzqf3n8xvj"},
		{"mixed case", TestnetHRP, "tbnb1HGM0p7khfk85zpz5v0j8wnej3a90w709zzlffd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeAddress(tt.hrp, tt.in)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidAddress), "got %v", err)
		})
	}
}

func TestParseAddress_Network(t *testing.T) {
	a, net, err := ParseAddress("bnb1hgm0p7khfk85zpz5v0j8wnej3a90w709vhkdfu")
	require.NoError(t, err)
	require.Equal(t, Mainnet, net)
	require.Equal(t, vectorAddress(t), a)

	_, net, err = ParseAddress("tbnb1hgm0p7khfk85zpz5v0j8wnej3a90w709zzlffd")
	require.NoError(t, err)
	require.Equal(t, Testnet, net)

	// Valid bech32 but a foreign prefix.
	foreign, err := Bech32Encode("cosmos", a[:])
	require.NoError(t, err)
	_, _, err = ParseAddress(foreign)
	require.ErrorIs(t, err, ErrInvalidAddress)
}

func TestEncodeAddress_WrongLength(t *testing.T) {
	_, err := EncodeAddress(MainnetHRP, make([]byte, 19))
	require.ErrorIs(t, err, ErrInvalidAddress)
}

func TestAddressFromBytes(t *testing.T) {
	raw, _ := hex.DecodeString(vectorHash)
	a, err := AddressFromBytes(raw)
	require.NoError(t, err)
	require.Equal(t, raw, a.Bytes())
	require.Equal(t, vectorHash, a.Hex())
	require.Equal(t, vectorHash, a.String())

	_, err = AddressFromBytes(raw[:10])
	require.ErrorIs(t, err, ErrInvalidAddress)
}

func TestAddress_RoundTrip_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.SliceOfN(rapid.Byte(), AddressSize, AddressSize).Draw(t, "hash")
		hrp := rapid.SampledFrom([]string{MainnetHRP, TestnetHRP}).Draw(t, "hrp")

		s, err := EncodeAddress(hrp, raw)
		if err != nil {
			t.Fatalf("EncodeAddress: %v", err)
		}
		got, err := DecodeAddress(hrp, s)
		if err != nil {
			t.Fatalf("DecodeAddress(%q): %v", s, err)
		}
		if string(got[:]) != string(raw) {
			t.Fatalf("round trip mismatch: %x != %x", got, raw)
		}
	})
}

func TestAddress_JSON(t *testing.T) {
	a := vectorAddress(t)
	b, err := json.Marshal(a)
	require.NoError(t, err)
	require.Equal(t, `"`+vectorHash+`"`, string(b))

	var back Address
	require.NoError(t, json.Unmarshal(b, &back))
	require.Equal(t, a, back)

	require.Error(t, json.Unmarshal([]byte(`"abcd"`), &back))
}

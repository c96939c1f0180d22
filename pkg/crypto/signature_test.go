package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const (
	vectorPrivKey = "90335b9d2153ad1a9799a3ccc070bd64b4164e9642ee1dd48053c33f9a3a05e9"
	vectorPubKey  = "029729a52e4e3c2b4a4e52aa74033eedaf8ba1df5ab6d1f518fd69e67bbd309b0e"
)

func vectorKey(t testing.TB) *PrivateKey {
	t.Helper()
	key, err := PrivateKeyFromHex(vectorPrivKey)
	require.NoError(t, err)
	return key
}

func TestPrivateKeyFromHex_KnownVector(t *testing.T) {
	key := vectorKey(t)
	require.Equal(t, vectorPubKey, key.PublicKeyHex())
	require.Equal(t, vectorPrivKey, key.Hex())
	require.Len(t, key.PublicKey(), 33)

	with0x, err := PrivateKeyFromHex("0x" + vectorPrivKey)
	require.NoError(t, err)
	require.Equal(t, key.Serialize(), with0x.Serialize())
}

func TestPrivateKeyFromBytes_Invalid(t *testing.T) {
	order, _ := hex.DecodeString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")
	tests := []struct {
		name string
		in   []byte
	}{
		{"empty", nil},
		{"short", make([]byte, 31)},
		{"long", make([]byte, 33)},
		{"zero", make([]byte, 32)},
		{"curve order", order},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PrivateKeyFromBytes(tt.in)
			require.ErrorIs(t, err, ErrInvalidPrivateKey)
		})
	}

	_, err := PrivateKeyFromHex("zz")
	require.ErrorIs(t, err, ErrInvalidPrivateKey)
}

func TestSign_KnownVector(t *testing.T) {
	key := vectorKey(t)
	sig, err := key.Sign([]byte("hello binance"))
	require.NoError(t, err)
	require.Equal(t,
		"d8e1d3e84f9ad9dfa5a620e19955501ff15457ca5da907b8af90f11f615c08ba"+
			"30ed3a27555b4218c99815a1af2148f105f5aa4660264b8064fc94827f402760",
		hex.EncodeToString(sig))
}

func TestSign_Deterministic(t *testing.T) {
	key := vectorKey(t)
	msg := []byte("same message")
	s1, err := key.Sign(msg)
	require.NoError(t, err)
	s2, err := key.Sign(msg)
	require.NoError(t, err)
	require.Equal(t, s1, s2)
	require.Len(t, s1, SignatureSize)
}

func TestVerifySignature(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)
	msg := []byte(`{"account_number":"1","chain_id":"Binance-Chain-Nile"}`)

	sig, err := key.Sign(msg)
	require.NoError(t, err)
	require.True(t, VerifySignature(msg, sig, key.PublicKey()))
	require.True(t, ECDSAVerifier{}.Verify(msg, sig, key.PublicKey()))

	other, err := GenerateKey()
	require.NoError(t, err)
	require.False(t, VerifySignature(msg, sig, other.PublicKey()), "wrong key")
	require.False(t, VerifySignature(msg, sig[:63], key.PublicKey()), "short signature")
	require.False(t, VerifySignature(msg, sig, []byte{0x02, 0x01}), "bad public key")
	require.False(t, VerifySignature(msg, make([]byte, 64), key.PublicKey()), "zero signature")
}

func TestVerifySignature_RejectsHighS(t *testing.T) {
	key := vectorKey(t)
	msg := []byte("malleability")
	sig, err := key.Sign(msg)
	require.NoError(t, err)

	var s secp256k1.ModNScalar
	s.SetByteSlice(sig[32:])
	require.False(t, s.IsOverHalfOrder(), "signer must emit low-S")

	s.Negate()
	high := make([]byte, SignatureSize)
	copy(high, sig[:32])
	sBytes := s.Bytes()
	copy(high[32:], sBytes[:])

	require.False(t, VerifySignature(msg, high, key.PublicKey()))
}

func TestVerifySignature_BitFlips(t *testing.T) {
	key := vectorKey(t)
	pub := key.PublicKey()
	rapid.Check(t, func(t *rapid.T) {
		msg := rapid.SliceOfN(rapid.Byte(), 1, 256).Draw(t, "msg")
		sig, err := key.Sign(msg)
		if err != nil {
			t.Fatalf("Sign: %v", err)
		}
		if !VerifySignature(msg, sig, pub) {
			t.Fatalf("valid signature rejected")
		}

		i := rapid.IntRange(0, len(msg)-1).Draw(t, "msgIndex")
		flipped := bytes.Clone(msg)
		flipped[i] ^= 0x01
		if VerifySignature(flipped, sig, pub) {
			t.Fatalf("signature verified for modified message")
		}

		j := rapid.IntRange(0, SignatureSize-1).Draw(t, "sigIndex")
		badSig := bytes.Clone(sig)
		badSig[j] ^= 0x01
		if VerifySignature(msg, badSig, pub) {
			t.Fatalf("modified signature verified")
		}
	})
}

func TestSign_NilKey(t *testing.T) {
	var key *PrivateKey
	_, err := key.Sign([]byte("x"))
	require.ErrorIs(t, err, ErrSignature)
}

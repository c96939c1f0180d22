package crypto

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// SignatureSize is the length of a compact r‖s signature.
const SignatureSize = 64

// PrivateKeySize is the length of a raw secp256k1 scalar.
const PrivateKeySize = 32

var (
	// ErrSignature is returned when signing fails or a produced signature does not verify.
	ErrSignature = errors.New("signature error")

	// ErrInvalidPrivateKey is returned for scalars that are zero, out of range or
	// of the wrong length.
	ErrInvalidPrivateKey = errors.New("invalid private key")
)

// Signer signs messages with a secp256k1 private key.
type Signer interface {
	// Sign produces a 64-byte compact ECDSA signature over SHA-256(msg).
	Sign(msg []byte) ([]byte, error)
	// PublicKey returns the compressed 33-byte public key.
	PublicKey() []byte
}

// Verifier verifies compact ECDSA/secp256k1 signatures.
type Verifier interface {
	// Verify checks a signature against a message and compressed public key.
	Verify(msg, signature, publicKey []byte) bool
}

// PrivateKey wraps a secp256k1 private key for ECDSA signing.
type PrivateKey struct {
	key *secp256k1.PrivateKey
}

// GenerateKey creates a new random secp256k1 private key.
func GenerateKey() (*PrivateKey, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return &PrivateKey{key: key}, nil
}

// PrivateKeyFromBytes creates a PrivateKey from a 32-byte secret.
// The scalar must be in [1, N-1].
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != PrivateKeySize {
		return nil, fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidPrivateKey, PrivateKeySize, len(b))
	}
	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(b); overflow {
		return nil, fmt.Errorf("%w: scalar exceeds curve order", ErrInvalidPrivateKey)
	}
	if scalar.IsZero() {
		return nil, fmt.Errorf("%w: zero scalar", ErrInvalidPrivateKey)
	}
	return &PrivateKey{key: secp256k1.NewPrivateKey(&scalar)}, nil
}

// PrivateKeyFromHex parses a hex-encoded 32-byte secret, with or without a 0x prefix.
func PrivateKeyFromHex(s string) (*PrivateKey, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	return PrivateKeyFromBytes(b)
}

// Sign produces a deterministic (RFC 6979) low-S ECDSA signature over
// SHA-256(msg), serialized as 64 bytes r‖s without DER framing.
func (pk *PrivateKey) Sign(msg []byte) ([]byte, error) {
	if pk == nil || pk.key == nil {
		return nil, fmt.Errorf("%w: nil private key", ErrSignature)
	}
	hash := Sha256(msg)
	sig := ecdsa.Sign(pk.key, hash[:])

	r := sig.R()
	s := sig.S()
	rBytes := r.Bytes()
	sBytes := s.Bytes()

	out := make([]byte, SignatureSize)
	copy(out[:32], rBytes[:])
	copy(out[32:], sBytes[:])
	return out, nil
}

// PublicKey returns the compressed 33-byte public key.
func (pk *PrivateKey) PublicKey() []byte {
	return pk.key.PubKey().SerializeCompressed()
}

// PublicKeyHex returns the hex encoding of the compressed public key.
func (pk *PrivateKey) PublicKeyHex() string {
	return hex.EncodeToString(pk.PublicKey())
}

// Serialize returns the 32-byte private key scalar.
func (pk *PrivateKey) Serialize() []byte {
	return pk.key.Serialize()
}

// Hex returns the hex encoding of the private key scalar.
func (pk *PrivateKey) Hex() string {
	return hex.EncodeToString(pk.Serialize())
}

// Zero securely zeroes the private key memory.
func (pk *PrivateKey) Zero() {
	pk.key.Zero()
}

// VerifySignature checks a compact r‖s signature against SHA-256(msg) and a
// compressed (or uncompressed) public key. High-S signatures are rejected so
// every message has exactly one accepted encoding. Returns false on any error.
func VerifySignature(msg, signature, publicKey []byte) bool {
	if len(signature) != SignatureSize {
		return false
	}
	pubKey, err := secp256k1.ParsePubKey(publicKey)
	if err != nil {
		return false
	}
	var r, s secp256k1.ModNScalar
	if r.SetByteSlice(signature[:32]) || s.SetByteSlice(signature[32:]) {
		return false
	}
	if r.IsZero() || s.IsZero() || s.IsOverHalfOrder() {
		return false
	}
	hash := Sha256(msg)
	return ecdsa.NewSignature(&r, &s).Verify(hash[:], pubKey)
}

// ECDSAVerifier implements the Verifier interface.
type ECDSAVerifier struct{}

// Verify checks a compact signature against a message and public key.
func (v ECDSAVerifier) Verify(msg, signature, publicKey []byte) bool {
	return VerifySignature(msg, signature, publicKey)
}

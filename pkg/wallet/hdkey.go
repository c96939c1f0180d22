package wallet

import (
	"fmt"

	"github.com/Klingon-tech/binance-chain-go/pkg/crypto"
	"github.com/Klingon-tech/binance-chain-go/pkg/types"
	"github.com/tyler-smith/go-bip32"
)

// HDKey represents a hierarchical deterministic key (BIP-32).
type HDKey struct {
	key *bip32.Key
}

// NewMasterKey creates a master HD key from a seed of 16 to 64 bytes.
func NewMasterKey(seed []byte) (*HDKey, error) {
	if len(seed) < MinSeedSize || len(seed) > MaxSeedSize {
		return nil, fmt.Errorf("%w: must be %d-%d bytes, got %d", ErrInvalidSeed, MinSeedSize, MaxSeedSize, len(seed))
	}
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("create master key: %w", err)
	}
	return &HDKey{key: master}, nil
}

// DeriveChild derives a child key at the given index.
// For hardened derivation, add bip32.FirstHardenedChild to the index.
func (k *HDKey) DeriveChild(index uint32) (*HDKey, error) {
	child, err := k.key.NewChildKey(index)
	if err != nil {
		return nil, fmt.Errorf("derive child %d: %w", index, err)
	}
	return &HDKey{key: child}, nil
}

// DerivePath derives a key along every index of path in order.
func (k *HDKey) DerivePath(path DerivationPath) (*HDKey, error) {
	current := k
	for _, idx := range path {
		child, err := current.DeriveChild(idx)
		if err != nil {
			return nil, fmt.Errorf("derive %s: %w", path, err)
		}
		current = child
	}
	return current, nil
}

// PrivateKeyBytes returns the raw 32-byte private key.
func (k *HDKey) PrivateKeyBytes() []byte {
	raw := k.key.Key
	if len(raw) == 33 && raw[0] == 0 {
		return raw[1:]
	}
	if len(raw) < crypto.PrivateKeySize {
		padded := make([]byte, crypto.PrivateKeySize)
		copy(padded[crypto.PrivateKeySize-len(raw):], raw)
		return padded
	}
	return raw
}

// PublicKeyBytes returns the compressed 33-byte public key.
func (k *HDKey) PublicKeyBytes() []byte {
	return k.key.PublicKey().Key
}

// Signer returns a crypto.PrivateKey for this HD key.
func (k *HDKey) Signer() (*crypto.PrivateKey, error) {
	return crypto.PrivateKeyFromBytes(k.PrivateKeyBytes())
}

// Address returns hash160 of the compressed public key.
func (k *HDKey) Address() types.Address {
	return crypto.AddressFromPubKey(k.PublicKeyBytes())
}

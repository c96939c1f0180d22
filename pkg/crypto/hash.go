// Package crypto provides the secp256k1 key, signature and hashing primitives
// used to sign Binance Chain transactions.
package crypto

import (
	"crypto/sha256"

	"github.com/Klingon-tech/binance-chain-go/pkg/types"
	"github.com/btcsuite/btcd/btcutil"
)

// Sha256 computes the SHA-256 digest of data.
func Sha256(data []byte) types.Hash {
	return sha256.Sum256(data)
}

// Hash160 computes RIPEMD160(SHA256(data)).
func Hash160(data []byte) []byte {
	return btcutil.Hash160(data)
}

// AddressFromPubKey derives an address from a compressed public key.
// Address = RIPEMD160(SHA256(compressed_pubkey)).
func AddressFromPubKey(pubKey []byte) types.Address {
	var addr types.Address
	copy(addr[:], Hash160(pubKey))
	return addr
}

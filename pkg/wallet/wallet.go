package wallet

import (
	"fmt"

	"github.com/Klingon-tech/binance-chain-go/pkg/crypto"
	"github.com/Klingon-tech/binance-chain-go/pkg/types"
	"github.com/tyler-smith/go-bip32"
)

// Wallet holds one secp256k1 key and the Binance Chain address derived from
// it. A Wallet never changes after construction and is safe for concurrent use.
type Wallet struct {
	network  types.Network
	key      *crypto.PrivateKey
	address  types.Address
	mnemonic string
	path     DerivationPath
}

// New creates a wallet from a fresh random seed, derived along DefaultPath.
func New(network types.Network) (*Wallet, error) {
	seed, err := bip32.NewSeed()
	if err != nil {
		return nil, fmt.Errorf("generate seed: %w", err)
	}
	return FromSeed(network, seed)
}

// NewWithMnemonic creates a wallet from a new 24-word mnemonic. The mnemonic
// is retained and available through Mnemonic.
func NewWithMnemonic(network types.Network, passphrase string) (*Wallet, error) {
	mnemonic, err := GenerateMnemonic()
	if err != nil {
		return nil, err
	}
	return FromMnemonic(network, mnemonic, passphrase)
}

// FromMnemonic recovers the wallet at DefaultPath for mnemonic and passphrase.
func FromMnemonic(network types.Network, mnemonic, passphrase string) (*Wallet, error) {
	return FromMnemonicPath(network, mnemonic, passphrase, DefaultPath)
}

// FromMnemonicPath recovers the wallet at an arbitrary derivation path.
func FromMnemonicPath(network types.Network, mnemonic, passphrase string, path DerivationPath) (*Wallet, error) {
	seed, err := SeedFromMnemonic(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}
	defer zero(seed)

	w, err := FromSeedPath(network, seed, path)
	if err != nil {
		return nil, err
	}
	w.mnemonic = normalizeMnemonic(mnemonic)
	return w, nil
}

// FromSeed derives the wallet at DefaultPath from a BIP-32 seed.
func FromSeed(network types.Network, seed []byte) (*Wallet, error) {
	return FromSeedPath(network, seed, DefaultPath)
}

// FromSeedPath derives the wallet at path from a BIP-32 seed.
func FromSeedPath(network types.Network, seed []byte, path DerivationPath) (*Wallet, error) {
	master, err := NewMasterKey(seed)
	if err != nil {
		return nil, err
	}
	child, err := master.DerivePath(path)
	if err != nil {
		return nil, err
	}
	key, err := child.Signer()
	if err != nil {
		return nil, err
	}
	w := newWallet(network, key)
	w.path = append(DerivationPath(nil), path...)
	return w, nil
}

// FromPrivateKey imports a hex-encoded private key as is, without derivation.
func FromPrivateKey(network types.Network, privHex string) (*Wallet, error) {
	key, err := crypto.PrivateKeyFromHex(privHex)
	if err != nil {
		return nil, err
	}
	return newWallet(network, key), nil
}

// FromKey wraps an already parsed private key.
func FromKey(network types.Network, key *crypto.PrivateKey) *Wallet {
	return newWallet(network, key)
}

// FromKeystore decrypts a v3 keystore document.
func FromKeystore(network types.Network, keystore []byte, password string) (*Wallet, error) {
	key, err := DecryptKey(keystore, password)
	if err != nil {
		return nil, err
	}
	return newWallet(network, key), nil
}

func newWallet(network types.Network, key *crypto.PrivateKey) *Wallet {
	return &Wallet{
		network: network,
		key:     key,
		address: crypto.AddressFromPubKey(key.PublicKey()),
	}
}

// Network returns the network the wallet renders addresses for.
func (w *Wallet) Network() types.Network { return w.network }

// Address returns the 20-byte address hash.
func (w *Wallet) Address() types.Address { return w.address }

// AddressString returns the bech32 address with the network's prefix.
func (w *Wallet) AddressString() string { return w.address.Bech32(w.network.HRP()) }

// PublicKey returns the compressed 33-byte public key.
func (w *Wallet) PublicKey() []byte { return w.key.PublicKey() }

// PublicKeyHex returns the hex encoding of the compressed public key.
func (w *Wallet) PublicKeyHex() string { return w.key.PublicKeyHex() }

// PrivateKeyHex returns the hex encoding of the private key scalar.
func (w *Wallet) PrivateKeyHex() string { return w.key.Hex() }

// Mnemonic returns the recovery phrase, or "" when the wallet was not built
// from one.
func (w *Wallet) Mnemonic() string { return w.mnemonic }

// Path returns the derivation path, or nil for imported keys.
func (w *Wallet) Path() DerivationPath {
	if w.path == nil {
		return nil
	}
	return append(DerivationPath(nil), w.path...)
}

// Sign produces a 64-byte compact signature over SHA-256(msg).
func (w *Wallet) Sign(msg []byte) ([]byte, error) {
	return w.key.Sign(msg)
}

// Verify checks sig against msg and the wallet's public key.
func (w *Wallet) Verify(msg, sig []byte) bool {
	return crypto.VerifySignature(msg, sig, w.key.PublicKey())
}

// Keystore exports the private key as a v3 keystore document.
func (w *Wallet) Keystore(password string, params ScryptParams) ([]byte, error) {
	return EncryptKey(w.key, password, params)
}

// Compile-time interface check.
var _ crypto.Signer = (*Wallet)(nil)

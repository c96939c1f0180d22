package wallet

import "errors"

var (
	// ErrInvalidPath is returned for malformed derivation paths or indices
	// outside [0, 2^31-1].
	ErrInvalidPath = errors.New("invalid derivation path")

	// ErrInvalidMnemonic is returned when a mnemonic fails BIP-39 validation.
	ErrInvalidMnemonic = errors.New("invalid mnemonic")

	// ErrInvalidSeed is returned for seeds outside the BIP-32 length bounds.
	ErrInvalidSeed = errors.New("invalid seed")

	// ErrDecrypt is returned when a keystore cannot be decrypted, usually
	// because the password is wrong.
	ErrDecrypt = errors.New("could not decrypt key with given password")

	// ErrKeystoreFormat is returned for keystore documents this package
	// cannot read.
	ErrKeystoreFormat = errors.New("unsupported keystore format")

	// ErrKeyNotFound is returned by KeyDir when a named key does not exist.
	ErrKeyNotFound = errors.New("key not found")

	// ErrKeyExists is returned by KeyDir when storing under a taken name.
	ErrKeyExists = errors.New("key already exists")
)

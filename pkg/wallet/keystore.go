package wallet

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/Klingon-tech/binance-chain-go/pkg/crypto"
	"github.com/Klingon-tech/binance-chain-go/pkg/types"
	"github.com/google/uuid"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
	"golang.org/x/crypto/sha3"
)

// Keystore document constants (Web3 Secret Storage v3).
const (
	keystoreVersion = 3
	keystoreCipher  = "aes-128-ctr"
	kdfScrypt       = "scrypt"
	kdfPBKDF2       = "pbkdf2"
	prfHMACSHA256   = "hmac-sha256"
	derivedKeyLen   = 32
	saltSize        = 32
)

// ScryptParams holds the scrypt cost parameters of a keystore.
type ScryptParams struct {
	N int
	R int
	P int
}

// StandardScryptParams matches the cost used by common wallet software.
var StandardScryptParams = ScryptParams{N: 1 << 18, R: 8, P: 1}

// LightScryptParams trades strength for speed (tests, constrained devices).
var LightScryptParams = ScryptParams{N: 1 << 12, R: 8, P: 6}

type keystoreJSON struct {
	Address string     `json:"address"`
	Crypto  cryptoJSON `json:"crypto"`
	ID      string     `json:"id"`
	Version int        `json:"version"`
}

type cryptoJSON struct {
	Cipher       string                 `json:"cipher"`
	CipherText   string                 `json:"ciphertext"`
	CipherParams cipherParamsJSON       `json:"cipherparams"`
	KDF          string                 `json:"kdf"`
	KDFParams    map[string]interface{} `json:"kdfparams"`
	MAC          string                 `json:"mac"`
}

type cipherParamsJSON struct {
	IV string `json:"iv"`
}

// EncryptKey seals a private key into a v3 keystore document protected by
// password. The key is stretched with scrypt and encrypted with AES-128-CTR.
func EncryptKey(key *crypto.PrivateKey, password string, params ScryptParams) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	derived, err := scrypt.Key([]byte(password), salt, params.N, params.R, params.P, derivedKeyLen)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	kdfParams := map[string]interface{}{
		"n":     params.N,
		"r":     params.R,
		"p":     params.P,
		"dklen": derivedKeyLen,
		"salt":  hex.EncodeToString(salt),
	}
	return sealKey(key, derived, kdfScrypt, kdfParams)
}

func sealKey(key *crypto.PrivateKey, derived []byte, kdf string, kdfParams map[string]interface{}) ([]byte, error) {
	defer zero(derived)

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, fmt.Errorf("generate iv: %w", err)
	}
	plain := key.Serialize()
	defer zero(plain)

	cipherText, err := aesCTR(derived[:16], plain, iv)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("generate id: %w", err)
	}

	doc := keystoreJSON{
		Address: crypto.AddressFromPubKey(key.PublicKey()).Hex(),
		Crypto: cryptoJSON{
			Cipher:       keystoreCipher,
			CipherText:   hex.EncodeToString(cipherText),
			CipherParams: cipherParamsJSON{IV: hex.EncodeToString(iv)},
			KDF:          kdf,
			KDFParams:    kdfParams,
			MAC:          hex.EncodeToString(keystoreMAC(derived, cipherText)),
		},
		ID:      id.String(),
		Version: keystoreVersion,
	}
	return json.Marshal(doc)
}

// KeystoreAddress reads the address recorded in a keystore document
// without decrypting it.
func KeystoreAddress(data []byte) (types.Address, error) {
	var doc keystoreJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.Address{}, fmt.Errorf("%w: %v", ErrKeystoreFormat, err)
	}
	if doc.Address == "" {
		return types.Address{}, fmt.Errorf("%w: no address", ErrKeystoreFormat)
	}
	return types.HexToAddress(doc.Address)
}

// DecryptKey opens a v3 keystore document. Both scrypt and pbkdf2
// (hmac-sha256) key derivation are accepted.
func DecryptKey(data []byte, password string) (*crypto.PrivateKey, error) {
	var doc keystoreJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeystoreFormat, err)
	}
	if doc.Version != keystoreVersion {
		return nil, fmt.Errorf("%w: version %d", ErrKeystoreFormat, doc.Version)
	}
	if doc.Crypto.Cipher != keystoreCipher {
		return nil, fmt.Errorf("%w: cipher %q", ErrKeystoreFormat, doc.Crypto.Cipher)
	}

	mac, err := hex.DecodeString(doc.Crypto.MAC)
	if err != nil {
		return nil, fmt.Errorf("%w: mac: %v", ErrKeystoreFormat, err)
	}
	iv, err := hex.DecodeString(doc.Crypto.CipherParams.IV)
	if err != nil {
		return nil, fmt.Errorf("%w: iv: %v", ErrKeystoreFormat, err)
	}
	cipherText, err := hex.DecodeString(doc.Crypto.CipherText)
	if err != nil {
		return nil, fmt.Errorf("%w: ciphertext: %v", ErrKeystoreFormat, err)
	}

	derived, err := deriveKeystoreKey(doc.Crypto, password)
	if err != nil {
		return nil, err
	}
	defer zero(derived)

	if !hmac.Equal(keystoreMAC(derived, cipherText), mac) {
		return nil, ErrDecrypt
	}

	plain, err := aesCTR(derived[:16], cipherText, iv)
	if err != nil {
		return nil, err
	}
	defer zero(plain)

	key, err := crypto.PrivateKeyFromBytes(plain)
	if err != nil {
		return nil, fmt.Errorf("keystore key: %w", err)
	}
	if doc.Address != "" {
		want := crypto.AddressFromPubKey(key.PublicKey()).Hex()
		if !bytes.EqualFold([]byte(doc.Address), []byte(want)) {
			return nil, fmt.Errorf("%w: address mismatch", ErrKeystoreFormat)
		}
	}
	return key, nil
}

func deriveKeystoreKey(c cryptoJSON, password string) ([]byte, error) {
	saltHex, _ := c.KDFParams["salt"].(string)
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return nil, fmt.Errorf("%w: salt: %v", ErrKeystoreFormat, err)
	}
	dkLen := paramInt(c.KDFParams, "dklen")
	if dkLen < derivedKeyLen {
		return nil, fmt.Errorf("%w: dklen %d", ErrKeystoreFormat, dkLen)
	}

	switch c.KDF {
	case kdfScrypt:
		n := paramInt(c.KDFParams, "n")
		r := paramInt(c.KDFParams, "r")
		p := paramInt(c.KDFParams, "p")
		key, err := scrypt.Key([]byte(password), salt, n, r, p, dkLen)
		if err != nil {
			return nil, fmt.Errorf("%w: scrypt: %v", ErrKeystoreFormat, err)
		}
		return key, nil
	case kdfPBKDF2:
		if prf, _ := c.KDFParams["prf"].(string); prf != prfHMACSHA256 {
			return nil, fmt.Errorf("%w: prf %q", ErrKeystoreFormat, prf)
		}
		iter := paramInt(c.KDFParams, "c")
		if iter <= 0 {
			return nil, fmt.Errorf("%w: pbkdf2 iterations %d", ErrKeystoreFormat, iter)
		}
		return pbkdf2.Key([]byte(password), salt, iter, dkLen, sha256.New), nil
	default:
		return nil, fmt.Errorf("%w: kdf %q", ErrKeystoreFormat, c.KDF)
	}
}

// paramInt reads a JSON number; encoding/json decodes numbers into float64.
func paramInt(params map[string]interface{}, name string) int {
	switch v := params[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func keystoreMAC(derived, cipherText []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(derived[16:32])
	h.Write(cipherText)
	return h.Sum(nil)
}

func aesCTR(key, in, iv []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("%w: iv length %d", ErrKeystoreFormat, len(iv))
	}
	out := make([]byte, len(in))
	cipher.NewCTR(block, iv).XORKeyStream(out, in)
	return out, nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

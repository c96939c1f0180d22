package wallet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Klingon-tech/binance-chain-go/internal/log"
	"github.com/Klingon-tech/binance-chain-go/pkg/crypto"
)

const keyFileExt = ".json"

// KeyDir manages named v3 keystore files in a directory.
type KeyDir struct {
	path string
}

// NewKeyDir creates a key directory that reads/writes to path.
// The directory is created if it doesn't exist.
func NewKeyDir(path string) (*KeyDir, error) {
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, fmt.Errorf("create keystore dir: %w", err)
	}
	return &KeyDir{path: path}, nil
}

// Path returns the directory backing the key dir.
func (kd *KeyDir) Path() string {
	return kd.path
}

func (kd *KeyDir) keyPath(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid key name %q", name)
	}
	return filepath.Join(kd.path, name+keyFileExt), nil
}

// Store writes a keystore document under name. Existing names are not overwritten.
func (kd *KeyDir) Store(name string, keystore []byte) error {
	path, err := kd.keyPath(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %q", ErrKeyExists, name)
	}
	if err := os.WriteFile(path, keystore, 0600); err != nil {
		return fmt.Errorf("write key: %w", err)
	}
	log.Wallet.Info().Str("name", name).Str("path", path).Msg("Key stored")
	return nil
}

// Create encrypts key with password and stores it under name.
func (kd *KeyDir) Create(name string, key *crypto.PrivateKey, password string, params ScryptParams) error {
	doc, err := EncryptKey(key, password, params)
	if err != nil {
		return fmt.Errorf("encrypt key: %w", err)
	}
	return kd.Store(name, doc)
}

// Read returns the raw keystore document stored under name.
func (kd *KeyDir) Read(name string) ([]byte, error) {
	path, err := kd.keyPath(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read key: %w", err)
	}
	return data, nil
}

// Load decrypts the key stored under name.
func (kd *KeyDir) Load(name, password string) (*crypto.PrivateKey, error) {
	data, err := kd.Read(name)
	if err != nil {
		return nil, err
	}
	key, err := DecryptKey(data, password)
	if err != nil {
		log.Wallet.Debug().Str("name", name).Err(err).Msg("Key decryption failed")
		return nil, fmt.Errorf("decrypt key %q: %w", name, err)
	}
	return key, nil
}

// List returns the sorted names of all key files in the directory.
func (kd *KeyDir) List() ([]string, error) {
	entries, err := os.ReadDir(kd.path)
	if err != nil {
		return nil, fmt.Errorf("read keystore dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if ext := filepath.Ext(name); ext == keyFileExt {
			names = append(names, name[:len(name)-len(ext)])
		}
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the key file stored under name.
func (kd *KeyDir) Delete(name string) error {
	path, err := kd.keyPath(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %q", ErrKeyNotFound, name)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete key: %w", err)
	}
	log.Wallet.Info().Str("name", name).Msg("Key deleted")
	return nil
}

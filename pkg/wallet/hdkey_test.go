package wallet

import (
	"encoding/hex"
	"errors"
	"testing"
)

func testSeed(t *testing.T) []byte {
	t.Helper()
	seed, err := SeedFromMnemonic(testMnemonic, "")
	if err != nil {
		t.Fatalf("SeedFromMnemonic() error: %v", err)
	}
	return seed
}

func TestNewMasterKey(t *testing.T) {
	master, err := NewMasterKey(testSeed(t))
	if err != nil {
		t.Fatalf("NewMasterKey() error: %v", err)
	}
	if n := len(master.PrivateKeyBytes()); n != 32 {
		t.Errorf("private key length = %d, want 32", n)
	}
	if n := len(master.PublicKeyBytes()); n != 33 {
		t.Errorf("public key length = %d, want 33", n)
	}
}

func TestNewMasterKey_InvalidSeedLength(t *testing.T) {
	for _, n := range []int{0, 15, 65, 128} {
		_, err := NewMasterKey(make([]byte, n))
		if !errors.Is(err, ErrInvalidSeed) {
			t.Errorf("seed of %d bytes: error = %v, want ErrInvalidSeed", n, err)
		}
	}
}

func TestDerivePath_KnownVector(t *testing.T) {
	master, err := NewMasterKey(testSeed(t))
	if err != nil {
		t.Fatalf("NewMasterKey() error: %v", err)
	}
	child, err := master.DerivePath(DefaultPath)
	if err != nil {
		t.Fatalf("DerivePath() error: %v", err)
	}

	if got := hex.EncodeToString(child.PrivateKeyBytes()); got != "3955f430d8372b601f3a70c10a707f94c509fb3c51c1e94ddbb7ab9906cb659d" {
		t.Errorf("private key = %s", got)
	}
	if got := hex.EncodeToString(child.PublicKeyBytes()); got != "02a5c1a09e80070d4f42e4c577b1cd840e12f775b83afd07dc01dde138adf64ea9" {
		t.Errorf("public key = %s", got)
	}
	if got := child.Address().Hex(); got != "19ae2a31acaa58d913274180c4b1e46214f92fee" {
		t.Errorf("address = %s", got)
	}
}

func TestDerivePath_StepwiseMatchesPath(t *testing.T) {
	master, err := NewMasterKey(testSeed(t))
	if err != nil {
		t.Fatalf("NewMasterKey() error: %v", err)
	}
	whole, err := master.DerivePath(DefaultPath)
	if err != nil {
		t.Fatalf("DerivePath() error: %v", err)
	}

	step := master
	for _, idx := range DefaultPath {
		step, err = step.DeriveChild(idx)
		if err != nil {
			t.Fatalf("DeriveChild(%d) error: %v", idx, err)
		}
	}
	if whole.Address() != step.Address() {
		t.Error("stepwise derivation differs from DerivePath")
	}
}


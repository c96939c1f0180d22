package wallet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tyler-smith/go-bip32"
)

// MaxPathIndex is the largest index a single path element may carry before
// the hardened offset is applied.
const MaxPathIndex = bip32.FirstHardenedChild - 1

// BIP-44 path constants for Binance Chain.
// Full path: m/44'/714'/account'/change/index
const (
	// PurposeBIP44 is the BIP-44 purpose field (hardened).
	PurposeBIP44 = bip32.FirstHardenedChild + 44

	// CoinTypeBinance is the SLIP-44 coin type of BNB (hardened).
	CoinTypeBinance = bip32.FirstHardenedChild + 714

	// ChangeExternal is for receiving addresses.
	ChangeExternal = 0
)

// DefaultPathString is the derivation path every Binance Chain wallet uses.
const DefaultPathString = "44'/714'/0'/0/0"

// DerivationPath is a sequence of BIP-32 child indices. Hardened indices
// carry the 2^31 offset.
type DerivationPath []uint32

// DefaultPath is m/44'/714'/0'/0/0.
var DefaultPath = DerivationPath{
	PurposeBIP44,
	CoinTypeBinance,
	bip32.FirstHardenedChild + 0,
	ChangeExternal,
	0,
}

// AccountPath returns m/44'/714'/account'/0/index.
func AccountPath(account, index uint32) (DerivationPath, error) {
	if account > MaxPathIndex || index > MaxPathIndex {
		return nil, fmt.Errorf("%w: account %d index %d out of range", ErrInvalidPath, account, index)
	}
	return DerivationPath{
		PurposeBIP44,
		CoinTypeBinance,
		bip32.FirstHardenedChild + account,
		ChangeExternal,
		index,
	}, nil
}

// ParseDerivationPath converts a path such as "44'/714'/0'/0/0" or
// "m/44'/714'/0'/0/0" into indices. A trailing ' marks a hardened element.
func ParseDerivationPath(s string) (DerivationPath, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	elems := strings.Split(s, "/")
	if strings.TrimSpace(elems[0]) == "m" {
		elems = elems[1:]
	}

	path := make(DerivationPath, 0, len(elems))
	for _, elem := range elems {
		elem = strings.TrimSpace(elem)
		var offset uint32
		if strings.HasSuffix(elem, "'") {
			offset = bip32.FirstHardenedChild
			elem = strings.TrimSuffix(elem, "'")
		}
		if elem == "" {
			return nil, fmt.Errorf("%w: empty element in %q", ErrInvalidPath, s)
		}

		v, err := strconv.ParseUint(elem, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid element %q", ErrInvalidPath, elem)
		}
		if v > uint64(MaxPathIndex) {
			return nil, fmt.Errorf("%w: element %d must be in range [0, %d]", ErrInvalidPath, v, MaxPathIndex)
		}
		path = append(path, offset+uint32(v))
	}
	return path, nil
}

// String renders the path in its canonical "m/44'/714'/0'/0/0" form.
func (p DerivationPath) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, idx := range p {
		b.WriteByte('/')
		if idx >= bip32.FirstHardenedChild {
			b.WriteString(strconv.FormatUint(uint64(idx-bip32.FirstHardenedChild), 10))
			b.WriteByte('\'')
			continue
		}
		b.WriteString(strconv.FormatUint(uint64(idx), 10))
	}
	return b.String()
}

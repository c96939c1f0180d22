package tx

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountDecimals is the fixed number of decimal places on-chain amounts carry.
const AmountDecimals = 8

// maxAmountDigits bounds the integer digits of an unscaled amount. MaxInt64
// has 19 digits, so anything longer overflows once scaled.
const maxAmountDigits = 19

var (
	amountScale = decimal.New(1, AmountDecimals)
	maxAmount   = decimal.NewFromInt(math.MaxInt64)
)

// ScaleAmount converts a decimal string such as "1.23456789" into the chain's
// integer representation (x 10^8). Extra precision is truncated, never rounded.
// Negative values and values above MaxInt64 after scaling are rejected.
func ScaleAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty amount", ErrEncoding)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q: %v", ErrEncoding, s, err)
	}
	v, err := ScaleDecimal(d)
	if err != nil {
		return 0, fmt.Errorf("amount %q: %w", s, err)
	}
	return v, nil
}

// ScaleDecimal is ScaleAmount for an already parsed decimal. The magnitude
// is checked from the coefficient and exponent before any rescaling, so
// exponent notation like "1e10000000" fails fast.
func ScaleDecimal(d decimal.Decimal) (int64, error) {
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: negative amount", ErrEncoding)
	}
	if d.IsZero() {
		return 0, nil
	}
	// d < 10^magnitude
	magnitude := int64(d.NumDigits()) + int64(d.Exponent())
	if magnitude > maxAmountDigits {
		return 0, fmt.Errorf("%w: amount overflows int64 after scaling", ErrEncoding)
	}
	if magnitude <= -AmountDecimals {
		return 0, nil
	}
	scaled := d.Mul(amountScale).Truncate(0)
	if scaled.GreaterThan(maxAmount) {
		return 0, fmt.Errorf("%w: amount overflows int64 after scaling", ErrEncoding)
	}
	return scaled.IntPart(), nil
}

// FormatAmount renders a scaled integer amount with eight decimal places.
func FormatAmount(v int64) string {
	return decimal.New(v, -AmountDecimals).StringFixed(AmountDecimals)
}

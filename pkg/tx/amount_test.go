package tx

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestScaleAmount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"1", 100000000},
		{"1.00000000", 100000000},
		{"1.23456789", 123456789},
		{"1.234567895", 123456789},
		{"1.234567899999", 123456789},
		{"0.00000001", 1},
		{"0.000000009", 0},
		{"0", 0},
		{" 42.5 ", 4250000000},
		{"92233720368.54775807", math.MaxInt64},
		{"1e2", 10000000000},
		{"15e-9", 1},
		{"1e-10000000", 0},
		{"0e10000000", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ScaleAmount(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestScaleAmount_Invalid(t *testing.T) {
	for _, in := range []string{"", "-1", "-0.00000001", "abc", "1e", "92233720368.54775808"} {
		t.Run(in, func(t *testing.T) {
			_, err := ScaleAmount(in)
			require.ErrorIs(t, err, ErrEncoding)
		})
	}
}

func TestScaleAmount_HugeExponent(t *testing.T) {
	for _, in := range []string{"1e10000000", "9e19", "123456789012345678901"} {
		_, err := ScaleAmount(in)
		require.ErrorIs(t, err, ErrEncoding)
		require.Contains(t, err.Error(), strconv.Quote(in))
		require.Less(t, len(err.Error()), 128)
	}
}

func TestFormatAmount(t *testing.T) {
	require.Equal(t, "1.00000000", FormatAmount(100000000))
	require.Equal(t, "0.00000001", FormatAmount(1))
	require.Equal(t, "1.23456789", FormatAmount(123456789))
}

func TestScaleAmount_TruncatesExtraDigits(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		whole := rapid.Int64Range(0, 1_000_000_000).Draw(t, "whole")
		frac := rapid.Int64Range(0, 99_999_999).Draw(t, "frac")
		extra := rapid.IntRange(0, 9).Draw(t, "extra")

		s := strconv.FormatInt(whole, 10) + "." + leftPad(frac) + strconv.Itoa(extra)
		got, err := ScaleAmount(s)
		if err != nil {
			t.Fatalf("ScaleAmount(%q): %v", s, err)
		}
		if want := whole*100_000_000 + frac; got != want {
			t.Fatalf("ScaleAmount(%q) = %d, want %d", s, got, want)
		}
	})
}

func leftPad(frac int64) string {
	s := strconv.FormatInt(frac, 10)
	for len(s) < 8 {
		s = "0" + s
	}
	return s
}

package wallet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateMnemonic(t *testing.T) {
	m1, err := GenerateMnemonic()
	require.NoError(t, err)
	m2, err := GenerateMnemonic()
	require.NoError(t, err)

	require.Len(t, strings.Fields(m1), 24)
	require.True(t, ValidateMnemonic(m1))
	require.NotEqual(t, m1, m2)
}

func TestValidateMnemonic(t *testing.T) {
	tests := []struct {
		name     string
		mnemonic string
		valid    bool
	}{
		{"12 words", testMnemonic, true},
		{"24 words", strings.Repeat("abandon ", 23) + "art", true},
		{"extra whitespace", "  abandon abandon abandon abandon abandon abandon\tabandon abandon abandon abandon abandon   about \n", true},
		{"empty", "", false},
		{"unknown words", "not a valid mnemonic phrase at all", false},
		{"bad checksum", strings.TrimSpace(strings.Repeat("abandon ", 24)), false},
		{"single word", "abandon", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.valid, ValidateMnemonic(tt.mnemonic))
		})
	}
}

package tx

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKind_Prefix(t *testing.T) {
	tests := map[Kind]string{
		KindNewOrder:      "CE6DC043",
		KindCancelOrder:   "166E681B",
		KindTransfer:      "2A2C87FA",
		KindMultiTransfer: "2A2C87FA",
		KindFreeze:        "E774B32D",
		KindUnfreeze:      "6515FF0D",
		KindVote:          "A1CADD36",
		KindIssue:         "17EFAB80",
		KindMint:          "467E0829",
		KindBurn:          "7ED2D2A0",
		KindPubKey:        "EB5AE987",
		KindStdTx:         "F0625DEE",
	}
	for kind, want := range tests {
		p := kind.Prefix()
		require.Equal(t, want, strings.ToUpper(hex.EncodeToString(p[:])), kind.String())
		require.True(t, kind.Valid())

		back, err := KindFromPrefix(p)
		require.NoError(t, err)
		if kind == KindMultiTransfer {
			require.Equal(t, KindTransfer, back)
			continue
		}
		require.Equal(t, kind, back)
	}
}

func TestKindFromPrefix_Unknown(t *testing.T) {
	_, err := KindFromPrefix([PrefixSize]byte{0xde, 0xad, 0xbe, 0xef})
	require.ErrorIs(t, err, ErrUnsupportedMsg)

	require.False(t, Kind(0).Valid())
	require.Panics(t, func() { Kind(99).Prefix() })
	require.Equal(t, "Kind(99)", Kind(99).String())
}

func TestMsg_KindMatchesVariant(t *testing.T) {
	want := []Kind{
		KindNewOrder, KindCancelOrder, KindTransfer, KindMultiTransfer, KindFreeze,
		KindUnfreeze, KindVote, KindIssue, KindMint, KindBurn,
	}
	for i, msg := range allMsgs(t) {
		require.Equal(t, want[i], msg.Kind())
	}
}

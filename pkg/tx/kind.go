package tx

import (
	"encoding/hex"
	"fmt"
)

// PrefixSize is the length of an amino type prefix.
const PrefixSize = 4

// Kind enumerates the message kinds the chain accepts, plus the two framing
// kinds used inside a signed transaction.
type Kind uint8

const (
	KindNewOrder Kind = iota + 1
	KindCancelOrder
	KindTransfer
	KindMultiTransfer
	KindFreeze
	KindUnfreeze
	KindVote
	KindIssue
	KindMint
	KindBurn

	KindPubKey
	KindStdTx
)

var kindPrefixes = map[Kind][PrefixSize]byte{
	KindNewOrder:      {0xCE, 0x6D, 0xC0, 0x43},
	KindCancelOrder:   {0x16, 0x6E, 0x68, 0x1B},
	KindTransfer:      {0x2A, 0x2C, 0x87, 0xFA},
	KindMultiTransfer: {0x2A, 0x2C, 0x87, 0xFA},
	KindFreeze:        {0xE7, 0x74, 0xB3, 0x2D},
	KindUnfreeze:      {0x65, 0x15, 0xFF, 0x0D},
	KindVote:          {0xA1, 0xCA, 0xDD, 0x36},
	KindIssue:         {0x17, 0xEF, 0xAB, 0x80},
	KindMint:          {0x46, 0x7E, 0x08, 0x29},
	KindBurn:          {0x7E, 0xD2, 0xD2, 0xA0},
	KindPubKey:        {0xEB, 0x5A, 0xE9, 0x87},
	KindStdTx:         {0xF0, 0x62, 0x5D, 0xEE},
}

var kindNames = map[Kind]string{
	KindNewOrder:      "NewOrder",
	KindCancelOrder:   "CancelOrder",
	KindTransfer:      "Transfer",
	KindMultiTransfer: "MultiTransfer",
	KindFreeze:        "TokenFreeze",
	KindUnfreeze:      "TokenUnfreeze",
	KindVote:          "Vote",
	KindIssue:         "Issue",
	KindMint:          "Mint",
	KindBurn:          "Burn",
	KindPubKey:        "PubKey",
	KindStdTx:         "StdTx",
}

// Prefix returns the 4-byte type prefix of k. Transfer and MultiTransfer
// share the Send prefix. Prefix panics for an undefined kind.
func (k Kind) Prefix() [PrefixSize]byte {
	p, ok := kindPrefixes[k]
	if !ok {
		panic(fmt.Sprintf("tx: no prefix for %s", k))
	}
	return p
}

// Valid reports whether k is a defined kind.
func (k Kind) Valid() bool {
	_, ok := kindPrefixes[k]
	return ok
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// KindFromPrefix maps a type prefix back to its message kind. The Send
// prefix maps to KindTransfer; the decoded message reports its exact kind.
func KindFromPrefix(p [PrefixSize]byte) (Kind, error) {
	for _, k := range []Kind{
		KindNewOrder, KindCancelOrder, KindTransfer, KindFreeze, KindUnfreeze,
		KindVote, KindIssue, KindMint, KindBurn, KindPubKey, KindStdTx,
	} {
		if kindPrefixes[k] == p {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: prefix %s", ErrUnsupportedMsg, hex.EncodeToString(p[:]))
}

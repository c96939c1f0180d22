// Package tx builds, signs, encodes and decodes Binance Chain transactions.
//
// A transaction carries exactly one Msg. Its canonical JSON sign document is
// produced by SignBytes, the compact signature by a crypto.Signer, and the
// broadcastable blob by Assemble. Every step is a pure function of its inputs.
package tx

import (
	"fmt"
)

// Msg is one of the message variants defined in this package. The set is
// closed: only types declared here implement it.
type Msg interface {
	// Kind identifies the message variant and its type prefix.
	Kind() Kind
	// ValidateBasic checks the message fields without network access.
	ValidateBasic() error

	signObject(hrp string) Object
	appendProto(b []byte) []byte
}

// SignObject returns the JSON object msg contributes to the sign document,
// with addresses rendered for hrp.
func SignObject(msg Msg, hrp string) Object {
	return msg.signObject(hrp)
}

// EncodeMsg returns the amino binary form of msg: type prefix followed by the
// protobuf body.
func EncodeMsg(msg Msg) ([]byte, error) {
	if msg == nil {
		return nil, fmt.Errorf("%w: nil message", ErrUnsupportedMsg)
	}
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	prefix := msg.Kind().Prefix()
	out := make([]byte, 0, 64)
	out = append(out, prefix[:]...)
	return msg.appendProto(out), nil
}

// DecodeMsg parses the output of EncodeMsg.
func DecodeMsg(b []byte) (Msg, error) {
	if len(b) < PrefixSize {
		return nil, fmt.Errorf("%w: message shorter than type prefix", ErrEncoding)
	}
	var prefix [PrefixSize]byte
	copy(prefix[:], b)
	kind, err := KindFromPrefix(prefix)
	if err != nil {
		return nil, err
	}
	body := b[PrefixSize:]

	switch kind {
	case KindNewOrder:
		return decodeNewOrder(body)
	case KindCancelOrder:
		return decodeCancelOrder(body)
	case KindTransfer:
		return decodeSend(body)
	case KindFreeze:
		m, err := decodeTokenAmount(body)
		if err != nil {
			return nil, err
		}
		return &FreezeMsg{TokenAmount: m}, nil
	case KindUnfreeze:
		m, err := decodeTokenAmount(body)
		if err != nil {
			return nil, err
		}
		return &UnfreezeMsg{TokenAmount: m}, nil
	case KindMint:
		m, err := decodeTokenAmount(body)
		if err != nil {
			return nil, err
		}
		return &MintMsg{TokenAmount: m}, nil
	case KindBurn:
		m, err := decodeTokenAmount(body)
		if err != nil {
			return nil, err
		}
		return &BurnMsg{TokenAmount: m}, nil
	case KindVote:
		return decodeVote(body)
	case KindIssue:
		return decodeIssue(body)
	default:
		return nil, fmt.Errorf("%w: %s is not a message", ErrUnsupportedMsg, kind)
	}
}

// Field bounds, in bytes. Symbols cover trading pairs such as
// "ABCDEFGH-123M_XYZ-000" as well as suffixed token denoms.
const (
	MaxSymbolLength    = 32
	MaxTokenNameLength = 32
)

func tooLong(kind Kind, field, value string, limit int) error {
	return fmt.Errorf("%w: %s: %s is %d bytes, max %d", ErrEncoding, kind, field, len(value), limit)
}

func missing(kind Kind, field string) error {
	return fmt.Errorf("%w: %s: missing %s", ErrEncoding, kind, field)
}

func nonPositive(kind Kind, field string, v int64) error {
	return fmt.Errorf("%w: %s: %s must be positive, got %d", ErrEncoding, kind, field, v)
}

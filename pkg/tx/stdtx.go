package tx

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/Klingon-tech/binance-chain-go/pkg/crypto"
	"github.com/Klingon-tech/binance-chain-go/pkg/types"
	"google.golang.org/protobuf/encoding/protowire"
)

// Signature is the StdSignature entry of a signed transaction.
type Signature struct {
	PubKey        []byte
	Signature     []byte
	AccountNumber int64
	Sequence      int64
}

// StdTx is a decoded transaction.
type StdTx struct {
	Msgs       []Msg
	Signatures []Signature
	Memo       string
	Source     int64
	Data       []byte
}

// EncodePubKey frames a compressed public key as PubKey prefix ‖ uvarint(len) ‖ key.
func EncodePubKey(pub []byte) []byte {
	prefix := KindPubKey.Prefix()
	out := make([]byte, 0, PrefixSize+1+len(pub))
	out = append(out, prefix[:]...)
	out = protowire.AppendVarint(out, uint64(len(pub)))
	return append(out, pub...)
}

// DecodePubKey is the inverse of EncodePubKey.
func DecodePubKey(b []byte) ([]byte, error) {
	if len(b) < PrefixSize {
		return nil, fmt.Errorf("%w: pubkey shorter than type prefix", ErrEncoding)
	}
	prefix := KindPubKey.Prefix()
	if !bytes.Equal(b[:PrefixSize], prefix[:]) {
		return nil, fmt.Errorf("%w: pubkey prefix %s", ErrUnsupportedMsg, hex.EncodeToString(b[:PrefixSize]))
	}
	key, n := protowire.ConsumeBytes(b[PrefixSize:])
	if n < 0 {
		return nil, fmt.Errorf("%w: pubkey: %v", ErrEncoding, protowire.ParseError(n))
	}
	if PrefixSize+n != len(b) {
		return nil, fmt.Errorf("%w: pubkey has %d trailing bytes", ErrEncoding, len(b)-PrefixSize-n)
	}
	return append([]byte(nil), key...), nil
}

func (s Signature) appendProto(b []byte) []byte {
	b = appendBytesField(b, 1, EncodePubKey(s.PubKey))
	b = appendBytesField(b, 2, s.Signature)
	b = appendInt64Field(b, 3, s.AccountNumber)
	return appendInt64Field(b, 4, s.Sequence)
}

func decodeSignature(b []byte) (Signature, error) {
	var s Signature
	err := walkFields(b, func(f protoField) error {
		var err error
		switch f.num {
		case 1:
			if err = f.expect(protowire.BytesType); err == nil {
				s.PubKey, err = DecodePubKey(f.v)
			}
		case 2:
			if err = f.expect(protowire.BytesType); err == nil {
				s.Signature = append([]byte(nil), f.v...)
			}
		case 3:
			s.AccountNumber, err = decodeInt64(f)
		case 4:
			s.Sequence, err = decodeInt64(f)
		}
		return err
	})
	if err != nil {
		return Signature{}, fmt.Errorf("decode signature: %w", err)
	}
	return s, nil
}

// Assemble frames one encoded message and its signature into the broadcast
// blob: uvarint(len) ‖ StdTx prefix ‖ protobuf body.
func Assemble(msgBin []byte, sig Signature, memo string, source int64, data []byte) ([]byte, error) {
	if len(msgBin) < PrefixSize {
		return nil, fmt.Errorf("%w: encoded message shorter than type prefix", ErrEncoding)
	}
	if len(sig.PubKey) == 0 || len(sig.Signature) == 0 {
		return nil, fmt.Errorf("%w: incomplete signature", ErrEncoding)
	}
	if sig.AccountNumber < 0 || sig.Sequence < 0 || source < 0 {
		return nil, fmt.Errorf("%w: negative account number, sequence or source", ErrEncoding)
	}

	var body []byte
	body = appendRepeatedBytes(body, 1, msgBin)
	body = appendRepeatedBytes(body, 2, sig.appendProto(nil))
	body = appendStringField(body, 3, memo)
	body = appendInt64Field(body, 4, source)
	body = appendBytesField(body, 5, data)

	prefix := KindStdTx.Prefix()
	framed := uint64(PrefixSize + len(body))
	out := make([]byte, 0, protowire.SizeVarint(framed)+int(framed))
	out = protowire.AppendVarint(out, framed)
	out = append(out, prefix[:]...)
	return append(out, body...), nil
}

// Decode parses a broadcast blob produced by Assemble. The leading length
// must exactly cover the remaining bytes.
func Decode(blob []byte) (*StdTx, error) {
	size, n := protowire.ConsumeVarint(blob)
	if n < 0 {
		return nil, fmt.Errorf("%w: length prefix: %v", ErrEncoding, protowire.ParseError(n))
	}
	rest := blob[n:]
	if size != uint64(len(rest)) {
		return nil, fmt.Errorf("%w: length prefix %d, have %d bytes", ErrEncoding, size, len(rest))
	}
	if len(rest) < PrefixSize {
		return nil, fmt.Errorf("%w: transaction shorter than type prefix", ErrEncoding)
	}
	prefix := KindStdTx.Prefix()
	if !bytes.Equal(rest[:PrefixSize], prefix[:]) {
		return nil, fmt.Errorf("%w: transaction prefix %s", ErrUnsupportedMsg, hex.EncodeToString(rest[:PrefixSize]))
	}

	tx := &StdTx{}
	err := walkFields(rest[PrefixSize:], func(f protoField) error {
		var err error
		switch f.num {
		case 1:
			if err = f.expect(protowire.BytesType); err != nil {
				return err
			}
			var msg Msg
			if msg, err = DecodeMsg(f.v); err == nil {
				tx.Msgs = append(tx.Msgs, msg)
			}
		case 2:
			if err = f.expect(protowire.BytesType); err != nil {
				return err
			}
			var sig Signature
			if sig, err = decodeSignature(f.v); err == nil {
				tx.Signatures = append(tx.Signatures, sig)
			}
		case 3:
			tx.Memo, err = decodeString(f)
		case 4:
			tx.Source, err = decodeInt64(f)
		case 5:
			if err = f.expect(protowire.BytesType); err == nil {
				tx.Data = append([]byte(nil), f.v...)
			}
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// DecodeHex decodes a hex-encoded broadcast blob.
func DecodeHex(s string) (*StdTx, error) {
	blob, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return Decode(blob)
}

// Verify recomputes the sign bytes of a single-message transaction and checks
// its signature, the way a validator would.
func (t *StdTx) Verify(chainID string, network types.Network) error {
	if len(t.Msgs) != 1 || len(t.Signatures) != 1 {
		return fmt.Errorf("%w: want one message and one signature, have %d and %d",
			ErrEncoding, len(t.Msgs), len(t.Signatures))
	}
	sig := t.Signatures[0]
	env := Envelope{
		ChainID:       chainID,
		AccountNumber: sig.AccountNumber,
		Sequence:      sig.Sequence,
		Memo:          t.Memo,
		Source:        t.Source,
		Data:          t.Data,
		Network:       network,
	}
	signBytes, err := SignBytes(env, t.Msgs[0])
	if err != nil {
		return err
	}
	if !crypto.VerifySignature(signBytes, sig.Signature, sig.PubKey) {
		return fmt.Errorf("%w: signature does not verify", crypto.ErrSignature)
	}
	return nil
}

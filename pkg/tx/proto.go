package tx

import (
	"fmt"

	"github.com/Klingon-tech/binance-chain-go/pkg/types"
	"google.golang.org/protobuf/encoding/protowire"
)

// Field writers follow proto3: zero values are omitted.

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendStringField(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendInt64Field(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

func appendBoolField(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}

// appendRepeatedBytes writes every element, including empty ones.
func appendRepeatedBytes(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

// protoField is one decoded field. Varint fields populate u, length-delimited
// fields populate v.
type protoField struct {
	num protowire.Number
	typ protowire.Type
	u   uint64
	v   []byte
}

func (f protoField) int64() int64 { return int64(f.u) }

func (f protoField) expect(typ protowire.Type) error {
	if f.typ != typ {
		return fmt.Errorf("%w: field %d has wire type %d, want %d", ErrEncoding, f.num, f.typ, typ)
	}
	return nil
}

// walkFields calls fn for every field in a protobuf message body.
// Fixed-width and group fields are skipped.
func walkFields(b []byte, fn func(f protoField) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrEncoding, protowire.ParseError(n))
		}
		b = b[n:]

		f := protoField{num: num, typ: typ}
		switch typ {
		case protowire.VarintType:
			f.u, n = protowire.ConsumeVarint(b)
		case protowire.BytesType:
			f.v, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return fmt.Errorf("%w: field %d: %v", ErrEncoding, num, protowire.ParseError(n))
		}
		b = b[n:]

		if typ != protowire.VarintType && typ != protowire.BytesType {
			continue
		}
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

func decodeAddress(f protoField) (types.Address, error) {
	if err := f.expect(protowire.BytesType); err != nil {
		return types.Address{}, err
	}
	addr, err := types.AddressFromBytes(f.v)
	if err != nil {
		return types.Address{}, fmt.Errorf("%w: field %d: %v", ErrEncoding, f.num, err)
	}
	return addr, nil
}

func decodeString(f protoField) (string, error) {
	if err := f.expect(protowire.BytesType); err != nil {
		return "", err
	}
	return string(f.v), nil
}

func decodeInt64(f protoField) (int64, error) {
	if err := f.expect(protowire.VarintType); err != nil {
		return 0, err
	}
	return f.int64(), nil
}

package tx

import "errors"

var (
	// ErrUnsupportedMsg is returned for unknown type prefixes and message kinds.
	ErrUnsupportedMsg = errors.New("unsupported message kind")

	// ErrEncoding is returned when a value cannot be represented on the wire:
	// negative or overflowing amounts, missing fields, malformed bytes.
	ErrEncoding = errors.New("encoding error")

	// ErrPrecondition is returned when the envelope lacks the chain id,
	// account number or sequence needed to build sign bytes.
	ErrPrecondition = errors.New("precondition failed")
)

package types

import "errors"

var (
	// ErrInvalidAddress is returned for bech32 checksum failures, unexpected
	// network prefixes, bad 5-bit groupings and wrong payload lengths.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrUnknownNetwork is returned when a network name or prefix is not recognized.
	ErrUnknownNetwork = errors.New("unknown network")
)

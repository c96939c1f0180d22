package tx

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/Klingon-tech/binance-chain-go/pkg/types"
)

// DefaultSource is the source id stamped on transactions built by this client.
const DefaultSource int64 = 1

// MaxMemoLength is the longest memo the chain accepts, in characters.
const MaxMemoLength = 128

// Envelope carries everything a transaction needs besides its message.
type Envelope struct {
	ChainID       string
	AccountNumber int64
	Sequence      int64
	Memo          string
	Source        int64
	Data          []byte
	Network       types.Network
}

// NewEnvelope returns an envelope for network with the default source.
// An empty chainID selects the network's default chain id.
func NewEnvelope(network types.Network, chainID string, accountNumber, sequence int64) Envelope {
	if chainID == "" {
		chainID = network.ChainID()
	}
	return Envelope{
		ChainID:       chainID,
		AccountNumber: accountNumber,
		Sequence:      sequence,
		Source:        DefaultSource,
		Network:       network,
	}
}

// WithMemo returns a copy of e with memo set.
func (e Envelope) WithMemo(memo string) Envelope {
	e.Memo = memo
	return e
}

// Validate checks the fields SignBytes depends on.
func (e Envelope) Validate() error {
	switch {
	case e.ChainID == "":
		return fmt.Errorf("%w: missing chain id", ErrPrecondition)
	case e.AccountNumber < 0:
		return fmt.Errorf("%w: negative account number %d", ErrPrecondition, e.AccountNumber)
	case e.Sequence < 0:
		return fmt.Errorf("%w: negative sequence %d", ErrPrecondition, e.Sequence)
	case e.Source < 0:
		return fmt.Errorf("%w: negative source %d", ErrEncoding, e.Source)
	case utf8.RuneCountInString(e.Memo) > MaxMemoLength:
		return fmt.Errorf("%w: memo longer than %d characters", ErrEncoding, MaxMemoLength)
	}
	return nil
}

// SignDoc returns the sign document of msg under e as an Object.
func SignDoc(e Envelope, msg Msg) (Object, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, fmt.Errorf("%w: nil message", ErrUnsupportedMsg)
	}
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	var data interface{}
	if len(e.Data) > 0 {
		data = e.Data
	}
	return Object{
		"account_number": strconv.FormatInt(e.AccountNumber, 10),
		"chain_id":       e.ChainID,
		"data":           data,
		"memo":           e.Memo,
		"msgs":           []Object{msg.signObject(e.Network.HRP())},
		"sequence":       strconv.FormatInt(e.Sequence, 10),
		"source":         strconv.FormatInt(e.Source, 10),
	}, nil
}

// SignBytes returns the canonical JSON bytes that get signed for msg.
func SignBytes(e Envelope, msg Msg) ([]byte, error) {
	doc, err := SignDoc(e, msg)
	if err != nil {
		return nil, err
	}
	b, err := doc.Canonical()
	if err != nil {
		return nil, fmt.Errorf("%w: sign doc: %v", ErrEncoding, err)
	}
	return b, nil
}

package tx

import (
	"fmt"

	"github.com/Klingon-tech/binance-chain-go/pkg/types"
)

// TokenAmount is the shared body of the freeze, unfreeze, mint and burn
// messages: an amount of one token symbol owned by From.
type TokenAmount struct {
	From   types.Address
	Symbol string
	Amount int64
}

func newTokenAmount(kind Kind, from types.Address, symbol, amount string) (TokenAmount, error) {
	amt, err := ScaleAmount(amount)
	if err != nil {
		return TokenAmount{}, fmt.Errorf("%s amount: %w", kind, err)
	}
	t := TokenAmount{From: from, Symbol: symbol, Amount: amt}
	return t, t.validate(kind)
}

func (t TokenAmount) validate(kind Kind) error {
	switch {
	case t.From.IsZero():
		return missing(kind, "from")
	case t.Symbol == "":
		return missing(kind, "symbol")
	case len(t.Symbol) > MaxSymbolLength:
		return tooLong(kind, "symbol", t.Symbol, MaxSymbolLength)
	case t.Amount <= 0:
		return nonPositive(kind, "amount", t.Amount)
	}
	return nil
}

func (t TokenAmount) signObject(hrp string) Object {
	return Object{
		"from":   t.From.Bech32(hrp),
		"symbol": t.Symbol,
		"amount": t.Amount,
	}
}

func (t TokenAmount) appendProto(b []byte) []byte {
	b = appendBytesField(b, 1, t.From[:])
	b = appendStringField(b, 2, t.Symbol)
	return appendInt64Field(b, 3, t.Amount)
}

func decodeTokenAmount(body []byte) (TokenAmount, error) {
	var t TokenAmount
	err := walkFields(body, func(f protoField) error {
		var err error
		switch f.num {
		case 1:
			t.From, err = decodeAddress(f)
		case 2:
			t.Symbol, err = decodeString(f)
		case 3:
			t.Amount, err = decodeInt64(f)
		}
		return err
	})
	if err != nil {
		return TokenAmount{}, fmt.Errorf("decode token message: %w", err)
	}
	return t, nil
}

// FreezeMsg locks part of a token balance.
type FreezeMsg struct{ TokenAmount }

// NewFreeze builds a FreezeMsg for amount (decimal string) of symbol.
func NewFreeze(from types.Address, symbol, amount string) (*FreezeMsg, error) {
	t, err := newTokenAmount(KindFreeze, from, symbol, amount)
	if err != nil {
		return nil, err
	}
	return &FreezeMsg{t}, nil
}

func (m *FreezeMsg) Kind() Kind           { return KindFreeze }
func (m *FreezeMsg) ValidateBasic() error { return m.validate(KindFreeze) }

// UnfreezeMsg releases a frozen token balance.
type UnfreezeMsg struct{ TokenAmount }

// NewUnfreeze builds an UnfreezeMsg for amount (decimal string) of symbol.
func NewUnfreeze(from types.Address, symbol, amount string) (*UnfreezeMsg, error) {
	t, err := newTokenAmount(KindUnfreeze, from, symbol, amount)
	if err != nil {
		return nil, err
	}
	return &UnfreezeMsg{t}, nil
}

func (m *UnfreezeMsg) Kind() Kind           { return KindUnfreeze }
func (m *UnfreezeMsg) ValidateBasic() error { return m.validate(KindUnfreeze) }

// MintMsg creates new units of a mintable token.
type MintMsg struct{ TokenAmount }

// NewMint builds a MintMsg for amount (decimal string) of symbol.
func NewMint(from types.Address, symbol, amount string) (*MintMsg, error) {
	t, err := newTokenAmount(KindMint, from, symbol, amount)
	if err != nil {
		return nil, err
	}
	return &MintMsg{t}, nil
}

func (m *MintMsg) Kind() Kind           { return KindMint }
func (m *MintMsg) ValidateBasic() error { return m.validate(KindMint) }

// BurnMsg destroys units of a token.
type BurnMsg struct{ TokenAmount }

// NewBurn builds a BurnMsg for amount (decimal string) of symbol.
func NewBurn(from types.Address, symbol, amount string) (*BurnMsg, error) {
	t, err := newTokenAmount(KindBurn, from, symbol, amount)
	if err != nil {
		return nil, err
	}
	return &BurnMsg{t}, nil
}

func (m *BurnMsg) Kind() Kind           { return KindBurn }
func (m *BurnMsg) ValidateBasic() error { return m.validate(KindBurn) }

// IssueMsg creates a new token.
type IssueMsg struct {
	From        types.Address
	Name        string
	Symbol      string
	TotalSupply int64
	Mintable    bool
}

// NewIssue builds an IssueMsg. totalSupply is a decimal string scaled by 10^8.
func NewIssue(from types.Address, name, symbol, totalSupply string, mintable bool) (*IssueMsg, error) {
	supply, err := ScaleAmount(totalSupply)
	if err != nil {
		return nil, fmt.Errorf("total supply: %w", err)
	}
	msg := &IssueMsg{From: from, Name: name, Symbol: symbol, TotalSupply: supply, Mintable: mintable}
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	return msg, nil
}

func (m *IssueMsg) Kind() Kind { return KindIssue }

func (m *IssueMsg) ValidateBasic() error {
	switch {
	case m.From.IsZero():
		return missing(KindIssue, "from")
	case m.Name == "":
		return missing(KindIssue, "name")
	case len(m.Name) > MaxTokenNameLength:
		return tooLong(KindIssue, "name", m.Name, MaxTokenNameLength)
	case m.Symbol == "":
		return missing(KindIssue, "symbol")
	case len(m.Symbol) > MaxSymbolLength:
		return tooLong(KindIssue, "symbol", m.Symbol, MaxSymbolLength)
	case m.TotalSupply <= 0:
		return nonPositive(KindIssue, "total_supply", m.TotalSupply)
	}
	return nil
}

func (m *IssueMsg) signObject(hrp string) Object {
	return Object{
		"from":         m.From.Bech32(hrp),
		"name":         m.Name,
		"symbol":       m.Symbol,
		"total_supply": m.TotalSupply,
		"mintable":     m.Mintable,
	}
}

func (m *IssueMsg) appendProto(b []byte) []byte {
	b = appendBytesField(b, 1, m.From[:])
	b = appendStringField(b, 2, m.Name)
	b = appendStringField(b, 3, m.Symbol)
	b = appendInt64Field(b, 4, m.TotalSupply)
	return appendBoolField(b, 5, m.Mintable)
}

func decodeIssue(body []byte) (*IssueMsg, error) {
	m := &IssueMsg{}
	err := walkFields(body, func(f protoField) error {
		var err error
		switch f.num {
		case 1:
			m.From, err = decodeAddress(f)
		case 2:
			m.Name, err = decodeString(f)
		case 3:
			m.Symbol, err = decodeString(f)
		case 4:
			m.TotalSupply, err = decodeInt64(f)
		case 5:
			var v int64
			v, err = decodeInt64(f)
			m.Mintable = v != 0
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("decode Issue: %w", err)
	}
	return m, nil
}

package tx

import (
	"fmt"

	"github.com/Klingon-tech/binance-chain-go/pkg/types"
	"google.golang.org/protobuf/encoding/protowire"
)

// Input is the sending side of a SendMsg.
type Input struct {
	Address types.Address
	Coins   types.Coins
}

// Output is the receiving side of a SendMsg.
type Output struct {
	Address types.Address
	Coins   types.Coins
}

// SendMsg moves coins between accounts. With a single coin it is a
// Transfer, with several it is a MultiTransfer; both share one wire format.
type SendMsg struct {
	Inputs  []Input
	Outputs []Output
}

// Transfer is one (denomination, decimal amount) pair of a multi-transfer.
type Transfer struct {
	Denom  string
	Amount string
}

// NewTransfer builds a SendMsg moving amount of denom from one address to another.
func NewTransfer(from, to types.Address, denom, amount string) (*SendMsg, error) {
	return NewMultiTransfer(from, to, []Transfer{{Denom: denom, Amount: amount}})
}

// NewMultiTransfer builds a SendMsg moving several denominations to a single
// recipient. Coins are sorted by denomination; duplicates are rejected.
func NewMultiTransfer(from, to types.Address, transfers []Transfer) (*SendMsg, error) {
	if len(transfers) == 0 {
		return nil, missing(KindMultiTransfer, "coins")
	}
	coins := make(types.Coins, 0, len(transfers))
	for _, t := range transfers {
		amt, err := ScaleAmount(t.Amount)
		if err != nil {
			return nil, fmt.Errorf("%s amount: %w", t.Denom, err)
		}
		coins = append(coins, types.Coin{Denom: t.Denom, Amount: amt})
	}
	coins.Sort()

	msg := &SendMsg{
		Inputs:  []Input{{Address: from, Coins: coins}},
		Outputs: []Output{{Address: to, Coins: append(types.Coins(nil), coins...)}},
	}
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	return msg, nil
}

// Kind reports KindTransfer for a single coin and KindMultiTransfer otherwise.
func (m *SendMsg) Kind() Kind {
	if len(m.Inputs) == 1 && len(m.Inputs[0].Coins) == 1 {
		return KindTransfer
	}
	return KindMultiTransfer
}

func (m *SendMsg) ValidateBasic() error {
	kind := m.Kind()
	if len(m.Inputs) == 0 {
		return missing(kind, "inputs")
	}
	if len(m.Outputs) == 0 {
		return missing(kind, "outputs")
	}
	for _, in := range m.Inputs {
		if err := validateSide(kind, "input", in.Address, in.Coins); err != nil {
			return err
		}
	}
	for _, out := range m.Outputs {
		if err := validateSide(kind, "output", out.Address, out.Coins); err != nil {
			return err
		}
	}
	return nil
}

func validateSide(kind Kind, side string, addr types.Address, coins types.Coins) error {
	if addr.IsZero() {
		return missing(kind, side+" address")
	}
	if len(coins) == 0 {
		return missing(kind, side+" coins")
	}
	for i, c := range coins {
		if c.Denom == "" {
			return missing(kind, side+" denom")
		}
		if len(c.Denom) > MaxSymbolLength {
			return tooLong(kind, side+" denom", c.Denom, MaxSymbolLength)
		}
		if c.Amount <= 0 {
			return nonPositive(kind, c.Denom+" amount", c.Amount)
		}
		if i > 0 && coins[i-1].Denom >= c.Denom {
			return fmt.Errorf("%w: %s: %s coins not sorted or duplicate denom %q", ErrEncoding, kind, side, c.Denom)
		}
	}
	return nil
}

func coinsObject(coins types.Coins) []Object {
	out := make([]Object, 0, len(coins))
	for _, c := range coins {
		out = append(out, Object{"denom": c.Denom, "amount": c.Amount})
	}
	return out
}

func (m *SendMsg) signObject(hrp string) Object {
	inputs := make([]Object, 0, len(m.Inputs))
	for _, in := range m.Inputs {
		inputs = append(inputs, Object{"address": in.Address.Bech32(hrp), "coins": coinsObject(in.Coins)})
	}
	outputs := make([]Object, 0, len(m.Outputs))
	for _, out := range m.Outputs {
		outputs = append(outputs, Object{"address": out.Address.Bech32(hrp), "coins": coinsObject(out.Coins)})
	}
	return Object{"inputs": inputs, "outputs": outputs}
}

func appendIO(b []byte, addr types.Address, coins types.Coins) []byte {
	b = appendBytesField(b, 1, addr[:])
	for _, c := range coins {
		var coin []byte
		coin = appendStringField(coin, 1, c.Denom)
		coin = appendInt64Field(coin, 2, c.Amount)
		b = appendRepeatedBytes(b, 2, coin)
	}
	return b
}

func (m *SendMsg) appendProto(b []byte) []byte {
	for _, in := range m.Inputs {
		b = appendRepeatedBytes(b, 1, appendIO(nil, in.Address, in.Coins))
	}
	for _, out := range m.Outputs {
		b = appendRepeatedBytes(b, 2, appendIO(nil, out.Address, out.Coins))
	}
	return b
}

func decodeIO(b []byte) (types.Address, types.Coins, error) {
	var addr types.Address
	var coins types.Coins
	err := walkFields(b, func(f protoField) error {
		switch f.num {
		case 1:
			a, err := decodeAddress(f)
			addr = a
			return err
		case 2:
			if err := f.expect(protowire.BytesType); err != nil {
				return err
			}
			var c types.Coin
			err := walkFields(f.v, func(cf protoField) error {
				var err error
				switch cf.num {
				case 1:
					c.Denom, err = decodeString(cf)
				case 2:
					c.Amount, err = decodeInt64(cf)
				}
				return err
			})
			if err != nil {
				return err
			}
			coins = append(coins, c)
		}
		return nil
	})
	return addr, coins, err
}

func decodeSend(body []byte) (*SendMsg, error) {
	m := &SendMsg{}
	err := walkFields(body, func(f protoField) error {
		if f.num != 1 && f.num != 2 {
			return nil
		}
		if err := f.expect(protowire.BytesType); err != nil {
			return err
		}
		addr, coins, err := decodeIO(f.v)
		if err != nil {
			return err
		}
		if f.num == 1 {
			m.Inputs = append(m.Inputs, Input{Address: addr, Coins: coins})
		} else {
			m.Outputs = append(m.Outputs, Output{Address: addr, Coins: coins})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("decode Send: %w", err)
	}
	return m, nil
}

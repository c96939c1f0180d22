package tx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Klingon-tech/binance-chain-go/pkg/types"
)

// OrderID returns the id the chain expects for an order placed by sender
// with the given account sequence: UPPER(hex(sender)) + "-" + (sequence+1).
func OrderID(sender types.Address, sequence int64) string {
	return strings.ToUpper(sender.Hex()) + "-" + strconv.FormatInt(sequence+1, 10)
}

// NewOrderMsg places a limit order.
type NewOrderMsg struct {
	Sender      types.Address
	ID          string
	Symbol      string
	OrderType   types.OrderType
	Side        types.Side
	Price       int64
	Quantity    int64
	TimeInForce types.TimeInForce
}

// NewOrder builds a NewOrderMsg. price and quantity are decimal strings
// scaled by 10^8; sequence is the sender's current account sequence.
func NewOrder(sender types.Address, sequence int64, symbol string, side types.Side, orderType types.OrderType, price, quantity string, tif types.TimeInForce) (*NewOrderMsg, error) {
	if sequence < 0 {
		return nil, fmt.Errorf("%w: negative sequence %d", ErrPrecondition, sequence)
	}
	p, err := ScaleAmount(price)
	if err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}
	q, err := ScaleAmount(quantity)
	if err != nil {
		return nil, fmt.Errorf("quantity: %w", err)
	}
	msg := &NewOrderMsg{
		Sender:      sender,
		ID:          OrderID(sender, sequence),
		Symbol:      symbol,
		OrderType:   orderType,
		Side:        side,
		Price:       p,
		Quantity:    q,
		TimeInForce: tif,
	}
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	return msg, nil
}

func (m *NewOrderMsg) Kind() Kind { return KindNewOrder }

func (m *NewOrderMsg) ValidateBasic() error {
	switch {
	case m.Sender.IsZero():
		return missing(KindNewOrder, "sender")
	case m.ID == "":
		return missing(KindNewOrder, "id")
	case m.Symbol == "":
		return missing(KindNewOrder, "symbol")
	case len(m.Symbol) > MaxSymbolLength:
		return tooLong(KindNewOrder, "symbol", m.Symbol, MaxSymbolLength)
	case !m.Side.Valid():
		return fmt.Errorf("%w: NewOrder: invalid side %d", ErrEncoding, int64(m.Side))
	case !m.OrderType.Valid():
		return fmt.Errorf("%w: NewOrder: invalid order type %d", ErrEncoding, int64(m.OrderType))
	case !m.TimeInForce.Valid():
		return fmt.Errorf("%w: NewOrder: invalid time in force %d", ErrEncoding, int64(m.TimeInForce))
	case m.Price <= 0:
		return nonPositive(KindNewOrder, "price", m.Price)
	case m.Quantity <= 0:
		return nonPositive(KindNewOrder, "quantity", m.Quantity)
	}
	return nil
}

func (m *NewOrderMsg) signObject(hrp string) Object {
	return Object{
		"sender":      m.Sender.Bech32(hrp),
		"id":          m.ID,
		"symbol":      m.Symbol,
		"ordertype":   int64(m.OrderType),
		"side":        int64(m.Side),
		"price":       m.Price,
		"quantity":    m.Quantity,
		"timeinforce": int64(m.TimeInForce),
	}
}

func (m *NewOrderMsg) appendProto(b []byte) []byte {
	b = appendBytesField(b, 1, m.Sender[:])
	b = appendStringField(b, 2, m.ID)
	b = appendStringField(b, 3, m.Symbol)
	b = appendInt64Field(b, 4, int64(m.OrderType))
	b = appendInt64Field(b, 5, int64(m.Side))
	b = appendInt64Field(b, 6, m.Price)
	b = appendInt64Field(b, 7, m.Quantity)
	return appendInt64Field(b, 8, int64(m.TimeInForce))
}

func decodeNewOrder(body []byte) (*NewOrderMsg, error) {
	m := &NewOrderMsg{}
	err := walkFields(body, func(f protoField) error {
		var err error
		switch f.num {
		case 1:
			m.Sender, err = decodeAddress(f)
		case 2:
			m.ID, err = decodeString(f)
		case 3:
			m.Symbol, err = decodeString(f)
		case 4:
			var v int64
			v, err = decodeInt64(f)
			m.OrderType = types.OrderType(v)
		case 5:
			var v int64
			v, err = decodeInt64(f)
			m.Side = types.Side(v)
		case 6:
			m.Price, err = decodeInt64(f)
		case 7:
			m.Quantity, err = decodeInt64(f)
		case 8:
			var v int64
			v, err = decodeInt64(f)
			m.TimeInForce = types.TimeInForce(v)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("decode NewOrder: %w", err)
	}
	return m, nil
}

// CancelOrderMsg cancels an open order by its id.
type CancelOrderMsg struct {
	Sender types.Address
	Symbol string
	RefID  string
}

// CancelOrder builds a CancelOrderMsg.
func CancelOrder(sender types.Address, symbol, refID string) (*CancelOrderMsg, error) {
	msg := &CancelOrderMsg{Sender: sender, Symbol: symbol, RefID: refID}
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	return msg, nil
}

func (m *CancelOrderMsg) Kind() Kind { return KindCancelOrder }

func (m *CancelOrderMsg) ValidateBasic() error {
	switch {
	case m.Sender.IsZero():
		return missing(KindCancelOrder, "sender")
	case m.Symbol == "":
		return missing(KindCancelOrder, "symbol")
	case len(m.Symbol) > MaxSymbolLength:
		return tooLong(KindCancelOrder, "symbol", m.Symbol, MaxSymbolLength)
	case m.RefID == "":
		return missing(KindCancelOrder, "refid")
	}
	return nil
}

func (m *CancelOrderMsg) signObject(hrp string) Object {
	return Object{
		"sender": m.Sender.Bech32(hrp),
		"symbol": m.Symbol,
		"refid":  m.RefID,
	}
}

func (m *CancelOrderMsg) appendProto(b []byte) []byte {
	b = appendBytesField(b, 1, m.Sender[:])
	b = appendStringField(b, 2, m.Symbol)
	return appendStringField(b, 3, m.RefID)
}

func decodeCancelOrder(body []byte) (*CancelOrderMsg, error) {
	m := &CancelOrderMsg{}
	err := walkFields(body, func(f protoField) error {
		var err error
		switch f.num {
		case 1:
			m.Sender, err = decodeAddress(f)
		case 2:
			m.Symbol, err = decodeString(f)
		case 3:
			m.RefID, err = decodeString(f)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("decode CancelOrder: %w", err)
	}
	return m, nil
}

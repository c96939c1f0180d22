package types

import (
	"fmt"
	"strings"
)

// Side is the order side.
type Side int64

const (
	SideBuy  Side = 1
	SideSell Side = 2
)

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "BUY"
	case SideSell:
		return "SELL"
	default:
		return fmt.Sprintf("Side(%d)", int64(s))
	}
}

// Valid reports whether s is BUY or SELL.
func (s Side) Valid() bool { return s == SideBuy || s == SideSell }

// ParseSide parses "buy"/"sell" (any case) or the numeric value.
func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY", "1":
		return SideBuy, nil
	case "SELL", "2":
		return SideSell, nil
	}
	return 0, fmt.Errorf("unknown side %q", s)
}

// OrderType is the order type. The chain currently only accepts limit orders.
type OrderType int64

const (
	OrderTypeLimit OrderType = 2
)

func (o OrderType) String() string {
	if o == OrderTypeLimit {
		return "LIMIT"
	}
	return fmt.Sprintf("OrderType(%d)", int64(o))
}

// Valid reports whether o is a type the chain accepts.
func (o OrderType) Valid() bool { return o == OrderTypeLimit }

// ParseOrderType parses "limit" (any case) or the numeric value.
func ParseOrderType(s string) (OrderType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LIMIT", "2":
		return OrderTypeLimit, nil
	}
	return 0, fmt.Errorf("unknown order type %q", s)
}

// TimeInForce controls how long an order stays on the book.
type TimeInForce int64

const (
	// TimeInForceGTE is good-till-expire.
	TimeInForceGTE TimeInForce = 1
	// TimeInForceIOC is immediate-or-cancel.
	TimeInForceIOC TimeInForce = 3
)

func (t TimeInForce) String() string {
	switch t {
	case TimeInForceGTE:
		return "GTE"
	case TimeInForceIOC:
		return "IOC"
	default:
		return fmt.Sprintf("TimeInForce(%d)", int64(t))
	}
}

// Valid reports whether t is GTE or IOC.
func (t TimeInForce) Valid() bool { return t == TimeInForceGTE || t == TimeInForceIOC }

// ParseTimeInForce parses "GTE"/"IOC" (any case) or the numeric value.
func ParseTimeInForce(s string) (TimeInForce, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "GTE", "1":
		return TimeInForceGTE, nil
	case "IOC", "3":
		return TimeInForceIOC, nil
	}
	return 0, fmt.Errorf("unknown time in force %q", s)
}

// VoteOption is a governance vote choice.
type VoteOption int64

const (
	VoteYes        VoteOption = 1
	VoteNo         VoteOption = 2
	VoteAbstain    VoteOption = 3
	VoteNoWithVeto VoteOption = 4
)

func (v VoteOption) String() string {
	switch v {
	case VoteYes:
		return "YES"
	case VoteNo:
		return "NO"
	case VoteAbstain:
		return "ABSTAIN"
	case VoteNoWithVeto:
		return "NO_WITH_VETO"
	default:
		return fmt.Sprintf("VoteOption(%d)", int64(v))
	}
}

// Valid reports whether v is one of the four defined options.
func (v VoteOption) Valid() bool {
	return v >= VoteYes && v <= VoteNoWithVeto
}

// ParseVoteOption parses an option name or its numeric value.
func ParseVoteOption(s string) (VoteOption, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "YES", "1":
		return VoteYes, nil
	case "NO", "2":
		return VoteNo, nil
	case "ABSTAIN", "3":
		return VoteAbstain, nil
	case "NO_WITH_VETO", "NOWITHVETO", "VETO", "4":
		return VoteNoWithVeto, nil
	}
	return 0, fmt.Errorf("unknown vote option %q", s)
}

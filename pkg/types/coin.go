package types

import "sort"

// Coin is an amount of a single denomination, already scaled by 1e8.
type Coin struct {
	Denom  string
	Amount int64
}

// Coins is a list of coins.
type Coins []Coin

// Sort orders coins by denomination, the order the chain expects.
func (c Coins) Sort() {
	sort.Slice(c, func(i, j int) bool { return c[i].Denom < c[j].Denom })
}

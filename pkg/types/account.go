package types

import "github.com/shopspring/decimal"

// Balance is one token balance of an account as reported by the DEX.
type Balance struct {
	Symbol string          `json:"symbol"`
	Free   decimal.Decimal `json:"free"`
	Locked decimal.Decimal `json:"locked"`
	Frozen decimal.Decimal `json:"frozen"`
}

// Account is the on-chain state a transaction is built against.
type Account struct {
	AccountNumber int64     `json:"account_number"`
	Address       string    `json:"address"`
	Balances      []Balance `json:"balances"`
	Sequence      int64     `json:"sequence"`
	Flags         uint64    `json:"flags"`
}

// Balance returns the balance for symbol, or a zero Balance.
func (a *Account) Balance(symbol string) Balance {
	for _, b := range a.Balances {
		if b.Symbol == symbol {
			return b
		}
	}
	return Balance{Symbol: symbol}
}

// TxResult is the outcome of broadcasting one transaction.
type TxResult struct {
	Code uint32 `json:"code"`
	Hash string `json:"hash"`
	Log  string `json:"log"`
	Data string `json:"data"`
	OK   bool   `json:"ok"`
}

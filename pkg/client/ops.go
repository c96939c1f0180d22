package client

import (
	"context"

	"github.com/Klingon-tech/binance-chain-go/pkg/tx"
	"github.com/Klingon-tech/binance-chain-go/pkg/types"
)

// NewOrder places an order. The order id is derived from the account's
// current sequence.
func (s *Service) NewOrder(ctx context.Context, symbol string, side types.Side, orderType types.OrderType, price, quantity string, tif types.TimeInForce, opts ...TxOption) (*Result, error) {
	return s.Submit(ctx, func(acct *types.Account) (tx.Msg, error) {
		return tx.NewOrder(s.signer.Address(), acct.Sequence, symbol, side, orderType, price, quantity, tif)
	}, opts...)
}

// CancelOrder cancels the order refID on symbol.
func (s *Service) CancelOrder(ctx context.Context, symbol, refID string, opts ...TxOption) (*Result, error) {
	return s.Submit(ctx, func(*types.Account) (tx.Msg, error) {
		return tx.CancelOrder(s.signer.Address(), symbol, refID)
	}, opts...)
}

// Transfer sends amount of denom to to.
func (s *Service) Transfer(ctx context.Context, to types.Address, denom, amount string, opts ...TxOption) (*Result, error) {
	return s.Submit(ctx, func(*types.Account) (tx.Msg, error) {
		return tx.NewTransfer(s.signer.Address(), to, denom, amount)
	}, opts...)
}

// MultiTransfer sends several denominations to to in one message.
func (s *Service) MultiTransfer(ctx context.Context, to types.Address, transfers []tx.Transfer, opts ...TxOption) (*Result, error) {
	return s.Submit(ctx, func(*types.Account) (tx.Msg, error) {
		return tx.NewMultiTransfer(s.signer.Address(), to, transfers)
	}, opts...)
}

// Freeze freezes amount of symbol.
func (s *Service) Freeze(ctx context.Context, symbol, amount string, opts ...TxOption) (*Result, error) {
	return s.Submit(ctx, func(*types.Account) (tx.Msg, error) {
		return tx.NewFreeze(s.signer.Address(), symbol, amount)
	}, opts...)
}

// Unfreeze releases frozen amount of symbol.
func (s *Service) Unfreeze(ctx context.Context, symbol, amount string, opts ...TxOption) (*Result, error) {
	return s.Submit(ctx, func(*types.Account) (tx.Msg, error) {
		return tx.NewUnfreeze(s.signer.Address(), symbol, amount)
	}, opts...)
}

// Vote casts option on a governance proposal.
func (s *Service) Vote(ctx context.Context, proposalID int64, option types.VoteOption, opts ...TxOption) (*Result, error) {
	return s.Submit(ctx, func(*types.Account) (tx.Msg, error) {
		return tx.NewVote(s.signer.Address(), proposalID, option)
	}, opts...)
}

// Issue creates a new token.
func (s *Service) Issue(ctx context.Context, name, symbol, totalSupply string, mintable bool, opts ...TxOption) (*Result, error) {
	return s.Submit(ctx, func(*types.Account) (tx.Msg, error) {
		return tx.NewIssue(s.signer.Address(), name, symbol, totalSupply, mintable)
	}, opts...)
}

// Mint mints amount of a mintable token owned by the signer.
func (s *Service) Mint(ctx context.Context, symbol, amount string, opts ...TxOption) (*Result, error) {
	return s.Submit(ctx, func(*types.Account) (tx.Msg, error) {
		return tx.NewMint(s.signer.Address(), symbol, amount)
	}, opts...)
}

// Burn burns amount of symbol.
func (s *Service) Burn(ctx context.Context, symbol, amount string, opts ...TxOption) (*Result, error) {
	return s.Submit(ctx, func(*types.Account) (tx.Msg, error) {
		return tx.NewBurn(s.signer.Address(), symbol, amount)
	}, opts...)
}

// Package client submits transactions for one wallet: it fetches the
// account state, builds and signs the transaction, broadcasts it and
// records the outcome.
package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Klingon-tech/binance-chain-go/internal/journal"
	"github.com/Klingon-tech/binance-chain-go/internal/log"
	"github.com/Klingon-tech/binance-chain-go/pkg/crypto"
	"github.com/Klingon-tech/binance-chain-go/pkg/httpclient"
	"github.com/Klingon-tech/binance-chain-go/pkg/tx"
	"github.com/Klingon-tech/binance-chain-go/pkg/types"
)

// ErrRejected is returned when the chain answers a broadcast with a
// non-zero code.
var ErrRejected = errors.New("transaction rejected")

// AccountSource returns the current state of an account by bech32 address.
type AccountSource interface {
	Account(ctx context.Context, address string) (*types.Account, error)
}

// Broadcaster submits a hex-encoded signed transaction.
type Broadcaster interface {
	Broadcast(ctx context.Context, txHex string, sync bool) ([]types.TxResult, error)
}

// Signer is a key bound to an address on a network. *wallet.Wallet
// implements it.
type Signer interface {
	crypto.Signer
	Address() types.Address
	Network() types.Network
}

// AccountLocks serializes submissions per address and remembers the last
// sequence each address signed with. Share one between services that sign
// for the same account so they never reuse a sequence.
type AccountLocks struct {
	mu       sync.Mutex
	accounts map[types.Address]*accountLock
}

// accountLock guards one address. A sync broadcast returns before the block
// commits, so the API can still report a sequence that was already used.
type accountLock struct {
	sync.Mutex
	used     bool
	lastUsed int64
}

// NewAccountLocks returns an empty lock table.
func NewAccountLocks() *AccountLocks {
	return &AccountLocks{accounts: make(map[types.Address]*accountLock)}
}

func (l *AccountLocks) get(addr types.Address) *accountLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.accounts[addr]
	if !ok {
		a = &accountLock{}
		l.accounts[addr] = a
	}
	return a
}

// Lock acquires the lock of addr and returns its release function.
func (l *AccountLocks) Lock(addr types.Address) func() {
	a := l.get(addr)
	a.Lock()
	return a.Unlock
}

// next returns the sequence to sign with given the committed one.
// Caller holds the lock.
func (a *accountLock) next(committed int64) int64 {
	if a.used && a.lastUsed >= committed {
		return a.lastUsed + 1
	}
	return committed
}

// commit records an accepted sequence. Caller holds the lock.
func (a *accountLock) commit(seq int64) {
	a.used = true
	a.lastUsed = seq
}

// reset forgets the local sequence so the next submission trusts the chain
// again. Caller holds the lock.
func (a *accountLock) reset() {
	a.used = false
	a.lastUsed = 0
}

// Result is the outcome of one submitted transaction.
type Result struct {
	Tx      *tx.SignedTx
	Results []types.TxResult
}

// Hash returns the chain hash of the submitted transaction.
func (r *Result) Hash() types.Hash { return r.Tx.Hash() }

// Service submits transactions signed by one Signer.
type Service struct {
	accounts    AccountSource
	broadcaster Broadcaster
	signer      Signer
	journal     *journal.Journal
	locks       *AccountLocks
	chainID     string
	sync        bool
}

// Option configures a Service.
type Option func(*Service)

// WithJournal records every broadcast in j.
func WithJournal(j *journal.Journal) Option {
	return func(s *Service) { s.journal = j }
}

// WithLocks shares a lock table between services.
func WithLocks(l *AccountLocks) Option {
	return func(s *Service) { s.locks = l }
}

// WithChainID overrides the network's default chain id.
func WithChainID(chainID string) Option {
	return func(s *Service) { s.chainID = chainID }
}

// WithSync selects synchronous (CheckTx) or asynchronous broadcasts.
// The default is synchronous.
func WithSync(sync bool) Option {
	return func(s *Service) { s.sync = sync }
}

// New creates a service. The API client implements both AccountSource
// and Broadcaster; a node RPC Broadcaster can be passed instead.
func New(accounts AccountSource, broadcaster Broadcaster, signer Signer, opts ...Option) *Service {
	s := &Service{
		accounts:    accounts,
		broadcaster: broadcaster,
		signer:      signer,
		sync:        true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.locks == nil {
		s.locks = NewAccountLocks()
	}
	return s
}

// Address returns the signing address.
func (s *Service) Address() types.Address { return s.signer.Address() }

// TxOption adjusts the envelope of a single transaction.
type TxOption func(*tx.Envelope)

// WithMemo sets the transaction memo.
func WithMemo(memo string) TxOption {
	return func(e *tx.Envelope) { e.Memo = memo }
}

// WithSource sets the source id.
func WithSource(source int64) TxOption {
	return func(e *tx.Envelope) { e.Source = source }
}

// WithData attaches opaque data to the transaction.
func WithData(data []byte) TxOption {
	return func(e *tx.Envelope) { e.Data = append([]byte(nil), data...) }
}

// BuildFunc builds the message once the account state is known. NewOrder
// needs the sequence for its order id.
type BuildFunc func(acct *types.Account) (tx.Msg, error)

// Account fetches the signer's account.
func (s *Service) Account(ctx context.Context) (*types.Account, error) {
	network := s.signer.Network()
	addr := s.signer.Address().Bech32(network.HRP())
	acct, err := s.accounts.Account(ctx, addr)
	if httpclient.IsNotFound(err) || (err == nil && acct == nil) {
		return nil, fmt.Errorf("%w: account %s does not exist on chain", tx.ErrPrecondition, addr)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch account %s: %w", addr, err)
	}
	return acct, nil
}

// Submit runs fetch, build, sign and broadcast while holding the account
// lock. The sequence is the larger of the committed one and the last one
// this lock table accepted plus one.
func (s *Service) Submit(ctx context.Context, build BuildFunc, opts ...TxOption) (*Result, error) {
	defer log.Benchmark("submit")()

	lock := s.locks.get(s.signer.Address())
	lock.Lock()
	defer lock.Unlock()

	fetched, err := s.Account(ctx)
	if err != nil {
		return nil, err
	}
	acct := *fetched
	acct.Sequence = lock.next(fetched.Sequence)

	msg, err := build(&acct)
	if err != nil {
		return nil, err
	}

	env := tx.NewEnvelope(s.signer.Network(), s.chainID, acct.AccountNumber, acct.Sequence)
	for _, opt := range opts {
		opt(&env)
	}

	signed, err := tx.Sign(env, msg, s.signer)
	if err != nil {
		return nil, err
	}

	logger := log.Client.With().
		Str("hash", signed.Hash().String()).
		Str("kind", msg.Kind().String()).
		Int64("sequence", env.Sequence).
		Logger()

	results, err := s.broadcaster.Broadcast(ctx, signed.Hex(), s.sync)
	if err != nil {
		logger.Warn().Err(err).Msg("Broadcast failed")
		lock.reset()
		return nil, fmt.Errorf("broadcast: %w", err)
	}
	res := &Result{Tx: signed, Results: results}

	var code uint32
	var rawLog string
	if len(results) > 0 {
		code, rawLog = results[0].Code, results[0].Log
	}
	s.record(signed, msg, code, rawLog)

	if code != 0 {
		lock.reset()
		logger.Warn().Uint32("code", code).Str("log", rawLog).Msg("Transaction rejected")
		return res, fmt.Errorf("%w: code %d: %s", ErrRejected, code, rawLog)
	}
	lock.commit(env.Sequence)
	logger.Info().Msg("Transaction broadcast")
	return res, nil
}

func (s *Service) record(signed *tx.SignedTx, msg tx.Msg, code uint32, rawLog string) {
	if s.journal == nil {
		return
	}
	err := s.journal.Record(journal.Entry{
		Hash:     signed.Hash(),
		Address:  s.signer.Address(),
		Kind:     msg.Kind().String(),
		Sequence: signed.Envelope.Sequence,
		Hex:      signed.Hex(),
		Code:     code,
		Log:      rawLog,
		Time:     time.Now().UTC(),
	})
	if err != nil {
		log.Client.Error().Err(err).Msg("Journal write failed")
	}
}

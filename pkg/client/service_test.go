package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Klingon-tech/binance-chain-go/internal/journal"
	"github.com/Klingon-tech/binance-chain-go/internal/storage"
	"github.com/Klingon-tech/binance-chain-go/pkg/httpclient"
	"github.com/Klingon-tech/binance-chain-go/pkg/tx"
	"github.com/Klingon-tech/binance-chain-go/pkg/types"
	"github.com/Klingon-tech/binance-chain-go/pkg/wallet"
)

const testPrivKey = "90335b9d2153ad1a9799a3ccc070bd64b4164e9642ee1dd48053c33f9a3a05e9"

// fakeChain serves account state and accepts broadcasts, bumping the
// sequence of every accepted transaction. With uncommitted set, accepted
// transactions stay in the mempool and the reported sequence never moves.
type fakeChain struct {
	mu          sync.Mutex
	accounts    map[string]*types.Account
	broadcast   []string
	code        uint32
	delay       time.Duration
	err         error
	uncommitted bool
}

func newFakeChain() *fakeChain {
	return &fakeChain{accounts: make(map[string]*types.Account)}
}

func (f *fakeChain) Account(_ context.Context, address string) (*types.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acct, ok := f.accounts[address]
	if !ok {
		return nil, &httpclient.APIError{StatusCode: 404, Message: "account not found"}
	}
	cp := *acct
	return &cp, nil
}

func (f *fakeChain) Broadcast(_ context.Context, txHex string, _ bool) ([]types.TxResult, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	decoded, err := tx.DecodeHex(txHex)
	if err != nil {
		return nil, err
	}
	f.broadcast = append(f.broadcast, txHex)
	res := types.TxResult{Code: f.code, OK: f.code == 0}
	if f.code != 0 {
		res.Log = "insufficient fund"
		return []types.TxResult{res}, nil
	}
	if f.uncommitted {
		return []types.TxResult{res}, nil
	}
	for _, acct := range f.accounts {
		if acct.Sequence == decoded.Signatures[0].Sequence {
			acct.Sequence++
		}
	}
	return []types.TxResult{res}, nil
}

func testWallet(t *testing.T) *wallet.Wallet {
	t.Helper()
	w, err := wallet.FromPrivateKey(types.Testnet, testPrivKey)
	require.NoError(t, err)
	return w
}

func setup(t *testing.T, opts ...Option) (*Service, *fakeChain, *wallet.Wallet) {
	t.Helper()
	w := testWallet(t)
	chain := newFakeChain()
	chain.accounts[w.AddressString()] = &types.Account{
		AccountNumber: 42,
		Address:       w.AddressString(),
		Sequence:      7,
	}
	return New(chain, chain, w, opts...), chain, w
}

func TestService_Transfer(t *testing.T) {
	svc, chain, w := setup(t)

	res, err := svc.Transfer(context.Background(), w.Address(), "BNB", "0.5", WithMemo("rent"))
	require.NoError(t, err)
	require.Len(t, chain.broadcast, 1)
	require.Equal(t, res.Tx.Hex(), chain.broadcast[0])

	decoded, err := tx.DecodeHex(chain.broadcast[0])
	require.NoError(t, err)
	require.Equal(t, "rent", decoded.Memo)
	require.Equal(t, int64(42), decoded.Signatures[0].AccountNumber)
	require.Equal(t, int64(7), decoded.Signatures[0].Sequence)
	require.NoError(t, decoded.Verify(types.TestnetChainID, types.Testnet))
}

func TestService_NewOrderUsesSequence(t *testing.T) {
	svc, _, w := setup(t)

	res, err := svc.NewOrder(context.Background(), "BNB_BTC", types.SideBuy, types.OrderTypeLimit,
		"0.002", "10", types.TimeInForceGTE)
	require.NoError(t, err)

	order, ok := res.Tx.Msg.(*tx.NewOrderMsg)
	require.True(t, ok)
	require.Equal(t, tx.OrderID(w.Address(), 7), order.ID)
}

func TestService_AllOperations(t *testing.T) {
	svc, chain, w := setup(t)
	ctx := context.Background()

	calls := []func() (*Result, error){
		func() (*Result, error) { return svc.CancelOrder(ctx, "BNB_BTC", tx.OrderID(w.Address(), 1)) },
		func() (*Result, error) {
			return svc.MultiTransfer(ctx, w.Address(), []tx.Transfer{{Denom: "BNB", Amount: "1"}, {Denom: "ABC-123", Amount: "2"}})
		},
		func() (*Result, error) { return svc.Freeze(ctx, "BNB", "1") },
		func() (*Result, error) { return svc.Unfreeze(ctx, "BNB", "1") },
		func() (*Result, error) { return svc.Vote(ctx, 3, types.VoteYes) },
		func() (*Result, error) { return svc.Issue(ctx, "Test Token", "TTK", "1000", true) },
		func() (*Result, error) { return svc.Mint(ctx, "TTK-5E1", "10") },
		func() (*Result, error) { return svc.Burn(ctx, "TTK-5E1", "1") },
	}
	for i, call := range calls {
		res, err := call()
		require.NoError(t, err, "call %d", i)
		require.Equal(t, int64(7+i), res.Tx.Envelope.Sequence, "call %d", i)
	}
	require.Len(t, chain.broadcast, len(calls))
}

func TestService_UnknownAccount(t *testing.T) {
	w := testWallet(t)
	chain := newFakeChain()
	svc := New(chain, chain, w)

	_, err := svc.Freeze(context.Background(), "BNB", "1")
	require.ErrorIs(t, err, tx.ErrPrecondition)
	require.Empty(t, chain.broadcast)
}

func TestService_InvalidMessage(t *testing.T) {
	svc, chain, _ := setup(t)

	_, err := svc.Freeze(context.Background(), "BNB", "-1")
	require.ErrorIs(t, err, tx.ErrEncoding)
	require.Empty(t, chain.broadcast)
}

func TestService_MemoTooLong(t *testing.T) {
	svc, chain, _ := setup(t)

	long := make([]byte, tx.MaxMemoLength+1)
	for i := range long {
		long[i] = 'm'
	}
	_, err := svc.Freeze(context.Background(), "BNB", "1", WithMemo(string(long)))
	require.Error(t, err)
	require.Empty(t, chain.broadcast)
}

func TestService_Rejected(t *testing.T) {
	dir := storage.NewMemory()
	j := journal.New(dir)
	svc, chain, w := setup(t, WithJournal(j))
	chain.code = 65541

	res, err := svc.Transfer(context.Background(), w.Address(), "BNB", "1")
	require.ErrorIs(t, err, ErrRejected)
	require.NotNil(t, res)

	entry, err := j.Get(res.Hash())
	require.NoError(t, err)
	require.False(t, entry.OK())
	require.Equal(t, uint32(65541), entry.Code)
	require.Equal(t, "insufficient fund", entry.Log)
}

func TestService_BroadcastError(t *testing.T) {
	svc, chain, w := setup(t)
	chain.err = errors.New("connection refused")

	_, err := svc.Transfer(context.Background(), w.Address(), "BNB", "1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "connection refused")
}

func TestService_Journal(t *testing.T) {
	j := journal.New(storage.NewMemory())
	svc, _, w := setup(t, WithJournal(j))
	ctx := context.Background()

	first, err := svc.Freeze(ctx, "BNB", "1")
	require.NoError(t, err)
	second, err := svc.Vote(ctx, 1, types.VoteNo, WithSource(2))
	require.NoError(t, err)

	entries, err := j.List(w.Address())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, first.Hash(), entries[0].Hash)
	require.Equal(t, "TokenFreeze", entries[0].Kind)
	require.Equal(t, second.Hash(), entries[1].Hash)
	require.Equal(t, "Vote", entries[1].Kind)
	require.Equal(t, int64(8), entries[1].Sequence)
	require.True(t, entries[1].OK())
}

func TestService_ConcurrentSubmitsUseDistinctSequences(t *testing.T) {
	w := testWallet(t)
	chain := newFakeChain()
	chain.delay = 5 * time.Millisecond
	chain.uncommitted = true
	chain.accounts[w.AddressString()] = &types.Account{AccountNumber: 1, Sequence: 0}

	locks := NewAccountLocks()
	a := New(chain, chain, w, WithLocks(locks))
	b := New(chain, chain, w, WithLocks(locks))

	const n = 10
	var wg sync.WaitGroup
	seqs := make(chan int64, n)
	for i := 0; i < n; i++ {
		svc := a
		if i%2 == 1 {
			svc = b
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.Freeze(context.Background(), "BNB", "1")
			if err != nil {
				t.Error(err)
				return
			}
			seqs <- res.Tx.Envelope.Sequence
		}()
	}
	wg.Wait()
	close(seqs)

	seen := make(map[int64]bool)
	for s := range seqs {
		require.False(t, seen[s], "sequence %d used twice", s)
		seen[s] = true
	}
	require.Len(t, seen, n)
}

func TestService_BackToBackBeforeCommit(t *testing.T) {
	svc, chain, w := setup(t)
	chain.uncommitted = true
	ctx := context.Background()

	first, err := svc.Transfer(ctx, w.Address(), "BNB", "1")
	require.NoError(t, err)
	second, err := svc.Transfer(ctx, w.Address(), "BNB", "1")
	require.NoError(t, err)
	order, err := svc.NewOrder(ctx, "BNB_BTC", types.SideSell, types.OrderTypeLimit,
		"0.002", "10", types.TimeInForceGTE)
	require.NoError(t, err)

	require.Equal(t, int64(7), first.Tx.Envelope.Sequence)
	require.Equal(t, int64(8), second.Tx.Envelope.Sequence)
	require.Equal(t, int64(9), order.Tx.Envelope.Sequence)
	require.NotEqual(t, first.Hash(), second.Hash())
	require.Equal(t, tx.OrderID(w.Address(), 9), order.Tx.Msg.(*tx.NewOrderMsg).ID)
}

func TestService_SequenceCatchesUpWithChain(t *testing.T) {
	svc, chain, w := setup(t)
	chain.uncommitted = true
	ctx := context.Background()

	_, err := svc.Freeze(ctx, "BNB", "1")
	require.NoError(t, err)

	// Another client moved the account further ahead.
	chain.mu.Lock()
	chain.accounts[w.AddressString()].Sequence = 20
	chain.mu.Unlock()

	res, err := svc.Freeze(ctx, "BNB", "1")
	require.NoError(t, err)
	require.Equal(t, int64(20), res.Tx.Envelope.Sequence)
}

func TestService_FailedBroadcastResetsSequence(t *testing.T) {
	svc, chain, w := setup(t)
	chain.uncommitted = true
	ctx := context.Background()

	res, err := svc.Freeze(ctx, "BNB", "1")
	require.NoError(t, err)
	require.Equal(t, int64(7), res.Tx.Envelope.Sequence)

	chain.code = 65541
	res, err = svc.Freeze(ctx, "BNB", "1")
	require.ErrorIs(t, err, ErrRejected)
	require.Equal(t, int64(8), res.Tx.Envelope.Sequence)

	chain.code = 0
	res, err = svc.Freeze(ctx, "BNB", "1")
	require.NoError(t, err)
	require.Equal(t, int64(7), res.Tx.Envelope.Sequence)

	chain.err = errors.New("connection refused")
	_, err = svc.Transfer(ctx, w.Address(), "BNB", "1")
	require.Error(t, err)

	chain.err = nil
	res, err = svc.Freeze(ctx, "BNB", "1")
	require.NoError(t, err)
	require.Equal(t, int64(7), res.Tx.Envelope.Sequence)
}

func TestService_WithData(t *testing.T) {
	svc, chain, _ := setup(t, WithSync(false), WithChainID("Binance-Chain-Ganges"))

	data := []byte{1, 2, 3}
	res, err := svc.Freeze(context.Background(), "BNB", "1", WithData(data))
	require.NoError(t, err)
	data[0] = 9

	decoded, err := tx.DecodeHex(chain.broadcast[0])
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, decoded.Data)
	require.Equal(t, "Binance-Chain-Ganges", res.Tx.Envelope.ChainID)
	require.NoError(t, decoded.Verify("Binance-Chain-Ganges", types.Testnet))
}

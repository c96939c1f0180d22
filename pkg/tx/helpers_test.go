package tx

import (
	"testing"

	"github.com/Klingon-tech/binance-chain-go/pkg/crypto"
	"github.com/Klingon-tech/binance-chain-go/pkg/types"
	"github.com/stretchr/testify/require"
)

const testPrivKey = "90335b9d2153ad1a9799a3ccc070bd64b4164e9642ee1dd48053c33f9a3a05e9"

func testSigner(t testing.TB) *crypto.PrivateKey {
	t.Helper()
	key, err := crypto.PrivateKeyFromHex(testPrivKey)
	require.NoError(t, err)
	return key
}

// testSender is hash160 of testSigner's public key.
func testSender(t testing.TB) types.Address {
	t.Helper()
	addr, err := types.HexToAddress("ba36f0fad74d8f41045463e4774f328f4af779e5")
	require.NoError(t, err)
	return addr
}

// testRecipient is the address at m/44'/714'/0'/0/0 of the all-"abandon" mnemonic.
func testRecipient(t testing.TB) types.Address {
	t.Helper()
	addr, err := types.HexToAddress("19ae2a31acaa58d913274180c4b1e46214f92fee")
	require.NoError(t, err)
	return addr
}

// allMsgs returns one valid message of every kind.
func allMsgs(t testing.TB) []Msg {
	t.Helper()
	from, to := testSender(t), testRecipient(t)
	must := func(m Msg, err error) Msg {
		t.Helper()
		require.NoError(t, err)
		return m
	}
	return []Msg{
		must(NewOrder(from, 5, "BNB_BTC", types.SideBuy, types.OrderTypeLimit, "1.00000000", "1.00000000", types.TimeInForceGTE)),
		must(CancelOrder(from, "BNB_BTC", OrderID(from, 5))),
		must(NewTransfer(from, to, "BNB", "0.1")),
		must(NewMultiTransfer(from, to, []Transfer{{Denom: "BNB", Amount: "1.5"}, {Denom: "ABC-123", Amount: "0.00000001"}})),
		must(NewFreeze(from, "BNB", "2")),
		must(NewUnfreeze(from, "BNB", "2")),
		must(NewVote(from, 9, types.VoteNoWithVeto)),
		must(NewIssue(from, "Test Token", "TTK", "1000", true)),
		must(NewMint(from, "TTK-5E1", "10.5")),
		must(NewBurn(from, "TTK-5E1", "0.5")),
	}
}

package httpclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Klingon-tech/binance-chain-go/pkg/ratelimit"
	"github.com/Klingon-tech/binance-chain-go/pkg/types"
)

// Rate limit namespaces, one per endpoint.
const (
	nsTime         = "time"
	nsNodeInfo     = "node-info"
	nsValidators   = "validators"
	nsPeers        = "peers"
	nsAccount      = "account"
	nsSequence     = "account-sequence"
	nsTx           = "tx"
	nsTokens       = "tokens"
	nsMarkets      = "markets"
	nsFees         = "fees"
	nsDepth        = "depth"
	nsBroadcast    = "broadcast"
	nsKlines       = "klines"
	nsClosedOrders = "orders-closed"
	nsOpenOrders   = "orders-open"
	nsOrder        = "order"
	nsTicker       = "ticker"
	nsTrades       = "trades"
	nsBlockFee     = "block-exchange-fee"
	nsTransactions = "transactions"
)

// documented per-IP budgets in requests per second. /transactions allows
// 60 per minute, which is 1 per second.
var endpointLimits = map[string]int{
	nsTime:         1,
	nsNodeInfo:     1,
	nsValidators:   10,
	nsPeers:        1,
	nsAccount:      5,
	nsSequence:     5,
	nsTx:           10,
	nsTokens:       1,
	nsMarkets:      1,
	nsFees:         1,
	nsDepth:        10,
	nsBroadcast:    5,
	nsKlines:       10,
	nsClosedOrders: 5,
	nsOpenOrders:   5,
	nsOrder:        5,
	nsTicker:       5,
	nsTrades:       5,
	nsBlockFee:     5,
	nsTransactions: 1,
}

func registerLimits(l *ratelimit.Limiter) {
	for ns, rps := range endpointLimits {
		if !l.Registered(ns) {
			l.Register(ns, rps)
		}
	}
}

// params collects query parameters, skipping zero values.
type params url.Values

func (p params) setString(key, v string) {
	if v != "" {
		url.Values(p).Set(key, v)
	}
}

func (p params) setInt(key string, v int64) {
	if v != 0 {
		url.Values(p).Set(key, strconv.FormatInt(v, 10))
	}
}

// Time returns the latest block time and the API server time.
func (c *Client) Time(ctx context.Context) (*Time, error) {
	var out Time
	if err := c.get(ctx, nsTime, "time", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NodeInfo returns runtime information about the validator node.
func (c *Client) NodeInfo(ctx context.Context) (*NodeInfo, error) {
	var out NodeInfo
	if err := c.get(ctx, nsNodeInfo, "node-info", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Validators returns the validator set used in consensus.
func (c *Client) Validators(ctx context.Context) (*Validators, error) {
	var out Validators
	if err := c.get(ctx, nsValidators, "validators", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Peers returns the network peers.
func (c *Client) Peers(ctx context.Context) ([]Peer, error) {
	var out []Peer
	if err := c.get(ctx, nsPeers, "peers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Account returns account metadata for a bech32 address.
func (c *Client) Account(ctx context.Context, address string) (*types.Account, error) {
	var out types.Account
	if err := c.get(ctx, nsAccount, "account/"+url.PathEscape(address), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AccountSequence returns only the next sequence of an account.
func (c *Client) AccountSequence(ctx context.Context, address string) (int64, error) {
	var out struct {
		Sequence int64 `json:"sequence"`
	}
	if err := c.get(ctx, nsSequence, "account/"+url.PathEscape(address)+"/sequence", nil, &out); err != nil {
		return 0, err
	}
	return out.Sequence, nil
}

// Tx returns a transaction by hash in JSON form.
func (c *Client) Tx(ctx context.Context, hash string) (*Tx, error) {
	var out Tx
	q := url.Values{"format": {"json"}}
	if err := c.get(ctx, nsTx, "tx/"+url.PathEscape(strings.ToUpper(hash)), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Tokens returns issued tokens.
func (c *Client) Tokens(ctx context.Context, limit, offset int64) ([]Token, error) {
	q := params{}
	q.setInt("limit", limit)
	q.setInt("offset", offset)
	var out []Token
	if err := c.get(ctx, nsTokens, "tokens", url.Values(q), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Markets returns listed trading pairs. limit defaults to 500 server side.
func (c *Client) Markets(ctx context.Context, limit, offset int64) ([]Market, error) {
	q := params{}
	q.setInt("limit", limit)
	q.setInt("offset", offset)
	var out []Market
	if err := c.get(ctx, nsMarkets, "markets", url.Values(q), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Fees returns the current fee schedule.
func (c *Client) Fees(ctx context.Context) ([]Fee, error) {
	var out []Fee
	if err := c.get(ctx, nsFees, "fees", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DepthLimits are the order book sizes the API accepts.
var DepthLimits = []int{5, 10, 20, 50, 100, 500, 1000}

// Depth returns the order book of symbol. A zero limit uses the server
// default of 100.
func (c *Client) Depth(ctx context.Context, symbol string, limit int) (*Depth, error) {
	q := params{}
	q.setString("symbol", symbol)
	q.setInt("limit", int64(limit))
	var out Depth
	if err := c.get(ctx, nsDepth, "depth", url.Values(q), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Broadcast submits a hex-encoded signed transaction. With sync the
// node waits for CheckTx before answering.
func (c *Client) Broadcast(ctx context.Context, txHex string, sync bool) ([]types.TxResult, error) {
	var q url.Values
	if sync {
		q = url.Values{"sync": {"true"}}
	}
	var out []types.TxResult
	err := c.do(ctx, nsBroadcast, http.MethodPost, "broadcast", q, strings.NewReader(txHex), "text/plain", &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// KlinesQuery selects candlestick bars.
type KlinesQuery struct {
	Symbol   string
	Interval string // 1m 3m 5m 15m 30m 1h 2h 4h 6h 8h 12h 1d 3d 1w 1M
	Limit    int64
	Start    int64 // milliseconds
	End      int64
}

// Klines returns candlestick bars.
func (c *Client) Klines(ctx context.Context, query KlinesQuery) ([]Kline, error) {
	q := params{}
	q.setString("symbol", query.Symbol)
	q.setString("interval", query.Interval)
	q.setInt("limit", query.Limit)
	q.setInt("startTime", query.Start)
	q.setInt("endTime", query.End)
	var out []Kline
	if err := c.get(ctx, nsKlines, "klines", url.Values(q), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// OrdersQuery filters the order list endpoints. Zero fields are omitted.
type OrdersQuery struct {
	Address string
	Symbol  string
	Side    types.Side
	Status  string
	Start   int64
	End     int64
	Limit   int64
	Offset  int64
	Total   bool
}

func (o OrdersQuery) values(closed bool) url.Values {
	q := params{}
	q.setString("address", o.Address)
	q.setString("symbol", o.Symbol)
	q.setInt("limit", o.Limit)
	q.setInt("offset", o.Offset)
	if o.Total {
		q.setInt("total", 1)
	}
	if closed {
		q.setInt("side", int64(o.Side))
		q.setString("status", o.Status)
		q.setInt("start", o.Start)
		q.setInt("end", o.End)
	}
	return url.Values(q)
}

// ClosedOrders returns filled, cancelled and expired orders of an address.
func (c *Client) ClosedOrders(ctx context.Context, query OrdersQuery) (*OrderList, error) {
	var out OrderList
	if err := c.get(ctx, nsClosedOrders, "orders/closed", query.values(true), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OpenOrders returns open orders of an address.
func (c *Client) OpenOrders(ctx context.Context, query OrdersQuery) (*OrderList, error) {
	var out OrderList
	if err := c.get(ctx, nsOpenOrders, "orders/open", query.values(false), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Order returns one order by id.
func (c *Client) Order(ctx context.Context, id string) (*Order, error) {
	var out Order
	if err := c.get(ctx, nsOrder, "orders/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ticker returns 24 hour statistics, for every pair when symbol is empty.
func (c *Client) Ticker(ctx context.Context, symbol string) ([]Ticker, error) {
	q := params{}
	q.setString("symbol", symbol)
	var out []Ticker
	if err := c.get(ctx, nsTicker, "ticker/24hr", url.Values(q), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TradesQuery filters /trades. Zero fields are omitted.
type TradesQuery struct {
	Address       string
	Symbol        string
	QuoteAsset    string
	BuyerOrderID  string
	SellerOrderID string
	Height        int64
	Side          types.Side
	Start         int64
	End           int64
	Limit         int64
	Offset        int64
	Total         bool
}

// Trades returns historical trades.
func (c *Client) Trades(ctx context.Context, query TradesQuery) (*TradeList, error) {
	q := params{}
	q.setString("address", query.Address)
	q.setString("symbol", query.Symbol)
	q.setString("quoteAsset", query.QuoteAsset)
	q.setString("buyerOrderId", query.BuyerOrderID)
	q.setString("sellerOrderId", query.SellerOrderID)
	q.setInt("height", query.Height)
	q.setInt("side", int64(query.Side))
	q.setInt("start", query.Start)
	q.setInt("end", query.End)
	q.setInt("limit", query.Limit)
	q.setInt("offset", query.Offset)
	if query.Total {
		q.setInt("total", 1)
	}
	var out TradeList
	if err := c.get(ctx, nsTrades, "trades", url.Values(q), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PageQuery is the address + window + paging filter shared by history
// endpoints.
type PageQuery struct {
	Address string
	Start   int64
	End     int64
	Limit   int64
	Offset  int64
	Total   bool
}

// BlockExchangeFee returns trading fees of an address grouped by block.
func (c *Client) BlockExchangeFee(ctx context.Context, query PageQuery) (*BlockFeeList, error) {
	q := params{}
	q.setString("address", query.Address)
	q.setInt("start", query.Start)
	q.setInt("end", query.End)
	q.setInt("limit", query.Limit)
	q.setInt("offset", query.Offset)
	if query.Total {
		q.setInt("total", 1)
	}
	var out BlockFeeList
	if err := c.get(ctx, nsBlockFee, "block-exchange-fee", url.Values(q), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TransactionsQuery filters /transactions.
type TransactionsQuery struct {
	Address string
	Height  int64
	Start   int64
	End     int64
	Limit   int64
	Offset  int64
	Side    string // RECEIVE or SEND
	TxAsset string
	TxType  string // NEW_ORDER, TRANSFER, VOTE, ...
}

// Transactions returns the transaction history of an address.
func (c *Client) Transactions(ctx context.Context, query TransactionsQuery) (*TransactionList, error) {
	q := params{}
	q.setString("address", query.Address)
	q.setInt("blockHeight", query.Height)
	q.setInt("startTime", query.Start)
	q.setInt("endTime", query.End)
	q.setInt("limit", query.Limit)
	q.setInt("offset", query.Offset)
	q.setString("side", query.Side)
	q.setString("txAsset", query.TxAsset)
	q.setString("txType", query.TxType)
	var out TransactionList
	if err := c.get(ctx, nsTransactions, "transactions", url.Values(q), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

package httpclient

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Time is the response of /time.
type Time struct {
	APTime    string `json:"ap_time"`
	BlockTime string `json:"block_time"`
}

// NodeInfo is the response of /node-info.
type NodeInfo struct {
	NodeInfo struct {
		ID         string `json:"id"`
		ListenAddr string `json:"listen_addr"`
		Network    string `json:"network"`
		Version    string `json:"version"`
		Moniker    string `json:"moniker"`
	} `json:"node_info"`
	SyncInfo struct {
		LatestBlockHash   string `json:"latest_block_hash"`
		LatestAppHash     string `json:"latest_app_hash"`
		LatestBlockHeight int64  `json:"latest_block_height"`
		LatestBlockTime   string `json:"latest_block_time"`
		CatchingUp        bool   `json:"catching_up"`
	} `json:"sync_info"`
	ValidatorInfo struct {
		Address     string `json:"address"`
		VotingPower int64  `json:"voting_power"`
	} `json:"validator_info"`
}

// Validator is one consensus validator.
type Validator struct {
	Address     string `json:"address"`
	VotingPower int64  `json:"voting_power"`
	Accum       int64  `json:"accum"`
}

// Validators is the response of /validators.
type Validators struct {
	BlockHeight int64       `json:"block_height"`
	Validators  []Validator `json:"validators"`
}

// Peer is one network peer.
type Peer struct {
	ID           string   `json:"id"`
	OriginalAddr string   `json:"original_listen_addr"`
	ListenAddr   string   `json:"listen_addr"`
	AccessAddr   string   `json:"access_addr"`
	StreamAddr   string   `json:"stream_addr"`
	Network      string   `json:"network"`
	Version      string   `json:"version"`
	Moniker      string   `json:"moniker"`
	Capabilities []string `json:"capabilities"`
	Accelerated  bool     `json:"accelerated"`
}

// Tx is the response of /tx/{hash}?format=json.
type Tx struct {
	Code   uint32          `json:"code"`
	Hash   string          `json:"hash"`
	Height string          `json:"height"`
	Log    string          `json:"log"`
	OK     bool            `json:"ok"`
	Tx     json.RawMessage `json:"tx"`
}

// Token is one issued token.
type Token struct {
	Name           string `json:"name"`
	Symbol         string `json:"symbol"`
	OriginalSymbol string `json:"original_symbol"`
	TotalSupply    string `json:"total_supply"`
	Owner          string `json:"owner"`
	Mintable       bool   `json:"mintable"`
}

// Market is one listed trading pair.
type Market struct {
	BaseAsset  string          `json:"base_asset_symbol"`
	QuoteAsset string          `json:"quote_asset_symbol"`
	ListPrice  decimal.Decimal `json:"list_price"`
	TickSize   decimal.Decimal `json:"tick_size"`
	LotSize    decimal.Decimal `json:"lot_size"`
}

// Symbol returns the pair symbol used by order messages, e.g. NNB-0AD_BNB.
func (m Market) Symbol() string {
	return m.BaseAsset + "_" + m.QuoteAsset
}

// Fee is one entry of /fees. The endpoint mixes several shapes; unused
// fields stay zero.
type Fee struct {
	MsgType        string          `json:"msg_type,omitempty"`
	Fee            int64           `json:"fee,omitempty"`
	FeeFor         int             `json:"fee_for,omitempty"`
	FixedFeeParams json.RawMessage `json:"fixed_fee_params,omitempty"`
	MultiTransfer  int64           `json:"multi_transfer_fee,omitempty"`
	LowerLimit     int64           `json:"lower_limit_as_multi,omitempty"`
	DexFeeFields   []DexFeeField   `json:"dex_fee_fields,omitempty"`
}

// DexFeeField is a named matching-engine fee parameter.
type DexFeeField struct {
	FeeName  string `json:"fee_name"`
	FeeValue int64  `json:"fee_value"`
}

// PriceLevel is one [price, quantity] row of the order book.
type PriceLevel struct {
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

// UnmarshalJSON decodes the ["price","quantity"] pair form.
func (p *PriceLevel) UnmarshalJSON(data []byte) error {
	var pair []decimal.Decimal
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("price level: want 2 elements, got %d", len(pair))
	}
	p.Price, p.Quantity = pair[0], pair[1]
	return nil
}

// Depth is the response of /depth.
type Depth struct {
	Asks   []PriceLevel `json:"asks"`
	Bids   []PriceLevel `json:"bids"`
	Height int64        `json:"height"`
}

// Kline is one candlestick bar.
type Kline struct {
	OpenTime         int64
	Open             decimal.Decimal
	High             decimal.Decimal
	Low              decimal.Decimal
	Close            decimal.Decimal
	Volume           decimal.Decimal
	CloseTime        int64
	QuoteAssetVolume decimal.Decimal
	NumberOfTrades   int64
}

// UnmarshalJSON decodes the positional array form
// [openTime, open, high, low, close, volume, closeTime, quoteVolume, trades].
func (k *Kline) UnmarshalJSON(data []byte) error {
	var row []json.RawMessage
	if err := json.Unmarshal(data, &row); err != nil {
		return err
	}
	if len(row) < 9 {
		return fmt.Errorf("kline: want 9 elements, got %d", len(row))
	}
	targets := []interface{}{
		&k.OpenTime, &k.Open, &k.High, &k.Low, &k.Close, &k.Volume,
		&k.CloseTime, &k.QuoteAssetVolume, &k.NumberOfTrades,
	}
	for i, dst := range targets {
		if err := json.Unmarshal(row[i], dst); err != nil {
			return fmt.Errorf("kline element %d: %w", i, err)
		}
	}
	return nil
}

// Order is an order as reported by the order endpoints.
type Order struct {
	OrderID              string `json:"orderId"`
	Symbol               string `json:"symbol"`
	Owner                string `json:"owner"`
	Price                string `json:"price"`
	Quantity             string `json:"quantity"`
	CumulateQuantity     string `json:"cumulateQuantity"`
	Fee                  string `json:"fee"`
	OrderCreateTime      string `json:"orderCreateTime"`
	TransactionTime      string `json:"transactionTime"`
	Status               string `json:"status"`
	TimeInForce          int    `json:"timeInForce"`
	Side                 int    `json:"side"`
	Type                 int    `json:"type"`
	TradeID              string `json:"tradeId"`
	LastExecutedPrice    string `json:"lastExecutedPrice"`
	LastExecutedQuantity string `json:"lastExecutedQuantity"`
	TransactionHash      string `json:"transactionHash"`
}

// OrderList is the response of /orders/open and /orders/closed.
type OrderList struct {
	Orders []Order `json:"order"`
	Total  int64   `json:"total"`
}

// Ticker is 24 hour statistics of one pair.
type Ticker struct {
	Symbol             string `json:"symbol"`
	BaseAssetName      string `json:"baseAssetName"`
	QuoteAssetName     string `json:"quoteAssetName"`
	PriceChange        string `json:"priceChange"`
	PriceChangePercent string `json:"priceChangePercent"`
	PrevClosePrice     string `json:"prevClosePrice"`
	LastPrice          string `json:"lastPrice"`
	LastQuantity       string `json:"lastQuantity"`
	OpenPrice          string `json:"openPrice"`
	HighPrice          string `json:"highPrice"`
	LowPrice           string `json:"lowPrice"`
	OpenTime           int64  `json:"openTime"`
	CloseTime          int64  `json:"closeTime"`
	FirstID            string `json:"firstId"`
	LastID             string `json:"lastId"`
	BidPrice           string `json:"bidPrice"`
	BidQuantity        string `json:"bidQuantity"`
	AskPrice           string `json:"askPrice"`
	AskQuantity        string `json:"askQuantity"`
	WeightedAvgPrice   string `json:"weightedAvgPrice"`
	Volume             string `json:"volume"`
	QuoteVolume        string `json:"quoteVolume"`
	Count              int64  `json:"count"`
}

// Trade is one historical trade.
type Trade struct {
	BaseAsset     string `json:"baseAsset"`
	BlockHeight   int64  `json:"blockHeight"`
	BuyFee        string `json:"buyFee"`
	BuyerID       string `json:"buyerId"`
	BuyerOrderID  string `json:"buyerOrderId"`
	Price         string `json:"price"`
	Quantity      string `json:"quantity"`
	QuoteAsset    string `json:"quoteAsset"`
	SellFee       string `json:"sellFee"`
	SellerID      string `json:"sellerId"`
	SellerOrderID string `json:"sellerOrderId"`
	Symbol        string `json:"symbol"`
	Time          int64  `json:"time"`
	TradeID       string `json:"tradeId"`
}

// TradeList is the response of /trades.
type TradeList struct {
	Total  int64   `json:"total"`
	Trades []Trade `json:"trade"`
}

// BlockFee is the trading fee an address paid in one block.
type BlockFee struct {
	Address     string `json:"address"`
	BlockHeight int64  `json:"blockHeight"`
	BlockTime   int64  `json:"blockTime"`
	Fee         string `json:"fee"`
	TradeCount  int64  `json:"tradeCount"`
}

// BlockFeeList is the response of /block-exchange-fee.
type BlockFeeList struct {
	Fees  []BlockFee `json:"blockExchangeFee"`
	Total int64      `json:"total"`
}

// Transaction is one entry of /transactions.
type Transaction struct {
	BlockHeight   int64  `json:"blockHeight"`
	Code          int64  `json:"code"`
	ConfirmBlocks int64  `json:"confirmBlocks"`
	Data          string `json:"data"`
	FromAddr      string `json:"fromAddr"`
	OrderID       string `json:"orderId"`
	TimeStamp     string `json:"timeStamp"`
	ToAddr        string `json:"toAddr"`
	TxAge         int64  `json:"txAge"`
	TxAsset       string `json:"txAsset"`
	TxFee         string `json:"txFee"`
	TxHash        string `json:"txHash"`
	TxType        string `json:"txType"`
	Value         string `json:"value"`
	Memo          string `json:"memo"`
	Source        int64  `json:"source"`
	Sequence      int64  `json:"sequence"`
}

// TransactionList is the response of /transactions.
type TransactionList struct {
	Total int64         `json:"total"`
	Txs   []Transaction `json:"tx"`
}

package noderpc

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NodeInfo identifies the node.
type NodeInfo struct {
	ID         string `json:"id"`
	ListenAddr string `json:"listen_addr"`
	Network    string `json:"network"`
	Version    string `json:"version"`
	Moniker    string `json:"moniker"`
}

// SyncInfo is the node's view of the chain head.
type SyncInfo struct {
	LatestBlockHash   string    `json:"latest_block_hash"`
	LatestAppHash     string    `json:"latest_app_hash"`
	LatestBlockHeight int64     `json:"latest_block_height,string"`
	LatestBlockTime   time.Time `json:"latest_block_time"`
	CatchingUp        bool      `json:"catching_up"`
}

// ValidatorInfo describes the node's own validator key.
type ValidatorInfo struct {
	Address     string `json:"address"`
	VotingPower int64  `json:"voting_power,string"`
}

// Status is the result of the status method.
type Status struct {
	NodeInfo      NodeInfo      `json:"node_info"`
	SyncInfo      SyncInfo      `json:"sync_info"`
	ValidatorInfo ValidatorInfo `json:"validator_info"`
}

// ABCIInfo is the result of abci_info.
type ABCIInfo struct {
	Response struct {
		Data             string `json:"data"`
		Version          string `json:"version"`
		LastBlockHeight  int64  `json:"last_block_height,string"`
		LastBlockAppHash []byte `json:"last_block_app_hash"`
	} `json:"response"`
}

// RoundState is the consensus position of the node.
type RoundState struct {
	HeightRoundStep   string          `json:"height/round/step"`
	StartTime         time.Time       `json:"start_time"`
	ProposalBlockHash string          `json:"proposal_block_hash"`
	HeightVoteSet     json.RawMessage `json:"height_vote_set"`
}

// ConsensusState is the result of consensus_state.
type ConsensusState struct {
	RoundState RoundState `json:"round_state"`
}

// NetInfo is the result of net_info.
type NetInfo struct {
	Listening bool              `json:"listening"`
	Listeners []string          `json:"listeners"`
	NPeers    int64             `json:"n_peers,string"`
	Peers     []json.RawMessage `json:"peers"`
}

// UnconfirmedTxs is the result of num_unconfirmed_txs.
type UnconfirmedTxs struct {
	NTxs int64 `json:"n_txs,string"`
}

// Validator is one entry of the validators result.
type Validator struct {
	Address     string `json:"address"`
	VotingPower int64  `json:"voting_power,string"`
}

// Validators is the result of the validators method.
type Validators struct {
	BlockHeight int64       `json:"block_height,string"`
	Validators  []Validator `json:"validators"`
}

// TxResult is the DeliverTx/CheckTx outcome of a transaction.
type TxResult struct {
	Code uint32 `json:"code"`
	Data []byte `json:"data"`
	Log  string `json:"log"`
	Info string `json:"info,omitempty"`
}

// Tx is the result of the tx method and one entry of tx_search.
type Tx struct {
	Hash     string   `json:"hash"`
	Height   int64    `json:"height,string"`
	Index    uint32   `json:"index"`
	TxResult TxResult `json:"tx_result"`
	Tx       []byte   `json:"tx"`
}

// TxSearch is the result of tx_search.
type TxSearch struct {
	Txs        []Tx  `json:"txs"`
	TotalCount int64 `json:"total_count,string"`
}

// ABCIQuery is the result of abci_query.
type ABCIQuery struct {
	Response struct {
		Code      uint32 `json:"code"`
		Log       string `json:"log"`
		Info      string `json:"info"`
		Index     int64  `json:"index,string"`
		Key       []byte `json:"key"`
		Value     []byte `json:"value"`
		Height    int64  `json:"height,string"`
		Codespace string `json:"codespace"`
	} `json:"response"`
}

// BroadcastResult is the result of broadcast_tx_async and broadcast_tx_sync.
type BroadcastResult struct {
	Code uint32 `json:"code"`
	Data string `json:"data"`
	Log  string `json:"log"`
	Hash string `json:"hash"`
}

// BroadcastCommitResult is the result of broadcast_tx_commit.
type BroadcastCommitResult struct {
	CheckTx   TxResult `json:"check_tx"`
	DeliverTx TxResult `json:"deliver_tx"`
	Hash      string   `json:"hash"`
	Height    int64    `json:"height,string"`
}

// heightParam returns the params object for methods taking an optional
// height; zero selects the latest block.
func heightParam(height int64) map[string]interface{} {
	if height <= 0 {
		return map[string]interface{}{}
	}
	return map[string]interface{}{"height": strconv.FormatInt(height, 10)}
}

// Status returns node info, the latest block and validator info.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	var out Status
	if err := c.Call(ctx, "status", map[string]interface{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ABCIInfo returns information about the application.
func (c *Client) ABCIInfo(ctx context.Context) (*ABCIInfo, error) {
	var out ABCIInfo
	if err := c.Call(ctx, "abci_info", map[string]interface{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health returns nil when the node answers.
func (c *Client) Health(ctx context.Context) error {
	return c.Call(ctx, "health", map[string]interface{}{}, nil)
}

// NetInfo returns network information.
func (c *Client) NetInfo(ctx context.Context) (*NetInfo, error) {
	var out NetInfo
	if err := c.Call(ctx, "net_info", map[string]interface{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConsensusState returns a snapshot summary of the node's consensus round.
func (c *Client) ConsensusState(ctx context.Context) (*ConsensusState, error) {
	var out ConsensusState
	if err := c.Call(ctx, "consensus_state", map[string]interface{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DumpConsensusState returns the full raw consensus state including peers.
func (c *Client) DumpConsensusState(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.Call(ctx, "dump_consensus_state", map[string]interface{}{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ConsensusParams returns the raw consensus parameters at height (latest
// when zero).
func (c *Client) ConsensusParams(ctx context.Context, height int64) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.Call(ctx, "consensus_params", heightParam(height), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Genesis returns the raw genesis document.
func (c *Client) Genesis(ctx context.Context) (json.RawMessage, error) {
	var out struct {
		Genesis json.RawMessage `json:"genesis"`
	}
	if err := c.Call(ctx, "genesis", map[string]interface{}{}, &out); err != nil {
		return nil, err
	}
	return out.Genesis, nil
}

// NumUnconfirmedTxs returns the mempool size.
func (c *Client) NumUnconfirmedTxs(ctx context.Context) (int64, error) {
	var out UnconfirmedTxs
	if err := c.Call(ctx, "num_unconfirmed_txs", map[string]interface{}{}, &out); err != nil {
		return 0, err
	}
	return out.NTxs, nil
}

// Block returns the raw block at height (latest when zero).
func (c *Client) Block(ctx context.Context, height int64) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.Call(ctx, "block", heightParam(height), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BlockResults returns the raw ABCI results of the block at height.
func (c *Client) BlockResults(ctx context.Context, height int64) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.Call(ctx, "block_results", heightParam(height), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Validators returns the validator set at height (latest when zero).
func (c *Client) Validators(ctx context.Context, height int64) (*Validators, error) {
	var out Validators
	if err := c.Call(ctx, "validators", heightParam(height), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Tx looks up a transaction by its hex hash.
func (c *Client) Tx(ctx context.Context, hash string, prove bool) (*Tx, error) {
	h, err := hex.DecodeString(strings.TrimPrefix(hash, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid tx hash: %w", err)
	}
	var out Tx
	params := map[string]interface{}{"hash": h, "prove": prove}
	if err := c.Call(ctx, "tx", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TxSearch finds transactions matching a query such as "tx.height=5".
// page starts at 1; zero values use the node defaults.
func (c *Client) TxSearch(ctx context.Context, query string, prove bool, page, perPage int) (*TxSearch, error) {
	params := map[string]interface{}{"query": query, "prove": prove}
	if page > 0 {
		params["page"] = strconv.Itoa(page)
	}
	if perPage > 0 {
		params["per_page"] = strconv.Itoa(perPage)
	}
	var out TxSearch
	if err := c.Call(ctx, "tx_search", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ABCIQuery queries application state, e.g. path "/account/<addr>".
func (c *Client) ABCIQuery(ctx context.Context, path string, data []byte, height int64, prove bool) (*ABCIQuery, error) {
	params := heightParam(height)
	params["path"] = path
	params["data"] = hex.EncodeToString(data)
	params["prove"] = prove
	var out ABCIQuery
	if err := c.Call(ctx, "abci_query", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BroadcastTxAsync submits tx and returns without waiting for CheckTx.
func (c *Client) BroadcastTxAsync(ctx context.Context, tx []byte) (*BroadcastResult, error) {
	return c.broadcast(ctx, "broadcast_tx_async", tx)
}

// BroadcastTxSync submits tx and returns the CheckTx result.
func (c *Client) BroadcastTxSync(ctx context.Context, tx []byte) (*BroadcastResult, error) {
	return c.broadcast(ctx, "broadcast_tx_sync", tx)
}

func (c *Client) broadcast(ctx context.Context, method string, tx []byte) (*BroadcastResult, error) {
	var out BroadcastResult
	if err := c.Call(ctx, method, map[string]interface{}{"tx": tx}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BroadcastTxCommit submits tx and waits until it is committed in a block.
func (c *Client) BroadcastTxCommit(ctx context.Context, tx []byte) (*BroadcastCommitResult, error) {
	var out BroadcastCommitResult
	if err := c.Call(ctx, "broadcast_tx_commit", map[string]interface{}{"tx": tx}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

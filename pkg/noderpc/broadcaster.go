package noderpc

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Klingon-tech/binance-chain-go/pkg/types"
)

// Broadcaster submits signed transactions through a node instead of the
// DEX API. It has the same shape as the API client's Broadcast.
type Broadcaster struct {
	Client *Client
}

// Broadcast decodes txHex and sends it with broadcast_tx_sync, or
// broadcast_tx_async when sync is false.
func (b Broadcaster) Broadcast(ctx context.Context, txHex string, sync bool) ([]types.TxResult, error) {
	raw, err := hex.DecodeString(txHex)
	if err != nil {
		return nil, fmt.Errorf("invalid tx hex: %w", err)
	}

	var res *BroadcastResult
	if sync {
		res, err = b.Client.BroadcastTxSync(ctx, raw)
	} else {
		res, err = b.Client.BroadcastTxAsync(ctx, raw)
	}
	if err != nil {
		return nil, err
	}
	return []types.TxResult{{
		Code: res.Code,
		Hash: strings.ToUpper(res.Hash),
		Log:  res.Log,
		Data: res.Data,
		OK:   res.Code == 0,
	}}, nil
}

package rpcclient

import (
	"context"
	"fmt"
	"net/http"
)

// ZkosClient queries the zkos server for UTXO state belonging to a
// zk-account address. It is a distinct endpoint from the relayer's order
// API — UTXO discovery is served by the chain's zk state indexer, order
// lifecycle calls are served by the relayer.
type ZkosClient struct {
	baseURL string
	http    *http.Client
	nextID  int
}

// NewZkosClient returns a client bound to baseURL (e.g. http://0.0.0.0:3030).
func NewZkosClient(baseURL string) *ZkosClient {
	return &ZkosClient{baseURL: baseURL, http: defaultHTTPClient()}
}

// UtxoDetail is the observed on-chain state of a zk-account's UTXO.
type UtxoDetail struct {
	TxHash      string `json:"tx_hash"`
	OutputIndex uint32 `json:"output_index"`
	Address     string `json:"address"`
	Value       uint64 `json:"value"`
	IOType      string `json:"io_type"`
}

type getUtxoResponse struct {
	Result *UtxoDetail   `json:"result"`
	Error  *jsonRPCError `json:"error"`
}

// GetUtxoDetail fetches the UTXO currently associated with accountAddress
// and ioType. It returns ErrNotFound if none exists yet — callers poll this
// through internal/retry while waiting for a broadcast to land.
func (c *ZkosClient) GetUtxoDetail(ctx context.Context, accountAddress, ioType string) (*UtxoDetail, error) {
	c.nextID++
	req := jsonRPCRequest{
		JSONRPC: "2.0",
		ID:      c.nextID,
		Method:  "getUtxoDetail",
		Params: map[string]string{
			"address": accountAddress,
			"io_type": ioType,
		},
	}
	var resp getUtxoResponse
	if err := doPostJSON(ctx, c.http, c.baseURL, "", req, &resp); err != nil {
		return nil, fmt.Errorf("getUtxoDetail: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("getUtxoDetail: %d %s", resp.Error.Code, resp.Error.Message)
	}
	if resp.Result == nil {
		return nil, ErrNotFound
	}
	return resp.Result, nil
}

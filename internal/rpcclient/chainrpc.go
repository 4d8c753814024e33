package rpcclient

import (
	"context"
	"fmt"
	"net/http"
)

// ChainRPCClient talks to the nyks chain's Tendermint-style JSON-RPC
// endpoint for transaction broadcast.
type ChainRPCClient struct {
	baseURL string
	http    *http.Client
	nextID  int
}

// NewChainRPCClient returns a client bound to baseURL (e.g.
// http://0.0.0.0:26657).
func NewChainRPCClient(baseURL string) *ChainRPCClient {
	return &ChainRPCClient{baseURL: baseURL, http: defaultHTTPClient()}
}

// BroadcastResult is the chain's response to a broadcast_tx_sync or
// broadcast_tx_commit call.
type BroadcastResult struct {
	Hash string
	Code uint32
	Log  string
}

type jsonRPCRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      int         `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type jsonRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type broadcastSyncResponse struct {
	Result struct {
		Code uint32 `json:"code"`
		Log  string `json:"log"`
		Hash string `json:"hash"`
	} `json:"result"`
	Error *jsonRPCError `json:"error"`
}

// BroadcastTxSync submits txBase64 and returns as soon as CheckTx completes,
// without waiting for the transaction to be included in a block.
func (c *ChainRPCClient) BroadcastTxSync(ctx context.Context, txBase64 string) (*BroadcastResult, error) {
	return c.broadcast(ctx, "broadcast_tx_sync", txBase64)
}

type broadcastCommitResponse struct {
	Result struct {
		CheckTx struct {
			Code uint32 `json:"code"`
			Log  string `json:"log"`
		} `json:"check_tx"`
		DeliverTx struct {
			Code uint32 `json:"code"`
			Log  string `json:"log"`
		} `json:"deliver_tx"`
		Hash string `json:"hash"`
	} `json:"result"`
	Error *jsonRPCError `json:"error"`
}

// BroadcastTxCommit submits txBase64 and blocks until the transaction has
// been committed in a block (or failed CheckTx/DeliverTx), per the finality
// guarantee trading_to_trading needs before it can flip both accounts'
// on_chain flags.
func (c *ChainRPCClient) BroadcastTxCommit(ctx context.Context, txBase64 string) (*BroadcastResult, error) {
	c.nextID++
	req := jsonRPCRequest{
		JSONRPC: "2.0",
		ID:      c.nextID,
		Method:  "broadcast_tx_commit",
		Params:  map[string]string{"tx": txBase64},
	}
	var resp broadcastCommitResponse
	if err := doPostJSON(ctx, c.http, c.baseURL, "", req, &resp); err != nil {
		return nil, fmt.Errorf("broadcast_tx_commit: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("broadcast_tx_commit: %d %s", resp.Error.Code, resp.Error.Message)
	}

	code := resp.Result.CheckTx.Code
	log := resp.Result.CheckTx.Log
	if code == 0 {
		code = resp.Result.DeliverTx.Code
		log = resp.Result.DeliverTx.Log
	}
	return &BroadcastResult{Hash: resp.Result.Hash, Code: code, Log: log}, nil
}

func (c *ChainRPCClient) broadcast(ctx context.Context, method, txBase64 string) (*BroadcastResult, error) {
	c.nextID++
	req := jsonRPCRequest{
		JSONRPC: "2.0",
		ID:      c.nextID,
		Method:  method,
		Params:  map[string]string{"tx": txBase64},
	}
	var resp broadcastSyncResponse
	if err := doPostJSON(ctx, c.http, c.baseURL, "", req, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("%s: %d %s", method, resp.Error.Code, resp.Error.Message)
	}
	return &BroadcastResult{Hash: resp.Result.Hash, Code: resp.Result.Code, Log: resp.Result.Log}, nil
}

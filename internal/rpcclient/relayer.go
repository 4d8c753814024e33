package rpcclient

import (
	"context"
	"fmt"
	"net/http"
)

// RequestID is the relayer's handle for a previously submitted order
// request, used to poll for its resolution.
type RequestID string

// RelayerClient talks to the relayer's JSON-RPC 2.0 API for the order
// lifecycle: open/close/cancel trader orders and lend orders. The actual
// zk order payloads are opaque byte strings built by internal/zksdk; this
// client only transports them.
type RelayerClient struct {
	baseURL string
	http    *http.Client
	nextID  int
}

// NewRelayerClient returns a client bound to baseURL (e.g.
// http://0.0.0.0:8088/api).
func NewRelayerClient(baseURL string) *RelayerClient {
	return &RelayerClient{baseURL: baseURL, http: defaultHTTPClient()}
}

type submitOrderResponse struct {
	Result *struct {
		RequestID string `json:"request_id"`
	} `json:"result"`
	Error *jsonRPCError `json:"error"`
}

func (c *RelayerClient) submit(ctx context.Context, method string, payloadHex string) (RequestID, error) {
	c.nextID++
	req := jsonRPCRequest{
		JSONRPC: "2.0",
		ID:      c.nextID,
		Method:  method,
		Params:  map[string]string{"payload": payloadHex},
	}
	var resp submitOrderResponse
	if err := doPostJSON(ctx, c.http, c.baseURL, "", req, &resp); err != nil {
		return "", fmt.Errorf("%s: %w", method, err)
	}
	if resp.Error != nil {
		return "", fmt.Errorf("%s: %d %s", method, resp.Error.Code, resp.Error.Message)
	}
	if resp.Result == nil {
		return "", fmt.Errorf("%s: empty result", method)
	}
	return RequestID(resp.Result.RequestID), nil
}

// SubmitTradeOrder submits a new trader-order-open payload (relayer method
// submit_trade_order) and returns the request id used to poll for its
// resolution.
func (c *RelayerClient) SubmitTradeOrder(ctx context.Context, payloadHex string) (RequestID, error) {
	return c.submit(ctx, "submit_trade_order", payloadHex)
}

// SettleTradeOrder submits a trader-order-close payload (relayer method
// settle_trade_order).
func (c *RelayerClient) SettleTradeOrder(ctx context.Context, payloadHex string) (RequestID, error) {
	return c.submit(ctx, "settle_trade_order", payloadHex)
}

// CancelTraderOrder submits a trader-order-cancel payload (relayer method
// cancel_trader_order).
func (c *RelayerClient) CancelTraderOrder(ctx context.Context, payloadHex string) (RequestID, error) {
	return c.submit(ctx, "cancel_trader_order", payloadHex)
}

// SubmitLendOrder submits a lend-order-open payload (relayer method
// submit_lend_order).
func (c *RelayerClient) SubmitLendOrder(ctx context.Context, payloadHex string) (RequestID, error) {
	return c.submit(ctx, "submit_lend_order", payloadHex)
}

// SettleLendOrder submits a lend-order-close payload (relayer method
// settle_lend_order).
func (c *RelayerClient) SettleLendOrder(ctx context.Context, payloadHex string) (RequestID, error) {
	return c.submit(ctx, "settle_lend_order", payloadHex)
}

// TraderOrderInfo is the relayer's view of a trader order's current state.
type TraderOrderInfo struct {
	RequestID      string `json:"request_id"`
	AccountAddress string `json:"account_address"`
	OrderStatus    string `json:"order_status"`
	OrderType      string `json:"order_type"`
	PositionType   string `json:"position_type"`
	EntryPrice     uint64 `json:"entry_price"`
	ExecutionPrice uint64 `json:"execution_price"`
	PositionSize   uint64 `json:"position_size"`
	Leverage       uint64 `json:"leverage"`
	Margin         uint64 `json:"margin"`
	UnrealizedPnl  int64  `json:"unrealized_pnl"`
}

type queryTraderOrderResponse struct {
	Result *TraderOrderInfo `json:"result"`
	Error  *jsonRPCError    `json:"error"`
}

// QueryTraderOrder fetches the current state of a previously submitted
// trader order by request id (relayer method trader_order_info).
func (c *RelayerClient) QueryTraderOrder(ctx context.Context, id RequestID) (*TraderOrderInfo, error) {
	c.nextID++
	req := jsonRPCRequest{
		JSONRPC: "2.0",
		ID:      c.nextID,
		Method:  "trader_order_info",
		Params:  map[string]string{"request_id": string(id)},
	}
	var resp queryTraderOrderResponse
	if err := doPostJSON(ctx, c.http, c.baseURL, "", req, &resp); err != nil {
		return nil, fmt.Errorf("trader_order_info: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("trader_order_info: %d %s", resp.Error.Code, resp.Error.Message)
	}
	if resp.Result == nil {
		return nil, ErrNotFound
	}
	return resp.Result, nil
}

// LendOrderInfo is the relayer's view of a lend order's current state.
type LendOrderInfo struct {
	RequestID      string `json:"request_id"`
	AccountAddress string `json:"account_address"`
	OrderStatus    string `json:"order_status"`
	Balance        uint64 `json:"balance"`
	PoolShare      uint64 `json:"pool_share"`
}

type queryLendOrderResponse struct {
	Result *LendOrderInfo `json:"result"`
	Error  *jsonRPCError  `json:"error"`
}

// QueryLendOrder fetches the current state of a previously submitted lend
// order by request id (relayer method lend_order_info).
func (c *RelayerClient) QueryLendOrder(ctx context.Context, id RequestID) (*LendOrderInfo, error) {
	c.nextID++
	req := jsonRPCRequest{
		JSONRPC: "2.0",
		ID:      c.nextID,
		Method:  "lend_order_info",
		Params:  map[string]string{"request_id": string(id)},
	}
	var resp queryLendOrderResponse
	if err := doPostJSON(ctx, c.http, c.baseURL, "", req, &resp); err != nil {
		return nil, fmt.Errorf("lend_order_info: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("lend_order_info: %d %s", resp.Error.Code, resp.Error.Message)
	}
	if resp.Result == nil {
		return nil, ErrNotFound
	}
	return resp.Result, nil
}

package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twilight-project/orderwallet/internal/orderwallet"
)

// ========================================
// Read-only handlers
// ========================================

func (s *Server) orderwalletAddress(ctx context.Context, params json.RawMessage) (interface{}, error) {
	return map[string]string{"address": s.wallet.Address()}, nil
}

func (s *Server) orderwalletBalance(ctx context.Context, params json.RawMessage) (interface{}, error) {
	s.callMu.Lock()
	defer s.callMu.Unlock()

	balance, err := s.wallet.RefreshBalance(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh balance: %w", err)
	}
	return balance, nil
}

func (s *Server) orderwalletListAccounts(ctx context.Context, params json.RawMessage) (interface{}, error) {
	s.callMu.Lock()
	defer s.callMu.Unlock()
	return s.wallet.Registry().All(), nil
}

// ========================================
// Funding and account rotation
// ========================================

// FundingToTradingParams is the parameters for orderwallet_fundingToTrading.
type FundingToTradingParams struct {
	Amount uint64 `json:"amount"`
}

func (s *Server) orderwalletFundingToTrading(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p FundingToTradingParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	if p.Amount == 0 {
		return nil, fmt.Errorf("amount is required")
	}

	s.callMu.Lock()
	result, idx, err := s.wallet.FundingToTrading(ctx, p.Amount)
	s.callMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("funding_to_trading: %w", err)
	}

	s.broadcastAccountOnChain(idx, p.Amount)
	return map[string]interface{}{
		"tx_hash":       result.TxHash,
		"code":          result.Code,
		"account_index": idx,
	}, nil
}

// TradingToTradingParams is the parameters for orderwallet_tradingToTrading.
type TradingToTradingParams struct {
	AccountIndex uint64 `json:"account_index"`
}

func (s *Server) orderwalletTradingToTrading(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p TradingToTradingParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	s.callMu.Lock()
	newIdx, err := s.wallet.TradingToTrading(ctx, p.AccountIndex)
	s.callMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("trading_to_trading: %w", err)
	}

	acc, _ := s.wallet.Registry().GetAccount(newIdx)
	if acc != nil {
		s.broadcastAccountOnChain(newIdx, acc.Balance)
	}
	return map[string]interface{}{"new_account_index": newIdx}, nil
}

// TradingToTradingMultipleAccountsParams is the parameters for
// orderwallet_tradingToTradingMultipleAccounts.
type TradingToTradingMultipleAccountsParams struct {
	AccountIndex uint64   `json:"account_index"`
	Splits       []uint64 `json:"splits"`
}

func (s *Server) orderwalletTradingToTradingMultipleAccounts(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p TradingToTradingMultipleAccountsParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	s.callMu.Lock()
	splits, err := s.wallet.TradingToTradingMultipleAccounts(ctx, p.AccountIndex, p.Splits)
	s.callMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("trading_to_trading_multiple_accounts: %w", err)
	}

	for _, split := range splits {
		s.broadcastAccountOnChain(split.Index, split.Balance)
	}
	return splits, nil
}

// ========================================
// Trader order lifecycle
// ========================================

// OpenTraderOrderParams is the parameters for orderwallet_openTraderOrder.
type OpenTraderOrderParams struct {
	AccountIndex uint64                  `json:"account_index"`
	OrderType    orderwallet.OrderType   `json:"order_type"`
	Side         orderwallet.PositionType `json:"side"`
	EntryPrice   uint64                  `json:"entry_price"`
	Leverage     uint64                  `json:"leverage"`
}

func (s *Server) orderwalletOpenTraderOrder(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p OpenTraderOrderParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	s.callMu.Lock()
	reqID, err := s.wallet.OpenTraderOrder(ctx, p.AccountIndex, p.OrderType, p.Side, p.EntryPrice, p.Leverage)
	s.callMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open_trader_order: %w", err)
	}
	return map[string]string{"request_id": string(reqID)}, nil
}

// CloseTraderOrderParams is the parameters for orderwallet_closeTraderOrder.
type CloseTraderOrderParams struct {
	AccountIndex uint64                `json:"account_index"`
	OrderType    orderwallet.OrderType `json:"order_type"`
	ExitPrice    uint64                `json:"exit_price"`
}

func (s *Server) orderwalletCloseTraderOrder(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p CloseTraderOrderParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	s.callMu.Lock()
	reqID, err := s.wallet.CloseTraderOrder(ctx, p.AccountIndex, p.OrderType, p.ExitPrice)
	s.callMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("close_trader_order: %w", err)
	}

	s.wsBroadcast(EventOrderSettled, map[string]interface{}{
		"account_index": p.AccountIndex,
		"request_id":    string(reqID),
	})
	return map[string]string{"request_id": string(reqID)}, nil
}

// CancelTraderOrderParams is the parameters for orderwallet_cancelTraderOrder.
type CancelTraderOrderParams struct {
	AccountIndex uint64 `json:"account_index"`
}

func (s *Server) orderwalletCancelTraderOrder(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p CancelTraderOrderParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	s.callMu.Lock()
	reqID, err := s.wallet.CancelTraderOrder(ctx, p.AccountIndex)
	s.callMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("cancel_trader_order: %w", err)
	}
	return map[string]string{"request_id": string(reqID)}, nil
}

// QueryTraderOrderParams is the parameters for orderwallet_queryTraderOrder.
type QueryTraderOrderParams struct {
	AccountIndex uint64 `json:"account_index"`
}

func (s *Server) orderwalletQueryTraderOrder(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p QueryTraderOrderParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	s.callMu.Lock()
	info, err := s.wallet.QueryTraderOrder(ctx, p.AccountIndex)
	s.callMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("trader_order_info: %w", err)
	}

	if info.OrderStatus == "FILLED" {
		s.wsBroadcast(EventOrderFilled, info)
	}
	return info, nil
}

// ========================================
// Lend order lifecycle
// ========================================

// OpenLendOrderParams is the parameters for orderwallet_openLendOrder.
type OpenLendOrderParams struct {
	AccountIndex uint64 `json:"account_index"`
}

func (s *Server) orderwalletOpenLendOrder(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p OpenLendOrderParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	s.callMu.Lock()
	reqID, err := s.wallet.OpenLendOrder(ctx, p.AccountIndex)
	s.callMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open_lend_order: %w", err)
	}
	return map[string]string{"request_id": string(reqID)}, nil
}

// CloseLendOrderParams is the parameters for orderwallet_closeLendOrder.
type CloseLendOrderParams struct {
	AccountIndex uint64 `json:"account_index"`
}

func (s *Server) orderwalletCloseLendOrder(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p CloseLendOrderParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	s.callMu.Lock()
	reqID, err := s.wallet.CloseLendOrder(ctx, p.AccountIndex)
	s.callMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("close_lend_order: %w", err)
	}

	s.wsBroadcast(EventOrderSettled, map[string]interface{}{
		"account_index": p.AccountIndex,
		"request_id":    string(reqID),
	})
	return map[string]string{"request_id": string(reqID)}, nil
}

// QueryLendOrderParams is the parameters for orderwallet_queryLendOrder.
type QueryLendOrderParams struct {
	AccountIndex uint64 `json:"account_index"`
}

func (s *Server) orderwalletQueryLendOrder(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p QueryLendOrderParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	s.callMu.Lock()
	info, err := s.wallet.QueryLendOrder(ctx, p.AccountIndex)
	s.callMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("lend_order_info: %w", err)
	}
	return info, nil
}

// broadcastAccountOnChain emits EventAccountOnChain if a WebSocket hub is
// attached; Start must have run first, so this is a no-op during tests that
// exercise handlers directly without a live server.
func (s *Server) broadcastAccountOnChain(index, balance uint64) {
	s.wsBroadcast(EventAccountOnChain, map[string]interface{}{
		"account_index": index,
		"balance":       balance,
	})
}

func (s *Server) wsBroadcast(eventType EventType, data interface{}) {
	if s.wsHub != nil {
		s.wsHub.Broadcast(eventType, data)
	}
}

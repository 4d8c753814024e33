package orderwallet

import (
	"context"

	"github.com/twilight-project/orderwallet/internal/rpcclient"
	"github.com/twilight-project/orderwallet/internal/walleterr"
	"github.com/twilight-project/orderwallet/internal/zkaccount"
	"github.com/twilight-project/orderwallet/internal/zksdk"
)

const orderStatusFilled = "FILLED"
const orderStatusPending = "PENDING"

// OpenTraderOrder opens a new market/limit position funded by idx's full
// balance: initial_margin is the account's balance, position_value is
// margin*leverage, position_size is position_value*entry_price. Returns the
// relayer's request id, which is cached under idx for the close/cancel call
// that eventually resolves it.
func (w *OrderWallet) OpenTraderOrder(ctx context.Context, idx uint64, orderType OrderType, side PositionType, entryPrice, leverage uint64) (rpcclient.RequestID, error) {
	acc, ok := w.registry.GetAccount(idx)
	if !ok {
		return "", &walleterr.BadAccountStateError{Index: idx, Reason: "not found"}
	}
	if !acc.OnChain {
		return "", &walleterr.BadAccountStateError{Index: idx, Reason: "not on chain"}
	}
	if acc.IOType != zkaccount.IOTypeCoin {
		return "", &walleterr.BadAccountStateError{Index: idx, Reason: "not a coin account"}
	}
	if acc.Balance == 0 {
		return "", &walleterr.BadAccountStateError{Index: idx, Reason: "zero balance"}
	}

	initialMargin := acc.Balance
	positionValue := initialMargin * leverage
	positionSize := positionValue * entryPrice

	payload, err := zksdk.BuildCreateTraderOrderPayload(zksdk.TraderOrderParams{
		AccountAddress: acc.Account,
		Scalar:         acc.Scalar,
		OrderType:      orderType,
		OrderSide:      side,
		EntryPrice:     entryPrice,
		Leverage:       leverage,
		InitialMargin:  initialMargin,
		PositionSize:   positionSize,
		ContractPath:   w.endpoints.RelayerProgramJSONPath,
	})
	if err != nil {
		return "", &walleterr.OrderOpError{Op: "open_trader_order", Msg: err.Error()}
	}

	requestID, err := w.relayer.SubmitTradeOrder(ctx, payload)
	if err != nil {
		return "", &walleterr.RelayerClientError{Msg: "submit_trade_order", Err: err}
	}
	if err := w.persistRequestID(idx, requestID); err != nil {
		return "", err
	}
	return requestID, nil
}

// CloseTraderOrder settles a FILLED order at exitPrice. The settlement
// eventually produces a fresh Memo UTXO and then a Coin UTXO with the
// rotated balance; this method does not wait for that. A later
// QueryTraderOrder call reports the order's status without changing local
// state, and moving the settled balance to a fresh account is a separate
// TradingToTrading call.
func (w *OrderWallet) CloseTraderOrder(ctx context.Context, idx uint64, orderType OrderType, exitPrice uint64) (rpcclient.RequestID, error) {
	acc, ok := w.registry.GetAccount(idx)
	if !ok {
		return "", &walleterr.BadAccountStateError{Index: idx, Reason: "not found"}
	}
	requestID, ok := w.requestIDs[idx]
	if !ok {
		return "", &walleterr.MissingRequestIDError{Index: idx}
	}

	info, err := w.relayer.QueryTraderOrder(ctx, requestID)
	if err != nil {
		return "", &walleterr.RelayerClientError{Msg: "trader_order_info", Err: err}
	}
	if info.OrderStatus != orderStatusFilled {
		return "", &walleterr.InvalidOrderStatusError{Status: info.OrderStatus}
	}

	payload, err := zksdk.BuildExecuteTraderOrderPayload(string(requestID), acc.Account, acc.Scalar, exitPrice)
	if err != nil {
		return "", &walleterr.OrderOpError{Op: "close_trader_order", Msg: err.Error()}
	}

	newRequestID, err := w.relayer.SettleTradeOrder(ctx, payload)
	if err != nil {
		return "", &walleterr.RelayerClientError{Msg: "settle_trade_order", Err: err}
	}
	if err := w.persistRequestID(idx, newRequestID); err != nil {
		return "", err
	}
	return newRequestID, nil
}

// CancelTraderOrder cancels a PENDING (not yet filled) order.
func (w *OrderWallet) CancelTraderOrder(ctx context.Context, idx uint64) (rpcclient.RequestID, error) {
	acc, ok := w.registry.GetAccount(idx)
	if !ok {
		return "", &walleterr.BadAccountStateError{Index: idx, Reason: "not found"}
	}
	requestID, ok := w.requestIDs[idx]
	if !ok {
		return "", &walleterr.MissingRequestIDError{Index: idx}
	}

	info, err := w.relayer.QueryTraderOrder(ctx, requestID)
	if err != nil {
		return "", &walleterr.RelayerClientError{Msg: "trader_order_info", Err: err}
	}
	if info.OrderStatus != orderStatusPending {
		return "", &walleterr.InvalidOrderStatusError{Status: info.OrderStatus}
	}

	payload, err := zksdk.BuildCancelTraderOrderPayload(string(requestID), acc.Account, acc.Scalar)
	if err != nil {
		return "", &walleterr.OrderOpError{Op: "cancel_trader_order", Msg: err.Error()}
	}

	newRequestID, err := w.relayer.CancelTraderOrder(ctx, payload)
	if err != nil {
		return "", &walleterr.RelayerClientError{Msg: "cancel_trader_order", Err: err}
	}
	if err := w.persistRequestID(idx, newRequestID); err != nil {
		return "", err
	}
	return newRequestID, nil
}

// QueryTraderOrder fetches idx's current order state from the relayer
// without mutating any local state.
func (w *OrderWallet) QueryTraderOrder(ctx context.Context, idx uint64) (*rpcclient.TraderOrderInfo, error) {
	requestID, ok := w.requestIDs[idx]
	if !ok {
		return nil, &walleterr.MissingRequestIDError{Index: idx}
	}
	info, err := w.relayer.QueryTraderOrder(ctx, requestID)
	if err != nil {
		return nil, &walleterr.RelayerClientError{Msg: "trader_order_info", Err: err}
	}
	return info, nil
}

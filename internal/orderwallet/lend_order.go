package orderwallet

import (
	"context"

	"github.com/twilight-project/orderwallet/internal/rpcclient"
	"github.com/twilight-project/orderwallet/internal/walleterr"
	"github.com/twilight-project/orderwallet/internal/zkaccount"
	"github.com/twilight-project/orderwallet/internal/zksdk"
)

// OpenLendOrder deposits idx's full balance into the lending pool.
// Symmetric to OpenTraderOrder but targets submit_lend_order; the principal
// is the account's entire balance rather than a margin computation.
func (w *OrderWallet) OpenLendOrder(ctx context.Context, idx uint64) (rpcclient.RequestID, error) {
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

	payload, err := zksdk.BuildCreateLendOrderPayload(zksdk.LendOrderParams{
		AccountAddress: acc.Account,
		Scalar:         acc.Scalar,
		Balance:        acc.Balance,
		ContractPath:   w.endpoints.RelayerProgramJSONPath,
	})
	if err != nil {
		return "", &walleterr.OrderOpError{Op: "open_lend_order", Msg: err.Error()}
	}

	requestID, err := w.relayer.SubmitLendOrder(ctx, payload)
	if err != nil {
		return "", &walleterr.RelayerClientError{Msg: "submit_lend_order", Err: err}
	}
	if err := w.persistRequestID(idx, requestID); err != nil {
		return "", err
	}
	return requestID, nil
}

// CloseLendOrder withdraws idx's lend position via settle_lend_order.
// Unlike CloseTraderOrder, it does not query the relayer for the order's
// status first; it submits the close for whatever request id is cached.
func (w *OrderWallet) CloseLendOrder(ctx context.Context, idx uint64) (rpcclient.RequestID, error) {
	acc, ok := w.registry.GetAccount(idx)
	if !ok {
		return "", &walleterr.BadAccountStateError{Index: idx, Reason: "not found"}
	}
	requestID, ok := w.requestIDs[idx]
	if !ok {
		return "", &walleterr.MissingRequestIDError{Index: idx}
	}

	payload, err := zksdk.BuildCloseLendOrderPayload(string(requestID), acc.Account, acc.Scalar)
	if err != nil {
		return "", &walleterr.OrderOpError{Op: "close_lend_order", Msg: err.Error()}
	}

	newRequestID, err := w.relayer.SettleLendOrder(ctx, payload)
	if err != nil {
		return "", &walleterr.RelayerClientError{Msg: "settle_lend_order", Err: err}
	}
	if err := w.persistRequestID(idx, newRequestID); err != nil {
		return "", err
	}
	return newRequestID, nil
}

// QueryLendOrder fetches idx's current lend order state from the relayer.
func (w *OrderWallet) QueryLendOrder(ctx context.Context, idx uint64) (*rpcclient.LendOrderInfo, error) {
	requestID, ok := w.requestIDs[idx]
	if !ok {
		return nil, &walleterr.MissingRequestIDError{Index: idx}
	}
	info, err := w.relayer.QueryLendOrder(ctx, requestID)
	if err != nil {
		return nil, &walleterr.RelayerClientError{Msg: "lend_order_info", Err: err}
	}
	return info, nil
}

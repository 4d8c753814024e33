package orderwallet

import (
	"context"
	"fmt"

	"github.com/twilight-project/orderwallet/internal/retry"
	"github.com/twilight-project/orderwallet/internal/rpcclient"
	"github.com/twilight-project/orderwallet/internal/txbuilder"
	"github.com/twilight-project/orderwallet/internal/walleterr"
	"github.com/twilight-project/orderwallet/internal/zkaccount"
	"github.com/twilight-project/orderwallet/internal/zksdk"
)

// TradingToTrading rotates the balance held at idx onto a freshly derived
// account: it fetches idx's coin UTXO, builds a private transfer whose
// single output commits to the new account, waits for chain finality, and
// flips both accounts' on_chain flags once the new UTXO is observed.
func (w *OrderWallet) TradingToTrading(ctx context.Context, idx uint64) (uint64, error) {
	splits, err := w.tradingToTradingSplits(ctx, idx, nil)
	if err != nil {
		return 0, err
	}
	return splits[0].Index, nil
}

// TradingToTradingMultipleAccounts is TradingToTrading generalized to N
// outputs: sum(splits) must equal idx's current balance.
func (w *OrderWallet) TradingToTradingMultipleAccounts(ctx context.Context, idx uint64, splits []uint64) ([]AccountSplit, error) {
	if len(splits) == 0 {
		return nil, &walleterr.BadAccountStateError{Index: idx, Reason: "no split amounts given"}
	}
	return w.tradingToTradingSplits(ctx, idx, splits)
}

// tradingToTradingSplits implements both TradingToTrading (nil splits,
// meaning "one output for the full balance") and
// TradingToTradingMultipleAccounts.
func (w *OrderWallet) tradingToTradingSplits(ctx context.Context, idx uint64, splits []uint64) ([]AccountSplit, error) {
	source, ok := w.registry.GetAccount(idx)
	if !ok {
		return nil, &walleterr.BadAccountStateError{Index: idx, Reason: "not found"}
	}
	if !source.OnChain || source.IOType != zkaccount.IOTypeCoin || source.Balance == 0 {
		return nil, &walleterr.BadAccountStateError{Index: idx, Reason: "not on chain, not a coin account, or zero balance"}
	}

	if splits == nil {
		splits = []uint64{source.Balance}
	}
	var sum uint64
	for _, s := range splits {
		sum += s
	}
	if sum != source.Balance {
		return nil, &walleterr.BadAccountStateError{
			Index:  idx,
			Reason: fmt.Sprintf("split sum %d does not equal source balance %d", sum, source.Balance),
		}
	}

	sourceUtxo, err := retry.Poll(ctx, utxoRetryAttempts, utxoRetryBudget, func(ctx context.Context) (*rpcclient.UtxoDetail, error) {
		return w.zkos.GetUtxoDetail(ctx, source.Account, string(zkaccount.IOTypeCoin))
	})
	if err != nil {
		return nil, &walleterr.FetchUtxoFailedError{Attempts: utxoRetryAttempts, IOType: string(zkaccount.IOTypeCoin), Source: err}
	}

	receivers := make([]*zkaccount.ZkAccount, 0, len(splits))
	receiverInputs := make([]string, 0, len(splits))
	for _, balance := range splits {
		acc, err := w.registry.GenerateNewAccount(w.zkSeed, balance)
		if err != nil {
			return nil, &walleterr.ZkAccountDbError{Msg: err.Error()}
		}
		if err := w.persistAccount(acc); err != nil {
			return nil, err
		}
		receivers = append(receivers, acc)
		receiverInputs = append(receiverInputs, acc.Account)
	}

	payload, err := zksdk.BuildPrivateTransferPayload(zksdk.TransferParams{
		SenderScalar:    source.Scalar,
		SenderUtxoInput: sourceUtxo.TxHash,
		ReceiverInputs:  receiverInputs,
		Amounts:         splits,
		AccountAddress:  source.Account,
	})
	if err != nil {
		return nil, &walleterr.TxBuildError{Msg: err.Error()}
	}

	msg := txbuilder.MsgTransferTx{
		TxID:            sourceUtxo.TxHash,
		TxByteCode:      []byte(payload),
		TxFee:           0,
		ZkOracleAddress: w.endpoints.ZkosServerURL,
	}

	info, err := w.accountInfo(ctx)
	if err != nil {
		return nil, err
	}
	signed, err := w.builder.BuildAndSign(w.priv, msg.Any(), info.AccountNumber, info.Sequence)
	if err != nil {
		return nil, &walleterr.TxBuildError{Msg: err.Error()}
	}

	if _, err := w.chainRPC.BroadcastTxCommit(ctx, signed.Base64); err != nil {
		return nil, &walleterr.RpcRequestError{Msg: "broadcast transfer tx", Err: err}
	}

	out := make([]AccountSplit, 0, len(receivers))
	for i, acc := range receivers {
		detail, err := retry.Poll(ctx, utxoRetryAttempts, utxoRetryBudget, func(ctx context.Context) (*rpcclient.UtxoDetail, error) {
			return w.zkos.GetUtxoDetail(ctx, acc.Account, string(zkaccount.IOTypeCoin))
		})
		if err != nil {
			return nil, &walleterr.FetchUtxoFailedError{Attempts: utxoRetryAttempts, IOType: string(zkaccount.IOTypeCoin), Source: err}
		}
		if err := w.persistUtxo(acc.Index, detail); err != nil {
			return nil, err
		}
		if err := w.registry.SetOnChain(acc.Index, true); err != nil {
			return nil, &walleterr.ZkAccountDbError{Msg: err.Error()}
		}
		acc.OnChain = true
		if err := w.persistAccount(acc); err != nil {
			return nil, err
		}
		out = append(out, AccountSplit{Index: acc.Index, Balance: splits[i]})
	}

	if err := w.dropUtxo(idx); err != nil {
		return nil, err
	}
	if err := w.registry.SetOnChain(idx, false); err != nil {
		return nil, &walleterr.ZkAccountDbError{Msg: err.Error()}
	}
	source.OnChain = false
	if err := w.persistAccount(source); err != nil {
		return nil, err
	}

	return out, nil
}

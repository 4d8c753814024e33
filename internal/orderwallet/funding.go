package orderwallet

import (
	"context"
	"time"

	"github.com/twilight-project/orderwallet/internal/retry"
	"github.com/twilight-project/orderwallet/internal/rpcclient"
	"github.com/twilight-project/orderwallet/internal/txbuilder"
	"github.com/twilight-project/orderwallet/internal/walleterr"
	"github.com/twilight-project/orderwallet/internal/zkaccount"
)

// utxoRetryBudget mirrors fetch_utxo_details_with_retry's (20, 1000ms)
// budget used after a mint broadcast.
var utxoRetryBudget = retry.FixedDelay(time.Second)

const utxoRetryAttempts = 20

// FundingToTrading moves amount sats from the base wallet into a newly
// allocated zk-account: mints a trading-BTC balance on chain and waits for
// the resulting Coin UTXO to become observable. Returns the broadcast
// result and the new account's index. A zero amount is rejected before
// any balance query or allocation.
func (w *OrderWallet) FundingToTrading(ctx context.Context, amount uint64) (TxResult, uint64, error) {
	if amount == 0 {
		return TxResult{}, 0, &walleterr.TxBuildError{Msg: "funding amount must be greater than zero"}
	}
	balance, err := w.RefreshBalance(ctx)
	if err != nil {
		return TxResult{}, 0, err
	}
	if !(balance.Nyks > 0 && balance.Sats >= amount) {
		return TxResult{}, 0, walleterr.ErrInsufficientBalance
	}

	acc, err := w.registry.GenerateNewAccount(w.zkSeed, amount)
	if err != nil {
		return TxResult{}, 0, &walleterr.ZkAccountDbError{Msg: err.Error()}
	}
	if err := w.persistAccount(acc); err != nil {
		return TxResult{}, 0, err
	}

	info, err := w.accountInfo(ctx)
	if err != nil {
		return TxResult{}, acc.Index, err
	}

	msg := txbuilder.MsgMintBurnTradingBtc{
		MintOrBurn:      true,
		BtcValue:        amount,
		QqAccount:       acc.QQAddress,
		EncryptScalar:   acc.Scalar,
		TwilightAddress: w.address,
	}
	signed, err := w.builder.BuildAndSign(w.priv, msg.Any(), info.AccountNumber, info.Sequence)
	if err != nil {
		return TxResult{}, acc.Index, &walleterr.TxBuildError{Msg: err.Error()}
	}

	result, err := w.chainRPC.BroadcastTxSync(ctx, signed.Base64)
	if err != nil {
		return TxResult{}, acc.Index, &walleterr.RpcRequestError{Msg: "broadcast mint tx", Err: err}
	}
	if result.Code != 0 {
		// The account stays allocated with on_chain=false; it must not be
		// reused for another mint. The operator may garbage-collect it.
		return TxResult{}, acc.Index, &walleterr.TxBroadcastFailedError{Hash: result.Hash, Code: result.Code}
	}

	detail, err := retry.Poll(ctx, utxoRetryAttempts, utxoRetryBudget, func(ctx context.Context) (*rpcclient.UtxoDetail, error) {
		return w.zkos.GetUtxoDetail(ctx, acc.Account, string(zkaccount.IOTypeCoin))
	})
	if err != nil {
		// Broadcast succeeded but the UTXO never appeared within budget: a
		// recoverable error, account remains allocated with on_chain=false
		// until a later manual reconciliation.
		return TxResult{TxHash: result.Hash, Code: result.Code, Log: result.Log}, acc.Index,
			&walleterr.FetchUtxoFailedError{Attempts: utxoRetryAttempts, IOType: string(zkaccount.IOTypeCoin), Source: err}
	}

	if err := w.persistUtxo(acc.Index, detail); err != nil {
		return TxResult{}, acc.Index, err
	}
	if err := w.registry.SetOnChain(acc.Index, true); err != nil {
		return TxResult{}, acc.Index, &walleterr.ZkAccountDbError{Msg: err.Error()}
	}
	acc.OnChain = true
	if err := w.persistAccount(acc); err != nil {
		return TxResult{}, acc.Index, err
	}

	return TxResult{TxHash: result.Hash, Code: result.Code, Log: result.Log}, acc.Index, nil
}

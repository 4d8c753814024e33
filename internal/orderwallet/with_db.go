package orderwallet

import (
	"encoding/json"
	"fmt"

	"github.com/twilight-project/orderwallet/internal/keys"
	"github.com/twilight-project/orderwallet/internal/rpcclient"
	"github.com/twilight-project/orderwallet/internal/storage"
	"github.com/twilight-project/orderwallet/internal/walleterr"
	"github.com/twilight-project/orderwallet/internal/zkaccount"
)

// WithDB associates w with store under w.Label: it upserts the
// encrypted_wallets and order_wallets rows (encrypting the mnemonic, if
// any, and the zk-seed under password), then loads any pre-existing
// zk_accounts, utxo_details, and request_ids rows into memory so a
// restarted process resumes exactly where it left off.
func (w *OrderWallet) WithDB(store *storage.Storage, password string, kdf keys.KDF) error {
	w.store = store

	if kdf == keys.KDFSHA256 {
		w.log.Warn("Using the SHA-256 fallback KDF for at-rest encryption; it has no brute-force resistance")
	}

	if w.mnemonic != "" {
		encMnemonic, err := keys.EncryptMnemonic(w.mnemonic, password, kdf)
		if err != nil {
			return &walleterr.DatabaseError{Op: "encrypt mnemonic", Err: err}
		}
		if err := store.SaveEncryptedWallet(&storage.EncryptedWallet{
			WalletID:      w.Label,
			EncryptedData: encMnemonic.Ciphertext,
			Salt:          encMnemonic.Salt,
			Nonce:         encMnemonic.Nonce,
		}); err != nil {
			return &walleterr.DatabaseError{Op: "save encrypted wallet", Err: err}
		}
	}

	encSeed, err := keys.EncryptBytes(w.zkSeed, password, kdf)
	if err != nil {
		return &walleterr.DatabaseError{Op: "encrypt zk seed", Err: err}
	}
	if err := store.SaveOrderWallet(&storage.OrderWalletRecord{
		WalletID:            w.Label,
		ChainID:             w.ChainID,
		SeedEncrypted:       encSeed.Ciphertext,
		SeedSalt:            encSeed.Salt,
		SeedNonce:           encSeed.Nonce,
		RelayerEndpoint:     w.endpoints.RelayerAPIRPCServerURL,
		ZkosEndpoint:        w.endpoints.ZkosServerURL,
		ProgramPath:         w.endpoints.RelayerProgramJSONPath,
		ValidatorWalletPath: w.endpoints.ValidatorWalletPath,
		IsActive:            true,
	}); err != nil {
		return &walleterr.DatabaseError{Op: "save order wallet", Err: err}
	}

	if err := w.loadZkAccounts(); err != nil {
		return err
	}
	if err := w.loadCaches(); err != nil {
		return err
	}
	return nil
}

func (w *OrderWallet) loadZkAccounts() error {
	records, err := w.store.ListZkAccounts(w.Label)
	if err != nil {
		return &walleterr.DatabaseError{Op: "list zk accounts", Err: err}
	}
	for _, r := range records {
		acc := &zkaccount.ZkAccount{
			Index:     r.AccountIndex,
			QQAddress: r.QQAddress,
			Account:   r.Account,
			Balance:   r.Balance,
			Scalar:    r.Scalar,
			IOType:    zkaccount.IOType(r.IOTypeValue),
			OnChain:   r.OnChain,
		}
		if err := w.registry.AddAccount(acc); err != nil {
			return &walleterr.ZkAccountDbError{Msg: fmt.Sprintf("restore account %d: %v", r.AccountIndex, err)}
		}
	}
	return nil
}

func (w *OrderWallet) loadCaches() error {
	for _, acc := range w.registry.All() {
		if rec, err := w.store.GetRequestID(w.Label, acc.Index); err != nil {
			return &walleterr.DatabaseError{Op: "load request id", Err: err}
		} else if rec != nil {
			w.requestIDs[acc.Index] = rpcclient.RequestID(rec.RequestID)
		}

		if rec, err := w.store.GetUtxoDetail(w.Label, acc.Index); err != nil {
			return &walleterr.DatabaseError{Op: "load utxo detail", Err: err}
		} else if rec != nil {
			var detail rpcclient.UtxoDetail
			if err := json.Unmarshal([]byte(rec.UtxoDataJSON), &detail); err != nil {
				return &walleterr.SerializationError{Msg: "decode cached utxo", Err: err}
			}
			w.utxoCache[acc.Index] = &detail
		}
	}
	return nil
}

// persistAccount upserts acc's current state into the zk_accounts table.
func (w *OrderWallet) persistAccount(acc *zkaccount.ZkAccount) error {
	if w.store == nil {
		return nil
	}
	if err := w.store.SaveZkAccount(&storage.ZkAccountRecord{
		WalletID:     w.Label,
		AccountIndex: acc.Index,
		QQAddress:    acc.QQAddress,
		Balance:      acc.Balance,
		Account:      acc.Account,
		Scalar:       acc.Scalar,
		IOTypeValue:  string(acc.IOType),
		OnChain:      acc.OnChain,
	}); err != nil {
		return &walleterr.DatabaseError{Op: "save zk account", Err: err}
	}
	return nil
}

func (w *OrderWallet) persistRequestID(index uint64, id rpcclient.RequestID) error {
	w.requestIDs[index] = id
	if w.store == nil {
		return nil
	}
	if err := w.store.SaveRequestID(w.Label, index, string(id)); err != nil {
		return &walleterr.DatabaseError{Op: "save request id", Err: err}
	}
	return nil
}

func (w *OrderWallet) persistUtxo(index uint64, detail *rpcclient.UtxoDetail) error {
	w.utxoCache[index] = detail
	if w.store == nil {
		return nil
	}
	data, err := json.Marshal(detail)
	if err != nil {
		return &walleterr.SerializationError{Msg: "encode utxo for cache", Err: err}
	}
	if err := w.store.SaveUtxoDetail(w.Label, index, string(data)); err != nil {
		return &walleterr.DatabaseError{Op: "save utxo detail", Err: err}
	}
	return nil
}

func (w *OrderWallet) dropUtxo(index uint64) error {
	delete(w.utxoCache, index)
	if w.store == nil {
		return nil
	}
	if err := w.store.DeleteUtxoDetail(w.Label, index); err != nil {
		return &walleterr.DatabaseError{Op: "delete utxo detail", Err: err}
	}
	return nil
}

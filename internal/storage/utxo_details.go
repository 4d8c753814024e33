package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// UtxoDetailRecord caches the last observed on-chain UTXO state for a
// zk-account, stored as opaque JSON since its shape is defined by
// rpcclient.UtxoDetail rather than by this package.
type UtxoDetailRecord struct {
	WalletID     string
	AccountIndex uint64
	UtxoDataJSON string
	CreatedAt    int64
	UpdatedAt    int64
}

// SaveUtxoDetail inserts or updates the cached UTXO JSON for
// (walletID, index).
func (s *Storage) SaveUtxoDetail(walletID string, index uint64, utxoDataJSON string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().Unix()
	_, err := s.db.Exec(`
		INSERT INTO utxo_details (wallet_id, account_index, utxo_data_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(wallet_id, account_index) DO UPDATE SET
			utxo_data_json=excluded.utxo_data_json,
			updated_at=excluded.updated_at
	`, walletID, index, utxoDataJSON, now, now)
	if err != nil {
		return fmt.Errorf("save utxo detail %s/%d: %w", walletID, index, err)
	}
	return nil
}

// GetUtxoDetail loads the cached UTXO JSON for (walletID, index), returning
// (nil, nil) if nothing has been cached yet.
func (s *Storage) GetUtxoDetail(walletID string, index uint64) (*UtxoDetailRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r := &UtxoDetailRecord{WalletID: walletID, AccountIndex: index}
	row := s.db.QueryRow(`
		SELECT utxo_data_json, created_at, updated_at
		FROM utxo_details WHERE wallet_id = ? AND account_index = ?
	`, walletID, index)
	if err := row.Scan(&r.UtxoDataJSON, &r.CreatedAt, &r.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get utxo detail %s/%d: %w", walletID, index, err)
	}
	return r, nil
}

// DeleteUtxoDetail removes the cached UTXO JSON for (walletID, index).
func (s *Storage) DeleteUtxoDetail(walletID string, index uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM utxo_details WHERE wallet_id = ? AND account_index = ?`, walletID, index)
	if err != nil {
		return fmt.Errorf("delete utxo detail %s/%d: %w", walletID, index, err)
	}
	return nil
}

package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// ZkAccountRecord is the persisted form of a zkaccount.ZkAccount, scoped
// to the wallet that owns it.
type ZkAccountRecord struct {
	WalletID     string
	AccountIndex uint64
	QQAddress    string
	Balance      uint64
	Account      string
	Scalar       string
	IOTypeValue  string
	OnChain      bool
	CreatedAt    int64
	UpdatedAt    int64
}

// SaveZkAccount inserts or updates the record identified by
// (a.WalletID, a.AccountIndex).
func (s *Storage) SaveZkAccount(a *ZkAccountRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().Unix()
	_, err := s.db.Exec(`
		INSERT INTO zk_accounts (
			wallet_id, account_index, qq_address, balance, account, scalar,
			io_type_value, on_chain, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(wallet_id, account_index) DO UPDATE SET
			qq_address=excluded.qq_address,
			balance=excluded.balance,
			account=excluded.account,
			scalar=excluded.scalar,
			io_type_value=excluded.io_type_value,
			on_chain=excluded.on_chain,
			updated_at=excluded.updated_at
	`, a.WalletID, a.AccountIndex, a.QQAddress, a.Balance, a.Account, a.Scalar,
		a.IOTypeValue, boolToInt(a.OnChain), now, now)
	if err != nil {
		return fmt.Errorf("save zk account %s/%d: %w", a.WalletID, a.AccountIndex, err)
	}
	return nil
}

// GetZkAccount loads the zk-account at (walletID, index), returning
// (nil, nil) if it has not been persisted yet.
func (s *Storage) GetZkAccount(walletID string, index uint64) (*ZkAccountRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a := &ZkAccountRecord{WalletID: walletID, AccountIndex: index}
	var onChain int
	row := s.db.QueryRow(`
		SELECT qq_address, balance, account, scalar, io_type_value, on_chain, created_at, updated_at
		FROM zk_accounts WHERE wallet_id = ? AND account_index = ?
	`, walletID, index)
	err := row.Scan(&a.QQAddress, &a.Balance, &a.Account, &a.Scalar, &a.IOTypeValue,
		&onChain, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get zk account %s/%d: %w", walletID, index, err)
	}
	a.OnChain = onChain != 0
	return a, nil
}

// ListZkAccounts returns every zk-account persisted for walletID, ordered
// by account_index.
func (s *Storage) ListZkAccounts(walletID string) ([]*ZkAccountRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT account_index, qq_address, balance, account, scalar, io_type_value, on_chain, created_at, updated_at
		FROM zk_accounts WHERE wallet_id = ? ORDER BY account_index
	`, walletID)
	if err != nil {
		return nil, fmt.Errorf("list zk accounts for %s: %w", walletID, err)
	}
	defer rows.Close()

	var out []*ZkAccountRecord
	for rows.Next() {
		a := &ZkAccountRecord{WalletID: walletID}
		var onChain int
		if err := rows.Scan(&a.AccountIndex, &a.QQAddress, &a.Balance, &a.Account, &a.Scalar,
			&a.IOTypeValue, &onChain, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan zk account row: %w", err)
		}
		a.OnChain = onChain != 0
		out = append(out, a)
	}
	return out, rows.Err()
}

// DeleteZkAccount removes the zk-account at (walletID, index) — used once
// a single-use account's UTXO has been fully consumed.
func (s *Storage) DeleteZkAccount(walletID string, index uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM zk_accounts WHERE wallet_id = ? AND account_index = ?`, walletID, index)
	if err != nil {
		return fmt.Errorf("delete zk account %s/%d: %w", walletID, index, err)
	}
	return nil
}

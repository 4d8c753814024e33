package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// EncryptedWallet is an opaque encrypted-mnemonic envelope keyed by
// wallet id. OrderWallet.WithDB writes one for a wallet that has a
// mnemonic; the zk-seed itself lives in order_wallets.
type EncryptedWallet struct {
	WalletID      string
	EncryptedData []byte
	Salt          []byte
	Nonce         []byte
	CreatedAt     int64
	UpdatedAt     int64
}

// SaveEncryptedWallet inserts or updates the encrypted wallet envelope for
// walletID.
func (s *Storage) SaveEncryptedWallet(w *EncryptedWallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().Unix()
	_, err := s.db.Exec(`
		INSERT INTO encrypted_wallets (wallet_id, encrypted_data, salt, nonce, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(wallet_id) DO UPDATE SET
			encrypted_data=excluded.encrypted_data,
			salt=excluded.salt,
			nonce=excluded.nonce,
			updated_at=excluded.updated_at
	`, w.WalletID, w.EncryptedData, w.Salt, w.Nonce, now, now)
	if err != nil {
		return fmt.Errorf("save encrypted wallet %s: %w", w.WalletID, err)
	}
	return nil
}

// GetEncryptedWallet loads the encrypted wallet envelope for walletID.
func (s *Storage) GetEncryptedWallet(walletID string) (*EncryptedWallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w := &EncryptedWallet{WalletID: walletID}
	row := s.db.QueryRow(`
		SELECT encrypted_data, salt, nonce, created_at, updated_at
		FROM encrypted_wallets WHERE wallet_id = ?
	`, walletID)
	if err := row.Scan(&w.EncryptedData, &w.Salt, &w.Nonce, &w.CreatedAt, &w.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get encrypted wallet %s: %w", walletID, err)
	}
	return w, nil
}

// DeleteEncryptedWallet removes the encrypted wallet envelope for walletID.
func (s *Storage) DeleteEncryptedWallet(walletID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM encrypted_wallets WHERE wallet_id = ?`, walletID); err != nil {
		return fmt.Errorf("delete encrypted wallet %s: %w", walletID, err)
	}
	return nil
}

package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// OrderWalletRecord is the persisted configuration and encrypted seed for
// a single OrderWallet instance.
type OrderWalletRecord struct {
	WalletID            string
	ChainID             string
	SeedEncrypted       []byte
	SeedSalt            []byte
	SeedNonce           []byte
	RelayerEndpoint     string
	ZkosEndpoint        string
	ProgramPath         string
	ValidatorWalletPath string
	IsActive            bool
	CreatedAt           int64
	UpdatedAt           int64
}

// SaveOrderWallet inserts or updates the record for w.WalletID.
func (s *Storage) SaveOrderWallet(w *OrderWalletRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().Unix()
	_, err := s.db.Exec(`
		INSERT INTO order_wallets (
			wallet_id, chain_id, seed_encrypted, seed_salt, seed_nonce,
			relayer_endpoint, zkos_endpoint, program_path, validator_wallet_path,
			is_active, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(wallet_id) DO UPDATE SET
			chain_id=excluded.chain_id,
			seed_encrypted=excluded.seed_encrypted,
			seed_salt=excluded.seed_salt,
			seed_nonce=excluded.seed_nonce,
			relayer_endpoint=excluded.relayer_endpoint,
			zkos_endpoint=excluded.zkos_endpoint,
			program_path=excluded.program_path,
			validator_wallet_path=excluded.validator_wallet_path,
			is_active=excluded.is_active,
			updated_at=excluded.updated_at
	`, w.WalletID, w.ChainID, w.SeedEncrypted, w.SeedSalt, w.SeedNonce,
		w.RelayerEndpoint, w.ZkosEndpoint, w.ProgramPath, w.ValidatorWalletPath,
		boolToInt(w.IsActive), now, now)
	if err != nil {
		return fmt.Errorf("save order wallet %s: %w", w.WalletID, err)
	}
	return nil
}

// GetOrderWallet loads the record for walletID, returning (nil, nil) if no
// such wallet has been persisted yet.
func (s *Storage) GetOrderWallet(walletID string) (*OrderWalletRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w := &OrderWalletRecord{WalletID: walletID}
	var isActive int
	row := s.db.QueryRow(`
		SELECT chain_id, seed_encrypted, seed_salt, seed_nonce,
			relayer_endpoint, zkos_endpoint, program_path, validator_wallet_path,
			is_active, created_at, updated_at
		FROM order_wallets WHERE wallet_id = ?
	`, walletID)
	err := row.Scan(&w.ChainID, &w.SeedEncrypted, &w.SeedSalt, &w.SeedNonce,
		&w.RelayerEndpoint, &w.ZkosEndpoint, &w.ProgramPath, &w.ValidatorWalletPath,
		&isActive, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get order wallet %s: %w", walletID, err)
	}
	w.IsActive = isActive != 0
	return w, nil
}

// ListActiveOrderWallets returns every order wallet record with is_active = 1.
func (s *Storage) ListActiveOrderWallets() ([]*OrderWalletRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT wallet_id, chain_id, seed_encrypted, seed_salt, seed_nonce,
			relayer_endpoint, zkos_endpoint, program_path, validator_wallet_path,
			is_active, created_at, updated_at
		FROM order_wallets WHERE is_active = 1
	`)
	if err != nil {
		return nil, fmt.Errorf("list active order wallets: %w", err)
	}
	defer rows.Close()

	var out []*OrderWalletRecord
	for rows.Next() {
		w := &OrderWalletRecord{}
		var isActive int
		if err := rows.Scan(&w.WalletID, &w.ChainID, &w.SeedEncrypted, &w.SeedSalt, &w.SeedNonce,
			&w.RelayerEndpoint, &w.ZkosEndpoint, &w.ProgramPath, &w.ValidatorWalletPath,
			&isActive, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order wallet row: %w", err)
		}
		w.IsActive = isActive != 0
		out = append(out, w)
	}
	return out, rows.Err()
}

// SetOrderWalletActive flips the is_active flag for walletID.
func (s *Storage) SetOrderWalletActive(walletID string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		UPDATE order_wallets SET is_active = ?, updated_at = ? WHERE wallet_id = ?
	`, boolToInt(active), time.Now().Unix(), walletID)
	if err != nil {
		return fmt.Errorf("set order wallet %s active=%v: %w", walletID, active, err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

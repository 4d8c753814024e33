package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// RequestIDRecord tracks the relayer request id currently outstanding for
// a zk-account, so a restarted process can resume polling instead of
// losing track of an in-flight order.
type RequestIDRecord struct {
	WalletID     string
	AccountIndex uint64
	RequestID    string
	CreatedAt    int64
	UpdatedAt    int64
}

// SaveRequestID records requestID as outstanding for (walletID, index).
func (s *Storage) SaveRequestID(walletID string, index uint64, requestID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().Unix()
	_, err := s.db.Exec(`
		INSERT INTO request_ids (wallet_id, account_index, request_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(wallet_id, account_index) DO UPDATE SET
			request_id=excluded.request_id,
			updated_at=excluded.updated_at
	`, walletID, index, requestID, now, now)
	if err != nil {
		return fmt.Errorf("save request id %s/%d: %w", walletID, index, err)
	}
	return nil
}

// GetRequestID loads the outstanding request id for (walletID, index),
// returning (nil, nil) if none is recorded.
func (s *Storage) GetRequestID(walletID string, index uint64) (*RequestIDRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r := &RequestIDRecord{WalletID: walletID, AccountIndex: index}
	row := s.db.QueryRow(`
		SELECT request_id, created_at, updated_at
		FROM request_ids WHERE wallet_id = ? AND account_index = ?
	`, walletID, index)
	if err := row.Scan(&r.RequestID, &r.CreatedAt, &r.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get request id %s/%d: %w", walletID, index, err)
	}
	return r, nil
}

// DeleteRequestID clears the outstanding request id for (walletID, index)
// once the order it refers to has resolved.
func (s *Storage) DeleteRequestID(walletID string, index uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM request_ids WHERE wallet_id = ? AND account_index = ?`, walletID, index)
	if err != nil {
		return fmt.Errorf("delete request id %s/%d: %w", walletID, index, err)
	}
	return nil
}

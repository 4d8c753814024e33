// Package storage provides SQLite-backed persistence for encrypted
// wallets, order-wallet metadata, zk-accounts, cached UTXOs, and relayer
// request ids — everything an OrderWallet needs to survive a restart.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// Config configures where the database file lives.
type Config struct {
	DataDir string
}

// Storage wraps a SQLite connection with the mutex the donor pattern uses
// to serialize writes against the single connection (SetMaxOpenConns(1)).
type Storage struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex
}

const schema = `
CREATE TABLE IF NOT EXISTS encrypted_wallets (
	wallet_id     TEXT PRIMARY KEY,
	encrypted_data BLOB NOT NULL,
	salt          BLOB NOT NULL,
	nonce         BLOB NOT NULL,
	created_at    INTEGER NOT NULL,
	updated_at    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS order_wallets (
	wallet_id            TEXT PRIMARY KEY,
	chain_id             TEXT NOT NULL,
	seed_encrypted       BLOB NOT NULL,
	seed_salt            BLOB NOT NULL,
	seed_nonce           BLOB NOT NULL,
	relayer_endpoint     TEXT NOT NULL,
	zkos_endpoint        TEXT NOT NULL,
	program_path         TEXT NOT NULL,
	validator_wallet_path TEXT NOT NULL DEFAULT '',
	is_active            INTEGER NOT NULL DEFAULT 1,
	created_at           INTEGER NOT NULL,
	updated_at           INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS zk_accounts (
	wallet_id     TEXT NOT NULL,
	account_index INTEGER NOT NULL,
	qq_address    TEXT NOT NULL,
	balance       INTEGER NOT NULL,
	account       TEXT NOT NULL,
	scalar        TEXT NOT NULL,
	io_type_value TEXT NOT NULL,
	on_chain      INTEGER NOT NULL DEFAULT 0,
	created_at    INTEGER NOT NULL,
	updated_at    INTEGER NOT NULL,
	PRIMARY KEY (wallet_id, account_index)
);

CREATE TABLE IF NOT EXISTS utxo_details (
	wallet_id      TEXT NOT NULL,
	account_index  INTEGER NOT NULL,
	utxo_data_json TEXT NOT NULL,
	created_at     INTEGER NOT NULL,
	updated_at     INTEGER NOT NULL,
	PRIMARY KEY (wallet_id, account_index)
);

CREATE TABLE IF NOT EXISTS request_ids (
	wallet_id     TEXT NOT NULL,
	account_index INTEGER NOT NULL,
	request_id    TEXT NOT NULL,
	created_at    INTEGER NOT NULL,
	updated_at    INTEGER NOT NULL,
	PRIMARY KEY (wallet_id, account_index)
);
`

// New opens (creating if necessary) the SQLite database under cfg.DataDir.
func New(cfg *Config) (*Storage, error) {
	dataDir := expandPath(cfg.DataDir)
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "orderwallet.db")
	dsn := dbPath + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Storage{db: db, dbPath: dbPath}, nil
}

// DB exposes the underlying connection for callers (and tests) that need
// direct access.
func (s *Storage) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

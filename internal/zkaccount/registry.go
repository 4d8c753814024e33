package zkaccount

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Registry is the in-memory set of zk-accounts an OrderWallet has ever
// allocated, keyed by their dense allocation index. It is the Go analogue
// of the original wallet's ZkAccountDB.
type Registry struct {
	mu       sync.RWMutex
	accounts map[uint64]*ZkAccount
	next     uint64
}

// NewRegistry returns an empty registry starting allocation at index 0.
func NewRegistry() *Registry {
	return &Registry{accounts: make(map[uint64]*ZkAccount)}
}

// GenerateNewAccount derives and stores the next zk-account in sequence,
// returning it.
func (r *Registry) GenerateNewAccount(seed []byte, balance uint64) (*ZkAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, err := FromSeed(r.next, seed, balance)
	if err != nil {
		return nil, fmt.Errorf("derive account %d: %w", r.next, err)
	}
	r.accounts[r.next] = acc
	r.next++
	return acc, nil
}

// AddAccount inserts acc at its own index, failing if that index is already
// occupied. The allocator cursor advances past acc.Index if necessary.
func (r *Registry) AddAccount(acc *ZkAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[acc.Index]; exists {
		return fmt.Errorf("account index %d already exists", acc.Index)
	}
	r.accounts[acc.Index] = acc
	if acc.Index >= r.next {
		r.next = acc.Index + 1
	}
	return nil
}

// GetAccount returns the account at index, if any.
func (r *Registry) GetAccount(index uint64) (*ZkAccount, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acc, ok := r.accounts[index]
	return acc, ok
}

// GetBalance returns the cached balance for index.
func (r *Registry) GetBalance(index uint64) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acc, ok := r.accounts[index]
	if !ok {
		return 0, fmt.Errorf("account index %d not found", index)
	}
	return acc.Balance, nil
}

// UpdateBalance overwrites the cached balance and commitment for index.
func (r *Registry) UpdateBalance(index uint64, balance uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc, ok := r.accounts[index]
	if !ok {
		return fmt.Errorf("account index %d not found", index)
	}
	return acc.Recommit(balance)
}

// SetOnChain marks index as observed (or not) on chain.
func (r *Registry) SetOnChain(index uint64, onChain bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc, ok := r.accounts[index]
	if !ok {
		return fmt.Errorf("account index %d not found", index)
	}
	acc.OnChain = onChain
	return nil
}

// SetIOType updates the UTXO kind an on-chain account is believed to hold.
func (r *Registry) SetIOType(index uint64, ioType IOType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc, ok := r.accounts[index]
	if !ok {
		return fmt.Errorf("account index %d not found", index)
	}
	acc.IOType = ioType
	return nil
}

// RemoveAccount deletes index from the registry (it does not reclaim the
// index for future allocation).
func (r *Registry) RemoveAccount(index uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[index]; !ok {
		return fmt.Errorf("account index %d not found", index)
	}
	delete(r.accounts, index)
	return nil
}

// All returns every stored account, unordered.
func (r *Registry) All() []*ZkAccount {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*ZkAccount, 0, len(r.accounts))
	for _, acc := range r.accounts {
		out = append(out, acc)
	}
	return out
}

// registrySnapshot is the JSON-serializable form of a Registry.
type registrySnapshot struct {
	Next     uint64                `json:"next_index"`
	Accounts map[uint64]*ZkAccount `json:"accounts"`
}

// ExportToJSON atomically persists the registry to path: it writes to a
// temporary file in the same directory and renames it over path, so a crash
// or concurrent reader never observes a partially written file. This is a
// deliberate improvement over the original wallet's export, which renamed
// the existing file aside as a backup and then wrote in place (non-atomic
// with respect to readers, though see ExportBackup below for that
// behavior preserved as an opt-in).
func (r *Registry) ExportToJSON(path string) error {
	r.mu.RLock()
	snap := registrySnapshot{Next: r.next, Accounts: r.accounts}
	data, err := json.MarshalIndent(snap, "", "  ")
	r.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("marshal registry: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".zkaccounts-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once the rename below succeeds

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

// ExportBackup mirrors the original wallet's try_export_to_json: if path
// already exists it is renamed aside with a timestamp suffix before the new
// snapshot is written, so operators keep a trail of prior snapshots. It is
// not atomic with respect to a concurrent reader of path and exists only as
// an opt-in safety net; ExportToJSON is the default.
func (r *Registry) ExportBackup(path string) error {
	if _, err := os.Stat(path); err == nil {
		backupPath := fmt.Sprintf("%s.%d.bak", path, time.Now().Unix())
		if err := os.Rename(path, backupPath); err != nil {
			return fmt.Errorf("back up existing file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat existing file: %w", err)
	}
	return r.ExportToJSON(path)
}

// ImportFromJSON loads a registry previously written by ExportToJSON.
func ImportFromJSON(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry file: %w", err)
	}
	var snap registrySnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse registry file: %w", err)
	}
	if snap.Accounts == nil {
		snap.Accounts = make(map[uint64]*ZkAccount)
	}
	return &Registry{accounts: snap.Accounts, next: snap.Next}, nil
}

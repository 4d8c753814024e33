package storage

import (
	"testing"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(&Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNew(t *testing.T) {
	s := newTestStorage(t)
	if s.DB() == nil {
		t.Fatal("expected a non-nil db handle")
	}
}

func TestStorageSchema(t *testing.T) {
	s := newTestStorage(t)
	tables := []string{"encrypted_wallets", "order_wallets", "zk_accounts", "utxo_details", "request_ids"}
	for _, table := range tables {
		var name string
		err := s.DB().QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}
}

func TestEncryptedWalletRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	w := &EncryptedWallet{
		WalletID:      "wallet-1",
		EncryptedData: []byte("cipher"),
		Salt:          []byte("salt"),
		Nonce:         []byte("nonce"),
	}
	if err := s.SaveEncryptedWallet(w); err != nil {
		t.Fatalf("SaveEncryptedWallet: %v", err)
	}

	got, err := s.GetEncryptedWallet("wallet-1")
	if err != nil {
		t.Fatalf("GetEncryptedWallet: %v", err)
	}
	if got == nil {
		t.Fatal("expected a record")
	}
	if string(got.EncryptedData) != "cipher" {
		t.Errorf("EncryptedData = %q, want %q", got.EncryptedData, "cipher")
	}

	w.EncryptedData = []byte("cipher-2")
	if err := s.SaveEncryptedWallet(w); err != nil {
		t.Fatalf("SaveEncryptedWallet (update): %v", err)
	}
	got, err = s.GetEncryptedWallet("wallet-1")
	if err != nil {
		t.Fatalf("GetEncryptedWallet: %v", err)
	}
	if string(got.EncryptedData) != "cipher-2" {
		t.Errorf("EncryptedData after update = %q, want %q", got.EncryptedData, "cipher-2")
	}

	if err := s.DeleteEncryptedWallet("wallet-1"); err != nil {
		t.Fatalf("DeleteEncryptedWallet: %v", err)
	}
	got, err = s.GetEncryptedWallet("wallet-1")
	if err != nil {
		t.Fatalf("GetEncryptedWallet after delete: %v", err)
	}
	if got != nil {
		t.Error("expected nil record after delete")
	}
}

func TestOrderWalletRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	w := &OrderWalletRecord{
		WalletID:            "wallet-1",
		ChainID:             "nyks",
		SeedEncrypted:       []byte("seed"),
		SeedSalt:            []byte("salt"),
		SeedNonce:           []byte("nonce"),
		RelayerEndpoint:     "http://localhost:8088/api",
		ZkosEndpoint:        "http://localhost:3030",
		ProgramPath:         "/etc/orderwallet/relayerprogram.json",
		ValidatorWalletPath: "/etc/orderwallet/validator",
		IsActive:            true,
	}
	if err := s.SaveOrderWallet(w); err != nil {
		t.Fatalf("SaveOrderWallet: %v", err)
	}

	got, err := s.GetOrderWallet("wallet-1")
	if err != nil {
		t.Fatalf("GetOrderWallet: %v", err)
	}
	if got == nil {
		t.Fatal("expected a record")
	}
	if got.ChainID != "nyks" || !got.IsActive {
		t.Errorf("unexpected record: %+v", got)
	}

	active, err := s.ListActiveOrderWallets()
	if err != nil {
		t.Fatalf("ListActiveOrderWallets: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("ListActiveOrderWallets: got %d, want 1", len(active))
	}

	if err := s.SetOrderWalletActive("wallet-1", false); err != nil {
		t.Fatalf("SetOrderWalletActive: %v", err)
	}
	active, err = s.ListActiveOrderWallets()
	if err != nil {
		t.Fatalf("ListActiveOrderWallets: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("ListActiveOrderWallets after deactivate: got %d, want 0", len(active))
	}
}

func TestZkAccountRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	a := &ZkAccountRecord{
		WalletID:     "wallet-1",
		AccountIndex: 0,
		QQAddress:    "aabbcc",
		Balance:      1000,
		Account:      "deadbeef",
		Scalar:       "cafebabe",
		IOTypeValue:  "Coin",
		OnChain:      false,
	}
	if err := s.SaveZkAccount(a); err != nil {
		t.Fatalf("SaveZkAccount: %v", err)
	}

	got, err := s.GetZkAccount("wallet-1", 0)
	if err != nil {
		t.Fatalf("GetZkAccount: %v", err)
	}
	if got == nil || got.Balance != 1000 {
		t.Fatalf("unexpected record: %+v", got)
	}

	a.Balance = 500
	a.OnChain = true
	if err := s.SaveZkAccount(a); err != nil {
		t.Fatalf("SaveZkAccount (update): %v", err)
	}

	list, err := s.ListZkAccounts("wallet-1")
	if err != nil {
		t.Fatalf("ListZkAccounts: %v", err)
	}
	if len(list) != 1 || list[0].Balance != 500 || !list[0].OnChain {
		t.Fatalf("unexpected list: %+v", list)
	}

	if err := s.DeleteZkAccount("wallet-1", 0); err != nil {
		t.Fatalf("DeleteZkAccount: %v", err)
	}
	got, err = s.GetZkAccount("wallet-1", 0)
	if err != nil {
		t.Fatalf("GetZkAccount after delete: %v", err)
	}
	if got != nil {
		t.Error("expected nil record after delete")
	}
}

func TestUtxoDetailRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	if err := s.SaveUtxoDetail("wallet-1", 0, `{"tx_hash":"abc"}`); err != nil {
		t.Fatalf("SaveUtxoDetail: %v", err)
	}
	got, err := s.GetUtxoDetail("wallet-1", 0)
	if err != nil {
		t.Fatalf("GetUtxoDetail: %v", err)
	}
	if got == nil || got.UtxoDataJSON != `{"tx_hash":"abc"}` {
		t.Fatalf("unexpected record: %+v", got)
	}

	if err := s.DeleteUtxoDetail("wallet-1", 0); err != nil {
		t.Fatalf("DeleteUtxoDetail: %v", err)
	}
	got, err = s.GetUtxoDetail("wallet-1", 0)
	if err != nil {
		t.Fatalf("GetUtxoDetail after delete: %v", err)
	}
	if got != nil {
		t.Error("expected nil record after delete")
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	if err := s.SaveRequestID("wallet-1", 0, "req-123"); err != nil {
		t.Fatalf("SaveRequestID: %v", err)
	}
	got, err := s.GetRequestID("wallet-1", 0)
	if err != nil {
		t.Fatalf("GetRequestID: %v", err)
	}
	if got == nil || got.RequestID != "req-123" {
		t.Fatalf("unexpected record: %+v", got)
	}

	if err := s.DeleteRequestID("wallet-1", 0); err != nil {
		t.Fatalf("DeleteRequestID: %v", err)
	}
	got, err = s.GetRequestID("wallet-1", 0)
	if err != nil {
		t.Fatalf("GetRequestID after delete: %v", err)
	}
	if got != nil {
		t.Error("expected nil record after delete")
	}
}

package zksdk

import (
	"strings"
	"testing"
)

func TestBuildPrivateTransferPayload_Single(t *testing.T) {
	p := TransferParams{
		SenderScalar:    "deadbeef",
		SenderUtxoInput: "utxo-in",
		ReceiverInputs:  []string{"utxo-out-1"},
		Amounts:         []uint64{1000},
		AccountAddress:  "twilight1abc",
	}
	h, err := BuildPrivateTransferPayload(p)
	if err != nil {
		t.Fatalf("BuildPrivateTransferPayload: %v", err)
	}
	raw, err := Decode(h)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !strings.Contains(string(raw), "private_transfer") {
		t.Fatal("expected encoded payload to carry its operation tag")
	}
	if !strings.Contains(string(raw), "utxo-out-1") {
		t.Fatal("expected encoded payload to carry the receiver input")
	}
}

func TestBuildPrivateTransferPayload_Multi(t *testing.T) {
	p := TransferParams{
		SenderScalar:    "deadbeef",
		SenderUtxoInput: "utxo-in",
		ReceiverInputs:  []string{"utxo-out-1", "utxo-out-2", "utxo-out-3"},
		Amounts:         []uint64{300, 300, 400},
		AccountAddress:  "twilight1abc",
	}
	h, err := BuildPrivateTransferPayload(p)
	if err != nil {
		t.Fatalf("BuildPrivateTransferPayload: %v", err)
	}
	if h == "" {
		t.Fatal("expected non-empty payload")
	}
}

func TestBuildPrivateTransferPayload_DeterministicForSameSplits(t *testing.T) {
	p := TransferParams{
		SenderScalar:    "deadbeef",
		SenderUtxoInput: "utxo-in",
		ReceiverInputs:  []string{"utxo-out-1", "utxo-out-2"},
		Amounts:         []uint64{500, 500},
		AccountAddress:  "twilight1abc",
	}
	h1, err := BuildPrivateTransferPayload(p)
	if err != nil {
		t.Fatalf("BuildPrivateTransferPayload: %v", err)
	}
	h2, err := BuildPrivateTransferPayload(p)
	if err != nil {
		t.Fatalf("BuildPrivateTransferPayload: %v", err)
	}
	if h1 != h2 {
		t.Fatal("expected deterministic encoding for identical split params")
	}
}

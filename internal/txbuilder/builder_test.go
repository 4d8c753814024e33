package txbuilder

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
)

func testPrivKey(t *testing.T) *btcec.PrivateKey {
	t.Helper()
	b := make([]byte, 32)
	for i := range b {
		b[i] = byte(i + 1)
	}
	priv, _ := btcec.PrivKeyFromBytes(b)
	return priv
}

func TestBuildAndSign(t *testing.T) {
	priv := testPrivKey(t)
	b := NewBuilder("nyks")

	msg := MsgTransferTx{TxID: "tx-1", TxByteCode: []byte{1, 2, 3}, TxFee: 100}.Any()

	signed, err := b.BuildAndSign(priv, msg, 1, 0)
	if err != nil {
		t.Fatalf("BuildAndSign: %v", err)
	}
	if len(signed.RawBytes) == 0 {
		t.Fatal("expected non-empty raw bytes")
	}
	if signed.Base64 == "" {
		t.Fatal("expected non-empty base64 encoding")
	}
}

func TestBuildAndSign_DifferentSequenceDifferentTx(t *testing.T) {
	priv := testPrivKey(t)
	b := NewBuilder("nyks")
	msg := MsgTransferTx{TxID: "tx-1", TxByteCode: []byte{1, 2, 3}, TxFee: 100}.Any()

	tx0, err := b.BuildAndSign(priv, msg, 1, 0)
	if err != nil {
		t.Fatalf("BuildAndSign(seq=0): %v", err)
	}
	tx1, err := b.BuildAndSign(priv, msg, 1, 1)
	if err != nil {
		t.Fatalf("BuildAndSign(seq=1): %v", err)
	}
	if tx0.Base64 == tx1.Base64 {
		t.Fatal("different sequences must produce different signed transactions")
	}
}

func TestBuildAndSign_DifferentChainIDDifferentSignature(t *testing.T) {
	priv := testPrivKey(t)
	msg := MsgTransferTx{TxID: "tx-1", TxByteCode: []byte{1, 2, 3}, TxFee: 100}.Any()

	txA, err := NewBuilder("nyks").BuildAndSign(priv, msg, 1, 0)
	if err != nil {
		t.Fatalf("BuildAndSign: %v", err)
	}
	txB, err := NewBuilder("other-chain").BuildAndSign(priv, msg, 1, 0)
	if err != nil {
		t.Fatalf("BuildAndSign: %v", err)
	}
	if txA.Base64 == txB.Base64 {
		t.Fatal("signing under a different chain id must change the signature")
	}
}

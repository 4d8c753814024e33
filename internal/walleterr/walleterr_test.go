package walleterr

import (
	"errors"
	"strings"
	"testing"
)

func TestBadAccountStateError(t *testing.T) {
	err := &BadAccountStateError{Index: 3, Reason: "not on chain"}
	if !strings.Contains(err.Error(), "account 3") || !strings.Contains(err.Error(), "not on chain") {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestInvalidOrderStatusError(t *testing.T) {
	err := &InvalidOrderStatusError{Status: "PENDING"}
	if !strings.Contains(err.Error(), "PENDING") {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestMissingRequestIDError(t *testing.T) {
	err := &MissingRequestIDError{Index: 7}
	if !strings.Contains(err.Error(), "account 7") {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestRelayerClientError_UnwrapsSource(t *testing.T) {
	source := errors.New("connection refused")
	err := &RelayerClientError{Msg: "submit_trade_order", Err: source}
	if !errors.Is(err, source) {
		t.Fatal("expected Unwrap to expose the source error")
	}
	if !strings.Contains(err.Error(), "submit_trade_order") || !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestRelayerClientError_NoSource(t *testing.T) {
	err := &RelayerClientError{Msg: "timeout"}
	if !strings.Contains(err.Error(), "timeout") {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestFetchUtxoFailedError_UnwrapsSource(t *testing.T) {
	source := errors.New("not found")
	err := &FetchUtxoFailedError{Attempts: 5, IOType: "Coin", Source: source}
	if !errors.Is(err, source) {
		t.Fatal("expected Unwrap to expose the source error")
	}
	if !strings.Contains(err.Error(), "5 attempts") {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestRpcRequestError_UnwrapsSource(t *testing.T) {
	source := errors.New("dial tcp: timeout")
	err := &RpcRequestError{Msg: "GetAccountInfo", Err: source}
	if !errors.Is(err, source) {
		t.Fatal("expected Unwrap to expose the source error")
	}
}

func TestTxBroadcastFailedError(t *testing.T) {
	err := &TxBroadcastFailedError{Hash: "ABCD", Code: 5}
	if !strings.Contains(err.Error(), "ABCD") || !strings.Contains(err.Error(), "5") {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestOrderOpError(t *testing.T) {
	err := &OrderOpError{Op: "close_trader_order", Msg: "wrong status"}
	if !strings.Contains(err.Error(), "close_trader_order") || !strings.Contains(err.Error(), "wrong status") {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestDatabaseError_UnwrapsSource(t *testing.T) {
	source := errors.New("disk full")
	err := &DatabaseError{Op: "ExportToJSON", Err: source}
	if !errors.Is(err, source) {
		t.Fatal("expected Unwrap to expose the source error")
	}
}

func TestSerializationError_UnwrapsSource(t *testing.T) {
	source := errors.New("unexpected end of JSON input")
	err := &SerializationError{Msg: "decode relayer response", Err: source}
	if !errors.Is(err, source) {
		t.Fatal("expected Unwrap to expose the source error")
	}
}

func TestSentinelErrors(t *testing.T) {
	if ErrZkAccountSeedNotFound == nil || ErrInsufficientBalance == nil {
		t.Fatal("sentinel errors must be non-nil")
	}
	if errors.Is(ErrZkAccountSeedNotFound, ErrInsufficientBalance) {
		t.Fatal("sentinels must be distinct")
	}
}

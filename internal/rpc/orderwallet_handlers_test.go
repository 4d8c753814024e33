package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/twilight-project/orderwallet/internal/config"
	"github.com/twilight-project/orderwallet/internal/orderwallet"
	"github.com/twilight-project/orderwallet/internal/zkaccount"
)

type fakeState struct {
	mu          sync.Mutex
	traderOrder string
}

type rpcEnvelope struct {
	Method string            `json:"method"`
	Params map[string]string `json:"params"`
}

func newFakeWalletServer(t *testing.T, state *fakeState) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/cosmos/auth/v1beta1/accounts/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]interface{}{
			"account": map[string]string{"account_number": "1", "sequence": "0"},
		})
	})
	mux.HandleFunc("/cosmos/bank/v1beta1/balances/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]interface{}{
			"balances": []map[string]string{
				{"denom": "nyks", "amount": "1000"},
				{"denom": "sats", "amount": "5000"},
			},
		})
	})
	mux.HandleFunc("/credit", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		var env rpcEnvelope
		if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		switch env.Method {
		case "broadcast_tx_sync":
			writeJSON(t, w, map[string]interface{}{
				"result": map[string]interface{}{"code": 0, "log": "", "hash": "SYNCHASH"},
			})
		case "broadcast_tx_commit":
			writeJSON(t, w, map[string]interface{}{
				"result": map[string]interface{}{
					"check_tx":   map[string]interface{}{"code": 0, "log": ""},
					"deliver_tx": map[string]interface{}{"code": 0, "log": ""},
					"hash":       "COMMITHASH",
				},
			})
		case "getUtxoDetail":
			addr := env.Params["address"]
			writeJSON(t, w, map[string]interface{}{
				"result": map[string]interface{}{
					"tx_hash": "utxo-" + addr, "output_index": 0,
					"address": addr, "value": 0, "io_type": env.Params["io_type"],
				},
			})
		case "submit_trade_order", "settle_trade_order", "cancel_trader_order",
			"submit_lend_order", "settle_lend_order":
			writeJSON(t, w, map[string]interface{}{
				"result": map[string]interface{}{"request_id": "req-" + env.Method},
			})
		case "trader_order_info":
			state.mu.Lock()
			status := state.traderOrder
			state.mu.Unlock()
			writeJSON(t, w, map[string]interface{}{
				"result": map[string]interface{}{
					"request_id": env.Params["request_id"], "account_address": "acct", "order_status": status,
				},
			})
		case "lend_order_info":
			writeJSON(t, w, map[string]interface{}{
				"result": map[string]interface{}{
					"request_id": env.Params["request_id"], "account_address": "acct",
					"order_status": "PENDING", "balance": 100, "pool_share": 1,
				},
			})
		default:
			http.Error(w, "unknown method "+env.Method, http.StatusBadRequest)
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("encode fake response: %v", err)
	}
}

func newTestServer(t *testing.T, state *fakeState) *Server {
	t.Helper()
	srv := newFakeWalletServer(t, state)
	w, err := orderwallet.New(context.Background(), orderwallet.NewOptions{
		Label: "rpc-test",
		Config: &config.EndpointConfig{
			FaucetBaseURL:          srv.URL,
			NyksLCDBaseURL:         srv.URL,
			NyksRPCBaseURL:         srv.URL,
			ValidatorWalletPath:    "validator.mnemonic",
			RelayerProgramJSONPath: "./relayerprogram.json",
			ZkosServerURL:          srv.URL,
			RelayerAPIRPCServerURL: srv.URL,
			ChainID:                "nyks",
		},
		Source: orderwallet.SourceGenerate,
	})
	if err != nil {
		t.Fatalf("orderwallet.New: %v", err)
	}
	return NewServer(w)
}

func TestOrderwalletAddress(t *testing.T) {
	s := newTestServer(t, &fakeState{traderOrder: "PENDING"})
	result, err := s.orderwalletAddress(context.Background(), nil)
	if err != nil {
		t.Fatalf("orderwalletAddress: %v", err)
	}
	m := result.(map[string]string)
	if m["address"] == "" {
		t.Error("expected a non-empty address")
	}
}

func TestOrderwalletBalance(t *testing.T) {
	s := newTestServer(t, &fakeState{traderOrder: "PENDING"})
	result, err := s.orderwalletBalance(context.Background(), nil)
	if err != nil {
		t.Fatalf("orderwalletBalance: %v", err)
	}
	bal := result.(orderwallet.Balance)
	if bal.Nyks != 1000 || bal.Sats != 5000 {
		t.Fatalf("unexpected balance: %+v", bal)
	}
}

func TestOrderwalletListAccounts_Empty(t *testing.T) {
	s := newTestServer(t, &fakeState{traderOrder: "PENDING"})
	result, err := s.orderwalletListAccounts(context.Background(), nil)
	if err != nil {
		t.Fatalf("orderwalletListAccounts: %v", err)
	}
	accounts := result.([]*zkaccount.ZkAccount)
	if len(accounts) != 0 {
		t.Fatalf("expected no accounts on a fresh wallet, got %d", len(accounts))
	}
}

func TestOrderwalletFundingToTrading(t *testing.T) {
	s := newTestServer(t, &fakeState{traderOrder: "PENDING"})
	params, _ := json.Marshal(FundingToTradingParams{Amount: 100})
	result, err := s.orderwalletFundingToTrading(context.Background(), params)
	if err != nil {
		t.Fatalf("orderwalletFundingToTrading: %v", err)
	}
	m := result.(map[string]interface{})
	if m["tx_hash"] != "SYNCHASH" {
		t.Fatalf("unexpected tx_hash: %v", m["tx_hash"])
	}
}

func TestOrderwalletFundingToTrading_RejectsZeroAmount(t *testing.T) {
	s := newTestServer(t, &fakeState{traderOrder: "PENDING"})
	params, _ := json.Marshal(FundingToTradingParams{Amount: 0})
	if _, err := s.orderwalletFundingToTrading(context.Background(), params); err == nil {
		t.Fatal("expected error for a zero amount")
	}
}

func TestOrderwalletFundingToTrading_InvalidParams(t *testing.T) {
	s := newTestServer(t, &fakeState{traderOrder: "PENDING"})
	if _, err := s.orderwalletFundingToTrading(context.Background(), json.RawMessage(`{invalid`)); err == nil {
		t.Fatal("expected error for malformed params")
	}
}

func TestOrderwalletTradingToTrading(t *testing.T) {
	s := newTestServer(t, &fakeState{traderOrder: "PENDING"})

	fundParams, _ := json.Marshal(FundingToTradingParams{Amount: 100})
	if _, err := s.orderwalletFundingToTrading(context.Background(), fundParams); err != nil {
		t.Fatalf("orderwalletFundingToTrading: %v", err)
	}

	rotateParams, _ := json.Marshal(TradingToTradingParams{AccountIndex: 0})
	result, err := s.orderwalletTradingToTrading(context.Background(), rotateParams)
	if err != nil {
		t.Fatalf("orderwalletTradingToTrading: %v", err)
	}
	m := result.(map[string]interface{})
	if _, ok := m["new_account_index"]; !ok {
		t.Fatal("expected new_account_index in result")
	}
}

func TestOrderwalletOpenCloseTraderOrder(t *testing.T) {
	state := &fakeState{traderOrder: "PENDING"}
	s := newTestServer(t, state)

	fundParams, _ := json.Marshal(FundingToTradingParams{Amount: 100})
	if _, err := s.orderwalletFundingToTrading(context.Background(), fundParams); err != nil {
		t.Fatalf("orderwalletFundingToTrading: %v", err)
	}

	openParams, _ := json.Marshal(OpenTraderOrderParams{AccountIndex: 0, EntryPrice: 1000, Leverage: 5})
	openResult, err := s.orderwalletOpenTraderOrder(context.Background(), openParams)
	if err != nil {
		t.Fatalf("orderwalletOpenTraderOrder: %v", err)
	}
	if openResult.(map[string]string)["request_id"] == "" {
		t.Fatal("expected a non-empty request id")
	}

	state.mu.Lock()
	state.traderOrder = "FILLED"
	state.mu.Unlock()

	closeParams, _ := json.Marshal(CloseTraderOrderParams{AccountIndex: 0, ExitPrice: 1200})
	closeResult, err := s.orderwalletCloseTraderOrder(context.Background(), closeParams)
	if err != nil {
		t.Fatalf("orderwalletCloseTraderOrder: %v", err)
	}
	if closeResult.(map[string]string)["request_id"] == "" {
		t.Fatal("expected a non-empty request id")
	}
}

func TestOrderwalletQueryTraderOrder_InvalidParams(t *testing.T) {
	s := newTestServer(t, &fakeState{traderOrder: "FILLED"})
	if _, err := s.orderwalletQueryTraderOrder(context.Background(), json.RawMessage(`{invalid`)); err == nil {
		t.Fatal("expected error for malformed params")
	}
}

func TestBroadcastAccountOnChain_NoHubIsNoop(t *testing.T) {
	s := newTestServer(t, &fakeState{traderOrder: "PENDING"})
	s.broadcastAccountOnChain(0, 100) // must not panic without a running Start()
}

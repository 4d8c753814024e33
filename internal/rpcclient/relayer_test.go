package rpcclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func relayerFake(t *testing.T, handle func(method string) (string, bool)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req jsonRPCRequest
		json.NewDecoder(r.Body).Decode(&req)
		body, ok := handle(req.Method)
		w.Header().Set("Content-Type", "application/json")
		if !ok {
			w.Write([]byte(`{"error":{"code":-32000,"message":"unexpected method ` + req.Method + `"}}`))
			return
		}
		w.Write([]byte(body))
	}))
}

func TestRelayerClient_SubmitTradeOrder(t *testing.T) {
	srv := relayerFake(t, func(method string) (string, bool) {
		if method != "submit_trade_order" {
			return "", false
		}
		return `{"result":{"request_id":"req-1"}}`, true
	})
	defer srv.Close()

	c := NewRelayerClient(srv.URL)
	id, err := c.SubmitTradeOrder(t.Context(), "deadbeef")
	if err != nil {
		t.Fatalf("SubmitTradeOrder: %v", err)
	}
	if id != "req-1" {
		t.Fatalf("RequestID = %q, want req-1", id)
	}
}

func TestRelayerClient_SettleTradeOrder(t *testing.T) {
	srv := relayerFake(t, func(method string) (string, bool) {
		if method != "settle_trade_order" {
			return "", false
		}
		return `{"result":{"request_id":"req-2"}}`, true
	})
	defer srv.Close()

	c := NewRelayerClient(srv.URL)
	id, err := c.SettleTradeOrder(t.Context(), "deadbeef")
	if err != nil {
		t.Fatalf("SettleTradeOrder: %v", err)
	}
	if id != "req-2" {
		t.Fatalf("RequestID = %q, want req-2", id)
	}
}

func TestRelayerClient_CancelTraderOrder(t *testing.T) {
	srv := relayerFake(t, func(method string) (string, bool) {
		if method != "cancel_trader_order" {
			return "", false
		}
		return `{"result":{"request_id":"req-3"}}`, true
	})
	defer srv.Close()

	c := NewRelayerClient(srv.URL)
	if _, err := c.CancelTraderOrder(t.Context(), "deadbeef"); err != nil {
		t.Fatalf("CancelTraderOrder: %v", err)
	}
}

func TestRelayerClient_SubmitLendOrder(t *testing.T) {
	srv := relayerFake(t, func(method string) (string, bool) {
		if method != "submit_lend_order" {
			return "", false
		}
		return `{"result":{"request_id":"req-4"}}`, true
	})
	defer srv.Close()

	c := NewRelayerClient(srv.URL)
	if _, err := c.SubmitLendOrder(t.Context(), "deadbeef"); err != nil {
		t.Fatalf("SubmitLendOrder: %v", err)
	}
}

func TestRelayerClient_SettleLendOrder(t *testing.T) {
	srv := relayerFake(t, func(method string) (string, bool) {
		if method != "settle_lend_order" {
			return "", false
		}
		return `{"result":{"request_id":"req-5"}}`, true
	})
	defer srv.Close()

	c := NewRelayerClient(srv.URL)
	if _, err := c.SettleLendOrder(t.Context(), "deadbeef"); err != nil {
		t.Fatalf("SettleLendOrder: %v", err)
	}
}

func TestRelayerClient_QueryTraderOrder(t *testing.T) {
	srv := relayerFake(t, func(method string) (string, bool) {
		if method != "trader_order_info" {
			return "", false
		}
		return `{"result":{"request_id":"req-1","order_status":"FILLED","entry_price":1000,"leverage":5}}`, true
	})
	defer srv.Close()

	c := NewRelayerClient(srv.URL)
	info, err := c.QueryTraderOrder(t.Context(), "req-1")
	if err != nil {
		t.Fatalf("QueryTraderOrder: %v", err)
	}
	if info.OrderStatus != "FILLED" || info.EntryPrice != 1000 {
		t.Fatalf("unexpected info: %+v", info)
	}
}

func TestRelayerClient_QueryTraderOrder_NotFound(t *testing.T) {
	srv := relayerFake(t, func(method string) (string, bool) {
		return `{"result":null}`, true
	})
	defer srv.Close()

	c := NewRelayerClient(srv.URL)
	if _, err := c.QueryTraderOrder(t.Context(), "missing"); err == nil {
		t.Fatal("expected error for a missing request id")
	}
}

func TestRelayerClient_QueryLendOrder(t *testing.T) {
	srv := relayerFake(t, func(method string) (string, bool) {
		if method != "lend_order_info" {
			return "", false
		}
		return `{"result":{"request_id":"req-6","order_status":"PENDING","balance":2000,"pool_share":10}}`, true
	})
	defer srv.Close()

	c := NewRelayerClient(srv.URL)
	info, err := c.QueryLendOrder(t.Context(), "req-6")
	if err != nil {
		t.Fatalf("QueryLendOrder: %v", err)
	}
	if info.Balance != 2000 || info.PoolShare != 10 {
		t.Fatalf("unexpected info: %+v", info)
	}
}

package rpc

import (
	"encoding/json"
	"testing"
)

func TestRequest_MarshalUnmarshal(t *testing.T) {
	req := Request{
		JSONRPC: "2.0",
		Method:  "orderwallet_balance",
		Params:  json.RawMessage(`{}`),
		ID:      float64(1),
	}
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got Request
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.JSONRPC != req.JSONRPC || got.Method != req.Method {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, req)
	}
}

func TestResponse_MarshalOmitsEmptyFields(t *testing.T) {
	resp := Response{JSONRPC: "2.0", Result: map[string]string{"ok": "true"}, ID: float64(1)}
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, ok := raw["error"]; ok {
		t.Fatal("expected no error field on a successful response")
	}
}

func TestError_Marshal(t *testing.T) {
	e := Error{Code: MethodNotFound, Message: "Method not found", Data: "orderwallet_unknown"}
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got Error
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Code != MethodNotFound || got.Message != "Method not found" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestErrorCodes(t *testing.T) {
	tests := map[string]int{
		"ParseError":     ParseError,
		"InvalidRequest": InvalidRequest,
		"MethodNotFound": MethodNotFound,
		"InvalidParams":  InvalidParams,
		"InternalError":  InternalError,
	}
	want := map[string]int{
		"ParseError":     -32700,
		"InvalidRequest": -32600,
		"MethodNotFound": -32601,
		"InvalidParams":  -32602,
		"InternalError":  -32603,
	}
	for name, got := range tests {
		if got != want[name] {
			t.Errorf("%s = %d, want %d", name, got, want[name])
		}
	}
}

func TestEventTypes(t *testing.T) {
	tests := map[EventType]string{
		EventAccountOnChain: "account_on_chain",
		EventOrderFilled:    "order_filled",
		EventOrderSettled:   "order_settled",
	}
	for got, want := range tests {
		if string(got) != want {
			t.Errorf("EventType = %q, want %q", got, want)
		}
	}
}

func TestWSHub_ClientCountStartsAtZero(t *testing.T) {
	hub := NewWSHub()
	if n := hub.ClientCount(); n != 0 {
		t.Fatalf("ClientCount = %d, want 0", n)
	}
}

func TestWSEvent_MarshalUnmarshal(t *testing.T) {
	ev := WSEvent{Type: EventOrderFilled, Data: map[string]interface{}{"account_index": 1}, Timestamp: 100}
	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got WSEvent
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Type != ev.Type || got.Timestamp != ev.Timestamp {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestWSSubscription_MarshalUnmarshal(t *testing.T) {
	sub := WSSubscription{Action: "subscribe", Events: []string{"order_filled", "order_settled"}}
	data, err := json.Marshal(sub)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got WSSubscription
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Action != sub.Action || len(got.Events) != len(sub.Events) {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestRegisterHandlers_CoversPublicContract(t *testing.T) {
	want := []string{
		"orderwallet_address",
		"orderwallet_balance",
		"orderwallet_listAccounts",
		"orderwallet_fundingToTrading",
		"orderwallet_tradingToTrading",
		"orderwallet_tradingToTradingMultipleAccounts",
		"orderwallet_openTraderOrder",
		"orderwallet_closeTraderOrder",
		"orderwallet_cancelTraderOrder",
		"orderwallet_queryTraderOrder",
		"orderwallet_openLendOrder",
		"orderwallet_closeLendOrder",
		"orderwallet_queryLendOrder",
	}

	s := &Server{handlers: make(map[string]Handler)}
	s.registerHandlers()

	if len(s.handlers) != len(want) {
		t.Fatalf("registered %d handlers, want %d", len(s.handlers), len(want))
	}
	for _, method := range want {
		if _, ok := s.handlers[method]; !ok {
			t.Errorf("missing handler for %q", method)
		}
	}
}

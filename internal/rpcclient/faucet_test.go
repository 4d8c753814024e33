package rpcclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFaucetClient_RequestTestTokens(t *testing.T) {
	var gotPath string
	var gotBody creditRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewFaucetClient(srv.URL)
	if err := c.RequestTestTokens(t.Context(), "twilight1abc"); err != nil {
		t.Fatalf("RequestTestTokens: %v", err)
	}
	if gotPath != "/credit" {
		t.Fatalf("path = %q, want /credit", gotPath)
	}
	if gotBody.Address != "twilight1abc" {
		t.Fatalf("Address = %q, want twilight1abc", gotBody.Address)
	}
}

func TestFaucetClient_RequestTestTokens_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewFaucetClient(srv.URL)
	if err := c.RequestTestTokens(t.Context(), "twilight1abc"); err == nil {
		t.Fatal("expected error when the faucet rate limits the request")
	}
}

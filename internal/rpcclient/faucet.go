package rpcclient

import (
	"context"
	"fmt"
	"net/http"
)

// FaucetClient requests devnet/testnet funds for a nyks address.
type FaucetClient struct {
	baseURL string
	http    *http.Client
}

// NewFaucetClient returns a client bound to baseURL (e.g.
// http://0.0.0.0:6969).
func NewFaucetClient(baseURL string) *FaucetClient {
	return &FaucetClient{baseURL: baseURL, http: defaultHTTPClient()}
}

type creditRequest struct {
	Address string `json:"address"`
}

// RequestTestTokens asks the faucet to credit address with test tokens.
func (c *FaucetClient) RequestTestTokens(ctx context.Context, address string) error {
	if err := doPostJSON(ctx, c.http, c.baseURL, "/credit", creditRequest{Address: address}, nil); err != nil {
		return fmt.Errorf("request test tokens: %w", err)
	}
	return nil
}

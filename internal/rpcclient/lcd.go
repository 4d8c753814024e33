package rpcclient

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// LCDClient talks to the nyks chain's Cosmos SDK LCD REST endpoint.
type LCDClient struct {
	baseURL string
	http    *http.Client
}

// NewLCDClient returns a client bound to baseURL (e.g. http://0.0.0.0:1317).
func NewLCDClient(baseURL string) *LCDClient {
	return &LCDClient{baseURL: baseURL, http: defaultHTTPClient()}
}

type baseAccountResponse struct {
	Account struct {
		AccountNumber string `json:"account_number"`
		Sequence      string `json:"sequence"`
	} `json:"account"`
}

// AccountInfo is the pair of values every transaction must be built with.
type AccountInfo struct {
	AccountNumber uint64
	Sequence      uint64
}

// GetAccountInfo fetches the current account number and sequence for addr.
// OrderWallet calls this immediately before building every mutating
// transaction rather than trusting a cached sequence.
func (c *LCDClient) GetAccountInfo(ctx context.Context, addr string) (AccountInfo, error) {
	var resp baseAccountResponse
	path := "/cosmos/auth/v1beta1/accounts/" + addr
	if err := doGet(ctx, c.http, c.baseURL, path, &resp); err != nil {
		return AccountInfo{}, fmt.Errorf("get account info: %w", err)
	}

	accNum, err := strconv.ParseUint(resp.Account.AccountNumber, 10, 64)
	if err != nil {
		return AccountInfo{}, fmt.Errorf("parse account_number: %w", err)
	}
	seq, err := strconv.ParseUint(resp.Account.Sequence, 10, 64)
	if err != nil {
		return AccountInfo{}, fmt.Errorf("parse sequence: %w", err)
	}
	return AccountInfo{AccountNumber: accNum, Sequence: seq}, nil
}

type balanceResponse struct {
	Balances []struct {
		Denom  string `json:"denom"`
		Amount string `json:"amount"`
	} `json:"balances"`
}

// GetBalance returns addr's balance of denom in the smallest unit.
func (c *LCDClient) GetBalance(ctx context.Context, addr, denom string) (uint64, error) {
	var resp balanceResponse
	path := "/cosmos/bank/v1beta1/balances/" + addr
	if err := doGet(ctx, c.http, c.baseURL, path, &resp); err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}
	for _, b := range resp.Balances {
		if b.Denom == denom {
			amount, err := strconv.ParseUint(b.Amount, 10, 64)
			if err != nil {
				return 0, fmt.Errorf("parse balance amount: %w", err)
			}
			return amount, nil
		}
	}
	return 0, nil
}

// Package rpcclient implements the small HTTP/JSON-RPC clients an
// OrderWallet needs: the nyks LCD (REST), the nyks chain RPC
// (broadcast_tx_sync/commit), the relayer's JSON-RPC 2.0 API, and the
// faucet.
package rpcclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

var ErrNotFound = fmt.Errorf("not found")
var ErrRateLimited = fmt.Errorf("rate limited")

// doGet issues a GET against baseURL+path and decodes the JSON response
// body into result.
func doGet(ctx context.Context, client *http.Client, baseURL, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	return decodeResponse(resp, path, result)
}

// doPostJSON issues a POST of body (marshaled to JSON) against
// baseURL+path, decoding the response into result.
func doPostJSON(ctx context.Context, client *http.Client, baseURL, path string, body interface{}, result interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	return decodeResponse(resp, path, result)
}

func decodeResponse(resp *http.Response, path string, result interface{}) error {
	switch resp.StatusCode {
	case http.StatusOK:
		if result == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode response from %s: %w", path, err)
		}
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, snippet)
	}
}

// defaultHTTPClient is a sane, bounded default used by every client in this
// package unless the caller supplies their own.
func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

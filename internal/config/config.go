// Package config holds the three endpoint configurations an OrderWallet
// needs: the LCD/faucet/chain-RPC nyks endpoints, a wallet-scoped view of
// the same (those three URLs plus the chain id), and the relayer endpoint.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EndpointConfig is the full set of network endpoints and identifiers an
// OrderWallet needs to talk to nyks and its relayer.
type EndpointConfig struct {
	FaucetBaseURL         string `yaml:"faucet_base_url"`
	NyksLCDBaseURL        string `yaml:"nyks_lcd_base_url"`
	NyksRPCBaseURL        string `yaml:"nyks_rpc_base_url"`
	ValidatorWalletPath   string `yaml:"validator_wallet_path"`
	RelayerProgramJSONPath string `yaml:"relayer_program_json_path"`
	ZkosServerURL         string `yaml:"zkos_server_url"`
	RelayerAPIRPCServerURL string `yaml:"relayer_api_rpc_server_url"`
	ChainID               string `yaml:"chain_id"`
}

// WalletEndpointConfig is the narrower view the orderwallet package
// consumes: only the endpoints a wallet-side client touches.
type WalletEndpointConfig struct {
	FaucetBaseURL  string
	NyksLCDBaseURL string
	NyksRPCBaseURL string
	ChainID        string
}

// RelayerEndpointConfig is the narrower view the relayer JSON-RPC client
// consumes.
type RelayerEndpointConfig struct {
	RelayerProgramJSONPath string
	ZkosServerURL          string
	RelayerAPIRPCServerURL string
}

// DefaultConfig returns the same defaults the reference wallet ships,
// suitable for a local devnet.
func DefaultConfig() *EndpointConfig {
	return &EndpointConfig{
		FaucetBaseURL:          "http://0.0.0.0:6969",
		NyksLCDBaseURL:         "http://0.0.0.0:1317",
		NyksRPCBaseURL:         "http://0.0.0.0:26657",
		ValidatorWalletPath:    "validator.mnemonic",
		RelayerProgramJSONPath: "./relayerprogram.json",
		ZkosServerURL:          "http://0.0.0.0:3030",
		RelayerAPIRPCServerURL: "http://0.0.0.0:8088/api",
		ChainID:                "nyks",
	}
}

// FromEnv builds an EndpointConfig from defaults, overridden by any of the
// recognized environment variables that are set.
func FromEnv() *EndpointConfig {
	cfg := DefaultConfig()
	overrideString(&cfg.FaucetBaseURL, "FAUCET_BASE_URL")
	overrideString(&cfg.NyksLCDBaseURL, "NYKS_LCD_BASE_URL")
	overrideString(&cfg.NyksRPCBaseURL, "NYKS_RPC_BASE_URL")
	overrideString(&cfg.ValidatorWalletPath, "VALIDATOR_WALLET_PATH")
	overrideString(&cfg.RelayerProgramJSONPath, "RELAYER_PROGRAM_JSON_PATH")
	overrideString(&cfg.ZkosServerURL, "ZKOS_SERVER_URL")
	overrideString(&cfg.RelayerAPIRPCServerURL, "RELAYER_API_RPC_SERVER_URL")
	overrideString(&cfg.ChainID, "CHAIN_ID")
	return cfg
}

// FromYAML loads an EndpointConfig from a YAML file, falling back to
// DefaultConfig for any field the file omits.
func FromYAML(path string) (*EndpointConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

func overrideString(dst *string, envVar string) {
	if v, ok := os.LookupEnv(envVar); ok && v != "" {
		*dst = v
	}
}

// ToWalletEndpointConfig narrows c to the fields a wallet-side client needs.
func (c *EndpointConfig) ToWalletEndpointConfig() WalletEndpointConfig {
	return WalletEndpointConfig{
		FaucetBaseURL:  c.FaucetBaseURL,
		NyksLCDBaseURL: c.NyksLCDBaseURL,
		NyksRPCBaseURL: c.NyksRPCBaseURL,
		ChainID:        c.ChainID,
	}
}

// ToRelayerEndpointConfig narrows c to the fields the relayer client needs.
func (c *EndpointConfig) ToRelayerEndpointConfig() RelayerEndpointConfig {
	return RelayerEndpointConfig{
		RelayerProgramJSONPath: c.RelayerProgramJSONPath,
		ZkosServerURL:          c.ZkosServerURL,
		RelayerAPIRPCServerURL: c.RelayerAPIRPCServerURL,
	}
}

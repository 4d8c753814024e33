package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ChainID != "nyks" {
		t.Errorf("ChainID = %s, want nyks", cfg.ChainID)
	}
	if cfg.NyksLCDBaseURL != "http://0.0.0.0:1317" {
		t.Errorf("NyksLCDBaseURL = %s, want http://0.0.0.0:1317", cfg.NyksLCDBaseURL)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("CHAIN_ID", "nyks-testnet")
	t.Setenv("NYKS_LCD_BASE_URL", "http://lcd.example:1317")

	cfg := FromEnv()
	if cfg.ChainID != "nyks-testnet" {
		t.Errorf("ChainID = %s, want nyks-testnet", cfg.ChainID)
	}
	if cfg.NyksLCDBaseURL != "http://lcd.example:1317" {
		t.Errorf("NyksLCDBaseURL = %s, want http://lcd.example:1317", cfg.NyksLCDBaseURL)
	}
	// Unset vars keep their defaults.
	if cfg.ZkosServerURL != "http://0.0.0.0:3030" {
		t.Errorf("ZkosServerURL = %s, want default", cfg.ZkosServerURL)
	}
}

func TestFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "chain_id: nyks-devnet\nnyks_rpc_base_url: http://rpc.example:26657\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := FromYAML(path)
	if err != nil {
		t.Fatalf("FromYAML() error = %v", err)
	}
	if cfg.ChainID != "nyks-devnet" {
		t.Errorf("ChainID = %s, want nyks-devnet", cfg.ChainID)
	}
	if cfg.NyksRPCBaseURL != "http://rpc.example:26657" {
		t.Errorf("NyksRPCBaseURL = %s, want http://rpc.example:26657", cfg.NyksRPCBaseURL)
	}
	// Fields absent from the file keep DefaultConfig's values.
	if cfg.FaucetBaseURL != "http://0.0.0.0:6969" {
		t.Errorf("FaucetBaseURL = %s, want default", cfg.FaucetBaseURL)
	}
}

func TestToWalletAndRelayerEndpointConfig(t *testing.T) {
	cfg := DefaultConfig()

	w := cfg.ToWalletEndpointConfig()
	if w.ChainID != cfg.ChainID || w.NyksLCDBaseURL != cfg.NyksLCDBaseURL {
		t.Error("ToWalletEndpointConfig did not carry over expected fields")
	}

	r := cfg.ToRelayerEndpointConfig()
	if r.ZkosServerURL != cfg.ZkosServerURL || r.RelayerAPIRPCServerURL != cfg.RelayerAPIRPCServerURL {
		t.Error("ToRelayerEndpointConfig did not carry over expected fields")
	}
}

// Package main provides orderwalletd, a daemon that owns one OrderWallet
// and exposes it over the local JSON-RPC control surface.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/twilight-project/orderwallet/internal/config"
	"github.com/twilight-project/orderwallet/internal/keys"
	"github.com/twilight-project/orderwallet/internal/orderwallet"
	"github.com/twilight-project/orderwallet/internal/rpc"
	"github.com/twilight-project/orderwallet/internal/storage"
	"github.com/twilight-project/orderwallet/pkg/logging"
)

var (
	version = "0.1.0-dev"
	commit  = "unknown"
)

func main() {
	var (
		dataDir         = flag.String("data-dir", "~/.orderwallet", "Data directory")
		configFile      = flag.String("config", "", "Endpoint config YAML file (default: environment variables)")
		apiAddr         = flag.String("api", "127.0.0.1:8090", "JSON-RPC API address")
		label           = flag.String("label", "", "Wallet label (default: random uuid)")
		mnemonic        = flag.String("mnemonic", "", "Import an existing BIP-39 mnemonic instead of generating one")
		hexKey          = flag.String("hex-key", "", "Import a raw hex-encoded secp256k1 private key instead of generating a mnemonic")
		fetchTestTokens = flag.Bool("faucet", false, "Request test tokens from the faucet on startup")
		logLevel        = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		showVersion     = flag.Bool("version", false, "Show version and exit")
	)
	flag.Parse()

	log := logging.New(&logging.Config{
		Level:      *logLevel,
		TimeFormat: time.TimeOnly,
	})
	logging.SetDefault(log)

	if *showVersion {
		log.Infof("orderwalletd %s (commit: %s)", version, commit)
		os.Exit(0)
	}

	var endpoints *config.EndpointConfig
	var err error
	if *configFile != "" {
		endpoints, err = config.FromYAML(*configFile)
		if err != nil {
			log.Fatal("Failed to load config file", "error", err)
		}
	} else {
		endpoints = config.FromEnv()
	}

	dataPath := expandPath(*dataDir)
	store, err := storage.New(&storage.Config{DataDir: dataPath})
	if err != nil {
		log.Fatal("Failed to initialize storage", "error", err)
	}
	defer store.Close()
	log.Info("Storage initialized", "path", dataPath)

	source := orderwallet.SourceGenerate
	switch {
	case *mnemonic != "":
		source = orderwallet.SourceMnemonic
	case *hexKey != "":
		source = orderwallet.SourceHex
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := orderwallet.New(ctx, orderwallet.NewOptions{
		Label:           *label,
		Config:          endpoints,
		Source:          source,
		Mnemonic:        *mnemonic,
		HexPrivateKey:   *hexKey,
		FetchTestTokens: *fetchTestTokens,
	})
	if err != nil {
		log.Fatal("Failed to create order wallet", "error", err)
	}
	log.Info("Order wallet created", "label", w.Label, "address", w.Address())

	password := os.Getenv("NYKS_WALLET_PASSPHRASE")
	if password == "" {
		log.Fatal("NYKS_WALLET_PASSPHRASE must be set to encrypt the wallet seed at rest")
	}
	kdf := keys.KDF(os.Getenv("ORDERWALLET_KDF"))
	if kdf == "" {
		kdf = keys.KDFArgon2id
	}
	if err := w.WithDB(store, password, kdf); err != nil {
		log.Fatal("Failed to persist order wallet", "error", err)
	}
	log.Info("Order wallet bound to storage", "kdf", kdf)

	rpcServer := rpc.NewServer(w)
	if err := rpcServer.Start(*apiAddr); err != nil {
		log.Fatal("Failed to start RPC server", "error", err)
	}

	printBanner(log, w, *apiAddr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("Shutting down...")
	cancel()
	if err := rpcServer.Stop(); err != nil {
		log.Error("Error stopping RPC server", "error", err)
	}
	log.Info("Goodbye!")
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}

func printBanner(log *logging.Logger, w *orderwallet.OrderWallet, apiAddr string) {
	log.Info("")
	log.Info("=================================================")
	log.Infof("  OrderWallet daemon")
	log.Infof("  Version: %s", version)
	log.Info("=================================================")
	log.Info("")
	log.Infof("  Label:   %s", w.Label)
	log.Infof("  Address: %s", w.Address())
	log.Infof("  Chain:   %s", w.ChainID)
	log.Info("")
	log.Infof("  API: http://%s", apiAddr)
	log.Infof("  WS:  ws://%s/ws", apiAddr)
	log.Info("")
	log.Info("=================================================")
	log.Info("")
}

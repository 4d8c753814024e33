// Package orderwallet implements OrderWallet, the orchestrator that ties
// together key derivation, the zk-account registry, the chain/relayer RPC
// clients, the transaction builder, and persistence into the single-use
// trading-account lifecycle described by the donor's order_wallet module.
package orderwallet

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/google/uuid"

	"github.com/twilight-project/orderwallet/internal/config"
	"github.com/twilight-project/orderwallet/internal/keys"
	"github.com/twilight-project/orderwallet/internal/rpcclient"
	"github.com/twilight-project/orderwallet/internal/storage"
	"github.com/twilight-project/orderwallet/internal/txbuilder"
	"github.com/twilight-project/orderwallet/internal/walleterr"
	"github.com/twilight-project/orderwallet/internal/zkaccount"
	"github.com/twilight-project/orderwallet/pkg/logging"
)

// WalletSource selects how OrderWallet obtains its base signing key in New.
type WalletSource int

const (
	// SourceGenerate creates a fresh 24-word mnemonic.
	SourceGenerate WalletSource = iota
	// SourceMnemonic imports an existing BIP-39 mnemonic.
	SourceMnemonic
	// SourceHex imports a raw 32-byte secp256k1 private key, hex-encoded.
	SourceHex
)

// NewOptions configures OrderWallet construction.
type NewOptions struct {
	// Label identifies this wallet across restarts; it is the primary key
	// used in every persistence table.
	Label string

	Config *config.EndpointConfig

	Source        WalletSource
	Mnemonic      string // required when Source == SourceMnemonic
	Passphrase    string // optional BIP-39 passphrase
	HexPrivateKey string // required when Source == SourceHex

	// FetchTestTokens asks the faucet to credit the derived address on
	// construction. Failure here is logged, not fatal.
	FetchTestTokens bool
}

// OrderWallet is the client-side trading wallet: one base Cosmos signing
// key, a registry of derived single-use zk-accounts, and the RPC clients
// and transaction builder needed to move value between them and the nyks
// relayer. OrderWallet does not lock its own registry or caches: callers
// must serialize method calls against a single instance (one active call
// per wallet at a time), since overlapping calls can corrupt the account
// allocator and the UTXO/request-id caches.
type OrderWallet struct {
	Label   string
	ChainID string

	priv    *btcec.PrivateKey
	address string
	mnemonic string // empty when constructed from SourceHex

	zkSeed []byte

	registry *zkaccount.Registry

	lcd      *rpcclient.LCDClient
	chainRPC *rpcclient.ChainRPCClient
	zkos     *rpcclient.ZkosClient
	relayer  *rpcclient.RelayerClient
	faucet   *rpcclient.FaucetClient

	builder *txbuilder.Builder

	endpoints config.EndpointConfig

	store *storage.Storage

	requestIDs map[uint64]rpcclient.RequestID
	utxoCache  map[uint64]*rpcclient.UtxoDetail

	log *logging.Logger
}

// New derives (or imports) the wallet's base key, builds its RPC clients
// and transaction builder, and — if the chain id is known, which it always
// is since EndpointConfig.ChainID carries a default — computes and caches
// the wallet's zk-seed so zk-accounts can be derived immediately.
func New(ctx context.Context, opts NewOptions) (*OrderWallet, error) {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Label == "" {
		opts.Label = uuid.NewString()
	}

	priv, mnemonic, err := deriveBaseKey(opts)
	if err != nil {
		return nil, &walleterr.WalletCreationError{Msg: err.Error()}
	}

	address, err := keys.Address(priv.PubKey())
	if err != nil {
		return nil, &walleterr.WalletCreationError{Msg: fmt.Sprintf("derive address: %v", err)}
	}

	walletEndpoints := opts.Config.ToWalletEndpointConfig()
	relayerEndpoints := opts.Config.ToRelayerEndpointConfig()

	w := &OrderWallet{
		Label:      opts.Label,
		ChainID:    walletEndpoints.ChainID,
		priv:       priv,
		address:    address,
		mnemonic:   mnemonic,
		registry:   zkaccount.NewRegistry(),
		lcd:        rpcclient.NewLCDClient(walletEndpoints.NyksLCDBaseURL),
		chainRPC:   rpcclient.NewChainRPCClient(walletEndpoints.NyksRPCBaseURL),
		zkos:       rpcclient.NewZkosClient(relayerEndpoints.ZkosServerURL),
		relayer:    rpcclient.NewRelayerClient(relayerEndpoints.RelayerAPIRPCServerURL),
		faucet:     rpcclient.NewFaucetClient(walletEndpoints.FaucetBaseURL),
		builder:    txbuilder.NewBuilder(walletEndpoints.ChainID),
		endpoints:  *opts.Config,
		requestIDs: make(map[uint64]rpcclient.RequestID),
		utxoCache:  make(map[uint64]*rpcclient.UtxoDetail),
		log:        logging.GetDefault().Component("orderwallet").With("label", opts.Label),
	}

	if opts.FetchTestTokens {
		if err := w.faucet.RequestTestTokens(ctx, w.address); err != nil {
			w.log.Warn("faucet credit failed, continuing without test tokens", "err", err)
		}
	}

	seed, err := keys.SignADR036(priv, w.ChainID, address, []byte(keys.DerivationMessage))
	if err != nil {
		return nil, &walleterr.WalletCreationError{Msg: fmt.Sprintf("derive zk seed: %v", err)}
	}
	w.zkSeed = seed

	return w, nil
}

func deriveBaseKey(opts NewOptions) (*btcec.PrivateKey, string, error) {
	switch opts.Source {
	case SourceHex:
		priv, err := privateKeyFromHex(opts.HexPrivateKey)
		if err != nil {
			return nil, "", fmt.Errorf("import hex key: %w", err)
		}
		return priv, "", nil
	case SourceMnemonic:
		return deriveFromMnemonic(opts.Mnemonic, opts.Passphrase)
	default:
		mnemonic, err := keys.GenerateMnemonic()
		if err != nil {
			return nil, "", fmt.Errorf("generate mnemonic: %w", err)
		}
		priv, _, err := deriveFromMnemonic(mnemonic, opts.Passphrase)
		if err != nil {
			return nil, "", err
		}
		return priv, mnemonic, nil
	}
}

func deriveFromMnemonic(mnemonic, passphrase string) (*btcec.PrivateKey, string, error) {
	master, err := keys.MasterKeyFromMnemonic(mnemonic, passphrase)
	if err != nil {
		return nil, "", fmt.Errorf("derive master key: %w", err)
	}
	priv, err := keys.DeriveSigningKey(master, keys.DefaultPath())
	if err != nil {
		return nil, "", fmt.Errorf("derive signing key: %w", err)
	}
	return priv, mnemonic, nil
}

// Address returns the wallet's bech32 nyks address.
func (w *OrderWallet) Address() string { return w.address }

// Mnemonic returns the wallet's BIP-39 mnemonic, or "" if it was constructed
// from a raw hex key and no mnemonic exists.
func (w *OrderWallet) Mnemonic() string { return w.mnemonic }

// Registry exposes the underlying zk-account registry for callers (and
// tests) that need direct inspection.
func (w *OrderWallet) Registry() *zkaccount.Registry { return w.registry }

// RefreshBalance fetches the wallet's current nyks and sats balances from
// the LCD.
func (w *OrderWallet) RefreshBalance(ctx context.Context) (Balance, error) {
	nyks, err := w.lcd.GetBalance(ctx, w.address, "nyks")
	if err != nil {
		return Balance{}, &walleterr.WalletBalanceUpdateError{Msg: err.Error()}
	}
	sats, err := w.lcd.GetBalance(ctx, w.address, "sats")
	if err != nil {
		return Balance{}, &walleterr.WalletBalanceUpdateError{Msg: err.Error()}
	}
	return Balance{Nyks: nyks, Sats: sats}, nil
}

// accountInfo refreshes (account_number, sequence) from the LCD. Called
// immediately before building every mutating transaction, per the wallet's
// ordering guarantee that a cached sequence must never be trusted across a
// broadcast.
func (w *OrderWallet) accountInfo(ctx context.Context) (rpcclient.AccountInfo, error) {
	info, err := w.lcd.GetAccountInfo(ctx, w.address)
	if err != nil {
		return rpcclient.AccountInfo{}, &walleterr.WalletAccountInfoError{Msg: err.Error()}
	}
	return info, nil
}

// Package keys implements mnemonic and HD key derivation, ADR-036 zk-seed
// signing, and at-rest encryption for the single Cosmos signing key an
// OrderWallet holds.
package keys

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"
)

// Bech32HRP is the human-readable prefix for nyks chain addresses.
const Bech32HRP = "twilight"

// DefaultChainID is the chain the fixed derivation path and the zk-seed
// signature are scoped to.
const DefaultChainID = "nyks"

// DerivationMessage is the fixed message signed (ADR-036) to deterministically
// derive the master ZkOS Ristretto seed. It must never change: any change
// breaks compatibility with zk-accounts derived under the old message.
const DerivationMessage = "This signature is for deriving the master Twilight ZkOS Ristretto key. Version: 1. Do not share this signature."

// DerivationPath is the fixed BIP-44 path used for the chain signing key:
// 44'/118'/0'/0/0 (118 is the Cosmos SDK coin type).
type DerivationPath struct {
	Purpose      uint32
	CoinType     uint32
	Account      uint32
	Change       uint32
	AddressIndex uint32
}

// DefaultPath returns the wallet's single fixed derivation path.
func DefaultPath() DerivationPath {
	return DerivationPath{Purpose: 44, CoinType: 118, Account: 0, Change: 0, AddressIndex: 0}
}

// MasterKeyFromMnemonic turns a BIP-39 mnemonic (plus optional passphrase)
// into a master extended key on the secp256k1 curve.
func MasterKeyFromMnemonic(mnemonic, passphrase string) (*hdkeychain.ExtendedKey, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("invalid mnemonic")
	}
	seed := bip39.NewSeed(mnemonic, passphrase)
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("derive master key: %w", err)
	}
	return master, nil
}

// GenerateMnemonic returns a new 24-word BIP-39 mnemonic.
func GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	return bip39.NewMnemonic(entropy)
}

// ValidateMnemonic reports whether s is a well-formed BIP-39 mnemonic.
func ValidateMnemonic(s string) bool {
	return bip39.IsMnemonicValid(s)
}

// DeriveSigningKey walks p from master and returns the leaf secp256k1
// private key used to sign transactions and the ADR-036 derivation message.
func DeriveSigningKey(master *hdkeychain.ExtendedKey, p DerivationPath) (*btcec.PrivateKey, error) {
	key := master
	levels := []uint32{
		hdkeychain.HardenedKeyStart + p.Purpose,
		hdkeychain.HardenedKeyStart + p.CoinType,
		hdkeychain.HardenedKeyStart + p.Account,
		p.Change,
		p.AddressIndex,
	}
	for _, n := range levels {
		next, err := key.Derive(n)
		if err != nil {
			return nil, fmt.Errorf("derive child %d: %w", n, err)
		}
		key = next
	}
	ecKey, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("extract private key: %w", err)
	}
	return ecKey, nil
}

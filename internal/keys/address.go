package keys

import (
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // cosmos-style address hashing requires ripemd160, same as upstream
)

// Address derives the bech32 "twilight"-prefixed account address from a
// compressed secp256k1 public key: ripemd160(sha256(pubkey)), bech32-encoded
// with the chain's HRP. This is the plain (non-segwit) bech32 scheme Cosmos
// SDK chains use, distinct from Bitcoin's witness-versioned addresses.
func Address(pub *btcec.PublicKey) (string, error) {
	return AddressFromBytes(pub.SerializeCompressed())
}

// AddressFromBytes derives the address from a compressed public key's raw
// bytes.
func AddressFromBytes(compressedPub []byte) (string, error) {
	shaHash := sha256.Sum256(compressedPub)
	ripe := ripemd160.New()
	if _, err := ripe.Write(shaHash[:]); err != nil {
		return "", fmt.Errorf("hash pubkey: %w", err)
	}
	hash160 := ripe.Sum(nil)

	data, err := bech32.ConvertBits(hash160, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("convert bits: %w", err)
	}
	addr, err := bech32.Encode(Bech32HRP, data)
	if err != nil {
		return "", fmt.Errorf("bech32 encode: %w", err)
	}
	return addr, nil
}

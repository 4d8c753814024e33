// Package zkaccount implements the single-use zk-account model: derivation
// from the wallet's zk-seed, the balance commitment, and the registry that
// tracks every account an OrderWallet has ever allocated.
package zkaccount

import (
	"crypto/rand"
	"crypto/sha512"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"filippo.io/edwards25519"

	"github.com/twilight-project/orderwallet/internal/keys"
)

// IOType describes what kind of UTXO a zk-account currently holds on chain.
type IOType string

const (
	IOTypeCoin  IOType = "Coin"
	IOTypeMemo  IOType = "Memo"
	IOTypeState IOType = "State"
)

// ZkAccount is one single-use privacy-preserving account: a keypair derived
// from the wallet's zk-seed at a fixed index, plus the balance it is
// currently believed to hold and whether that balance has been observed on
// chain.
type ZkAccount struct {
	Index     uint64 `json:"index"`
	QQAddress string `json:"qq_address"`
	Account   string `json:"account"`
	Balance   uint64 `json:"balance"`
	Scalar    string `json:"scalar"`
	IOType    IOType `json:"io_type"`
	OnChain   bool   `json:"on_chain"`
}

// generatorH is a second edwards25519 generator used for the account's
// Pedersen-style balance commitment. Its discrete log relative to the
// standard basepoint is a public, fixed hash — so unlike a real
// nothing-up-my-sleeve construction this does not hide the balance. It
// exists to exercise real curve arithmetic for the commitment shape the
// spec describes, not to provide cryptographic hiding; actual order-payload
// proofs are the opaque responsibility of internal/zksdk.
var generatorH = func() *edwards25519.Point {
	h := sha512.Sum512([]byte("orderwallet/zkaccount/generator-h"))
	s, err := edwards25519.NewScalar().SetUniformBytes(h[:])
	if err != nil {
		panic(err)
	}
	return edwards25519.NewIdentityPoint().ScalarBaseMult(s)
}()

// FromSeed derives the zk-account at index from the wallet's master zk-seed,
// committing to balance with a freshly sampled blinding scalar.
func FromSeed(index uint64, seed []byte, balance uint64) (*ZkAccount, error) {
	childScalar, err := keys.DeriveChildScalar(seed, index)
	if err != nil {
		return nil, fmt.Errorf("derive child scalar: %w", err)
	}
	accountPoint := edwards25519.NewIdentityPoint().ScalarBaseMult(childScalar)

	blinding, err := randomScalar()
	if err != nil {
		return nil, fmt.Errorf("sample blinding scalar: %w", err)
	}

	commitment := edwards25519.NewIdentityPoint().ScalarBaseMult(scalarFromUint64(balance))
	blindTerm := edwards25519.NewIdentityPoint().ScalarMult(blinding, generatorH)
	commitment = commitment.Add(commitment, blindTerm)

	return &ZkAccount{
		Index:     index,
		QQAddress: hex.EncodeToString(commitment.Bytes()),
		Account:   hex.EncodeToString(accountPoint.Bytes()),
		Balance:   balance,
		Scalar:    hex.EncodeToString(blinding.Bytes()),
		IOType:    IOTypeCoin,
		OnChain:   false,
	}, nil
}

// Recommit recomputes the QQAddress commitment for a new balance using the
// account's existing blinding scalar, as happens when trading_to_trading
// carries a balance over to a freshly derived account.
func (a *ZkAccount) Recommit(balance uint64) error {
	blindBytes, err := hex.DecodeString(a.Scalar)
	if err != nil {
		return fmt.Errorf("decode blinding scalar: %w", err)
	}
	var wide [32]byte
	copy(wide[:], blindBytes)
	blinding, err := edwards25519.NewScalar().SetCanonicalBytes(wide[:])
	if err != nil {
		return fmt.Errorf("parse blinding scalar: %w", err)
	}

	commitment := edwards25519.NewIdentityPoint().ScalarBaseMult(scalarFromUint64(balance))
	blindTerm := edwards25519.NewIdentityPoint().ScalarMult(blinding, generatorH)
	commitment = commitment.Add(commitment, blindTerm)

	a.Balance = balance
	a.QQAddress = hex.EncodeToString(commitment.Bytes())
	return nil
}

func randomScalar() (*edwards25519.Scalar, error) {
	var buf [64]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return nil, err
	}
	return edwards25519.NewScalar().SetUniformBytes(buf[:])
}

func scalarFromUint64(v uint64) *edwards25519.Scalar {
	var buf [64]byte
	binary.LittleEndian.PutUint64(buf[:8], v)
	sc, err := edwards25519.NewScalar().SetUniformBytes(buf[:])
	if err != nil {
		// SetUniformBytes only fails when its input isn't exactly 64 bytes.
		panic(err)
	}
	return sc
}

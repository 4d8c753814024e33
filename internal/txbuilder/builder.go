package txbuilder

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"github.com/twilight-project/orderwallet/internal/keys"
)

// Default fee and gas figures the wallet pays on every transaction, per the
// signing envelope: 2,000,000 gas for 1000 nyks.
const (
	DefaultGasLimit  = 2_000_000
	DefaultFeeDenom  = "nyks"
	DefaultFeeAmount = "1000"
)

// SignedTx is a fully built, signed, broadcast-ready transaction.
type SignedTx struct {
	RawBytes []byte
	Base64   string
}

// Builder constructs and signs transactions against a fixed chain id.
type Builder struct {
	ChainID string
}

// NewBuilder returns a Builder scoped to chainID.
func NewBuilder(chainID string) *Builder {
	return &Builder{ChainID: chainID}
}

// BuildAndSign wraps msg in a TxBody, attaches the standard fee and a
// single-direct SignerInfo for priv's public key at sequence, signs the
// resulting SignDoc under accountNumber, and serializes the signed TxRaw.
func (b *Builder) BuildAndSign(priv *btcec.PrivateKey, msg Any, accountNumber, sequence uint64) (*SignedTx, error) {
	body := TxBody{Messages: []Any{msg}, Memo: "", TimeoutHeight: 0}
	bodyBytes := body.Marshal()

	pub := priv.PubKey()
	authInfo := AuthInfo{
		SignerInfos: []SignerInfo{{
			PublicKey: PublicKeyAny(pub.SerializeCompressed()),
			Sequence:  sequence,
		}},
		Fee: Fee{
			Amount:   []Coin{{Denom: DefaultFeeDenom, Amount: DefaultFeeAmount}},
			GasLimit: DefaultGasLimit,
		},
	}
	authInfoBytes := authInfo.Marshal()

	signDoc := SignDoc{
		BodyBytes:     bodyBytes,
		AuthInfoBytes: authInfoBytes,
		ChainID:       b.ChainID,
		AccountNumber: accountNumber,
	}
	digest := sha256.Sum256(signDoc.Marshal())

	sig := ecdsa.Sign(priv, digest[:])
	rawSig, err := keys.RawSignatureBytes(sig)
	if err != nil {
		return nil, fmt.Errorf("encode signature: %w", err)
	}

	txRaw := TxRaw{
		BodyBytes:     bodyBytes,
		AuthInfoBytes: authInfoBytes,
		Signatures:    [][]byte{rawSig},
	}
	raw := txRaw.Marshal()

	return &SignedTx{
		RawBytes: raw,
		Base64:   base64.StdEncoding.EncodeToString(raw),
	}, nil
}

package keys

import (
	"crypto/sha256"
	"encoding/asn1"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// stdSignDoc mirrors the canonical Amino-JSON sign doc cosmos-sdk builds for
// ADR-036 arbitrary-message signing. Field order matters: it is part of the
// bytes that get signed, so the struct's declaration order must match the
// original exactly.
type stdSignDoc struct {
	ChainID       string        `json:"chain_id"`
	AccountNumber string        `json:"account_number"`
	Sequence      string        `json:"sequence"`
	Fee           stdFee        `json:"fee"`
	Msgs          []signDataMsg `json:"msgs"`
	Memo          string        `json:"memo"`
}

type stdFee struct {
	Gas    string        `json:"gas"`
	Amount []interface{} `json:"amount"`
}

type signDataMsg struct {
	Type  string          `json:"type"`
	Value signDataMsgBody `json:"value"`
}

type signDataMsgBody struct {
	Signer string `json:"signer"`
	Data   string `json:"data"`
}

// BuildADR036SignBytes builds the deterministic JSON bytes that get signed
// for an arbitrary-message (ADR-036) signature.
func BuildADR036SignBytes(chainID, signerAddr string, msg []byte) ([]byte, error) {
	doc := stdSignDoc{
		ChainID:       chainID,
		AccountNumber: "0",
		Sequence:      "0",
		Fee:           stdFee{Gas: "0", Amount: []interface{}{}},
		Msgs: []signDataMsg{{
			Type: "sign/MsgSignData",
			Value: signDataMsgBody{
				Signer: signerAddr,
				Data:   base64.StdEncoding.EncodeToString(msg),
			},
		}},
		Memo: "",
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal sign doc: %w", err)
	}
	return b, nil
}

// SignADR036 produces the deterministic 64-byte (r||s, not DER) secp256k1
// signature over SHA256(signBytes). The same (priv, chainID, signerAddr, msg)
// always yields the same signature, which is required: this signature is the
// zk-account master seed.
func SignADR036(priv *btcec.PrivateKey, chainID, signerAddr string, msg []byte) ([]byte, error) {
	signBytes, err := BuildADR036SignBytes(chainID, signerAddr, msg)
	if err != nil {
		return nil, err
	}
	digest := sha256.Sum256(signBytes)
	sig := ecdsa.Sign(priv, digest[:])
	return RawSignatureBytes(sig)
}

// RawSignatureBytes converts a DER-encoded ECDSA signature into the raw
// 32-byte-R || 32-byte-S form cosmos-sdk's signature verifiers expect.
func RawSignatureBytes(sig *ecdsa.Signature) ([]byte, error) {
	var parsed struct {
		R *big.Int
		S *big.Int
	}
	if _, err := asn1.Unmarshal(sig.Serialize(), &parsed); err != nil {
		return nil, fmt.Errorf("parse DER signature: %w", err)
	}

	out := make([]byte, 64)
	parsed.R.FillBytes(out[0:32])
	parsed.S.FillBytes(out[32:64])
	return out, nil
}

// Package txbuilder hand-rolls the narrow slice of cosmos.tx.v1beta1 that an
// OrderWallet needs — Any, TxBody, AuthInfo, Fee, SignDoc, TxRaw — directly
// on protobuf wire primitives, since this stack carries no full Cosmos SDK
// dependency to generate those types from.
package txbuilder

import "google.golang.org/protobuf/encoding/protowire"

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendStringField(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBoolField(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	return appendVarintField(b, num, 1)
}

// appendMessageField appends a nested message as a length-delimited field.
func appendMessageField(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

// Any is the Cosmos SDK wrapper for a type-url-tagged, protobuf-encoded
// message.
type Any struct {
	TypeURL string
	Value   []byte
}

// Marshal encodes a per google.protobuf.Any: field 1 type_url, field 2 value.
func (a Any) Marshal() []byte {
	var b []byte
	b = appendStringField(b, 1, a.TypeURL)
	b = appendBytesField(b, 2, a.Value)
	return b
}

// Coin is a denom/amount pair as cosmos SDK encodes it (amount is decimal
// text, not a fixed-width integer).
type Coin struct {
	Denom  string
	Amount string
}

func (c Coin) Marshal() []byte {
	var b []byte
	b = appendStringField(b, 1, c.Denom)
	b = appendStringField(b, 2, c.Amount)
	return b
}

// TxBody is cosmos.tx.v1beta1.TxBody, restricted to the fields this wallet
// sets.
type TxBody struct {
	Messages      []Any
	Memo          string
	TimeoutHeight uint64
}

func (t TxBody) Marshal() []byte {
	var b []byte
	for _, m := range t.Messages {
		b = appendMessageField(b, 1, m.Marshal())
	}
	b = appendStringField(b, 2, t.Memo)
	b = appendVarintField(b, 3, t.TimeoutHeight)
	return b
}

// signModeDirect is the mode value (1, SIGN_MODE_DIRECT) written into
// cosmos.tx.v1beta1.ModeInfo_Single.
const signModeDirect = 1

// SignerInfo is cosmos.tx.v1beta1.SignerInfo for a single-signer, direct-mode
// transaction.
type SignerInfo struct {
	PublicKey Any
	Sequence  uint64
}

func (s SignerInfo) Marshal() []byte {
	var b []byte
	b = appendMessageField(b, 1, s.PublicKey.Marshal())

	// mode_info.single.mode = SIGN_MODE_DIRECT
	var single []byte
	single = appendVarintField(single, 1, signModeDirect)
	var modeInfo []byte
	modeInfo = appendMessageField(modeInfo, 1, single)
	b = appendMessageField(b, 2, modeInfo)

	b = appendVarintField(b, 3, s.Sequence)
	return b
}

// Fee is cosmos.tx.v1beta1.Fee.
type Fee struct {
	Amount   []Coin
	GasLimit uint64
}

func (f Fee) Marshal() []byte {
	var b []byte
	for _, c := range f.Amount {
		b = appendMessageField(b, 1, c.Marshal())
	}
	b = appendVarintField(b, 2, f.GasLimit)
	return b
}

// AuthInfo is cosmos.tx.v1beta1.AuthInfo.
type AuthInfo struct {
	SignerInfos []SignerInfo
	Fee         Fee
}

func (a AuthInfo) Marshal() []byte {
	var b []byte
	for _, si := range a.SignerInfos {
		b = appendMessageField(b, 1, si.Marshal())
	}
	b = appendMessageField(b, 2, a.Fee.Marshal())
	return b
}

// SignDoc is cosmos.tx.v1beta1.SignDoc, the exact bytes that get signed.
type SignDoc struct {
	BodyBytes     []byte
	AuthInfoBytes []byte
	ChainID       string
	AccountNumber uint64
}

func (s SignDoc) Marshal() []byte {
	var b []byte
	b = appendBytesField(b, 1, s.BodyBytes)
	b = appendBytesField(b, 2, s.AuthInfoBytes)
	b = appendStringField(b, 3, s.ChainID)
	b = appendVarintField(b, 4, s.AccountNumber)
	return b
}

// TxRaw is cosmos.tx.v1beta1.TxRaw, the final broadcastable encoding.
type TxRaw struct {
	BodyBytes     []byte
	AuthInfoBytes []byte
	Signatures    [][]byte
}

func (t TxRaw) Marshal() []byte {
	var b []byte
	b = appendBytesField(b, 1, t.BodyBytes)
	b = appendBytesField(b, 2, t.AuthInfoBytes)
	for _, sig := range t.Signatures {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendBytes(b, sig)
	}
	return b
}

// secp256k1PubKey is cosmos.crypto.secp256k1.PubKey: a single bytes field
// holding the compressed public key.
type secp256k1PubKey struct {
	Key []byte
}

func (p secp256k1PubKey) Marshal() []byte {
	var b []byte
	b = appendBytesField(b, 1, p.Key)
	return b
}

const secp256k1PubKeyTypeURL = "/cosmos.crypto.secp256k1.PubKey"

// PublicKeyAny wraps a compressed secp256k1 public key in the Any the
// SignerInfo expects.
func PublicKeyAny(compressedPubKey []byte) Any {
	return Any{
		TypeURL: secp256k1PubKeyTypeURL,
		Value:   secp256k1PubKey{Key: compressedPubKey}.Marshal(),
	}
}

package zksdk

import (
	"bytes"
	"encoding/hex"
)

// TransferParams describes a private transfer from one zk-account's Coin
// UTXO to one or more freshly derived receiver accounts, mirroring the
// original SDK's create_private_transfer_tx_single/multi.
type TransferParams struct {
	SenderScalar    string
	SenderUtxoInput string
	ReceiverInputs  []string
	Amounts         []uint64
	AccountAddress  string
}

// BuildPrivateTransferPayload builds the opaque transfer payload that
// becomes a MsgTransferTx's TxByteCode. len(ReceiverInputs) must equal
// len(Amounts); callers enforce sum(Amounts) == source balance before
// calling this.
func BuildPrivateTransferPayload(p TransferParams) (string, error) {
	var buf bytes.Buffer
	writeString(&buf, "private_transfer")
	writeString(&buf, p.SenderScalar)
	writeString(&buf, p.SenderUtxoInput)
	writeString(&buf, p.AccountAddress)
	writeUint64(&buf, uint64(len(p.ReceiverInputs)))
	for i, input := range p.ReceiverInputs {
		writeString(&buf, input)
		writeUint64(&buf, p.Amounts[i])
	}
	return hex.EncodeToString(buf.Bytes()), nil
}

package txbuilder

// Type URLs for the messages this wallet is known to build, plus the
// bridge-module set recognized for completeness but not built by the
// orchestrator in scope.
const (
	TypeURLMintBurnTradingBtc       = "/twilightproject.nyks.zkos.MsgMintBurnTradingBtc"
	TypeURLTransferTx                = "/twilightproject.nyks.zkos.MsgTransferTx"
	TypeURLRegisterBtcDepositAddress = "/twilightproject.nyks.bridge.MsgRegisterBtcDepositAddress"

	TypeURLConfirmBtcDeposit = "/twilightproject.nyks.bridge.MsgConfirmBtcDeposit"
	TypeURLWithdrawBtcRequest = "/twilightproject.nyks.bridge.MsgWithdrawBtcRequest"
	TypeURLBroadcastBtcWithdrawTx = "/twilightproject.nyks.bridge.MsgBroadcastBtcWithdrawTx"
	TypeURLSweepBtcProposal  = "/twilightproject.nyks.bridge.MsgSweepBtcProposal"
	TypeURLRefundBtcRequest  = "/twilightproject.nyks.bridge.MsgRefundBtcRequest"
)

// KnownTypeURLs lists every message type the builder recognizes, including
// the bridge-module lifecycle messages whose type URLs are listed here but
// which have no message struct and are never constructed by the orderwallet
// orchestrator itself.
var KnownTypeURLs = []string{
	TypeURLMintBurnTradingBtc,
	TypeURLTransferTx,
	TypeURLRegisterBtcDepositAddress,
	TypeURLConfirmBtcDeposit,
	TypeURLWithdrawBtcRequest,
	TypeURLBroadcastBtcWithdrawTx,
	TypeURLSweepBtcProposal,
	TypeURLRefundBtcRequest,
}

// MsgMintBurnTradingBtc moves value between the nyks BTC reserve and a
// zk-account's trading balance.
type MsgMintBurnTradingBtc struct {
	MintOrBurn      bool
	BtcValue        uint64
	QqAccount       string
	EncryptScalar   string
	TwilightAddress string
}

func (m MsgMintBurnTradingBtc) Marshal() []byte {
	var b []byte
	b = appendBoolField(b, 1, m.MintOrBurn)
	b = appendVarintField(b, 2, m.BtcValue)
	b = appendStringField(b, 3, m.QqAccount)
	b = appendStringField(b, 4, m.EncryptScalar)
	b = appendStringField(b, 5, m.TwilightAddress)
	return b
}

func (m MsgMintBurnTradingBtc) Any() Any {
	return Any{TypeURL: TypeURLMintBurnTradingBtc, Value: m.Marshal()}
}

// MsgTransferTx carries a zk-proof-bearing private transfer transaction
// (built by internal/zksdk) for the chain to relay to the zkos validator
// set.
type MsgTransferTx struct {
	TxID            string
	TxByteCode      []byte
	TxFee           uint64
	ZkOracleAddress string
}

func (m MsgTransferTx) Marshal() []byte {
	var b []byte
	b = appendStringField(b, 1, m.TxID)
	b = appendBytesField(b, 2, m.TxByteCode)
	b = appendVarintField(b, 3, m.TxFee)
	b = appendStringField(b, 4, m.ZkOracleAddress)
	return b
}

func (m MsgTransferTx) Any() Any {
	return Any{TypeURL: TypeURLTransferTx, Value: m.Marshal()}
}

// MsgRegisterBtcDepositAddress registers a BTC deposit address with the
// bridge module, pledging a twilight stake amount against a test deposit.
type MsgRegisterBtcDepositAddress struct {
	BtcDepositAddress     string
	BtcSatoshiTestAmount  uint64
	TwilightStakingAmount uint64
	TwilightAddress       string
}

func (m MsgRegisterBtcDepositAddress) Marshal() []byte {
	var b []byte
	b = appendStringField(b, 1, m.BtcDepositAddress)
	b = appendVarintField(b, 2, m.BtcSatoshiTestAmount)
	b = appendVarintField(b, 3, m.TwilightStakingAmount)
	b = appendStringField(b, 4, m.TwilightAddress)
	return b
}

func (m MsgRegisterBtcDepositAddress) Any() Any {
	return Any{TypeURL: TypeURLRegisterBtcDepositAddress, Value: m.Marshal()}
}

// Package zksdk stands in for the zero-knowledge order-payload construction
// (range proofs, shuffle proofs, commitment algebra) that a real zkos SDK
// would perform. It is a deliberate opaque boundary: every builder here
// returns a deterministic hex-encoded envelope of its inputs, not a
// cryptographically sound proof. internal/orderwallet depends only on these
// function signatures, so swapping in a real SDK later is a matter of
// reimplementing this package.
package zksdk

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// TraderOrderType is the kind of trader order being opened.
type TraderOrderType string

const (
	OrderTypeMarket TraderOrderType = "MARKET"
	OrderTypeLimit  TraderOrderType = "LIMIT"
)

// OrderSide is the direction of a trader order.
type OrderSide string

const (
	SideLong  OrderSide = "LONG"
	SideShort OrderSide = "SHORT"
)

// TraderOrderParams describes a new trader order to be opened against a
// funded, on-chain zk-account.
type TraderOrderParams struct {
	AccountAddress string
	Scalar         string
	OrderType      TraderOrderType
	OrderSide      OrderSide
	EntryPrice     uint64
	Leverage       uint64
	InitialMargin  uint64
	PositionSize   uint64
	ContractPath   string
}

// BuildCreateTraderOrderPayload builds the opaque payload submitted to
// RelayerClient.CreateTraderOrder.
func BuildCreateTraderOrderPayload(p TraderOrderParams) (string, error) {
	var buf bytes.Buffer
	writeString(&buf, "create_trader_order")
	writeString(&buf, p.AccountAddress)
	writeString(&buf, p.Scalar)
	writeString(&buf, string(p.OrderType))
	writeString(&buf, string(p.OrderSide))
	writeUint64(&buf, p.EntryPrice)
	writeUint64(&buf, p.Leverage)
	writeUint64(&buf, p.InitialMargin)
	writeUint64(&buf, p.PositionSize)
	writeString(&buf, p.ContractPath)
	return hex.EncodeToString(buf.Bytes()), nil
}

// BuildExecuteTraderOrderPayload builds the opaque payload that closes an
// open trader order at executionPrice.
func BuildExecuteTraderOrderPayload(requestID, accountAddress, scalar string, executionPrice uint64) (string, error) {
	var buf bytes.Buffer
	writeString(&buf, "execute_trader_order")
	writeString(&buf, requestID)
	writeString(&buf, accountAddress)
	writeString(&buf, scalar)
	writeUint64(&buf, executionPrice)
	return hex.EncodeToString(buf.Bytes()), nil
}

// BuildCancelTraderOrderPayload builds the opaque payload that cancels a
// not-yet-filled trader order.
func BuildCancelTraderOrderPayload(requestID, accountAddress, scalar string) (string, error) {
	var buf bytes.Buffer
	writeString(&buf, "cancel_trader_order")
	writeString(&buf, requestID)
	writeString(&buf, accountAddress)
	writeString(&buf, scalar)
	return hex.EncodeToString(buf.Bytes()), nil
}

// LendOrderParams describes a new lend order depositing balance into the
// lending pool from a funded, on-chain zk-account.
type LendOrderParams struct {
	AccountAddress string
	Scalar         string
	Balance        uint64
	ContractPath   string
}

// BuildCreateLendOrderPayload builds the opaque payload submitted to
// RelayerClient.CreateLendOrder.
func BuildCreateLendOrderPayload(p LendOrderParams) (string, error) {
	var buf bytes.Buffer
	writeString(&buf, "create_lend_order")
	writeString(&buf, p.AccountAddress)
	writeString(&buf, p.Scalar)
	writeUint64(&buf, p.Balance)
	writeString(&buf, p.ContractPath)
	return hex.EncodeToString(buf.Bytes()), nil
}

// BuildCloseLendOrderPayload builds the opaque payload that withdraws a
// lend order's position.
func BuildCloseLendOrderPayload(requestID, accountAddress, scalar string) (string, error) {
	var buf bytes.Buffer
	writeString(&buf, "close_lend_order")
	writeString(&buf, requestID)
	writeString(&buf, accountAddress)
	writeString(&buf, scalar)
	return hex.EncodeToString(buf.Bytes()), nil
}

func writeString(buf *bytes.Buffer, s string) {
	writeUint64(buf, uint64(len(s)))
	buf.WriteString(s)
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

// Decode reverses the hex encoding for test/debugging inspection of a
// payload's length; it does not attempt to parse the fields back out since
// callers never need round-tripping in production.
func Decode(payloadHex string) ([]byte, error) {
	b, err := hex.DecodeString(payloadHex)
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return b, nil
}

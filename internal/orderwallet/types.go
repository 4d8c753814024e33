package orderwallet

import "github.com/twilight-project/orderwallet/internal/zksdk"

// Balance is the base wallet's on-chain nyks/sats holdings, refreshed from
// the LCD before every funding decision.
type Balance struct {
	Nyks uint64
	Sats uint64
}

// TxResult is the chain's immediate response to a broadcast, before
// finality.
type TxResult struct {
	TxHash string
	Code   uint32
	Log    string
}

// OrderType and PositionType re-export the zksdk vocabulary so callers
// never need to import that package directly for these two enums.
type OrderType = zksdk.TraderOrderType
type PositionType = zksdk.OrderSide

const (
	OrderTypeMarket = zksdk.OrderTypeMarket
	OrderTypeLimit  = zksdk.OrderTypeLimit
	PositionLong    = zksdk.SideLong
	PositionShort   = zksdk.SideShort
)

// AccountSplit pairs a newly allocated account index with the balance it
// was allocated, as returned by TradingToTradingMultipleAccounts.
type AccountSplit struct {
	Index   uint64
	Balance uint64
}

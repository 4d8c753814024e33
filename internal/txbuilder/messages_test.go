package txbuilder

import "testing"

func TestMsgMintBurnTradingBtc_Any(t *testing.T) {
	m := MsgMintBurnTradingBtc{
		MintOrBurn:      true,
		BtcValue:        1000,
		QqAccount:       "qqaccountbytes",
		EncryptScalar:   "scalarbytes",
		TwilightAddress: "twilight1abc",
	}
	a := m.Any()
	if a.TypeURL != TypeURLMintBurnTradingBtc {
		t.Fatalf("TypeURL = %q, want %q", a.TypeURL, TypeURLMintBurnTradingBtc)
	}
	if len(a.Value) == 0 {
		t.Fatal("expected non-empty marshaled value")
	}
}

func TestMsgTransferTx_Any(t *testing.T) {
	m := MsgTransferTx{
		TxID:            "tx-123",
		TxByteCode:      []byte{1, 2, 3},
		TxFee:           500,
		ZkOracleAddress: "twilight1oracle",
	}
	a := m.Any()
	if a.TypeURL != TypeURLTransferTx {
		t.Fatalf("TypeURL = %q, want %q", a.TypeURL, TypeURLTransferTx)
	}
	if len(a.Value) == 0 {
		t.Fatal("expected non-empty marshaled value")
	}
}

func TestMsgRegisterBtcDepositAddress_Any(t *testing.T) {
	m := MsgRegisterBtcDepositAddress{
		BtcDepositAddress:     "bc1qexample",
		BtcSatoshiTestAmount:  1,
		TwilightStakingAmount: 1000,
		TwilightAddress:       "twilight1abc",
	}
	a := m.Any()
	if a.TypeURL != TypeURLRegisterBtcDepositAddress {
		t.Fatalf("TypeURL = %q, want %q", a.TypeURL, TypeURLRegisterBtcDepositAddress)
	}
	if len(a.Value) == 0 {
		t.Fatal("expected non-empty marshaled value")
	}
}

func TestKnownTypeURLs_ContainsBuiltMessages(t *testing.T) {
	want := []string{TypeURLMintBurnTradingBtc, TypeURLTransferTx}
	for _, w := range want {
		found := false
		for _, got := range KnownTypeURLs {
			if got == w {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("KnownTypeURLs missing %q", w)
		}
	}
	if len(KnownTypeURLs) != 8 {
		t.Fatalf("len(KnownTypeURLs) = %d, want 8", len(KnownTypeURLs))
	}
}

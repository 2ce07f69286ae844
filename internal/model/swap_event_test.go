package model

import (
	"encoding/json"
	"testing"
)

func TestEventRecordJSONFieldNames(t *testing.T) {
	record := EventRecord{
		Wallet:       "walletA",
		Name:         "TOKEN",
		Token:        "mintA",
		Timestamp:    1700000000,
		TokenAmount:  12.5,
		PairedAmount: -0.25,
	}

	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	for _, key := range []string{"wallet", "name", "token", "timestamp", "token_amount", "paired_amount"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("missing %q in %s", key, data)
		}
	}
}

func TestWalletMetricsJSONRoundTrip(t *testing.T) {
	original := WalletMetrics{
		Wallet:                    "walletA",
		TotalPnLUSD:               120.5,
		RealizedPnL:               100,
		UnrealizedPnL:             20.5,
		WinRate:                   75,
		AverageHoldingTimeSeconds: 3600,
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded WalletMetrics
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if original != decoded {
		t.Fatalf("round-trip mismatch: %+v != %+v", original, decoded)
	}
}

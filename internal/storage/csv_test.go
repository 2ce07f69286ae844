package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"walletScope/internal/model"
)

func TestWriteResultsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "results.csv")

	err := WriteResultsCSV(path, []model.WalletMetrics{
		{Wallet: "walletA", TotalPnLUSD: 120.5, RealizedPnL: 100, UnrealizedPnL: 20.5, WinRate: 75, AverageHoldingTimeSeconds: 3600},
		{Wallet: "walletB", TotalPnLUSD: -3.25, RealizedPnL: -3.25, WinRate: 0, AverageHoldingTimeSeconds: 60},
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if lines[0] != "wallet,total_pnl_usd,realized_pnl,unrealized_pnl,win_rate,average_holding_time_seconds" {
		t.Fatalf("header mismatch: %s", lines[0])
	}
	if lines[1] != "walletA,120.5,100,20.5,75,3600" {
		t.Fatalf("row mismatch: %s", lines[1])
	}
	if lines[2] != "walletB,-3.25,-3.25,0,0,60" {
		t.Fatalf("row mismatch: %s", lines[2])
	}
}

func TestReadWallets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.csv")
	content := "walletA,ignored\nwalletB\n\nwalletC,x,y\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	got, err := ReadWallets(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	want := []string{"walletA", "walletB", "walletC"}
	if len(got) != len(want) {
		t.Fatalf("wallets = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("wallets = %v, want %v", got, want)
		}
	}
}

func TestReadWalletsMissingFile(t *testing.T) {
	if _, err := ReadWallets(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestEventWriterAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events", "dump.jsonl")
	writer := NewEventWriter(path)

	first := []model.EventRecord{
		{Wallet: "walletA", Name: "TOKEN", Token: "mintA", Timestamp: 10, TokenAmount: 5, PairedAmount: -1},
	}
	second := []model.EventRecord{
		{Wallet: "walletB", Name: "TOKEN", Token: "mintB", Timestamp: 20, TokenAmount: -5, PairedAmount: 2},
		{Wallet: "walletB", Name: "TOKEN", Token: "mintB", Timestamp: 30, TokenAmount: 1, PairedAmount: -1},
	}

	if err := writer.PutEventBatch(first); err != nil {
		t.Fatalf("first batch: %v", err)
	}
	if err := writer.PutEventBatch(second); err != nil {
		t.Fatalf("second batch: %v", err)
	}
	if err := writer.PutEventBatch(nil); err != nil {
		t.Fatalf("empty batch: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}

	var record model.EventRecord
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if record.Wallet != "walletA" || record.Timestamp != 10 {
		t.Fatalf("record mismatch: %+v", record)
	}
}

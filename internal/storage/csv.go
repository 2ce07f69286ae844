package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"walletScope/internal/model"
)

// resultColumns is the header row of the results file.
var resultColumns = []string{
	"wallet",
	"total_pnl_usd",
	"realized_pnl",
	"unrealized_pnl",
	"win_rate",
	"average_holding_time_seconds",
}

// ReadWallets loads candidate addresses from the first column of a CSV
// file. Rows are returned as-is; validation happens downstream.
func ReadWallets(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wallets file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read wallets file: %w", err)
	}

	wallets := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		wallets = append(wallets, row[0])
	}
	return wallets, nil
}

// WriteResultsCSV writes qualifying wallet metrics, one row per wallet in
// the order given.
func WriteResultsCSV(path string, results []model.WalletMetrics) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create results file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(resultColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, metrics := range results {
		row := []string{
			metrics.Wallet,
			formatFloat(metrics.TotalPnLUSD),
			formatFloat(metrics.RealizedPnL),
			formatFloat(metrics.UnrealizedPnL),
			formatFloat(metrics.WinRate),
			formatFloat(metrics.AverageHoldingTimeSeconds),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write result row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush results: %w", err)
	}
	return nil
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

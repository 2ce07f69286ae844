package model

// WalletMetrics is the terminal per-wallet output of an accounting run.
type WalletMetrics struct {
	Wallet                    string  `json:"wallet"`
	TotalPnLUSD               float64 `json:"total_pnl_usd"`
	RealizedPnL               float64 `json:"realized_pnl"`
	UnrealizedPnL             float64 `json:"unrealized_pnl"`
	WinRate                   float64 `json:"win_rate"`
	AverageHoldingTimeSeconds float64 `json:"average_holding_time_seconds"`
}

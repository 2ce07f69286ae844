package birdeye

import "encoding/json"

// BalanceChange is one asset leg of a transaction record. Amount is the raw
// integer amount scaled by Decimals.
type BalanceChange struct {
	Name     string      `json:"name"`
	Address  string      `json:"address"`
	Amount   json.Number `json:"amount"`
	Decimals int32       `json:"decimals"`
}

// Transaction is a raw wallet transaction record as returned by tx_list.
type Transaction struct {
	TxHash        string          `json:"txHash"`
	BlockTime     string          `json:"blockTime"`
	MainAction    string          `json:"mainAction"`
	BalanceChange []BalanceChange `json:"balanceChange"`
}

type priceResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Value float64 `json:"value"`
	} `json:"data"`
}

type portfolioResponse struct {
	Success bool `json:"success"`
	Data    struct {
		TotalUSD float64 `json:"totalUsd"`
	} `json:"data"`
}

// tx_list payloads are keyed by chain name.
type txListResponse struct {
	Success bool                     `json:"success"`
	Data    map[string][]Transaction `json:"data"`
}

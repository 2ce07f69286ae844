package model

// Lot is an open acquisition awaiting disposal. Quantity is what remains
// after earlier disposals consumed part of it.
type Lot struct {
	Quantity    float64 `json:"quantity"`
	UnitCostUSD float64 `json:"unit_cost_usd"`
	AcquiredAt  int64   `json:"acquired_at"`
}

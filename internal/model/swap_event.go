package model

// SwapEvent is one directional token flow extracted from a two-leg swap.
// TokenAmount is signed: positive is an acquisition, negative a disposal.
type SwapEvent struct {
	Name         string  `json:"name"`
	Token        string  `json:"token"`
	Timestamp    int64   `json:"timestamp"`
	TokenAmount  float64 `json:"token_amount"`
	PairedAmount float64 `json:"paired_amount"`
}

// EventRecord is the normalized representation of a swap event for storage.
type EventRecord struct {
	Wallet       string  `json:"wallet"`
	Name         string  `json:"name"`
	Token        string  `json:"token"`
	Timestamp    int64   `json:"timestamp"`
	TokenAmount  float64 `json:"token_amount"`
	PairedAmount float64 `json:"paired_amount"`
}

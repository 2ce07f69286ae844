package accounting

import (
	"sort"

	"walletScope/internal/model"
)

// Inventory maps a token to its FIFO queue of open lots, oldest first. An
// Inventory belongs to exactly one accounting run and is never shared.
type Inventory map[string][]model.Lot

// Push appends a lot to the tail of the token's queue.
func (inv Inventory) Push(token string, lot model.Lot) {
	inv[token] = append(inv[token], lot)
}

// Tokens returns the held token identifiers in stable order.
func (inv Inventory) Tokens() []string {
	tokens := make([]string, 0, len(inv))
	for token := range inv {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}

package screener

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
)

// evmChains are the Birdeye chains whose wallets are hex EVM addresses.
var evmChains = map[string]bool{
	"ethereum":  true,
	"arbitrum":  true,
	"avalanche": true,
	"bsc":       true,
	"optimism":  true,
	"polygon":   true,
	"base":      true,
	"zksync":    true,
}

// SupportedChain reports whether wallet addresses on the chain can be
// validated.
func SupportedChain(chain string) bool {
	return chain == "solana" || evmChains[chain]
}

// ParseWallets trims and validates candidate addresses for the chain.
// Empty rows are dropped; a malformed address fails the whole batch.
func ParseWallets(chain string, rows []string) ([]string, error) {
	if !SupportedChain(chain) {
		return nil, fmt.Errorf("unsupported chain %q", chain)
	}

	wallets := make([]string, 0, len(rows))
	for i, row := range rows {
		address := strings.TrimSpace(row)
		if address == "" {
			continue
		}
		if err := validateAddress(chain, address); err != nil {
			return nil, fmt.Errorf("wallet row %d: %w", i+1, err)
		}
		wallets = append(wallets, address)
	}
	return wallets, nil
}

func validateAddress(chain, address string) error {
	if evmChains[chain] {
		if !common.IsHexAddress(address) {
			return fmt.Errorf("invalid %s address %q", chain, address)
		}
		return nil
	}
	if _, err := solana.PublicKeyFromBase58(address); err != nil {
		return fmt.Errorf("invalid solana address %q: %w", address, err)
	}
	return nil
}

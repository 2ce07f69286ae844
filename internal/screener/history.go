package screener

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"walletScope/internal/birdeye"
	"walletScope/internal/model"
	"walletScope/internal/units"
)

// swapAction is the mainAction value Birdeye reports for plain swaps.
const swapAction = "unknown"

// Source provides wallet balances and paginated transaction history.
type Source interface {
	WalletBalance(ctx context.Context, wallet string) (float64, error)
	Transactions(ctx context.Context, wallet, before string, limit int) ([]birdeye.Transaction, error)
}

// history walks the wallet's transaction list newest-first until it runs
// past the cutoff or out of pages, then returns the swap events in
// chronological order. A source error mid-walk ends the walk with whatever
// was collected so far.
func (s *Screener) history(ctx context.Context, wallet string) ([]model.SwapEvent, error) {
	var (
		events  []model.SwapEvent
		cursor  string
		pages   int
		records int
		skipped int
	)

walk:
	for {
		page, err := s.source.Transactions(ctx, wallet, cursor, s.cfg.PageSize)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.logger.Warn("transaction page failed",
				zap.String("wallet", wallet),
				zap.Int("pages", pages),
				zap.Error(err),
			)
			break
		}
		if len(page) == 0 {
			break
		}
		pages++
		cursor = page[len(page)-1].TxHash

		for _, tx := range page {
			records++
			blockTime, err := units.ParseISOTime(tx.BlockTime)
			if err != nil {
				skipped++
				s.logger.Debug("unreadable block time",
					zap.String("wallet", wallet),
					zap.String("tx", tx.TxHash),
					zap.Error(err),
				)
				continue
			}
			if blockTime < s.cfg.CutoffUnix {
				break walk
			}
			if tx.MainAction != swapAction || len(tx.BalanceChange) != 2 {
				continue
			}
			event, err := normalizeTransaction(tx, blockTime)
			if err != nil {
				skipped++
				s.logger.Debug("unreadable swap",
					zap.String("wallet", wallet),
					zap.String("tx", tx.TxHash),
					zap.Error(err),
				)
				continue
			}
			events = append(events, event)
		}

		if len(page) < s.cfg.PageSize {
			break
		}
	}

	// Pages arrive newest-first; accounting wants oldest-first.
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}

	s.logger.Debug("history loaded",
		zap.String("wallet", wallet),
		zap.Int("pages", pages),
		zap.Int("records", records),
		zap.Int("events", len(events)),
		zap.Int("skipped", skipped),
	)

	return events, nil
}

// normalizeTransaction maps a two-leg swap record onto a SwapEvent. The
// second leg carries the traded token and the first the paired native
// amount.
func normalizeTransaction(tx birdeye.Transaction, blockTime int64) (model.SwapEvent, error) {
	tokenLeg := tx.BalanceChange[1]
	pairedLeg := tx.BalanceChange[0]

	tokenAmount, err := units.ToDecimal(tokenLeg.Amount, tokenLeg.Decimals)
	if err != nil {
		return model.SwapEvent{}, fmt.Errorf("token leg: %w", err)
	}
	pairedAmount, err := units.ToDecimal(pairedLeg.Amount, pairedLeg.Decimals)
	if err != nil {
		return model.SwapEvent{}, fmt.Errorf("paired leg: %w", err)
	}

	return model.SwapEvent{
		Name:         tokenLeg.Name,
		Token:        tokenLeg.Address,
		Timestamp:    blockTime,
		TokenAmount:  tokenAmount,
		PairedAmount: pairedAmount,
	}, nil
}

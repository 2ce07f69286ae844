package accounting

import (
	"context"
	"math"

	"go.uber.org/zap"

	"walletScope/internal/model"
)

// Oracle resolves USD unit prices for the engine. A zero price means the
// oracle has no signal for that token at that time.
type Oracle interface {
	HistoricalPrice(ctx context.Context, token string, unixTime int64) (float64, error)
	CurrentPrice(ctx context.Context, token string) (float64, error)
}

// Engine replays chronological swap events into per-token FIFO lots and
// derives wallet metrics from the matched disposals.
type Engine struct {
	oracle Oracle
	logger *zap.Logger
}

func NewEngine(oracle Oracle, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{oracle: oracle, logger: logger}
}

// Account replays events oldest-first and returns the wallet's metrics.
// Per-event failures are logged and skipped; only context cancellation
// aborts the wallet.
func (e *Engine) Account(ctx context.Context, wallet string, events []model.SwapEvent) (model.WalletMetrics, error) {
	inventory := make(Inventory)
	var realized, totalHolding float64
	var wins, totalSales int

	for _, event := range events {
		switch {
		case event.TokenAmount > 0:
			if err := e.acquire(ctx, wallet, inventory, event); err != nil {
				if ctx.Err() != nil {
					return model.WalletMetrics{}, ctx.Err()
				}
				e.logger.Warn("skip acquisition",
					zap.String("wallet", wallet),
					zap.String("token", event.Token),
					zap.Error(err),
				)
			}

		case event.TokenAmount < 0:
			pnl, holding, err := e.dispose(ctx, wallet, inventory, event)
			if err != nil {
				if ctx.Err() != nil {
					return model.WalletMetrics{}, ctx.Err()
				}
				e.logger.Warn("skip disposal",
					zap.String("wallet", wallet),
					zap.String("token", event.Token),
					zap.Error(err),
				)
				continue
			}

			totalSales++
			realized += pnl
			totalHolding += holding
			if pnl > 0 {
				wins++
				e.logger.Debug("winning disposal", zap.String("wallet", wallet), zap.String("token", event.Token), zap.Float64("pnl_usd", pnl))
			} else {
				e.logger.Debug("losing disposal", zap.String("wallet", wallet), zap.String("token", event.Token), zap.Float64("pnl_usd", pnl))
			}
		}
	}

	unrealized, err := e.markToMarket(ctx, wallet, inventory)
	if err != nil {
		return model.WalletMetrics{}, err
	}

	winRate := 0.0
	avgHolding := 0.0
	if totalSales > 0 {
		winRate = float64(wins) / float64(totalSales) * 100
		avgHolding = totalHolding / float64(totalSales)
	}

	e.logger.Debug("accounting complete",
		zap.String("wallet", wallet),
		zap.Int("events", len(events)),
		zap.Int("sales", totalSales),
		zap.Int("wins", wins),
		zap.Float64("realized_pnl", realized),
		zap.Float64("unrealized_pnl", unrealized),
	)

	return model.WalletMetrics{
		Wallet:                    wallet,
		TotalPnLUSD:               realized + unrealized,
		RealizedPnL:               realized,
		UnrealizedPnL:             unrealized,
		WinRate:                   winRate,
		AverageHoldingTimeSeconds: avgHolding,
	}, nil
}

// acquire opens a lot at the acquisition-time price. An acquisition without
// a price signal is not tracked.
func (e *Engine) acquire(ctx context.Context, wallet string, inventory Inventory, event model.SwapEvent) error {
	unitCost, err := e.oracle.HistoricalPrice(ctx, event.Token, event.Timestamp)
	if err != nil {
		return err
	}
	if unitCost <= 0 {
		return nil
	}

	inventory.Push(event.Token, model.Lot{
		Quantity:    event.TokenAmount,
		UnitCostUSD: unitCost,
		AcquiredAt:  event.Timestamp,
	})
	e.logger.Debug("lot opened",
		zap.String("wallet", wallet),
		zap.String("token", event.Token),
		zap.Float64("quantity", event.TokenAmount),
		zap.Float64("unit_cost_usd", unitCost),
	)
	return nil
}

// dispose matches a disposal against the oldest open lots. Holding time is
// quantity-weighted and normalized by the original disposal size. A disposal
// larger than tracked inventory consumes what exists and ignores the rest.
func (e *Engine) dispose(ctx context.Context, wallet string, inventory Inventory, event model.SwapEvent) (float64, float64, error) {
	sellPrice, err := e.oracle.HistoricalPrice(ctx, event.Token, event.Timestamp)
	if err != nil {
		return 0, 0, err
	}

	need := -event.TokenAmount
	originalNeed := need
	var pnl, holding float64

	queue := inventory[event.Token]
	for need > 0 && len(queue) > 0 {
		lot := queue[0]
		queue = queue[1:]

		matched := math.Min(need, lot.Quantity)
		pnl += (sellPrice - lot.UnitCostUSD) * matched
		holding += float64(event.Timestamp-lot.AcquiredAt) * (matched / originalNeed)
		need -= matched

		if lot.Quantity > matched {
			lot.Quantity -= matched
			// The reduced remainder stays at the head, still the oldest lot.
			queue = append([]model.Lot{lot}, queue...)
		}
	}
	inventory[event.Token] = queue

	return pnl, holding, nil
}

// markToMarket prices the remaining lots at the current price, fetched once
// per held token.
func (e *Engine) markToMarket(ctx context.Context, wallet string, inventory Inventory) (float64, error) {
	var unrealized float64
	for _, token := range inventory.Tokens() {
		lots := inventory[token]
		if len(lots) == 0 {
			continue
		}

		current, err := e.oracle.CurrentPrice(ctx, token)
		if err != nil {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			e.logger.Warn("skip mark to market",
				zap.String("wallet", wallet),
				zap.String("token", token),
				zap.Error(err),
			)
			continue
		}

		for _, lot := range lots {
			unrealized += (current - lot.UnitCostUSD) * lot.Quantity
		}
	}
	return unrealized, nil
}

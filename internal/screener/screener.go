package screener

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"walletScope/internal/model"
)

// Config holds screening thresholds and run settings. The balance filter is
// strict; the metric thresholds are inclusive.
type Config struct {
	MinCapital       float64
	MinWinRate       float64
	MinHoldingPeriod float64
	MinTotalPnL      float64
	CutoffUnix       int64
	PageSize         int
	Concurrency      int
}

// Accountant turns a wallet's chronological events into metrics.
type Accountant interface {
	Account(ctx context.Context, wallet string, events []model.SwapEvent) (model.WalletMetrics, error)
}

// EventSink receives each wallet's normalized event sequence.
type EventSink interface {
	PutEventBatch(records []model.EventRecord) error
}

// Screener runs the balance pre-filter, history retrieval, accounting, and
// threshold qualification across candidate wallets.
type Screener struct {
	cfg        Config
	source     Source
	accountant Accountant
	events     EventSink
	logger     *zap.Logger
}

// NewScreener builds a Screener with its dependencies. The event sink may
// be nil.
func NewScreener(cfg Config, source Source, accountant Accountant, events EventSink, logger *zap.Logger) *Screener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Screener{
		cfg:        cfg,
		source:     source,
		accountant: accountant,
		events:     events,
		logger:     logger,
	}
}

// Run screens the candidate wallets and returns qualifying metrics sorted
// by total PnL descending.
func (s *Screener) Run(ctx context.Context, wallets []string) ([]model.WalletMetrics, error) {
	if s.source == nil {
		return nil, fmt.Errorf("source is nil")
	}
	if s.accountant == nil {
		return nil, fmt.Errorf("accountant is nil")
	}
	if s.cfg.PageSize <= 0 {
		s.cfg.PageSize = 1000
	}

	qualified, err := s.filterByBalance(ctx, wallets)
	if err != nil {
		return nil, err
	}
	s.logger.Info("balance filter complete",
		zap.Int("candidates", len(wallets)),
		zap.Int("qualified", len(qualified)),
	)

	results, err := s.screenWallets(ctx, qualified)
	if err != nil {
		return nil, err
	}

	kept := make([]model.WalletMetrics, 0, len(results))
	for _, metrics := range results {
		if metrics.Wallet == "" {
			continue
		}
		if s.qualifies(metrics) {
			kept = append(kept, metrics)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].TotalPnLUSD > kept[j].TotalPnLUSD
	})

	s.logger.Info("screen complete",
		zap.Int("candidates", len(wallets)),
		zap.Int("qualified", len(qualified)),
		zap.Int("kept", len(kept)),
	)

	return kept, nil
}

// filterByBalance fans out one balance lookup per address and keeps those
// strictly above the capital threshold. A failed lookup counts as zero.
func (s *Screener) filterByBalance(ctx context.Context, wallets []string) ([]string, error) {
	balances := make([]float64, len(wallets))

	group, groupCtx := errgroup.WithContext(ctx)
	if s.cfg.Concurrency > 0 {
		group.SetLimit(s.cfg.Concurrency)
	}

	for i, wallet := range wallets {
		group.Go(func() error {
			balance, err := s.source.WalletBalance(groupCtx, wallet)
			if err != nil {
				if groupCtx.Err() != nil {
					return groupCtx.Err()
				}
				s.logger.Warn("balance fetch failed", zap.String("wallet", wallet), zap.Error(err))
				return nil
			}
			balances[i] = balance
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	qualified := make([]string, 0, len(wallets))
	for i, wallet := range wallets {
		if balances[i] > s.cfg.MinCapital {
			qualified = append(qualified, wallet)
		}
	}
	return qualified, nil
}

// screenWallets fans out history retrieval and accounting, one task per
// qualified wallet. Results land in per-wallet slots, so tasks never share
// state beyond the price cache inside the accountant.
func (s *Screener) screenWallets(ctx context.Context, wallets []string) ([]model.WalletMetrics, error) {
	results := make([]model.WalletMetrics, len(wallets))

	group, groupCtx := errgroup.WithContext(ctx)
	if s.cfg.Concurrency > 0 {
		group.SetLimit(s.cfg.Concurrency)
	}

	for i, wallet := range wallets {
		group.Go(func() error {
			events, err := s.history(groupCtx, wallet)
			if err != nil {
				return err
			}
			if s.events != nil {
				s.dumpEvents(wallet, events)
			}

			metrics, err := s.accountant.Account(groupCtx, wallet, events)
			if err != nil {
				if groupCtx.Err() != nil {
					return groupCtx.Err()
				}
				s.logger.Warn("accounting failed", zap.String("wallet", wallet), zap.Error(err))
				return nil
			}
			results[i] = metrics
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Screener) qualifies(metrics model.WalletMetrics) bool {
	return metrics.WinRate >= s.cfg.MinWinRate &&
		metrics.AverageHoldingTimeSeconds >= s.cfg.MinHoldingPeriod &&
		metrics.TotalPnLUSD >= s.cfg.MinTotalPnL
}

func (s *Screener) dumpEvents(wallet string, events []model.SwapEvent) {
	records := make([]model.EventRecord, 0, len(events))
	for _, event := range events {
		records = append(records, model.EventRecord{
			Wallet:       wallet,
			Name:         event.Name,
			Token:        event.Token,
			Timestamp:    event.Timestamp,
			TokenAmount:  event.TokenAmount,
			PairedAmount: event.PairedAmount,
		})
	}
	if err := s.events.PutEventBatch(records); err != nil {
		s.logger.Warn("event dump failed", zap.String("wallet", wallet), zap.Error(err))
	}
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"walletScope/internal/model"
)

// Store provides Postgres persistence for screening results.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// UpsertWalletMetrics inserts or updates one row per screened wallet.
func (s *Store) UpsertWalletMetrics(ctx context.Context, chain string, metrics []model.WalletMetrics) error {
	if len(metrics) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, m := range metrics {
		batch.Queue(`
			INSERT INTO wallet_metrics (
				chain, wallet, total_pnl_usd, realized_pnl, unrealized_pnl,
				win_rate, average_holding_time_seconds, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
			ON CONFLICT (chain, wallet)
			DO UPDATE SET
				total_pnl_usd = EXCLUDED.total_pnl_usd,
				realized_pnl = EXCLUDED.realized_pnl,
				unrealized_pnl = EXCLUDED.unrealized_pnl,
				win_rate = EXCLUDED.win_rate,
				average_holding_time_seconds = EXCLUDED.average_holding_time_seconds,
				updated_at = now()
		`,
			chain,
			m.Wallet,
			m.TotalPnLUSD,
			m.RealizedPnL,
			m.UnrealizedPnL,
			m.WinRate,
			m.AverageHoldingTimeSeconds,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range metrics {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

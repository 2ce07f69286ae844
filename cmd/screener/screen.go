package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"walletScope/internal/accounting"
	"walletScope/internal/birdeye"
	"walletScope/internal/config"
	"walletScope/internal/price"
	"walletScope/internal/screener"
	"walletScope/internal/storage"
	"walletScope/internal/storage/postgres"
	"walletScope/internal/units"
)

func runScreen(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.APIKey == "" {
		return fmt.Errorf("api key is required")
	}
	if !screener.SupportedChain(cfg.Chain) {
		return fmt.Errorf("unsupported chain %q", cfg.Chain)
	}

	now := time.Now()
	window, err := units.TimeframeSeconds(cfg.Timeframe, now)
	if err != nil {
		return fmt.Errorf("parse timeframe: %w", err)
	}
	cutoff := now.Unix() - window

	rows, err := storage.ReadWallets(cfg.Wallets)
	if err != nil {
		return err
	}
	wallets, err := screener.ParseWallets(cfg.Chain, rows)
	if err != nil {
		return err
	}
	if len(wallets) == 0 {
		return fmt.Errorf("wallet list is empty")
	}

	out := cfg.Out
	if out == "" {
		out = fmt.Sprintf("%s_wallets_results_%d.csv", cfg.Chain, now.Unix())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := birdeye.NewClient(birdeye.Config{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Chain:   cfg.Chain,
		Timeout: cfg.HTTPTimeout,
	})

	cacheStore, closeCache, err := newCacheStore(cfg.CacheBackend, cfg.Cache, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer closeCache()

	prices, err := price.NewService(ctx, client, cacheStore, logger)
	if err != nil {
		return fmt.Errorf("load price cache: %w", err)
	}

	engine := accounting.NewEngine(prices, logger)

	var events screener.EventSink
	if cfg.EventsOut != "" {
		events = storage.NewEventWriter(cfg.EventsOut)
	}

	var store *postgres.Store
	if cfg.PGDSN != "" {
		store, err = postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
	}

	screen := screener.NewScreener(screener.Config{
		MinCapital:       cfg.MinCapital,
		MinWinRate:       cfg.MinWinRate,
		MinHoldingPeriod: cfg.MinHoldingPeriod,
		MinTotalPnL:      cfg.MinTotalPnL,
		CutoffUnix:       cutoff,
		PageSize:         cfg.PageSize,
		Concurrency:      cfg.Concurrency,
	}, client, engine, events, logger)

	logger.Info("screen start",
		zap.String("chain", cfg.Chain),
		zap.String("timeframe", cfg.Timeframe),
		zap.Int64("cutoff", cutoff),
		zap.Int("wallets", len(wallets)),
		zap.Int("page_size", cfg.PageSize),
		zap.Int("concurrency", cfg.Concurrency),
		zap.String("out", out),
		zap.String("events_out", cfg.EventsOut),
		zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
	)

	results, err := screen.Run(ctx, wallets)
	if err != nil {
		return err
	}

	if err := storage.WriteResultsCSV(out, results); err != nil {
		return err
	}
	if store != nil {
		if err := store.UpsertWalletMetrics(ctx, cfg.Chain, results); err != nil {
			return fmt.Errorf("upsert wallet metrics: %w", err)
		}
	}

	logger.Info("screen done",
		zap.Int("qualified", len(results)),
		zap.String("out", out),
	)

	return nil
}

func newCacheStore(backend, path, redisAddr string, redisDB int) (price.Store, func(), error) {
	switch backend {
	case "file":
		return &price.FileStore{Path: path}, func() {}, nil
	case "redis":
		store := price.NewRedisStore(redisAddr, redisDB, "token_prices")
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported cache backend %q", backend)
	}
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	return "***"
}

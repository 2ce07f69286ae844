package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"walletScope/internal/birdeye"
	"walletScope/internal/config"
	"walletScope/internal/price"
)

func runPrice(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadPrice(cfgFile, cmd.Flags())
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
	if cfg.Token == "" {
		return fmt.Errorf("token is required")
	}

	at, err := config.ParseTimestamp(cfg.At)
	if err != nil {
		return fmt.Errorf("parse at: %w", err)
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

	var value float64
	if at > 0 {
		value, err = prices.HistoricalPrice(ctx, cfg.Token, at)
	} else {
		value, err = prices.CurrentPrice(ctx, cfg.Token)
	}
	if err != nil {
		return err
	}

	logger.Info("price resolved",
		zap.String("token", cfg.Token),
		zap.Int64("at", at),
		zap.Float64("value", value),
	)

	fmt.Println(strconv.FormatFloat(value, 'f', -1, 64))
	return nil
}

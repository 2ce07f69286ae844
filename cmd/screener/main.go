package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:          "screener",
		Short:        "Birdeye wallet PnL screener",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Screen candidate wallets for trading performance",
		RunE:  runScreen,
	}

	runCmd.Flags().String("wallets", "./wallets.csv", "input CSV of candidate wallets")
	runCmd.Flags().String("out", "", "results CSV path, empty means <chain>_wallets_results_<unix>.csv")
	runCmd.Flags().String("api-key", "", "Birdeye API key")
	runCmd.Flags().String("base-url", "https://public-api.birdeye.so", "Birdeye API base URL")
	runCmd.Flags().String("chain", "solana", "chain name sent as the x-chain header")
	runCmd.Flags().String("timeframe", "all", "history window (e.g. 30mi, 12h, 7d, all)")
	runCmd.Flags().Float64("min-capital", 0, "minimum wallet balance in USD (strictly greater)")
	runCmd.Flags().Float64("min-win-rate", 0, "minimum win rate percentage")
	runCmd.Flags().Float64("min-holding-period", 0, "minimum average holding time in seconds")
	runCmd.Flags().Float64("min-total-pnl", 0, "minimum total PnL in USD")
	runCmd.Flags().Int("page-size", 1000, "transactions per history page")
	runCmd.Flags().Int("concurrency", 0, "max concurrent wallet tasks, 0 means unbounded")
	runCmd.Flags().Duration("http-timeout", 30*time.Second, "HTTP request timeout")
	runCmd.Flags().String("cache", "./token_prices.json", "price cache path")
	runCmd.Flags().String("cache-backend", "file", "price cache backend (file, redis)")
	runCmd.Flags().String("redis-addr", "localhost:6379", "redis address for the redis backend")
	runCmd.Flags().Int("redis-db", 0, "redis database number")
	runCmd.Flags().String("events-out", "", "optional JSONL dump of normalized swap events")
	runCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for the wallet_metrics sink")
	runCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(runCmd)

	priceCmd := &cobra.Command{
		Use:   "price",
		Short: "Resolve a token price through the cache",
		RunE:  runPrice,
	}

	priceCmd.Flags().String("token", "", "token address")
	priceCmd.Flags().String("at", "", "price time (unix seconds or RFC3339), empty means now")
	priceCmd.Flags().String("api-key", "", "Birdeye API key")
	priceCmd.Flags().String("base-url", "https://public-api.birdeye.so", "Birdeye API base URL")
	priceCmd.Flags().String("chain", "solana", "chain name sent as the x-chain header")
	priceCmd.Flags().Duration("http-timeout", 30*time.Second, "HTTP request timeout")
	priceCmd.Flags().String("cache", "./token_prices.json", "price cache path")
	priceCmd.Flags().String("cache-backend", "file", "price cache backend (file, redis)")
	priceCmd.Flags().String("redis-addr", "localhost:6379", "redis address for the redis backend")
	priceCmd.Flags().Int("redis-db", 0, "redis database number")
	priceCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(priceCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

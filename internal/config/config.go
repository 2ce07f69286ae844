package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	Wallets          string
	Out              string
	APIKey           string
	BaseURL          string
	Chain            string
	Timeframe        string
	MinCapital       float64
	MinWinRate       float64
	MinHoldingPeriod float64
	MinTotalPnL      float64
	PageSize         int
	Concurrency      int
	HTTPTimeout      time.Duration
	Cache            string
	CacheBackend     string
	RedisAddr        string
	RedisDB          int
	EventsOut        string
	PGDSN            string
	LogLevel         string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SCREENER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("wallets", "./wallets.csv")
	v.SetDefault("base-url", "https://public-api.birdeye.so")
	v.SetDefault("chain", "solana")
	v.SetDefault("timeframe", "all")
	v.SetDefault("page-size", 1000)
	v.SetDefault("http-timeout", 30*time.Second)
	v.SetDefault("cache", "./token_prices.json")
	v.SetDefault("cache-backend", "file")
	v.SetDefault("redis-addr", "localhost:6379")
	v.SetDefault("log-level", "info")

	// Accept the conventional BIRDEYE_API_KEY alongside the prefixed form.
	if err := v.BindEnv("api-key", "SCREENER_API_KEY", "BIRDEYE_API_KEY"); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		Wallets:          v.GetString("wallets"),
		Out:              v.GetString("out"),
		APIKey:           v.GetString("api-key"),
		BaseURL:          v.GetString("base-url"),
		Chain:            v.GetString("chain"),
		Timeframe:        v.GetString("timeframe"),
		MinCapital:       v.GetFloat64("min-capital"),
		MinWinRate:       v.GetFloat64("min-win-rate"),
		MinHoldingPeriod: v.GetFloat64("min-holding-period"),
		MinTotalPnL:      v.GetFloat64("min-total-pnl"),
		PageSize:         v.GetInt("page-size"),
		Concurrency:      v.GetInt("concurrency"),
		HTTPTimeout:      v.GetDuration("http-timeout"),
		Cache:            v.GetString("cache"),
		CacheBackend:     v.GetString("cache-backend"),
		RedisAddr:        v.GetString("redis-addr"),
		RedisDB:          v.GetInt("redis-db"),
		EventsOut:        v.GetString("events-out"),
		PGDSN:            v.GetString("pg-dsn"),
		LogLevel:         v.GetString("log-level"),
	}

	return cfg, nil
}

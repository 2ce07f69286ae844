package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// PriceConfig holds configuration for the price command.
type PriceConfig struct {
	Token        string
	At           string
	APIKey       string
	BaseURL      string
	Chain        string
	HTTPTimeout  time.Duration
	Cache        string
	CacheBackend string
	RedisAddr    string
	RedisDB      int
	LogLevel     string
}

// LoadPrice merges config file, environment variables, and flags into PriceConfig.
func LoadPrice(cfgFile string, flags *pflag.FlagSet) (PriceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("SCREENER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("base-url", "https://public-api.birdeye.so")
	v.SetDefault("chain", "solana")
	v.SetDefault("http-timeout", 30*time.Second)
	v.SetDefault("cache", "./token_prices.json")
	v.SetDefault("cache-backend", "file")
	v.SetDefault("redis-addr", "localhost:6379")
	v.SetDefault("log-level", "info")

	if err := v.BindEnv("api-key", "SCREENER_API_KEY", "BIRDEYE_API_KEY"); err != nil {
		return PriceConfig{}, fmt.Errorf("bind env: %w", err)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return PriceConfig{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return PriceConfig{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return PriceConfig{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := PriceConfig{
		Token:        v.GetString("token"),
		At:           v.GetString("at"),
		APIKey:       v.GetString("api-key"),
		BaseURL:      v.GetString("base-url"),
		Chain:        v.GetString("chain"),
		HTTPTimeout:  v.GetDuration("http-timeout"),
		Cache:        v.GetString("cache"),
		CacheBackend: v.GetString("cache-backend"),
		RedisAddr:    v.GetString("redis-addr"),
		RedisDB:      v.GetInt("redis-db"),
		LogLevel:     v.GetString("log-level"),
	}

	return cfg, nil
}

// ParseTimestamp parses a timestamp value (unix seconds or RFC3339). An
// empty value parses to zero.
func ParseTimestamp(input string) (int64, error) {
	if strings.TrimSpace(input) == "" {
		return 0, nil
	}

	if isNumeric(input) {
		return strconv.ParseInt(input, 10, 64)
	}

	tm, err := time.Parse(time.RFC3339, input)
	if err != nil {
		return 0, err
	}
	return tm.Unix(), nil
}

func isNumeric(input string) bool {
	for _, r := range input {
		if r < '0' || r > '9' {
			return false
		}
	}
	return input != ""
}

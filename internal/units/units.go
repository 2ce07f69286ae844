package units

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// timeframeUnits maps timeframe suffixes to seconds. Months count as 30
// days, years as 365 days.
var timeframeUnits = map[string]int64{
	"s":  1,
	"mi": 60,
	"h":  3600,
	"d":  86400,
	"w":  604800,
	"m":  2592000,
	"y":  31536000,
}

// ToDecimal converts a raw integer amount into a token quantity using the
// token's decimal exponent.
func ToDecimal(raw json.Number, decimals int32) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("empty amount")
	}
	value, err := decimal.NewFromString(raw.String())
	if err != nil {
		return 0, fmt.Errorf("parse amount: %w", err)
	}
	return value.Shift(-decimals).InexactFloat64(), nil
}

// ParseISOTime converts an ISO-8601 block time into epoch seconds.
// Timestamps without an offset are treated as UTC.
func ParseISOTime(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts.Unix(), nil
	}
	ts, err := time.Parse("2006-01-02T15:04:05", value)
	if err != nil {
		return 0, fmt.Errorf("parse timestamp: %w", err)
	}
	return ts.Unix(), nil
}

// TimeframeSeconds converts a symbolic timeframe such as "12h" or "30d"
// into a lookback window in seconds. The literal "all" yields a window
// reaching back to the epoch. The unit is the longest matching suffix, so
// "5mi" is five minutes while "5m" is five months.
func TimeframeSeconds(timeframe string, now time.Time) (int64, error) {
	tf := strings.ToLower(strings.TrimSpace(timeframe))
	if tf == "" {
		return 0, fmt.Errorf("empty timeframe")
	}
	if tf == "all" {
		return now.Unix(), nil
	}

	unit := ""
	for suffix := range timeframeUnits {
		if strings.HasSuffix(tf, suffix) && len(suffix) > len(unit) {
			unit = suffix
		}
	}
	if unit == "" {
		return 0, fmt.Errorf("unknown timeframe unit: %s", timeframe)
	}

	count, err := strconv.ParseInt(strings.TrimSuffix(tf, unit), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timeframe count: %s", timeframe)
	}
	if count <= 0 {
		return 0, fmt.Errorf("timeframe must be positive: %s", timeframe)
	}

	return count * timeframeUnits[unit], nil
}

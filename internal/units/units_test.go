package units

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

func TestToDecimal(t *testing.T) {
	cases := []struct {
		raw      string
		decimals int32
		want     float64
	}{
		{"1000000000", 9, 1},
		{"1500000", 6, 1.5},
		{"-25000000000", 9, -25},
		{"0", 6, 0},
		{"123", 0, 123},
		{"98765432109876543210", 9, 98765432109.87654321},
	}

	for _, tc := range cases {
		got, err := ToDecimal(json.Number(tc.raw), tc.decimals)
		if err != nil {
			t.Fatalf("ToDecimal(%s, %d): %v", tc.raw, tc.decimals, err)
		}
		if math.Abs(got-tc.want) > 1e-6 {
			t.Fatalf("ToDecimal(%s, %d) = %v, want %v", tc.raw, tc.decimals, got, tc.want)
		}
	}
}

func TestToDecimalInvalid(t *testing.T) {
	if _, err := ToDecimal(json.Number("not a number"), 6); err == nil {
		t.Fatalf("expected error for malformed amount")
	}
	if _, err := ToDecimal(json.Number(""), 6); err == nil {
		t.Fatalf("expected error for empty amount")
	}
}

func TestParseISOTime(t *testing.T) {
	got, err := ParseISOTime("2024-05-01T12:00:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1714564800 {
		t.Fatalf("unix mismatch: %d", got)
	}

	offset, err := ParseISOTime("2024-05-01T14:00:00+02:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if offset != got {
		t.Fatalf("offset form mismatch: %d != %d", offset, got)
	}

	naive, err := ParseISOTime("2024-05-01T12:00:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if naive != got {
		t.Fatalf("naive form mismatch: %d != %d", naive, got)
	}
}

func TestParseISOTimeInvalid(t *testing.T) {
	if _, err := ParseISOTime(""); err == nil {
		t.Fatalf("expected error for empty timestamp")
	}
	if _, err := ParseISOTime("May 1st 2024"); err == nil {
		t.Fatalf("expected error for unparseable timestamp")
	}
}

func TestTimeframeSeconds(t *testing.T) {
	now := time.Unix(1714564800, 0)

	cases := []struct {
		timeframe string
		want      int64
	}{
		{"45s", 45},
		{"5mi", 300},
		{"12h", 43200},
		{"1d", 86400},
		{"2w", 1209600},
		{"1m", 2592000},
		{"1y", 31536000},
		{"all", 1714564800},
		{"ALL", 1714564800},
	}

	for _, tc := range cases {
		got, err := TimeframeSeconds(tc.timeframe, now)
		if err != nil {
			t.Fatalf("TimeframeSeconds(%q): %v", tc.timeframe, err)
		}
		if got != tc.want {
			t.Fatalf("TimeframeSeconds(%q) = %d, want %d", tc.timeframe, got, tc.want)
		}
	}
}

func TestTimeframeSecondsInvalid(t *testing.T) {
	now := time.Unix(1714564800, 0)

	for _, timeframe := range []string{"", "10x", "d", "mi", "0d", "-1d", "1.5d"} {
		if _, err := TimeframeSeconds(timeframe, now); err == nil {
			t.Fatalf("expected error for %q", timeframe)
		}
	}
}

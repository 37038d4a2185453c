package format

import (
	"math"
	"testing"
	"time"
)

func TestCurrency(t *testing.T) {
	if got := Currency(12.345); got != "$12.35" && got != "$12.34" {
		t.Errorf("Currency(12.345) = %q", got)
	}
	if got := Currency(100); got != "$100.00" {
		t.Errorf("Currency(100) = %q", got)
	}
	if got := Currency(math.NaN()); got != "$0.00" {
		t.Errorf("Currency(NaN) = %q", got)
	}
}

func TestMarketCap(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"N/A", "N/A"},
		{nil, "N/A"},
		{"garbage", "N/A"},
		{float64(2.5e12), "$2.50T"},
		{float64(3.1e9), "$3.10B"},
		{float64(4.2e6), "$4.20M"},
		{float64(5300), "$5.30K"},
		{float64(12), "$12.00"},
		{"1500000", "$1.50M"},
	}
	for _, tt := range tests {
		if got := MarketCap(tt.in); got != tt.want {
			t.Errorf("MarketCap(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompact(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1_500_000_000, "1.50B"},
		{52_341_000, "52.34M"},
		{1_200, "1.20K"},
		{999, "999"},
		{12.5, "12.5"},
		{math.NaN(), "0"},
	}
	for _, tt := range tests {
		if got := Compact(tt.in); got != tt.want {
			t.Errorf("Compact(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestShares(t *testing.T) {
	if got := Shares(52341000); got != "52,341,000" {
		t.Errorf("Shares = %q", got)
	}
}

func TestRatio(t *testing.T) {
	if got := Ratio("N/A"); got != "N/A" {
		t.Errorf("Ratio(N/A) = %q", got)
	}
	if got := Ratio(28.456); got != "28.46" {
		t.Errorf("Ratio(28.456) = %q", got)
	}
}

func TestChange(t *testing.T) {
	if got := Change(1.2, 0.85); got != "+$1.20 (+0.85%)" {
		t.Errorf("Change up = %q", got)
	}
	if got := Change(-3.5, -1.25); got != "-$3.50 (-1.25%)" {
		t.Errorf("Change down = %q", got)
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) float64 { return float64(now.Add(-d).Unix()) }
	tests := []struct {
		in   float64
		want string
	}{
		{0, "Just now"},
		{at(30 * time.Second), "Just now"},
		{at(5 * time.Minute), "5m ago"},
		{at(3 * time.Hour), "3h ago"},
		{at(50 * time.Hour), "2d ago"},
	}
	for _, tt := range tests {
		if got := RelativeTime(tt.in, now); got != tt.want {
			t.Errorf("RelativeTime(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTooltipDate(t *testing.T) {
	ms := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC).UnixMilli()
	if got := TooltipDate(ms); got != "Jan 05, 2024" {
		t.Errorf("TooltipDate = %q", got)
	}
}

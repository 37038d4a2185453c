// Package format renders raw numbers as display strings.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// NotAvailable is shown for fields the backend reports as "N/A".
const NotAvailable = "N/A"

// Currency formats v as $X.XX. Non-finite values render as $0.00.
func Currency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "$0.00"
	}
	return fmt.Sprintf("$%.2f", v)
}

// MarketCap formats a market capitalisation with T/B/M/K suffixes. The
// backend sends either a number or the string "N/A".
func MarketCap(v any) string {
	n, ok := numeric(v)
	if !ok {
		return NotAvailable
	}
	switch {
	case n >= 1e12:
		return fmt.Sprintf("$%.2fT", n/1e12)
	case n >= 1e9:
		return fmt.Sprintf("$%.2fB", n/1e9)
	case n >= 1e6:
		return fmt.Sprintf("$%.2fM", n/1e6)
	case n >= 1e3:
		return fmt.Sprintf("$%.2fK", n/1e3)
	default:
		return fmt.Sprintf("$%.2f", n)
	}
}

// Compact formats counts with B/M/K suffixes, e.g. 12.35M.
func Compact(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2fK", v/1e3)
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

// Shares formats a share count with thousands separators.
func Shares(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return humanize.Comma(int64(v))
}

// Ratio formats a P/E style ratio, passing "N/A" through.
func Ratio(v any) string {
	n, ok := numeric(v)
	if !ok {
		return NotAvailable
	}
	return fmt.Sprintf("%.2f", n)
}

// Percent formats a signed percentage, e.g. +1.25%.
func Percent(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.2f%%", v)
	}
	return fmt.Sprintf("%.2f%%", v)
}

// Change formats an absolute and percent move as "+$1.20 (+0.85%)".
func Change(abs, pct float64) string {
	sign := "+"
	if abs < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%s (%s%.2f%%)", sign, Currency(math.Abs(abs)), sign, math.Abs(pct))
}

// SignedCurrency formats v with an explicit sign, e.g. -$3.10.
func SignedCurrency(v float64) string {
	if v < 0 {
		return "-" + Currency(-v)
	}
	return "+" + Currency(v)
}

// RelativeTime renders a unix-seconds timestamp relative to now.
func RelativeTime(unixSeconds float64, now time.Time) string {
	if unixSeconds == 0 || math.IsNaN(unixSeconds) {
		return "Just now"
	}
	elapsed := now.Sub(time.UnixMilli(int64(unixSeconds * 1000)))
	minutes := int(elapsed / time.Minute)
	if minutes < 1 {
		return "Just now"
	}
	if minutes < 60 {
		return fmt.Sprintf("%dm ago", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}
	return fmt.Sprintf("%dd ago", hours/24)
}

// TooltipDate formats epoch milliseconds as "Jan 02, 2006" in UTC.
func TooltipDate(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("Jan 02, 2006")
}

// Clock formats the header clock.
func Clock(t time.Time) string {
	return t.Format("03:04:05 PM")
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		if strings.EqualFold(strings.TrimSpace(n), NotAvailable) {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

package calculator

import (
	"errors"
	"math"

	"StockPulse/internal/series"
)

// RangeHighLow scans the most recent lookback candles and returns the high and low.
// A non-positive lookback scans every candle.
func RangeHighLow(candles []series.Candle, lookback int) (high, low float64, err error) {
	if len(candles) == 0 {
		return 0, 0, errors.New("no candles provided")
	}
	n := len(candles)
	start := 0
	if lookback > 0 && n > lookback {
		start = n - lookback
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < n; i++ {
		if candles[i].High > high {
			high = candles[i].High
		}
		if candles[i].Low < low {
			low = candles[i].Low
		}
	}
	return high, low, nil
}

// RangePosition returns where current sits within [low, high] (0.0~1.0).
func RangePosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}

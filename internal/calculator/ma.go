package calculator

import (
	"errors"
	"math"
)

// CalculateSMA computes the simple moving average of the last period prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// SMASeries returns a rolling simple moving average aligned with prices.
// Positions before the first full window are NaN.
func SMASeries(prices []float64, period int) []float64 {
	out := make([]float64, len(prices))
	if period <= 0 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	sum := 0.0
	for i, p := range prices {
		sum += p
		if i >= period {
			sum -= prices[i-period]
		}
		if i < period-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(period)
	}
	return out
}

// EMASeries returns an exponential moving average aligned with prices,
// seeded with the SMA of the first period values. Earlier positions are NaN.
func EMASeries(prices []float64, period int) []float64 {
	out := make([]float64, len(prices))
	for i := range out {
		out[i] = math.NaN()
	}
	if period <= 0 || len(prices) < period {
		return out
	}
	seed, _ := CalculateSMA(prices[:period], period)
	out[period-1] = seed
	k := 2.0 / float64(period+1)
	for i := period; i < len(prices); i++ {
		out[i] = prices[i]*k + out[i-1]*(1-k)
	}
	return out
}

// MACDSeries returns the 12/26 MACD line and its 9-period signal line.
func MACDSeries(prices []float64) (macd, signal []float64) {
	fast := EMASeries(prices, 12)
	slow := EMASeries(prices, 26)
	macd = make([]float64, len(prices))
	start := -1
	for i := range prices {
		macd[i] = fast[i] - slow[i]
		if start < 0 && !math.IsNaN(macd[i]) {
			start = i
		}
	}
	signal = make([]float64, len(prices))
	for i := range signal {
		signal[i] = math.NaN()
	}
	if start < 0 {
		return macd, signal
	}
	tail := EMASeries(macd[start:], 9)
	copy(signal[start:], tail)
	return macd, signal
}

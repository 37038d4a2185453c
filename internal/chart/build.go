package chart

import (
	"fmt"
	"math"
	"time"

	"StockPulse/internal/calculator"
	"StockPulse/internal/model"
	"StockPulse/internal/series"
)

// BuildMain lays out the historical and forecast lines. The predicted line
// starts at the last historical price so the two lines connect.
func BuildMain(cd model.ChartData) MainSpec {
	labels := append([]string(nil), cd.Dates...)
	actual := append([]float64(nil), cd.Prices...)
	predicted := gaps(len(cd.Prices))
	if len(cd.Prices) == 0 {
		return MainSpec{Labels: labels, Actual: actual, Predicted: predicted}
	}
	last := cd.Prices[len(cd.Prices)-1]

	switch {
	case len(cd.FutureDates) > 0 && len(cd.FuturePrices) > 0:
		labels = append(labels, cd.FutureDates...)
		actual = append(actual, gaps(len(cd.FutureDates))...)
		predicted = append(gaps(len(cd.Prices)-1), last)
		predicted = append(predicted, cd.FuturePrices...)
	case cd.PredictedDate != "" && cd.PredictedPrice != nil:
		labels = append(labels, cd.PredictedDate)
		actual = append(actual, math.NaN())
		predicted = append(gaps(len(cd.Prices)-1), last, *cd.PredictedPrice)
	}
	return MainSpec{Labels: labels, Actual: actual, Predicted: predicted}
}

// BuildTechnical normalizes the candle records and aligns the SMA overlays
// onto them. The spec is empty when no candle survives normalization.
func BuildTechnical(tc model.TechnicalChart) TechnicalSpec {
	candles := series.NormalizeCandles(tc.Candles)
	if len(candles) == 0 {
		return TechnicalSpec{}
	}
	return TechnicalSpec{
		Candles: candles,
		SMA20:   align(candles, series.NormalizeLine(tc.MovingAverages.SMA20)),
		SMA50:   align(candles, series.NormalizeLine(tc.MovingAverages.SMA50)),
	}
}

// WithDerivedAverages fills overlays the backend did not send with SMAs
// computed from the candle closes.
func (s TechnicalSpec) WithDerivedAverages() TechnicalSpec {
	if len(s.Candles) == 0 {
		return s
	}
	closes := make([]float64, len(s.Candles))
	for i, c := range s.Candles {
		closes[i] = c.Close
	}
	if allGaps(s.SMA20) {
		s.SMA20 = calculator.SMASeries(closes, 20)
	}
	if allGaps(s.SMA50) {
		s.SMA50 = calculator.SMASeries(closes, 50)
	}
	return s
}

// BuildVolume colors each bar by the candle at the same timestamp. Bars
// without a matching candle count as up.
func BuildVolume(tc model.TechnicalChart) VolumeSpec {
	volumes := series.NormalizeVolumes(tc.Volumes)
	if len(volumes) == 0 {
		return VolumeSpec{}
	}
	byTime := make(map[int64]series.Candle)
	for _, c := range series.NormalizeCandles(tc.Candles) {
		byTime[c.T] = c
	}
	bars := make([]VolumeBar, len(volumes))
	for i, p := range volumes {
		up := true
		if c, ok := byTime[p.T]; ok {
			up = c.Up()
		}
		bars[i] = VolumeBar{T: p.T, V: p.V, Up: up}
	}
	return VolumeSpec{Bars: bars}
}

// BuildGauge splits 100% into bullish, neutral and bearish slices. Each
// slice is clamped to 0..100.
func BuildGauge(s model.Sentiment) GaugeSpec {
	bullish := math.Min(100, math.Max(0, finite(s.BullishPercent)))
	bearish := math.Min(100, math.Max(0, finite(s.BearishPercent)))
	return GaugeSpec{
		Label:   fmt.Sprintf("%s • %.1f%% bullish", s.Label, finite(s.BullishPercent)),
		Bullish: bullish,
		Neutral: math.Max(0, 100-bullish-bearish),
		Bearish: bearish,
	}
}

// BuildMini builds an indicator sparkline. secondary may be nil.
func BuildMini(primary []float64, labels []string, secondary []float64) MiniSpec {
	return MiniSpec{
		Labels:    append([]string(nil), labels...),
		Primary:   append([]float64(nil), primary...),
		Secondary: append([]float64(nil), secondary...),
	}
}

// performanceWindow is how many recent RSI points the performance chart shows.
const performanceWindow = 7

// BuildPerformance takes the last seven RSI points and their percent change.
func BuildPerformance(rsi *model.Oscillator) PerformanceSpec {
	if rsi == nil {
		return PerformanceSpec{}
	}
	values := lastN(rsi.TrendData, performanceWindow)
	spec := PerformanceSpec{
		Labels: lastNStrings(rsi.TrendDates, performanceWindow),
		Values: values,
	}
	if len(values) >= 2 && values[0] != 0 {
		spec.Change = (values[len(values)-1] - values[0]) / values[0] * 100
		spec.HasChange = true
	}
	return spec
}

// BuildIntraday plots closes over the intraday timestamps.
func BuildIntraday(d model.IntradayData) LineSpec {
	points := series.Zip(d.Timestamps, d.Close)
	spec := LineSpec{Caption: "Intraday close"}
	for _, p := range points {
		spec.Labels = append(spec.Labels, time.UnixMilli(p.T).UTC().Format("15:04"))
		spec.Values = append(spec.Values, p.V)
	}
	return spec
}

func align(candles []series.Candle, line []series.Point) []float64 {
	out := gaps(len(candles))
	if len(line) == 0 {
		return out
	}
	byTime := make(map[int64]float64, len(line))
	for _, p := range line {
		byTime[p.T] = p.V
	}
	for i, c := range candles {
		if v, ok := byTime[c.T]; ok {
			out[i] = v
		}
	}
	return out
}

func allGaps(values []float64) bool {
	for _, v := range values {
		if !math.IsNaN(v) {
			return false
		}
	}
	return true
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func lastN(values []float64, n int) []float64 {
	if len(values) > n {
		values = values[len(values)-n:]
	}
	return append([]float64(nil), values...)
}

func lastNStrings(values []string, n int) []string {
	if len(values) > n {
		values = values[len(values)-n:]
	}
	return append([]string(nil), values...)
}

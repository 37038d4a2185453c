// Package chart turns dashboard data into chart specs and keeps at most one
// live chart instance per role.
package chart

import (
	"fmt"
	"math"

	"StockPulse/internal/series"
)

// Role names a chart slot on the dashboard.
type Role string

const (
	RoleMain        Role = "main"
	RoleTechnical   Role = "technical"
	RoleVolume      Role = "volume"
	RoleSentiment   Role = "sentiment"
	RoleRSI         Role = "rsi"
	RoleMACD        Role = "macd"
	RolePerformance Role = "performance"
	RoleIntraday    Role = "intraday"
)

// Canvas is the cell area a chart is drawn into.
type Canvas struct {
	Width  int
	Height int
}

// Spec is the data a renderer draws. An empty spec is never drawn.
type Spec interface {
	Empty() bool
}

// Instance is a drawn chart bound to one canvas.
type Instance interface {
	View() string
	Destroy()
}

// Renderer is the charting library. It may track instances on its own, the
// way a canvas-bound chart library does; Lookup exposes that bookkeeping.
type Renderer interface {
	Draw(role Role, canvas Canvas, spec Spec, theme Theme) (Instance, error)
	Lookup(role Role) Instance
}

// MainSpec is the actual/predicted price line. Gaps are NaN.
type MainSpec struct {
	Labels    []string
	Actual    []float64
	Predicted []float64
}

func (s MainSpec) Empty() bool { return len(s.Actual) == 0 && len(s.Predicted) == 0 }

// TechnicalSpec is a candlestick chart with optional SMA overlays aligned
// onto the candle timestamps.
type TechnicalSpec struct {
	Candles []series.Candle
	SMA20   []float64
	SMA50   []float64
}

func (s TechnicalSpec) Empty() bool { return len(s.Candles) == 0 }

// VolumeBar is one volume column.
type VolumeBar struct {
	T  int64
	V  float64
	Up bool
}

// VolumeSpec is the volume bar chart.
type VolumeSpec struct {
	Bars []VolumeBar
}

func (s VolumeSpec) Empty() bool { return len(s.Bars) == 0 }

// GaugeSpec is the sentiment half-doughnut: positive, neutral, negative.
type GaugeSpec struct {
	Label   string
	Bullish float64
	Neutral float64
	Bearish float64
}

func (s GaugeSpec) Empty() bool { return false }

// MiniSpec is a small axis-less trend line with an optional second line.
type MiniSpec struct {
	Labels    []string
	Primary   []float64
	Secondary []float64
}

func (s MiniSpec) Empty() bool { return len(s.Primary) == 0 }

// PerformanceSpec is the recent RSI trend with its percent change.
type PerformanceSpec struct {
	Labels    []string
	Values    []float64
	Change    float64
	HasChange bool
}

func (s PerformanceSpec) Empty() bool { return len(s.Values) == 0 }

// ChangeText renders the change as "+1.23%" or "--".
func (s PerformanceSpec) ChangeText() string {
	if !s.HasChange {
		return "--"
	}
	if s.Change >= 0 {
		return fmt.Sprintf("+%.2f%%", s.Change)
	}
	return fmt.Sprintf("%.2f%%", s.Change)
}

// LineSpec is a plain labelled line.
type LineSpec struct {
	Caption string
	Labels  []string
	Values  []float64
}

func (s LineSpec) Empty() bool { return len(s.Values) == 0 }

func gaps(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

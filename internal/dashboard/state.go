// Package dashboard owns the application state and applies fetch results,
// trade actions and theme changes to it. Every method is meant to run on
// the UI event loop.
package dashboard

import (
	"time"

	"StockPulse/internal/chart"
	"StockPulse/internal/model"
	"StockPulse/internal/trade"
)

// Range is the high/low of the recent sessions and where the price sits
// inside it.
type Range struct {
	Sessions int
	High     float64
	Low      float64
	Position float64 // 0..1
}

// State is everything the views render from.
type State struct {
	Ticker string
	Days   int

	Latest      *model.StockData
	Signal      *model.TradingSignal
	Position    *trade.Position
	Range       *Range
	Sentiment   *model.Sentiment
	Indicators  *model.Indicators
	Performance chart.PerformanceSpec
	News        []model.NewsArticle
	NewsLoading bool
	Intraday    *model.IntradayData
	IntradayErr string

	Err        string
	Loading    bool // full loading indicator
	Refreshing int  // stock fetches in flight
	Theme      chart.Theme

	CycleID   string // cycle of the applied stock response
	UpdatedAt time.Time
	Clock     time.Time
}

// DisplayName is the company name, falling back to the ticker.
func (s *State) DisplayName() string {
	if s.Latest != nil && s.Latest.CompanyName != "" {
		return s.Latest.CompanyName
	}
	return s.Ticker
}

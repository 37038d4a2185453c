package dashboard

import (
	"log"
	"time"

	"StockPulse/internal/calculator"
	"StockPulse/internal/chart"
	"StockPulse/internal/collector"
	"StockPulse/internal/notifier"
	"StockPulse/internal/recorder"
	"StockPulse/internal/trade"
)

// rangeSessions is the lookback of the high/low range stat.
const rangeSessions = 60

// Alerter receives signal change notices. Alert must not block.
type Alerter interface {
	Alert(text string)
}

// Coordinator applies events to State and keeps the trade tracker, chart
// registry and recorder in step with it.
type Coordinator struct {
	State    State
	Tracker  *trade.Tracker
	Charts   *chart.Registry
	Recorder recorder.Recorder
	Alerter  Alerter // optional
	Now      func() time.Time

	lastSignal map[string]string
}

// NewCoordinator creates a coordinator showing ticker over days.
func NewCoordinator(ticker string, days int, tracker *trade.Tracker, charts *chart.Registry, rec recorder.Recorder) *Coordinator {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Coordinator{
		State: State{
			Ticker: ticker,
			Days:   days,
			Theme:  charts.Theme(),
		},
		Tracker:    tracker,
		Charts:     charts,
		Recorder:   rec,
		Now:        time.Now,
		lastSignal: make(map[string]string),
	}
}

// Search selects a new ticker from user input. Blank input is ignored.
func (c *Coordinator) Search(raw string) (string, bool) {
	ticker := normalizeTicker(raw)
	if ticker == "" {
		return "", false
	}
	c.State.Ticker = ticker
	return ticker, true
}

// BeginFetch marks a stock fetch as started. A silent fetch leaves the
// current view in place instead of showing the loading indicator.
func (c *Coordinator) BeginFetch(silent bool) {
	c.State.Refreshing++
	if !silent {
		c.State.Loading = true
	}
	c.State.Err = ""
}

// endFetch always runs when a stock fetch resolves, whatever the outcome.
func (c *Coordinator) endFetch() {
	c.State.Loading = false
	if c.State.Refreshing > 0 {
		c.State.Refreshing--
	}
}

// CompleteStockFetch applies a stock fetch result. Responses are applied in
// arrival order, so a slow older response replaces a newer one. On success
// it returns the ticker whose secondary panels should be fetched next.
func (c *Coordinator) CompleteStockFetch(res collector.StockResult) (string, bool) {
	defer c.endFetch()

	if res.Err != nil {
		c.State.Err = collector.UserMessage(res.Err)
		c.record(c.Recorder.RecordFetchFailure(&recorder.FetchFailure{
			CycleID: res.CycleID,
			Ticker:  res.Ticker,
			Kind:    collector.Kind(res.Err),
			Message: res.Err.Error(),
		}))
		return "", false
	}

	data := res.Data
	ticker := data.Ticker
	if ticker == "" {
		ticker = res.Ticker
		data.Ticker = ticker
	}
	now := c.now()

	c.State.Latest = data
	c.State.Ticker = ticker
	c.State.CycleID = res.CycleID
	c.State.UpdatedAt = now

	sig := ComputeSignal(data.ProfitLossPercent)
	c.State.Signal = &sig
	// the sentiment panel is refetched for every new snapshot
	c.State.Sentiment = nil
	c.recomposeSignal()

	c.State.Position = nil
	if pos, ok := c.Tracker.Observe(ticker, data.CurrentPrice, data.PredictedPrice, now); ok {
		c.State.Position = &pos
		if pos.New {
			c.record(c.Recorder.RecordTradeEvent(&recorder.TradeEvent{Ticker: ticker, Action: "ENTRY", EntryPrice: pos.EntryPrice}))
		}
	}

	c.render(chart.RoleMain, chart.BuildMain(data.ChartData))
	technical := chart.BuildTechnical(data.TechnicalChart).WithDerivedAverages()
	c.render(chart.RoleTechnical, technical)
	c.render(chart.RoleVolume, chart.BuildVolume(data.TechnicalChart))

	c.State.Range = nil
	if high, low, err := calculator.RangeHighLow(technical.Candles, rangeSessions); err == nil {
		pos, _ := calculator.RangePosition(data.CurrentPrice, high, low)
		c.State.Range = &Range{Sessions: min(rangeSessions, len(technical.Candles)), High: high, Low: low, Position: pos}
	}

	c.notifySignal(ticker, data.CurrentPrice)
	c.record(c.Recorder.RecordQuote(&recorder.QuoteSnapshot{
		CycleID:           res.CycleID,
		Ticker:            ticker,
		CurrentPrice:      data.CurrentPrice,
		PredictedPrice:    data.PredictedPrice,
		DayChangePercent:  data.DayChangePercent,
		ProfitLossPercent: data.ProfitLossPercent,
		SignalLabel:       sig.Label,
		Silent:            res.Silent,
	}))
	return ticker, true
}

// BeginNews marks the news panel as loading.
func (c *Coordinator) BeginNews() {
	c.State.NewsLoading = true
}

// ApplyNews fills the news panel. Any failure shows the empty state.
func (c *Coordinator) ApplyNews(res collector.NewsResult) {
	c.State.NewsLoading = false
	if res.Err != nil || len(res.Articles) == 0 {
		c.State.News = nil
		return
	}
	c.State.News = prepareArticles(res.Articles)
}

// ApplySentiment draws the gauge and folds the sentiment into the signal
// message. A failed fetch leaves the panel without sentiment.
func (c *Coordinator) ApplySentiment(res collector.SentimentResult) {
	if res.Err != nil || res.Sentiment == nil {
		return
	}
	s := *res.Sentiment
	c.State.Sentiment = &s
	c.render(chart.RoleSentiment, chart.BuildGauge(s))
	c.recomposeSignal()
}

// ApplyIndicators draws the RSI and MACD minis and the performance chart.
// A failed fetch keeps the previous indicators.
func (c *Coordinator) ApplyIndicators(res collector.IndicatorsResult) {
	if res.Err != nil || res.Indicators == nil {
		return
	}
	ind := res.Indicators
	c.State.Indicators = ind
	if ind.RSI != nil {
		c.render(chart.RoleRSI, chart.BuildMini(ind.RSI.TrendData, ind.RSI.TrendDates, nil))
		c.State.Performance = chart.BuildPerformance(ind.RSI)
		c.render(chart.RolePerformance, c.State.Performance)
	}
	if ind.MACD != nil {
		c.render(chart.RoleMACD, chart.BuildMini(ind.MACD.TrendData, ind.MACD.TrendDates, ind.MACD.SignalData))
	}
}

// ApplyIntraday draws the intraday line.
func (c *Coordinator) ApplyIntraday(res collector.IntradayResult) {
	switch {
	case res.Err != nil:
		c.State.IntradayErr = collector.UserMessage(res.Err)
		return
	case res.Intraday == nil:
		c.State.IntradayErr = "Intraday data unavailable"
		return
	}
	c.State.Intraday = res.Intraday
	c.State.IntradayErr = ""
	c.render(chart.RoleIntraday, chart.BuildIntraday(*res.Intraday))
}

// ToggleTheme switches palettes and redraws every live chart without
// refetching.
func (c *Coordinator) ToggleTheme() {
	c.State.Theme = c.State.Theme.Toggle()
	if err := c.Charts.SetTheme(c.State.Theme); err != nil {
		log.Printf("[WARN] theme re-render: %v", err)
	}
	log.Printf("[INFO] theme switched to %s", c.State.Theme.Name)
}

// ClearTrade forgets the entry for ticker. It reports whether the
// displayed ticker was cleared and so needs a refetch to capture a new entry.
func (c *Coordinator) ClearTrade(ticker string) bool {
	ticker = normalizeTicker(ticker)
	if ticker == "" {
		return false
	}
	if err := c.Tracker.Clear(ticker); err != nil {
		log.Printf("[ERROR] clear trade %s: %v", ticker, err)
	}
	c.record(c.Recorder.RecordTradeEvent(&recorder.TradeEvent{Ticker: ticker, Action: "CLEAR"}))
	log.Printf("[INFO] trade cleared: %s", ticker)
	if ticker != c.State.Ticker {
		return false
	}
	c.State.Position = nil
	return true
}

// ClearAllTrades forgets every entry. It reports whether a refetch is needed.
func (c *Coordinator) ClearAllTrades() bool {
	if err := c.Tracker.ClearAll(); err != nil {
		log.Printf("[ERROR] clear all trades: %v", err)
	}
	c.record(c.Recorder.RecordTradeEvent(&recorder.TradeEvent{Action: "CLEAR_ALL"}))
	log.Println("[INFO] all trades cleared")
	c.State.Position = nil
	return c.State.Latest != nil
}

// Tick updates the header clock.
func (c *Coordinator) Tick(now time.Time) {
	c.State.Clock = now
}

// Teardown destroys every live chart.
func (c *Coordinator) Teardown() {
	c.Charts.DestroyAll()
	log.Println("[INFO] dashboard torn down")
}

func (c *Coordinator) recomposeSignal() {
	if c.State.Signal == nil {
		return
	}
	sig := *c.State.Signal
	sig.Message = ComposeMessage(sig.BaseMessage, c.State.Sentiment, sig.PredictedChangePercent)
	c.State.Signal = &sig
}

// notifySignal alerts when a ticker's badge differs from the last one seen.
func (c *Coordinator) notifySignal(ticker string, price float64) {
	sig := c.State.Signal
	prev, seen := c.lastSignal[ticker]
	c.lastSignal[ticker] = sig.Label
	if !seen || prev == sig.Label || c.Alerter == nil {
		return
	}
	log.Printf("[INFO] %s signal changed: %s -> %s", ticker, prev, sig.Label)
	c.Alerter.Alert(notifier.FormatSignalAlert(ticker, prev, *sig, price))
}

func (c *Coordinator) render(role chart.Role, spec chart.Spec) {
	if err := c.Charts.Render(role, spec); err != nil {
		log.Printf("[WARN] %v", err)
	}
}

func (c *Coordinator) record(err error) {
	if err != nil {
		log.Printf("[ERROR] record history: %v", err)
	}
}

func (c *Coordinator) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

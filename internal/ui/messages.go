package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"StockPulse/internal/collector"
)

// StockMsg delivers a finished stock fetch.
type StockMsg struct{ collector.StockResult }

type NewsMsg struct{ collector.NewsResult }

type SentimentMsg struct{ collector.SentimentResult }

type IndicatorsMsg struct{ collector.IndicatorsResult }

type IntradayMsg struct{ collector.IntradayResult }

// AutoRefreshMsg is posted by the scheduler for a silent refresh.
type AutoRefreshMsg struct{}

// ClockMsg is posted by the scheduler every second.
type ClockMsg time.Time

// CommandMsg carries a remote chat command. The reply is sent on Reply,
// which must be buffered.
type CommandMsg struct {
	Text  string
	Reply chan<- string
}

// fetchMsg starts a stock fetch from inside the event loop.
type fetchMsg struct{ silent bool }

func fetchCmd(silent bool) tea.Cmd {
	return func() tea.Msg { return fetchMsg{silent: silent} }
}

func stockCmd(col *collector.Collector, ticker string, days int, silent bool) tea.Cmd {
	return func() tea.Msg {
		return StockMsg{col.CollectStock(ticker, days, silent)}
	}
}

func newsCmd(col *collector.Collector, ticker string) tea.Cmd {
	return func() tea.Msg { return NewsMsg{col.CollectNews(ticker)} }
}

func sentimentCmd(col *collector.Collector, ticker string) tea.Cmd {
	return func() tea.Msg { return SentimentMsg{col.CollectSentiment(ticker)} }
}

func indicatorsCmd(col *collector.Collector, ticker string) tea.Cmd {
	return func() tea.Msg { return IndicatorsMsg{col.CollectIndicators(ticker)} }
}

func intradayCmd(col *collector.Collector, ticker string) tea.Cmd {
	return func() tea.Msg { return IntradayMsg{col.CollectIntraday(ticker)} }
}

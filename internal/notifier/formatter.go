package notifier

import (
	"fmt"
	"html"
	"strings"

	"StockPulse/internal/format"
	"StockPulse/internal/model"
	"StockPulse/internal/trade"
)

// FormatSignalAlert announces a trading signal change.
func FormatSignalAlert(ticker, previous string, sig model.TradingSignal, price float64) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔔 <b>%s</b> signal: %s → <b>%s</b>\n\n", html.EscapeString(ticker), html.EscapeString(previous), sig.Label))
	b.WriteString(fmt.Sprintf("Price: %s\n", format.Currency(price)))
	b.WriteString(fmt.Sprintf("Expected move: %s\n\n", format.Percent(sig.PredictedChangePercent)))
	b.WriteString(html.EscapeString(sig.Message))
	return b.String()
}

// FormatQuote summarises the latest snapshot and the tracked position.
func FormatQuote(data *model.StockData, sig *model.TradingSignal, pos *trade.Position) string {
	if data == nil {
		return "No data loaded yet."
	}
	var b strings.Builder
	name := data.CompanyName
	if name == "" {
		name = data.Ticker
	}
	b.WriteString(fmt.Sprintf("📊 <b>%s</b> (%s)\n\n", html.EscapeString(name), html.EscapeString(data.Ticker)))
	b.WriteString(fmt.Sprintf("Current: %s\n", format.Currency(data.CurrentPrice)))
	b.WriteString(fmt.Sprintf("Predicted: %s\n", format.Currency(data.PredictedPrice)))
	b.WriteString(fmt.Sprintf("Day change: %s\n", format.Change(data.DayChange, data.DayChangePercent)))
	b.WriteString(fmt.Sprintf("Volume: %s\n", format.Shares(data.Volume)))
	b.WriteString(fmt.Sprintf("Market cap: %s | P/E: %s\n", format.MarketCap(data.MarketCap), format.Ratio(data.PERatio)))
	if sig != nil {
		b.WriteString(fmt.Sprintf("Signal: <b>%s</b>\n", sig.Label))
	}
	if pos != nil {
		b.WriteString(fmt.Sprintf("\nEntry: %s (%s)\n", format.Currency(pos.EntryPrice), pos.EntryTime.Format("2006-01-02 15:04")))
		b.WriteString(fmt.Sprintf("P/L: %s (%s)\n", format.SignedCurrency(pos.ProfitLoss), format.Percent(pos.ProfitLossPercent)))
	}
	return b.String()
}

// FormatPositions lists every tracked entry.
func FormatPositions(records []trade.Record) string {
	if len(records) == 0 {
		return "No tracked trades."
	}
	var b strings.Builder
	b.WriteString("📦 <b>Tracked trades</b>\n\n")
	for _, r := range records {
		b.WriteString(fmt.Sprintf("%s: %s since %s\n", html.EscapeString(r.Ticker), format.Currency(r.EntryPrice), r.EntryTime.Format("2006-01-02 15:04")))
	}
	return b.String()
}

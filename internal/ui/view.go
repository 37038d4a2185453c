package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"StockPulse/internal/chart"
	"StockPulse/internal/dashboard"
	"StockPulse/internal/format"
	"StockPulse/internal/model"
	"StockPulse/internal/series"
)

const footerHelp = " / search  r refresh  t theme  c clear trade  C clear all  n news  1-5 tabs  q quit"

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	var b strings.Builder
	b.WriteString(m.renderHeader() + "\n")
	b.WriteString(m.renderTabs() + "\n")

	switch m.tab {
	case tabOverview:
		b.WriteString(m.renderOverview())
	case tabTechnical:
		b.WriteString(m.renderTechnical())
	case tabIndicators:
		b.WriteString(m.renderIndicators())
	case tabIntraday:
		b.WriteString(m.renderIntraday())
	case tabNews:
		b.WriteString(m.news.View())
	}
	b.WriteString("\n")

	if err := m.coord.State.Err; err != "" {
		b.WriteString(m.styles.errLine.Render(" " + err))
	}
	b.WriteString("\n")
	if m.searching {
		b.WriteString(m.search.View())
	} else {
		b.WriteString(m.styles.footer.Render(padOrTrunc(footerHelp, m.width)))
	}
	return b.String()
}

func (m Model) renderHeader() string {
	st := m.coord.State
	status := ""
	switch {
	case st.Loading:
		status = m.spinner.View() + " Loading..."
	case st.Refreshing > 0:
		status = m.spinner.View() + " Refreshing"
	case !st.UpdatedAt.IsZero():
		status = "Updated " + format.Clock(st.UpdatedAt)
	}
	clock := ""
	if !st.Clock.IsZero() {
		clock = format.Clock(st.Clock)
	}
	text := fmt.Sprintf(" StockPulse  %s · %s    %s    %s ", st.Ticker, st.DisplayName(), clock, status)
	return m.styles.header.Render(padOrTrunc(text, m.width))
}

func (m Model) renderTabs() string {
	parts := make([]string, tabCount)
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if tab(i) == m.tab {
			parts[i] = m.styles.activeTab.Render(label)
		} else {
			parts[i] = m.styles.tab.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderOverview() string {
	st := m.coord.State
	s := m.styles
	if st.Latest == nil {
		return s.dim.Render(" Waiting for data...")
	}
	d := st.Latest

	row := func(label, value string) string {
		return s.label.Render(fmt.Sprintf("%-14s", label)) + value
	}
	quote := []string{
		s.title.Render(st.DisplayName()),
		row("Price", s.value.Render(format.Currency(d.CurrentPrice))),
		row("Day change", s.signed(d.DayChange).Render(format.Change(d.DayChange, d.DayChangePercent))),
		row("Predicted", s.value.Render(format.Currency(d.PredictedPrice))),
		row("Expected P/L", s.signed(d.ProfitLoss).Render(format.Change(d.ProfitLoss, d.ProfitLossPercent))),
		row("Volume", s.value.Render(format.Compact(d.Volume))),
		row("Market cap", s.value.Render(format.MarketCap(d.MarketCap))),
		row("P/E", s.value.Render(format.Ratio(d.PERatio))),
	}
	if r := st.Range; r != nil {
		quote = append(quote, row(fmt.Sprintf("%d-day range", r.Sessions),
			s.value.Render(fmt.Sprintf("%s – %s (%.0f%%)", format.Currency(r.Low), format.Currency(r.High), r.Position*100))))
	}

	var trade []string
	trade = append(trade, s.title.Render("Trade tracker"))
	if p := st.Position; p != nil {
		trade = append(trade,
			row("Entry", s.value.Render(format.Currency(p.EntryPrice))),
			row("Since", s.dim.Render(p.EntryTime.Format("Jan 02 15:04"))),
			row("P/L", s.signed(p.ProfitLoss).Render(format.Change(p.ProfitLoss, p.ProfitLossPercent))),
			row("Projected", s.signed(p.ProjectedProfitLoss).Render(format.Change(p.ProjectedProfitLoss, p.ProjectedProfitLossPercent))),
		)
	} else {
		trade = append(trade, s.dim.Render("No entry recorded"))
	}
	if sig := st.Signal; sig != nil {
		badge, ok := s.badges[sig.Class]
		if !ok {
			badge = s.badges[model.ClassHold]
		}
		msgWidth := max(m.width/2-6, 20)
		trade = append(trade, "", badge.Render(sig.Label), lipgloss.NewStyle().Width(msgWidth).Render(sig.Message))
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		s.panel.Render(strings.Join(quote, "\n")),
		s.panel.Render(strings.Join(trade, "\n")))
	return top + "\n" + m.chartOr(chart.RoleMain, "No price history")
}

func (m Model) renderTechnical() string {
	s := m.styles
	if !m.coord.Charts.Live(chart.RoleTechnical) {
		return s.dim.Render(" No candlestick data available")
	}
	legend := lipgloss.NewStyle().Foreground(m.coord.State.Theme.SMA20).Render("── SMA 20") + "  " +
		lipgloss.NewStyle().Foreground(m.coord.State.Theme.SMA50).Render("── SMA 50")
	if d := m.coord.State.Latest; d != nil {
		if candles := series.NormalizeCandles(d.TechnicalChart.Candles); len(candles) > 0 {
			legend += s.dim.Render("    last session " + format.TooltipDate(candles[len(candles)-1].T))
		}
	}
	out := legend + "\n" + m.coord.Charts.View(chart.RoleTechnical)
	if v := m.coord.Charts.View(chart.RoleVolume); v != "" {
		out += "\n" + v
	}
	return out
}

func (m Model) renderIndicators() string {
	st := m.coord.State
	s := m.styles
	var left []string
	if ind := st.Indicators; ind != nil {
		if ind.RSI != nil {
			left = append(left, s.title.Render("RSI ")+s.value.Render(fmt.Sprintf("%.2f", ind.RSI.Value))+" "+s.dim.Render(ind.RSI.Signal),
				m.coord.Charts.View(chart.RoleRSI))
		}
		if ind.EMA != nil {
			left = append(left, s.title.Render("EMA 20 ")+s.value.Render(format.Currency(ind.EMA.Value))+" "+s.dim.Render(ind.EMA.Signal))
		}
		if ind.MACD != nil {
			left = append(left, s.title.Render("MACD ")+s.value.Render(fmt.Sprintf("%.2f", ind.MACD.Value))+" "+s.dim.Render(ind.MACD.Signal),
				m.coord.Charts.View(chart.RoleMACD))
		}
	} else {
		left = append(left, s.dim.Render("Indicators unavailable"))
	}

	right := []string{s.title.Render("News sentiment")}
	if st.Sentiment != nil {
		right = append(right, m.coord.Charts.View(chart.RoleSentiment))
	} else {
		right = append(right, s.dim.Render("Sentiment unavailable"))
	}
	right = append(right, "", s.title.Render("Performance ")+s.signed(st.Performance.Change).Render(st.Performance.ChangeText()),
		m.chartOr(chart.RolePerformance, "No RSI history"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.panel.Render(strings.Join(left, "\n")),
		s.panel.Render(strings.Join(right, "\n")))
}

func (m Model) renderIntraday() string {
	st := m.coord.State
	switch {
	case st.IntradayErr != "":
		return m.styles.errLine.Render(" " + st.IntradayErr)
	case st.Intraday == nil:
		return m.styles.dim.Render(" Loading intraday data...")
	}
	return m.chartOr(chart.RoleIntraday, "No intraday bars yet")
}

func (m Model) renderNews() string {
	st := m.coord.State
	s := m.styles
	if st.NewsLoading {
		return s.dim.Render("Loading news...")
	}
	if len(st.News) == 0 {
		return s.dim.Render(dashboard.NoNewsText)
	}
	now := m.now()
	var b strings.Builder
	for _, a := range st.News {
		b.WriteString(s.title.Render(a.Headline) + "\n")
		b.WriteString(s.dim.Render(a.Source+" · "+format.RelativeTime(a.Timestamp, now)) + "\n")
		b.WriteString(s.value.Render(a.Summary) + "\n")
		if a.URL != "" {
			b.WriteString(s.dim.Render(a.URL) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) chartOr(role chart.Role, empty string) string {
	if v := m.coord.Charts.View(role); v != "" {
		return v
	}
	return m.styles.dim.Render(" " + empty)
}

func padOrTrunc(s string, width int) string {
	if width <= 0 {
		return s
	}
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	r := []rune(s)
	if len(r) > width {
		return string(r[:width])
	}
	return s
}

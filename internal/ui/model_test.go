package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"StockPulse/internal/chart"
	"StockPulse/internal/collector"
	"StockPulse/internal/dashboard"
	"StockPulse/internal/model"
	"StockPulse/internal/trade"
)

var testNow = time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)

func testFetcher() *collector.MockFetcher {
	candles := make([]any, 25)
	for i := range candles {
		base := 100 + float64(i)
		candles[i] = map[string]any{"x": time.Date(2024, 4, 1+i, 0, 0, 0, 0, time.UTC).Format("2006-01-02"), "o": base, "h": base + 1, "l": base - 1, "c": base + 0.5}
	}
	return &collector.MockFetcher{
		Stock: &model.StockData{
			Success:           true,
			CompanyName:       "Apple Inc.",
			CurrentPrice:      150,
			PredictedPrice:    153,
			ProfitLoss:        3,
			ProfitLossPercent: 2,
			Volume:            52341000,
			ChartData: model.ChartData{
				Dates:        []string{"2024-05-08", "2024-05-09"},
				Prices:       []float64{148, 150},
				FutureDates:  []string{"2024-05-10"},
				FuturePrices: []float64{153},
			},
			TechnicalChart: model.TechnicalChart{Candles: candles},
		},
		News:      []model.NewsArticle{{Headline: "Apple rallies", Source: "Wire", Timestamp: float64(testNow.Add(-2 * time.Hour).Unix())}},
		Sentiment: &model.Sentiment{Label: "Bullish", BullishPercent: 60, BearishPercent: 20},
		Indicators: &model.Indicators{
			RSI:  &model.Oscillator{Value: 55, TrendData: []float64{50, 52, 55}, TrendDates: []string{"05/08", "05/09", "05/10"}},
			EMA:  &model.Level{Value: 149, Signal: "Bullish"},
			MACD: &model.Oscillator{Value: 1.2, TrendData: []float64{1, 1.2}, SignalData: []float64{0.9, 1}},
		},
		Intraday: &model.IntradayData{
			Success:    true,
			Timestamps: []any{"2024-05-10 09:30:00", "2024-05-10 09:35:00"},
			Close:      []float64{150, 151},
		},
	}
}

func newTestModel(t *testing.T, f *collector.MockFetcher) Model {
	t.Helper()
	charts := chart.NewRegistry(chart.NewTermRenderer(), chart.Dark)
	coord := dashboard.NewCoordinator("AAPL", 7, trade.NewTracker(trade.NewMemoryRepository()), charts, nil)
	coord.Now = func() time.Time { return testNow }
	m := New(coord, collector.NewCollector(f))
	m.now = func() time.Time { return testNow }
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model)
}

// drain runs cmd and feeds every resulting message back through Update,
// the way the program loop would. Spinner ticks are dropped.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case spinner.TickMsg, tea.QuitMsg, nil:
		default:
			next, more := m.Update(msg)
			m = next.(Model)
			queue = append(queue, more)
		}
	}
	return m
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	return drain(t, next.(Model), cmd)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitialFetchFillsPanels(t *testing.T) {
	f := testFetcher()
	m := newTestModel(t, f)
	m = drain(t, m, m.Init())

	st := m.coord.State
	if st.Latest == nil || st.Latest.Ticker != "AAPL" {
		t.Fatalf("latest = %+v", st.Latest)
	}
	if st.Loading || st.Refreshing != 0 {
		t.Errorf("loading=%v refreshing=%d", st.Loading, st.Refreshing)
	}
	if len(st.News) != 1 || st.Sentiment == nil || st.Indicators == nil {
		t.Errorf("panels news=%d sentiment=%v indicators=%v", len(st.News), st.Sentiment, st.Indicators)
	}
	if st.Intraday != nil {
		t.Error("intraday fetched before its tab was opened")
	}
	view := m.View()
	for _, want := range []string{"Apple Inc.", "$150.00", "BUY", "52.34M"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestIntradayTabIsLazy(t *testing.T) {
	m := newTestModel(t, testFetcher())
	m = drain(t, m, m.Init())
	if m.coord.Charts.Mounted(chart.RoleIntraday) {
		t.Fatal("intraday canvas mounted early")
	}

	m = send(t, m, key("4"))
	if m.tab != tabIntraday || !m.coord.Charts.Mounted(chart.RoleIntraday) {
		t.Fatalf("tab=%d mounted=%v", m.tab, m.coord.Charts.Mounted(chart.RoleIntraday))
	}
	if m.coord.State.Intraday == nil || !m.coord.Charts.Live(chart.RoleIntraday) {
		t.Error("intraday not fetched on first open")
	}

	// later snapshots refresh intraday too
	m.coord.State.Intraday = nil
	m = send(t, m, key("r"))
	if m.coord.State.Intraday == nil {
		t.Error("refresh skipped intraday after the tab was opened")
	}
}

func TestSearchSwitchesTicker(t *testing.T) {
	f := testFetcher()
	m := newTestModel(t, f)
	m = drain(t, m, m.Init())

	next, _ := m.Update(key("/"))
	m = next.(Model)
	if !m.searching {
		t.Fatal("search not opened")
	}
	next, _ = m.Update(key("msft"))
	m = send(t, next.(Model), key("enter"))

	if m.searching {
		t.Error("search still open")
	}
	if m.coord.State.Ticker != "MSFT" || m.coord.State.Latest.Ticker != "MSFT" {
		t.Errorf("ticker = %q / %q", m.coord.State.Ticker, m.coord.State.Latest.Ticker)
	}
	if f.StockCalls != 2 {
		t.Errorf("stock calls = %d", f.StockCalls)
	}
}

func TestBlankSearchIgnored(t *testing.T) {
	f := testFetcher()
	m := newTestModel(t, f)
	next, _ := m.Update(key("/"))
	next, _ = next.(Model).Update(key("   "))
	m = send(t, next.(Model), key("enter"))
	if m.coord.State.Ticker != "AAPL" || f.StockCalls != 0 {
		t.Errorf("ticker=%q calls=%d", m.coord.State.Ticker, f.StockCalls)
	}
}

func TestFetchErrorShownInView(t *testing.T) {
	f := testFetcher()
	f.Err = &collector.StatusError{Code: 500}
	m := newTestModel(t, f)
	m = drain(t, m, m.Init())

	if m.coord.State.Err != "HTTP 500: Internal Server Error" {
		t.Errorf("err = %q", m.coord.State.Err)
	}
	if m.coord.State.Loading {
		t.Error("loading left on after failure")
	}
	if !strings.Contains(m.View(), "HTTP 500") {
		t.Error("error line not rendered")
	}
}

func TestClearTradeRefetches(t *testing.T) {
	f := testFetcher()
	m := newTestModel(t, f)
	m = drain(t, m, m.Init())

	f.Stock.CurrentPrice = 160
	m = send(t, m, key("c"))
	if f.StockCalls != 2 {
		t.Fatalf("stock calls = %d", f.StockCalls)
	}
	if p := m.coord.State.Position; p == nil || p.EntryPrice != 160 {
		t.Errorf("position = %+v", p)
	}
}

func TestRemoteCommand(t *testing.T) {
	f := testFetcher()
	m := newTestModel(t, f)
	m = drain(t, m, m.Init())

	reply := make(chan string, 1)
	m = send(t, m, CommandMsg{Text: "/ticker tsla", Reply: reply})
	if got := <-reply; got != "Switching dashboard to TSLA." {
		t.Errorf("reply = %q", got)
	}
	if m.coord.State.Latest.Ticker != "TSLA" {
		t.Errorf("latest = %q", m.coord.State.Latest.Ticker)
	}
}

func TestAutoRefreshIsSilent(t *testing.T) {
	f := testFetcher()
	m := newTestModel(t, f)
	next, cmd := m.Update(AutoRefreshMsg{})
	m = next.(Model)
	next, _ = m.Update(cmd())
	m = next.(Model)
	if m.coord.State.Loading {
		t.Error("auto refresh showed the loading indicator")
	}
	if m.coord.State.Refreshing != 1 {
		t.Errorf("refreshing = %d", m.coord.State.Refreshing)
	}
}

func TestThemeToggleKeepsData(t *testing.T) {
	f := testFetcher()
	m := newTestModel(t, f)
	m = drain(t, m, m.Init())
	live := m.coord.Charts.LiveCount()

	m = send(t, m, key("t"))
	if m.coord.State.Theme.Name != "light" {
		t.Errorf("theme = %s", m.coord.State.Theme.Name)
	}
	if m.coord.Charts.LiveCount() != live || f.StockCalls != 1 {
		t.Errorf("live %d -> %d, calls %d", live, m.coord.Charts.LiveCount(), f.StockCalls)
	}
}

func TestNewsTabAndClock(t *testing.T) {
	m := newTestModel(t, testFetcher())
	m = drain(t, m, m.Init())
	m = send(t, m, ClockMsg(testNow))
	m = send(t, m, key("5"))

	view := m.View()
	for _, want := range []string{"Apple rallies", "Wire · 2h ago", "No summary available.", "02:30:00 PM"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestEmptyNewsShowsPlaceholder(t *testing.T) {
	f := testFetcher()
	f.News = nil
	m := newTestModel(t, f)
	m = drain(t, m, m.Init())
	m = send(t, m, key("tab"))
	m = send(t, m, key("5"))
	if !strings.Contains(m.View(), dashboard.NoNewsText) {
		t.Error("empty state missing")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, testFetcher())
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

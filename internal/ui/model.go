// Package ui is the bubbletea front end of the dashboard. Every state
// change goes through Update, so the coordinator needs no locking.
package ui

import (
	"log"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"StockPulse/internal/chart"
	"StockPulse/internal/collector"
	"StockPulse/internal/dashboard"
)

type tab int

const (
	tabOverview tab = iota
	tabTechnical
	tabIndicators
	tabIntraday
	tabNews
	tabCount
)

var tabNames = [tabCount]string{"Overview", "Technical", "Indicators", "Intraday", "News"}

// chrome is the rows taken by header, tabs, error line and footer.
const chrome = 5

// Model is the root bubbletea model.
type Model struct {
	coord     *dashboard.Coordinator
	collector *collector.Collector
	styles    styles

	tab             tab
	intradayMounted bool
	searching       bool
	search          textinput.Model
	spinner         spinner.Model
	news            viewport.Model

	width  int
	height int
	ready  bool
	now    func() time.Time
}

// New creates the model. The first stock fetch starts in Init.
func New(coord *dashboard.Coordinator, col *collector.Collector) Model {
	ti := textinput.New()
	ti.Placeholder = "Ticker (e.g. AAPL)"
	ti.CharLimit = 12
	ti.Prompt = "Search: "

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		coord:     coord,
		collector: col,
		styles:    newStyles(coord.State.Theme),
		search:    ti,
		spinner:   sp,
		now:       time.Now,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, fetchCmd(false))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		m.ready = true
		return m, nil

	case fetchMsg:
		m.coord.BeginFetch(msg.silent)
		st := m.coord.State
		return m, stockCmd(m.collector, st.Ticker, st.Days, msg.silent)

	case AutoRefreshMsg:
		return m, fetchCmd(true)

	case StockMsg:
		ticker, ok := m.coord.CompleteStockFetch(msg.StockResult)
		if !ok {
			return m, nil
		}
		m.coord.BeginNews()
		m.refreshNews()
		return m, m.panelCmds(ticker)

	case NewsMsg:
		m.coord.ApplyNews(msg.NewsResult)
		m.refreshNews()
		return m, nil

	case SentimentMsg:
		m.coord.ApplySentiment(msg.SentimentResult)
		return m, nil

	case IndicatorsMsg:
		m.coord.ApplyIndicators(msg.IndicatorsResult)
		return m, nil

	case IntradayMsg:
		m.coord.ApplyIntraday(msg.IntradayResult)
		return m, nil

	case ClockMsg:
		m.coord.Tick(time.Time(msg))
		return m, nil

	case CommandMsg:
		res := m.coord.HandleCommand(msg.Text)
		if msg.Reply != nil {
			select {
			case msg.Reply <- res.Reply:
			default:
				log.Printf("[WARN] reply to %q dropped", msg.Text)
			}
		}
		if res.Refetch {
			return m, fetchCmd(false)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/":
		m.searching = true
		m.search.SetValue("")
		return m, m.search.Focus()
	case "r":
		return m, fetchCmd(true)
	case "t":
		m.coord.ToggleTheme()
		m.styles = newStyles(m.coord.State.Theme)
		m.refreshNews()
		return m, nil
	case "c":
		if m.coord.ClearTrade(m.coord.State.Ticker) {
			return m, fetchCmd(false)
		}
		return m, nil
	case "C":
		if m.coord.ClearAllTrades() {
			return m, fetchCmd(false)
		}
		return m, nil
	case "n":
		m.coord.BeginNews()
		m.refreshNews()
		return m, newsCmd(m.collector, m.coord.State.Ticker)
	case "tab":
		return m.selectTab((m.tab + 1) % tabCount)
	case "shift+tab":
		return m.selectTab((m.tab + tabCount - 1) % tabCount)
	case "1", "2", "3", "4", "5":
		return m.selectTab(tab(msg.String()[0] - '1'))
	}

	if m.tab == tabNews {
		var cmd tea.Cmd
		m.news, cmd = m.news.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		ticker, ok := m.coord.Search(m.search.Value())
		if !ok {
			return m, nil
		}
		log.Printf("[INFO] ticker selected: %s", ticker)
		return m, fetchCmd(false)
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// selectTab switches tabs. The intraday canvas is mounted and fetched the
// first time its tab opens.
func (m Model) selectTab(t tab) (tea.Model, tea.Cmd) {
	m.tab = t
	if t != tabIntraday || m.intradayMounted {
		return m, nil
	}
	m.intradayMounted = true
	m.mountIntraday()
	if m.coord.State.Latest == nil {
		return m, nil
	}
	return m, intradayCmd(m.collector, m.coord.State.Ticker)
}

// panelCmds fetches the secondary panels after a stock snapshot.
func (m Model) panelCmds(ticker string) tea.Cmd {
	cmds := []tea.Cmd{
		newsCmd(m.collector, ticker),
		sentimentCmd(m.collector, ticker),
		indicatorsCmd(m.collector, ticker),
	}
	if m.intradayMounted {
		cmds = append(cmds, intradayCmd(m.collector, ticker))
	}
	return tea.Batch(cmds...)
}

// layout sizes the chart canvases and the news viewport to the window.
func (m *Model) layout() {
	body := max(m.height-chrome, 6)
	full := max(m.width-4, 20)
	half := max(full/2-2, 10)

	mounts := []struct {
		role chart.Role
		w, h int
	}{
		{chart.RoleMain, full, max(body-10, 6)},
		{chart.RoleTechnical, full, max(body*2/3, 6)},
		{chart.RoleVolume, full, max(body/3-2, 3)},
		{chart.RoleRSI, half, 1},
		{chart.RoleMACD, half, 1},
		{chart.RolePerformance, half, max(body/2-4, 4)},
		{chart.RoleSentiment, half, 3},
	}
	for _, mt := range mounts {
		if err := m.coord.Charts.Mount(mt.role, mt.w, mt.h); err != nil {
			log.Printf("[WARN] mount %s: %v", mt.role, err)
		}
	}
	if m.intradayMounted {
		m.mountIntraday()
	}

	if !m.ready {
		m.news = viewport.New(full, body)
		m.news.MouseWheelEnabled = true
	} else {
		m.news.Width, m.news.Height = full, body
	}
	m.refreshNews()
}

func (m *Model) mountIntraday() {
	body := max(m.height-chrome, 6)
	if err := m.coord.Charts.Mount(chart.RoleIntraday, max(m.width-4, 20), max(body-2, 6)); err != nil {
		log.Printf("[WARN] mount intraday: %v", err)
	}
}

func (m *Model) refreshNews() {
	m.news.SetContent(m.renderNews())
}

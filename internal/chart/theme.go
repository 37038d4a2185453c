package chart

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Theme is a palette. Panel colors are lipgloss colors; plot colors are the
// ANSI colors asciigraph understands.
type Theme struct {
	Name string

	Text          lipgloss.Color
	TextSecondary lipgloss.Color
	Border        lipgloss.Color
	Surface       lipgloss.Color
	Up            lipgloss.Color
	Down          lipgloss.Color
	Neutral       lipgloss.Color
	SMA20         lipgloss.Color
	SMA50         lipgloss.Color
	RSI           lipgloss.Color
	MACD          lipgloss.Color
	MACDSignal    lipgloss.Color

	PlotActual    asciigraph.AnsiColor
	PlotPredicted asciigraph.AnsiColor
	PlotLine      asciigraph.AnsiColor
	PlotAxis      asciigraph.AnsiColor
	PlotLabel     asciigraph.AnsiColor
}

var (
	Light = Theme{
		Name:          "light",
		Text:          lipgloss.Color("#1e293b"),
		TextSecondary: lipgloss.Color("#64748b"),
		Border:        lipgloss.Color("#e2e8f0"),
		Surface:       lipgloss.Color("#f8fafc"),
		Up:            lipgloss.Color("#1ec997"),
		Down:          lipgloss.Color("#f0524d"),
		Neutral:       lipgloss.Color("#2d6dfa"),
		SMA20:         lipgloss.Color("#2d6dfa"),
		SMA50:         lipgloss.Color("#f5a623"),
		RSI:           lipgloss.Color("#9C27B0"),
		MACD:          lipgloss.Color("#2196F3"),
		MACDSignal:    lipgloss.Color("#FF9800"),
		PlotActual:    asciigraph.DodgerBlue,
		PlotPredicted: asciigraph.MediumSeaGreen,
		PlotLine:      asciigraph.MediumSeaGreen,
		PlotAxis:      asciigraph.Gray,
		PlotLabel:     asciigraph.DarkGray,
	}
	Dark = Theme{
		Name:          "dark",
		Text:          lipgloss.Color("#e2e8f0"),
		TextSecondary: lipgloss.Color("#94a3b8"),
		Border:        lipgloss.Color("#334155"),
		Surface:       lipgloss.Color("#0f172a"),
		Up:            lipgloss.Color("#34d399"),
		Down:          lipgloss.Color("#f87171"),
		Neutral:       lipgloss.Color("#60a5fa"),
		SMA20:         lipgloss.Color("#60a5fa"),
		SMA50:         lipgloss.Color("#fbbf24"),
		RSI:           lipgloss.Color("#c084fc"),
		MACD:          lipgloss.Color("#38bdf8"),
		MACDSignal:    lipgloss.Color("#fb923c"),
		PlotActual:    asciigraph.DeepSkyBlue,
		PlotPredicted: asciigraph.SpringGreen,
		PlotLine:      asciigraph.SpringGreen,
		PlotAxis:      asciigraph.SlateGray,
		PlotLabel:     asciigraph.Silver,
	}
)

// ThemeByName resolves "light" or "dark".
func ThemeByName(name string) (Theme, bool) {
	switch name {
	case Light.Name:
		return Light, true
	case Dark.Name:
		return Dark, true
	}
	return Theme{}, false
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t.Name == Dark.Name {
		return Light
	}
	return Dark
}

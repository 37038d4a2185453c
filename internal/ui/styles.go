package ui

import (
	"github.com/charmbracelet/lipgloss"

	"StockPulse/internal/chart"
	"StockPulse/internal/model"
)

type styles struct {
	header    lipgloss.Style
	tab       lipgloss.Style
	activeTab lipgloss.Style
	panel     lipgloss.Style
	title     lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	dim       lipgloss.Style
	up        lipgloss.Style
	down      lipgloss.Style
	errLine   lipgloss.Style
	footer    lipgloss.Style
	badges    map[model.SignalClass]lipgloss.Style
}

func newStyles(th chart.Theme) styles {
	badge := func(bg lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#ffffff")).Background(bg)
	}
	return styles{
		header:    lipgloss.NewStyle().Bold(true).Foreground(th.Text).Background(th.Border),
		tab:       lipgloss.NewStyle().Padding(0, 1).Foreground(th.TextSecondary),
		activeTab: lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true).Foreground(th.Neutral),
		panel:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(th.Border).Padding(0, 1),
		title:     lipgloss.NewStyle().Bold(true).Foreground(th.Text),
		label:     lipgloss.NewStyle().Foreground(th.TextSecondary),
		value:     lipgloss.NewStyle().Foreground(th.Text),
		dim:       lipgloss.NewStyle().Foreground(th.TextSecondary),
		up:        lipgloss.NewStyle().Foreground(th.Up),
		down:      lipgloss.NewStyle().Foreground(th.Down),
		errLine:   lipgloss.NewStyle().Bold(true).Foreground(th.Down),
		footer:    lipgloss.NewStyle().Foreground(th.TextSecondary),
		badges: map[model.SignalClass]lipgloss.Style{
			model.ClassStrongBuy: badge(th.Up),
			model.ClassBuy:       badge(th.Up),
			model.ClassHold:      badge(th.Neutral),
			model.ClassSell:      badge(th.Down),
		},
	}
}

// signed picks the up or down style by sign.
func (s styles) signed(v float64) lipgloss.Style {
	if v < 0 {
		return s.down
	}
	return s.up
}

package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"StockPulse/internal/format"
)

// TermRenderer draws charts as terminal text. Line charts go through
// asciigraph; candles, bars and the gauge are drawn cell by cell.
type TermRenderer struct {
	live map[Role]*termInstance
}

// NewTermRenderer creates a renderer with no instances.
func NewTermRenderer() *TermRenderer {
	return &TermRenderer{live: make(map[Role]*termInstance)}
}

type termInstance struct {
	owner *TermRenderer
	role  Role
	view  string
}

func (i *termInstance) View() string { return i.view }

func (i *termInstance) Destroy() {
	if i.owner == nil {
		return
	}
	if cur, ok := i.owner.live[i.role]; ok && cur == i {
		delete(i.owner.live, i.role)
	}
	i.owner = nil
	i.view = ""
}

// Draw renders spec onto the role's canvas. A canvas holds one chart at a
// time, so the previous instance must be destroyed first.
func (r *TermRenderer) Draw(role Role, canvas Canvas, spec Spec, theme Theme) (Instance, error) {
	if _, busy := r.live[role]; busy {
		return nil, fmt.Errorf("canvas %q already in use", role)
	}
	if canvas.Width <= 0 || canvas.Height <= 0 {
		return nil, fmt.Errorf("canvas %q has no area", role)
	}

	var view string
	switch s := spec.(type) {
	case MainSpec:
		view = drawMain(s, canvas, theme)
	case TechnicalSpec:
		view = drawCandles(s, canvas, theme)
	case VolumeSpec:
		view = drawVolume(s, canvas, theme)
	case GaugeSpec:
		view = drawGauge(s, canvas, theme)
	case MiniSpec:
		view = drawMini(role, s, canvas, theme)
	case PerformanceSpec:
		view = drawLine(s.Values, s.Labels, "RSI 7 sessions  "+s.ChangeText(), canvas, theme)
	case LineSpec:
		view = drawLine(s.Values, s.Labels, s.Caption, canvas, theme)
	default:
		return nil, fmt.Errorf("unsupported spec %T", spec)
	}

	inst := &termInstance{owner: r, role: role, view: view}
	r.live[role] = inst
	return inst, nil
}

// Lookup returns the instance currently drawn on role's canvas.
func (r *TermRenderer) Lookup(role Role) Instance {
	if inst, ok := r.live[role]; ok {
		return inst
	}
	return nil
}

const axisWidth = 10

func plotHeight(c Canvas) int {
	return max(c.Height-2, 2)
}

func plotWidth(c Canvas) int {
	return max(c.Width-axisWidth, 4)
}

func drawMain(s MainSpec, c Canvas, th Theme) string {
	n := plotWidth(c)
	actual := tail(s.Actual, n)
	predicted := tail(s.Predicted, n)
	labels := tailStrings(s.Labels, n)

	data := [][]float64{actual}
	colors := []asciigraph.AnsiColor{th.PlotActual}
	if !allGaps(predicted) {
		data = append(data, predicted)
		colors = append(colors, th.PlotPredicted)
	}
	if allGaps(actual) {
		data, colors = data[1:], colors[1:]
	}
	if len(data) == 0 {
		return ""
	}
	plot := asciigraph.PlotMany(data,
		asciigraph.Height(plotHeight(c)),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(colors...),
		asciigraph.AxisColor(th.PlotAxis),
		asciigraph.LabelColor(th.PlotLabel),
	)
	legend := lipgloss.NewStyle().Foreground(plotColor(th.PlotActual)).Render("━ Actual") + "  " +
		lipgloss.NewStyle().Foreground(plotColor(th.PlotPredicted)).Render("┅ Predicted")
	return lipgloss.JoinVertical(lipgloss.Left, plot, labelRow(labels, th), legend)
}

// plotColor converts an asciigraph color, an xterm-256 index, to lipgloss.
func plotColor(c asciigraph.AnsiColor) lipgloss.Color {
	return lipgloss.Color(strconv.Itoa(int(c)))
}

func drawLine(values []float64, labels []string, caption string, c Canvas, th Theme) string {
	n := plotWidth(c)
	values = tail(values, n)
	if allGaps(values) {
		return ""
	}
	plot := asciigraph.Plot(values,
		asciigraph.Height(plotHeight(c)),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(th.PlotLine),
		asciigraph.AxisColor(th.PlotAxis),
		asciigraph.LabelColor(th.PlotLabel),
		asciigraph.Caption(caption),
	)
	return lipgloss.JoinVertical(lipgloss.Left, plot, labelRow(tailStrings(labels, n), th))
}

// labelRow prints the first and last x labels under a plot.
func labelRow(labels []string, th Theme) string {
	if len(labels) == 0 {
		return ""
	}
	style := lipgloss.NewStyle().Foreground(th.TextSecondary)
	first, last := labels[0], labels[len(labels)-1]
	if len(labels) == 1 {
		return strings.Repeat(" ", axisWidth) + style.Render(first)
	}
	return strings.Repeat(" ", axisWidth) + style.Render(first+" … "+last)
}

func drawCandles(s TechnicalSpec, c Canvas, th Theme) string {
	n := plotWidth(c)
	candles := s.Candles
	sma20, sma50 := s.SMA20, s.SMA50
	if len(candles) > n {
		off := len(candles) - n
		candles = candles[off:]
		sma20 = tail(sma20, n)
		sma50 = tail(sma50, n)
	}
	rows := plotHeight(c)

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, k := range candles {
		lo = math.Min(lo, k.Low)
		hi = math.Max(hi, k.High)
	}
	for _, v := range append(append([]float64(nil), sma20...), sma50...) {
		if !math.IsNaN(v) {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if hi == lo {
		hi = lo + 1
	}
	row := func(v float64) int {
		return int(math.Round((hi - v) / (hi - lo) * float64(rows-1)))
	}

	up := lipgloss.NewStyle().Foreground(th.Up)
	down := lipgloss.NewStyle().Foreground(th.Down)
	ma20 := lipgloss.NewStyle().Foreground(th.SMA20)
	ma50 := lipgloss.NewStyle().Foreground(th.SMA50)
	axis := lipgloss.NewStyle().Foreground(th.TextSecondary)

	var b strings.Builder
	for y := 0; y < rows; y++ {
		price := hi - (hi-lo)*float64(y)/float64(rows-1)
		b.WriteString(axis.Render(fmt.Sprintf("%9.2f┤", price)))
		for x, k := range candles {
			style := up
			if !k.Up() {
				style = down
			}
			top, bottom := row(math.Max(k.Open, k.Close)), row(math.Min(k.Open, k.Close))
			switch {
			case y >= top && y <= bottom:
				b.WriteString(style.Render("┃"))
			case y >= row(k.High) && y <= row(k.Low):
				b.WriteString(style.Render("│"))
			case x < len(sma20) && !math.IsNaN(sma20[x]) && row(sma20[x]) == y:
				b.WriteString(ma20.Render("·"))
			case x < len(sma50) && !math.IsNaN(sma50[x]) && row(sma50[x]) == y:
				b.WriteString(ma50.Render("·"))
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	first := format.TooltipDate(candles[0].T)
	last := format.TooltipDate(candles[len(candles)-1].T)
	b.WriteString(strings.Repeat(" ", axisWidth) + axis.Render(first+" … "+last) + "\n")
	b.WriteString(ma20.Render("· SMA 20") + "  " + ma50.Render("· SMA 50"))
	return b.String()
}

var blocks = []rune(" ▁▂▃▄▅▆▇█")

func drawVolume(s VolumeSpec, c Canvas, th Theme) string {
	n := plotWidth(c)
	bars := s.Bars
	if len(bars) > n {
		bars = bars[len(bars)-n:]
	}
	rows := plotHeight(c)
	peak := 0.0
	for _, bar := range bars {
		peak = math.Max(peak, bar.V)
	}
	if peak == 0 {
		peak = 1
	}
	up := lipgloss.NewStyle().Foreground(th.Up)
	down := lipgloss.NewStyle().Foreground(th.Down)
	axis := lipgloss.NewStyle().Foreground(th.TextSecondary)

	var b strings.Builder
	for y := 0; y < rows; y++ {
		label := strings.Repeat(" ", axisWidth-1)
		if y == 0 {
			label = fmt.Sprintf("%9s", format.Compact(peak))
		}
		b.WriteString(axis.Render(label + "┤"))
		// eighths of a row filled above the baseline for this row
		floor := float64(rows-1-y) * 8
		for _, bar := range bars {
			filled := bar.V / peak * float64(rows) * 8
			level := int(math.Max(0, math.Min(8, filled-floor)))
			style := up
			if !bar.Up {
				style = down
			}
			b.WriteString(style.Render(string(blocks[level])))
		}
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat(" ", axisWidth) + axis.Render(
		format.TooltipDate(bars[0].T)+" … "+format.TooltipDate(bars[len(bars)-1].T)))
	return b.String()
}

func drawGauge(s GaugeSpec, c Canvas, th Theme) string {
	width := max(c.Width-2, 10)
	cells := func(pct float64) int { return int(math.Round(pct / 100 * float64(width))) }
	pos := min(max(cells(s.Bullish), 0), width)
	neg := min(max(cells(s.Bearish), 0), width-pos)
	neu := max(width-pos-neg, 0)

	positive := lipgloss.NewStyle().Foreground(th.Up)
	neutral := lipgloss.NewStyle().Foreground(th.Neutral)
	negative := lipgloss.NewStyle().Foreground(th.Down)

	bar := positive.Render(strings.Repeat("█", pos)) +
		neutral.Render(strings.Repeat("█", neu)) +
		negative.Render(strings.Repeat("█", neg))
	legend := fmt.Sprintf("%s  %s  %s",
		positive.Render(fmt.Sprintf("Positive %.1f%%", s.Bullish)),
		neutral.Render(fmt.Sprintf("Neutral %.1f%%", s.Neutral)),
		negative.Render(fmt.Sprintf("Negative %.1f%%", s.Bearish)))
	label := lipgloss.NewStyle().Foreground(th.Text).Bold(true).Render(s.Label)
	return lipgloss.JoinVertical(lipgloss.Left, label, bar, legend)
}

// drawMini draws axis-less sparklines, one row per line.
func drawMini(role Role, s MiniSpec, c Canvas, th Theme) string {
	color := th.RSI
	if role == RoleMACD {
		color = th.MACD
	}
	n := max(c.Width, 4)
	lines := []string{lipgloss.NewStyle().Foreground(color).Render(sparkline(tail(s.Primary, n)))}
	if len(s.Secondary) > 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(th.MACDSignal).Render(sparkline(tail(s.Secondary, n))))
	}
	return strings.Join(lines, "\n")
}

func sparkline(values []float64) string {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	var b strings.Builder
	for _, v := range values {
		if math.IsNaN(v) {
			b.WriteByte(' ')
			continue
		}
		level := 4
		if hi > lo {
			level = 1 + int(math.Round((v-lo)/(hi-lo)*7))
		}
		b.WriteRune(blocks[level])
	}
	return b.String()
}

func tail(values []float64, n int) []float64 {
	if len(values) > n {
		return values[len(values)-n:]
	}
	return values
}

func tailStrings(values []string, n int) []string {
	if len(values) > n {
		return values[len(values)-n:]
	}
	return values
}

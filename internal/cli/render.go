package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Flexoki Dark)
var (
	ColorBg        = lipgloss.Color("#100F0F")
	ColorSurface   = lipgloss.Color("#1C1B1A")
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorBlue      = lipgloss.Color("#4385BE")
	ColorPurple    = lipgloss.Color("#8B7EC8")
	ColorYellow    = lipgloss.Color("#D0A215")
)

// SeriesColors cycle through portion bar segments.
var SeriesColors = []lipgloss.Color{ColorAccent, ColorBlue, ColorPurple, ColorYellow, ColorOrange, ColorGreen, ColorRed}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
// A row holding the single cell "---" renders as a separator.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
	// LeftCols is how many leading columns are left-aligned; the rest are
	// numeric and right-aligned. Zero means one.
	LeftCols int
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	leftCols := t.LeftCols
	if leftCols <= 0 {
		leftCols = 1
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		for i, h := range t.Headers {
			widths[i] = max(widths[i], lipgloss.Width(h))
		}
		for _, row := range t.Rows {
			if isSeparator(row) {
				continue
			}
			for i, cell := range row {
				if i < numCols {
					widths[i] = max(widths[i], lipgloss.Width(cell))
				}
			}
		}
	}

	rule := func(left, mid, right string) string {
		var b strings.Builder
		b.WriteString(left)
		for i, w := range widths {
			b.WriteString(strings.Repeat("─", w+2))
			if i < numCols-1 {
				b.WriteString(mid)
			}
		}
		b.WriteString(right)
		return dimStyle.Render(b.String()) + "\n"
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	b.WriteString(rule("╭", "┬", "╮"))

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(" " + pad(h, widths[i], i < leftCols) + " "))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		b.WriteString(rule("├", "┼", "┤"))
	}

	for _, row := range t.Rows {
		if isSeparator(row) {
			b.WriteString(rule("├", "┼", "┤"))
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(valueStyle.Render(" " + pad(cell, widths[i], i < leftCols) + " "))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	b.WriteString(rule("╰", "┴", "╯"))
	return b.String()
}

func isSeparator(row []string) bool {
	return len(row) == 1 && row[0] == "---"
}

// pad fits s to w display cells, truncating with an ellipsis when too long.
func pad(s string, w int, left bool) string {
	sw := lipgloss.Width(s)
	if sw > w {
		r := []rune(s)
		for len(r) > 0 && lipgloss.Width(string(r))+1 > w {
			r = r[:len(r)-1]
		}
		s = string(r) + "…"
		sw = lipgloss.Width(s)
	}
	gap := strings.Repeat(" ", max(0, w-sw))
	if left {
		return s + gap
	}
	return gap + s
}

// RenderSparkline generates a unicode block sparkline from a series of values.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		idx = max(0, min(idx, len(blocks)-1))
		b.WriteRune(blocks[idx])
	}

	return b.String()
}

// RenderHorizontalBar renders a horizontal bar sized relative to maxValue.
func RenderHorizontalBar(value, maxValue float64, maxWidth int) string {
	if maxValue <= 0 || maxWidth <= 0 {
		return ""
	}
	barLen := max(0, min(maxWidth, int(value/maxValue*float64(maxWidth))))
	bar := strings.Repeat("█", barLen)
	return lipgloss.NewStyle().Foreground(ColorAccent).Render(bar) +
		dimStyle.Render(strings.Repeat("░", maxWidth-barLen))
}

// PortionWidths splits width cells between shares (0-1, summing to at most 1).
// The last non-zero share absorbs rounding so a full set of shares fills the bar.
func PortionWidths(shares []float64, width int) []int {
	widths := make([]int, len(shares))
	used := 0
	for i, s := range shares {
		n := int(s*float64(width) + 0.5)
		if i == len(shares)-1 && s > 0 {
			n = width - used
		}
		n = max(0, min(n, width-used))
		widths[i] = n
		used += n
	}
	return widths
}

// RenderPortionBar renders shares as one stacked bar of width cells, one
// color per share. An all-zero input renders empty.
func RenderPortionBar(shares []float64, width int, colors []lipgloss.Color) string {
	if width <= 0 {
		return ""
	}
	if len(colors) == 0 {
		colors = SeriesColors
	}

	var b strings.Builder
	used := 0
	for i, n := range PortionWidths(shares, width) {
		if n == 0 {
			continue
		}
		style := lipgloss.NewStyle().Foreground(colors[i%len(colors)])
		b.WriteString(style.Render(strings.Repeat("█", n)))
		used += n
	}
	if used < width {
		b.WriteString(dimStyle.Render(strings.Repeat("░", width-used)))
	}
	return b.String()
}

// RenderSwatch renders the legend block for portion bar segment i.
func RenderSwatch(i int) string {
	c := SeriesColors[i%len(SeriesColors)]
	return lipgloss.NewStyle().Foreground(c).Render("█")
}

// CurvePalette colors each plot cell kind.
type CurvePalette struct {
	Curve      lipgloss.Color
	Forecast   lipgloss.Color
	Marker     lipgloss.Color
	Axis       lipgloss.Color
	Label      lipgloss.Color
	// Background fills every cell when set, for drawing inside TUI cards.
	Background lipgloss.Color
}

// DefaultCurvePalette uses the CLI colors.
var DefaultCurvePalette = CurvePalette{
	Curve:    ColorAccent,
	Forecast: ColorOrange,
	Marker:   ColorPurple,
	Axis:     ColorTextDim,
	Label:    ColorTextMuted,
}

// CurveChart describes a labeled balance curve.
type CurveChart struct {
	Plot    Plot
	YTop    string // label for y = 1 (the peak balance)
	YBottom string
	XStart  string
	XEnd    string
	Markers []Marker
}

// RenderCurve draws a rasterized curve with a y-axis gutter and an x-axis
// label row. Marker labels are placed under their column.
func RenderCurve(c CurveChart, pal CurvePalette) string {
	p := c.Plot
	gutter := max(lipgloss.Width(c.YTop), lipgloss.Width(c.YBottom))

	base := lipgloss.NewStyle()
	if pal.Background != "" {
		base = base.Background(pal.Background)
	}
	styles := map[CellKind]lipgloss.Style{
		CellEmpty:    base,
		CellCurve:    base.Foreground(pal.Curve),
		CellForecast: base.Foreground(pal.Forecast),
		CellMarker:   base.Foreground(pal.Marker),
		CellZero:     base.Foreground(pal.Axis),
	}
	labelStyle := base.Foreground(pal.Label)
	axisStyle := base.Foreground(pal.Axis)

	var b strings.Builder
	for r := 0; r < p.Height; r++ {
		label := ""
		switch r {
		case 0:
			label = c.YTop
		case p.Height - 1:
			label = c.YBottom
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%*s", gutter, label)))
		b.WriteString(axisStyle.Render(" ┤"))

		// Batch runs of the same kind into one styled span.
		for col := 0; col < p.Width; {
			k := p.Kinds[r][col]
			end := col
			for end < p.Width && p.Kinds[r][end] == k {
				end++
			}
			b.WriteString(styles[k].Render(string(p.Runes[r][col:end])))
			col = end
		}
		b.WriteString("\n")
	}

	// X labels: start, markers, end.
	axis := []rune(strings.Repeat(" ", p.Width))
	place := func(at int, s string) {
		rs := []rune(s)
		at = max(0, min(at, p.Width-len(rs)))
		for i, ch := range rs {
			if at+i < len(axis) {
				axis[at+i] = ch
			}
		}
	}
	place(0, c.XStart)
	place(p.Width-len([]rune(c.XEnd)), c.XEnd)
	for _, m := range c.Markers {
		if col := p.col(m.X); col >= 0 && m.Label != "" {
			place(col-len([]rune(m.Label))/2, m.Label)
		}
	}
	b.WriteString(base.Render(strings.Repeat(" ", gutter+2)))
	b.WriteString(labelStyle.Render(string(axis)))
	b.WriteString("\n")

	return b.String()
}

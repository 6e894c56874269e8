package cli

import (
	"math"

	"github.com/theirongolddev/dinebal/internal/projection"
)

// CellKind classifies what a plot cell shows.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellCurve
	CellForecast
	CellMarker
	CellZero
)

// Marker is a labeled vertical line at a window fraction, such as "today".
type Marker struct {
	X     float64
	Label string
}

// Plot is a rasterized balance curve. Row 0 is the top (y = 1).
type Plot struct {
	Width  int
	Height int
	Kinds  [][]CellKind
	Runes  [][]rune
}

// PlotCurve rasterizes normalized points, an optional forecast line and
// markers into a width x height grid. Points outside [0,1] are clipped.
func PlotCurve(points []projection.Point, fc *projection.Forecast, markers []Marker, width, height int) Plot {
	if width < 2 {
		width = 2
	}
	if height < 2 {
		height = 2
	}

	p := Plot{Width: width, Height: height}
	p.Kinds = make([][]CellKind, height)
	p.Runes = make([][]rune, height)
	for r := range p.Kinds {
		p.Kinds[r] = make([]CellKind, width)
		p.Runes[r] = make([]rune, width)
		for c := range p.Runes[r] {
			p.Runes[r][c] = ' '
		}
	}

	// Baseline first so everything else draws over it.
	for c := 0; c < width; c++ {
		p.set(height-1, c, CellZero, '─')
	}

	for _, m := range markers {
		c := p.col(m.X)
		if c < 0 {
			continue
		}
		for r := 0; r < height; r++ {
			p.set(r, c, CellMarker, '┊')
		}
	}

	if fc != nil {
		end := math.Min(fc.ZeroX, 1)
		for c := 0; c < width; c++ {
			x := p.x(c)
			if x < fc.Anchor.X || x > end {
				continue
			}
			// Dotted: skip every other column.
			if (c-p.col(math.Max(fc.Anchor.X, 0)))%2 == 1 {
				continue
			}
			p.set(p.row(fc.YAt(x)), c, CellForecast, '·')
		}
	}

	if len(points) > 0 {
		prevRow := -1
		for c := 0; c < width; c++ {
			y, ok := interpolate(points, p.x(c))
			if !ok {
				prevRow = -1
				continue
			}
			r := p.row(y)
			if prevRow >= 0 && prevRow != r {
				lo, hi := prevRow, r
				if lo > hi {
					lo, hi = hi, lo
				}
				for rr := lo + 1; rr < hi; rr++ {
					p.set(rr, c, CellCurve, '│')
				}
			}
			p.set(r, c, CellCurve, '•')
			prevRow = r
		}
		// A single observation falls between columns; show it as one dot.
		if len(points) == 1 {
			p.set(p.row(points[0].Y), p.col(points[0].X), CellCurve, '•')
		}
	}

	return p
}

func (p Plot) set(r, c int, k CellKind, ch rune) {
	if r < 0 || r >= p.Height || c < 0 || c >= p.Width {
		return
	}
	p.Kinds[r][c] = k
	p.Runes[r][c] = ch
}

// x is the window fraction at the center of column c.
func (p Plot) x(c int) float64 {
	return float64(c) / float64(p.Width-1)
}

// col maps a window fraction to a column, or -1 when it is off the plot.
func (p Plot) col(x float64) int {
	if x < 0 || x > 1 {
		return -1
	}
	return int(math.Round(x * float64(p.Width-1)))
}

func (p Plot) row(y float64) int {
	y = math.Max(0, math.Min(1, y))
	return int(math.Round((1 - y) * float64(p.Height-1)))
}

// interpolate evaluates the piecewise-linear curve through sorted points at x.
// It reports false outside the observed span.
func interpolate(points []projection.Point, x float64) (float64, bool) {
	first, last := points[0], points[len(points)-1]
	if x < first.X || x > last.X {
		return 0, false
	}
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		if x > b.X {
			continue
		}
		if b.X == a.X {
			return b.Y, true
		}
		t := (x - a.X) / (b.X - a.X)
		return a.Y + t*(b.Y-a.Y), true
	}
	return last.Y, true
}

// String renders the plot without color.
func (p Plot) String() string {
	out := make([]rune, 0, (p.Width+1)*p.Height)
	for r := 0; r < p.Height; r++ {
		out = append(out, p.Runes[r]...)
		if r < p.Height-1 {
			out = append(out, '\n')
		}
	}
	return string(out)
}

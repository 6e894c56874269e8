package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/dinebal/internal/projection"
)

func countKind(p Plot, k CellKind) int {
	n := 0
	for _, row := range p.Kinds {
		for _, c := range row {
			if c == k {
				n++
			}
		}
	}
	return n
}

func TestPlotCurve_Dimensions(t *testing.T) {
	p := PlotCurve(nil, nil, nil, 20, 5)
	if p.Width != 20 || p.Height != 5 {
		t.Fatalf("plot = %dx%d, want 20x5", p.Width, p.Height)
	}
	lines := strings.Split(p.String(), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}
	if countKind(p, CellZero) != 20 {
		t.Fatalf("baseline cells = %d, want 20", countKind(p, CellZero))
	}
}

func TestPlotCurve_CurveAndForecast(t *testing.T) {
	points := []projection.Point{{X: 0, Y: 1}, {X: 0.5, Y: 0.5}}
	fc := &projection.Forecast{Anchor: points[1], Slope: -1, ZeroX: 1}

	p := PlotCurve(points, fc, nil, 21, 11)

	// First column holds the peak at the top row.
	if p.Kinds[0][0] != CellCurve {
		t.Fatalf("top-left = %v, want curve", p.Kinds[0][0])
	}
	// Column 10 is x = 0.5, y = 0.5, which is row 5.
	if p.Kinds[5][10] != CellCurve {
		t.Fatalf("anchor cell = %v, want curve", p.Kinds[5][10])
	}
	if countKind(p, CellForecast) == 0 {
		t.Fatal("expected forecast cells")
	}
	// Nothing of the curve past the anchor.
	for r := 0; r < p.Height; r++ {
		for c := 11; c < p.Width; c++ {
			if p.Kinds[r][c] == CellCurve {
				t.Fatalf("curve cell at (%d,%d) beyond last observation", r, c)
			}
		}
	}
}

func TestPlotCurve_ClipsOutsideWindow(t *testing.T) {
	points := []projection.Point{{X: -0.5, Y: 1}, {X: 1.5, Y: 0}}
	p := PlotCurve(points, nil, []Marker{{X: 2, Label: "off"}}, 10, 4)

	if countKind(p, CellMarker) != 0 {
		t.Fatal("marker outside the window was drawn")
	}
	// The line crosses the whole window, so every column has a curve cell.
	for c := 0; c < p.Width; c++ {
		found := false
		for r := 0; r < p.Height; r++ {
			if p.Kinds[r][c] == CellCurve {
				found = true
			}
		}
		if !found {
			t.Fatalf("column %d has no curve cell", c)
		}
	}
}

func TestPlotCurve_SinglePoint(t *testing.T) {
	p := PlotCurve([]projection.Point{{X: 0.33, Y: 1}}, nil, nil, 10, 4)
	if countKind(p, CellCurve) != 1 {
		t.Fatalf("curve cells = %d, want 1", countKind(p, CellCurve))
	}
}

func TestRenderCurve_Labels(t *testing.T) {
	p := PlotCurve([]projection.Point{{X: 0, Y: 1}, {X: 1, Y: 0}}, nil, []Marker{{X: 0.5, Label: "today"}}, 30, 6)
	out := RenderCurve(CurveChart{
		Plot:    p,
		YTop:    "$422",
		YBottom: "$0",
		XStart:  "Sep 1",
		XEnd:    "Dec 20",
		Markers: []Marker{{X: 0.5, Label: "today"}},
	}, DefaultCurvePalette)

	for _, want := range []string{"$422", "$0", "Sep 1", "Dec 20", "today"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderCurve output missing %q", want)
		}
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7 (6 rows + axis)", len(lines))
	}
}

func TestRenderPortionBar(t *testing.T) {
	bar := RenderPortionBar([]float64{0.5, 0.25, 0.25}, 20, nil)
	if w := lipgloss.Width(bar); w != 20 {
		t.Fatalf("width = %d, want 20", w)
	}
	empty := RenderPortionBar([]float64{0, 0}, 10, nil)
	if w := lipgloss.Width(empty); w != 10 {
		t.Fatalf("empty width = %d, want 10", w)
	}
}

func TestPortionWidths(t *testing.T) {
	got := PortionWidths([]float64{0.34, 0.33, 0.33}, 10)
	sum := 0
	for _, n := range got {
		sum += n
	}
	if sum != 10 {
		t.Fatalf("widths %v sum to %d, want 10", got, sum)
	}
	if got := PortionWidths([]float64{0.2, 0}, 10); got[0] != 2 || got[1] != 0 {
		t.Fatalf("partial shares = %v, want [2 0]", got)
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Plan", "Cost"},
		Rows: [][]string{
			{"AFK", "$2,795"},
			{"---"},
			{"ATM", "$1,575"},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7", len(lines))
	}
	width := lipgloss.Width(lines[0])
	for i, l := range lines {
		if lipgloss.Width(l) != width {
			t.Fatalf("line %d width %d, want %d", i, lipgloss.Width(l), width)
		}
	}
}

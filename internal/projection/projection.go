// Package projection maps balance history onto a normalized display window and
// extrapolates a linear depletion forecast from it.
package projection

import (
	"errors"
	"math"
	"sort"
	"time"
)

var (
	// ErrInsufficientData is returned when there are no observations to plot.
	ErrInsufficientData = errors.New("projection: no balance observations")
	// ErrUndefinedSlope is returned when no declining pair of observations exists,
	// so there is no burn rate to extrapolate.
	ErrUndefinedSlope = errors.New("projection: no spending observed")
	// ErrInvalidWindow is returned when a window does not start before it ends.
	ErrInvalidWindow = errors.New("projection: window start must be before end")
	// ErrNegativeBalance is returned for an observation with a balance below zero.
	ErrNegativeBalance = errors.New("projection: negative balance")
)

// Observation is one recorded balance at a point in time.
type Observation struct {
	Timestamp time.Time
	Balance   float64
}

// Window is the span of time a graph covers, from lookback to forward horizon.
type Window struct {
	Start time.Time
	End   time.Time
}

// Point is a plot coordinate scaled to the unit interval.
// X is the fraction of the window elapsed, Y the fraction of the peak balance.
type Point struct {
	X float64
	Y float64
}

// Forecast is a linear extension of the average decline from the last observation.
type Forecast struct {
	Anchor Point
	// Slope is the average normalized balance change per window length (<= 0).
	Slope float64
	// ZeroX is where the extension reaches y = 0. Values above 1 are past the horizon.
	ZeroX float64
}

// Validate reports whether the window has a strictly positive length.
func (w Window) Validate() error {
	if !w.Start.Before(w.End) {
		return ErrInvalidWindow
	}
	return nil
}

// Length returns the window duration.
func (w Window) Length() time.Duration {
	return w.End.Sub(w.Start)
}

// X maps t to its fraction of the window. Times outside the window fall outside [0,1].
func (w Window) X(t time.Time) float64 {
	return float64(t.Sub(w.Start)) / float64(w.Length())
}

// InRange reports whether fraction x lies within a time.Duration of Start,
// which is the range At can map exactly.
func (w Window) InRange(x float64) bool {
	off := x * float64(w.Length())
	return !math.IsNaN(off) && math.Abs(off) < float64(math.MaxInt64)
}

// At maps a window fraction back to wall-clock time. Fractions outside InRange
// saturate at the farthest offset a time.Duration can hold.
func (w Window) At(x float64) time.Time {
	off := x * float64(w.Length())
	switch {
	case off >= float64(math.MaxInt64):
		return w.Start.Add(math.MaxInt64)
	case off <= float64(math.MinInt64):
		return w.Start.Add(math.MinInt64)
	}
	return w.Start.Add(time.Duration(off))
}

// Normalize converts observations into points ordered by time. The input slice
// is not modified. A zero peak balance yields y = 0 for every point.
func Normalize(observations []Observation, w Window) ([]Point, error) {
	if len(observations) == 0 {
		return nil, ErrInsufficientData
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}

	sorted := make([]Observation, len(observations))
	copy(sorted, observations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	peak := 0.0
	for _, o := range sorted {
		if o.Balance < 0 {
			return nil, ErrNegativeBalance
		}
		if o.Balance > peak {
			peak = o.Balance
		}
	}

	points := make([]Point, len(sorted))
	for i, o := range sorted {
		p := Point{X: w.X(o.Timestamp)}
		if peak > 0 {
			p.Y = o.Balance / peak
		}
		points[i] = p
	}
	return points, nil
}

// ProjectDepletion averages the slope of every declining consecutive pair and
// extends it from the chronologically last observation down to zero.
// Deposits and flat stretches do not contribute to the slope.
func ProjectDepletion(observations []Observation, w Window) (Forecast, error) {
	points, err := Normalize(observations, w)
	if err != nil {
		return Forecast{}, err
	}

	var (
		sum   float64
		count int
	)
	for i := 1; i < len(points); i++ {
		dy := points[i].Y - points[i-1].Y
		dx := points[i].X - points[i-1].X
		if dy >= 0 || dx <= 0 {
			continue
		}
		sum += dy / dx
		count++
	}
	if count == 0 {
		return Forecast{}, ErrUndefinedSlope
	}

	anchor := points[len(points)-1]
	slope := sum / float64(count)

	return Forecast{
		Anchor: anchor,
		Slope:  slope,
		ZeroX:  anchor.X + (-anchor.Y / slope),
	}, nil
}

// WithinWindow reports whether depletion happens before the window ends.
func (f Forecast) WithinWindow() bool {
	return f.ZeroX <= 1
}

// DepletionTime returns when the balance is projected to reach zero.
// Check w.InRange(f.ZeroX) first: farther depletions saturate.
func (f Forecast) DepletionTime(w Window) time.Time {
	return w.At(f.ZeroX)
}

// YAt evaluates the forecast line at x. It is only meaningful for x >= Anchor.X.
func (f Forecast) YAt(x float64) float64 {
	return f.Anchor.Y + f.Slope*(x-f.Anchor.X)
}

// Clip returns the points whose X lies inside the window. Intended for renderers;
// Normalize itself never clips.
func Clip(points []Point) []Point {
	var out []Point
	for _, p := range points {
		if p.X >= 0 && p.X <= 1 {
			out = append(out, p)
		}
	}
	return out
}

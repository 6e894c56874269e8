package config

import (
	"time"

	"github.com/theirongolddev/dinebal/internal/projection"
)

const dateLayout = "2006-01-02"

// Window returns the display window for now. A configured term wins when both
// dates parse and the term still has positive length; otherwise the window
// runs from LookbackDays before now to HorizonDays after it.
func (c Config) Window(now time.Time) projection.Window {
	if w, ok := c.termWindow(now.Location()); ok {
		return w
	}

	lookback := c.General.LookbackDays
	horizon := c.General.HorizonDays
	if lookback+horizon <= 0 {
		d := DefaultConfig().General
		lookback, horizon = d.LookbackDays, d.HorizonDays
	}

	return projection.Window{
		Start: now.AddDate(0, 0, -lookback),
		End:   now.AddDate(0, 0, horizon),
	}
}

func (c Config) termWindow(loc *time.Location) (projection.Window, bool) {
	if c.General.TermStart == "" || c.General.TermEnd == "" {
		return projection.Window{}, false
	}
	start, err := time.ParseInLocation(dateLayout, c.General.TermStart, loc)
	if err != nil {
		return projection.Window{}, false
	}
	end, err := time.ParseInLocation(dateLayout, c.General.TermEnd, loc)
	if err != nil {
		return projection.Window{}, false
	}
	// Term end is inclusive: the window closes at the end of that day.
	w := projection.Window{Start: start, End: end.AddDate(0, 0, 1)}
	if w.Validate() != nil {
		return projection.Window{}, false
	}
	return w, true
}

// HasTerm reports whether a semester window is configured.
func (c Config) HasTerm() bool {
	_, ok := c.termWindow(time.Local)
	return ok
}

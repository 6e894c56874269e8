package pipeline

import (
	"errors"
	"time"

	"github.com/theirongolddev/dinebal/internal/model"
	"github.com/theirongolddev/dinebal/internal/projection"
)

// AccountForecast bundles everything a renderer needs to draw one account's
// balance curve. Err carries the recoverable projection error, if any:
// projection.ErrInsufficientData means nothing to draw, and
// projection.ErrUndefinedSlope means draw the curve without a forecast.
type AccountForecast struct {
	Account  model.Account
	Window   projection.Window
	Points   []projection.Point
	Forecast *projection.Forecast
	Balance  float64
	Peak     float64
	// DepletionDate is zero when there is no forecast or it is Unbounded.
	DepletionDate time.Time
	WithinWindow  bool
	// Unbounded marks a forecast whose run-out is too far off to date.
	Unbounded bool
	Err       error
}

// HasForecast reports whether a depletion line can be drawn.
func (f AccountForecast) HasForecast() bool {
	return f.Forecast != nil
}

// Observations converts one account's transactions into balance observations.
// The full history is used: balances before the window still shape the slope.
func Observations(txns []model.Transaction, account model.Account) []projection.Observation {
	var obs []projection.Observation
	for _, t := range txns {
		if t.Account != account {
			continue
		}
		obs = append(obs, projection.Observation{
			Timestamp: t.Time,
			Balance:   t.Balance.InexactFloat64(),
		})
	}
	return obs
}

// ForecastAccount normalizes an account's history into w and projects when it
// runs out. Only an invalid window or a negative balance is returned as a hard
// error; missing data and an undefined slope are reported through Err.
func ForecastAccount(txns []model.Transaction, account model.Account, w projection.Window) (AccountForecast, error) {
	out := AccountForecast{Account: account, Window: w}
	obs := Observations(txns, account)

	points, err := projection.Normalize(obs, w)
	if err != nil {
		if errors.Is(err, projection.ErrInsufficientData) {
			out.Err = err
			return out, nil
		}
		return out, err
	}
	out.Points = points

	latest := obs[0]
	for _, o := range obs {
		if o.Balance > out.Peak {
			out.Peak = o.Balance
		}
		if !o.Timestamp.Before(latest.Timestamp) {
			latest = o
		}
	}
	out.Balance = latest.Balance

	fc, err := projection.ProjectDepletion(obs, w)
	if err != nil {
		if errors.Is(err, projection.ErrUndefinedSlope) {
			out.Err = err
			return out, nil
		}
		return out, err
	}

	out.Forecast = &fc
	out.WithinWindow = fc.WithinWindow()
	if w.InRange(fc.ZeroX) {
		out.DepletionDate = fc.DepletionTime(w)
	} else {
		out.Unbounded = true
	}
	return out, nil
}

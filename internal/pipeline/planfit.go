package pipeline

import (
	"math"
	"sort"

	"github.com/theirongolddev/dinebal/internal/config"
	"github.com/theirongolddev/dinebal/internal/model"
)

// PlanFit compares a plan's semester allowance with the observed pace.
type PlanFit struct {
	Plan config.DiningPlan
	// Projected semester usage at the observed weekly pace.
	SwipesNeeded  float64
	DollarsNeeded float64
	// Positive leftovers are unused allowance; negative means the plan runs short.
	SwipesLeft  float64
	DollarsLeft float64
	// EffectiveCost is the plan cost plus whatever covering a shortfall would cost.
	EffectiveCost float64
}

// Covers reports whether the plan lasts the semester at the observed pace.
func (f PlanFit) Covers() bool {
	return f.SwipesLeft >= 0 && f.DollarsLeft >= 0
}

// WeeklyPace converts a summary over days into a per-week spend rate.
func WeeklyPace(s model.Summary, days int) float64 {
	if days <= 0 {
		return 0
	}
	return s.Spent.InexactFloat64() / float64(days) * 7
}

// FitPlans ranks plans by effective semester cost for the given weekly pace.
// Swipe shortfalls are bought with dining dollars at the catalog's best
// per-swipe rate; dollar shortfalls are paid at face value.
func FitPlans(plans []config.DiningPlan, swipesPerWeek, dollarsPerWeek float64) []PlanFit {
	swipePrice := cheapestSwipe(plans)

	fits := make([]PlanFit, 0, len(plans))
	for _, p := range plans {
		f := PlanFit{
			Plan:          p,
			SwipesNeeded:  swipesPerWeek * config.WeeksPerSemester,
			DollarsNeeded: dollarsPerWeek * config.WeeksPerSemester,
		}
		f.SwipesLeft = float64(p.Swipes) - f.SwipesNeeded
		f.DollarsLeft = float64(p.Dollars) - f.DollarsNeeded

		f.EffectiveCost = float64(p.Cost)
		if f.SwipesLeft < 0 {
			f.EffectiveCost += -f.SwipesLeft * swipePrice
		}
		if f.DollarsLeft < 0 {
			f.EffectiveCost += -f.DollarsLeft
		}
		fits = append(fits, f)
	}

	sort.SliceStable(fits, func(i, j int) bool {
		return fits[i].EffectiveCost < fits[j].EffectiveCost
	})
	return fits
}

func cheapestSwipe(plans []config.DiningPlan) float64 {
	best := math.Inf(1)
	for _, p := range plans {
		if c := p.CostPerSwipe(); c > 0 && c < best {
			best = c
		}
	}
	if math.IsInf(best, 1) {
		return 0
	}
	return best
}

package config

import (
	"sort"
	"strings"
)

const (
	// SwipeDollarRate converts dining dollars into swipe-equivalent cost.
	// The Any Time Meal plan sells 1600 dining dollars for $1575.
	SwipeDollarRate = 1600.0 / 1575.0
	// DollarCost is what one dining dollar costs in real dollars.
	DollarCost = 1575.0 / 1600.0
	// WeeksPerSemester is the number of weeks plan allowances are spread over.
	WeeksPerSemester = 15.0
)

// DiningPlan holds per-semester plan terms.
type DiningPlan struct {
	Name    string
	Acronym string
	Swipes  int
	Dollars int
	Cost    int
}

// DefaultPlans is the plan catalog, ordered from swipe-heavy to dollar-heavy.
var DefaultPlans = []DiningPlan{
	{Name: "Away From Kitchen", Acronym: "AFK", Swipes: 240, Dollars: 140, Cost: 2795},
	{Name: "Balanced Eating Naturally", Acronym: "BEN", Swipes: 170, Dollars: 225, Cost: 2795},
	{Name: "Best Food Fit", Acronym: "BFF", Swipes: 138, Dollars: 400, Cost: 2795},
	{Name: "One Meal Works", Acronym: "OMW", Swipes: 89, Dollars: 575, Cost: 2200},
	{Name: "Club and Activities", Acronym: "CAP", Swipes: 51, Dollars: 600, Cost: 1550},
	{Name: "Take Your Pick 25", Acronym: "TYP25", Swipes: 25, Dollars: 875, Cost: 1385},
	{Name: "Take Your Pick 19", Acronym: "TYP19", Swipes: 19, Dollars: 875, Cost: 1265},
	{Name: "Take Your Pick 13", Acronym: "TYP13", Swipes: 13, Dollars: 875, Cost: 1445},
	{Name: "Any Time Meal", Acronym: "ATM", Swipes: 0, Dollars: 1600, Cost: 1575},
}

// CostPerSwipe is the plan cost left after valuing its dining dollars,
// spread over its swipes. Plans without swipes return 0.
func (p DiningPlan) CostPerSwipe() float64 {
	if p.Swipes <= 0 {
		return 0
	}
	return (float64(p.Cost) - float64(p.Dollars)*SwipeDollarRate) / float64(p.Swipes)
}

// CostPerDollar is the real cost of one dining dollar. Plans without dollars return 0.
func (p DiningPlan) CostPerDollar() float64 {
	if p.Dollars <= 0 {
		return 0
	}
	return DollarCost
}

// SwipesPerWeek is the weekly swipe allowance over a semester.
func (p DiningPlan) SwipesPerWeek() float64 {
	return float64(p.Swipes) / WeeksPerSemester
}

// DollarsPerWeek is the weekly dining dollar allowance over a semester.
func (p DiningPlan) DollarsPerWeek() float64 {
	return float64(p.Dollars) / WeeksPerSemester
}

// Totals scales the plan to the given number of semesters (1 or 2).
func (p DiningPlan) Totals(semesters int) DiningPlan {
	if semesters < 1 {
		semesters = 1
	}
	scaled := p
	scaled.Swipes *= semesters
	scaled.Dollars *= semesters
	scaled.Cost *= semesters
	return scaled
}

// Catalog returns the catalog with the config's overrides applied.
// Overrides for unknown acronyms are appended as custom plans.
func (c Config) Catalog() []DiningPlan {
	plans := make([]DiningPlan, len(DefaultPlans))
	copy(plans, DefaultPlans)

	if len(c.Plans.Overrides) == 0 {
		return plans
	}

	applied := make(map[string]bool, len(c.Plans.Overrides))
	for i := range plans {
		for acr, o := range c.Plans.Overrides {
			if strings.EqualFold(acr, plans[i].Acronym) {
				plans[i] = o.apply(plans[i])
				applied[acr] = true
			}
		}
	}

	var custom []string
	for acr := range c.Plans.Overrides {
		if !applied[acr] {
			custom = append(custom, acr)
		}
	}
	sort.Strings(custom)
	for _, acr := range custom {
		base := DiningPlan{Name: acr, Acronym: strings.ToUpper(acr)}
		plans = append(plans, c.Plans.Overrides[acr].apply(base))
	}

	return plans
}

func (o PlanOverride) apply(p DiningPlan) DiningPlan {
	if o.Name != nil {
		p.Name = *o.Name
	}
	if o.Swipes != nil {
		p.Swipes = *o.Swipes
	}
	if o.Dollars != nil {
		p.Dollars = *o.Dollars
	}
	if o.Cost != nil {
		p.Cost = *o.Cost
	}
	return p
}

// LookupPlan finds a plan by acronym, case-insensitively.
func LookupPlan(plans []DiningPlan, acronym string) (DiningPlan, bool) {
	i := PlanIndex(plans, acronym)
	if i < 0 {
		return DiningPlan{}, false
	}
	return plans[i], true
}

// PlanIndex returns the catalog position of acronym, or -1.
func PlanIndex(plans []DiningPlan, acronym string) int {
	acronym = strings.TrimSpace(acronym)
	for i, p := range plans {
		if strings.EqualFold(p.Acronym, acronym) {
			return i
		}
	}
	return -1
}

// CurrentPlan returns the configured plan, if one is set and known.
func (c Config) CurrentPlan() (DiningPlan, bool) {
	if c.Plan.Acronym == "" {
		return DiningPlan{}, false
	}
	return LookupPlan(c.Catalog(), c.Plan.Acronym)
}

package config

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCostPerSwipe(t *testing.T) {
	p, ok := LookupPlan(DefaultPlans, "AFK")
	if !ok {
		t.Fatal("AFK not found")
	}
	want := (2795.0 - 140.0*1600.0/1575.0) / 240.0
	if got := p.CostPerSwipe(); !approx(got, want) {
		t.Fatalf("CostPerSwipe() = %v, want %v", got, want)
	}
}

func TestCostPerSwipe_NoSwipes(t *testing.T) {
	p, _ := LookupPlan(DefaultPlans, "ATM")
	if got := p.CostPerSwipe(); got != 0 {
		t.Fatalf("CostPerSwipe() = %v, want 0", got)
	}
	if got := p.CostPerDollar(); !approx(got, 1575.0/1600.0) {
		t.Fatalf("CostPerDollar() = %v, want %v", got, 1575.0/1600.0)
	}
}

func TestCostPerDollar_NoDollars(t *testing.T) {
	p := DiningPlan{Acronym: "X", Swipes: 100, Cost: 1000}
	if got := p.CostPerDollar(); got != 0 {
		t.Fatalf("CostPerDollar() = %v, want 0", got)
	}
	if got := p.CostPerSwipe(); !approx(got, 10) {
		t.Fatalf("CostPerSwipe() = %v, want 10", got)
	}
}

func TestPerWeek(t *testing.T) {
	p := DiningPlan{Swipes: 150, Dollars: 300}
	if got := p.SwipesPerWeek(); !approx(got, 10) {
		t.Fatalf("SwipesPerWeek() = %v, want 10", got)
	}
	if got := p.DollarsPerWeek(); !approx(got, 20) {
		t.Fatalf("DollarsPerWeek() = %v, want 20", got)
	}
}

func TestTotals(t *testing.T) {
	p, _ := LookupPlan(DefaultPlans, "bff")
	year := p.Totals(2)
	if year.Swipes != 276 || year.Dollars != 800 || year.Cost != 5590 {
		t.Fatalf("Totals(2) = %+v", year)
	}
	if got := p.Totals(0); got != p {
		t.Fatalf("Totals(0) = %+v, want %+v", got, p)
	}
	// Scaling cost and allowances together keeps the per-swipe cost.
	if !approx(year.CostPerSwipe(), p.CostPerSwipe()) {
		t.Fatalf("year CostPerSwipe = %v, semester %v", year.CostPerSwipe(), p.CostPerSwipe())
	}
}

func TestLookupPlan(t *testing.T) {
	if _, ok := LookupPlan(DefaultPlans, " typ25 "); !ok {
		t.Fatal("expected case-insensitive match for typ25")
	}
	if _, ok := LookupPlan(DefaultPlans, "nope"); ok {
		t.Fatal("unexpected match for unknown acronym")
	}
	if got := PlanIndex(DefaultPlans, "ATM"); got != len(DefaultPlans)-1 {
		t.Fatalf("PlanIndex(ATM) = %d, want %d", got, len(DefaultPlans)-1)
	}
}

func TestPlansOverrides(t *testing.T) {
	cost := 3000
	name := "Grad Block"
	swipes := 60
	cfg := DefaultConfig()
	cfg.Plans.Overrides = map[string]PlanOverride{
		"afk":  {Cost: &cost},
		"grad": {Name: &name, Swipes: &swipes},
	}

	plans := cfg.Catalog()
	if len(plans) != len(DefaultPlans)+1 {
		t.Fatalf("len(Plans()) = %d, want %d", len(plans), len(DefaultPlans)+1)
	}
	if plans[0].Cost != 3000 || plans[0].Swipes != 240 {
		t.Fatalf("AFK override = %+v", plans[0])
	}
	last := plans[len(plans)-1]
	if last.Acronym != "GRAD" || last.Name != "Grad Block" || last.Swipes != 60 {
		t.Fatalf("custom plan = %+v", last)
	}
	if DefaultPlans[0].Cost != 2795 {
		t.Fatal("override mutated DefaultPlans")
	}
}

func TestCurrentPlan(t *testing.T) {
	cfg := DefaultConfig()
	if _, ok := cfg.CurrentPlan(); ok {
		t.Fatal("expected no current plan by default")
	}
	cfg.Plan.Acronym = "omw"
	p, ok := cfg.CurrentPlan()
	if !ok || p.Name != "One Meal Works" {
		t.Fatalf("CurrentPlan() = %+v, %v", p, ok)
	}
}

package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/dinebal/internal/cli"
	"github.com/theirongolddev/dinebal/internal/config"
	"github.com/theirongolddev/dinebal/internal/tui/components"
	"github.com/theirongolddev/dinebal/internal/tui/theme"
)

// planState tracks the plans tab selection.
type planState struct {
	cursor int // -1 until data loads, then starts on the configured plan
	year   bool
}

func (s planState) semesters() int {
	if s.year {
		return 2
	}
	return 1
}

func (a App) updatePlansKey(key string) (App, bool) {
	switch key {
	case "j", "down":
		a.planSel.cursor = min(a.planSel.cursor+1, max(0, len(a.plans)-1))
	case "k", "up":
		a.planSel.cursor = max(a.planSel.cursor-1, 0)
	case "y":
		a.planSel.year = !a.planSel.year
	default:
		return a, false
	}
	return a, true
}

func (a App) renderPlansTab(cw int) string {
	if len(a.plans) == 0 {
		return components.ContentCard("Plans", "", cw)
	}

	var b strings.Builder
	b.WriteString(a.renderPlanCatalog(cw))
	b.WriteString("\n")

	if a.isCompactLayout() {
		b.WriteString(a.renderPlanDetail(cw))
		b.WriteString("\n")
		b.WriteString(a.renderPlanFit(cw))
		return b.String()
	}

	halves := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		a.renderPlanDetail(halves[0]),
		a.renderPlanFit(halves[1]),
	}))
	return b.String()
}

// renderPlanCatalog lists every plan with the selection and current plan marked.
func (a App) renderPlanCatalog(cw int) string {
	t := theme.Active
	semesters := a.planSel.semesters()

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	currentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	current := a.cfg.Plan.Acronym
	format := "%-2s%-7s %-26s %8s %9s %9s %10s"

	var body strings.Builder
	body.WriteString(headerStyle.Render(fmt.Sprintf(format, "", "Plan", "Name", "Swipes", "Dollars", "Cost", "Per Swipe")))
	body.WriteString("\n")

	for i, p := range a.plans {
		tot := p.Totals(semesters)
		mark := ""
		if strings.EqualFold(p.Acronym, current) {
			mark = "*"
		}
		line := fmt.Sprintf(format,
			mark,
			p.Acronym,
			truncStr(p.Name, 26),
			cli.FormatNumber(int64(tot.Swipes)),
			cli.FormatDollars(float64(tot.Dollars)),
			cli.FormatDollars(float64(tot.Cost)),
			formatRate(p.CostPerSwipe()),
		)
		switch {
		case i == a.planSel.cursor:
			body.WriteString(selectedStyle.Render(line))
		case mark != "":
			body.WriteString(currentStyle.Render(line))
		default:
			body.WriteString(rowStyle.Render(line))
		}
		body.WriteString("\n")
	}

	body.WriteString("\n")
	hint := "[j/k] select  [y] semester/year"
	if current != "" {
		hint = "* current plan  " + hint
	}
	body.WriteString(mutedStyle.Render(hint))

	scope := "Semester"
	if a.planSel.year {
		scope = "Year"
	}
	return components.ContentCard("Dining Plans (per "+strings.ToLower(scope)+")", body.String(), cw)
}

func (a App) renderPlanDetail(w int) string {
	t := theme.Active
	p := a.plans[a.planSel.cursor]
	tot := p.Totals(a.planSel.semesters())

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	rows := [][2]string{
		{"Swipes", cli.FormatNumber(int64(tot.Swipes))},
		{"Dining dollars", cli.FormatDollars(float64(tot.Dollars))},
		{"Cost", cli.FormatDollars(float64(tot.Cost))},
		{"", ""},
		{"Cost per swipe", formatRate(p.CostPerSwipe())},
		{"Cost per dollar", formatRate(p.CostPerDollar())},
		{"", ""},
		{"Swipes / week", cli.FormatSwipes(roundTenth(p.SwipesPerWeek()))},
		{"Dollars / week", cli.FormatDollars(p.DollarsPerWeek())},
	}

	var body strings.Builder
	for _, r := range rows {
		if r[0] != "" {
			body.WriteString(labelStyle.Render(fmt.Sprintf("%-16s", r[0])))
			body.WriteString(valueStyle.Render(r[1]))
		}
		body.WriteString("\n")
	}

	// How this plan's weekly allowance compares with the observed pace.
	body.WriteString(dimStyle.Render(fmt.Sprintf("You use %s swipes and %s a week",
		cli.FormatSwipes(roundTenth(a.swipePace)), cli.FormatDollars(a.dollarPace))))

	return components.ContentCard(fmt.Sprintf("%s (%s)", p.Name, p.Acronym), body.String(), w)
}

// renderPlanFit ranks plans by effective cost at the observed pace.
func (a App) renderPlanFit(w int) string {
	t := theme.Active
	inner := components.CardInnerWidth(w)

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	goodStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	shortStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	if a.swipePace == 0 && a.dollarPace == 0 {
		return components.ContentCard("Best Fit", mutedStyle.Render("No spending in the last "+
			strings.ToLower(a.period().Name)+" to compare against"), w)
	}

	maxCost := 0.0
	for _, f := range a.fits {
		maxCost = math.Max(maxCost, f.EffectiveCost)
	}

	// acronym + cost + covers + gaps
	barW := max(inner-7-11-8-4, 6)
	selected := a.plans[a.planSel.cursor].Acronym

	var body strings.Builder
	for i, f := range a.fits {
		status := goodStyle.Render(fmt.Sprintf("%-8s", "covers"))
		if !f.Covers() {
			status = shortStyle.Render(fmt.Sprintf("%-8s", "short"))
		}

		acr := nameStyle.Render(fmt.Sprintf("%-7s", f.Plan.Acronym))
		if f.Plan.Acronym == selected {
			acr = lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true).
				Render(fmt.Sprintf("%-7s", f.Plan.Acronym))
		}

		fill := 0
		if maxCost > 0 {
			fill = int(f.EffectiveCost / maxCost * float64(barW))
		}
		barColor := t.Accent
		if i == 0 {
			barColor = t.GreenBright
		}
		bar := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface).Render(strings.Repeat("█", fill)) +
			lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render(strings.Repeat("░", barW-fill))

		body.WriteString(acr)
		body.WriteString(spaceStyle.Render(" "))
		body.WriteString(bar)
		body.WriteString(nameStyle.Render(fmt.Sprintf(" %10s ", cli.FormatDollars(f.EffectiveCost))))
		body.WriteString(status)
		body.WriteString("\n")
	}

	if len(a.fits) > 0 {
		best := a.fits[0]
		body.WriteString("\n")
		body.WriteString(mutedStyle.Render(fmt.Sprintf("%s leaves %s swipes and %s over a semester",
			best.Plan.Acronym, cli.FormatSwipes(roundTenth(best.SwipesLeft)), cli.FormatDollars(best.DollarsLeft))))
	}

	return components.ContentCard("Best Fit (per semester)", body.String(), w)
}

// formatRate renders a unit price, or "-" when the plan has none of that unit.
func formatRate(v float64) string {
	if v == 0 {
		return "-"
	}
	return cli.FormatDollars(v)
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// cyclePlan returns the acronym after current in the catalog, wrapping to
// "no plan" after the last one.
func cyclePlan(plans []config.DiningPlan, current string) string {
	i := config.PlanIndex(plans, current)
	if i+1 >= len(plans) {
		return ""
	}
	return plans[i+1].Acronym
}

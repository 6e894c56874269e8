package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/dinebal/internal/cli"
	"github.com/theirongolddev/dinebal/internal/model"
	"github.com/theirongolddev/dinebal/internal/pipeline"
	"github.com/theirongolddev/dinebal/internal/projection"
	"github.com/theirongolddev/dinebal/internal/tui/components"
	"github.com/theirongolddev/dinebal/internal/tui/theme"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	now := a.now()
	stats := a.summary
	prev := a.prevSummary
	fc := a.forecasts[a.account]
	var b strings.Builder

	// Row 1: Metric cards
	spent := stats.Spent.InexactFloat64()
	spentDelta := "vs " + cli.FormatBalance(a.account, prev.Spent.InexactFloat64()) + " before"
	if !prev.Spent.IsZero() {
		spentDelta = cli.FormatDelta(a.account, spent, prev.Spent.InexactFloat64()) + " vs prior"
	}

	runsOut := components.Metric{Label: "Runs out", Value: runOutValue(fc, now)}
	switch {
	case fc.Unbounded:
		runsOut.Delta = "not in sight"
		runsOut.Color = t.GreenBright
	case fc.HasForecast() && fc.WithinWindow:
		runsOut.Delta = cli.FormatRelative(fc.DepletionDate, now)
		runsOut.Color = t.Orange
	case fc.HasForecast():
		runsOut.Delta = "after " + fc.Window.End.Format("Jan 2")
		runsOut.Color = t.GreenBright
	}

	perDayDelta := fmt.Sprintf("%d purchases", stats.Purchases)
	if prev.SpendPerDay > 0 {
		perDayDelta = cli.FormatDelta(a.account, stats.SpendPerDay, prev.SpendPerDay) + " vs prior"
	}

	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Balance", Value: cli.FormatBalance(a.account, fc.Balance),
			Delta: "peak " + cli.FormatBalance(a.account, fc.Peak)},
		runsOut,
		{Label: "Spent (" + a.period().Name + ")", Value: cli.FormatBalance(a.account, spent), Delta: spentDelta},
		{Label: "Per active day", Value: cli.FormatBalance(a.account, stats.SpendPerDay), Delta: perDayDelta},
	}, cw))
	b.WriteString("\n")

	// Row 2: Balance curve across the window
	b.WriteString(a.renderCurveCard(fc, cw))
	b.WriteString("\n")

	// Row 3: Daily spend + allowance, side by side unless compact
	if a.isCompactLayout() {
		if spendCard := a.renderDailySpendCard(cw); spendCard != "" {
			b.WriteString(spendCard)
			b.WriteString("\n")
		}
		b.WriteString(a.renderAllowanceCard(cw))
		return b.String()
	}

	halves := components.LayoutRow(cw, 2)
	spendCard := a.renderDailySpendCard(halves[0])
	allowance := a.renderAllowanceCard(halves[1])
	if spendCard == "" {
		b.WriteString(a.renderAllowanceCard(cw))
	} else {
		b.WriteString(components.CardRow([]string{spendCard, allowance}))
	}
	return b.String()
}

// runOutValue is the headline run-out date, or why there is none. Dates past
// the window or outside the current year carry their year.
func runOutValue(fc pipeline.AccountForecast, now time.Time) string {
	switch {
	case errors.Is(fc.Err, projection.ErrInsufficientData):
		return "No history"
	case errors.Is(fc.Err, projection.ErrUndefinedSlope):
		return "Not declining"
	case !fc.HasForecast():
		return "-"
	case fc.Unbounded:
		return "Never"
	case !fc.WithinWindow || fc.DepletionDate.Year() != now.Year():
		return fc.DepletionDate.Format("Jan 2, 2006")
	}
	return fc.DepletionDate.Format("Jan 2")
}

func (a App) renderCurveCard(fc pipeline.AccountForecast, cw int) string {
	t := theme.Active
	title := fmt.Sprintf("%s Balance  %s – %s", a.account.Title(),
		fc.Window.Start.Format("Jan 2"), fc.Window.End.Format("Jan 2"))

	if len(fc.Points) == 0 {
		muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		return components.ContentCard(title, muted.Render("No balances recorded yet"), cw)
	}

	height := 12
	if a.isCompactLayout() {
		height = 8
	}

	markers := []cli.Marker{{X: fc.Window.X(a.now()), Label: "today"}}
	if fc.HasForecast() && fc.WithinWindow {
		markers = append(markers, cli.Marker{X: fc.Forecast.ZeroX, Label: "empty"})
	}

	yTop := cli.FormatBalance(a.account, fc.Peak)
	yBottom := cli.FormatBalance(a.account, 0)
	// gutter + " ┤" + padding
	gutter := max(lipgloss.Width(yTop), lipgloss.Width(yBottom)) + 2
	plotW := max(components.CardInnerWidth(cw)-gutter, 10)

	chart := cli.RenderCurve(cli.CurveChart{
		Plot:    cli.PlotCurve(fc.Points, fc.Forecast, markers, plotW, height),
		YTop:    yTop,
		YBottom: yBottom,
		XStart:  fc.Window.Start.Format("Jan 2"),
		XEnd:    fc.Window.End.Format("Jan 2"),
		Markers: markers,
	}, components.CurvePalette())

	legendStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	legend := legendStyle.Render(fmt.Sprintf("%d of %d balances in window",
		len(projection.Clip(fc.Points)), len(fc.Points)))
	if fc.HasForecast() {
		legend += legendStyle.Render("  ·  ") +
			lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Render("╌") +
			legendStyle.Render(" projected from the latest balance")
	}

	return components.ContentCard(title, chart+"\n"+legend, cw)
}

func (a App) renderDailySpendCard(w int) string {
	days := a.days
	if len(days) == 0 {
		return ""
	}
	t := theme.Active

	vals := make([]float64, len(days))
	var total float64
	for i, d := range days {
		v := d.Spent.InexactFloat64()
		vals[len(days)-1-i] = v
		total += v
	}

	color := t.Blue
	if a.account == model.AccountSwipes {
		color = t.Magenta
	}

	return components.ContentCard(
		fmt.Sprintf("Daily Spend (%s)", cli.FormatBalance(a.account, total)),
		components.BarChart(vals, chartDateLabels(days), color, components.CardInnerWidth(w), 8),
		w,
	)
}

func (a App) renderAllowanceCard(w int) string {
	t := theme.Active
	now := a.now()
	inner := components.CardInnerWidth(w)

	labelW := 16
	// label + spaces + pct + time left
	barW := max(inner-labelW-22, 10)

	var body strings.Builder
	for _, acc := range model.Accounts {
		fc := a.forecasts[acc]
		used := 0.0
		if fc.Peak > 0 {
			used = 1 - fc.Balance/fc.Peak
		}
		body.WriteString(components.AllowanceBar(acc.Title(), used, fc.DepletionDate, now, labelW, barW))
		body.WriteString("\n")
	}

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	body.WriteString("\n")
	body.WriteString(mutedStyle.Render("Pace  "))
	body.WriteString(valueStyle.Render(fmt.Sprintf("%s swipes/wk  %s/wk",
		cli.FormatSwipes(roundTenth(a.swipePace)), cli.FormatDollars(a.dollarPace))))

	if plan, ok := a.cfg.CurrentPlan(); ok {
		body.WriteString("\n")
		body.WriteString(mutedStyle.Render("Plan  "))
		body.WriteString(valueStyle.Render(fmt.Sprintf("%s allows %s swipes/wk  %s/wk",
			plan.Acronym, cli.FormatSwipes(roundTenth(plan.SwipesPerWeek())), cli.FormatDollars(plan.DollarsPerWeek()))))
	}

	return components.ContentCard("Allowance Used", body.String(), w)
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/dinebal/internal/cli"
	"github.com/theirongolddev/dinebal/internal/model"
	"github.com/theirongolddev/dinebal/internal/pipeline"
	"github.com/theirongolddev/dinebal/internal/tui/components"
	"github.com/theirongolddev/dinebal/internal/tui/theme"
)

func (a App) renderLocationsTab(cw int) string {
	t := theme.Active
	locs := a.locations

	var b strings.Builder
	b.WriteString(a.renderPeriodSelector(cw))
	b.WriteString("\n")

	title := fmt.Sprintf("%s by Location (last %s)", a.account.Title(), strings.ToLower(a.period().Name))
	if len(locs) == 0 {
		muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		b.WriteString(components.ContentCard(title, muted.Render("No spending in this period"), cw))
		return b.String()
	}

	inner := components.CardInnerWidth(cw)
	colors := t.Series()

	var body strings.Builder
	body.WriteString(portionBar(locs, colors, inner))
	body.WriteString("\n\n")

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	numStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	const visitsW, totalW, shareW, seenW = 7, 12, 7, 14
	nameW := min(28, max(inner/4, 12))
	// swatch + name + columns + gaps
	barW := max(inner-2-nameW-visitsW-totalW-shareW-seenW-5, 6)

	body.WriteString(headerStyle.Render(fmt.Sprintf("  %-*s %*s %*s %*s %-*s %*s",
		nameW, "Location", visitsW, "Visits", totalW, "Total", shareW, "Share", barW, "", seenW, "Last visit")))
	body.WriteString("\n")

	now := a.now()
	top := locs[0].Share
	for i, l := range locs {
		swatch := " "
		if i < len(colors) {
			swatch = "█"
		}
		color := colors[i%len(colors)]

		fill := 0
		if top > 0 {
			fill = int(l.Share / top * float64(barW))
		}

		body.WriteString(lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(swatch))
		body.WriteString(spaceStyle.Render(" "))
		body.WriteString(nameStyle.Render(fmt.Sprintf("%-*s ", nameW, truncStr(l.Location, nameW))))
		body.WriteString(numStyle.Render(fmt.Sprintf("%*s %*s %*s ",
			visitsW, cli.FormatNumber(int64(l.Visits)),
			totalW, cli.FormatDecimal(a.account, l.Total),
			shareW, cli.FormatPercent(l.Share))))
		body.WriteString(lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(strings.Repeat("█", fill)))
		body.WriteString(spaceStyle.Render(strings.Repeat(" ", barW-fill)))
		body.WriteString(numStyle.Render(fmt.Sprintf(" %*s", seenW, cli.FormatRelative(l.LastSeen, now))))
		if i < len(locs)-1 {
			body.WriteString("\n")
		}
	}

	b.WriteString(components.ContentCard(title, body.String(), cw))
	return b.String()
}

// renderPeriodSelector shows the available periods with the active one highlighted.
func (a App) renderPeriodSelector(cw int) string {
	t := theme.Active
	activeStyle := lipgloss.NewStyle().Foreground(t.Background).Background(t.Accent).Bold(true).Padding(0, 1)
	idleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Padding(0, 1)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var parts []string
	for i, p := range pipeline.Periods {
		if i == a.periodIdx%len(pipeline.Periods) {
			parts = append(parts, activeStyle.Render(p.Name))
		} else {
			parts = append(parts, idleStyle.Render(p.Name))
		}
	}
	row := strings.Join(parts, spaceStyle.Render(" ")) + hintStyle.Render("   [t] cycle  [a] account")
	return lipgloss.NewStyle().Background(t.Surface).Width(cw).Render(row)
}

// portionBar stacks each location's share into one bar on the card surface.
func portionBar(locs []model.LocationStats, colors []lipgloss.Color, width int) string {
	t := theme.Active
	shares := make([]float64, len(locs))
	for i, l := range locs {
		shares[i] = l.Share
	}

	var b strings.Builder
	used := 0
	for i, n := range cli.PortionWidths(shares, width) {
		if n == 0 {
			continue
		}
		style := lipgloss.NewStyle().Foreground(colors[i%len(colors)]).Background(t.Surface)
		b.WriteString(style.Render(strings.Repeat("█", n)))
		used += n
	}
	if used < width {
		b.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
			Render(strings.Repeat("░", width-used)))
	}
	return b.String()
}

package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/dinebal/internal/tui/theme"
)

// ProgressBar renders a load progress bar with percentage.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	pct = clamp01(pct)
	filled := min(int(pct*float64(width)), width)

	var barColor lipgloss.Color
	switch {
	case pct >= 0.8:
		barColor = t.AccentBright
	case pct >= 0.5:
		barColor = t.Accent
	default:
		barColor = t.Cyan
	}

	filledStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))

	return b.String() + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}

// ColorForPct returns green/yellow/orange/red as more of an allowance is used.
func ColorForPct(pct float64) string {
	t := theme.Active
	switch {
	case pct >= 0.9:
		return string(t.Red)
	case pct >= 0.7:
		return string(t.Orange)
	case pct >= 0.5:
		return string(t.Yellow)
	default:
		return string(t.Green)
	}
}

// AllowanceBar renders a labeled bar of how much of a balance is used up,
// followed by the time left until the projected run-out. A zero runsOut
// means no projection.
func AllowanceBar(label string, used float64, runsOut, now time.Time, labelW, barWidth int) string {
	t := theme.Active
	used = clamp01(used)

	bar := progress.New(
		progress.WithSolidFill(ColorForPct(used)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorForPct(used))).Background(t.Surface).Bold(true)
	leftStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	left := "no projection"
	if !runsOut.IsZero() {
		if d := runsOut.Sub(now); d > 0 {
			left = formatTimeLeft(d) + " left"
		} else {
			left = "empty"
		}
	}

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(used) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", used*100)) +
		spaceStyle.Render("  ") +
		leftStyle.Render(left)
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}

// formatTimeLeft rounds to the most useful unit: weeks, days, then hours.
func formatTimeLeft(d time.Duration) string {
	h := int(d.Hours())
	days := h / 24
	switch {
	case days >= 14:
		return fmt.Sprintf("%dw %dd", days/7, days%7)
	case days >= 1:
		return fmt.Sprintf("%dd %dh", days, h%24)
	default:
		return fmt.Sprintf("%dh", h)
	}
}

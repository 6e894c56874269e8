package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/dinebal/internal/tui/theme"
)

// StatusInfo is what the bottom bar reports about the loaded data.
type StatusInfo struct {
	Account     string
	Location    string
	DataAge     string
	Refreshing  bool
	AutoRefresh bool
	Sample      bool
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, info StatusInfo) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	hint := func(k, label string) string {
		return keyStyle.Render("["+k+"]") + base.Render(label)
	}
	left := base.Render(" ") + strings.Join([]string{
		hint("?", "help"),
		hint("a", "ccount"),
		hint("r", "efresh"),
		hint("q", "uit"),
	}, base.Render("  "))

	var right []string
	if info.Account != "" {
		right = append(right, accentStyle.Render(info.Account))
	}
	if info.Location != "" {
		right = append(right, base.Render("@ ")+accentStyle.Render(info.Location))
	}
	switch {
	case info.Sample:
		right = append(right, warnStyle.Render("sample data"))
	case info.Refreshing:
		right = append(right, warnStyle.Render("refreshing…"))
	case info.DataAge != "":
		right = append(right, base.Render("loaded "+info.DataAge))
	}
	if info.AutoRefresh {
		right = append(right, base.Render("auto"))
	}
	rightStr := strings.Join(right, base.Render(" │ ")) + base.Render(" ")

	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(rightStr))
	return left + base.Render(strings.Repeat(" ", padding)) + rightStr
}

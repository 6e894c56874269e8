package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/theirongolddev/dinebal/internal/cli"
	"github.com/theirongolddev/dinebal/internal/config"
	"github.com/theirongolddev/dinebal/internal/pipeline"
	"github.com/theirongolddev/dinebal/internal/tui/components"
	"github.com/theirongolddev/dinebal/internal/tui/theme"
)

const (
	settingsFieldDataDir = iota
	settingsFieldPlan
	settingsFieldSemesters
	settingsFieldTermStart
	settingsFieldTermEnd
	settingsFieldLookback
	settingsFieldHorizon
	settingsFieldTheme
	settingsFieldAutoRefresh
	settingsFieldRefreshInterval
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

// cycled fields change in place on Enter instead of opening an input.
func cycledField(field int) bool {
	switch field {
	case settingsFieldPlan, settingsFieldSemesters, settingsFieldTheme, settingsFieldAutoRefresh:
		return true
	}
	return false
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50
	return ti
}

func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

func (a App) updateSettingsKey(key string) (App, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		a.settings.cursor = min(a.settings.cursor+1, settingsFieldCount-1)
		a.settings.saved = false
	case "k", "up":
		a.settings.cursor = max(a.settings.cursor-1, 0)
		a.settings.saved = false
	case "enter":
		if cycledField(a.settings.cursor) {
			cmd := a.settingsCycle()
			return a, cmd, true
		}
		a = a.settingsStartEdit()
		return a, a.settings.input.Cursor.BlinkCmd(), true
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) settingsStartEdit() App {
	cfg := loadConfigOrDefault()
	a.settings.editing = true
	a.settings.saved = false

	ti := newSettingsInput()
	switch a.settings.cursor {
	case settingsFieldDataDir:
		ti.Placeholder = config.DefaultDataDir()
		ti.SetValue(cfg.DataDir())
	case settingsFieldTermStart:
		ti.Placeholder = "YYYY-MM-DD (empty for a rolling window)"
		ti.SetValue(cfg.General.TermStart)
	case settingsFieldTermEnd:
		ti.Placeholder = "YYYY-MM-DD"
		ti.SetValue(cfg.General.TermEnd)
	case settingsFieldLookback:
		ti.Placeholder = "4 (days of history before today)"
		ti.SetValue(strconv.Itoa(cfg.General.LookbackDays))
	case settingsFieldHorizon:
		ti.Placeholder = "120 (days to project ahead)"
		ti.SetValue(strconv.Itoa(cfg.General.HorizonDays))
	case settingsFieldRefreshInterval:
		ti.Placeholder = "60 (seconds, minimum 10)"
		ti.SetValue(strconv.Itoa(int(a.refreshInterval.Seconds())))
	}

	ti.Focus()
	a.settings.input = ti
	return a
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settings.editing = false
		val := strings.TrimSpace(a.settings.input.Value())
		cmd := a.settingsSave(func(cfg *config.Config) error {
			return a.applyTextSetting(cfg, val)
		})
		return a, cmd
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a *App) applyTextSetting(cfg *config.Config, val string) error {
	switch a.settings.cursor {
	case settingsFieldDataDir:
		if val == config.DefaultDataDir() {
			val = ""
		}
		cfg.General.DataDir = val
	case settingsFieldTermStart:
		cfg.General.TermStart = val
	case settingsFieldTermEnd:
		cfg.General.TermEnd = val
	case settingsFieldLookback, settingsFieldHorizon, settingsFieldRefreshInterval:
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("%q is not a whole number", val)
		}
		switch a.settings.cursor {
		case settingsFieldLookback:
			cfg.General.LookbackDays = n
		case settingsFieldHorizon:
			cfg.General.HorizonDays = n
		default:
			if n < int(minRefresh.Seconds()) {
				return fmt.Errorf("refresh interval must be at least %ds", int(minRefresh.Seconds()))
			}
			cfg.TUI.RefreshIntervalSec = n
		}
	}
	return nil
}

// settingsCycle advances a multiple-choice field and saves it.
func (a *App) settingsCycle() tea.Cmd {
	return a.settingsSave(func(cfg *config.Config) error {
		switch a.settings.cursor {
		case settingsFieldPlan:
			cfg.Plan.Acronym = cyclePlan(cfg.Catalog(), cfg.Plan.Acronym)
		case settingsFieldSemesters:
			if cfg.Plan.Semesters >= 2 {
				cfg.Plan.Semesters = 1
			} else {
				cfg.Plan.Semesters = 2
			}
		case settingsFieldTheme:
			cfg.Appearance.Theme = theme.Next(cfg.Appearance.Theme).Name
		case settingsFieldAutoRefresh:
			cfg.TUI.AutoRefresh = !a.autoRefresh
		}
		return nil
	})
}

// settingsSave applies edit to the on-disk config, validates and saves it,
// then brings the running dashboard in line with the result.
func (a *App) settingsSave(edit func(*config.Config) error) tea.Cmd {
	a.settings.saved = false
	cfg := loadConfigOrDefault()
	if err := edit(&cfg); err != nil {
		a.settings.saveErr = err
		return nil
	}
	if err := cfg.Validate(); err != nil {
		a.settings.saveErr = err
		return nil
	}
	if err := config.Save(cfg); err != nil {
		a.settings.saveErr = err
		return nil
	}
	a.settings.saveErr = nil
	a.settings.saved = true
	a.log.Debug("settings saved", zap.String("path", config.Path()))

	theme.SetActive(cfg.Appearance.Theme)
	a.autoRefresh = cfg.TUI.AutoRefresh
	if d := time.Duration(cfg.TUI.RefreshIntervalSec) * time.Second; d >= minRefresh {
		a.refreshInterval = d
	}

	planChanged := !strings.EqualFold(cfg.Plan.Acronym, a.cfg.Plan.Acronym)
	a.cfg = cfg
	if planChanged {
		a.planSel.cursor = -1
	}
	a.recompute()

	if dir := cfg.DataDir(); dir != a.src.dataDir && !a.src.sample {
		a.src.dataDir = dir
		a.refreshing = true
		return refreshDataCmd(a.src)
	}
	return nil
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := loadConfigOrDefault()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	plan := "(not set)"
	if p, ok := cfg.CurrentPlan(); ok {
		plan = fmt.Sprintf("%s (%s)", p.Name, p.Acronym)
	}
	length := "One semester"
	if cfg.Plan.Semesters >= 2 {
		length = "Full year"
	}
	orRolling := func(s string) string {
		if s == "" {
			return "(rolling window)"
		}
		return s
	}

	fields := []struct{ label, value string }{
		{"Data Directory", cfg.DataDir()},
		{"Dining Plan", plan},
		{"Plan Length", length},
		{"Term Start", orRolling(cfg.General.TermStart)},
		{"Term End", orRolling(cfg.General.TermEnd)},
		{"Lookback Days", strconv.Itoa(cfg.General.LookbackDays)},
		{"Horizon Days", strconv.Itoa(cfg.General.HorizonDays)},
		{"Theme", cfg.Appearance.Theme},
		// Live App state, so the R toggle shows up immediately
		{"Auto Refresh", strconv.FormatBool(a.autoRefresh)},
		{"Refresh Interval", fmt.Sprintf("%ds", int(a.refreshInterval.Seconds()))},
	}

	innerW := components.CardInnerWidth(cw)
	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(truncStr(f.value, innerW-22))
			formBody.WriteString(marker + label + value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			if padLen := innerW - usedWidth; padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(truncStr(f.value, innerW-22)))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit or cycle  [Esc] cancel"))

	var infoBody strings.Builder
	info := [][2]string{
		{"Transactions:    ", cli.FormatNumber(int64(len(a.txns)))},
		{"Load time:       ", fmt.Sprintf("%.1fs", a.loadTime.Seconds())},
		{"Config file:     ", config.Path()},
		{"Cache file:      ", pipeline.CachePath()},
	}
	if a.result != nil && a.result.TotalFiles > 0 {
		info = append(info, [2]string{"Export files:    ",
			fmt.Sprintf("%d parsed, %d duplicates dropped", a.result.ParsedFiles, a.result.Duplicates)})
	}
	if a.src.sample {
		info = append(info, [2]string{"Source:          ", "built-in sample data"})
	}
	for i, row := range info {
		infoBody.WriteString(labelStyle.Render(row[0]) + valueStyle.Render(truncStr(row[1], innerW-17)))
		if i < len(info)-1 {
			infoBody.WriteString("\n")
		}
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))

	return b.String()
}

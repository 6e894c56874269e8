package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/dinebal/internal/config"
	"github.com/theirongolddev/dinebal/internal/model"
	"github.com/theirongolddev/dinebal/internal/pipeline"
	"github.com/theirongolddev/dinebal/internal/projection"
	"github.com/theirongolddev/dinebal/internal/source"
	"github.com/theirongolddev/dinebal/internal/tui/theme"
)

var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.Local)

// newLoadedApp returns an app sized to w x h with the sample history loaded.
func newLoadedApp(t *testing.T, w, h int) App {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	theme.SetActive("flexoki-dark")

	a := NewApp(Options{Config: config.DefaultConfig(), Sample: true})
	a.now = func() time.Time { return testNow }

	a = update(t, a, tea.WindowSizeMsg{Width: w, Height: h})
	return update(t, a, DataLoadedMsg{
		Result: &pipeline.LoadResult{Transactions: source.SampleTransactions(testNow)},
	})
}

func update(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	m, _ := a.Update(msg)
	next, ok := m.(App)
	if !ok {
		t.Fatalf("Update returned %T, want App", m)
	}
	return next
}

func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		a = update(t, a, msg)
	}
	return a
}

func TestSampleModeSkipsSetup(t *testing.T) {
	a := newLoadedApp(t, 120, 40)
	if a.needSetup || a.setupForm != nil {
		t.Fatal("sample mode should never show the setup form")
	}
	if !a.loaded {
		t.Fatal("app not marked loaded")
	}
}

func TestViewFillsTerminalOnEveryTab(t *testing.T) {
	for _, size := range []struct{ w, h int }{{120, 40}, {90, 30}, {200, 50}} {
		a := newLoadedApp(t, size.w, size.h)
		for tab := tabOverview; tab <= tabSettings; tab++ {
			a.activeTab = tab
			view := a.View()
			if got := strings.Count(view, "\n") + 1; got != size.h {
				t.Errorf("%dx%d tab %d: %d lines, want %d", size.w, size.h, tab, got, size.h)
			}
		}
	}
}

func TestTooNarrow(t *testing.T) {
	a := newLoadedApp(t, 60, 20)
	if !strings.Contains(a.View(), "too narrow") {
		t.Error("narrow terminal should explain the minimum width")
	}
}

func TestTabKeys(t *testing.T) {
	a := newLoadedApp(t, 120, 40)

	a = press(t, a, "l")
	if a.activeTab != tabLocations {
		t.Fatalf("l -> tab %d, want Locations", a.activeTab)
	}
	a = press(t, a, "x")
	if a.activeTab != tabSettings {
		t.Fatalf("x -> tab %d, want Settings", a.activeTab)
	}
	a = press(t, a, "right")
	if a.activeTab != tabOverview {
		t.Fatalf("right from Settings -> tab %d, want Overview", a.activeTab)
	}
	a = press(t, a, "left")
	if a.activeTab != tabSettings {
		t.Fatalf("left from Overview -> tab %d, want Settings", a.activeTab)
	}
}

func TestAccountToggle(t *testing.T) {
	a := newLoadedApp(t, 120, 40)
	if a.account != model.AccountDollars {
		t.Fatalf("default account = %s, want dollars", a.account)
	}

	a = press(t, a, "a")
	if a.account != model.AccountSwipes {
		t.Fatalf("after toggle account = %s, want swipes", a.account)
	}
	if len(a.history) == 0 {
		t.Fatal("no swipe history")
	}
	for _, tx := range a.history {
		if tx.Account != model.AccountSwipes {
			t.Fatalf("history holds %s transaction after switching to swipes", tx.Account)
		}
	}
	for i := 1; i < len(a.history); i++ {
		if a.history[i].Time.After(a.history[i-1].Time) {
			t.Fatal("history is not newest first")
		}
	}

	a = press(t, a, "a")
	if a.account != model.AccountDollars {
		t.Fatalf("second toggle account = %s, want dollars", a.account)
	}
}

func TestForecastsComputedForBothAccounts(t *testing.T) {
	a := newLoadedApp(t, 120, 40)
	for _, acc := range model.Accounts {
		fc, ok := a.forecasts[acc]
		if !ok {
			t.Fatalf("no forecast for %s", acc)
		}
		if len(fc.Points) == 0 {
			t.Errorf("%s: no normalized points", acc)
		}
		if fc.Peak <= 0 {
			t.Errorf("%s: peak = %v", acc, fc.Peak)
		}
	}
	if a.forecastErr != nil {
		t.Errorf("forecastErr = %v", a.forecastErr)
	}
}

func TestHistoryNavigation(t *testing.T) {
	a := newLoadedApp(t, 120, 40)
	a = press(t, a, "h")
	last := len(a.history) - 1

	a = press(t, a, "j", "j")
	if a.hist.cursor != 2 {
		t.Fatalf("cursor after jj = %d, want 2", a.hist.cursor)
	}
	a = press(t, a, "k")
	if a.hist.cursor != 1 {
		t.Fatalf("cursor after k = %d, want 1", a.hist.cursor)
	}
	a = press(t, a, "G")
	if a.hist.cursor != last {
		t.Fatalf("cursor after G = %d, want %d", a.hist.cursor, last)
	}
	a = press(t, a, "j")
	if a.hist.cursor != last {
		t.Fatalf("cursor moved past the end: %d", a.hist.cursor)
	}
	a = press(t, a, "g")
	if a.hist.cursor != 0 {
		t.Fatalf("cursor after g = %d, want 0", a.hist.cursor)
	}
}

func TestHistorySearch(t *testing.T) {
	a := newLoadedApp(t, 120, 40)
	a = press(t, a, "h", "/")
	if !a.hist.searching {
		t.Fatal("/ should start a search")
	}

	// While searching, "k" and "a" are typed rather than moving or switching accounts.
	a = press(t, a, "s", "t", "a", "r", "b", "u", "c", "k", "s", "enter")
	if a.hist.searching {
		t.Fatal("enter should close the search input")
	}
	if a.hist.query != "starbucks" {
		t.Fatalf("query = %q, want starbucks", a.hist.query)
	}

	matches := a.searchFilteredHistory()
	if len(matches) == 0 || len(matches) >= len(a.history) {
		t.Fatalf("search kept %d of %d transactions", len(matches), len(a.history))
	}
	for _, tx := range matches {
		if !strings.Contains(strings.ToLower(tx.Location), "starbucks") {
			t.Errorf("unexpected match %q", tx.Location)
		}
	}

	a = press(t, a, "esc")
	if a.hist.query != "" {
		t.Fatalf("esc left query %q", a.hist.query)
	}
}

func TestPlansKeys(t *testing.T) {
	a := newLoadedApp(t, 120, 40)
	a = press(t, a, "p")
	if a.planSel.cursor != 0 {
		t.Fatalf("no configured plan: cursor = %d, want 0", a.planSel.cursor)
	}

	a = press(t, a, "j", "j")
	if a.planSel.cursor != 2 {
		t.Fatalf("cursor after jj = %d, want 2", a.planSel.cursor)
	}
	a = press(t, a, "k", "k", "k")
	if a.planSel.cursor != 0 {
		t.Fatalf("cursor should stop at 0, got %d", a.planSel.cursor)
	}

	a = press(t, a, "y")
	if !a.planSel.year || a.planSel.semesters() != 2 {
		t.Fatal("y should switch to a full year")
	}
	if len(a.fits) != len(a.plans) {
		t.Errorf("%d fits for %d plans", len(a.fits), len(a.plans))
	}
}

func TestLocationsPeriodCycle(t *testing.T) {
	a := newLoadedApp(t, 120, 40)
	a = press(t, a, "l")
	start := a.period()

	a = press(t, a, "t")
	if a.period() == start {
		t.Fatal("t should change the period")
	}
	for range len(pipeline.Periods) - 1 {
		a = press(t, a, "t")
	}
	if a.period() != start {
		t.Errorf("cycling all periods ended on %s, want %s", a.period().Name, start.Name)
	}
}

func TestSettingsCycleThemeSaves(t *testing.T) {
	a := newLoadedApp(t, 120, 40)
	defer theme.SetActive("flexoki-dark")

	a = press(t, a, "x")
	for range settingsFieldTheme {
		a = press(t, a, "j")
	}
	if a.settings.cursor != settingsFieldTheme {
		t.Fatalf("cursor = %d, want theme field", a.settings.cursor)
	}

	a = press(t, a, "enter")
	if a.settings.saveErr != nil {
		t.Fatalf("save failed: %v", a.settings.saveErr)
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	want := theme.Next("flexoki-dark").Name
	if cfg.Appearance.Theme != want || theme.Active.Name != want {
		t.Errorf("theme = %q (active %q), want %q", cfg.Appearance.Theme, theme.Active.Name, want)
	}
}

func TestSettingsRejectsBadNumber(t *testing.T) {
	a := newLoadedApp(t, 120, 40)
	a = press(t, a, "x")
	for range settingsFieldLookback {
		a = press(t, a, "j")
	}

	a = press(t, a, "enter")
	if !a.settings.editing {
		t.Fatal("enter on a text field should open the input")
	}
	a.settings.input.SetValue("soon")
	a = press(t, a, "enter")
	if a.settings.saveErr == nil {
		t.Fatal("non-numeric lookback should fail to save")
	}
	if a.settings.editing {
		t.Error("input should close after enter")
	}
}

func TestLoadErrorBanner(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	a := NewApp(Options{Config: config.DefaultConfig(), Sample: true})
	a.now = func() time.Time { return testNow }
	a = update(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})
	a = update(t, a, DataLoadedMsg{Err: errors.New("disk on fire")})

	if !strings.Contains(a.View(), "disk on fire") {
		t.Error("load error not shown")
	}
}

func TestChartDateLabels(t *testing.T) {
	days := []model.DailyBalance{
		{Date: time.Date(2026, 10, 2, 0, 0, 0, 0, time.Local)},
		{Date: time.Date(2026, 10, 1, 0, 0, 0, 0, time.Local)},
		{Date: time.Date(2026, 9, 30, 0, 0, 0, 0, time.Local)},
	}
	got := chartDateLabels(days)
	want := []string{"Sep", "Oct", "2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("labels = %v, want %v", got, want)
		}
	}
}

func TestRunOutValue(t *testing.T) {
	fc := pipeline.AccountForecast{Forecast: &projection.Forecast{}, WithinWindow: true,
		DepletionDate: time.Date(2026, 12, 3, 0, 0, 0, 0, time.Local)}
	if got := runOutValue(fc, testNow); got != "Dec 3" {
		t.Errorf("within window = %q, want Dec 3", got)
	}

	fc.WithinWindow = false
	fc.DepletionDate = time.Date(2028, 2, 9, 0, 0, 0, 0, time.Local)
	if got := runOutValue(fc, testNow); got != "Feb 9, 2028" {
		t.Errorf("past window = %q, want Feb 9, 2028", got)
	}

	fc.Unbounded = true
	fc.DepletionDate = time.Time{}
	if got := runOutValue(fc, testNow); got != "Never" {
		t.Errorf("unbounded = %q, want Never", got)
	}
}

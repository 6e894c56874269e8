// Package tui provides the interactive Bubble Tea dashboard for dinebal.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/theirongolddev/dinebal/internal/cli"
	"github.com/theirongolddev/dinebal/internal/config"
	"github.com/theirongolddev/dinebal/internal/model"
	"github.com/theirongolddev/dinebal/internal/pipeline"
	"github.com/theirongolddev/dinebal/internal/projection"
	"github.com/theirongolddev/dinebal/internal/source"
	"github.com/theirongolddev/dinebal/internal/store"
	"github.com/theirongolddev/dinebal/internal/tui/components"
	"github.com/theirongolddev/dinebal/internal/tui/theme"
)

// DataLoadedMsg is sent when the data pipeline finishes.
type DataLoadedMsg struct {
	Result   *pipeline.LoadResult
	LoadTime time.Duration
	Err      error
}

// ProgressMsg reports file parsing progress.
type ProgressMsg struct {
	Current int
	Total   int
}

// RefreshDataMsg is sent when a background data refresh completes.
type RefreshDataMsg struct {
	Result   *pipeline.LoadResult
	LoadTime time.Duration
	Err      error
}

// Options configures a new App.
type Options struct {
	DataDir  string
	Config   config.Config
	Account  model.Account
	Location string
	Sample   bool
	NoCache  bool
	Logger   *zap.Logger
}

const (
	tabOverview = iota
	tabLocations
	tabPlans
	tabHistory
	tabSettings
)

// App is the root Bubble Tea model.
type App struct {
	// Data
	txns     []model.Transaction
	result   *pipeline.LoadResult
	loaded   bool
	loadTime time.Duration
	loadErr  error

	// Auto-refresh state
	autoRefresh     bool
	refreshInterval time.Duration
	lastRefresh     time.Time
	refreshing      bool

	// Pre-computed for the current account, location and period
	window      projection.Window
	forecasts   map[model.Account]pipeline.AccountForecast
	forecastErr error
	summary     model.Summary
	prevSummary model.Summary
	days        []model.DailyBalance
	locations   []model.LocationStats
	history     []model.Transaction // newest first
	plans       []config.DiningPlan
	fits        []pipeline.PlanFit
	swipePace   float64
	dollarPace  float64

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Filter state
	account   model.Account
	location  string
	periodIdx int

	// Per-tab state
	hist     historyState
	planSel  planState
	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals SetupValues
	needSetup bool

	// Loading: channel-based progress subscription
	spinner     spinner.Model
	progress    int
	progressMax int
	loadSub     chan tea.Msg // progress + completion messages from loader goroutine

	cfg config.Config
	src loader
	now func() time.Time
	log *zap.Logger
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	// Scroll navigation
	scrollOverhead    = 10 // approximate header + status bar height for half-page calc
	minHalfPageScroll = 1  // minimum lines for half-page scroll
	minContentHeight  = 5  // minimum content area height

	defaultPeriodIdx = 1 // month
	minRefresh       = 10 * time.Second
)

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	account := opts.Account
	if account == "" {
		account = model.AccountDollars
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	refreshInterval := time.Duration(opts.Config.TUI.RefreshIntervalSec) * time.Second
	if refreshInterval < minRefresh {
		refreshInterval = time.Minute
	}

	return App{
		account:         account,
		location:        opts.Location,
		periodIdx:       defaultPeriodIdx,
		needSetup:       !opts.Sample && !config.Exists(),
		autoRefresh:     opts.Config.TUI.AutoRefresh,
		refreshInterval: refreshInterval,
		spinner:         sp,
		loadSub:         make(chan tea.Msg, 1),
		cfg:             opts.Config,
		src: loader{
			dataDir: opts.DataDir,
			sample:  opts.Sample,
			noCache: opts.NoCache,
			log:     log,
		},
		now:     time.Now,
		log:     log,
		planSel: planState{cursor: -1},
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.src, a.loadSub),
		a.spinner.Tick,
		tickCmd(),
	)
}

func (a App) period() model.Period {
	return pipeline.Periods[a.periodIdx%len(pipeline.Periods)]
}

func (a *App) recompute() {
	now := a.now()
	a.plans = a.cfg.Catalog()
	a.window = a.cfg.Window(now)

	a.forecasts = make(map[model.Account]pipeline.AccountForecast, len(model.Accounts))
	a.forecastErr = nil
	for _, acc := range model.Accounts {
		fc, err := pipeline.ForecastAccount(a.txns, acc, a.window)
		if err != nil {
			a.forecastErr = fmt.Errorf("%s: %w", acc.Title(), err)
			a.log.Debug("forecast failed", zap.String("account", acc.String()), zap.Error(err))
		}
		a.forecasts[acc] = fc
	}

	p := a.period()
	since, until := pipeline.PeriodRange(p, now)
	txns := pipeline.FilterByLocation(a.txns, a.location)

	a.summary = pipeline.Summarize(txns, a.account, since, until)
	a.prevSummary = pipeline.Summarize(txns, a.account, since.AddDate(0, 0, -p.Days), since)
	a.days = pipeline.AggregateDays(txns, a.account, since, until)
	a.locations = pipeline.AggregateLocations(pipeline.FilterByAccount(txns, a.account), since, until)

	// Pace ignores the location filter: plans have to cover every purchase.
	swipes := pipeline.Summarize(a.txns, model.AccountSwipes, since, until)
	dollars := pipeline.Summarize(a.txns, model.AccountDollars, since, until)
	a.swipePace = pipeline.WeeklyPace(swipes, p.Days)
	a.dollarPace = pipeline.WeeklyPace(dollars, p.Days)
	a.fits = pipeline.FitPlans(a.plans, a.swipePace, a.dollarPace)

	mine := pipeline.FilterByAccount(txns, a.account)
	a.history = make([]model.Transaction, len(mine))
	for i, t := range mine {
		a.history[len(mine)-1-i] = t
	}

	// Clamp cursors to the new bounds
	visible := a.searchFilteredHistory()
	a.hist.cursor = max(0, min(a.hist.cursor, len(visible)-1))
	a.hist.offset = min(a.hist.offset, a.hist.cursor)

	if a.planSel.cursor < 0 {
		a.planSel.cursor = max(0, config.PlanIndex(a.plans, a.cfg.Plan.Acronym))
	}
	a.planSel.cursor = max(0, min(a.planSel.cursor, len(a.plans)-1))
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabHistory && !a.hist.searching {
				a.hist.cursor = max(0, a.hist.cursor-1)
			}
			return a, nil

		case tea.MouseButtonWheelDown:
			if a.activeTab == tabHistory && !a.hist.searching {
				a.hist.cursor = min(a.hist.cursor+1, max(0, len(a.searchFilteredHistory())-1))
			}
			return a, nil

		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress && msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case DataLoadedMsg:
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.lastRefresh = a.now()
		a.loadErr = msg.Err
		if msg.Result != nil {
			a.result = msg.Result
			a.txns = msg.Result.Transactions
		}
		a.recompute()

		// Activate first-run setup after data loads
		if a.needSetup {
			a.setupVals = SetupValuesFrom(a.cfg)
			a.setupVals.DataDir = a.src.dataDir
			a.setupForm = NewSetupForm(len(a.txns), a.plans, &a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case ProgressMsg:
		a.progress = msg.Current
		a.progressMax = msg.Total
		return a, waitForLoadMsg(a.loadSub)

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if a.loaded && a.autoRefresh && !a.refreshing && !a.src.sample {
			if a.now().Sub(a.lastRefresh) >= a.refreshInterval {
				a.refreshing = true
				cmds = append(cmds, refreshDataCmd(a.src))
			}
		}
		return a, tea.Batch(cmds...)

	case RefreshDataMsg:
		a.refreshing = false
		a.lastRefresh = a.now()
		a.loadErr = msg.Err
		if msg.Err == nil && msg.Result != nil {
			a.result = msg.Result
			a.txns = msg.Result.Transactions
			a.loadTime = msg.LoadTime
		}
		a.recompute()
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Global: quit
	if key == "ctrl+c" {
		return a, tea.Quit
	}

	if !a.loaded {
		return a, nil
	}

	// First-run setup wizard intercepts all keys
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	// Text inputs own the keyboard while focused
	if a.activeTab == tabSettings && a.settings.editing {
		return a.updateSettingsInput(msg)
	}
	if a.activeTab == tabHistory && a.hist.searching {
		return a.updateHistorySearch(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	var handled bool
	switch a.activeTab {
	case tabHistory:
		a, handled = a.updateHistoryKey(key)
		if handled && key == "/" {
			return a, a.hist.input.Cursor.BlinkCmd()
		}
	case tabPlans:
		a, handled = a.updatePlansKey(key)
	case tabLocations:
		if key == "t" {
			a.periodIdx = (a.periodIdx + 1) % len(pipeline.Periods)
			a.recompute()
			handled = true
		}
	case tabSettings:
		var cmd tea.Cmd
		a, cmd, handled = a.updateSettingsKey(key)
		if handled {
			return a, cmd
		}
	}
	if handled {
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit

	case "r":
		if !a.refreshing {
			a.refreshing = true
			return a, refreshDataCmd(a.src)
		}
		return a, nil

	case "R":
		a.autoRefresh = !a.autoRefresh
		// Persist to config (best-effort)
		if cfg, err := config.Load(); err == nil {
			cfg.TUI.AutoRefresh = a.autoRefresh
			if err := config.Save(cfg); err != nil {
				a.log.Debug("saving auto-refresh failed", zap.Error(err))
			}
		}
		return a, nil

	case "a":
		a.toggleAccount()
		return a, nil

	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	if len(msg.Runes) == 1 {
		if tab := components.TabIdxByKey(msg.Runes[0]); tab >= 0 {
			a.activeTab = tab
		}
	}
	return a, nil
}

func (a *App) toggleAccount() {
	for i, acc := range model.Accounts {
		if acc == a.account {
			a.account = model.Accounts[(i+1)%len(model.Accounts)]
			break
		}
	}
	a.hist.cursor, a.hist.offset = 0, 0
	a.recompute()
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		a.needSetup = false
		a.setupForm = nil
		cfg, err := SaveSetup(a.setupVals)
		if err != nil {
			a.settings.saveErr = err
			return a, nil
		}
		a.cfg = cfg
		a.planSel.cursor = -1
		a.recompute()
		if dir := cfg.DataDir(); dir != a.src.dataDir {
			a.src.dataDir = dir
			a.refreshing = true
			return a, refreshDataCmd(a.src)
		}
		return a, nil
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	// First-run setup wizard
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  dinebal needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active
	w := a.width
	h := a.height

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	spinnerStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface)

	countStyle := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ dinebal"))
	b.WriteString(subtitleStyle.Render(" · Dining Balance Tracker"))
	b.WriteString("\n\n")

	if a.progressMax > 0 {
		barW := max(20, min(40, w-30))
		pct := float64(a.progress) / float64(a.progressMax)
		b.WriteString(spinnerStyle.Render(a.spinner.View()))
		b.WriteString(subtitleStyle.Render(" Parsing exports\n\n"))
		b.WriteString(components.ProgressBar(pct, barW))
		b.WriteString("\n")
		b.WriteString(countStyle.Render(cli.FormatNumber(int64(a.progress))))
		b.WriteString(subtitleStyle.Render(" / "))
		b.WriteString(countStyle.Render(cli.FormatNumber(int64(a.progressMax))))
	} else {
		b.WriteString(spinnerStyle.Render(a.spinner.View()))
		b.WriteString(subtitleStyle.Render(" Looking for exports..."))
	}

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings [][2]string
	}{
		{"Navigation", [][2]string{
			{"o l p h x", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Move through lists"},
			{"g G", "First / Last transaction"},
			{"^d ^u", "Half-page scroll"},
		}},
		{"Views", [][2]string{
			{"a", "Switch dollars / swipes"},
			{"t", "Cycle week / month / semester"},
			{"y", "Plans per semester / year"},
			{"/", "Search history by location"},
		}},
		{"Actions", [][2]string{
			{"Enter", "Edit setting"},
			{"Esc", "Back / Cancel"},
			{"r", "Refresh data"},
			{"R", "Toggle auto-refresh"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind[0])),
				descStyle.Render(bind[1]))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + filter pill
	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pillAccent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	filterStr := pillStyle.Render(" ") +
		pillAccent.Render(a.account.Title()) +
		pillStyle.Render(" │ ") + pillAccent.Render(a.period().Name) +
		pillStyle.Render(" │ window ") +
		pillAccent.Render(a.window.Start.Format("Jan 2")+" – "+a.window.End.Format("Jan 2"))
	if a.location != "" {
		filterStr += pillStyle.Render(" │ @ ") + pillAccent.Render(a.location)
	}
	filterRow := lipgloss.NewStyle().Background(t.Surface).Width(w).Render(filterStr)

	header := components.RenderTabBar(a.activeTab, w) + "\n" + filterRow

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, components.StatusInfo{
		Account:     fmt.Sprintf("%s txns", cli.FormatNumber(int64(len(a.txns)))),
		DataAge:     fmt.Sprintf("%.1fs", a.loadTime.Seconds()),
		Refreshing:  a.refreshing,
		AutoRefresh: a.autoRefresh,
		Sample:      a.src.sample,
	})

	// 3. Content zone height
	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	// 4. Tab content
	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabLocations:
		content = a.renderLocationsTab(cw)
	case tabPlans:
		content = a.renderPlansTab(cw)
	case tabHistory:
		content = a.renderHistoryTab(cw, contentH)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}
	if banner := a.errorBanner(cw); banner != "" {
		content = banner + "\n" + content
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Center when the terminal is wider than the content
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// errorBanner reports load and forecast failures above the tab content.
func (a App) errorBanner(cw int) string {
	var msgs []string
	if a.loadErr != nil {
		msgs = append(msgs, "Load failed: "+a.loadErr.Error())
	}
	if a.forecastErr != nil {
		msgs = append(msgs, "Forecast failed: "+a.forecastErr.Error())
	}
	if a.result != nil && a.result.ParseErrors+a.result.FileErrors > 0 {
		msgs = append(msgs, fmt.Sprintf("Skipped %d malformed rows and %d unreadable files",
			a.result.ParseErrors, a.result.FileErrors))
	}
	if len(msgs) == 0 {
		return ""
	}
	t := theme.Active
	style := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Width(cw).Padding(0, 1)
	return style.Render(strings.Join(msgs, "  ·  "))
}

// ─── Helpers ────────────────────────────────────────────────────

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// loader knows where transactions come from.
type loader struct {
	dataDir string
	sample  bool
	noCache bool
	log     *zap.Logger
}

// load runs the pipeline, preferring the SQLite cache and falling back to a
// full parse when the cache cannot be used.
func (l loader) load(progressFn pipeline.ProgressFunc) (*pipeline.LoadResult, error) {
	if l.sample {
		return &pipeline.LoadResult{Transactions: source.SampleTransactions(time.Now())}, nil
	}

	if !l.noCache {
		cache, err := store.Open(pipeline.CachePath())
		if err == nil {
			cr, loadErr := pipeline.LoadWithCache(l.dataDir, cache, l.log, progressFn)
			_ = cache.Close()
			if loadErr == nil {
				return &cr.LoadResult, nil
			}
			l.log.Debug("cached load failed, reparsing", zap.Error(loadErr))
		} else {
			l.log.Debug("cache unavailable", zap.Error(err))
		}
	}

	return pipeline.Load(l.dataDir, l.log, progressFn)
}

// loadDataCmd starts the data loading pipeline in a background goroutine.
// It streams ProgressMsg updates and a final DataLoadedMsg through sub.
func loadDataCmd(l loader, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			start := time.Now()

			// Non-blocking send so workers aren't stalled.
			// If the channel is full, skip; the next update catches up.
			progressFn := func(current, total int) {
				select {
				case sub <- ProgressMsg{Current: current, Total: total}:
				default:
				}
			}

			result, err := l.load(progressFn)
			sub <- DataLoadedMsg{Result: result, LoadTime: time.Since(start), Err: err}
		}()

		// Block until the first message (either ProgressMsg or DataLoadedMsg)
		return <-sub
	}
}

// waitForLoadMsg blocks until the next message arrives from the loader goroutine.
func waitForLoadMsg(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

// refreshDataCmd reloads in the background without progress UI.
func refreshDataCmd(l loader) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		result, err := l.load(nil)
		return RefreshDataMsg{Result: result, LoadTime: time.Since(start), Err: err}
	}
}

// chartDateLabels builds compact X-axis labels for a chronological date series.
// First label and month boundaries show the month, everything else the day.
// days is sorted newest-first; labels are returned oldest-left.
func chartDateLabels(days []model.DailyBalance) []string {
	n := len(days)
	labels := make([]string, n)
	prevMonth := time.Month(0)
	for i := range days {
		dt := days[n-1-i].Date
		if i == 0 || dt.Month() != prevMonth {
			labels[i] = dt.Format("Jan")
		} else {
			labels[i] = strconv.Itoa(dt.Day())
		}
		prevMonth = dt.Month()
	}
	return labels
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}

package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/dinebal/internal/cli"
	"github.com/theirongolddev/dinebal/internal/config"
	"github.com/theirongolddev/dinebal/internal/tui/theme"
)

// SetupValues holds the first-run form answers as strings, the way huh binds them.
type SetupValues struct {
	DataDir   string
	Plan      string
	Semesters string
	TermStart string
	TermEnd   string
	Theme     string
}

// SetupValuesFrom seeds the form from an existing config.
func SetupValuesFrom(cfg config.Config) SetupValues {
	semesters := cfg.Plan.Semesters
	if semesters < 1 {
		semesters = 1
	}
	return SetupValues{
		DataDir:   cfg.DataDir(),
		Plan:      cfg.Plan.Acronym,
		Semesters: strconv.Itoa(semesters),
		TermStart: cfg.General.TermStart,
		TermEnd:   cfg.General.TermEnd,
		Theme:     cfg.Appearance.Theme,
	}
}

// NewSetupForm builds the setup form. found is the number of transactions
// already loaded, shown in the welcome note.
func NewSetupForm(found int, plans []config.DiningPlan, vals *SetupValues) *huh.Form {
	welcome := "No exports found yet. Point dinebal at the folder you save them to."
	if found > 0 {
		welcome = fmt.Sprintf("Found %s transactions.", cli.FormatNumber(int64(found)))
	}

	planOpts := []huh.Option[string]{huh.NewOption("Not sure yet", "")}
	for _, p := range plans {
		label := fmt.Sprintf("%-6s %s  (%d swipes, $%d)", p.Acronym, p.Name, p.Swipes, p.Dollars)
		planOpts = append(planOpts, huh.NewOption(label, p.Acronym))
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(fmt.Sprintf("%-17s %s", t.Name, t.Description), t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to dinebal").
				Description(welcome),
			huh.NewInput().
				Title("Data directory").
				Description("Exports are read from its history/ folder").
				Value(&vals.DataDir).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("data directory cannot be empty")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Dining plan").
				Options(planOpts...).
				Value(&vals.Plan),
			huh.NewSelect[string]().
				Title("Plan length").
				Options(
					huh.NewOption("One semester", "1"),
					huh.NewOption("Full year", "2"),
				).
				Value(&vals.Semesters),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Term start").
				Description("YYYY-MM-DD, blank for a rolling window").
				Value(&vals.TermStart).
				Validate(validDate),
			huh.NewInput().
				Title("Term end").
				Description("YYYY-MM-DD, inclusive").
				Value(&vals.TermEnd).
				Validate(validDate),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
		),
	).WithShowHelp(false)
}

func validDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("want YYYY-MM-DD")
	}
	return nil
}

// Apply copies the answers onto cfg and validates the result.
func (v SetupValues) Apply(cfg *config.Config) error {
	dir := strings.TrimSpace(v.DataDir)
	if dir == config.DefaultDataDir() {
		dir = ""
	}
	cfg.General.DataDir = dir
	cfg.Plan.Acronym = strings.ToUpper(strings.TrimSpace(v.Plan))

	semesters, err := strconv.Atoi(v.Semesters)
	if err != nil || semesters < 1 {
		semesters = 1
	}
	cfg.Plan.Semesters = semesters

	cfg.General.TermStart = strings.TrimSpace(v.TermStart)
	cfg.General.TermEnd = strings.TrimSpace(v.TermEnd)
	if v.Theme != "" {
		cfg.Appearance.Theme = v.Theme
	}
	return cfg.Validate()
}

// SaveSetup applies the answers to the on-disk config and activates the theme.
func SaveSetup(vals SetupValues) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	if err := vals.Apply(&cfg); err != nil {
		return cfg, err
	}
	if err := config.Save(cfg); err != nil {
		return cfg, err
	}
	theme.SetActive(cfg.Appearance.Theme)
	return cfg, nil
}

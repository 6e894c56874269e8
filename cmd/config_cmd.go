package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/dinebal/internal/config"
	"github.com/theirongolddev/dinebal/internal/pipeline"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Printf("  Cache:       %s\n", pipeline.CachePath())
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory: %s\n", flagDataDir)
	if cfg.HasTerm() {
		fmt.Printf("    Term:           %s to %s\n", cfg.General.TermStart, cfg.General.TermEnd)
	} else {
		fmt.Printf("    Lookback days:  %d\n", cfg.General.LookbackDays)
		fmt.Printf("    Horizon days:   %d\n", cfg.General.HorizonDays)
	}
	fmt.Println()

	fmt.Println("  [Plan]")
	if plan, ok := cfg.CurrentPlan(); ok {
		fmt.Printf("    Plan:      %s\n", planLabel(plan))
	} else if cfg.Plan.Acronym != "" {
		fmt.Printf("    Plan:      %s (not in catalog)\n", cfg.Plan.Acronym)
	} else {
		fmt.Println("    Plan:      not set")
	}
	fmt.Printf("    Semesters: %d\n", max(cfg.Plan.Semesters, 1))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	if len(cfg.Plans.Overrides) > 0 {
		fmt.Println("  [Plan overrides]")
		acronyms := make([]string, 0, len(cfg.Plans.Overrides))
		for acr := range cfg.Plans.Overrides {
			acronyms = append(acronyms, acr)
		}
		sort.Strings(acronyms)
		for _, acr := range acronyms {
			if p, ok := config.LookupPlan(cfg.Catalog(), acr); ok {
				fmt.Printf("    %-6s %d swipes, $%d for $%d\n", p.Acronym, p.Swipes, p.Dollars, p.Cost)
			}
		}
		fmt.Println()
	}

	fmt.Println("  Run `dinebal setup` to reconfigure.")
	return nil
}

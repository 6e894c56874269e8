package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/dinebal/internal/config"
	"github.com/theirongolddev/dinebal/internal/source"
	"github.com/theirongolddev/dinebal/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	// A broken config file is what setup repairs, so skip the root loader.
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error { return nil },
	RunE:              runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	existing, err := config.Load()
	if err != nil {
		fmt.Printf("  Ignoring unreadable config: %v\n", err)
		existing = config.DefaultConfig()
	}

	vals := tui.SetupValuesFrom(existing)
	if flagDataDir != "" {
		vals.DataDir = flagDataDir
	}

	// Count what is already there so the welcome note can say so.
	found := 0
	if files, err := source.ScanDir(vals.DataDir); err == nil {
		for _, f := range files {
			found += len(source.ParseFile(f).Transactions)
		}
	}

	if err := tui.NewSetupForm(found, existing.Catalog(), &vals).Run(); err != nil {
		return err
	}

	saved, err := tui.SaveSetup(vals)
	if err != nil {
		return err
	}

	fmt.Printf("\n  Saved %s\n", config.Path())
	if plan, ok := saved.CurrentPlan(); ok {
		fmt.Printf("  Plan: %s\n", planLabel(plan))
	}
	fmt.Println("  Run `dinebal` for a summary or `dinebal tui` for the dashboard.")
	return nil
}

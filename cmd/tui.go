package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/dinebal/internal/config"
	"github.com/theirongolddev/dinebal/internal/model"
	"github.com/theirongolddev/dinebal/internal/tui"
	"github.com/theirongolddev/dinebal/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	var account model.Account
	if flagAccount != "" {
		acc, err := model.ParseAccount(flagAccount)
		if err != nil {
			return err
		}
		account = acc
	}

	theme.SetActive(cfg.Appearance.Theme)

	// The alternate screen owns the terminal, so verbose logs go to a file.
	log := zap.NewNop()
	if flagVerbose {
		if err := os.MkdirAll(config.Dir(), 0o755); err != nil {
			return fmt.Errorf("creating config dir: %w", err)
		}
		zc := zap.NewDevelopmentConfig()
		zc.OutputPaths = []string{filepath.Join(config.Dir(), "tui.log")}
		zc.ErrorOutputPaths = zc.OutputPaths
		l, err := zc.Build()
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer func() { _ = l.Sync() }()
		log = l
	}

	// Cards draw their own backgrounds; without a color profile lipgloss
	// may fall back to ASCII and leave them unpainted.
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(tui.Options{
		DataDir:  flagDataDir,
		Config:   cfg,
		Account:  account,
		Location: flagLocation,
		Sample:   flagSample,
		NoCache:  flagNoCache,
		Logger:   log,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

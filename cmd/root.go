// Package cmd implements the dinebal CLI commands.
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/dinebal/internal/cli"
	"github.com/theirongolddev/dinebal/internal/config"
	"github.com/theirongolddev/dinebal/internal/model"
	"github.com/theirongolddev/dinebal/internal/pipeline"
	"github.com/theirongolddev/dinebal/internal/projection"
	"github.com/theirongolddev/dinebal/internal/source"
	"github.com/theirongolddev/dinebal/internal/store"
)

var (
	flagDataDir  string
	flagAccount  string
	flagDays     int
	flagHorizon  int
	flagPeriod   string
	flagLocation string
	flagNoCache  bool
	flagSample   bool
	flagQuiet    bool
	flagVerbose  bool
)

var (
	cfg    = config.DefaultConfig()
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:               "dinebal",
	Short:             "Dining plan balance tracker",
	Long:              "Track dining dollars and meal swipes, and forecast when they run out.",
	PersistentPreRunE: setup,
	RunE:              runSummary,
	SilenceUsage:      true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Directory holding history exports (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagAccount, "account", "a", "", "Limit to one account: dollars or swipes")
	rootCmd.PersistentFlags().IntVarP(&flagDays, "days", "n", 0, "Forecast window lookback in days (default from config)")
	rootCmd.PersistentFlags().IntVar(&flagHorizon, "horizon", 0, "Forecast window horizon in days (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagPeriod, "period", "p", "month", "Reporting period: week, month or semester")
	rootCmd.PersistentFlags().StringVarP(&flagLocation, "location", "l", "", "Filter to location (substring match)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip SQLite cache, reparse everything")
	rootCmd.PersistentFlags().BoolVar(&flagSample, "sample", false, "Use the bundled sample history")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log diagnostics to stderr")
}

// setup loads the config file and lets explicit flags override it.
func setup(cmd *cobra.Command, _ []string) error {
	if flagVerbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		logger = l
	}

	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded

	flags := cmd.Flags()
	if !flags.Changed("data-dir") {
		flagDataDir = cfg.DataDir()
	}
	if flags.Changed("days") {
		if flagDays < 0 {
			return fmt.Errorf("--days must be non-negative, got %d", flagDays)
		}
		cfg.General.LookbackDays = flagDays
		// An explicit lookback replaces the term window.
		cfg.General.TermStart, cfg.General.TermEnd = "", ""
	}
	if flags.Changed("horizon") {
		if flagHorizon < 0 {
			return fmt.Errorf("--horizon must be non-negative, got %d", flagHorizon)
		}
		cfg.General.HorizonDays = flagHorizon
		cfg.General.TermStart, cfg.General.TermEnd = "", ""
	}

	logger.Debug("config loaded",
		zap.String("path", config.Path()),
		zap.String("data_dir", flagDataDir),
		zap.Bool("term", cfg.HasTerm()))
	return nil
}

// loadData is the shared data loading path used by all commands.
// Uses SQLite cache when available for fast subsequent runs.
func loadData() (*pipeline.LoadResult, error) {
	if flagSample {
		return &pipeline.LoadResult{Transactions: source.SampleTransactions(time.Now())}, nil
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Scanning %s...\n", flagDataDir)
	}

	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		if current%10 == 0 || current == total {
			fmt.Fprintf(os.Stderr, "\r  Parsing [%d/%d]", current, total)
		}
	}

	// Try cached load unless --no-cache
	if !flagNoCache {
		cache, err := store.Open(pipeline.CachePath())
		if err != nil {
			logger.Debug("cache unavailable", zap.Error(err))
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Cache unavailable, doing full parse\n")
			}
		} else {
			defer cache.Close()

			cr, err := pipeline.LoadWithCache(flagDataDir, cache, logger, progressFn)
			if err != nil {
				logger.Debug("cached load failed", zap.Error(err))
				if !flagQuiet {
					fmt.Fprintf(os.Stderr, "\n  Cache error, falling back to full parse\n")
				}
			} else {
				if !flagQuiet && cr.TotalFiles > 0 {
					if cr.Reparsed == 0 {
						fmt.Fprintf(os.Stderr, "\r  Loaded %s transactions from cache (%d files)    \n",
							cli.FormatNumber(int64(len(cr.Transactions))),
							cr.TotalFiles,
						)
					} else {
						fmt.Fprintf(os.Stderr, "\r  %d cached + %d reparsed (%s transactions)    \n",
							cr.CacheHits,
							cr.Reparsed,
							cli.FormatNumber(int64(len(cr.Transactions))),
						)
					}
				}
				return &cr.LoadResult, nil
			}
		}
	}

	// Uncached path
	result, err := pipeline.Load(flagDataDir, logger, progressFn)
	if err != nil {
		return nil, err
	}

	if !flagQuiet && result.TotalFiles > 0 {
		fmt.Fprintf(os.Stderr, "\r  Parsed %s transactions across %d files    \n",
			cli.FormatNumber(int64(len(result.Transactions))),
			result.ParsedFiles,
		)
	}

	return result, nil
}

// printLoadWarnings reports rows and files that were skipped while loading.
func printLoadWarnings(result *pipeline.LoadResult) {
	if result.FileErrors > 0 {
		fmt.Fprintf(os.Stderr, "\n  %d files could not be read\n", result.FileErrors)
	}
	if result.ParseErrors > 0 {
		fmt.Fprintf(os.Stderr, "\n  %d malformed rows were skipped\n", result.ParseErrors)
	}
}

func printNoData() {
	fmt.Println("\n  No transactions found.")
	fmt.Printf("  Drop .jsonl or .csv exports into %s/%s, or try --sample.\n", flagDataDir, source.HistoryDir)
}

// selectedAccounts returns the accounts named by --account, or all of them.
func selectedAccounts() ([]model.Account, error) {
	if flagAccount == "" {
		return model.Accounts, nil
	}
	a, err := model.ParseAccount(flagAccount)
	if err != nil {
		return nil, err
	}
	return []model.Account{a}, nil
}

// selectedPeriod resolves --period against the known reporting periods.
func selectedPeriod() (model.Period, error) {
	for _, p := range pipeline.Periods {
		if strings.EqualFold(p.Name, flagPeriod) {
			return p, nil
		}
	}
	names := make([]string, len(pipeline.Periods))
	for i, p := range pipeline.Periods {
		names[i] = strings.ToLower(p.Name)
	}
	return model.Period{}, fmt.Errorf("unknown period %q (want %s)", flagPeriod, strings.Join(names, ", "))
}

// applyFilters narrows transactions by --location. Account filtering happens
// per section since every view is split by account.
func applyFilters(txns []model.Transaction) []model.Transaction {
	return pipeline.FilterByLocation(txns, flagLocation)
}

// forecastWindow is the config window with flag overrides applied.
func forecastWindow(now time.Time) projection.Window {
	return cfg.Window(now)
}

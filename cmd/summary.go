package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/dinebal/internal/cli"
	"github.com/theirongolddev/dinebal/internal/config"
	"github.com/theirongolddev/dinebal/internal/pipeline"
	"github.com/theirongolddev/dinebal/internal/projection"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Balances, spending and run-out dates per account",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	result, err := loadData()
	if err != nil {
		return err
	}
	if len(result.Transactions) == 0 {
		printNoData()
		return nil
	}

	accounts, err := selectedAccounts()
	if err != nil {
		return err
	}
	period, err := selectedPeriod()
	if err != nil {
		return err
	}

	txns := applyFilters(result.Transactions)
	now := time.Now()
	since, until := pipeline.PeriodRange(period, now)
	prevSince := since.AddDate(0, 0, -period.Days)
	w := forecastWindow(now)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DINING BALANCES  Last %s", strings.ToLower(period.Name))))
	fmt.Println()

	for _, account := range accounts {
		stats := pipeline.Summarize(txns, account, since, until)
		prev := pipeline.Summarize(txns, account, prevSince, since)

		// The forecast always uses the unfiltered history: a location filter
		// would hide the balance changes that shape the slope.
		fc, err := pipeline.ForecastAccount(result.Transactions, account, w)
		if err != nil {
			return fmt.Errorf("forecasting %s: %w", account, err)
		}

		perDay := fmt.Sprintf("%s/day", cli.FormatBalance(account, stats.SpendPerDay))
		if prev.SpendPerDay > 0 {
			perDay += fmt.Sprintf("  (%s vs prev)", cli.FormatDelta(account, stats.SpendPerDay, prev.SpendPerDay))
		}

		rows := [][]string{
			{"Balance", cli.FormatDecimal(account, stats.Balance)},
			{"Runs out", forecastStatus(fc, now)},
			{"---"},
			{"Spent", cli.FormatDecimal(account, stats.Spent)},
			{"Deposited", cli.FormatDecimal(account, stats.Deposited)},
			{"Purchases", cli.FormatNumber(int64(stats.Purchases))},
			{"Active days", cli.FormatNumber(int64(stats.ActiveDays))},
			{"---"},
			{"Spend/active day", perDay},
			{"Per purchase", cli.FormatBalance(account, stats.SpendPerPurchase)},
			{"Last activity", cli.FormatRelative(stats.LastActivity, now)},
		}

		fmt.Print(cli.RenderTable(cli.Table{
			Title:   account.Title(),
			Headers: []string{"Metric", "Value"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	if plan, ok := cfg.CurrentPlan(); ok {
		t := plan.Totals(cfg.Plan.Semesters)
		fmt.Printf("  Plan: %s  %s swipes + %s for %s\n",
			planLabel(plan),
			cli.FormatNumber(int64(t.Swipes)),
			cli.FormatDollars(float64(t.Dollars)),
			cli.FormatDollars(float64(t.Cost)))
	} else {
		fmt.Println("  No plan configured. Run `dinebal setup` to pick one.")
	}

	printLoadWarnings(result)
	return nil
}

// forecastStatus describes an account's projected run-out in one line.
func forecastStatus(fc pipeline.AccountForecast, now time.Time) string {
	switch {
	case errors.Is(fc.Err, projection.ErrInsufficientData):
		return "no history yet"
	case errors.Is(fc.Err, projection.ErrUndefinedSlope):
		return "not declining"
	case !fc.HasForecast():
		return "-"
	case fc.Unbounded:
		return "no run-out in sight"
	}

	date := cli.FormatDepletionDate(fc.DepletionDate, now)
	rel := cli.FormatRelative(fc.DepletionDate, now)
	if !fc.WithinWindow {
		return fmt.Sprintf("%s (%s, after the window)", date, rel)
	}
	return fmt.Sprintf("%s (%s)", date, rel)
}

// planLabel renders a plan as "Away From Kitchen (AFK)".
func planLabel(p config.DiningPlan) string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Acronym)
}

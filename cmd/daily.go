package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/dinebal/internal/cli"
	"github.com/theirongolddev/dinebal/internal/pipeline"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Daily balance movement table",
	RunE:  runDaily,
}

func init() {
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(_ *cobra.Command, _ []string) error {
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
	since, until := pipeline.PeriodRange(period, time.Now())

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DAILY BALANCES  Last %d days", period.Days)))
	fmt.Println()

	for _, account := range accounts {
		days := pipeline.AggregateDays(txns, account, since, until)
		if len(days) == 0 {
			continue
		}

		rows := make([][]string, 0, len(days))
		spent := make([]float64, len(days))
		for i, d := range days {
			// Sparkline reads left to right, oldest first.
			spent[len(days)-1-i] = d.Spent.InexactFloat64()
			if !d.HasData {
				continue
			}
			rows = append(rows, []string{
				d.Date.Format("2006-01-02"),
				cli.FormatDayOfWeek(int(d.Date.Weekday())),
				cli.FormatNumber(int64(d.Transactions)),
				cli.FormatDecimal(account, d.Spent),
				cli.FormatDecimal(account, d.Deposited),
				cli.FormatDecimal(account, d.Close),
			})
		}
		if len(rows) == 0 {
			fmt.Printf("  %s: no activity.\n\n", account.Title())
			continue
		}

		fmt.Print(cli.RenderTable(cli.Table{
			Title:    account.Title(),
			Headers:  []string{"Date", "Day", "Txns", "Spent", "Deposited", "Close"},
			Rows:     rows,
			LeftCols: 2,
		}))
		fmt.Printf("  Spend  %s\n\n", cli.RenderSparkline(spent))
	}

	printLoadWarnings(result)
	return nil
}

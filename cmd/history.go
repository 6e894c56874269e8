package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/dinebal/internal/cli"
	"github.com/theirongolddev/dinebal/internal/model"
	"github.com/theirongolddev/dinebal/internal/pipeline"
)

var flagLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Recent transactions, newest first",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 25, "Maximum rows to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	result, err := loadData()
	if err != nil {
		return err
	}
	if len(result.Transactions) == 0 {
		printNoData()
		return nil
	}

	period, err := selectedPeriod()
	if err != nil {
		return err
	}

	txns := applyFilters(result.Transactions)
	if flagAccount != "" {
		account, err := model.ParseAccount(flagAccount)
		if err != nil {
			return err
		}
		txns = pipeline.FilterByAccount(txns, account)
	}
	since, until := pipeline.PeriodRange(period, time.Now())
	txns = pipeline.FilterByTime(txns, since, until)

	if len(txns) == 0 {
		fmt.Println("\n  No transactions in the selected period.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("HISTORY  Last %d days", period.Days)))
	fmt.Println()

	rows := make([][]string, 0, len(txns))
	for i := len(txns) - 1; i >= 0; i-- {
		if flagLimit > 0 && len(rows) == flagLimit {
			break
		}
		t := txns[i]
		rows = append(rows, []string{
			t.Time.Local().Format("Jan 02 15:04"),
			t.Account.Title(),
			t.Location,
			cli.FormatAmount(t.Account, t.Amount),
			cli.FormatDecimal(t.Account, t.Balance),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers:  []string{"When", "Account", "Location", "Amount", "Balance"},
		Rows:     rows,
		LeftCols: 3,
	}))

	if len(rows) < len(txns) {
		fmt.Printf("  Showing %d of %d. Use --limit 0 for all.\n", len(rows), len(txns))
	}

	printLoadWarnings(result)
	return nil
}

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/dinebal/internal/cli"
	"github.com/theirongolddev/dinebal/internal/pipeline"
)

var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "Where the money and swipes go",
	RunE:  runLocations,
}

func init() {
	rootCmd.AddCommand(locationsCmd)
}

func runLocations(_ *cobra.Command, _ []string) error {
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
	fmt.Println(cli.RenderTitle(fmt.Sprintf("LOCATIONS  Last %s", strings.ToLower(period.Name))))
	fmt.Println()

	for _, account := range accounts {
		locs := pipeline.AggregateLocations(pipeline.FilterByAccount(txns, account), since, until)
		if len(locs) == 0 {
			fmt.Printf("  %s: no spending.\n\n", account.Title())
			continue
		}

		shares := make([]float64, len(locs))
		rows := make([][]string, 0, len(locs))
		for i, l := range locs {
			shares[i] = l.Share
			rows = append(rows, []string{
				l.Location,
				cli.FormatNumber(int64(l.Visits)),
				cli.FormatDecimal(account, l.Total),
				cli.FormatPercent(l.Share),
				cli.RenderHorizontalBar(l.Share, locs[0].Share, 16),
			})
		}

		fmt.Print(cli.RenderTable(cli.Table{
			Title:   account.Title(),
			Headers: []string{"Location", "Visits", "Total", "Share", ""},
			Rows:    rows,
		}))
		fmt.Printf("  %s\n", cli.RenderPortionBar(shares, 60, nil))

		var legend []string
		for i, l := range locs {
			if i == len(cli.SeriesColors) {
				break
			}
			legend = append(legend, fmt.Sprintf("%s %s",
				cli.RenderSwatch(i), l.Location))
		}
		fmt.Printf("  %s\n\n", strings.Join(legend, "  "))
	}

	printLoadWarnings(result)
	return nil
}

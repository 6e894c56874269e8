package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/dinebal/internal/cli"
	"github.com/theirongolddev/dinebal/internal/pipeline"
	"github.com/theirongolddev/dinebal/internal/projection"
)

var (
	flagPlotWidth  int
	flagPlotHeight int
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Plot balance history and the projected run-out date",
	RunE:  runForecast,
}

func init() {
	forecastCmd.Flags().IntVar(&flagPlotWidth, "width", 60, "Plot width in columns")
	forecastCmd.Flags().IntVar(&flagPlotHeight, "height", 12, "Plot height in rows")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(_ *cobra.Command, _ []string) error {
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

	now := time.Now()
	w := forecastWindow(now)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("FORECAST  %s - %s",
		w.Start.Format("Jan 2"), w.End.Format("Jan 2, 2006"))))
	fmt.Println()

	for _, account := range accounts {
		fc, err := pipeline.ForecastAccount(result.Transactions, account, w)
		if err != nil {
			return fmt.Errorf("forecasting %s: %w", account, err)
		}
		fmt.Print(renderForecast(fc, now))
		fmt.Println()
	}

	printLoadWarnings(result)
	return nil
}

// renderForecast draws one account's curve followed by its run-out line.
func renderForecast(fc pipeline.AccountForecast, now time.Time) string {
	head := fmt.Sprintf("  %s\n", fc.Account.Title())
	if len(fc.Points) == 0 {
		return head + "  No history yet.\n"
	}

	markers := []cli.Marker{{X: fc.Window.X(now), Label: "today"}}
	p := cli.PlotCurve(fc.Points, fc.Forecast, markers, flagPlotWidth, flagPlotHeight)

	chart := cli.RenderCurve(cli.CurveChart{
		Plot:    p,
		YTop:    cli.FormatBalance(fc.Account, fc.Peak),
		YBottom: cli.FormatBalance(fc.Account, 0),
		XStart:  fc.Window.Start.Format("Jan 2"),
		XEnd:    fc.Window.End.Format("Jan 2"),
		Markers: markers,
	}, cli.DefaultCurvePalette)

	visible := len(projection.Clip(fc.Points))
	out := head + chart
	out += fmt.Sprintf("  %d of %d balances fall inside the window\n", visible, len(fc.Points))
	out += fmt.Sprintf("  Balance now: %s\n", cli.FormatBalance(fc.Account, fc.Balance))
	out += fmt.Sprintf("  Out of %s: %s\n", fc.Account.Title(), forecastStatus(fc, now))
	return out
}

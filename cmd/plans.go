package cmd

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/dinebal/internal/cli"
	"github.com/theirongolddev/dinebal/internal/config"
	"github.com/theirongolddev/dinebal/internal/model"
	"github.com/theirongolddev/dinebal/internal/pipeline"
)

var flagYear bool

var plansCmd = &cobra.Command{
	Use:   "plans [ACRONYM]",
	Short: "Compare dining plans against your spending pace",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPlans,
}

func init() {
	plansCmd.Flags().BoolVar(&flagYear, "year", false, "Show totals for a full year (two semesters)")
	rootCmd.AddCommand(plansCmd)
}

func runPlans(_ *cobra.Command, args []string) error {
	plans := cfg.Catalog()
	semesters := 1
	scope := "semester"
	if flagYear {
		semesters = 2
		scope = "year"
	}

	if len(args) == 1 {
		plan, ok := config.LookupPlan(plans, args[0])
		if !ok {
			return fmt.Errorf("unknown plan %q", args[0])
		}
		printPlanDetail(plan, semesters, scope)
		return nil
	}

	current, _ := cfg.CurrentPlan()

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DINING PLANS  Per %s", scope)))
	fmt.Println()

	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		t := p.Totals(semesters)
		mark := ""
		if p.Acronym == current.Acronym {
			mark = "*"
		}
		rows = append(rows, []string{
			p.Acronym + mark,
			p.Name,
			cli.FormatNumber(int64(t.Swipes)),
			cli.FormatDollars(float64(t.Dollars)),
			cli.FormatDollars(float64(t.Cost)),
			formatRate(p.CostPerSwipe()),
			cli.FormatSwipes(roundTenth(p.SwipesPerWeek())),
			cli.FormatDollars(p.DollarsPerWeek()),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers:  []string{"Plan", "Name", "Swipes", "Dollars", "Cost", "Per Swipe", "Swipes/wk", "Dollars/wk"},
		Rows:     rows,
		LeftCols: 2,
	}))
	if current.Acronym != "" {
		fmt.Println("  * current plan")
	}
	fmt.Println()

	return printPlanFit(plans)
}

// printPlanFit ranks plans by what they would have cost at the recent pace.
func printPlanFit(plans []config.DiningPlan) error {
	result, err := loadData()
	if err != nil {
		return err
	}
	if len(result.Transactions) == 0 {
		return nil
	}
	period, err := selectedPeriod()
	if err != nil {
		return err
	}

	since, until := pipeline.PeriodRange(period, time.Now())
	swipes := pipeline.Summarize(result.Transactions, model.AccountSwipes, since, until)
	dollars := pipeline.Summarize(result.Transactions, model.AccountDollars, since, until)
	swipePace := pipeline.WeeklyPace(swipes, period.Days)
	dollarPace := pipeline.WeeklyPace(dollars, period.Days)

	fmt.Printf("  Pace over the last %d days: %s swipes/wk, %s/wk\n\n",
		period.Days, cli.FormatSwipes(roundTenth(swipePace)), cli.FormatDollars(dollarPace))

	rows := [][]string{}
	for _, f := range pipeline.FitPlans(plans, swipePace, dollarPace) {
		covers := "yes"
		if !f.Covers() {
			covers = "short"
		}
		rows = append(rows, []string{
			f.Plan.Acronym,
			cli.FormatDollars(f.EffectiveCost),
			cli.FormatSwipes(roundTenth(f.SwipesLeft)),
			cli.FormatDollars(f.DollarsLeft),
			covers,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Best fit per semester",
		Headers: []string{"Plan", "Effective Cost", "Swipes Left", "Dollars Left", "Covers"},
		Rows:    rows,
	}))

	printLoadWarnings(result)
	return nil
}

func printPlanDetail(p config.DiningPlan, semesters int, scope string) {
	t := p.Totals(semesters)

	fmt.Println()
	fmt.Println(cli.RenderTitle(planLabel(p)))
	fmt.Println()

	rows := [][]string{
		{"Swipes", cli.FormatNumber(int64(t.Swipes))},
		{"Dining dollars", cli.FormatDollars(float64(t.Dollars))},
		{"Cost", cli.FormatDollars(float64(t.Cost))},
		{"---"},
		{"Cost per swipe", formatRate(p.CostPerSwipe())},
		{"Cost per dollar", formatRate(p.CostPerDollar())},
		{"---"},
		{"Swipes per week", cli.FormatSwipes(roundTenth(p.SwipesPerWeek()))},
		{"Dollars per week", cli.FormatDollars(p.DollarsPerWeek())},
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Per " + scope,
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))
}

// formatRate renders a unit price, or "-" when the plan has none of that unit.
func formatRate(v float64) string {
	if v == 0 {
		return "-"
	}
	return cli.FormatDollars(v)
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

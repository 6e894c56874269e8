package pipeline

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/dinebal/internal/model"
)

func day(d int, hour int) time.Time {
	return time.Date(2026, 9, d, hour, 0, 0, 0, time.Local)
}

func txn(id string, account model.Account, loc string, amount, balance string, at time.Time) model.Transaction {
	return model.Transaction{
		ID:       id,
		Account:  account,
		Location: loc,
		Amount:   decimal.RequireFromString(amount),
		Balance:  decimal.RequireFromString(balance),
		Time:     at,
	}
}

func fixture() []model.Transaction {
	txns := []model.Transaction{
		txn("d0", model.AccountDollars, "Dining Plan", "300", "300", day(1, 9)),
		txn("d1", model.AccountDollars, "Houston Hall", "-20", "280", day(2, 12)),
		txn("d2", model.AccountDollars, "Pret a Manger", "-10", "270", day(2, 18)),
		txn("d3", model.AccountDollars, "Houston Hall", "-30", "240", day(5, 12)),
		txn("s0", model.AccountSwipes, "Meal Plan", "100", "100", day(1, 9)),
		txn("s1", model.AccountSwipes, "Hill House", "-1", "99", day(3, 12)),
	}
	SortByTime(txns)
	return txns
}

func TestSummarize(t *testing.T) {
	s := Summarize(fixture(), model.AccountDollars, day(1, 0), day(10, 0))

	require.Equal(t, "240", s.Balance.String())
	require.Equal(t, "300", s.Peak.String())
	require.Equal(t, "60", s.Spent.String())
	require.Equal(t, "300", s.Deposited.String())
	require.Equal(t, 4, s.Transactions)
	require.Equal(t, 3, s.Purchases)
	require.Equal(t, 2, s.ActiveDays)
	require.InDelta(t, 30, s.SpendPerDay, 1e-9)
	require.InDelta(t, 20, s.SpendPerPurchase, 1e-9)
	require.True(t, s.LastActivity.Equal(day(5, 12)))
}

func TestSummarize_QuietRangeKeepsBalance(t *testing.T) {
	s := Summarize(fixture(), model.AccountDollars, day(6, 0), day(10, 0))
	require.Equal(t, "240", s.Balance.String())
	require.Zero(t, s.Transactions)
	require.Zero(t, s.SpendPerDay)
}

func TestAggregateDays_FillsGaps(t *testing.T) {
	days := AggregateDays(fixture(), model.AccountDollars, day(2, 0), day(6, 0))
	require.Len(t, days, 4)

	// Most recent first: 5th, 4th, 3rd, 2nd.
	require.Equal(t, 5, days[0].Date.Day())
	require.True(t, days[0].HasData)
	require.Equal(t, "270", days[0].Open.String())
	require.Equal(t, "240", days[0].Close.String())

	require.False(t, days[1].HasData)
	require.Equal(t, "270", days[1].Close.String(), "gap days carry the previous close")

	require.Equal(t, 2, days[3].Date.Day())
	require.Equal(t, "300", days[3].Open.String())
	require.Equal(t, "30", days[3].Spent.String())
	require.Equal(t, 2, days[3].Transactions)
}

func TestAggregateLocations(t *testing.T) {
	locs := AggregateLocations(fixture(), time.Time{}, time.Time{})
	require.Len(t, locs, 3)

	require.Equal(t, "Houston Hall", locs[0].Location)
	require.Equal(t, "50", locs[0].Total.String())
	require.Equal(t, 2, locs[0].Visits)

	var sum float64
	for _, l := range locs {
		sum += l.Share
	}
	require.InDelta(t, 1, sum, 1e-9)
	require.InDelta(t, 50.0/61.0, locs[0].Share, 1e-9)
}

func TestAggregateLocations_NoSpending(t *testing.T) {
	locs := AggregateLocations(fixture(), day(20, 0), day(21, 0))
	require.Empty(t, locs)
}

func TestFilters(t *testing.T) {
	txns := fixture()
	require.Len(t, FilterByAccount(txns, model.AccountSwipes), 2)
	require.Len(t, FilterByAccount(txns, ""), len(txns))
	require.Len(t, FilterByLocation(txns, "houston"), 2)
	require.Len(t, FilterByTime(txns, day(2, 0), day(3, 0)), 2)
	require.Len(t, FilterByTime(txns, day(2, 12), time.Time{}), 4, "since is inclusive")
}

func TestMerge(t *testing.T) {
	a := txn("x", model.AccountDollars, "A", "-1", "9", day(2, 0))
	b := txn("x", model.AccountDollars, "B", "-1", "8", day(2, 0))
	c := txn("y", model.AccountDollars, "C", "10", "10", day(1, 0))

	merged, dups := Merge([]model.Transaction{a, c, b})
	require.Equal(t, 1, dups)
	require.Len(t, merged, 2)
	require.Equal(t, "y", merged[0].ID)
	require.Equal(t, "B", merged[1].Location)
}

func TestPeriodRange(t *testing.T) {
	now := day(20, 0)
	since, until := PeriodRange(Periods[0], now)
	require.True(t, until.Equal(now))
	require.True(t, since.Equal(day(13, 0)))
}

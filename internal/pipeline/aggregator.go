// Package pipeline orchestrates export loading, caching, aggregation and forecasting.
package pipeline

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/dinebal/internal/model"
	"github.com/theirongolddev/dinebal/internal/projection"
)

const dayKeyLayout = "2006-01-02"

// Periods are the location breakdown lookbacks, shortest first.
var Periods = []model.Period{
	{Name: "Week", Days: 7},
	{Name: "Month", Days: 30},
	{Name: "Semester", Days: 105},
}

// PeriodRange returns [since, until) for a period ending at now.
func PeriodRange(p model.Period, now time.Time) (time.Time, time.Time) {
	return now.AddDate(0, 0, -p.Days), now
}

// Summarize computes the headline numbers for one account over [since, until).
// Balance is the latest balance posted before until, even when the range itself
// has no activity, so a quiet week still reports what is left.
func Summarize(txns []model.Transaction, account model.Account, since, until time.Time) model.Summary {
	all := FilterByAccount(txns, account)
	s := model.Summary{Account: account}

	for _, t := range all {
		if !until.IsZero() && !t.Time.Before(until) {
			break
		}
		s.Balance = t.Balance
	}

	filtered := FilterByTime(all, since, until)
	activeDays := make(map[string]struct{})

	for _, t := range filtered {
		s.Transactions++
		if t.Balance.GreaterThan(s.Peak) {
			s.Peak = t.Balance
		}
		if t.IsDeposit() {
			s.Deposited = s.Deposited.Add(t.Amount)
		} else if spend := t.Spend(); spend.IsPositive() {
			s.Purchases++
			s.Spent = s.Spent.Add(spend)
			activeDays[t.Time.Local().Format(dayKeyLayout)] = struct{}{}
		}
		if t.Time.After(s.LastActivity) {
			s.LastActivity = t.Time
		}
	}

	s.ActiveDays = len(activeDays)
	spent := s.Spent.InexactFloat64()
	if s.ActiveDays > 0 {
		s.SpendPerDay = spent / float64(s.ActiveDays)
	}
	if s.Purchases > 0 {
		s.SpendPerPurchase = spent / float64(s.Purchases)
	}
	return s
}

// AggregateDays computes per-day balance movement for one account, most recent
// first. Days without activity are filled in with the previous close.
func AggregateDays(txns []model.Transaction, account model.Account, since, until time.Time) []model.DailyBalance {
	all := FilterByAccount(txns, account)

	// Opening balance for the first day is whatever was left before since.
	var carry decimal.Decimal
	for _, t := range all {
		if !t.Time.Before(since) {
			break
		}
		carry = t.Balance
	}

	dayMap := make(map[string]*model.DailyBalance)
	for _, t := range FilterByTime(all, since, until) {
		key := t.Time.Local().Format(dayKeyLayout)
		db, ok := dayMap[key]
		if !ok {
			d, _ := time.ParseInLocation(dayKeyLayout, key, time.Local)
			db = &model.DailyBalance{
				Date:    d,
				Account: account,
				Open:    t.Balance.Sub(t.Amount),
				HasData: true,
			}
			dayMap[key] = db
		}
		db.Close = t.Balance
		db.Transactions++
		if t.IsDeposit() {
			db.Deposited = db.Deposited.Add(t.Amount)
		} else {
			db.Spent = db.Spent.Add(t.Spend())
		}
	}

	if since.IsZero() || until.IsZero() {
		return sortedDays(dayMap)
	}
	start := startOfDay(since)
	end := startOfDay(until.Add(-time.Nanosecond))

	days := make([]model.DailyBalance, 0, len(dayMap))
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(dayKeyLayout)
		if db, ok := dayMap[key]; ok {
			carry = db.Close
			days = append(days, *db)
			continue
		}
		days = append(days, model.DailyBalance{
			Date:    day,
			Account: account,
			Open:    carry,
			Close:   carry,
		})
	}

	// Most recent first
	for i, j := 0, len(days)-1; i < j; i, j = i+1, j-1 {
		days[i], days[j] = days[j], days[i]
	}
	return days
}

func sortedDays(dayMap map[string]*model.DailyBalance) []model.DailyBalance {
	days := make([]model.DailyBalance, 0, len(dayMap))
	for _, db := range dayMap {
		days = append(days, *db)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.After(days[j].Date)
	})
	return days
}

// AggregateLocations computes spending per location over [since, until),
// sorted by total descending. Deposits are not spending and are skipped.
// Callers filter to one account first so swipes and dollars are not summed.
func AggregateLocations(txns []model.Transaction, since, until time.Time) []model.LocationStats {
	locMap := make(map[string]*model.LocationStats)

	for _, t := range FilterByTime(txns, since, until) {
		spend := t.Spend()
		if !spend.IsPositive() {
			continue
		}
		name := t.Location
		if name == "" {
			name = "Unknown"
		}
		ls, ok := locMap[name]
		if !ok {
			ls = &model.LocationStats{Location: name}
			locMap[name] = ls
		}
		ls.Total = ls.Total.Add(spend)
		ls.Visits++
		if t.Time.After(ls.LastSeen) {
			ls.LastSeen = t.Time
		}
	}

	locations := make([]model.LocationStats, 0, len(locMap))
	for _, ls := range locMap {
		locations = append(locations, *ls)
	}
	sort.Slice(locations, func(i, j int) bool {
		if c := locations[i].Total.Cmp(locations[j].Total); c != 0 {
			return c > 0
		}
		return locations[i].Location < locations[j].Location
	})

	totals := make([]float64, len(locations))
	for i, ls := range locations {
		totals[i] = ls.Total.InexactFloat64()
	}
	for i, share := range projection.Portions(totals) {
		locations[i].Share = share
	}

	return locations
}

// FilterByTime returns transactions posted within [since, until).
// A zero bound is open.
func FilterByTime(txns []model.Transaction, since, until time.Time) []model.Transaction {
	if since.IsZero() && until.IsZero() {
		return txns
	}

	var result []model.Transaction
	for _, t := range txns {
		if !since.IsZero() && t.Time.Before(since) {
			continue
		}
		if !until.IsZero() && !t.Time.Before(until) {
			continue
		}
		result = append(result, t)
	}
	return result
}

// FilterByAccount returns transactions for one account. An empty account keeps all.
func FilterByAccount(txns []model.Transaction, account model.Account) []model.Transaction {
	if account == "" {
		return txns
	}
	var result []model.Transaction
	for _, t := range txns {
		if t.Account == account {
			result = append(result, t)
		}
	}
	return result
}

// FilterByLocation returns transactions whose location contains the substring.
func FilterByLocation(txns []model.Transaction, location string) []model.Transaction {
	if location == "" {
		return txns
	}
	var result []model.Transaction
	for _, t := range txns {
		if containsIgnoreCase(t.Location, location) {
			result = append(result, t)
		}
	}
	return result
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func startOfDay(t time.Time) time.Time {
	l := t.Local()
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, time.Local)
}

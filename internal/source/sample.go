package source

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/dinebal/internal/model"
)

// SamplePath is the FilePath recorded on demo transactions.
const SamplePath = "sample"

type sampleRow struct {
	day      int
	location string
	balance  string
}

// Dining dollars over roughly ten weeks, ending the day before now.
var sampleDollars = []sampleRow{
	{1, "Dining Plan", "422.34"},
	{2, "1920 Starbucks", "414.34"},
	{5, "MBA Cafe", "400.34"},
	{12, "Pret a Manger", "340.11"},
	{14, "1920 Starbucks", "332.98"},
	{32, "1920 Starbucks", "308.00"},
	{35, "MBA Cafe", "302.00"},
	{44, "Pret a Manger", "270.14"},
	{70, "Houston Hall", "140.55"},
}

var sampleSwipeLocations = []string{
	"1920 Commons",
	"Hill House",
	"Houston Market",
	"Kings Court English House",
	"1920 Commons",
	"Lauder College House",
}

const sampleSwipeAllowance = 138

// SampleTransactions returns a demo history for both accounts, placed so the
// most recent purchase lands the day before now.
func SampleTransactions(now time.Time) []model.Transaction {
	base := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -71)

	var txns []model.Transaction
	add := func(tx model.Transaction) {
		tx.FilePath = SamplePath
		tx.ID = RowID(tx)
		txns = append(txns, tx)
	}

	prev := decimal.Zero
	for i, r := range sampleDollars {
		bal := decimal.RequireFromString(r.balance)
		add(model.Transaction{
			Account:  model.AccountDollars,
			Location: r.location,
			Amount:   bal.Sub(prev),
			Balance:  bal,
			Time:     base.AddDate(0, 0, r.day).Add(time.Duration(11+i%4) * time.Hour),
		})
		prev = bal
	}

	swipes := decimal.NewFromInt(sampleSwipeAllowance)
	add(model.Transaction{
		Account:  model.AccountSwipes,
		Location: "Meal Plan",
		Amount:   swipes,
		Balance:  swipes,
		Time:     base.AddDate(0, 0, 1).Add(9 * time.Hour),
	})
	one := decimal.NewFromInt(1)
	for i, day := 0, 2; day <= 70; i, day = i+1, day+2 {
		swipes = swipes.Sub(one)
		hour := 12
		if i%3 == 0 {
			hour = 18
		}
		add(model.Transaction{
			Account:  model.AccountSwipes,
			Location: sampleSwipeLocations[i%len(sampleSwipeLocations)],
			Amount:   one.Neg(),
			Balance:  swipes,
			Time:     base.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour),
		})
	}

	return dedupe(txns)
}

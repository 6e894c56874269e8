package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Summary holds the top-level aggregate for one account over a time range.
type Summary struct {
	Account      Account
	Balance      decimal.Decimal // latest balance seen in the range
	Peak         decimal.Decimal
	Spent        decimal.Decimal
	Deposited    decimal.Decimal
	Transactions int
	Purchases    int
	ActiveDays   int
	LastActivity time.Time

	SpendPerDay      float64 // per active day
	SpendPerPurchase float64
}

// DailyBalance holds balance movement for a single calendar day.
type DailyBalance struct {
	Date         time.Time
	Account      Account
	Open         decimal.Decimal
	Close        decimal.Decimal
	Spent        decimal.Decimal
	Deposited    decimal.Decimal
	Transactions int
	// HasData is false for days filled in so charts show gaps as flat lines.
	HasData bool
}

// LocationStats holds spending at one location.
type LocationStats struct {
	Location string
	Total    decimal.Decimal
	Visits   int
	Share    float64 // 0-1 of all spending in the range
	LastSeen time.Time
}

// Period is a named lookback used for location breakdowns.
type Period struct {
	Name string
	Days int
}

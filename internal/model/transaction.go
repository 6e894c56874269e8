// Package model defines domain types for dinebal balances and transactions.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Account identifies which dining balance a transaction moves.
type Account string

const (
	AccountDollars Account = "dollars"
	AccountSwipes  Account = "swipes"
)

// Accounts lists every supported account in display order.
var Accounts = []Account{AccountDollars, AccountSwipes}

// ParseAccount accepts the canonical names plus a few common aliases.
func ParseAccount(s string) (Account, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dollars", "dollar", "dd", "dining_dollars", "dining dollars":
		return AccountDollars, nil
	case "swipes", "swipe", "meals", "meal_swipes":
		return AccountSwipes, nil
	}
	return "", fmt.Errorf("unknown account %q (want dollars or swipes)", s)
}

// Title is the human-readable account name.
func (a Account) Title() string {
	switch a {
	case AccountDollars:
		return "Dining Dollars"
	case AccountSwipes:
		return "Swipes"
	}
	return string(a)
}

// String implements fmt.Stringer.
func (a Account) String() string {
	return string(a)
}

// Unit is the short label balances of this account are counted in.
func (a Account) Unit() string {
	if a == AccountSwipes {
		return "swipes"
	}
	return "$"
}

// Transaction is one posted change to a dining balance.
type Transaction struct {
	ID       string
	Account  Account
	Location string
	// Amount is signed: deposits are positive, purchases negative.
	Amount decimal.Decimal
	// Balance is the account balance after the transaction posted.
	Balance  decimal.Decimal
	Time     time.Time
	FilePath string
}

// IsDeposit reports whether the transaction added to the balance.
func (t Transaction) IsDeposit() bool {
	return t.Amount.IsPositive()
}

// Spend returns the amount spent, or zero for deposits.
func (t Transaction) Spend() decimal.Decimal {
	if t.Amount.IsNegative() {
		return t.Amount.Neg()
	}
	return decimal.Zero
}

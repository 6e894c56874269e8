// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/dinebal/internal/model"
)

// FormatDollars formats a dollar amount with separators and cents.
// e.g., 1234.5 -> "$1,234.50", -3 -> "-$3.00"
func FormatDollars(v float64) string {
	if v < 0 {
		return "-" + FormatDollars(-v)
	}
	cents := int64(math.Round(v * 100))
	return fmt.Sprintf("$%s.%02d", FormatNumber(cents/100), cents%100)
}

// FormatSwipes formats a swipe count, keeping one decimal only when needed.
func FormatSwipes(v float64) string {
	if v == math.Trunc(v) {
		return FormatNumber(int64(v))
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// FormatBalance formats a balance in its account's unit.
func FormatBalance(account model.Account, v float64) string {
	if account == model.AccountSwipes {
		n := FormatSwipes(v)
		if v == 1 {
			return n + " swipe"
		}
		return n + " swipes"
	}
	return FormatDollars(v)
}

// FormatAmount formats a signed transaction amount, e.g. "+$422.34" or "-1 swipe".
func FormatAmount(account model.Account, d decimal.Decimal) string {
	v := d.InexactFloat64()
	sign := "+"
	if d.IsNegative() {
		sign = "-"
		v = -v
	}
	return sign + FormatBalance(account, v)
}

// FormatDecimal formats a decimal balance in its account's unit.
func FormatDecimal(account model.Account, d decimal.Decimal) string {
	return FormatBalance(account, d.InexactFloat64())
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatDepletionDate formats a projected run-out date as "Dec. 15th".
// The year is appended when it differs from now's.
func FormatDepletionDate(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	month := t.Format("Jan")
	if t.Month() != time.May {
		month += "."
	}
	s := month + " " + humanize.Ordinal(t.Day())
	if t.Year() != now.Year() {
		s += ", " + strconv.Itoa(t.Year())
	}
	return s
}

// FormatRelative describes t relative to now, e.g. "3 weeks from now".
func FormatRelative(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// FormatDelta formats the change between two balances with an explicit sign.
func FormatDelta(account model.Account, current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatBalance(account, delta)
	}
	return "-" + FormatBalance(account, -delta)
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}

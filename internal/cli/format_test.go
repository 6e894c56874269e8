package cli

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/dinebal/internal/model"
)

func TestFormatDollars(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{140.55, "$140.55"},
		{1234.5, "$1,234.50"},
		{-3, "-$3.00"},
	}
	for _, tt := range tests {
		if got := FormatDollars(tt.in); got != tt.want {
			t.Errorf("FormatDollars(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatBalance(t *testing.T) {
	if got := FormatBalance(model.AccountSwipes, 1); got != "1 swipe" {
		t.Errorf("FormatBalance(swipes, 1) = %q", got)
	}
	if got := FormatBalance(model.AccountSwipes, 103); got != "103 swipes" {
		t.Errorf("FormatBalance(swipes, 103) = %q", got)
	}
	if got := FormatBalance(model.AccountSwipes, 2.5); got != "2.5 swipes" {
		t.Errorf("FormatBalance(swipes, 2.5) = %q", got)
	}
	if got := FormatBalance(model.AccountDollars, 422.34); got != "$422.34" {
		t.Errorf("FormatBalance(dollars, 422.34) = %q", got)
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(model.AccountDollars, decimal.RequireFromString("-14.55")); got != "-$14.55" {
		t.Errorf("FormatAmount = %q, want -$14.55", got)
	}
	if got := FormatAmount(model.AccountSwipes, decimal.NewFromInt(-1)); got != "-1 swipe" {
		t.Errorf("FormatAmount = %q, want -1 swipe", got)
	}
	if got := FormatAmount(model.AccountDollars, decimal.RequireFromString("422.34")); got != "+$422.34" {
		t.Errorf("FormatAmount = %q, want +$422.34", got)
	}
}

func TestFormatDepletionDate(t *testing.T) {
	now := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2026, 12, 15, 0, 0, 0, 0, time.UTC), "Dec. 15th"},
		{time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), "Nov. 1st"},
		{time.Date(2026, 10, 22, 0, 0, 0, 0, time.UTC), "Oct. 22nd"},
		{time.Date(2027, 5, 3, 0, 0, 0, 0, time.UTC), "May 3rd, 2027"},
		{time.Time{}, "never"},
	}
	for _, tt := range tests {
		if got := FormatDepletionDate(tt.in, now); got != tt.want {
			t.Errorf("FormatDepletionDate(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-2795, "-2,795"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(0.256); got != "25.6%" {
		t.Errorf("FormatPercent(0.256) = %q", got)
	}
}

func TestFormatDelta(t *testing.T) {
	if got := FormatDelta(model.AccountDollars, 90, 100); got != "-$10.00" {
		t.Errorf("FormatDelta = %q, want -$10.00", got)
	}
	if got := FormatDelta(model.AccountSwipes, 5, 3); got != "+2 swipes" {
		t.Errorf("FormatDelta = %q, want +2 swipes", got)
	}
}

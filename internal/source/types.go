package source

import (
	"github.com/shopspring/decimal"
)

// Format identifies how an export file is encoded.
type Format string

const (
	FormatJSONL Format = "jsonl"
	FormatCSV   Format = "csv"
)

// RawRow is a single exported transaction as it appears in a JSONL line.
// Amount and Balance accept JSON numbers or quoted strings.
type RawRow struct {
	ID       string          `json:"id,omitempty"`
	Account  string          `json:"account"`
	Location string          `json:"location"`
	Amount   decimal.Decimal `json:"amount"`
	Balance  decimal.Decimal `json:"balance"`
	Date     string          `json:"date"`
}

// DiscoveredFile represents an export file found during directory scanning.
type DiscoveredFile struct {
	Path   string
	Format Format
	Name   string // file name without extension, used as a display label
}

// Package source discovers and parses dining card transaction exports.
package source

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/dinebal/internal/model"
)

// rowNamespace seeds name-based IDs for rows exported without one.
var rowNamespace = uuid.MustParse("6f1c3a52-8e0b-4d7e-9a51-2b0d4f7c9e13")

// dateLayouts are tried in order when parsing a row date.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"01/02/2006 15:04",
	"01/02/2006",
	"2006-01-02",
}

// csvColumns are the recognized CSV header names. "id" is optional.
var csvColumns = []string{"date", "account", "location", "amount", "balance"}

// ParseResult holds the output of parsing a single export file.
type ParseResult struct {
	Transactions []model.Transaction
	ParseErrors  int
	Err          error
}

// ParseFile reads an export and produces its transactions, ordered by time.
// Rows sharing an ID are deduplicated with the last one winning, so a
// re-exported correction replaces the original row. Malformed rows are
// counted in ParseErrors and skipped.
func ParseFile(df DiscoveredFile) ParseResult {
	f, err := os.Open(df.Path)
	if err != nil {
		return ParseResult{Err: err}
	}
	defer func() { _ = f.Close() }()

	var res ParseResult
	switch df.Format {
	case FormatCSV:
		res = parseCSV(f, df.Path)
	default:
		res = parseJSONL(f, df.Path)
	}
	if res.Err != nil {
		return res
	}

	res.Transactions = dedupe(res.Transactions)
	return res
}

func parseJSONL(r io.Reader, path string) ParseResult {
	var res ParseResult

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		var raw RawRow
		if err := json.Unmarshal(line, &raw); err != nil {
			res.ParseErrors++
			continue
		}
		tx, err := raw.transaction(path)
		if err != nil {
			res.ParseErrors++
			continue
		}
		res.Transactions = append(res.Transactions, tx)
	}

	if err := scanner.Err(); err != nil {
		return ParseResult{Err: err}
	}
	return res
}

func parseCSV(r io.Reader, path string) ParseResult {
	var res ParseResult

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return res
	}
	if err != nil {
		return ParseResult{Err: fmt.Errorf("reading csv header: %w", err)}
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range csvColumns {
		if _, ok := cols[name]; !ok {
			return ParseResult{Err: fmt.Errorf("csv header missing %q column", name)}
		}
	}

	field := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				res.ParseErrors++
				continue
			}
			return ParseResult{Err: err}
		}

		raw := RawRow{
			ID:       field(rec, "id"),
			Account:  field(rec, "account"),
			Location: field(rec, "location"),
			Date:     field(rec, "date"),
		}
		if raw.Amount, err = parseMoney(field(rec, "amount")); err != nil {
			res.ParseErrors++
			continue
		}
		if raw.Balance, err = parseMoney(field(rec, "balance")); err != nil {
			res.ParseErrors++
			continue
		}

		tx, err := raw.transaction(path)
		if err != nil {
			res.ParseErrors++
			continue
		}
		res.Transactions = append(res.Transactions, tx)
	}

	return res
}

// transaction validates a raw row and converts it.
func (r RawRow) transaction(path string) (model.Transaction, error) {
	account, err := model.ParseAccount(r.Account)
	if err != nil {
		return model.Transaction{}, err
	}
	ts, err := ParseDate(r.Date)
	if err != nil {
		return model.Transaction{}, err
	}
	if r.Balance.IsNegative() {
		return model.Transaction{}, fmt.Errorf("negative balance %s", r.Balance)
	}

	tx := model.Transaction{
		ID:       strings.TrimSpace(r.ID),
		Account:  account,
		Location: strings.TrimSpace(r.Location),
		Amount:   r.Amount,
		Balance:  r.Balance,
		Time:     ts,
		FilePath: path,
	}
	if tx.ID == "" {
		tx.ID = RowID(tx)
	}
	return tx, nil
}

// RowID derives a stable ID from the row content, so re-importing the same
// export never duplicates rows that lack an ID.
func RowID(tx model.Transaction) string {
	key := strings.Join([]string{
		string(tx.Account),
		tx.Location,
		tx.Amount.String(),
		tx.Balance.String(),
		tx.Time.UTC().Format(time.RFC3339Nano),
	}, "|")
	return uuid.NewSHA1(rowNamespace, []byte(key)).String()
}

// ParseDate accepts RFC 3339 timestamps and the common card-system date formats.
// Dates without a zone are read in local time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("missing date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func parseMoney(s string) (decimal.Decimal, error) {
	s = strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero, errors.New("missing amount")
	}
	return decimal.NewFromString(s)
}

// dedupe keeps the last row per ID and returns rows sorted by time.
func dedupe(txns []model.Transaction) []model.Transaction {
	if len(txns) == 0 {
		return txns
	}
	idx := make(map[string]int, len(txns))
	out := make([]model.Transaction, 0, len(txns))
	for _, tx := range txns {
		if i, ok := idx[tx.ID]; ok {
			out[i] = tx
			continue
		}
		idx[tx.ID] = len(out)
		out = append(out, tx)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out
}

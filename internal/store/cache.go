// Package store provides a SQLite-backed cache for parsed transaction exports.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/dinebal/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache provides SQLite-backed transaction caching keyed by source file.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// FileInfo holds the tracked mtime and size for a file.
type FileInfo struct {
	MtimeNs     int64
	SizeBytes   int64
	ParseErrors int
}

// GetTrackedFiles returns a map of file_path -> FileInfo for all tracked files.
func (c *Cache) GetTrackedFiles() (map[string]FileInfo, error) {
	rows, err := c.db.Query("SELECT file_path, mtime_ns, size_bytes, parse_errors FROM file_tracker")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]FileInfo)
	for rows.Next() {
		var path string
		var fi FileInfo
		if err := rows.Scan(&path, &fi.MtimeNs, &fi.SizeBytes, &fi.ParseErrors); err != nil {
			return nil, err
		}
		result[path] = fi
	}
	return result, rows.Err()
}

// SaveFile replaces every cached row for path with txns and records the
// file's tracking info, all in one transaction.
func (c *Cache) SaveFile(path string, txns []model.Transaction, fi FileInfo) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.Exec(`INSERT INTO file_tracker (file_path, mtime_ns, size_bytes, parse_errors, parsed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(file_path) DO UPDATE SET
			mtime_ns = excluded.mtime_ns,
			size_bytes = excluded.size_bytes,
			parse_errors = excluded.parse_errors,
			parsed_at = excluded.parsed_at`,
		path, fi.MtimeNs, fi.SizeBytes, fi.ParseErrors, now)
	if err != nil {
		return fmt.Errorf("tracking %s: %w", path, err)
	}

	if _, err := tx.Exec("DELETE FROM transactions WHERE file_path = ?", path); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO transactions
		(file_path, id, account, location, amount, balance, posted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, t := range txns {
		_, err := stmt.Exec(path, t.ID, string(t.Account), t.Location,
			t.Amount.String(), t.Balance.String(), t.Time.UTC().Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("caching %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// LoadTransactions reads all cached transactions ordered by posting time.
func (c *Cache) LoadTransactions() ([]model.Transaction, error) {
	rows, err := c.db.Query(`SELECT
		file_path, id, account, location, amount, balance, posted_at
		FROM transactions
		ORDER BY posted_at, file_path, id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var txns []model.Transaction
	for rows.Next() {
		var (
			t                        model.Transaction
			account, amount, balance string
			posted                   string
		)
		if err := rows.Scan(&t.FilePath, &t.ID, &account, &t.Location, &amount, &balance, &posted); err != nil {
			return nil, err
		}

		t.Account = model.Account(account)
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("cached amount for %s: %w", t.ID, err)
		}
		if t.Balance, err = decimal.NewFromString(balance); err != nil {
			return nil, fmt.Errorf("cached balance for %s: %w", t.ID, err)
		}
		if t.Time, err = time.Parse(time.RFC3339Nano, posted); err != nil {
			return nil, fmt.Errorf("cached time for %s: %w", t.ID, err)
		}
		t.Time = t.Time.Local()

		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// DeleteFile removes a file's tracking entry and, by cascade, its transactions.
func (c *Cache) DeleteFile(path string) error {
	_, err := c.db.Exec("DELETE FROM file_tracker WHERE file_path = ?", path)
	return err
}

// TransactionCount returns the number of cached transactions.
func (c *Cache) TransactionCount() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM transactions").Scan(&count)
	return count, err
}

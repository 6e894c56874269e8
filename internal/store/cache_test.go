package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/dinebal/internal/model"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache", "dinebal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func testTxn(id, path string, amount, balance string, at time.Time) model.Transaction {
	return model.Transaction{
		ID:       id,
		Account:  model.AccountDollars,
		Location: "Houston Hall",
		Amount:   decimal.RequireFromString(amount),
		Balance:  decimal.RequireFromString(balance),
		Time:     at,
		FilePath: path,
	}
}

func TestSaveAndLoad(t *testing.T) {
	c := openTestCache(t)
	at := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	txns := []model.Transaction{
		testTxn("b", "/h/a.jsonl", "-0.10", "99.90", at.Add(time.Hour)),
		testTxn("a", "/h/a.jsonl", "100.00", "100.00", at),
	}
	require.NoError(t, c.SaveFile("/h/a.jsonl", txns, FileInfo{MtimeNs: 42, SizeBytes: 7, ParseErrors: 1}))

	got, err := c.LoadTransactions()
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "a", got[0].ID, "ordered by posting time")
	require.True(t, got[1].Amount.Equal(decimal.RequireFromString("-0.10")), "decimal survives the round trip")
	require.True(t, got[1].Time.Equal(at.Add(time.Hour)))
	require.Equal(t, model.AccountDollars, got[1].Account)
	require.Equal(t, "/h/a.jsonl", got[1].FilePath)

	tracked, err := c.GetTrackedFiles()
	require.NoError(t, err)
	require.Equal(t, FileInfo{MtimeNs: 42, SizeBytes: 7, ParseErrors: 1}, tracked["/h/a.jsonl"])
}

func TestSaveFileReplacesRows(t *testing.T) {
	c := openTestCache(t)
	at := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, c.SaveFile("/h/a.jsonl", []model.Transaction{
		testTxn("a", "/h/a.jsonl", "10", "10", at),
		testTxn("b", "/h/a.jsonl", "-1", "9", at.Add(time.Minute)),
	}, FileInfo{MtimeNs: 1, SizeBytes: 1}))
	require.NoError(t, c.SaveFile("/h/a.jsonl", []model.Transaction{
		testTxn("c", "/h/a.jsonl", "20", "20", at),
	}, FileInfo{MtimeNs: 2, SizeBytes: 2}))

	n, err := c.TransactionCount()
	require.NoError(t, err)
	require.Equal(t, 1, n)

	tracked, err := c.GetTrackedFiles()
	require.NoError(t, err)
	require.Len(t, tracked, 1)
	require.Equal(t, int64(2), tracked["/h/a.jsonl"].MtimeNs)
}

func TestDeleteFileCascades(t *testing.T) {
	c := openTestCache(t)
	at := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, c.SaveFile("/h/a.jsonl", []model.Transaction{testTxn("a", "/h/a.jsonl", "10", "10", at)}, FileInfo{}))
	require.NoError(t, c.SaveFile("/h/b.csv", []model.Transaction{testTxn("a", "/h/b.csv", "10", "10", at)}, FileInfo{}))

	n, err := c.TransactionCount()
	require.NoError(t, err)
	require.Equal(t, 2, n, "same id in different files is cached per file")

	require.NoError(t, c.DeleteFile("/h/a.jsonl"))

	got, err := c.LoadTransactions()
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "/h/b.csv", got[0].FilePath)

	tracked, err := c.GetTrackedFiles()
	require.NoError(t, err)
	require.NotContains(t, tracked, "/h/a.jsonl")
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dinebal.db")
	at := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	c, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, c.SaveFile("/h/a.jsonl", []model.Transaction{testTxn("a", "/h/a.jsonl", "10", "10", at)}, FileInfo{}))
	require.NoError(t, c.Close())

	c, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	n, err := c.TransactionCount()
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

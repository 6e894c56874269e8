package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/theirongolddev/dinebal/internal/source"
	"github.com/theirongolddev/dinebal/internal/store"
)

func writeHistory(t *testing.T, dataDir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dataDir, source.HistoryDir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600))
	return path
}

func TestLoad_MergesAcrossFiles(t *testing.T) {
	dataDir := t.TempDir()
	writeHistory(t, dataDir, "a.jsonl",
		`{"id":"1","account":"dollars","location":"Dining Plan","amount":100,"balance":100,"date":"2026-09-01T09:00:00Z"}`,
		`{"id":"2","account":"dollars","location":"MBA Cafe","amount":-5,"balance":95,"date":"2026-09-02T09:00:00Z"}`,
	)
	writeHistory(t, dataDir, "b.csv",
		`date,account,location,amount,balance,id`,
		`2026-09-02T09:00:00Z,dollars,MBA Cafe,-6,94,2`,
		`2026-09-03T09:00:00Z,dollars,Houston Hall,-4,90,3`,
		`garbage,dollars,x,1,1,4`,
	)

	var calls, lastTotal atomic.Int64
	res, err := Load(dataDir, zap.NewNop(), func(current, total int) {
		calls.Add(1)
		lastTotal.Store(int64(total))
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), calls.Load())
	require.Equal(t, int64(2), lastTotal.Load())
	require.Equal(t, 2, res.TotalFiles)
	require.Equal(t, 2, res.ParsedFiles)
	require.Equal(t, 1, res.ParseErrors)
	require.Equal(t, 1, res.Duplicates)
	require.Len(t, res.Transactions, 3)

	// b.csv sorts after a.jsonl, so its copy of id 2 wins.
	require.Equal(t, "94", res.Transactions[1].Balance.String())
	require.True(t, res.Transactions[0].Time.Before(res.Transactions[2].Time))
}

func TestLoad_EmptyDataDir(t *testing.T) {
	res, err := Load(t.TempDir(), nil, nil)
	require.NoError(t, err)
	require.Empty(t, res.Transactions)
	require.Zero(t, res.TotalFiles)
}

func TestLoadWithCache(t *testing.T) {
	dataDir := t.TempDir()
	cache, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer func() { _ = cache.Close() }()

	a := writeHistory(t, dataDir, "a.jsonl",
		`{"id":"1","account":"swipes","location":"Hill House","amount":-1,"balance":99,"date":"2026-09-01T12:00:00Z"}`,
	)
	b := writeHistory(t, dataDir, "b.jsonl",
		`{"id":"2","account":"swipes","location":"Hill House","amount":-1,"balance":98,"date":"2026-09-02T12:00:00Z"}`,
		`not json`,
	)

	first, err := LoadWithCache(dataDir, cache, zap.NewNop(), nil)
	require.NoError(t, err)
	require.Equal(t, 2, first.Reparsed)
	require.Zero(t, first.CacheHits)
	require.Len(t, first.Transactions, 2)
	require.Equal(t, 1, first.ParseErrors)

	second, err := LoadWithCache(dataDir, cache, zap.NewNop(), nil)
	require.NoError(t, err)
	require.Equal(t, 2, second.CacheHits)
	require.Zero(t, second.Reparsed)
	require.Equal(t, first.Transactions[1].ID, second.Transactions[1].ID)
	require.Equal(t, 1, second.ParseErrors, "parse errors are remembered for cached files")

	// Rewrite a with an extra row and a new mtime.
	writeHistory(t, dataDir, "a.jsonl",
		`{"id":"1","account":"swipes","location":"Hill House","amount":-1,"balance":99,"date":"2026-09-01T12:00:00Z"}`,
		`{"id":"3","account":"swipes","location":"1920 Commons","amount":-1,"balance":97,"date":"2026-09-03T12:00:00Z"}`,
	)
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(a, future, future))

	third, err := LoadWithCache(dataDir, cache, zap.NewNop(), nil)
	require.NoError(t, err)
	require.Equal(t, 1, third.Reparsed)
	require.Equal(t, 1, third.CacheHits)
	require.Len(t, third.Transactions, 3)

	require.NoError(t, os.Remove(b))
	fourth, err := LoadWithCache(dataDir, cache, zap.NewNop(), nil)
	require.NoError(t, err)
	require.Equal(t, 1, fourth.Pruned)
	require.Len(t, fourth.Transactions, 2)

	n, err := cache.TransactionCount()
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestCachePath(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	require.Equal(t, "/tmp/xdg-cache/dinebal/history.db", CachePath())
}

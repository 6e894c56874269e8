package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/dinebal/internal/model"
	"github.com/theirongolddev/dinebal/internal/projection"
	"github.com/theirongolddev/dinebal/internal/source"
	"github.com/theirongolddev/dinebal/internal/store"
)

// synthHistory writes files exports of rows transactions each.
func synthHistory(b *testing.B, files, rows int) string {
	b.Helper()
	dataDir := b.TempDir()
	dir := filepath.Join(dataDir, source.HistoryDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		b.Fatal(err)
	}

	start := time.Date(2026, 8, 26, 8, 0, 0, 0, time.UTC)
	for f := 0; f < files; f++ {
		var sb strings.Builder
		balance := 2000.0
		for r := 0; r < rows; r++ {
			spend := float64(r%17) + 0.25
			balance -= spend
			if balance < 0 {
				balance = 2000
			}
			fmt.Fprintf(&sb, `{"id":"f%d-%d","account":"dollars","location":"Loc %d","amount":-%.2f,"balance":%.2f,"date":"%s"}`+"\n",
				f, r, r%9, spend, balance, start.Add(time.Duration(f*rows+r)*time.Hour).Format(time.RFC3339))
		}
		if err := os.WriteFile(filepath.Join(dir, fmt.Sprintf("export-%03d.jsonl", f)), []byte(sb.String()), 0o600); err != nil {
			b.Fatal(err)
		}
	}
	return dataDir
}

func BenchmarkLoad(b *testing.B) {
	dataDir := synthHistory(b, 16, 500)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Load(dataDir, nil, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLoadWithCache(b *testing.B) {
	dataDir := synthHistory(b, 16, 500)
	cache, err := store.Open(filepath.Join(b.TempDir(), "history.db"))
	if err != nil {
		b.Fatal(err)
	}
	defer func() { _ = cache.Close() }()

	// Warm the cache so iterations measure the hit path.
	if _, err := LoadWithCache(dataDir, cache, nil, nil); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := LoadWithCache(dataDir, cache, nil, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkForecastAccount(b *testing.B) {
	dataDir := synthHistory(b, 4, 2000)
	res, err := Load(dataDir, nil, nil)
	if err != nil {
		b.Fatal(err)
	}
	first, last := res.Transactions[0].Time, res.Transactions[len(res.Transactions)-1].Time
	w := projection.Window{Start: first, End: last.AddDate(0, 1, 0)}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ForecastAccount(res.Transactions, model.AccountDollars, w); err != nil {
			b.Fatal(err)
		}
	}
}

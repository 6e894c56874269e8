package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScanDir(t *testing.T) {
	dataDir := t.TempDir()
	history := filepath.Join(dataDir, HistoryDir)

	for _, rel := range []string{
		"2026-fall.jsonl",
		"card/export.CSV",
		"notes.txt",
		".hidden.jsonl",
		".sync/cache.jsonl",
	} {
		path := filepath.Join(history, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o600))
	}

	files, err := ScanDir(dataDir)
	require.NoError(t, err)
	require.Len(t, files, 2)

	require.Equal(t, FormatJSONL, files[0].Format)
	require.Equal(t, "2026-fall", files[0].Name)
	require.Equal(t, FormatCSV, files[1].Format)
	require.Equal(t, "export", files[1].Name)
}

func TestScanDir_MissingHistory(t *testing.T) {
	files, err := ScanDir(t.TempDir())
	require.NoError(t, err)
	require.Empty(t, files)
}

package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// HistoryDir is the subdirectory of the data dir that holds card-system exports.
const HistoryDir = "history"

// ScanDir walks <dataDir>/history and discovers every JSONL and CSV export.
// A missing history directory is not an error; it just yields no files.
func ScanDir(dataDir string) ([]DiscoveredFile, error) {
	historyDir := filepath.Join(dataDir, HistoryDir)

	info, err := os.Stat(historyDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}

	var files []DiscoveredFile

	err = filepath.WalkDir(historyDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		if d.IsDir() {
			// Editors and sync tools leave hidden dirs around.
			if path != historyDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		format, ok := formatFor(d.Name())
		if !ok {
			return nil
		}

		files = append(files, DiscoveredFile{
			Path:   path,
			Format: format,
			Name:   strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())),
		})
		return nil
	})

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, err
}

func formatFor(name string) (Format, bool) {
	if strings.HasPrefix(name, ".") {
		return "", false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jsonl":
		return FormatJSONL, true
	case ".csv":
		return FormatCSV, true
	}
	return "", false
}

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/theirongolddev/dinebal/internal/model"
	"github.com/theirongolddev/dinebal/internal/source"
	"github.com/theirongolddev/dinebal/internal/store"
)

// CachedLoadResult extends LoadResult with cache metadata.
type CachedLoadResult struct {
	LoadResult
	CacheHits int
	Reparsed  int
	Pruned    int
}

// LoadWithCache discovers exports, diffs them against the cache by mtime and
// size, parses only changed files, and prunes cache entries for files that
// no longer exist.
func LoadWithCache(dataDir string, cache *store.Cache, log *zap.Logger, progressFn ProgressFunc) (*CachedLoadResult, error) {
	if log == nil {
		log = zap.NewNop()
	}

	files, err := source.ScanDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dataDir, err)
	}

	tracked, err := cache.GetTrackedFiles()
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}

	result := &CachedLoadResult{
		LoadResult: LoadResult{TotalFiles: len(files)},
	}

	// Diff: partition into changed and unchanged
	var toReparse []source.DiscoveredFile
	var infos []store.FileInfo
	unchanged := make(map[string]struct{})
	present := make(map[string]struct{}, len(files))

	for _, f := range files {
		present[f.Path] = struct{}{}

		info, err := os.Stat(f.Path)
		if err != nil {
			log.Debug("stat failed", zap.String("file", f.Path), zap.Error(err))
			continue
		}
		fi := store.FileInfo{MtimeNs: info.ModTime().UnixNano(), SizeBytes: info.Size()}

		cached, ok := tracked[f.Path]
		if ok && cached.MtimeNs == fi.MtimeNs && cached.SizeBytes == fi.SizeBytes {
			unchanged[f.Path] = struct{}{}
			result.ParseErrors += cached.ParseErrors
		} else {
			toReparse = append(toReparse, f)
			infos = append(infos, fi)
		}
	}

	for path := range tracked {
		if _, ok := present[path]; ok {
			continue
		}
		if err := cache.DeleteFile(path); err != nil {
			log.Debug("pruning cache entry failed", zap.String("file", path), zap.Error(err))
			continue
		}
		result.Pruned++
	}

	result.CacheHits = len(unchanged)
	result.Reparsed = len(toReparse)

	var all []model.Transaction

	if len(unchanged) > 0 {
		cached, err := cache.LoadTransactions()
		if err != nil {
			return nil, fmt.Errorf("loading cached transactions: %w", err)
		}
		for _, t := range cached {
			if _, ok := unchanged[t.FilePath]; ok {
				all = append(all, t)
			}
		}
		result.ParsedFiles += len(unchanged)
		if progressFn != nil {
			progressFn(result.CacheHits, result.TotalFiles)
		}
	}

	if len(toReparse) > 0 {
		results := parseAll(toReparse, func(n int) {
			if progressFn != nil {
				progressFn(n+result.CacheHits, result.TotalFiles)
			}
		})

		for i, pr := range results {
			path := toReparse[i].Path
			if pr.Err != nil {
				result.FileErrors++
				log.Debug("skipping unreadable export", zap.String("file", path), zap.Error(pr.Err))
				continue
			}
			result.ParsedFiles++
			result.ParseErrors += pr.ParseErrors
			all = append(all, pr.Transactions...)

			fi := infos[i]
			fi.ParseErrors = pr.ParseErrors
			if err := cache.SaveFile(path, pr.Transactions, fi); err != nil {
				log.Debug("caching export failed", zap.String("file", path), zap.Error(err))
			}
		}
	}

	result.Transactions, result.Duplicates = Merge(all)
	log.Debug("cached load complete",
		zap.Int("hits", result.CacheHits),
		zap.Int("reparsed", result.Reparsed),
		zap.Int("pruned", result.Pruned),
		zap.Int("transactions", len(result.Transactions)))
	return result, nil
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "dinebal")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "dinebal")
}

// CachePath returns the full path to the cache database.
func CachePath() string {
	return filepath.Join(CacheDir(), "history.db")
}

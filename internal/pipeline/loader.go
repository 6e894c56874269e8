package pipeline

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/theirongolddev/dinebal/internal/model"
	"github.com/theirongolddev/dinebal/internal/source"
)

// LoadResult holds the output of the full data loading pipeline.
type LoadResult struct {
	Transactions []model.Transaction
	TotalFiles   int
	ParsedFiles  int
	ParseErrors  int
	FileErrors   int
	Duplicates   int
}

// ProgressFunc is called during loading to report progress.
// current is the number of files processed so far, total is the total count.
type ProgressFunc func(current, total int)

// Load discovers and parses every export under dataDir.
// It uses a bounded worker pool for parallel parsing.
func Load(dataDir string, log *zap.Logger, progressFn ProgressFunc) (*LoadResult, error) {
	if log == nil {
		log = zap.NewNop()
	}

	files, err := source.ScanDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dataDir, err)
	}

	result := &LoadResult{TotalFiles: len(files)}
	if len(files) == 0 {
		return result, nil
	}

	results := parseAll(files, func(n int) {
		if progressFn != nil {
			progressFn(n, len(files))
		}
	})

	var all []model.Transaction
	for i, pr := range results {
		if pr.Err != nil {
			result.FileErrors++
			log.Debug("skipping unreadable export", zap.String("file", files[i].Path), zap.Error(pr.Err))
			continue
		}
		result.ParsedFiles++
		result.ParseErrors += pr.ParseErrors
		if pr.ParseErrors > 0 {
			log.Debug("malformed rows skipped", zap.String("file", files[i].Path), zap.Int("rows", pr.ParseErrors))
		}
		all = append(all, pr.Transactions...)
	}

	result.Transactions, result.Duplicates = Merge(all)
	log.Debug("load complete",
		zap.Int("files", result.ParsedFiles),
		zap.Int("transactions", len(result.Transactions)),
		zap.Int("duplicates", result.Duplicates))
	return result, nil
}

// parseAll parses files on a bounded worker pool. Results keep the input order.
// done is called with the running count after each file.
func parseAll(files []source.DiscoveredFile, done func(n int)) []source.ParseResult {
	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	work := make(chan int, len(files))
	results := make([]source.ParseResult, len(files))
	var wg sync.WaitGroup
	var processed atomic.Int64

	for i := range files {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				results[idx] = source.ParseFile(files[idx])
				n := processed.Add(1)
				if done != nil {
					done(int(n))
				}
			}
		}()
	}

	wg.Wait()
	return results
}

package ingestion

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/marketpulse/internal/domain/models"
	"github.com/guttosm/marketpulse/internal/logger"
	"github.com/guttosm/marketpulse/internal/storage"
)

const (
	defaultBatchSize = 5000
	maxParallelFiles = 8
)

// parallelism clamps the requested fan-out to 1..maxParallelFiles;
// 0 means min(maxParallelFiles, NumCPU).
func parallelism(requested int) int {
	if requested > 0 {
		if requested > maxParallelFiles {
			return maxParallelFiles
		}
		return requested
	}
	if c := runtime.NumCPU(); c < maxParallelFiles {
		return c
	}
	return maxParallelFiles
}

// ReadFiles parses every file concurrently and returns their results in the
// order of paths, so that concatenating the records preserves input order.
// If any file fails, the remaining ones are canceled and the first error is returned.
func ReadFiles(ctx context.Context, paths []string, parallel int) ([]Result, error) {
	results := make([]Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism(parallel))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			start := time.Now()
			res, err := ReadFile(gctx, path)
			if err != nil {
				logger.L().Error().Str("file", filepath.Base(path)).Err(err).Msg("file failed")
				return fmt.Errorf("file %s: %w", path, err)
			}
			results[i] = res
			logger.L().Info().
				Int("idx", i+1).
				Int("total", len(paths)).
				Str("file", filepath.Base(path)).
				Int("rows", len(res.Records)).
				Int("skipped", res.Skipped).
				Dur("elapsed", time.Since(start)).
				Msg("file read")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Records flattens results into one slice, keeping file order.
func Records(results []Result) []models.TradeRecord {
	n := 0
	for _, r := range results {
		n += len(r.Records)
	}
	out := make([]models.TradeRecord, 0, n)
	for _, r := range results {
		out = append(out, r.Records...)
	}
	return out
}

// ProcessFiles loads market data files into PostgreSQL.
//
// Behavior:
//   - Files are read concurrently (see ReadFiles).
//   - A file already present in the ingestion log is skipped unless force is set,
//     in which case its previous rows are deleted first.
//   - Rows are inserted in batches of defaultBatchSize, then the ingestion log is updated.
//   - Persisting happens in path order so stored row order follows the input.
//
// Returns the first error encountered (if any).
func ProcessFiles(ctx context.Context, paths []string, repo storage.TradesRepository, parallel int, force bool) error {
	logger.L().Info().Int("files", len(paths)).Msg("ingestion start")

	results, err := ReadFiles(ctx, paths, parallel)
	if err != nil {
		return err
	}

	for _, res := range results {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := persistResult(res, repo, defaultBatchSize, force); err != nil {
			return fmt.Errorf("file %s: %w", res.File, err)
		}
	}
	return nil
}

func persistResult(res Result, repo storage.TradesRepository, batch int, force bool) error {
	base := filepath.Base(res.File)
	start := time.Now()

	exists, err := repo.HasIngestionForFile(base)
	if err != nil {
		return fmt.Errorf("check ingestion log: %w", err)
	}
	if exists && !force {
		logger.L().Info().Str("file", base).Bool("skipped", true).Msg("already ingested")
		return nil
	}
	if exists && force {
		if err := repo.DeleteTradesByFile(base); err != nil {
			return fmt.Errorf("delete existing: %w", err)
		}
	}

	for lo := 0; lo < len(res.Records); lo += batch {
		hi := min(lo+batch, len(res.Records))
		if err := repo.InsertTradesBatch(base, res.Records[lo:hi]); err != nil {
			return fmt.Errorf("flush batch ending row %d: %w", hi, err)
		}
	}

	if err := repo.UpsertIngestionLog(base, len(res.Records), res.Skipped); err != nil {
		return fmt.Errorf("upsert ingestion log: %w", err)
	}
	logger.L().Info().
		Str("file", base).
		Int("rows", len(res.Records)).
		Int("skipped", res.Skipped).
		Dur("elapsed", time.Since(start)).
		Bool("force", force).
		Msg("file done")
	return nil
}

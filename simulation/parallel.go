package simulation

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RunBatchParallel plays the same games as RunBatch on numWorkers
// goroutines (numWorkers <= 0 means one per CPU). Results are collected by
// game index, so the stats match the serial run for the same seed apart
// from timings. It stops early with ctx's error when ctx is cancelled.
func RunBatchParallel(ctx context.Context, opts Options, numGames int, seed uint64, numWorkers int) (AggregatedStats, error) {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	seeds := gameSeeds(numGames, seed)
	results := make([]GameResult, len(seeds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(numWorkers)

	for i, s := range seeds {
		if gctx.Err() != nil {
			break
		}
		i, s := i, s
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = RunSingleGame(opts, s)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return AggregatedStats{}, err
	}
	if err := ctx.Err(); err != nil {
		return AggregatedStats{}, err
	}

	stats := aggregateResults(results)
	logStats(opts.logger().With(zap.Int("workers", numWorkers)), stats)
	return stats, nil
}

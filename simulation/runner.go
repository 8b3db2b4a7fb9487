// Package simulation plays many seeded games of War and aggregates the
// outcomes.
package simulation

import (
	"math/rand"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/ismaeelS/WarCardGame/engine"
	"github.com/ismaeelS/WarCardGame/game"
)

// NumReasons sizes per-reason counters, indexed by game.Reason.
const NumReasons = int(game.ReasonTurnLimit) + 1

// Options configures every game of a batch.
type Options struct {
	Game   game.Config
	Logger *zap.Logger // batch-level logging; games themselves are silent
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// GameResult holds the outcome of a single game
type GameResult struct {
	WinnerID   int8 // -1 for no winner
	TurnCount  uint32
	Reason     game.Reason
	Wars       uint32
	LongestWar uint32
	DurationNs uint64
	Error      string

	// Card-lead tension
	LeadChanges       uint32
	DecisiveTurnPct   float32
	ClosestMargin     float32
	WinnerWasTrailing bool
}

// AggregatedStats summarizes multiple game results
type AggregatedStats struct {
	TotalGames    uint32
	Wins          [2]uint32
	Draws         uint32 // finished without a winner, for any reason
	Loops         uint32
	TurnLimits    uint32
	Endings       [NumReasons]uint32
	AvgTurns      float32
	MedianTurns   uint32
	TotalWars     uint64
	LongestWar    uint32
	AvgDurationNs uint64
	Errors        uint32

	// Tension metrics
	LeadChanges     uint32  // total over all games
	DecisiveTurnPct float32 // average over games with a winner
	ClosestMargin   float32 // average over all games
	TrailingWinners uint32
}

// RunBatch plays numGames games, drawing each game's shuffle seed from a
// generator seeded with seed.
func RunBatch(opts Options, numGames int, seed uint64) AggregatedStats {
	seeds := gameSeeds(numGames, seed)
	results := make([]GameResult, len(seeds))
	for i, s := range seeds {
		results[i] = RunSingleGame(opts, s)
	}

	stats := aggregateResults(results)
	logStats(opts.logger(), stats)
	return stats
}

// RunSingleGame shuffles the standard cards with seed, deals them
// alternately and plays to completion.
func RunSingleGame(opts Options, seed uint64) GameResult {
	start := time.Now()

	cards := engine.StandardCards()
	engine.Shuffle(cards, seed)
	first, second := engine.Split(cards)

	g := game.New(opts.Game, first, second)
	summary, err := g.Run()

	result := GameResult{
		WinnerID:   int8(summary.Winner),
		TurnCount:  uint32(summary.Turns),
		Reason:     summary.Reason,
		Wars:       uint32(summary.Wars),
		LongestWar: uint32(summary.LongestWar),
		DurationNs: uint64(time.Since(start).Nanoseconds()),

		LeadChanges:       uint32(summary.Tension.LeadChanges),
		DecisiveTurnPct:   summary.Tension.DecisiveTurnPct,
		ClosestMargin:     summary.Tension.ClosestMargin,
		WinnerWasTrailing: summary.Tension.WinnerWasTrailing,
	}
	if err != nil {
		result.WinnerID = -1
		result.Error = err.Error()
	}
	return result
}

func gameSeeds(numGames int, seed uint64) []uint64 {
	if numGames < 0 {
		numGames = 0
	}
	rng := rand.New(rand.NewSource(int64(seed)))
	seeds := make([]uint64, numGames)
	for i := range seeds {
		seeds[i] = rng.Uint64()
	}
	return seeds
}

// aggregateResults computes summary statistics
func aggregateResults(results []GameResult) AggregatedStats {
	stats := AggregatedStats{
		TotalGames: uint32(len(results)),
	}

	turnCounts := make([]uint32, 0, len(results))
	totalDuration := uint64(0)
	var decisiveSum, marginSum float64
	decided := 0

	for _, result := range results {
		if result.Error != "" {
			stats.Errors++
			continue
		}

		switch result.WinnerID {
		case 0, 1:
			stats.Wins[result.WinnerID]++
			decided++
			decisiveSum += float64(result.DecisiveTurnPct)
			if result.WinnerWasTrailing {
				stats.TrailingWinners++
			}
		default:
			stats.Draws++
		}
		switch result.Reason {
		case game.ReasonGameLoop:
			stats.Loops++
		case game.ReasonTurnLimit:
			stats.TurnLimits++
		}
		if int(result.Reason) < NumReasons {
			stats.Endings[result.Reason]++
		}

		stats.TotalWars += uint64(result.Wars)
		if result.LongestWar > stats.LongestWar {
			stats.LongestWar = result.LongestWar
		}

		stats.LeadChanges += result.LeadChanges
		marginSum += float64(result.ClosestMargin)

		turnCounts = append(turnCounts, result.TurnCount)
		totalDuration += result.DurationNs
	}

	if decided > 0 {
		stats.DecisiveTurnPct = float32(decisiveSum / float64(decided))
	}

	if len(turnCounts) > 0 {
		sum := uint64(0)
		for _, tc := range turnCounts {
			sum += uint64(tc)
		}
		stats.AvgTurns = float32(sum) / float32(len(turnCounts))
		stats.MedianTurns = median(turnCounts)
		stats.ClosestMargin = float32(marginSum / float64(len(turnCounts)))
	}

	if stats.TotalGames > 0 {
		stats.AvgDurationNs = totalDuration / uint64(stats.TotalGames)
	}

	return stats
}

// median calculates the median of a slice
func median(values []uint32) uint32 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]uint32, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func logStats(logger *zap.Logger, stats AggregatedStats) {
	logger.Info("batch finished",
		zap.Uint32("games", stats.TotalGames),
		zap.Uint32("first_wins", stats.Wins[0]),
		zap.Uint32("second_wins", stats.Wins[1]),
		zap.Uint32("draws", stats.Draws),
		zap.Uint32("loops", stats.Loops),
		zap.Uint32("turn_limits", stats.TurnLimits),
		zap.Float32("avg_turns", stats.AvgTurns),
		zap.Uint32("median_turns", stats.MedianTurns),
		zap.Uint32("lead_changes", stats.LeadChanges),
		zap.Uint32("trailing_winners", stats.TrailingWinners),
		zap.Uint32("errors", stats.Errors),
	)
}

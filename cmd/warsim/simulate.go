package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ismaeelS/WarCardGame/cardsim"
	"github.com/ismaeelS/WarCardGame/game"
	"github.com/ismaeelS/WarCardGame/simulation"
)

func newSimulateCmd(a *app) *cobra.Command {
	var outPath, batchID string

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play many seeded games and summarize the outcomes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			if cfg.Seed == 0 {
				cfg.Seed = uint64(time.Now().UnixNano())
			}
			if batchID == "" {
				batchID = uuid.NewString()
			}

			opts := simulation.Options{
				Game:   cfg.GameConfig(),
				Logger: a.logger.With(zap.String("batch_id", batchID), zap.Uint64("seed", cfg.Seed)),
			}
			stats, err := simulation.RunBatchParallel(cmd.Context(), opts, cfg.Simulate.Games, cfg.Seed, cfg.Simulate.Workers)
			if err != nil {
				return err
			}

			if err := writeStats(cmd.OutOrStdout(), batchID, cfg.Seed, stats); err != nil {
				return err
			}
			if outPath != "" {
				if err := os.WriteFile(outPath, cardsim.EncodeStats(batchID, stats), 0o644); err != nil {
					return fmt.Errorf("failed to write stats to %s: %w", outPath, err)
				}
				a.logger.Info("stats written", zap.String("path", outPath))
			}
			return nil
		},
	}

	f := cmd.Flags()
	addGameFlags(f)
	f.Int("games", 1000, "Number of games to play")
	f.Int("workers", 0, "Number of worker goroutines (0 = auto-detect CPU count)")
	f.StringVar(&outPath, "out", "", "Write the statistics as a FlatBuffers file")
	f.StringVar(&batchID, "batch-id", "", "Identifier stored with the statistics (default: random UUID)")
	return cmd
}

func writeStats(w io.Writer, batchID string, seed uint64, stats simulation.AggregatedStats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Batch:\t%s\n", batchID)
	fmt.Fprintf(tw, "Seed:\t%d\n", seed)
	fmt.Fprintf(tw, "Games:\t%d\n", stats.TotalGames)
	fmt.Fprintf(tw, "First player wins:\t%d\n", stats.Wins[0])
	fmt.Fprintf(tw, "Second player wins:\t%d\n", stats.Wins[1])
	fmt.Fprintf(tw, "No winner:\t%d\n", stats.Draws)
	for _, r := range game.Reasons {
		fmt.Fprintf(tw, "  %s:\t%d\n", r, stats.Endings[r])
	}
	fmt.Fprintf(tw, "Average turns:\t%.1f\n", stats.AvgTurns)
	fmt.Fprintf(tw, "Median turns:\t%d\n", stats.MedianTurns)
	fmt.Fprintf(tw, "Wars:\t%d\n", stats.TotalWars)
	fmt.Fprintf(tw, "Longest war:\t%d\n", stats.LongestWar)
	fmt.Fprintf(tw, "Lead changes:\t%d\n", stats.LeadChanges)
	fmt.Fprintf(tw, "Winners who trailed:\t%d\n", stats.TrailingWinners)
	fmt.Fprintf(tw, "Errors:\t%d\n", stats.Errors)
	return tw.Flush()
}

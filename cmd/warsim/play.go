package main

import (
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ismaeelS/WarCardGame/config"
	"github.com/ismaeelS/WarCardGame/game"
	"github.com/ismaeelS/WarCardGame/report"
)

type playOptions struct {
	nonInteractive bool
	saveDeal       string
}

func newPlayCmd(a *app) *cobra.Command {
	var opts playOptions

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play one game of War",
		Long: "Play one game of War. By default names, the turn limit and the size of each " +
			"batch of turns are asked for on standard input; --turns-per-batch or " +
			"--non-interactive play unattended.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.play(cmd, opts)
		},
	}

	f := cmd.Flags()
	addGameFlags(f)
	f.Int("turns-per-batch", 0, "Play unattended in batches of this many turns")
	f.String("deal", "", "YAML file with fixed opening decks")
	f.BoolVar(&opts.nonInteractive, "non-interactive", false, "Play to the end without prompting")
	f.StringVar(&opts.saveDeal, "save-deal", "", "Write the opening decks to this YAML file")
	return cmd
}

// addGameFlags registers the per-game flags shared by play and simulate.
func addGameFlags(f *pflag.FlagSet) {
	f.String("first", game.DefaultFirstName, "First player's name")
	f.String("second", game.DefaultSecondName, "Second player's name")
	f.String("turn-limit", strconv.Itoa(game.DefaultTurnLimit), "Maximum number of turns")
	f.Uint64("seed", 0, "Shuffle seed (0 = use current time)")
}

func (a *app) play(cmd *cobra.Command, opts playOptions) error {
	cfg := a.cfg
	out := cmd.OutOrStdout()
	interactive := !opts.nonInteractive && cfg.TurnsPerBatch == 0

	var prompter *config.Prompter
	if interactive {
		prompter = config.NewPrompter(cmd.InOrStdin(), out)
		if err := promptSettings(prompter, cmd.Flags(), cfg); err != nil {
			return err
		}
	}

	if cfg.Seed == 0 && cfg.DealFile == "" {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	first, second, err := cfg.Deal()
	if err != nil {
		return err
	}
	if opts.saveDeal != "" {
		if err := config.SaveDeal(opts.saveDeal, config.Deal{First: first, Second: second}); err != nil {
			return err
		}
	}

	text := report.NewText(out, true)
	g := game.New(cfg.GameConfig(), first, second,
		game.WithObserver(report.Multi{text, report.NewLog(a.logger.Named("events"))}),
		game.WithLogger(a.logger),
	)
	a.logger.Info("game started",
		zap.String("game_id", g.ID().String()),
		zap.Uint64("seed", cfg.Seed),
		zap.String("deal_file", cfg.DealFile),
		zap.Int("turn_limit", g.TurnLimit()),
	)

	s := g.Summary()
	text.WriteDecks(s.Players, s.Decks, s.Turns)

	for !g.Finished() {
		n := cfg.TurnsPerBatch
		if interactive {
			n, err = prompter.TurnsToPlay()
			switch {
			case errors.Is(err, io.EOF):
				// Input closed: finish unattended.
				interactive, n = false, 0
			case err != nil:
				return err
			}
		}

		if n == 0 {
			if _, err := g.Run(); err != nil {
				return err
			}
			break
		}
		if _, err := g.PlayTurns(n); err != nil {
			return err
		}
	}
	return text.Err()
}

// promptSettings asks for whatever the command line left unset.
func promptSettings(p *config.Prompter, flags *pflag.FlagSet, cfg *config.Config) error {
	if !flags.Changed("first") {
		name, err := p.PlayerName(1)
		if err != nil {
			return err
		}
		cfg.Players.First = name
	}
	if !flags.Changed("second") {
		name, err := p.PlayerName(2)
		if err != nil {
			return err
		}
		cfg.Players.Second = name
	}
	if !flags.Changed("turn-limit") {
		limit, err := p.TurnLimit()
		if err != nil {
			return err
		}
		cfg.TurnLimit = limit
	}
	return nil
}

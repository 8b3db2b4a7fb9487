package report

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ismaeelS/WarCardGame/engine"
	"github.com/ismaeelS/WarCardGame/game"
)

// Log records game events as structured zap entries. Per-card events go to
// debug, deck-outs and endings to info.
type Log struct {
	logger *zap.Logger
}

// NewLog creates a Log reporter. A nil logger discards everything.
func NewLog(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{logger: logger}
}

func (l *Log) Compared(c game.Comparison) {
	if ce := l.logger.Check(zap.DebugLevel, "cards compared"); ce != nil {
		ce.Write(
			zap.String("first", c.First),
			zap.Stringer("first_card", c.FirstCard),
			zap.String("second", c.Second),
			zap.Stringer("second_card", c.SecondCard),
			zap.Stringer("result", c.Result),
			zap.Int("war", c.War),
		)
	}
}

func (l *Log) WarStaked(first, second []engine.Card) {
	if ce := l.logger.Check(zap.DebugLevel, "war stakes"); ce != nil {
		ce.Write(
			zap.String("first_stake", engine.FormatCards(first)),
			zap.String("second_stake", engine.FormatCards(second)),
		)
	}
}

func (l *Log) DeckedOut(e game.DeckOutEvent) {
	l.logger.Info("deck out",
		zap.Stringer("deck_out", e.DeckOut),
		zap.Stringer("reason", e.Reason),
		zap.String("first", e.First),
		zap.String("second", e.Second),
	)
}

func (l *Log) BattleResolved(out game.BattleOutcome, first, second *game.Player) {
	if ce := l.logger.Check(zap.DebugLevel, "battle resolved"); ce != nil {
		ce.Write(
			zap.Int("winner", out.Winner),
			zap.Int("wars", out.Wars),
			zap.Int("staked", out.Staked()),
			zap.Int("first_cards", first.Deck.Len()),
			zap.Int("second_cards", second.Deck.Len()),
		)
	}
}

func (l *Log) BatchPlayed(b game.BatchResult) {
	l.logger.Debug("batch played",
		zap.Int("requested", b.Requested),
		zap.Int("played", b.Played),
		zap.Bool("finished", b.Finished),
	)
}

func (l *Log) GameOver(s game.Summary) {
	l.logger.Info("game finished", zap.Object("summary", summaryFields(s)))
}

type summaryFields game.Summary

func (s summaryFields) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("game_id", s.GameID.String())
	enc.AddString("reason", s.Reason.String())
	enc.AddString("message", s.Message)
	enc.AddInt("winner", s.Winner)
	if name := game.Summary(s).WinnerName(); name != "" {
		enc.AddString("winner_name", name)
	}
	enc.AddInt("turns", s.Turns)
	enc.AddInt("turn_limit", s.TurnLimit)
	enc.AddInt("battles", s.Battles)
	enc.AddInt("wars", s.Wars)
	enc.AddInt("longest_war", s.LongestWar)
	enc.AddInt("lead_changes", s.Tension.LeadChanges)
	enc.AddBool("winner_was_trailing", s.Tension.WinnerWasTrailing)
	enc.AddString("first_deck", engine.FormatCards(s.Decks[0]))
	enc.AddString("second_deck", engine.FormatCards(s.Decks[1]))
	return nil
}

// Multi fans every event out to each observer in order.
type Multi []game.Observer

func (m Multi) Compared(c game.Comparison) {
	for _, o := range m {
		o.Compared(c)
	}
}

func (m Multi) WarStaked(first, second []engine.Card) {
	for _, o := range m {
		o.WarStaked(first, second)
	}
}

func (m Multi) DeckedOut(e game.DeckOutEvent) {
	for _, o := range m {
		o.DeckedOut(e)
	}
}

func (m Multi) BattleResolved(out game.BattleOutcome, first, second *game.Player) {
	for _, o := range m {
		o.BattleResolved(out, first, second)
	}
}

func (m Multi) BatchPlayed(b game.BatchResult) {
	for _, o := range m {
		o.BatchPlayed(b)
	}
}

func (m Multi) GameOver(s game.Summary) {
	for _, o := range m {
		o.GameOver(s)
	}
}

package game

import (
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ismaeelS/WarCardGame/engine"
)

const (
	DefaultFirstName  = "Player 1"
	DefaultSecondName = "Player 2"
	DefaultTurnLimit  = 1000
)

// deckSeparator never collides with a rank or suit byte.
const deckSeparator = 0xFF

// Config holds the per-game settings supplied from outside.
type Config struct {
	FirstName  string
	SecondName string
	TurnLimit  int
}

// State is the controller state.
type State uint8

const (
	Running State = iota
	Finished
)

func (s State) String() string {
	if s == Finished {
		return "finished"
	}
	return "running"
}

// Summary is the terminal report of a game.
type Summary struct {
	GameID     uuid.UUID
	Players    [2]string
	Decks      [2][]engine.Card
	Reason     Reason
	Message    string
	Winner     int // -1 when nobody won
	Turns      int
	TurnLimit  int
	Battles    int
	Wars       int
	LongestWar int
	Tension    Tension
}

// WinnerName returns the winning player's name, or "" for no winner.
func (s Summary) WinnerName() string {
	if s.Winner < 0 || s.Winner > 1 {
		return ""
	}
	return s.Players[s.Winner]
}

// Option configures a GameOfWar.
type Option func(*GameOfWar)

// WithObserver routes game events to obs.
func WithObserver(obs Observer) Option {
	return func(g *GameOfWar) {
		if obs != nil {
			g.obs = obs
		}
	}
}

// WithLogger sets the logger used for turn and termination events.
func WithLogger(logger *zap.Logger) Option {
	return func(g *GameOfWar) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithID overrides the randomly generated game id.
func WithID(id uuid.UUID) Option {
	return func(g *GameOfWar) { g.id = id }
}

// GameOfWar drives battles between two players until a deck runs out, a
// deck configuration repeats, or the turn limit is reached. It is not safe
// for concurrent use.
type GameOfWar struct {
	id        uuid.UUID
	players   [2]*Player
	turns     int
	turnLimit int
	history   map[uint64]struct{}
	scratch   []byte

	state  State
	reason Reason
	winner int
	err    error

	battles    int
	wars       int
	longestWar int
	tension    Tension

	obs    Observer
	logger *zap.Logger
}

// New creates a game from cfg and the two opening decks (top first).
// Empty names fall back to "Player 1"/"Player 2" and a negative turn limit
// to DefaultTurnLimit.
func New(cfg Config, first, second []engine.Card, opts ...Option) *GameOfWar {
	if cfg.FirstName == "" {
		cfg.FirstName = DefaultFirstName
	}
	if cfg.SecondName == "" {
		cfg.SecondName = DefaultSecondName
	}
	if cfg.TurnLimit < 0 {
		cfg.TurnLimit = DefaultTurnLimit
	}

	g := &GameOfWar{
		id: uuid.New(),
		players: [2]*Player{
			NewPlayer(cfg.FirstName, first),
			NewPlayer(cfg.SecondName, second),
		},
		turnLimit: cfg.TurnLimit,
		history:   make(map[uint64]struct{}),
		tension:   newTension(),
		winner:    -1,
		obs:       NopObserver{},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With(zap.String("game_id", g.id.String()))
	return g
}

func (g *GameOfWar) ID() uuid.UUID { return g.id }
func (g *GameOfWar) Turns() int { return g.turns }
func (g *GameOfWar) TurnLimit() int { return g.turnLimit }
func (g *GameOfWar) State() State { return g.state }
func (g *GameOfWar) Finished() bool { return g.state == Finished }
func (g *GameOfWar) Reason() Reason { return g.reason }
func (g *GameOfWar) Winner() int { return g.winner }
func (g *GameOfWar) Players() [2]*Player { return g.players }
func (g *GameOfWar) Err() error { return g.err }

// Fingerprint digests the full order of both decks.
func (g *GameOfWar) Fingerprint() uint64 {
	buf := g.players[0].Deck.AppendBinary(g.scratch[:0])
	buf = append(buf, deckSeparator)
	buf = g.players[1].Deck.AppendBinary(buf)
	g.scratch = buf
	return xxhash.Sum64(buf)
}

// Step plays one turn: turn-limit check, loop check, then a battle. It
// reports whether the game is finished. After an error the game is frozen
// and every later call returns the same error.
func (g *GameOfWar) Step() (bool, error) {
	if g.err != nil {
		return true, g.err
	}
	if g.state == Finished {
		return true, nil
	}

	if g.turns >= g.turnLimit {
		g.finish(ReasonTurnLimit, -1)
		return true, nil
	}

	fp := g.Fingerprint()
	if _, seen := g.history[fp]; seen {
		g.finish(ReasonGameLoop, -1)
		return true, nil
	}
	g.history[fp] = struct{}{}

	out, err := ResolveBattle(g.players[0], g.players[1], g.obs)
	if err != nil {
		g.err = err
		g.logger.Error("battle failed", zap.Int("turn", g.turns), zap.Error(err))
		return true, err
	}

	g.battles++
	g.wars += out.Wars
	if out.Wars > g.longestWar {
		g.longestWar = out.Wars
	}
	g.tension.record(g.players[0].Deck.Len(), g.players[1].Deck.Len())

	if out.Terminal() {
		g.finish(out.Reason, out.Winner)
		return true, nil
	}

	g.turns++
	g.logger.Debug("turn played",
		zap.Int("turn", g.turns),
		zap.Int("winner", out.Winner),
		zap.Int("wars", out.Wars),
		zap.Int("first_cards", g.players[0].Deck.Len()),
		zap.Int("second_cards", g.players[1].Deck.Len()),
	)

	// The next turn would open with this check anyway.
	if g.turns >= g.turnLimit {
		g.finish(ReasonTurnLimit, -1)
		return true, nil
	}
	return false, nil
}

// PlayTurns plays up to n turns (n < 2 counts as 1), stopping early if the
// game finishes. Played counts only completed, non-terminal turns.
func (g *GameOfWar) PlayTurns(n int) (BatchResult, error) {
	if n < 2 {
		n = 1
	}
	res := BatchResult{Requested: n}

	for res.Played < n && !g.Finished() {
		before := g.turns
		finished, err := g.Step()
		if err != nil {
			res.Finished = true
			return res, err
		}
		if g.turns > before {
			res.Played++
		}
		if finished {
			break
		}
	}

	res.Finished = g.Finished()
	g.obs.BatchPlayed(res)
	return res, nil
}

// Run plays until the game finishes.
func (g *GameOfWar) Run() (Summary, error) {
	for !g.Finished() {
		if _, err := g.Step(); err != nil {
			return g.Summary(), err
		}
	}
	return g.Summary(), nil
}

// Summary snapshots the current game; Reason is ReasonNone while running.
func (g *GameOfWar) Summary() Summary {
	s := Summary{
		GameID:     g.id,
		Players:    [2]string{g.players[0].Name, g.players[1].Name},
		Decks:      [2][]engine.Card{g.players[0].Deck.Cards(), g.players[1].Deck.Cards()},
		Reason:     g.reason,
		Winner:     g.winner,
		Turns:      g.turns,
		TurnLimit:  g.turnLimit,
		Battles:    g.battles,
		Wars:       g.wars,
		LongestWar: g.longestWar,
		Tension:    g.tension,
	}
	s.Tension.history = nil
	s.Message = g.reason.Message(g.turnLimit)
	return s
}

func (g *GameOfWar) finish(reason Reason, winner int) {
	g.state = Finished
	g.reason = reason
	g.winner = winner
	g.tension.finalize(winner)

	summary := g.Summary()
	g.logger.Info("game over",
		zap.Stringer("reason", reason),
		zap.Int("turns", g.turns),
		zap.Int("winner", winner),
		zap.Int("battles", g.battles),
		zap.Int("wars", g.wars),
	)
	g.obs.GameOver(summary)
}

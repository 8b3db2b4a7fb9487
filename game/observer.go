package game

import "github.com/ismaeelS/WarCardGame/engine"

// Comparison is one reveal of a card pair during a battle.
type Comparison struct {
	First, Second string
	FirstCard     engine.Card
	SecondCard    engine.Card
	Result        engine.Comparison
	War           int // 0 for the opening reveal, n for the n-th escalation
}

// DeckOutEvent is emitted when a draw finds an empty deck.
type DeckOutEvent struct {
	First, Second string
	DeckOut       DeckOut
	Reason        Reason
}

// BatchResult reports a PlayTurns call.
type BatchResult struct {
	Requested int
	Played    int
	Finished  bool
}

// Observer receives game events. Implementations must not mutate the
// players they are handed.
type Observer interface {
	Compared(Comparison)
	WarStaked(first, second []engine.Card)
	DeckedOut(DeckOutEvent)
	BattleResolved(out BattleOutcome, first, second *Player)
	BatchPlayed(BatchResult)
	GameOver(Summary)
}

// NopObserver ignores every event. Embed it to implement only a subset.
type NopObserver struct{}

func (NopObserver) Compared(Comparison) {}
func (NopObserver) WarStaked(_, _ []engine.Card) {}
func (NopObserver) DeckedOut(DeckOutEvent) {}
func (NopObserver) BattleResolved(BattleOutcome, *Player, *Player) {}
func (NopObserver) BatchPlayed(BatchResult) {}
func (NopObserver) GameOver(Summary) {}

// Package report turns game events into console text or structured logs.
package report

import (
	"fmt"
	"io"

	"github.com/ismaeelS/WarCardGame/engine"
	"github.com/ismaeelS/WarCardGame/game"
)

// Text writes the human readable play-by-play. With Battles false only
// batch notices and the final report are written.
type Text struct {
	w       io.Writer
	battles bool
	err     error
}

// NewText creates a Text reporter writing to w.
func NewText(w io.Writer, battles bool) *Text {
	return &Text{w: w, battles: battles}
}

// Err returns the first write error, if any.
func (t *Text) Err() error { return t.err }

func (t *Text) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *Text) Compared(c game.Comparison) {
	if !t.battles {
		return
	}
	t.printf("%s's %s vs. %s's %s\n", c.First, c.FirstCard, c.Second, c.SecondCard)
	switch c.Result {
	case engine.Tie:
		t.printf("There Was a Tie Between %s and %s\n", c.FirstCard, c.SecondCard)
	case engine.FirstWins:
		t.printf("%s Wins This Round With a %s Against a %s\n", c.First, c.FirstCard, c.SecondCard)
	case engine.SecondWins:
		t.printf("%s Wins This Round With a %s Against a %s\n", c.Second, c.SecondCard, c.FirstCard)
	}
}

func (t *Text) WarStaked(first, second []engine.Card) {
	if !t.battles {
		return
	}
	t.printf("At stake: %s %s\n", engine.FormatCards(first), engine.FormatCards(second))
}

func (t *Text) DeckedOut(e game.DeckOutEvent) {
	switch e.DeckOut {
	case game.DeckOutBoth:
		t.printf("Both Players Have Decked Out\n")
	case game.DeckOutFirst:
		t.printf("%s has Decked Out. %s Wins.\n", e.First, e.Second)
	case game.DeckOutSecond:
		t.printf("%s has Decked Out. %s Wins.\n", e.Second, e.First)
	}
}

func (t *Text) BattleResolved(out game.BattleOutcome, first, second *game.Player) {
	if !t.battles {
		return
	}
	if !out.Terminal() {
		t.printf("cards after this round: %s %s\n", first.Deck, second.Deck)
	}
	t.printf("\n")
}

func (t *Text) BatchPlayed(b game.BatchResult) {
	switch {
	case b.Played < b.Requested && b.Finished:
		t.printf("Able to play %d of the %d requested rounds due to the game ending.\n", b.Played, b.Requested)
	case b.Played == b.Requested && b.Requested > 1:
		t.printf("\nAble to play %d rounds.\n", b.Requested)
	}
}

func (t *Text) GameOver(s game.Summary) {
	t.printf("\nGame Over: %s\n", s.Message)
	t.WriteDecks(s.Players, s.Decks, s.Turns)
}

// WriteDecks prints each player's deck and the number of turns taken.
func (t *Text) WriteDecks(names [2]string, decks [2][]engine.Card, turns int) {
	t.printf("\nEach player's deck:\n")
	for i := range names {
		t.printf("%s's deck: %s\n", names[i], engine.FormatCards(decks[i]))
	}
	t.printf("%d turns taken.\n", turns)
}

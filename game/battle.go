package game

import (
	"fmt"

	"github.com/ismaeelS/WarCardGame/engine"
)

// Player is a named owner of one deck.
type Player struct {
	Name string
	Deck *engine.Deck
}

// NewPlayer creates a player holding a copy of cards.
func NewPlayer(name string, cards []engine.Card) *Player {
	return &Player{Name: name, Deck: engine.NewDeck(cards)}
}

// BattleOutcome describes how one battle ended.
type BattleOutcome struct {
	Winner  int     // 0 or 1; -1 when both players decked out
	Reason  Reason  // ReasonNone when the battle was decided by a comparison
	DeckOut DeckOut // DeckOutNone unless a deck ran out
	Wars    int     // tie escalations started during the battle
	Stakes  [2][]engine.Card
	Moved   []engine.Card // cards appended to the winner's deck, in order
}

// Terminal reports whether the battle ended the game.
func (o BattleOutcome) Terminal() bool { return o.Reason != ReasonNone }

// Staked is the number of cards that were at stake when the battle ended.
func (o BattleOutcome) Staked() int { return len(o.Stakes[0]) + len(o.Stakes[1]) }

// CheckDeckOut must run before every draw, including each draw of a war.
func CheckDeckOut(first, second *engine.Deck) DeckOut {
	switch {
	case first.Empty() && second.Empty():
		return DeckOutBoth
	case first.Empty():
		return DeckOutFirst
	case second.Empty():
		return DeckOutSecond
	}
	return DeckOutNone
}

// ResolveBattle plays one full battle between first and second: reveal the
// top cards, and on a tie keep staking a buried card and a compare card per
// player until the comparison is decided or a deck runs out.
//
// A decided battle moves every staked card to the winner's deck, first
// player's stake before second player's, each in draw order. A deck-out
// gives the same pile to the player who still has cards; when both run out
// each stake goes back to its owner. Rank errors are returned unchanged.
func ResolveBattle(first, second *Player, obs Observer) (BattleOutcome, error) {
	if obs == nil {
		obs = NopObserver{}
	}
	b := &battle{players: [2]*Player{first, second}, obs: obs}
	out, err := b.resolve()
	if err != nil {
		return out, err
	}
	obs.BattleResolved(out, first, second)
	return out, nil
}

type battle struct {
	players [2]*Player
	stakes  [2][]engine.Card
	wars    int
	obs     Observer
}

func (b *battle) resolve() (BattleOutcome, error) {
	if out, done, err := b.draw(0); done || err != nil {
		return out, err
	}

	for {
		result, err := b.compare()
		if err != nil {
			return b.outcome(-1, ReasonNone, DeckOutNone, nil), err
		}
		if b.wars > 0 {
			b.obs.WarStaked(b.stakes[0], b.stakes[1])
		}

		if result != engine.Tie {
			winner := 0
			if result == engine.SecondWins {
				winner = 1
			}
			pot := b.pot()
			b.players[winner].Deck.AppendAll(pot)
			return b.outcome(winner, ReasonNone, DeckOutNone, pot), nil
		}

		b.wars++
		for position := 1; position <= 2; position++ {
			if out, done, err := b.draw(position); done || err != nil {
				return out, err
			}
		}
	}
}

// draw checks for a deck-out and otherwise moves one card from each deck
// onto its owner's stake. done is true when the battle is over.
func (b *battle) draw(position int) (out BattleOutcome, done bool, err error) {
	first, second := b.players[0], b.players[1]

	switch deckOut := CheckDeckOut(first.Deck, second.Deck); deckOut {
	case DeckOutNone:
	case DeckOutBoth:
		first.Deck.AppendAll(b.stakes[0])
		second.Deck.AppendAll(b.stakes[1])
		return b.deckedOut(deckOut, position, nil), true, nil
	default:
		pot := b.pot()
		b.players[deckOut.Winner()].Deck.AppendAll(pot)
		return b.deckedOut(deckOut, position, pot), true, nil
	}

	for i, p := range b.players {
		card, err := p.Deck.RemoveTop()
		if err != nil {
			return b.outcome(-1, ReasonNone, DeckOutNone, nil), true, fmt.Errorf("player %q: %w", p.Name, err)
		}
		b.stakes[i] = append(b.stakes[i], card)
	}
	return BattleOutcome{}, false, nil
}

func (b *battle) compare() (engine.Comparison, error) {
	a := b.stakes[0][len(b.stakes[0])-1]
	c := b.stakes[1][len(b.stakes[1])-1]

	result, err := engine.CompareCards(a, c)
	if err != nil {
		return result, err
	}
	b.obs.Compared(Comparison{
		First:      b.players[0].Name,
		Second:     b.players[1].Name,
		FirstCard:  a,
		SecondCard: c,
		Result:     result,
		War:        b.wars,
	})
	return result, nil
}

func (b *battle) deckedOut(deckOut DeckOut, position int, moved []engine.Card) BattleOutcome {
	reason := drawReason(position)
	b.obs.DeckedOut(DeckOutEvent{
		First:   b.players[0].Name,
		Second:  b.players[1].Name,
		DeckOut: deckOut,
		Reason:  reason,
	})
	return b.outcome(deckOut.Winner(), reason, deckOut, moved)
}

func (b *battle) outcome(winner int, reason Reason, deckOut DeckOut, moved []engine.Card) BattleOutcome {
	return BattleOutcome{
		Winner:  winner,
		Reason:  reason,
		DeckOut: deckOut,
		Wars:    b.wars,
		Stakes:  b.stakes,
		Moved:   moved,
	}
}

// pot is everything at stake: the first player's cards, then the second's.
func (b *battle) pot() []engine.Card {
	pot := make([]engine.Card, 0, len(b.stakes[0])+len(b.stakes[1]))
	pot = append(pot, b.stakes[0]...)
	return append(pot, b.stakes[1]...)
}

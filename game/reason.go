package game

import "fmt"

// Reason is why a game finished. ReasonNone means it is still running (or,
// on a battle outcome, that the battle was decided normally).
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonNormalDeckOut
	ReasonTieDeckOutBuried
	ReasonTieDeckOutCompare
	ReasonGameLoop
	ReasonTurnLimit
)

var reasonNames = map[Reason]string{
	ReasonNone:              "None",
	ReasonNormalDeckOut:     "NormalDeckOut",
	ReasonTieDeckOutBuried:  "TieDeckOutBuried",
	ReasonTieDeckOutCompare: "TieDeckOutCompare",
	ReasonGameLoop:          "GameLoop",
	ReasonTurnLimit:         "TurnLimitReached",
}

// Reasons lists every terminal reason in a stable order.
var Reasons = []Reason{
	ReasonNormalDeckOut,
	ReasonTieDeckOutBuried,
	ReasonTieDeckOutCompare,
	ReasonGameLoop,
	ReasonTurnLimit,
}

func (r Reason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Reason(%d)", uint8(r))
}

// Terminal reports whether r ends a game.
func (r Reason) Terminal() bool {
	return r != ReasonNone && r <= ReasonTurnLimit
}

// Message is the human readable game-over text. turnLimit is only used by
// ReasonTurnLimit.
func (r Reason) Message(turnLimit int) string {
	switch r {
	case ReasonGameLoop:
		return "This State Has Been Seen Before. In a Game Loop."
	case ReasonNormalDeckOut:
		return "Deck Out While Comparing Topdecks"
	case ReasonTieDeckOutBuried:
		return "Deck Out While Adding Middle Card During a Tie"
	case ReasonTieDeckOutCompare:
		return "Deck Out While Adding Last Card During a Tie"
	case ReasonTurnLimit:
		return fmt.Sprintf("Reached Turn Limit of %d", turnLimit)
	}
	return ""
}

// DeckOut is the result of checking both decks before a draw.
type DeckOut uint8

const (
	DeckOutNone DeckOut = iota
	DeckOutBoth
	DeckOutFirst
	DeckOutSecond
)

func (d DeckOut) String() string {
	switch d {
	case DeckOutNone:
		return "none"
	case DeckOutBoth:
		return "both"
	case DeckOutFirst:
		return "first"
	case DeckOutSecond:
		return "second"
	}
	return fmt.Sprintf("DeckOut(%d)", uint8(d))
}

// Winner is the index of the player left holding cards, or -1 when both
// ran out (or nobody did).
func (d DeckOut) Winner() int {
	switch d {
	case DeckOutFirst:
		return 1
	case DeckOutSecond:
		return 0
	}
	return -1
}

// drawReason maps the draw position inside a battle to its terminal reason:
// 0 is the opening reveal, 1 the buried war card, 2 the war compare card.
func drawReason(position int) Reason {
	switch position {
	case 1:
		return ReasonTieDeckOutBuried
	case 2:
		return ReasonTieDeckOutCompare
	}
	return ReasonNormalDeckOut
}

package engine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRank = errors.New("invalid card rank")
	ErrInvalidSuit = errors.New("invalid card suit")
	ErrInvalidCard = errors.New("invalid card encoding")
)

// Rank is the order index of a card rank, 0 ("2") through 12 ("A").
type Rank uint8

const (
	Rank2 Rank = iota
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJack
	RankQueen
	RankKing
	RankAce

	NumRanks = 13
)

var rankSymbols = [NumRanks]string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

// Suit is one of the four suits. It never affects an outcome.
type Suit uint8

const (
	Hearts Suit = iota
	Diamonds
	Spades
	Clubs

	NumSuits = 4
)

var suitSymbols = [NumSuits]string{"H", "D", "S", "C"}

// Valid reports whether r is one of the 13 recognised ranks.
func (r Rank) Valid() bool { return r < NumRanks }

func (r Rank) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Rank(%d)", uint8(r))
	}
	return rankSymbols[r]
}

func (s Suit) Valid() bool { return s < NumSuits }

func (s Suit) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Suit(%d)", uint8(s))
	}
	return suitSymbols[s]
}

// ParseRank maps a rank symbol ("2".."10", "J", "Q", "K", "A") to its Rank.
func ParseRank(symbol string) (Rank, error) {
	for i, s := range rankSymbols {
		if s == symbol {
			return Rank(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRank, symbol)
}

// ParseSuit maps a suit letter (H, D, S, C) to its Suit.
func ParseSuit(symbol string) (Suit, error) {
	for i, s := range suitSymbols {
		if s == symbol {
			return Suit(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSuit, symbol)
}

// Card is an immutable playing card. Only the rank matters for battles.
type Card struct {
	Rank Rank
	Suit Suit
}

// ParseCard decodes the "XY" form where Y is the suit letter and X the rank
// symbol, e.g. "10H" or "AS".
func ParseCard(s string) (Card, error) {
	if len(s) < 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}
	rank, err := ParseRank(s[:len(s)-1])
	if err != nil {
		return Card{}, fmt.Errorf("card %q: %w", s, err)
	}
	suit, err := ParseSuit(s[len(s)-1:])
	if err != nil {
		return Card{}, fmt.Errorf("card %q: %w", s, err)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// ParseCards decodes a list of card strings, failing on the first bad one.
func ParseCards(ss []string) ([]Card, error) {
	cards := make([]Card, 0, len(ss))
	for i, s := range ss {
		c, err := ParseCard(s)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards for literals known to be valid.
func MustParseCards(ss ...string) []Card {
	cards, err := ParseCards(ss)
	if err != nil {
		panic(err)
	}
	return cards
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

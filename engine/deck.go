package engine

import (
	"errors"
	"math/rand"
	"strings"
)

var ErrEmptyDeck = errors.New("draw from empty deck")

// Deck is an ordered pile of cards; index 0 is the top.
type Deck struct {
	cards []Card
}

// NewDeck creates a deck holding a copy of cards, top first.
func NewDeck(cards []Card) *Deck {
	d := &Deck{cards: make([]Card, 0, 2*len(cards))}
	d.cards = append(d.cards, cards...)
	return d
}

func (d *Deck) Len() int    { return len(d.cards) }
func (d *Deck) Empty() bool { return len(d.cards) == 0 }

// RemoveTop takes the top card. Callers are expected to check for an empty
// deck first; ErrEmptyDeck means that contract was broken.
func (d *Deck) RemoveTop() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	top := d.cards[0]
	d.cards = d.cards[1:]
	return top, nil
}

// AppendAll puts cards on the bottom of the deck, keeping their order.
func (d *Deck) AppendAll(cards []Card) {
	d.cards = append(d.cards, cards...)
}

// Cards returns a copy of the deck contents, top first.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// AppendBinary appends a rank byte and a suit byte per card, top first.
func (d *Deck) AppendBinary(dst []byte) []byte {
	for _, c := range d.cards {
		dst = append(dst, byte(c.Rank), byte(c.Suit))
	}
	return dst
}

// String renders the deck as space separated cards, top first.
func (d *Deck) String() string {
	return FormatCards(d.cards)
}

// FormatCards renders cards the way decks and stakes are reported.
func FormatCards(cards []Card) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, c := range cards {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// StandardCards builds the 52-card set, rank-major: 2H 2D 2S 2C 3H ...
func StandardCards() []Card {
	cards := make([]Card, 0, NumRanks*NumSuits)
	for rank := Rank(0); rank < NumRanks; rank++ {
		for suit := Suit(0); suit < NumSuits; suit++ {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}
	return cards
}

// Shuffle permutes cards in place using a seeded source.
func Shuffle(cards []Card, seed uint64) {
	rng := rand.New(rand.NewSource(int64(seed)))
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// Split deals alternately: even positions to the first pile, odd to the
// second. An unshuffled standard set therefore splits into equal hands.
func Split(cards []Card) (first, second []Card) {
	first = make([]Card, 0, (len(cards)+1)/2)
	second = make([]Card, 0, len(cards)/2)
	for i, c := range cards {
		if i%2 == 0 {
			first = append(first, c)
		} else {
			second = append(second, c)
		}
	}
	return first, second
}

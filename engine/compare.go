package engine

import "fmt"

// Comparison is the result of comparing two ranks.
type Comparison int8

const (
	Tie        Comparison = 0
	FirstWins  Comparison = 1
	SecondWins Comparison = 2
)

func (c Comparison) String() string {
	switch c {
	case Tie:
		return "tie"
	case FirstWins:
		return "first"
	case SecondWins:
		return "second"
	}
	return fmt.Sprintf("Comparison(%d)", int8(c))
}

// CompareRanks orders two ranks under War's rule: the higher index wins,
// except that a 2 beats an Ace.
func CompareRanks(a, b Rank) (Comparison, error) {
	if !a.Valid() {
		return Tie, fmt.Errorf("first card: %w: %d", ErrInvalidRank, uint8(a))
	}
	if !b.Valid() {
		return Tie, fmt.Errorf("second card: %w: %d", ErrInvalidRank, uint8(b))
	}

	switch {
	case a == b:
		return Tie, nil
	case a == Rank2 && b == RankAce:
		return FirstWins, nil
	case a == RankAce && b == Rank2:
		return SecondWins, nil
	case a > b:
		return FirstWins, nil
	default:
		return SecondWins, nil
	}
}

// CompareCards compares the ranks of two cards; suits are ignored.
func CompareCards(a, b Card) (Comparison, error) {
	return CompareRanks(a.Rank, b.Rank)
}

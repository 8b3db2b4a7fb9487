package game

// Tension follows who holds more cards from one turn to the next.
type Tension struct {
	LeadChanges       int     // times the card lead passed from one player to the other
	DecisiveTurn      int     // first turn from which the winner never gave up the lead
	DecisiveTurnPct   float32 // DecisiveTurn as a share of all battles
	ClosestMargin     float32 // smallest gap between the decks, as a share of all cards
	WinnerWasTrailing bool    // the winner was behind on cards at some point

	leader  int   // -1 while level or before the first turn
	history []int // leader after each battle
}

func newTension() Tension {
	return Tension{ClosestMargin: 1, leader: -1}
}

// leaderOf returns the player holding more cards, or -1 when level.
func leaderOf(first, second int) int {
	switch {
	case first > second:
		return 0
	case second > first:
		return 1
	}
	return -1
}

// record notes the deck sizes after a battle.
func (t *Tension) record(first, second int) {
	leader := leaderOf(first, second)
	if leader >= 0 {
		if t.leader >= 0 && leader != t.leader {
			t.LeadChanges++
		}
		t.leader = leader
	}
	t.history = append(t.history, leader)

	if total := first + second; total > 0 {
		gap := first - second
		if gap < 0 {
			gap = -gap
		}
		if margin := float32(gap) / float32(total); margin < t.ClosestMargin {
			t.ClosestMargin = margin
		}
	}
}

// finalize fills the winner-dependent fields. winner is -1 for no winner.
func (t *Tension) finalize(winner int) {
	t.DecisiveTurn, t.DecisiveTurnPct = 0, 0
	t.WinnerWasTrailing = false
	if winner < 0 || winner > 1 || len(t.history) == 0 {
		return
	}

	decisive := len(t.history)
	for i := len(t.history) - 1; i >= 0 && t.history[i] == winner; i-- {
		decisive = i
	}
	t.DecisiveTurn = decisive + 1
	t.DecisiveTurnPct = float32(t.DecisiveTurn) / float32(len(t.history))

	for _, leader := range t.history {
		if leader >= 0 && leader != winner {
			t.WinnerWasTrailing = true
			break
		}
	}
}

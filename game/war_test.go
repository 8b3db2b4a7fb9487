package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/ismaeelS/WarCardGame/engine"
)

// loopingDecks return to their opening configuration after four turns.
func loopingDecks() ([]engine.Card, []engine.Card) {
	return engine.MustParseCards("KH", "2S"), engine.MustParseCards("3S", "4D")
}

func totalCards(g *GameOfWar) int {
	p := g.Players()
	return p[0].Deck.Len() + p[1].Deck.Len()
}

func TestNew_Defaults(t *testing.T) {
	g := New(Config{TurnLimit: -5}, nil, nil)

	p := g.Players()
	assert.Equal(t, DefaultFirstName, p[0].Name)
	assert.Equal(t, DefaultSecondName, p[1].Name)
	assert.Equal(t, DefaultTurnLimit, g.TurnLimit())
	assert.Equal(t, Running, g.State())
	assert.Equal(t, -1, g.Winner())
	assert.NotEqual(t, uuid.Nil, g.ID())
}

func TestNew_WithID(t *testing.T) {
	id := uuid.MustParse("6f1c2a8e-4b1d-4c1e-9d7a-1f2e3d4c5b6a")
	g := New(Config{}, nil, nil, WithID(id))
	assert.Equal(t, id, g.ID())
	assert.Equal(t, id, g.Summary().GameID)
}

func TestStep_ZeroTurnLimit(t *testing.T) {
	a, b := loopingDecks()
	g := New(Config{TurnLimit: 0}, a, b)

	finished, err := g.Step()
	require.NoError(t, err)
	assert.True(t, finished)
	assert.Equal(t, ReasonTurnLimit, g.Reason())
	assert.Equal(t, 0, g.Turns())
	assert.Equal(t, 4, totalCards(g))
}

func TestRun_DetectsLoop(t *testing.T) {
	a, b := loopingDecks()
	g := New(Config{FirstName: "A", SecondName: "B", TurnLimit: 1000}, a, b)

	s, err := g.Run()
	require.NoError(t, err)
	assert.Equal(t, ReasonGameLoop, s.Reason)
	assert.Equal(t, 4, s.Turns)
	assert.Equal(t, -1, s.Winner)
	assert.Equal(t, "", s.WinnerName())
	assert.Equal(t, "This State Has Been Seen Before. In a Game Loop.", s.Message)
	assert.Equal(t, "[KH 2S]", engine.FormatCards(s.Decks[0]))
	assert.Equal(t, "[3S 4D]", engine.FormatCards(s.Decks[1]))
}

func TestRun_TurnLimitCheckedBeforeLoop(t *testing.T) {
	a, b := loopingDecks()
	g := New(Config{TurnLimit: 4}, a, b)

	s, err := g.Run()
	require.NoError(t, err)
	assert.Equal(t, ReasonTurnLimit, s.Reason)
	assert.Equal(t, 4, s.Turns)
	assert.Equal(t, "Reached Turn Limit of 4", s.Message)

	a, b = loopingDecks()
	g = New(Config{TurnLimit: 5}, a, b)
	s, err = g.Run()
	require.NoError(t, err)
	assert.Equal(t, ReasonGameLoop, s.Reason)
	assert.Equal(t, 4, s.Turns)
}

func TestRun_NormalDeckOut(t *testing.T) {
	g := New(Config{FirstName: "A", SecondName: "B", TurnLimit: 10},
		engine.MustParseCards("KH"), engine.MustParseCards("3S"))

	s, err := g.Run()
	require.NoError(t, err)
	assert.Equal(t, ReasonNormalDeckOut, s.Reason)
	assert.Equal(t, 0, s.Winner)
	assert.Equal(t, "A", s.WinnerName())
	assert.Equal(t, 1, s.Turns)
	assert.Equal(t, 2, s.Battles)
}

func TestRun_WarDeckOutDoesNotCountTurn(t *testing.T) {
	g := New(Config{TurnLimit: 10}, engine.MustParseCards("5H"), engine.MustParseCards("5C", "9D"))

	s, err := g.Run()
	require.NoError(t, err)
	assert.Equal(t, ReasonTieDeckOutBuried, s.Reason)
	assert.Equal(t, 1, s.Winner)
	assert.Equal(t, 0, s.Turns)
	assert.Equal(t, 1, s.Wars)
	assert.Len(t, s.Decks[1], 3)
}

func TestStep_FinishedIsStable(t *testing.T) {
	a, b := loopingDecks()
	rec := &recorder{}
	g := New(Config{TurnLimit: 1000}, a, b, WithObserver(rec))

	_, err := g.Run()
	require.NoError(t, err)
	turns := g.Turns()
	fp := g.Fingerprint()

	for i := 0; i < 3; i++ {
		finished, err := g.Step()
		require.NoError(t, err)
		assert.True(t, finished)
	}
	assert.Equal(t, turns, g.Turns())
	assert.Equal(t, fp, g.Fingerprint())
	assert.Len(t, rec.summaries, 1, "game over is reported once")
}

func TestStep_ErrorFreezesGame(t *testing.T) {
	g := New(Config{TurnLimit: 10}, []engine.Card{{Rank: 99}}, engine.MustParseCards("5C"))

	_, err := g.Step()
	require.ErrorIs(t, err, engine.ErrInvalidRank)
	_, err = g.Step()
	require.ErrorIs(t, err, engine.ErrInvalidRank)
	assert.Equal(t, 0, g.Turns())
	assert.ErrorIs(t, g.Err(), engine.ErrInvalidRank)
}

func TestPlayTurns(t *testing.T) {
	a, b := loopingDecks()
	rec := &recorder{}
	g := New(Config{TurnLimit: 1000}, a, b, WithObserver(rec))

	res, err := g.PlayTurns(0)
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Requested: 1, Played: 1}, res)

	res, err = g.PlayTurns(2)
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Requested: 2, Played: 2}, res)

	res, err = g.PlayTurns(10)
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Requested: 10, Played: 1, Finished: true}, res)
	assert.Equal(t, ReasonGameLoop, g.Reason())
	assert.Equal(t, 4, g.Turns())

	res, err = g.PlayTurns(5)
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Requested: 5, Played: 0, Finished: true}, res)
	assert.Len(t, rec.batches, 4)
}

func TestPlayTurns_StopsAtTurnLimit(t *testing.T) {
	a, b := loopingDecks()
	g := New(Config{TurnLimit: 3}, a, b)

	res, err := g.PlayTurns(10)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Played)
	assert.True(t, res.Finished)
	assert.Equal(t, ReasonTurnLimit, g.Reason())
}

func TestFingerprint(t *testing.T) {
	g1 := New(Config{}, engine.MustParseCards("2H", "3H"), engine.MustParseCards("4H"))
	g2 := New(Config{}, engine.MustParseCards("2H", "3H"), engine.MustParseCards("4H"))
	g3 := New(Config{}, engine.MustParseCards("3H", "2H"), engine.MustParseCards("4H"))
	g4 := New(Config{}, engine.MustParseCards("2H"), engine.MustParseCards("3H", "4H"))

	assert.Equal(t, g1.Fingerprint(), g2.Fingerprint())
	assert.NotEqual(t, g1.Fingerprint(), g3.Fingerprint(), "order matters")
	assert.NotEqual(t, g1.Fingerprint(), g4.Fingerprint(), "deck boundary matters")
}

// Decks from the original game notes: the first pair cycles, the second
// ends with the second player decking out.
func TestRun_RecordedDeals(t *testing.T) {
	deals := []struct {
		name          string
		first, second []string
	}{
		{
			name:   "cycling",
			first:  []string{"2C", "10H", "4D", "10D", "8D", "5D", "2H", "9C", "5S", "QD", "8S", "QS", "5H", "JH", "4C", "KH", "8H", "AH", "6D", "AD", "7D", "QH", "3C", "JC", "3H", "10C", "3S"},
			second: []string{"9H", "2S", "10S", "2D", "KS", "4H", "JD", "4S", "9D", "6S", "JS", "7H", "QC", "5C", "AS", "9S", "AC", "3D", "8C", "6C", "KC", "7C", "KD", "6H", "7S"},
		},
		{
			name:   "deck out",
			first:  []string{"5S", "10S", "4D", "5D", "KS", "10H", "8C", "6C", "7H", "6S", "8D", "JH", "7S", "QD", "8H", "4C", "6D", "3H", "AD", "9C", "7D", "6H", "QC", "5H", "KH", "9S"},
			second: []string{"KD", "9H", "3D", "8S", "2S", "JC", "JD", "4S", "2D", "AH", "4H", "3C", "AC", "9D", "QS", "JS", "10C", "7C", "5C", "AS", "3S", "2H", "QH", "10D", "KC", "2C"},
		},
	}

	for _, tt := range deals {
		t.Run(tt.name, func(t *testing.T) {
			g := New(Config{TurnLimit: 1000},
				engine.MustParseCards(tt.first...), engine.MustParseCards(tt.second...))

			s, err := g.Run()
			require.NoError(t, err)
			assert.True(t, s.Reason.Terminal())
			assert.LessOrEqual(t, s.Turns, 1000)
			assert.Equal(t, 52, len(s.Decks[0])+len(s.Decks[1]))
		})
	}
}

func TestGame_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cards := engine.StandardCards()
		n := rapid.IntRange(0, len(cards)).Draw(t, "cards")
		seed := rapid.Uint64().Draw(t, "seed")
		limit := rapid.IntRange(0, 300).Draw(t, "limit")

		engine.Shuffle(cards, seed)
		first, second := engine.Split(cards[:n])
		g := New(Config{TurnLimit: limit}, first, second)

		for !g.Finished() {
			before := g.Turns()
			if _, err := g.Step(); err != nil {
				t.Fatalf("step: %v", err)
			}
			if got := totalCards(g); got != n {
				t.Fatalf("card count %d, want %d", got, n)
			}
			if g.Turns() != before && g.Turns() != before+1 {
				t.Fatalf("turns jumped from %d to %d", before, g.Turns())
			}
		}

		if g.Turns() > limit {
			t.Fatalf("turns %d exceed limit %d", g.Turns(), limit)
		}
		if !g.Reason().Terminal() {
			t.Fatalf("finished without a terminal reason: %v", g.Reason())
		}

		turns := g.Turns()
		g.Step()
		if g.Turns() != turns {
			t.Fatalf("turns changed after finish")
		}
	})
}

func BenchmarkRun(b *testing.B) {
	for i := 0; i < b.N; i++ {
		cards := engine.StandardCards()
		engine.Shuffle(cards, uint64(i))
		first, second := engine.Split(cards)
		g := New(Config{TurnLimit: 1000}, first, second)
		if _, err := g.Run(); err != nil {
			b.Fatal(err)
		}
	}
}

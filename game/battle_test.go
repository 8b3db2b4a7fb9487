package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ismaeelS/WarCardGame/engine"
)

func players(first, second []engine.Card) (*Player, *Player) {
	return NewPlayer("A", first), NewPlayer("B", second)
}

func assertDeck(t *testing.T, want []string, p *Player) {
	t.Helper()
	if diff := cmp.Diff(engine.MustParseCards(want...), p.Deck.Cards()); diff != "" {
		t.Errorf("%s deck mismatch (-want +got):\n%s", p.Name, diff)
	}
}

func TestCheckDeckOut(t *testing.T) {
	empty := engine.NewDeck(nil)
	full := engine.NewDeck(engine.MustParseCards("2H"))

	assert.Equal(t, DeckOutBoth, CheckDeckOut(empty, engine.NewDeck(nil)))
	assert.Equal(t, DeckOutFirst, CheckDeckOut(empty, full))
	assert.Equal(t, DeckOutSecond, CheckDeckOut(full, empty))
	assert.Equal(t, DeckOutNone, CheckDeckOut(full, full))
}

func TestResolveBattle_FirstWins(t *testing.T) {
	a, b := players(engine.MustParseCards("KH", "4D"), engine.MustParseCards("3S", "9C"))

	out, err := ResolveBattle(a, b, nil)
	require.NoError(t, err)
	assert.False(t, out.Terminal())
	assert.Equal(t, 0, out.Winner)
	assert.Equal(t, 0, out.Wars)
	assertDeck(t, []string{"4D", "KH", "3S"}, a)
	assertDeck(t, []string{"9C"}, b)
}

func TestResolveBattle_AwardOrderIsFirstPlayerFirst(t *testing.T) {
	a, b := players(engine.MustParseCards("3S"), engine.MustParseCards("KH", "5D"))

	out, err := ResolveBattle(a, b, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Winner)
	assert.Equal(t, "[3S KH]", engine.FormatCards(out.Moved))
	assertDeck(t, []string{"5D", "3S", "KH"}, b)
	assert.True(t, a.Deck.Empty())
}

func TestResolveBattle_TwoBeatsAce(t *testing.T) {
	a, b := players(engine.MustParseCards("AH"), engine.MustParseCards("2H"))

	out, err := ResolveBattle(a, b, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Winner)
	assertDeck(t, []string{"AH", "2H"}, b)
}

func TestResolveBattle_SingleWar(t *testing.T) {
	a, b := players(
		engine.MustParseCards("7D", "2H", "QS", "8H"),
		engine.MustParseCards("7C", "4D", "JS"),
	)

	out, err := ResolveBattle(a, b, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Winner)
	assert.Equal(t, 1, out.Wars)
	assert.Len(t, out.Stakes[0], 3)
	assert.Len(t, out.Stakes[1], 3)
	assertDeck(t, []string{"8H", "7D", "2H", "QS", "7C", "4D", "JS"}, a)
	assert.True(t, b.Deck.Empty())
}

func TestResolveBattle_ChainedWars(t *testing.T) {
	a, b := players(
		engine.MustParseCards("5H", "2C", "9H", "3C", "KH"),
		engine.MustParseCards("5C", "4C", "9D", "6C", "QH", "AS"),
	)

	out, err := ResolveBattle(a, b, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Winner)
	assert.Equal(t, 2, out.Wars)
	// one opening card plus two per escalation, for each player
	assert.Len(t, out.Stakes[0], 1+2*out.Wars)
	assert.Len(t, out.Stakes[1], 1+2*out.Wars)
	assert.Equal(t, out.Staked(), len(out.Moved))
	assertDeck(t, []string{"5H", "2C", "9H", "3C", "KH", "5C", "4C", "9D", "6C", "QH"}, a)
	assertDeck(t, []string{"AS"}, b)
}

func TestResolveBattle_DeckOutOnBuriedCard(t *testing.T) {
	a, b := players(engine.MustParseCards("5H"), engine.MustParseCards("5C", "9D"))

	out, err := ResolveBattle(a, b, nil)
	require.NoError(t, err)
	assert.True(t, out.Terminal())
	assert.Equal(t, ReasonTieDeckOutBuried, out.Reason)
	assert.Equal(t, DeckOutFirst, out.DeckOut)
	assert.Equal(t, 1, out.Winner)
	assert.True(t, a.Deck.Empty())
	assertDeck(t, []string{"9D", "5H", "5C"}, b)
}

func TestResolveBattle_DeckOutOnCompareCard(t *testing.T) {
	a, b := players(engine.MustParseCards("7D", "2H"), engine.MustParseCards("7C", "4D", "JS"))

	out, err := ResolveBattle(a, b, nil)
	require.NoError(t, err)
	assert.Equal(t, ReasonTieDeckOutCompare, out.Reason)
	assert.Equal(t, DeckOutFirst, out.DeckOut)
	assert.Equal(t, 1, out.Winner)
	assertDeck(t, []string{"JS", "7D", "2H", "7C", "4D"}, b)
}

func TestResolveBattle_SecondDecksOutDuringWar(t *testing.T) {
	a, b := players(engine.MustParseCards("7D", "2H", "QS"), engine.MustParseCards("7C", "4D"))

	out, err := ResolveBattle(a, b, nil)
	require.NoError(t, err)
	assert.Equal(t, ReasonTieDeckOutCompare, out.Reason)
	assert.Equal(t, DeckOutSecond, out.DeckOut)
	assert.Equal(t, 0, out.Winner)
	assertDeck(t, []string{"QS", "7D", "2H", "7C", "4D"}, a)
}

func TestResolveBattle_BothEmpty(t *testing.T) {
	a, b := players(nil, nil)

	out, err := ResolveBattle(a, b, nil)
	require.NoError(t, err)
	assert.Equal(t, ReasonNormalDeckOut, out.Reason)
	assert.Equal(t, DeckOutBoth, out.DeckOut)
	assert.Equal(t, -1, out.Winner)
	assert.Zero(t, out.Staked())
}

func TestResolveBattle_OneEmptyBeforeReveal(t *testing.T) {
	a, b := players(engine.MustParseCards("2H"), nil)

	out, err := ResolveBattle(a, b, nil)
	require.NoError(t, err)
	assert.Equal(t, ReasonNormalDeckOut, out.Reason)
	assert.Equal(t, DeckOutSecond, out.DeckOut)
	assert.Equal(t, 0, out.Winner)
	assertDeck(t, []string{"2H"}, a)
}

func TestResolveBattle_BothDeckOutDuringWarReturnsOwnStakes(t *testing.T) {
	a, b := players(engine.MustParseCards("5H"), engine.MustParseCards("5C"))

	out, err := ResolveBattle(a, b, nil)
	require.NoError(t, err)
	assert.Equal(t, ReasonTieDeckOutBuried, out.Reason)
	assert.Equal(t, DeckOutBoth, out.DeckOut)
	assert.Equal(t, -1, out.Winner)
	assertDeck(t, []string{"5H"}, a)
	assertDeck(t, []string{"5C"}, b)
}

func TestResolveBattle_InvalidRankPropagates(t *testing.T) {
	a, b := players([]engine.Card{{Rank: 20, Suit: engine.Hearts}}, engine.MustParseCards("5C"))

	_, err := ResolveBattle(a, b, nil)
	assert.ErrorIs(t, err, engine.ErrInvalidRank)
}

type recorder struct {
	NopObserver
	comparisons []Comparison
	wars        int
	deckOuts    []DeckOutEvent
	battles     []BattleOutcome
	batches     []BatchResult
	summaries   []Summary
}

func (r *recorder) Compared(c Comparison) { r.comparisons = append(r.comparisons, c) }
func (r *recorder) WarStaked(_, _ []engine.Card) { r.wars++ }
func (r *recorder) DeckedOut(e DeckOutEvent) { r.deckOuts = append(r.deckOuts, e) }
func (r *recorder) BatchPlayed(b BatchResult) { r.batches = append(r.batches, b) }
func (r *recorder) GameOver(s Summary) { r.summaries = append(r.summaries, s) }
func (r *recorder) BattleResolved(o BattleOutcome, _, _ *Player) {
	r.battles = append(r.battles, o)
}

func TestResolveBattle_NotifiesObserver(t *testing.T) {
	a, b := players(engine.MustParseCards("7D", "2H", "QS"), engine.MustParseCards("7C", "4D", "JS"))
	rec := &recorder{}

	_, err := ResolveBattle(a, b, rec)
	require.NoError(t, err)
	require.Len(t, rec.comparisons, 2)
	assert.Equal(t, engine.Tie, rec.comparisons[0].Result)
	assert.Equal(t, 0, rec.comparisons[0].War)
	assert.Equal(t, engine.FirstWins, rec.comparisons[1].Result)
	assert.Equal(t, 1, rec.comparisons[1].War)
	assert.Equal(t, "A", rec.comparisons[1].First)
	assert.Equal(t, 1, rec.wars)
	assert.Len(t, rec.battles, 1)
	assert.Empty(t, rec.deckOuts)
}

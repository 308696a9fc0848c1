package game

import (
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdemcore/internal/randutil"
	"github.com/lox/holdemcore/poker"
)

// seatPlayers returns a table with n players who each bought in for chips.
func seatPlayers(t *testing.T, n, chips int) (State, []uuid.UUID) {
	t.Helper()
	s := NewState()
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
		s = apply(t, s, nil, AddPlayerAction(ids[i]), BuyInAction(ids[i], chips))
	}
	return s, ids
}

func apply(t *testing.T, s State, rng *rand.Rand, actions ...Action) State {
	t.Helper()
	for _, a := range actions {
		next, err := Reduce(s, a, rng)
		require.NoError(t, err, "applying %s", a)
		s = next
	}
	return s
}

func testRNG() *rand.Rand {
	return randutil.New(1)
}

// allCards collects every card the state holds in deck, board and holes.
func allCards(s State) []poker.Card {
	cards := s.Deck.Cards()
	cards = append(cards, s.Board...)
	for _, hole := range s.Holes {
		cards = append(cards, hole...)
	}
	return cards
}

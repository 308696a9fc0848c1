package game

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdemcore/internal/randutil"
	"github.com/lox/holdemcore/poker"
)

func TestEndToEndThreePlayerHand(t *testing.T) {
	t.Parallel()

	s, ids := seatPlayers(t, 3, 100)
	rng := testRNG()

	s = apply(t, s, rng, StartGameAction(Blinds{Small: 5, Big: 10}))

	// first hand puts the button on seat 0, so seats 1 and 2 post the blinds
	require.Equal(t, 0, s.DealerPosition)
	p1, p2, p3 := ids[1], ids[2], ids[0]
	require.Equal(t, []uuid.UUID{p1, p2, p3}, s.InPlay)
	assert.Equal(t, map[uuid.UUID]int{p1: 5, p2: 10}, s.Bets)
	assert.Equal(t, map[uuid.UUID]int{p1: 95, p2: 90, p3: 100}, s.Stacks)
	assert.Equal(t, 15, s.Pot)
	assert.Equal(t, 2, s.ToAct)
	assert.Equal(t, poker.DeckSize, s.Deck.Len())

	s = apply(t, s, rng, PhaseAction(Deal))
	assert.Equal(t, poker.DeckSize-6, s.Deck.Len())

	s = apply(t, s, rng, PlayerAction(Call, p3, 10))
	assert.Equal(t, 25, s.Pot)
	assert.Equal(t, 90, s.Stacks[p3])

	s = apply(t, s, rng, PlayerAction(Call, p1, 5))
	assert.Equal(t, 30, s.Pot)
	assert.Equal(t, 90, s.Stacks[p1])
	assert.Equal(t, 10, s.Bets[p1])

	s = apply(t, s, rng, PlayerAction(Check, p2, 0))
	assert.Equal(t, 2, s.ToAct)

	s = apply(t, s, rng, PhaseAction(EndRound))
	assert.Empty(t, s.Bets)
	assert.Equal(t, 30, s.Pot)

	before := s.Deck.Len()
	s = apply(t, s, rng, PhaseAction(DealFlop))
	assert.Len(t, s.Board, 3)
	assert.Equal(t, before-3, s.Deck.Len())
	assert.Equal(t, Flop, s.Street())
}

func TestStartGameRotatesDealer(t *testing.T) {
	t.Parallel()

	s, ids := seatPlayers(t, 3, 100)
	rng := testRNG()

	s = apply(t, s, rng, StartGameAction(Blinds{}), PlayerAction(Fold, ids[0], 0), PlayerAction(Fold, ids[1], 0))
	require.Zero(t, s.Pot)

	s = apply(t, s, rng, StartGameAction(Blinds{}))
	assert.Equal(t, 1, s.DealerPosition)
	assert.Equal(t, []uuid.UUID{ids[2], ids[0], ids[1]}, s.InPlay)
	assert.Equal(t, DefaultBlinds, s.Blinds)
	assert.Empty(t, s.Winners)
	assert.Empty(t, s.Holes)
}

func TestStartGameCapsShortBlinds(t *testing.T) {
	t.Parallel()

	s, ids := seatPlayers(t, 3, 100)
	s.Stacks[ids[2]] = 4 // big blind seat
	chips := s.Chips()

	s = apply(t, s, testRNG(), StartGameAction(Blinds{Small: 5, Big: 10}))
	assert.Equal(t, 0, s.Stacks[ids[2]])
	assert.Equal(t, 4, s.Bets[ids[2]])
	assert.Equal(t, 9, s.Pot)
	assert.Equal(t, chips, s.Chips())
}

func TestStartGameSkipsBustedPlayers(t *testing.T) {
	t.Parallel()

	s, ids := seatPlayers(t, 3, 100)
	s.Stacks[ids[1]] = 0

	s = apply(t, s, testRNG(), StartGameAction(Blinds{}))
	assert.Equal(t, []uuid.UUID{ids[2], ids[0]}, s.InPlay)
	assert.Equal(t, 0, s.ToAct)
}

func TestStartGameValidation(t *testing.T) {
	t.Parallel()

	one, _ := seatPlayers(t, 1, 100)
	_, err := Reduce(one, StartGameAction(Blinds{}), nil)
	assert.ErrorIs(t, err, ErrIllegalAction)

	s, ids := seatPlayers(t, 2, 100)
	_, err = Reduce(s, StartGameAction(Blinds{Small: 20, Big: 10}), nil)
	assert.ErrorIs(t, err, ErrIllegalAction)

	s.Stacks[ids[0]] = 0
	_, err = Reduce(s, StartGameAction(Blinds{}), nil)
	assert.ErrorIs(t, err, ErrIllegalAction)

	live, _ := seatPlayers(t, 2, 100)
	live = apply(t, live, testRNG(), StartGameAction(Blinds{}))
	_, err = Reduce(live, StartGameAction(Blinds{}), nil)
	assert.ErrorIs(t, err, ErrIllegalAction)
}

func TestDealKeepsCardsDisjoint(t *testing.T) {
	t.Parallel()

	s, _ := seatPlayers(t, 6, 100)
	rng := randutil.New(5)

	s = apply(t, s, rng, StartGameAction(Blinds{}), PhaseAction(Deal))
	for _, hole := range s.Holes {
		assert.Len(t, hole, 2)
	}
	assertDisjoint(t, s)

	s = apply(t, s, rng, PhaseAction(DealFlop), PhaseAction(DealTurn), PhaseAction(DealRiver))
	assert.Len(t, s.Board, 5)
	assert.Equal(t, River, s.Street())
	assertDisjoint(t, s)
}

func assertDisjoint(t *testing.T, s State) {
	t.Helper()
	cards := allCards(s)
	require.Len(t, cards, poker.DeckSize)
	assert.ElementsMatch(t, poker.NewOrderedDeck().Cards(), cards)
}

func TestPhaseOrderEnforced(t *testing.T) {
	t.Parallel()

	s, _ := seatPlayers(t, 2, 100)
	rng := testRNG()
	s = apply(t, s, rng, StartGameAction(Blinds{}))

	_, err := Reduce(s, PhaseAction(DealTurn), rng)
	assert.ErrorIs(t, err, ErrIllegalAction)

	s = apply(t, s, rng, PhaseAction(Deal))
	_, err = Reduce(s, PhaseAction(Deal), rng)
	assert.ErrorIs(t, err, ErrIllegalAction)

	s = apply(t, s, rng, PhaseAction(DealFlop))
	_, err = Reduce(s, PhaseAction(DealFlop), rng)
	assert.ErrorIs(t, err, ErrIllegalAction)
	_, err = Reduce(s, PhaseAction(DealRiver), rng)
	assert.ErrorIs(t, err, ErrIllegalAction)

	_, err = Reduce(NewState(), PhaseAction(Deal), rng)
	assert.ErrorIs(t, err, ErrIllegalAction)
}

func TestDealExhaustedDeck(t *testing.T) {
	t.Parallel()

	s, _ := seatPlayers(t, 3, 100)
	s = apply(t, s, testRNG(), StartGameAction(Blinds{}))
	s.Deck = poker.DeckOf(poker.MustParseCards("As Kd Qh")...)

	_, err := Reduce(s, PhaseAction(Deal), nil)
	assert.ErrorIs(t, err, poker.ErrDeckExhausted)
}

func TestFoldToOneSkipsShowdown(t *testing.T) {
	t.Parallel()

	s, ids := seatPlayers(t, 3, 100)
	rng := testRNG()
	s = apply(t, s, rng, StartGameAction(Blinds{}), PhaseAction(Deal))
	p1, p2, p3 := s.InPlay[0], s.InPlay[1], s.InPlay[2]
	chips := s.Chips()

	s = apply(t, s, rng, PlayerAction(Fold, p3, 0))
	assert.NotContains(t, s.Holes, p3)
	assert.Equal(t, []uuid.UUID{p1, p2}, s.InPlay)
	assert.Empty(t, s.Winners)

	s = apply(t, s, rng, PlayerAction(Fold, p1, 0))
	assert.Equal(t, []uuid.UUID{p2}, s.Winners)
	assert.Equal(t, 105, s.Stacks[p2])
	assert.Zero(t, s.Pot)
	assert.Empty(t, s.Bets)
	assert.Empty(t, s.Board)
	assert.Equal(t, chips, s.Chips())
	assert.Len(t, ids, 3)

	_, err := Reduce(s, PlayerAction(Fold, p2, 0), rng)
	assert.ErrorIs(t, err, ErrIllegalAction)
}

func TestFoldReindexesToAct(t *testing.T) {
	t.Parallel()

	s, _ := seatPlayers(t, 4, 100)
	s = apply(t, s, testRNG(), StartGameAction(Blinds{}))
	order := s.InPlay
	require.Equal(t, 2, s.ToAct)

	// a player before the actor folds out of turn: the actor is unchanged
	next := apply(t, s, nil, PlayerAction(Fold, order[0], 0))
	actor, ok := next.PlayerToAct()
	require.True(t, ok)
	assert.Equal(t, order[2], actor)

	// the actor folds: the next player acts
	next = apply(t, s, nil, PlayerAction(Fold, order[2], 0))
	actor, _ = next.PlayerToAct()
	assert.Equal(t, order[3], actor)

	// the last seat folds while acting: wrap around
	s.ToAct = 3
	next = apply(t, s, nil, PlayerAction(Fold, order[3], 0))
	assert.Equal(t, 0, next.ToAct)
}

func TestWagers(t *testing.T) {
	t.Parallel()

	s, _ := seatPlayers(t, 3, 100)
	s = apply(t, s, testRNG(), StartGameAction(Blinds{}), PhaseAction(EndRound))
	p1, p2, p3 := s.InPlay[0], s.InPlay[1], s.InPlay[2]
	chips := s.Chips()

	s = apply(t, s, nil, PlayerAction(Bet, p3, 20))
	assert.Equal(t, 20, s.Bets[p3])
	assert.Equal(t, 0, s.ToAct)

	s = apply(t, s, nil, PlayerAction(Raise, p1, 60))
	assert.Equal(t, 60, s.Bets[p1])
	assert.Equal(t, 60, s.MaxBet())
	assert.Equal(t, 40, s.ToCall(p3))

	s = apply(t, s, nil, PlayerAction(Call, p2, 60), PlayerAction(Call, p3, 40))
	assert.Equal(t, 60, s.Bets[p3])
	assert.Zero(t, s.ToCall(p3))

	// a second bet overwrites the street total
	s = apply(t, s, nil, PlayerAction(Bet, p1, 10))
	assert.Equal(t, 10, s.Bets[p1])
	assert.Equal(t, chips, s.Chips())
}

func TestWagerValidation(t *testing.T) {
	t.Parallel()

	s, ids := seatPlayers(t, 2, 100)
	s = apply(t, s, testRNG(), StartGameAction(Blinds{}))
	actor, _ := s.PlayerToAct()

	tests := []struct {
		name   string
		action Action
		want   error
	}{
		{"zero bet", PlayerAction(Bet, actor, 0), ErrIllegalAction},
		{"negative call", PlayerAction(Call, actor, -5), ErrIllegalAction},
		{"over stack", PlayerAction(Raise, actor, 1000), ErrIllegalAction},
		{"stranger", PlayerAction(Check, uuid.New(), 0), ErrUnknownPlayer},
		{"not a player action", Action{Type: ActionType(99), Player: ids[0]}, ErrIllegalAction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			next, err := Reduce(s, tt.action, nil)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, s.Pot, next.Pot)
		})
	}

	// all-in for exactly the stack is allowed
	next := apply(t, s, nil, PlayerAction(Raise, actor, s.Stacks[actor]))
	assert.Zero(t, next.Stacks[actor])
}

func TestShowdownSplitPot(t *testing.T) {
	t.Parallel()

	a, b, c := uuid.New(), uuid.New(), uuid.New()
	s := NewState()
	s.Players = []uuid.UUID{a, b, c}
	s.InPlay = []uuid.UUID{a, b, c}
	s.Stacks = map[uuid.UUID]int{a: 0, b: 0, c: 0}
	s.Pot = 31
	s.Board = poker.MustParseCards("Qs Jh 9c 7d 4s")
	s.Holes = map[uuid.UUID][]poker.Card{
		a: poker.MustParseCards("As Kd"),
		b: poker.MustParseCards("Ah Kc"),
		c: poker.MustParseCards("2c 3d"),
	}

	next := apply(t, s, randutil.New(3), PhaseAction(Showdown))
	assert.ElementsMatch(t, []uuid.UUID{a, b}, next.Winners)
	assert.Equal(t, 31, next.Stacks[a]+next.Stacks[b])
	assert.ElementsMatch(t, []int{15, 16}, []int{next.Stacks[a], next.Stacks[b]})
	assert.Zero(t, next.Stacks[c])
	assert.Zero(t, next.Pot)
}

func TestShowdownErrors(t *testing.T) {
	t.Parallel()

	a, b := uuid.New(), uuid.New()
	s := NewState()
	s.Players = []uuid.UUID{a, b}
	s.InPlay = []uuid.UUID{a, b}
	s.Stacks = map[uuid.UUID]int{a: 0, b: 0}
	s.Pot = 10
	s.Holes = map[uuid.UUID][]poker.Card{a: poker.MustParseCards("As Kd")}

	_, err := Reduce(s, PhaseAction(Showdown), nil)
	assert.ErrorIs(t, err, ErrUnknownPlayer)

	s.Holes[b] = poker.MustParseCards("2c 2d")
	_, err = Reduce(s, PhaseAction(Showdown), nil)
	assert.ErrorIs(t, err, poker.ErrDegenerateShowdown)

	_, err = Reduce(NewState(), PhaseAction(Showdown), nil)
	assert.ErrorIs(t, err, ErrIllegalAction)
}

func TestEndGameValidation(t *testing.T) {
	t.Parallel()

	s, ids := seatPlayers(t, 2, 100)
	_, err := Reduce(s, EndGameAction(), nil)
	assert.ErrorIs(t, err, ErrIllegalAction)
	_, err = Reduce(s, EndGameAction(uuid.New()), nil)
	assert.ErrorIs(t, err, ErrUnknownPlayer)
	_, err = Reduce(s, EndGameAction(ids[0], ids[0]), nil)
	assert.ErrorIs(t, err, ErrIllegalAction)

	s.Pot = 7
	next := apply(t, s, testRNG(), EndGameAction(ids...))
	assert.Equal(t, 207, next.Stacks[ids[0]]+next.Stacks[ids[1]])
	assert.Equal(t, ids, next.Winners)
}

func TestReducersNeverMutateInput(t *testing.T) {
	t.Parallel()

	s, ids := seatPlayers(t, 3, 100)
	rng := randutil.New(11)

	steps := []func(State) Action{
		func(State) Action { return SetBlindsAction(Blinds{Small: 1, Big: 2}) },
		func(State) Action { return BuyInAction(ids[0], 50) },
		func(State) Action { return StartGameAction(Blinds{}) },
		func(State) Action { return PhaseAction(Deal) },
		func(s State) Action { return PlayerAction(Call, s.InPlay[2], 2) },
		func(s State) Action { return PlayerAction(Raise, s.InPlay[0], 5) },
		func(s State) Action { return PlayerAction(Fold, s.InPlay[1], 0) },
		func(s State) Action { return PlayerAction(Call, s.InPlay[1], 4) },
		func(State) Action { return PhaseAction(EndRound) },
		func(State) Action { return PhaseAction(DealFlop) },
		func(s State) Action { return PlayerAction(Check, s.InPlay[0], 0) },
		func(s State) Action { return PlayerAction(Bet, s.InPlay[1], 10) },
		func(State) Action { return PhaseAction(DealTurn) },
		func(State) Action { return PhaseAction(DealRiver) },
		func(State) Action { return PhaseAction(Showdown) },
		func(State) Action { return CashOutAction(ids[0]) },
		func(State) Action { return AddPlayerAction(uuid.New()) },
	}

	for i, step := range steps {
		before, err := json.Marshal(s)
		require.NoError(t, err)
		deck := s.Deck.Cards()

		a := step(s)
		next, err := Reduce(s, a, rng)
		require.NoError(t, err, "step %d: %s", i, a)

		after, err := json.Marshal(s)
		require.NoError(t, err)
		assert.JSONEq(t, string(before), string(after), "step %d mutated its input: %s", i, a)
		assert.Equal(t, deck, s.Deck.Cards())
		s = next
	}
}

func TestChipConservationRandomPlay(t *testing.T) {
	t.Parallel()

	rng := randutil.New(77)
	s, _ := seatPlayers(t, 4, 200)
	chips := s.Chips()

	for range 30 {
		var err error
		if s, err = Reduce(s, StartGameAction(Blinds{}), rng); err != nil {
			break // fewer than two players with chips
		}
		s = apply(t, s, rng, PhaseAction(Deal))

		for _, street := range []ActionType{DealFlop, DealTurn, DealRiver, Showdown} {
			for range 6 {
				if !s.HandInProgress() {
					break
				}
				actor, _ := s.PlayerToAct()
				a := randomAction(s, actor, rng.IntN(4))
				s = apply(t, s, rng, a)
				require.Equal(t, chips, s.Chips(), "after %s", a)
			}
			if !s.HandInProgress() {
				break
			}
			s = apply(t, s, rng, PhaseAction(EndRound), PhaseAction(street))
			require.Equal(t, chips, s.Chips())
		}
		require.Zero(t, s.Pot)
	}
}

func randomAction(s State, id uuid.UUID, pick int) Action {
	stack := s.Stacks[id]
	toCall := s.ToCall(id)
	switch {
	case pick == 0:
		return PlayerAction(Fold, id, 0)
	case pick == 1 && toCall > 0 && stack > 0:
		return PlayerAction(Call, id, min(toCall, stack))
	case pick == 2 && stack > toCall+1:
		return PlayerAction(Raise, id, min(stack, toCall+1+stack/4))
	default:
		return PlayerAction(Check, id, 0)
	}
}

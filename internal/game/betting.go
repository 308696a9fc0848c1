package game

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"
)

func reducePlayer(s State, a Action, rng *rand.Rand) (State, error) {
	if !s.Playing(a.Player) {
		return s, fmt.Errorf("%w: %s is not in play", ErrUnknownPlayer, a.Player)
	}

	switch a.Type {
	case Fold:
		return fold(s, a.Player, rng)
	case Check:
		next := s.clone()
		next.advance()
		return next, nil
	case Bet, Call, Raise:
		return wager(s, a.Type, a.Player, a.Amount)
	}
	return s, fmt.Errorf("%w: %s is not a player action", ErrIllegalAction, a.Type)
}

// fold drops the player from the hand. When a single player remains they
// win the pot at once, without a showdown.
func fold(s State, id uuid.UUID, rng *rand.Rand) (State, error) {
	if len(s.InPlay) < 2 {
		return s, fmt.Errorf("%w: %s is the last player in the hand", ErrIllegalAction, id)
	}

	next := s.clone()
	delete(next.Holes, id)
	next.removeInPlay(slices.Index(next.InPlay, id))

	if len(next.InPlay) == 1 {
		return endGame(next, next.InPlay, rng)
	}
	return next, nil
}

// wager moves amount from the player's stack to the pot. Bet replaces the
// player's street total; Call and Raise add to it.
func wager(s State, t ActionType, id uuid.UUID, amount int) (State, error) {
	if amount <= 0 {
		return s, fmt.Errorf("%w: %s of %d", ErrIllegalAction, t, amount)
	}
	if stack := s.Stacks[id]; amount > stack {
		return s, fmt.Errorf("%w: %s of %d exceeds stack of %d", ErrIllegalAction, t, amount, stack)
	}

	next := s.clone()
	if t == Bet {
		next.Bets[id] = amount
	} else {
		next.Bets[id] += amount
	}
	next.Stacks[id] -= amount
	next.Pot += amount
	next.advance()
	return next, nil
}

func (s *State) advance() {
	s.ToAct = (s.ToAct + 1) % len(s.InPlay)
}

// removeInPlay deletes InPlay[i] and re-indexes ToAct so it still names the
// same player, or the next one when the removed player was to act.
func (s *State) removeInPlay(i int) {
	s.InPlay = slices.Delete(s.InPlay, i, i+1)
	if i < s.ToAct {
		s.ToAct--
	}
	if s.ToAct >= len(s.InPlay) {
		s.ToAct = 0
	}
}

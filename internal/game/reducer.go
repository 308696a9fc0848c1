package game

import (
	"fmt"
	"math/rand/v2"
)

// Reduce applies a to s and returns the resulting State. s is never
// modified. rng supplies the shuffle at StartGame and odd-chip assignment
// when a pot is split; nil uses the global math/rand/v2 source.
func Reduce(s State, a Action, rng *rand.Rand) (State, error) {
	var (
		next State
		err  error
	)
	switch a.Type.Category() {
	case CategoryTable:
		next, err = reduceTable(s, a)
	case CategoryGame:
		next, err = reduceGame(s, a, rng)
	case CategoryPlayer:
		next, err = reducePlayer(s, a, rng)
	default:
		return s, fmt.Errorf("%w: unknown action type %d", ErrIllegalAction, int(a.Type))
	}
	if err != nil {
		return s, fmt.Errorf("%s: %w", a.Type, err)
	}
	return next, nil
}

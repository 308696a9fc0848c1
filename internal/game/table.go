package game

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

func reduceTable(s State, a Action) (State, error) {
	switch a.Type {
	case AddPlayer:
		return addPlayer(s, a.Player)
	case BuyIn:
		return buyIn(s, a.Player, a.Amount)
	case CashOut:
		return cashOut(s, a.Player)
	case SetBlinds:
		return setBlinds(s, a.Blinds)
	}
	return s, fmt.Errorf("%w: %s is not a table action", ErrIllegalAction, a.Type)
}

// addPlayer seats id with an empty stack.
func addPlayer(s State, id uuid.UUID) (State, error) {
	if id == uuid.Nil {
		return s, fmt.Errorf("%w: nil player id", ErrIllegalAction)
	}
	if s.Seated(id) {
		return s, fmt.Errorf("%w: player %s already seated", ErrIllegalAction, id)
	}
	next := s.clone()
	next.Players = append(next.Players, id)
	next.Stacks[id] = 0
	return next, nil
}

func buyIn(s State, id uuid.UUID, amount int) (State, error) {
	if !s.Seated(id) {
		return s, fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
	}
	if amount <= 0 {
		return s, fmt.Errorf("%w: buy-in of %d", ErrIllegalAction, amount)
	}
	next := s.clone()
	next.Stacks[id] += amount
	return next, nil
}

// cashOut removes id from the table. The caller reads the stack beforehand;
// afterwards the player holds nothing. A player still contesting chips in
// the pot must fold or finish the hand first.
func cashOut(s State, id uuid.UUID) (State, error) {
	seat := slices.Index(s.Players, id)
	if seat < 0 {
		return s, fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
	}
	if s.HandInProgress() && s.Playing(id) {
		return s, fmt.Errorf("%w: %s is in a hand with %d in the pot", ErrIllegalAction, id, s.Pot)
	}

	next := s.clone()
	next.Players = slices.Delete(next.Players, seat, seat+1)
	delete(next.Stacks, id)
	delete(next.Bets, id)
	delete(next.Holes, id)
	if i := slices.Index(next.InPlay, id); i >= 0 {
		next.removeInPlay(i)
	}
	// keep the button on the same seat so rotation continues with the
	// player after the one who left
	if seat <= next.DealerPosition {
		next.DealerPosition--
	}
	return next, nil
}

func setBlinds(s State, b Blinds) (State, error) {
	if err := b.validate(); err != nil {
		return s, err
	}
	next := s.clone()
	next.Blinds = b
	return next, nil
}

func (b Blinds) validate() error {
	if b.Small < 0 || b.Big <= 0 || b.Small > b.Big {
		return fmt.Errorf("%w: blinds %d/%d", ErrIllegalAction, b.Small, b.Big)
	}
	return nil
}

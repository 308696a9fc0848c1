package game

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"

	"github.com/lox/holdemcore/poker"
)

const (
	holeSize  = 2
	flopSize  = 3
	turnSize  = 1
	riverSize = 1
)

func reduceGame(s State, a Action, rng *rand.Rand) (State, error) {
	switch a.Type {
	case StartGame:
		return startGame(s, a.Blinds, rng)
	case EndRound:
		return endRound(s)
	case Deal:
		return deal(s)
	case DealFlop:
		return dealBoard(s, 0, flopSize)
	case DealTurn:
		return dealBoard(s, flopSize, turnSize)
	case DealRiver:
		return dealBoard(s, flopSize+turnSize, riverSize)
	case Showdown:
		return showdown(s, rng)
	case EndGame:
		return endGame(s, a.Winners, rng)
	}
	return s, fmt.Errorf("%w: %s is not a game action", ErrIllegalAction, a.Type)
}

// startGame moves the button, seats the funded players in acting order
// starting left of the dealer, posts blinds and shuffles a fresh deck.
// Blinds are capped at the poster's stack so a short stack posts all-in.
func startGame(s State, blinds Blinds, rng *rand.Rand) (State, error) {
	if s.Pot > 0 {
		return s, fmt.Errorf("%w: previous hand still has %d in the pot", ErrIllegalAction, s.Pot)
	}
	if !blinds.IsZero() {
		if err := blinds.validate(); err != nil {
			return s, err
		}
	} else {
		blinds = s.Blinds
	}
	if len(s.Players) < 2 {
		return s, fmt.Errorf("%w: need at least 2 players, have %d", ErrIllegalAction, len(s.Players))
	}

	next := s.clone()
	next.Blinds = blinds
	next.DealerPosition = (s.DealerPosition + 1) % len(s.Players)

	// dealer acts last
	rotated := slices.Concat(next.Players[next.DealerPosition+1:], next.Players[:next.DealerPosition+1])
	next.InPlay = make([]uuid.UUID, 0, len(rotated))
	for _, id := range rotated {
		if next.Stacks[id] > 0 {
			next.InPlay = append(next.InPlay, id)
		}
	}
	if len(next.InPlay) < 2 {
		return s, fmt.Errorf("%w: need at least 2 players with chips, have %d", ErrIllegalAction, len(next.InPlay))
	}

	next.Bets = map[uuid.UUID]int{}
	next.Pot = 0
	for i, amount := range [...]int{blinds.Small, blinds.Big} {
		id := next.InPlay[i]
		posted := min(amount, next.Stacks[id])
		next.Stacks[id] -= posted
		next.Bets[id] = posted
		next.Pot += posted
	}

	next.ToAct = 2 % len(next.InPlay)
	next.Deck = poker.NewDeck(rng)
	next.Board = nil
	next.Holes = map[uuid.UUID][]poker.Card{}
	next.Winners = nil
	return next, nil
}

// endRound closes a street. Chips in Bets are already counted in Pot. ToAct
// is left where betting stopped.
func endRound(s State) (State, error) {
	next := s.clone()
	next.Bets = map[uuid.UUID]int{}
	return next, nil
}

func deal(s State) (State, error) {
	if len(s.InPlay) == 0 {
		return s, fmt.Errorf("%w: no hand in progress", ErrIllegalAction)
	}
	if len(s.Holes) > 0 || len(s.Board) > 0 {
		return s, fmt.Errorf("%w: hole cards already dealt", ErrIllegalAction)
	}

	next := s.clone()
	for _, id := range next.InPlay {
		hole, rest, err := next.Deck.Draw(holeSize)
		if err != nil {
			return s, err
		}
		next.Holes[id] = hole
		next.Deck = rest
	}
	return next, nil
}

// dealBoard appends n cards to a board that must currently hold want cards.
func dealBoard(s State, want, n int) (State, error) {
	if len(s.Board) != want {
		return s, fmt.Errorf("%w: board has %d cards, expected %d", ErrIllegalAction, len(s.Board), want)
	}
	if len(s.InPlay) == 0 {
		return s, fmt.Errorf("%w: no hand in progress", ErrIllegalAction)
	}

	cards, rest, err := s.Deck.Draw(n)
	if err != nil {
		return s, err
	}
	next := s.clone()
	next.Board = append(next.Board, cards...)
	next.Deck = rest
	return next, nil
}

// showdown evaluates every in-play hand and pays all players tied for best.
func showdown(s State, rng *rand.Rand) (State, error) {
	if len(s.InPlay) == 0 {
		return s, fmt.Errorf("%w: no players in play", ErrIllegalAction)
	}

	hands := make([]poker.Hand, len(s.InPlay))
	for i, id := range s.InPlay {
		hole, ok := s.Holes[id]
		if !ok {
			return s, fmt.Errorf("%w: no hole cards for %s", ErrUnknownPlayer, id)
		}
		h, err := poker.DetermineHand(hole, s.Board)
		if err != nil {
			return s, fmt.Errorf("evaluate %s: %w", id, err)
		}
		hands[i] = h
	}

	var winners []uuid.UUID
	for _, i := range poker.Best(hands) {
		winners = append(winners, s.InPlay[i])
	}
	return endGame(s, winners, rng)
}

// endGame pays the pot to winners and settles the hand.
func endGame(s State, winners []uuid.UUID, rng *rand.Rand) (State, error) {
	if len(winners) == 0 {
		return s, fmt.Errorf("%w: no winners", ErrIllegalAction)
	}
	seen := make(map[uuid.UUID]bool, len(winners))
	for _, id := range winners {
		if !s.Seated(id) {
			return s, fmt.Errorf("%w: winner %s", ErrUnknownPlayer, id)
		}
		if seen[id] {
			return s, fmt.Errorf("%w: winner %s listed twice", ErrIllegalAction, id)
		}
		seen[id] = true
	}

	next := s.clone()
	for i, share := range DividePot(s.Pot, len(winners), rng) {
		next.Stacks[winners[i]] += share
	}
	next.Winners = append([]uuid.UUID(nil), winners...)
	next.Pot = 0
	next.Bets = map[uuid.UUID]int{}
	return next, nil
}

package orchestrator

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/lox/holdemcore/internal/game"
	"github.com/lox/holdemcore/poker"
)

// ValidAction is one move the player may make, with the inclusive range of
// chips it may put in. Fold and Check carry no amount.
type ValidAction struct {
	Type      game.ActionType
	MinAmount int
	MaxAmount int
}

// Decision is an agent's chosen move. Amount is the chips added now, not the
// street total.
type Decision struct {
	Type      game.ActionType
	Amount    int
	Reasoning string
}

// View is what an agent sees when asked to act.
type View struct {
	Player       uuid.UUID
	Name         string
	Hole         []poker.Card
	Board        []poker.Card
	Street       game.Street
	Pot          int
	Stack        int
	ToCall       int
	Blinds       game.Blinds
	Opponents    int
	ValidActions []ValidAction
}

// Can reports whether t is among the valid actions.
func (v View) Can(t game.ActionType) bool {
	_, ok := v.valid(t)
	return ok
}

func (v View) valid(t game.ActionType) (ValidAction, bool) {
	i := slices.IndexFunc(v.ValidActions, func(va ValidAction) bool { return va.Type == t })
	if i < 0 {
		return ValidAction{}, false
	}
	return v.ValidActions[i], true
}

// Allows reports whether d is one of the valid actions with an amount in range.
func (v View) Allows(d Decision) bool {
	va, ok := v.valid(d.Type)
	if !ok {
		return false
	}
	switch d.Type {
	case game.Fold, game.Check:
		return true
	}
	return d.Amount >= va.MinAmount && d.Amount <= va.MaxAmount
}

// Agent decides for one seat. Act may block; it should return promptly once
// ctx is done.
type Agent interface {
	Act(ctx context.Context, v View) (Decision, error)
}

// AgentFunc adapts a function to Agent.
type AgentFunc func(ctx context.Context, v View) (Decision, error)

func (f AgentFunc) Act(ctx context.Context, v View) (Decision, error) {
	return f(ctx, v)
}

// validActions lists the moves open to id. maxType is the strongest action
// taken on the street so far; blinds count as a bet preflop.
//
// Check is offered whenever nothing is owed, which covers the big blind's
// option even though IsValidAction alone would exclude it after the blinds.
func validActions(s game.State, id uuid.UUID, maxType game.ActionType) []ValidAction {
	stack := s.Stacks[id]
	toCall := s.ToCall(id)
	big := max(s.Blinds.Big, 1)

	actions := []ValidAction{{Type: game.Fold}}
	if toCall == 0 {
		actions = append(actions, ValidAction{Type: game.Check})
		if stack > 0 && game.IsValidAction(maxType, game.Bet) {
			actions = append(actions, ValidAction{Type: game.Bet, MinAmount: min(big, stack), MaxAmount: stack})
		}
	}
	if toCall > 0 && stack > 0 && game.IsValidAction(maxType, game.Call) {
		amount := min(toCall, stack)
		actions = append(actions, ValidAction{Type: game.Call, MinAmount: amount, MaxAmount: amount})
	}
	if stack > toCall && game.IsValidAction(maxType, game.Raise) {
		actions = append(actions, ValidAction{Type: game.Raise, MinAmount: min(toCall+big, stack), MaxAmount: stack})
	}
	return actions
}

package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/lox/holdemcore/internal/game"
	"github.com/lox/holdemcore/poker"
)

// Strategy names accepted by NewAgent.
const (
	StrategyCall   = "call"
	StrategyFold   = "fold"
	StrategyRandom = "random"
	StrategyChart  = "chart"
)

// Strategies lists every built-in strategy.
var Strategies = []string{StrategyCall, StrategyFold, StrategyRandom, StrategyChart}

// NewAgent builds a built-in agent by strategy name.
func NewAgent(strategy string, rng *rand.Rand) (Agent, error) {
	switch strategy {
	case StrategyCall:
		return CallingAgent{}, nil
	case StrategyFold:
		return FoldingAgent{}, nil
	case StrategyRandom:
		return NewRandomAgent(rng), nil
	case StrategyChart:
		return ChartAgent{}, nil
	}
	return nil, fmt.Errorf("unknown strategy %q", strategy)
}

// CallingAgent checks when it can and calls otherwise. It never folds.
type CallingAgent struct{}

func (CallingAgent) Act(_ context.Context, v View) (Decision, error) {
	if v.Can(game.Check) {
		return Decision{Type: game.Check, Reasoning: "calling station checks"}, nil
	}
	if va, ok := v.valid(game.Call); ok {
		return Decision{Type: game.Call, Amount: va.MinAmount, Reasoning: "calling station calls"}, nil
	}
	return Decision{Type: game.Fold, Reasoning: "nothing to call with"}, nil
}

// FoldingAgent checks when it can and folds otherwise.
type FoldingAgent struct{}

func (FoldingAgent) Act(_ context.Context, v View) (Decision, error) {
	if v.Can(game.Check) {
		return Decision{Type: game.Check, Reasoning: "free check"}, nil
	}
	return Decision{Type: game.Fold, Reasoning: "fold bot folds"}, nil
}

// RandomAgent picks uniformly among the valid actions and, for sized
// actions, uniformly within the allowed range.
type RandomAgent struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomAgent returns a RandomAgent drawing from rng; nil uses the global
// source.
func NewRandomAgent(rng *rand.Rand) *RandomAgent {
	return &RandomAgent{rng: rng}
}

func (r *RandomAgent) Act(_ context.Context, v View) (Decision, error) {
	if len(v.ValidActions) == 0 {
		return Decision{Type: game.Fold, Reasoning: "no valid actions"}, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	va := v.ValidActions[r.intN(len(v.ValidActions))]
	amount := va.MinAmount
	if va.MaxAmount > va.MinAmount {
		amount += r.intN(va.MaxAmount - va.MinAmount + 1)
	}
	return Decision{Type: va.Type, Amount: amount, Reasoning: "random action"}, nil
}

func (r *RandomAgent) intN(n int) int {
	if r.rng == nil {
		return rand.IntN(n)
	}
	return r.rng.IntN(n)
}

// ChartAgent plays a fixed preflop chart and a made-hand rule after the
// flop: raise premium starting hands and two pair or better, continue with
// playable hands, give up on the rest.
type ChartAgent struct{}

func (ChartAgent) Act(_ context.Context, v View) (Decision, error) {
	strength := chartStrength(v)
	switch {
	case strength >= 2:
		if va, ok := v.valid(game.Raise); ok {
			return Decision{Type: game.Raise, Amount: va.MinAmount, Reasoning: "strong hand raises"}, nil
		}
		if va, ok := v.valid(game.Bet); ok {
			return Decision{Type: game.Bet, Amount: va.MinAmount, Reasoning: "strong hand bets"}, nil
		}
		fallthrough
	case strength == 1:
		return CallingAgent{}.Act(context.Background(), v)
	default:
		return FoldingAgent{}.Act(context.Background(), v)
	}
}

// chartStrength grades the hand 0 (fold), 1 (continue) or 2 (aggress).
func chartStrength(v View) int {
	if v.Street == game.Preflop {
		switch poker.CategorizeHole(v.Hole) {
		case poker.CategoryPremium:
			return 2
		case poker.CategoryStrong, poker.CategoryMedium:
			return 1
		case poker.CategoryWeak:
			// cheap to see a flop
			if v.ToCall <= v.Blinds.Big {
				return 1
			}
		}
		return 0
	}

	h, err := poker.DetermineHand(v.Hole, v.Board)
	if err != nil {
		return 0
	}
	switch {
	case h.Type >= poker.TwoPair:
		return 2
	case h.Type == poker.Pair:
		return 1
	}
	return 0
}

// ErrScriptExhausted is returned by a ScriptedAgent with no decisions left.
var ErrScriptExhausted = errors.New("script exhausted")

// ScriptedAgent replays a fixed list of decisions, one per call.
type ScriptedAgent struct {
	mu        sync.Mutex
	decisions []Decision
	views     []View
}

func NewScriptedAgent(decisions ...Decision) *ScriptedAgent {
	return &ScriptedAgent{decisions: decisions}
}

func (s *ScriptedAgent) Act(_ context.Context, v View) (Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views = append(s.views, v)
	if len(s.decisions) == 0 {
		return Decision{}, ErrScriptExhausted
	}
	d := s.decisions[0]
	s.decisions = s.decisions[1:]
	return d, nil
}

// Views returns every View the agent was shown.
func (s *ScriptedAgent) Views() []View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]View(nil), s.views...)
}

// Package orchestrator drives hands on a table.Table: it sequences phases,
// asks the player to act for each turn, enforces bet legality and decides
// when a betting round is over. The game core leaves all of that to its
// caller; this package is one such caller.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/holdemcore/internal/game"
	"github.com/lox/holdemcore/internal/table"
)

var (
	// ErrNoAgent is returned when a funded player has no agent.
	ErrNoAgent = errors.New("no agent for player")

	// ErrTimeout is reported when an agent does not answer in time.
	ErrTimeout = errors.New("decision timeout")

	// ErrRoundStuck guards against a betting round that never completes.
	ErrRoundStuck = errors.New("betting round did not complete")
)

// maxActionsPerRound bounds a betting round. Every raise must add chips, so
// a legal round always ends long before this.
const maxActionsPerRound = 1000

// Config configures an Orchestrator.
type Config struct {
	// ActionTimeout bounds each Act call; zero waits indefinitely.
	ActionTimeout time.Duration
	Clock         quartz.Clock
	Logger        *log.Logger
}

// HandResult summarises a completed hand.
type HandResult struct {
	Winners []uuid.UUID
	// Pot is the total contested, before it was paid out.
	Pot int
	// Net is each participant's chip change over the hand.
	Net      map[uuid.UUID]int
	Showdown bool
	Actions  int
}

// Orchestrator plays hands on one table with one Agent per seat.
type Orchestrator struct {
	table   *table.Table
	agents  map[uuid.UUID]Agent
	timeout time.Duration
	clock   quartz.Clock
	logger  *log.Logger
	hands   int

	// pot as last seen before a decision; a fold that ends the hand pays
	// it out before PlayHand can read it
	lastPot int
}

// New creates an orchestrator for tbl.
func New(tbl *table.Table, cfg Config) *Orchestrator {
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	return &Orchestrator{
		table:   tbl,
		agents:  map[uuid.UUID]Agent{},
		timeout: cfg.ActionTimeout,
		clock:   cfg.Clock,
		logger:  cfg.Logger.WithPrefix("orchestrator"),
	}
}

// Seat assigns the agent that decides for id.
func (o *Orchestrator) Seat(id uuid.UUID, agent Agent) {
	o.agents[id] = agent
}

// PlayHand plays one hand from StartGame through settlement. Agents that
// error, time out or choose an action outside View.ValidActions are folded.
// A cancelled ctx aborts the hand and leaves the table mid-hand.
func (o *Orchestrator) PlayHand(ctx context.Context) (HandResult, error) {
	start := o.table.State()
	for _, id := range start.Players {
		if _, ok := o.agents[id]; !ok && start.Stacks[id] > 0 {
			return HandResult{}, fmt.Errorf("%w: %s", ErrNoAgent, o.table.Name(id))
		}
	}

	if err := o.table.StartGame(game.Blinds{}); err != nil {
		return HandResult{}, err
	}
	o.hands++
	logger := o.logger.With("hand", o.hands)

	if err := o.table.Deal(); err != nil {
		return HandResult{}, err
	}

	result := HandResult{}
	streets := []game.ActionType{game.DealFlop, game.DealTurn, game.DealRiver}
	for i := 0; ; i++ {
		preflop := i == 0
		n, err := o.bettingRound(ctx, logger, preflop)
		result.Actions += n
		if err != nil {
			return result, err
		}
		if !o.table.State().HandInProgress() {
			break
		}
		if err := o.table.EndRound(); err != nil {
			return result, err
		}
		if i == len(streets) {
			result.Showdown = true
			break
		}
		if _, err := o.table.Apply(game.PhaseAction(streets[i])); err != nil {
			return result, err
		}
	}

	result.Pot = o.lastPot
	if result.Showdown {
		result.Pot = o.table.State().Pot
		if _, err := o.table.Showdown(); err != nil {
			return result, err
		}
	}

	end := o.table.State()
	result.Winners = end.Winners
	result.Net = make(map[uuid.UUID]int, len(start.Players))
	for id, before := range start.Stacks {
		if after, ok := end.Stacks[id]; ok {
			result.Net[id] = after - before
		}
	}
	logger.Info("Hand finished", "winners", o.names(result.Winners), "pot", result.Pot, "showdown", result.Showdown, "actions", result.Actions)
	return result, nil
}

// bettingRound asks players to act until the round is complete or the hand
// is won by folds. It returns the number of decisions applied.
func (o *Orchestrator) bettingRound(ctx context.Context, logger *log.Logger, preflop bool) (int, error) {
	maxType := game.Fold
	if preflop {
		maxType = game.Bet
	}
	acted := map[uuid.UUID]bool{}

	for n := 0; n < maxActionsPerRound; n++ {
		s := o.table.State()
		if !s.HandInProgress() || roundComplete(s, acted) {
			return n, nil
		}
		o.lastPot = s.Pot

		id, _ := s.PlayerToAct()
		if s.Stacks[id] == 0 {
			// all in: nothing to decide
			if err := o.table.Check(id); err != nil {
				return n, err
			}
			acted[id] = true
			continue
		}

		view := o.view(s, id, maxType)
		d, err := o.decide(ctx, id, view)
		if ctx.Err() != nil {
			return n, ctx.Err()
		}
		if err != nil || !view.Allows(d) {
			logger.Warn("Folding player", "player", view.Name, "decision", d.Type, "amount", d.Amount, "error", err)
			d = Decision{Type: game.Fold, Reasoning: "forced fold"}
		}

		if err := o.apply(id, d); err != nil {
			return n, err
		}
		logger.Debug("Player acted", "player", view.Name, "action", d.Type, "amount", d.Amount, "reason", d.Reasoning)

		acted[id] = true
		switch d.Type {
		case game.Bet, game.Raise:
			// aggression reopens the action for everyone else
			acted = map[uuid.UUID]bool{id: true}
		}
		maxType = max(maxType, d.Type)
	}
	return maxActionsPerRound, ErrRoundStuck
}

// roundComplete reports whether everyone who can still act has acted since
// the last bet or raise and matched the highest bet.
func roundComplete(s game.State, acted map[uuid.UUID]bool) bool {
	highest := s.MaxBet()
	var live []uuid.UUID
	for _, id := range s.InPlay {
		if s.Stacks[id] > 0 {
			live = append(live, id)
		}
	}
	// at most one player with chips and nothing for them to call
	if len(live) <= 1 && (len(live) == 0 || s.Bets[live[0]] >= highest) {
		return true
	}
	for _, id := range live {
		if !acted[id] || s.Bets[id] < highest {
			return false
		}
	}
	return true
}

func (o *Orchestrator) view(s game.State, id uuid.UUID, maxType game.ActionType) View {
	return View{
		Player:       id,
		Name:         o.table.Name(id),
		Hole:         slices.Clone(s.Holes[id]),
		Board:        slices.Clone(s.Board),
		Street:       s.Street(),
		Pot:          s.Pot,
		Stack:        s.Stacks[id],
		ToCall:       s.ToCall(id),
		Blinds:       s.Blinds,
		Opponents:    len(s.InPlay) - 1,
		ValidActions: validActions(s, id, maxType),
	}
}

// decide runs the agent, bounded by the action timeout. The timer is armed
// before the agent starts so a mock clock can be advanced from inside Act.
func (o *Orchestrator) decide(ctx context.Context, id uuid.UUID, view View) (Decision, error) {
	agent := o.agents[id]
	if agent == nil {
		return Decision{}, fmt.Errorf("%w: %s", ErrNoAgent, view.Name)
	}
	if o.timeout <= 0 {
		return agent.Act(ctx, view)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	timeoutFired := make(chan struct{})
	timer := o.clock.AfterFunc(o.timeout, func() {
		close(timeoutFired)
	})
	defer timer.Stop()

	type result struct {
		d   Decision
		err error
	}
	done := make(chan result, 1)
	go func() {
		d, err := agent.Act(ctx, view)
		done <- result{d, err}
	}()

	select {
	case r := <-done:
		return r.d, r.err
	case <-timeoutFired:
		return Decision{}, fmt.Errorf("%w after %s", ErrTimeout, o.timeout)
	case <-ctx.Done():
		return Decision{}, ctx.Err()
	}
}

func (o *Orchestrator) apply(id uuid.UUID, d Decision) error {
	switch d.Type {
	case game.Fold:
		return o.table.Fold(id)
	case game.Check:
		return o.table.Check(id)
	case game.Bet:
		return o.table.Bet(id, d.Amount)
	case game.Call:
		return o.table.Call(id, d.Amount)
	case game.Raise:
		return o.table.Raise(id, d.Amount)
	}
	return fmt.Errorf("%w: %s", game.ErrIllegalAction, d.Type)
}

func (o *Orchestrator) names(ids []uuid.UUID) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = o.table.Name(id)
	}
	return names
}

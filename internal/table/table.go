// Package table holds the current State of one poker table and serialises
// every change to it.
package table

import (
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/sanity-io/litter"

	"github.com/lox/holdemcore/internal/game"
	"github.com/lox/holdemcore/internal/randutil"
)

// Entry is one applied action and the State it produced.
type Entry struct {
	Seq    int
	At     time.Time
	Action game.Action
	State  game.State
}

// Table is the single mutable cell around an immutable game.State. Each
// operation builds an Action, reduces it and swaps the State under a mutex;
// a rejected action leaves the State untouched. Safe for concurrent use.
type Table struct {
	mu      sync.Mutex
	state   game.State
	names   map[uuid.UUID]string
	journal []Entry

	rng    *rand.Rand
	logger *log.Logger
	newID  func() (uuid.UUID, error)
	clock  quartz.Clock

	noJournal bool
}

// New creates an empty table. Without WithRNG or WithSeed the table is
// seeded from the current time.
func New(opts ...Option) (*Table, error) {
	cfg := &config{
		newID: uuid.NewV7,
		clock: quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.rng == nil {
		cfg.rng = randutil.New(randutil.Seed(0))
	}
	if cfg.logger == nil {
		cfg.logger = log.New(os.Stderr)
	}

	t := &Table{
		state:  game.NewState(),
		names:  map[uuid.UUID]string{},
		rng:    cfg.rng,
		logger: cfg.logger.WithPrefix("table"),
		newID:  cfg.newID,
		clock:  cfg.clock,

		noJournal: cfg.noJournal,
	}
	if !cfg.blinds.IsZero() {
		if err := t.SetBlinds(cfg.blinds); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Apply reduces a against the current State and, on success, makes the
// result current. It returns the State in effect afterwards.
func (t *Table) Apply(a game.Action) (game.State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.apply(a)
}

func (t *Table) apply(a game.Action) (game.State, error) {
	next, err := game.Reduce(t.state, a, t.rng)
	if err != nil {
		t.logger.Warn("Rejected action", "action", a.Type, "player", t.names[a.Player], "error", err)
		return t.state, err
	}
	t.state = next
	if !t.noJournal {
		t.journal = append(t.journal, Entry{Seq: len(t.journal) + 1, At: t.clock.Now(), Action: a, State: next})
	}

	t.logger.Debug("Applied action", "action", a.Type, "player", t.names[a.Player], "amount", a.Amount, "pot", next.Pot)
	if t.logger.GetLevel() <= log.DebugLevel {
		t.logger.Debug("State", "snapshot", litter.Sdump(next.Snapshot()))
	}
	return next, nil
}

// State returns the current State. It must be treated as read-only.
func (t *Table) State() game.State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Snapshot returns the serialisable view of the current State.
func (t *Table) Snapshot() game.Snapshot {
	return t.State().Snapshot()
}

// Name returns the display name given to AddPlayer.
func (t *Table) Name(id uuid.UUID) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.names[id]
}

// Journal returns a copy of every applied action in order.
func (t *Table) Journal() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.journal)
}

// AddPlayer seats a new player with an empty stack.
func (t *Table) AddPlayer(name string) (uuid.UUID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id, err := t.newID()
	if err != nil {
		return uuid.Nil, fmt.Errorf("generate player id: %w", err)
	}
	if _, err := t.apply(game.AddPlayerAction(id)); err != nil {
		return uuid.Nil, err
	}
	t.names[id] = name
	t.logger.Info("Player joined", "player", name, "id", id)
	return id, nil
}

func (t *Table) BuyIn(id uuid.UUID, amount int) error {
	_, err := t.Apply(game.BuyInAction(id, amount))
	return err
}

// CashOut removes the player and returns the stack they left with.
func (t *Table) CashOut(id uuid.UUID) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	amount := t.state.Stacks[id]
	if _, err := t.apply(game.CashOutAction(id)); err != nil {
		return 0, err
	}
	t.logger.Info("Player left", "player", t.names[id], "chips", amount)
	delete(t.names, id)
	return amount, nil
}

func (t *Table) SetBlinds(b game.Blinds) error {
	_, err := t.Apply(game.SetBlindsAction(b))
	return err
}

// StartGame begins a hand. Zero blinds keep the table's current blinds.
func (t *Table) StartGame(b game.Blinds) error {
	s, err := t.Apply(game.StartGameAction(b))
	if err != nil {
		return err
	}
	t.logger.Info("Hand started", "dealer", t.Name(s.Players[s.DealerPosition]), "players", len(s.InPlay), "blinds", fmt.Sprintf("%d/%d", s.Blinds.Small, s.Blinds.Big))
	return nil
}

func (t *Table) Deal() error     { return t.phase(game.Deal) }
func (t *Table) EndRound() error { return t.phase(game.EndRound) }
func (t *Table) Flop() error     { return t.phase(game.DealFlop) }
func (t *Table) Turn() error     { return t.phase(game.DealTurn) }
func (t *Table) River() error    { return t.phase(game.DealRiver) }

func (t *Table) phase(at game.ActionType) error {
	_, err := t.Apply(game.PhaseAction(at))
	return err
}

func (t *Table) Check(id uuid.UUID) error { return t.act(game.Check, id, 0) }
func (t *Table) Fold(id uuid.UUID) error  { return t.act(game.Fold, id, 0) }

func (t *Table) Bet(id uuid.UUID, amount int) error   { return t.act(game.Bet, id, amount) }
func (t *Table) Call(id uuid.UUID, amount int) error  { return t.act(game.Call, id, amount) }
func (t *Table) Raise(id uuid.UUID, amount int) error { return t.act(game.Raise, id, amount) }

func (t *Table) act(at game.ActionType, id uuid.UUID, amount int) error {
	s, err := t.Apply(game.PlayerAction(at, id, amount))
	if err != nil {
		return err
	}
	if at == game.Fold && len(s.Winners) > 0 && !s.HandInProgress() {
		t.logWinners(s)
	}
	return nil
}

// Showdown settles the hand and returns the winners.
func (t *Table) Showdown() ([]uuid.UUID, error) {
	s, err := t.Apply(game.PhaseAction(game.Showdown))
	if err != nil {
		return nil, err
	}
	t.logWinners(s)
	return slices.Clone(s.Winners), nil
}

// EndGame pays the pot to the given winners.
func (t *Table) EndGame(winners ...uuid.UUID) error {
	s, err := t.Apply(game.EndGameAction(winners...))
	if err != nil {
		return err
	}
	t.logWinners(s)
	return nil
}

func (t *Table) logWinners(s game.State) {
	names := make([]string, len(s.Winners))
	for i, id := range s.Winners {
		names[i] = t.Name(id)
	}
	t.logger.Info("Hand complete", "winners", names)
}

package game

import (
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/lox/holdemcore/poker"
)

// Blinds are the forced opening bets.
type Blinds struct {
	Small int `json:"small"`
	Big   int `json:"big"`
}

// DefaultBlinds are used by a new table until SetBlinds or StartGame
// supplies others.
var DefaultBlinds = Blinds{Small: 5, Big: 10}

// IsZero reports whether no blinds were given.
func (b Blinds) IsZero() bool {
	return b.Small == 0 && b.Big == 0
}

// Street is the betting round implied by the number of board cards.
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river"}[s]
}

// State is one table at a point in time. Values are treated as immutable:
// Reduce copies every collection it changes, so a State obtained earlier is
// never affected by later actions. Callers must not modify the maps or
// slices of a State they did not create.
type State struct {
	// Players are seated players in seat order.
	Players []uuid.UUID
	Stacks  map[uuid.UUID]int

	// InPlay are the players contesting the current hand, in acting order
	// starting left of the dealer.
	InPlay []uuid.UUID

	// DealerPosition indexes Players; -1 before the first hand.
	DealerPosition int

	Deck  poker.Deck
	Holes map[uuid.UUID][]poker.Card
	Board []poker.Card

	// Bets are chips committed on the current street; Pot holds every chip
	// committed this hand, including Bets.
	Bets map[uuid.UUID]int
	Pot  int

	// ToAct indexes InPlay.
	ToAct int

	// Winners of the last completed hand.
	Winners []uuid.UUID

	Blinds Blinds
}

// NewState returns the empty table.
func NewState() State {
	return State{
		Stacks:         map[uuid.UUID]int{},
		DealerPosition: -1,
		Holes:          map[uuid.UUID][]poker.Card{},
		Bets:           map[uuid.UUID]int{},
		Blinds:         DefaultBlinds,
	}
}

// clone returns a deep copy so reducers can mutate freely.
func (s State) clone() State {
	c := s
	c.Players = slices.Clone(s.Players)
	c.Stacks = cloneMap(s.Stacks)
	c.InPlay = slices.Clone(s.InPlay)
	c.Board = slices.Clone(s.Board)
	c.Bets = cloneMap(s.Bets)
	c.Winners = slices.Clone(s.Winners)
	c.Holes = make(map[uuid.UUID][]poker.Card, len(s.Holes))
	for id, hole := range s.Holes {
		c.Holes[id] = slices.Clone(hole)
	}
	return c
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return map[K]V{}
	}
	return maps.Clone(m)
}

// Seated reports whether id is one of the table's players.
func (s State) Seated(id uuid.UUID) bool {
	return slices.Contains(s.Players, id)
}

// Playing reports whether id is contesting the current hand.
func (s State) Playing(id uuid.UUID) bool {
	return slices.Contains(s.InPlay, id)
}

// PlayerToAct returns InPlay[ToAct], or false when nobody is in play.
func (s State) PlayerToAct() (uuid.UUID, bool) {
	if s.ToAct < 0 || s.ToAct >= len(s.InPlay) {
		return uuid.Nil, false
	}
	return s.InPlay[s.ToAct], true
}

// MaxBet is the highest bet on the current street.
func (s State) MaxBet() int {
	highest := 0
	for _, b := range s.Bets {
		highest = max(highest, b)
	}
	return highest
}

// ToCall is how many chips id must add to match the highest bet.
func (s State) ToCall(id uuid.UUID) int {
	return s.MaxBet() - s.Bets[id]
}

// Chips is every chip on the table: stacks plus pot.
func (s State) Chips() int {
	total := s.Pot
	for _, chips := range s.Stacks {
		total += chips
	}
	return total
}

// Street derives the betting round from the board.
func (s State) Street() Street {
	switch len(s.Board) {
	case 0:
		return Preflop
	case 3:
		return Flop
	case 4:
		return Turn
	default:
		return River
	}
}

// HandInProgress reports whether chips are at stake in an unsettled hand.
func (s State) HandInProgress() bool {
	return s.Pot > 0 && len(s.InPlay) > 0
}

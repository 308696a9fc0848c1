package game

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/lox/holdemcore/poker"
)

// CardView is the serialised form of a card.
type CardView struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

// Snapshot is the externally visible shape of a State. Player ids use their
// canonical string form. The deck is not exposed.
type Snapshot struct {
	Bets           map[string]int        `json:"bets"`
	Blinds         Blinds                `json:"blinds"`
	Board          []CardView            `json:"board"`
	DealerPosition int                   `json:"dealer_position"`
	Holes          map[string][]CardView `json:"holes"`
	InPlay         []string              `json:"in_play"`
	Players        []string              `json:"players"`
	Pot            int                   `json:"pot"`
	Stacks         map[string]int        `json:"stacks"`
	ToAct          int                   `json:"to_act"`
	Winners        []string              `json:"winners"`
}

// Snapshot converts s. The result shares nothing with s.
func (s State) Snapshot() Snapshot {
	snap := Snapshot{
		Bets:           make(map[string]int, len(s.Bets)),
		Blinds:         s.Blinds,
		Board:          cardViews(s.Board),
		DealerPosition: s.DealerPosition,
		Holes:          make(map[string][]CardView, len(s.Holes)),
		InPlay:         idStrings(s.InPlay),
		Players:        idStrings(s.Players),
		Pot:            s.Pot,
		Stacks:         make(map[string]int, len(s.Stacks)),
		ToAct:          s.ToAct,
		Winners:        idStrings(s.Winners),
	}
	for id, amount := range s.Bets {
		snap.Bets[id.String()] = amount
	}
	for id, hole := range s.Holes {
		snap.Holes[id.String()] = cardViews(hole)
	}
	for id, chips := range s.Stacks {
		snap.Stacks[id.String()] = chips
	}
	return snap
}

// MarshalJSON encodes the State as its Snapshot.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}

func cardViews(cards []poker.Card) []CardView {
	views := make([]CardView, len(cards))
	for i, c := range cards {
		views[i] = CardView{Rank: c.Rank.String(), Suit: c.Suit.String()}
	}
	return views
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

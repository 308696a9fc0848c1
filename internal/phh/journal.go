package phh

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/lox/holdemcore/internal/game"
	"github.com/lox/holdemcore/internal/table"
	"github.com/lox/holdemcore/poker"
)

// FromJournal rebuilds the hand histories of every settled hand in entries.
// A hand runs from START_GAME to the action that pays out its pot; a hand
// still in progress is left out. name maps player ids to display names.
func FromJournal(entries []table.Entry, tableName string, name func(uuid.UUID) string) []HandHistory {
	var (
		hands   []HandHistory
		current *builder
	)
	for i, e := range entries {
		prev := game.NewState()
		if i > 0 {
			prev = entries[i-1].State
		}

		if e.Action.Type == game.StartGame {
			current = newBuilder(strconv.Itoa(len(hands)+1), tableName, prev, e, name)
			continue
		}
		if current == nil {
			continue
		}
		current.add(prev, e)
		if settled(e.State) {
			hands = append(hands, current.finish(prev, e.State))
			current = nil
		}
	}
	return hands
}

func settled(s game.State) bool {
	return s.Pot == 0 && len(s.Winners) > 0
}

type builder struct {
	hist  HandHistory
	order []uuid.UUID
}

func newBuilder(handID, tableName string, prev game.State, start table.Entry, name func(uuid.UUID) string) *builder {
	s := start.State
	n := len(s.InPlay)
	b := &builder{
		order: slices.Clone(s.InPlay),
		hist: HandHistory{
			Variant:           Variant,
			Table:             tableName,
			SeatCount:         len(s.Players),
			Seats:             make([]int, n),
			Antes:             make([]int, n),
			BlindsOrStraddles: make([]int, n),
			MinBet:            s.Blinds.Big,
			StartingStacks:    make([]int, n),
			Actions:           []string{},
			Players:           make([]string, n),
			HandID:            handID,
		},
	}
	for i, id := range s.InPlay {
		b.hist.Seats[i] = slices.Index(s.Players, id) + 1
		b.hist.BlindsOrStraddles[i] = s.Bets[id]
		b.hist.StartingStacks[i] = prev.Stacks[id]
		if name != nil {
			b.hist.Players[i] = name(id)
		}
	}
	b.hist.setTime(start.At)
	return b
}

func (b *builder) player(id uuid.UUID) string {
	return fmt.Sprintf("p%d", slices.Index(b.order, id)+1)
}

func (b *builder) emit(format string, args ...any) {
	b.hist.Actions = append(b.hist.Actions, fmt.Sprintf(format, args...))
}

func (b *builder) add(prev game.State, e table.Entry) {
	a, s := e.Action, e.State
	switch a.Type {
	case game.Deal:
		for _, id := range b.order {
			if hole, ok := s.Holes[id]; ok {
				b.emit("d dh %s %s", b.player(id), cards(hole))
			}
		}
	case game.DealFlop, game.DealTurn, game.DealRiver:
		b.emit("d db %s", cards(s.Board[len(prev.Board):]))
	case game.Fold:
		b.emit("%s f", b.player(a.Player))
	case game.Check, game.Call:
		b.emit("%s cc", b.player(a.Player))
	case game.Bet, game.Raise:
		// PHH records the street total the player has raised to
		b.emit("%s cbr %d", b.player(a.Player), s.Bets[a.Player])
	case game.Showdown:
		for _, id := range prev.InPlay {
			b.emit("%s sm %s", b.player(id), cards(prev.Holes[id]))
		}
	}
}

func (b *builder) finish(prev, end game.State) HandHistory {
	n := len(b.order)
	b.hist.FinishingStacks = make([]int, n)
	b.hist.Winnings = make([]int, n)
	for i, id := range b.order {
		b.hist.FinishingStacks[i] = end.Stacks[id]
		if slices.Contains(end.Winners, id) {
			b.hist.Winnings[i] = end.Stacks[id] - prev.Stacks[id]
		}
	}
	return b.hist
}

func cards(cs []poker.Card) string {
	var sb strings.Builder
	for _, c := range cs {
		sb.WriteString(c.String())
	}
	return sb.String()
}

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/holdemcore/internal/config"
	"github.com/lox/holdemcore/internal/game"
	"github.com/lox/holdemcore/internal/orchestrator"
	"github.com/lox/holdemcore/internal/randutil"
	"github.com/lox/holdemcore/internal/statistics"
	"github.com/lox/holdemcore/internal/table"
)

// session is one table with an agent in every seat.
type session struct {
	table  *table.Table
	orch   *orchestrator.Orchestrator
	seats  []seat
	blinds game.Blinds
}

type seat struct {
	id       uuid.UUID
	name     string
	strategy string
	buyIn    int
}

// summary aggregates the hands played by a session.
type summary struct {
	Hands      int
	Showdowns  int
	LargestPot int
	Net        map[string]int
	Stats      map[string]*statistics.Statistics
}

func newSummary() summary {
	return summary{Net: map[string]int{}, Stats: map[string]*statistics.Statistics{}}
}

func (s *summary) add(other summary) error {
	s.Hands += other.Hands
	s.Showdowns += other.Showdowns
	s.LargestPot = max(s.LargestPot, other.LargestPot)
	for k, v := range other.Net {
		s.Net[k] += v
	}
	for k, st := range other.Stats {
		mine, ok := s.Stats[k]
		if !ok {
			mine = statistics.New(st.BigBlind)
			s.Stats[k] = mine
		}
		if err := mine.Merge(st); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
	}
	return nil
}

func newSession(seats []config.SeatConfig, blinds game.Blinds, seed int64, timeout time.Duration, logger *log.Logger, opts ...table.Option) (*session, error) {
	opts = append([]table.Option{
		table.WithSeed(seed),
		table.WithLogger(logger),
		table.WithBlinds(blinds),
	}, opts...)
	tbl, err := table.New(opts...)
	if err != nil {
		return nil, err
	}
	orch := orchestrator.New(tbl, orchestrator.Config{ActionTimeout: timeout, Logger: logger})

	s := &session{table: tbl, orch: orch, blinds: blinds}
	for i, sc := range seats {
		id, err := tbl.AddPlayer(sc.Name)
		if err != nil {
			return nil, fmt.Errorf("seat %s: %w", sc.Name, err)
		}
		if err := tbl.BuyIn(id, sc.BuyIn); err != nil {
			return nil, fmt.Errorf("seat %s: %w", sc.Name, err)
		}
		agent, err := orchestrator.NewAgent(sc.Strategy, randutil.New(randutil.Derive(seed, i+1)))
		if err != nil {
			return nil, fmt.Errorf("seat %s: %w", sc.Name, err)
		}
		orch.Seat(id, agent)
		s.seats = append(s.seats, seat{id: id, name: sc.Name, strategy: sc.Strategy, buyIn: sc.BuyIn})
	}
	return s, nil
}

// funded returns the seats that can still post chips.
func (s *session) funded() []seat {
	st := s.table.State()
	var out []seat
	for _, seat := range s.seats {
		if st.Stacks[seat.id] > 0 {
			out = append(out, seat)
		}
	}
	return out
}

// run plays up to hands hands, stopping early once fewer than two seats have
// chips. onHand, if set, is called after every hand.
func (s *session) run(ctx context.Context, hands int, onHand func(n int, res orchestrator.HandResult)) (summary, error) {
	sum := newSummary()
	for _, seat := range s.seats {
		sum.Stats[seat.name] = statistics.New(s.blinds.Big)
	}
	for n := 1; n <= hands; n++ {
		playing := s.funded()
		if len(playing) < 2 {
			break
		}
		res, err := s.orch.PlayHand(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				break
			}
			return sum, fmt.Errorf("hand %d: %w", n, err)
		}
		sum.Hands++
		if res.Showdown {
			sum.Showdowns++
		}
		sum.LargestPot = max(sum.LargestPot, res.Pot)
		for _, seat := range playing {
			sum.Stats[seat.name].Add(statistics.Result{Net: res.Net[seat.id], Showdown: res.Showdown, Pot: res.Pot})
		}
		if onHand != nil {
			onHand(n, res)
		}
	}

	st := s.table.State()
	for _, seat := range s.seats {
		sum.Net[seat.name] += st.Stacks[seat.id] - seat.buyIn
	}
	return sum, nil
}

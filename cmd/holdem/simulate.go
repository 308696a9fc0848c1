package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lox/holdemcore/internal/config"
	"github.com/lox/holdemcore/internal/game"
	"github.com/lox/holdemcore/internal/randutil"
	"github.com/lox/holdemcore/internal/statistics"
	"github.com/lox/holdemcore/internal/table"
)

type SimulateCmd struct {
	Tables      int      `short:"t" default:"4" help:"Number of independent tables"`
	Hands       int      `short:"n" default:"1000" help:"Hands per table"`
	Strategies  []string `default:"chart,call,random,fold" help:"Strategy for each seat, comma separated"`
	StartChips  int      `default:"1000" help:"Starting chip stack"`
	SmallBlind  int      `default:"5" help:"Small blind"`
	BigBlind    int      `default:"10" help:"Big blind"`
	Seed        int64    `help:"Seed for deterministic runs (0 for random)"`
	Concurrency int      `help:"Tables run at once (0 = GOMAXPROCS)"`
}

func (c *SimulateCmd) Run(cli *CLI) error {
	level := cli.LogLevel
	if level == "" {
		level = "warn"
	}
	logger := stderrLogger(level)

	cfg := config.Default()
	cfg.Hands = c.Hands
	cfg.Table = &config.TableConfig{SmallBlind: c.SmallBlind, BigBlind: c.BigBlind}
	cfg.Seats = nil
	for i, strategy := range c.Strategies {
		cfg.Seats = append(cfg.Seats, config.SeatConfig{
			Name:     fmt.Sprintf("%s-%d", strategy, i+1),
			Strategy: strategy,
			BuyIn:    c.StartChips,
		})
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	seed := randutil.Seed(c.Seed)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	logger.Info("Starting simulation", "tables", c.Tables, "hands", c.Hands, "seed", seed)
	total, err := simulate(ctx, cfg.Seats, cfg.Blinds(), c.Tables, c.Hands, seed, c.Concurrency)
	if err != nil {
		return err
	}
	logger.Info("Simulation finished", "elapsed", time.Since(start).Round(time.Millisecond))

	report, err := formatStrategies(total, cfg.Seats, c.BigBlind)
	if err != nil {
		return err
	}
	fmt.Println(formatSummary(total, seed))
	fmt.Println(report)
	return nil
}

// simulate plays tables independent sessions concurrently. Table i is seeded
// with randutil.Derive(seed, i), so results do not depend on scheduling.
func simulate(ctx context.Context, seats []config.SeatConfig, blinds game.Blinds, tables, hands int, seed int64, concurrency int) (summary, error) {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	results := make([]summary, tables)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := range tables {
		g.Go(func() error {
			s, err := newSession(seats, blinds, randutil.Derive(seed, i), 0, quietLogger(), table.WithoutJournal())
			if err != nil {
				return err
			}
			sum, err := s.run(ctx, hands, nil)
			if err != nil {
				return fmt.Errorf("table %d: %w", i, err)
			}
			results[i] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary{}, err
	}

	total := newSummary()
	for _, r := range results {
		if err := total.add(r); err != nil {
			return summary{}, err
		}
	}
	return total, nil
}

// formatStrategies reports each strategy's win rate in big blinds per 100
// hands with a 95% confidence interval.
func formatStrategies(sum summary, seats []config.SeatConfig, bigBlind int) (string, error) {
	byStrategy := map[string]*statistics.Statistics{}
	var order []string
	for _, s := range seats {
		st, ok := sum.Stats[s.Name]
		if !ok {
			continue
		}
		agg, ok := byStrategy[s.Strategy]
		if !ok {
			agg = statistics.New(bigBlind)
			byStrategy[s.Strategy] = agg
			order = append(order, s.Strategy)
		}
		if err := agg.Merge(st); err != nil {
			return "", err
		}
	}

	var b strings.Builder
	for _, strategy := range order {
		st := byStrategy[strategy]
		lo, hi := st.ConfidenceInterval95()
		fmt.Fprintf(&b, "%-8s %+9.2f bb/100  [%+.2f, %+.2f]  %d hands, %d showdown wins\n",
			strategy, st.BB100(), lo*100, hi*100, st.Hands, st.ShowdownWins)
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

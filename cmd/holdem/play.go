package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdemcore/internal/config"
	"github.com/lox/holdemcore/internal/fileutil"
	"github.com/lox/holdemcore/internal/orchestrator"
	"github.com/lox/holdemcore/internal/phh"
	"github.com/lox/holdemcore/internal/randutil"
	"github.com/lox/holdemcore/internal/render"
)

type PlayCmd struct {
	Config  string `short:"c" default:"holdem.hcl" help:"HCL table configuration; defaults apply when missing"`
	Hands   int    `short:"n" help:"Hands to play, overrides the config file"`
	Seed    int64  `help:"RNG seed, overrides the config file (0 for random)"`
	Show    bool   `short:"s" help:"Render the table after every hand"`
	History string `help:"Write PHH hand histories to this file"`
}

func (c *PlayCmd) Run(cli *CLI) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Hands > 0 {
		cfg.Hands = c.Hands
	}
	if c.Seed != 0 {
		cfg.Seed = c.Seed
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", c.Config, err)
	}

	logger := stderrLogger(cfg.LogLevel)
	seed := randutil.Seed(cfg.Seed)
	logger.Info("Starting table", "config", c.Config, "seed", seed, "seats", len(cfg.Seats), "hands", cfg.Hands)

	s, err := newSession(cfg.Seats, cfg.Blinds(), seed, cfg.Timeout(), logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sum, err := s.run(ctx, cfg.Hands, func(n int, res orchestrator.HandResult) {
		if c.Show {
			fmt.Println(render.HeaderStyle.Render(fmt.Sprintf("Hand %d", n)))
			fmt.Println(render.State(s.table.State(), s.table.Name))
		}
	})
	if err != nil {
		return err
	}

	if c.History != "" {
		hands := phh.FromJournal(s.table.Journal(), c.Config, s.table.Name)
		data, err := phh.EncodeSessionBytes(hands)
		if err != nil {
			return err
		}
		if err := fileutil.WriteFileAtomic(c.History, data, 0o644); err != nil {
			return err
		}
		logger.Info("Wrote hand histories", "file", c.History, "hands", len(hands))
	}

	fmt.Println(formatSummary(sum, seed))
	return nil
}

func formatSummary(sum summary, seed int64) string {
	names := make([]string, 0, len(sum.Net))
	for name := range sum.Net {
		names = append(names, name)
	}
	// biggest winner first
	slices.SortFunc(names, func(a, b string) int {
		if d := sum.Net[b] - sum.Net[a]; d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})

	rows := []string{render.HeaderStyle.Render(fmt.Sprintf("%d hands, %d showdowns, largest pot %d, seed %d", sum.Hands, sum.Showdowns, sum.LargestPot, seed))}
	for _, name := range names {
		style := render.MutedStyle
		switch {
		case sum.Net[name] > 0:
			style = render.WinnerStyle
		case sum.Net[name] < 0:
			style = render.ActionStyle
		}
		row := fmt.Sprintf("%-12s %+8d", name, sum.Net[name])
		if st, ok := sum.Stats[name]; ok && st.Hands > 0 {
			row += fmt.Sprintf("  %+8.2f bb/100 over %d hands", st.BB100(), st.Hands)
		}
		rows = append(rows, style.Render(row))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Package config loads table configuration from HCL.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdemcore/internal/game"
	"github.com/lox/holdemcore/internal/orchestrator"
)

const (
	defaultLogLevel      = "info"
	defaultHands         = 100
	defaultActionTimeout = "1s"
	defaultStrategy      = orchestrator.StrategyChart
	// default buy-in in big blinds
	defaultBuyInBB = 100
)

// Config describes one table and the agents seated at it.
//
//	log_level      = "info"
//	seed           = 42
//	hands          = 500
//	action_timeout = "2s"
//
//	table {
//	  small_blind = 5
//	  big_blind   = 10
//	}
//
//	seat "alice" {
//	  strategy = "chart"
//	  buy_in   = 1000
//	}
type Config struct {
	LogLevel      string       `hcl:"log_level,optional"`
	Seed          int64        `hcl:"seed,optional"`
	Hands         int          `hcl:"hands,optional"`
	ActionTimeout string       `hcl:"action_timeout,optional"`
	Table         *TableConfig `hcl:"table,block"`
	Seats         []SeatConfig `hcl:"seat,block"`
}

// TableConfig holds the blind structure.
type TableConfig struct {
	SmallBlind int `hcl:"small_blind"`
	BigBlind   int `hcl:"big_blind"`
}

// SeatConfig is one player: a display name, a built-in strategy and a buy-in.
type SeatConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy,optional"`
	BuyIn    int    `hcl:"buy_in,optional"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{
		Table: &TableConfig{SmallBlind: game.DefaultBlinds.Small, BigBlind: game.DefaultBlinds.Big},
		Seats: []SeatConfig{
			{Name: "alice", Strategy: orchestrator.StrategyChart},
			{Name: "bob", Strategy: orchestrator.StrategyCall},
			{Name: "carol", Strategy: orchestrator.StrategyRandom},
			{Name: "dave", Strategy: orchestrator.StrategyChart},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads filename, falling back to Default when it does not exist.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file)
}

// Parse decodes HCL source. filename is used in diagnostics only.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file)
}

func decode(file *hcl.File) (*Config, error) {
	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.Hands == 0 {
		c.Hands = defaultHands
	}
	if c.ActionTimeout == "" {
		c.ActionTimeout = defaultActionTimeout
	}
	if c.Table == nil {
		c.Table = &TableConfig{SmallBlind: game.DefaultBlinds.Small, BigBlind: game.DefaultBlinds.Big}
	}
	for i := range c.Seats {
		if c.Seats[i].Strategy == "" {
			c.Seats[i].Strategy = defaultStrategy
		}
		if c.Seats[i].BuyIn == 0 {
			c.Seats[i].BuyIn = c.Table.BigBlind * defaultBuyInBB
		}
	}
}

// Validate checks the configuration is playable.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if c.Hands < 1 {
		return fmt.Errorf("hands must be positive, got %d", c.Hands)
	}
	if d, err := time.ParseDuration(c.ActionTimeout); err != nil || d < 0 {
		return fmt.Errorf("invalid action_timeout %q", c.ActionTimeout)
	}

	if c.Table.SmallBlind < 0 {
		return fmt.Errorf("small blind must not be negative")
	}
	if c.Table.BigBlind <= 0 {
		return fmt.Errorf("big blind must be positive")
	}
	if c.Table.SmallBlind > c.Table.BigBlind {
		return fmt.Errorf("small blind %d exceeds big blind %d", c.Table.SmallBlind, c.Table.BigBlind)
	}

	if len(c.Seats) < 2 {
		return fmt.Errorf("at least two seats must be configured, have %d", len(c.Seats))
	}
	seen := map[string]bool{}
	for _, seat := range c.Seats {
		if seen[seat.Name] {
			return fmt.Errorf("seat %s: configured twice", seat.Name)
		}
		seen[seat.Name] = true
		if !slices.Contains(orchestrator.Strategies, seat.Strategy) {
			return fmt.Errorf("seat %s: invalid strategy %s", seat.Name, seat.Strategy)
		}
		if seat.BuyIn <= 0 {
			return fmt.Errorf("seat %s: buy-in must be positive", seat.Name)
		}
	}
	return nil
}

// Blinds returns the configured blinds.
func (c *Config) Blinds() game.Blinds {
	return game.Blinds{Small: c.Table.SmallBlind, Big: c.Table.BigBlind}
}

// Timeout returns the parsed action timeout. Call Validate first.
func (c *Config) Timeout() time.Duration {
	d, _ := time.ParseDuration(c.ActionTimeout)
	return d
}

// Level returns the parsed log level, defaulting to info.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

package table

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/holdemcore/internal/game"
	"github.com/lox/holdemcore/internal/randutil"
)

// Option configures a Table during creation.
type Option func(*config)

type config struct {
	rng    *rand.Rand
	logger *log.Logger
	newID  func() (uuid.UUID, error)
	clock  quartz.Clock
	blinds game.Blinds
	// journal disabled
	noJournal bool
}

// WithRNG sets the random source for shuffles and odd chips.
func WithRNG(rng *rand.Rand) Option {
	return func(c *config) {
		c.rng = rng
	}
}

// WithSeed is WithRNG(randutil.New(seed)).
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.rng = randutil.New(seed)
	}
}

// WithLogger sets the logger. The default writes to stderr at info level.
func WithLogger(logger *log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithIDGenerator replaces uuid.NewV7 for new player ids.
func WithIDGenerator(fn func() (uuid.UUID, error)) Option {
	return func(c *config) {
		c.newID = fn
	}
}

// WithClock sets the clock used to timestamp journal entries.
func WithClock(clock quartz.Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithBlinds sets the table's initial blinds.
func WithBlinds(b game.Blinds) Option {
	return func(c *config) {
		c.blinds = b
	}
}

// WithoutJournal stops the table recording applied actions. Long simulations
// use it since every entry keeps the State it produced.
func WithoutJournal() Option {
	return func(c *config) {
		c.noJournal = true
	}
}

// Package statistics accumulates per-player results in big blinds.
package statistics

import (
	"fmt"
	"math"
	"slices"
)

// bigPotBB is the pot size, in big blinds, counted as a big pot.
const bigPotBB = 50

// Result is one player's outcome of one hand, in chips.
type Result struct {
	Net      int
	Showdown bool
	Pot      int
}

// Statistics tracks one player's (or one strategy's) results. The zero value
// is not usable; create with New.
type Statistics struct {
	BigBlind int

	Hands  int
	SumBB  float64
	SumBB2 float64   // sum of squares for variance
	Values []float64 // every result, for median and percentiles

	ShowdownWins    int
	NonShowdownWins int
	ShowdownBB      float64
	NonShowdownBB   float64
	AllBB           float64

	MaxPotChips int
	BigPots     int
	BigPotsBB   float64
}

// New creates Statistics measured in units of bigBlind chips.
func New(bigBlind int) *Statistics {
	return &Statistics{BigBlind: max(bigBlind, 1)}
}

// Add incorporates one hand.
func (s *Statistics) Add(r Result) {
	netBB := float64(r.Net) / float64(s.BigBlind)
	s.Hands++
	s.SumBB += netBB
	s.SumBB2 += netBB * netBB
	s.Values = append(s.Values, netBB)
	s.AllBB += netBB

	if r.Showdown {
		s.ShowdownBB += netBB
		if r.Net > 0 {
			s.ShowdownWins++
		}
	} else {
		s.NonShowdownBB += netBB
		if r.Net > 0 {
			s.NonShowdownWins++
		}
	}

	s.MaxPotChips = max(s.MaxPotChips, r.Pot)
	if float64(r.Pot)/float64(s.BigBlind) >= bigPotBB {
		s.BigPots++
		s.BigPotsBB += netBB
	}
}

// Merge folds other into s. Both must use the same big blind.
func (s *Statistics) Merge(other *Statistics) error {
	if other.BigBlind != s.BigBlind {
		return fmt.Errorf("cannot merge statistics with big blinds %d and %d", s.BigBlind, other.BigBlind)
	}
	s.Hands += other.Hands
	s.SumBB += other.SumBB
	s.SumBB2 += other.SumBB2
	s.Values = append(s.Values, other.Values...)
	s.ShowdownWins += other.ShowdownWins
	s.NonShowdownWins += other.NonShowdownWins
	s.ShowdownBB += other.ShowdownBB
	s.NonShowdownBB += other.NonShowdownBB
	s.AllBB += other.AllBB
	s.MaxPotChips = max(s.MaxPotChips, other.MaxPotChips)
	s.BigPots += other.BigPots
	s.BigPotsBB += other.BigPotsBB
	return nil
}

// Mean returns the mean result in big blinds per hand.
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// BB100 returns the win rate in big blinds per 100 hands.
func (s *Statistics) BB100() float64 {
	return s.Mean() * 100
}

// Variance returns the sample variance.
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return max(0, (s.SumBB2-float64(s.Hands)*mean*mean)/float64(s.Hands-1))
}

func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median result.
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the linearly interpolated value at p in [0, 1].
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	index := min(max(p, 0), 1) * float64(len(sorted)-1)
	lower := int(index)
	if lower+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[lower+1]*weight
}

// IsLedgerBalanced reports whether showdown and non-showdown results add up
// to the total.
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllBB-s.ShowdownBB-s.NonShowdownBB) <= 1e-6
}

// Validate checks the accumulated data is internally consistent.
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllBB=%.6f, ShowdownBB=%.6f, NonShowdownBB=%.6f",
			s.AllBB, s.ShowdownBB, s.NonShowdownBB)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)", len(s.Values), s.Hands)
	}
	if wins := s.ShowdownWins + s.NonShowdownWins; wins > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", wins, s.Hands)
	}
	return nil
}

package poker

import (
	"fmt"
	"slices"
)

// HandSize is the number of cards in a complete poker hand.
const HandSize = 5

// HandType enumerates the categories of poker hands ordered from weakest to strongest.
type HandType uint8

const (
	HighCard HandType = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns a human-readable hand category.
func (t HandType) String() string {
	switch t {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Hand is an evaluated hand. TypeCards are the cards that define the
// category, most significant first. OtherCards is the kicker pool, highest
// first; only the first HandSize-len(TypeCards) of them count.
type Hand struct {
	Type       HandType
	TypeCards  []Card
	OtherCards []Card
}

// Kickers returns the kickers that take part in comparisons.
func (h Hand) Kickers() []Card {
	n := min(max(HandSize-len(h.TypeCards), 0), len(h.OtherCards))
	return h.OtherCards[:n]
}

// Cards returns the five cards that make up the hand.
func (h Hand) Cards() []Card {
	return append(slices.Clone(h.TypeCards), h.Kickers()...)
}

// String returns e.g. "Two Pair: Kh Kd 7s 7c As".
func (h Hand) String() string {
	return fmt.Sprintf("%s: %s", h.Type, FormatCards(h.Cards()))
}

// Compare returns a negative number when a is weaker than b, zero when they
// tie, and a positive number when a is stronger.
func Compare(a, b Hand) int {
	if a.Type != b.Type {
		return int(a.Type) - int(b.Type)
	}
	if c := compareRanks(a.TypeCards, b.TypeCards); c != 0 {
		return c
	}
	return compareRanks(a.Kickers(), b.Kickers())
}

// Equal reports whether the two hands tie.
func (h Hand) Equal(other Hand) bool {
	return Compare(h, other) == 0
}

// Beats reports whether h is strictly stronger than other.
func (h Hand) Beats(other Hand) bool {
	return Compare(h, other) > 0
}

// compareRanks compares card lists position by position on rank alone.
func compareRanks(a, b []Card) int {
	for i := range min(len(a), len(b)) {
		if c := ByRank(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}

// Best returns the indexes of every hand that ties for the strongest.
func Best(hands []Hand) []int {
	var best []int
	for i, h := range hands {
		if len(best) == 0 {
			best = []int{i}
			continue
		}
		switch c := Compare(h, hands[best[0]]); {
		case c > 0:
			best = []int{i}
		case c == 0:
			best = append(best, i)
		}
	}
	return best
}

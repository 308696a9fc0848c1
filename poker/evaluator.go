package poker

import (
	"fmt"
	"slices"
)

// detector reports whether the rank-sorted cards contain its category.
type detector func(cards []Card) (Hand, bool)

// detectors in priority order, strongest category first.
var detectors = [...]detector{
	straightFlush,
	fourOfAKind,
	fullHouse,
	flush,
	straight,
	threeOfAKind,
	twoPair,
	pair,
	highCard,
}

// DetermineHand finds the best hand that can be made from the hole and board
// cards. At least HandSize cards are required.
func DetermineHand(hole, board []Card) (Hand, error) {
	cards := make([]Card, 0, len(hole)+len(board))
	cards = append(cards, hole...)
	cards = append(cards, board...)

	if len(cards) < HandSize {
		return Hand{}, fmt.Errorf("%w: have %d cards", ErrDegenerateShowdown, len(cards))
	}

	seen := make(map[Card]struct{}, len(cards))
	for _, c := range cards {
		if _, err := NewCard(c.Rank, c.Suit); err != nil {
			return Hand{}, err
		}
		if _, dup := seen[c]; dup {
			return Hand{}, fmt.Errorf("%w: %s appears twice", ErrInvalidCard, c)
		}
		seen[c] = struct{}{}
	}

	sortDesc(cards)

	for _, detect := range detectors {
		if h, ok := detect(cards); ok {
			return h, nil
		}
	}

	// highCard always matches
	panic("unreachable")
}

// sortDesc sorts by rank descending. Suit only breaks ties so the order is
// deterministic; it never affects strength.
func sortDesc(cards []Card) {
	slices.SortFunc(cards, func(a, b Card) int {
		if c := ByRankDesc(a, b); c != 0 {
			return c
		}
		return int(b.Suit) - int(a.Suit)
	})
}

func straightFlush(cards []Card) (Hand, bool) {
	var best Hand
	found := false
	for _, suited := range bySuit(cards) {
		if len(suited) < HandSize {
			continue
		}
		run, ok := straightRun(suited)
		if !ok {
			continue
		}
		h := Hand{Type: StraightFlush, TypeCards: run, OtherCards: without(cards, run)}
		if !found || h.Beats(best) {
			best, found = h, true
		}
	}
	return best, found
}

func fourOfAKind(cards []Card) (Hand, bool) {
	quads, rest, ok := matchN(cards, 4)
	if !ok {
		return Hand{}, false
	}
	return Hand{Type: FourOfAKind, TypeCards: quads, OtherCards: rest}, true
}

func fullHouse(cards []Card) (Hand, bool) {
	trips, rest, ok := matchN(cards, 3)
	if !ok {
		return Hand{}, false
	}
	pair, rest, ok := matchN(rest, 2)
	if !ok {
		return Hand{}, false
	}
	return Hand{Type: FullHouse, TypeCards: append(trips, pair...), OtherCards: rest}, true
}

func flush(cards []Card) (Hand, bool) {
	var best Hand
	found := false
	for _, suited := range bySuit(cards) {
		if len(suited) < HandSize {
			continue
		}
		top := suited[:HandSize]
		h := Hand{Type: Flush, TypeCards: top, OtherCards: without(cards, top)}
		if !found || h.Beats(best) {
			best, found = h, true
		}
	}
	return best, found
}

func straight(cards []Card) (Hand, bool) {
	run, ok := straightRun(cards)
	if !ok {
		return Hand{}, false
	}
	return Hand{Type: Straight, TypeCards: run, OtherCards: without(cards, run)}, true
}

func threeOfAKind(cards []Card) (Hand, bool) {
	trips, rest, ok := matchN(cards, 3)
	if !ok {
		return Hand{}, false
	}
	return Hand{Type: ThreeOfAKind, TypeCards: trips, OtherCards: rest}, true
}

func twoPair(cards []Card) (Hand, bool) {
	high, rest, ok := matchN(cards, 2)
	if !ok {
		return Hand{}, false
	}
	low, rest, ok := matchN(rest, 2)
	if !ok {
		return Hand{}, false
	}
	return Hand{Type: TwoPair, TypeCards: append(high, low...), OtherCards: rest}, true
}

func pair(cards []Card) (Hand, bool) {
	p, rest, ok := matchN(cards, 2)
	if !ok {
		return Hand{}, false
	}
	return Hand{Type: Pair, TypeCards: p, OtherCards: rest}, true
}

func highCard(cards []Card) (Hand, bool) {
	n := min(HandSize, len(cards))
	return Hand{Type: HighCard, TypeCards: slices.Clone(cards[:n])}, true
}

// matchN finds the first run of n equal ranks in rank-sorted cards. It
// returns the run and the remaining cards, both in order.
func matchN(cards []Card, n int) (match, rest []Card, ok bool) {
	for i := 0; i+n <= len(cards); i++ {
		run := cards[i : i+n]
		if run[0].Rank != run[n-1].Rank {
			continue
		}
		match = slices.Clone(run)
		rest = make([]Card, 0, len(cards)-n)
		rest = append(rest, cards[:i]...)
		rest = append(rest, cards[i+n:]...)
		return match, rest, true
	}
	return nil, nil, false
}

// straightRun returns the highest five consecutive ranks in rank-sorted
// cards. One card represents each rank: the first seen, so the result is
// stable for a given input order.
func straightRun(cards []Card) ([]Card, bool) {
	reps := make([]Card, 0, len(cards))
	for _, c := range cards {
		if len(reps) == 0 || reps[len(reps)-1].Rank != c.Rank {
			reps = append(reps, c)
		}
	}

	for i := 0; i+HandSize <= len(reps); i++ {
		consecutive := true
		for j := 1; j < HandSize; j++ {
			if reps[i+j].Rank != reps[i].Rank.Add(-j) {
				consecutive = false
				break
			}
		}
		if consecutive {
			return slices.Clone(reps[i : i+HandSize]), true
		}
	}
	return nil, false
}

// bySuit buckets rank-sorted cards by suit, keeping their order.
func bySuit(cards []Card) [len(Suits)][]Card {
	var buckets [len(Suits)][]Card
	for _, c := range cards {
		buckets[c.Suit] = append(buckets[c.Suit], c)
	}
	return buckets
}

// without returns cards minus the given ones, preserving order.
func without(cards, remove []Card) []Card {
	rest := make([]Card, 0, len(cards))
	for _, c := range cards {
		if !slices.Contains(remove, c) {
			rest = append(rest, c)
		}
	}
	return rest
}

package poker

// HoleCardCategory is a coarse preflop strength bucket for two hole cards.
type HoleCardCategory string

const (
	CategoryPremium HoleCardCategory = "Premium"
	CategoryStrong  HoleCardCategory = "Strong"
	CategoryMedium  HoleCardCategory = "Medium"
	CategoryWeak    HoleCardCategory = "Weak"
	CategoryTrash   HoleCardCategory = "Trash"
	CategoryUnknown HoleCardCategory = "Unknown"
)

// CategorizeHoleCards buckets a starting hand:
// Premium (JJ+, AK), Strong (TT, AQ, AJ), Medium (77-99, suited broadway),
// Weak (22-66, suited connectors and one-gappers), Trash otherwise.
func CategorizeHoleCards(a, b Card) HoleCardCategory {
	if !a.Rank.Valid() || !b.Rank.Valid() || a == b {
		return CategoryUnknown
	}

	low, high := a.Rank, b.Rank
	if low > high {
		low, high = high, low
	}
	paired := low == high
	suited := a.Suit == b.Suit

	switch {
	case paired && low >= Jack, low == King && high == Ace:
		return CategoryPremium
	case paired && low == Ten, high == Ace && (low == Queen || low == Jack):
		return CategoryStrong
	case paired && low >= Seven, suited && low >= Ten:
		return CategoryMedium
	case paired, suited && high-low <= 2:
		return CategoryWeak
	}
	return CategoryTrash
}

// CategorizeHole categorizes a dealt hole. Anything other than two cards is
// CategoryUnknown.
func CategorizeHole(hole []Card) HoleCardCategory {
	if len(hole) != 2 {
		return CategoryUnknown
	}
	return CategorizeHoleCards(hole[0], hole[1])
}

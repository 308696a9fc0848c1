package poker

import (
	"fmt"
	"strings"
)

// Suit represents a card suit. Suits carry no strength.
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Suits lists every suit in a fixed order.
var Suits = [...]Suit{Clubs, Diamonds, Hearts, Spades}

// String returns the single-letter suit token.
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "c"
	case Diamonds:
		return "d"
	case Hearts:
		return "h"
	case Spades:
		return "s"
	default:
		return "?"
	}
}

// Symbol returns the unicode suit symbol.
func (s Suit) Symbol() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// IsRed returns true for hearts and diamonds
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool {
	return s <= Spades
}

// Rank is a card rank from Two (2) to Ace (14). Aces are always high.
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Ranks lists every rank from Two to Ace.
var Ranks = [...]Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Valid reports whether r is within Two..Ace.
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Add returns the rank n steps above r (n may be negative). The result may be
// outside Two..Ace; callers check Valid when that matters.
func (r Rank) Add(n int) Rank {
	return Rank(int(r) + n)
}

// String returns the rank token, using "T" for ten.
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Nine:
		return string(rune('0' + r))
	case r == Ten:
		return "T"
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// Card is a playing card. Two cards are equal only when both rank and suit
// match; strength comparisons use the rank alone (see ByRank).
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard validates rank and suit and returns the card.
func NewCard(rank Rank, suit Suit) (Card, error) {
	if !rank.Valid() {
		return Card{}, fmt.Errorf("%w: rank %d", ErrInvalidCard, rank)
	}
	if !suit.Valid() {
		return Card{}, fmt.Errorf("%w: suit %d", ErrInvalidCard, suit)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// MustParseCard is ParseCard that panics on error. Intended for tests and literals.
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCard parses a card such as "As", "Td", "10h" or "Q♠".
func ParseCard(s string) (Card, error) {
	runes := []rune(s)
	if len(runes) < 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	suit, err := parseSuit(string(runes[len(runes)-1]))
	if err != nil {
		return Card{}, fmt.Errorf("%w: %q", err, s)
	}
	rank, err := parseRank(string(runes[:len(runes)-1]))
	if err != nil {
		return Card{}, fmt.Errorf("%w: %q", err, s)
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// ParseCards parses a list of card tokens. Tokens may also be given as one
// space or comma separated string.
func ParseCards(tokens ...string) ([]Card, error) {
	var cards []Card
	for _, tok := range tokens {
		for _, field := range strings.FieldsFunc(tok, func(r rune) bool { return r == ' ' || r == ',' }) {
			c, err := ParseCard(field)
			if err != nil {
				return nil, err
			}
			cards = append(cards, c)
		}
	}
	return cards, nil
}

// MustParseCards is ParseCards that panics on error.
func MustParseCards(tokens ...string) []Card {
	cards, err := ParseCards(tokens...)
	if err != nil {
		panic(err)
	}
	return cards
}

func parseSuit(tok string) (Suit, error) {
	switch tok {
	case "c", "C", "♣":
		return Clubs, nil
	case "d", "D", "♦":
		return Diamonds, nil
	case "h", "H", "♥":
		return Hearts, nil
	case "s", "S", "♠":
		return Spades, nil
	}
	return 0, fmt.Errorf("%w: unknown suit %q", ErrInvalidCard, tok)
}

func parseRank(tok string) (Rank, error) {
	switch strings.ToUpper(tok) {
	case "2":
		return Two, nil
	case "3":
		return Three, nil
	case "4":
		return Four, nil
	case "5":
		return Five, nil
	case "6":
		return Six, nil
	case "7":
		return Seven, nil
	case "8":
		return Eight, nil
	case "9":
		return Nine, nil
	case "T", "10":
		return Ten, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	case "A":
		return Ace, nil
	}
	return 0, fmt.Errorf("%w: unknown rank %q", ErrInvalidCard, tok)
}

// String returns the two-character form, e.g. "As".
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Less orders cards by rank only.
func (c Card) Less(other Card) bool {
	return c.Rank < other.Rank
}

// ByRank compares two cards by rank only, for use with slices.SortFunc.
func ByRank(a, b Card) int {
	return int(a.Rank) - int(b.Rank)
}

// ByRankDesc is ByRank reversed.
func ByRankDesc(a, b Card) int {
	return int(b.Rank) - int(a.Rank)
}

// FormatCards joins cards with spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

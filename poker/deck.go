package poker

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// DeckSize is the number of cards in a full deck.
const DeckSize = 52

// Deck is an ordered, immutable sequence of the cards not yet drawn.
// Draw returns a new Deck, so a Deck value can be shared freely.
type Deck struct {
	cards []Card
}

// NewDeck creates a new shuffled deck with explicit RNG. A nil rng falls back
// to the global math/rand/v2 source.
func NewDeck(rng *rand.Rand) Deck {
	d := NewOrderedDeck()

	// Fisher-Yates
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if rng != nil {
			j = rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
	return d
}

// NewOrderedDeck returns all 52 Rank×Suit combinations, unshuffled.
func NewOrderedDeck() Deck {
	cards := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}
	return Deck{cards: cards}
}

// DeckOf builds a deck that will deal exactly the given cards in order.
func DeckOf(cards ...Card) Deck {
	return Deck{cards: slices.Clone(cards)}
}

// Draw removes the first n cards, returning them and the remaining deck.
func (d Deck) Draw(n int) ([]Card, Deck, error) {
	if n < 0 {
		return nil, d, fmt.Errorf("draw %d cards: negative count", n)
	}
	if n > len(d.cards) {
		return nil, d, fmt.Errorf("%w: draw %d cards, %d remaining", ErrDeckExhausted, n, len(d.cards))
	}
	drawn := slices.Clone(d.cards[:n])
	return drawn, Deck{cards: d.cards[n:]}, nil
}

// Len returns the number of cards remaining.
func (d Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards in deal order.
func (d Deck) Cards() []Card {
	return slices.Clone(d.cards)
}

// Contains reports whether c is still in the deck.
func (d Deck) Contains(c Card) bool {
	return slices.Contains(d.cards, c)
}

// String returns the remaining cards separated by spaces.
func (d Deck) String() string {
	return FormatCards(d.cards)
}

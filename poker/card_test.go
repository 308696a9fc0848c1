package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Card
	}{
		{"As", Card{Rank: Ace, Suit: Spades}},
		{"2h", Card{Rank: Two, Suit: Hearts}},
		{"Kd", Card{Rank: King, Suit: Diamonds}},
		{"Tc", Card{Rank: Ten, Suit: Clubs}},
		{"10c", Card{Rank: Ten, Suit: Clubs}},
		{"qS", Card{Rank: Queen, Suit: Spades}},
		{"J♥", Card{Rank: Jack, Suit: Hearts}},
		{"9♦", Card{Rank: Nine, Suit: Diamonds}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseCard(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCardInvalid(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "A", "1s", "Ax", "11h", "XX", "As "} {
		_, err := ParseCard(input)
		assert.ErrorIs(t, err, ErrInvalidCard, "input %q", input)
	}
}

func TestParseCards(t *testing.T) {
	t.Parallel()

	cards, err := ParseCards("As Kd", "2c,3h")
	require.NoError(t, err)
	assert.Equal(t, "As Kd 2c 3h", FormatCards(cards))

	_, err = ParseCards("As", "Zz")
	assert.ErrorIs(t, err, ErrInvalidCard)

	assert.Panics(t, func() { MustParseCards("nope") })
}

func TestNewCard(t *testing.T) {
	t.Parallel()

	c, err := NewCard(Ace, Clubs)
	require.NoError(t, err)
	assert.Equal(t, "Ac", c.String())

	_, err = NewCard(Rank(15), Clubs)
	assert.ErrorIs(t, err, ErrInvalidCard)
	_, err = NewCard(Rank(1), Clubs)
	assert.ErrorIs(t, err, ErrInvalidCard)
	_, err = NewCard(Ace, Suit(4))
	assert.ErrorIs(t, err, ErrInvalidCard)
}

func TestCardStringRoundTrip(t *testing.T) {
	t.Parallel()

	for _, c := range NewOrderedDeck().Cards() {
		parsed, err := ParseCard(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
}

func TestCardOrderingIgnoresSuit(t *testing.T) {
	t.Parallel()

	ks := MustParseCard("Ks")
	kh := MustParseCard("Kh")
	as := MustParseCard("As")

	// equal strength, distinct identity
	assert.Zero(t, ByRank(ks, kh))
	assert.NotEqual(t, ks, kh)
	assert.False(t, ks.Less(kh))
	assert.False(t, kh.Less(ks))

	assert.True(t, ks.Less(as))
	assert.Negative(t, ByRank(ks, as))
	assert.Positive(t, ByRankDesc(ks, as))

	set := map[Card]bool{ks: true}
	assert.False(t, set[kh])
}

func TestSuitHelpers(t *testing.T) {
	t.Parallel()

	assert.True(t, Hearts.IsRed())
	assert.True(t, Diamonds.IsRed())
	assert.False(t, Spades.IsRed())
	assert.Equal(t, "♣", Clubs.Symbol())
	assert.Equal(t, "?", Suit(9).String())
}

func TestRankAdd(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Ace, King.Add(1))
	assert.Equal(t, Two, Three.Add(-1))
	assert.False(t, Ace.Add(1).Valid())
	assert.False(t, Two.Add(-1).Valid())
}

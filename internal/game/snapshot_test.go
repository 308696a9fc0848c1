package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotShape(t *testing.T) {
	t.Parallel()

	s, ids := seatPlayers(t, 2, 100)
	s = apply(t, s, testRNG(), StartGameAction(Blinds{}), PhaseAction(Deal), PhaseAction(DealFlop))

	raw, err := json.Marshal(s)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	for _, key := range []string{"bets", "blinds", "board", "dealer_position", "holes", "in_play", "players", "pot", "stacks", "to_act", "winners"} {
		assert.Contains(t, got, key)
	}
	assert.NotContains(t, got, "deck")

	snap := s.Snapshot()
	assert.Equal(t, ids[0].String(), snap.Players[0])
	assert.Equal(t, 15, snap.Pot)
	assert.Equal(t, Blinds{Small: 5, Big: 10}, snap.Blinds)
	assert.Len(t, snap.Board, 3)
	assert.Len(t, snap.Holes[ids[1].String()], 2)
	assert.Equal(t, s.Board[0].Rank.String(), snap.Board[0].Rank)
	assert.NotNil(t, snap.Winners)

	var blinds map[string]int
	require.NoError(t, json.Unmarshal(mustJSON(t, got["blinds"]), &blinds))
	assert.Equal(t, map[string]int{"small": 5, "big": 10}, blinds)
}

func TestSnapshotIsDetached(t *testing.T) {
	t.Parallel()

	s, ids := seatPlayers(t, 2, 100)
	snap := s.Snapshot()
	snap.Stacks[ids[0].String()] = 0
	snap.Players[0] = "x"
	assert.Equal(t, 100, s.Stacks[ids[0]])
	assert.Equal(t, ids[0], s.Players[0])
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

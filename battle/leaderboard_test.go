package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zeroPlayers(userIDs ...string) map[string]PlayerStanding {
	players := make(map[string]PlayerStanding, len(userIDs))
	for _, id := range userIDs {
		players[id] = PlayerStanding{}
	}
	return players
}

func TestUpdateLeaderboardAdditivity(t *testing.T) {
	order := []string{"alice", "bob"}

	split := zeroPlayers("alice", "bob")
	split = updateLeaderboard(split, order, "alice", 3)
	split = updateLeaderboard(split, order, "alice", 4)

	single := zeroPlayers("alice", "bob")
	single = updateLeaderboard(single, order, "alice", 7)

	assert.Equal(t, single["alice"].Score, split["alice"].Score)
	assert.Equal(t, 7.0, split["alice"].Score)
}

func TestUpdateLeaderboardDenseRanks(t *testing.T) {
	order := []string{"a", "b", "c", "d"}
	players := zeroPlayers(order...)

	players = updateLeaderboard(players, order, "b", 10)
	players = updateLeaderboard(players, order, "c", 5)
	players = updateLeaderboard(players, order, "d", 7)

	seen := map[int]bool{}
	nonzero := 0
	for _, standing := range players {
		if standing.Score != 0 {
			nonzero++
			require.NotNil(t, standing.Rank)
			assert.False(t, seen[*standing.Rank], "duplicate rank %d", *standing.Rank)
			seen[*standing.Rank] = true
			assert.GreaterOrEqual(t, *standing.Rank, 1)
			assert.LessOrEqual(t, *standing.Rank, nonzero+1)
		}
	}
	for rank := 1; rank <= nonzero; rank++ {
		assert.True(t, seen[rank], "missing rank %d", rank)
	}

	require.NotNil(t, players["b"].Rank)
	assert.Equal(t, 1, *players["b"].Rank)
	require.NotNil(t, players["d"].Rank)
	assert.Equal(t, 2, *players["d"].Rank)
	require.NotNil(t, players["c"].Rank)
	assert.Equal(t, 3, *players["c"].Rank)
}

func TestUpdateLeaderboardZeroScoreKeepsNilRank(t *testing.T) {
	order := []string{"alice", "bob"}
	players := zeroPlayers(order...)

	players = updateLeaderboard(players, order, "alice", 5)

	assert.Nil(t, players["bob"].Rank)
	require.NotNil(t, players["alice"].Rank)
	assert.Equal(t, 1, *players["alice"].Rank)
}

func TestUpdateLeaderboardTieBreaksByJoinOrder(t *testing.T) {
	order := []string{"first", "second", "third"}
	players := zeroPlayers(order...)

	players = updateLeaderboard(players, order, "third", 5)
	players = updateLeaderboard(players, order, "first", 5)

	// equal scores: the earlier joiner outranks the later one
	require.NotNil(t, players["first"].Rank)
	require.NotNil(t, players["third"].Rank)
	assert.Equal(t, 1, *players["first"].Rank)
	assert.Equal(t, 2, *players["third"].Rank)
}

func TestUpdateLeaderboardDoesNotMutateInput(t *testing.T) {
	order := []string{"alice"}
	players := zeroPlayers(order...)

	_ = updateLeaderboard(players, order, "alice", 5)

	assert.Equal(t, 0.0, players["alice"].Score)
	assert.Nil(t, players["alice"].Rank)
}

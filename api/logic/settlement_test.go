/* settlement_test.go
 * Contains unit tests for point settlement logic
 * Authors: Zachary Bower
 */

package logic

import (
	"testing"

	"league-bot/api/store"

	"github.com/stretchr/testify/assert"
)

func fourPlayerMatch(winner string) store.Match {
	match := store.Match{
		GuildID:      "guild_1",
		WinnerUserID: winner,
	}
	for _, id := range []string{"a", "b", "c", "d"} {
		match.Players = append(match.Players, store.MatchPlayer{UserID: id})
	}
	return match
}

func TestSettlementDeltas_Win(t *testing.T) {
	config := store.Config{PointsGained: 10, PointsLost: 5, PointsPerDraw: 5}
	deltas := SettlementDeltas(fourPlayerMatch("a"), config)

	assert.Equal(t, map[string]int{
		"a": 10,
		"b": -5,
		"c": -5,
		"d": -5,
	}, deltas)
}

func TestSettlementDeltas_Draw(t *testing.T) {
	config := store.Config{PointsGained: 10, PointsLost: 5, PointsPerDraw: 3}
	deltas := SettlementDeltas(fourPlayerMatch(""), config)

	assert.Equal(t, map[string]int{
		"a": 3,
		"b": 3,
		"c": 3,
		"d": 3,
	}, deltas)
}

func TestSettlementDeltas_NetDelta(t *testing.T) {
	config := store.Config{PointsGained: 10, PointsLost: 5}
	deltas := SettlementDeltas(fourPlayerMatch("c"), config)

	total := 0
	for _, delta := range deltas {
		total += delta
	}
	// One winner at +10, three losers at -5 each
	assert.Equal(t, -5, total)
}

func TestDisplayPoints(t *testing.T) {
	assert.Equal(t, 100, DisplayPoints(0, 100))
	assert.Equal(t, 110, DisplayPoints(10, 100))
	// Display offset may still leave a negative total visible
	assert.Equal(t, -20, DisplayPoints(-120, 100))
}

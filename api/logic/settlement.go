/* settlement.go
 * Contains the point settlement logic applied when a match is finalized
 * Authors: Zachary Bower
 */

package logic

import (
	"league-bot/api/store"
)

// SettlementDeltas computes the per-player point deltas for a finalized match.
// For a win the winner gains pointsGained and every other listed player loses
// pointsLost; for a draw every listed player gains pointsPerDraw. No floor is
// applied, so stored totals may go negative. The caller is responsible for
// applying these deltas exactly once per match
// Preconditions: Receives the Match and the guild's Config
// Postconditions: Returns a map of user id to signed point delta
func SettlementDeltas(match store.Match, config store.Config) map[string]int {
	deltas := make(map[string]int, len(match.Players))

	for _, player := range match.Players {
		switch {
		case match.WinnerUserID == "":
			deltas[player.UserID] = config.PointsPerDraw
		case player.UserID == match.WinnerUserID:
			deltas[player.UserID] = config.PointsGained
		default:
			deltas[player.UserID] = -config.PointsLost
		}
	}
	return deltas
}

// DisplayPoints offsets a stored point total by the guild's base points. The offset
// only ever affects what is shown, never what is stored
func DisplayPoints(points int, basePoints int) int {
	return points + basePoints
}

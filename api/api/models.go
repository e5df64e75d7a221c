/* models.go
 * Contains the result structs returned by the API methods
 * Authors: Zachary Bower
 */

package api

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"league-bot/api/store"
)

// DraftPlayer is one player entry on a match draft: the user and the deck their profile
// had selected when the match was logged, resolved for display
type DraftPlayer struct {
	UserID string
	Deck   *store.Deck
}

// MatchDraft is a match that has been validated and given an id, but not yet persisted.
// The surface sends the confirmation message referencing the id first and then persists
// the draft together with the resulting message id
type MatchDraft struct {
	ID           primitive.ObjectID
	GuildID      string
	SeasonID     primitive.ObjectID
	WinnerUserID string
	IsWin        bool
	Players      []DraftPlayer
}

// MatchUpdate is the outcome of a confirmation: the match as stored after the update,
// and whether this particular call performed the finalizing transition (and therefore
// the one point settlement)
type MatchUpdate struct {
	Match     store.Match
	Finalized bool
}

// SeasonInfo bundles a season with its match count for display
type SeasonInfo struct {
	Season        store.Season
	MatchesPlayed int64
}

// LeaderboardEntry is one row of the guild leaderboard. Points carries the display
// offset already applied
type LeaderboardEntry struct {
	UserID string
	Points int
	Games  int64
}

// ProfileSummary describes one player's standing for display. Points carries the
// display offset already applied
type ProfileSummary struct {
	UserID          string
	Points          int
	CurrentDeck     *store.Deck
	GamesThisSeason int64
}

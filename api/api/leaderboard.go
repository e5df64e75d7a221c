/* leaderboard.go
 * Contains the leaderboard and profile summary queries. Stored point totals are offset
 * by the guild's basePoints for display only; the cutoff for appearing on the
 * leaderboard is the configured minimum games in the open season
 * Authors: Zachary Bower
 */

package api

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"league-bot/api/logic"
	"league-bot/api/store"
)

// Leaderboard builds the guild leaderboard for the open season: every profile with at
// least minimumGamesPerPlayer finalized matches, sorted by points descending
// Postconditions: Returns slice of LeaderboardEntries, or ErrNoActiveSeason, or an
// infrastructure error
func (a *API) Leaderboard(guildID string) ([]LeaderboardEntry, error) {
	season, err := a.Store.OpenSeason(guildID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoActiveSeason
		}
		return nil, err
	}

	config, err := a.Store.UpsertConfig(guildID, store.ConfigPatch{})
	if err != nil {
		return nil, err
	}

	profiles, err := a.Store.ProfilesByGuild(guildID)
	if err != nil {
		return nil, err
	}

	var entries []LeaderboardEntry
	for _, profile := range profiles {
		games, err := a.Store.CountConfirmedMatches(guildID, season.ID, profile.UserID)
		if err != nil {
			return nil, err
		}
		if games < int64(config.MinimumGamesPerPlayer) {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			UserID: profile.UserID,
			Points: logic.DisplayPoints(profile.Points, config.BasePoints),
			Games:  games,
		})
	}
	return entries, nil
}

// ProfileSummary describes one player's standing: display points, current deck and
// finalized games in the open season (zero when no season is open)
// Postconditions: Returns the ProfileSummary, or an infrastructure error
func (a *API) ProfileSummary(guildID string, userID string) (ProfileSummary, error) {
	profile, err := a.Store.FetchProfile(guildID, userID)
	if err != nil {
		return ProfileSummary{}, err
	}

	config, err := a.Store.UpsertConfig(guildID, store.ConfigPatch{})
	if err != nil {
		return ProfileSummary{}, err
	}

	summary := ProfileSummary{
		UserID: userID,
		Points: logic.DisplayPoints(profile.Points, config.BasePoints),
	}

	if profile.CurrentDeck != nil {
		deck, err := a.Store.DeckByID(*profile.CurrentDeck)
		if err == nil {
			summary.CurrentDeck = &deck
		} else if !errors.Is(err, mongo.ErrNoDocuments) {
			return ProfileSummary{}, err
		}
	}

	season, err := a.Store.OpenSeason(guildID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return summary, nil
		}
		return ProfileSummary{}, err
	}

	games, err := a.Store.CountConfirmedMatches(guildID, season.ID, userID)
	if err != nil {
		return ProfileSummary{}, err
	}
	summary.GamesThisSeason = games

	return summary, nil
}

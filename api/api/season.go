/* season.go
 * Contains the season controller. A guild may accumulate any number of closed seasons
 * but never more than one open one; Start, End and Reopen are the only transitions
 * Authors: Zachary Bower
 */

package api

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"league-bot/api/store"
)

// StartSeason opens a new season for the guild
// Preconditions: Receives the guild id and the new season's name
// Postconditions: Returns the created Season, or ErrSeasonAlreadyOpen if one is open,
// ErrSeasonNameTaken if the name is used, or an infrastructure error
func (a *API) StartSeason(guildID string, name string) (store.Season, error) {
	_, err := a.Store.OpenSeason(guildID)
	if err == nil {
		return store.Season{}, ErrSeasonAlreadyOpen
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return store.Season{}, err
	}

	_, err = a.Store.SeasonByName(guildID, name)
	if err == nil {
		return store.Season{}, ErrSeasonNameTaken
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return store.Season{}, err
	}

	return a.Store.CreateSeason(guildID, name)
}

// EndSeason closes the guild's open season. The interactive are-you-sure step happens in
// the surface before this is called
// Postconditions: Returns the closed Season, or ErrNoActiveSeason, or an infrastructure error
func (a *API) EndSeason(guildID string) (store.Season, error) {
	season, err := a.Store.OpenSeason(guildID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return store.Season{}, ErrNoActiveSeason
		}
		return store.Season{}, err
	}

	closed, err := a.Store.CloseSeason(season.ID, time.Now().UTC())
	if err != nil {
		// Lost a race with another close
		if errors.Is(err, mongo.ErrNoDocuments) {
			return store.Season{}, ErrNoActiveSeason
		}
		return store.Season{}, err
	}
	return closed, nil
}

// ReopenSeason clears the end date of a closed season, permitted only while no season
// is open. The interactive are-you-sure step happens in the surface before this is called
// Postconditions: Returns the reopened Season, or ErrSeasonAlreadyOpen, ErrSeasonNotFound,
// ErrSeasonNotClosed, or an infrastructure error
func (a *API) ReopenSeason(guildID string, name string) (store.Season, error) {
	_, err := a.Store.OpenSeason(guildID)
	if err == nil {
		return store.Season{}, ErrSeasonAlreadyOpen
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return store.Season{}, err
	}

	season, err := a.Store.SeasonByName(guildID, name)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return store.Season{}, ErrSeasonNotFound
		}
		return store.Season{}, err
	}
	if season.Open() {
		return store.Season{}, ErrSeasonNotClosed
	}

	reopened, err := a.Store.ReopenSeason(season.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return store.Season{}, ErrSeasonNotClosed
		}
		return store.Season{}, err
	}
	return reopened, nil
}

// SeasonInfo fetches a season by name, or the open season when no name is given, along
// with how many matches have been logged against it
// Postconditions: Returns the SeasonInfo, or ErrNoActiveSeason / ErrSeasonNotFound, or an
// infrastructure error
func (a *API) SeasonInfo(guildID string, name string) (SeasonInfo, error) {
	var season store.Season
	var err error

	if name == "" {
		season, err = a.Store.OpenSeason(guildID)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return SeasonInfo{}, ErrNoActiveSeason
		}
	} else {
		season, err = a.Store.SeasonByName(guildID, name)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return SeasonInfo{}, ErrSeasonNotFound
		}
	}
	if err != nil {
		return SeasonInfo{}, err
	}

	matches, err := a.Store.CountMatchesBySeason(season.ID)
	if err != nil {
		return SeasonInfo{}, err
	}

	return SeasonInfo{Season: season, MatchesPlayed: matches}, nil
}

// Seasons lists all of the guild's seasons, newest first
func (a *API) Seasons(guildID string) ([]store.Season, error) {
	return a.Store.ListSeasons(guildID)
}

/* api.go
 * This file contains the API struct and constructor for the league data layer. The public
 * methods are split across the per-concern files of this package: match.go holds the match
 * lifecycle engine, and season.go, config.go, deck.go and leaderboard.go hold the
 * season, config, deck and leaderboard controllers. For consistent results, functions
 * should only be called through this package, not the store sub package directly
 * Authors: Zachary Bower
 */

package api

import (
	"fmt"

	"league-bot/api/store"
)

// API provides methods for interacting with the league bot data layer
type API struct {
	Store store.Interface
}

// NewAPI creates a new API instance backed by a mongo store
// Preconditions: Receives strings containing the database name and the mongo connection URI
// Postconditions: Returns pointer to the API, or an error if the store could not be initialized
func NewAPI(dbName string, mongoURI string) (*API, error) {
	if dbName == "" {
		return nil, fmt.Errorf("dbName is required")
	}

	s, err := store.NewStore(dbName, mongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	return &API{
		Store: s,
	}, nil
}

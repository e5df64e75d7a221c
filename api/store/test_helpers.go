/* test_helpers.go
 * Contains test helper functions and sample data builders for store package tests
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateTestStore creates a Store connected to a test database.
// Returns the store and a cleanup function.
func CreateTestStore(mongoURI string) (*Store, func(), error) {
	store, err := NewStore("test_league", mongoURI)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if store.Client != nil {
			// Drop test database
			store.Database.Drop(context.TODO())
			// Disconnect client
			store.Client.Disconnect(context.TODO())
		}
	}

	return store, cleanup, nil
}

// CreateSampleMatch creates a four player match for testing. The logger is the first
// player and the winner when isWin is true
func CreateSampleMatch(guildID string, seasonID primitive.ObjectID, playerIDs []string, isWin bool) Match {
	match := Match{
		ID:        primitive.NewObjectID(),
		GuildID:   guildID,
		ChannelID: "channel_1",
		MessageID: primitive.NewObjectID().Hex(),
		Season:    seasonID,
	}
	if isWin {
		match.WinnerUserID = playerIDs[0]
	}
	for _, id := range playerIDs {
		match.Players = append(match.Players, MatchPlayer{UserID: id})
	}
	return match
}

// CreateSampleSeason creates an open season for testing
func CreateSampleSeason(guildID string, name string) Season {
	return Season{
		ID:        primitive.NewObjectID(),
		GuildID:   guildID,
		Name:      name,
		StartDate: time.Now().UTC(),
	}
}

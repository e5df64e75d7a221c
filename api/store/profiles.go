/* profiles.go
 * Contains the methods for interacting with the profiles collection. Profiles are created
 * lazily: any read goes through an upsert so a user's first appearance in a guild creates
 * their record with zero points and no selected deck
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FetchProfile fetches the per-(guild, user) profile, creating it with zero points if it
// does not exist yet
// Preconditions: Receives strings containing the guild id and user id
// Postconditions: Returns the Profile, or an error if it occurs
func (s *Store) FetchProfile(guildID string, userID string) (Profile, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var profile Profile
	err := s.Collections.Profiles.FindOneAndUpdate(context.TODO(),
		bson.M{"guildId": guildID, "userId": userID},
		bson.M{"$setOnInsert": bson.M{"points": 0}},
		opts,
	).Decode(&profile)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return profile, nil
}

// SetCurrentDeck sets or clears the user's currently selected deck. A nil deck id clears it
func (s *Store) SetCurrentDeck(guildID string, userID string, deckID *primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"currentDeck": deckID}}
	if deckID == nil {
		update = bson.M{"$unset": bson.M{"currentDeck": ""}}
	}

	opts := options.Update().SetUpsert(true)
	_, err := s.Collections.Profiles.UpdateOne(context.TODO(),
		bson.M{"guildId": guildID, "userId": userID},
		update,
		opts,
	)
	if err != nil {
		return fmt.Errorf("failed to set current deck: %w", err)
	}
	return nil
}

// ClearCurrentDeck removes a deleted deck from every profile that has it selected
func (s *Store) ClearCurrentDeck(deckID primitive.ObjectID) error {
	_, err := s.Collections.Profiles.UpdateMany(context.TODO(),
		bson.M{"currentDeck": deckID},
		bson.M{"$unset": bson.M{"currentDeck": ""}},
	)
	if err != nil {
		return fmt.Errorf("failed to clear current deck references: %w", err)
	}
	return nil
}

// AdjustPoints applies a point delta to a user's profile as part of match settlement.
// The update is an atomic $inc with upsert so settlement for a player without a profile
// document still lands. Totals are allowed to go negative; basePoints is a display
// offset only and is never folded into the stored value
func (s *Store) AdjustPoints(guildID string, userID string, delta int) error {
	opts := options.Update().SetUpsert(true)
	_, err := s.Collections.Profiles.UpdateOne(context.TODO(),
		bson.M{"guildId": guildID, "userId": userID},
		bson.M{"$inc": bson.M{"points": delta}},
		opts,
	)
	if err != nil {
		return fmt.Errorf("failed to adjust points: %w", err)
	}
	return nil
}

// ProfilesByGuild fetches all profiles for a guild sorted by points descending,
// used for leaderboard generation
func (s *Store) ProfilesByGuild(guildID string) ([]Profile, error) {
	opts := options.Find().SetSort(bson.D{{Key: "points", Value: -1}})

	cursor, err := s.Collections.Profiles.Find(context.TODO(), bson.M{"guildId": guildID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching profiles from db: %w", err)
	}

	var profiles []Profile
	if err = cursor.All(context.TODO(), &profiles); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of profiles: %w", err)
	}
	return profiles, nil
}

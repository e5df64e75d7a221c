/* seasons.go
 * Contains the methods for interacting with the seasons collection
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OpenSeason fetches the guild's currently open season, identified by the absence of an endDate
// Preconditions: Receives string containing the guild id
// Postconditions: Returns the open Season, mongo.ErrNoDocuments if no season is open, or another error if it occurs
func (s *Store) OpenSeason(guildID string) (Season, error) {
	var season Season
	err := s.Collections.Seasons.FindOne(context.TODO(), bson.M{
		"guildId": guildID,
		"endDate": bson.M{"$exists": false},
	}).Decode(&season)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Season{}, err
		}
		return Season{}, fmt.Errorf("error fetching open season from db: %w", err)
	}
	return season, nil
}

// SeasonByName fetches a season by its per-guild unique name
// Preconditions: Receives strings containing the guild id and season name
// Postconditions: Returns the Season, mongo.ErrNoDocuments if absent, or another error if it occurs
func (s *Store) SeasonByName(guildID string, name string) (Season, error) {
	var season Season
	err := s.Collections.Seasons.FindOne(context.TODO(), bson.M{
		"guildId": guildID,
		"name":    name,
	}).Decode(&season)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Season{}, err
		}
		return Season{}, fmt.Errorf("error fetching season from db: %w", err)
	}
	return season, nil
}

// CreateSeason inserts a new open season with the start date set to now. Uniqueness of the
// name and the single-open-season invariant are checked by the caller before insertion
// Preconditions: Receives strings containing the guild id and season name
// Postconditions: Returns the created Season, or an error if the insert failed
func (s *Store) CreateSeason(guildID string, name string) (Season, error) {
	season := Season{
		ID:        primitive.NewObjectID(),
		GuildID:   guildID,
		Name:      name,
		StartDate: time.Now().UTC(),
	}
	_, err := s.Collections.Seasons.InsertOne(context.TODO(), season)
	if err != nil {
		return Season{}, fmt.Errorf("failed to insert new season: %w", err)
	}
	return season, nil
}

// CloseSeason sets the end date on a season that does not have one yet. The filter requires
// the endDate to be absent so two concurrent closes cannot both succeed
// Preconditions: Receives the season id and the end timestamp
// Postconditions: Returns the closed Season, mongo.ErrNoDocuments if the season is missing
// or already closed, or another error if it occurs
func (s *Store) CloseSeason(seasonID primitive.ObjectID, endDate time.Time) (Season, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var season Season
	err := s.Collections.Seasons.FindOneAndUpdate(context.TODO(),
		bson.M{"_id": seasonID, "endDate": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"endDate": endDate}},
		opts,
	).Decode(&season)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Season{}, err
		}
		return Season{}, fmt.Errorf("failed to close season: %w", err)
	}
	return season, nil
}

// ReopenSeason clears the end date on a closed season. The filter requires the endDate to
// be present, so reopening an already open season is a no-match rather than a silent no-op.
// The caller is responsible for checking that no other season is currently open
// Preconditions: Receives the season id
// Postconditions: Returns the reopened Season, mongo.ErrNoDocuments if the season is missing
// or not closed, or another error if it occurs
func (s *Store) ReopenSeason(seasonID primitive.ObjectID) (Season, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var season Season
	err := s.Collections.Seasons.FindOneAndUpdate(context.TODO(),
		bson.M{"_id": seasonID, "endDate": bson.M{"$exists": true}},
		bson.M{"$unset": bson.M{"endDate": ""}},
		opts,
	).Decode(&season)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Season{}, err
		}
		return Season{}, fmt.Errorf("failed to reopen season: %w", err)
	}
	return season, nil
}

// ListSeasons fetches all of a guild's seasons, newest first
// Preconditions: Receives string containing the guild id
// Postconditions: Returns slice of Seasons, or an error if it occurs
func (s *Store) ListSeasons(guildID string) ([]Season, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})

	cursor, err := s.Collections.Seasons.Find(context.TODO(), bson.M{"guildId": guildID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching seasons from db: %w", err)
	}

	var seasons []Season
	if err = cursor.All(context.TODO(), &seasons); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of seasons: %w", err)
	}
	return seasons, nil
}

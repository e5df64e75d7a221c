/* matches.go
 * Contains the methods for interacting with the matches collection. Confirmation and
 * finalization are expressed as atomic conditional updates rather than read-then-write
 * round trips: two players confirming the same match at the same moment may both set
 * their own flag, but only one caller can win the confirmedAt transition, and only that
 * caller runs point settlement
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

// InsertMatch inserts a match row. The id has already been minted by the caller because
// the confirmation message referencing it is sent before the row exists
// Preconditions: Receives a Match with id, guild, season, message and player entries populated
// Postconditions: Returns nil, or an error if the insert failed
func (s *Store) InsertMatch(match Match) error {
	_, err := s.Collections.Matches.InsertOne(context.TODO(), match)
	if err != nil {
		return fmt.Errorf("failed to insert new match: %w", err)
	}
	return nil
}

// MatchByID fetches a match by its id
// Postconditions: Returns the Match, mongo.ErrNoDocuments if absent, or another error if it occurs
func (s *Store) MatchByID(id primitive.ObjectID) (Match, error) {
	var match Match
	err := s.Collections.Matches.FindOne(context.TODO(), bson.M{"_id": id}).Decode(&match)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Match{}, err
		}
		return Match{}, fmt.Errorf("error fetching match from db: %w", err)
	}
	return match, nil
}

// MatchByMessage fetches the match driven by a given confirmation message. Button presses
// only carry the message id, so this is the entry point for all button handling
// Postconditions: Returns the Match, mongo.ErrNoDocuments if absent, or another error if it occurs
func (s *Store) MatchByMessage(messageID string) (Match, error) {
	var match Match
	err := s.Collections.Matches.FindOne(context.TODO(), bson.M{"messageId": messageID}).Decode(&match)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Match{}, err
		}
		return Match{}, fmt.Errorf("error fetching match from db: %w", err)
	}
	return match, nil
}

// DeleteMatch removes a match row. Deleting the row is the authoritative part of
// cancellation; cleanup of the confirmation message and dispute thread is best effort
// and handled by the caller
func (s *Store) DeleteMatch(id primitive.ObjectID) error {
	result, err := s.Collections.Matches.DeleteOne(context.TODO(), bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ConfirmPlayer sets one player's confirmed flag on a match with a single positional
// update and returns the post-update document. Re-confirming an already confirmed player
// matches the filter and is a harmless no-op
// Preconditions: Receives the match id and the confirming user's id
// Postconditions: Returns the updated Match, mongo.ErrNoDocuments if the match is missing
// or the user is not a player on it, or another error if it occurs
func (s *Store) ConfirmPlayer(matchID primitive.ObjectID, userID string) (Match, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var match Match
	err := s.Collections.Matches.FindOneAndUpdate(context.TODO(),
		bson.M{"_id": matchID, "players.userId": userID},
		bson.M{"$set": bson.M{"players.$.confirmed": true}},
		opts,
	).Decode(&match)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Match{}, err
		}
		return Match{}, fmt.Errorf("failed to confirm player: %w", err)
	}
	return match, nil
}

// FinalizeMatch attempts the not-finalized -> finalized transition. The filter only matches
// while confirmedAt is absent and every player entry is confirmed, so when several callers
// race on the last confirmation exactly one of them observes a modified count of one.
// That caller, and nobody else, must apply point settlement
// Preconditions: Receives the match id and the finalization timestamp
// Postconditions: Returns true if this call performed the transition, false if the match was
// already finalized or not yet fully confirmed, or an error if it occurs
func (s *Store) FinalizeMatch(matchID primitive.ObjectID, at time.Time) (bool, error) {
	result, err := s.Collections.Matches.UpdateOne(context.TODO(),
		bson.M{
			"_id":         matchID,
			"confirmedAt": bson.M{"$exists": false},
			"players":     bson.M{"$not": bson.M{"$elemMatch": bson.M{"confirmed": false}}},
		},
		bson.M{"$set": bson.M{"confirmedAt": at}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to finalize match: %w", err)
	}
	return result.ModifiedCount == 1, nil
}

// AcceptMatch force-confirms every player entry and finalizes the match in one atomic
// update. The filter requires at least one unconfirmed player and no confirmedAt, so a
// match that is already fully confirmed (or already settled) is left untouched
// Preconditions: Receives the match id and the finalization timestamp
// Postconditions: Returns true if the match was changed by this call, false if there was
// nothing to accept, or an error if it occurs
func (s *Store) AcceptMatch(matchID primitive.ObjectID, at time.Time) (bool, error) {
	result, err := s.Collections.Matches.UpdateOne(context.TODO(),
		bson.M{
			"_id":               matchID,
			"confirmedAt":       bson.M{"$exists": false},
			"players.confirmed": false,
		},
		bson.M{"$set": bson.M{"players.$[].confirmed": true, "confirmedAt": at}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to accept match: %w", err)
	}
	return result.ModifiedCount == 1, nil
}

// SetDisputeThread records the dispute thread attached to a match
func (s *Store) SetDisputeThread(matchID primitive.ObjectID, threadID string) error {
	result, err := s.Collections.Matches.UpdateOne(context.TODO(),
		bson.M{"_id": matchID},
		bson.M{"$set": bson.M{"disputeThreadId": threadID}},
	)
	if err != nil {
		return fmt.Errorf("failed to set dispute thread: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// PendingMatches fetches a season's matches that still have at least one unconfirmed
// player, oldest first. Insertion order equals id order for ObjectIDs
func (s *Store) PendingMatches(guildID string, seasonID primitive.ObjectID) ([]Match, error) {
	return s.findMatches(bson.M{
		"guildId":           guildID,
		"season":            seasonID,
		"players.confirmed": false,
	}, 1)
}

// DisputedMatches fetches the subset of pending matches that have a dispute thread attached
func (s *Store) DisputedMatches(guildID string, seasonID primitive.ObjectID) ([]Match, error) {
	return s.findMatches(bson.M{
		"guildId":           guildID,
		"season":            seasonID,
		"players.confirmed": false,
		"disputeThreadId":   bson.M{"$exists": true},
	}, 1)
}

// MatchesByPlayer fetches the matches one user has played in, newest first, optionally
// constrained to one season and one of the user's decks
func (s *Store) MatchesByPlayer(guildID string, userID string, seasonID *primitive.ObjectID, deckID *primitive.ObjectID) ([]Match, error) {
	playerMatch := bson.M{"userId": userID}
	if deckID != nil {
		playerMatch["deck"] = *deckID
	}

	filter := bson.M{
		"guildId": guildID,
		"players": bson.M{"$elemMatch": playerMatch},
	}
	if seasonID != nil {
		filter["season"] = *seasonID
	}

	return s.findMatches(filter, -1)
}

// CountConfirmedMatches counts a user's finalized matches in one season, used for the
// leaderboard's minimum-games cutoff
func (s *Store) CountConfirmedMatches(guildID string, seasonID primitive.ObjectID, userID string) (int64, error) {
	count, err := s.Collections.Matches.CountDocuments(context.TODO(), bson.M{
		"guildId":        guildID,
		"season":         seasonID,
		"players.userId": userID,
		"confirmedAt":    bson.M{"$exists": true},
	})
	if err != nil {
		return 0, fmt.Errorf("error counting confirmed matches: %w", err)
	}
	return count, nil
}

// CountMatchesBySeason counts all matches logged against one season
func (s *Store) CountMatchesBySeason(seasonID primitive.ObjectID) (int64, error) {
	count, err := s.Collections.Matches.CountDocuments(context.TODO(), bson.M{"season": seasonID})
	if err != nil {
		return 0, fmt.Errorf("error counting matches: %w", err)
	}
	return count, nil
}

// findMatches runs a match query with the given filter, sorted by id in the given direction
func (s *Store) findMatches(filter bson.M, sortDirection int) ([]Match, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: sortDirection}})

	cursor, err := s.Collections.Matches.Find(context.TODO(), filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching matches from db: %w", err)
	}

	var matches []Match
	if err = cursor.All(context.TODO(), &matches); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of matches: %w", err)
	}
	return matches, nil
}

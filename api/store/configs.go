/* configs.go
 * Contains the methods for interacting with the configs collection. A guild's config document is
 * created lazily with default values the first time it is touched, and partial updates are expressed
 * as a typed ConfigPatch rather than a raw mutation map
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpsertConfig applies a partial update to a guild's config and returns the resulting document.
// When called with an empty patch this is a plain read (creating the document with defaults if
// it does not exist yet), which gives every config setter read-or-write-and-read-back semantics
// in a single round trip
// Preconditions: Receives string containing the guild id and a ConfigPatch
// Postconditions: Returns the effective Config after the patch, or an error if it occurs
func (s *Store) UpsertConfig(guildID string, patch ConfigPatch) (Config, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var config Config
	err := s.Collections.Configs.FindOneAndUpdate(context.TODO(),
		bson.M{"guildId": guildID},
		buildConfigUpdate(patch),
		opts,
	).Decode(&config)
	if err != nil {
		return Config{}, fmt.Errorf("failed to upsert config: %w", err)
	}
	return config, nil
}

// buildConfigUpdate converts a ConfigPatch into a mongo update document. Fields named in the
// patch go into $set (or $unset for a dispute role removal); every default-bearing field not
// named in the patch goes into $setOnInsert so a lazily created document starts fully populated.
// A field may not appear in both $set and $setOnInsert, hence the exclusion bookkeeping
func buildConfigUpdate(patch ConfigPatch) bson.M {
	set := bson.M{}
	unset := bson.M{}

	if patch.MinimumGamesPerPlayer != nil {
		set["minimumGamesPerPlayer"] = *patch.MinimumGamesPerPlayer
	}
	if patch.PointsGained != nil {
		set["pointsGained"] = *patch.PointsGained
	}
	if patch.PointsLost != nil {
		set["pointsLost"] = *patch.PointsLost
	}
	if patch.PointsPerDraw != nil {
		set["pointsPerDraw"] = *patch.PointsPerDraw
	}
	if patch.BasePoints != nil {
		set["basePoints"] = *patch.BasePoints
	}
	if patch.EnableDraws != nil {
		set["enableDraws"] = *patch.EnableDraws
	}
	if patch.DeckLimit != nil {
		set["deckLimit"] = *patch.DeckLimit
	}
	if patch.UnsetDisputeRole {
		unset["disputeRoleId"] = ""
	} else if patch.DisputeRoleID != nil {
		set["disputeRoleId"] = *patch.DisputeRoleID
	}

	defaults := bson.M{
		"minimumGamesPerPlayer": DefaultMinimumGamesPerPlayer,
		"pointsGained":          DefaultPointsGained,
		"pointsLost":            DefaultPointsLost,
		"pointsPerDraw":         DefaultPointsPerDraw,
		"basePoints":            DefaultBasePoints,
		"enableDraws":           DefaultEnableDraws,
		"deckLimit":             DefaultDeckLimit,
	}

	setOnInsert := bson.M{}
	for field, value := range defaults {
		if _, ok := set[field]; !ok {
			setOnInsert[field] = value
		}
	}

	update := bson.M{"$setOnInsert": setOnInsert}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}

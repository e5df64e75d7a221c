/* models_test.go
 * Contains unit tests for the document model helper methods
 * Authors: Zachary Bower
 */

package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSeason_Open(t *testing.T) {
	season := CreateSampleSeason("guild_1", "Season One")
	assert.True(t, season.Open())

	end := time.Now().UTC()
	season.EndDate = &end
	assert.False(t, season.Open())
}

func TestMatch_FullyConfirmed(t *testing.T) {
	match := CreateSampleMatch("guild_1", primitive.ObjectID{}, []string{"a", "b", "c", "d"}, true)
	assert.False(t, match.FullyConfirmed())

	for i := range match.Players {
		match.Players[i].Confirmed = true
	}
	assert.True(t, match.FullyConfirmed())
}

func TestMatch_FullyConfirmed_PartialConfirmations(t *testing.T) {
	match := CreateSampleMatch("guild_1", primitive.ObjectID{}, []string{"a", "b", "c", "d"}, true)
	match.Players[0].Confirmed = true
	match.Players[1].Confirmed = true
	match.Players[2].Confirmed = true

	assert.False(t, match.FullyConfirmed())
}

func TestMatch_Finalized(t *testing.T) {
	match := CreateSampleMatch("guild_1", primitive.ObjectID{}, []string{"a", "b", "c", "d"}, false)
	assert.False(t, match.Finalized())

	now := time.Now().UTC()
	match.ConfirmedAt = &now
	assert.True(t, match.Finalized())
}

func TestMatch_HasPlayer(t *testing.T) {
	match := CreateSampleMatch("guild_1", primitive.ObjectID{}, []string{"a", "b", "c", "d"}, true)

	assert.True(t, match.HasPlayer("a"))
	assert.True(t, match.HasPlayer("d"))
	assert.False(t, match.HasPlayer("e"))
}

func TestMatch_PlayerConfirmed(t *testing.T) {
	match := CreateSampleMatch("guild_1", primitive.ObjectID{}, []string{"a", "b", "c", "d"}, true)
	match.Players[1].Confirmed = true

	assert.False(t, match.PlayerConfirmed("a"))
	assert.True(t, match.PlayerConfirmed("b"))
	assert.False(t, match.PlayerConfirmed("missing"))
}

func TestConfigPatch_Empty(t *testing.T) {
	assert.True(t, ConfigPatch{}.Empty())

	amount := 3
	assert.False(t, ConfigPatch{DeckLimit: &amount}.Empty())
	assert.False(t, ConfigPatch{UnsetDisputeRole: true}.Empty())
}

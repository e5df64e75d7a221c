/* configs_test.go
 * Contains unit tests for config patch update document construction
 * Authors: Zachary Bower
 */

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildConfigUpdate_EmptyPatch(t *testing.T) {
	update := buildConfigUpdate(ConfigPatch{})

	// A pure read: no $set or $unset, every default present for lazy creation
	assert.NotContains(t, update, "$set")
	assert.NotContains(t, update, "$unset")

	setOnInsert, ok := update["$setOnInsert"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, DefaultMinimumGamesPerPlayer, setOnInsert["minimumGamesPerPlayer"])
	assert.Equal(t, DefaultPointsGained, setOnInsert["pointsGained"])
	assert.Equal(t, DefaultPointsLost, setOnInsert["pointsLost"])
	assert.Equal(t, DefaultPointsPerDraw, setOnInsert["pointsPerDraw"])
	assert.Equal(t, DefaultBasePoints, setOnInsert["basePoints"])
	assert.Equal(t, DefaultEnableDraws, setOnInsert["enableDraws"])
	assert.Equal(t, DefaultDeckLimit, setOnInsert["deckLimit"])
}

func TestBuildConfigUpdate_SetField(t *testing.T) {
	amount := 15
	update := buildConfigUpdate(ConfigPatch{PointsGained: &amount})

	set, ok := update["$set"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, 15, set["pointsGained"])

	// A field may not appear in both $set and $setOnInsert
	setOnInsert, ok := update["$setOnInsert"].(bson.M)
	require.True(t, ok)
	assert.NotContains(t, setOnInsert, "pointsGained")
	assert.Contains(t, setOnInsert, "pointsLost")
}

func TestBuildConfigUpdate_SetDisputeRole(t *testing.T) {
	role := "role_123"
	update := buildConfigUpdate(ConfigPatch{DisputeRoleID: &role})

	set, ok := update["$set"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "role_123", set["disputeRoleId"])
	assert.NotContains(t, update, "$unset")
}

func TestBuildConfigUpdate_UnsetDisputeRole(t *testing.T) {
	update := buildConfigUpdate(ConfigPatch{UnsetDisputeRole: true})

	unset, ok := update["$unset"].(bson.M)
	require.True(t, ok)
	assert.Contains(t, unset, "disputeRoleId")
	assert.NotContains(t, update, "$set")
}

func TestBuildConfigUpdate_UnsetWinsOverSet(t *testing.T) {
	role := "role_123"
	update := buildConfigUpdate(ConfigPatch{DisputeRoleID: &role, UnsetDisputeRole: true})

	// An explicit unset takes priority; the same path must not be both set and unset
	unset, ok := update["$unset"].(bson.M)
	require.True(t, ok)
	assert.Contains(t, unset, "disputeRoleId")
	assert.NotContains(t, update, "$set")
}

func TestBuildConfigUpdate_EnableDrawsFalseIsASet(t *testing.T) {
	enabled := false
	update := buildConfigUpdate(ConfigPatch{EnableDraws: &enabled})

	set, ok := update["$set"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, false, set["enableDraws"])
}

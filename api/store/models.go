/* models.go
 * This file contains the structs and helper functions that relate to DB objects. The five collections
 * (seasons, configs, decks, profiles, matches) each have their document struct here; methods for
 * interacting with them live in the per-collection files of this package
 * Authors: Zachary Bower
 */

package store

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Season represents one league season for a guild. A season with no EndDate is the
// guild's open season; at most one of those may exist per guild at a time.
type Season struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	GuildID   string             `bson:"guildId"`
	Name      string             `bson:"name"`
	StartDate time.Time          `bson:"startDate"`
	EndDate   *time.Time         `bson:"endDate,omitempty"`
}

// Open reports whether the season is still accepting match logs
func (s Season) Open() bool {
	return s.EndDate == nil
}

// Config holds the per-guild tunable parameters. Exactly one document exists per guild,
// created lazily with the Default* values on first access
type Config struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty"`
	GuildID               string             `bson:"guildId"`
	MinimumGamesPerPlayer int                `bson:"minimumGamesPerPlayer"`
	PointsGained          int                `bson:"pointsGained"`
	PointsLost            int                `bson:"pointsLost"`
	PointsPerDraw         int                `bson:"pointsPerDraw"`
	BasePoints            int                `bson:"basePoints"`
	EnableDraws           bool               `bson:"enableDraws"`
	DeckLimit             int                `bson:"deckLimit"`
	DisputeRoleID         string             `bson:"disputeRoleId,omitempty"`
}

// Default config values applied when a guild's config document is first created
const (
	DefaultMinimumGamesPerPlayer = 5
	DefaultPointsGained          = 10
	DefaultPointsLost            = 5
	DefaultPointsPerDraw         = 5
	DefaultBasePoints            = 100
	DefaultEnableDraws           = false
	DefaultDeckLimit             = 10
)

// ConfigPatch is a typed partial update for a guild's config. A nil field means
// "leave unchanged"; a non-nil field sets the new value. UnsetDisputeRole removes
// the dispute role entirely, which is distinct from not providing one
type ConfigPatch struct {
	MinimumGamesPerPlayer *int
	PointsGained          *int
	PointsLost            *int
	PointsPerDraw         *int
	BasePoints            *int
	EnableDraws           *bool
	DeckLimit             *int
	DisputeRoleID         *string
	UnsetDisputeRole      bool
}

// Empty reports whether the patch changes nothing
func (p ConfigPatch) Empty() bool {
	return p.MinimumGamesPerPlayer == nil && p.PointsGained == nil && p.PointsLost == nil &&
		p.PointsPerDraw == nil && p.BasePoints == nil && p.EnableDraws == nil &&
		p.DeckLimit == nil && p.DisputeRoleID == nil && !p.UnsetDisputeRole
}

// Deck is a named deck owned by one player in one guild. Name is unique per owner.
// DeckList, when present, is a URL that has already passed the hostname allow-list check
type Deck struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	GuildID  string             `bson:"guildId"`
	UserID   string             `bson:"userId"`
	Name     string             `bson:"name"`
	DeckList string             `bson:"deckList,omitempty"`
}

// Profile is the per-(guild, user) record of accumulated points and the currently
// selected deck. Profiles are created lazily the first time a user is referenced
type Profile struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	GuildID     string              `bson:"guildId"`
	UserID      string              `bson:"userId"`
	Points      int                 `bson:"points"`
	CurrentDeck *primitive.ObjectID `bson:"currentDeck,omitempty"`
}

// MatchPlayer is one player entry on a match: the user, the deck they had selected
// when the match was logged (if any), and whether they have confirmed the result
type MatchPlayer struct {
	UserID    string              `bson:"userId"`
	Deck      *primitive.ObjectID `bson:"deck,omitempty"`
	Confirmed bool                `bson:"confirmed"`
}

// Match is a pending or finalized match. The id is minted before the confirmation
// message is sent so the message body can reference it; the document is inserted
// afterwards carrying that message's id. ConfirmedAt is set exactly once, when the
// last player confirms (or an admin accepts), and gates point settlement
type Match struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	GuildID         string             `bson:"guildId"`
	ChannelID       string             `bson:"channelId,omitempty"`
	MessageID       string             `bson:"messageId,omitempty"`
	DisputeThreadID string             `bson:"disputeThreadId,omitempty"`
	Season          primitive.ObjectID `bson:"season"`
	WinnerUserID    string             `bson:"winnerUserId,omitempty"`
	Players         []MatchPlayer      `bson:"players"`
	ConfirmedAt     *time.Time         `bson:"confirmedAt,omitempty"`
}

// FullyConfirmed reports whether every player entry has confirmed the match
func (m Match) FullyConfirmed() bool {
	for _, player := range m.Players {
		if !player.Confirmed {
			return false
		}
	}
	return true
}

// Finalized reports whether the match has been settled. This is driven by ConfirmedAt,
// not the player flags, so a finalized match can never settle twice
func (m Match) Finalized() bool {
	return m.ConfirmedAt != nil
}

// HasPlayer reports whether the given user is listed on the match
func (m Match) HasPlayer(userID string) bool {
	for _, player := range m.Players {
		if player.UserID == userID {
			return true
		}
	}
	return false
}

// PlayerConfirmed reports whether the given user has confirmed the match.
// Returns false for users that are not listed on the match
func (m Match) PlayerConfirmed(userID string) bool {
	for _, player := range m.Players {
		if player.UserID == userID {
			return player.Confirmed
		}
	}
	return false
}

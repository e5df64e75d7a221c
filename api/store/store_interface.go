/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	// Seasons
	OpenSeason(guildID string) (Season, error)
	SeasonByName(guildID string, name string) (Season, error)
	CreateSeason(guildID string, name string) (Season, error)
	CloseSeason(seasonID primitive.ObjectID, endDate time.Time) (Season, error)
	ReopenSeason(seasonID primitive.ObjectID) (Season, error)
	ListSeasons(guildID string) ([]Season, error)

	// Configs
	UpsertConfig(guildID string, patch ConfigPatch) (Config, error)

	// Decks
	InsertDeck(deck Deck) (Deck, error)
	DeckByID(id primitive.ObjectID) (Deck, error)
	DeckByOwnerAndName(guildID string, userID string, name string) (Deck, error)
	DecksByOwner(guildID string, userID string) ([]Deck, error)
	CountDecksByOwner(guildID string, userID string) (int64, error)
	RenameDeck(id primitive.ObjectID, name string) error
	SetDeckList(id primitive.ObjectID, deckList string) error
	DeleteDeck(id primitive.ObjectID) error

	// Profiles
	FetchProfile(guildID string, userID string) (Profile, error)
	SetCurrentDeck(guildID string, userID string, deckID *primitive.ObjectID) error
	ClearCurrentDeck(deckID primitive.ObjectID) error
	AdjustPoints(guildID string, userID string, delta int) error
	ProfilesByGuild(guildID string) ([]Profile, error)

	// Matches
	InsertMatch(match Match) error
	MatchByID(id primitive.ObjectID) (Match, error)
	MatchByMessage(messageID string) (Match, error)
	DeleteMatch(id primitive.ObjectID) error
	ConfirmPlayer(matchID primitive.ObjectID, userID string) (Match, error)
	FinalizeMatch(matchID primitive.ObjectID, at time.Time) (bool, error)
	AcceptMatch(matchID primitive.ObjectID, at time.Time) (bool, error)
	SetDisputeThread(matchID primitive.ObjectID, threadID string) error
	PendingMatches(guildID string, seasonID primitive.ObjectID) ([]Match, error)
	DisputedMatches(guildID string, seasonID primitive.ObjectID) ([]Match, error)
	MatchesByPlayer(guildID string, userID string, seasonID *primitive.ObjectID, deckID *primitive.ObjectID) ([]Match, error)
	CountConfirmedMatches(guildID string, seasonID primitive.ObjectID, userID string) (int64, error)
	CountMatchesBySeason(seasonID primitive.ObjectID) (int64, error)

	// Getter methods for accessing fields
	GetDatabase() interface{ Name() string }
	GetClient() interface{ Disconnect(context.Context) error }
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)

// GetDatabase returns the database instance
func (s *Store) GetDatabase() interface{ Name() string } {
	return s.Database
}

// GetClient returns the MongoDB client
func (s *Store) GetClient() interface{ Disconnect(context.Context) error } {
	return s.Client
}

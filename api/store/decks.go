/* decks.go
 * Contains the methods for interacting with the decks collection
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InsertDeck inserts a new deck. The name-uniqueness and deck-limit checks are done
// by the caller before insertion
// Preconditions: Receives a Deck with guild id, user id and name populated
// Postconditions: Returns the inserted Deck with its id set, or an error if it occurs
func (s *Store) InsertDeck(deck Deck) (Deck, error) {
	if deck.ID.IsZero() {
		deck.ID = primitive.NewObjectID()
	}
	_, err := s.Collections.Decks.InsertOne(context.TODO(), deck)
	if err != nil {
		return Deck{}, fmt.Errorf("failed to insert new deck: %w", err)
	}
	return deck, nil
}

// DeckByID fetches a deck by its id
// Postconditions: Returns the Deck, mongo.ErrNoDocuments if absent, or another error if it occurs
func (s *Store) DeckByID(id primitive.ObjectID) (Deck, error) {
	var deck Deck
	err := s.Collections.Decks.FindOne(context.TODO(), bson.M{"_id": id}).Decode(&deck)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Deck{}, err
		}
		return Deck{}, fmt.Errorf("error fetching deck from db: %w", err)
	}
	return deck, nil
}

// DeckByOwnerAndName fetches a deck by its owner and exact name
// Postconditions: Returns the Deck, mongo.ErrNoDocuments if absent, or another error if it occurs
func (s *Store) DeckByOwnerAndName(guildID string, userID string, name string) (Deck, error) {
	var deck Deck
	err := s.Collections.Decks.FindOne(context.TODO(), bson.M{
		"guildId": guildID,
		"userId":  userID,
		"name":    name,
	}).Decode(&deck)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Deck{}, err
		}
		return Deck{}, fmt.Errorf("error fetching deck from db: %w", err)
	}
	return deck, nil
}

// DecksByOwner fetches all decks belonging to one user in one guild, oldest first
// Postconditions: Returns slice of Decks, or an error if it occurs
func (s *Store) DecksByOwner(guildID string, userID string) ([]Deck, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := s.Collections.Decks.Find(context.TODO(), bson.M{
		"guildId": guildID,
		"userId":  userID,
	}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching decks from db: %w", err)
	}

	var decks []Deck
	if err = cursor.All(context.TODO(), &decks); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of decks: %w", err)
	}
	return decks, nil
}

// CountDecksByOwner counts a user's decks in a guild, used to enforce the configured deck limit
func (s *Store) CountDecksByOwner(guildID string, userID string) (int64, error) {
	count, err := s.Collections.Decks.CountDocuments(context.TODO(), bson.M{
		"guildId": guildID,
		"userId":  userID,
	})
	if err != nil {
		return 0, fmt.Errorf("error counting decks: %w", err)
	}
	return count, nil
}

// RenameDeck sets a new name on an existing deck
// Postconditions: Returns mongo.ErrNoDocuments if the deck is absent, or another error if it occurs
func (s *Store) RenameDeck(id primitive.ObjectID, name string) error {
	result, err := s.Collections.Decks.UpdateOne(context.TODO(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"name": name}},
	)
	if err != nil {
		return fmt.Errorf("failed to rename deck: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetDeckList sets or replaces the deck list URL on an existing deck. An empty string removes it
func (s *Store) SetDeckList(id primitive.ObjectID, deckList string) error {
	update := bson.M{"$set": bson.M{"deckList": deckList}}
	if deckList == "" {
		update = bson.M{"$unset": bson.M{"deckList": ""}}
	}

	result, err := s.Collections.Decks.UpdateOne(context.TODO(), bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set deck list: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteDeck removes a deck document. Profiles referencing it as their current deck are
// cleaned up separately via ClearCurrentDeck
func (s *Store) DeleteDeck(id primitive.ObjectID) error {
	result, err := s.Collections.Decks.DeleteOne(context.TODO(), bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete deck: %w", err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

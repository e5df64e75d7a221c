/* deck.go
 * Contains the deck manager: creating, selecting, renaming and deleting a player's decks,
 * bounded by the guild's configured deck limit. Deck names resolve case insensitively and
 * fall back to fuzzy matching so small typos still find the right deck
 * Authors: Zachary Bower
 */

package api

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"league-bot/api/logic"
	"league-bot/api/store"
)

// CreateDeck creates a named deck for a player and selects it as their current deck
// Preconditions: Receives the guild id, owning user id, deck name and an optional deck
// list URL (empty string for none)
// Postconditions: Returns the created Deck, or ErrDeckLimitReached, ErrDeckNameTaken,
// ErrInvalidDeckList, or an infrastructure error
func (a *API) CreateDeck(guildID string, userID string, name string, deckList string) (store.Deck, error) {
	config, err := a.Store.UpsertConfig(guildID, store.ConfigPatch{})
	if err != nil {
		return store.Deck{}, err
	}

	count, err := a.Store.CountDecksByOwner(guildID, userID)
	if err != nil {
		return store.Deck{}, err
	}
	if count >= int64(config.DeckLimit) {
		return store.Deck{}, ErrDeckLimitReached
	}

	_, err = a.Store.DeckByOwnerAndName(guildID, userID, name)
	if err == nil {
		return store.Deck{}, ErrDeckNameTaken
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return store.Deck{}, err
	}

	if deckList != "" && !logic.ValidateDeckList(deckList) {
		return store.Deck{}, ErrInvalidDeckList
	}

	deck, err := a.Store.InsertDeck(store.Deck{
		GuildID:  guildID,
		UserID:   userID,
		Name:     name,
		DeckList: deckList,
	})
	if err != nil {
		return store.Deck{}, err
	}

	// A newly created deck becomes the owner's current deck
	if err := a.Store.SetCurrentDeck(guildID, userID, &deck.ID); err != nil {
		return store.Deck{}, err
	}
	return deck, nil
}

// SelectDeck sets one of the player's decks as their current deck
// Postconditions: Returns the selected Deck, or ErrDeckNotFound, or an infrastructure error
func (a *API) SelectDeck(guildID string, userID string, name string) (store.Deck, error) {
	deck, err := a.resolveDeck(guildID, userID, name)
	if err != nil {
		return store.Deck{}, err
	}

	if err := a.Store.SetCurrentDeck(guildID, userID, &deck.ID); err != nil {
		return store.Deck{}, err
	}
	return deck, nil
}

// RenameDeck renames one of the player's decks
// Postconditions: Returns the renamed Deck, or ErrDeckNotFound, ErrDeckNameTaken, or an
// infrastructure error
func (a *API) RenameDeck(guildID string, userID string, name string, newName string) (store.Deck, error) {
	deck, err := a.resolveDeck(guildID, userID, name)
	if err != nil {
		return store.Deck{}, err
	}

	existing, err := a.Store.DeckByOwnerAndName(guildID, userID, newName)
	if err == nil && existing.ID != deck.ID {
		return store.Deck{}, ErrDeckNameTaken
	}
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return store.Deck{}, err
	}

	if err := a.Store.RenameDeck(deck.ID, newName); err != nil {
		return store.Deck{}, err
	}
	deck.Name = newName
	return deck, nil
}

// SetDeckList sets or replaces the deck list URL on one of the player's decks. An empty
// string removes it
// Postconditions: Returns the updated Deck, or ErrDeckNotFound, ErrInvalidDeckList, or an
// infrastructure error
func (a *API) SetDeckList(guildID string, userID string, name string, deckList string) (store.Deck, error) {
	if deckList != "" && !logic.ValidateDeckList(deckList) {
		return store.Deck{}, ErrInvalidDeckList
	}

	deck, err := a.resolveDeck(guildID, userID, name)
	if err != nil {
		return store.Deck{}, err
	}

	if err := a.Store.SetDeckList(deck.ID, deckList); err != nil {
		return store.Deck{}, err
	}
	deck.DeckList = deckList
	return deck, nil
}

// DeleteDeck removes one of the player's decks and clears it from any profile that had
// it selected. Matches snapshotting the deck keep their reference; the snapshot records
// what was played, not what still exists
// Postconditions: Returns the deleted Deck, or ErrDeckNotFound, or an infrastructure error
func (a *API) DeleteDeck(guildID string, userID string, name string) (store.Deck, error) {
	deck, err := a.resolveDeck(guildID, userID, name)
	if err != nil {
		return store.Deck{}, err
	}

	if err := a.Store.DeleteDeck(deck.ID); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return store.Deck{}, err
	}
	if err := a.Store.ClearCurrentDeck(deck.ID); err != nil {
		return store.Deck{}, err
	}
	return deck, nil
}

// ListDecks lists the player's decks, oldest first
func (a *API) ListDecks(guildID string, userID string) ([]store.Deck, error) {
	return a.Store.DecksByOwner(guildID, userID)
}

// CurrentDeckID reports the player's currently selected deck id, nil if none is selected
// Postconditions: Returns the deck id pointer, or an infrastructure error
func (a *API) CurrentDeckID(guildID string, userID string) (*primitive.ObjectID, error) {
	profile, err := a.Store.FetchProfile(guildID, userID)
	if err != nil {
		return nil, err
	}
	return profile.CurrentDeck, nil
}

// resolveDeck finds one of the player's decks by name: exact match first, then case
// insensitive / fuzzy resolution over their deck names
func (a *API) resolveDeck(guildID string, userID string, name string) (store.Deck, error) {
	deck, err := a.Store.DeckByOwnerAndName(guildID, userID, name)
	if err == nil {
		return deck, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return store.Deck{}, err
	}

	decks, err := a.Store.DecksByOwner(guildID, userID)
	if err != nil {
		return store.Deck{}, err
	}

	var names []string
	for _, d := range decks {
		names = append(names, d.Name)
	}

	resolved, ok := logic.ResolveName(name, names)
	if !ok {
		return store.Deck{}, ErrDeckNotFound
	}

	deck, err = a.Store.DeckByOwnerAndName(guildID, userID, resolved)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return store.Deck{}, ErrDeckNotFound
		}
		return store.Deck{}, err
	}
	return deck, nil
}

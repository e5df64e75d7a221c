/* match.go
 * Contains the match lifecycle engine: logging, confirmation, dispute, cancellation,
 * administrative accept/delete and point settlement. Settlement is guarded by the
 * store's atomic confirmedAt transition so it runs exactly once per match no matter
 * how many confirmations race on the final player
 * Authors: Zachary Bower
 */

package api

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"league-bot/api/logic"
	"league-bot/api/shared"
	"league-bot/api/store"
)

// PrepareMatch validates a match log and builds a draft with a freshly minted id.
// The id must exist before the row does because the confirmation message embeds it;
// the caller sends that message and then persists the draft via CreateMatch
// Preconditions: Receives the guild id, the logging user, the three other player ids and
// whether the logger won (false meaning the match was a draw)
// Postconditions: Returns the MatchDraft, or ErrNoActiveSeason, ErrDuplicatePlayers,
// ErrDrawsDisabled, or an infrastructure error
func (a *API) PrepareMatch(guildID string, logger shared.User, otherPlayerIDs []string, isWin bool) (*MatchDraft, error) {
	season, err := a.Store.OpenSeason(guildID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoActiveSeason
		}
		return nil, err
	}

	playerIDs := append([]string{logger.UserID}, otherPlayerIDs...)
	if !logic.UniquePlayers(playerIDs) {
		return nil, ErrDuplicatePlayers
	}

	if !isWin {
		config, err := a.Store.UpsertConfig(guildID, store.ConfigPatch{})
		if err != nil {
			return nil, err
		}
		if !config.EnableDraws {
			return nil, ErrDrawsDisabled
		}
	}

	draft := &MatchDraft{
		ID:       primitive.NewObjectID(),
		GuildID:  guildID,
		SeasonID: season.ID,
		IsWin:    isWin,
	}
	if isWin {
		draft.WinnerUserID = logger.UserID
	}

	for _, userID := range playerIDs {
		profile, err := a.Store.FetchProfile(guildID, userID)
		if err != nil {
			return nil, err
		}

		player := DraftPlayer{UserID: userID}
		if profile.CurrentDeck != nil {
			deck, err := a.Store.DeckByID(*profile.CurrentDeck)
			if err == nil {
				player.Deck = &deck
			} else if !errors.Is(err, mongo.ErrNoDocuments) {
				return nil, err
			}
		}
		draft.Players = append(draft.Players, player)
	}

	return draft, nil
}

// CreateMatch persists a prepared draft as a pending match row carrying the id of the
// confirmation message that was just sent. Every player entry starts unconfirmed
// Preconditions: Receives the draft and the channel and message ids of the confirmation message
// Postconditions: Returns the stored Match, or an error if the insert failed
func (a *API) CreateMatch(draft *MatchDraft, channelID string, messageID string) (store.Match, error) {
	match := store.Match{
		ID:           draft.ID,
		GuildID:      draft.GuildID,
		ChannelID:    channelID,
		MessageID:    messageID,
		Season:       draft.SeasonID,
		WinnerUserID: draft.WinnerUserID,
	}
	for _, player := range draft.Players {
		entry := store.MatchPlayer{UserID: player.UserID}
		if player.Deck != nil {
			deckID := player.Deck.ID
			entry.Deck = &deckID
		}
		match.Players = append(match.Players, entry)
	}

	if err := a.Store.InsertMatch(match); err != nil {
		return store.Match{}, err
	}
	return match, nil
}

// MatchByMessage fetches the match driven by a confirmation message, the entry point
// for all button handling
// Postconditions: Returns the Match, or ErrMatchNotFound if the message no longer maps to one
func (a *API) MatchByMessage(messageID string) (store.Match, error) {
	match, err := a.Store.MatchByMessage(messageID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return store.Match{}, ErrMatchNotFound
		}
		return store.Match{}, err
	}
	return match, nil
}

// ConfirmMatch records one player's confirmation. Re-confirming is a no-op that still
// succeeds. When the update leaves every player confirmed, exactly one caller wins the
// finalizing transition and applies point settlement; racing confirmations on the last
// player observe Finalized false and skip settlement
// Preconditions: Receives the match as loaded for this interaction and the pressing user's id
// Postconditions: Returns the MatchUpdate, or ErrNotAParticipant, or an infrastructure error
func (a *API) ConfirmMatch(match store.Match, userID string) (MatchUpdate, error) {
	if !match.HasPlayer(userID) {
		return MatchUpdate{}, ErrNotAParticipant
	}

	// An already finalized match has been settled; nothing to do
	if match.Finalized() {
		return MatchUpdate{Match: match}, nil
	}

	updated, err := a.Store.ConfirmPlayer(match.ID, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return MatchUpdate{}, ErrNotAParticipant
		}
		return MatchUpdate{}, err
	}

	if !updated.FullyConfirmed() || updated.Finalized() {
		return MatchUpdate{Match: updated}, nil
	}

	now := time.Now().UTC()
	won, err := a.Store.FinalizeMatch(updated.ID, now)
	if err != nil {
		return MatchUpdate{}, err
	}
	if !won {
		return MatchUpdate{Match: updated}, nil
	}

	updated.ConfirmedAt = &now
	if err := a.settleMatch(updated); err != nil {
		return MatchUpdate{}, err
	}
	return MatchUpdate{Match: updated, Finalized: true}, nil
}

// DisputeMatch validates that the acting user may open a dispute on the match. Creating
// the thread and notifying the dispute role are surface concerns; the thread reference
// is recorded afterwards via AttachDisputeThread. Disputing does not change any
// confirmation state
// Postconditions: Returns nil, or ErrNotAParticipant
func (a *API) DisputeMatch(match store.Match, userID string) error {
	if !match.HasPlayer(userID) {
		return ErrNotAParticipant
	}
	return nil
}

// AttachDisputeThread records the dispute thread created for a match
func (a *API) AttachDisputeThread(matchID primitive.ObjectID, threadID string) error {
	if err := a.Store.SetDisputeThread(matchID, threadID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrMatchNotFound
		}
		return err
	}
	return nil
}

// CancelMatch deletes an unfinalized match on behalf of one of its players. Deleting the
// row is authoritative; the caller cleans up the confirmation message and dispute thread
// best effort afterwards
// Postconditions: Returns nil, or ErrNotAParticipant, ErrAlreadyFinalized, or an
// infrastructure error
func (a *API) CancelMatch(match store.Match, userID string) error {
	if !match.HasPlayer(userID) {
		return ErrNotAParticipant
	}
	if match.Finalized() {
		return ErrAlreadyFinalized
	}

	if err := a.Store.DeleteMatch(match.ID); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	return nil
}

// AcceptMatch force-confirms every player on a pending match and settles it, bypassing
// per player consent. Used by admins to unstick stalled matches
// Preconditions: Receives the invoking guild's id and the match id string from the command
// Postconditions: Returns the accepted Match, or ErrMatchNotFound, ErrCrossGuildMatch,
// ErrAlreadyFullyConfirmed, or an infrastructure error
func (a *API) AcceptMatch(guildID string, matchID string) (store.Match, error) {
	id, err := primitive.ObjectIDFromHex(matchID)
	if err != nil {
		return store.Match{}, ErrMatchNotFound
	}

	match, err := a.Store.MatchByID(id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return store.Match{}, ErrMatchNotFound
		}
		return store.Match{}, err
	}
	if match.GuildID != guildID {
		return store.Match{}, ErrCrossGuildMatch
	}

	accepted, err := a.acceptAndSettle(match)
	if err != nil {
		return store.Match{}, err
	}
	if !accepted {
		return store.Match{}, ErrAlreadyFullyConfirmed
	}

	return a.Store.MatchByID(id)
}

// AcceptAllPending applies accept semantics to every pending match of the guild's open
// season, oldest first, and reports how many matches were actually changed. Matches that
// are already fully confirmed are skipped and not counted. The interactive are-you-sure
// step happens in the surface before this is called
// Postconditions: Returns the accepted count, or ErrNoActiveSeason, or an infrastructure error
func (a *API) AcceptAllPending(guildID string) (int, error) {
	season, err := a.Store.OpenSeason(guildID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, ErrNoActiveSeason
		}
		return 0, err
	}

	matches, err := a.Store.PendingMatches(guildID, season.ID)
	if err != nil {
		return 0, err
	}

	accepted := 0
	for _, match := range matches {
		changed, err := a.acceptAndSettle(match)
		if err != nil {
			return accepted, fmt.Errorf("failed accepting match %s: %w", match.ID.Hex(), err)
		}
		if changed {
			accepted++
		}
	}
	return accepted, nil
}

// DeleteMatch removes a match row regardless of its state, guarded only by guild
// ownership. Returns the deleted match so the caller can clean up its message and thread
// Postconditions: Returns the deleted Match, or ErrMatchNotFound, ErrCrossGuildMatch,
// or an infrastructure error
func (a *API) DeleteMatch(guildID string, matchID string) (store.Match, error) {
	id, err := primitive.ObjectIDFromHex(matchID)
	if err != nil {
		return store.Match{}, ErrMatchNotFound
	}

	match, err := a.Store.MatchByID(id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return store.Match{}, ErrMatchNotFound
		}
		return store.Match{}, err
	}
	if match.GuildID != guildID {
		return store.Match{}, ErrCrossGuildMatch
	}

	if err := a.Store.DeleteMatch(id); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return store.Match{}, err
	}
	return match, nil
}

// PendingMatches lists the open season's matches that still have unconfirmed players,
// oldest first
// Postconditions: Returns slice of Matches, or ErrNoActiveSeason, or an infrastructure error
func (a *API) PendingMatches(guildID string) ([]store.Match, error) {
	season, err := a.Store.OpenSeason(guildID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoActiveSeason
		}
		return nil, err
	}
	return a.Store.PendingMatches(guildID, season.ID)
}

// DisputedMatches lists the subset of pending matches that have a dispute thread attached
func (a *API) DisputedMatches(guildID string) ([]store.Match, error) {
	season, err := a.Store.OpenSeason(guildID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoActiveSeason
		}
		return nil, err
	}
	return a.Store.DisputedMatches(guildID, season.ID)
}

// ListMatches lists the matches the acting user has played in, newest first, optionally
// filtered by one of their decks and/or a season name. The filter string uses key:value
// pairs with quoting for multi word names, e.g. deck:"Niv to Light" season:"Season Two"
// Postconditions: Returns slice of Matches, or ErrDeckNotFound, ErrSeasonNotFound, a filter
// parse error, or an infrastructure error
func (a *API) ListMatches(guildID string, userID string, filterString string) ([]store.Match, error) {
	filter, err := logic.ParseMatchFilter(filterString)
	if err != nil {
		return nil, err
	}

	var deckID *primitive.ObjectID
	if filter.Deck != "" {
		deck, err := a.resolveDeck(guildID, userID, filter.Deck)
		if err != nil {
			return nil, err
		}
		deckID = &deck.ID
	}

	var seasonID *primitive.ObjectID
	if filter.Season != "" {
		season, err := a.Store.SeasonByName(guildID, filter.Season)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrSeasonNotFound
			}
			return nil, err
		}
		seasonID = &season.ID
	}

	return a.Store.MatchesByPlayer(guildID, userID, seasonID, deckID)
}

// MatchDeckNames resolves the deck snapshots on a match to their current names, keyed by
// player user id. Players without a snapshot, or whose deck has since been deleted, have
// no entry
// Postconditions: Returns the name map, or an infrastructure error
func (a *API) MatchDeckNames(match store.Match) (map[string]string, error) {
	names := make(map[string]string)
	for _, player := range match.Players {
		if player.Deck == nil {
			continue
		}
		deck, err := a.Store.DeckByID(*player.Deck)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				continue
			}
			return nil, err
		}
		names[player.UserID] = deck.Name
	}
	return names, nil
}

// acceptAndSettle performs the atomic accept transition on one match and, when this call
// actually changed it, applies the one point settlement
func (a *API) acceptAndSettle(match store.Match) (bool, error) {
	now := time.Now().UTC()
	changed, err := a.Store.AcceptMatch(match.ID, now)
	if err != nil {
		return false, err
	}
	if !changed {
		return false, nil
	}

	match.ConfirmedAt = &now
	if err := a.settleMatch(match); err != nil {
		return true, err
	}
	return true, nil
}

// settleMatch applies the point deltas for a finalized match to the players' profiles.
// Callers must hold the confirmedAt transition for this match; the guard lives there,
// not here
func (a *API) settleMatch(match store.Match) error {
	config, err := a.Store.UpsertConfig(match.GuildID, store.ConfigPatch{})
	if err != nil {
		return fmt.Errorf("failed to load config for settlement: %w", err)
	}

	for userID, delta := range logic.SettlementDeltas(match, config) {
		if err := a.Store.AdjustPoints(match.GuildID, userID, delta); err != nil {
			return fmt.Errorf("failed to settle points for %s: %w", userID, err)
		}
	}
	return nil
}

/* test_mocks.go
 * Contains the mock store used for testing the API package. The mock holds everything in
 * memory behind one mutex so the conditional updates (confirm, finalize, accept) keep the
 * same atomicity guarantees as the real store and the concurrency tests mean something
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"league-bot/api/store"
)

// MockStore implements the store Interface for testing
type MockStore struct {
	mu sync.Mutex

	SeasonsByID map[primitive.ObjectID]store.Season
	Configs     map[string]store.Config
	Decks       map[primitive.ObjectID]store.Deck
	Profiles    map[string]store.Profile
	Matches     map[primitive.ObjectID]store.Match
	matchOrder  []primitive.ObjectID

	// Error injection for testing error paths
	OpenSeasonError    error
	UpsertConfigError  error
	InsertMatchError   error
	ConfirmPlayerError error
	FinalizeMatchError error
	AdjustPointsError  error

	// SettledDeltas records every point adjustment applied, per user
	SettledDeltas map[string][]int

	DatabaseName string
}

// mockDatabase implements the minimal Database interface needed for tests
type mockDatabase struct {
	name string
}

func (m *mockDatabase) Name() string {
	return m.name
}

// mockClient implements the minimal Client interface needed for tests
type mockClient struct{}

func (m *mockClient) Disconnect(context.Context) error {
	return nil
}

// NewMockStore creates a new MockStore with empty collections
func NewMockStore() *MockStore {
	return &MockStore{
		SeasonsByID:   make(map[primitive.ObjectID]store.Season),
		Configs:       make(map[string]store.Config),
		Decks:         make(map[primitive.ObjectID]store.Deck),
		Profiles:      make(map[string]store.Profile),
		Matches:       make(map[primitive.ObjectID]store.Match),
		SettledDeltas: make(map[string][]int),
		DatabaseName:  "test_db",
	}
}

func profileKey(guildID string, userID string) string {
	return guildID + "|" + userID
}

// defaultConfig returns a config populated with the store defaults
func defaultConfig(guildID string) store.Config {
	return store.Config{
		ID:                    primitive.NewObjectID(),
		GuildID:               guildID,
		MinimumGamesPerPlayer: store.DefaultMinimumGamesPerPlayer,
		PointsGained:          store.DefaultPointsGained,
		PointsLost:            store.DefaultPointsLost,
		PointsPerDraw:         store.DefaultPointsPerDraw,
		BasePoints:            store.DefaultBasePoints,
		EnableDraws:           store.DefaultEnableDraws,
		DeckLimit:             store.DefaultDeckLimit,
	}
}

// SeedSeason inserts a season directly, returning it for convenience
func (m *MockStore) SeedSeason(season store.Season) store.Season {
	m.mu.Lock()
	defer m.mu.Unlock()
	if season.ID.IsZero() {
		season.ID = primitive.NewObjectID()
	}
	m.SeasonsByID[season.ID] = season
	return season
}

// SeedOpenSeason creates and inserts an open season for a guild
func (m *MockStore) SeedOpenSeason(guildID string, name string) store.Season {
	return m.SeedSeason(store.Season{
		GuildID:   guildID,
		Name:      name,
		StartDate: time.Now().UTC(),
	})
}

// SeedConfig inserts a guild config directly
func (m *MockStore) SeedConfig(config store.Config) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Configs[config.GuildID] = config
}

// SeedDeck inserts a deck directly, returning it for convenience
func (m *MockStore) SeedDeck(deck store.Deck) store.Deck {
	m.mu.Lock()
	defer m.mu.Unlock()
	if deck.ID.IsZero() {
		deck.ID = primitive.NewObjectID()
	}
	m.Decks[deck.ID] = deck
	return deck
}

// SeedMatch inserts a match directly, returning it for convenience
func (m *MockStore) SeedMatch(match store.Match) store.Match {
	m.mu.Lock()
	defer m.mu.Unlock()
	if match.ID.IsZero() {
		match.ID = primitive.NewObjectID()
	}
	m.Matches[match.ID] = match
	m.matchOrder = append(m.matchOrder, match.ID)
	return match
}

// ProfilePoints returns the stored point total for a user, zero if absent
func (m *MockStore) ProfilePoints(guildID string, userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Profiles[profileKey(guildID, userID)].Points
}

// region seasons

func (m *MockStore) OpenSeason(guildID string) (store.Season, error) {
	if m.OpenSeasonError != nil {
		return store.Season{}, m.OpenSeasonError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, season := range m.SeasonsByID {
		if season.GuildID == guildID && season.EndDate == nil {
			return season, nil
		}
	}
	return store.Season{}, mongo.ErrNoDocuments
}

func (m *MockStore) SeasonByName(guildID string, name string) (store.Season, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, season := range m.SeasonsByID {
		if season.GuildID == guildID && season.Name == name {
			return season, nil
		}
	}
	return store.Season{}, mongo.ErrNoDocuments
}

func (m *MockStore) CreateSeason(guildID string, name string) (store.Season, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	season := store.Season{
		ID:        primitive.NewObjectID(),
		GuildID:   guildID,
		Name:      name,
		StartDate: time.Now().UTC(),
	}
	m.SeasonsByID[season.ID] = season
	return season, nil
}

func (m *MockStore) CloseSeason(seasonID primitive.ObjectID, endDate time.Time) (store.Season, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	season, ok := m.SeasonsByID[seasonID]
	if !ok || season.EndDate != nil {
		return store.Season{}, mongo.ErrNoDocuments
	}
	season.EndDate = &endDate
	m.SeasonsByID[seasonID] = season
	return season, nil
}

func (m *MockStore) ReopenSeason(seasonID primitive.ObjectID) (store.Season, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	season, ok := m.SeasonsByID[seasonID]
	if !ok || season.EndDate == nil {
		return store.Season{}, mongo.ErrNoDocuments
	}
	season.EndDate = nil
	m.SeasonsByID[seasonID] = season
	return season, nil
}

func (m *MockStore) ListSeasons(guildID string) ([]store.Season, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var seasons []store.Season
	for _, season := range m.SeasonsByID {
		if season.GuildID == guildID {
			seasons = append(seasons, season)
		}
	}
	return seasons, nil
}

// endregion

// region configs

func (m *MockStore) UpsertConfig(guildID string, patch store.ConfigPatch) (store.Config, error) {
	if m.UpsertConfigError != nil {
		return store.Config{}, m.UpsertConfigError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	config, ok := m.Configs[guildID]
	if !ok {
		config = defaultConfig(guildID)
	}
	if patch.MinimumGamesPerPlayer != nil {
		config.MinimumGamesPerPlayer = *patch.MinimumGamesPerPlayer
	}
	if patch.PointsGained != nil {
		config.PointsGained = *patch.PointsGained
	}
	if patch.PointsLost != nil {
		config.PointsLost = *patch.PointsLost
	}
	if patch.PointsPerDraw != nil {
		config.PointsPerDraw = *patch.PointsPerDraw
	}
	if patch.BasePoints != nil {
		config.BasePoints = *patch.BasePoints
	}
	if patch.EnableDraws != nil {
		config.EnableDraws = *patch.EnableDraws
	}
	if patch.DeckLimit != nil {
		config.DeckLimit = *patch.DeckLimit
	}
	if patch.UnsetDisputeRole {
		config.DisputeRoleID = ""
	} else if patch.DisputeRoleID != nil {
		config.DisputeRoleID = *patch.DisputeRoleID
	}
	m.Configs[guildID] = config
	return config, nil
}

// endregion

// region decks

func (m *MockStore) InsertDeck(deck store.Deck) (store.Deck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if deck.ID.IsZero() {
		deck.ID = primitive.NewObjectID()
	}
	m.Decks[deck.ID] = deck
	return deck, nil
}

func (m *MockStore) DeckByID(id primitive.ObjectID) (store.Deck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	deck, ok := m.Decks[id]
	if !ok {
		return store.Deck{}, mongo.ErrNoDocuments
	}
	return deck, nil
}

func (m *MockStore) DeckByOwnerAndName(guildID string, userID string, name string) (store.Deck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, deck := range m.Decks {
		if deck.GuildID == guildID && deck.UserID == userID && deck.Name == name {
			return deck, nil
		}
	}
	return store.Deck{}, mongo.ErrNoDocuments
}

func (m *MockStore) DecksByOwner(guildID string, userID string) ([]store.Deck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var decks []store.Deck
	for _, deck := range m.Decks {
		if deck.GuildID == guildID && deck.UserID == userID {
			decks = append(decks, deck)
		}
	}
	return decks, nil
}

func (m *MockStore) CountDecksByOwner(guildID string, userID string) (int64, error) {
	decks, _ := m.DecksByOwner(guildID, userID)
	return int64(len(decks)), nil
}

func (m *MockStore) RenameDeck(id primitive.ObjectID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	deck, ok := m.Decks[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	deck.Name = name
	m.Decks[id] = deck
	return nil
}

func (m *MockStore) SetDeckList(id primitive.ObjectID, deckList string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	deck, ok := m.Decks[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	deck.DeckList = deckList
	m.Decks[id] = deck
	return nil
}

func (m *MockStore) DeleteDeck(id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Decks[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(m.Decks, id)
	return nil
}

// endregion

// region profiles

func (m *MockStore) FetchProfile(guildID string, userID string) (store.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := profileKey(guildID, userID)
	profile, ok := m.Profiles[key]
	if !ok {
		profile = store.Profile{
			ID:      primitive.NewObjectID(),
			GuildID: guildID,
			UserID:  userID,
		}
		m.Profiles[key] = profile
	}
	return profile, nil
}

func (m *MockStore) SetCurrentDeck(guildID string, userID string, deckID *primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := profileKey(guildID, userID)
	profile, ok := m.Profiles[key]
	if !ok {
		profile = store.Profile{ID: primitive.NewObjectID(), GuildID: guildID, UserID: userID}
	}
	profile.CurrentDeck = deckID
	m.Profiles[key] = profile
	return nil
}

func (m *MockStore) ClearCurrentDeck(deckID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, profile := range m.Profiles {
		if profile.CurrentDeck != nil && *profile.CurrentDeck == deckID {
			profile.CurrentDeck = nil
			m.Profiles[key] = profile
		}
	}
	return nil
}

func (m *MockStore) AdjustPoints(guildID string, userID string, delta int) error {
	if m.AdjustPointsError != nil {
		return m.AdjustPointsError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := profileKey(guildID, userID)
	profile, ok := m.Profiles[key]
	if !ok {
		profile = store.Profile{ID: primitive.NewObjectID(), GuildID: guildID, UserID: userID}
	}
	profile.Points += delta
	m.Profiles[key] = profile
	m.SettledDeltas[userID] = append(m.SettledDeltas[userID], delta)
	return nil
}

func (m *MockStore) ProfilesByGuild(guildID string) ([]store.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var profiles []store.Profile
	for _, profile := range m.Profiles {
		if profile.GuildID == guildID {
			profiles = append(profiles, profile)
		}
	}
	return profiles, nil
}

// endregion

// region matches

func (m *MockStore) InsertMatch(match store.Match) error {
	if m.InsertMatchError != nil {
		return m.InsertMatchError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Matches[match.ID] = match
	m.matchOrder = append(m.matchOrder, match.ID)
	return nil
}

func (m *MockStore) MatchByID(id primitive.ObjectID) (store.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	match, ok := m.Matches[id]
	if !ok {
		return store.Match{}, mongo.ErrNoDocuments
	}
	return match, nil
}

func (m *MockStore) MatchByMessage(messageID string) (store.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, match := range m.Matches {
		if match.MessageID == messageID {
			return match, nil
		}
	}
	return store.Match{}, mongo.ErrNoDocuments
}

func (m *MockStore) DeleteMatch(id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Matches[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(m.Matches, id)
	return nil
}

func (m *MockStore) ConfirmPlayer(matchID primitive.ObjectID, userID string) (store.Match, error) {
	if m.ConfirmPlayerError != nil {
		return store.Match{}, m.ConfirmPlayerError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	match, ok := m.Matches[matchID]
	if !ok || !match.HasPlayer(userID) {
		return store.Match{}, mongo.ErrNoDocuments
	}
	players := make([]store.MatchPlayer, len(match.Players))
	copy(players, match.Players)
	for i := range players {
		if players[i].UserID == userID {
			players[i].Confirmed = true
		}
	}
	match.Players = players
	m.Matches[matchID] = match
	return match, nil
}

func (m *MockStore) FinalizeMatch(matchID primitive.ObjectID, at time.Time) (bool, error) {
	if m.FinalizeMatchError != nil {
		return false, m.FinalizeMatchError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	match, ok := m.Matches[matchID]
	if !ok || match.ConfirmedAt != nil || !match.FullyConfirmed() {
		return false, nil
	}
	match.ConfirmedAt = &at
	m.Matches[matchID] = match
	return true, nil
}

func (m *MockStore) AcceptMatch(matchID primitive.ObjectID, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	match, ok := m.Matches[matchID]
	if !ok || match.ConfirmedAt != nil || match.FullyConfirmed() {
		return false, nil
	}
	players := make([]store.MatchPlayer, len(match.Players))
	copy(players, match.Players)
	for i := range players {
		players[i].Confirmed = true
	}
	match.Players = players
	match.ConfirmedAt = &at
	m.Matches[matchID] = match
	return true, nil
}

func (m *MockStore) SetDisputeThread(matchID primitive.ObjectID, threadID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	match, ok := m.Matches[matchID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	match.DisputeThreadID = threadID
	m.Matches[matchID] = match
	return nil
}

func (m *MockStore) PendingMatches(guildID string, seasonID primitive.ObjectID) ([]store.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matches []store.Match
	for _, id := range m.matchOrder {
		match, ok := m.Matches[id]
		if !ok {
			continue
		}
		if match.GuildID == guildID && match.Season == seasonID && !match.FullyConfirmed() {
			matches = append(matches, match)
		}
	}
	return matches, nil
}

func (m *MockStore) DisputedMatches(guildID string, seasonID primitive.ObjectID) ([]store.Match, error) {
	matches, _ := m.PendingMatches(guildID, seasonID)
	var disputed []store.Match
	for _, match := range matches {
		if match.DisputeThreadID != "" {
			disputed = append(disputed, match)
		}
	}
	return disputed, nil
}

func (m *MockStore) MatchesByPlayer(guildID string, userID string, seasonID *primitive.ObjectID, deckID *primitive.ObjectID) ([]store.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matches []store.Match
	for i := len(m.matchOrder) - 1; i >= 0; i-- {
		match, ok := m.Matches[m.matchOrder[i]]
		if !ok || match.GuildID != guildID {
			continue
		}
		if seasonID != nil && match.Season != *seasonID {
			continue
		}
		for _, player := range match.Players {
			if player.UserID != userID {
				continue
			}
			if deckID != nil && (player.Deck == nil || *player.Deck != *deckID) {
				continue
			}
			matches = append(matches, match)
			break
		}
	}
	return matches, nil
}

func (m *MockStore) CountConfirmedMatches(guildID string, seasonID primitive.ObjectID, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, match := range m.Matches {
		if match.GuildID == guildID && match.Season == seasonID && match.ConfirmedAt != nil && match.HasPlayer(userID) {
			count++
		}
	}
	return count, nil
}

func (m *MockStore) CountMatchesBySeason(seasonID primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, match := range m.Matches {
		if match.Season == seasonID {
			count++
		}
	}
	return count, nil
}

// endregion

// GetDatabase returns the mock database instance
func (m *MockStore) GetDatabase() interface{ Name() string } {
	return &mockDatabase{name: m.DatabaseName}
}

// GetClient returns the mock client
func (m *MockStore) GetClient() interface{ Disconnect(context.Context) error } {
	return &mockClient{}
}

// Ensure MockStore implements the store Interface
var _ store.Interface = (*MockStore)(nil)

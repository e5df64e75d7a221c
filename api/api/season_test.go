/* season_test.go
 * Contains unit tests for the season controller transitions
 * Authors: Zachary Bower
 */

package api

import (
	"errors"
	"testing"
	"time"

	"league-bot/api/store"
)

// region StartSeason tests

func TestStartSeason_Success(t *testing.T) {
	mockStore := NewMockStore()
	api := &API{Store: mockStore}

	season, err := api.StartSeason("guild1", "Season One")
	if err != nil {
		t.Fatalf("Expected no error, got: %s", err.Error())
	}
	if !season.Open() {
		t.Error("Expected the new season to be open")
	}
	if season.Name != "Season One" {
		t.Errorf("Expected name Season One, got %s", season.Name)
	}
}

func TestStartSeason_AlreadyOpen(t *testing.T) {
	mockStore := NewMockStore()
	mockStore.SeedOpenSeason("guild1", "Season One")
	api := &API{Store: mockStore}

	_, err := api.StartSeason("guild1", "Season Two")
	if !errors.Is(err, ErrSeasonAlreadyOpen) {
		t.Errorf("Expected ErrSeasonAlreadyOpen, got: %v", err)
	}
}

func TestStartSeason_NameTaken(t *testing.T) {
	mockStore := NewMockStore()
	past := time.Now().UTC().Add(-24 * time.Hour)
	mockStore.SeedSeason(store.Season{GuildID: "guild1", Name: "Season One", StartDate: past.Add(-time.Hour), EndDate: &past})
	api := &API{Store: mockStore}

	_, err := api.StartSeason("guild1", "Season One")
	if !errors.Is(err, ErrSeasonNameTaken) {
		t.Errorf("Expected ErrSeasonNameTaken, got: %v", err)
	}
}

func TestStartSeason_OtherGuildUnaffected(t *testing.T) {
	mockStore := NewMockStore()
	mockStore.SeedOpenSeason("guild1", "Season One")
	api := &API{Store: mockStore}

	if _, err := api.StartSeason("guild2", "Season One"); err != nil {
		t.Errorf("Expected another guild's open season not to block, got: %v", err)
	}
}

// endregion

// region EndSeason tests

func TestEndSeason_Success(t *testing.T) {
	mockStore := NewMockStore()
	mockStore.SeedOpenSeason("guild1", "Season One")
	api := &API{Store: mockStore}

	closed, err := api.EndSeason("guild1")
	if err != nil {
		t.Fatalf("Expected no error, got: %s", err.Error())
	}
	if closed.Open() {
		t.Error("Expected the season closed")
	}

	if _, err := api.EndSeason("guild1"); !errors.Is(err, ErrNoActiveSeason) {
		t.Errorf("Expected ErrNoActiveSeason after closing, got: %v", err)
	}
}

// endregion

// region ReopenSeason tests

func TestReopenSeason_Success(t *testing.T) {
	mockStore := NewMockStore()
	mockStore.SeedOpenSeason("guild1", "Season One")
	api := &API{Store: mockStore}

	if _, err := api.EndSeason("guild1"); err != nil {
		t.Fatalf("Failed to close season: %s", err.Error())
	}

	reopened, err := api.ReopenSeason("guild1", "Season One")
	if err != nil {
		t.Fatalf("Expected no error, got: %s", err.Error())
	}
	if !reopened.Open() {
		t.Error("Expected the season reopened")
	}
}

func TestReopenSeason_BlockedByOpenSeason(t *testing.T) {
	mockStore := NewMockStore()
	past := time.Now().UTC().Add(-24 * time.Hour)
	mockStore.SeedSeason(store.Season{GuildID: "guild1", Name: "Season One", StartDate: past.Add(-time.Hour), EndDate: &past})
	mockStore.SeedOpenSeason("guild1", "Season Two")
	api := &API{Store: mockStore}

	if _, err := api.ReopenSeason("guild1", "Season One"); !errors.Is(err, ErrSeasonAlreadyOpen) {
		t.Errorf("Expected ErrSeasonAlreadyOpen, got: %v", err)
	}
}

func TestReopenSeason_UnknownName(t *testing.T) {
	mockStore := NewMockStore()
	api := &API{Store: mockStore}

	if _, err := api.ReopenSeason("guild1", "No Such Season"); !errors.Is(err, ErrSeasonNotFound) {
		t.Errorf("Expected ErrSeasonNotFound, got: %v", err)
	}
}

// endregion

// region SeasonInfo tests

func TestSeasonInfo_OpenSeasonDefault(t *testing.T) {
	mockStore := NewMockStore()
	season := mockStore.SeedOpenSeason("guild1", "Season One")
	seedPendingMatch(mockStore, "guild1", season.ID, "user1")
	seedPendingMatch(mockStore, "guild1", season.ID, "user2")
	api := &API{Store: mockStore}

	info, err := api.SeasonInfo("guild1", "")
	if err != nil {
		t.Fatalf("Expected no error, got: %s", err.Error())
	}
	if info.Season.ID != season.ID {
		t.Error("Expected the open season by default")
	}
	if info.MatchesPlayed != 2 {
		t.Errorf("Expected 2 matches counted, got %d", info.MatchesPlayed)
	}
}

func TestSeasonInfo_ByName(t *testing.T) {
	mockStore := NewMockStore()
	past := time.Now().UTC().Add(-24 * time.Hour)
	mockStore.SeedSeason(store.Season{GuildID: "guild1", Name: "Season One", StartDate: past.Add(-time.Hour), EndDate: &past})
	api := &API{Store: mockStore}

	info, err := api.SeasonInfo("guild1", "Season One")
	if err != nil {
		t.Fatalf("Expected no error, got: %s", err.Error())
	}
	if info.Season.Name != "Season One" {
		t.Errorf("Expected Season One, got %s", info.Season.Name)
	}

	if _, err := api.SeasonInfo("guild1", "No Such Season"); !errors.Is(err, ErrSeasonNotFound) {
		t.Errorf("Expected ErrSeasonNotFound, got: %v", err)
	}
	if _, err := api.SeasonInfo("guild2", ""); !errors.Is(err, ErrNoActiveSeason) {
		t.Errorf("Expected ErrNoActiveSeason, got: %v", err)
	}
}

// endregion

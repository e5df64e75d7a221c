/* validation_test.go
 * Contains unit tests for roster and deck list validation
 * Authors: Zachary Bower
 */

package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDeckList(t *testing.T) {
	tests := []struct {
		name     string
		deckList string
		want     bool
	}{
		{"moxfield", "https://moxfield.com/decks/abc123", true},
		{"moxfield with www", "https://www.moxfield.com/decks/abc123", true},
		{"archidekt", "https://archidekt.com/decks/123", true},
		{"tappedout", "https://tappedout.net/mtg-decks/my-deck/", true},
		{"deckstats", "https://deckstats.net/decks/1/1", true},
		{"aetherhub", "https://aetherhub.com/Deck/my-deck", true},
		{"tcgplayer", "https://tcgplayer.com/content/deck/1", true},
		{"scryfall", "https://scryfall.com/@user/decks/1", true},
		{"uppercase host", "https://MOXFIELD.COM/decks/abc", true},
		{"unknown host", "https://example.com/decks/abc", false},
		{"subdomain is not the allowed host", "https://decks.moxfield.com.evil.com/x", false},
		{"no host", "not a url", false},
		{"empty", "", false},
		{"relative path", "/decks/abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateDeckList(tt.deckList))
		})
	}
}

func TestUniquePlayers(t *testing.T) {
	assert.True(t, UniquePlayers([]string{"a", "b", "c", "d"}))
	assert.True(t, UniquePlayers([]string{"a", "b", "c"}))
	assert.False(t, UniquePlayers([]string{"a", "b", "c", "a"}))
	assert.False(t, UniquePlayers([]string{"a", "a", "a", "a"}))
	assert.True(t, UniquePlayers(nil))
}

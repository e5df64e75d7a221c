/* validation.go
 * Contains input validation helpers: player roster uniqueness and deck list URL checking
 * Authors: Zachary Bower
 */

package logic

import (
	"net/url"
	"strings"
)

// validHosts is the fixed allow-list of deck building sites a deck list URL may point to
var validHosts = []string{
	"tappedout.net",
	"deckstats.net",
	"aetherhub.com",
	"moxfield.com",
	"tcgplayer.com",
	"archidekt.com",
	"scryfall.com",
}

// ValidateDeckList checks that a deck list URL parses and resolves to an allow-listed
// hostname. A leading "www." is stripped and the comparison is case insensitive.
// Unparsable URLs are invalid input, not an error
// Preconditions: Receives string containing the candidate URL
// Postconditions: Returns true if the URL may be stored, else false
func ValidateDeckList(deckList string) bool {
	parsed, err := url.Parse(deckList)
	if err != nil {
		return false
	}

	hostname := strings.ToLower(parsed.Hostname())
	hostname = strings.TrimPrefix(hostname, "www.")
	if hostname == "" {
		return false
	}

	for _, host := range validHosts {
		if hostname == host {
			return true
		}
	}
	return false
}

// UniquePlayers checks that a match roster contains no repeated user ids
// Preconditions: Receives string slice of user ids
// Postconditions: Returns true if all ids are pairwise distinct, else false
func UniquePlayers(playerIDs []string) bool {
	seen := make(map[string]bool, len(playerIDs))
	for _, id := range playerIDs {
		if seen[id] {
			return false
		}
		seen[id] = true
	}
	return true
}

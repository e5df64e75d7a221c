/* filters.go
 * Contains parsing for the match list filter string. Filters are written as
 * `deck:"Some Deck" season:"Some Season"` and split on spaces while honouring
 * double quotes, so multi word names stay intact
 * Authors: Zachary Bower
 */

package logic

import (
	"fmt"
	"strings"

	"github.com/go-andiamo/splitter"
)

// MatchFilter holds the optional constraints for a match list query. Empty strings
// mean the constraint was not provided
type MatchFilter struct {
	Deck   string
	Season string
}

// ParseMatchFilter parses a filter string of key:value pairs into a MatchFilter.
// Recognised keys are deck and season; anything else is rejected as invalid input
// Preconditions: Receives the raw filter string, which may be empty
// Postconditions: Returns the parsed MatchFilter, or an error describing the bad token
func ParseMatchFilter(input string) (MatchFilter, error) {
	var filter MatchFilter

	input = strings.TrimSpace(input)
	if input == "" {
		return filter, nil
	}

	// we use splitter here instead of strings.Fields so quoted values with spaces
	// e.g. deck:"Niv to Light" are recognised as one token, not three
	spaceSplitter, _ := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	tokens, err := spaceSplitter.Split(input)
	if err != nil {
		return MatchFilter{}, fmt.Errorf("invalid filter string: %w", err)
	}

	for _, token := range tokens {
		if strings.TrimSpace(token) == "" {
			continue
		}

		key, value, found := strings.Cut(token, ":")
		if !found {
			return MatchFilter{}, fmt.Errorf("invalid filter '%s', expected key:value", token)
		}
		value = trimQuotes(value)
		if value == "" {
			return MatchFilter{}, fmt.Errorf("filter '%s' has no value", key)
		}

		switch strings.ToLower(key) {
		case "deck":
			filter.Deck = value
		case "season":
			filter.Season = value
		default:
			return MatchFilter{}, fmt.Errorf("unknown filter key '%s'", key)
		}
	}
	return filter, nil
}

// trimQuotes removes surrounding straight or typographic double quotes from a value
func trimQuotes(value string) string {
	value = strings.TrimSpace(value)
	for _, pair := range [][2]string{{`"`, `"`}, {"“", "”"}, {"„", "“"}} {
		if strings.HasPrefix(value, pair[0]) && strings.HasSuffix(value, pair[1]) && len(value) >= len(pair[0])+len(pair[1]) {
			return value[len(pair[0]) : len(value)-len(pair[1])]
		}
	}
	return value
}

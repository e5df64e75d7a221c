/* names.go
 * Contains fuzzy name resolution used to match user supplied deck and season names
 * against the stored ones
 * Authors: Zachary Bower
 */

package logic

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ResolveName matches user input against a list of stored names. An exact match
// (case insensitive) always wins; otherwise the best ranked fuzzy match is used
// so minor typos still resolve
// Preconditions: Receives the input string and the slice of candidate names
// Postconditions: Returns the canonical stored name and true, or "" and false if
// nothing matches
func ResolveName(input string, candidates []string) (string, bool) {
	if input == "" || len(candidates) == 0 {
		return "", false
	}

	// Convert candidates to lowercase for better matching
	lookup := make(map[string]string, len(candidates))
	var candidatesLower []string
	for _, name := range candidates {
		lower := strings.ToLower(name)
		lookup[lower] = name
		candidatesLower = append(candidatesLower, lower)
	}

	lowerInput := strings.ToLower(input)
	if name, ok := lookup[lowerInput]; ok {
		return name, true
	}

	fuzzyResults := fuzzy.RankFind(lowerInput, candidatesLower)
	if len(fuzzyResults) == 0 {
		return "", false
	}

	// Lower rank means a closer match
	best := fuzzyResults[0]
	for _, result := range fuzzyResults[1:] {
		if result.Distance < best.Distance {
			best = result
		}
	}
	return lookup[best.Target], true
}

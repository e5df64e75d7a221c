/* errors.go
 * Contains the sentinel errors for precondition violations and lookups. These are always
 * reported to the acting user as a direct, non retriable ephemeral message; anything else
 * that bubbles out of this package is an infrastructure failure and surfaces generically
 * Authors: Zachary Bower
 */

package api

import "errors"

var (
	// Match lifecycle preconditions
	ErrNoActiveSeason        = errors.New("there is no active season")
	ErrDuplicatePlayers      = errors.New("all players in a match must be unique")
	ErrDrawsDisabled         = errors.New("draws are not enabled in this server")
	ErrNotAParticipant       = errors.New("you are not a player in this match")
	ErrAlreadyFinalized      = errors.New("this match has already been confirmed")
	ErrAlreadyFullyConfirmed = errors.New("this match has already been confirmed by all players")
	ErrCrossGuildMatch       = errors.New("that match is from another server")

	// Season controller preconditions
	ErrSeasonAlreadyOpen = errors.New("there is already an active season")
	ErrSeasonNameTaken   = errors.New("there is already a season with that name")
	ErrSeasonNotClosed   = errors.New("that season has not ended")

	// Deck manager preconditions
	ErrDeckLimitReached = errors.New("you have reached the deck limit for this server")
	ErrDeckNameTaken    = errors.New("you already have a deck with that name")
	ErrInvalidDeckList  = errors.New("that deck list is not a link to a supported deck building site")

	// Lookups
	ErrMatchNotFound  = errors.New("there is no match with that id")
	ErrSeasonNotFound = errors.New("there is no season with that name")
	ErrDeckNotFound   = errors.New("you have no deck with that name")
)

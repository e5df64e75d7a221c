/* config.go
 * Contains the config controller. Every setter goes through one store round trip that
 * applies the (possibly empty) patch and reads back the effective config, so a subcommand
 * invoked without a value simply reports the current setting
 * Authors: Zachary Bower
 */

package api

import (
	"league-bot/api/store"
)

// UpdateConfig applies a typed partial update to the guild's config and returns the
// resulting document, creating it with defaults on first touch
// Postconditions: Returns the effective Config, or an infrastructure error
func (a *API) UpdateConfig(guildID string, patch store.ConfigPatch) (store.Config, error) {
	return a.Store.UpsertConfig(guildID, patch)
}

// GuildConfig reads the guild's config without changing it
func (a *API) GuildConfig(guildID string) (store.Config, error) {
	return a.Store.UpsertConfig(guildID, store.ConfigPatch{})
}

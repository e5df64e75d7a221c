/* bot_test.go
 * Contains unit tests for bot creation and command definitions
 * Authors: Zachary Bower
 */

package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"league-bot/api/api"
)

func TestNewBot_RequiresToken(t *testing.T) {
	_, err := NewBot("", &api.API{}, "")
	assert.Error(t, err)
}

func TestNewBot_Defaults(t *testing.T) {
	bot, err := NewBot("token", &api.API{}, "guild1")
	require.NoError(t, err)
	assert.Equal(t, "guild1", bot.GuildID)
	assert.NotNil(t, bot.prompts)
	assert.NotNil(t, bot.editLimiter)
	assert.NotZero(t, bot.ConfirmTimeout)
	assert.NotZero(t, bot.ReopenTimeout)
}

func TestCommandDefinitions_CoverEveryHandler(t *testing.T) {
	bot, err := NewBot("token", &api.API{}, "")
	require.NoError(t, err)

	handlers := bot.commandHandlers()
	defined := make(map[string]bool)
	for _, command := range commandDefinitions() {
		defined[command.Name] = true
		assert.NotEmpty(t, command.Description, "command %s has no description", command.Name)
	}

	for name := range handlers {
		assert.True(t, defined[name], "handler %s has no command definition", name)
	}
	for name := range defined {
		_, ok := handlers[name]
		assert.True(t, ok, "command %s has no handler", name)
	}
}

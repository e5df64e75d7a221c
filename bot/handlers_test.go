/* handlers_test.go
 * Contains unit tests for the interaction handlers using MockDiscordSession and the
 * in memory store mock
 * Authors: Zachary Bower
 */

package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"league-bot/api/api"
	"league-bot/api/store"
)

// newTestBot wires a bot to the in memory store mock with short prompt timeouts
func newTestBot(mockStore *api.MockStore) *Bot {
	bot, _ := NewBot("token", &api.API{Store: mockStore}, "")
	bot.ConfirmTimeout = time.Second
	bot.ReopenTimeout = time.Second
	return bot
}

func commandInteraction(data discordgo.ApplicationCommandInteractionData, userID string, admin bool) *discordgo.InteractionCreate {
	var permissions int64
	if admin {
		permissions = discordgo.PermissionManageGuild
	}
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:      discordgo.InteractionApplicationCommand,
		GuildID:   "guild1",
		ChannelID: "channel1",
		Member: &discordgo.Member{
			User:        &discordgo.User{ID: userID, Username: "tester"},
			Permissions: permissions,
		},
		Data: data,
	}}
}

func componentInteraction(customID string, messageID string, userID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:      discordgo.InteractionMessageComponent,
		GuildID:   "guild1",
		ChannelID: "channel1",
		Member:    &discordgo.Member{User: &discordgo.User{ID: userID, Username: "tester"}},
		Message:   &discordgo.Message{ID: messageID, ChannelID: "channel1"},
		Data:      discordgo.MessageComponentInteractionData{CustomID: customID},
	}}
}

func userOption(name string, userID string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Type: discordgo.ApplicationCommandOptionUser, Name: name, Value: userID,
	}
}

func stringOpt(name string, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Type: discordgo.ApplicationCommandOptionString, Name: name, Value: value,
	}
}

func subCommand(name string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Type: discordgo.ApplicationCommandOptionSubCommand, Name: name, Options: options,
	}
}

// promptNonce extracts the nonce from a prompt response's confirm button
func promptNonce(t *testing.T, response MockResponse) string {
	require.NotEmpty(t, response.Components)
	row, ok := response.Components[0].(discordgo.ActionsRow)
	require.True(t, ok)
	button, ok := row.Components[0].(discordgo.Button)
	require.True(t, ok)
	parts := strings.Split(button.CustomID, ":")
	require.Len(t, parts, 3)
	return parts[1]
}

// waitFor polls a condition until it holds or the deadline passes
func waitFor(t *testing.T, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

// region log command

func TestLogHandler_SendsConfirmationMessage(t *testing.T) {
	mockStore := api.NewMockStore()
	mockStore.SeedOpenSeason("guild1", "Season One")
	bot := newTestBot(mockStore)
	session := NewMockDiscordSession()

	interaction := commandInteraction(discordgo.ApplicationCommandInteractionData{
		Name: "log",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			userOption("player1", "user2"),
			userOption("player2", "user3"),
			userOption("player3", "user4"),
		},
	}, "user1", false)

	bot.onInteraction(session, interaction)

	message := session.GetLastMessage()
	require.NotEmpty(t, message.MessageID)
	assert.NotEmpty(t, message.Components, "Match message should carry buttons")
	require.Len(t, message.Embeds, 1)
	assert.Contains(t, message.Embeds[0].Description, "<@user1>")

	stored, err := mockStore.MatchByMessage(message.MessageID)
	require.NoError(t, err)
	assert.Equal(t, "user1", stored.WinnerUserID)
	assert.Len(t, stored.Players, 4)

	response := session.GetLastResponse()
	assert.True(t, response.Ephemeral)
	assert.Contains(t, response.Content, "Match logged")
}

func TestLogHandler_NoSeasonIsEphemeralError(t *testing.T) {
	mockStore := api.NewMockStore()
	bot := newTestBot(mockStore)
	session := NewMockDiscordSession()

	interaction := commandInteraction(discordgo.ApplicationCommandInteractionData{
		Name: "log",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			userOption("player1", "user2"),
			userOption("player2", "user3"),
			userOption("player3", "user4"),
		},
	}, "user1", false)

	bot.onInteraction(session, interaction)

	response := session.GetLastResponse()
	assert.True(t, response.Ephemeral)
	assert.Equal(t, api.ErrNoActiveSeason.Error(), response.Content)
	assert.Empty(t, session.SentMessages, "No match message should be posted")
}

// endregion

// region match buttons

func seedBotMatch(mockStore *api.MockStore, winnerID string) store.Match {
	season := mockStore.SeedOpenSeason("guild1", "Season One")
	return mockStore.SeedMatch(store.Match{
		GuildID:      "guild1",
		ChannelID:    "channel1",
		MessageID:    "message1",
		Season:       season.ID,
		WinnerUserID: winnerID,
		Players: []store.MatchPlayer{
			{UserID: "user1"}, {UserID: "user2"}, {UserID: "user3"}, {UserID: "user4"},
		},
	})
}

func TestConfirmButton_FullFlow(t *testing.T) {
	mockStore := api.NewMockStore()
	seedBotMatch(mockStore, "user1")
	bot := newTestBot(mockStore)
	session := NewMockDiscordSession()

	for _, userID := range []string{"user1", "user2", "user3"} {
		bot.onInteraction(session, componentInteraction(matchConfirmID, "message1", userID))
		response := session.GetLastResponse()
		assert.True(t, response.Ephemeral)
		assert.Contains(t, response.Content, "recorded")
	}

	bot.onInteraction(session, componentInteraction(matchConfirmID, "message1", "user4"))
	response := session.GetLastResponse()
	assert.Contains(t, response.Content, "points have been awarded")

	// every press re-rendered the match message, the last one without buttons
	require.NotEmpty(t, session.EditedMessages)
	final := session.EditedMessages[len(session.EditedMessages)-1]
	assert.Equal(t, "message1", final.MessageID)
	assert.Empty(t, final.Components)

	assert.Equal(t, store.DefaultPointsGained, mockStore.ProfilePoints("guild1", "user1"))
	assert.Equal(t, -store.DefaultPointsLost, mockStore.ProfilePoints("guild1", "user2"))
}

func TestConfirmButton_NonParticipant(t *testing.T) {
	mockStore := api.NewMockStore()
	seedBotMatch(mockStore, "user1")
	bot := newTestBot(mockStore)
	session := NewMockDiscordSession()

	bot.onInteraction(session, componentInteraction(matchConfirmID, "message1", "outsider"))
	response := session.GetLastResponse()
	assert.True(t, response.Ephemeral)
	assert.Equal(t, api.ErrNotAParticipant.Error(), response.Content)
	assert.Empty(t, session.EditedMessages)
}

func TestDisputeButton_OpensThread(t *testing.T) {
	mockStore := api.NewMockStore()
	match := seedBotMatch(mockStore, "user1")
	mockStore.SeedConfig(store.Config{
		GuildID: "guild1", DisputeRoleID: "role9",
		MinimumGamesPerPlayer: store.DefaultMinimumGamesPerPlayer,
		DeckLimit:             store.DefaultDeckLimit,
	})
	bot := newTestBot(mockStore)
	session := NewMockDiscordSession()

	bot.onInteraction(session, componentInteraction(matchDisputeID, "message1", "user2"))

	require.Len(t, session.StartedThreads, 1)
	thread := session.StartedThreads[0]
	assert.Equal(t, "message1", thread.MessageID)

	stored, err := mockStore.MatchByID(match.ID)
	require.NoError(t, err)
	assert.Equal(t, thread.ThreadID, stored.DisputeThreadID)

	opening := session.GetLastMessage()
	assert.Equal(t, thread.ThreadID, opening.ChannelID)
	assert.Contains(t, opening.Content, "<@&role9>")

	// a second dispute does not open another thread
	bot.onInteraction(session, componentInteraction(matchDisputeID, "message1", "user3"))
	assert.Len(t, session.StartedThreads, 1)
	assert.Contains(t, session.GetLastResponse().Content, "already has an open dispute")
}

func TestCancelButton_RemovesMatchAndMessage(t *testing.T) {
	mockStore := api.NewMockStore()
	match := seedBotMatch(mockStore, "user1")
	require.NoError(t, mockStore.SetDisputeThread(match.ID, "thread1"))
	bot := newTestBot(mockStore)
	session := NewMockDiscordSession()

	bot.onInteraction(session, componentInteraction(matchCancelID, "message1", "user3"))

	_, err := mockStore.MatchByID(match.ID)
	assert.Error(t, err, "Match row should be deleted")
	require.Len(t, session.DeletedMessages, 1)
	assert.Equal(t, "message1", session.DeletedMessages[0].MessageID)
	assert.Equal(t, []string{"thread1"}, session.DeletedChannels)
}

// endregion

// region admin gates and prompts

func TestMatchAccept_RequiresManageGuild(t *testing.T) {
	mockStore := api.NewMockStore()
	match := seedBotMatch(mockStore, "user1")
	bot := newTestBot(mockStore)
	session := NewMockDiscordSession()

	interaction := commandInteraction(discordgo.ApplicationCommandInteractionData{
		Name:    "match",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{subCommand("accept", stringOpt("id", match.ID.Hex()))},
	}, "user1", false)
	bot.onInteraction(session, interaction)

	response := session.GetLastResponse()
	assert.True(t, response.Ephemeral)
	assert.Contains(t, response.Content, "Manage Server")

	stored, _ := mockStore.MatchByID(match.ID)
	assert.False(t, stored.Finalized())
}

func TestMatchAccept_AdminSettles(t *testing.T) {
	mockStore := api.NewMockStore()
	match := seedBotMatch(mockStore, "user1")
	bot := newTestBot(mockStore)
	session := NewMockDiscordSession()

	interaction := commandInteraction(discordgo.ApplicationCommandInteractionData{
		Name:    "match",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{subCommand("accept", stringOpt("id", match.ID.Hex()))},
	}, "admin1", true)
	bot.onInteraction(session, interaction)

	stored, err := mockStore.MatchByID(match.ID)
	require.NoError(t, err)
	assert.True(t, stored.Finalized())
	assert.Equal(t, store.DefaultPointsGained, mockStore.ProfilePoints("guild1", "user1"))
	assert.Contains(t, session.GetLastResponse().Content, "confirmed")
}

func TestMatchPending_RequiresManageGuild(t *testing.T) {
	mockStore := api.NewMockStore()
	seedBotMatch(mockStore, "user1")
	bot := newTestBot(mockStore)
	session := NewMockDiscordSession()

	interaction := commandInteraction(discordgo.ApplicationCommandInteractionData{
		Name:    "match",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{subCommand("pending")},
	}, "user1", false)
	bot.onInteraction(session, interaction)

	response := session.GetLastResponse()
	assert.True(t, response.Ephemeral)
	assert.Contains(t, response.Content, "Manage Server")
	assert.NotContains(t, response.Content, "waiting on confirmations")
}

func TestMatchPending_AdminSeesList(t *testing.T) {
	mockStore := api.NewMockStore()
	match := seedBotMatch(mockStore, "user1")
	bot := newTestBot(mockStore)
	session := NewMockDiscordSession()

	interaction := commandInteraction(discordgo.ApplicationCommandInteractionData{
		Name:    "match",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{subCommand("pending")},
	}, "admin1", true)
	bot.onInteraction(session, interaction)

	response := session.GetLastResponse()
	assert.True(t, response.Ephemeral)
	assert.Contains(t, response.Content, "waiting on confirmations")
	assert.Contains(t, response.Content, match.ID.Hex())
}

func TestMatchDisputed_RequiresManageGuild(t *testing.T) {
	mockStore := api.NewMockStore()
	seedBotMatch(mockStore, "user1")
	bot := newTestBot(mockStore)
	session := NewMockDiscordSession()

	interaction := commandInteraction(discordgo.ApplicationCommandInteractionData{
		Name:    "match",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{subCommand("disputed")},
	}, "user1", false)
	bot.onInteraction(session, interaction)

	response := session.GetLastResponse()
	assert.True(t, response.Ephemeral)
	assert.Contains(t, response.Content, "Manage Server")
}

func TestSeasonEnd_PromptConfirmed(t *testing.T) {
	mockStore := api.NewMockStore()
	mockStore.SeedOpenSeason("guild1", "Season One")
	bot := newTestBot(mockStore)
	session := NewMockDiscordSession()

	interaction := commandInteraction(discordgo.ApplicationCommandInteractionData{
		Name:    "season",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{subCommand("end")},
	}, "admin1", true)

	done := make(chan struct{})
	go func() {
		bot.onInteraction(session, interaction)
		close(done)
	}()

	waitFor(t, func() bool { return session.ResponseCount() >= 1 })
	nonce := promptNonce(t, session.GetLastResponse())
	bot.onInteraction(session, componentInteraction(promptIDPrefix+nonce+":"+promptConfirmID, "prompt_message", "admin1"))
	<-done

	assert.Contains(t, session.GetLastResponseEdit().Content, "has ended")
	_, err := mockStore.OpenSeason("guild1")
	assert.Error(t, err, "Season should be closed")
}

func TestSeasonEnd_WrongUserThenTimeout(t *testing.T) {
	mockStore := api.NewMockStore()
	mockStore.SeedOpenSeason("guild1", "Season One")
	bot := newTestBot(mockStore)
	bot.ConfirmTimeout = 150 * time.Millisecond
	session := NewMockDiscordSession()

	interaction := commandInteraction(discordgo.ApplicationCommandInteractionData{
		Name:    "season",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{subCommand("end")},
	}, "admin1", true)

	done := make(chan struct{})
	go func() {
		bot.onInteraction(session, interaction)
		close(done)
	}()

	waitFor(t, func() bool { return session.ResponseCount() >= 1 })
	nonce := promptNonce(t, session.GetLastResponse())

	// someone else pressing confirm must not resolve the prompt
	bot.onInteraction(session, componentInteraction(promptIDPrefix+nonce+":"+promptConfirmID, "prompt_message", "bystander"))
	assert.Contains(t, session.GetLastResponse().Content, "Only the player")

	<-done
	assert.Contains(t, session.GetLastResponseEdit().Content, "Timed out")
	_, err := mockStore.OpenSeason("guild1")
	assert.NoError(t, err, "Season should still be open after a timeout")
}

func TestMatchAcceptAll_PromptDeclined(t *testing.T) {
	mockStore := api.NewMockStore()
	match := seedBotMatch(mockStore, "user1")
	bot := newTestBot(mockStore)
	session := NewMockDiscordSession()

	interaction := commandInteraction(discordgo.ApplicationCommandInteractionData{
		Name:    "match",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{subCommand("accept-all")},
	}, "admin1", true)

	done := make(chan struct{})
	go func() {
		bot.onInteraction(session, interaction)
		close(done)
	}()

	waitFor(t, func() bool { return session.ResponseCount() >= 1 })
	nonce := promptNonce(t, session.GetLastResponse())
	bot.onInteraction(session, componentInteraction(promptIDPrefix+nonce+":"+promptCancelID, "prompt_message", "admin1"))
	<-done

	assert.Contains(t, session.GetLastResponseEdit().Content, "Nothing was confirmed")
	pending, err := mockStore.PendingMatches("guild1", match.Season)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestMatchAcceptAll_PromptConfirmed(t *testing.T) {
	mockStore := api.NewMockStore()
	seedBotMatch(mockStore, "user1")
	bot := newTestBot(mockStore)
	session := NewMockDiscordSession()

	interaction := commandInteraction(discordgo.ApplicationCommandInteractionData{
		Name:    "match",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{subCommand("accept-all")},
	}, "admin1", true)

	done := make(chan struct{})
	go func() {
		bot.onInteraction(session, interaction)
		close(done)
	}()

	waitFor(t, func() bool { return session.ResponseCount() >= 1 })
	nonce := promptNonce(t, session.GetLastResponse())
	bot.onInteraction(session, componentInteraction(promptIDPrefix+nonce+":"+promptConfirmID, "prompt_message", "admin1"))
	<-done

	assert.Contains(t, session.GetLastResponseEdit().Content, "Confirmed 1 pending matches")
	assert.Equal(t, store.DefaultPointsGained, mockStore.ProfilePoints("guild1", "user1"))

	// the match message lost its buttons
	require.NotEmpty(t, session.EditedMessages)
	assert.Empty(t, session.EditedMessages[len(session.EditedMessages)-1].Components)
}

// endregion

// region config and deck commands

func TestConfigHandler_SetAndShow(t *testing.T) {
	mockStore := api.NewMockStore()
	bot := newTestBot(mockStore)
	session := NewMockDiscordSession()

	set := commandInteraction(discordgo.ApplicationCommandInteractionData{
		Name: "config",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			subCommand("points-gained", &discordgo.ApplicationCommandInteractionDataOption{
				Type: discordgo.ApplicationCommandOptionInteger, Name: "value", Value: float64(25),
			}),
		},
	}, "admin1", true)
	bot.onInteraction(session, set)
	assert.Contains(t, session.GetLastResponse().Content, "Points for a win: 25")

	// invoking a setter without a value reports the current settings
	show := commandInteraction(discordgo.ApplicationCommandInteractionData{
		Name:    "config",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{subCommand("points-gained")},
	}, "admin1", true)
	bot.onInteraction(session, show)
	assert.Contains(t, session.GetLastResponse().Content, "Points for a win: 25")

	denied := commandInteraction(discordgo.ApplicationCommandInteractionData{
		Name:    "config",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{subCommand("show")},
	}, "user1", false)
	bot.onInteraction(session, denied)
	assert.Contains(t, session.GetLastResponse().Content, "Manage Server")
}

func TestDeckHandler_CreateAndList(t *testing.T) {
	mockStore := api.NewMockStore()
	bot := newTestBot(mockStore)
	session := NewMockDiscordSession()

	create := commandInteraction(discordgo.ApplicationCommandInteractionData{
		Name: "deck",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			subCommand("create", stringOpt("name", "Niv to Light"), stringOpt("list", "https://moxfield.com/decks/abc")),
		},
	}, "user1", false)
	bot.onInteraction(session, create)
	assert.Contains(t, session.GetLastResponse().Content, "created and selected")

	list := commandInteraction(discordgo.ApplicationCommandInteractionData{
		Name:    "deck",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{subCommand("list")},
	}, "user1", false)
	bot.onInteraction(session, list)
	response := session.GetLastResponse()
	assert.Contains(t, response.Content, "Niv to Light")
	assert.Contains(t, response.Content, "[selected]")
}

// endregion

// region dispatcher

func TestOnInteraction_RecoversFromPanicWithReply(t *testing.T) {
	mockStore := api.NewMockStore()
	bot := newTestBot(mockStore)
	session := NewMockDiscordSession()

	// a component press with no originating message makes the confirm handler panic
	interaction := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:      discordgo.InteractionMessageComponent,
		GuildID:   "guild1",
		ChannelID: "channel1",
		Member:    &discordgo.Member{User: &discordgo.User{ID: "user1", Username: "tester"}},
		Data:      discordgo.MessageComponentInteractionData{CustomID: matchConfirmID},
	}}

	assert.NotPanics(t, func() {
		bot.onInteraction(session, interaction)
	})

	response := session.GetLastResponse()
	assert.True(t, response.Ephemeral)
	assert.Contains(t, response.Content, "Something went wrong")
}

// endregion

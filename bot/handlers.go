/* handlers.go
 * Contains testable handler methods that accept the DiscordSession interface. All
 * interaction traffic is routed here by custom id or command name; precondition errors
 * from the API surface as ephemeral replies to the acting user and anything else is
 * logged and reported generically
 * Authors: Zachary Bower
 */

package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"league-bot/api/api"
	"league-bot/api/shared"
	"league-bot/api/store"
)

type interactionHandler func(session DiscordSession, i *discordgo.InteractionCreate)

// onInteraction routes every interaction to its handler by command name or custom id
func (b *Bot) onInteraction(session DiscordSession, i *discordgo.InteractionCreate) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("panic handling interaction: %v", r)
			b.respond(session, i, "Something went wrong handling that, please try again", true)
		}
	}()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		if handler, ok := b.commandHandlers()[data.Name]; ok {
			handler(session, i)
		} else {
			log.Printf("unknown command %s", data.Name)
		}

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		if strings.HasPrefix(customID, promptIDPrefix) {
			b.promptPressHandler(session, i, customID)
			return
		}
		if handler, ok := b.componentHandlers()[customID]; ok {
			handler(session, i)
		} else {
			log.Printf("unknown component %s", customID)
		}
	}
}

func (b *Bot) commandHandlers() map[string]interactionHandler {
	return map[string]interactionHandler{
		"log":         b.logHandler,
		"draw":        b.drawHandler,
		"match":       b.matchHandler,
		"season":      b.seasonHandler,
		"config":      b.configHandler,
		"deck":        b.deckHandler,
		"profile":     b.profileHandler,
		"leaderboard": b.leaderboardHandler,
		"info":        b.infoHandler,
	}
}

func (b *Bot) componentHandlers() map[string]interactionHandler {
	return map[string]interactionHandler{
		matchConfirmID: b.matchConfirmHandler,
		matchDisputeID: b.matchDisputeHandler,
		matchCancelID:  b.matchCancelHandler,
	}
}

// region helpers

// interactionUser returns the acting user for guild and DM interactions alike
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

// hasManageGuild reports whether the acting member holds the Manage Server permission
func hasManageGuild(i *discordgo.InteractionCreate) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionManageGuild != 0
}

// userErrors are the API preconditions reported verbatim to the acting user
var userErrors = []error{
	api.ErrNoActiveSeason,
	api.ErrDuplicatePlayers,
	api.ErrDrawsDisabled,
	api.ErrNotAParticipant,
	api.ErrAlreadyFinalized,
	api.ErrAlreadyFullyConfirmed,
	api.ErrCrossGuildMatch,
	api.ErrSeasonAlreadyOpen,
	api.ErrSeasonNameTaken,
	api.ErrSeasonNotClosed,
	api.ErrDeckLimitReached,
	api.ErrDeckNameTaken,
	api.ErrInvalidDeckList,
	api.ErrMatchNotFound,
	api.ErrSeasonNotFound,
	api.ErrDeckNotFound,
}

// userErrorText maps an error to the message shown to the acting user, logging
// infrastructure errors instead of leaking them
func userErrorText(err error) string {
	for _, sentinel := range userErrors {
		if errors.Is(err, sentinel) {
			return err.Error()
		}
	}
	log.Println(err)
	return "An unexpected error occurred"
}

func (b *Bot) respond(session DiscordSession, i *discordgo.InteractionCreate, content string, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.Println(err)
	}
}

func (b *Bot) respondError(session DiscordSession, i *discordgo.InteractionCreate, err error) {
	b.respond(session, i, userErrorText(err), true)
}

// optionMap indexes interaction options by name
func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, option := range options {
		m[option.Name] = option
	}
	return m
}

func stringOption(options map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if option, ok := options[name]; ok {
		return option.StringValue()
	}
	return ""
}

func intOption(options map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) (int, bool) {
	if option, ok := options[name]; ok {
		return int(option.IntValue()), true
	}
	return 0, false
}

func boolOption(options map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) (bool, bool) {
	if option, ok := options[name]; ok {
		return option.BoolValue(), true
	}
	return false, false
}

// confirmPrompt responds with an are-you-sure button pair and blocks until the invoker
// answers or the timeout elapses
func (b *Bot) confirmPrompt(session DiscordSession, i *discordgo.InteractionCreate, question string, timeout time.Duration) PromptResult {
	user := interactionUser(i)
	nonce := b.prompts.register(user.ID)

	err := session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    question,
			Components: promptButtons(nonce),
		},
	})
	if err != nil {
		log.Println(err)
		return PromptTimedOut
	}

	return b.prompts.wait(nonce, timeout)
}

// finishPrompt replaces the prompt message with the outcome and strips its buttons
func (b *Bot) finishPrompt(session DiscordSession, i *discordgo.InteractionCreate, content string) {
	components := []discordgo.MessageComponent{}
	_, err := session.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content:    &content,
		Components: &components,
	})
	if err != nil {
		log.Println(err)
	}
}

// refreshMatchMessage re-renders a match's confirmation message after a state change.
// Edits are paced by the shared limiter so bulk accepts stay inside rate limits
func (b *Bot) refreshMatchMessage(session DiscordSession, match store.Match) {
	if match.MessageID == "" {
		return
	}

	names, err := b.APIPtr.MatchDeckNames(match)
	if err != nil {
		log.Println(err)
		names = nil
	}

	if err := b.editLimiter.Wait(context.Background()); err != nil {
		return
	}
	if _, err := session.ChannelMessageEditComplex(matchMessageEdit(match, names)); err != nil {
		log.Println(err)
	}
}

// draftView shapes a match draft like a stored match for rendering
func draftView(draft *api.MatchDraft) (store.Match, map[string]string) {
	match := store.Match{
		ID:           draft.ID,
		GuildID:      draft.GuildID,
		Season:       draft.SeasonID,
		WinnerUserID: draft.WinnerUserID,
	}
	names := make(map[string]string)
	for _, player := range draft.Players {
		match.Players = append(match.Players, store.MatchPlayer{UserID: player.UserID})
		if player.Deck != nil {
			names[player.UserID] = player.Deck.Name
		}
	}
	return match, names
}

// endregion

// region match logging

func (b *Bot) logHandler(session DiscordSession, i *discordgo.InteractionCreate) {
	b.logMatch(session, i, true)
}

func (b *Bot) drawHandler(session DiscordSession, i *discordgo.InteractionCreate) {
	b.logMatch(session, i, false)
}

func (b *Bot) logMatch(session DiscordSession, i *discordgo.InteractionCreate, isWin bool) {
	user := interactionUser(i)
	options := optionMap(i.ApplicationCommandData().Options)

	var otherPlayerIDs []string
	for _, name := range []string{"player1", "player2", "player3"} {
		if option, ok := options[name]; ok {
			otherPlayerIDs = append(otherPlayerIDs, option.UserValue(nil).ID)
		}
	}

	draft, err := b.APIPtr.PrepareMatch(i.GuildID, shared.User{UserID: user.ID, Username: user.Username}, otherPlayerIDs, isWin)
	if err != nil {
		b.respondError(session, i, err)
		return
	}

	view, deckNames := draftView(draft)
	message, err := session.ChannelMessageSendComplex(i.ChannelID, matchMessageSend(view, deckNames))
	if err != nil {
		log.Println(err)
		b.respond(session, i, "An unexpected error occurred", true)
		return
	}

	if _, err := b.APIPtr.CreateMatch(draft, i.ChannelID, message.ID); err != nil {
		log.Println(err)
		// the confirmation message is orphaned without its row, take it down
		if err := session.ChannelMessageDelete(i.ChannelID, message.ID); err != nil {
			log.Println(err)
		}
		b.respond(session, i, "An unexpected error occurred", true)
		return
	}

	b.respond(session, i, "Match logged. Every player must confirm the result", true)
}

// endregion

// region match buttons

func (b *Bot) matchConfirmHandler(session DiscordSession, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	match, err := b.APIPtr.MatchByMessage(i.Message.ID)
	if err != nil {
		b.respondError(session, i, err)
		return
	}

	update, err := b.APIPtr.ConfirmMatch(match, user.ID)
	if err != nil {
		b.respondError(session, i, err)
		return
	}

	b.refreshMatchMessage(session, update.Match)
	if update.Finalized {
		b.respond(session, i, "Match confirmed by every player, points have been awarded", true)
	} else {
		b.respond(session, i, "Your confirmation has been recorded", true)
	}
}

func (b *Bot) matchDisputeHandler(session DiscordSession, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	match, err := b.APIPtr.MatchByMessage(i.Message.ID)
	if err != nil {
		b.respondError(session, i, err)
		return
	}

	if err := b.APIPtr.DisputeMatch(match, user.ID); err != nil {
		b.respondError(session, i, err)
		return
	}
	if match.DisputeThreadID != "" {
		b.respond(session, i, "This match already has an open dispute", true)
		return
	}

	thread, err := session.MessageThreadStartComplex(match.ChannelID, match.MessageID, &discordgo.ThreadStart{
		Name:                fmt.Sprintf("Dispute %s", match.ID.Hex()),
		AutoArchiveDuration: 1440,
	})
	if err != nil {
		log.Println(err)
		b.respond(session, i, "An unexpected error occurred", true)
		return
	}

	if err := b.APIPtr.AttachDisputeThread(match.ID, thread.ID); err != nil {
		b.respondError(session, i, err)
		return
	}

	var opening strings.Builder
	opening.WriteString(fmt.Sprintf("%s has disputed this match.", mention(user.ID)))
	config, err := b.APIPtr.GuildConfig(match.GuildID)
	if err != nil {
		log.Println(err)
	} else if config.DisputeRoleID != "" {
		opening.WriteString(fmt.Sprintf(" %s please take a look.", roleMention(config.DisputeRoleID)))
	}
	if _, err := session.ChannelMessageSend(thread.ID, opening.String()); err != nil {
		log.Println(err)
	}

	b.respond(session, i, "A dispute thread has been opened", true)
}

func (b *Bot) matchCancelHandler(session DiscordSession, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	match, err := b.APIPtr.MatchByMessage(i.Message.ID)
	if err != nil {
		b.respondError(session, i, err)
		return
	}

	if err := b.APIPtr.CancelMatch(match, user.ID); err != nil {
		b.respondError(session, i, err)
		return
	}

	// the row is gone, message and thread cleanup is best effort
	if err := session.ChannelMessageDelete(match.ChannelID, match.MessageID); err != nil {
		log.Println(err)
	}
	if match.DisputeThreadID != "" {
		if _, err := session.ChannelDelete(match.DisputeThreadID); err != nil {
			log.Println(err)
		}
	}

	b.respond(session, i, "The match has been cancelled", true)
}

// promptPressHandler delivers an are-you-sure button press to its pending prompt
func (b *Bot) promptPressHandler(session DiscordSession, i *discordgo.InteractionCreate, customID string) {
	user := interactionUser(i)

	rest := strings.TrimPrefix(customID, promptIDPrefix)
	nonce, verdict, found := strings.Cut(rest, ":")
	if !found {
		log.Printf("malformed prompt id %s", customID)
		return
	}

	switch b.prompts.resolve(nonce, user.ID, verdict == promptConfirmID) {
	case promptResolved:
		// the waiting command handler edits the prompt message, just ack the press
		err := session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredMessageUpdate,
		})
		if err != nil {
			log.Println(err)
		}
	case promptWrongUser:
		b.respond(session, i, "Only the player who ran the command can answer this", true)
	case promptNotFound:
		b.respond(session, i, "This prompt has expired", true)
	}
}

// endregion

// region match subcommands

func (b *Bot) matchHandler(session DiscordSession, i *discordgo.InteractionCreate) {
	sub := i.ApplicationCommandData().Options[0]
	switch sub.Name {
	case "pending":
		b.matchPendingHandler(session, i)
	case "disputed":
		b.matchDisputedHandler(session, i)
	case "accept":
		b.matchAcceptHandler(session, i, sub)
	case "accept-all":
		b.matchAcceptAllHandler(session, i)
	case "delete":
		b.matchDeleteHandler(session, i, sub)
	case "list":
		b.matchListHandler(session, i, sub)
	}
}

func (b *Bot) matchPendingHandler(session DiscordSession, i *discordgo.InteractionCreate) {
	if !hasManageGuild(i) {
		b.respond(session, i, "You need the Manage Server permission to do that", true)
		return
	}

	matches, err := b.APIPtr.PendingMatches(i.GuildID)
	if err != nil {
		b.respondError(session, i, err)
		return
	}
	b.respond(session, i, renderMatchList("Matches waiting on confirmations:", matches), true)
}

func (b *Bot) matchDisputedHandler(session DiscordSession, i *discordgo.InteractionCreate) {
	if !hasManageGuild(i) {
		b.respond(session, i, "You need the Manage Server permission to do that", true)
		return
	}

	matches, err := b.APIPtr.DisputedMatches(i.GuildID)
	if err != nil {
		b.respondError(session, i, err)
		return
	}
	b.respond(session, i, renderMatchList("Matches with an open dispute:", matches), true)
}

func (b *Bot) matchAcceptHandler(session DiscordSession, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	if !hasManageGuild(i) {
		b.respond(session, i, "You need the Manage Server permission to do that", true)
		return
	}

	matchID := stringOption(optionMap(sub.Options), "id")
	match, err := b.APIPtr.AcceptMatch(i.GuildID, matchID)
	if err != nil {
		b.respondError(session, i, err)
		return
	}

	b.refreshMatchMessage(session, match)
	b.respond(session, i, fmt.Sprintf("Match `%s` has been confirmed and points awarded", match.ID.Hex()), false)
}

func (b *Bot) matchAcceptAllHandler(session DiscordSession, i *discordgo.InteractionCreate) {
	if !hasManageGuild(i) {
		b.respond(session, i, "You need the Manage Server permission to do that", true)
		return
	}

	switch b.confirmPrompt(session, i, "Force confirm every pending match this season?", b.ConfirmTimeout) {
	case PromptDeclined:
		b.finishPrompt(session, i, "Nothing was confirmed")
		return
	case PromptTimedOut:
		b.finishPrompt(session, i, "Timed out waiting for an answer, nothing was confirmed")
		return
	}

	// grab the pending list first so their messages can be refreshed afterwards
	pending, err := b.APIPtr.PendingMatches(i.GuildID)
	if err != nil {
		b.finishPrompt(session, i, userErrorText(err))
		return
	}

	count, err := b.APIPtr.AcceptAllPending(i.GuildID)
	if err != nil {
		b.finishPrompt(session, i, userErrorText(err))
		return
	}

	for _, match := range pending {
		refreshed, err := b.APIPtr.MatchByMessage(match.MessageID)
		if err != nil {
			continue
		}
		b.refreshMatchMessage(session, refreshed)
	}

	b.finishPrompt(session, i, fmt.Sprintf("Confirmed %d pending matches", count))
}

func (b *Bot) matchDeleteHandler(session DiscordSession, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	if !hasManageGuild(i) {
		b.respond(session, i, "You need the Manage Server permission to do that", true)
		return
	}

	matchID := stringOption(optionMap(sub.Options), "id")
	match, err := b.APIPtr.DeleteMatch(i.GuildID, matchID)
	if err != nil {
		b.respondError(session, i, err)
		return
	}

	if match.MessageID != "" {
		if err := session.ChannelMessageDelete(match.ChannelID, match.MessageID); err != nil {
			log.Println(err)
		}
	}
	if match.DisputeThreadID != "" {
		if _, err := session.ChannelDelete(match.DisputeThreadID); err != nil {
			log.Println(err)
		}
	}

	b.respond(session, i, fmt.Sprintf("Match `%s` has been deleted", match.ID.Hex()), false)
}

func (b *Bot) matchListHandler(session DiscordSession, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	user := interactionUser(i)
	filter := stringOption(optionMap(sub.Options), "filter")

	matches, err := b.APIPtr.ListMatches(i.GuildID, user.ID, filter)
	if err != nil {
		b.respondError(session, i, err)
		return
	}
	b.respond(session, i, renderMatchList("Your matches:", matches), true)
}

// endregion

// region season subcommands

func (b *Bot) seasonHandler(session DiscordSession, i *discordgo.InteractionCreate) {
	sub := i.ApplicationCommandData().Options[0]
	switch sub.Name {
	case "info":
		b.seasonInfoHandler(session, i, sub)
	case "start":
		b.seasonStartHandler(session, i, sub)
	case "end":
		b.seasonEndHandler(session, i)
	case "reopen":
		b.seasonReopenHandler(session, i, sub)
	case "list":
		b.seasonListHandler(session, i)
	}
}

func (b *Bot) seasonInfoHandler(session DiscordSession, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	name := stringOption(optionMap(sub.Options), "name")
	info, err := b.APIPtr.SeasonInfo(i.GuildID, name)
	if err != nil {
		b.respondError(session, i, err)
		return
	}
	b.respond(session, i, renderSeasonInfo(info), false)
}

func (b *Bot) seasonStartHandler(session DiscordSession, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	if !hasManageGuild(i) {
		b.respond(session, i, "You need the Manage Server permission to do that", true)
		return
	}

	name := stringOption(optionMap(sub.Options), "name")
	season, err := b.APIPtr.StartSeason(i.GuildID, name)
	if err != nil {
		b.respondError(session, i, err)
		return
	}
	b.respond(session, i, fmt.Sprintf("Season %s has started. Good luck!", season.Name), false)
}

func (b *Bot) seasonEndHandler(session DiscordSession, i *discordgo.InteractionCreate) {
	if !hasManageGuild(i) {
		b.respond(session, i, "You need the Manage Server permission to do that", true)
		return
	}

	switch b.confirmPrompt(session, i, "End the current season? Matches can no longer be logged against it", b.ConfirmTimeout) {
	case PromptDeclined:
		b.finishPrompt(session, i, "The season continues")
		return
	case PromptTimedOut:
		b.finishPrompt(session, i, "Timed out waiting for an answer, the season continues")
		return
	}

	season, err := b.APIPtr.EndSeason(i.GuildID)
	if err != nil {
		b.finishPrompt(session, i, userErrorText(err))
		return
	}
	b.finishPrompt(session, i, fmt.Sprintf("Season %s has ended", season.Name))
}

func (b *Bot) seasonReopenHandler(session DiscordSession, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	if !hasManageGuild(i) {
		b.respond(session, i, "You need the Manage Server permission to do that", true)
		return
	}

	name := stringOption(optionMap(sub.Options), "name")

	switch b.confirmPrompt(session, i, fmt.Sprintf("Reopen season %s?", name), b.ReopenTimeout) {
	case PromptDeclined:
		b.finishPrompt(session, i, "The season stays closed")
		return
	case PromptTimedOut:
		b.finishPrompt(session, i, "Timed out waiting for an answer, the season stays closed")
		return
	}

	season, err := b.APIPtr.ReopenSeason(i.GuildID, name)
	if err != nil {
		b.finishPrompt(session, i, userErrorText(err))
		return
	}
	b.finishPrompt(session, i, fmt.Sprintf("Season %s is active again", season.Name))
}

func (b *Bot) seasonListHandler(session DiscordSession, i *discordgo.InteractionCreate) {
	seasons, err := b.APIPtr.Seasons(i.GuildID)
	if err != nil {
		b.respondError(session, i, err)
		return
	}
	b.respond(session, i, renderSeasonList(seasons), false)
}

// endregion

// region config subcommands

func (b *Bot) configHandler(session DiscordSession, i *discordgo.InteractionCreate) {
	if !hasManageGuild(i) {
		b.respond(session, i, "You need the Manage Server permission to do that", true)
		return
	}

	sub := i.ApplicationCommandData().Options[0]
	options := optionMap(sub.Options)

	var patch store.ConfigPatch
	switch sub.Name {
	case "show":
		// read only
	case "min-games":
		if value, ok := intOption(options, "value"); ok {
			patch.MinimumGamesPerPlayer = &value
		}
	case "points-gained":
		if value, ok := intOption(options, "value"); ok {
			patch.PointsGained = &value
		}
	case "points-lost":
		if value, ok := intOption(options, "value"); ok {
			patch.PointsLost = &value
		}
	case "points-per-draw":
		if value, ok := intOption(options, "value"); ok {
			patch.PointsPerDraw = &value
		}
	case "base-points":
		if value, ok := intOption(options, "value"); ok {
			patch.BasePoints = &value
		}
	case "enable-draws":
		if value, ok := boolOption(options, "value"); ok {
			patch.EnableDraws = &value
		}
	case "deck-limit":
		if value, ok := intOption(options, "value"); ok {
			patch.DeckLimit = &value
		}
	case "dispute-role":
		if clear, ok := boolOption(options, "clear"); ok && clear {
			patch.UnsetDisputeRole = true
		} else if option, ok := options["role"]; ok {
			roleID := option.RoleValue(nil, "").ID
			patch.DisputeRoleID = &roleID
		}
	}

	config, err := b.APIPtr.UpdateConfig(i.GuildID, patch)
	if err != nil {
		b.respondError(session, i, err)
		return
	}

	if sub.Name == "show" || patch.Empty() {
		b.respond(session, i, renderConfig(config), true)
		return
	}
	b.respond(session, i, "The setting has been updated:\n"+renderConfig(config), true)
}

// endregion

// region deck subcommands

func (b *Bot) deckHandler(session DiscordSession, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	sub := i.ApplicationCommandData().Options[0]
	options := optionMap(sub.Options)
	name := stringOption(options, "name")

	switch sub.Name {
	case "create":
		deck, err := b.APIPtr.CreateDeck(i.GuildID, user.ID, name, stringOption(options, "list"))
		if err != nil {
			b.respondError(session, i, err)
			return
		}
		b.respond(session, i, fmt.Sprintf("Deck %s has been created and selected", deck.Name), true)

	case "select":
		deck, err := b.APIPtr.SelectDeck(i.GuildID, user.ID, name)
		if err != nil {
			b.respondError(session, i, err)
			return
		}
		b.respond(session, i, fmt.Sprintf("You are now playing %s", deck.Name), true)

	case "rename":
		deck, err := b.APIPtr.RenameDeck(i.GuildID, user.ID, name, stringOption(options, "new-name"))
		if err != nil {
			b.respondError(session, i, err)
			return
		}
		b.respond(session, i, fmt.Sprintf("The deck is now called %s", deck.Name), true)

	case "set-list":
		deck, err := b.APIPtr.SetDeckList(i.GuildID, user.ID, name, stringOption(options, "list"))
		if err != nil {
			b.respondError(session, i, err)
			return
		}
		if deck.DeckList == "" {
			b.respond(session, i, fmt.Sprintf("The list link for %s has been removed", deck.Name), true)
		} else {
			b.respond(session, i, fmt.Sprintf("The list link for %s has been updated", deck.Name), true)
		}

	case "list":
		decks, err := b.APIPtr.ListDecks(i.GuildID, user.ID)
		if err != nil {
			b.respondError(session, i, err)
			return
		}
		currentDeck, err := b.APIPtr.CurrentDeckID(i.GuildID, user.ID)
		if err != nil {
			b.respondError(session, i, err)
			return
		}
		b.respond(session, i, renderDeckList(decks, currentDeck), true)

	case "delete":
		deck, err := b.APIPtr.DeleteDeck(i.GuildID, user.ID, name)
		if err != nil {
			b.respondError(session, i, err)
			return
		}
		b.respond(session, i, fmt.Sprintf("Deck %s has been deleted", deck.Name), true)
	}
}

// endregion

// region profile, leaderboard and info

func (b *Bot) profileHandler(session DiscordSession, i *discordgo.InteractionCreate) {
	userID := interactionUser(i).ID
	options := optionMap(i.ApplicationCommandData().Options)
	if option, ok := options["player"]; ok {
		userID = option.UserValue(nil).ID
	}

	summary, err := b.APIPtr.ProfileSummary(i.GuildID, userID)
	if err != nil {
		b.respondError(session, i, err)
		return
	}
	b.respond(session, i, renderProfile(summary), false)
}

func (b *Bot) leaderboardHandler(session DiscordSession, i *discordgo.InteractionCreate) {
	entries, err := b.APIPtr.Leaderboard(i.GuildID)
	if err != nil {
		b.respondError(session, i, err)
		return
	}
	b.respond(session, i, renderLeaderboard(entries), false)
}

func (b *Bot) infoHandler(session DiscordSession, i *discordgo.InteractionCreate) {
	var res strings.Builder
	res.WriteString("League Bot\n")
	res.WriteString("`/log @player1 @player2 @player3`: log a match you won. Every player confirms the result with the buttons on the match message\n")
	res.WriteString("`/draw @player1 @player2 @player3`: log a match that ended in a draw, if draws are enabled\n")
	res.WriteString("`/match list|pending|disputed`: list matches; `accept`, `accept-all` and `delete` are for admins\n")
	res.WriteString("`/season info|list`: show seasons; `start`, `end` and `reopen` are for admins\n")
	res.WriteString("`/deck create|select|rename|set-list|list|delete`: manage your decks. The selected deck is recorded on matches you log\n")
	res.WriteString("`/profile`: show a player's points, current deck and games this season\n")
	res.WriteString("`/leaderboard`: show the season standings\n")
	res.WriteString("`/config`: server settings, for admins\n")
	b.respond(session, i, res.String(), true)
}

// endregion

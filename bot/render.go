/* render.go
 * Contains the rendering helpers that turn API results into Discord messages: the match
 * confirmation embed with its button row, the are-you-sure button pair and the text
 * blocks for lists, leaderboards and profiles
 * Authors: Zachary Bower
 */

package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"league-bot/api/api"
	"league-bot/api/store"
)

// Button custom ids routed by the component dispatcher
const (
	matchConfirmID = "match:confirm"
	matchDisputeID = "match:dispute"
	matchCancelID  = "match:cancel"

	promptIDPrefix  = "prompt:"
	promptConfirmID = "confirm"
	promptCancelID  = "cancel"
)

// mention formats a user id as a Discord mention
func mention(userID string) string {
	return fmt.Sprintf("<@%s>", userID)
}

// roleMention formats a role id as a Discord role mention
func roleMention(roleID string) string {
	return fmt.Sprintf("<@&%s>", roleID)
}

// matchEmbed renders a match's current confirmation state. deckNames carries the deck
// name snapshot per player user id and may be nil
func matchEmbed(match store.Match, deckNames map[string]string) *discordgo.MessageEmbed {
	var description string
	if match.WinnerUserID != "" {
		description = fmt.Sprintf("Winner: %s", mention(match.WinnerUserID))
	} else {
		description = "Result: draw"
	}
	if match.Finalized() {
		description += "\nConfirmed by all players"
	}

	var players strings.Builder
	for _, player := range match.Players {
		mark := "🔲"
		if player.Confirmed {
			mark = "✅"
		}
		players.WriteString(fmt.Sprintf("%s %s", mark, mention(player.UserID)))
		if name, ok := deckNames[player.UserID]; ok {
			players.WriteString(fmt.Sprintf(" playing %s", name))
		}
		players.WriteString("\n")
	}

	return &discordgo.MessageEmbed{
		Title:       "Match logged",
		Description: description,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Players", Value: players.String()},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Match %s", match.ID.Hex())},
	}
}

// matchButtons builds the confirm/dispute/cancel row shown on a pending match message
func matchButtons() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Confirm", Style: discordgo.SuccessButton, CustomID: matchConfirmID},
				discordgo.Button{Label: "Dispute", Style: discordgo.SecondaryButton, CustomID: matchDisputeID},
				discordgo.Button{Label: "Cancel", Style: discordgo.DangerButton, CustomID: matchCancelID},
			},
		},
	}
}

// matchMessageSend builds the confirmation message for a freshly logged match
func matchMessageSend(match store.Match, deckNames map[string]string) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{matchEmbed(match, deckNames)},
		Components: matchButtons(),
	}
}

// matchMessageEdit rebuilds a match message after a state change. A finalized match
// loses its button row
func matchMessageEdit(match store.Match, deckNames map[string]string) *discordgo.MessageEdit {
	embeds := []*discordgo.MessageEmbed{matchEmbed(match, deckNames)}
	components := matchButtons()
	if match.Finalized() {
		components = []discordgo.MessageComponent{}
	}
	return &discordgo.MessageEdit{
		Channel:    match.ChannelID,
		ID:         match.MessageID,
		Embeds:     &embeds,
		Components: &components,
	}
}

// promptButtons builds the confirm/cancel pair for an are-you-sure prompt
func promptButtons(nonce string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Confirm", Style: discordgo.DangerButton, CustomID: promptIDPrefix + nonce + ":" + promptConfirmID},
				discordgo.Button{Label: "Cancel", Style: discordgo.SecondaryButton, CustomID: promptIDPrefix + nonce + ":" + promptCancelID},
			},
		},
	}
}

// renderMatchList renders matches as one line each for the list and pending commands
func renderMatchList(heading string, matches []store.Match) string {
	if len(matches) == 0 {
		return heading + "\nNo matches found"
	}

	var res strings.Builder
	res.WriteString(heading + "\n")
	for _, match := range matches {
		var state string
		switch {
		case match.Finalized():
			state = "confirmed"
		case match.DisputeThreadID != "":
			state = "disputed"
		default:
			state = "pending"
		}

		var outcome string
		if match.WinnerUserID != "" {
			outcome = fmt.Sprintf("won by %s", mention(match.WinnerUserID))
		} else {
			outcome = "draw"
		}

		var players []string
		for _, player := range match.Players {
			players = append(players, mention(player.UserID))
		}
		res.WriteString(fmt.Sprintf("- `%s` %s, %s (%s)\n", match.ID.Hex(), strings.Join(players, " "), outcome, state))
	}
	return res.String()
}

// renderLeaderboard renders the leaderboard entries as a ranked list
func renderLeaderboard(entries []api.LeaderboardEntry) string {
	if len(entries) == 0 {
		return "No players have reached the minimum number of games yet"
	}

	var res strings.Builder
	res.WriteString("Leaderboard:\n")
	for i, entry := range entries {
		res.WriteString(fmt.Sprintf("%d. %s: %d points (%d games)\n", i+1, mention(entry.UserID), entry.Points, entry.Games))
	}
	return res.String()
}

// renderSeasonInfo renders one season with its dates and match count
func renderSeasonInfo(info api.SeasonInfo) string {
	var res strings.Builder
	res.WriteString(fmt.Sprintf("**%s**\n", info.Season.Name))
	res.WriteString(fmt.Sprintf("Started: %s\n", info.Season.StartDate.Format("2 January 2006")))
	if info.Season.EndDate != nil {
		res.WriteString(fmt.Sprintf("Ended: %s\n", info.Season.EndDate.Format("2 January 2006")))
	} else {
		res.WriteString("Currently active\n")
	}
	res.WriteString(fmt.Sprintf("Matches played: %d", info.MatchesPlayed))
	return res.String()
}

// renderSeasonList renders every season as one line, marking the open one
func renderSeasonList(seasons []store.Season) string {
	if len(seasons) == 0 {
		return "No seasons have been created yet"
	}

	var res strings.Builder
	res.WriteString("Seasons:\n")
	for _, season := range seasons {
		if season.Open() {
			res.WriteString(fmt.Sprintf("- %s (active)\n", season.Name))
		} else {
			res.WriteString(fmt.Sprintf("- %s\n", season.Name))
		}
	}
	return res.String()
}

// renderConfig renders the guild's effective settings
func renderConfig(config store.Config) string {
	var res strings.Builder
	res.WriteString("Server settings:\n")
	res.WriteString(fmt.Sprintf("- Minimum games for the leaderboard: %d\n", config.MinimumGamesPerPlayer))
	res.WriteString(fmt.Sprintf("- Points for a win: %d\n", config.PointsGained))
	res.WriteString(fmt.Sprintf("- Points lost on a loss: %d\n", config.PointsLost))
	res.WriteString(fmt.Sprintf("- Points for a draw: %d\n", config.PointsPerDraw))
	res.WriteString(fmt.Sprintf("- Base points: %d\n", config.BasePoints))
	res.WriteString(fmt.Sprintf("- Draws enabled: %t\n", config.EnableDraws))
	res.WriteString(fmt.Sprintf("- Deck limit: %d\n", config.DeckLimit))
	if config.DisputeRoleID != "" {
		res.WriteString(fmt.Sprintf("- Dispute role: %s\n", roleMention(config.DisputeRoleID)))
	} else {
		res.WriteString("- Dispute role: not set\n")
	}
	return res.String()
}

// renderDeckList renders a player's decks, marking their current selection
func renderDeckList(decks []store.Deck, currentDeck *primitive.ObjectID) string {
	if len(decks) == 0 {
		return "You have no decks. Use `/deck create` to add one"
	}

	var res strings.Builder
	res.WriteString("Your decks:\n")
	for _, deck := range decks {
		res.WriteString(fmt.Sprintf("- %s", deck.Name))
		if deck.DeckList != "" {
			res.WriteString(fmt.Sprintf(" (<%s>)", deck.DeckList))
		}
		if currentDeck != nil && *currentDeck == deck.ID {
			res.WriteString(" [selected]")
		}
		res.WriteString("\n")
	}
	return res.String()
}

// renderProfile renders one player's standing
func renderProfile(summary api.ProfileSummary) string {
	var res strings.Builder
	res.WriteString(fmt.Sprintf("%s has %d points\n", mention(summary.UserID), summary.Points))
	if summary.CurrentDeck != nil {
		res.WriteString(fmt.Sprintf("Current deck: %s\n", summary.CurrentDeck.Name))
	} else {
		res.WriteString("Current deck: none selected\n")
	}
	res.WriteString(fmt.Sprintf("Games this season: %d", summary.GamesThisSeason))
	return res.String()
}

/* bot.go
 * Contains logic used for creating the bot and defining its slash commands. Requires a
 * discord bot token and ApiPtr both of which are passed in from main.go
 * Authors: Zachary Bower
 */

package bot

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"

	"league-bot/api/api"
)

type Bot struct {
	BotToken string
	APIPtr   *api.API
	// GuildID scopes command registration to one guild; empty registers globally
	GuildID string

	// Timeouts for the are-you-sure prompts, overridable in tests
	ConfirmTimeout time.Duration
	ReopenTimeout  time.Duration

	prompts *promptRegistry
	// editLimiter paces match message edits so bulk accepts stay inside Discord's
	// rate limits
	editLimiter *rate.Limiter
}

func NewBot(botToken string, apiPtr *api.API, guildID string) (*Bot, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}

	return &Bot{
		BotToken:       botToken,
		APIPtr:         apiPtr,
		GuildID:        guildID,
		ConfirmTimeout: 60 * time.Second,
		ReopenTimeout:  30 * time.Second,
		prompts:        newPromptRegistry(),
		editLimiter:    rate.NewLimiter(rate.Every(300*time.Millisecond), 3),
	}, nil
}

// commandDefinitions returns the slash commands the bot registers on startup
func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "log",
			Description: "Log a match you won",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: "player1", Description: "Second player in the match", Required: true},
				{Type: discordgo.ApplicationCommandOptionUser, Name: "player2", Description: "Third player in the match", Required: true},
				{Type: discordgo.ApplicationCommandOptionUser, Name: "player3", Description: "Fourth player in the match", Required: true},
			},
		},
		{
			Name:        "draw",
			Description: "Log a match that ended in a draw",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: "player1", Description: "Second player in the match", Required: true},
				{Type: discordgo.ApplicationCommandOptionUser, Name: "player2", Description: "Third player in the match", Required: true},
				{Type: discordgo.ApplicationCommandOptionUser, Name: "player3", Description: "Fourth player in the match", Required: true},
			},
		},
		{
			Name:        "match",
			Description: "Match management",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "pending", Description: "List matches waiting on confirmations"},
				{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "disputed", Description: "List matches with an open dispute"},
				{
					Type: discordgo.ApplicationCommandOptionSubCommand, Name: "accept", Description: "Force confirm a match (admin)",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "id", Description: "Match id", Required: true},
					},
				},
				{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "accept-all", Description: "Force confirm every pending match (admin)"},
				{
					Type: discordgo.ApplicationCommandOptionSubCommand, Name: "delete", Description: "Delete a match (admin)",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "id", Description: "Match id", Required: true},
					},
				},
				{
					Type: discordgo.ApplicationCommandOptionSubCommand, Name: "list", Description: "List your matches",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "filter", Description: "Optional filter, e.g. deck:\"Niv to Light\" season:\"Season Two\""},
					},
				},
			},
		},
		{
			Name:        "season",
			Description: "Season management",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type: discordgo.ApplicationCommandOptionSubCommand, Name: "info", Description: "Show a season",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Season name, defaults to the active season"},
					},
				},
				{
					Type: discordgo.ApplicationCommandOptionSubCommand, Name: "start", Description: "Start a new season (admin)",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Name for the new season", Required: true},
					},
				},
				{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "end", Description: "End the active season (admin)"},
				{
					Type: discordgo.ApplicationCommandOptionSubCommand, Name: "reopen", Description: "Reopen an ended season (admin)",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Name of the ended season", Required: true},
					},
				},
				{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "list", Description: "List every season"},
			},
		},
		{
			Name:        "config",
			Description: "Server settings (admin)",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "show", Description: "Show the current settings"},
				{
					Type: discordgo.ApplicationCommandOptionSubCommand, Name: "min-games", Description: "Minimum games to appear on the leaderboard",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "value", Description: "New value"},
					},
				},
				{
					Type: discordgo.ApplicationCommandOptionSubCommand, Name: "points-gained", Description: "Points awarded for a win",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "value", Description: "New value"},
					},
				},
				{
					Type: discordgo.ApplicationCommandOptionSubCommand, Name: "points-lost", Description: "Points deducted for a loss",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "value", Description: "New value"},
					},
				},
				{
					Type: discordgo.ApplicationCommandOptionSubCommand, Name: "points-per-draw", Description: "Points awarded for a draw",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "value", Description: "New value"},
					},
				},
				{
					Type: discordgo.ApplicationCommandOptionSubCommand, Name: "base-points", Description: "Display offset added to every player's points",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "value", Description: "New value"},
					},
				},
				{
					Type: discordgo.ApplicationCommandOptionSubCommand, Name: "enable-draws", Description: "Allow matches to be logged as draws",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionBoolean, Name: "value", Description: "New value"},
					},
				},
				{
					Type: discordgo.ApplicationCommandOptionSubCommand, Name: "deck-limit", Description: "Maximum decks per player",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "value", Description: "New value"},
					},
				},
				{
					Type: discordgo.ApplicationCommandOptionSubCommand, Name: "dispute-role", Description: "Role to notify when a match is disputed",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionRole, Name: "role", Description: "Role to notify"},
						{Type: discordgo.ApplicationCommandOptionBoolean, Name: "clear", Description: "Remove the configured role"},
					},
				},
			},
		},
		{
			Name:        "deck",
			Description: "Deck management",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type: discordgo.ApplicationCommandOptionSubCommand, Name: "create", Description: "Create a deck and select it",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Deck name", Required: true},
						{Type: discordgo.ApplicationCommandOptionString, Name: "list", Description: "Link to the deck list"},
					},
				},
				{
					Type: discordgo.ApplicationCommandOptionSubCommand, Name: "select", Description: "Select one of your decks",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Deck name", Required: true},
					},
				},
				{
					Type: discordgo.ApplicationCommandOptionSubCommand, Name: "rename", Description: "Rename one of your decks",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Current deck name", Required: true},
						{Type: discordgo.ApplicationCommandOptionString, Name: "new-name", Description: "New deck name", Required: true},
					},
				},
				{
					Type: discordgo.ApplicationCommandOptionSubCommand, Name: "set-list", Description: "Set or clear the deck list link",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Deck name", Required: true},
						{Type: discordgo.ApplicationCommandOptionString, Name: "list", Description: "Link to the deck list, omit to clear"},
					},
				},
				{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "list", Description: "List your decks"},
				{
					Type: discordgo.ApplicationCommandOptionSubCommand, Name: "delete", Description: "Delete one of your decks",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Deck name", Required: true},
					},
				},
			},
		},
		{
			Name:        "profile",
			Description: "Show a player's points, deck and games this season",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: "player", Description: "Player to show, defaults to you"},
			},
		},
		{
			Name:        "leaderboard",
			Description: "Show the season leaderboard",
		},
		{
			Name:        "info",
			Description: "Show what this bot does and how to use it",
		},
	}
}

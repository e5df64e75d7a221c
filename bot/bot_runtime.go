//go:build !test

/* bot_runtime.go
 * Contains runtime-only Discord bot methods that use *discordgo.Session directly.
 * Delegates to testable handlers in handlers.go to avoid code duplication.
 * Authors: Zachary Bower
 */

package bot

import (
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/bwmarrin/discordgo"
)

// Run starts the Discord bot, registers the slash commands and listens for
// interactions until interrupted
func (b *Bot) Run() error {
	// create a session
	discord, err := discordgo.New("Bot " + b.BotToken)
	if err != nil {
		return err
	}
	discord.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	// add an event handler
	discord.AddHandler(b.newInteraction)

	// open session
	if err := discord.Open(); err != nil {
		return err
	}
	defer discord.Close() // close session, after function termination

	// an empty GuildID registers the commands globally
	_, err = discord.ApplicationCommandBulkOverwrite(discord.State.User.ID, b.GuildID, commandDefinitions())
	if err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	// keep bot running until there is NO os interruption (ctrl + C)
	log.Println("League Bot started")
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c
	return nil
}

// newInteraction delegates to the testable onInteraction handler
// *discordgo.Session implements DiscordSession interface
func (b *Bot) newInteraction(discord *discordgo.Session, interaction *discordgo.InteractionCreate) {
	b.onInteraction(discord, interaction)
}

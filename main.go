/* main.go
 * The "main" method for running the bot. For details about the bot see `readme.md`
 * Usage: go run main.go [-test=true] [-web=:8080]
 * Authors: Zachary Bower
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"league-bot/api/api"
	"league-bot/bot"
	"league-bot/web"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using the process environment")
	}

	// Flags
	testPtr := flag.String("test", "false", "Use main or test bot: takes true or false as argument")
	webAddrPtr := flag.String("web", os.Getenv("WEB_ADDR"), "Address for the HTTP endpoints, empty disables them")
	flag.Parse()

	useTestBot, err := convertStrToBool(*testPtr)
	if err != nil {
		log.Fatalf("Invalid \"test\" flag: %v", err)
	}

	var discordToken string
	if useTestBot {
		discordToken = os.Getenv("DISCORD_BETA_TOKEN")
	} else {
		discordToken = os.Getenv("DISCORD_PROD_TOKEN")
	}

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "league"
	}

	leagueAPI, err := api.NewAPI(dbName, os.Getenv("MONGO_URI"))
	if err != nil {
		log.Fatalf("failed to initialize API: %v", err)
	}
	defer func() {
		if err := leagueAPI.Store.GetClient().Disconnect(context.TODO()); err != nil {
			panic(err)
		}
	}()

	// The HTTP endpoints are optional and run next to the bot
	if *webAddrPtr != "" {
		go func() {
			if err := web.Start(web.Config{Addr: *webAddrPtr, API: leagueAPI}); err != nil {
				log.Println("web server stopped:", err)
			}
		}()
	}

	// Init bot and run
	leagueBot, err := bot.NewBot(discordToken, leagueAPI, os.Getenv("GUILD_ID"))
	if err != nil {
		log.Fatalf("failed to initialize bot: %v", err)
	}
	if err := leagueBot.Run(); err != nil {
		log.Fatalf("bot stopped: %v", err)
	}
}

// convertStrToBool parses a true/false flag value, ignoring case and whitespace
// Preconditions: Receives the flag string
// Postconditions: Returns the boolean value, or an error for anything that is not
// true or false
func convertStrToBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %q", value)
	}
}

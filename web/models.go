package web

import (
	"league-bot/api/api"
)

// Config holds the configuration for the web server
type Config struct {
	Addr string
	API  *api.API
}

// Server is the HTTP server exposing the health and leaderboard endpoints
type Server struct {
	api *api.API
}

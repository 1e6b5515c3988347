package gamerpower

import "time"

const (
	providerName       = "gamerpower"
	defaultBaseURL     = "https://gamerpower.p.rapidapi.com/api"
	defaultAPIHost     = "gamerpower.p.rapidapi.com"
	defaultHTTPTimeout = 10 * time.Second
	headerAPIKey       = "X-RapidAPI-Key"
	headerAPIHost      = "X-RapidAPI-Host"
	typeGame           = "Game"
	fallbackName       = "Unknown"
	maxErrorBody       = 512
)

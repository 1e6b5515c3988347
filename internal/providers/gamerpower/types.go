package gamerpower

import "encoding/json"

type giveawayResponse struct {
	ID              json.Number `json:"id"`
	Title           string      `json:"title"`
	Worth           string      `json:"worth"`
	Thumbnail       string      `json:"thumbnail"`
	Image           string      `json:"image"`
	Description     string      `json:"description"`
	Instructions    string      `json:"instructions"`
	OpenGiveawayURL string      `json:"open_giveaway_url"`
	GamerPowerURL   string      `json:"gamerpower_url"`
	GameURL         string      `json:"game_url"`
	ProfileURL      string      `json:"profile_url"`
	PublishedDate   string      `json:"published_date"`
	Type            string      `json:"type"`
	Genre           string      `json:"genre"`
	Platforms       string      `json:"platforms"`
	Publisher       string      `json:"publisher"`
	Developer       string      `json:"developer"`
	EndDate         string      `json:"end_date"`
	Status          string      `json:"status"`
}

// statusResponse is what the API sends instead of a giveaway when nothing matches.
type statusResponse struct {
	StatusMessage string `json:"status_message"`
}

package testutil

import (
	"strconv"

	"github.com/preston-bernstein/free-games-service/internal/domain/games"
)

// SampleFreeGame returns a minimal giveaway fixture with the provided id and platform label.
func SampleFreeGame(id, platform string) games.FreeGame {
	return games.FreeGame{
		ID:               id,
		Title:            "Game " + id,
		Thumbnail:        games.PlaceholderThumbnail,
		ShortDescription: "Sample giveaway",
		GameURL:          "https://example.com/claim/" + id,
		Genre:            "Game",
		Platform:         platform,
		Publisher:        "Sample Publisher",
		Developer:        "Sample Developer",
		ReleaseDate:      "2024-01-01 00:00:00",
		ProfileURL:       "https://example.com/giveaway/" + id,
	}
}

// SampleRSSGame returns a minimal feed deal for a mobile platform.
func SampleRSSGame(platform games.Platform, index int, pubDate string) games.RSSGame {
	id := "rss-" + string(platform) + "-" + strconv.Itoa(index)
	return games.RSSGame{
		ID:            id,
		Title:         "Deal " + id,
		Thumbnail:     games.PlaceholderThumbnail,
		Description:   "Sample deal",
		URL:           "https://store.example.com/" + id,
		Developer:     "Sample Studio",
		Category:      "Game",
		OriginalPrice: "$4.99",
		CurrentPrice:  games.CurrentPriceFree,
		Discount:      "100%",
		Platform:      platform.Label(),
		PubDate:       pubDate,
	}
}

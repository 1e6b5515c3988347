package gamerpower

import (
	"strings"

	"github.com/preston-bernstein/free-games-service/internal/domain/games"
)

func mapGiveaways(list []giveawayResponse) []games.FreeGame {
	out := make([]games.FreeGame, 0, len(list))
	for _, g := range list {
		if !isFullGame(g.Type) {
			continue
		}
		out = append(out, mapGiveaway(g))
	}
	return out
}

// isFullGame drops DLC, beta keys and loot.
func isFullGame(kind string) bool {
	kind = strings.TrimSpace(kind)
	return kind == "" || strings.EqualFold(kind, typeGame)
}

func mapGiveaway(g giveawayResponse) games.FreeGame {
	return games.FreeGame{
		ID:               g.ID.String(),
		Title:            strings.TrimSpace(g.Title),
		Thumbnail:        games.ResolveThumbnail(g.Thumbnail, g.Image),
		ShortDescription: strings.TrimSpace(g.Description),
		GameURL:          firstNonEmpty(g.GameURL, g.OpenGiveawayURL, g.GamerPowerURL),
		Genre:            firstNonEmpty(g.Genre, g.Type, typeGame),
		Platform:         strings.TrimSpace(g.Platforms),
		Publisher:        firstNonEmpty(g.Publisher, g.Platforms, fallbackName),
		Developer:        firstNonEmpty(g.Developer, g.Publisher, fallbackName),
		ReleaseDate:      strings.TrimSpace(g.PublishedDate),
		ProfileURL:       firstNonEmpty(g.ProfileURL, g.GamerPowerURL, g.OpenGiveawayURL),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

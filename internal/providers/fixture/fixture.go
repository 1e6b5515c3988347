package fixture

import (
	"context"
	"time"

	"github.com/preston-bernstein/free-games-service/internal/domain/games"
	"github.com/preston-bernstein/free-games-service/internal/providers"
)

// Provider returns a static set of giveaways useful for local development without an API key.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

// FetchGiveaways returns a deterministic set of giveaways released relative to now.
func (p *Provider) FetchGiveaways(ctx context.Context) ([]games.FreeGame, error) {
	_ = ctx
	today := p.now().UTC().Truncate(24 * time.Hour)
	day := func(offset int) string {
		return today.AddDate(0, 0, -offset).Format("2006-01-02 15:04:05")
	}

	return []games.FreeGame{
		{
			ID:               "fixture-1",
			Title:            "Lantern Drift",
			Thumbnail:        games.PlaceholderThumbnail,
			ShortDescription: "Guide a paper lantern across a flooded city.",
			GameURL:          "https://example.com/giveaways/fixture-1/claim",
			Genre:            "Game",
			Platform:         "PC, Steam",
			Publisher:        "Fixture Games",
			Developer:        "Fixture Games",
			ReleaseDate:      day(1),
			ProfileURL:       "https://example.com/giveaways/fixture-1",
		},
		{
			ID:               "fixture-2",
			Title:            "Orbital Chess",
			Thumbnail:        games.PlaceholderThumbnail,
			ShortDescription: "Chess in zero gravity.",
			GameURL:          "https://example.com/giveaways/fixture-2/claim",
			Genre:            "Game",
			Platform:         "PC, GOG, DRM-Free",
			Publisher:        "Fixture Games",
			Developer:        "Orbit Labs",
			ReleaseDate:      day(12),
			ProfileURL:       "https://example.com/giveaways/fixture-2",
		},
		{
			ID:               "fixture-3",
			Title:            "Harbor Kings",
			Thumbnail:        games.PlaceholderThumbnail,
			ShortDescription: "Build a trading port.",
			GameURL:          "https://example.com/giveaways/fixture-3/claim",
			Genre:            "Game",
			Platform:         "PlayStation 5, Xbox Series X|S",
			Publisher:        "Fixture Games",
			Developer:        "Fixture Games",
			ReleaseDate:      day(45),
			ProfileURL:       "https://example.com/giveaways/fixture-3",
		},
	}, nil
}

// FetchGiveaway returns a fixture giveaway by id.
func (p *Provider) FetchGiveaway(ctx context.Context, id string) (games.FreeGame, error) {
	list, err := p.FetchGiveaways(ctx)
	if err != nil {
		return games.FreeGame{}, err
	}
	for _, g := range list {
		if g.ID == id {
			return g, nil
		}
	}
	return games.FreeGame{}, providers.ErrNotFound
}

package providers

import (
	"context"

	"github.com/preston-bernstein/free-games-service/internal/domain/games"
)

// GiveawayProvider fetches normalized PC/console giveaways.
type GiveawayProvider interface {
	// FetchGiveaways returns every full-game giveaway currently listed.
	FetchGiveaways(ctx context.Context) ([]games.FreeGame, error)
	// FetchGiveaway returns a single giveaway or ErrNotFound.
	FetchGiveaway(ctx context.Context, id string) (games.FreeGame, error)
}

// FeedProvider fetches deals from a mobile platform feed.
type FeedProvider interface {
	FetchFeed(ctx context.Context, platform games.Platform) ([]games.RSSGame, error)
}

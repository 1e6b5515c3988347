package testutil

import (
	"context"

	"github.com/preston-bernstein/free-games-service/internal/domain/games"
	"github.com/preston-bernstein/free-games-service/internal/providers"
)

// GoodProvider returns the provided giveaways with no error.
type GoodProvider struct {
	Games []games.FreeGame
}

func (p GoodProvider) FetchGiveaways(ctx context.Context) ([]games.FreeGame, error) {
	_ = ctx
	return p.Games, nil
}

func (p GoodProvider) FetchGiveaway(ctx context.Context, id string) (games.FreeGame, error) {
	_ = ctx
	for _, g := range p.Games {
		if g.ID == id {
			return g, nil
		}
	}
	return games.FreeGame{}, providers.ErrNotFound
}

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchGiveaways(ctx context.Context) ([]games.FreeGame, error) {
	return nil, p.Err
}

func (p ErrProvider) FetchGiveaway(ctx context.Context, id string) (games.FreeGame, error) {
	return games.FreeGame{}, p.Err
}

// UnavailableProvider returns ErrProviderUnavailable.
type UnavailableProvider struct{}

func (UnavailableProvider) FetchGiveaways(ctx context.Context) ([]games.FreeGame, error) {
	return nil, providers.ErrProviderUnavailable
}

func (UnavailableProvider) FetchGiveaway(ctx context.Context, id string) (games.FreeGame, error) {
	return games.FreeGame{}, providers.ErrProviderUnavailable
}

// FeedMap serves fixed feed listings per platform. Missing platforms return an empty list.
type FeedMap map[games.Platform][]games.RSSGame

func (m FeedMap) FetchFeed(ctx context.Context, platform games.Platform) ([]games.RSSGame, error) {
	_ = ctx
	if list, ok := m[platform]; ok {
		return list, nil
	}
	return []games.RSSGame{}, nil
}

// ErrFeed always fails.
type ErrFeed struct {
	Err error
}

func (f ErrFeed) FetchFeed(ctx context.Context, platform games.Platform) ([]games.RSSGame, error) {
	return nil, f.Err
}

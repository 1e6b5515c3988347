package teststubs

import (
	"context"
	"sync/atomic"

	domaingames "github.com/preston-bernstein/free-games-service/internal/domain/games"
	"github.com/preston-bernstein/free-games-service/internal/providers"
)

// StubProvider is a test double for providers.GiveawayProvider.
type StubProvider struct {
	Games  []domaingames.FreeGame
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}
}

// FetchGiveaways returns configured games and error while tracking calls.
func (s *StubProvider) FetchGiveaways(ctx context.Context) ([]domaingames.FreeGame, error) {
	_ = ctx
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	return s.Games, s.Err
}

// FetchGiveaway finds a configured game by id.
func (s *StubProvider) FetchGiveaway(ctx context.Context, id string) (domaingames.FreeGame, error) {
	_ = ctx
	s.Calls.Add(1)
	if s.Err != nil {
		return domaingames.FreeGame{}, s.Err
	}
	for _, g := range s.Games {
		if g.ID == id {
			return g, nil
		}
	}
	return domaingames.FreeGame{}, providers.ErrNotFound
}

// StubFeedProvider is a test double for providers.FeedProvider.
type StubFeedProvider struct {
	Feeds map[domaingames.Platform][]domaingames.RSSGame
	Errs  map[domaingames.Platform]error
	Calls atomic.Int32
}

// FetchFeed returns the configured listing or error for the platform.
func (s *StubFeedProvider) FetchFeed(ctx context.Context, platform domaingames.Platform) ([]domaingames.RSSGame, error) {
	_ = ctx
	s.Calls.Add(1)
	if err := s.Errs[platform]; err != nil {
		return nil, err
	}
	return s.Feeds[platform], nil
}

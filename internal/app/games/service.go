package games

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	domaingames "github.com/preston-bernstein/free-games-service/internal/domain/games"
	"github.com/preston-bernstein/free-games-service/internal/logging"
	"github.com/preston-bernstein/free-games-service/internal/providers"
	"github.com/preston-bernstein/free-games-service/internal/providers/rssfeed"
)

// Source names reported in outcomes.
const (
	SourceGiveaways = "giveaways"
	SourceAndroid   = "android"
	SourceIOS       = "ios"
)

// SourceOutcome reports how one upstream stage went. A failed stage contributes
// zero games and carries its error here instead of failing the whole request.
type SourceOutcome struct {
	Source string
	Count  int
	Err    error
}

// OK reports whether the stage succeeded.
func (o SourceOutcome) OK() bool {
	return o.Err == nil
}

// Result is an aggregated listing plus the outcome of every stage that ran.
type Result struct {
	Games    []domaingames.FreeGame
	Outcomes []SourceOutcome
}

// Failed returns the outcomes that carry an error.
func (r Result) Failed() []SourceOutcome {
	var out []SourceOutcome
	for _, o := range r.Outcomes {
		if !o.OK() {
			out = append(out, o)
		}
	}
	return out
}

// Service aggregates giveaways and mobile feed deals into FreeGame listings.
// Nothing is cached; every call pulls fresh data.
type Service struct {
	giveaways providers.GiveawayProvider
	feeds     providers.FeedProvider
	logger    *slog.Logger
	now       func() time.Time
}

// NewService constructs a Service. Either provider may be nil, in which case its
// stage reports ErrProviderUnavailable.
func NewService(giveaways providers.GiveawayProvider, feeds providers.FeedProvider, logger *slog.Logger) *Service {
	return &Service{
		giveaways: giveaways,
		feeds:     feeds,
		logger:    logger,
		now:       time.Now,
	}
}

// GamesByPlatform returns every free game for the platform. The result is never nil.
func (s *Service) GamesByPlatform(ctx context.Context, platform domaingames.Platform) []domaingames.FreeGame {
	return s.Collect(ctx, platform).Games
}

// GamesByTime returns the platform listing sorted newest first and limited to the window.
func (s *Service) GamesByTime(ctx context.Context, filter domaingames.TimeFilter, platform domaingames.Platform) []domaingames.FreeGame {
	return s.CollectByTime(ctx, filter, platform).Games
}

// CollectByTime is GamesByTime with per-source outcomes.
func (s *Service) CollectByTime(ctx context.Context, filter domaingames.TimeFilter, platform domaingames.Platform) Result {
	res := s.Collect(ctx, platform)
	domaingames.SortByReleaseDesc(res.Games)
	res.Games = domaingames.WithinWindow(res.Games, filter, s.now())
	return res
}

// Collect gathers the platform listing.
//
// Mobile platforms read only their feed. "all" fetches giveaways and both feeds
// concurrently and concatenates them as giveaways, Android, iOS without de-duplication.
// Store platforms fetch giveaways once and filter by label.
func (s *Service) Collect(ctx context.Context, platform domaingames.Platform) Result {
	switch {
	case platform.IsMobile():
		list, outcome := s.feedStage(ctx, platform)
		return Result{
			Games:    rssfeed.ToFreeGames(list),
			Outcomes: []SourceOutcome{outcome},
		}
	case platform == domaingames.PlatformAll:
		return s.collectAll(ctx)
	default:
		list, outcome := s.giveawayStage(ctx)
		return Result{
			Games:    domaingames.FilterByPlatform(list, platform),
			Outcomes: []SourceOutcome{outcome},
		}
	}
}

// GameByID looks up a giveaway. It returns providers.ErrNotFound when nothing matches.
func (s *Service) GameByID(ctx context.Context, id string) (domaingames.FreeGame, error) {
	if s.giveaways == nil {
		return domaingames.FreeGame{}, providers.ErrProviderUnavailable
	}
	game, err := s.giveaways.FetchGiveaway(ctx, id)
	if err != nil {
		if !errors.Is(err, providers.ErrNotFound) {
			logging.Warn(logging.FromContext(ctx, s.logger), "giveaway lookup failed",
				logging.FieldProvider, SourceGiveaways,
				"id", id,
				"error", err,
			)
		}
		return domaingames.FreeGame{}, err
	}
	game.Thumbnail = domaingames.ResolveThumbnail(game.Thumbnail)
	return game, nil
}

// FeedGames returns raw feed records for a mobile platform. The slice is never nil.
func (s *Service) FeedGames(ctx context.Context, platform domaingames.Platform) ([]domaingames.RSSGame, SourceOutcome) {
	return s.feedStage(ctx, platform)
}

func (s *Service) collectAll(ctx context.Context) Result {
	var (
		g         errgroup.Group
		giveaways []domaingames.FreeGame
		gOutcome  SourceOutcome
		mobile    []domaingames.FreeGame
		mOutcomes []SourceOutcome
	)
	g.Go(func() error {
		giveaways, gOutcome = s.giveawayStage(ctx)
		return nil
	})
	g.Go(func() error {
		mobile, mOutcomes = s.mobileStage(ctx)
		return nil
	})
	_ = g.Wait()

	games := make([]domaingames.FreeGame, 0, len(giveaways)+len(mobile))
	games = append(games, giveaways...)
	games = append(games, mobile...)
	return Result{
		Games:    games,
		Outcomes: append([]SourceOutcome{gOutcome}, mOutcomes...),
	}
}

// mobileStage fetches the Android and iOS feeds together, Android first in the output.
func (s *Service) mobileStage(ctx context.Context) ([]domaingames.FreeGame, []SourceOutcome) {
	var (
		g        errgroup.Group
		lists    [2][]domaingames.RSSGame
		outcomes [2]SourceOutcome
	)
	for i, platform := range domaingames.MobilePlatforms {
		i, platform := i, platform
		g.Go(func() error {
			lists[i], outcomes[i] = s.feedStage(ctx, platform)
			return nil
		})
	}
	_ = g.Wait()

	games := make([]domaingames.FreeGame, 0, len(lists[0])+len(lists[1]))
	for _, list := range lists {
		games = append(games, rssfeed.ToFreeGames(list)...)
	}
	return games, outcomes[:]
}

func (s *Service) giveawayStage(ctx context.Context) ([]domaingames.FreeGame, SourceOutcome) {
	outcome := SourceOutcome{Source: SourceGiveaways}
	if s.giveaways == nil {
		outcome.Err = providers.ErrProviderUnavailable
		return []domaingames.FreeGame{}, outcome
	}

	list, err := s.giveaways.FetchGiveaways(ctx)
	if err != nil {
		outcome.Err = err
		logging.Warn(logging.FromContext(ctx, s.logger), "giveaways unavailable, continuing without them",
			logging.FieldProvider, SourceGiveaways,
			"error", err,
		)
		return []domaingames.FreeGame{}, outcome
	}
	if list == nil {
		list = []domaingames.FreeGame{}
	}
	outcome.Count = len(list)
	return list, outcome
}

func (s *Service) feedStage(ctx context.Context, platform domaingames.Platform) ([]domaingames.RSSGame, SourceOutcome) {
	outcome := SourceOutcome{Source: string(platform)}
	if s.feeds == nil {
		outcome.Err = providers.ErrProviderUnavailable
		return []domaingames.RSSGame{}, outcome
	}

	list, err := s.feeds.FetchFeed(ctx, platform)
	if err != nil {
		outcome.Err = err
		logging.Warn(logging.FromContext(ctx, s.logger), "feed unavailable, continuing without it",
			logging.FieldPlatform, string(platform),
			"error", err,
		)
		return []domaingames.RSSGame{}, outcome
	}
	if list == nil {
		list = []domaingames.RSSGame{}
	}
	outcome.Count = len(list)
	return list, outcome
}

package server

import (
	"log/slog"

	"github.com/preston-bernstein/free-games-service/internal/app/games"
	"github.com/preston-bernstein/free-games-service/internal/config"
	"github.com/preston-bernstein/free-games-service/internal/logging"
	"github.com/preston-bernstein/free-games-service/internal/metrics"
	"github.com/preston-bernstein/free-games-service/internal/providers"
	"github.com/preston-bernstein/free-games-service/internal/providers/fixture"
	"github.com/preston-bernstein/free-games-service/internal/providers/gamerpower"
	"github.com/preston-bernstein/free-games-service/internal/providers/relay"
	"github.com/preston-bernstein/free-games-service/internal/providers/rssfeed"
)

const (
	providerGamerPower = "gamerpower"
	providerFixture    = "fixture"
)

// providerFactory assembles the upstream sources with shared wrappers (retry, relay chain).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

// giveaways returns the configured giveaway source wrapped with retries.
func (f providerFactory) giveaways(cfg config.Config) providers.GiveawayProvider {
	base := selectGiveawayProvider(cfg, f.logger)
	return f.withRetry(cfg, base)
}

func (f providerFactory) withRetry(cfg config.Config, base providers.GiveawayProvider) providers.GiveawayProvider {
	name := normalizeProviderName(cfg.Provider, base)
	return providers.NewRetryingProvider(base, f.logger, f.metrics, name, cfg.GamerPower.RetryAttempts, cfg.GamerPower.RetryBackoff)
}

// feeds returns the mobile feed client reaching the feeds through the relay chain.
func (f providerFactory) feeds(cfg config.Config) providers.FeedProvider {
	extractor, err := rssfeed.NewExtractor(cfg.Feeds.Extractor)
	if err != nil {
		logging.Warn(f.logger, "unknown feed extractor, falling back to pattern",
			"extractor", cfg.Feeds.Extractor,
			"error", err,
		)
		extractor = rssfeed.PatternExtractor{}
	}

	chain := relay.NewChain(relay.Config{
		Templates:        cfg.Relay.Templates,
		AttemptTimeout:   cfg.Relay.AttemptTimeout,
		FailureThreshold: cfg.Relay.FailureThreshold,
		Cooldown:         cfg.Relay.Cooldown,
		MaxCooldown:      cfg.Relay.MaxCooldown,
		Logger:           f.logger,
		Metrics:          f.metrics,
	})

	return rssfeed.NewClient(rssfeed.Config{
		AndroidURL: cfg.Feeds.AndroidURL,
		IOSURL:     cfg.Feeds.IOSURL,
		Fetcher:    chain,
		Extractor:  extractor,
		Logger:     f.logger,
		Metrics:    f.metrics,
	})
}

func selectGiveawayProvider(cfg config.Config, logger *slog.Logger) providers.GiveawayProvider {
	switch cfg.Provider {
	case providerFixture, "":
		return fixture.New()
	case providerGamerPower:
		return gamerpower.NewClient(gamerpower.Config{
			BaseURL: cfg.GamerPower.BaseURL,
			APIKey:  cfg.GamerPower.APIKey,
			APIHost: cfg.GamerPower.APIHost,
			Timeout: cfg.GamerPower.Timeout,
		})
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture", slog.String(logging.FieldProvider, cfg.Provider))
		return fixture.New()
	}
}

// NewGamesService wires the configured sources into an aggregation service without
// starting any servers. The CLI uses it to query upstreams directly.
func NewGamesService(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) *games.Service {
	f := newProviderFactory(logger, recorder)
	return games.NewService(f.giveaways(cfg), f.feeds(cfg), logger)
}

package rssfeed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/free-games-service/internal/domain/games"
	"github.com/preston-bernstein/free-games-service/internal/logging"
	"github.com/preston-bernstein/free-games-service/internal/metrics"
	"github.com/preston-bernstein/free-games-service/internal/providers"
)

// Fetcher returns the raw text of a feed URL.
type Fetcher interface {
	Fetch(ctx context.Context, target string) (string, error)
}

// Config wires a feed client.
type Config struct {
	AndroidURL string
	IOSURL     string
	Fetcher    Fetcher
	Extractor  Extractor
	Logger     *slog.Logger
	Metrics    *metrics.Recorder
}

// Client fetches mobile deal feeds through a Fetcher and parses them.
type Client struct {
	urls    map[games.Platform]string
	fetcher Fetcher
	parser  *Parser
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewClient constructs a feed client.
func NewClient(cfg Config) *Client {
	return &Client{
		urls: map[games.Platform]string{
			games.PlatformAndroid: cfg.AndroidURL,
			games.PlatformIOS:     cfg.IOSURL,
		},
		fetcher: cfg.Fetcher,
		parser:  NewParser(cfg.Extractor, cfg.Logger),
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
	}
}

// FetchFeed returns the deals listed in the platform feed.
func (c *Client) FetchFeed(ctx context.Context, platform games.Platform) ([]games.RSSGame, error) {
	target, ok := c.urls[platform]
	if !ok {
		return nil, fmt.Errorf("%w: %s", providers.ErrUnsupportedPlatform, platform)
	}
	if target == "" || c.fetcher == nil {
		return nil, providers.ErrProviderUnavailable
	}

	start := time.Now()
	body, err := c.fetcher.Fetch(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("fetch %s feed: %w", platform, err)
	}

	list, stats := c.parser.Parse(ctx, body, platform)
	c.metrics.RecordFeedParse(string(platform), stats.Items, stats.Skipped)
	logging.Info(logging.FromContext(ctx, c.logger), "feed parsed",
		logging.FieldPlatform, string(platform),
		logging.FieldCount, stats.Items,
		logging.FieldSkipped, stats.Skipped,
		"dropped", stats.Dropped,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return list, nil
}

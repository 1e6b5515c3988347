package relay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/preston-bernstein/free-games-service/internal/logging"
	"github.com/preston-bernstein/free-games-service/internal/metrics"
)

const (
	acceptHeader          = "*/*, text/xml, application/xml, application/rss+xml"
	urlPlaceholder        = "{url}"
	defaultAttemptTimeout = 8 * time.Second
	maxBodyBytes          = 5 << 20
)

var (
	// ErrRelaysExhausted is returned when no relay produced a feed document.
	ErrRelaysExhausted = errors.New("all relays failed")
	// ErrNotFeed is returned when a relay answered 2xx with something other than XML.
	ErrNotFeed = errors.New("response is not an xml feed")
)

// Config controls the relay chain.
type Config struct {
	// Templates are relay URLs. The encoded target replaces {url} when present,
	// otherwise it is appended.
	Templates        []string
	AttemptTimeout   time.Duration
	FailureThreshold int
	Cooldown         time.Duration
	MaxCooldown      time.Duration
	HTTPClient       *http.Client
	Logger           *slog.Logger
	Metrics          *metrics.Recorder
	Now              func() time.Time
}

type relay struct {
	name     string
	template string
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Chain fetches a feed through an ordered list of relays. Relays are probed
// one at a time and the first usable response wins.
type Chain struct {
	relays         []relay
	httpClient     httpDoer
	attemptTimeout time.Duration
	breaker        *breaker
	logger         *slog.Logger
	metrics        *metrics.Recorder
}

// NewChain builds a relay chain from configuration.
func NewChain(cfg Config) *Chain {
	relays := make([]relay, 0, len(cfg.Templates))
	seen := make(map[string]int)
	for _, tmpl := range cfg.Templates {
		tmpl = strings.TrimSpace(tmpl)
		if tmpl == "" {
			continue
		}
		name := relayName(tmpl)
		seen[name]++
		if seen[name] > 1 {
			name = fmt.Sprintf("%s#%d", name, seen[name])
		}
		relays = append(relays, relay{name: name, template: tmpl})
	}

	timeout := cfg.AttemptTimeout
	if timeout <= 0 {
		timeout = defaultAttemptTimeout
	}

	var client httpDoer = http.DefaultClient
	if cfg.HTTPClient != nil {
		client = cfg.HTTPClient
	}

	return &Chain{
		relays:         relays,
		httpClient:     client,
		attemptTimeout: timeout,
		breaker:        newBreaker(cfg.FailureThreshold, cfg.Cooldown, cfg.MaxCooldown, cfg.Now),
		logger:         cfg.Logger,
		metrics:        cfg.Metrics,
	}
}

// Relays returns relay names in configured order.
func (c *Chain) Relays() []string {
	names := make([]string, 0, len(c.relays))
	for _, r := range c.relays {
		names = append(names, r.name)
	}
	return names
}

// Demoted reports whether the named relay is cooling down.
func (c *Chain) Demoted(name string) bool {
	return c.breaker.demoted(name)
}

// Fetch returns the body of the first relay response that is a 2xx XML document.
// Later relays are not contacted once one succeeds.
func (c *Chain) Fetch(ctx context.Context, target string) (string, error) {
	logger := logging.FromContext(ctx, c.logger)

	var lastErr error
	for _, r := range c.breaker.order(c.relays) {
		start := time.Now()
		body, err := c.attempt(ctx, r, target)
		c.metrics.RecordRelayAttempt(r.name, time.Since(start), err)

		if err == nil {
			c.breaker.success(r.name)
			logging.Debug(logger, "relay fetch succeeded",
				logging.FieldRelay, r.name,
				logging.FieldURL, target,
				logging.FieldDurationMS, time.Since(start).Milliseconds(),
			)
			return body, nil
		}

		lastErr = err
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if opened, wait := c.breaker.failure(r.name); opened {
			c.metrics.RecordBreakerTrip(r.name)
			logging.Warn(logger, "relay demoted",
				logging.FieldRelay, r.name,
				"cooldown", wait.String(),
			)
		}
		logging.Debug(logger, "relay attempt failed",
			logging.FieldRelay, r.name,
			logging.FieldURL, target,
			"error", err,
		)
	}

	if lastErr == nil {
		return "", ErrRelaysExhausted
	}
	return "", fmt.Errorf("%w: last error: %v", ErrRelaysExhausted, lastErr)
}

func (c *Chain) attempt(ctx context.Context, r relay, target string) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, buildURL(r.template, target), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("relay %s: unexpected status %d", r.name, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}
	body := string(raw)
	if !looksLikeFeed(body) {
		return "", fmt.Errorf("relay %s: %w", r.name, ErrNotFeed)
	}
	return body, nil
}

func buildURL(template, target string) string {
	encoded := url.QueryEscape(target)
	if strings.Contains(template, urlPlaceholder) {
		return strings.ReplaceAll(template, urlPlaceholder, encoded)
	}
	return template + encoded
}

func looksLikeFeed(body string) bool {
	return strings.Contains(body, "<rss") || strings.Contains(body, "<?xml")
}

func relayName(template string) string {
	parsed, err := url.Parse(strings.ReplaceAll(template, urlPlaceholder, ""))
	if err != nil || parsed.Host == "" {
		return template
	}
	return parsed.Host
}

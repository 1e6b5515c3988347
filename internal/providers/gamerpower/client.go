package gamerpower

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/free-games-service/internal/domain/games"
	"github.com/preston-bernstein/free-games-service/internal/providers"
)

// Config controls how the GamerPower client reaches the upstream API.
type Config struct {
	BaseURL    string
	APIKey     string
	APIHost    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client fetches giveaways from the GamerPower API and maps them to FreeGame records.
type Client struct {
	baseURL    string
	apiKey     string
	apiHost    string
	httpClient httpDoer
	now        func() time.Time
}

// NewClient constructs a GamerPower client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		apiHost:    resolveAPIHost(cfg.APIHost),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		now:        time.Now,
	}
}

// FetchGiveaways lists current giveaways, keeping full games only.
func (c *Client) FetchGiveaways(ctx context.Context) ([]games.FreeGame, error) {
	body, err := c.get(ctx, "/giveaways", nil)
	if err != nil {
		return nil, err
	}

	var payload []giveawayResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%s: decode giveaways: %w", providerName, err)
	}
	return mapGiveaways(payload), nil
}

// FetchGiveaway looks up a single giveaway by its upstream id.
func (c *Client) FetchGiveaway(ctx context.Context, id string) (games.FreeGame, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return games.FreeGame{}, providers.ErrNotFound
	}

	body, err := c.get(ctx, "/giveaway", map[string]string{"id": id})
	if err != nil {
		return games.FreeGame{}, err
	}

	var status statusResponse
	if err := json.Unmarshal(body, &status); err == nil && status.StatusMessage != "" {
		return games.FreeGame{}, fmt.Errorf("%s: %s: %w", providerName, status.StatusMessage, providers.ErrNotFound)
	}

	var payload giveawayResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return games.FreeGame{}, fmt.Errorf("%s: decode giveaway: %w", providerName, err)
	}
	if payload.ID.String() == "" && payload.Title == "" {
		return games.FreeGame{}, providers.ErrNotFound
	}
	return mapGiveaway(payload), nil
}

func (c *Client) get(ctx context.Context, path string, query map[string]string) ([]byte, error) {
	req, err := c.buildRequest(ctx, path, query)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: providers.ParseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Remaining:  resp.Header.Get("X-RateLimit-Requests-Remaining"),
			Message:    "gamerpower rate limited",
		}
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, providers.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &providers.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return bytes.TrimSpace(body), nil
}

func (c *Client) buildRequest(ctx context.Context, path string, query map[string]string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	if len(query) > 0 {
		q := req.URL.Query()
		for k, v := range query {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}

	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(headerAPIKey, c.apiKey)
	}
	req.Header.Set(headerAPIHost, c.apiHost)
	return req, nil
}

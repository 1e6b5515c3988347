package handlers

import (
	"errors"
	"log/slog"
	nethttp "net/http"
	"net/url"
	"strings"

	"github.com/asaskevich/govalidator"

	"github.com/preston-bernstein/free-games-service/internal/app/games"
	domaingames "github.com/preston-bernstein/free-games-service/internal/domain/games"
	"github.com/preston-bernstein/free-games-service/internal/logging"
	"github.com/preston-bernstein/free-games-service/internal/probe"
	"github.com/preston-bernstein/free-games-service/internal/providers"
)

const maxLimit = 500

// Handler wires HTTP routes to the aggregation service.
type Handler struct {
	svc      *games.Service
	logger   *slog.Logger
	statusFn func() probe.Status
}

// NewHandler constructs a Handler. statusFn may be nil when no probe runs.
func NewHandler(svc *games.Service, logger *slog.Logger, statusFn func() probe.Status) *Handler {
	return &Handler{
		svc:      svc,
		logger:   logger,
		statusFn: statusFn,
	}
}

// SourceResult is the per-source outcome attached to a listing.
type SourceResult struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
	Error  string `json:"error,omitempty"`
}

// GamesResponse is the /games payload.
type GamesResponse struct {
	Platform string                 `json:"platform"`
	Time     string                 `json:"time"`
	Count    int                    `json:"count"`
	Games    []domaingames.FreeGame `json:"games"`
	Sources  []SourceResult         `json:"sources"`
}

// FeedResponse is the /feeds/{platform} payload.
type FeedResponse struct {
	Platform string                `json:"platform"`
	Count    int                   `json:"count"`
	Games    []domaingames.RSSGame `json:"games"`
	Source   SourceResult          `json:"source"`
}

func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch {
	case r.URL.Path == "/health":
		h.Health(w, r)
	case r.URL.Path == "/ready":
		h.Ready(w, r)
	case r.URL.Path == "/games":
		h.Games(w, r)
	case strings.HasPrefix(r.URL.Path, "/games/"):
		h.GameByID(w, r)
	case strings.HasPrefix(r.URL.Path, "/feeds/"):
		h.Feed(w, r)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether the upstream sources are reachable, based on the last probe cycles.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]any{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]any{
			"status":  "ready",
			"sources": status.Sources,
		}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Games lists free games filtered by platform and release window.
func (h *Handler) Games(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	query := r.URL.Query()

	platform, ok := domaingames.ParsePlatform(query.Get("platform"))
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid platform", h.logger)
		return
	}
	filter, ok := domaingames.ParseTimeFilter(query.Get("time"))
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid time filter (expected all, weekly or monthly)", h.logger)
		return
	}
	limit, err := parseLimit(query.Get("limit"))
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	}

	res := h.svc.CollectByTime(r.Context(), filter, platform)
	list := res.Games
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}

	logging.Info(loggerFromContext(r, h.logger), "served games",
		logging.FieldPlatform, string(platform),
		"time", string(filter),
		"count", len(list),
		"failed_sources", len(res.Failed()),
	)

	writeJSON(w, nethttp.StatusOK, GamesResponse{
		Platform: string(platform),
		Time:     string(filter),
		Count:    len(list),
		Games:    list,
		Sources:  sourceResults(res.Outcomes),
	}, h.logger)
}

// GameByID returns a single giveaway.
func (h *Handler) GameByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	id, ok := pathParam(r.URL.Path, "/games/")
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid game id", h.logger)
		return
	}

	game, err := h.svc.GameByID(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(w, nethttp.StatusOK, game, h.logger)
	case errors.Is(err, providers.ErrNotFound):
		writeError(w, r, nethttp.StatusNotFound, "game not found", h.logger)
	case errors.Is(err, providers.ErrProviderUnavailable):
		writeError(w, r, nethttp.StatusServiceUnavailable, "giveaway source unavailable", h.logger)
	default:
		writeError(w, r, nethttp.StatusBadGateway, "giveaway lookup failed", h.logger)
	}
}

// Feed returns the raw feed records for a mobile platform.
func (h *Handler) Feed(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	raw, ok := pathParam(r.URL.Path, "/feeds/")
	platform, known := domaingames.ParsePlatform(raw)
	if !ok || !known || !platform.IsMobile() {
		writeError(w, r, nethttp.StatusBadRequest, "invalid feed platform (expected android or ios)", h.logger)
		return
	}

	list, outcome := h.svc.FeedGames(r.Context(), platform)
	writeJSON(w, nethttp.StatusOK, FeedResponse{
		Platform: string(platform),
		Count:    len(list),
		Games:    list,
		Source:   sourceResult(outcome),
	}, h.logger)
}

func parseLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := govalidator.ToInt(raw)
	if err != nil || !govalidator.InRangeInt(n, 0, maxLimit) {
		return 0, errors.New("invalid limit")
	}
	return int(n), nil
}

func pathParam(path, prefix string) (string, bool) {
	raw := strings.TrimPrefix(path, prefix)
	if raw == "" {
		return "", false
	}
	val, err := url.PathUnescape(raw)
	if err != nil || val == "" || strings.ContainsAny(val, " \t/") {
		return "", false
	}
	return val, true
}

func sourceResults(outcomes []games.SourceOutcome) []SourceResult {
	out := make([]SourceResult, 0, len(outcomes))
	for _, o := range outcomes {
		out = append(out, sourceResult(o))
	}
	return out
}

func sourceResult(o games.SourceOutcome) SourceResult {
	res := SourceResult{Source: o.Source, Count: o.Count}
	if o.Err != nil {
		res.Error = o.Err.Error()
	}
	return res
}

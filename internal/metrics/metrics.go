package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	breakerTrips    int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type feedStats struct {
	items   int
	skipped int
}

// Recorder captures lightweight, in-memory metrics about upstream calls.
// When telemetry is enabled the same events are forwarded to OpenTelemetry instruments.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*providerStats
	feeds map[string]*feedStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		feeds: make(map[string]*feedStats),
		otel:  otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.withStats(provider, func(stats *providerStats) {
		stats.calls++
		stats.lastCallLatency = duration
		if err != nil {
			stats.errors++
		}
	})
	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRelayAttempt tracks a single CORS relay probe. Relays are keyed as "relay:<name>".
func (r *Recorder) RecordRelayAttempt(relay string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.withStats(relayKey(relay), func(stats *providerStats) {
		stats.calls++
		stats.lastCallLatency = duration
		if err != nil {
			stats.errors++
		}
	})
	if r.otel != nil {
		r.otel.recordRelayAttempt(relay, duration, err)
	}
}

// RecordBreakerTrip tracks that a relay was demoted after repeated failures.
func (r *Recorder) RecordBreakerTrip(relay string) {
	if r == nil {
		return
	}
	r.withStats(relayKey(relay), func(stats *providerStats) {
		stats.breakerTrips++
	})
	if r.otel != nil {
		r.otel.recordBreakerTrip(relay)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.withStats(provider, func(stats *providerStats) {
		stats.rateLimitHits++
		if retryAfter > 0 {
			stats.lastRetryAfter = retryAfter
		}
	})
	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordFeedParse tracks how many feed items were emitted and skipped for a platform.
func (r *Recorder) RecordFeedParse(platform string, items, skipped int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	stats, ok := r.feeds[platform]
	if !ok {
		stats = &feedStats{}
		r.feeds[platform] = stats
	}
	stats.items += items
	stats.skipped += skipped
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordFeedParse(platform, items, skipped)
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// RelaySnapshot returns the stats recorded for a relay.
func (r *Recorder) RelaySnapshot(relay string) Snapshot {
	return r.Snapshot(relayKey(relay))
}

// FeedItems returns emitted and skipped item totals for a platform feed.
func (r *Recorder) FeedItems(platform string) (items, skipped int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.feeds[platform]; ok {
		return stats.items, stats.skipped
	}
	return 0, 0
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	BreakerTrips    int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	stats := r.snapshot(provider)
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		BreakerTrips:    stats.breakerTrips,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordProbeCycle tracks readiness probe cycles and errors.
func (r *Recorder) RecordProbeCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordProbe(duration, err)
}

func (r *Recorder) withStats(key string, fn func(*providerStats)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[key]
	if !ok {
		stats = &providerStats{}
		r.stats[key] = stats
	}
	fn(stats)
}

func (r *Recorder) snapshot(provider string) providerStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, ok := r.stats[provider]; ok && stats != nil {
		return *stats
	}
	return providerStats{}
}

func relayKey(relay string) string {
	return "relay:" + relay
}

package providers

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/preston-bernstein/free-games-service/internal/domain/games"
	"github.com/preston-bernstein/free-games-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxRetryAfter        = 30 * time.Second
)

type backoffFunc func(attempt int) time.Duration

// retryingProvider wraps a GiveawayProvider with retry/backoff behavior and per-attempt metrics.
type retryingProvider struct {
	inner        GiveawayProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	backoffFn    backoffFunc
	rngMu        sync.Mutex
	rng          *rand.Rand
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner GiveawayProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, backoff time.Duration) GiveawayProvider {
	return NewRetryingProviderWithRNG(inner, logger, recorder, name, nil, maxAttempts, backoff)
}

// NewRetryingProviderWithRNG is NewRetryingProvider with an injectable jitter source.
func NewRetryingProviderWithRNG(inner GiveawayProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, rng *rand.Rand, maxAttempts int, backoff time.Duration) GiveawayProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	if name == "" {
		name = "provider"
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		metrics:      recorder,
		providerName: name,
		maxAttempts:  maxAttempts,
		rng:          rng,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retryingProvider) FetchGiveaways(ctx context.Context) ([]games.FreeGame, error) {
	var out []games.FreeGame
	err := r.do(ctx, "fetch giveaways", func(ctx context.Context) error {
		list, err := r.inner.FetchGiveaways(ctx)
		out = list
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *retryingProvider) FetchGiveaway(ctx context.Context, id string) (games.FreeGame, error) {
	var out games.FreeGame
	err := r.do(ctx, "fetch giveaway", func(ctx context.Context) error {
		g, err := r.inner.FetchGiveaway(ctx, id)
		out = g
		return err
	})
	if err != nil {
		return games.FreeGame{}, err
	}
	return out, nil
}

func (r *retryingProvider) do(ctx context.Context, op string, call func(context.Context) error) error {
	if r.inner == nil {
		return ErrProviderUnavailable
	}
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		start := time.Now()
		err := call(ctx)
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return nil
		}
		lastErr = err

		if rlErr, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.providerName, rlErr.RetryAfter)
		}
		if !retryable(err) || attempt == r.maxAttempts {
			break
		}

		r.log(ctx, slog.LevelWarn, op+" retry", "attempt", attempt, "max_attempts", r.maxAttempts, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.computeDelay(err, attempt)):
		}
	}

	r.log(ctx, slog.LevelWarn, op+" failed", "attempts", r.maxAttempts, "error", lastErr)
	return lastErr
}

// computeDelay honors Retry-After for rate limits and otherwise jitters the backoff into [base/2, base].
func (r *retryingProvider) computeDelay(err error, attempt int) time.Duration {
	if rlErr, ok := AsRateLimitError(err); ok && rlErr.RetryAfter > 0 {
		if rlErr.RetryAfter > maxRetryAfter {
			return maxRetryAfter
		}
		return rlErr.RetryAfter
	}
	base := r.backoffFn(attempt)
	if base <= 0 {
		return 0
	}
	half := base / 2
	r.rngMu.Lock()
	jitter := time.Duration(r.rng.Int63n(int64(half) + 1))
	r.rngMu.Unlock()
	return half + jitter
}

func (r *retryingProvider) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	logWithProvider(ctx, r.logger, level, r.providerName, msg, args...)
}

func retryable(err error) bool {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrProviderUnavailable) {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Retryable()
	}
	return true
}

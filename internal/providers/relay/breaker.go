package relay

import (
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultFailureThreshold = 3
	defaultCooldown         = 30 * time.Second
	defaultMaxCooldown      = 10 * time.Minute
)

// breaker demotes relays that keep failing. A demoted relay is not skipped,
// only moved behind the healthy ones until its cooldown expires.
type breaker struct {
	mu          sync.Mutex
	threshold   int
	cooldown    time.Duration
	maxCooldown time.Duration
	now         func() time.Time
	states      map[string]*relayState
}

type relayState struct {
	failures  int
	openUntil time.Time
	backoff   *backoff.ExponentialBackOff
}

func newBreaker(threshold int, cooldown, maxCooldown time.Duration, now func() time.Time) *breaker {
	if threshold <= 0 {
		threshold = defaultFailureThreshold
	}
	if cooldown <= 0 {
		cooldown = defaultCooldown
	}
	if maxCooldown < cooldown {
		maxCooldown = defaultMaxCooldown
		if maxCooldown < cooldown {
			maxCooldown = cooldown
		}
	}
	if now == nil {
		now = time.Now
	}
	return &breaker{
		threshold:   threshold,
		cooldown:    cooldown,
		maxCooldown: maxCooldown,
		now:         now,
		states:      make(map[string]*relayState),
	}
}

// order returns the relays with healthy ones first, both groups keeping configured order.
func (b *breaker) order(relays []relay) []relay {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	ordered := make([]relay, 0, len(relays))
	var demoted []relay
	for _, r := range relays {
		if st, ok := b.states[r.name]; ok && now.Before(st.openUntil) {
			demoted = append(demoted, r)
			continue
		}
		ordered = append(ordered, r)
	}
	return append(ordered, demoted...)
}

func (b *breaker) success(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	st := b.state(name)
	st.failures = 0
	st.openUntil = time.Time{}
	st.backoff.Reset()
}

// failure records a failed attempt and reports whether the relay was (re)opened.
func (b *breaker) failure(name string) (bool, time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	st := b.state(name)
	st.failures++
	if st.failures < b.threshold {
		return false, 0
	}
	wait := st.backoff.NextBackOff()
	if wait == backoff.Stop {
		wait = b.maxCooldown
	}
	st.openUntil = b.now().Add(wait)
	return true, wait
}

func (b *breaker) demoted(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	st, ok := b.states[name]
	return ok && b.now().Before(st.openUntil)
}

func (b *breaker) state(name string) *relayState {
	st, ok := b.states[name]
	if !ok {
		st = &relayState{backoff: b.newBackOff()}
		b.states[name] = st
	}
	return st
}

func (b *breaker) newBackOff() *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = b.cooldown
	bo.MaxInterval = b.maxCooldown
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxElapsedTime = 0
	bo.Reset()
	return bo
}

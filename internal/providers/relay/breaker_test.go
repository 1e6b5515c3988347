package relay

import (
	"testing"
	"time"
)

func TestBreakerCooldownGrowsAndResets(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := newBreaker(1, time.Second, 4*time.Second, func() time.Time { return now })

	waits := make([]time.Duration, 0, 4)
	for i := 0; i < 4; i++ {
		opened, wait := b.failure("r")
		if !opened {
			t.Fatalf("failure %d: expected breaker to open", i)
		}
		waits = append(waits, wait)
	}
	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 4 * time.Second}
	for i := range want {
		if waits[i] != want[i] {
			t.Fatalf("cooldown %d: expected %s, got %s", i, want[i], waits[i])
		}
	}

	b.success("r")
	if b.demoted("r") {
		t.Fatalf("expected success to clear demotion")
	}
	if _, wait := b.failure("r"); wait != time.Second {
		t.Fatalf("expected cooldown reset to initial, got %s", wait)
	}
}

func TestBreakerThreshold(t *testing.T) {
	b := newBreaker(3, time.Second, time.Minute, nil)
	for i := 0; i < 2; i++ {
		if opened, _ := b.failure("r"); opened {
			t.Fatalf("expected breaker closed before threshold")
		}
	}
	if opened, _ := b.failure("r"); !opened {
		t.Fatalf("expected breaker open at threshold")
	}
	if !b.demoted("r") {
		t.Fatalf("expected relay demoted")
	}
}

func TestBreakerOrderKeepsConfiguredOrderWithinGroups(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := newBreaker(1, time.Minute, time.Hour, func() time.Time { return now })
	relays := []relay{{name: "a"}, {name: "b"}, {name: "c"}, {name: "d"}}

	b.failure("a")
	b.failure("c")

	got := b.order(relays)
	want := []string{"b", "d", "a", "c"}
	for i, r := range got {
		if r.name != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestNewBreakerDefaults(t *testing.T) {
	b := newBreaker(0, 0, 0, nil)
	if b.threshold != defaultFailureThreshold || b.cooldown != defaultCooldown || b.maxCooldown != defaultMaxCooldown {
		t.Fatalf("unexpected defaults %+v", b)
	}
}

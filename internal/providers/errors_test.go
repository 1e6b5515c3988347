package providers

import (
	"fmt"
	"testing"
	"time"
)

func TestRateLimitErrorString(t *testing.T) {
	err := &RateLimitError{
		Provider:   "p",
		StatusCode: 429,
		Message:    "rate limited",
	}
	if got := err.Error(); got == "" || got == "rate limited" {
		t.Fatalf("expected status in error string, got %q", got)
	}

	rl, ok := AsRateLimitError(fmt.Errorf("wrapped: %w", err))
	if !ok || rl == nil {
		t.Fatalf("expected to unwrap rate limit error")
	}

	noStatus := &RateLimitError{}
	if got := noStatus.Error(); got == "" {
		t.Fatalf("expected fallback message")
	}
}

func TestStatusErrorRetryable(t *testing.T) {
	if (&StatusError{StatusCode: 503}).Retryable() != true {
		t.Fatalf("expected 5xx to be retryable")
	}
	if (&StatusError{StatusCode: 404}).Retryable() {
		t.Fatalf("expected 4xx to be final")
	}
	err := &StatusError{Provider: "gamerpower", StatusCode: 500, Body: "oops"}
	if got := err.Error(); got != "gamerpower: unexpected status 500: oops" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	if got := ParseRetryAfter("3", now); got != 3*time.Second {
		t.Fatalf("expected 3s, got %s", got)
	}
	date := now.Add(10 * time.Second).Format(time.RFC1123)
	if got := ParseRetryAfter(date, now); got != 10*time.Second {
		t.Fatalf("expected 10s from http-date, got %s", got)
	}
	if got := ParseRetryAfter("", now); got != 0 {
		t.Fatalf("expected zero for empty header, got %s", got)
	}
	if got := ParseRetryAfter("garbage", now); got != 0 {
		t.Fatalf("expected zero for garbage header, got %s", got)
	}
}

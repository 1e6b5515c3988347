package gamerpower

import (
	"net/http"
	"testing"
	"time"
)

func TestNormalizeBaseURLTrimsTrailingSlashAndDefaults(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"", defaultBaseURL},
		{"https://api.example.com/", "https://api.example.com"},
		{"https://api.example.com", "https://api.example.com"},
	}

	for _, c := range cases {
		if got := normalizeBaseURL(c.input); got != c.expected {
			t.Fatalf("expected %s, got %s", c.expected, got)
		}
	}
}

func TestResolveHTTPClientTimeouts(t *testing.T) {
	cases := []struct {
		timeout  time.Duration
		expected time.Duration
	}{
		{0, defaultHTTPTimeout},
		{3 * time.Second, 3 * time.Second},
	}
	for _, c := range cases {
		client, ok := resolveHTTPClient(nil, c.timeout).(*http.Client)
		if !ok {
			t.Fatalf("expected *http.Client")
		}
		if client.Timeout != c.expected {
			t.Fatalf("expected timeout %s, got %s", c.expected, client.Timeout)
		}
	}
}

func TestResolveHTTPClientUsesProvidedClient(t *testing.T) {
	custom := &http.Client{Timeout: 5 * time.Second}
	if client := resolveHTTPClient(custom, time.Second); client != custom {
		t.Fatalf("expected provided client to be used")
	}
}

func TestResolveAPIHost(t *testing.T) {
	if got := resolveAPIHost(""); got != defaultAPIHost {
		t.Fatalf("expected default host, got %s", got)
	}
	if got := resolveAPIHost("custom.example"); got != "custom.example" {
		t.Fatalf("expected custom host, got %s", got)
	}
}

package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.Provider != defaultProvider {
		t.Fatalf("expected default provider %s, got %s", defaultProvider, cfg.Provider)
	}
	if cfg.GamerPower.BaseURL != defaultGamerPowerBaseURL {
		t.Fatalf("expected default gamerpower base url %s, got %s", defaultGamerPowerBaseURL, cfg.GamerPower.BaseURL)
	}
	if cfg.GamerPower.APIKey != "" {
		t.Fatalf("expected empty api key by default, got %s", cfg.GamerPower.APIKey)
	}
	if cfg.GamerPower.APIHost != defaultGamerPowerAPIHost {
		t.Fatalf("expected default api host, got %s", cfg.GamerPower.APIHost)
	}
	if cfg.Feeds.Extractor != defaultFeedExtractor {
		t.Fatalf("expected default extractor %s, got %s", defaultFeedExtractor, cfg.Feeds.Extractor)
	}
	if !reflect.DeepEqual(cfg.Relay.Templates, defaultRelayTemplates) {
		t.Fatalf("expected default relay templates, got %v", cfg.Relay.Templates)
	}
	if cfg.Relay.AttemptTimeout != defaultRelayTimeout {
		t.Fatalf("expected default relay timeout %s, got %s", defaultRelayTimeout, cfg.Relay.AttemptTimeout)
	}
	if !cfg.Probe.Enabled || cfg.Probe.Interval != defaultProbeInterval {
		t.Fatalf("unexpected probe defaults %+v", cfg.Probe)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
		t.Fatalf("expected wildcard cors origin, got %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Metrics.ServiceName != defaultServiceName {
		t.Fatalf("expected default service name, got %s", cfg.Metrics.ServiceName)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envPort, "5000")
	t.Setenv(envProvider, "fixture")
	t.Setenv(envGamerPowerBaseURL, "http://example.com/api")
	t.Setenv(envGamerPowerAPIKey, "secret-key")
	t.Setenv(envGiveawayRetries, "4")
	t.Setenv(envFeedAndroidURL, "http://example.com/android.xml")
	t.Setenv(envFeedExtractor, "markup")
	t.Setenv(envRelayTemplates, "http://relay-a/?u=, http://relay-b/fetch/")
	t.Setenv(envRelayTimeout, "2s")
	t.Setenv(envProbeEnabled, "false")
	t.Setenv(envCORSOrigins, "https://a.example,https://b.example")

	cfg := Load()

	if cfg.Port != "5000" {
		t.Fatalf("expected port 5000, got %s", cfg.Port)
	}
	if cfg.Provider != "fixture" {
		t.Fatalf("expected provider fixture, got %s", cfg.Provider)
	}
	if cfg.GamerPower.BaseURL != "http://example.com/api" || cfg.GamerPower.APIKey != "secret-key" {
		t.Fatalf("expected gamerpower overrides, got %+v", cfg.GamerPower)
	}
	if cfg.GamerPower.RetryAttempts != 4 {
		t.Fatalf("expected 4 retry attempts, got %d", cfg.GamerPower.RetryAttempts)
	}
	if cfg.Feeds.AndroidURL != "http://example.com/android.xml" || cfg.Feeds.Extractor != "markup" {
		t.Fatalf("expected feed overrides, got %+v", cfg.Feeds)
	}
	want := []string{"http://relay-a/?u=", "http://relay-b/fetch/"}
	if !reflect.DeepEqual(cfg.Relay.Templates, want) {
		t.Fatalf("expected relay templates %v, got %v", want, cfg.Relay.Templates)
	}
	if cfg.Relay.AttemptTimeout != 2*time.Second {
		t.Fatalf("expected relay timeout 2s, got %s", cfg.Relay.AttemptTimeout)
	}
	if cfg.Probe.Enabled {
		t.Fatalf("expected probe disabled")
	}
	if len(cfg.CORS.AllowedOrigins) != 2 {
		t.Fatalf("expected two cors origins, got %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv(envRelayTimeout, "not-a-duration")
	cfg := Load()
	if cfg.Relay.AttemptTimeout != defaultRelayTimeout {
		t.Fatalf("expected default relay timeout on invalid value, got %s", cfg.Relay.AttemptTimeout)
	}
}

func TestLoadNonPositiveDurationFallsBack(t *testing.T) {
	t.Setenv(envProbeInterval, "0s")
	cfg := Load()
	if cfg.Probe.Interval != defaultProbeInterval {
		t.Fatalf("expected default probe interval on non-positive value, got %s", cfg.Probe.Interval)
	}
}

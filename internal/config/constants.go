package config

import "time"

const (
	envPort     = "PORT"
	envProvider = "PROVIDER"

	envGamerPowerBaseURL = "GAMERPOWER_BASE_URL"
	envGamerPowerAPIKey  = "GAMERPOWER_API_KEY"
	envGamerPowerAPIHost = "GAMERPOWER_API_HOST"
	envGamerPowerTimeout = "GAMERPOWER_TIMEOUT"
	envGiveawayRetries   = "GIVEAWAY_RETRY_ATTEMPTS"
	envGiveawayBackoff   = "GIVEAWAY_RETRY_BACKOFF"

	envFeedAndroidURL = "FEED_ANDROID_URL"
	envFeedIOSURL     = "FEED_IOS_URL"
	envFeedExtractor  = "FEED_EXTRACTOR"

	envRelayTemplates   = "RELAY_TEMPLATES"
	envRelayTimeout     = "RELAY_ATTEMPT_TIMEOUT"
	envRelayThreshold   = "RELAY_FAILURE_THRESHOLD"
	envRelayCooldown    = "RELAY_COOLDOWN"
	envRelayMaxCooldown = "RELAY_MAX_COOLDOWN"

	envProbeEnabled  = "PROBE_ENABLED"
	envProbeInterval = "PROBE_INTERVAL"

	envCORSOrigins = "CORS_ALLOWED_ORIGINS"

	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort     = "4000"
	defaultProvider = "gamerpower"

	defaultGamerPowerBaseURL = "https://gamerpower.p.rapidapi.com/api"
	defaultGamerPowerAPIHost = "gamerpower.p.rapidapi.com"
	defaultGamerPowerTimeout = 10 * time.Second
	defaultGiveawayRetries   = 2
	defaultGiveawayBackoff   = 250 * time.Millisecond

	defaultFeedAndroidURL = "https://appsliced.co/apps/android?sort=latest&price=free&rss=1"
	defaultFeedIOSURL     = "https://appsliced.co/apps/iphone?sort=latest&price=free&rss=1"
	defaultFeedExtractor  = "pattern"

	// Each relay gets its own deadline; a hanging relay must not stall the chain.
	defaultRelayTimeout     = 8 * time.Second
	defaultRelayThreshold   = 3
	defaultRelayCooldown    = 30 * time.Second
	defaultRelayMaxCooldown = 10 * time.Minute

	defaultProbeEnabled  = true
	defaultProbeInterval = 5 * time.Minute

	defaultMetricsPort = "9090"
	defaultServiceName = "free-games-service"
)

// Tried in order; the target feed URL is percent-encoded and appended.
var defaultRelayTemplates = []string{
	"https://api.allorigins.win/raw?url=",
	"https://corsproxy.io/?url=",
	"https://api.codetabs.com/v1/proxy?quest=",
	"https://thingproxy.freeboard.io/fetch/",
}

var defaultCORSOrigins = []string{"*"}

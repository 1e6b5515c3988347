package config

// FeedsConfig locates the mobile deal feeds and picks the description extractor.
type FeedsConfig struct {
	AndroidURL string
	IOSURL     string
	Extractor  string
}

// RelayConfig controls the CORS relay chain used to reach the feeds.
type RelayConfig struct {
	Templates        []string
	AttemptTimeout   Duration
	FailureThreshold int
	Cooldown         Duration
	MaxCooldown      Duration
}

func loadFeeds() FeedsConfig {
	return FeedsConfig{
		AndroidURL: envOrDefault(envFeedAndroidURL, defaultFeedAndroidURL),
		IOSURL:     envOrDefault(envFeedIOSURL, defaultFeedIOSURL),
		Extractor:  envOrDefault(envFeedExtractor, defaultFeedExtractor),
	}
}

func loadRelay() RelayConfig {
	return RelayConfig{
		Templates:        listEnvOrDefault(envRelayTemplates, defaultRelayTemplates),
		AttemptTimeout:   durationEnvOrDefault(envRelayTimeout, defaultRelayTimeout),
		FailureThreshold: intEnvOrDefault(envRelayThreshold, defaultRelayThreshold),
		Cooldown:         durationEnvOrDefault(envRelayCooldown, defaultRelayCooldown),
		MaxCooldown:      durationEnvOrDefault(envRelayMaxCooldown, defaultRelayMaxCooldown),
	}
}

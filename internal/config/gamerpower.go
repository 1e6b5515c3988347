package config

// GamerPowerConfig controls how we talk to the giveaway API.
// APIKey and APIHost are sent as the two static RapidAPI headers.
type GamerPowerConfig struct {
	BaseURL       string
	APIKey        string
	APIHost       string
	Timeout       Duration
	RetryAttempts int
	RetryBackoff  Duration
}

func loadGamerPower() GamerPowerConfig {
	return GamerPowerConfig{
		BaseURL:       envOrDefault(envGamerPowerBaseURL, defaultGamerPowerBaseURL),
		APIKey:        envOrDefault(envGamerPowerAPIKey, ""),
		APIHost:       envOrDefault(envGamerPowerAPIHost, defaultGamerPowerAPIHost),
		Timeout:       durationEnvOrDefault(envGamerPowerTimeout, defaultGamerPowerTimeout),
		RetryAttempts: intEnvOrDefault(envGiveawayRetries, defaultGiveawayRetries),
		RetryBackoff:  durationEnvOrDefault(envGiveawayBackoff, defaultGiveawayBackoff),
	}
}

package config

// Config holds runtime configuration for the server and CLI.
type Config struct {
	Port       string
	Provider   string
	GamerPower GamerPowerConfig
	Feeds      FeedsConfig
	Relay      RelayConfig
	Probe      ProbeConfig
	CORS       CORSConfig
	Metrics    MetricsConfig
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string
}

// ProbeConfig controls the background readiness probe.
type ProbeConfig struct {
	Enabled  bool
	Interval Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:       envOrDefault(envPort, defaultPort),
		Provider:   envOrDefault(envProvider, defaultProvider),
		GamerPower: loadGamerPower(),
		Feeds:      loadFeeds(),
		Relay:      loadRelay(),
		Probe: ProbeConfig{
			Enabled:  boolEnvOrDefault(envProbeEnabled, defaultProbeEnabled),
			Interval: durationEnvOrDefault(envProbeInterval, defaultProbeInterval),
		},
		CORS: CORSConfig{
			AllowedOrigins: listEnvOrDefault(envCORSOrigins, defaultCORSOrigins),
		},
		Metrics: loadMetrics(),
	}
}

package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/free-games-service/internal/providers"
)

// normalizeProviderName returns a lower-cased provider name, deriving from the instance when not configured.
// Keeps naming consistent in metrics and logs.
func normalizeProviderName(raw string, provider providers.GiveawayProvider) string {
	if raw = strings.TrimSpace(raw); raw != "" {
		return strings.ToLower(raw)
	}
	if provider != nil {
		return strings.ToLower(fmt.Sprintf("%T", provider))
	}
	return "provider"
}

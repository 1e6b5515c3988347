package games

import "strings"

// Platform is a canonical lowercase filter token.
type Platform string

const (
	PlatformAll         Platform = "all"
	PlatformSteam       Platform = "steam"
	PlatformPlayStation Platform = "playstation"
	PlatformXbox        Platform = "xbox"
	PlatformGOG         Platform = "gog"
	PlatformAndroid     Platform = "android"
	PlatformIOS         Platform = "ios"
)

// Platforms lists every accepted token in display order.
var Platforms = []Platform{
	PlatformAll,
	PlatformSteam,
	PlatformPlayStation,
	PlatformXbox,
	PlatformGOG,
	PlatformAndroid,
	PlatformIOS,
}

// MobilePlatforms are served from the relayed RSS feeds.
var MobilePlatforms = []Platform{PlatformAndroid, PlatformIOS}

// Source labels are matched by substring, so "DRM-Free" counts as gog and
// "Steam, PC, Xbox" matches both steam and xbox.
var platformNeedles = map[Platform][]string{
	PlatformSteam:       {"steam"},
	PlatformPlayStation: {"playstation"},
	PlatformXbox:        {"xbox"},
	PlatformGOG:         {"gog", "drm-free"},
	PlatformAndroid:     {"android"},
	PlatformIOS:         {"ios"},
}

// ParsePlatform normalizes a filter value; empty means all.
func ParsePlatform(raw string) (Platform, bool) {
	p := Platform(strings.ToLower(strings.TrimSpace(raw)))
	if p == "" {
		return PlatformAll, true
	}
	for _, known := range Platforms {
		if p == known {
			return p, true
		}
	}
	return "", false
}

// IsMobile reports whether the platform is fed by the RSS path.
func (p Platform) IsMobile() bool {
	return p == PlatformAndroid || p == PlatformIOS
}

// Label is the display label stamped on feed records.
func (p Platform) Label() string {
	switch p {
	case PlatformAndroid:
		return "Android"
	case PlatformIOS:
		return "iOS"
	default:
		return string(p)
	}
}

// Matches reports whether a free-text source label belongs to this platform.
func (p Platform) Matches(label string) bool {
	if p == PlatformAll {
		return true
	}
	lower := strings.ToLower(label)
	for _, needle := range platformNeedles[p] {
		if strings.Contains(lower, needle) {
			return true
		}
	}
	return false
}

// FilterByPlatform keeps games whose platform label matches p. The result is never nil.
func FilterByPlatform(list []FreeGame, p Platform) []FreeGame {
	out := make([]FreeGame, 0, len(list))
	for _, g := range list {
		if p.Matches(g.Platform) {
			out = append(out, g)
		}
	}
	return out
}

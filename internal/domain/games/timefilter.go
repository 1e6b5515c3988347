package games

import (
	"sort"
	"strings"
	"time"
)

// TimeFilter selects a trailing window over release dates.
type TimeFilter string

const (
	TimeAll     TimeFilter = "all"
	TimeWeekly  TimeFilter = "weekly"
	TimeMonthly TimeFilter = "monthly"
)

// DateLayout is the ISO date format used for release_date.
const DateLayout = "2006-01-02"

var releaseLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	DateLayout,
	time.RFC1123Z,
	time.RFC1123,
	// RSS dates may carry a single-digit day.
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	time.RFC822Z,
	time.RFC822,
}

// ParseTimeFilter normalizes a time filter value; empty means all.
func ParseTimeFilter(raw string) (TimeFilter, bool) {
	switch f := TimeFilter(strings.ToLower(strings.TrimSpace(raw))); f {
	case "", TimeAll:
		return TimeAll, true
	case TimeWeekly, TimeMonthly:
		return f, true
	default:
		return "", false
	}
}

// Days returns the window length, or 0 when the filter has no window.
func (f TimeFilter) Days() int {
	switch f {
	case TimeWeekly:
		return 7
	case TimeMonthly:
		return 30
	default:
		return 0
	}
}

// ParseReleaseDate parses the date formats seen across sources.
func ParseReleaseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range releaseLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortByReleaseDesc stable-sorts newest first. Unparsable dates go last.
func SortByReleaseDesc(list []FreeGame) {
	keys := make([]time.Time, len(list))
	valid := make([]bool, len(list))
	for i, g := range list {
		keys[i], valid[i] = ParseReleaseDate(g.ReleaseDate)
	}
	idx := make([]int, len(list))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ia, ib := idx[a], idx[b]
		if valid[ia] != valid[ib] {
			return valid[ia]
		}
		return keys[ia].After(keys[ib])
	})
	sorted := make([]FreeGame, len(list))
	for i, j := range idx {
		sorted[i] = list[j]
	}
	copy(list, sorted)
}

// WithinWindow keeps games released in [now-days, now]. Unparsable dates are dropped.
// TimeAll returns the input unchanged.
func WithinWindow(list []FreeGame, f TimeFilter, now time.Time) []FreeGame {
	days := f.Days()
	if days == 0 {
		return list
	}
	boundary := now.AddDate(0, 0, -days)
	out := make([]FreeGame, 0, len(list))
	for _, g := range list {
		released, ok := ParseReleaseDate(g.ReleaseDate)
		if !ok {
			continue
		}
		if released.Before(boundary) || released.After(now) {
			continue
		}
		out = append(out, g)
	}
	return out
}

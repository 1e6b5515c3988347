package display

import (
	"errors"
	"strings"
	"testing"

	"github.com/preston-bernstein/free-games-service/internal/app/games"
	domaingames "github.com/preston-bernstein/free-games-service/internal/domain/games"
	"github.com/preston-bernstein/free-games-service/internal/testutil"
)

func TestFormatGameShowsTitlePlatformAndLink(t *testing.T) {
	g := testutil.SampleFreeGame("9", "PC, Steam")

	out := NewTerminalFormatter().FormatGame(g)

	for _, want := range []string{"Game 9", "PC, Steam", "Sample Publisher", "https://example.com/claim/9"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestFormatGamesEmptyAndFailures(t *testing.T) {
	f := NewTerminalFormatter()
	outcomes := []games.SourceOutcome{
		{Source: games.SourceGiveaways, Count: 0, Err: errors.New("timeout")},
		{Source: games.SourceAndroid, Count: 0},
	}

	out := f.FormatGames(nil, outcomes)

	if !strings.Contains(out, "No free games right now.") {
		t.Fatalf("expected empty message, got:\n%s", out)
	}
	if !strings.Contains(out, "giveaways unavailable: timeout") {
		t.Fatalf("expected failed source listed, got:\n%s", out)
	}
	if strings.Contains(out, "android unavailable") {
		t.Fatalf("did not expect successful source listed, got:\n%s", out)
	}
}

func TestFormatOutcomesAllOK(t *testing.T) {
	out := NewTerminalFormatter().FormatOutcomes([]games.SourceOutcome{{Source: "ios", Count: 3}})
	if out != "" {
		t.Fatalf("expected no summary when every source succeeded, got %q", out)
	}
}

func TestFormatDetailIncludesDescription(t *testing.T) {
	g := testutil.SampleFreeGame("4", "GOG")
	out := NewTerminalFormatter().FormatDetail(g)

	for _, want := range []string{"Game 4", "Sample giveaway", "by Sample Developer", "https://example.com/giveaway/4"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in detail:\n%s", want, out)
		}
	}
}

func TestFormatDealsShowsPricing(t *testing.T) {
	deal := testutil.SampleRSSGame(domaingames.PlatformIOS, 2, "Tue, 28 May 2024 09:30:00 +0000")
	out := NewTerminalFormatter().FormatDeals([]domaingames.RSSGame{deal}, games.SourceOutcome{Source: "ios", Count: 1})

	if !strings.Contains(out, "$4.99 -> Free (100% off)") {
		t.Fatalf("expected pricing line, got:\n%s", out)
	}
	if !strings.Contains(out, deal.URL) {
		t.Fatalf("expected store url, got:\n%s", out)
	}
}

func TestTruncateText(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a longer sentence", 10, "a longe..."},
		{"abc", 2, "..."},
	}
	for _, tc := range cases {
		if got := TruncateText(tc.in, tc.max); got != tc.want {
			t.Fatalf("TruncateText(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}

package fixture

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/free-games-service/internal/domain/games"
	"github.com/preston-bernstein/free-games-service/internal/providers"
)

func TestFetchGiveawaysReturnsDeterministicGames(t *testing.T) {
	fixed := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	p := New()
	p.now = func() time.Time { return fixed }

	list, err := p.FetchGiveaways(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 giveaways, got %d", len(list))
	}

	first := list[0]
	if first.ID != "fixture-1" || first.ReleaseDate != "2024-01-09 00:00:00" {
		t.Fatalf("unexpected first giveaway: %+v", first)
	}
	for _, g := range list {
		if g.Thumbnail == "" {
			t.Fatalf("expected thumbnail on %s", g.ID)
		}
	}
}

func TestFixtureCoversWindowsAndPlatforms(t *testing.T) {
	fixed := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	p := New()
	p.now = func() time.Time { return fixed }
	list, _ := p.FetchGiveaways(context.Background())

	if got := games.WithinWindow(list, games.TimeWeekly, fixed); len(got) != 1 {
		t.Fatalf("expected one weekly giveaway, got %d", len(got))
	}
	if got := games.WithinWindow(list, games.TimeMonthly, fixed); len(got) != 2 {
		t.Fatalf("expected two monthly giveaways, got %d", len(got))
	}
	if got := games.FilterByPlatform(list, games.PlatformGOG); len(got) != 1 || got[0].ID != "fixture-2" {
		t.Fatalf("expected gog fixture, got %+v", got)
	}
}

func TestFetchGiveawayByID(t *testing.T) {
	p := New()
	g, err := p.FetchGiveaway(context.Background(), "fixture-2")
	if err != nil || g.Title != "Orbital Chess" {
		t.Fatalf("unexpected result %+v, %v", g, err)
	}
	if _, err := p.FetchGiveaway(context.Background(), "missing"); !errors.Is(err, providers.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProviderSatisfiesInterface(t *testing.T) {
	var _ providers.GiveawayProvider = New()
}

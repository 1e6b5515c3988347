package rssfeed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/free-games-service/internal/domain/games"
	"github.com/preston-bernstein/free-games-service/internal/metrics"
	"github.com/preston-bernstein/free-games-service/internal/providers"
	"github.com/preston-bernstein/free-games-service/internal/providers/relay"
)

type stubFetcher struct {
	body    string
	err     error
	targets []string
}

func (s *stubFetcher) Fetch(ctx context.Context, target string) (string, error) {
	s.targets = append(s.targets, target)
	return s.body, s.err
}

func TestFetchFeedUsesPlatformURLAndRecordsStats(t *testing.T) {
	fetcher := &stubFetcher{body: androidFeed}
	rec := metrics.NewRecorder()
	client := NewClient(Config{
		AndroidURL: "https://feeds.example.com/android",
		IOSURL:     "https://feeds.example.com/ios",
		Fetcher:    fetcher,
		Metrics:    rec,
	})

	list, err := client.FetchFeed(context.Background(), games.PlatformAndroid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 games, got %d", len(list))
	}
	if len(fetcher.targets) != 1 || fetcher.targets[0] != "https://feeds.example.com/android" {
		t.Fatalf("expected android feed url to be fetched, got %v", fetcher.targets)
	}
	items, skipped := rec.FeedItems("android")
	if items != 2 || skipped != 0 {
		t.Fatalf("expected feed stats 2/0, got %d/%d", items, skipped)
	}
}

func TestFetchFeedRejectsNonMobilePlatform(t *testing.T) {
	client := NewClient(Config{AndroidURL: "a", IOSURL: "b", Fetcher: &stubFetcher{}})
	_, err := client.FetchFeed(context.Background(), games.PlatformSteam)
	if !errors.Is(err, providers.ErrUnsupportedPlatform) {
		t.Fatalf("expected ErrUnsupportedPlatform, got %v", err)
	}
}

func TestFetchFeedWithoutURLIsUnavailable(t *testing.T) {
	client := NewClient(Config{Fetcher: &stubFetcher{}})
	_, err := client.FetchFeed(context.Background(), games.PlatformIOS)
	if !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestFetchFeedWrapsFetchError(t *testing.T) {
	client := NewClient(Config{
		IOSURL:  "https://feeds.example.com/ios",
		Fetcher: &stubFetcher{err: relay.ErrRelaysExhausted},
	})
	_, err := client.FetchFeed(context.Background(), games.PlatformIOS)
	if !errors.Is(err, relay.ErrRelaysExhausted) {
		t.Fatalf("expected wrapped ErrRelaysExhausted, got %v", err)
	}
}

func TestFetchFeedThroughRelayChain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(androidFeed))
	}))
	defer srv.Close()

	client := NewClient(Config{
		AndroidURL: "https://feeds.example.com/android",
		Fetcher:    relay.NewChain(relay.Config{Templates: []string{srv.URL + "/?url="}}),
		Extractor:  MarkupExtractor{},
	})

	list, err := client.FetchFeed(context.Background(), games.PlatformAndroid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 || list[0].Developer != "Arcane Studio" {
		t.Fatalf("unexpected list %+v", list)
	}
}

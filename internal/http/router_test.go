package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/free-games-service/internal/app/games"
	domaingames "github.com/preston-bernstein/free-games-service/internal/domain/games"
	"github.com/preston-bernstein/free-games-service/internal/http/handlers"
	"github.com/preston-bernstein/free-games-service/internal/http/middleware"
	"github.com/preston-bernstein/free-games-service/internal/metrics"
	"github.com/preston-bernstein/free-games-service/internal/testutil"
)

func newTestRouter() http.Handler {
	giveaways := testutil.GoodProvider{Games: []domaingames.FreeGame{testutil.SampleFreeGame("7", "Steam")}}
	svc := games.NewService(giveaways, testutil.FeedMap{}, nil)
	h := handlers.NewHandler(svc, nil, nil)
	return NewRouter(h, nil, metrics.NewRecorder(), []string{"*"})
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	router := newTestRouter()

	cases := map[string]int{
		"/health":         http.StatusOK,
		"/ready":          http.StatusOK,
		"/games":          http.StatusOK,
		"/games/7":        http.StatusOK,
		"/games/foo":      http.StatusNotFound,
		"/feeds/android":  http.StatusOK,
		"/feeds/steam":    http.StatusBadRequest,
		"/does-not-exist": http.StatusNotFound,
	}

	for path, expected := range cases {
		rr := testutil.Serve(router, http.MethodGet, path, nil)
		if rr.Code != expected {
			t.Fatalf("route %s expected status %d, got %d", path, expected, rr.Code)
		}
	}
}

func TestRouterAddsRequestIDAndCORSHeaders(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/games", nil)
	req.Header.Set("Origin", "https://example.org")
	rr := testutil.ServeRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	if rr.Header().Get(middleware.RequestIDHeader) == "" {
		t.Fatalf("expected request id header")
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard allow-origin, got %q", got)
	}
}

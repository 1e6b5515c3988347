package teststubs

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	domaingames "github.com/preston-bernstein/free-games-service/internal/domain/games"
	"github.com/preston-bernstein/free-games-service/internal/probe"
	"github.com/preston-bernstein/free-games-service/internal/providers"
)

func TestStubProviderTracksCalls(t *testing.T) {
	err := errors.New("boom")
	p := &StubProvider{Games: []domaingames.FreeGame{{ID: "g1"}}, Err: err, Notify: make(chan struct{})}
	if _, got := p.FetchGiveaways(context.Background()); !errors.Is(got, err) {
		t.Fatalf("expected error passthrough, got %v", got)
	}
	if _, got := p.FetchGiveaways(context.Background()); !errors.Is(got, err) {
		t.Fatalf("expected error passthrough on second call, got %v", got)
	}
	if p.Calls.Load() != 2 {
		t.Fatalf("expected call count 2, got %d", p.Calls.Load())
	}
	select {
	case <-p.Notify:
	default:
		t.Fatalf("expected notify channel closed")
	}
}

func TestStubProviderDetail(t *testing.T) {
	p := &StubProvider{Games: []domaingames.FreeGame{{ID: "g1"}}}
	if g, err := p.FetchGiveaway(context.Background(), "g1"); err != nil || g.ID != "g1" {
		t.Fatalf("expected game found, got %v %v", g, err)
	}
	if _, err := p.FetchGiveaway(context.Background(), "missing"); !errors.Is(err, providers.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStubFeedProvider(t *testing.T) {
	boom := errors.New("boom")
	f := &StubFeedProvider{
		Feeds: map[domaingames.Platform][]domaingames.RSSGame{domaingames.PlatformAndroid: {{ID: "a"}}},
		Errs:  map[domaingames.Platform]error{domaingames.PlatformIOS: boom},
	}
	if list, err := f.FetchFeed(context.Background(), domaingames.PlatformAndroid); err != nil || len(list) != 1 {
		t.Fatalf("unexpected android result %v %v", list, err)
	}
	if _, err := f.FetchFeed(context.Background(), domaingames.PlatformIOS); !errors.Is(err, boom) {
		t.Fatalf("expected ios error, got %v", err)
	}
	if f.Calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", f.Calls.Load())
	}
}

func TestServerStubs(t *testing.T) {
	p := &StubProbe{Err: errors.New("stop"), StatusVal: probe.Status{ConsecutiveFailures: 2, LastSuccess: time.Now()}}
	p.Start(context.Background())
	if err := p.Stop(context.Background()); !errors.Is(err, p.Err) {
		t.Fatalf("expected stop error")
	}
	if p.StartCalls != 1 || p.StopCalls != 1 {
		t.Fatalf("unexpected call counts %+v", p)
	}
	if p.Status().ConsecutiveFailures != 2 {
		t.Fatalf("expected status passthrough")
	}

	sh := &StubHTTPServer{ListenErr: errors.New("boom"), ShutdownErr: errors.New("down"), HandlerVal: http.NewServeMux()}
	_ = sh.ListenAndServe()
	_ = sh.Shutdown(context.Background())
	if sh.ListenCalls != 1 || sh.ShutdownCalls != 1 || sh.Handler() == nil {
		t.Fatalf("expected listen/shutdown calls, got %+v", sh)
	}

	b := &BlockingHTTPServer{Unblock: make(chan struct{}), HandlerVal: http.NewServeMux()}
	done := make(chan error, 1)
	go func() { done <- b.Shutdown(context.Background()) }()
	close(b.Unblock)
	if err := <-done; err != nil {
		t.Fatalf("expected nil shutdown err, got %v", err)
	}

	e := &ErrHTTPServer{}
	if err := e.ListenAndServe(); err == nil {
		t.Fatalf("expected listen failure")
	}
	if e.Addr() == "" || e.Handler() == nil {
		t.Fatalf("expected addr and handler from ErrHTTPServer")
	}
}

package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/preston-bernstein/free-games-service/internal/http/handlers"
	"github.com/preston-bernstein/free-games-service/internal/http/middleware"
	"github.com/preston-bernstein/free-games-service/internal/metrics"
)

// NewRouter registers the API routes and wraps them with CORS, request logging and metrics.
func NewRouter(handler *handlers.Handler, logger *slog.Logger, recorder *metrics.Recorder, allowedOrigins []string) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/games", handler.Games)
	mux.HandleFunc("/games/", handler.GameByID)
	mux.HandleFunc("/feeds/", handler.Feed)
	return middleware.LoggingMiddleware(logger, recorder, middleware.CORS(allowedOrigins, mux))
}

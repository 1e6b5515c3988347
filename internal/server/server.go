package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/free-games-service/internal/app/games"
	"github.com/preston-bernstein/free-games-service/internal/config"
	httpserver "github.com/preston-bernstein/free-games-service/internal/http"
	"github.com/preston-bernstein/free-games-service/internal/http/handlers"
	"github.com/preston-bernstein/free-games-service/internal/logging"
	"github.com/preston-bernstein/free-games-service/internal/metrics"
	"github.com/preston-bernstein/free-games-service/internal/probe"
	"github.com/preston-bernstein/free-games-service/internal/providers"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	gamesService  *games.Service
	httpServer    httpServer
	metricsServer httpServer
	probe         Probe
	metricsStop   func(context.Context) error
}

// New constructs a server with the configured giveaway source, feed client and probe.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil, nil)
}

func newServerWithProviders(cfg config.Config, logger *slog.Logger, giveaways providers.GiveawayProvider, feeds providers.FeedProvider) *Server {
	return newServerWithMetrics(cfg, logger, giveaways, feeds, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, giveaways providers.GiveawayProvider, feeds providers.FeedProvider, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newProviderFactory(logger, recorder)
	if giveaways == nil {
		giveaways = factory.giveaways(cfg)
	} else {
		giveaways = factory.withRetry(cfg, giveaways)
	}
	if feeds == nil {
		feeds = factory.feeds(cfg)
	}

	gameSvc := games.NewService(giveaways, feeds, logger)
	var prb Probe
	if cfg.Probe.Enabled {
		prb = probe.New(gameSvc, logger, recorder, cfg.Probe.Interval)
	}
	httpSrv := buildHTTPServer(cfg, gameSvc, logger, recorder, prb)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		gamesService:  gameSvc,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		probe:         prb,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, gameSvc *games.Service, httpSrv httpServer, prb Probe) *Server {
	return &Server{
		cfg:          cfg,
		logger:       logger,
		gamesService: gameSvc,
		httpServer:   httpSrv,
		probe:        prb,
	}
}

func buildHTTPServer(cfg config.Config, gameSvc *games.Service, logger *slog.Logger, recorder *metrics.Recorder, prb Probe) httpServer {
	var statusFn func() probe.Status
	if prb != nil {
		statusFn = prb.Status
	}
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}

	handler := handlers.NewHandler(gameSvc, logger, statusFn)
	router := httpserver.NewRouter(handler, logger, recorder, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the probe and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.probe != nil {
		s.probe.Start(ctx)
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if s.probe != nil {
		if err := s.probe.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop probe", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

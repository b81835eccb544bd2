package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	appscoreboard "github.com/preston-bernstein/live-scoreboard/internal/app/scoreboard"
	"github.com/preston-bernstein/live-scoreboard/internal/config"
	httpserver "github.com/preston-bernstein/live-scoreboard/internal/http"
	"github.com/preston-bernstein/live-scoreboard/internal/http/handlers"
	"github.com/preston-bernstein/live-scoreboard/internal/http/middleware"
	"github.com/preston-bernstein/live-scoreboard/internal/logging"
	"github.com/preston-bernstein/live-scoreboard/internal/metrics"
	"github.com/preston-bernstein/live-scoreboard/internal/scoreboard"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	manager       *scoreboard.Manager
	service       *appscoreboard.Service
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
	ready         atomic.Bool
}

// New constructs a server with default metrics wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) *Server {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	manager := scoreboard.NewManager()
	svc := appscoreboard.NewService(manager, logger, recorder)

	s := &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		manager:       manager,
		service:       svc,
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
	}
	s.httpServer = buildHTTPServer(cfg, svc, logger, recorder, s.ready.Load)
	return s
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, svc *appscoreboard.Service, httpSrv httpServer) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		service:    svc,
		httpServer: httpSrv,
	}
}

func buildHTTPServer(cfg config.Config, svc *appscoreboard.Service, logger *slog.Logger, recorder *metrics.Recorder, readyFn func() bool) httpServer {
	handler := handlers.NewHandler(svc, logger, readyFn)
	router := httpserver.NewRouter(handler)
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the HTTP and metrics listeners and blocks until the context is
// cancelled or a listener fails, then shuts everything down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	if s.metricsServer != nil {
		if s.logger != nil {
			s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
		}
		g.Go(func() error { return serve("metrics", s.metricsServer, s.logger) })
	}
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	g.Go(func() error { return serve("http", s.httpServer, s.logger) })
	s.ready.Store(true)

	g.Go(func() error {
		<-gctx.Done()
		s.ready.Store(false)
		if s.logger != nil {
			s.logger.Info("shutdown signal received")
		}
		s.gracefulShutdown()
		return nil
	})

	return g.Wait()
}

func serve(name string, srv httpServer, logger *slog.Logger) error {
	err := srv.ListenAndServe()
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	if logger != nil {
		logger.Warn(name+" server failed", "error", err)
	}
	return err
}

func (s *Server) gracefulShutdown() {
	timeout := shutdownTimeout
	if s.cfg.ShutdownTimeout > 0 {
		timeout = s.cfg.ShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete", logging.FieldCount, s.ongoingCount())
	}
}

func (s *Server) ongoingCount() int {
	if s.manager == nil {
		return 0
	}
	return s.manager.Len()
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
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
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

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Ready reports whether the listeners are up and not shutting down.
func (s *Server) Ready() bool {
	return s.ready.Load()
}

package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/amterp/calcus/internal/service"
	"github.com/amterp/calcus/internal/store"
	"github.com/amterp/calcus/internal/telemetry"
	"golang.org/x/sync/errgroup"
)

// Config holds the dependencies of a Server.
type Config struct {
	Session *service.SessionService

	// SettingsStore enables settings hot reload when non-nil.
	SettingsStore store.SettingsStore

	Port   int
	Logger *slog.Logger
}

// Server wraps the HTTP server, the websocket hub, and the settings watcher.
type Server struct {
	httpServer *http.Server
	watcher    *SettingsWatcher
	wsHub      *WebSocketHub
	metrics    *telemetry.Metrics
	logger     *slog.Logger
}

// NewServer wires the handler, websocket feed, metrics, and settings
// watcher around one session.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	metrics := telemetry.NewMetrics()
	wsHub := NewWebSocketHub(logger, metrics)
	handler := NewHandler(cfg.Session, logger)

	cfg.Session.Subscribe(metrics)
	cfg.Session.Subscribe(wsHub)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.HandleFunc("GET /api/v1/ws", wsHub.ServeWS)
	mux.Handle("GET /metrics", metrics.Handler())

	var watcher *SettingsWatcher
	if cfg.SettingsStore != nil {
		var err error
		watcher, err = NewSettingsWatcher(cfg.SettingsStore, logger)
		if err != nil {
			logger.Warn("settings hot reload disabled", "error", err)
		} else {
			// Apply before broadcasting so clients refetch the new layout
			watcher.Subscribe(handler)
			watcher.Subscribe(wsHub)
		}
	}

	wrapped := Logging(logger, Cors(metrics.InstrumentHandler(mux)))

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      wrapped,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		watcher: watcher,
		wsHub:   wsHub,
		metrics: metrics,
		logger:  logger,
	}
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Run serves until ctx is cancelled, then shuts down gracefully.
// If ready is non-nil it is called with the bound address once the
// listener is open.
func (s *Server) Run(ctx context.Context, ready func(addr string)) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}

	if s.watcher != nil {
		if err := s.watcher.Start(); err != nil {
			s.logger.Warn("failed to start settings watcher", "error", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("listening", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})

	if ready != nil {
		ready(ln.Addr().String())
	}
	return g.Wait()
}

// Shutdown stops the watcher, disconnects websocket clients, and stops
// the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.watcher != nil {
		if err := s.watcher.Stop(); err != nil {
			s.logger.Warn("failed to stop settings watcher", "error", err)
		}
	}
	s.wsHub.Close()
	return s.httpServer.Shutdown(ctx)
}

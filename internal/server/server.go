package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexeev-prog/fib-miles2km/internal/config"
	"github.com/alexeev-prog/fib-miles2km/internal/convert"
	apperrors "github.com/alexeev-prog/fib-miles2km/internal/errors"
	"github.com/alexeev-prog/fib-miles2km/internal/logging"
	"github.com/alexeev-prog/fib-miles2km/internal/service"
)

// Server represents the HTTP server for the distance conversion API.
// It wraps the standard http.Server and adds application-specific
// configuration and graceful shutdown capabilities.
type Server struct {
	factory        convert.Factory
	service        service.Service
	cfg            config.AppConfig
	httpServer     *http.Server
	logger         logging.Logger
	shutdownSignal chan os.Signal
	metrics        *Metrics
	timeouts       Timeouts
}

// NewServer creates a new Server instance with the given strategy factory
// and configuration. It initializes the HTTP server with timeouts and a
// request multiplexer.
//
// Parameters:
//   - factory: The strategy factory to retrieve implementations from.
//   - cfg: The application configuration (port, timeout, etc.).
//   - opts: Optional functional options for customizing the server (e.g., WithLogger).
//
// Returns:
//   - *Server: A pointer to the initialized Server.
func NewServer(factory convert.Factory, cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		factory:        factory,
		cfg:            cfg,
		logger:         logging.NewLogger(os.Stdout, "server"),
		shutdownSignal: make(chan os.Signal, 1),
		metrics:        NewMetrics(),
		timeouts:       DefaultServerTimeouts(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.service == nil {
		s.service = service.NewConverterService(s.factory)
	}

	mux := http.NewServeMux()

	// Middleware chain: Logging -> Metrics -> Handler
	mux.HandleFunc("/api/v1/convert", s.wrapWithMiddleware(s.handleConvert))
	mux.HandleFunc("/api/v1/fib", s.wrapWithMiddleware(s.handleFib))
	mux.HandleFunc("/health", s.wrapWithMiddleware(s.handleHealth))
	mux.HandleFunc("/strategies", s.wrapWithMiddleware(s.handleStrategies))
	mux.HandleFunc("/metrics", s.wrapWithMiddleware(s.handleMetrics))

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}

	return s
}

// wrapWithMiddleware applies the full middleware chain to a handler.
func (s *Server) wrapWithMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	wrapped := s.metricsMiddleware(handler)
	wrapped = s.loggingMiddleware(wrapped)
	return wrapped
}

// loggingMiddleware logs one line per request with method and path.
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path))
		next(w, r)
	}
}

// Start initializes and starts the HTTP server.
// It listens for incoming requests on the configured port and handles
// system signals (SIGINT, SIGTERM) to ensure a graceful shutdown.
//
// Returns:
//   - error: An error if the server fails to start or shuts down unexpectedly.
func (s *Server) Start() error {
	signal.Notify(s.shutdownSignal, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)

	go func() {
		s.logger.Printf("Starting server on %s", s.httpServer.Addr)
		s.logger.Printf("Available endpoints:")
		s.logger.Printf("  GET /api/v1/convert?miles=<distance>&strategy=<strategy>")
		s.logger.Printf("  GET /api/v1/fib?miles=<integer>")
		s.logger.Printf("  GET /health")
		s.logger.Printf("  GET /strategies")
		s.logger.Printf("  GET /metrics")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-s.shutdownSignal:
		s.logger.Printf("Shutdown signal received, initiating graceful shutdown...")
	case err := <-errCh:
		return apperrors.WrapError(err, "server failed to start")
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return apperrors.WrapError(err, "failed to gracefully shutdown server")
	}

	s.logger.Printf("Server stopped gracefully")
	return nil
}

// Shutdown triggers a graceful shutdown programmatically. It is used by
// tests and by callers embedding the server in a larger lifecycle.
func (s *Server) Shutdown() {
	select {
	case s.shutdownSignal <- syscall.SIGTERM:
	default:
	}
}

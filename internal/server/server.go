package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/jonathan/content-calendar/internal/server/ratelimit"
	"github.com/jonathan/content-calendar/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultGenerateTimeout bounds a single generation call made on behalf of a request
	DefaultGenerateTimeout = 2 * time.Minute
	shutdownTimeout        = 30 * time.Second
	maxBodyBytes           = 1 << 20
)

// Generator produces a content strategy for one submission.
// *strategy.Generator implements it.
type Generator interface {
	Generate(ctx context.Context, form types.FormState) (*types.ContentStrategy, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	generator       Generator
	logger          *zap.Logger
	rateLimiter     *ratelimit.Limiter
	generateTimeout time.Duration
}

// Config holds server configuration
type Config struct {
	Port      int
	Generator Generator
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
	// RateLimit defaults to ratelimit.LoadConfig().
	RateLimit *ratelimit.Config
	// GenerateTimeout defaults to DefaultGenerateTimeout.
	GenerateTimeout time.Duration
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Generator == nil {
		return nil, fmt.Errorf("server: generator is required")
	}

	s := &Server{
		generator:       cfg.Generator,
		logger:          cfg.Logger,
		generateTimeout: cfg.GenerateTimeout,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.generateTimeout <= 0 {
		s.generateTimeout = DefaultGenerateTimeout
	}

	rateConfig := cfg.RateLimit
	if rateConfig == nil {
		rateConfig = ratelimit.LoadConfig()
	}
	s.rateLimiter = ratelimit.NewLimiter(rateConfig)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /strategy", s.handleStrategy)
	mux.HandleFunc("POST /strategy/render", s.handleRenderStrategy)
	mux.HandleFunc("POST /strategy/stream", s.handleStrategyStream)
	mux.HandleFunc("POST /prompt", s.handlePrompt)
	mux.HandleFunc("GET /schema", s.handleSchema)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRequestID(s.withLogging(s.withCORS(s.withRateLimit(mux)))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: s.generateTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped request handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens on the configured port and serves until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		s.rateLimiter.Stop()
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down gracefully.
// In-flight requests get shutdownTimeout to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server starting", zap.String("addr", ln.Addr().String()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	s.rateLimiter.Stop()
	s.logger.Info("server stopped")
	return err
}

// Close releases background resources without serving; used when Start is never called.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	body := map[string]string{"error": message}
	if id := w.Header().Get(RequestIDHeader); id != "" {
		body["request_id"] = id
	}
	s.jsonResponse(w, status, body)
}

// failure logs err and writes the client-safe response for it
func (s *Server) failure(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	fields := []zap.Field{
		zap.String("request_id", RequestID(r.Context())),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", fields...)
	} else {
		s.logger.Info("request rejected", fields...)
	}
	s.errorResponse(w, status, PublicMessage(err))
}

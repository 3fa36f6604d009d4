// Package server provides the HTTP JSON API of the placement tracker.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jonathan/placement-tracker/internal/server/ratelimit"
	"github.com/jonathan/placement-tracker/internal/tracker"
)

// DefaultPort is the listening port when none is configured.
const DefaultPort = 8080

// DefaultHeartbeat is the interval between keep-alive comments on /events.
const DefaultHeartbeat = 25 * time.Second

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	tracker     *tracker.Service
	rateLimiter *ratelimit.Limiter
	logger      *slog.Logger
	heartbeat   time.Duration
	done        chan struct{} // closed when shutdown begins; ends open event streams
}

// Config holds server configuration
type Config struct {
	Port      int
	Logger    *slog.Logger
	RateLimit *ratelimit.Config // nil loads RATE_LIMIT_* from the environment
	Heartbeat time.Duration
}

// New creates a new server instance
func New(svc *tracker.Service, cfg Config) *Server {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = ratelimit.LoadConfig()
	}
	if cfg.Heartbeat <= 0 {
		cfg.Heartbeat = DefaultHeartbeat
	}

	s := &Server{
		tracker:     svc,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		logger:      cfg.Logger,
		heartbeat:   cfg.Heartbeat,
		done:        make(chan struct{}),
	}

	s.httpServer = &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     s.Handler(),
		ReadTimeout: 30 * time.Second,
		// No WriteTimeout: /events responses stay open for the life of the client.
		IdleTimeout: 60 * time.Second,
	}
	s.httpServer.RegisterOnShutdown(func() { close(s.done) })

	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// User
	mux.HandleFunc("GET /user", s.handleGetUser)
	mux.HandleFunc("PUT /user", s.handleSetUser)

	// Applications
	mux.HandleFunc("GET /applications", s.handleListApplications)
	mux.HandleFunc("POST /applications", s.handleAddApplication)
	mux.HandleFunc("GET /applications/stats", s.handleApplicationStats)
	mux.HandleFunc("PUT /applications/{id}/status", s.handleUpdateApplicationStatus)
	mux.HandleFunc("DELETE /applications/{id}", s.handleDeleteApplication)

	// Study progress
	mux.HandleFunc("GET /study", s.handleGetStudy)
	mux.HandleFunc("PUT /study/active", s.handleSetActiveCategory)
	mux.HandleFunc("PUT /study/{category}/topics/{id}", s.handleUpdateTopic)
	mux.HandleFunc("POST /study/reset", s.handleResetStudy)
	mux.HandleFunc("GET /study/export", s.handleExportStudy)
	mux.HandleFunc("POST /study/import", s.handleImportStudy)

	// Study plans
	mux.HandleFunc("GET /plans", s.handleListPlans)
	mux.HandleFunc("POST /plans", s.handleCreatePlan)
	mux.HandleFunc("POST /plans/preview", s.handlePreviewPlan)
	mux.HandleFunc("GET /plans/today", s.handleToday)
	mux.HandleFunc("GET /plans/reminders", s.handleReminders)
	mux.HandleFunc("GET /plans/{id}", s.handleGetPlan)
	mux.HandleFunc("DELETE /plans/{id}", s.handleDeletePlan)
	mux.HandleFunc("POST /plans/{id}/tasks/{index}/toggle", s.handleToggleTask)
	mux.HandleFunc("PUT /plans/{id}/days/{day}", s.handleEditDay)
	mux.HandleFunc("PUT /plans/{id}/weeks/{week}", s.handleEditWeek)

	// Overview and change notifications
	mux.HandleFunc("GET /dashboard", s.handleDashboard)
	mux.HandleFunc("GET /events", s.handleEvents)

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.rateLimiter.Stop()
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.rateLimiter.Stop()
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// extractClientID extracts the client identifier from the request.
// It uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	s.logger.Warn("rate limit exceeded",
		"limit", info.Limit, "remaining", info.Remaining, "reset", info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

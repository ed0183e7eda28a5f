// Package server provides the HTTP REST API for the hiring pipeline.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arshsnaz/zidio-job-platform/internal/config"
	"github.com/arshsnaz/zidio-job-platform/internal/logging"
	"github.com/arshsnaz/zidio-job-platform/internal/scheduling"
	"github.com/arshsnaz/zidio-job-platform/internal/server/ratelimit"
	"github.com/arshsnaz/zidio-job-platform/internal/workflow"
)

// actorHeader names the reviewer performing a request. There is no
// authentication, so the value is taken as given.
const (
	actorHeader     = "X-Actor"
	requestIDHeader = "X-Request-ID"
	defaultActor    = "api"
)

type ctxKey int

const requestIDKey ctxKey = iota

// Deps are the collaborators the server routes requests to.
type Deps struct {
	Workflow  *workflow.Engine
	Scheduler *scheduling.Scheduler
	Audit     *logging.Audit
	// OnShutdown runs after the HTTP server has stopped, e.g. to close the pool.
	OnShutdown func()
}

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	workflow        *workflow.Engine
	scheduler       *scheduling.Scheduler
	log             *zap.SugaredLogger
	rateLimiter     *ratelimit.Limiter
	corsOrigin      string
	shutdownTimeout time.Duration
	onShutdown      func()
}

// New creates a new server instance
func New(cfg *config.Config, deps Deps) *Server {
	audit := deps.Audit
	if audit == nil {
		audit = logging.Nop()
	}

	s := &Server{
		workflow:        deps.Workflow,
		scheduler:       deps.Scheduler,
		log:             audit.Sugar(),
		rateLimiter:     ratelimit.NewLimiter(ratelimit.FromSettings(cfg.RateLimit)),
		corsOrigin:      cfg.Server.CORSOrigin,
		shutdownTimeout: cfg.Server.ShutdownTimeout,
		onShutdown:      deps.OnShutdown,
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Workflow endpoints
	mux.HandleFunc("POST /workflow/initiate/{application_id}", s.handleInitiateWorkflow)
	mux.HandleFunc("POST /workflow/transition", s.handleTransition)
	mux.HandleFunc("POST /workflow/bulk", s.handleBulkWorkflow)
	mux.HandleFunc("GET /workflow/status/{application_id}", s.handleWorkflowStatus)
	mux.HandleFunc("GET /workflow/history/{application_id}", s.handleWorkflowHistory)
	mux.HandleFunc("GET /workflow/statistics", s.handleWorkflowStatistics)
	mux.HandleFunc("GET /workflow/states", s.handleWorkflowStates)
	mux.HandleFunc("GET /workflow/next-actions", s.handleNextActions)

	// Interview endpoints
	mux.HandleFunc("POST /interviews", s.handleScheduleInterview)
	mux.HandleFunc("PUT /interviews/{id}/reschedule", s.handleRescheduleInterview)
	mux.HandleFunc("DELETE /interviews/{id}", s.handleCancelInterview)
	mux.HandleFunc("PUT /interviews/{id}/complete", s.handleCompleteInterview)
	mux.HandleFunc("GET /interviews/application/{application_id}", s.handleInterviewsForApplication)
	mux.HandleFunc("GET /interviews/interviewer/{email}", s.handleInterviewsForInterviewer)
	mux.HandleFunc("GET /interviews/upcoming/{email}", s.handleUpcomingInterviews)
	mux.HandleFunc("GET /interviews/statistics", s.handleInterviewStatistics)
	mux.HandleFunc("GET /interviews/available-slots", s.handleAvailableSlots)
	mux.HandleFunc("GET /interviews/types", s.handleInterviewTypes)

	return s.withRequestID(s.withRateLimit(s.withLogging(s.withCORS(mux))))
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Serve(ctx)
}

// Serve listens for requests until ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Infow("Server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			s.cleanup()
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}
	s.log.Info("Shutting down server...")

	timeout := s.shutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.cleanup()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("Server stopped")
	return nil
}

func (s *Server) cleanup() {
	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.onShutdown != nil {
		s.onShutdown()
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	origin := s.corsOrigin
	if origin == "" {
		origin = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+actorHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRequestID tags every request with an id, reusing one supplied by the caller.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Infow("request completed",
			"request_id", requestID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Errorw("Error encoding JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, kind, message string) {
	s.jsonResponse(w, status, map[string]string{
		"error":   kind,
		"message": message,
	})
}

// actor returns the reviewer named by the request.
func actor(r *http.Request) string {
	if a := r.Header.Get(actorHeader); a != "" {
		return a
	}
	return defaultActor
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For is ignored.
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
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	s.log.Warnw("rate limit exceeded",
		"request_id", requestID(r.Context()),
		"client", s.extractClientID(r),
		"path", r.URL.Path,
		"limit", info.Limit,
		"reset", info.ResetTime.Format(time.RFC3339),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

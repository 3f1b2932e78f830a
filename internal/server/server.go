package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/nazrawi/tenabot/internal/auth"
	"github.com/nazrawi/tenabot/internal/db"
	"github.com/nazrawi/tenabot/internal/pipeline"
	"github.com/nazrawi/tenabot/internal/server/middleware"
	"github.com/nazrawi/tenabot/internal/server/ratelimit"
)

// Store is the database surface the handlers need. *db.DB satisfies it.
type Store interface {
	GetOrCreateUser(ctx context.Context, telegramID int64, username, firstName string) (*db.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	CreateResume(ctx context.Context, userID uuid.UUID, filePath, jobTitle, jobDescription string) (*db.Resume, error)
	FindResume(ctx context.Context, id uuid.UUID) (*db.Resume, error)
	UsageCountToday(ctx context.Context, userID uuid.UUID) (int, error)
	RecordUpload(ctx context.Context, userID uuid.UUID) error
}

// Uploads persists uploaded resume files.
type Uploads interface {
	SaveUpload(userRef, originalName string, data []byte) (string, error)
}

// Runner executes the processing pipeline for an uploaded resume.
type Runner interface {
	Run(ctx context.Context, job pipeline.Job) *pipeline.Result
}

// Options holds the collaborators and settings for a Server.
type Options struct {
	Store            Store
	Uploads          Uploads
	Runner           Runner
	Verifier         *auth.Verifier
	JWT              *JWTService
	ListenAddr       string
	MaxUploadsPerDay int
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       Store
	uploads     Uploads
	runner      Runner
	verifier    *auth.Verifier
	jwtService  *JWTService
	rateLimiter *ratelimit.Limiter
	validate    *validator.Validate

	maxUploadsPerDay int
}

// New creates a new server instance
func New(opts Options) *Server {
	s := &Server{
		store:            opts.Store,
		uploads:          opts.Uploads,
		runner:           opts.Runner,
		verifier:         opts.Verifier,
		jwtService:       opts.JWT,
		validate:         validator.New(),
		maxUploadsPerDay: opts.MaxUploadsPerDay,
	}
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	s.httpServer = &http.Server{
		Addr:         opts.ListenAddr,
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	requireAuth := middleware.Auth(s.jwtService.AsTokenValidator())

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/telegram", s.handleTelegramAuth)
	mux.Handle("POST /resumes", requireAuth(http.HandlerFunc(s.handleUploadResume)))
	mux.Handle("GET /resumes/{id}", requireAuth(http.HandlerFunc(s.handleGetResume)))
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// Handler exposes the full middleware chain, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until shutdown. A listen
// failure is returned after the rate limiter has been stopped, so startup
// errors take the same teardown path as a signal.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		if s.rateLimiter != nil {
			s.rateLimiter.Stop()
		}
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	log.Println("Server stopped")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			if info.RetryAfter > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(int(info.RetryAfter.Seconds())+1))
			}
			respondError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
	}
}

// extractClientID identifies the client by IP, preferring the first
// X-Forwarded-For hop when behind a proxy.
func (s *Server) extractClientID(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i > 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parley0/parley/internal/chat"
)

// ServerConfig contains configuration for creating the API server.
type ServerConfig struct {
	Logger      *slog.Logger
	Agent       *chat.Agent    // Required
	Recorder    *chat.Recorder // Required
	Store       historyStore   // Required
	Pool        *pgxpool.Pool  // Optional: nil disables pool stats in /ready
	Static      http.Handler   // Optional: nil disables the bundled chat page at /
	CORSOrigins []string       // Allowed origins for CORS
	TrustProxy  bool           // Trust X-Real-IP/X-Forwarded-For headers (behind reverse proxy)
	RateBurst   int            // Rate limiter burst size per IP (0 = default 60)
}

// Server is the JSON API HTTP server.
type Server struct {
	mux *http.ServeMux
}

// NewServer creates a new API server with all routes configured.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Agent == nil {
		return nil, errors.New("chat agent is required")
	}
	if cfg.Recorder == nil {
		return nil, errors.New("turn recorder is required")
	}
	if cfg.Store == nil {
		return nil, errors.New("history store is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ch := &chatHandler{
		agent:    cfg.Agent,
		recorder: cfg.Recorder,
		logger:   logger,
	}

	hh := &historyHandler{store: cfg.Store, logger: logger}

	mux := http.NewServeMux()

	// Chat relay
	mux.HandleFunc("POST /api/v1/chat", ch.send)

	// Thread inspection
	mux.HandleFunc("GET /api/v1/history/{uid}", hh.list)
	mux.HandleFunc("DELETE /api/v1/history/{uid}", hh.clear)
	mux.HandleFunc("GET /api/v1/stats", hh.stats)

	// Bundled chat page (more specific API patterns take precedence)
	if cfg.Static != nil {
		mux.Handle("GET /", cfg.Static)
	}

	// Rate limiter: per-IP token bucket (1 token/sec refill)
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 60
	}
	rl := newIPLimiter(1.0, burst)

	// Build middleware stack (outermost first):
	//   Recovery → RequestID → Logging → CORS → RateLimit → Routes
	// RequestID must be before Logging so request_id is available in log attributes.
	// CORS must be before RateLimit so preflight OPTIONS gets proper CORS headers.
	var handler http.Handler = mux
	handler = rateLimitMiddleware(rl, cfg.TrustProxy, logger)(handler)
	handler = corsMiddleware(cfg.CORSOrigins)(handler)
	handler = loggingMiddleware(logger)(handler)
	handler = requestIDMiddleware()(handler)
	handler = recoveryMiddleware(logger)(handler)

	// Wrap with security headers
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setSecurityHeaders(w)
		handler.ServeHTTP(w, r)
	})

	// Use a top-level mux to separate health probes from middleware stack
	topMux := http.NewServeMux()
	topMux.HandleFunc("GET /health", health)
	topMux.Handle("GET /ready", readiness(cfg.Pool))
	topMux.Handle("/", final)

	return &Server{mux: topMux}, nil
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web serves the idea form and the JSON endpoint behind it.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/experiment-roulette/pkg/types"
)

// maxRequestBody caps the JSON body accepted by the ideas endpoint.
const maxRequestBody = 64 << 10

// shutdownGrace bounds how long in-flight requests may finish on shutdown.
const shutdownGrace = 10 * time.Second

// IdeaGenerator produces a renderable batch for one form submission.
type IdeaGenerator interface {
	Generate(ctx context.Context, productContext string, seriousness types.Seriousness, count int) types.IdeaBatch
}

// IdeasRequest is the JSON body of POST /api/ideas.
type IdeasRequest struct {
	Context     string            `json:"context"`
	Seriousness types.Seriousness `json:"seriousness"`
	Count       int               `json:"count"`
}

// Server wires the form page and the ideas endpoint to a generator.
type Server struct {
	addr    string
	gen     IdeaGenerator
	limiter *rate.Limiter
	log     *slog.Logger
	page    PageData
}

// NewServer builds a server for cfg. A positive cfg.RateLimit installs a
// token bucket in front of the ideas endpoint. A nil logger uses
// slog.Default.
func NewServer(cfg types.ServerConfig, gen IdeaGenerator, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		addr: cfg.Addr,
		gen:  gen,
		log:  logger,
		page: DefaultPageData(),
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return s
}

// Handler returns the routed handler with request logging applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /{$}", ComponentHandler(s.index))
	mux.HandleFunc("POST /api/ideas", s.handleIdeas)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	return withRequestLog(s.log, mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	s.log.Info("serving", "url", "http://"+ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

func (s *Server) index(_ http.ResponseWriter, _ *http.Request) *ComponentResponse {
	return &ComponentResponse{Code: http.StatusOK, Component: IndexPage(s.page)}
}

func (s *Server) handleIdeas(w http.ResponseWriter, r *http.Request) {
	var req IdeasRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, APIError{
			Code:    "BAD_REQUEST",
			Message: "Request body must be a JSON object",
			Hint:    `Send {"context": "...", "seriousness": "quirky", "count": 5}.`,
		})
		return
	}

	if apiErr := validateIdeasRequest(&req); apiErr != nil {
		WriteAPIError(w, http.StatusBadRequest, *apiErr)
		return
	}

	// Only requests that would reach the model spend a token.
	if s.limiter != nil && !s.limiter.Allow() {
		w.Header().Set("Retry-After", "1")
		WriteAPIError(w, http.StatusTooManyRequests, APIError{
			Code:    "RATE_LIMITED",
			Message: "Too many spins at once",
			Hint:    "Wait a moment and try again.",
		})
		return
	}

	batch := s.gen.Generate(r.Context(), req.Context, req.Seriousness, req.Count)
	writeJSON(w, http.StatusOK, batch)
}

// validateIdeasRequest applies the form's bounds. An empty seriousness takes
// the form default.
func validateIdeasRequest(req *IdeasRequest) *APIError {
	if req.Seriousness == "" {
		req.Seriousness = types.DefaultSeriousness
	}
	if !req.Seriousness.Valid() {
		return &APIError{
			Code:    "INVALID_SERIOUSNESS",
			Message: fmt.Sprintf("Unknown seriousness %q", req.Seriousness),
			Hint:    "Use one of: serious, quirky, wild.",
		}
	}
	if req.Count < types.MinIdeaCount || req.Count > types.MaxIdeaCount {
		return &APIError{
			Code:    "INVALID_COUNT",
			Message: fmt.Sprintf("count must be between %d and %d", types.MinIdeaCount, types.MaxIdeaCount),
		}
	}
	return nil
}

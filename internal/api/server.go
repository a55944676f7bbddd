// Package api exposes the read-only status interface for the scanner.
package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/batch"
	"github.com/jobscout/jobscout/internal/ledger"
	"github.com/jobscout/jobscout/internal/metrics"
)

// LedgerLoader reads the persisted outcome ledger.
type LedgerLoader interface {
	Load(maxAttempts int) (*ledger.Ledger, error)
}

// Server wires the status handlers. It holds no pipeline state beyond the
// summary of the most recent batch.
type Server struct {
	router      chi.Router
	loader      LedgerLoader
	maxAttempts int
	logger      *zap.Logger

	mu      sync.RWMutex
	lastRun *batch.Summary
}

// NewServer constructs a Server with middleware and routes.
func NewServer(loader LedgerLoader, maxAttempts int, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxAttempts <= 0 {
		maxAttempts = ledger.DefaultMaxAttempts
	}
	s := &Server{
		loader:      loader,
		maxAttempts: maxAttempts,
		logger:      logger,
	}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoverMiddleware)

	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Route("/v1", func(r chi.Router) {
		r.Get("/ledger", s.getLedger)
		r.Get("/runs/last", s.getLastRun)
	})

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// RecordRun stores the most recent batch summary for /v1/runs/last.
func (s *Server) RecordRun(summary batch.Summary) {
	s.mu.Lock()
	s.lastRun = &summary
	s.mu.Unlock()
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type ledgerResponse struct {
	Succeeded []string                  `json:"succeeded"`
	Failed    map[string]ledger.Failure `json:"failed"`
}

func (s *Server) getLedger(w http.ResponseWriter, _ *http.Request) {
	l, err := s.loader.Load(s.maxAttempts)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "ledger unavailable")
		return
	}
	succeeded, failed := ledger.Snapshot(l)
	s.writeJSON(w, http.StatusOK, ledgerResponse{Succeeded: succeeded, Failed: failed})
}

func (s *Server) getLastRun(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	last := s.lastRun
	s.mu.RUnlock()
	if last == nil {
		s.writeError(w, http.StatusNotFound, "no batch has run yet")
		return
	}
	s.writeJSON(w, http.StatusOK, last)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("write JSON failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-ID", uuid.NewString())
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)
		s.logger.Debug("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.status),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()))
	})
}

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", zap.Any("error", rec))
				s.writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

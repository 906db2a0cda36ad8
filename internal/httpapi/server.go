package httpapi

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/hamed0406/statuscheck/internal/domain"
	"github.com/hamed0406/statuscheck/internal/resolver"
	"github.com/hamed0406/statuscheck/internal/usage"
)

// StatusResolver is what the handlers need from the engine.
type StatusResolver interface {
	Resolve(ctx context.Context, q domain.ServiceQuery) (domain.ResolutionResult, error)
}

type Server struct {
	Logger   *zap.Logger
	Resolver StatusResolver
	Counters *usage.Counters
}

func NewServer(l *zap.Logger, r StatusResolver, c *usage.Counters) *Server {
	return &Server{Logger: l, Resolver: r, Counters: c}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/status", s.handleStatus)
	r.Get("/status/fallback", s.handleFallback)
	r.Get("/status/stats", s.handleStats)

	return r
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	service := strings.TrimSpace(r.URL.Query().Get("service"))
	if service == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Service name parameter is required"})
		return
	}

	res, err := s.Resolver.Resolve(r.Context(), domain.ServiceQuery{
		ServiceName: service,
		ExplicitURL: strings.TrimSpace(r.URL.Query().Get("url")),
	})
	if err != nil {
		// only validation errors reach here
		if errors.Is(err, resolver.ErrEmptyService) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Service name parameter is required"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, envelope(res))
}

// handleFallback is the fallback-only path: it never consults the
// crowd-sourced source and requires an explicit target URL.
func (s *Server) handleFallback(w http.ResponseWriter, r *http.Request) {
	service := strings.TrimSpace(r.URL.Query().Get("service"))
	if service == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Service name parameter is required"})
		return
	}
	target := strings.TrimSpace(r.URL.Query().Get("url"))
	if target == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "URL parameter is required for fallback check"})
		return
	}

	res, err := s.Resolver.Resolve(r.Context(), domain.ServiceQuery{
		ServiceName: service,
		ExplicitURL: target,
	})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, envelope(res))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snap := s.Counters.Snapshot()

	rate := 0.0
	if snap.TotalQueries > 0 {
		rate = math.Round(float64(snap.PrimaryHits)/float64(snap.TotalQueries)*1000) / 10
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"totalRequests":   snap.TotalQueries,
		"downdetectorApi": snap.PrimaryHits,
		"httpFallback":    snap.FallbackHits,
		"successRate":     rate,
		"timestamp":       time.Now().UTC(),
	})
}

// envelope shapes the wire response per data source. The fallback path is
// always 200, even for a failed probe; failure shows up as status "down"
// plus an error string.
func envelope(res domain.ResolutionResult) map[string]any {
	if res.DataSource == domain.SourcePrimary {
		return map[string]any{
			"status":           res.Status,
			"responseTime":     res.ResponseTimeMS,
			"serviceName":      res.ServiceName,
			"downdetectorData": res.Raw,
			"dataSource":       res.DataSource,
			"timestamp":        res.Timestamp,
		}
	}

	m := map[string]any{
		"status":       res.Status,
		"responseTime": res.ResponseTimeMS,
		"httpStatus":   res.HTTPStatus,
		"url":          res.URL,
		"fallback":     true,
		"dataSource":   res.DataSource,
		"timestamp":    res.Timestamp,
	}
	if res.Err != "" {
		m["error"] = res.Err
	}
	return m
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"platcheck/pkg/domain"
	"platcheck/pkg/ports"
)

// SummarySource yields the latest run summary, or nil when no run has
// completed yet. The serve loop updates it between campaigns.
type SummarySource func() *domain.Summary

// Server exposes the failure corpus and run status over HTTP.
type Server struct {
	store   ports.FailureStore
	summary SummarySource
	logger  *slog.Logger
}

// NewHandler creates the HTTP handler for the harness's read-side API.
func NewHandler(store ports.FailureStore, summary SummarySource, logger *slog.Logger) http.Handler {
	s := &Server{store: store, summary: summary, logger: logger}

	r := chi.NewRouter()
	r.Get("/healthz", s.healthz)
	r.Get("/summary", s.latestSummary)
	r.Get("/failures", s.listFailures)
	r.Get("/failures/{id}", s.getFailure)
	r.Delete("/failures/{id}", s.deleteFailure)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) latestSummary(w http.ResponseWriter, _ *http.Request) {
	summary := s.summary()
	if summary == nil {
		http.Error(w, "no completed run", http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) listFailures(w http.ResponseWriter, r *http.Request) {
	failures, err := s.store.List(r.Context())
	if err != nil {
		http.Error(w, "failed to list failures", http.StatusInternalServerError)
		s.logger.Error("list failures", "error", err)
		return
	}
	if failures == nil {
		failures = []*domain.Failure{}
	}
	s.writeJSON(w, http.StatusOK, failures)
}

func (s *Server) getFailure(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	failure, err := s.store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrFailureNotFound) {
			http.Error(w, "failure not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load failure", http.StatusInternalServerError)
		s.logger.Error("load failure", "id", id, "error", err)
		return
	}
	s.writeJSON(w, http.StatusOK, failure)
}

func (s *Server) deleteFailure(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		http.Error(w, "failed to delete failure", http.StatusInternalServerError)
		s.logger.Error("delete failure", "id", id, "error", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

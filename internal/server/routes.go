package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleDefault)

	// System endpoints (no rate limiting)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.Handle("/metrics", promhttp.Handler())

	// API endpoints with middleware
	mux.HandleFunc("/v1/solve", s.withMiddleware(s.handleSolve))
	mux.HandleFunc("/v1/items", s.withMiddleware(s.handleItems))
	mux.HandleFunc("/v1/plans", s.withMiddleware(s.handleListPlans))
	mux.HandleFunc("/v1/plans/{name}", s.withMiddleware(s.handleGetPlan))

	return mux
}

func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, r, http.StatusNotFound, ErrCodeNotFound, "no such route", false, nil)
		return
	}

	resp := struct {
		Name      string   `json:"name"`
		Version   string   `json:"version"`
		Ready     bool     `json:"ready"`
		Timestamp string   `json:"timestamp"`
		Routes    []string `json:"routes"`
	}{
		Name:      name,
		Version:   version,
		Ready:     s.isReady(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Routes: []string{
			"POST /v1/solve",
			"GET /v1/items",
			"GET /v1/plans",
			"GET /v1/plans/{name}",
			"GET /health",
			"GET /ready",
			"GET /metrics",
		},
	}
	respondJSON(w, http.StatusOK, resp)
}

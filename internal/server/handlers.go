package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/napolitain/factory-planner/internal/converter"
	"github.com/napolitain/factory-planner/internal/factory"
	"github.com/napolitain/factory-planner/internal/settings"
)

// maxBodyBytes bounds solve request bodies
const maxBodyBytes = 1 << 20

// SolveRequest carries a plan either as a structured plan or as a settings
// string. The settings string wins when both are present.
type SolveRequest struct {
	Plan     *settings.Plan `json:"plan,omitempty"`
	Settings string         `json:"settings,omitempty"`
}

// PlanResponse is a saved plan
type PlanResponse struct {
	Name      string    `json:"name"`
	Settings  string    `json:"settings"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// handleSolve handles POST /v1/solve
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed", false, nil)
		return
	}

	var req SolveRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body", false,
			map[string]interface{}{"error": err.Error()})
		return
	}

	plan := req.Plan
	if req.Settings != "" {
		p, err := settings.ParseFragment(req.Settings)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error(), false, nil)
			return
		}
		plan = p
	}
	if plan == nil {
		writeError(w, r, http.StatusBadRequest, ErrCodeInvalidRequest, "plan or settings is required", false, nil)
		return
	}

	resp, err := s.solve(plan)
	if err != nil {
		status, code := statusFor(err)
		writeError(w, r, status, code, err.Error(), false, nil)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) solve(plan *settings.Plan) (*converter.SolveResponse, error) {
	spec, err := s.newSpecification()
	if err != nil {
		return nil, err
	}
	if err := plan.Apply(spec); err != nil {
		return nil, err
	}

	totals := spec.Solve()
	solveRecipes.Observe(float64(totals.Len()))
	solveTargets.Add(float64(len(spec.Targets())))

	slog.Debug("solved plan", "targets", len(spec.Targets()), "recipes", totals.Len())
	return converter.ReportToResponse(spec.BuildReport(totals), settings.Format(spec)), nil
}

func (s *Server) newSpecification() (*factory.Specification, error) {
	if s.data == nil {
		return nil, factory.ErrNoData
	}
	return factory.NewWithData(s.data, factory.WithDefaults(s.defaults))
}

// handleItems handles GET /v1/items
func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed", false, nil)
		return
	}

	spec, err := s.newSpecification()
	if err != nil {
		status, code := statusFor(err)
		writeError(w, r, status, code, err.Error(), true, nil)
		return
	}
	respondJSON(w, http.StatusOK, converter.ItemsToResponse(spec))
}

// handleListPlans handles GET /v1/plans
func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed", false, nil)
		return
	}
	if s.plans == nil {
		writeError(w, r, http.StatusNotFound, ErrCodeNotFound, "plan storage is not configured", false, nil)
		return
	}

	saved, err := s.plans.ListAll(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, ErrCodeInternalError, err.Error(), true, nil)
		return
	}

	resp := make([]PlanResponse, 0, len(saved))
	for _, p := range saved {
		resp = append(resp, PlanResponse{Name: p.Name, Settings: p.Settings, UpdatedAt: p.UpdatedAt})
	}
	respondJSON(w, http.StatusOK, resp)
}

// handleGetPlan handles GET /v1/plans/{name}. With ?solve=true the saved
// plan is solved and the report returned instead.
func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed", false, nil)
		return
	}
	if s.plans == nil {
		writeError(w, r, http.StatusNotFound, ErrCodeNotFound, "plan storage is not configured", false, nil)
		return
	}

	saved, err := s.plans.FindByName(r.Context(), r.PathValue("name"))
	if err != nil {
		status, code := statusFor(err)
		if status == http.StatusBadRequest {
			status, code = http.StatusInternalServerError, ErrCodeInternalError
		}
		writeError(w, r, status, code, err.Error(), false, nil)
		return
	}

	if r.URL.Query().Get("solve") != "true" {
		respondJSON(w, http.StatusOK, PlanResponse{Name: saved.Name, Settings: saved.Settings, UpdatedAt: saved.UpdatedAt})
		return
	}

	plan, err := settings.ParseFragment(saved.Settings)
	if err == nil {
		var resp *converter.SolveResponse
		if resp, err = s.solve(plan); err == nil {
			respondJSON(w, http.StatusOK, resp)
			return
		}
	}
	if errors.Is(err, factory.ErrNoData) {
		writeError(w, r, http.StatusServiceUnavailable, ErrCodeUnavailable, err.Error(), true, nil)
		return
	}
	writeError(w, r, http.StatusUnprocessableEntity, ErrCodeInvalidRequest, err.Error(), false, nil)
}

package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rcliao/dayplan/internal/store"
	"github.com/rcliao/dayplan/internal/temporal"
)

// --- Resolver handlers ---

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("fast") == "true" {
		s.respondJSON(w, http.StatusOK, s.service.EffectiveTodayFast())
		return
	}
	s.respondJSON(w, http.StatusOK, s.service.EffectiveToday(r.Context()))
}

func (s *Server) handleUnreflected(w http.ResponseWriter, r *http.Request) {
	window, _, err := queryInt(r, "window")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if r.URL.Query().Get("fast") == "true" {
		s.respondJSON(w, http.StatusOK, s.service.UnreflectedDaysFast(window))
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"days": s.service.UnreflectedDays(r.Context(), window),
	})
}

func (s *Server) handleUrgency(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("fast") == "true" {
		s.respondJSON(w, http.StatusOK, s.service.UrgencyFast())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"urgency": s.service.Urgency(r.Context()),
	})
}

func (s *Server) handlePresentation(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"presentation": s.service.PresentationMode(r.Context()),
	})
}

// handleStatus uses total and completed when given. A missing count comes
// from the plan of the effective date.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	total, hasTotal, err := queryInt(r, "total")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	completed, hasCompleted, err := queryInt(r, "completed")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if hasTotal && hasCompleted && completed > total {
		s.respondError(w, http.StatusBadRequest, "completed must not exceed total")
		return
	}
	if !hasTotal {
		total = -1
	}
	if !hasCompleted {
		completed = -1
	}

	s.respondJSON(w, http.StatusOK, s.service.PlanStatusMessage(r.Context(), total, completed))
}

func (s *Server) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.service.Diagnostics(r.Context()))
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.service.Config())
}

func (s *Server) handlePatchConfig(w http.ResponseWriter, r *http.Request) {
	var patch temporal.ConfigPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.respondJSON(w, http.StatusOK, s.service.UpdateConfig(patch))
}

// --- Plan handlers ---

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if _, err := temporal.ParseDate(date); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	plan, err := s.store.GetDayPlan(r.Context(), date)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if plan == nil {
		s.respondError(w, http.StatusNotFound, "no plan for "+date)
		return
	}
	s.respondJSON(w, http.StatusOK, plan)
}

type addGoalRequest struct {
	Text     string `json:"text"`
	Category string `json:"category"`
	Priority string `json:"priority"`
}

func (s *Server) handleAddGoal(w http.ResponseWriter, r *http.Request) {
	var req addGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	goal, err := s.store.AddGoal(r.Context(), store.AddGoalParams{
		Date:     chi.URLParam(r, "date"),
		Text:     req.Text,
		Category: req.Category,
		Priority: req.Priority,
	})
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, goal)
}

func (s *Server) handleGoalDone(w http.ResponseWriter, r *http.Request) {
	s.setGoalDone(w, r, true)
}

func (s *Server) handleGoalUndone(w http.ResponseWriter, r *http.Request) {
	s.setGoalDone(w, r, false)
}

func (s *Server) setGoalDone(w http.ResponseWriter, r *http.Request, done bool) {
	goal, err := s.store.SetGoalDone(r.Context(), chi.URLParam(r, "id"), done)
	if errors.Is(err, store.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, goal)
}

type reflectionRequest struct {
	Content string `json:"content"`
	Mood    string `json:"mood"`
	Rating  int    `json:"rating"`
}

func (s *Server) handlePutReflection(w http.ResponseWriter, r *http.Request) {
	var req reflectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	refl, err := s.store.PutReflection(r.Context(), store.ReflectionParams{
		Date:    chi.URLParam(r, "date"),
		Content: req.Content,
		Mood:    req.Mood,
		Rating:  req.Rating,
	})
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, refl)
}

func (s *Server) handleGetReflection(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	refl, err := s.store.GetReflection(r.Context(), date)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if refl == nil {
		s.respondError(w, http.StatusNotFound, "no reflection for "+date)
		return
	}
	s.respondJSON(w, http.StatusOK, refl)
}

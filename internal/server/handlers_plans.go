package server

import (
	"net/http"

	"github.com/jonathan/placement-tracker/internal/types"
)

// ---------------------------------------------------------------------
// Study Plan Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.tracker.Plans(r.Context()))
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var req types.NewPlanRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	plan, err := s.tracker.CreatePlan(r.Context(), req)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, plan)
}

func (s *Server) handlePreviewPlan(w http.ResponseWriter, r *http.Request) {
	var req types.NewPlanRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	plan, err := s.tracker.PreviewPlan(r.Context(), req)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, plan)
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.tracker.Today(r.Context()))
}

func (s *Server) handleReminders(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.tracker.Reminders(r.Context()))
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathInt64(w, r, "id")
	if !ok {
		return
	}
	plan, err := s.tracker.Plan(r.Context(), id)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, plan)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathInt64(w, r, "id")
	if !ok {
		return
	}
	if err := s.tracker.DeletePlan(r.Context(), id); err != nil {
		s.failure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathInt64(w, r, "id")
	if !ok {
		return
	}
	index, ok := s.pathInt(w, r, "index")
	if !ok {
		return
	}
	task, err := s.tracker.ToggleTask(r.Context(), id, index)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, task)
}

func (s *Server) handleEditDay(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathInt64(w, r, "id")
	if !ok {
		return
	}
	day, ok := s.pathInt(w, r, "day")
	if !ok {
		return
	}
	var req types.EditDayRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	task, err := s.tracker.EditDay(r.Context(), id, day, req)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, task)
}

func (s *Server) handleEditWeek(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathInt64(w, r, "id")
	if !ok {
		return
	}
	week, ok := s.pathInt(w, r, "week")
	if !ok {
		return
	}
	var req types.EditWeekRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	tasks, err := s.tracker.EditWeek(r.Context(), id, week, req)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, tasks)
}

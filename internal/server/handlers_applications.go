package server

import (
	"net/http"

	"github.com/jonathan/placement-tracker/internal/types"
)

// ---------------------------------------------------------------------
// Application Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := s.tracker.Applications(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, apps)
}

func (s *Server) handleAddApplication(w http.ResponseWriter, r *http.Request) {
	var req types.NewApplicationRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	app, err := s.tracker.AddApplication(r.Context(), req)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, app)
}

func (s *Server) handleApplicationStats(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.tracker.ApplicationStats(r.Context()))
}

func (s *Server) handleUpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathInt64(w, r, "id")
	if !ok {
		return
	}
	var req types.StatusUpdateRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	app, err := s.tracker.UpdateApplicationStatus(r.Context(), id, req)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, app)
}

func (s *Server) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathInt64(w, r, "id")
	if !ok {
		return
	}
	if err := s.tracker.DeleteApplication(r.Context(), id); err != nil {
		s.failure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

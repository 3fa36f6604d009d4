package server

import (
	"net/http"

	"github.com/jonathan/placement-tracker/internal/types"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := s.tracker.Dashboard(r.Context())
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, dashboard)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"name": s.tracker.UserName(r.Context())})
}

func (s *Server) handleSetUser(w http.ResponseWriter, r *http.Request) {
	var req types.UserNameRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	name, err := s.tracker.SetUserName(r.Context(), req)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"name": name})
}

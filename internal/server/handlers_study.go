package server

import (
	"bytes"
	"net/http"

	"github.com/jonathan/placement-tracker/internal/tracker"
	"github.com/jonathan/placement-tracker/internal/types"
)

// ---------------------------------------------------------------------
// Study Handlers
// ---------------------------------------------------------------------

// handleGetStudy returns the study overview. ?category= shows that category's
// topics instead of the active one.
func (s *Server) handleGetStudy(w http.ResponseWriter, r *http.Request) {
	overview := s.tracker.Study(r.Context())
	if category := r.URL.Query().Get("category"); category != "" {
		topics, err := s.tracker.CategoryTopics(r.Context(), category)
		if err != nil {
			s.failure(w, err)
			return
		}
		overview.Active = category
		overview.Topics = topics
	}
	s.jsonResponse(w, http.StatusOK, overview)
}

func (s *Server) handleSetActiveCategory(w http.ResponseWriter, r *http.Request) {
	var req types.ActiveCategoryRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if err := s.tracker.SetActiveCategory(r.Context(), req); err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"active": req.Category})
}

func (s *Server) handleUpdateTopic(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathInt(w, r, "id")
	if !ok {
		return
	}
	var req types.TopicUpdateRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	update, err := s.tracker.SetTopicCompleted(r.Context(), r.PathValue("category"), id, req.Completed)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, update)
}

func (s *Server) handleResetStudy(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.ResetStudy(r.Context()); err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.tracker.Study(r.Context()))
}

func (s *Server) handleExportStudy(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.tracker.ExportStudy(r.Context(), &buf); err != nil {
		s.failure(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+tracker.ExportFileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleImportStudy(w http.ResponseWriter, r *http.Request) {
	progress, err := s.tracker.ImportStudy(r.Context(), r.Body)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, progress)
}

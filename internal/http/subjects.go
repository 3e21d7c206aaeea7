package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Kushkushal/Clustorix-Admin/internal/model"
	"github.com/Kushkushal/Clustorix-Admin/internal/repository"
)

func (s *Server) handleListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := s.store.ListSubjects(r.Context())
	if err != nil {
		slog.Error("subject list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondList(w, len(subjects), subjects)
}

func (s *Server) handleListSubjectsBySchool(w http.ResponseWriter, r *http.Request) {
	subjects, err := s.store.ListSubjectsBySchool(r.Context(), chi.URLParam(r, "schoolId"))
	if err != nil {
		slog.Error("subject list by school failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondList(w, len(subjects), subjects)
}

func (s *Server) handleGetSubject(w http.ResponseWriter, r *http.Request) {
	subject, err := s.store.GetSubject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Subject not found")
			return
		}
		slog.Error("subject get failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, subject)
}

type createSubjectRequest struct {
	School          string `json:"school"`
	SubjectName     string `json:"subject_name"`
	SubjectCodename string `json:"subject_codename"`
}

func (s *Server) handleCreateSubject(w http.ResponseWriter, r *http.Request) {
	var req createSubjectRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.School == "" || req.SubjectName == "" || req.SubjectCodename == "" {
		respondError(w, http.StatusBadRequest, "Please provide school, subject name and codename")
		return
	}

	subject := model.Subject{
		ID:              uuid.NewString(),
		SchoolID:        req.School,
		SubjectName:     req.SubjectName,
		SubjectCodename: req.SubjectCodename,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.store.CreateSubject(r.Context(), subject); err != nil {
		slog.Error("subject create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusCreated, subject)
}

type updateSubjectRequest struct {
	SubjectName     *string `json:"subject_name,omitempty"`
	SubjectCodename *string `json:"subject_codename,omitempty"`
}

func (s *Server) handleUpdateSubject(w http.ResponseWriter, r *http.Request) {
	var req updateSubjectRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	subject, err := s.store.UpdateSubject(r.Context(), chi.URLParam(r, "id"), repository.SubjectUpdate{
		SubjectName:     req.SubjectName,
		SubjectCodename: req.SubjectCodename,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Subject not found")
			return
		}
		slog.Error("subject update failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, subject)
}

func (s *Server) handleDeleteSubject(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.store.DeleteSubject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("subject delete failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "Subject not found")
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{})
}

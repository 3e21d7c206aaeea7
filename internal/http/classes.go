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

func (s *Server) handleListClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := s.store.ListClasses(r.Context())
	if err != nil {
		slog.Error("class list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondList(w, len(classes), classes)
}

func (s *Server) handleListClassesBySchool(w http.ResponseWriter, r *http.Request) {
	classes, err := s.store.ListClassesBySchool(r.Context(), chi.URLParam(r, "schoolId"))
	if err != nil {
		slog.Error("class list by school failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondList(w, len(classes), classes)
}

func (s *Server) handleGetClass(w http.ResponseWriter, r *http.Request) {
	class, err := s.store.GetClass(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Class not found")
			return
		}
		slog.Error("class get failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, class)
}

type createClassRequest struct {
	School    string `json:"school"`
	ClassText string `json:"class_text"`
	ClassNum  string `json:"class_num"`
}

func (s *Server) handleCreateClass(w http.ResponseWriter, r *http.Request) {
	var req createClassRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.School == "" || req.ClassText == "" || req.ClassNum == "" {
		respondError(w, http.StatusBadRequest, "Please provide school, class text and class number")
		return
	}

	class := model.Class{
		ID:        uuid.NewString(),
		SchoolID:  req.School,
		ClassText: req.ClassText,
		ClassNum:  req.ClassNum,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateClass(r.Context(), class); err != nil {
		slog.Error("class create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusCreated, class)
}

type updateClassRequest struct {
	ClassText *string `json:"class_text,omitempty"`
	ClassNum  *string `json:"class_num,omitempty"`
}

func (s *Server) handleUpdateClass(w http.ResponseWriter, r *http.Request) {
	var req updateClassRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	class, err := s.store.UpdateClass(r.Context(), chi.URLParam(r, "id"), repository.ClassUpdate{
		ClassText: req.ClassText,
		ClassNum:  req.ClassNum,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Class not found")
			return
		}
		slog.Error("class update failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, class)
}

func (s *Server) handleDeleteClass(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.store.DeleteClass(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("class delete failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "Class not found")
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{})
}

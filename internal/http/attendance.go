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

func validAttendanceStatus(status string) bool {
	return status == "Present" || status == "Absent"
}

func (s *Server) handleListAttendances(w http.ResponseWriter, r *http.Request) {
	attendances, err := s.store.ListAttendances(r.Context())
	if err != nil {
		slog.Error("attendance list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondList(w, len(attendances), attendances)
}

func (s *Server) handleListAttendancesBySchool(w http.ResponseWriter, r *http.Request) {
	attendances, err := s.store.ListAttendancesBySchool(r.Context(), chi.URLParam(r, "schoolId"))
	if err != nil {
		slog.Error("attendance list by school failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondList(w, len(attendances), attendances)
}

func (s *Server) handleGetAttendance(w http.ResponseWriter, r *http.Request) {
	att, err := s.store.GetAttendance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Attendance record not found")
			return
		}
		slog.Error("attendance get failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, att)
}

type createAttendanceRequest struct {
	School  string     `json:"school"`
	Student string     `json:"student"`
	Teacher string     `json:"teacher"`
	Class   string     `json:"class"`
	Subject string     `json:"subject"`
	Date    *time.Time `json:"date"`
	Status  string     `json:"status"`
}

func (s *Server) handleCreateAttendance(w http.ResponseWriter, r *http.Request) {
	var req createAttendanceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.School == "" || req.Student == "" || req.Teacher == "" || req.Class == "" || req.Subject == "" {
		respondError(w, http.StatusBadRequest, "Missing required attendance fields")
		return
	}
	if req.Date == nil {
		respondError(w, http.StatusBadRequest, "Please add a date")
		return
	}
	if !validAttendanceStatus(req.Status) {
		respondError(w, http.StatusBadRequest, "Status must be Present or Absent")
		return
	}

	now := time.Now().UTC()
	att := model.Attendance{
		ID:        uuid.NewString(),
		SchoolID:  req.School,
		StudentID: req.Student,
		TeacherID: req.Teacher,
		ClassID:   req.Class,
		SubjectID: req.Subject,
		Date:      req.Date.UTC(),
		Status:    req.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateAttendance(r.Context(), att); err != nil {
		slog.Error("attendance create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusCreated, att)
}

type updateAttendanceRequest struct {
	Date   *time.Time `json:"date,omitempty"`
	Status *string    `json:"status,omitempty"`
}

func (s *Server) handleUpdateAttendance(w http.ResponseWriter, r *http.Request) {
	var req updateAttendanceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Status != nil && !validAttendanceStatus(*req.Status) {
		respondError(w, http.StatusBadRequest, "Status must be Present or Absent")
		return
	}

	att, err := s.store.UpdateAttendance(r.Context(), chi.URLParam(r, "id"), repository.AttendanceUpdate{
		Date:      req.Date,
		Status:    req.Status,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Attendance record not found")
			return
		}
		slog.Error("attendance update failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, att)
}

func (s *Server) handleDeleteAttendance(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.store.DeleteAttendance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("attendance delete failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "Attendance record not found")
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{})
}

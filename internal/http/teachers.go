package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Kushkushal/Clustorix-Admin/internal/crypto"
	"github.com/Kushkushal/Clustorix-Admin/internal/model"
	"github.com/Kushkushal/Clustorix-Admin/internal/repository"
)

func (s *Server) handleListTeachers(w http.ResponseWriter, r *http.Request) {
	teachers, err := s.store.ListTeachers(r.Context())
	if err != nil {
		slog.Error("teacher list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondList(w, len(teachers), teachers)
}

func (s *Server) handleListTeachersBySchool(w http.ResponseWriter, r *http.Request) {
	teachers, err := s.store.ListTeachersBySchool(r.Context(), chi.URLParam(r, "schoolId"))
	if err != nil {
		slog.Error("teacher list by school failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondList(w, len(teachers), teachers)
}

func (s *Server) handleGetTeacher(w http.ResponseWriter, r *http.Request) {
	teacher, err := s.store.GetTeacher(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Teacher not found")
			return
		}
		slog.Error("teacher get failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, teacher)
}

type createTeacherRequest struct {
	School        string     `json:"school"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	Password      string     `json:"password"`
	Qualification string     `json:"qualification"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
	Gender        string     `json:"gender"`
	PhoneNumber   string     `json:"phone_number"`
	TeacherImage  string     `json:"teacher_image"`
	JoiningDate   *time.Time `json:"joining_date"`
}

func (s *Server) handleCreateTeacher(w http.ResponseWriter, r *http.Request) {
	var req createTeacherRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.School == "" || req.Email == "" || req.Name == "" || req.Password == "" ||
		req.Qualification == "" || req.PhoneNumber == "" {
		respondError(w, http.StatusBadRequest, "Missing required teacher fields")
		return
	}
	if req.DateOfBirth == nil {
		respondError(w, http.StatusBadRequest, "Please add date of birth")
		return
	}
	if !validGender(req.Gender) {
		respondError(w, http.StatusBadRequest, "Gender must be male, female or other")
		return
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		slog.Error("password hash failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	now := time.Now().UTC()
	joining := now
	if req.JoiningDate != nil {
		joining = req.JoiningDate.UTC()
	}
	teacher := model.Teacher{
		ID:            uuid.NewString(),
		SchoolID:      req.School,
		Email:         req.Email,
		Name:          req.Name,
		Qualification: req.Qualification,
		DateOfBirth:   req.DateOfBirth.UTC(),
		Gender:        req.Gender,
		PhoneNumber:   req.PhoneNumber,
		TeacherImage:  req.TeacherImage,
		JoiningDate:   joining,
		PasswordHash:  hash,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.CreateTeacher(r.Context(), teacher); err != nil {
		if isUniqueViolation(err) {
			respondError(w, http.StatusBadRequest, "Email already in use")
			return
		}
		slog.Error("teacher create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondData(w, http.StatusCreated, teacher)
}

type updateTeacherRequest struct {
	School        *string    `json:"school,omitempty"`
	Email         *string    `json:"email,omitempty"`
	Name          *string    `json:"name,omitempty"`
	Password      *string    `json:"password,omitempty"`
	Qualification *string    `json:"qualification,omitempty"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty"`
	Gender        *string    `json:"gender,omitempty"`
	PhoneNumber   *string    `json:"phone_number,omitempty"`
	TeacherImage  *string    `json:"teacher_image,omitempty"`
	JoiningDate   *time.Time `json:"joining_date,omitempty"`
	IsActive      *bool      `json:"isActive,omitempty"`
}

func (s *Server) handleUpdateTeacher(w http.ResponseWriter, r *http.Request) {
	var req updateTeacherRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Gender != nil && !validGender(*req.Gender) {
		respondError(w, http.StatusBadRequest, "Gender must be male, female or other")
		return
	}

	update := repository.TeacherUpdate{
		SchoolID:      req.School,
		Name:          req.Name,
		Qualification: req.Qualification,
		DateOfBirth:   req.DateOfBirth,
		Gender:        req.Gender,
		PhoneNumber:   req.PhoneNumber,
		TeacherImage:  req.TeacherImage,
		JoiningDate:   req.JoiningDate,
		IsActive:      req.IsActive,
		UpdatedAt:     time.Now().UTC(),
	}
	if req.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*req.Email))
		if email != "" {
			update.Email = &email
		}
	}
	if req.Password != nil && strings.TrimSpace(*req.Password) != "" {
		hash, err := crypto.HashPassword(*req.Password)
		if err != nil {
			slog.Error("password hash failed", "error", err)
			respondError(w, http.StatusInternalServerError, "Server error")
			return
		}
		update.PasswordHash = &hash
	}

	teacher, err := s.store.UpdateTeacher(r.Context(), chi.URLParam(r, "id"), update)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Teacher not found")
			return
		}
		if isUniqueViolation(err) {
			respondError(w, http.StatusBadRequest, "Email already in use")
			return
		}
		slog.Error("teacher update failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, teacher)
}

func (s *Server) handleDeleteTeacher(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.store.DeleteTeacher(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("teacher delete failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "Teacher not found")
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{})
}

func (s *Server) handleTeacherStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetTeacherStats(r.Context())
	if err != nil {
		slog.Error("teacher stats failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, stats)
}

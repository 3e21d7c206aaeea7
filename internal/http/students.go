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

func validGender(gender string) bool {
	switch gender {
	case "male", "female", "other":
		return true
	default:
		return false
	}
}

func (s *Server) handleListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := s.store.ListStudents(r.Context())
	if err != nil {
		slog.Error("student list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondList(w, len(students), students)
}

func (s *Server) handleListStudentsBySchool(w http.ResponseWriter, r *http.Request) {
	students, err := s.store.ListStudentsBySchool(r.Context(), chi.URLParam(r, "schoolId"))
	if err != nil {
		slog.Error("student list by school failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondList(w, len(students), students)
}

func (s *Server) handleGetStudent(w http.ResponseWriter, r *http.Request) {
	student, err := s.store.GetStudent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Student not found")
			return
		}
		slog.Error("student get failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, student)
}

type createStudentRequest struct {
	School             string     `json:"school"`
	Email              string     `json:"email"`
	Name               string     `json:"name"`
	Password           string     `json:"password"`
	DateOfBirth        *time.Time `json:"date_of_birth"`
	Gender             string     `json:"gender"`
	Guardian           string     `json:"guardian"`
	GuardianPhone      string     `json:"guardian_phone"`
	StudentImage       string     `json:"student_image"`
	RegistrationNumber string     `json:"registration_number"`
	JoiningDate        *time.Time `json:"joining_date"`
}

func (s *Server) handleCreateStudent(w http.ResponseWriter, r *http.Request) {
	var req createStudentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.School == "" || req.Email == "" || req.Name == "" || req.Password == "" ||
		req.Guardian == "" || req.GuardianPhone == "" || req.RegistrationNumber == "" {
		respondError(w, http.StatusBadRequest, "Missing required student fields")
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
	student := model.Student{
		ID:                 uuid.NewString(),
		SchoolID:           req.School,
		Email:              req.Email,
		Name:               req.Name,
		DateOfBirth:        req.DateOfBirth.UTC(),
		Gender:             req.Gender,
		Guardian:           req.Guardian,
		GuardianPhone:      req.GuardianPhone,
		StudentImage:       req.StudentImage,
		RegistrationNumber: req.RegistrationNumber,
		JoiningDate:        joining,
		PasswordHash:       hash,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.store.CreateStudent(r.Context(), student); err != nil {
		if isUniqueViolation(err) {
			respondError(w, http.StatusBadRequest, "Email or registration number already in use")
			return
		}
		slog.Error("student create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondData(w, http.StatusCreated, student)
}

type updateStudentRequest struct {
	School             *string    `json:"school,omitempty"`
	Email              *string    `json:"email,omitempty"`
	Name               *string    `json:"name,omitempty"`
	Password           *string    `json:"password,omitempty"`
	DateOfBirth        *time.Time `json:"date_of_birth,omitempty"`
	Gender             *string    `json:"gender,omitempty"`
	Guardian           *string    `json:"guardian,omitempty"`
	GuardianPhone      *string    `json:"guardian_phone,omitempty"`
	StudentImage       *string    `json:"student_image,omitempty"`
	RegistrationNumber *string    `json:"registration_number,omitempty"`
	JoiningDate        *time.Time `json:"joining_date,omitempty"`
	IsActive           *bool      `json:"isActive,omitempty"`
}

func (s *Server) handleUpdateStudent(w http.ResponseWriter, r *http.Request) {
	var req updateStudentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Gender != nil && !validGender(*req.Gender) {
		respondError(w, http.StatusBadRequest, "Gender must be male, female or other")
		return
	}

	update := repository.StudentUpdate{
		SchoolID:           req.School,
		Name:               req.Name,
		DateOfBirth:        req.DateOfBirth,
		Gender:             req.Gender,
		Guardian:           req.Guardian,
		GuardianPhone:      req.GuardianPhone,
		StudentImage:       req.StudentImage,
		RegistrationNumber: req.RegistrationNumber,
		JoiningDate:        req.JoiningDate,
		IsActive:           req.IsActive,
		UpdatedAt:          time.Now().UTC(),
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

	student, err := s.store.UpdateStudent(r.Context(), chi.URLParam(r, "id"), update)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Student not found")
			return
		}
		if isUniqueViolation(err) {
			respondError(w, http.StatusBadRequest, "Email or registration number already in use")
			return
		}
		slog.Error("student update failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, student)
}

func (s *Server) handleDeleteStudent(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.store.DeleteStudent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("student delete failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "Student not found")
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{})
}

func (s *Server) handleStudentStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetStudentStats(r.Context())
	if err != nil {
		slog.Error("student stats failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, stats)
}

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

func (s *Server) handleListSchools(w http.ResponseWriter, r *http.Request) {
	schools, err := s.store.ListSchools(r.Context())
	if err != nil {
		slog.Error("school list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondList(w, len(schools), schools)
}

func (s *Server) handleGetSchool(w http.ResponseWriter, r *http.Request) {
	school, err := s.store.GetSchool(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(w, http.StatusNotFound, "School not found")
			return
		}
		slog.Error("school get failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, school)
}

type createSchoolRequest struct {
	SchoolName  string `json:"school_name"`
	OwnerName   string `json:"owner_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	SchoolImage string `json:"school_image"`
}

func (s *Server) handleCreateSchool(w http.ResponseWriter, r *http.Request) {
	var req createSchoolRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.SchoolName == "" || req.OwnerName == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Please provide school name, owner name, email and password")
		return
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		slog.Error("password hash failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	now := time.Now().UTC()
	school := model.School{
		ID:           uuid.NewString(),
		SchoolName:   req.SchoolName,
		OwnerName:    req.OwnerName,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		SchoolImage:  req.SchoolImage,
		IsActive:     false,
		Features:     model.DefaultSchoolFeatures(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateSchool(r.Context(), school); err != nil {
		if isUniqueViolation(err) {
			respondError(w, http.StatusBadRequest, "School name or email already in use")
			return
		}
		slog.Error("school create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondData(w, http.StatusCreated, school)
}

type updateSchoolRequest struct {
	SchoolName  *string `json:"school_name,omitempty"`
	OwnerName   *string `json:"owner_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Password    *string `json:"password,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
	City        *string `json:"city,omitempty"`
	State       *string `json:"state,omitempty"`
	SchoolImage *string `json:"school_image,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

func (s *Server) handleUpdateSchool(w http.ResponseWriter, r *http.Request) {
	var req updateSchoolRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	update := repository.SchoolUpdate{
		SchoolName:  req.SchoolName,
		OwnerName:   req.OwnerName,
		Phone:       req.Phone,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		SchoolImage: req.SchoolImage,
		IsActive:    req.IsActive,
		UpdatedAt:   time.Now().UTC(),
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

	school, err := s.store.UpdateSchool(r.Context(), chi.URLParam(r, "id"), update)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(w, http.StatusNotFound, "School not found")
			return
		}
		if isUniqueViolation(err) {
			respondError(w, http.StatusBadRequest, "School name or email already in use")
			return
		}
		slog.Error("school update failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, school)
}

func (s *Server) handleUpdateSchoolFeatures(w http.ResponseWriter, r *http.Request) {
	var features model.SchoolFeatures
	if err := decodeJSON(r, &features); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	school, err := s.store.UpdateSchoolFeatures(r.Context(), chi.URLParam(r, "id"), features, time.Now().UTC())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(w, http.StatusNotFound, "School not found")
			return
		}
		slog.Error("school features update failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, school)
}

func (s *Server) handleDeleteSchool(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.store.DeleteSchool(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("school delete failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "School not found")
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{})
}

func (s *Server) handleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.store.GetDashboardSummary(r.Context())
	if err != nil {
		slog.Error("dashboard summary failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, summary)
}

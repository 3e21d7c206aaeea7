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

func (s *Server) handleListFees(w http.ResponseWriter, r *http.Request) {
	fees, err := s.store.ListFees(r.Context())
	if err != nil {
		slog.Error("fees list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondList(w, len(fees), fees)
}

func (s *Server) handleListFeesBySchool(w http.ResponseWriter, r *http.Request) {
	fees, err := s.store.ListFeesBySchool(r.Context(), chi.URLParam(r, "schoolId"))
	if err != nil {
		slog.Error("fees list by school failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondList(w, len(fees), fees)
}

func (s *Server) handleGetFees(w http.ResponseWriter, r *http.Request) {
	fees, err := s.store.GetFees(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Fees record not found")
			return
		}
		slog.Error("fees get failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, fees)
}

type createFeesRequest struct {
	School       string              `json:"school"`
	Student      string              `json:"student"`
	StudentName  string              `json:"studentName"`
	Class        string              `json:"class"`
	ClassName    string              `json:"className"`
	Installments []model.Installment `json:"installments"`
}

func (s *Server) handleCreateFees(w http.ResponseWriter, r *http.Request) {
	var req createFeesRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.School == "" || req.Student == "" || req.StudentName == "" {
		respondError(w, http.StatusBadRequest, "Missing required fees fields")
		return
	}
	if req.Installments == nil {
		req.Installments = []model.Installment{}
	}

	now := time.Now().UTC()
	fees := model.Fees{
		ID:           uuid.NewString(),
		SchoolID:     req.School,
		StudentID:    req.Student,
		StudentName:  req.StudentName,
		ClassID:      req.Class,
		ClassName:    req.ClassName,
		Installments: req.Installments,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateFees(r.Context(), fees); err != nil {
		slog.Error("fees create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusCreated, fees)
}

type updateFeesRequest struct {
	StudentName  *string              `json:"studentName,omitempty"`
	ClassName    *string              `json:"className,omitempty"`
	Installments *[]model.Installment `json:"installments,omitempty"`
}

func (s *Server) handleUpdateFees(w http.ResponseWriter, r *http.Request) {
	var req updateFeesRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fees, err := s.store.UpdateFees(r.Context(), chi.URLParam(r, "id"), repository.FeesUpdate{
		StudentName:  req.StudentName,
		ClassName:    req.ClassName,
		Installments: req.Installments,
		UpdatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Fees record not found")
			return
		}
		slog.Error("fees update failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, fees)
}

func (s *Server) handleFeesStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetFeesStats(r.Context())
	if err != nil {
		slog.Error("fees stats failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, stats)
}

func (s *Server) handleDeleteFees(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.store.DeleteFees(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("fees delete failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "Fees record not found")
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{})
}

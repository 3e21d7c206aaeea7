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
)

func validTicketStatus(status string) bool {
	switch status {
	case "pending", "in-progress", "resolved":
		return true
	}
	return false
}

func validIssueArea(area string) bool {
	switch area {
	case "student", "teacher", "admin":
		return true
	}
	return false
}

func (s *Server) handleListTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := s.store.ListTickets(r.Context())
	if err != nil {
		slog.Error("ticket list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondList(w, len(tickets), tickets)
}

func (s *Server) handleListTicketsBySchool(w http.ResponseWriter, r *http.Request) {
	tickets, err := s.store.ListTicketsBySchool(r.Context(), chi.URLParam(r, "schoolId"))
	if err != nil {
		slog.Error("ticket list by school failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondList(w, len(tickets), tickets)
}

func (s *Server) handleGetTicket(w http.ResponseWriter, r *http.Request) {
	ticket, err := s.store.GetTicket(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Ticket not found")
			return
		}
		slog.Error("ticket get failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, ticket)
}

type createTicketRequest struct {
	School       string   `json:"school"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	IssueArea    string   `json:"issueArea"`
	TicketImages []string `json:"ticketImages"`
}

func (s *Server) handleCreateTicket(w http.ResponseWriter, r *http.Request) {
	var req createTicketRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.School == "" || req.Title == "" || req.Description == "" {
		respondError(w, http.StatusBadRequest, "Missing required ticket fields")
		return
	}
	if !validIssueArea(req.IssueArea) {
		respondError(w, http.StatusBadRequest, "Issue area must be student, teacher or admin")
		return
	}
	if req.TicketImages == nil {
		req.TicketImages = []string{}
	}

	now := time.Now().UTC()
	ticket := model.Ticket{
		ID:           uuid.NewString(),
		SchoolID:     req.School,
		Title:        req.Title,
		Description:  req.Description,
		IssueArea:    req.IssueArea,
		TicketImages: req.TicketImages,
		Status:       "pending",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateTicket(r.Context(), ticket); err != nil {
		slog.Error("ticket create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusCreated, ticket)
}

type updateTicketStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleUpdateTicketStatus(w http.ResponseWriter, r *http.Request) {
	var req updateTicketStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !validTicketStatus(req.Status) {
		respondError(w, http.StatusBadRequest, "Status must be pending, in-progress or resolved")
		return
	}

	ticket, err := s.store.UpdateTicketStatus(r.Context(), chi.URLParam(r, "id"), req.Status, time.Now().UTC())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Ticket not found")
			return
		}
		slog.Error("ticket status update failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, ticket)
}

func (s *Server) handleTicketStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetTicketStats(r.Context())
	if err != nil {
		slog.Error("ticket stats failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondData(w, http.StatusOK, stats)
}

func (s *Server) handleDeleteTicket(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.store.DeleteTicket(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("ticket delete failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "Ticket not found")
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{})
}

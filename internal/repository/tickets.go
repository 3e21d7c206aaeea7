package repository

import (
	"context"
	"time"

	"github.com/Kushkushal/Clustorix-Admin/internal/model"
)

const ticketColumns = "id, school_id, title, description, issue_area, ticket_images, status, created_at, updated_at"

func scanTicket(row scanner) (model.Ticket, error) {
	var ticket model.Ticket
	err := row.Scan(
		&ticket.ID,
		&ticket.SchoolID,
		&ticket.Title,
		&ticket.Description,
		&ticket.IssueArea,
		&ticket.TicketImages,
		&ticket.Status,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
	return ticket, err
}

func (s *Store) ListTickets(ctx context.Context) ([]model.Ticket, error) {
	return s.queryTickets(ctx, `SELECT `+ticketColumns+` FROM tickets ORDER BY created_at DESC`)
}

func (s *Store) ListTicketsBySchool(ctx context.Context, schoolID string) ([]model.Ticket, error) {
	return s.queryTickets(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE school_id = $1 ORDER BY created_at DESC`, schoolID)
}

func (s *Store) queryTickets(ctx context.Context, query string, args ...interface{}) ([]model.Ticket, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]model.Ticket, 0)
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}
	return tickets, rows.Err()
}

func (s *Store) GetTicket(ctx context.Context, id string) (model.Ticket, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = $1`, id)
	return scanTicket(row)
}

func (s *Store) CreateTicket(ctx context.Context, ticket model.Ticket) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO tickets (id, school_id, title, description, issue_area, ticket_images, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, ticket.ID, ticket.SchoolID, ticket.Title, ticket.Description, ticket.IssueArea, ticket.TicketImages,
		ticket.Status, ticket.CreatedAt, ticket.UpdatedAt)
	return err
}

func (s *Store) UpdateTicketStatus(ctx context.Context, id, status string, updatedAt time.Time) (model.Ticket, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE tickets
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING `+ticketColumns+`
	`, status, updatedAt, id)
	return scanTicket(row)
}

func (s *Store) DeleteTicket(ctx context.Context, id string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

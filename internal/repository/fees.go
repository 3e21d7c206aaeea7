package repository

import (
	"context"
	"time"

	"github.com/Kushkushal/Clustorix-Admin/internal/model"
)

const feesColumns = "id, school_id, student_id, student_name, class_id, class_name, installments, created_at, updated_at"

func scanFees(row scanner) (model.Fees, error) {
	var fees model.Fees
	err := row.Scan(
		&fees.ID,
		&fees.SchoolID,
		&fees.StudentID,
		&fees.StudentName,
		&fees.ClassID,
		&fees.ClassName,
		&fees.Installments,
		&fees.CreatedAt,
		&fees.UpdatedAt,
	)
	return fees, err
}

func (s *Store) ListFees(ctx context.Context) ([]model.Fees, error) {
	return s.queryFees(ctx, `SELECT `+feesColumns+` FROM fees ORDER BY created_at DESC`)
}

func (s *Store) ListFeesBySchool(ctx context.Context, schoolID string) ([]model.Fees, error) {
	return s.queryFees(ctx, `SELECT `+feesColumns+` FROM fees WHERE school_id = $1 ORDER BY created_at DESC`, schoolID)
}

func (s *Store) queryFees(ctx context.Context, query string, args ...interface{}) ([]model.Fees, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fees := make([]model.Fees, 0)
	for rows.Next() {
		record, err := scanFees(rows)
		if err != nil {
			return nil, err
		}
		fees = append(fees, record)
	}
	return fees, rows.Err()
}

func (s *Store) GetFees(ctx context.Context, id string) (model.Fees, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+feesColumns+` FROM fees WHERE id = $1`, id)
	return scanFees(row)
}

func (s *Store) CreateFees(ctx context.Context, fees model.Fees) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO fees (id, school_id, student_id, student_name, class_id, class_name, installments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, fees.ID, fees.SchoolID, fees.StudentID, fees.StudentName, fees.ClassID, fees.ClassName,
		fees.Installments, fees.CreatedAt, fees.UpdatedAt)
	return err
}

type FeesUpdate struct {
	StudentName  *string
	ClassName    *string
	Installments *[]model.Installment
	UpdatedAt    time.Time
}

func (s *Store) UpdateFees(ctx context.Context, id string, update FeesUpdate) (model.Fees, error) {
	b := &updateBuilder{}
	if update.StudentName != nil {
		b.set("student_name", *update.StudentName)
	}
	if update.ClassName != nil {
		b.set("class_name", *update.ClassName)
	}
	if update.Installments != nil {
		b.set("installments", *update.Installments)
	}
	if b.empty() {
		return s.GetFees(ctx, id)
	}
	b.set("updated_at", update.UpdatedAt)

	query, args := b.query("fees", feesColumns, id)
	return scanFees(s.pool.QueryRow(ctx, query, args...))
}

func (s *Store) DeleteFees(ctx context.Context, id string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM fees WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

package repository

import (
	"context"
	"time"

	"github.com/Kushkushal/Clustorix-Admin/internal/model"
)

const attendanceColumns = "id, school_id, student_id, teacher_id, class_id, subject_id, date, status, created_at, updated_at"

func scanAttendance(row scanner) (model.Attendance, error) {
	var att model.Attendance
	err := row.Scan(
		&att.ID,
		&att.SchoolID,
		&att.StudentID,
		&att.TeacherID,
		&att.ClassID,
		&att.SubjectID,
		&att.Date,
		&att.Status,
		&att.CreatedAt,
		&att.UpdatedAt,
	)
	return att, err
}

func (s *Store) ListAttendances(ctx context.Context) ([]model.Attendance, error) {
	return s.queryAttendances(ctx, `SELECT `+attendanceColumns+` FROM attendances ORDER BY date DESC`)
}

func (s *Store) ListAttendancesBySchool(ctx context.Context, schoolID string) ([]model.Attendance, error) {
	return s.queryAttendances(ctx, `SELECT `+attendanceColumns+` FROM attendances WHERE school_id = $1 ORDER BY date DESC`, schoolID)
}

func (s *Store) queryAttendances(ctx context.Context, query string, args ...interface{}) ([]model.Attendance, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attendances := make([]model.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		attendances = append(attendances, att)
	}
	return attendances, rows.Err()
}

func (s *Store) GetAttendance(ctx context.Context, id string) (model.Attendance, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+attendanceColumns+` FROM attendances WHERE id = $1`, id)
	return scanAttendance(row)
}

func (s *Store) CreateAttendance(ctx context.Context, att model.Attendance) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO attendances (id, school_id, student_id, teacher_id, class_id, subject_id, date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, att.ID, att.SchoolID, att.StudentID, att.TeacherID, att.ClassID, att.SubjectID, att.Date, att.Status,
		att.CreatedAt, att.UpdatedAt)
	return err
}

type AttendanceUpdate struct {
	Date      *time.Time
	Status    *string
	UpdatedAt time.Time
}

func (s *Store) UpdateAttendance(ctx context.Context, id string, update AttendanceUpdate) (model.Attendance, error) {
	b := &updateBuilder{}
	if update.Date != nil {
		b.set("date", *update.Date)
	}
	if update.Status != nil {
		b.set("status", *update.Status)
	}
	if b.empty() {
		return s.GetAttendance(ctx, id)
	}
	b.set("updated_at", update.UpdatedAt)

	query, args := b.query("attendances", attendanceColumns, id)
	return scanAttendance(s.pool.QueryRow(ctx, query, args...))
}

func (s *Store) DeleteAttendance(ctx context.Context, id string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

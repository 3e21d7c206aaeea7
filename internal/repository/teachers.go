package repository

import (
	"context"
	"time"

	"github.com/Kushkushal/Clustorix-Admin/internal/model"
)

const teacherColumns = "id, school_id, email, name, qualification, date_of_birth, gender, phone_number, teacher_image, joining_date, password_hash, is_active, created_at, updated_at"

func scanTeacher(row scanner) (model.Teacher, error) {
	var teacher model.Teacher
	err := row.Scan(
		&teacher.ID,
		&teacher.SchoolID,
		&teacher.Email,
		&teacher.Name,
		&teacher.Qualification,
		&teacher.DateOfBirth,
		&teacher.Gender,
		&teacher.PhoneNumber,
		&teacher.TeacherImage,
		&teacher.JoiningDate,
		&teacher.PasswordHash,
		&teacher.IsActive,
		&teacher.CreatedAt,
		&teacher.UpdatedAt,
	)
	return teacher, err
}

func (s *Store) ListTeachers(ctx context.Context) ([]model.Teacher, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+teacherColumns+`
		FROM teachers
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teachers := make([]model.Teacher, 0)
	for rows.Next() {
		teacher, err := scanTeacher(rows)
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, teacher)
	}
	return teachers, rows.Err()
}

func (s *Store) ListTeachersBySchool(ctx context.Context, schoolID string) ([]model.Teacher, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+teacherColumns+`
		FROM teachers
		WHERE school_id = $1
		ORDER BY created_at DESC
	`, schoolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teachers := make([]model.Teacher, 0)
	for rows.Next() {
		teacher, err := scanTeacher(rows)
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, teacher)
	}
	return teachers, rows.Err()
}

func (s *Store) GetTeacher(ctx context.Context, id string) (model.Teacher, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+teacherColumns+`
		FROM teachers
		WHERE id = $1
	`, id)
	return scanTeacher(row)
}

func (s *Store) CreateTeacher(ctx context.Context, teacher model.Teacher) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO teachers (id, school_id, email, name, qualification, date_of_birth, gender, phone_number, teacher_image, joining_date, password_hash, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, teacher.ID, teacher.SchoolID, teacher.Email, teacher.Name, teacher.Qualification, teacher.DateOfBirth,
		teacher.Gender, teacher.PhoneNumber, teacher.TeacherImage, teacher.JoiningDate, teacher.PasswordHash,
		teacher.IsActive, teacher.CreatedAt, teacher.UpdatedAt)
	return err
}

type TeacherUpdate struct {
	SchoolID      *string
	Email         *string
	Name          *string
	Qualification *string
	DateOfBirth   *time.Time
	Gender        *string
	PhoneNumber   *string
	TeacherImage  *string
	JoiningDate   *time.Time
	PasswordHash  *string
	IsActive      *bool
	UpdatedAt     time.Time
}

func (s *Store) UpdateTeacher(ctx context.Context, id string, update TeacherUpdate) (model.Teacher, error) {
	b := &updateBuilder{}
	if update.SchoolID != nil {
		b.set("school_id", *update.SchoolID)
	}
	if update.Email != nil {
		b.set("email", *update.Email)
	}
	if update.Name != nil {
		b.set("name", *update.Name)
	}
	if update.Qualification != nil {
		b.set("qualification", *update.Qualification)
	}
	if update.DateOfBirth != nil {
		b.set("date_of_birth", *update.DateOfBirth)
	}
	if update.Gender != nil {
		b.set("gender", *update.Gender)
	}
	if update.PhoneNumber != nil {
		b.set("phone_number", *update.PhoneNumber)
	}
	if update.TeacherImage != nil {
		b.set("teacher_image", *update.TeacherImage)
	}
	if update.JoiningDate != nil {
		b.set("joining_date", *update.JoiningDate)
	}
	if update.PasswordHash != nil {
		b.set("password_hash", *update.PasswordHash)
	}
	if update.IsActive != nil {
		b.set("is_active", *update.IsActive)
	}
	if b.empty() {
		return s.GetTeacher(ctx, id)
	}
	b.set("updated_at", update.UpdatedAt)

	query, args := b.query("teachers", teacherColumns, id)
	return scanTeacher(s.pool.QueryRow(ctx, query, args...))
}

func (s *Store) DeleteTeacher(ctx context.Context, id string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

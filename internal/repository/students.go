package repository

import (
	"context"
	"time"

	"github.com/Kushkushal/Clustorix-Admin/internal/model"
)

const studentColumns = "id, school_id, email, name, date_of_birth, gender, guardian, guardian_phone, student_image, registration_number, joining_date, password_hash, is_active, created_at, updated_at"

func scanStudent(row scanner) (model.Student, error) {
	var student model.Student
	err := row.Scan(
		&student.ID,
		&student.SchoolID,
		&student.Email,
		&student.Name,
		&student.DateOfBirth,
		&student.Gender,
		&student.Guardian,
		&student.GuardianPhone,
		&student.StudentImage,
		&student.RegistrationNumber,
		&student.JoiningDate,
		&student.PasswordHash,
		&student.IsActive,
		&student.CreatedAt,
		&student.UpdatedAt,
	)
	return student, err
}

func (s *Store) ListStudents(ctx context.Context) ([]model.Student, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+studentColumns+`
		FROM students
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]model.Student, 0)
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, rows.Err()
}

func (s *Store) ListStudentsBySchool(ctx context.Context, schoolID string) ([]model.Student, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+studentColumns+`
		FROM students
		WHERE school_id = $1
		ORDER BY created_at DESC
	`, schoolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]model.Student, 0)
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, rows.Err()
}

func (s *Store) GetStudent(ctx context.Context, id string) (model.Student, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+studentColumns+`
		FROM students
		WHERE id = $1
	`, id)
	return scanStudent(row)
}

func (s *Store) CreateStudent(ctx context.Context, student model.Student) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO students (id, school_id, email, name, date_of_birth, gender, guardian, guardian_phone, student_image, registration_number, joining_date, password_hash, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, student.ID, student.SchoolID, student.Email, student.Name, student.DateOfBirth, student.Gender,
		student.Guardian, student.GuardianPhone, student.StudentImage, student.RegistrationNumber,
		student.JoiningDate, student.PasswordHash, student.IsActive, student.CreatedAt, student.UpdatedAt)
	return err
}

type StudentUpdate struct {
	SchoolID           *string
	Email              *string
	Name               *string
	DateOfBirth        *time.Time
	Gender             *string
	Guardian           *string
	GuardianPhone      *string
	StudentImage       *string
	RegistrationNumber *string
	JoiningDate        *time.Time
	PasswordHash       *string
	IsActive           *bool
	UpdatedAt          time.Time
}

func (s *Store) UpdateStudent(ctx context.Context, id string, update StudentUpdate) (model.Student, error) {
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
	if update.DateOfBirth != nil {
		b.set("date_of_birth", *update.DateOfBirth)
	}
	if update.Gender != nil {
		b.set("gender", *update.Gender)
	}
	if update.Guardian != nil {
		b.set("guardian", *update.Guardian)
	}
	if update.GuardianPhone != nil {
		b.set("guardian_phone", *update.GuardianPhone)
	}
	if update.StudentImage != nil {
		b.set("student_image", *update.StudentImage)
	}
	if update.RegistrationNumber != nil {
		b.set("registration_number", *update.RegistrationNumber)
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
		return s.GetStudent(ctx, id)
	}
	b.set("updated_at", update.UpdatedAt)

	query, args := b.query("students", studentColumns, id)
	return scanStudent(s.pool.QueryRow(ctx, query, args...))
}

func (s *Store) DeleteStudent(ctx context.Context, id string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

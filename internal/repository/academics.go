package repository

import (
	"context"

	"github.com/Kushkushal/Clustorix-Admin/internal/model"
)

const classColumns = "id, school_id, class_text, class_num, created_at"

func scanClass(row scanner) (model.Class, error) {
	var class model.Class
	err := row.Scan(&class.ID, &class.SchoolID, &class.ClassText, &class.ClassNum, &class.CreatedAt)
	return class, err
}

func (s *Store) ListClasses(ctx context.Context) ([]model.Class, error) {
	return s.queryClasses(ctx, `SELECT `+classColumns+` FROM classes ORDER BY created_at DESC`)
}

func (s *Store) ListClassesBySchool(ctx context.Context, schoolID string) ([]model.Class, error) {
	return s.queryClasses(ctx, `SELECT `+classColumns+` FROM classes WHERE school_id = $1 ORDER BY created_at DESC`, schoolID)
}

func (s *Store) queryClasses(ctx context.Context, query string, args ...interface{}) ([]model.Class, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := make([]model.Class, 0)
	for rows.Next() {
		class, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}
	return classes, rows.Err()
}

func (s *Store) GetClass(ctx context.Context, id string) (model.Class, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+classColumns+` FROM classes WHERE id = $1`, id)
	return scanClass(row)
}

func (s *Store) CreateClass(ctx context.Context, class model.Class) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO classes (id, school_id, class_text, class_num, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, class.ID, class.SchoolID, class.ClassText, class.ClassNum, class.CreatedAt)
	return err
}

type ClassUpdate struct {
	ClassText *string
	ClassNum  *string
}

func (s *Store) UpdateClass(ctx context.Context, id string, update ClassUpdate) (model.Class, error) {
	b := &updateBuilder{}
	if update.ClassText != nil {
		b.set("class_text", *update.ClassText)
	}
	if update.ClassNum != nil {
		b.set("class_num", *update.ClassNum)
	}
	if b.empty() {
		return s.GetClass(ctx, id)
	}

	query, args := b.query("classes", classColumns, id)
	return scanClass(s.pool.QueryRow(ctx, query, args...))
}

func (s *Store) DeleteClass(ctx context.Context, id string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

const subjectColumns = "id, school_id, subject_name, subject_codename, created_at"

func scanSubject(row scanner) (model.Subject, error) {
	var subject model.Subject
	err := row.Scan(&subject.ID, &subject.SchoolID, &subject.SubjectName, &subject.SubjectCodename, &subject.CreatedAt)
	return subject, err
}

func (s *Store) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	return s.querySubjects(ctx, `SELECT `+subjectColumns+` FROM subjects ORDER BY created_at DESC`)
}

func (s *Store) ListSubjectsBySchool(ctx context.Context, schoolID string) ([]model.Subject, error) {
	return s.querySubjects(ctx, `SELECT `+subjectColumns+` FROM subjects WHERE school_id = $1 ORDER BY created_at DESC`, schoolID)
}

func (s *Store) querySubjects(ctx context.Context, query string, args ...interface{}) ([]model.Subject, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subjects := make([]model.Subject, 0)
	for rows.Next() {
		subject, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}
	return subjects, rows.Err()
}

func (s *Store) GetSubject(ctx context.Context, id string) (model.Subject, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+subjectColumns+` FROM subjects WHERE id = $1`, id)
	return scanSubject(row)
}

func (s *Store) CreateSubject(ctx context.Context, subject model.Subject) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO subjects (id, school_id, subject_name, subject_codename, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, subject.ID, subject.SchoolID, subject.SubjectName, subject.SubjectCodename, subject.CreatedAt)
	return err
}

type SubjectUpdate struct {
	SubjectName     *string
	SubjectCodename *string
}

func (s *Store) UpdateSubject(ctx context.Context, id string, update SubjectUpdate) (model.Subject, error) {
	b := &updateBuilder{}
	if update.SubjectName != nil {
		b.set("subject_name", *update.SubjectName)
	}
	if update.SubjectCodename != nil {
		b.set("subject_codename", *update.SubjectCodename)
	}
	if b.empty() {
		return s.GetSubject(ctx, id)
	}

	query, args := b.query("subjects", subjectColumns, id)
	return scanSubject(s.pool.QueryRow(ctx, query, args...))
}

func (s *Store) DeleteSubject(ctx context.Context, id string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

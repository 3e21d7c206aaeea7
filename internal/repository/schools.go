package repository

import (
	"context"
	"time"

	"github.com/Kushkushal/Clustorix-Admin/internal/model"
)

const schoolColumns = "id, school_name, owner_name, email, password_hash, phone, address, city, state, school_image, is_active, features, created_at, updated_at"

func scanSchool(row scanner) (model.School, error) {
	var school model.School
	err := row.Scan(
		&school.ID,
		&school.SchoolName,
		&school.OwnerName,
		&school.Email,
		&school.PasswordHash,
		&school.Phone,
		&school.Address,
		&school.City,
		&school.State,
		&school.SchoolImage,
		&school.IsActive,
		&school.Features,
		&school.CreatedAt,
		&school.UpdatedAt,
	)
	return school, err
}

func (s *Store) ListSchools(ctx context.Context) ([]model.School, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+schoolColumns+`
		FROM schools
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schools := make([]model.School, 0)
	for rows.Next() {
		school, err := scanSchool(rows)
		if err != nil {
			return nil, err
		}
		schools = append(schools, school)
	}
	return schools, rows.Err()
}

func (s *Store) GetSchool(ctx context.Context, id string) (model.School, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+schoolColumns+`
		FROM schools
		WHERE id = $1
	`, id)
	return scanSchool(row)
}

func (s *Store) CreateSchool(ctx context.Context, school model.School) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO schools (id, school_name, owner_name, email, password_hash, phone, address, city, state, school_image, is_active, features, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, school.ID, school.SchoolName, school.OwnerName, school.Email, school.PasswordHash, school.Phone,
		school.Address, school.City, school.State, school.SchoolImage, school.IsActive, school.Features,
		school.CreatedAt, school.UpdatedAt)
	return err
}

type SchoolUpdate struct {
	SchoolName   *string
	OwnerName    *string
	Email        *string
	PasswordHash *string
	Phone        *string
	Address      *string
	City         *string
	State        *string
	SchoolImage  *string
	IsActive     *bool
	UpdatedAt    time.Time
}

func (s *Store) UpdateSchool(ctx context.Context, id string, update SchoolUpdate) (model.School, error) {
	b := &updateBuilder{}
	if update.SchoolName != nil {
		b.set("school_name", *update.SchoolName)
	}
	if update.OwnerName != nil {
		b.set("owner_name", *update.OwnerName)
	}
	if update.Email != nil {
		b.set("email", *update.Email)
	}
	if update.PasswordHash != nil {
		b.set("password_hash", *update.PasswordHash)
	}
	if update.Phone != nil {
		b.set("phone", *update.Phone)
	}
	if update.Address != nil {
		b.set("address", *update.Address)
	}
	if update.City != nil {
		b.set("city", *update.City)
	}
	if update.State != nil {
		b.set("state", *update.State)
	}
	if update.SchoolImage != nil {
		b.set("school_image", *update.SchoolImage)
	}
	if update.IsActive != nil {
		b.set("is_active", *update.IsActive)
	}
	if b.empty() {
		return s.GetSchool(ctx, id)
	}
	b.set("updated_at", update.UpdatedAt)

	query, args := b.query("schools", schoolColumns, id)
	return scanSchool(s.pool.QueryRow(ctx, query, args...))
}

func (s *Store) UpdateSchoolFeatures(ctx context.Context, id string, features model.SchoolFeatures, updatedAt time.Time) (model.School, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE schools
		SET features = $1, updated_at = $2
		WHERE id = $3
		RETURNING `+schoolColumns+`
	`, features, updatedAt, id)
	return scanSchool(row)
}

func (s *Store) DeleteSchool(ctx context.Context, id string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM schools WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

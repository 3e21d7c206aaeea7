package repository

import "context"

// DashboardSummary is the landing-page aggregate: row counts per entity plus
// active-school count.
type DashboardSummary struct {
	Schools       int64 `json:"schools"`
	ActiveSchools int64 `json:"activeSchools"`
	Students      int64 `json:"students"`
	Teachers      int64 `json:"teachers"`
	Classes       int64 `json:"classes"`
	Subjects      int64 `json:"subjects"`
	Tickets       int64 `json:"tickets"`
}

func (s *Store) GetDashboardSummary(ctx context.Context) (DashboardSummary, error) {
	var summary DashboardSummary
	row := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM schools),
			(SELECT COUNT(*) FROM schools WHERE is_active),
			(SELECT COUNT(*) FROM students),
			(SELECT COUNT(*) FROM teachers),
			(SELECT COUNT(*) FROM classes),
			(SELECT COUNT(*) FROM subjects),
			(SELECT COUNT(*) FROM tickets)
	`)
	err := row.Scan(&summary.Schools, &summary.ActiveSchools, &summary.Students, &summary.Teachers,
		&summary.Classes, &summary.Subjects, &summary.Tickets)
	return summary, err
}

type StudentStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

func (s *Store) GetStudentStats(ctx context.Context) (StudentStats, error) {
	var stats StudentStats
	row := s.pool.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active), COUNT(*) FILTER (WHERE NOT is_active)
		FROM students
	`)
	err := row.Scan(&stats.Total, &stats.Active, &stats.Inactive)
	return stats, err
}

type TeacherStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

func (s *Store) GetTeacherStats(ctx context.Context) (TeacherStats, error) {
	var stats TeacherStats
	row := s.pool.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active), COUNT(*) FILTER (WHERE NOT is_active)
		FROM teachers
	`)
	err := row.Scan(&stats.Total, &stats.Active, &stats.Inactive)
	return stats, err
}

type TicketStats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Resolved   int64 `json:"resolved"`
}

func (s *Store) GetTicketStats(ctx context.Context) (TicketStats, error) {
	var stats TicketStats
	row := s.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'in-progress'),
			COUNT(*) FILTER (WHERE status = 'resolved')
		FROM tickets
	`)
	err := row.Scan(&stats.Total, &stats.Pending, &stats.InProgress, &stats.Resolved)
	return stats, err
}

type FeesStats struct {
	Records int64 `json:"records"`
}

func (s *Store) GetFeesStats(ctx context.Context) (FeesStats, error) {
	var stats FeesStats
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM fees`).Scan(&stats.Records)
	return stats, err
}

// Package api serves the read-only dashboard queries over the persisted
// listings: keyword search with a minimum-salary threshold, the map view
// joined to coordinates, and summary stats.
package api

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ManuelJua/jobs-scraper/internal/model"
)

// Store is the read-only query surface the handlers depend on.
type Store interface {
	SearchJobs(ctx context.Context, keyword string, minSalary int64) ([]model.Listing, error)
	LocatedJobs(ctx context.Context) ([]model.LocatedJob, error)
	Stats(ctx context.Context) (model.JobStats, error)
}

const searchLimit = 500

// PGStore runs the dashboard queries against Postgres.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// SearchJobs returns active listings whose title or description matches
// the keyword (case-insensitive substring) and whose salary meets the
// threshold. minSalary 0 means no threshold; listings with no salary only
// appear when no threshold is set.
func (s *PGStore) SearchJobs(ctx context.Context, keyword string, minSalary int64) ([]model.Listing, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, job_title, location, salary, job_url, publication_date,
		       expiration_date, description, employer_name, applications, is_active
		FROM jobs
		WHERE is_active
		  AND (job_title ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		  AND ($2 = 0 OR salary >= $2)
		ORDER BY publication_date DESC
		LIMIT $3`,
		keyword, minSalary, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search jobs: %w", err)
	}
	defer rows.Close()

	var listings []model.Listing
	for rows.Next() {
		var l model.Listing
		if err := rows.Scan(
			&l.ID, &l.Title, &l.Location, &l.Salary, &l.URL,
			&l.PublicationDate, &l.ExpirationDate, &l.Description,
			&l.EmployerName, &l.Applications, &l.IsActive,
		); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		listings = append(listings, l)
	}

	return listings, rows.Err()
}

// LocatedJobs returns active listings whose free-text location resolved to
// a coordinate row. Unresolved locations are silently absent — the join is
// lossy by design.
func (s *PGStore) LocatedJobs(ctx context.Context) ([]model.LocatedJob, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT j.id, j.job_title, j.location, j.salary, j.job_url,
		       c.latitude, c.longitude
		FROM jobs j
		JOIN coordinates c ON j.location = c.location
		WHERE j.is_active AND c.latitude IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("located jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.LocatedJob
	for rows.Next() {
		var j model.LocatedJob
		if err := rows.Scan(&j.ID, &j.Title, &j.Location, &j.Salary, &j.URL,
			&j.Latitude, &j.Longitude); err != nil {
			return nil, fmt.Errorf("scan located job: %w", err)
		}
		jobs = append(jobs, j)
	}

	return jobs, rows.Err()
}

func (s *PGStore) Stats(ctx context.Context) (model.JobStats, error) {
	var st model.JobStats
	err := s.pool.QueryRow(ctx, `
		SELECT count(*),
		       count(*) FILTER (WHERE is_active),
		       count(*) FILTER (WHERE location IN (SELECT location FROM coordinates WHERE latitude IS NOT NULL))
		FROM jobs`).Scan(&st.Total, &st.Active, &st.Located)
	if err != nil {
		return st, fmt.Errorf("stats: %w", err)
	}
	return st, nil
}

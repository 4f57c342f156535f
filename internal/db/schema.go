package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the jobs and coordinates tables if they do not
// exist. The jobs id is assigned by the upstream provider, not generated.
// coordinates is keyed by the raw location text of the feed — the join
// from jobs.location is exact-match and deliberately unenforced.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	sql := `
	CREATE TABLE IF NOT EXISTS jobs (
		id BIGINT PRIMARY KEY,
		job_title TEXT NOT NULL,
		location TEXT,
		salary BIGINT,
		job_url TEXT NOT NULL,
		publication_date DATE,
		expiration_date DATE,
		description TEXT,
		employer_name TEXT,
		applications BIGINT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	);

	CREATE INDEX IF NOT EXISTS idx_jobs_is_active ON jobs(is_active);
	CREATE INDEX IF NOT EXISTS idx_jobs_salary ON jobs(salary);

	CREATE TABLE IF NOT EXISTS coordinates (
		location TEXT PRIMARY KEY,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION
	);
	`

	if _, err := pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	return nil
}

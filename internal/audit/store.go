package audit

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ManuelJua/jobs-scraper/internal/model"
)

// PGStore backs the auditor with the jobs table. Connections are pooled
// and short-lived per operation — no transaction spans a network check.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) ActiveListings(ctx context.Context) ([]model.ListingRef, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, job_url FROM jobs WHERE is_active`)
	if err != nil {
		return nil, fmt.Errorf("query active listings: %w", err)
	}
	defer rows.Close()

	var refs []model.ListingRef
	for rows.Next() {
		var r model.ListingRef
		if err := rows.Scan(&r.ID, &r.URL); err != nil {
			return nil, fmt.Errorf("scan listing ref: %w", err)
		}
		refs = append(refs, r)
	}

	return refs, rows.Err()
}

func (s *PGStore) Deactivate(ctx context.Context, id int64) error {
	_, err := s.pool.Exec(ctx, `UPDATE jobs SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate listing %d: %w", id, err)
	}
	return nil
}

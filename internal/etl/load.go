package etl

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ManuelJua/jobs-scraper/internal/model"
)

// DefaultChunkSize bounds per-statement payload size and memory when
// loading a batch.
const DefaultChunkSize = 100

const insertSQL = `
	INSERT INTO jobs (id, job_title, location, salary, job_url,
	                  publication_date, expiration_date, description,
	                  employer_name, applications, is_active)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, TRUE)
	ON CONFLICT (id) DO NOTHING`

// batchSender is the slice of pgxpool.Pool the row-batched path needs.
type batchSender interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Loader persists filtered, normalised listings. Inserts are idempotent
// (duplicate keys are silently ignored), so re-running with overlapping
// input is safe.
type Loader struct {
	sender    batchSender
	pool      *pgxpool.Pool
	chunkSize int
}

// NewLoader constructs a Loader over a connection pool.
func NewLoader(pool *pgxpool.Pool) *Loader {
	return &Loader{sender: pool, pool: pool, chunkSize: DefaultChunkSize}
}

// Result summarises one load run.
type Result struct {
	Inserted int
	Skipped  int // already-persisted keys that conflicted away
}

// Load writes listings in bounded chunks, each an auto-committed pgx
// batch of idempotent inserts. A failed chunk is logged with its key
// range and row count so it can be re-run manually, and the remaining
// chunks still proceed — already-committed chunks are never reprocessed.
func (l *Loader) Load(ctx context.Context, listings []model.Listing) (Result, error) {
	var res Result
	if len(listings) == 0 {
		return res, nil
	}

	chunks := chunk(listings, l.chunkSize)
	failed := 0

	for i, c := range chunks {
		inserted, skipped, err := l.loadChunk(ctx, c)
		res.Inserted += inserted
		res.Skipped += skipped
		if err != nil {
			failed++
			log.Printf("[loader] chunk %d/%d failed (keys %d..%d, %d rows): %v",
				i+1, len(chunks), c[0].ID, c[len(c)-1].ID, len(c), err)
			continue
		}
		log.Printf("[loader] chunk %d/%d done — inserted=%d skipped=%d", i+1, len(chunks), inserted, skipped)
	}

	if failed > 0 {
		return res, fmt.Errorf("%d of %d chunks failed", failed, len(chunks))
	}
	return res, nil
}

func (l *Loader) loadChunk(ctx context.Context, listings []model.Listing) (inserted, skipped int, err error) {
	batch := &pgx.Batch{}
	for _, j := range listings {
		batch.Queue(insertSQL,
			j.ID, j.Title, j.Location, j.Salary, j.URL,
			j.PublicationDate, j.ExpirationDate, j.Description,
			j.EmployerName, j.Applications,
		)
	}

	results := l.sender.SendBatch(ctx, batch)
	defer results.Close()

	for range listings {
		tag, execErr := results.Exec()
		if execErr != nil {
			return inserted, skipped, execErr
		}
		if tag.RowsAffected() > 0 {
			inserted++
		} else {
			skipped++
		}
	}

	return inserted, skipped, nil
}

// CopyInto is the bulk alternative to Load: it streams the whole batch
// into a temporary staging table with COPY and merges it with a single
// set-based idempotent insert. Functionally equivalent to Load; preferable
// for very large batches.
func (l *Loader) CopyInto(ctx context.Context, listings []model.Listing) (Result, error) {
	var res Result
	if len(listings) == 0 {
		return res, nil
	}

	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return res, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`CREATE TEMP TABLE jobs_staging (LIKE jobs INCLUDING DEFAULTS) ON COMMIT DROP`,
	); err != nil {
		return res, fmt.Errorf("create staging table: %w", err)
	}

	cols := []string{"id", "job_title", "location", "salary", "job_url",
		"publication_date", "expiration_date", "description",
		"employer_name", "applications", "is_active"}

	copied, err := tx.CopyFrom(ctx, pgx.Identifier{"jobs_staging"}, cols,
		pgx.CopyFromSlice(len(listings), func(i int) ([]any, error) {
			j := listings[i]
			return []any{j.ID, j.Title, j.Location, j.Salary, j.URL,
				j.PublicationDate, j.ExpirationDate, j.Description,
				j.EmployerName, j.Applications, true}, nil
		}),
	)
	if err != nil {
		return res, fmt.Errorf("copy into staging: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`INSERT INTO jobs SELECT * FROM jobs_staging ON CONFLICT (id) DO NOTHING`,
	)
	if err != nil {
		return res, fmt.Errorf("merge staging: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return res, fmt.Errorf("commit: %w", err)
	}

	res.Inserted = int(tag.RowsAffected())
	res.Skipped = int(copied) - res.Inserted
	return res, nil
}

// chunk splits listings into bounded-size sub-batches.
func chunk(listings []model.Listing, size int) [][]model.Listing {
	if size <= 0 {
		size = DefaultChunkSize
	}
	var out [][]model.Listing
	for start := 0; start < len(listings); start += size {
		end := start + size
		if end > len(listings) {
			end = len(listings)
		}
		out = append(out, listings[start:end])
	}
	return out
}

package geocode

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Sweeper walks the listing locations that have no coordinate row yet and
// geocodes them one at a time, paced to respect the shared upstream
// service. A coordinate row is written once and never updated.
type Sweeper struct {
	pool   *pgxpool.Pool
	client *Client
	delay  time.Duration // minimum gap between lookups
}

func NewSweeper(pool *pgxpool.Pool, client *Client, delay time.Duration) *Sweeper {
	if delay <= 0 {
		delay = time.Second
	}
	return &Sweeper{pool: pool, client: client, delay: delay}
}

// Summary reports one geocoding sweep.
type Summary struct {
	Pending  int // distinct locations lacking coordinates
	Resolved int
	Misses   int // lookups the service had no match for
	Failed   int
}

// Run geocodes every pending location. Individual failures are logged and
// skipped — a location that fails today is retried on the next sweep
// because it still has no coordinate row.
func (s *Sweeper) Run(ctx context.Context) (Summary, error) {
	locations, err := s.pendingLocations(ctx)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Pending: len(locations)}
	if len(locations) == 0 {
		return summary, nil
	}

	log.Printf("[geocode] %d locations pending", len(locations))

	ticker := time.NewTicker(s.delay)
	defer ticker.Stop()

	for _, loc := range locations {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		case <-ticker.C:
		}

		lat, lon, ok, err := s.client.Lookup(ctx, loc)
		if err != nil {
			summary.Failed++
			log.Printf("[geocode] lookup %q failed: %v — skipping", loc, err)
			continue
		}
		if !ok {
			summary.Misses++
			log.Printf("[geocode] no match for %q", loc)
			continue
		}

		if _, err := s.pool.Exec(ctx,
			`INSERT INTO coordinates (location, latitude, longitude)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (location) DO NOTHING`,
			loc, lat, lon,
		); err != nil {
			summary.Failed++
			log.Printf("[geocode] insert %q failed: %v — skipping", loc, err)
			continue
		}

		summary.Resolved++
	}

	return summary, nil
}

// pendingLocations returns the distinct listing locations with no
// coordinate row. The join is exact-match on the raw feed text.
func (s *Sweeper) pendingLocations(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT DISTINCT j.location
		FROM jobs j
		LEFT JOIN coordinates c ON j.location = c.location
		WHERE j.location IS NOT NULL AND j.location <> '' AND c.location IS NULL`)
	if err != nil {
		return nil, fmt.Errorf("query pending locations: %w", err)
	}
	defer rows.Close()

	var locations []string
	for rows.Next() {
		var loc string
		if err := rows.Scan(&loc); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locations = append(locations, loc)
	}

	return locations, rows.Err()
}

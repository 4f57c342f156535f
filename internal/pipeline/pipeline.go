// Package pipeline wires the batch steps together: scrape → stage →
// reconcile/load → geocode. Each step is also exposed on its own so the
// one-shot binaries and the cron scheduler share the same code path.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ManuelJua/jobs-scraper/internal/api"
	"github.com/ManuelJua/jobs-scraper/internal/config"
	"github.com/ManuelJua/jobs-scraper/internal/etl"
	"github.com/ManuelJua/jobs-scraper/internal/geocode"
	"github.com/ManuelJua/jobs-scraper/internal/scraper"
	"github.com/ManuelJua/jobs-scraper/internal/staging"
)

// Scrape searches every configured keyword and stages the deduplicated
// results. Returns the staged file path and row count; zero rows stages
// nothing.
func Scrape(ctx context.Context, cfg *config.Config) (string, int, error) {
	keywords, err := scraper.LoadKeywords(cfg.KeywordsFile)
	if err != nil {
		return "", 0, err
	}
	log.Printf("[pipeline] scraping %d keyword(s)", len(keywords))

	runner := scraper.NewRunner(scraper.NewFetcher(cfg.ReedAPIKey))
	rows := runner.Run(ctx, keywords)
	if len(rows) == 0 {
		log.Println("[pipeline] no listings scraped — nothing staged")
		return "", 0, nil
	}

	path, err := staging.Write(cfg.StagingDir, rows)
	if err != nil {
		return "", 0, err
	}

	log.Printf("[pipeline] staged %d listings → %s", len(rows), path)
	return path, len(rows), nil
}

// LoadSummary reports one reconcile/load run.
type LoadSummary struct {
	Staged   int
	Fresh    int
	Inserted int
	Skipped  int
}

// Load reconciles the staged batch against the store and bulk-loads the
// delta. The staged file is deleted only after a fully successful load,
// so a failed run can simply be re-run. No staged batch waiting is a
// normal no-op.
func Load(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, cache *api.Cache) (LoadSummary, error) {
	var s LoadSummary

	path, err := staging.Discover(cfg.StagingDir)
	if errors.Is(err, staging.ErrNoBatch) {
		log.Println("[pipeline] no staged batch — nothing to load")
		return s, nil
	}
	if err != nil {
		return s, err
	}

	rows, err := staging.Read(path)
	if err != nil {
		return s, err
	}
	s.Staged = len(rows)

	listings, err := etl.NormalizeBatch(rows)
	if err != nil {
		return s, fmt.Errorf("normalize batch: %w", err)
	}

	existing, err := etl.LoadExistingKeys(ctx, pool)
	if err != nil {
		return s, err
	}

	fresh := etl.FilterNew(listings, existing)
	s.Fresh = len(fresh)
	log.Printf("[pipeline] %d staged, %d already persisted, %d to insert",
		s.Staged, s.Staged-s.Fresh, s.Fresh)

	res, err := etl.NewLoader(pool).Load(ctx, fresh)
	s.Inserted = res.Inserted
	s.Skipped = res.Skipped
	if err != nil {
		return s, fmt.Errorf("load batch: %w", err)
	}

	if err := cache.Touch(ctx); err != nil {
		log.Printf("[pipeline] cache refresh bump failed: %v", err)
	}

	if err := staging.Remove(path); err != nil {
		return s, err
	}

	return s, nil
}

// GeocodeSweep resolves coordinates for locations the store has not seen
// before.
func GeocodeSweep(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) (geocode.Summary, error) {
	sweeper := geocode.NewSweeper(pool, geocode.NewClient(), cfg.GeocodeDelay)
	return sweeper.Run(ctx)
}

// Cycle runs one full scrape → load → geocode pass. Used by the cron
// scheduler; the one-shot binaries call the steps individually.
func Cycle(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, cache *api.Cache) error {
	if _, _, err := Scrape(ctx, cfg); err != nil {
		return fmt.Errorf("scrape: %w", err)
	}

	summary, err := Load(ctx, cfg, pool, cache)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	log.Printf("[pipeline] load done — staged=%d fresh=%d inserted=%d skipped=%d",
		summary.Staged, summary.Fresh, summary.Inserted, summary.Skipped)

	geo, err := GeocodeSweep(ctx, cfg, pool)
	if err != nil {
		return fmt.Errorf("geocode: %w", err)
	}
	log.Printf("[pipeline] geocode done — pending=%d resolved=%d misses=%d failed=%d",
		geo.Pending, geo.Resolved, geo.Misses, geo.Failed)

	return nil
}

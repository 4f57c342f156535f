// Command geocode resolves coordinates for listing locations that have no
// coordinate row yet.
package main

import (
	"context"
	"log"
	"time"

	"github.com/ManuelJua/jobs-scraper/internal/config"
	"github.com/ManuelJua/jobs-scraper/internal/db"
	"github.com/ManuelJua/jobs-scraper/internal/pipeline"
)

func main() {
	start := time.Now()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[geocode] config: %v", err)
	}

	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[geocode] %v", err)
	}
	defer pool.Close()

	summary, err := pipeline.GeocodeSweep(ctx, cfg, pool)
	if err != nil {
		log.Fatalf("[geocode] %v", err)
	}

	log.Printf("[geocode] done — pending=%d resolved=%d misses=%d failed=%d in %v",
		summary.Pending, summary.Resolved, summary.Misses, summary.Failed,
		time.Since(start).Round(time.Second))
}

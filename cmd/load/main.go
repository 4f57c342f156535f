// Command load reconciles the staged batch against the jobs table and
// bulk-loads the new listings with idempotent inserts.
package main

import (
	"context"
	"log"
	"time"

	"github.com/ManuelJua/jobs-scraper/internal/api"
	"github.com/ManuelJua/jobs-scraper/internal/config"
	"github.com/ManuelJua/jobs-scraper/internal/db"
	"github.com/ManuelJua/jobs-scraper/internal/pipeline"
)

func main() {
	start := time.Now()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[load] config: %v", err)
	}

	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[load] %v", err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("[load] %v", err)
	}

	var cache *api.Cache
	if cfg.RedisURL != "" {
		rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("[load] %v", err)
		}
		defer rdb.Close()
		cache = api.NewCache(rdb)
	}

	summary, err := pipeline.Load(ctx, cfg, pool, cache)
	if err != nil {
		log.Fatalf("[load] staged=%d fresh=%d inserted=%d skipped=%d: %v",
			summary.Staged, summary.Fresh, summary.Inserted, summary.Skipped, err)
	}

	log.Printf("[load] done — staged=%d fresh=%d inserted=%d skipped=%d in %v",
		summary.Staged, summary.Fresh, summary.Inserted, summary.Skipped,
		time.Since(start).Round(time.Millisecond))
}

// Command scrape searches the configured keywords against the Reed API
// and stages the results as a flat CSV batch for the load step.
package main

import (
	"context"
	"log"
	"time"

	"github.com/ManuelJua/jobs-scraper/internal/config"
	"github.com/ManuelJua/jobs-scraper/internal/pipeline"
)

func main() {
	start := time.Now()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[scrape] config: %v", err)
	}

	path, count, err := pipeline.Scrape(context.Background(), cfg)
	if err != nil {
		log.Fatalf("[scrape] %v", err)
	}

	if count > 0 {
		log.Printf("[scrape] done — %d listings staged at %s in %v", count, path, time.Since(start).Round(time.Second))
	} else {
		log.Printf("[scrape] done — nothing staged in %v", time.Since(start).Round(time.Second))
	}
}

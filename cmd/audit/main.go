// Command audit sweeps every active listing's source URL and deactivates
// the ones whose posting has been removed upstream.
package main

import (
	"context"
	"log"
	"time"

	"github.com/ManuelJua/jobs-scraper/internal/audit"
	"github.com/ManuelJua/jobs-scraper/internal/config"
	"github.com/ManuelJua/jobs-scraper/internal/db"
)

func main() {
	start := time.Now()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[audit] config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.AuditSweepBudget)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[audit] %v", err)
	}
	defer pool.Close()

	auditor := audit.NewAuditor(audit.NewPGStore(pool), cfg.AuditWorkers, cfg.AuditTimeout)
	summary, err := auditor.Sweep(ctx)
	if err != nil {
		log.Fatalf("[audit] %v", err)
	}

	log.Printf("[audit] done — checked=%d removed=%d ambiguous=%d unvisited=%d in %v",
		summary.Checked, summary.Removed, summary.Ambiguous, summary.Unvisited,
		time.Since(start).Round(time.Second))
}

// Command server exposes the read-only dashboard API and runs the cron
// scheduler for the scrape/load/geocode cycle and the audit sweep.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ManuelJua/jobs-scraper/internal/api"
	"github.com/ManuelJua/jobs-scraper/internal/audit"
	"github.com/ManuelJua/jobs-scraper/internal/config"
	"github.com/ManuelJua/jobs-scraper/internal/db"
	"github.com/ManuelJua/jobs-scraper/internal/pipeline"
	"github.com/ManuelJua/jobs-scraper/internal/scheduler"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[server] config: %v", err)
	}

	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[server] %v", err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("[server] %v", err)
	}

	var cache *api.Cache
	if cfg.RedisURL != "" {
		rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("[server] %v", err)
		}
		defer rdb.Close()
		cache = api.NewCache(rdb)
	} else {
		log.Println("[server] REDIS_URL not set — dashboard caching disabled")
	}

	auditor := audit.NewAuditor(audit.NewPGStore(pool), cfg.AuditWorkers, cfg.AuditTimeout)

	sched := scheduler.New(
		func(ctx context.Context) error {
			return pipeline.Cycle(ctx, cfg, pool, cache)
		},
		func(ctx context.Context) error {
			sweepCtx, cancel := context.WithTimeout(ctx, cfg.AuditSweepBudget)
			defer cancel()
			_, err := auditor.Sweep(sweepCtx)
			return err
		},
		cfg.ScrapeIntervalHours,
		cfg.AuditIntervalHours,
	)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("[server] scheduler: %v", err)
	}
	defer sched.Stop()

	router := gin.Default()
	api.NewHandler(api.NewPGStore(pool), cache).Register(router)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	go func() {
		log.Printf("[server] listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[server] %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[server] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[server] shutdown: %v", err)
	}
}

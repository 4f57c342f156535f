// Package scheduler wires up the cron jobs that periodically run the
// scrape/load/geocode cycle and the availability audit sweep.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler wraps robfig/cron and manages the recurring batch jobs.
type Scheduler struct {
	cron      *cron.Cron
	cycle     func(ctx context.Context) error
	audit     func(ctx context.Context) error
	cycleSpec string
	auditSpec string
}

// New creates a Scheduler firing the pipeline cycle every cycleHours and
// the audit sweep every auditHours.
func New(cycle, audit func(ctx context.Context) error, cycleHours, auditHours int) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithLogger(cron.DefaultLogger)),
		cycle:     cycle,
		audit:     audit,
		cycleSpec: Spec(cycleHours),
		auditSpec: Spec(auditHours),
	}
}

// Spec renders an hourly interval as a cron spec.
func Spec(hours int) string {
	if hours < 1 {
		hours = 1
	}
	return fmt.Sprintf("@every %dh", hours)
}

// Start registers the jobs and starts the scheduler. Also runs one
// pipeline cycle immediately so a fresh deployment has data without
// waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.cycleSpec, func() {
		if err := s.cycle(ctx); err != nil {
			log.Printf("[scheduler] pipeline cycle error: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("cron.AddFunc(cycle): %w", err)
	}

	if _, err := s.cron.AddFunc(s.auditSpec, func() {
		if err := s.audit(ctx); err != nil {
			log.Printf("[scheduler] audit sweep error: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("cron.AddFunc(audit): %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] cron started — cycle: %s, audit: %s", s.cycleSpec, s.auditSpec)

	// Run immediately on startup (non-blocking)
	go func() {
		if err := s.cycle(ctx); err != nil {
			log.Printf("[scheduler] initial pipeline cycle error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] cron stopped")
}

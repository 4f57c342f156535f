package audit

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ManuelJua/jobs-scraper/internal/model"
)

// Store is the slice of the durable store the auditor needs.
type Store interface {
	// ActiveListings returns (id, url) for every listing still flagged active.
	ActiveListings(ctx context.Context) ([]model.ListingRef, error)
	// Deactivate flips one listing's active flag to false.
	Deactivate(ctx context.Context, id int64) error
}

// Auditor sweeps active listings with a bounded-concurrency fan-out of
// independent HTTP checks. Each check owns its own result and writes its
// own update; there is no shared mutable state between workers.
type Auditor struct {
	store   Store
	client  *http.Client
	workers int
}

// NewAuditor constructs an Auditor. perRequestTimeout bounds each
// individual check; the sweep-wide budget comes from the caller's context.
func NewAuditor(store Store, workers int, perRequestTimeout time.Duration) *Auditor {
	if workers < 1 {
		workers = 1
	}
	return &Auditor{
		store:   store,
		client:  &http.Client{Timeout: perRequestTimeout},
		workers: workers,
	}
}

// Summary reports one sweep.
type Summary struct {
	Checked   int
	Removed   int
	Ambiguous int
	Unvisited int // left for the next cycle when the sweep deadline hit
}

// Sweep checks every active listing once. Workers stripe over the listing
// slice; a failure in one check never aborts the others, and once ctx
// expires the remaining listings are simply left unvisited this cycle.
func (a *Auditor) Sweep(ctx context.Context) (Summary, error) {
	refs, err := a.store.ActiveListings(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load active listings: %w", err)
	}
	if len(refs) == 0 {
		return Summary{}, nil
	}

	log.Printf("[audit] sweep started — %d active listings, %d workers", len(refs), a.workers)

	var checked, removed, ambiguous, unvisited int64

	workers := a.workers
	if len(refs) < workers {
		workers = len(refs)
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(shard int) {
			defer wg.Done()
			for i := shard; i < len(refs); i += workers {
				if ctx.Err() != nil {
					atomic.AddInt64(&unvisited, 1)
					continue
				}

				ref := refs[i]
				status := a.check(ctx, ref.URL)
				atomic.AddInt64(&checked, 1)

				switch status {
				case StatusRemoved:
					if err := a.store.Deactivate(ctx, ref.ID); err != nil {
						log.Printf("[audit] deactivate %d failed: %v", ref.ID, err)
						continue
					}
					atomic.AddInt64(&removed, 1)
					log.Printf("[audit] listing %d removed upstream — deactivated", ref.ID)
				case StatusAmbiguous:
					atomic.AddInt64(&ambiguous, 1)
				}
			}
		}(w)
	}
	wg.Wait()

	s := Summary{
		Checked:   int(checked),
		Removed:   int(removed),
		Ambiguous: int(ambiguous),
		Unvisited: int(unvisited),
	}
	log.Printf("[audit] sweep done — checked=%d removed=%d ambiguous=%d unvisited=%d",
		s.Checked, s.Removed, s.Ambiguous, s.Unvisited)
	return s, nil
}

// check fetches one source URL and classifies the response. All transport
// failures are swallowed here — per-item fail-open is the one place in the
// pipeline allowed to do that.
func (a *Auditor) check(ctx context.Context, url string) Status {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Classify(0, "", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return Classify(0, "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Classify(0, "", err)
	}

	return Classify(resp.StatusCode, string(body), nil)
}

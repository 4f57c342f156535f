package scraper

import (
	"context"
	"log"
	"sync"

	"github.com/ManuelJua/jobs-scraper/internal/model"
)

// Runner fans one Search out per keyword. Keyword searches are
// independent, so a failure in one is logged and the others continue.
type Runner struct {
	fetcher *Fetcher
}

func NewRunner(fetcher *Fetcher) *Runner {
	return &Runner{fetcher: fetcher}
}

// Run searches every keyword concurrently and returns the combined rows,
// deduplicated to the first occurrence of each listing key. Overlapping
// keyword searches routinely return the same listing twice.
func (r *Runner) Run(ctx context.Context, keywords []string) []model.StagedRow {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		rows []model.StagedRow
	)

	for _, kw := range keywords {
		wg.Add(1)
		go func(keyword string) {
			defer wg.Done()

			found, err := r.fetcher.Search(ctx, keyword)
			if err != nil {
				log.Printf("[scraper] keyword %q failed: %v — continuing", keyword, err)
				return
			}
			log.Printf("[scraper] keyword %q — %d listings", keyword, len(found))

			mu.Lock()
			rows = append(rows, found...)
			mu.Unlock()
		}(kw)
	}
	wg.Wait()

	return DedupByID(rows)
}

// DedupByID keeps the first occurrence of each listing key, preserving
// order of first appearance.
func DedupByID(rows []model.StagedRow) []model.StagedRow {
	seen := make(map[int64]struct{}, len(rows))
	out := make([]model.StagedRow, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}

package etl

import "github.com/ManuelJua/jobs-scraper/internal/model"

// FilterNew returns the listings whose key is not yet persisted.
//
// Overlapping keyword searches can return the same listing more than once
// within a single batch, so the batch is first deduplicated to the first
// occurrence of each key. Without that step duplicate keys inside one
// batch would collide at insert time.
func FilterNew(listings []model.Listing, existing map[int64]struct{}) []model.Listing {
	seen := make(map[int64]struct{}, len(listings))
	fresh := make([]model.Listing, 0, len(listings))

	for _, l := range listings {
		if _, dup := seen[l.ID]; dup {
			continue
		}
		seen[l.ID] = struct{}{}

		if _, ok := existing[l.ID]; ok {
			continue
		}
		fresh = append(fresh, l)
	}

	return fresh
}

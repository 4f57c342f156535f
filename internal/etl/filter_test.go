package etl_test

import (
	"testing"

	"github.com/ManuelJua/jobs-scraper/internal/etl"
	"github.com/ManuelJua/jobs-scraper/internal/model"
)

func listings(ids ...int64) []model.Listing {
	out := make([]model.Listing, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.Listing{ID: id})
	}
	return out
}

func keySet(ids ...int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func TestFilterNew_ReturnsOnlyUnseenKeys(t *testing.T) {
	got := etl.FilterNew(listings(2, 3, 4, 5), keySet(1, 2, 3))

	if len(got) != 2 || got[0].ID != 4 || got[1].ID != 5 {
		ids := make([]int64, 0, len(got))
		for _, l := range got {
			ids = append(ids, l.ID)
		}
		t.Errorf("FilterNew returned keys %v, want [4 5]", ids)
	}
}

func TestFilterNew_DedupsToFirstOccurrence(t *testing.T) {
	batch := []model.Listing{
		{ID: 10, Title: "first"},
		{ID: 10, Title: "second"},
	}

	got := etl.FilterNew(batch, keySet())
	if len(got) != 1 {
		t.Fatalf("FilterNew returned %d rows, want 1", len(got))
	}
	if got[0].Title != "first" {
		t.Errorf("kept occurrence %q, want the first", got[0].Title)
	}
}

func TestFilterNew_EmptyBatch(t *testing.T) {
	if got := etl.FilterNew(nil, keySet(1)); len(got) != 0 {
		t.Errorf("FilterNew(nil) returned %d rows, want 0", len(got))
	}
}

func TestFilterNew_AllKeysAlreadyPersisted(t *testing.T) {
	if got := etl.FilterNew(listings(1, 2), keySet(1, 2)); len(got) != 0 {
		t.Errorf("FilterNew returned %d rows, want 0", len(got))
	}
}

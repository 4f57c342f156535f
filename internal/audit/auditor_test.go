package audit_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ManuelJua/jobs-scraper/internal/audit"
	"github.com/ManuelJua/jobs-scraper/internal/model"
)

type memStore struct {
	mu          sync.Mutex
	refs        []model.ListingRef
	deactivated map[int64]bool
}

func newMemStore(refs ...model.ListingRef) *memStore {
	return &memStore{refs: refs, deactivated: make(map[int64]bool)}
}

func (s *memStore) ActiveListings(context.Context) ([]model.ListingRef, error) {
	return s.refs, nil
}

func (s *memStore) Deactivate(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deactivated[id] = true
	return nil
}

func TestSweep_DeactivatesOnlyConfirmedRemovals(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/removed":
			fmt.Fprint(w, "<html>The following job is no longer available</html>")
		case "/gone":
			w.WriteHeader(http.StatusNotFound)
		default:
			fmt.Fprint(w, "<html>Apply now</html>")
		}
	}))
	defer srv.Close()

	store := newMemStore(
		model.ListingRef{ID: 1, URL: srv.URL + "/live"},
		model.ListingRef{ID: 2, URL: srv.URL + "/removed"},
		model.ListingRef{ID: 3, URL: srv.URL + "/gone"},
	)

	auditor := audit.NewAuditor(store, 4, 2*time.Second)
	summary, err := auditor.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}

	if !store.deactivated[2] {
		t.Error("listing 2 returned the removal marker but was not deactivated")
	}
	if store.deactivated[1] {
		t.Error("listing 1 is still live but was deactivated")
	}
	if store.deactivated[3] {
		t.Error("listing 3 was ambiguous (404) but was deactivated — fail-open violated")
	}

	if summary.Checked != 3 || summary.Removed != 1 || summary.Ambiguous != 1 {
		t.Errorf("summary = %+v, want checked=3 removed=1 ambiguous=1", summary)
	}
}

func TestSweep_TimeoutFailsOpen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		fmt.Fprint(w, "The following job is no longer available")
	}))
	defer srv.Close()

	store := newMemStore(model.ListingRef{ID: 7, URL: srv.URL})

	// Per-request timeout far below the server's delay.
	auditor := audit.NewAuditor(store, 1, 20*time.Millisecond)
	summary, err := auditor.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}

	if store.deactivated[7] {
		t.Error("timed-out check deactivated a listing — fail-open violated")
	}
	if summary.Ambiguous != 1 {
		t.Errorf("summary = %+v, want ambiguous=1", summary)
	}
}

func TestSweep_ExpiredBudgetLeavesListingsUnvisited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	}))
	defer srv.Close()

	store := newMemStore(
		model.ListingRef{ID: 1, URL: srv.URL},
		model.ListingRef{ID: 2, URL: srv.URL},
		model.ListingRef{ID: 3, URL: srv.URL},
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // sweep budget already spent

	auditor := audit.NewAuditor(store, 2, time.Second)
	summary, err := auditor.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}

	if summary.Unvisited != 3 {
		t.Errorf("summary = %+v, want all 3 listings unvisited", summary)
	}
	if len(store.deactivated) != 0 {
		t.Errorf("expired sweep mutated the store: %v", store.deactivated)
	}
}

func TestSweep_EmptyStoreIsNoop(t *testing.T) {
	auditor := audit.NewAuditor(newMemStore(), 4, time.Second)
	summary, err := auditor.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if summary != (audit.Summary{}) {
		t.Errorf("summary = %+v, want zero", summary)
	}
}

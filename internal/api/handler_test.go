package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ManuelJua/jobs-scraper/internal/model"
)

type mockStore struct {
	listings []model.Listing
	located  []model.LocatedJob
	stats    model.JobStats

	gotKeyword   string
	gotMinSalary int64
}

func (m *mockStore) SearchJobs(_ context.Context, keyword string, minSalary int64) ([]model.Listing, error) {
	m.gotKeyword = keyword
	m.gotMinSalary = minSalary
	return m.listings, nil
}

func (m *mockStore) LocatedJobs(context.Context) ([]model.LocatedJob, error) {
	return m.located, nil
}

func (m *mockStore) Stats(context.Context) (model.JobStats, error) {
	return m.stats, nil
}

func newTestRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(store, nil).Register(r)
	return r
}

func TestSearchJobs(t *testing.T) {
	salary := int64(52000)
	store := &mockStore{listings: []model.Listing{
		{ID: 1, Title: "Data Engineer", Salary: &salary, IsActive: true},
	}}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/jobs?keyword=engineer&min_salary=50000", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if store.gotKeyword != "engineer" || store.gotMinSalary != 50000 {
		t.Errorf("store received (%q, %d), want (engineer, 50000)", store.gotKeyword, store.gotMinSalary)
	}

	var got []model.Listing
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("response = %+v", got)
	}
	if got[0].Salary == nil || *got[0].Salary != 52000 {
		t.Errorf("salary = %v, want 52000", got[0].Salary)
	}
}

func TestSearchJobs_BadMinSalary(t *testing.T) {
	r := newTestRouter(&mockStore{})

	for _, q := range []string{"min_salary=abc", "min_salary=-5"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/jobs?"+q, nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, w.Code)
		}
	}
}

func TestSearchJobs_EmptyResultIsEmptyArray(t *testing.T) {
	r := newTestRouter(&mockStore{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/jobs", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := w.Body.String(); body != "[]" {
		t.Errorf("body = %q, want empty JSON array", body)
	}
}

func TestMapJobs(t *testing.T) {
	store := &mockStore{located: []model.LocatedJob{
		{ID: 9, Title: "Analyst", Location: "Leeds", Latitude: 53.80076, Longitude: -1.54908},
	}}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/jobs/map", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var got []model.LocatedJob
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(got) != 1 || got[0].Latitude != 53.80076 {
		t.Errorf("response = %+v", got)
	}
}

func TestStats(t *testing.T) {
	store := &mockStore{stats: model.JobStats{Total: 10, Active: 7, Located: 4}}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/stats", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var got model.JobStats
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got != store.stats {
		t.Errorf("stats = %+v, want %+v", got, store.stats)
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&mockStore{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

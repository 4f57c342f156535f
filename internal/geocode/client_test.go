package geocode

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(srvURL string) *Client {
	return &Client{baseURL: srvURL, client: &http.Client{Timeout: time.Second}}
}

func TestLookup_ParsesAndRoundsCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Manchester" {
			t.Errorf("q = %q, want Manchester", got)
		}
		if got := r.Header.Get("User-Agent"); got != "jobs-scraper" {
			t.Errorf("User-Agent = %q", got)
		}
		fmt.Fprint(w, `[{"lat":"53.4807593","lon":"-2.2426305"}]`)
	}))
	defer srv.Close()

	lat, lon, ok, err := testClient(srv.URL).Lookup(context.Background(), "Manchester")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !ok {
		t.Fatal("ok = false, want true")
	}
	if lat != 53.48076 || lon != -2.24263 {
		t.Errorf("(%v, %v), want coordinates rounded to 5 decimal places", lat, lon)
	}
}

func TestLookup_NoMatchIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	_, _, ok, err := testClient(srv.URL).Lookup(context.Background(), "Remote / Hybrid (UK)")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if ok {
		t.Error("ok = true for an empty result set")
	}
}

func TestLookup_UpstreamErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	if _, _, _, err := testClient(srv.URL).Lookup(context.Background(), "Leeds"); err == nil {
		t.Error("expected error for 429 response")
	}
}

func TestRound5(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{53.4807593, 53.48076},
		{-2.2426305, -2.24263},
		{0, 0},
		{51.5, 51.5},
	}
	for _, c := range cases {
		if got := Round5(c.in); got != c.want {
			t.Errorf("Round5(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

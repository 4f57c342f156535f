package scheduler_test

import (
	"testing"

	"github.com/ManuelJua/jobs-scraper/internal/scheduler"
)

func TestSpec(t *testing.T) {
	cases := []struct {
		hours int
		want  string
	}{
		{1, "@every 1h"},
		{6, "@every 6h"},
		{24, "@every 24h"},
		{0, "@every 1h"},  // clamped
		{-3, "@every 1h"}, // clamped
	}

	for _, c := range cases {
		if got := scheduler.Spec(c.hours); got != c.want {
			t.Errorf("Spec(%d) = %q, want %q", c.hours, got, c.want)
		}
	}
}

// Package model defines shared data structures for the jobs pipeline.
package model

import "time"

// StagedRow is one listing as it appears in a staged batch file, before
// normalisation. Numeric fields are nullable — the feed frequently omits
// salary bounds and application counts, and an absent value must stay
// absent (never 0, never a sentinel).
type StagedRow struct {
	ID              int64
	Title           string
	Location        string
	MinimumSalary   *float64
	MaximumSalary   *float64
	Currency        string
	URL             string
	PublicationDate string // raw dd/mm/yyyy text, parsed by the normalizer
	ExpirationDate  string // raw dd/mm/yyyy text, parsed by the normalizer
	Description     string
	EmployerName    string
	Applications    *float64
}

// Listing is the canonical row shape of the jobs table. The id is assigned
// by the upstream provider and is immutable once persisted; content fields
// are write-once at insert time. Only IsActive ever changes, and only from
// true to false.
type Listing struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Location        string    `json:"location"`
	Salary          *int64    `json:"salary"`
	URL             string    `json:"url"`
	PublicationDate time.Time `json:"publicationDate"`
	ExpirationDate  time.Time `json:"expirationDate"`
	Description     string    `json:"description"`
	EmployerName    string    `json:"employerName"`
	Applications    *int64    `json:"applications"`
	IsActive        bool      `json:"isActive"`
}

// ListingRef is the minimal projection the availability auditor works on.
type ListingRef struct {
	ID  int64
	URL string
}

// Coordinate is one geocoded location. The location text is free-form as
// supplied by the feed, so the join from listings is best-effort: variants
// of the same real-world place resolve to separate rows or to nothing.
// Latitude and longitude are rounded to 5 decimal places and never updated
// once set.
type Coordinate struct {
	Location  string  `json:"location"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocatedJob is a listing joined to its resolved coordinate, as served to
// the map view. Listings whose location text did not resolve are absent.
type LocatedJob struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Location  string  `json:"location"`
	Salary    *int64  `json:"salary"`
	URL       string  `json:"url"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// JobStats summarises the persisted listing set for the dashboard.
type JobStats struct {
	Total   int64 `json:"total"`
	Active  int64 `json:"active"`
	Located int64 `json:"located"`
}

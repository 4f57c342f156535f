package etl

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ManuelJua/jobs-scraper/internal/model"
)

// DateLayout is the fixed day/month/year format the feed uses for both
// publication and expiration dates. Anything else is a ShapeError — a
// date like "2024-12-31" must be rejected, not coerced to null.
const DateLayout = "02/01/2006"

// NormalizeBatch converts staged rows into canonical listings.
//
// Salary policy: the feed supplies a salary range; the normalised salary
// is the mean of whichever bounds are present, rounded half away from
// zero to a whole unit. Rounding is explicit — fractional means are
// expected by construction and must never be silently truncated. Both
// bounds absent leaves salary nil.
//
// Application counts must round-trip exactly: a fractional value is a
// ShapeError, an absent value stays nil. No field ever uses a numeric
// sentinel for absence.
func NormalizeBatch(rows []model.StagedRow) ([]model.Listing, error) {
	listings := make([]model.Listing, 0, len(rows))

	for _, r := range rows {
		pub, err := parseDate(r.ID, "publication_date", r.PublicationDate)
		if err != nil {
			return nil, err
		}
		exp, err := parseDate(r.ID, "expiration_date", r.ExpirationDate)
		if err != nil {
			return nil, err
		}

		apps, err := exactInt(r.ID, "applications", r.Applications)
		if err != nil {
			return nil, err
		}

		listings = append(listings, model.Listing{
			ID:              r.ID,
			Title:           r.Title,
			Location:        r.Location,
			Salary:          meanSalary(r.MinimumSalary, r.MaximumSalary),
			URL:             r.URL,
			PublicationDate: pub,
			ExpirationDate:  exp,
			Description:     r.Description,
			EmployerName:    r.EmployerName,
			Applications:    apps,
			IsActive:        true,
		})
	}

	return listings, nil
}

func parseDate(key int64, field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, &ShapeError{Key: key, Field: field, Value: value, Err: err}
	}
	return t, nil
}

// exactInt coerces a nullable float to a nullable integer, rejecting
// fractional values outright.
func exactInt(key int64, field string, v *float64) (*int64, error) {
	if v == nil {
		return nil, nil
	}
	if *v != math.Trunc(*v) {
		return nil, &ShapeError{
			Key:   key,
			Field: field,
			Value: fmt.Sprintf("%v", *v),
			Err:   errors.New("not a whole number"),
		}
	}
	n := int64(*v)
	return &n, nil
}

// meanSalary averages the salary bounds that are present and rounds half
// away from zero.
func meanSalary(lo, hi *float64) *int64 {
	var sum float64
	var n int
	if lo != nil {
		sum += *lo
		n++
	}
	if hi != nil {
		sum += *hi
		n++
	}
	if n == 0 {
		return nil
	}
	s := int64(math.Round(sum / float64(n)))
	return &s
}

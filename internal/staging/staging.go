// Package staging persists a freshly scraped batch as a flat CSV snapshot
// between the scrape and load steps. A batch is consumed once by the
// loader and then deleted.
package staging

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ManuelJua/jobs-scraper/internal/model"
)

// ErrNoBatch is returned by Discover when no staged batch is waiting.
var ErrNoBatch = errors.New("no staged batch found")

const filePrefix = "jobs_"

var header = []string{
	"id", "job_title", "location", "minimum_salary", "maximum_salary",
	"currency", "job_url", "publication_date", "expiration_date",
	"description", "employer_name", "applications",
}

// Write stages rows as jobs_<date>.csv in dir and returns the file path.
// An existing snapshot for the same day is overwritten.
func Write(dir string, rows []model.StagedRow) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s%s.csv", filePrefix, time.Now().Format("2006-01-02")))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create staging file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	w.Write(header)
	for _, r := range rows {
		w.Write([]string{
			strconv.FormatInt(r.ID, 10),
			r.Title,
			r.Location,
			formatNullable(r.MinimumSalary),
			formatNullable(r.MaximumSalary),
			r.Currency,
			r.URL,
			r.PublicationDate,
			r.ExpirationDate,
			r.Description,
			r.EmployerName,
			formatNullable(r.Applications),
		})
	}

	if err := w.Error(); err != nil {
		return "", fmt.Errorf("write staging file: %w", err)
	}
	return path, nil
}

// Discover locates the single staged batch in dir. Zero batches is the
// normal nothing-to-do case (ErrNoBatch); more than one means a previous
// load did not finish cleanly and needs manual attention.
func Discover(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, filePrefix+"*.csv"))
	if err != nil {
		return "", fmt.Errorf("scan staging dir: %w", err)
	}

	switch len(matches) {
	case 0:
		return "", ErrNoBatch
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("found %d staged batches in %s, expected one", len(matches), dir)
	}
}

// Read parses a staged batch file. Empty numeric cells become nil — an
// absent value must never turn into a zero.
func Read(path string) ([]model.StagedRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open staged batch: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read staged batch: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("staged batch %s is empty", path)
	}

	rows := make([]model.StagedRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != len(header) {
			return nil, fmt.Errorf("staged batch %s row %d: %d columns, want %d", path, i+1, len(rec), len(header))
		}

		id, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("staged batch %s row %d: bad id %q: %w", path, i+1, rec[0], err)
		}

		minSal, err := parseNullable(rec[3])
		if err != nil {
			return nil, fmt.Errorf("staged batch %s row %d: bad minimum_salary: %w", path, i+1, err)
		}
		maxSal, err := parseNullable(rec[4])
		if err != nil {
			return nil, fmt.Errorf("staged batch %s row %d: bad maximum_salary: %w", path, i+1, err)
		}
		apps, err := parseNullable(rec[11])
		if err != nil {
			return nil, fmt.Errorf("staged batch %s row %d: bad applications: %w", path, i+1, err)
		}

		rows = append(rows, model.StagedRow{
			ID:              id,
			Title:           rec[1],
			Location:        rec[2],
			MinimumSalary:   minSal,
			MaximumSalary:   maxSal,
			Currency:        rec[5],
			URL:             rec[6],
			PublicationDate: rec[7],
			ExpirationDate:  rec[8],
			Description:     rec[9],
			EmployerName:    rec[10],
			Applications:    apps,
		})
	}

	return rows, nil
}

// Remove deletes a consumed batch.
func Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove staged batch: %w", err)
	}
	return nil
}

func formatNullable(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func parseNullable(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

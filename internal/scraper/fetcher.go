// Package scraper implements keyword search against the Reed jobs API and
// hands the raw results to the staging layer.
package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ManuelJua/jobs-scraper/internal/model"
)

const (
	reedBaseURL  = "https://www.reed.co.uk/api/1.0/search"
	reedPageSize = 100
	httpTimeout  = 15 * time.Second
)

// Fetcher fetches job listings from the Reed public API. If APIKey is
// empty, Search returns (nil, nil) gracefully — the run simply stages
// nothing and logs a warning.
type Fetcher struct {
	APIKey  string
	baseURL string
	client  *http.Client
}

// NewFetcher constructs a Fetcher with a shared HTTP client.
func NewFetcher(apiKey string) *Fetcher {
	return &Fetcher{
		APIKey:  apiKey,
		baseURL: reedBaseURL,
		client:  &http.Client{Timeout: httpTimeout},
	}
}

// searchResponse mirrors the top-level Reed JSON response.
type searchResponse struct {
	Results      []searchResult `json:"results"`
	TotalResults int            `json:"totalResults"`
}

// searchResult mirrors a single Reed job listing. Salary bounds and
// application counts are frequently null.
type searchResult struct {
	JobID          int64    `json:"jobId"`
	EmployerName   string   `json:"employerName"`
	JobTitle       string   `json:"jobTitle"`
	LocationName   string   `json:"locationName"`
	MinimumSalary  *float64 `json:"minimumSalary"`
	MaximumSalary  *float64 `json:"maximumSalary"`
	Currency       string   `json:"currency"`
	ExpirationDate string   `json:"expirationDate"`
	Date           string   `json:"date"`
	JobDescription string   `json:"jobDescription"`
	Applications   *float64 `json:"applications"`
	JobURL         string   `json:"jobUrl"`
}

// Search retrieves every listing matching a keyword, stepping resultsToSkip
// by the page size until totalResults is exhausted. Returns nil without
// error when credentials are missing.
func (f *Fetcher) Search(ctx context.Context, keyword string) ([]model.StagedRow, error) {
	if f.APIKey == "" {
		log.Println("[scraper] REED_API_KEY not set — skipping search")
		return nil, nil
	}

	var rows []model.StagedRow

	for skip := 0; ; skip += reedPageSize {
		page, total, err := f.fetchPage(ctx, keyword, skip)
		if err != nil {
			return rows, fmt.Errorf("keyword %q skip %d: %w", keyword, skip, err)
		}
		if len(page) == 0 {
			break
		}
		rows = append(rows, page...)
		if skip+reedPageSize >= total {
			break
		}
	}

	return rows, nil
}

func (f *Fetcher) fetchPage(ctx context.Context, keyword string, skip int) ([]model.StagedRow, int, error) {
	params := url.Values{}
	params.Set("keywords", keyword)
	params.Set("resultsToSkip", strconv.Itoa(skip))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, 0, err
	}
	req.SetBasicAuth(f.APIKey, "")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("reed returned %d: %s", resp.StatusCode, string(body))
	}

	var apiResp searchResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, 0, fmt.Errorf("json unmarshal: %w", err)
	}

	rows := make([]model.StagedRow, 0, len(apiResp.Results))
	for _, r := range apiResp.Results {
		rows = append(rows, model.StagedRow{
			ID:              r.JobID,
			Title:           r.JobTitle,
			Location:        r.LocationName,
			MinimumSalary:   r.MinimumSalary,
			MaximumSalary:   r.MaximumSalary,
			Currency:        r.Currency,
			URL:             r.JobURL,
			PublicationDate: r.Date,
			ExpirationDate:  r.ExpirationDate,
			Description:     r.JobDescription,
			EmployerName:    r.EmployerName,
			Applications:    r.Applications,
		})
	}

	return rows, apiResp.TotalResults, nil
}

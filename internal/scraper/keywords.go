package scraper

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// LoadKeywords reads the search keywords CSV. The file has a single
// "keywords" column with one search term per row.
func LoadKeywords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open keywords file: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read keywords file: %w", err)
	}
	if len(records) == 0 || strings.TrimSpace(records[0][0]) != "keywords" {
		return nil, fmt.Errorf("keywords file %s: expected a 'keywords' header column", path)
	}

	var keywords []string
	for _, rec := range records[1:] {
		kw := strings.TrimSpace(rec[0])
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}

	if len(keywords) == 0 {
		return nil, fmt.Errorf("keywords file %s: no keywords", path)
	}
	return keywords, nil
}

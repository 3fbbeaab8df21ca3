// Package gsc parses search console performance exports. The audit task
// consumes the two standard CSV downloads: top pages and top queries.
package gsc

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// PageStats is one row of the pages export.
type PageStats struct {
	URL         string
	Clicks      int
	Impressions int
	// CTR is the click-through rate as a fraction (0.034 for "3.4%").
	CTR      float64
	Position float64
}

// QueryStats is one row of the queries export.
type QueryStats struct {
	Query       string
	Clicks      int
	Impressions int
	CTR         float64
	Position    float64
}

// LoadPages reads a pages export CSV from path.
func LoadPages(path string) ([]PageStats, error) {
	rows, err := loadRows(path)
	if err != nil {
		return nil, err
	}

	pages := make([]PageStats, 0, len(rows))
	for i, row := range rows {
		p := PageStats{URL: row[0]}
		if p.Clicks, p.Impressions, p.CTR, p.Position, err = parseMetrics(row); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		pages = append(pages, p)
	}
	return pages, nil
}

// LoadQueries reads a queries export CSV from path.
func LoadQueries(path string) ([]QueryStats, error) {
	rows, err := loadRows(path)
	if err != nil {
		return nil, err
	}

	queries := make([]QueryStats, 0, len(rows))
	for i, row := range rows {
		q := QueryStats{Query: row[0]}
		if q.Clicks, q.Impressions, q.CTR, q.Position, err = parseMetrics(row); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		queries = append(queries, q)
	}
	return queries, nil
}

// loadRows reads all data rows, skipping the header.
func loadRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 5

	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read export header: %w", err)
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read export rows: %w", err)
	}
	return rows, nil
}

func parseMetrics(row []string) (clicks, impressions int, ctr, position float64, err error) {
	if clicks, err = strconv.Atoi(strings.TrimSpace(row[1])); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("clicks: %w", err)
	}
	if impressions, err = strconv.Atoi(strings.TrimSpace(row[2])); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("impressions: %w", err)
	}
	if ctr, err = parsePercent(row[3]); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("ctr: %w", err)
	}
	if position, err = strconv.ParseFloat(strings.TrimSpace(row[4]), 64); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("position: %w", err)
	}
	return clicks, impressions, ctr, position, nil
}

// parsePercent converts "3.4%" to 0.034. A bare number is taken as already
// being a fraction.
func parsePercent(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, err
		}
		return v / 100, nil
	}
	return strconv.ParseFloat(s, 64)
}

package optimizer

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"contentforge/internal/domain/entity"
	"contentforge/internal/infra/store"
)

// OptimizationReport is the JSON summary of a catalog optimization run.
type OptimizationReport struct {
	GeneratedAt            time.Time            `json:"generated_at"`
	TotalProductsOptimized int                  `json:"total_products_optimized"`
	Summary                OptimizationSummary  `json:"summary"`
	Optimizations          []OptimizationRecord `json:"optimizations"`
}

// OptimizationSummary aggregates a run's outcomes.
type OptimizationSummary struct {
	AvgScore                   float64 `json:"avg_score"`
	ProductsWithTitleChanges   int     `json:"products_with_title_changes"`
	ProductsWithNewDescription int     `json:"products_with_new_descriptions"`
}

// OptimizationRecord is one product's entry in the report.
type OptimizationRecord struct {
	Handle          string   `json:"handle"`
	OriginalTitle   string   `json:"original_title"`
	OptimizedTitle  string   `json:"optimized_title"`
	MetaDescription string   `json:"meta_description"`
	SuggestedTags   []string `json:"suggested_tags"`
	SEOScore        float64  `json:"seo_score"`
	Improvements    []string `json:"improvements"`
}

// BuildReport assembles the report document for a finished run.
func BuildReport(now time.Time, results []*entity.Optimization) OptimizationReport {
	report := OptimizationReport{
		GeneratedAt:            now,
		TotalProductsOptimized: len(results),
		Optimizations:          make([]OptimizationRecord, 0, len(results)),
	}

	totalScore := 0.0
	for _, r := range results {
		totalScore += r.OptimizedScore
		if r.OriginalTitle != r.OptimizedTitle {
			report.Summary.ProductsWithTitleChanges++
		}
		report.Optimizations = append(report.Optimizations, OptimizationRecord{
			Handle:          r.ProductHandle,
			OriginalTitle:   r.OriginalTitle,
			OptimizedTitle:  r.OptimizedTitle,
			MetaDescription: r.MetaDescription,
			SuggestedTags:   r.SuggestedTags,
			SEOScore:        r.OptimizedScore,
			Improvements:    r.ImprovementNotes,
		})
	}
	if len(results) > 0 {
		report.Summary.AvgScore = totalScore / float64(len(results))
	}
	report.Summary.ProductsWithNewDescription = len(results)

	return report
}

// SaveReport writes the optimization report and returns its path.
func (s *Service) SaveReport(reports *store.ReportStore, results []*entity.Optimization) (string, error) {
	return reports.SaveJSON("product_optimization", BuildReport(s.now(), results))
}

// WriteImportCSV writes optimizations in the storefront's bulk import
// format so they can be applied to the live catalog.
func WriteImportCSV(results []*entity.Optimization, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create import file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	header := []string{"Handle", "Title", "Body (HTML)", "SEO Title", "SEO Description", "Tags", "Published"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write import header: %w", err)
	}

	for _, r := range results {
		record := []string{
			r.ProductHandle,
			r.OptimizedTitle,
			r.OptimizedDescription,
			r.OptimizedTitle,
			r.MetaDescription,
			strings.Join(r.SuggestedTags, ", "),
			"TRUE",
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write import row for %s: %w", r.ProductHandle, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush import file: %w", err)
	}
	return nil
}

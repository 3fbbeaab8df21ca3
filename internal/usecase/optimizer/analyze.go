package optimizer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"contentforge/internal/domain/entity"
	"contentforge/internal/utils/text"
)

// Listing quality thresholds. Search results truncate titles around 60-70
// characters and thin descriptions rank poorly.
const (
	minTitleLength       = 30
	maxTitleLength       = 80
	minDescriptionLength = 300
	minTagCount          = 5
	minImageCount        = 3
)

// AnalyzeListing scores a product listing from 100 down, deducting for each
// quality issue it finds. The score floors at zero.
func (s *Service) AnalyzeListing(product *entity.Product) entity.ListingAnalysis {
	analysis := entity.ListingAnalysis{
		Score:             100,
		TitleLength:       text.CountRunes(product.Title),
		DescriptionLength: text.CountRunes(product.Description),
		TagCount:          len(product.Tags),
		ImageCount:        len(product.Images),
	}

	deduct := func(points float64, issue string) {
		analysis.Score -= points
		analysis.Issues = append(analysis.Issues, issue)
	}

	if analysis.TitleLength < minTitleLength {
		deduct(15, "Title too short - should be 60-70 characters")
	} else if analysis.TitleLength > maxTitleLength {
		deduct(10, "Title too long - will be truncated in search results")
	}

	if !s.titleHasCategoryKeyword(product.Title) {
		deduct(20, "Title missing primary keyword")
	}

	if analysis.DescriptionLength < minDescriptionLength {
		deduct(15, "Description too short - should be at least 300 characters")
	}
	if !hasHTMLFormatting(product.Description) {
		deduct(5, "Description lacks HTML formatting")
	}

	if analysis.TagCount < minTagCount {
		deduct(10, "Too few product tags - add more for better discovery")
	}
	if product.Price <= 0 {
		deduct(20, "Invalid price")
	}
	if analysis.ImageCount < minImageCount {
		deduct(10, "Need at least 3 product images")
	}

	if analysis.Score < 0 {
		analysis.Score = 0
	}
	return analysis
}

func (s *Service) titleHasCategoryKeyword(title string) bool {
	lower := strings.ToLower(title)
	for _, category := range s.brand.Categories {
		if strings.Contains(lower, strings.ToLower(category)) {
			return true
		}
	}
	return false
}

// hasHTMLFormatting reports whether the description contains block-level
// HTML elements rather than bare text.
func hasHTMLFormatting(description string) bool {
	if description == "" {
		return false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(description))
	if err != nil {
		return false
	}
	return doc.Find("p, div").Length() > 0
}

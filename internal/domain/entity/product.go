package entity

import "time"

// Product is a storefront product listing as exported by the commerce
// platform's CSV format.
type Product struct {
	Handle      string
	Title       string
	Description string
	Vendor      string
	ProductType string
	Tags        []string
	Price       float64
	SKU         string
	Images      []string
}

// ListingAnalysis is the heuristic quality assessment of a product listing.
type ListingAnalysis struct {
	Score             float64
	Issues            []string
	TitleLength       int
	DescriptionLength int
	TagCount          int
	ImageCount        int
}

// Optimization records the before/after state of an optimized listing.
type Optimization struct {
	ProductHandle        string
	OriginalTitle        string
	OptimizedTitle       string
	OriginalDescription  string
	OptimizedDescription string
	MetaDescription      string
	SuggestedTags        []string
	OriginalScore        float64
	OptimizedScore       float64
	ImprovementNotes     []string
	CreatedAt            time.Time
}

package seo

import (
	"strings"

	"contentforge/internal/domain/entity"
)

// Heuristic metric estimation. Real volume and difficulty numbers require a
// paid SEO data provider; these estimates are deliberately cheap and only
// need to rank keywords against each other consistently.

var transactionalWords = []string{"buy", "purchase", "order", "deal", "discount", "shop", "price"}

var commercialWords = []string{"best", "review", "compare", "vs", "top", "alternative"}

var kitchenTerms = []string{
	"kitchen", "cooking", "chef", "culinary", "food prep",
	"cutting", "chopping", "slicing", "dicing", "meal prep",
	"storage", "organize", "utensil", "tool",
}

var qualityTerms = []string{"premium", "professional", "quality", "durable", "sharp"}

// cpcByIntent estimates cost per click in USD. Buying intent commands the
// highest ad prices.
var cpcByIntent = map[entity.Intent]float64{
	entity.IntentTransactional: 2.50,
	entity.IntentCommercial:    1.80,
	entity.IntentNavigational:  1.20,
	entity.IntentInformational: 0.50,
}

// keywordFromQuery builds a keyword with estimated metrics for a related
// search query.
func (s *Service) keywordFromQuery(query string) entity.Keyword {
	intent := s.classifyIntent(query)
	return entity.Keyword{
		Term:         query,
		SearchVolume: estimateVolume(query),
		Difficulty:   estimateDifficulty(query),
		CPC:          cpcByIntent[intent],
		Intent:       intent,
		Relevance:    s.scoreRelevance(query),
	}
}

// classifyIntent sorts a query into a search intent bucket. Transactional
// indicators win over commercial ones; a brand or category mention without
// either marks a navigational query.
func (s *Service) classifyIntent(query string) entity.Intent {
	q := strings.ToLower(query)

	for _, word := range transactionalWords {
		if strings.Contains(q, word) {
			return entity.IntentTransactional
		}
	}
	for _, word := range commercialWords {
		if strings.Contains(q, word) {
			return entity.IntentCommercial
		}
	}
	if strings.Contains(q, strings.ToLower(s.brand.Name)) {
		return entity.IntentNavigational
	}
	for _, category := range s.brand.Categories {
		if strings.Contains(q, strings.ToLower(category)) {
			return entity.IntentNavigational
		}
	}
	return entity.IntentInformational
}

// scoreRelevance scores how relevant a query is to the brand's catalog,
// 0 to 1. Category matches weigh most, generic kitchen terms less, quality
// adjectives least.
func (s *Service) scoreRelevance(query string) float64 {
	q := strings.ToLower(query)
	score := 0.0

	for _, category := range s.brand.Categories {
		if strings.Contains(q, strings.ToLower(category)) {
			score += 0.3
		}
	}
	for _, term := range kitchenTerms {
		if strings.Contains(q, term) {
			score += 0.1
		}
	}
	for _, term := range qualityTerms {
		if strings.Contains(q, term) {
			score += 0.05
		}
	}

	return min(score, 1.0)
}

// estimateVolume estimates monthly search volume. Shorter queries are
// searched more.
func estimateVolume(query string) int {
	const baseVolume = 1000

	multiplier := 0.8
	switch words := len(strings.Fields(query)); {
	case words <= 2:
		multiplier = 3.0
	case words <= 4:
		multiplier = 1.5
	}
	return int(baseVolume * multiplier)
}

// estimateDifficulty estimates ranking difficulty on a 0-100 scale.
// Long-tail keywords are generally easier.
func estimateDifficulty(query string) float64 {
	words := len(strings.Fields(query))
	if words >= 4 {
		return 25.0 + 10*float64(words-4)
	}
	return 60.0 - 10*float64(words)
}

package seo

import (
	"fmt"
	"sort"
	"strings"

	"contentforge/internal/domain/entity"
)

// defaultMaxClusters caps how many topic clusters a research run keeps.
const defaultMaxClusters = 20

// ClusterKeywords groups keywords into topic clusters keyed by their first
// two words. Singleton topics are dropped. Clusters come back sorted by
// total volume descending, capped at maxClusters (<= 0 means the default).
func ClusterKeywords(keywords []entity.Keyword, maxClusters int) []entity.KeywordCluster {
	if maxClusters <= 0 {
		maxClusters = defaultMaxClusters
	}

	grouped := make(map[string][]entity.Keyword)
	var topics []string

	for _, kw := range keywords {
		topic := topicOf(kw.Term)
		if _, seen := grouped[topic]; !seen {
			topics = append(topics, topic)
		}
		grouped[topic] = append(grouped[topic], kw)
	}

	clusters := make([]entity.KeywordCluster, 0, len(topics))
	for _, topic := range topics {
		members := grouped[topic]
		if len(members) < 2 {
			continue
		}

		sorted := make([]entity.Keyword, len(members))
		copy(sorted, members)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].SearchVolume > sorted[j].SearchVolume
		})

		totalVolume := 0
		totalDifficulty := 0.0
		for _, kw := range members {
			totalVolume += kw.SearchVolume
			totalDifficulty += kw.Difficulty
		}

		clusters = append(clusters, entity.KeywordCluster{
			Topic:         topic,
			Primary:       sorted[0],
			Secondary:     sorted[1:],
			TotalVolume:   totalVolume,
			AvgDifficulty: totalDifficulty / float64(len(members)),
			Opportunities: contentOpportunities(topic, members),
		})
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].TotalVolume > clusters[j].TotalVolume
	})
	if len(clusters) > maxClusters {
		clusters = clusters[:maxClusters]
	}
	return clusters
}

// topicOf extracts the cluster topic from a keyword term: its first two
// words, or the whole term when shorter.
func topicOf(term string) string {
	words := strings.Fields(term)
	if len(words) < 2 {
		return term
	}
	return strings.Join(words[:2], " ")
}

// contentOpportunities derives content ideas from the intents present in a
// cluster.
func contentOpportunities(topic string, keywords []entity.Keyword) []string {
	present := make(map[entity.Intent]bool, len(keywords))
	for _, kw := range keywords {
		present[kw.Intent] = true
	}

	var opportunities []string
	if present[entity.IntentInformational] {
		opportunities = append(opportunities,
			fmt.Sprintf("Blog post: Complete guide to %s", topic),
			fmt.Sprintf("How-to article: %s for beginners", topic))
	}
	if present[entity.IntentCommercial] {
		opportunities = append(opportunities,
			fmt.Sprintf("Comparison guide: Best %s", topic),
			fmt.Sprintf("Buyer's guide: Choosing %s", topic))
	}
	if present[entity.IntentTransactional] {
		opportunities = append(opportunities,
			fmt.Sprintf("Product page optimization for %s", topic),
			fmt.Sprintf("Landing page: Buy %s", topic))
	}
	return opportunities
}

// targetPiecesPerMonth is the planned publishing cadence the calendar
// schedules toward.
const targetPiecesPerMonth = 75

// trafficCaptureRate estimates what share of a cluster's search volume a
// well-ranked piece captures.
const trafficCaptureRate = 0.15

// GenerateCalendar plans content production across the given number of
// months, taking up to three opportunities per cluster at three pieces per
// week until the monthly target is filled.
func GenerateCalendar(clusters []entity.KeywordCluster, months int) []entity.CalendarEntry {
	if months <= 0 {
		months = 12
	}
	target := months * targetPiecesPerMonth

	var entries []entity.CalendarEntry
	for _, cluster := range clusters {
		opportunities := cluster.Opportunities
		if len(opportunities) > 3 {
			opportunities = opportunities[:3]
		}
		for _, opportunity := range opportunities {
			if len(entries) >= target {
				return entries
			}

			week := len(entries)/3 + 1
			priority := "Medium"
			if cluster.TotalVolume > 5000 {
				priority = "High"
			}

			entries = append(entries, entity.CalendarEntry{
				Week:             week,
				Month:            week/4 + 1,
				TopicCluster:     cluster.Topic,
				PrimaryKeyword:   cluster.Primary.Term,
				SearchVolume:     cluster.Primary.SearchVolume,
				Difficulty:       cluster.Primary.Difficulty,
				ContentType:      opportunity,
				TargetIntent:     cluster.Primary.Intent,
				Priority:         priority,
				EstimatedTraffic: int(float64(cluster.TotalVolume) * trafficCaptureRate),
			})
		}
	}
	return entries
}

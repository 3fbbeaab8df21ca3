package entity

// Intent classifies what a searcher is trying to do with a query.
type Intent string

const (
	IntentInformational Intent = "informational"
	IntentCommercial    Intent = "commercial"
	IntentTransactional Intent = "transactional"
	IntentNavigational  Intent = "navigational"
)

// Keyword is a researched search term with estimated metrics.
type Keyword struct {
	Term         string
	SearchVolume int
	// Difficulty is the estimated ranking difficulty, 0-100.
	Difficulty float64
	// CPC is the estimated cost per click in USD.
	CPC    float64
	Intent Intent
	// Relevance scores how relevant the term is to the brand, 0-1.
	Relevance float64
}

// Priority weights a keyword by how much traffic it could realistically
// bring: relevance-weighted search volume.
func (k Keyword) Priority() float64 {
	return k.Relevance * float64(k.SearchVolume)
}

// KeywordCluster groups keywords that share a topic.
type KeywordCluster struct {
	Topic         string
	Primary       Keyword
	Secondary     []Keyword
	TotalVolume   int
	AvgDifficulty float64
	// Opportunities lists content ideas derived from the cluster's intents.
	Opportunities []string
}

// CalendarEntry is one planned piece in the content calendar.
type CalendarEntry struct {
	Week             int
	Month            int
	TopicCluster     string
	PrimaryKeyword   string
	SearchVolume     int
	Difficulty       float64
	ContentType      string
	TargetIntent     Intent
	Priority         string
	EstimatedTraffic int
}

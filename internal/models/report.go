package models

// RemovalMetrics attributes removed rows to each cleaning cause.
type RemovalMetrics struct {
	Duplicates     int `json:"duplicates_removed"`
	MissingValues  int `json:"missing_values_removed"`
	InvalidRatings int `json:"invalid_ratings_removed"`
	InvalidDates   int `json:"invalid_dates_removed"`
	LengthFiltered int `json:"length_filtered_removed"`
}

// Total returns the sum over all removal causes.
func (m RemovalMetrics) Total() int {
	return m.Duplicates + m.MissingValues + m.InvalidRatings + m.InvalidDates + m.LengthFiltered
}

// TextStats summarizes the cleaned text of the surviving dataset.
type TextStats struct {
	AvgReviewLength float64 `json:"avg_review_length"`
	AvgWordCount    float64 `json:"avg_word_count"`
	TotalWords      int     `json:"total_words"`
}

// QualityReport is the per-run dataset quality snapshot. It is derived
// from the pre- and post-pipeline tables and regenerated every run; it is
// never authoritative state.
type QualityReport struct {
	InitialReviews        int              `json:"initial_reviews"`
	FinalReviews          int              `json:"final_reviews"`
	ReviewsRemoved        int              `json:"reviews_removed"`
	RemovalRate           float64          `json:"removal_rate"`
	ReviewsPerBank        map[string]int   `json:"reviews_per_bank"`
	RatingDistribution    map[int]int      `json:"rating_distribution"`
	Metrics               RemovalMetrics   `json:"data_quality_metrics"`
	TextStats             TextStats        `json:"text_statistics"`
	SentimentDistribution map[Category]int `json:"sentiment_distribution,omitempty"`
	RequirementsMet       bool             `json:"requirements_met"`
	GeneratedAt           string           `json:"generated_at"`
}

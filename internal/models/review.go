// Package models defines data structures for the review processing pipeline.
package models

// Raw classifier labels as returned by the sentiment capability.
const (
	LabelPositive = "POSITIVE"
	LabelNegative = "NEGATIVE"
	LabelNeutral  = "NEUTRAL"
)

// Category is the bucketed sentiment after threshold application,
// distinct from the raw classifier label.
type Category string

// Sentiment categories.
const (
	CategoryPositive Category = "positive"
	CategoryNegative Category = "negative"
	CategoryNeutral  Category = "neutral"
)

// RawReview is a single scraped review exactly as it arrived. Field values
// are uncoerced strings; rating and date are validated and converted
// downstream.
type RawReview struct {
	ReviewID   string `json:"review_id"`
	ReviewText string `json:"review_text"`
	Rating     string `json:"rating"`
	Date       string `json:"date"`
	Bank       string `json:"bank"`
	Source     string `json:"source"`
	ThumbsUp   string `json:"thumbs_up"`
	AppVersion string `json:"app_version"`
}

// CleanedReview is a review that survived the cleaning stages. CleanedText
// contains no control characters or emoji and has collapsed whitespace.
// Date is in canonical YYYY-MM-DD form and Rating is in 1..5.
type CleanedReview struct {
	ReviewID     string `json:"review_id"`
	ReviewText   string `json:"review_text"`
	CleanedText  string `json:"cleaned_text"`
	Rating       int    `json:"rating"`
	Date         string `json:"date"`
	Bank         string `json:"bank"`
	Source       string `json:"source"`
	ThumbsUp     int    `json:"thumbs_up"`
	AppVersion   string `json:"app_version"`
	WordCount    int    `json:"word_count"`
	ReviewLength int    `json:"review_length"`
	ProcessedAt  string `json:"processing_timestamp"`
}

// SentimentResult is the classifier output plus the derived category,
// one per cleaned review.
type SentimentResult struct {
	Label      string   `json:"sentiment_label"`
	Confidence float64  `json:"sentiment_score"`
	Category   Category `json:"sentiment_category"`
}

// ScoredReview pairs a cleaned review with its sentiment result.
type ScoredReview struct {
	CleanedReview
	Sentiment SentimentResult `json:"sentiment"`
}

// ThemeAssignment records one review x matched-theme pair. A review may
// produce any number of assignments, including zero.
type ThemeAssignment struct {
	ReviewID        string   `json:"review_id"`
	Bank            string   `json:"bank"`
	Rating          int      `json:"rating"`
	Sentiment       Category `json:"sentiment_category"`
	Theme           string   `json:"theme"`
	MatchedKeywords []string `json:"matched_keywords"`
	Excerpt         string   `json:"review_text"`
}

// BankKeywords holds the diagnostic TF-IDF keywords extracted for one
// bank's review group. Informational only; theme assignment does not
// depend on these scores.
type BankKeywords struct {
	Bank     string    `json:"bank"`
	Keywords []Keyword `json:"keywords"`
}

// Keyword is a single TF-IDF ranked term.
type Keyword struct {
	Term  string  `json:"keyword"`
	Score float64 `json:"tfidf_score"`
}

// ThemeCount is one row of a theme summary table.
type ThemeCount struct {
	Bank      string   `json:"bank,omitempty"`
	Sentiment Category `json:"sentiment_category,omitempty"`
	Theme     string   `json:"theme"`
	Count     int      `json:"count"`
}

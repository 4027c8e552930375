package quality

import (
	"math"
	"testing"

	"reviewlens/internal/config"
	"reviewlens/internal/models"
)

func testReporter() *Reporter {
	cfg := config.DefaultConfig()

	return NewReporter(&cfg.Requirements, nil)
}

// buildDataset produces counts-per-bank worth of cleaned reviews.
func buildDataset(banks map[string]int) []models.CleanedReview {
	var out []models.CleanedReview

	for bank, n := range banks {
		for i := 0; i < n; i++ {
			out = append(out, models.CleanedReview{
				Bank:         bank,
				Rating:       (i % 5) + 1,
				ReviewLength: 40,
				WordCount:    8,
			})
		}
	}

	return out
}

func TestReporter_RequirementsMet(t *testing.T) {
	reviews := buildDataset(map[string]int{"CBE": 450, "BOA": 420, "DASHEN": 430})

	// 1300 survivors out of 1340 initial, about a 3% removal rate.
	metrics := models.RemovalMetrics{Duplicates: 25, MissingValues: 15}

	report := testReporter().Build(1340, metrics, reviews, nil)

	if !report.RequirementsMet {
		t.Errorf("Expected requirements met, report: initial=%d final=%d rate=%v",
			report.InitialReviews, report.FinalReviews, report.RemovalRate)
	}

	if report.FinalReviews != 1300 || report.ReviewsRemoved != 40 {
		t.Errorf("Unexpected counts: final=%d removed=%d", report.FinalReviews, report.ReviewsRemoved)
	}

	if math.Abs(report.RemovalRate-40.0/1340.0) > 1e-9 {
		t.Errorf("Unexpected removal rate: %v", report.RemovalRate)
	}
}

func TestReporter_RequirementsFailures(t *testing.T) {
	tests := []struct {
		name    string
		banks   map[string]int
		initial int
		metrics models.RemovalMetrics
	}{
		{
			name:    "bank below per-bank minimum",
			banks:   map[string]int{"CBE": 450, "BOA": 420, "DASHEN": 380},
			initial: 1290,
			metrics: models.RemovalMetrics{Duplicates: 40},
		},
		{
			name:    "total below minimum",
			banks:   map[string]int{"CBE": 400, "BOA": 400},
			initial: 820,
			metrics: models.RemovalMetrics{Duplicates: 20},
		},
		{
			name:    "removal rate too high",
			banks:   map[string]int{"CBE": 450, "BOA": 420, "DASHEN": 430},
			initial: 1500,
			metrics: models.RemovalMetrics{Duplicates: 100, MissingValues: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := testReporter().Build(tt.initial, tt.metrics, buildDataset(tt.banks), nil)

			if report.RequirementsMet {
				t.Errorf("Expected requirements not met: final=%d rate=%v per_bank=%v",
					report.FinalReviews, report.RemovalRate, report.ReviewsPerBank)
			}
		})
	}
}

func TestReporter_Distributions(t *testing.T) {
	reviews := []models.CleanedReview{
		{Bank: "CBE", Rating: 5, ReviewLength: 20, WordCount: 4},
		{Bank: "CBE", Rating: 5, ReviewLength: 40, WordCount: 8},
		{Bank: "BOA", Rating: 1, ReviewLength: 60, WordCount: 12},
	}

	sentiments := map[models.Category]int{
		models.CategoryPositive: 2,
		models.CategoryNegative: 1,
	}

	report := testReporter().Build(3, models.RemovalMetrics{}, reviews, sentiments)

	if report.ReviewsPerBank["CBE"] != 2 || report.ReviewsPerBank["BOA"] != 1 {
		t.Errorf("Unexpected per-bank counts: %v", report.ReviewsPerBank)
	}

	if report.RatingDistribution[5] != 2 || report.RatingDistribution[1] != 1 {
		t.Errorf("Unexpected rating distribution: %v", report.RatingDistribution)
	}

	if report.TextStats.AvgReviewLength != 40 || report.TextStats.AvgWordCount != 8 || report.TextStats.TotalWords != 24 {
		t.Errorf("Unexpected text stats: %+v", report.TextStats)
	}

	if report.SentimentDistribution[models.CategoryPositive] != 2 {
		t.Errorf("Sentiment distribution not carried: %v", report.SentimentDistribution)
	}

	if report.GeneratedAt == "" {
		t.Error("Expected generated_at timestamp")
	}
}

func TestReporter_EmptyDataset(t *testing.T) {
	report := testReporter().Build(0, models.RemovalMetrics{}, nil, nil)

	if report.RemovalRate != 0 {
		t.Errorf("Expected zero removal rate for empty input, got %v", report.RemovalRate)
	}

	if report.RequirementsMet {
		t.Error("Empty dataset cannot meet requirements")
	}

	if report.TextStats != (models.TextStats{}) {
		t.Errorf("Expected zero text stats, got %+v", report.TextStats)
	}
}

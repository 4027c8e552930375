// Package quality derives the per-run dataset quality report and checks
// it against the configured acceptance requirements.
package quality

import (
	"time"

	"reviewlens/internal/config"
	"reviewlens/internal/logger"
	"reviewlens/internal/models"
)

// Reporter builds quality reports from pipeline output. The report is a
// pure function of its inputs; nothing is persisted here.
type Reporter struct {
	cfg *config.RequirementsConfig
	log *logger.Logger
}

// NewReporter creates a reporter with the given acceptance requirements.
func NewReporter(cfg *config.RequirementsConfig, log *logger.Logger) *Reporter {
	return &Reporter{cfg: cfg, log: log}
}

// Build assembles a quality report. initial is the row count before any
// cleaning; reviews is the surviving dataset. sentiments may be nil when
// sentiment analysis has not run, in which case the distribution is
// omitted from the report.
func (r *Reporter) Build(initial int, metrics models.RemovalMetrics, reviews []models.CleanedReview, sentiments map[models.Category]int) models.QualityReport {
	report := models.QualityReport{
		InitialReviews:        initial,
		FinalReviews:          len(reviews),
		ReviewsRemoved:        metrics.Total(),
		ReviewsPerBank:        perBank(reviews),
		RatingDistribution:    ratingHistogram(reviews),
		Metrics:               metrics,
		TextStats:             textStats(reviews),
		SentimentDistribution: sentiments,
		GeneratedAt:           time.Now().UTC().Format(time.RFC3339),
	}

	if initial > 0 {
		report.RemovalRate = float64(report.ReviewsRemoved) / float64(initial)
	}

	report.RequirementsMet = r.requirementsMet(report)

	if r.log != nil {
		r.log.Info("Quality report generated",
			"initial", report.InitialReviews,
			"final", report.FinalReviews,
			"removal_rate", report.RemovalRate,
			"requirements_met", report.RequirementsMet)
	}

	return report
}

// requirementsMet checks the report against the acceptance thresholds:
// total volume, per-bank volume, and removal rate.
func (r *Reporter) requirementsMet(report models.QualityReport) bool {
	if report.FinalReviews < r.cfg.TotalMinReviews {
		r.warn("Total review count below requirement", "final", report.FinalReviews, "min", r.cfg.TotalMinReviews)
		return false
	}

	for bank, count := range report.ReviewsPerBank {
		if count < r.cfg.MinReviewsPerBank {
			r.warn("Bank review count below requirement", "bank", bank, "count", count, "min", r.cfg.MinReviewsPerBank)
			return false
		}
	}

	if report.RemovalRate > r.cfg.MaxErrorRate {
		r.warn("Removal rate above requirement", "rate", report.RemovalRate, "max", r.cfg.MaxErrorRate)
		return false
	}

	return true
}

func (r *Reporter) warn(msg string, args ...any) {
	if r.log != nil {
		r.log.Warn(msg, args...)
	}
}

func perBank(reviews []models.CleanedReview) map[string]int {
	counts := make(map[string]int)
	for _, rv := range reviews {
		counts[rv.Bank]++
	}

	return counts
}

func ratingHistogram(reviews []models.CleanedReview) map[int]int {
	counts := make(map[int]int)
	for _, rv := range reviews {
		counts[rv.Rating]++
	}

	return counts
}

func textStats(reviews []models.CleanedReview) models.TextStats {
	if len(reviews) == 0 {
		return models.TextStats{}
	}

	var totalLength, totalWords int

	for _, rv := range reviews {
		totalLength += rv.ReviewLength
		totalWords += rv.WordCount
	}

	n := float64(len(reviews))

	return models.TextStats{
		AvgReviewLength: float64(totalLength) / n,
		AvgWordCount:    float64(totalWords) / n,
		TotalWords:      totalWords,
	}
}

package cleaner

import (
	"time"

	"reviewlens/internal/config"
	"reviewlens/internal/logger"
	"reviewlens/internal/models"
	"reviewlens/pkg/textutil"
)

// Result is the output of the cleaning pipeline: the surviving reviews
// and the removed-row counts attributed to each cause.
type Result struct {
	Reviews      []models.CleanedReview
	Metrics      models.RemovalMetrics
	InitialCount int
}

// FinalCount returns the number of surviving reviews.
func (r *Result) FinalCount() int {
	return len(r.Reviews)
}

// Processor runs the cleaning stages in order. Each stage consumes the
// full table produced by the previous one; no stage mutates its input.
type Processor struct {
	cfg *config.ProcessingConfig
	log *logger.Logger
}

// NewProcessor creates a cleaning processor with the given bounds.
func NewProcessor(cfg *config.ProcessingConfig, log *logger.Logger) *Processor {
	return &Processor{cfg: cfg, log: log}
}

// Process runs deduplication, missing-value handling, text normalization,
// rating and date validation, and length filtering. Row-level defects are
// dropped and counted, never fatal.
func (p *Processor) Process(raw []models.RawReview) *Result {
	result := &Result{InitialCount: len(raw)}

	rows, removed := Deduplicate(raw)
	result.Metrics.Duplicates = removed
	p.logStage("duplicate reviews", removed)

	rows, removed = HandleMissing(rows)
	result.Metrics.MissingValues = removed
	p.logStage("rows with missing critical data", removed)

	cleaned, invalidRatings, invalidDates := p.normalize(rows)
	result.Metrics.InvalidRatings = invalidRatings
	result.Metrics.InvalidDates = invalidDates
	p.logStage("rows with invalid ratings", invalidRatings)
	p.logStage("rows with invalid dates", invalidDates)

	cleaned, removed = p.filterByLength(cleaned)
	result.Metrics.LengthFiltered = removed
	p.logStage("reviews outside length limits", removed)

	result.Reviews = cleaned

	return result
}

// normalize cleans review text and validates rating and date fields,
// producing CleanedReview rows. Rating correctness is load-bearing for
// downstream aggregation, so invalid values drop the row rather than
// being defaulted.
func (p *Processor) normalize(rows []models.RawReview) ([]models.CleanedReview, int, int) {
	now := time.Now().Format("2006-01-02 15:04:05")

	cleaned := make([]models.CleanedReview, 0, len(rows))

	invalidRatings := 0
	invalidDates := 0

	for _, r := range rows {
		rating, ok := ParseRating(r.Rating)
		if !ok || !p.cfg.AllowedRating(rating) {
			invalidRatings++

			continue
		}

		date, ok := ParseDate(r.Date)
		if !ok {
			invalidDates++

			continue
		}

		text := textutil.CleanText(r.ReviewText)

		cleaned = append(cleaned, models.CleanedReview{
			ReviewID:     r.ReviewID,
			ReviewText:   r.ReviewText,
			CleanedText:  text,
			Rating:       rating,
			Date:         date,
			Bank:         r.Bank,
			Source:       r.Source,
			ThumbsUp:     parseThumbsUp(r.ThumbsUp),
			AppVersion:   r.AppVersion,
			WordCount:    textutil.WordCount(text),
			ReviewLength: textutil.RuneLen(text),
			ProcessedAt:  now,
		})
	}

	return cleaned, invalidRatings, invalidDates
}

// filterByLength keeps reviews whose cleaned-text length is within the
// configured bounds. Runs after cleaning so the length reflects
// normalized text.
func (p *Processor) filterByLength(rows []models.CleanedReview) ([]models.CleanedReview, int) {
	kept := make([]models.CleanedReview, 0, len(rows))

	for _, r := range rows {
		if r.ReviewLength < p.cfg.MinReviewLength || r.ReviewLength > p.cfg.MaxReviewLength {
			continue
		}

		kept = append(kept, r)
	}

	return kept, len(rows) - len(kept)
}

func (p *Processor) logStage(what string, removed int) {
	if p.log != nil {
		p.log.Info("Removed "+what, "count", removed)
	}
}

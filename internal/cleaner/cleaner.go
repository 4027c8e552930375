// Package cleaner implements the review cleaning stages: deduplication,
// missing-value handling, text normalization, rating and date validation,
// and length filtering.
package cleaner

import (
	"strconv"
	"strings"

	"reviewlens/internal/models"
)

// Default values substituted for recoverable optional fields.
const (
	DefaultAppVersion = "Unknown"
	DefaultThumbsUp   = 0
)

// Deduplicate removes rows whose (review_text, bank, rating) triple was
// seen on an earlier row. Input order defines which occurrence is kept.
func Deduplicate(reviews []models.RawReview) ([]models.RawReview, int) {
	seen := make(map[string]bool, len(reviews))
	kept := make([]models.RawReview, 0, len(reviews))

	for _, r := range reviews {
		key := r.ReviewText + "\x1f" + r.Bank + "\x1f" + r.Rating
		if seen[key] {
			continue
		}

		seen[key] = true
		kept = append(kept, r)
	}

	return kept, len(reviews) - len(kept)
}

// HandleMissing drops rows missing critical fields (review_text, rating,
// bank) and substitutes defaults for recoverable optional fields
// (app_version, thumbs_up).
func HandleMissing(reviews []models.RawReview) ([]models.RawReview, int) {
	kept := make([]models.RawReview, 0, len(reviews))

	for _, r := range reviews {
		if strings.TrimSpace(r.ReviewText) == "" ||
			strings.TrimSpace(r.Rating) == "" ||
			strings.TrimSpace(r.Bank) == "" {
			continue
		}

		if strings.TrimSpace(r.AppVersion) == "" {
			r.AppVersion = DefaultAppVersion
		}

		if strings.TrimSpace(r.ThumbsUp) == "" {
			r.ThumbsUp = strconv.Itoa(DefaultThumbsUp)
		}

		kept = append(kept, r)
	}

	return kept, len(reviews) - len(kept)
}

// parseThumbsUp coerces the raw thumbs_up value, falling back to the
// default rather than dropping the row.
func parseThumbsUp(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return DefaultThumbsUp
	}

	return n
}

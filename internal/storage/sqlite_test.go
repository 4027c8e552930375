package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"reviewlens/internal/config"
	"reviewlens/internal/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	t.Cleanup(func() { _ = s.Close() })

	return s
}

func sampleReviews() []models.ScoredReview {
	return []models.ScoredReview{
		{
			CleanedReview: models.CleanedReview{
				ReviewID:     "r1",
				ReviewText:   "Great app!",
				CleanedText:  "Great app!",
				Rating:       5,
				Date:         "2024-01-15",
				Bank:         "CBE",
				Source:       "Google Play",
				WordCount:    2,
				ReviewLength: 10,
				ProcessedAt:  "2024-02-01T10:00:00Z",
			},
			Sentiment: models.SentimentResult{Label: models.LabelPositive, Confidence: 0.9, Category: models.CategoryPositive},
		},
		{
			CleanedReview: models.CleanedReview{
				ReviewID:     "r2",
				ReviewText:   "Keeps crashing",
				CleanedText:  "Keeps crashing",
				Rating:       1,
				Date:         "2024-01-16",
				Bank:         "CBE",
				Source:       "Google Play",
				WordCount:    2,
				ReviewLength: 14,
				ProcessedAt:  "2024-02-01T10:00:00Z",
			},
			Sentiment: models.SentimentResult{Label: models.LabelNegative, Confidence: 0.2, Category: models.CategoryNegative},
		},
		{
			CleanedReview: models.CleanedReview{
				ReviewID:     "r3",
				ReviewText:   "Okay",
				CleanedText:  "Okay",
				Rating:       3,
				Date:         "2024-01-17",
				Bank:         "BOA",
				Source:       "Google Play",
				WordCount:    1,
				ReviewLength: 4,
				ProcessedAt:  "2024-02-01T10:00:00Z",
			},
			Sentiment: models.SentimentResult{Label: models.LabelNeutral, Confidence: 0.5, Category: models.CategoryNeutral},
		},
	}
}

func TestStore_SaveAndCountReviews(t *testing.T) {
	s := testStore(t)

	if err := s.SaveBanks(config.DefaultConfig().Banks); err != nil {
		t.Fatalf("SaveBanks failed: %v", err)
	}

	if err := s.SaveReviews(sampleReviews()); err != nil {
		t.Fatalf("SaveReviews failed: %v", err)
	}

	count, err := s.CountReviews()
	if err != nil {
		t.Fatalf("CountReviews failed: %v", err)
	}

	if count != 3 {
		t.Errorf("Expected 3 reviews, got %d", count)
	}

	perBank, err := s.CountReviewsByBank()
	if err != nil {
		t.Fatalf("CountReviewsByBank failed: %v", err)
	}

	if perBank["CBE"] != 2 || perBank["BOA"] != 1 {
		t.Errorf("Unexpected per-bank counts: %v", perBank)
	}
}

func TestStore_SaveReviews_Idempotent(t *testing.T) {
	s := testStore(t)

	reviews := sampleReviews()
	if err := s.SaveReviews(reviews); err != nil {
		t.Fatalf("First save failed: %v", err)
	}

	if err := s.SaveReviews(reviews); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	count, err := s.CountReviews()
	if err != nil {
		t.Fatalf("CountReviews failed: %v", err)
	}

	if count != 3 {
		t.Errorf("Expected replace semantics to keep 3 rows, got %d", count)
	}
}

func TestStore_RejectsOutOfRangeRating(t *testing.T) {
	s := testStore(t)

	bad := sampleReviews()[:1]
	bad[0].Rating = 6

	if err := s.SaveReviews(bad); err == nil {
		t.Error("Expected rating CHECK constraint to reject rating 6")
	}
}

func TestStore_AverageRating(t *testing.T) {
	s := testStore(t)

	if err := s.SaveReviews(sampleReviews()); err != nil {
		t.Fatalf("SaveReviews failed: %v", err)
	}

	avg, err := s.AverageRating("CBE")
	if err != nil {
		t.Fatalf("AverageRating failed: %v", err)
	}

	if avg != 3.0 {
		t.Errorf("Expected average 3.0 for CBE, got %v", avg)
	}

	_, err = s.AverageRating("UNKNOWN")
	if !errors.Is(err, ErrBankNotFound) {
		t.Errorf("Expected ErrBankNotFound, got %v", err)
	}
}

func TestStore_ThemeAssignments(t *testing.T) {
	s := testStore(t)

	if err := s.SaveReviews(sampleReviews()); err != nil {
		t.Fatalf("SaveReviews failed: %v", err)
	}

	assignments := []models.ThemeAssignment{
		{ReviewID: "r2", Bank: "CBE", Theme: "App Reliability", MatchedKeywords: []string{"crash"}, Sentiment: models.CategoryNegative},
		{ReviewID: "r1", Bank: "CBE", Theme: "UI/UX Experience", MatchedKeywords: []string{"easy"}, Sentiment: models.CategoryPositive},
		{ReviewID: "r3", Bank: "BOA", Theme: "App Reliability", MatchedKeywords: []string{"bug"}, Sentiment: models.CategoryNeutral},
	}

	if err := s.SaveThemeAssignments(assignments); err != nil {
		t.Fatalf("SaveThemeAssignments failed: %v", err)
	}

	// Rewriting replaces, never accumulates.
	if err := s.SaveThemeAssignments(assignments); err != nil {
		t.Fatalf("Second SaveThemeAssignments failed: %v", err)
	}

	counts, err := s.ThemeCounts()
	if err != nil {
		t.Fatalf("ThemeCounts failed: %v", err)
	}

	if len(counts) != 2 {
		t.Fatalf("Expected 2 theme rows, got %d", len(counts))
	}

	if counts[0].Theme != "App Reliability" || counts[0].Count != 2 {
		t.Errorf("Unexpected top theme: %+v", counts[0])
	}
}

package formatter

import (
	"strings"
	"testing"

	"reviewlens/internal/models"
	"reviewlens/pkg/metadata"
)

func sampleReport() models.QualityReport {
	return models.QualityReport{
		InitialReviews: 1340,
		FinalReviews:   1300,
		ReviewsRemoved: 40,
		RemovalRate:    40.0 / 1340.0,
		ReviewsPerBank: map[string]int{"CBE": 450, "BOA": 420, "DASHEN": 430},
		RatingDistribution: map[int]int{
			1: 100, 2: 150, 3: 250, 4: 400, 5: 400,
		},
		Metrics: models.RemovalMetrics{Duplicates: 25, MissingValues: 15},
		TextStats: models.TextStats{
			AvgReviewLength: 52.4,
			AvgWordCount:    10.1,
			TotalWords:      13130,
		},
		SentimentDistribution: map[models.Category]int{
			models.CategoryPositive: 700,
			models.CategoryNeutral:  300,
			models.CategoryNegative: 300,
		},
		RequirementsMet: true,
		GeneratedAt:     "2024-02-01T10:00:00Z",
	}
}

func TestRender_ContainsSections(t *testing.T) {
	byBank := []models.ThemeCount{{Bank: "CBE", Theme: "App Reliability", Count: 120}}
	bySentiment := []models.ThemeCount{{Theme: "App Reliability", Sentiment: models.CategoryNegative, Count: 95}}
	keywords := []models.BankKeywords{{Bank: "CBE", Keywords: []models.Keyword{{Term: "transfer", Score: 1.2}}}}

	out := Render(sampleReport(), byBank, bySentiment, keywords)

	for _, section := range []string{
		"# Review Dataset Quality Report",
		"## Overview",
		"## Removal Breakdown",
		"## Reviews per Bank",
		"## Rating Distribution",
		"## Text Statistics",
		"## Sentiment Distribution",
		"## Themes by Bank",
		"## Themes by Sentiment",
		"## Top Keywords per Bank",
		"## Requirements",
	} {
		if !strings.Contains(out, section) {
			t.Errorf("Missing section %q", section)
		}
	}

	if !strings.Contains(out, "3.0%") {
		t.Error("Expected removal rate rendered as percentage")
	}

	if !strings.Contains(out, "All dataset requirements met.") {
		t.Error("Expected positive verdict")
	}
}

func TestRender_OmitsEmptySections(t *testing.T) {
	report := sampleReport()
	report.SentimentDistribution = nil

	out := Render(report, nil, nil, nil)

	for _, section := range []string{
		"## Sentiment Distribution",
		"## Themes by Bank",
		"## Themes by Sentiment",
		"## Top Keywords per Bank",
	} {
		if strings.Contains(out, section) {
			t.Errorf("Section %q should be omitted when empty", section)
		}
	}
}

func TestRender_StampsProvenance(t *testing.T) {
	out := Render(sampleReport(), nil, nil, nil)

	ok, err := metadata.Verify(out)
	if err != nil || !ok {
		t.Fatalf("Provenance verification failed: ok=%v err=%v", ok, err)
	}

	stamp, _ := metadata.Extract(out)
	if !stamp.RequirementsMet {
		t.Error("Expected verdict carried into stamp")
	}
}

func TestWriteTable_Alignment(t *testing.T) {
	var sb strings.Builder

	writeTable(&sb, []string{"Bank", "Reviews"}, [][]string{
		{"CBE", "450"},
		{"DASHEN", "430"},
	})

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected 4 table lines, got %d", len(lines))
	}

	width := len(lines[0])
	for i, line := range lines {
		if len(line) != width {
			t.Errorf("Line %d width %d, want %d: %q", i, len(line), width, line)
		}
	}

	if !strings.HasPrefix(lines[1], "| ---") {
		t.Errorf("Expected separator row, got %q", lines[1])
	}
}

// Package formatter renders pipeline results as markdown documents with
// display-width aligned tables.
package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"reviewlens/internal/models"
	"reviewlens/pkg/metadata"
)

// Render produces the full markdown quality report, including thematic
// summaries, and stamps it with a provenance block carrying the
// acceptance verdict. Theme arguments may be empty when thematic
// analysis has not run.
func Render(report models.QualityReport, byBank, bySentiment []models.ThemeCount, keywords []models.BankKeywords) string {
	var sb strings.Builder

	sb.WriteString("# Review Dataset Quality Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", report.GeneratedAt))

	writeOverview(&sb, report)
	writeRemovals(&sb, report.Metrics)
	writePerBank(&sb, report.ReviewsPerBank)
	writeRatings(&sb, report.RatingDistribution)
	writeTextStats(&sb, report.TextStats)

	if len(report.SentimentDistribution) > 0 {
		writeSentiments(&sb, report.SentimentDistribution)
	}

	if len(byBank) > 0 {
		writeThemesByBank(&sb, byBank)
	}

	if len(bySentiment) > 0 {
		writeThemesBySentiment(&sb, bySentiment)
	}

	if len(keywords) > 0 {
		writeKeywords(&sb, keywords)
	}

	writeVerdict(&sb, report.RequirementsMet)

	return metadata.Sign(sb.String(), report.RequirementsMet)
}

func writeOverview(sb *strings.Builder, report models.QualityReport) {
	sb.WriteString("## Overview\n\n")
	writeTable(sb,
		[]string{"Metric", "Value"},
		[][]string{
			{"Initial reviews", fmt.Sprintf("%d", report.InitialReviews)},
			{"Final reviews", fmt.Sprintf("%d", report.FinalReviews)},
			{"Reviews removed", fmt.Sprintf("%d", report.ReviewsRemoved)},
			{"Removal rate", formatPercent(report.RemovalRate)},
		})
}

func writeRemovals(sb *strings.Builder, m models.RemovalMetrics) {
	sb.WriteString("## Removal Breakdown\n\n")
	writeTable(sb,
		[]string{"Cause", "Removed"},
		[][]string{
			{"Duplicates", fmt.Sprintf("%d", m.Duplicates)},
			{"Missing values", fmt.Sprintf("%d", m.MissingValues)},
			{"Invalid ratings", fmt.Sprintf("%d", m.InvalidRatings)},
			{"Invalid dates", fmt.Sprintf("%d", m.InvalidDates)},
			{"Length filtered", fmt.Sprintf("%d", m.LengthFiltered)},
		})
}

func writePerBank(sb *strings.Builder, perBank map[string]int) {
	sb.WriteString("## Reviews per Bank\n\n")

	banks := make([]string, 0, len(perBank))
	for bank := range perBank {
		banks = append(banks, bank)
	}

	sort.Strings(banks)

	rows := make([][]string, 0, len(banks))
	for _, bank := range banks {
		rows = append(rows, []string{bank, fmt.Sprintf("%d", perBank[bank])})
	}

	writeTable(sb, []string{"Bank", "Reviews"}, rows)
}

func writeRatings(sb *strings.Builder, dist map[int]int) {
	sb.WriteString("## Rating Distribution\n\n")

	rows := make([][]string, 0, 5)
	for rating := 1; rating <= 5; rating++ {
		rows = append(rows, []string{fmt.Sprintf("%d", rating), fmt.Sprintf("%d", dist[rating])})
	}

	writeTable(sb, []string{"Rating", "Count"}, rows)
}

func writeTextStats(sb *strings.Builder, stats models.TextStats) {
	sb.WriteString("## Text Statistics\n\n")
	writeTable(sb,
		[]string{"Metric", "Value"},
		[][]string{
			{"Average review length", fmt.Sprintf("%.1f", stats.AvgReviewLength)},
			{"Average word count", fmt.Sprintf("%.1f", stats.AvgWordCount)},
			{"Total words", fmt.Sprintf("%d", stats.TotalWords)},
		})
}

func writeSentiments(sb *strings.Builder, dist map[models.Category]int) {
	sb.WriteString("## Sentiment Distribution\n\n")

	rows := [][]string{
		{"positive", fmt.Sprintf("%d", dist[models.CategoryPositive])},
		{"neutral", fmt.Sprintf("%d", dist[models.CategoryNeutral])},
		{"negative", fmt.Sprintf("%d", dist[models.CategoryNegative])},
	}

	writeTable(sb, []string{"Sentiment", "Reviews"}, rows)
}

func writeThemesByBank(sb *strings.Builder, counts []models.ThemeCount) {
	sb.WriteString("## Themes by Bank\n\n")

	rows := make([][]string, 0, len(counts))
	for _, tc := range counts {
		rows = append(rows, []string{tc.Bank, tc.Theme, fmt.Sprintf("%d", tc.Count)})
	}

	writeTable(sb, []string{"Bank", "Theme", "Mentions"}, rows)
}

func writeThemesBySentiment(sb *strings.Builder, counts []models.ThemeCount) {
	sb.WriteString("## Themes by Sentiment\n\n")

	rows := make([][]string, 0, len(counts))
	for _, tc := range counts {
		rows = append(rows, []string{tc.Theme, string(tc.Sentiment), fmt.Sprintf("%d", tc.Count)})
	}

	writeTable(sb, []string{"Theme", "Sentiment", "Mentions"}, rows)
}

func writeKeywords(sb *strings.Builder, keywords []models.BankKeywords) {
	sb.WriteString("## Top Keywords per Bank\n\n")

	for _, bk := range keywords {
		terms := make([]string, 0, len(bk.Keywords))

		for i, kw := range bk.Keywords {
			if i >= 10 {
				break
			}

			terms = append(terms, kw.Term)
		}

		sb.WriteString(fmt.Sprintf("- **%s**: %s\n", bk.Bank, strings.Join(terms, ", ")))
	}

	sb.WriteString("\n")
}

func writeVerdict(sb *strings.Builder, met bool) {
	sb.WriteString("## Requirements\n\n")

	if met {
		sb.WriteString("All dataset requirements met.\n")
	} else {
		sb.WriteString("Dataset requirements NOT met. See removal breakdown and per-bank counts above.\n")
	}
}

// formatPercent renders a rate fraction as a percentage with one decimal.
func formatPercent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}

// writeTable emits a markdown table with columns padded to equal display
// width. Width is measured with runewidth so wide glyphs stay aligned.
func writeTable(sb *strings.Builder, headers []string, rows [][]string) {
	widths := make([]int, len(headers))

	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}

	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}

	writeRow := func(cells []string) {
		sb.WriteString("|")

		for i, width := range widths {
			content := ""
			if i < len(cells) {
				content = cells[i]
			}

			padding := width - runewidth.StringWidth(content)

			sb.WriteString(" ")
			sb.WriteString(content)

			if padding > 0 {
				sb.WriteString(strings.Repeat(" ", padding))
			}

			sb.WriteString(" |")
		}

		sb.WriteString("\n")
	}

	writeRow(headers)

	sb.WriteString("|")

	for _, width := range widths {
		sb.WriteString(" ")
		sb.WriteString(strings.Repeat("-", width))
		sb.WriteString(" |")
	}

	sb.WriteString("\n")

	for _, row := range rows {
		writeRow(row)
	}

	sb.WriteString("\n")
}

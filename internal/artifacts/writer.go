// Package artifacts writes pipeline results to the flat-file outputs
// consumed by downstream analysis.
package artifacts

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"reviewlens/internal/logger"
	"reviewlens/internal/models"
)

// Artifact file names under the output directory.
const (
	ProcessedFile             = "reviews_processed.csv"
	SentimentFile             = "reviews_with_sentiment.csv"
	ThemesFile                = "reviews_with_themes.csv"
	ThemeSummaryBankFile      = "theme_summary_by_bank.csv"
	ThemeSummarySentimentFile = "theme_summary_by_sentiment.csv"
	QualityReportJSONFile     = "quality_report.json"
	QualityReportMarkdownFile = "quality_report.md"
)

// Writer persists artifacts into a single output directory.
type Writer struct {
	dir string
	log *logger.Logger
}

// NewWriter creates a writer rooted at dir. The directory is created on
// first write.
func NewWriter(dir string, log *logger.Logger) *Writer {
	return &Writer{dir: dir, log: log}
}

func (w *Writer) path(name string) string {
	return filepath.Join(w.dir, name)
}

func (w *Writer) ensureDir() error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	return nil
}

func (w *Writer) logWrote(name string, rows int) {
	if w.log != nil {
		w.log.Info("Artifact written", "file", name, "rows", rows)
	}
}

// writeCSV writes a header plus rows to the named file.
func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	if err := w.ensureDir(); err != nil {
		return err
	}

	f, err := os.Create(w.path(name))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", name, err)
	}

	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row to %s: %w", name, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", name, err)
	}

	w.logWrote(name, len(rows))

	return nil
}

var processedHeader = []string{
	"review_id", "review_text", "cleaned_text", "rating", "date", "bank",
	"source", "thumbs_up", "app_version", "word_count", "review_length",
	"processing_timestamp",
}

func cleanedRow(r models.CleanedReview) []string {
	return []string{
		r.ReviewID,
		r.ReviewText,
		r.CleanedText,
		strconv.Itoa(r.Rating),
		r.Date,
		r.Bank,
		r.Source,
		strconv.Itoa(r.ThumbsUp),
		r.AppVersion,
		strconv.Itoa(r.WordCount),
		strconv.Itoa(r.ReviewLength),
		r.ProcessedAt,
	}
}

// WriteProcessed writes the cleaned dataset.
func (w *Writer) WriteProcessed(reviews []models.CleanedReview) error {
	rows := make([][]string, 0, len(reviews))
	for _, r := range reviews {
		rows = append(rows, cleanedRow(r))
	}

	return w.writeCSV(ProcessedFile, processedHeader, rows)
}

// WriteScored writes the cleaned dataset with sentiment columns
// appended.
func (w *Writer) WriteScored(reviews []models.ScoredReview) error {
	header := append(append([]string{}, processedHeader...),
		"sentiment_label", "sentiment_score", "sentiment_category")

	rows := make([][]string, 0, len(reviews))

	for _, r := range reviews {
		row := append(cleanedRow(r.CleanedReview),
			r.Sentiment.Label,
			strconv.FormatFloat(r.Sentiment.Confidence, 'f', 4, 64),
			string(r.Sentiment.Category),
		)
		rows = append(rows, row)
	}

	return w.writeCSV(SentimentFile, header, rows)
}

// WriteThemeAssignments writes one row per review x theme pair. Matched
// keywords are semicolon-joined in a single column.
func (w *Writer) WriteThemeAssignments(assignments []models.ThemeAssignment) error {
	header := []string{
		"review_id", "bank", "rating", "sentiment_category", "theme",
		"matched_keywords", "review_text",
	}

	rows := make([][]string, 0, len(assignments))

	for _, a := range assignments {
		rows = append(rows, []string{
			a.ReviewID,
			a.Bank,
			strconv.Itoa(a.Rating),
			string(a.Sentiment),
			a.Theme,
			strings.Join(a.MatchedKeywords, ";"),
			a.Excerpt,
		})
	}

	return w.writeCSV(ThemesFile, header, rows)
}

// WriteThemeSummaries writes the by-bank and by-sentiment theme count
// tables.
func (w *Writer) WriteThemeSummaries(byBank, bySentiment []models.ThemeCount) error {
	bankRows := make([][]string, 0, len(byBank))
	for _, tc := range byBank {
		bankRows = append(bankRows, []string{tc.Bank, tc.Theme, strconv.Itoa(tc.Count)})
	}

	if err := w.writeCSV(ThemeSummaryBankFile, []string{"bank", "theme", "count"}, bankRows); err != nil {
		return err
	}

	sentimentRows := make([][]string, 0, len(bySentiment))
	for _, tc := range bySentiment {
		sentimentRows = append(sentimentRows, []string{tc.Theme, string(tc.Sentiment), strconv.Itoa(tc.Count)})
	}

	return w.writeCSV(ThemeSummarySentimentFile, []string{"theme", "sentiment_category", "count"}, sentimentRows)
}

// WriteQualityReport writes the report as indented JSON.
func (w *Writer) WriteQualityReport(report models.QualityReport) error {
	if err := w.ensureDir(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal quality report: %w", err)
	}

	if err := os.WriteFile(w.path(QualityReportJSONFile), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", QualityReportJSONFile, err)
	}

	w.logWrote(QualityReportJSONFile, 1)

	return nil
}

// WriteMarkdownReport writes the rendered markdown report verbatim.
func (w *Writer) WriteMarkdownReport(content string) error {
	if err := w.ensureDir(); err != nil {
		return err
	}

	if err := os.WriteFile(w.path(QualityReportMarkdownFile), []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", QualityReportMarkdownFile, err)
	}

	w.logWrote(QualityReportMarkdownFile, 1)

	return nil
}

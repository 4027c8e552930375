package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"reviewlens/internal/models"
)

// CSV parsing errors.
var (
	ErrEmptyDataset = errors.New("dataset contains no rows")
	ErrNoHeader     = errors.New("dataset has no header row")
)

// Column names accepted in raw datasets. review_created_version is the
// column name the Play Store scraper emits for the app version.
const (
	colReviewID   = "review_id"
	colReviewText = "review_text"
	colRating     = "rating"
	colDate       = "date"
	colBank       = "bank"
	colSource     = "source"
	colThumbsUp   = "thumbs_up"
	colAppVersion = "app_version"
	colScraperVer = "review_created_version"
)

// Dataset is a raw tabular dataset: the header columns as they appeared
// in the source, plus one RawReview per data row.
type Dataset struct {
	Columns []string
	Reviews []models.RawReview
}

// ParseCSV decodes raw CSV content into a Dataset. Rows that arrive
// without a review_id get a synthesized one so downstream tables can
// always reference a review. No other content validation happens here.
func ParseCSV(content string) (*Dataset, error) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, ErrNoHeader
	}

	header := records[0]
	index := make(map[string]int, len(header))

	columns := make([]string, 0, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.ToLower(name))
		index[name] = i
		columns = append(columns, name)
	}

	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}

		return row[i]
	}

	reviews := make([]models.RawReview, 0, len(records)-1)

	for _, row := range records[1:] {
		review := models.RawReview{
			ReviewID:   field(row, colReviewID),
			ReviewText: field(row, colReviewText),
			Rating:     field(row, colRating),
			Date:       field(row, colDate),
			Bank:       field(row, colBank),
			Source:     field(row, colSource),
			ThumbsUp:   field(row, colThumbsUp),
			AppVersion: field(row, colAppVersion),
		}

		if review.AppVersion == "" {
			review.AppVersion = field(row, colScraperVer)
		}

		if review.ReviewID == "" {
			review.ReviewID = uuid.NewString()
		}

		reviews = append(reviews, review)
	}

	if len(reviews) == 0 {
		return nil, ErrEmptyDataset
	}

	return &Dataset{Columns: columns, Reviews: reviews}, nil
}

// Load fetches a source (path or URL) and parses it into a Dataset.
func Load(source string, fetcher *Fetcher) (*Dataset, error) {
	content, err := fetcher.Fetch(source)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch raw dataset: %w", err)
	}

	return ParseCSV(content)
}

// HasColumn reports whether the dataset header contains name.
func (d *Dataset) HasColumn(name string) bool {
	for _, col := range d.Columns {
		if col == name {
			return true
		}
	}

	return false
}

// MissingColumns returns the required columns absent from the header,
// in the order they were required.
func (d *Dataset) MissingColumns(required []string) []string {
	var missing []string

	for _, name := range required {
		if !d.HasColumn(name) {
			missing = append(missing, name)
		}
	}

	return missing
}

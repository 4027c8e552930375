package cleaner

import (
	"errors"
	"strings"
	"testing"

	"reviewlens/internal/ingest"
	"reviewlens/internal/models"
)

func datasetWithColumns(cols ...string) *ingest.Dataset {
	return &ingest.Dataset{
		Columns: cols,
		Reviews: []models.RawReview{{ReviewText: "x"}},
	}
}

func TestValidator_Validate(t *testing.T) {
	required := []string{"review_text", "rating", "date", "bank", "source"}
	v := NewValidator(required, nil)

	ds := datasetWithColumns("review_id", "review_text", "rating", "date", "bank", "source", "thumbs_up")
	if err := v.Validate(ds); err != nil {
		t.Errorf("Validate returned unexpected error: %v", err)
	}
}

func TestValidator_Validate_MissingColumns(t *testing.T) {
	required := []string{"review_text", "rating", "date", "bank", "source"}
	v := NewValidator(required, nil)

	ds := datasetWithColumns("review_text", "rating", "bank")

	err := v.Validate(ds)
	if err == nil {
		t.Fatal("Expected error for missing columns, got nil")
	}

	if !errors.Is(err, ErrMissingColumns) {
		t.Errorf("Expected ErrMissingColumns, got %v", err)
	}

	// Diagnostic names exactly the absent columns
	for _, col := range []string{"date", "source"} {
		if !strings.Contains(err.Error(), col) {
			t.Errorf("Expected %q in diagnostic, got %q", col, err.Error())
		}
	}

	if strings.Contains(err.Error(), "rating") {
		t.Errorf("Diagnostic should not list present columns: %q", err.Error())
	}
}

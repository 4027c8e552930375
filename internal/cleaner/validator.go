package cleaner

import (
	"errors"
	"fmt"
	"strings"

	"reviewlens/internal/ingest"
	"reviewlens/internal/logger"
)

// ErrMissingColumns is returned when the raw dataset lacks required columns.
// It is the only fatal error in the pipeline: nothing downstream runs.
var ErrMissingColumns = errors.New("missing required columns")

// Validator is the structural schema gate. It checks column presence only
// and never inspects row content.
type Validator struct {
	required []string
	log      *logger.Logger
}

// NewValidator creates a validator for the given required column set.
func NewValidator(required []string, log *logger.Logger) *Validator {
	return &Validator{required: required, log: log}
}

// Validate fails closed: any absent required column aborts the run. The
// diagnostic names exactly which columns are missing.
func (v *Validator) Validate(ds *ingest.Dataset) error {
	missing := ds.MissingColumns(v.required)
	if len(missing) > 0 {
		if v.log != nil {
			v.log.Error("Dataset failed structural validation", "missing_columns", missing)
		}

		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	if v.log != nil {
		v.log.Info("All required columns present", "columns", v.required)
	}

	return nil
}

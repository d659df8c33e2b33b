package ingest

import (
	"fmt"

	"agristat/entities"
)

const (
	DefaultMinYear         = 1990
	DefaultMaxYear         = 2026
	DefaultMaxProductivity = 10000.0
)

// Validator checks records for impossible values before they are stored.
type Validator struct {
	MinYear         int
	MaxYear         int
	MaxProductivity float64
}

type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// DefaultValidator accepts seasons 1990..2026 and productivity up to 10k kg/ha.
func DefaultValidator() Validator {
	return Validator{MinYear: DefaultMinYear, MaxYear: DefaultMaxYear, MaxProductivity: DefaultMaxProductivity}
}

// Validate runs DefaultValidator.
func Validate(records []entities.CropRecord) ValidationResult {
	return DefaultValidator().Validate(records)
}

func (v Validator) Validate(records []entities.CropRecord) ValidationResult {
	errs := []string{}
	for i, r := range records {
		if r.Production < 0 {
			errs = append(errs, fmt.Sprintf("[row %d] negative production in %s (%d).", i, r.RegionCode, r.Year))
		}
		if r.Area < 0 {
			errs = append(errs, fmt.Sprintf("[row %d] negative planted area in %s (%d).", i, r.RegionCode, r.Year))
		}
		if r.Year > v.MaxYear || r.Year < v.MinYear {
			errs = append(errs, fmt.Sprintf("[row %d] year outside operating range: %d.", i, r.Year))
		}
		if r.Productivity > v.MaxProductivity {
			errs = append(errs, fmt.Sprintf("[row %d] anomalous productivity (>%.0f kg/ha) in %s. Check units.", i, v.MaxProductivity, r.RegionCode))
		}
	}
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

package analytics

import (
	"fmt"
	"strings"

	"agristat/entities"
)

const (
	highYieldFactor = 1.15
	lowYieldFactor  = 0.85
)

type biennialConfig struct {
	rescaleBounds bool
}

// BiennialOption tunes AdjustForBiennialCycle.
type BiennialOption func(*biennialConfig)

// WithRescaledBounds scales LowerBound and UpperBound by the same factor as
// PredictedValue. Without it the bounds stay those of the unadjusted line.
func WithRescaledBounds() BiennialOption {
	return func(c *biennialConfig) { c.rescaleBounds = true }
}

// IsBiennialCrop reports whether a crop alternates high and low seasons
// (arabica coffee).
func IsBiennialCrop(cropType string) bool {
	name := strings.ToLower(cropType)
	return strings.Contains(name, "arabica") || strings.Contains(name, "arábica")
}

// BiennialFactor is the multiplier applied to a forecast for targetYear.
// Even years are high-yield seasons.
func BiennialFactor(cropType string, targetYear int) float64 {
	if !IsBiennialCrop(cropType) {
		return 1.0
	}
	if targetYear%2 == 0 {
		return highYieldFactor
	}
	return lowYieldFactor
}

// AdjustForBiennialCycle projects production of records horizon seasons
// past the latest year and corrects each forecast for biennial bearing.
// The crop of the earliest record decides whether the correction applies.
func AdjustForBiennialCycle(records []entities.CropRecord, horizon int, opts ...BiennialOption) []PredictionResult {
	var cfg biennialConfig
	for _, o := range opts {
		o(&cfg)
	}

	sorted := SortByYear(records)
	base := Project(ProductionSeries(sorted), horizon)
	if len(base) == 0 {
		return base
	}

	lastYear := sorted[len(sorted)-1].Year
	crop := sorted[0].CropType

	out := make([]PredictionResult, len(base))
	for i, pred := range base {
		target := lastYear + i + 1
		factor := BiennialFactor(crop, target)

		adj := pred
		adj.TargetYear = target
		adj.PredictedValue = pred.PredictedValue * factor
		if cfg.rescaleBounds {
			adj.LowerBound = pred.LowerBound * factor
			adj.UpperBound = pred.UpperBound * factor
		}
		notes := make([]string, 0, len(pred.DerivationNotes)+2)
		notes = append(notes, pred.DerivationNotes...)
		adj.DerivationNotes = append(notes,
			fmt.Sprintf("B_f = %.2f (%s)", factor, seasonLabel(crop, target)),
			"Ŷ_adj = Ŷ * B_f",
		)
		out[i] = adj
	}
	return out
}

func seasonLabel(crop string, year int) string {
	switch {
	case !IsBiennialCrop(crop):
		return "no biennial cycle"
	case year%2 == 0:
		return fmt.Sprintf("high-yield season %d", year)
	default:
		return fmt.Sprintf("low-yield season %d", year)
	}
}

// Package analytics turns historical crop records into trend projections,
// regional efficiency rankings, anomaly flags and recommendations.
//
// Every function is pure: inputs are never mutated and degenerate inputs
// (too few points, empty filters, zero denominators) produce empty or zero
// results instead of errors.
package analytics

import (
	"sort"

	"agristat/entities"
)

// Point is one observation of a numeric series. Year orders the series;
// regression uses the position after sorting, not the year itself.
type Point struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

type PredictionResult struct {
	TargetYear        int      `json:"target_year"`
	PredictedValue    float64  `json:"predicted_value"`
	LowerBound        float64  `json:"lower_bound"`
	UpperBound        float64  `json:"upper_bound"`
	GrowthRatePercent float64  `json:"growth_rate_percent"`
	ConfidenceScore   float64  `json:"confidence_score"`
	DerivationNotes   []string `json:"derivation_notes"`
}

type RegionalEfficiencyEntry struct {
	RegionCode      string               `json:"region_code"`
	RegionGroup     entities.RegionGroup `json:"region_group"`
	CropType        string               `json:"crop_type"`
	AvgProductivity float64              `json:"avg_productivity"`
	TotalProduction float64              `json:"total_production"`
	EfficiencyIndex float64              `json:"efficiency_index"`
	Rank            int                  `json:"rank"`
	AnomalyCount    int                  `json:"anomaly_count"`
}

type Direction string

const (
	Rising  Direction = "rising"
	Falling Direction = "falling"
)

// TrendSummary describes the year-over-year behaviour of a production series.
type TrendSummary struct {
	VolatilityPercent float64   `json:"volatility_percent"`
	Direction         Direction `json:"direction"`
	IsCyclic          bool      `json:"is_cyclic"`
}

// ProductionSeries sorts records by year and extracts their production.
// The input slice is left untouched.
func ProductionSeries(records []entities.CropRecord) []Point {
	sorted := SortByYear(records)
	out := make([]Point, len(sorted))
	for i, r := range sorted {
		out[i] = Point{Year: r.Year, Value: r.Production}
	}
	return out
}

// SortByYear returns a copy of records ordered by ascending year, keeping
// the relative order of records that share a year.
func SortByYear(records []entities.CropRecord) []entities.CropRecord {
	out := make([]entities.CropRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

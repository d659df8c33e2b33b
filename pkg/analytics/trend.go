package analytics

import (
	"fmt"
	"math"
	"sort"
)

const (
	boundLowFactor  = 0.92
	boundHighFactor = 1.08
	baseConfidence  = 0.85
	confidenceDecay = 0.05
	minTrendPoints  = 2
)

// Fit is a least-squares line over zero-based series positions.
type Fit struct {
	Slope     float64
	Intercept float64
	RSquared  float64
}

// At evaluates the fitted line at position x.
func (f Fit) At(x float64) float64 { return f.Slope*x + f.Intercept }

// FitLine regresses values on their positions 0..n-1. ok is false when
// fewer than two values are given.
func FitLine(values []float64) (fit Fit, ok bool) {
	n := len(values)
	if n < minTrendPoints {
		return Fit{}, false
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	fn := float64(n)
	fit.Slope = (fn*sumXY - sumX*sumY) / (fn*sumXX - sumX*sumX)
	fit.Intercept = (sumY - fit.Slope*sumX) / fn

	mean := sumY / fn
	var ssRes, ssTot float64
	for i, y := range values {
		r := y - fit.At(float64(i))
		ssRes += r * r
		d := y - mean
		ssTot += d * d
	}
	// a flat series is fitted exactly by a flat line
	if ssTot == 0 {
		fit.RSquared = 1
	} else {
		fit.RSquared = 1 - ssRes/ssTot
	}
	return fit, true
}

// Project fits a linear trend over series (ordered by Year, regressed on
// position) and forecasts the next horizon positions. TargetYear is left at
// zero; calendar mapping belongs to the caller.
//
// Fewer than two points or a non-positive horizon yield an empty slice.
func Project(series []Point, horizon int) []PredictionResult {
	if len(series) < minTrendPoints || horizon <= 0 {
		return []PredictionResult{}
	}

	sorted := make([]Point, len(series))
	copy(sorted, series)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })

	values := make([]float64, len(sorted))
	for i, p := range sorted {
		values[i] = p.Value
	}
	fit, _ := FitLine(values)

	n := len(values)
	last := values[n-1]
	out := make([]PredictionResult, 0, horizon)
	for step := 1; step <= horizon; step++ {
		fitted := fit.At(float64(n + step - 1))
		predicted := math.Max(0, fitted)

		growth := 0.0
		if last != 0 {
			growth = (predicted - last) / last * 100
		}

		out = append(out, PredictionResult{
			PredictedValue:    predicted,
			LowerBound:        math.Max(0, fitted*boundLowFactor),
			UpperBound:        fitted * boundHighFactor,
			GrowthRatePercent: growth,
			ConfidenceScore:   baseConfidence - float64(step)*confidenceDecay,
			DerivationNotes: []string{
				fmt.Sprintf("ŷ = %.4f + %.4fx", fit.Intercept, fit.Slope),
				fmt.Sprintf("R² = %.4f", fit.RSquared),
			},
		})
	}
	return out
}

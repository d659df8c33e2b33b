package analytics

import (
	"math"

	"agristat/entities"
)

const cyclicVolatilityPercent = 15.0

// AnalyzeTrends summarizes year-over-year production changes. The first
// season counts as a 0% change, which damps volatility on short series.
// A zero previous production counts as a 0% change too.
func AnalyzeTrends(records []entities.CropRecord) TrendSummary {
	if len(records) == 0 {
		return TrendSummary{Direction: Falling}
	}
	sorted := SortByYear(records)

	changes := make([]float64, len(sorted))
	for i := 1; i < len(sorted); i++ {
		prev := sorted[i-1].Production
		if prev == 0 {
			continue
		}
		changes[i] = (sorted[i].Production - prev) / prev * 100
	}

	var sq float64
	for _, c := range changes {
		sq += c * c
	}
	vol := math.Sqrt(sq / float64(len(changes)))

	dir := Falling
	if changes[len(changes)-1] > 0 {
		dir = Rising
	}
	return TrendSummary{
		VolatilityPercent: vol,
		Direction:         dir,
		IsCyclic:          vol > cyclicVolatilityPercent,
	}
}

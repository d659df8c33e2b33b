package analytics

import (
	"sort"

	"agristat/entities"
)

// ComputeEfficiencyMatrix ranks every record of referenceYear by its
// productivity relative to the unweighted national mean for that year.
//
// AnomalyCount looks at the whole history of the record's region, not only
// the reference year. An empty reference year yields an empty matrix; a zero
// national mean yields zero indices.
func ComputeEfficiencyMatrix(records []entities.CropRecord, referenceYear int) []RegionalEfficiencyEntry {
	var current []entities.CropRecord
	history := map[string][]entities.CropRecord{}
	for _, r := range records {
		if r.Year == referenceYear {
			current = append(current, r)
		}
		history[r.RegionCode] = append(history[r.RegionCode], r)
	}
	if len(current) == 0 {
		return []RegionalEfficiencyEntry{}
	}

	avg := NationalAverageProductivity(current)

	anomalies := map[string]int{}
	out := make([]RegionalEfficiencyEntry, 0, len(current))
	for _, r := range current {
		n, seen := anomalies[r.RegionCode]
		if !seen {
			n = len(DetectAnomalies(history[r.RegionCode]))
			anomalies[r.RegionCode] = n
		}
		idx := 0.0
		if avg != 0 {
			idx = r.Productivity / avg
		}
		out = append(out, RegionalEfficiencyEntry{
			RegionCode:      r.RegionCode,
			RegionGroup:     r.RegionGroup,
			CropType:        r.CropType,
			AvgProductivity: r.Productivity,
			TotalProduction: r.Production,
			EfficiencyIndex: idx,
			AnomalyCount:    n,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].EfficiencyIndex > out[j].EfficiencyIndex })
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// NationalAverageProductivity is the unweighted mean productivity of
// records, or zero for an empty slice.
func NationalAverageProductivity(records []entities.CropRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		sum += r.Productivity
	}
	return sum / float64(len(records))
}

// LatestYear returns the most recent year in records, or zero.
func LatestYear(records []entities.CropRecord) int {
	latest := 0
	for _, r := range records {
		if r.Year > latest {
			latest = r.Year
		}
	}
	return latest
}

package analytics

import (
	"math"
	"sort"

	"agristat/entities"
)

const (
	minAnomalyRecords = 4
	tukeyK            = 1.5
)

// Fences are the Tukey bounds computed from nearest-rank quartiles.
type Fences struct {
	Q1    float64 `json:"q1"`
	Q3    float64 `json:"q3"`
	IQR   float64 `json:"iqr"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// TukeyFences computes quartiles by nearest rank: Q1 = sorted[floor(n/4)],
// Q3 = sorted[floor(3n/4)]. ok is false below four values.
func TukeyFences(values []float64) (f Fences, ok bool) {
	n := len(values)
	if n < minAnomalyRecords {
		return Fences{}, false
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	f.Q1 = sorted[int(math.Floor(float64(n)*0.25))]
	f.Q3 = sorted[int(math.Floor(float64(n)*0.75))]
	f.IQR = f.Q3 - f.Q1
	f.Lower = f.Q1 - tukeyK*f.IQR
	f.Upper = f.Q3 + tukeyK*f.IQR
	return f, true
}

// Contains reports whether v lies inside the closed fence interval.
func (f Fences) Contains(v float64) bool { return v >= f.Lower && v <= f.Upper }

// DetectAnomalies returns the records of a single region whose production
// lies strictly outside the Tukey fences, in input order. Fewer than four
// records yield an empty slice.
func DetectAnomalies(records []entities.CropRecord) []entities.CropRecord {
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = r.Production
	}
	fences, ok := TukeyFences(values)
	if !ok {
		return []entities.CropRecord{}
	}

	out := []entities.CropRecord{}
	for _, r := range records {
		if !fences.Contains(r.Production) {
			out = append(out, r)
		}
	}
	return out
}

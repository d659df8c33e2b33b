package report

import (
	"io"

	"agristat/entities"
	analysis "agristat/pkg/analysis/service"
	"agristat/pkg/analytics"
)

// Bundle is everything the workbook shows.
type Bundle struct {
	Matrix      []analytics.RegionalEfficiencyEntry
	Projections map[string][]analytics.PredictionResult
	Anomalies   []entities.CropRecord
}

// Collect gathers the efficiency matrix for year and a projection plus the
// anomalies of every state. States with too little history get no
// projection row.
func Collect(a analysis.AnalysisService, states []string, year, horizon int) (*Bundle, error) {
	matrix, err := a.EfficiencyMatrix(year)
	if err != nil {
		return nil, err
	}
	b := &Bundle{
		Matrix:      matrix,
		Projections: map[string][]analytics.PredictionResult{},
		Anomalies:   []entities.CropRecord{},
	}
	for _, s := range states {
		p, err := a.Predict(s, "", horizon)
		if err != nil {
			return nil, err
		}
		if len(p.Predictions) > 0 {
			b.Projections[s] = p.Predictions
		}
		an, err := a.Anomalies(s)
		if err != nil {
			return nil, err
		}
		b.Anomalies = append(b.Anomalies, an...)
	}
	return b, nil
}

func (b *Bundle) WriteWorkbook(w io.Writer) error {
	return WriteWorkbook(w, b.Matrix, b.Projections, b.Anomalies)
}

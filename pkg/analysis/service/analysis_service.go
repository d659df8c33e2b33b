package service

import (
	"errors"

	"agristat/entities"
	"agristat/pkg/analytics"
)

var (
	ErrUnknownRegion  = errors.New("no records for region")
	ErrInvalidHorizon = errors.New("horizon out of range")
	ErrRecordNotFound = errors.New("record not found")
)

// Projection is a biennial-adjusted production forecast together with the
// history it was fitted on.
type Projection struct {
	RegionCode  string                       `json:"region_code"`
	CropType    string                       `json:"crop_type,omitempty"`
	History     []analytics.Point            `json:"history"`
	Predictions []analytics.PredictionResult `json:"predictions"`
}

type Overview struct {
	RegionCode      string                             `json:"region_code"`
	RegionGroup     entities.RegionGroup               `json:"region_group"`
	Latest          *entities.CropRecord               `json:"latest"`
	Projection      *Projection                        `json:"projection"`
	Trends          analytics.TrendSummary             `json:"trends"`
	Anomalies       []entities.CropRecord              `json:"anomalies"`
	Recommendations []string                           `json:"recommendations"`
	Efficiency      *analytics.RegionalEfficiencyEntry `json:"efficiency"`
}

type AnalysisService interface {
	// Predict projects production for a region, optionally narrowed to one
	// crop, horizon seasons ahead.
	Predict(region, crop string, horizon int) (*Projection, error)
	// EfficiencyMatrix ranks regions for year; 0 selects the configured
	// reference year or, failing that, the latest year stored.
	EfficiencyMatrix(year int) ([]analytics.RegionalEfficiencyEntry, error)
	Anomalies(region string) ([]entities.CropRecord, error)
	Trends(region string) (analytics.TrendSummary, error)
	RegionRecommendations(region string) ([]string, error)
	RecordRecommendations(id string) ([]string, error)
	Overview(region string, horizon int) (*Overview, error)
}

package serviceImp

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"agristat/entities"
	"agristat/pkg/analytics"
	svc "agristat/pkg/analysis/service"
	"agristat/pkg/record/repository"
)

type Config struct {
	MaxHorizon    int
	ReferenceYear int
}

type analysisSvc struct {
	repo repository.RecordRepository
	cfg  Config
}

func New(repo repository.RecordRepository, cfg Config) svc.AnalysisService {
	if cfg.MaxHorizon <= 0 {
		cfg.MaxHorizon = 10
	}
	return &analysisSvc{repo: repo, cfg: cfg}
}

// history returns a region's records, ErrUnknownRegion when there are none.
func (s *analysisSvc) history(region string) ([]entities.CropRecord, error) {
	recs, err := s.repo.ByRegion(region)
	if err != nil {
		return nil, fmt.Errorf("load region %s: %w", region, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%w: %s", svc.ErrUnknownRegion, strings.ToUpper(region))
	}
	return recs, nil
}

func (s *analysisSvc) Predict(region, crop string, horizon int) (*svc.Projection, error) {
	if horizon < 1 || horizon > s.cfg.MaxHorizon {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", svc.ErrInvalidHorizon, horizon, s.cfg.MaxHorizon)
	}
	recs, err := s.history(region)
	if err != nil {
		return nil, err
	}
	if crop != "" {
		recs = byCrop(recs, crop)
		if len(recs) == 0 {
			return nil, fmt.Errorf("%w: %s has no %q records", svc.ErrUnknownRegion, strings.ToUpper(region), crop)
		}
	}
	recs = analytics.SortByYear(recs)
	return &svc.Projection{
		RegionCode:  strings.ToUpper(region),
		CropType:    crop,
		History:     analytics.ProductionSeries(recs),
		Predictions: analytics.AdjustForBiennialCycle(recs, horizon),
	}, nil
}

func byCrop(recs []entities.CropRecord, crop string) []entities.CropRecord {
	var out []entities.CropRecord
	for _, r := range recs {
		if strings.EqualFold(strings.TrimSpace(r.CropType), strings.TrimSpace(crop)) {
			out = append(out, r)
		}
	}
	return out
}

func (s *analysisSvc) EfficiencyMatrix(year int) ([]analytics.RegionalEfficiencyEntry, error) {
	recs, err := s.repo.All()
	if err != nil {
		return nil, err
	}
	if year == 0 {
		year = s.cfg.ReferenceYear
	}
	if year == 0 {
		year = analytics.LatestYear(recs)
	}
	return analytics.ComputeEfficiencyMatrix(recs, year), nil
}

func (s *analysisSvc) Anomalies(region string) ([]entities.CropRecord, error) {
	recs, err := s.history(region)
	if err != nil {
		return nil, err
	}
	return analytics.DetectAnomalies(recs), nil
}

func (s *analysisSvc) Trends(region string) (analytics.TrendSummary, error) {
	recs, err := s.history(region)
	if err != nil {
		return analytics.TrendSummary{}, err
	}
	return analytics.AnalyzeTrends(recs), nil
}

// RegionRecommendations answers the insufficient-data message, not an
// error, for regions without records.
func (s *analysisSvc) RegionRecommendations(region string) ([]string, error) {
	latest, err := s.repo.LatestByRegion(region)
	if err != nil {
		return nil, err
	}
	return analytics.RecommendForRegion(latest), nil
}

func (s *analysisSvc) RecordRecommendations(id string) ([]string, error) {
	r, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", svc.ErrRecordNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return analytics.RecommendForRecord(*r), nil
}

func (s *analysisSvc) Overview(region string, horizon int) (*svc.Overview, error) {
	recs, err := s.history(region)
	if err != nil {
		return nil, err
	}
	proj, err := s.Predict(region, "", horizon)
	if err != nil {
		return nil, err
	}
	matrix, err := s.EfficiencyMatrix(0)
	if err != nil {
		return nil, err
	}

	code := strings.ToUpper(region)
	latest := analytics.LatestForRegion(recs, code)
	ov := &svc.Overview{
		RegionCode:      code,
		RegionGroup:     entities.RegionFor(code),
		Latest:          latest,
		Projection:      proj,
		Trends:          analytics.AnalyzeTrends(recs),
		Anomalies:       analytics.DetectAnomalies(recs),
		Recommendations: analytics.RecommendForRegion(latest),
	}
	for i := range matrix {
		if matrix[i].RegionCode == code {
			ov.Efficiency = &matrix[i]
			break
		}
	}
	return ov, nil
}

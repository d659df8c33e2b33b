package analytics

import (
	"fmt"

	"agristat/entities"
)

// Region-level advisories.
const (
	MsgInsufficientData = "Insufficient data for regional analysis."
	MsgDripIrrigation   = "Invest in drip irrigation systems to mitigate severe water stress."
	MsgCertification    = "High performance detected. Focus on specialty-coffee certification and traceability to add value."
	msgLowDensity       = "[ALERT] Low production density in %s. Denser planting and genetic renewal recommended."
	msgNitrogen         = "Nutrient replenishment estimate: %.2fkg of N/ha to sustain the current yield level."
)

// Record-level advisories.
const (
	MsgRenewal            = "Adopt irrigation systems and renew coffee stands to raise baseline productivity."
	MsgNutrientManagement = "Intensify nutrient management on large holdings to optimize fixed costs."
	MsgClimateRisk        = "Monitor climate variables closely to mitigate frost and prolonged drought risk."
	MsgMaintain           = "Maintain current protocols and invest in sustainability certifications."
)

const (
	lowDensityBagsPerHa   = 20.0
	highProductivityKgHa  = 3000.0
	nitrogenPerKgYield    = 0.12
	renewalProductivityKg = 1500.0
	largeAreaThousandHa   = 500.0
	nutrientProductivity  = 2500.0
)

// LatestForRegion returns the most recent record of regionCode, or nil.
// Among records of the same year the first one wins.
func LatestForRegion(records []entities.CropRecord, regionCode string) *entities.CropRecord {
	var latest *entities.CropRecord
	for i := range records {
		r := &records[i]
		if r.RegionCode != regionCode {
			continue
		}
		if latest == nil || r.Year > latest.Year {
			latest = r
		}
	}
	if latest == nil {
		return nil
	}
	cp := *latest
	return &cp
}

// RecommendForRegion builds guidance for a region from its latest record.
// A nil record yields a single insufficient-data advisory. The nitrogen
// estimate is always last.
func RecommendForRegion(latest *entities.CropRecord) []string {
	if latest == nil {
		return []string{MsgInsufficientData}
	}

	var out []string
	if latest.Area != 0 && latest.Production/latest.Area < lowDensityBagsPerHa {
		out = append(out, fmt.Sprintf(msgLowDensity, latest.RegionCode))
	}
	if latest.RegionGroup == entities.RegionNorth || latest.RegionGroup == entities.RegionNortheast {
		out = append(out, MsgDripIrrigation)
	}
	if latest.Productivity > highProductivityKgHa {
		out = append(out, MsgCertification)
	}
	out = append(out, fmt.Sprintf(msgNitrogen, latest.Productivity*nitrogenPerKgYield))
	return out
}

// RecommendForRecord builds generic guidance for a single record. When no
// rule fires the maintain-protocols advisory is returned.
func RecommendForRecord(r entities.CropRecord) []string {
	var out []string
	if r.Productivity < renewalProductivityKg {
		out = append(out, MsgRenewal)
	}
	if r.Area > largeAreaThousandHa && r.Productivity < nutrientProductivity {
		out = append(out, MsgNutrientManagement)
	}
	if r.RegionGroup == entities.RegionSoutheast && IsBiennialCrop(r.CropType) {
		out = append(out, MsgClimateRisk)
	}
	if len(out) == 0 {
		out = append(out, MsgMaintain)
	}
	return out
}

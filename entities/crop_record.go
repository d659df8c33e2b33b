package entities

import "time"

// CropRecord is one observation of a crop in a region-state for a season year.
// (RegionCode, Year, CropType) is unique within a dataset.
type CropRecord struct {
	ID           string      `gorm:"primaryKey" json:"id"`
	Year         int         `gorm:"uniqueIndex:idx_record_key,priority:2" json:"year"`
	RegionCode   string      `gorm:"uniqueIndex:idx_record_key,priority:1" json:"region_code"` // state abbreviation (MG, ES, ...)
	RegionGroup  RegionGroup `json:"region_group"`
	CropType     string      `gorm:"uniqueIndex:idx_record_key,priority:3" json:"crop_type"`
	Production   float64     `json:"production"`   // thousand 60kg bags
	Productivity float64     `json:"productivity"` // kg/ha
	Area         float64     `json:"area"`         // thousand ha
	CapturedAt   time.Time   `json:"captured_at"`
}

// BagWeightKG is the weight of one bag of coffee.
const BagWeightKG = 60.0

// CalculateProductivity converts production (bags) over area into kg/ha.
// Zero area yields zero.
func CalculateProductivity(production, area float64) float64 {
	if area == 0 {
		return 0
	}
	return production * BagWeightKG / area
}

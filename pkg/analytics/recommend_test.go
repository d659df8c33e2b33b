package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agristat/entities"
)

func TestRecommendForRegionWithoutData(t *testing.T) {
	assert.Equal(t, []string{MsgInsufficientData}, RecommendForRegion(nil))
}

func TestRecommendForRegionRules(t *testing.T) {
	tests := []struct {
		name   string
		record entities.CropRecord
		want   []string
	}{
		{
			name:   "northeast gets irrigation note",
			record: entities.CropRecord{RegionCode: "BA", RegionGroup: entities.RegionNortheast, Production: 4250, Area: 175, Productivity: 1460},
			want: []string{
				MsgDripIrrigation,
				"Nutrient replenishment estimate: 175.20kg of N/ha to sustain the current yield level.",
			},
		},
		{
			name:   "high productivity",
			record: entities.CropRecord{RegionCode: "ES", RegionGroup: entities.RegionSoutheast, Production: 16100, Area: 296, Productivity: 3260},
			want: []string{
				MsgCertification,
				"Nutrient replenishment estimate: 391.20kg of N/ha to sustain the current yield level.",
			},
		},
		{
			name:   "every rule fires in fixed order",
			record: entities.CropRecord{RegionCode: "RO", RegionGroup: entities.RegionNorth, Production: 100, Area: 10, Productivity: 3500},
			want: []string{
				"[ALERT] Low production density in RO. Denser planting and genetic renewal recommended.",
				MsgDripIrrigation,
				MsgCertification,
				"Nutrient replenishment estimate: 420.00kg of N/ha to sustain the current yield level.",
			},
		},
		{
			name:   "zero area skips density rule",
			record: entities.CropRecord{RegionCode: "SP", RegionGroup: entities.RegionSoutheast, Production: 0, Area: 0, Productivity: 0},
			want: []string{
				"Nutrient replenishment estimate: 0.00kg of N/ha to sustain the current yield level.",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.record
			assert.Equal(t, tt.want, RecommendForRegion(&r))
		})
	}
}

func TestLatestForRegion(t *testing.T) {
	records := []entities.CropRecord{
		{ID: "mg-2024", Year: 2024, RegionCode: "MG"},
		{ID: "mg-2026a", Year: 2026, RegionCode: "MG"},
		{ID: "es-2027", Year: 2027, RegionCode: "ES"},
		{ID: "mg-2026b", Year: 2026, RegionCode: "MG"},
	}
	got := LatestForRegion(records, "MG")
	require.NotNil(t, got)
	assert.Equal(t, "mg-2026a", got.ID)

	got.ID = "changed"
	assert.Equal(t, "mg-2026a", records[1].ID, "result is a copy")

	assert.Nil(t, LatestForRegion(records, "BA"))
	assert.Nil(t, LatestForRegion(nil, "MG"))
}

func TestRecommendForRecord(t *testing.T) {
	tests := []struct {
		name   string
		record entities.CropRecord
		want   []string
	}{
		{
			name:   "large low-yield arabica holding in the southeast",
			record: entities.CropRecord{RegionGroup: entities.RegionSoutheast, CropType: "Café Arábica", Area: 1100, Productivity: 1210},
			want:   []string{MsgRenewal, MsgNutrientManagement, MsgClimateRisk},
		},
		{
			name:   "productive conillon",
			record: entities.CropRecord{RegionGroup: entities.RegionSoutheast, CropType: "Café Conillon", Area: 296, Productivity: 3260},
			want:   []string{MsgMaintain},
		},
		{
			name:   "arabica outside the southeast",
			record: entities.CropRecord{RegionGroup: entities.RegionSouth, CropType: "Café Arábica", Area: 41, Productivity: 1250},
			want:   []string{MsgRenewal},
		},
		{
			name:   "large area mid productivity",
			record: entities.CropRecord{RegionGroup: entities.RegionMidwest, CropType: "Café Robusta", Area: 600, Productivity: 2000},
			want:   []string{MsgNutrientManagement},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RecommendForRecord(tt.record))
		})
	}
}

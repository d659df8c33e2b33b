package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"agristat/entities"
	"agristat/pkg/analytics"
	"agristat/pkg/ingest"
)

var sample = []entities.CropRecord{
	{ID: "mg-2025", Year: 2025, RegionCode: "MG", RegionGroup: entities.RegionSoutheast, CropType: "Café Arábica", Production: 32800, Productivity: 1790, Area: 1100, CapturedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
	{ID: "es-2025", Year: 2025, RegionCode: "ES", RegionGroup: entities.RegionSoutheast, CropType: "Café Conillon", Production: 15400.5, Productivity: 3120, Area: 296, CapturedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
}

func TestWriteCSVRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Equal(t, "id,year,state,region,crop,production,productivity,area,captured_at", string(lines[0]))
	assert.Equal(t, "es-2025,2025,ES,SOUTHEAST,Café Conillon,15400.5,3120,296,2026-01-02T00:00:00Z", string(lines[2]))

	back, err := ingest.ParseCSV(&buf)
	require.NoError(t, err)
	require.Len(t, back, 2)
	assert.Equal(t, "MG", back[0].RegionCode)
	assert.Equal(t, 15400.5, back[1].Production)
	assert.Equal(t, 3120.0, back[1].Productivity)
}

func TestWriteWorkbook(t *testing.T) {
	matrix := analytics.ComputeEfficiencyMatrix(sample, 2025)
	mg := []entities.CropRecord{sample[0], {Year: 2026, RegionCode: "MG", CropType: "Café Arábica", Production: 34100}}
	projections := map[string][]analytics.PredictionResult{"MG": analytics.AdjustForBiennialCycle(mg, 2)}

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, matrix, projections, sample[:1]))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SheetEfficiency, SheetProjections, SheetAnomalies}, f.GetSheetList())

	eff, err := f.GetRows(SheetEfficiency)
	require.NoError(t, err)
	require.Len(t, eff, 3)
	assert.Equal(t, "Rank", eff[0][0])
	assert.Equal(t, []string{"1", "ES"}, eff[1][:2])

	proj, err := f.GetRows(SheetProjections)
	require.NoError(t, err)
	require.Len(t, proj, 3)
	assert.Equal(t, []string{"MG", "2027"}, proj[1][:2])

	an, err := f.GetRows(SheetAnomalies)
	require.NoError(t, err)
	require.Len(t, an, 2)
	assert.Equal(t, "mg-2025", an[1][0])
}

func TestWriteWorkbookEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, nil, nil, nil))
	assert.NotZero(t, buf.Len())
}

func TestWriteProjectionChart(t *testing.T) {
	mg := []entities.CropRecord{sample[0], {Year: 2026, RegionCode: "MG", CropType: "Café Arábica", Production: 34100}}
	history := analytics.ProductionSeries(mg)
	preds := analytics.AdjustForBiennialCycle(mg, 3)

	var buf bytes.Buffer
	require.NoError(t, WriteProjectionChart(&buf, history, preds, "MG"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	assert.ErrorIs(t, WriteProjectionChart(&buf, nil, nil, "empty"), ErrNoSeries)
}

// Package report renders analysis results for people: an XLSX workbook, a
// CSV dump of the dataset and a PNG projection chart.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"agristat/entities"
	"agristat/pkg/analytics"
)

const (
	SheetEfficiency  = "Efficiency"
	SheetProjections = "Projections"
	SheetAnomalies   = "Anomalies"
)

var (
	efficiencyHeader = []interface{}{"Rank", "State", "Region", "Crop", "Avg Productivity (kg/ha)", "Total Production (k bags)", "Efficiency Index", "Anomalies"}
	projectionHeader = []interface{}{"State", "Target Year", "Predicted", "Lower Bound", "Upper Bound", "Growth (%)", "Confidence", "Derivation"}
	anomalyHeader    = []interface{}{"ID", "Year", "State", "Region", "Crop", "Production (k bags)", "Productivity (kg/ha)", "Area (k ha)"}
)

// WriteWorkbook writes one sheet per result set. projections is keyed by
// state code; sheets list states in alphabetical order.
func WriteWorkbook(w io.Writer, matrix []analytics.RegionalEfficiencyEntry, projections map[string][]analytics.PredictionResult, anomalies []entities.CropRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetEfficiency); err != nil {
		return err
	}
	for _, s := range []string{SheetProjections, SheetAnomalies} {
		if _, err := f.NewSheet(s); err != nil {
			return fmt.Errorf("new sheet %s: %w", s, err)
		}
	}

	rows := [][]interface{}{efficiencyHeader}
	for _, e := range matrix {
		rows = append(rows, []interface{}{e.Rank, e.RegionCode, string(e.RegionGroup), e.CropType, e.AvgProductivity, e.TotalProduction, e.EfficiencyIndex, e.AnomalyCount})
	}
	if err := writeRows(f, SheetEfficiency, rows); err != nil {
		return err
	}

	states := make([]string, 0, len(projections))
	for s := range projections {
		states = append(states, s)
	}
	sort.Strings(states)
	rows = [][]interface{}{projectionHeader}
	for _, s := range states {
		for _, p := range projections[s] {
			rows = append(rows, []interface{}{s, p.TargetYear, p.PredictedValue, p.LowerBound, p.UpperBound, p.GrowthRatePercent, p.ConfidenceScore, strings.Join(p.DerivationNotes, "; ")})
		}
	}
	if err := writeRows(f, SheetProjections, rows); err != nil {
		return err
	}

	rows = [][]interface{}{anomalyHeader}
	for _, r := range anomalies {
		rows = append(rows, []interface{}{r.ID, r.Year, r.RegionCode, string(r.RegionGroup), r.CropType, r.Production, r.Productivity, r.Area})
	}
	if err := writeRows(f, SheetAnomalies, rows); err != nil {
		return err
	}

	_, err := f.WriteTo(w)
	return err
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	last, _ := excelize.ColumnNumberToName(len(rows[0]))
	return f.SetColWidth(sheet, "A", last, 18)
}

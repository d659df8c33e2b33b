package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"agristat/entities"
	"agristat/pkg/analytics"
)

func newTable(w io.Writer, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	return t
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderMatrix(w io.Writer, m []analytics.RegionalEfficiencyEntry) {
	if len(m) == 0 {
		_, _ = fmt.Fprintln(w, "(no records for that year)")
		return
	}
	t := newTable(w, table.Row{"#", "State", "Region", "Crop", "Productivity", "Production", "Index", "Anomalies"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})
	for _, e := range m {
		t.AppendRow(table.Row{e.Rank, e.RegionCode, e.RegionGroup, e.CropType,
			fmt.Sprintf("%.0f", e.AvgProductivity), fmt.Sprintf("%.0f", e.TotalProduction),
			fmt.Sprintf("%.3f", e.EfficiencyIndex), e.AnomalyCount})
	}
	t.Render()
}

func renderPredictions(w io.Writer, preds []analytics.PredictionResult) {
	if len(preds) == 0 {
		_, _ = fmt.Fprintln(w, "(not enough history to project)")
		return
	}
	t := newTable(w, table.Row{"Season", "Predicted", "Lower", "Upper", "Growth %", "Confidence"})
	for _, p := range preds {
		t.AppendRow(table.Row{p.TargetYear,
			fmt.Sprintf("%.1f", p.PredictedValue), fmt.Sprintf("%.1f", p.LowerBound), fmt.Sprintf("%.1f", p.UpperBound),
			fmt.Sprintf("%.2f", p.GrowthRatePercent), fmt.Sprintf("%.2f", p.ConfidenceScore)})
	}
	t.AppendFooter(table.Row{"", strings.Join(preds[0].DerivationNotes[:2], "  ")})
	t.Render()
}

func renderRecords(w io.Writer, recs []entities.CropRecord) {
	if len(recs) == 0 {
		_, _ = fmt.Fprintln(w, "(none)")
		return
	}
	t := newTable(w, table.Row{"ID", "Year", "State", "Crop", "Production", "Productivity", "Area"})
	for _, r := range recs {
		t.AppendRow(table.Row{r.ID, r.Year, r.RegionCode, r.CropType,
			fmt.Sprintf("%.0f", r.Production), fmt.Sprintf("%.0f", r.Productivity), fmt.Sprintf("%.0f", r.Area)})
	}
	t.Render()
}

func renderList(w io.Writer, items []string) {
	for i, s := range items {
		_, _ = fmt.Fprintf(w, "%d. %s\n", i+1, s)
	}
}

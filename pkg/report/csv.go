package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"agristat/entities"
)

var csvHeader = []string{"id", "year", "state", "region", "crop", "production", "productivity", "area", "captured_at"}

// WriteCSV dumps records in the column layout ingest.ParseCSV reads back.
func WriteCSV(w io.Writer, records []entities.CropRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.ID,
			strconv.Itoa(r.Year),
			r.RegionCode,
			string(r.RegionGroup),
			r.CropType,
			strconv.FormatFloat(r.Production, 'f', -1, 64),
			strconv.FormatFloat(r.Productivity, 'f', -1, 64),
			strconv.FormatFloat(r.Area, 'f', -1, 64),
			r.CapturedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

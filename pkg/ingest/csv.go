package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"agristat/entities"
)

// ParseCSV reads a CONAB series export with a header row.
func ParseCSV(r io.Reader) ([]entities.CropRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var matrix [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read csv: %w", err)
		}
		matrix = append(matrix, rec)
	}
	return rows(matrix, time.Now().UTC(), parseNumber)
}

package ingest

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"agristat/entities"
)

// ParseXLSX reads records from sheet, or from the first sheet when sheet is
// empty.
func ParseXLSX(r io.Reader, sheet string) ([]entities.CropRecord, error) {
	x, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer x.Close()

	if sheet == "" {
		sheets := x.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmptyInput
		}
		sheet = sheets[0]
	}
	matrix, err := x.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows(matrix, time.Now().UTC(), parseNumber)
}

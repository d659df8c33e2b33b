package ingest

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"agristat/entities"
)

// ParseHTMLTable extracts records from the first <table> of a saved CONAB
// page whose header row carries the required columns.
func ParseHTMLTable(r io.Reader) ([]entities.CropRecord, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	now := time.Now().UTC()
	var (
		out     []entities.CropRecord
		lastErr error = ErrEmptyInput
		found   bool
	)
	doc.Find("table").EachWithBreak(func(_ int, tbl *goquery.Selection) bool {
		matrix := tableMatrix(tbl)
		if len(matrix) == 0 {
			return true
		}
		recs, err := rows(matrix, now, parseBRNumber)
		if err != nil {
			lastErr = err
			return true
		}
		out, found = recs, true
		return false
	})
	if !found {
		return nil, lastErr
	}
	return out, nil
}

func tableMatrix(tbl *goquery.Selection) [][]string {
	var matrix [][]string
	tbl.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, strings.Join(strings.Fields(cell.Text()), " "))
		})
		if len(row) > 0 {
			matrix = append(matrix, row)
		}
	})
	return matrix
}

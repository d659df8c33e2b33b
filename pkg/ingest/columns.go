// Package ingest turns raw CONAB series-history exports (CSV, XLSX, HTML
// tables) into validated crop records.
package ingest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"agristat/entities"
)

var (
	ErrEmptyInput     = errors.New("ingest: no header row")
	ErrMissingColumns = errors.New("ingest: missing required columns")

	errEmptyNumber = errors.New("empty number")
)

// header aliases, compared after norm()
var (
	stateKeys        = []string{"state", "uf", "region_code", "estado"}
	yearKeys         = []string{"year", "ano", "safra", "season"}
	productionKeys   = []string{"production", "producao", "produção"}
	areaKeys         = []string{"area", "área", "planted_area", "area_plantada"}
	cropKeys         = []string{"crop", "crop_type", "cultura", "cultivo"}
	productivityKeys = []string{"productivity", "produtividade", "yield"}
)

func norm(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF") // BOM
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

type columnMap struct {
	state, year, production, area, crop int
	productivity                        int // -1 when absent
	number                              func(string) (float64, error)
}

func mapColumns(head []string) (columnMap, error) {
	if len(head) == 0 {
		return columnMap{}, ErrEmptyInput
	}
	hmap := map[string]int{}
	for i, h := range head {
		if _, dup := hmap[norm(h)]; !dup {
			hmap[norm(h)] = i
		}
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[norm(k)]; ok {
				return idx
			}
		}
		return -1
	}

	m := columnMap{
		state:        findAny(stateKeys...),
		year:         findAny(yearKeys...),
		production:   findAny(productionKeys...),
		area:         findAny(areaKeys...),
		crop:         findAny(cropKeys...),
		productivity: findAny(productivityKeys...),
	}
	var missing []string
	for _, c := range []struct {
		name string
		idx  int
	}{{"state", m.state}, {"year", m.year}, {"production", m.production}, {"area", m.area}, {"crop", m.crop}} {
		if c.idx == -1 {
			missing = append(missing, c.name)
		}
	}
	if len(missing) > 0 {
		return columnMap{}, fmt.Errorf("%w %v; found headers %v", ErrMissingColumns, missing, head)
	}
	return m, nil
}

// recordID derives the stable ID of a season from its natural key, so the
// same state, year and crop map to one row whatever their file position.
func recordID(state string, year int, crop string) string {
	return fmt.Sprintf("conab-%s-%d-%s", state, year, slug(crop))
}

// slug lowercases s and collapses every run of non-alphanumerics into '-'.
func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}

// record builds a CropRecord from one data row. Rows too short for the
// required columns or with unparsable numbers are skipped (ok=false).
func (m columnMap) record(row []string, now time.Time) (entities.CropRecord, bool) {
	get := func(idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}
	for _, idx := range []int{m.state, m.year, m.production, m.area, m.crop} {
		if idx >= len(row) {
			return entities.CropRecord{}, false
		}
	}

	state := strings.ToUpper(get(m.state))
	year, err := strconv.Atoi(get(m.year))
	if err != nil || state == "" {
		return entities.CropRecord{}, false
	}
	production, err := m.number(get(m.production))
	if err != nil {
		return entities.CropRecord{}, false
	}
	area, err := m.number(get(m.area))
	if err != nil {
		return entities.CropRecord{}, false
	}

	productivity := entities.CalculateProductivity(production, area)
	if v := get(m.productivity); v != "" {
		if p, err := m.number(v); err == nil && p > 0 {
			productivity = p
		}
	}

	crop := get(m.crop)
	return entities.CropRecord{
		ID:           recordID(state, year, crop),
		Year:         year,
		RegionCode:   state,
		RegionGroup:  entities.RegionFor(state),
		CropType:     crop,
		Production:   production,
		Productivity: productivity,
		Area:         area,
		CapturedAt:   now,
	}, true
}

// rows converts a header + data matrix into records, parsing numeric cells
// with number.
func rows(matrix [][]string, now time.Time, number func(string) (float64, error)) ([]entities.CropRecord, error) {
	if len(matrix) == 0 {
		return nil, ErrEmptyInput
	}
	m, err := mapColumns(matrix[0])
	if err != nil {
		return nil, err
	}
	m.number = number
	out := make([]entities.CropRecord, 0, len(matrix)-1)
	for _, row := range matrix[1:] {
		if blank(row) {
			continue
		}
		if r, ok := m.record(row, now); ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseNumber accepts plain ("34100.5") and mixed ("34.100,5", "34,100.5")
// notation. A lone comma is a decimal separator.
func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" || s == "-" {
		return 0, errEmptyNumber
	}
	dot, comma := strings.LastIndex(s, "."), strings.LastIndex(s, ",")
	switch {
	case dot >= 0 && comma >= 0 && comma > dot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case dot >= 0 && comma >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case comma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}
	return strconv.ParseFloat(s, 64)
}

// parseBRNumber reads Brazilian notation, where dots only group thousands
// ("1.100" is eleven hundred).
func parseBRNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" || s == "-" {
		return 0, errEmptyNumber
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)
	return strconv.ParseFloat(s, 64)
}

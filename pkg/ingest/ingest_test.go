package ingest

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"agristat/entities"
)

func TestParseCSVSnapshot(t *testing.T) {
	recs, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, recs, 2)

	mg := recs[0]
	assert.Equal(t, "conab-MG-2026-café-arábica", mg.ID)
	assert.Equal(t, 2026, mg.Year)
	assert.Equal(t, "MG", mg.RegionCode)
	assert.Equal(t, entities.RegionSoutheast, mg.RegionGroup)
	assert.Equal(t, "Café Arábica", mg.CropType)
	assert.Equal(t, 34100.0, mg.Production)
	assert.Equal(t, 1100.0, mg.Area)
	assert.InDelta(t, 1860.0, mg.Productivity, 1e-9)
	assert.False(t, mg.CapturedAt.IsZero())

	assert.Equal(t, "conab-ES-2026-café-conillon", recs[1].ID)
}

func TestParseCSVHeaderAliases(t *testing.T) {
	in := "\uFEFFUF;Ano;Produção;Área;Cultura;Produtividade\n"
	in = strings.ReplaceAll(in, ";", ",") +
		"ba,2024,4100,175,Café Arábica,1405\n" +
		"xx,2024,10,0,Café Robusta,\n"

	recs, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "BA", recs[0].RegionCode)
	assert.Equal(t, entities.RegionNortheast, recs[0].RegionGroup)
	assert.Equal(t, 1405.0, recs[0].Productivity, "explicit productivity wins")

	assert.Equal(t, entities.RegionSoutheast, recs[1].RegionGroup, "unmapped code falls back")
	assert.Equal(t, 0.0, recs[1].Productivity, "zero area gives zero productivity")
}

func TestParseCSVSkipsBadRows(t *testing.T) {
	in := "state,year,production,area,crop\n" +
		"MG,2025,32800,1100,Café Arábica\n" +
		"MG,twenty,1,1,Café Arábica\n" +
		"ES,2025\n" +
		",,,,\n" +
		"SP,2024,5.400,200,Café Arábica\n"

	recs, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "MG", recs[0].RegionCode)
	assert.Equal(t, "SP", recs[1].RegionCode)
	assert.Equal(t, 5.4, recs[1].Production)
	assert.Equal(t, "conab-SP-2024-café-arábica", recs[1].ID)
}

func TestParseCSVIDsFollowNaturalKey(t *testing.T) {
	head := "state,year,production,area,crop\n"
	first, err := ParseCSV(strings.NewReader(head +
		"MG,2026,34100,1100,Café Arábica\n" +
		"ES,2026,16100,296,Café  Conillon (ES)\n"))
	require.NoError(t, err)
	moved, err := ParseCSV(strings.NewReader(head +
		"ES,2026,16100,296,Café  Conillon (ES)\n" +
		"MG,2026,34100,1100,Café Arábica\n"))
	require.NoError(t, err)

	assert.Equal(t, first[0].ID, moved[1].ID, "row order does not change ids")
	assert.Equal(t, first[1].ID, moved[0].ID)
	assert.Equal(t, "conab-ES-2026-café-conillon-es", first[1].ID)
	assert.Equal(t, "", slug(" -- "))
}

func TestParseCSVMissingColumns(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("state,year,area\nMG,2026,10\n"))
	assert.ErrorIs(t, err, ErrMissingColumns)

	_, err = ParseCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"34100", 34100},
		{"34100.5", 34100.5},
		{"34.100,5", 34100.5},
		{"34,100.5", 34100.5},
		{"1.234.567", 1234567},
		{"12,5", 12.5},
		{" 7 ", 7},
	}
	for _, tt := range tests {
		got, err := parseNumber(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	_, err := parseNumber("-")
	assert.Error(t, err)
	_, err = parseNumber("abc")
	assert.Error(t, err)
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	data := [][]any{
		{"Estado", "Ano", "Produção", "Área", "Cultura"},
		{"RO", 2026, 3120, 65, "Café Robusta"},
		{"PR", 2026, 850, 41, "Café Arábica"},
	}
	for i, row := range data {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	recs, err := ParseXLSX(&buf, "")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, entities.RegionNorth, recs[0].RegionGroup)
	assert.InDelta(t, 3120.0*60/65, recs[0].Productivity, 1e-9)
	assert.Equal(t, entities.RegionSouth, recs[1].RegionGroup)
}

const conabPage = `<html><body>
<table><tr><td>Menu</td></tr></table>
<table>
  <thead><tr><th>UF</th><th>Safra</th><th>Produção</th><th>Área</th><th>Cultura</th></tr></thead>
  <tbody>
    <tr><td>MG</td><td>2026</td><td>34.100,0</td><td>1.100</td><td>Café Arábica</td></tr>
    <tr><td>ES</td><td>2026</td><td>16.100,0</td><td>296</td><td>Café
        Conillon</td></tr>
  </tbody>
</table>
</body></html>`

func TestParseHTMLTable(t *testing.T) {
	recs, err := ParseHTMLTable(strings.NewReader(conabPage))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 34100.0, recs[0].Production)
	assert.Equal(t, 1100.0, recs[0].Area)
	assert.Equal(t, "Café Conillon", recs[1].CropType)
}

func TestParseHTMLTableWithoutData(t *testing.T) {
	_, err := ParseHTMLTable(strings.NewReader("<table><tr><th>a</th></tr></table>"))
	assert.ErrorIs(t, err, ErrMissingColumns)

	_, err = ParseHTMLTable(strings.NewReader("<p>nothing</p>"))
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestValidate(t *testing.T) {
	recs := []entities.CropRecord{
		{RegionCode: "MG", Year: 2026, Production: 10, Area: 1, Productivity: 600},
		{RegionCode: "ES", Year: 1980, Production: -1, Area: -2, Productivity: 12000},
	}
	res := Validate(recs)
	assert.False(t, res.Valid)
	assert.Equal(t, []string{
		"[row 1] negative production in ES (1980).",
		"[row 1] negative planted area in ES (1980).",
		"[row 1] year outside operating range: 1980.",
		"[row 1] anomalous productivity (>10000 kg/ha) in ES. Check units.",
	}, res.Errors)

	assert.True(t, Validate(recs[:1]).Valid)
	assert.NotNil(t, Validate(nil).Errors)

	v := DefaultValidator()
	v.MaxYear = 2025
	assert.False(t, v.Validate(recs[:1]).Valid)
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conab.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	src := FileSource{Path: path}
	rc, format, err := src.Fetch(context.Background())
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, FormatCSV, format)

	recs, err := Decode(rc, format)
	require.NoError(t, err)
	assert.Len(t, recs, 2)

	_, _, err = FileSource{Path: filepath.Join(dir, "conab.pdf")}.Fetch(context.Background())
	assert.Error(t, err)
}

func TestSampleSource(t *testing.T) {
	rc, format, err := SampleSource{}.Fetch(context.Background())
	require.NoError(t, err)
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, format)
	assert.Contains(t, string(b), "MG,2026")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = SampleSource{}.Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecodeUnsupported(t *testing.T) {
	_, err := Decode(strings.NewReader(""), Format("pdf"))
	assert.Error(t, err)
}

package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"agristat/entities"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatHTML Format = "html"
)

// Source yields a raw export to be decoded.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (io.ReadCloser, Format, error)
}

// Decode dispatches to the parser for format.
func Decode(r io.Reader, format Format) ([]entities.CropRecord, error) {
	switch format {
	case FormatCSV:
		return ParseCSV(r)
	case FormatXLSX:
		return ParseXLSX(r, "")
	case FormatHTML:
		return ParseHTMLTable(r)
	}
	return nil, fmt.Errorf("ingest: unsupported format %q", format)
}

// FormatFor guesses the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".html", ".htm":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("ingest: cannot infer format of %s", path)
}

// FileSource reads an export saved on disk.
type FileSource struct{ Path string }

func (s FileSource) Name() string { return "file:" + s.Path }

func (s FileSource) Fetch(ctx context.Context) (io.ReadCloser, Format, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	format, err := FormatFor(s.Path)
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", s.Path, err)
	}
	return f, format, nil
}

// sampleCSV is the snapshot served when no data file is configured.
const sampleCSV = `state,year,production,area,cropType
MG,2026,34100,1100,Café Arábica
ES,2026,16100,296,Café Conillon
`

// SampleSource serves a fixed snapshot of the latest season. It stands in
// for the CONAB portal, which is never contacted.
type SampleSource struct{}

func (SampleSource) Name() string { return "sample" }

func (SampleSource) Fetch(ctx context.Context) (io.ReadCloser, Format, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	return io.NopCloser(strings.NewReader(sampleCSV)), FormatCSV, nil
}

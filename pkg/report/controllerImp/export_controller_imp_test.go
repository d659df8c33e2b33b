package controllerImp

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"agristat/database"
	"agristat/pkg/analysis/serviceImp"
	"agristat/pkg/record"
	"agristat/pkg/record/repositoryImp"
	"agristat/pkg/report"
)

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	return newServerWithHorizon(t, 10)
}

func newServerWithHorizon(t *testing.T, maxHorizon int) *echo.Echo {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	repo := repositoryImp.New(db)
	require.NoError(t, repo.UpsertMany(record.HistoricalData(time.Now().UTC())))

	e := echo.New()
	New(repo, serviceImp.New(repo, serviceImp.Config{MaxHorizon: maxHorizon}), maxHorizon).Register(e.Group("/api/v1"))
	return e
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRecordsCSV(t *testing.T) {
	rec := get(newServer(t), "/api/v1/export/records.csv")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), "text/csv"))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "records.csv")
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	assert.Len(t, lines, 38)
}

func TestReportXLSX(t *testing.T) {
	rec := get(newServer(t), "/api/v1/export/report.xlsx")
	require.Equal(t, http.StatusOK, rec.Code)

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	eff, err := f.GetRows(report.SheetEfficiency)
	require.NoError(t, err)
	assert.Len(t, eff, 10)

	assert.Equal(t, http.StatusBadRequest, get(newServer(t), "/api/v1/export/report.xlsx?year=abc").Code)
}

func TestProjectionPNG(t *testing.T) {
	e := newServer(t)

	rec := get(e, "/api/v1/export/projection.png?state=mg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	assert.Equal(t, http.StatusBadRequest, get(e, "/api/v1/export/projection.png").Code)
	assert.Equal(t, http.StatusNotFound, get(e, "/api/v1/export/projection.png?state=XX").Code)
}

func TestExportsRespectSmallMaxHorizon(t *testing.T) {
	for _, limit := range []int{1, 2} {
		e := newServerWithHorizon(t, limit)

		rec := get(e, "/api/v1/export/report.xlsx")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
		require.NoError(t, err)
		f.Close()

		rec = get(e, "/api/v1/export/projection.png?state=MG")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))
	}
}

func TestExportHorizonBeyondServiceLimit(t *testing.T) {
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	repo := repositoryImp.New(db)
	require.NoError(t, repo.UpsertMany(record.HistoricalData(time.Now().UTC())))

	// controller left uncapped while the service only allows one season
	e := echo.New()
	New(repo, serviceImp.New(repo, serviceImp.Config{MaxHorizon: 1}), 0).Register(e.Group("/api/v1"))

	assert.Equal(t, http.StatusBadRequest, get(e, "/api/v1/export/report.xlsx").Code)
	assert.Equal(t, http.StatusBadRequest, get(e, "/api/v1/export/projection.png?state=MG").Code)
}

package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agristat/database"
	"agristat/pkg/analysis/service"
	"agristat/pkg/analysis/serviceImp"
	"agristat/pkg/analytics"
	"agristat/pkg/record"
	"agristat/pkg/record/repositoryImp"
)

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	repo := repositoryImp.New(db)
	require.NoError(t, repo.UpsertMany(record.HistoricalData(time.Now().UTC())))

	e := echo.New()
	New(serviceImp.New(repo, serviceImp.Config{MaxHorizon: 10})).Register(e.Group("/api/v1"))
	return e
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestStatusCodes(t *testing.T) {
	e := newServer(t)

	tests := []struct {
		target string
		code   int
	}{
		{"/api/v1/analytics/efficiency", http.StatusOK},
		{"/api/v1/analytics/efficiency?year=x", http.StatusBadRequest},
		{"/api/v1/analytics/regions/MG/prediction", http.StatusOK},
		{"/api/v1/analytics/regions/MG/prediction?horizon=0", http.StatusBadRequest},
		{"/api/v1/analytics/regions/MG/prediction?horizon=11", http.StatusBadRequest},
		{"/api/v1/analytics/regions/MG/prediction?horizon=abc", http.StatusBadRequest},
		{"/api/v1/analytics/regions/XX/prediction", http.StatusNotFound},
		{"/api/v1/analytics/regions/SP/anomalies", http.StatusOK},
		{"/api/v1/analytics/regions/XX/trends", http.StatusNotFound},
		{"/api/v1/analytics/regions/XX/recommendations", http.StatusOK},
		{"/api/v1/analytics/records/mg-2026/recommendations", http.StatusOK},
		{"/api/v1/analytics/records/none/recommendations", http.StatusNotFound},
		{"/api/v1/analytics/regions/ES/overview?horizon=2", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			assert.Equal(t, tt.code, get(e, tt.target).Code, get(e, tt.target).Body.String())
		})
	}
}

func TestPredictionBody(t *testing.T) {
	e := newServer(t)

	rec := get(e, "/api/v1/analytics/regions/es/prediction?horizon=4")
	require.Equal(t, http.StatusOK, rec.Code)
	var p service.Projection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "ES", p.RegionCode)
	require.Len(t, p.Predictions, 4)
	assert.Equal(t, 2027, p.Predictions[0].TargetYear)
	assert.Contains(t, p.Predictions[0].DerivationNotes, "B_f = 1.00 (no biennial cycle)")
}

func TestEfficiencyBody(t *testing.T) {
	e := newServer(t)

	rec := get(e, "/api/v1/analytics/efficiency?year=2026")
	require.Equal(t, http.StatusOK, rec.Code)
	var m []analytics.RegionalEfficiencyEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	require.Len(t, m, 9)
	assert.Equal(t, "ES", m[0].RegionCode)
}

package controllerImp

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	analysis "agristat/pkg/analysis/service"
	"agristat/pkg/record/repository"
	"agristat/pkg/report"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeCSV  = "text/csv; charset=utf-8"
	mimePNG  = "image/png"

	reportHorizon = 3
)

type ExportCtrl struct {
	repo     repository.RecordRepository
	analysis analysis.AnalysisService
	horizon  int
}

// New builds the export handlers. Projections cover reportHorizon seasons,
// capped at maxHorizon when it is positive.
func New(repo repository.RecordRepository, a analysis.AnalysisService, maxHorizon int) *ExportCtrl {
	h := reportHorizon
	if maxHorizon > 0 && maxHorizon < h {
		h = maxHorizon
	}
	return &ExportCtrl{repo: repo, analysis: a, horizon: h}
}

func fail(c echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, analysis.ErrInvalidHorizon):
		code = http.StatusBadRequest
	case errors.Is(err, analysis.ErrUnknownRegion):
		code = http.StatusNotFound
	}
	return c.JSON(code, echo.Map{"error": err.Error()})
}

func (h *ExportCtrl) Register(g *echo.Group) {
	x := g.Group("/export")
	x.GET("/records.csv", h.records)
	x.GET("/report.xlsx", h.workbook)
	x.GET("/projection.png", h.chart)
}

func attachment(c echo.Context, name string) {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
}

func (h *ExportCtrl) records(c echo.Context) error {
	recs, err := h.repo.All()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, recs); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	attachment(c, "records.csv")
	return c.Blob(http.StatusOK, mimeCSV, buf.Bytes())
}

// workbook bundles the efficiency matrix (?year=, default latest), a
// projection for every state and the anomalies of every state.
func (h *ExportCtrl) workbook(c echo.Context) error {
	var year int
	if v := c.QueryParam("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid year"})
		}
		year = y
	}
	states, err := h.repo.Regions()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	b, err := report.Collect(h.analysis, states, year, h.horizon)
	if err != nil {
		return fail(c, err)
	}

	var buf bytes.Buffer
	if err := b.WriteWorkbook(&buf); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	log.Printf("[http] report.xlsx: %d states, %d anomalies", len(states), len(b.Anomalies))
	attachment(c, "report.xlsx")
	return c.Blob(http.StatusOK, mimeXLSX, buf.Bytes())
}

func (h *ExportCtrl) chart(c echo.Context) error {
	state := strings.ToUpper(c.QueryParam("state"))
	if state == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "state is required"})
	}
	p, err := h.analysis.Predict(state, c.QueryParam("crop"), h.horizon)
	if err != nil {
		return fail(c, err)
	}

	var buf bytes.Buffer
	title := fmt.Sprintf("%s production outlook", state)
	if err := report.WriteProjectionChart(&buf, p.History, p.Predictions, title); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.Blob(http.StatusOK, mimePNG, buf.Bytes())
}

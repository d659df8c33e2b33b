package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agristat/pkg/analysis/service"
)

const defaultHorizon = 3

type AnalysisCtrl struct{ svc service.AnalysisService }

func New(s service.AnalysisService) *AnalysisCtrl { return &AnalysisCtrl{svc: s} }

func (h *AnalysisCtrl) Register(g *echo.Group) {
	a := g.Group("/analytics")
	a.GET("/efficiency", h.efficiency)
	a.GET("/regions/:state/prediction", h.predict)
	a.GET("/regions/:state/anomalies", h.anomalies)
	a.GET("/regions/:state/trends", h.trends)
	a.GET("/regions/:state/recommendations", h.regionRecommendations)
	a.GET("/regions/:state/overview", h.overview)
	a.GET("/records/:id/recommendations", h.recordRecommendations)
}

// fail maps service errors onto status codes.
func fail(c echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidHorizon):
		code = http.StatusBadRequest
	case errors.Is(err, service.ErrUnknownRegion), errors.Is(err, service.ErrRecordNotFound):
		code = http.StatusNotFound
	}
	return c.JSON(code, echo.Map{"error": err.Error()})
}

func intParam(c echo.Context, name string, def int) (int, bool) {
	v := c.QueryParam(name)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
}

func (h *AnalysisCtrl) efficiency(c echo.Context) error {
	year, ok := intParam(c, "year", 0)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid year"})
	}
	m, err := h.svc.EfficiencyMatrix(year)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *AnalysisCtrl) predict(c echo.Context) error {
	horizon, ok := intParam(c, "horizon", defaultHorizon)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid horizon"})
	}
	p, err := h.svc.Predict(c.Param("state"), c.QueryParam("crop"), horizon)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *AnalysisCtrl) anomalies(c echo.Context) error {
	out, err := h.svc.Anomalies(c.Param("state"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AnalysisCtrl) trends(c echo.Context) error {
	out, err := h.svc.Trends(c.Param("state"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AnalysisCtrl) regionRecommendations(c echo.Context) error {
	out, err := h.svc.RegionRecommendations(c.Param("state"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"recommendations": out})
}

func (h *AnalysisCtrl) recordRecommendations(c echo.Context) error {
	out, err := h.svc.RecordRecommendations(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"recommendations": out})
}

func (h *AnalysisCtrl) overview(c echo.Context) error {
	horizon, ok := intParam(c, "horizon", defaultHorizon)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid horizon"})
	}
	ov, err := h.svc.Overview(c.Param("state"), horizon)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, ov)
}

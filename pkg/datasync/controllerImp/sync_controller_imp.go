package controllerImp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"agristat/pkg/datasync/service"
)

type SyncCtrl struct{ svc service.SyncService }

func New(s service.SyncService) *SyncCtrl { return &SyncCtrl{svc: s} }

// Register mounts the routes; guard wraps the two mutating ones.
func (h *SyncCtrl) Register(g *echo.Group, guard ...echo.MiddlewareFunc) {
	g.POST("/sync", h.sync, guard...)
	g.GET("/sync/status", h.status)
	g.POST("/sync/schedule", h.schedule, guard...)
}

// sync answers 200 even for unsuccessful runs; the body carries the outcome.
func (h *SyncCtrl) sync(c echo.Context) error {
	res, err := h.svc.SyncAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, res)
}

func (h *SyncCtrl) status(c echo.Context) error {
	st, err := h.svc.Status()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, st)
}

func (h *SyncCtrl) schedule(c echo.Context) error {
	hours, err := strconv.Atoi(c.QueryParam("hours"))
	if err != nil || hours <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hours must be a positive integer"})
	}
	next, err := h.svc.ScheduleNext(time.Duration(hours) * time.Hour)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"next_update_at": next})
}

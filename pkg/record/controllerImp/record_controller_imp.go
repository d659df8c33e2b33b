package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"agristat/entities"
	"agristat/pkg/record/repository"
)

type RecordCtrl struct{ repo repository.RecordRepository }

func New(repo repository.RecordRepository) *RecordCtrl { return &RecordCtrl{repo} }

func (h *RecordCtrl) Register(g *echo.Group) {
	g.GET("/records", h.List)
	g.GET("/records/:id", h.Get)
	g.GET("/regions", h.Regions)
}

// List filters by ?state= and/or ?year=.
func (h *RecordCtrl) List(c echo.Context) error {
	state := c.QueryParam("state")
	var year int
	if v := c.QueryParam("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid year"})
		}
		year = y
	}

	var (
		out []entities.CropRecord
		err error
	)
	switch {
	case state != "":
		out, err = h.repo.ByRegion(state)
	case year != 0:
		out, err = h.repo.ByYear(year)
	default:
		out, err = h.repo.All()
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if state != "" && year != 0 {
		filtered := out[:0]
		for _, r := range out {
			if r.Year == year {
				filtered = append(filtered, r)
			}
		}
		out = filtered
	}
	if out == nil {
		out = []entities.CropRecord{}
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RecordCtrl) Get(c echo.Context) error {
	r, err := h.repo.FindByID(c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, r)
}

func (h *RecordCtrl) Regions(c echo.Context) error {
	codes, err := h.repo.Regions()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	type region struct {
		Code  string               `json:"code"`
		Group entities.RegionGroup `json:"group"`
	}
	out := make([]region, 0, len(codes))
	for _, code := range codes {
		out = append(out, region{Code: code, Group: entities.RegionFor(code)})
	}
	return c.JSON(http.StatusOK, out)
}

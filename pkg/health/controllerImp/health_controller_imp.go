package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"agristat/pkg/record/repository"
)

type HealthCtrl struct {
	db      *gorm.DB
	records repository.RecordRepository
	started time.Time
}

func NewHealthCtrl(db *gorm.DB, records repository.RecordRepository) *HealthCtrl {
	return &HealthCtrl{db: db, records: records, started: time.Now()}
}

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

// Health answers 503 when the database cannot be pinged. An empty dataset
// is reported but does not fail the check.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := check{OK: true}
	if h.db == nil {
		db = check{Err: "gorm db is nil"}
	} else if sqlDB, err := h.db.DB(); err != nil {
		db = check{Err: "db.DB(): " + err.Error()}
	} else if err := sqlDB.PingContext(ctx); err != nil {
		db = check{Err: "ping: " + err.Error()}
	}

	var (
		count      int64
		latestYear int
		dataset    = check{OK: true}
	)
	if db.OK && h.records != nil {
		var err error
		if count, err = h.records.Count(); err != nil {
			dataset = check{Err: err.Error()}
		} else if latestYear, err = h.records.LatestYear(); err != nil {
			dataset = check{Err: err.Error()}
		}
	}

	status := http.StatusOK
	if !db.OK {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, map[string]any{
		"status":      map[string]any{"ok": db.OK},
		"uptime_sec":  int(time.Since(h.started).Seconds()),
		"checks":      map[string]any{"database": db, "dataset": dataset},
		"records":     count,
		"latest_year": latestYear,
		"time":        time.Now().Format(time.RFC3339),
	})
}

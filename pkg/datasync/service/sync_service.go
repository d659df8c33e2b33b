package service

import (
	"context"
	"time"

	"agristat/entities"
)

type SyncResult struct {
	RunID   string `json:"run_id"`
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Message string `json:"message"`
}

type Status struct {
	LastSyncAt   *time.Time         `json:"last_sync_at"`
	NextUpdateAt *time.Time         `json:"next_update_at"`
	RecentRuns   []entities.SyncRun `json:"recent_runs"`
}

type SyncService interface {
	// SyncAll runs fetch -> parse -> validate -> store once. Pipeline
	// failures are reported in the result; the error is reserved for the
	// run log itself failing.
	SyncAll(ctx context.Context) (*SyncResult, error)
	ScheduleNext(interval time.Duration) (time.Time, error)
	Status() (*Status, error)
}

package repository

import (
	"time"

	"agristat/entities"
)

type SyncRepository interface {
	CreateRun(r *entities.SyncRun) error
	RecentRuns(limit int) ([]entities.SyncRun, error)
	State() (*entities.SyncState, error)
	// SetLastSyncAt and SetNextUpdateAt each write only their own column,
	// creating the state row on first use.
	SetLastSyncAt(t time.Time) error
	SetNextUpdateAt(t time.Time) error
}

package entities

import "time"

// SyncRun is one execution of the ingestion pipeline.
type SyncRun struct {
	RunID      string    `gorm:"primaryKey" json:"run_id"`
	Source     string    `json:"source"`
	Success    bool      `json:"success"`
	Count      int       `json:"count"`
	Message    string    `json:"message"`
	StartedAt  time.Time `gorm:"index" json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// SyncState is a single-row table holding the last/next sync timestamps.
type SyncState struct {
	ID           uint       `gorm:"primaryKey" json:"-"`
	LastSyncAt   *time.Time `json:"last_sync_at"`
	NextUpdateAt *time.Time `json:"next_update_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

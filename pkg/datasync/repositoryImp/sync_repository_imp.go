package repositoryImp

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agristat/entities"
	"agristat/pkg/datasync/repository"
)

// stateID is the primary key of the single sync_states row.
const stateID = 1

type syncRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.SyncRepository { return &syncRepo{db} }

func (r *syncRepo) CreateRun(run *entities.SyncRun) error { return r.db.Create(run).Error }

func (r *syncRepo) RecentRuns(limit int) ([]entities.SyncRun, error) {
	var out []entities.SyncRun
	q := r.db.Order("started_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return out, q.Find(&out).Error
}

// State returns the stored sync state, or a zero state before the first sync.
func (r *syncRepo) State() (*entities.SyncState, error) {
	var s entities.SyncState
	res := r.db.Limit(1).Find(&s, stateID)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return &entities.SyncState{ID: stateID}, nil
	}
	return &s, nil
}

func (r *syncRepo) SetLastSyncAt(t time.Time) error {
	return r.setColumn(&entities.SyncState{ID: stateID, LastSyncAt: &t}, "last_sync_at")
}

func (r *syncRepo) SetNextUpdateAt(t time.Time) error {
	return r.setColumn(&entities.SyncState{ID: stateID, NextUpdateAt: &t}, "next_update_at")
}

// setColumn inserts the state row or, when it exists, updates only column.
func (r *syncRepo) setColumn(s *entities.SyncState, column string) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{column, "updated_at"}),
	}).Create(s).Error
}

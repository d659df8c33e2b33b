package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"agristat/entities"
	"agristat/pkg/datasync/repository"
	svc "agristat/pkg/datasync/service"
	"agristat/pkg/ingest"
	recordrepo "agristat/pkg/record/repository"
)

// recentRunLimit bounds the run history returned by Status.
const recentRunLimit = 10

var ErrInvalidInterval = errors.New("sync interval must be positive")

type syncSvc struct {
	source    ingest.Source
	validator ingest.Validator
	records   recordrepo.RecordRepository
	runs      repository.SyncRepository
	now       func() time.Time
}

type Option func(*syncSvc)

// WithValidator replaces ingest.DefaultValidator.
func WithValidator(v ingest.Validator) Option { return func(s *syncSvc) { s.validator = v } }

// WithClock is used by tests to pin timestamps.
func WithClock(now func() time.Time) Option { return func(s *syncSvc) { s.now = now } }

func New(src ingest.Source, records recordrepo.RecordRepository, runs repository.SyncRepository, opts ...Option) svc.SyncService {
	s := &syncSvc{
		source:    src,
		validator: ingest.DefaultValidator(),
		records:   records,
		runs:      runs,
		now:       time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *syncSvc) SyncAll(ctx context.Context) (*svc.SyncResult, error) {
	run := &entities.SyncRun{
		RunID:     uuid.NewString(),
		Source:    s.source.Name(),
		StartedAt: s.now(),
	}
	log.Printf("[sync] run %s started from %s", run.RunID, run.Source)

	count, msg, ok := s.pipeline(ctx)
	run.Success, run.Count, run.Message = ok, count, msg
	run.FinishedAt = s.now()

	if err := s.runs.CreateRun(run); err != nil {
		return nil, fmt.Errorf("record sync run: %w", err)
	}
	if ok {
		if err := s.runs.SetLastSyncAt(run.FinishedAt); err != nil {
			return nil, fmt.Errorf("save sync state: %w", err)
		}
		log.Printf("[sync] run %s stored %d records", run.RunID, count)
	} else {
		log.Printf("[sync] run %s failed: %s", run.RunID, msg)
	}
	return &svc.SyncResult{RunID: run.RunID, Success: ok, Count: count, Message: msg}, nil
}

// pipeline stores nothing unless every record passes validation.
func (s *syncSvc) pipeline(ctx context.Context) (int, string, bool) {
	rc, format, err := s.source.Fetch(ctx)
	if err != nil {
		return 0, fmt.Sprintf("fetch failed: %v", err), false
	}
	defer rc.Close()

	recs, err := ingest.Decode(rc, format)
	if err != nil {
		return 0, fmt.Sprintf("parse failed: %v", err), false
	}
	if len(recs) == 0 {
		return 0, "no records found in source", false
	}

	res := s.validator.Validate(recs)
	if !res.Valid {
		msg := "validation failed: " + res.Errors[0]
		if extra := len(res.Errors) - 1; extra > 0 {
			msg += fmt.Sprintf(" (and %d more errors)", extra)
		}
		return 0, msg, false
	}

	if err := ctx.Err(); err != nil {
		return 0, fmt.Sprintf("sync cancelled: %v", err), false
	}
	if err := s.records.UpsertMany(recs); err != nil {
		return 0, fmt.Sprintf("store failed: %v", err), false
	}
	return len(recs), fmt.Sprintf("synchronized %d records from %s", len(recs), s.source.Name()), true
}

func (s *syncSvc) ScheduleNext(interval time.Duration) (time.Time, error) {
	if interval <= 0 {
		return time.Time{}, ErrInvalidInterval
	}
	next := s.now().Add(interval)
	if err := s.runs.SetNextUpdateAt(next); err != nil {
		return time.Time{}, err
	}
	log.Printf("[sync] next update scheduled for %s", next.Format(time.RFC3339))
	return next, nil
}

func (s *syncSvc) Status() (*svc.Status, error) {
	st, err := s.runs.State()
	if err != nil {
		return nil, err
	}
	runs, err := s.runs.RecentRuns(recentRunLimit)
	if err != nil {
		return nil, err
	}
	return &svc.Status{LastSyncAt: st.LastSyncAt, NextUpdateAt: st.NextUpdateAt, RecentRuns: runs}, nil
}

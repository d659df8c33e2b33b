// Package datasync keeps the local dataset cache in step with the
// configured crop-statistics source.
package datasync

import (
	"context"
	"log"
	"time"

	"agristat/pkg/datasync/service"
)

// Scheduler runs SyncAll every Interval until its context is cancelled.
type Scheduler struct {
	Service  service.SyncService
	Interval time.Duration
}

func NewScheduler(s service.SyncService, interval time.Duration) *Scheduler {
	return &Scheduler{Service: s, Interval: interval}
}

// Start launches Run in a goroutine and returns immediately.
func (sc *Scheduler) Start(ctx context.Context) {
	go sc.Run(ctx)
}

// Run blocks until ctx is done.
func (sc *Scheduler) Run(ctx context.Context) {
	if sc.Interval <= 0 {
		log.Printf("[scheduler] disabled (interval %s)", sc.Interval)
		return
	}
	t := time.NewTicker(sc.Interval)
	defer t.Stop()

	sc.plan()
	for {
		select {
		case <-ctx.Done():
			log.Printf("[scheduler] stopped")
			return
		case <-t.C:
			sc.tick(ctx)
		}
	}
}

func (sc *Scheduler) tick(ctx context.Context) {
	res, err := sc.Service.SyncAll(ctx)
	if err != nil {
		log.Printf("[scheduler] sync error: %v", err)
	} else if !res.Success {
		log.Printf("[scheduler] sync unsuccessful: %s", res.Message)
	}
	sc.plan()
}

func (sc *Scheduler) plan() {
	if _, err := sc.Service.ScheduleNext(sc.Interval); err != nil {
		log.Printf("[scheduler] schedule next: %v", err)
	}
}

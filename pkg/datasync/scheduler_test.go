package datasync

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"agristat/pkg/datasync/service"
)

type countingService struct {
	mu        sync.Mutex
	syncs     int
	schedules int
}

func (c *countingService) SyncAll(ctx context.Context) (*service.SyncResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.syncs++
	return &service.SyncResult{Success: true}, nil
}

func (c *countingService) ScheduleNext(d time.Duration) (time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.schedules++
	return time.Now().Add(d), nil
}

func (c *countingService) Status() (*service.Status, error) { return &service.Status{}, nil }

func (c *countingService) counts() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.syncs, c.schedules
}

func TestSchedulerTicks(t *testing.T) {
	svc := &countingService{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewScheduler(svc, 10*time.Millisecond).Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		syncs, _ := svc.counts()
		return syncs >= 2
	}, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	syncs, schedules := svc.counts()
	assert.Equal(t, syncs+1, schedules)
}

func TestSchedulerDisabled(t *testing.T) {
	svc := &countingService{}
	NewScheduler(svc, 0).Run(context.Background())
	syncs, schedules := svc.counts()
	assert.Zero(t, syncs)
	assert.Zero(t, schedules)
}

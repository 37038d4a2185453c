package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	DefaultRefreshCron = "@every 60s"
	DefaultClockCron   = "@every 1s"
)

// stopTimeout bounds how long Stop waits for a running job.
const stopTimeout = 2 * time.Second

// Scheduler owns the dashboard's periodic jobs: the silent auto-refresh and
// the header clock. Jobs only post work to the UI loop.
type Scheduler struct {
	Cron *cron.Cron
}

// NewScheduler creates a new Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{Cron: cron.New(cron.WithSeconds())}
}

// RegisterAll registers the auto-refresh and clock jobs.
func (s *Scheduler) RegisterAll(refreshCron, clockCron string, refresh, tick func()) error {
	if _, err := s.Cron.AddFunc(refreshCron, func() {
		log.Println("[INFO] auto-refresh tick")
		refresh()
	}); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	if _, err := s.Cron.AddFunc(clockCron, tick); err != nil {
		return fmt.Errorf("register clock task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop cancels every job and waits briefly for one in flight.
func (s *Scheduler) Stop() {
	ctx := s.Cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(stopTimeout):
		log.Println("[WARN] scheduler job still running after stop")
	}
	log.Println("[INFO] scheduler stopped")
}

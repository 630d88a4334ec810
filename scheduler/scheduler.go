package scheduler

import (
	"log"
	"sync"
	"time"

	"status-dashboard/config"
)

// Cleaner removes stale cache rows, jobs and logs
type Cleaner interface {
	CleanupOldData(jobDays, logDays int) (map[string]int64, error)
}

// Scheduler handles periodic tasks
type Scheduler struct {
	cfg      *config.Config
	repo     Cleaner
	interval time.Duration
	ticker   *time.Ticker
	quit     chan struct{}
	once     sync.Once
}

// NewScheduler creates a new scheduler
func NewScheduler(cfg *config.Config, repo Cleaner) *Scheduler {
	interval := time.Duration(cfg.Scheduler.IntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = 60 * time.Minute
	}
	return &Scheduler{
		cfg:      cfg,
		repo:     repo,
		interval: interval,
		quit:     make(chan struct{}),
	}
}

// Start begins the scheduling loop
func (s *Scheduler) Start() {
	if !s.cfg.Scheduler.Enabled {
		log.Println("Scheduler is disabled by config.")
		return
	}

	log.Printf("Starting Scheduler. Interval: %v (jobs kept %d days, logs %d days)\n",
		s.interval, s.cfg.Retention.JobDays, s.cfg.Retention.LogDays)
	s.ticker = time.NewTicker(s.interval)

	go func() {
		for {
			select {
			case <-s.ticker.C:
				s.RunJob()
			case <-s.quit:
				s.ticker.Stop()
				return
			}
		}
	}()
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	if s.ticker != nil {
		s.once.Do(func() { close(s.quit) })
	}
}

// RunJob runs one retention cleanup
func (s *Scheduler) RunJob() map[string]int64 {
	log.Println("[Scheduler] Starting Cleanup...")

	deleted, err := s.repo.CleanupOldData(s.cfg.Retention.JobDays, s.cfg.Retention.LogDays)
	if err != nil {
		log.Printf("[Scheduler] Cleanup Failed: %v\n", err)
		return deleted
	}

	log.Printf("[Scheduler] Cleanup Completed. Deleted: %v\n", deleted)
	return deleted
}

// Package poller runs the background jobs of the service: the seller order
// counter and the new-order notifier. Jobs run on a cron schedule under a
// root context, so stopping the scheduler aborts in-flight backend calls.
package poller

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one run of a background task.
type Job func(ctx context.Context) error

// Scheduler supervises periodic jobs. A run that is still in progress when
// the next tick fires causes that tick to be skipped.
type Scheduler struct {
	cron       *cron.Cron
	ctx        context.Context
	cancel     context.CancelFunc
	runTimeout time.Duration
	logger     cron.Logger

	mu   sync.Mutex
	jobs map[string]cron.Job
	wg   sync.WaitGroup
}

// NewScheduler creates a stopped scheduler. Each run gets at most runTimeout.
func NewScheduler(parent context.Context, runTimeout time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(parent)
	return &Scheduler{
		cron:       cron.New(),
		ctx:        ctx,
		cancel:     cancel,
		runTimeout: runTimeout,
		logger:     cron.PrintfLogger(log.New(log.Writer(), "[Poller] ", log.LstdFlags)),
		jobs:       make(map[string]cron.Job),
	}
}

// Every registers job to run at a fixed interval once the scheduler starts.
func (s *Scheduler) Every(name string, interval time.Duration, job Job) error {
	if interval <= 0 {
		return fmt.Errorf("job %s: interval must be positive", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %s already registered", name)
	}

	wrapped := cron.NewChain(
		cron.Recover(s.logger),
		cron.SkipIfStillRunning(s.logger),
	).Then(cron.FuncJob(func() { s.run(name, job) }))

	s.jobs[name] = wrapped
	s.cron.Schedule(cron.Every(interval), wrapped)
	return nil
}

// Trigger runs a registered job now, outside its schedule. It is skipped like
// a tick when the job is already running. Returns false for unknown names or
// after Stop.
func (s *Scheduler) Trigger(name string) bool {
	s.mu.Lock()
	job, ok := s.jobs[name]
	if !ok || s.ctx.Err() != nil {
		s.mu.Unlock()
		return false
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		job.Run()
	}()
	return true
}

// Start begins the schedule and triggers every job once.
func (s *Scheduler) Start() {
	s.cron.Start()

	s.mu.Lock()
	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	s.mu.Unlock()

	for _, name := range names {
		s.Trigger(name)
	}
	log.Printf("[Poller] Scheduler started with %d job(s)", len(names))
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() {
	// Trigger adds to wg under mu, so no Add can follow the Wait below.
	s.mu.Lock()
	s.cancel()
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	s.wg.Wait()
	log.Println("[Poller] Scheduler stopped")
}

func (s *Scheduler) run(name string, job Job) {
	if s.ctx.Err() != nil {
		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.runTimeout)
	defer cancel()

	start := time.Now()
	if err := job(ctx); err != nil {
		log.Printf("[Poller] %s failed after %s: %v", name, time.Since(start), err)
	}
}

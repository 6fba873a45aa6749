package scheduler

import (
	"context"
	"sync"
	"time"
)

// Scheduler runs a task at a fixed interval until stopped or until the
// context given to Start is done
type Scheduler struct {
	interval  time.Duration
	task      func()
	immediate bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	running   bool
}

// Option is a functional option for configuring Scheduler
type Option func(*Scheduler)

// WithImmediateRun runs the task once synchronously in Start
func WithImmediateRun() Option {
	return func(s *Scheduler) {
		s.immediate = true
	}
}

// New creates a new Scheduler instance
func New(interval time.Duration, task func(), opts ...Option) *Scheduler {
	s := &Scheduler{
		interval: interval,
		task:     task,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start launches the background loop. Calling Start on a running
// scheduler does nothing.
func (s *Scheduler) Start(parent context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	if s.immediate {
		s.task()
	}

	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	s.running = true

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.task()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop cancels the loop and waits for an in-flight task to return
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	s.wg.Wait()
	s.running = false
}

func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ErrSchedulerRunning is returned when Run is called on a scheduler that is already running
var ErrSchedulerRunning = errors.New("scheduler already running")

// TickFunc performs one complete tick; n starts at 1
type TickFunc func(n uint64) error

// Scheduler runs a tick function on a fixed interval
// Ticks execute synchronously on the Run goroutine, so a tick always completes before the next starts
type Scheduler struct {
	interval time.Duration
	tick     TickFunc
	clock    TimeProvider

	ticks   atomic.Uint64
	running atomic.Bool
}

// NewScheduler creates a scheduler; interval <= 0 falls back to one millisecond
func NewScheduler(interval time.Duration, tick TickFunc) *Scheduler {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return &Scheduler{
		interval: interval,
		tick:     tick,
		clock:    NewRealTimeProvider(),
	}
}

// SetTimeProvider replaces the clock used for deadline computation, must be called before Run
func (s *Scheduler) SetTimeProvider(clock TimeProvider) {
	s.clock = clock
}

// Interval returns the tick interval
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Ticks returns the number of completed ticks
func (s *Scheduler) Ticks() uint64 {
	return s.ticks.Load()
}

// Run ticks until ctx is cancelled (returns nil) or a tick fails (returns its error)
// Deadlines advance by interval from the previous deadline to avoid drift; when more than
// two intervals behind, the schedule restarts from now instead of bursting to catch up
func (s *Scheduler) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrSchedulerRunning
	}
	defer s.running.Store(false)

	deadline := s.clock.Now().Add(s.interval)
	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	maxBehind := s.interval * 2

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}

		// Cancellation wins over a simultaneously ready timer
		if ctx.Err() != nil {
			return nil
		}

		if err := s.tick(s.ticks.Load() + 1); err != nil {
			return err
		}
		s.ticks.Add(1)

		now := s.clock.Now()
		deadline = deadline.Add(s.interval)
		if now.Sub(deadline) > maxBehind {
			deadline = now.Add(s.interval)
		}

		sleep := deadline.Sub(now)
		if sleep < 0 {
			sleep = 0
		}
		timer.Reset(sleep)
	}
}

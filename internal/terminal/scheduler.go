package terminal

import (
	"sync"
	"time"
)

// Scheduler runs registered callbacks on fixed cadences. It decouples the
// tick loop from any rendering or transport layer: the tick generator is
// invoked purely as a function of the previous snapshot.
type Scheduler struct {
	mu      sync.Mutex
	stop    chan struct{}
	wg      sync.WaitGroup
	stopped bool
}

// NewScheduler constructs an idle scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{stop: make(chan struct{})}
}

// RegisterPeriodic invokes fn every interval until the scheduler is stopped.
// Callbacks run on their own goroutine; a slow callback delays only its own
// cadence, not other registrations.
func (s *Scheduler) RegisterPeriodic(interval time.Duration, fn func()) {
	if interval <= 0 || fn == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
}

// Stop halts all registered callbacks and waits for them to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	close(s.stop)
	s.mu.Unlock()

	s.wg.Wait()
}

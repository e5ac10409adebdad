// Package debounce coalesces bursts of calls per key into one trailing
// execution.
package debounce

import (
	"sync"
	"time"

	"github.com/dshills/hexlight/internal/log"
)

// Executor runs a fired action. Hosts with an event loop use it to post the
// action onto the loop instead of running it on the timer goroutine.
type Executor func(action func())

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithExecutor sets the executor used for fired actions.
func WithExecutor(exec Executor) Option {
	return func(s *Scheduler) {
		if exec != nil {
			s.exec = exec
		}
	}
}

// Scheduler keeps at most one pending timer per key.
//
// Thread-safety: All methods are safe for concurrent use. An action whose
// timer was superseded or cancelled before it fired never runs.
type Scheduler struct {
	mu      sync.Mutex
	pending map[string]*task
	seq     uint64 // detects stale timer callbacks
	exec    Executor
	stopped bool
}

type task struct {
	timer  *time.Timer
	seq    uint64
	action func()
}

// New creates a scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		pending: make(map[string]*task),
		exec:    func(action func()) { action() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule runs action once quiet has elapsed without another Schedule for
// key. A later call replaces both the timer and the action.
func (s *Scheduler) Schedule(key string, quiet time.Duration, action func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	if t, ok := s.pending[key]; ok {
		t.timer.Stop()
	}

	s.seq++
	t := &task{seq: s.seq, action: action}
	t.timer = time.AfterFunc(quiet, func() { s.fire(key, t.seq) })
	s.pending[key] = t
}

func (s *Scheduler) fire(key string, seq uint64) {
	s.mu.Lock()
	t, ok := s.pending[key]
	// Only execute if this is still the current task for key.
	if !ok || t.seq != seq {
		s.mu.Unlock()
		return
	}
	delete(s.pending, key)
	exec := s.exec
	s.mu.Unlock()

	log.Debug(log.CatDebounce, "fire", "key", key)
	exec(t.action)
}

// Cancel drops the pending action for key, if any.
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.pending[key]
	if !ok {
		return false
	}
	t.timer.Stop()
	delete(s.pending, key)
	return true
}

// Pending reports whether key has an action waiting to fire.
func (s *Scheduler) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[key]
	return ok
}

// Len returns the number of keys with a pending action.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Stop cancels every pending action. Later Schedule calls are ignored.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, t := range s.pending {
		t.timer.Stop()
		delete(s.pending, key)
	}
	s.stopped = true
}

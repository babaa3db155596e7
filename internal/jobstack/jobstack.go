// Package jobstack provides a shared work-stealing LIFO job queue used
// by the parallel traversal strategies. It mirrors the original's
// Mutex+Condvar job stack: workers pop jobs, process them, and either
// push follow-up jobs or mark the job done, until no jobs remain
// outstanding or the stack is explicitly shut down.
package jobstack

import "sync"

// JobStack is a LIFO queue of outstanding jobs of type T. It tracks the
// number of jobs pushed but not yet marked done (Jobs), so that Pop can
// distinguish "temporarily empty, more may arrive" from "permanently
// drained" without a separate close signal from callers.
type JobStack[T any] struct {
	mu       sync.Mutex
	cond     *sync.Cond
	queue    []T
	jobs     int
	shutdown bool
}

// New returns a JobStack preloaded with the given items.
func New[T any](items ...T) *JobStack[T] {
	s := &JobStack[T]{queue: append([]T(nil), items...), jobs: len(items)}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Extend pushes additional items onto the stack and wakes any workers
// blocked in Pop. It is a no-op once the stack has been shut down.
func (s *JobStack[T]) Extend(items ...T) {
	if len(items) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shutdown {
		return
	}
	s.queue = append(s.queue, items...)
	s.jobs += len(items)
	s.cond.Broadcast()
}

// Push pushes a single item. See Extend.
func (s *JobStack[T]) Push(item T) {
	s.Extend(item)
}

// Pop removes and returns the most recently pushed item, blocking while
// the queue is temporarily empty but jobs remain outstanding. It
// returns (zero, false) once no jobs remain outstanding or the stack
// has been shut down.
func (s *JobStack[T]) Pop() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		if s.jobs == 0 || s.shutdown {
			var zero T
			return zero, false
		}
		if n := len(s.queue); n > 0 {
			item := s.queue[n-1]
			s.queue = s.queue[:n-1]
			return item, true
		}
		s.cond.Wait()
	}
}

// JobDone marks one previously popped job as complete. Every successful
// Pop must be matched by exactly one JobDone call, regardless of
// whether processing that job succeeded, failed, or pushed follow-up
// jobs. Once the count of outstanding jobs reaches zero, any workers
// blocked in Pop wake up and return (zero, false).
func (s *JobStack[T]) JobDone() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs--
	if s.jobs <= 0 {
		s.cond.Broadcast()
	}
}

// Shutdown discards all queued-but-unstarted jobs and marks the stack
// permanently closed. Workers blocked in Pop wake up and return (zero,
// false); any future Extend/Push calls are silently ignored.
func (s *JobStack[T]) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs -= len(s.queue)
	s.queue = nil
	s.shutdown = true
	s.cond.Broadcast()
}

// IsShutdown reports whether Shutdown has been called.
func (s *JobStack[T]) IsShutdown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shutdown
}

// Drain runs handle for every job until the stack is exhausted or
// shutdown. handle receives one popped job and returns the follow-up
// jobs it produced; if it returns an error, the stack is shut down and
// Drain returns that error at once. Other workers still inside handle
// finish their current call and then see Pop return false, so the
// caller runs Drain from one or more goroutines and waits on all of
// them.
//
// This is the combinator the original calls handle_many_jobs: pop,
// call, extend-and-job_done on success, or job_done-and-shutdown on
// failure.
func (s *JobStack[T]) Drain(handle func(T) ([]T, error)) error {
	for {
		item, ok := s.Pop()
		if !ok {
			return nil
		}
		follow, err := handle(item)
		if err != nil {
			s.JobDone()
			s.Shutdown()
			return err
		}
		s.Extend(follow...)
		s.JobDone()
	}
}

// Package frame schedules callbacks for the next display frame.
//
// The host loop calls Dispatch once per frame. Callbacks requested while a
// dispatch is running are queued for the following frame.
package frame

import "time"

// Callback receives the dispatch timestamp.
type Callback func(now time.Time)

// Handle identifies a requested callback. The zero Handle is never issued.
type Handle uint64

type entry struct {
	handle   Handle
	fn       Callback
	canceled bool
}

// Scheduler holds the callbacks requested for the next frame. It is not
// safe for concurrent use.
type Scheduler struct {
	next    Handle
	queue   []*entry
	running []*entry
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Request queues fn for the next Dispatch.
func (s *Scheduler) Request(fn Callback) Handle {
	s.next++
	s.queue = append(s.queue, &entry{handle: s.next, fn: fn})
	return s.next
}

// Cancel removes a pending callback. It reports whether the callback was
// still pending. A callback canceled during the dispatch that would run it
// is skipped.
func (s *Scheduler) Cancel(h Handle) bool {
	for i, e := range s.queue {
		if e.handle == h {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			return true
		}
	}
	for _, e := range s.running {
		if e.handle == h && !e.canceled && e.fn != nil {
			e.canceled = true
			return true
		}
	}
	return false
}

// Dispatch runs the callbacks queued before the call and returns how many ran.
func (s *Scheduler) Dispatch(now time.Time) int {
	s.running, s.queue = s.queue, nil
	ran := 0
	for _, e := range s.running {
		if e.canceled {
			continue
		}
		fn := e.fn
		e.fn = nil
		fn(now)
		ran++
	}
	s.running = nil
	return ran
}

// Pending returns the number of callbacks queued for the next Dispatch.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

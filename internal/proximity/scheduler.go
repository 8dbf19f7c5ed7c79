package proximity

import (
	"sync"
	"time"
)

// TickHandle identifies a requested tick. The zero handle is never issued.
type TickHandle uint64

// Scheduler runs a callback on the next display frame (or equivalent).
// Cancelling an already-run or unknown handle is a no-op.
type Scheduler interface {
	RequestTick(fn func()) TickHandle
	CancelTick(h TickHandle)
}

// FrameScheduler holds at most one pending callback and runs it when the host
// calls Frame, typically once per rendered frame. Tests use it as a manual pump.
type FrameScheduler struct {
	mu      sync.Mutex
	next    TickHandle
	pending TickHandle
	fn      func()
}

func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

func (s *FrameScheduler) RequestTick(fn func()) TickHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.pending = s.next
	s.fn = fn
	return s.pending
}

func (s *FrameScheduler) CancelTick(h TickHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h != 0 && h == s.pending {
		s.pending = 0
		s.fn = nil
	}
}

// Pending reports whether a callback is waiting for the next Frame.
func (s *FrameScheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fn != nil
}

// Frame runs the pending callback, if any, and reports whether it did.
// The callback may request the next tick.
func (s *FrameScheduler) Frame() bool {
	s.mu.Lock()
	fn := s.fn
	s.fn = nil
	s.pending = 0
	s.mu.Unlock()
	if fn == nil {
		return false
	}
	fn()
	return true
}

// Drain pumps frames until nothing is pending or max frames ran, and returns
// the number of frames run.
func (s *FrameScheduler) Drain(max int) int {
	n := 0
	for n < max && s.Frame() {
		n++
	}
	return n
}

// TimerScheduler fires callbacks after a fixed interval on a timer goroutine.
type TimerScheduler struct {
	interval time.Duration

	mu     sync.Mutex
	next   TickHandle
	timers map[TickHandle]*time.Timer
}

func NewTimerScheduler(interval time.Duration) *TimerScheduler {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &TimerScheduler{
		interval: interval,
		timers:   map[TickHandle]*time.Timer{},
	}
}

func (s *TimerScheduler) RequestTick(fn func()) TickHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	h := s.next
	s.timers[h] = time.AfterFunc(s.interval, func() {
		s.mu.Lock()
		_, live := s.timers[h]
		delete(s.timers, h)
		s.mu.Unlock()
		if live {
			fn()
		}
	})
	return h
}

func (s *TimerScheduler) CancelTick(h TickHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[h]; ok {
		t.Stop()
		delete(s.timers, h)
	}
}

// Pending returns the number of timers that have not fired or been cancelled.
func (s *TimerScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

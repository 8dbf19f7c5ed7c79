package proximity

import (
	"math"
	"sync/atomic"
	"testing"
	"time"
)

func TestFrameSchedulerSinglePending(t *testing.T) {
	s := NewFrameScheduler()
	var ran []int
	h1 := s.RequestTick(func() { ran = append(ran, 1) })
	h2 := s.RequestTick(func() { ran = append(ran, 2) })
	if h1 == 0 || h2 == 0 || h1 == h2 {
		t.Fatalf("handles = %d, %d", h1, h2)
	}
	s.CancelTick(h1) // stale handle, must not cancel h2
	if !s.Pending() {
		t.Fatal("stale cancel removed the pending tick")
	}
	if !s.Frame() {
		t.Fatal("Frame ran nothing")
	}
	if s.Frame() {
		t.Error("second Frame ran a callback")
	}
	if len(ran) != 1 || ran[0] != 2 {
		t.Errorf("ran = %v, want [2]", ran)
	}
}

func TestFrameSchedulerCancel(t *testing.T) {
	s := NewFrameScheduler()
	h := s.RequestTick(func() { t.Error("cancelled tick ran") })
	s.CancelTick(h)
	s.CancelTick(h)
	s.CancelTick(0)
	if s.Frame() {
		t.Error("Frame ran a cancelled tick")
	}
}

func TestFrameSchedulerDrain(t *testing.T) {
	s := NewFrameScheduler()
	left := 5
	var step func()
	step = func() {
		left--
		if left > 0 {
			s.RequestTick(step)
		}
	}
	s.RequestTick(step)
	if n := s.Drain(100); n != 5 {
		t.Errorf("Drain = %d, want 5", n)
	}
	if n := s.Drain(100); n != 0 {
		t.Errorf("second Drain = %d", n)
	}
}

func TestTimerScheduler(t *testing.T) {
	s := NewTimerScheduler(time.Millisecond)
	var fired atomic.Int32
	done := make(chan struct{})
	s.RequestTick(func() {
		fired.Add(1)
		close(done)
	})
	h := s.RequestTick(func() { fired.Add(100) })
	s.CancelTick(h)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timer tick never fired")
	}
	time.Sleep(10 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("fired = %d, want 1", got)
	}
	if s.Pending() != 0 {
		t.Errorf("pending = %d", s.Pending())
	}
}

func TestAnimatorOnTimerScheduler(t *testing.T) {
	a, err := New(DefaultConfig(), NewTimerScheduler(time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	defer a.Dispose()
	a.Register("x", fixed(Bounds{RadiusX: 10, RadiusY: 10}))
	a.PointerMove(0, 0)

	deadline := time.Now().Add(5 * time.Second)
	for a.Animating() {
		if time.Now().After(deadline) {
			t.Fatal("animation did not settle")
		}
		time.Sleep(2 * time.Millisecond)
	}
	if v := a.Value("x"); math.Abs(v-1.15) > tol {
		t.Errorf("settled at %v, want 1.15", v)
	}
}

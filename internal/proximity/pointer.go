package proximity

import (
	"math"
	"sync"
)

// PointerSource delivers pointer movement to subscribers. The returned func
// removes the subscription.
type PointerSource interface {
	Subscribe(move func(x, y float64), leave func()) (unsubscribe func())
}

// PointerSample is the last accepted pointer position.
type PointerSample struct {
	X, Y float64
}

// sampleFilter accepts a position only if it moved more than threshold pixels
// along either axis since the last accepted one.
type sampleFilter struct {
	threshold float64
	last      PointerSample
	has       bool
}

func (f *sampleFilter) accept(x, y float64) bool {
	if f.has && math.Abs(x-f.last.X) <= f.threshold && math.Abs(y-f.last.Y) <= f.threshold {
		return false
	}
	f.last = PointerSample{X: x, Y: y}
	f.has = true
	return true
}

func (f *sampleFilter) reset() { f.has = false }

// Feed is a fan-out PointerSource that hosts push raw events into.
type Feed struct {
	mu   sync.Mutex
	next int
	subs map[int]feedSub
}

type feedSub struct {
	move  func(x, y float64)
	leave func()
}

func NewFeed() *Feed {
	return &Feed{subs: map[int]feedSub{}}
}

func (f *Feed) Subscribe(move func(x, y float64), leave func()) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.next
	f.next++
	f.subs[id] = feedSub{move: move, leave: leave}
	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, id)
			f.mu.Unlock()
		})
	}
}

func (f *Feed) Move(x, y float64) {
	for _, s := range f.snapshot() {
		if s.move != nil {
			s.move(x, y)
		}
	}
}

func (f *Feed) Leave() {
	for _, s := range f.snapshot() {
		if s.leave != nil {
			s.leave()
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

func (f *Feed) snapshot() []feedSub {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]feedSub, 0, len(f.subs))
	for _, s := range f.subs {
		out = append(out, s)
	}
	return out
}

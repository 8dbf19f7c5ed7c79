package feedback

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// LevelTap wraps a beep.Streamer and records the last N samples into a ring
// buffer so the renderer can pulse a highlight with the sound being played.
type LevelTap struct {
	Source    beep.Streamer
	buffer    [][2]float64
	nextIndex int
	done      bool
	mu        sync.RWMutex
}

func NewLevelTap(src beep.Streamer, ringSize int) *LevelTap {
	if ringSize <= 0 {
		ringSize = 1
	}
	return &LevelTap{
		Source: src,
		buffer: make([][2]float64, ringSize),
	}
}

func (t *LevelTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	t.mu.Lock()
	for i := 0; i < n; i++ {
		t.buffer[t.nextIndex] = samples[i]
		t.nextIndex++
		if t.nextIndex >= len(t.buffer) {
			t.nextIndex = 0
		}
	}
	if !ok {
		t.done = true
	}
	t.mu.Unlock()
	return n, ok
}

func (t *LevelTap) Err() error { return t.Source.Err() }

// Done reports whether the source has been drained.
func (t *LevelTap) Done() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.done
}

// Snapshot returns up to the last n samples, most recent last.
func (t *LevelTap) Snapshot(n int) [][2]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if n > len(t.buffer) {
		n = len(t.buffer)
	}
	out := make([][2]float64, 0, n)
	idx := t.nextIndex - 1
	if idx < 0 {
		idx = len(t.buffer) - 1
	}
	for i := 0; i < n; i++ {
		out = append(out, t.buffer[idx])
		idx--
		if idx < 0 {
			idx = len(t.buffer) - 1
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Level is the RMS of the last n mono samples, or 0 once the source is done.
func (t *LevelTap) Level(n int) float64 {
	if t.Done() {
		return 0
	}
	samples := t.Snapshot(n)
	if len(samples) == 0 {
		return 0
	}
	var sumSquares float64
	for _, s := range samples {
		mono := (s[0] + s[1]) * 0.5
		sumSquares += mono * mono
	}
	return math.Sqrt(sumSquares / float64(len(samples)))
}

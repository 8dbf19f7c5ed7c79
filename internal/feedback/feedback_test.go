package feedback

import (
	"math"
	"testing"
	"time"

	"github.com/faiface/beep"
)

func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

func TestToneLength(t *testing.T) {
	s := Tone(SampleRate, 440, 50*time.Millisecond, 0.5)
	if got, want := drain(s), SampleRate.N(50*time.Millisecond); got != want {
		t.Errorf("tone length = %d samples, want %d", got, want)
	}
	if n, ok := s.Stream(make([][2]float64, 8)); n != 0 || ok {
		t.Errorf("drained tone streamed %d, %v", n, ok)
	}
}

func TestToneAmplitude(t *testing.T) {
	s := Tone(SampleRate, 440, 100*time.Millisecond, 0.25)
	buf := make([][2]float64, SampleRate.N(100*time.Millisecond))
	n, _ := s.Stream(buf)
	peak := 0.0
	for _, v := range buf[:n] {
		if v[0] != v[1] {
			t.Fatal("tone is not mono")
		}
		peak = math.Max(peak, math.Abs(v[0]))
	}
	if peak > 0.25 || peak < 0.2 {
		t.Errorf("peak = %v, want within (0.2, 0.25]", peak)
	}
}

func TestLevelTap(t *testing.T) {
	tap := NewLevelTap(Tone(SampleRate, 440, 20*time.Millisecond, 0.5), 256)
	if tap.Level(256) != 0 {
		t.Error("level before streaming should be 0")
	}
	buf := make([][2]float64, 128)
	if n, ok := tap.Stream(buf); n != 128 || !ok {
		t.Fatalf("Stream = %d, %v", n, ok)
	}
	if l := tap.Level(128); l <= 0.1 || l > 0.5 {
		t.Errorf("level while playing = %v", l)
	}
	snap := tap.Snapshot(4)
	for i := range snap {
		if snap[i] != buf[124+i] {
			t.Errorf("snapshot[%d] = %v, want %v", i, snap[i], buf[124+i])
		}
	}
	drain(tap)
	if !tap.Done() || tap.Level(256) != 0 {
		t.Error("level after the tone ended should be 0")
	}
	if tap.Err() != nil {
		t.Errorf("Err = %v", tap.Err())
	}
}

func TestSnapshotWraps(t *testing.T) {
	tap := NewLevelTap(Tone(SampleRate, 440, time.Second, 1), 4)
	buf := make([][2]float64, 10)
	tap.Stream(buf)
	snap := tap.Snapshot(10)
	if len(snap) != 4 {
		t.Fatalf("len = %d", len(snap))
	}
	for i := range snap {
		if snap[i] != buf[6+i] {
			t.Errorf("snap[%d] = %v, want %v", i, snap[i], buf[6+i])
		}
	}
}

func TestPitchAndPulse(t *testing.T) {
	if p := Pitch(440, 12); math.Abs(p-880) > 1e-9 {
		t.Errorf("octave = %v", p)
	}
	if v := Pulse(0.5, 0, 0.9); math.Abs(v-0.45) > 1e-12 {
		t.Errorf("decay = %v", v)
	}
	if v := Pulse(0, 0.5, 0.9); v != 1 {
		t.Errorf("loud pulse = %v, want clamped 1", v)
	}
}

// Package feedback builds the short tones played when a control is clicked
// and measures their level for the highlight pulse.
package feedback

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

// SampleRate is the rate the speaker is initialised with.
const SampleRate = beep.SampleRate(44100)

// Tone returns a mono sine at freq Hz lasting d, with a linear fade-out so it
// does not click at the end.
func Tone(sr beep.SampleRate, freq float64, d time.Duration, volume float64) beep.Streamer {
	total := sr.N(d)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			env := 1 - float64(pos)/float64(total)
			v := math.Sin(2*math.Pi*freq*float64(pos)/float64(sr)) * volume * env
			samples[i] = [2]float64{v, v}
			pos++
			n++
		}
		return n, true
	})
}

// Pitch gives each kind of control its own note so clicks are distinguishable.
func Pitch(base float64, step int) float64 {
	return base * math.Pow(2, float64(step)/12)
}

// Pulse decays the previous highlight intensity and lifts it to the current
// sound level; the result is clamped to [0,1].
func Pulse(prev, level, decay float64) float64 {
	v := prev * decay
	if l := level * 4; l > v {
		v = l
	}
	return clamp01(v)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package game

import (
	"log"
	"time"

	"github.com/faiface/beep/speaker"

	"github.com/iburimskiy/proximity-nav/internal/config"
	"github.com/iburimskiy/proximity-nav/internal/feedback"
)

const pulseDecay = 0.9

// player plays click blips and turns their level into a highlight pulse.
// With sound off the pulse still flashes.
type player struct {
	enabled bool
	tap     *feedback.LevelTap
	pulse   float64
}

func newPlayer(enabled bool) *player {
	if !enabled {
		return &player{}
	}
	sr := feedback.SampleRate
	if err := speaker.Init(sr, sr.N(time.Second/20)); err != nil {
		log.Printf("[WARN] audio disabled: %v", err)
		return &player{}
	}
	return &player{enabled: true}
}

func (p *player) blip(step int) {
	if !p.enabled {
		p.pulse = 1
		return
	}
	tone := feedback.Tone(
		feedback.SampleRate,
		feedback.Pitch(config.BlipFrequency, step),
		config.BlipDuration*time.Millisecond,
		config.BlipVolume,
	)
	tap := feedback.NewLevelTap(tone, config.FeedbackRingSize)

	// Stop any previous blip
	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
	speaker.Play(tap)
	p.tap = tap
}

func (p *player) update() float64 {
	level := 0.0
	if p.tap != nil {
		level = p.tap.Level(512)
	}
	p.pulse = feedback.Pulse(p.pulse, level, pulseDecay)
	return p.pulse
}

package proximity

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned by New and Config.Validate.
var ErrInvalidConfig = errors.New("proximity: invalid config")

const (
	DefaultNeutral     = 1.0
	DefaultMaxBoost    = 0.15
	DefaultSmoothing   = 0.2
	DefaultThresholdPx = 5.0
	DefaultEpsilon     = 0.001
)

// SpringConfig switches the interpolation tick from exponential smoothing to a
// damped spring. FPS is the nominal tick rate the spring integrates at.
type SpringConfig struct {
	FPS       int     `yaml:"fps"`
	Frequency float64 `yaml:"frequency"`
	Damping   float64 `yaml:"damping"`
}

// Config is fixed for the lifetime of an Animator.
type Config struct {
	Neutral     float64       `yaml:"neutral"`
	MaxBoost    float64       `yaml:"max_boost"`
	Smoothing   float64       `yaml:"smoothing"`
	ThresholdPx float64       `yaml:"threshold_px"`
	Epsilon     float64       `yaml:"epsilon"`
	Spring      *SpringConfig `yaml:"spring,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Neutral:     DefaultNeutral,
		MaxBoost:    DefaultMaxBoost,
		Smoothing:   DefaultSmoothing,
		ThresholdPx: DefaultThresholdPx,
		Epsilon:     DefaultEpsilon,
	}
}

func (c Config) Validate() error {
	check := func(name string, v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: %s must be finite and >= 0, got %v", ErrInvalidConfig, name, v)
		}
		return nil
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"neutral", c.Neutral},
		{"max_boost", c.MaxBoost},
		{"threshold_px", c.ThresholdPx},
		{"epsilon", c.Epsilon},
	} {
		if err := check(f.name, f.v); err != nil {
			return err
		}
	}
	if c.Epsilon == 0 {
		return fmt.Errorf("%w: epsilon must be > 0", ErrInvalidConfig)
	}
	if c.Spring != nil {
		if c.Spring.FPS <= 0 {
			return fmt.Errorf("%w: spring fps must be > 0, got %d", ErrInvalidConfig, c.Spring.FPS)
		}
		if !(c.Spring.Frequency > 0) || math.IsInf(c.Spring.Frequency, 0) {
			return fmt.Errorf("%w: spring frequency must be > 0, got %v", ErrInvalidConfig, c.Spring.Frequency)
		}
		if err := check("spring damping", c.Spring.Damping); err != nil {
			return err
		}
		return nil
	}
	if !(c.Smoothing > 0 && c.Smoothing < 1) {
		return fmt.Errorf("%w: smoothing must be in (0,1), got %v", ErrInvalidConfig, c.Smoothing)
	}
	return nil
}

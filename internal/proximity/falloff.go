package proximity

import "math"

// Bounds is a target's proximity response zone in viewport coordinates.
type Bounds struct {
	CenterX, CenterY float64
	RadiusX, RadiusY float64
}

// BoundsFunc is called on demand every time a target is recomputed; the
// animator never caches its result.
type BoundsFunc func() Bounds

// Valid reports whether the radii can be divided by.
func (b Bounds) Valid() bool {
	return finitePositive(b.RadiusX) && finitePositive(b.RadiusY) &&
		finite(b.CenterX) && finite(b.CenterY)
}

// EllipseDistance returns (dx/rx)² + (dy/ry)². Values >= 1 are outside the
// zone. Invalid bounds are reported as +Inf.
func EllipseDistance(b Bounds, x, y float64) float64 {
	if !b.Valid() {
		return math.Inf(1)
	}
	nx := math.Abs(x-b.CenterX) / b.RadiusX
	ny := math.Abs(y-b.CenterY) / b.RadiusY
	return nx*nx + ny*ny
}

// Smoothstep is t²(3−2t) with t clamped to [0,1].
func Smoothstep(t float64) float64 {
	t = clamp01(t)
	return t * t * (3 - 2*t)
}

// Falloff maps an ellipse distance to a value in [neutral, neutral+maxBoost].
func Falloff(ellipseDistance, neutral, maxBoost float64) float64 {
	if !(ellipseDistance < 1) {
		return neutral
	}
	return neutral + Smoothstep(1-ellipseDistance)*maxBoost
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

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func finitePositive(v float64) bool { return finite(v) && v > 0 }

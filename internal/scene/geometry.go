package scene

import "github.com/iburimskiy/proximity-nav/internal/proximity"

// Rect is an axis-aligned rectangle in window pixels.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// ScaleAbout scales r by s around the point (cx, cy).
func (r Rect) ScaleAbout(cx, cy, s float64) Rect {
	return Rect{
		X: cx + (r.X-cx)*s,
		Y: cy + (r.Y-cy)*s,
		W: r.W * s,
		H: r.H * s,
	}
}

// Scale scales r by s around its own center.
func (r Rect) Scale(s float64) Rect {
	cx, cy := r.Center()
	return r.ScaleAbout(cx, cy, s)
}

// Ellipse is a response zone centered on r with the given radii.
func (r Rect) Ellipse(rx, ry float64) proximity.Bounds {
	cx, cy := r.Center()
	return proximity.Bounds{CenterX: cx, CenterY: cy, RadiusX: rx, RadiusY: ry}
}

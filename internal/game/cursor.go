package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/proximity-nav/internal/config"
	"github.com/iburimskiy/proximity-nav/internal/proximity"
)

// cursorSource polls ebiten's cursor once per Update and forwards changes to
// the scene's pointer feed. Leaving the window or losing focus is a leave.
type cursorSource struct {
	feed   *proximity.Feed
	inside bool
	x, y   int
}

func (c *cursorSource) poll() (x, y int, inside bool) {
	x, y = ebiten.CursorPosition()
	inside = ebiten.IsFocused() &&
		x >= 0 && y >= 0 && x < config.WindowWidth && y < config.WindowHeight

	switch {
	case inside && (!c.inside || x != c.x || y != c.y):
		c.feed.Move(float64(x), float64(y))
	case !inside && c.inside:
		c.feed.Leave()
	}
	c.inside, c.x, c.y = inside, x, y
	return x, y, inside
}

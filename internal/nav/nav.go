// Package nav models the floating navigation bar: its items, the styling of
// each item relative to the active section, and which items are scrolled
// into view.
package nav

import "math"

const (
	VisibleItems = 5
	CenterIndex  = 2 // third visible slot
	ItemWidth    = 120
	GapSize      = 8

	ContainerWidth = VisibleItems*ItemWidth + (VisibleItems-1)*GapSize
)

type Item struct {
	ID      string `yaml:"id"`
	Label   string `yaml:"label"`
	Section string `yaml:"section"`
}

func DefaultItems() []Item {
	return []Item{
		{ID: "home", Label: "nav.home", Section: "hero"},
		{ID: "about", Label: "nav.about", Section: "about"},
		{ID: "projects", Label: "nav.projects", Section: "projects"},
		{ID: "blog", Label: "nav.blog", Section: "blog"},
		{ID: "media", Label: "nav.media", Section: "media"},
		{ID: "movies", Label: "nav.movies", Section: "movies"},
		{ID: "links", Label: "nav.links", Section: "links"},
		{ID: "contact", Label: "nav.contact", Section: "contact"},
	}
}

// IndexOf returns the index of the item whose section matches, or -1.
func IndexOf(items []Item, section string) int {
	for i, it := range items {
		if it.Section == section {
			return i
		}
	}
	return -1
}

// Style is the typographic emphasis of one item.
type Style struct {
	Weight int // 400..700
	Width  int // 85..100, percent
	Size   int // 14..18, px
}

// ItemStyle emphasizes the active item and fades neighbours out over
// CenterIndex slots on a cosine curve.
func ItemStyle(index, active int) Style {
	d := math.Abs(float64(index - active))
	n := math.Min(d/CenterIndex, 1)
	c := (math.Cos(n*math.Pi) + 1) / 2
	return Style{
		Weight: int(math.Round(400 + c*300)),
		Width:  int(math.Round(85 + c*15)),
		Size:   int(math.Round(14 + c*4)),
	}
}

// Emphasis maps a style to [0,1], 1 being the active item.
func (s Style) Emphasis() float64 {
	return float64(s.Weight-400) / 300
}

// ScrollOffset keeps the active item in the center slot where possible and
// never scrolls past either end of the strip.
func ScrollOffset(active, count int) int {
	target := (active - CenterIndex) * (ItemWidth + GapSize)
	total := count*(ItemWidth+GapSize) - GapSize
	maxOffset := total - ContainerWidth
	if maxOffset < 0 {
		maxOffset = 0
	}
	return max(0, min(target, maxOffset))
}

// Window returns the half-open range of items at least partly visible at
// the given offset.
func Window(offset, count int) (first, last int) {
	stride := ItemWidth + GapSize
	first = offset / stride
	last = (offset + ContainerWidth + stride - 1) / stride
	if last > count {
		last = count
	}
	if first > last {
		first = last
	}
	return first, last
}

// SlotX returns the left edge of item i relative to the container.
func SlotX(i, offset int) int {
	return i*(ItemWidth+GapSize) - offset
}

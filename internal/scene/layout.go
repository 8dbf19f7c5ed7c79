package scene

import (
	"github.com/iburimskiy/proximity-nav/internal/config"
	"github.com/iburimskiy/proximity-nav/internal/nav"
	"github.com/iburimskiy/proximity-nav/internal/site"
)

// Unscaled rectangles are "base"; exported rects include animator scale.

func (s *Scene) navBase() Rect {
	w := float64(nav.ContainerWidth + 2*config.NavPad)
	return Rect{
		X: (config.WindowWidth - w) / 2,
		Y: config.NavY,
		W: w,
		H: config.NavHeight,
	}
}

// NavRect is the bar scaled by its proximity value.
func (s *Scene) NavRect() Rect {
	return s.navBase().Scale(s.Nav.Value(BarID))
}

// VisibleRange is the half-open range of items currently scrolled into view.
func (s *Scene) VisibleRange() (int, int) {
	return nav.Window(s.offset, len(s.items))
}

func (s *Scene) itemBase(i int) Rect {
	base := s.navBase()
	return Rect{
		X: base.X + config.NavPad + float64(nav.SlotX(i, s.offset)),
		Y: base.Y + (config.NavHeight-config.OptionHeight)/2,
		W: nav.ItemWidth,
		H: config.OptionHeight,
	}
}

// itemInBar places item i inside the scaled bar, before its own scale.
func (s *Scene) itemInBar(i int) Rect {
	cx, cy := s.navBase().Center()
	return s.itemBase(i).ScaleAbout(cx, cy, s.Nav.Value(BarID))
}

// ItemRect is item i as drawn.
func (s *Scene) ItemRect(i int) Rect {
	return s.itemInBar(i).Scale(s.Nav.Value(ItemTarget(s.items[i].ID)))
}

// ItemStyle is the typographic emphasis of item i relative to the active one.
func (s *Scene) ItemStyle(i int) nav.Style {
	return nav.ItemStyle(i, s.active)
}

func pillBase(x float64, options int) Rect {
	h := float64(config.OptionHeight + 2*pillPad)
	return Rect{
		X: x,
		Y: config.WindowHeight - config.ControlsMargin - h,
		W: float64(options*config.OptionWidth + 2*pillPad),
		H: h,
	}
}

func (s *Scene) themeBase() Rect {
	return pillBase(config.ControlsMargin, len(site.Themes))
}

func (s *Scene) languageBase() Rect {
	w := float64(len(site.Langs)*config.OptionWidth + 2*pillPad)
	return pillBase(config.WindowWidth-config.ControlsMargin-w, len(site.Langs))
}

func (s *Scene) ThemePill() Rect {
	return s.themeBase().Scale(s.Theme.Value(ControlsID))
}

func (s *Scene) LanguagePill() Rect {
	return s.languageBase().Scale(s.Language.Value(ControlsID))
}

// optionIn places option j inside a pill scaled by pillScale.
func optionIn(base Rect, pillScale float64, j int) Rect {
	cx, cy := base.Center()
	return Rect{
		X: base.X + pillPad + float64(j*config.OptionWidth),
		Y: base.Y + pillPad,
		W: config.OptionWidth,
		H: config.OptionHeight,
	}.ScaleAbout(cx, cy, pillScale)
}

func (s *Scene) themeOption(j int) Rect {
	return optionIn(s.themeBase(), s.Theme.Value(ControlsID), j)
}

func (s *Scene) languageOption(j int) Rect {
	return optionIn(s.languageBase(), s.Language.Value(ControlsID), j)
}

func (s *Scene) ThemeOptionRect(j int) Rect {
	return s.themeOption(j).Scale(s.Theme.Value(string(site.Themes[j])))
}

func (s *Scene) LanguageOptionRect(j int) Rect {
	return s.languageOption(j).Scale(s.Language.Value(string(site.Langs[j])))
}

// Package scene holds the floating navigation page independent of any
// renderer: layout, the three proximity animators, click handling and the
// persisted theme, language and section.
//
// A Scene is driven from a single goroutine. The animators it owns are safe
// to read concurrently (for example from the inspect server).
package scene

import (
	"context"
	"log"
	"time"

	"github.com/iburimskiy/proximity-nav/internal/config"
	"github.com/iburimskiy/proximity-nav/internal/nav"
	"github.com/iburimskiy/proximity-nav/internal/prefs"
	"github.com/iburimskiy/proximity-nav/internal/proximity"
	"github.com/iburimskiy/proximity-nav/internal/site"
)

const (
	BarID      = "bar"
	ControlsID = "controls"

	pillPad = 4
)

// Prefs is the subset of the preference store the scene needs.
type Prefs interface {
	GetOr(ctx context.Context, key, def string) string
	Set(ctx context.Context, key, value string) error
}

type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionSection
	ActionTheme
	ActionLanguage
)

// Action describes what a click changed.
type Action struct {
	Kind  ActionKind
	Value string
}

type Scene struct {
	cfg   config.Config
	prefs Prefs
	now   func() time.Time

	items  []nav.Item
	active int
	offset int
	theme  site.Theme
	lang   site.Lang

	Nav      *proximity.Animator
	Theme    *proximity.Animator
	Language *proximity.Animator

	scheds  []*proximity.FrameScheduler
	feed    *proximity.Feed
	mounted map[string]bool
}

// New builds the scene and restores theme, language and section from p,
// which may be nil.
func New(cfg config.Config, p Prefs) (*Scene, error) {
	s := &Scene{
		cfg:     cfg,
		prefs:   p,
		now:     time.Now,
		items:   cfg.Items,
		theme:   site.ThemeAuto,
		lang:    site.LangEN,
		feed:    proximity.NewFeed(),
		mounted: map[string]bool{},
	}
	var err error
	if s.Nav, err = s.newAnimator(cfg.Nav.Config); err != nil {
		return nil, err
	}
	if s.Theme, err = s.newAnimator(cfg.Theme.Config); err != nil {
		return nil, err
	}
	if s.Language, err = s.newAnimator(cfg.Language.Config); err != nil {
		return nil, err
	}
	s.restore()

	s.Nav.Register(BarID, func() proximity.Bounds {
		return s.navBase().Ellipse(cfg.Nav.RadiusX, cfg.Nav.RadiusY)
	})
	s.Theme.Register(ControlsID, func() proximity.Bounds {
		return s.ThemePill().Ellipse(cfg.Theme.RadiusX, cfg.Theme.RadiusY)
	})
	for j, th := range site.Themes {
		j := j
		s.Theme.Register(string(th), func() proximity.Bounds {
			return s.themeOption(j).Ellipse(config.OptionWidth/2, config.OptionHeight/2)
		}, proximity.WithHoverFloor(config.HoverFloor))
	}
	s.Language.Register(ControlsID, func() proximity.Bounds {
		return s.LanguagePill().Ellipse(cfg.Language.RadiusX, cfg.Language.RadiusY)
	})
	for j, l := range site.Langs {
		j := j
		s.Language.Register(string(l), func() proximity.Bounds {
			return s.languageOption(j).Ellipse(config.OptionWidth/2, config.OptionHeight/2)
		}, proximity.WithHoverFloor(config.HoverFloor))
	}
	s.mountVisible()
	return s, nil
}

func (s *Scene) newAnimator(cfg proximity.Config) (*proximity.Animator, error) {
	sched := proximity.NewFrameScheduler()
	a, err := proximity.New(cfg, sched)
	if err != nil {
		return nil, err
	}
	a.Attach(s.feed)
	s.scheds = append(s.scheds, sched)
	return a, nil
}

func (s *Scene) restore() {
	if s.prefs == nil {
		return
	}
	ctx := context.Background()
	if th, err := site.ParseTheme(s.prefs.GetOr(ctx, prefs.KeyTheme, string(s.theme))); err == nil {
		s.theme = th
	}
	if l, err := site.ParseLang(s.prefs.GetOr(ctx, prefs.KeyLanguage, string(s.lang))); err == nil {
		s.lang = l
	}
	if i := nav.IndexOf(s.items, s.prefs.GetOr(ctx, prefs.KeySection, "")); i >= 0 {
		s.active = i
	}
	s.offset = nav.ScrollOffset(s.active, len(s.items))
}

// Pointer is the source hosts push cursor events into.
func (s *Scene) Pointer() *proximity.Feed { return s.feed }

// Animators returns the scene's animators by name.
func (s *Scene) Animators() map[string]*proximity.Animator {
	return map[string]*proximity.Animator{
		"nav":      s.Nav,
		"theme":    s.Theme,
		"language": s.Language,
	}
}

// Frame advances every animator by one tick; call once per rendered frame.
func (s *Scene) Frame() {
	for _, sched := range s.scheds {
		sched.Frame()
	}
}

// Animating reports whether any animator has a tick pending.
func (s *Scene) Animating() bool {
	for _, sched := range s.scheds {
		if sched.Pending() {
			return true
		}
	}
	return false
}

// Hover marks the option under (x, y) as hovered so it rests at the hover
// floor instead of neutral.
func (s *Scene) Hover(x, y float64) {
	for j, th := range site.Themes {
		s.Theme.SetHovered(string(th), s.ThemeOptionRect(j).Contains(x, y))
	}
	for j, l := range site.Langs {
		s.Language.SetHovered(string(l), s.LanguageOptionRect(j).Contains(x, y))
	}
}

// Click applies whatever control is under (x, y).
func (s *Scene) Click(x, y float64) Action {
	first, last := s.VisibleRange()
	for i := first; i < last; i++ {
		if s.ItemRect(i).Contains(x, y) {
			s.SetActive(i)
			return Action{Kind: ActionSection, Value: s.items[i].Section}
		}
	}
	for j, th := range site.Themes {
		if s.ThemeOptionRect(j).Contains(x, y) {
			s.SetTheme(th)
			return Action{Kind: ActionTheme, Value: string(th)}
		}
	}
	for j, l := range site.Langs {
		if s.LanguageOptionRect(j).Contains(x, y) {
			s.SetLanguage(l)
			return Action{Kind: ActionLanguage, Value: string(l)}
		}
	}
	return Action{}
}

func (s *Scene) Items() []nav.Item        { return s.items }
func (s *Scene) Active() int              { return s.active }
func (s *Scene) ThemeSetting() site.Theme { return s.theme }
func (s *Scene) Lang() site.Lang          { return s.lang }

// EffectiveTheme resolves auto using the local clock.
func (s *Scene) EffectiveTheme() site.Theme {
	return s.theme.Effective(site.SystemDark(s.now()))
}

func (s *Scene) Colors() site.Colors { return site.Palette(s.EffectiveTheme()) }

func (s *Scene) T(key string) string { return site.T(s.lang, key) }

func (s *Scene) SetActive(i int) {
	if i < 0 || i >= len(s.items) {
		return
	}
	s.active = i
	s.offset = nav.ScrollOffset(i, len(s.items))
	s.mountVisible()
	s.persist(prefs.KeySection, s.items[i].Section)
}

// Step moves the active section by delta, clamped to the item list.
func (s *Scene) Step(delta int) {
	i := max(0, min(s.active+delta, len(s.items)-1))
	if i != s.active {
		s.SetActive(i)
	}
}

func (s *Scene) SetTheme(th site.Theme) {
	s.theme = th
	s.persist(prefs.KeyTheme, string(th))
}

func (s *Scene) CycleTheme() { s.SetTheme(s.theme.Next()) }

func (s *Scene) SetLanguage(l site.Lang) {
	s.lang = l
	s.persist(prefs.KeyLanguage, string(l))
}

// SetItems swaps in a new nav layout, keeping the active section if it
// still exists.
func (s *Scene) SetItems(items []nav.Item) {
	section := ""
	if s.active < len(s.items) {
		section = s.items[s.active].Section
	}
	for id := range s.mounted {
		s.Nav.Unregister(ItemTarget(id))
		delete(s.mounted, id)
	}
	s.items = items
	s.active = max(0, nav.IndexOf(items, section))
	s.offset = nav.ScrollOffset(s.active, len(items))
	s.mountVisible()
}

// ApplyPref applies an externally changed preference without writing it back.
func (s *Scene) ApplyPref(key, value string) {
	switch key {
	case prefs.KeyTheme:
		if th, err := site.ParseTheme(value); err == nil {
			s.theme = th
		}
	case prefs.KeyLanguage:
		if l, err := site.ParseLang(value); err == nil {
			s.lang = l
		}
	case prefs.KeySection:
		if i := nav.IndexOf(s.items, value); i >= 0 && i != s.active {
			s.active = i
			s.offset = nav.ScrollOffset(i, len(s.items))
			s.mountVisible()
		}
	}
}

// Close disposes the animators.
func (s *Scene) Close() {
	for _, a := range []*proximity.Animator{s.Nav, s.Theme, s.Language} {
		a.Dispose()
	}
}

func (s *Scene) persist(key, value string) {
	if s.prefs == nil {
		return
	}
	if err := s.prefs.Set(context.Background(), key, value); err != nil {
		log.Printf("[WARN] saving %s: %v", key, err)
	}
}

// mountVisible registers targets for items scrolled into view and drops the
// ones scrolled out.
func (s *Scene) mountVisible() {
	first, last := s.VisibleRange()
	visible := map[string]bool{}
	for i := first; i < last; i++ {
		visible[s.items[i].ID] = true
	}
	for id := range s.mounted {
		if !visible[id] {
			s.Nav.Unregister(ItemTarget(id))
			delete(s.mounted, id)
		}
	}
	for i := first; i < last; i++ {
		id := s.items[i].ID
		if s.mounted[id] {
			continue
		}
		idx := i
		s.Nav.Register(ItemTarget(id), func() proximity.Bounds {
			return s.itemInBar(idx).Ellipse(nav.ItemWidth*0.6, config.NavHeight)
		})
		s.mounted[id] = true
	}
}

// ItemTarget is the nav animator target id for a nav item.
func ItemTarget(id string) string { return "item:" + id }

// Mounted reports whether the nav item id currently has a registered target.
func (s *Scene) Mounted(id string) bool { return s.mounted[id] }

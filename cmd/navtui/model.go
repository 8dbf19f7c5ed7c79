package main

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iburimskiy/proximity-nav/internal/config"
	"github.com/iburimskiy/proximity-nav/internal/nav"
	"github.com/iburimskiy/proximity-nav/internal/prefs"
	"github.com/iburimskiy/proximity-nav/internal/proximity"
	"github.com/iburimskiy/proximity-nav/internal/site"
)

// A terminal cell stands in for cellW x cellH pixels so the nav keeps the
// pixel geometry and ellipse sizes of the desktop host.
const (
	cellW = 8
	cellH = 16

	barID   = "bar"
	navRow  = 2
	barLeft = 2

	frameInterval = 16 * time.Millisecond
)

type frameMsg time.Time

// store is the part of the preference store the terminal host uses.
type store interface {
	GetOr(ctx context.Context, key, def string) string
	Set(ctx context.Context, key, value string) error
}

type model struct {
	cfg    config.Config
	prefs  store
	sched  *proximity.FrameScheduler
	anim   *proximity.Animator
	items  []nav.Item
	active int
	offset int
	lang   site.Lang
	theme  site.Theme

	ticking bool
	err     error
}

func newModel(cfg config.Config, p store) (*model, error) {
	sched := proximity.NewFrameScheduler()
	anim, err := proximity.New(cfg.Nav.Config, sched)
	if err != nil {
		return nil, err
	}
	m := &model{
		cfg:   cfg,
		prefs: p,
		sched: sched,
		anim:  anim,
		items: cfg.Items,
		lang:  site.LangEN,
		theme: site.ThemeAuto,
	}
	if p != nil {
		ctx := context.Background()
		if l, err := site.ParseLang(p.GetOr(ctx, prefs.KeyLanguage, "")); err == nil {
			m.lang = l
		}
		if th, err := site.ParseTheme(p.GetOr(ctx, prefs.KeyTheme, "")); err == nil {
			m.theme = th
		}
		if i := nav.IndexOf(m.items, p.GetOr(ctx, prefs.KeySection, "")); i >= 0 {
			m.active = i
		}
	}
	m.offset = nav.ScrollOffset(m.active, len(m.items))

	anim.Register(barID, func() proximity.Bounds {
		return proximity.Bounds{
			CenterX: barLeft*cellW + nav.ContainerWidth/2,
			CenterY: navRow*cellH + cellH/2,
			RadiusX: cfg.Nav.RadiusX,
			RadiusY: cfg.Nav.RadiusY,
		}
	})
	for i, it := range m.items {
		anim.Register(it.ID, m.itemBounds(i))
	}
	return m, nil
}

func (m *model) itemBounds(i int) proximity.BoundsFunc {
	return func() proximity.Bounds {
		return proximity.Bounds{
			CenterX: float64(barLeft*cellW + nav.SlotX(i, m.offset) + nav.ItemWidth/2),
			CenterY: navRow*cellH + cellH/2,
			RadiusX: m.cfg.Nav.RadiusX / 2,
			RadiusY: m.cfg.Nav.RadiusY,
		}
	}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.anim.Dispose()
			return m, tea.Quit
		case "left", "h":
			m.setActive(m.active - 1)
		case "right", "l":
			m.setActive(m.active + 1)
		case " ":
			m.theme = m.theme.Next()
			m.persist(prefs.KeyTheme, string(m.theme))
		case "t":
			m.lang = m.lang.Next()
			m.persist(prefs.KeyLanguage, string(m.lang))
		}
	case tea.MouseMsg:
		x, y := cellCenter(msg.X, msg.Y)
		m.anim.PointerMove(x, y)
		if msg.Type == tea.MouseLeft {
			if i := m.itemAt(msg.X, msg.Y); i >= 0 {
				m.setActive(i)
			}
		}
	case frameMsg:
		m.sched.Frame()
		m.ticking = false
	}
	return m, m.pump()
}

// pump keeps a frame tick in flight only while the animator has work queued.
func (m *model) pump() tea.Cmd {
	if m.ticking || !m.sched.Pending() {
		return nil
	}
	m.ticking = true
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *model) setActive(i int) {
	if i < 0 || i >= len(m.items) || i == m.active {
		return
	}
	m.active = i
	m.offset = nav.ScrollOffset(i, len(m.items))
	m.persist(prefs.KeySection, m.items[i].Section)
}

func (m *model) persist(key, value string) {
	if m.prefs == nil {
		return
	}
	if err := m.prefs.Set(context.Background(), key, value); err != nil {
		m.err = err
	}
}

// itemAt returns the visible item under a cell, or -1.
func (m *model) itemAt(cx, cy int) int {
	if cy != navRow {
		return -1
	}
	px := (cx-barLeft-m.padding(m.anim.Value(barID)))*cellW + cellW/2
	first, last := nav.Window(m.offset, len(m.items))
	for i := first; i < last; i++ {
		left := nav.SlotX(i, m.offset)
		if px >= left && px < left+nav.ItemWidth {
			return i
		}
	}
	return -1
}

func cellCenter(cx, cy int) (float64, float64) {
	return float64(cx*cellW + cellW/2), float64(cy*cellH + cellH/2)
}

// padding maps a scale value onto 0..2 cells of horizontal padding.
func (m *model) padding(v float64) int {
	boost := m.cfg.Nav.MaxBoost
	if boost <= 0 {
		return 0
	}
	t := (v - m.cfg.Nav.Neutral) / boost
	return int(math.Round(2 * max(0, min(t, 1))))
}

func (m *model) View() string {
	colors := site.Palette(m.theme.Effective(site.SystemDark(time.Now())))
	text := lipgloss.Color(hex(colors.Text))
	muted := lipgloss.Color(hex(colors.TextMuted))
	border := lipgloss.Color(hex(colors.Border))

	slot := nav.ItemWidth / cellW
	gap := strings.Repeat(" ", nav.GapSize/cellW)
	first, last := nav.Window(m.offset, len(m.items))

	cells := make([]string, 0, last-first)
	for i := first; i < last; i++ {
		it := m.items[i]
		v := m.anim.Value(it.ID)
		emph := nav.ItemStyle(i, m.active).Emphasis()
		st := lipgloss.NewStyle().
			Width(slot).
			Align(lipgloss.Center).
			Padding(0, m.padding(v)).
			Foreground(muted)
		if emph > 0.5 || v > m.cfg.Nav.Neutral+m.cfg.Nav.MaxBoost/2 {
			st = st.Bold(true).Foreground(text)
		}
		if i == m.active {
			st = st.Underline(true)
		}
		cells = append(cells, st.Render(site.T(m.lang, it.Label)))
	}

	barPad := m.padding(m.anim.Value(barID))
	bar := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, barPad).
		MarginLeft(barLeft - 1).
		Render(strings.Join(cells, gap))

	section := ""
	if len(m.items) > 0 {
		section = site.T(m.lang, "section."+m.items[m.active].Section)
	}
	status := fmt.Sprintf("theme: %s  lang: %s  (←/→ section, space theme, t lang, q quit)",
		site.T(m.lang, "theme."+string(m.theme)), site.T(m.lang, "lang."+string(m.lang)))
	if m.err != nil {
		status = "error: " + m.err.Error()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		bar,
		"",
		lipgloss.NewStyle().MarginLeft(barLeft).Foreground(text).Render(section),
		"",
		lipgloss.NewStyle().MarginLeft(barLeft).Foreground(muted).Render(status),
	)
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

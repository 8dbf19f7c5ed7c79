package main

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iburimskiy/proximity-nav/internal/config"
	"github.com/iburimskiy/proximity-nav/internal/nav"
	"github.com/iburimskiy/proximity-nav/internal/prefs"
)

type memPrefs map[string]string

func (m memPrefs) GetOr(_ context.Context, key, def string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return def
}

func (m memPrefs) Set(_ context.Context, key, value string) error {
	m[key] = value
	return nil
}

func newTestModel(t *testing.T, p store) *model {
	t.Helper()
	m, err := newModel(config.Default(), p)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// settle pumps frames the way the tea.Tick loop would.
func settle(m *model) {
	for i := 0; i < 200 && m.sched.Pending(); i++ {
		m.Update(frameMsg{})
	}
}

func TestMouseOverItemBoostsIt(t *testing.T) {
	m := newTestModel(t, nil)
	first, _ := nav.Window(m.offset, len(m.items))
	id := m.items[first].ID

	// Center column of the first visible slot
	cx := barLeft + (nav.SlotX(first, m.offset)+nav.ItemWidth/2)/cellW
	_, cmd := m.Update(tea.MouseMsg{X: cx, Y: navRow, Type: tea.MouseMotion})
	if cmd == nil {
		t.Fatal("expected a frame tick after pointer move")
	}
	settle(m)

	if v := m.anim.Value(id); v <= 1.1 {
		t.Errorf("value of hovered item = %v", v)
	}
	if m.sched.Pending() {
		t.Error("loop still pending after settle")
	}
	if m.padding(m.anim.Value(id)) == 0 {
		t.Error("hovered item has no padding")
	}
}

func TestClickSelectsAndPersists(t *testing.T) {
	p := memPrefs{}
	m := newTestModel(t, p)
	target := 1
	cx := barLeft + (nav.SlotX(target, m.offset)+nav.ItemWidth/2)/cellW
	m.Update(tea.MouseMsg{X: cx, Y: navRow, Type: tea.MouseLeft})

	if m.active != target {
		t.Fatalf("active = %d, want %d", m.active, target)
	}
	if got := p[prefs.KeySection]; got != m.items[target].Section {
		t.Errorf("persisted section = %q", got)
	}
	if m.itemAt(cx, navRow+3) != -1 {
		t.Error("click off the nav row hit an item")
	}
}

func TestRestoreAndKeys(t *testing.T) {
	p := memPrefs{prefs.KeySection: "contact", prefs.KeyLanguage: "zh", prefs.KeyTheme: "dark"}
	m := newTestModel(t, p)
	if m.items[m.active].Section != "contact" || m.lang != "zh" || m.theme != "dark" {
		t.Fatalf("restored = %d %s %s", m.active, m.lang, m.theme)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.items[m.active].Section == "contact" {
		t.Error("left arrow did not move")
	}
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if p[prefs.KeyTheme] != "auto" {
		t.Errorf("theme after space = %q", p[prefs.KeyTheme])
	}

	view := m.View()
	if !strings.Contains(view, "联系") {
		t.Errorf("view missing zh label:\n%s", view)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q did not quit")
	}
	if m.anim.Animating() {
		t.Error("animator still running after quit")
	}
}

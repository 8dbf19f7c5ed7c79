package game

import (
	"fmt"
	"image/color"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/proximity-nav/internal/config"
	"github.com/iburimskiy/proximity-nav/internal/scene"
	"github.com/iburimskiy/proximity-nav/internal/site"
)

// Debug font glyph size
const (
	glyphW = 6
	glyphH = 16
)

func (g *Game) Draw(screen *ebiten.Image) {
	colors := g.scene.Colors()
	screen.Fill(colors.Background)

	g.drawSection(screen, colors)
	g.drawNav(screen, colors)
	g.drawControls(screen, colors)
	g.drawStatus(screen)
}

func (g *Game) drawSection(screen *ebiten.Image, colors site.Colors) {
	items := g.scene.Items()
	if len(items) == 0 {
		return
	}
	item := items[g.scene.Active()]
	cx := config.WindowWidth / 2
	cy := config.WindowHeight / 2

	title := g.scene.T(item.Label)
	body := g.scene.T("section." + item.Section)
	drawCentered(screen, title, cx, cy-glyphH)
	drawCentered(screen, body, cx, cy+glyphH/2)

	// Accent rule under the title, widened by the click pulse
	w := float32(60 + 120*g.pulse)
	vector.DrawFilledRect(screen, float32(cx)-w/2, float32(cy), w, 2,
		accent(colors.AccentHue, g.colorPhase, 0.6+0.4*g.pulse), true)
}

func (g *Game) drawNav(screen *ebiten.Image, colors site.Colors) {
	bar := g.scene.NavRect()
	fillRect(screen, bar, colors.Surface)
	strokeRect(screen, bar, 1, colors.Border)

	first, last := g.scene.VisibleRange()
	items := g.scene.Items()
	for i := first; i < last; i++ {
		r := g.scene.ItemRect(i)
		style := g.scene.ItemStyle(i)
		if i == g.scene.Active() {
			fillRect(screen, r, accent(colors.AccentHue, g.colorPhase, 0.35+0.4*g.pulse))
		}

		// Emphasis shows as underline length since the debug font has one weight
		u := r.W * (0.3 + 0.6*style.Emphasis())
		cx, _ := r.Center()
		vector.DrawFilledRect(screen, float32(cx-u/2), float32(r.Y+r.H-4), float32(u), 2,
			withAlpha(colors.TextMuted, 0.4+0.6*style.Emphasis()), true)

		drawCentered(screen, g.scene.T(items[i].Label), int(cx), int(r.Y+r.H/2-glyphH/2))
	}
}

func (g *Game) drawControls(screen *ebiten.Image, colors site.Colors) {
	g.drawPill(screen, colors, g.scene.ThemePill(), len(site.Themes), g.scene.ThemeOptionRect,
		func(j int) (string, bool) {
			th := site.Themes[j]
			return g.scene.T("theme." + string(th)), th == g.scene.ThemeSetting()
		})
	g.drawPill(screen, colors, g.scene.LanguagePill(), len(site.Langs), g.scene.LanguageOptionRect,
		func(j int) (string, bool) {
			l := site.Langs[j]
			return g.scene.T("lang." + string(l)), l == g.scene.Lang()
		})
}

func (g *Game) drawPill(screen *ebiten.Image, colors site.Colors, pill scene.Rect, n int,
	option func(int) scene.Rect, label func(int) (string, bool)) {
	fillRect(screen, pill, colors.Surface)
	strokeRect(screen, pill, 1, colors.Border)
	for j := 0; j < n; j++ {
		r := option(j)
		text, selected := label(j)
		if selected {
			fillRect(screen, r, accent(colors.AccentHue, g.colorPhase, 0.5))
		}
		cx, cy := r.Center()
		drawCentered(screen, text, int(cx), int(cy)-glyphH/2)
	}
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	msg := g.scene.T("status.help")
	if g.status != "" {
		msg = g.status
	}
	if g.lastErr != nil {
		msg = fmt.Sprintf("Error: %v", g.lastErr)
	}
	ebitenutil.DebugPrintAt(screen, msg, 12, 12)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %0.1f", ebiten.ActualTPS()), 12, config.WindowHeight-glyphH-8)
}

func drawCentered(screen *ebiten.Image, text string, cx, y int) {
	w := utf8.RuneCountInString(text) * glyphW
	ebitenutil.DebugPrintAt(screen, text, cx-w/2, y)
}

func fillRect(screen *ebiten.Image, r scene.Rect, c color.Color) {
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, true)
}

func strokeRect(screen *ebiten.Image, r scene.Rect, width float32, c color.Color) {
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), width, c, true)
}

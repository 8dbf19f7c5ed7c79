package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/proximity-nav/internal/config"
	"github.com/iburimskiy/proximity-nav/internal/prefs"
	"github.com/iburimskiy/proximity-nav/internal/scene"
)

const colorShiftSpeed = 0.01

type prefChange struct{ key, value string }

// Game hosts a scene in an ebiten window.
type Game struct {
	scene  *scene.Scene
	cursor cursorSource
	audio  *player

	changes     chan prefChange
	unsubscribe func()

	colorPhase float64
	pulse      float64
	status     string
	lastErr    error
}

// New wires sc to ebiten input. store may be nil; when set, preference
// changes made by other writers (the inspect API) are applied to the scene.
func New(sc *scene.Scene, store *prefs.Store, sound bool) *Game {
	g := &Game{
		scene:   sc,
		cursor:  cursorSource{feed: sc.Pointer()},
		audio:   newPlayer(sound),
		changes: make(chan prefChange, 16),
	}
	if store != nil {
		g.unsubscribe = store.Subscribe(func(key, value string) {
			select {
			case g.changes <- prefChange{key, value}:
			default:
				log.Printf("[WARN] dropped preference change %s=%s", key, value)
			}
		})
	}
	return g
}

func (g *Game) Update() error {
	g.drainChanges()

	x, y, inside := g.cursor.poll()
	fx, fy := float64(x), float64(y)
	if inside {
		g.scene.Hover(fx, fy)
	} else {
		g.scene.Hover(-1, -1)
	}

	if inside && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if act := g.scene.Click(fx, fy); act.Kind != scene.ActionNone {
			g.lastErr = nil
			g.status = ""
			g.audio.blip(g.blipStep(act))
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		g.scene.Step(-1)
		g.audio.blip(g.scene.Active())
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		g.scene.Step(1)
		g.audio.blip(g.scene.Active())
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.scene.CycleTheme()
		g.audio.blip(0)
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		g.loadLayout()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	}

	g.scene.Frame()
	g.colorPhase += colorShiftSpeed
	g.pulse = g.audio.update()
	return nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// Close stops listening for preference changes and disposes the scene.
func (g *Game) Close() {
	if g.unsubscribe != nil {
		g.unsubscribe()
	}
	g.scene.Close()
}

func (g *Game) drainChanges() {
	for {
		select {
		case c := <-g.changes:
			g.scene.ApplyPref(c.key, c.value)
		default:
			return
		}
	}
}

func (g *Game) loadLayout() {
	items, err := openLayoutDialog()
	if err != nil {
		g.lastErr = err
		log.Printf("[WARN] layout: %v", err)
		return
	}
	if items == nil {
		return
	}
	g.lastErr = nil
	g.scene.SetItems(items)
	g.status = g.scene.T("status.layout")
}

// blipStep picks a pitch step per action so sections sound distinct.
func (g *Game) blipStep(act scene.Action) int {
	switch act.Kind {
	case scene.ActionSection:
		return g.scene.Active()
	case scene.ActionTheme:
		return -3
	case scene.ActionLanguage:
		return -5
	}
	return 0
}

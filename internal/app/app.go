//go:build ebiten

package app

import (
	"fmt"
	"time"

	"tiledworld/internal/geom"
	"tiledworld/internal/render"
	"tiledworld/internal/ui"
	"tiledworld/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a tiled world to the ebiten.Game interface.
type Game struct {
	world   *world.World
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	scale    int
	hudWidth int
	seed     int64
}

// New constructs a Game for the provided world.
func New(w *world.World, scale, hudWidth int, seed int64) *Game {
	size := w.Size()
	g := &Game{
		world:    w,
		painter:  render.NewGridPainter(size.W, size.H),
		overlay:  ui.NewOverlay(w, scale),
		scale:    scale,
		hudWidth: hudWidth,
		seed:     seed,
	}
	if hudWidth > 0 {
		g.hud = ui.NewHUD(w, hudWidth)
	}
	return g
}

// Reset regenerates the world with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.world.Reset(seed)
}

// Update handles per-frame input.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.world.SetFieldView(!g.world.FieldView())
	}

	if g.overlay != nil {
		g.overlay.Update()
	}
	if g.hud != nil {
		g.hud.Update(g.panelOffsetX())
	}
	g.handleInspection()
	return nil
}

// handleInspection surfaces the spatial index contents under a clicked cell.
func (g *Game) handleInspection() {
	if g.hud == nil || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < 0 || my < 0 || mx >= g.panelOffsetX() {
		return
	}
	size := g.world.Size()
	scale := g.scale
	if scale <= 0 {
		scale = 1
	}
	cx := mx / scale
	cy := my / scale
	if cx >= size.W || cy >= size.H {
		return
	}
	p := geom.Vec2{X: float64(cx), Y: float64(cy)}
	cells := g.world.TilesAt(p)
	g.hud.SetStatus(fmt.Sprintf("(%d,%d) leaf holds %d cells", cx, cy, len(cells)))
}

// Draw renders the current world state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.world.Colors(), g.scale)
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
	if g.hud != nil {
		g.hud.Draw(screen, g.panelOffsetX(), g.scale)
	}
}

// Layout returns the logical screen size including the HUD panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.world.Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}

func (g *Game) panelOffsetX() int {
	return g.world.Size().W * g.scale
}

package host

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"arview/internal/buildinfo"
	"arview/xr"
)

// RunWindow opens the desktop window and drives the application step once
// per tick. It blocks until the window closes.
//
// Bindings: Tab toggles the AR session, Space or left click fires the select
// trigger, L requests an asset load, Escape ends a running session.
func RunWindow(h *Host, loadSrc xr.AssetSource, step StepFunc) error {
	g := &game{h: h, loadSrc: loadSrc, step: step}
	ebiten.SetWindowTitle("arview (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.cfg.Width, h.cfg.Height)
	ebiten.SetTPS(h.cfg.TPS)
	return ebiten.RunGame(g)
}

type game struct {
	h       *Host
	loadSrc xr.AssetSource
	step    StepFunc
}

func (g *game) Update() error {
	g.pollInput()
	return g.h.step(g.step)
}

func (g *game) pollInput() {
	h := g.h

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		h.ToggleSession()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		h.EndSession()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		h.emitLoad(g.loadSrc)
	}

	if h.InAR() {
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
			inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			h.emitSelect()
		}
		return
	}

	// Inspection mode: pointer drives the orbit rig.
	x, y := ebiten.CursorPosition()
	h.orbit.Pointer(x, y, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
	if _, wy := ebiten.Wheel(); wy != 0 {
		h.orbit.Dolly(wy)
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	h := g.h
	now := float64(h.tick) / float64(h.cfg.TPS)
	proj := perspective(h.cfg.Width, h.cfg.Height)

	if h.InAR() {
		view := viewFromPose(devicePose(now))
		m := proj.Mul4(view)
		drawGrid(screen, m)
		if pose, ok := h.reticleState(); ok {
			drawReticle(screen, m, pose)
		}
		for _, mesh := range h.scene.snapshot() {
			drawMesh(screen, m, mesh, colorAsset)
		}
	} else {
		m := proj.Mul4(h.orbit.View())
		drawGrid(screen, m)
		for _, mesh := range h.scene.snapshot() {
			drawMesh(screen, m, mesh, colorAsset)
		}
	}

	if s := h.status(); s != "" {
		ebitenutil.DebugPrint(screen, s)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.cfg.Width, g.h.cfg.Height
}

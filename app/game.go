// Package app drives the orrery inside an Ebiten window: it feeds pointer
// input to the orbit controls, runs the scheduler once per frame and draws
// the scene with the ImGui overlay on top.
package app

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/orrery/ecs"
	"github.com/plus3/orrery/ecs/debugui"
	debugui_ebiten "github.com/plus3/orrery/ecs/debugui/ebiten"
	"github.com/plus3/orrery/render"
	render_ebiten "github.com/plus3/orrery/render/ebiten"
)

// Options configures a Game.
type Options struct {
	// Resizable follows the window size. Otherwise Layout keeps Width x Height.
	Resizable bool
	Width     int
	Height    int
	// Imgui draws the debug overlay. Nil disables it.
	Imgui *debugui_ebiten.ImguiBackend
}

// Game implements ebiten.Game.
type Game struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	scene     *render.SceneContext
	renderer  *render_ebiten.Renderer
	opts      Options

	last time.Time
}

// NewGame returns a game drawing ctx. The scheduler should already hold the
// orrery systems and, with an overlay, debugui.ImguiSystem.
func NewGame(storage *ecs.Storage, scheduler *ecs.Scheduler, ctx *render.SceneContext, opts Options) *Game {
	return &Game{
		storage:   storage,
		scheduler: scheduler,
		scene:     ctx,
		renderer:  render_ebiten.NewRenderer(),
		opts:      opts,
	}
}

// Update feeds the pointer to the controls, runs one scheduler pass and
// settles the camera. Escape ends the game.
func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	_, h := g.scene.Size()
	g.scene.Controls.HandlePointer(g.samplePointer(), h)

	now := time.Now()
	dt := 0.0
	if !g.last.IsZero() {
		dt = now.Sub(g.last).Seconds()
	}
	g.last = now

	if g.opts.Imgui != nil {
		g.opts.Imgui.Frame(func() {
			g.scheduler.Once(dt)
		})
	} else {
		g.scheduler.Once(dt)
	}

	g.scene.Controls.Update()
	return nil
}

// samplePointer reads the mouse. While ImGui wants the mouse, buttons and
// wheel read as idle so drags over a window do not move the camera.
func (g *Game) samplePointer() render.PointerState {
	x, y := ebiten.CursorPosition()
	p := render.PointerState{X: float32(x), Y: float32(y)}

	var input *debugui.ImguiInputState
	if g.storage.ReadSingleton(&input) && input.WantCaptureMouse {
		return p
	}

	p.Left = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	p.Right = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	_, wheel := ebiten.Wheel()
	p.WheelY = float32(wheel)
	return p
}

// Draw renders the scene, then the overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.scene)
	if g.opts.Imgui != nil {
		g.opts.Imgui.Overlay(screen)
	}
}

// Layout resizes the scene to the window, or keeps the configured size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.opts.Width, g.opts.Height
	if g.opts.Resizable {
		w, h = outsideWidth, outsideHeight
	}
	g.scene.Resize(w, h)
	if g.opts.Imgui != nil {
		g.opts.Imgui.Layout(w, h)
	}
	return w, h
}

// Stats returns the pipeline counts of the last drawn frame.
func (g *Game) Stats() render.FrameStats {
	return g.renderer.Stats()
}

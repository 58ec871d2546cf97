package ebiten_test

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/orrery/ecs"
	"github.com/plus3/orrery/ecs/debugui"
	debugui_ebiten "github.com/plus3/orrery/ecs/debugui/ebiten"
)

// Game implements ebiten.Game and draws the ECS debug windows over an empty
// screen.
type Game struct {
	scheduler    *ecs.Scheduler
	imguiBackend *ecs.Singleton[debugui_ebiten.ImguiBackend]
}

func (g *Game) Update() error {
	g.imguiBackend.Get().Frame(func() {
		g.scheduler.Once(1.0 / 60.0)
	})
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.imguiBackend.Get().Overlay(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imguiBackend.Get().Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	registry := ecs.NewComponentRegistry()
	debugui.RegisterDebugUIComponents(registry)
	storage := ecs.NewStorage(registry)

	ecs.NewSingleton(storage, debugui_ebiten.NewImguiBackend("ECS Debug", 1280, 720))

	scheduler := ecs.NewScheduler(storage)
	debugui.SpawnDebugUI(storage, scheduler)
	storage.Spawn(debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Hello")
			imgui.Text(fmt.Sprintf("frames: %d", scheduler.Frames()))
			imgui.End()
		},
	})
	scheduler.Register(&debugui.ImguiSystem{})

	game := &Game{
		scheduler:    scheduler,
		imguiBackend: ecs.NewSingleton[debugui_ebiten.ImguiBackend](storage),
	}
	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}

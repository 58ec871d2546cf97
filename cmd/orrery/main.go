// Command orrery opens a window showing the animated star system.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/orrery/app"
	"github.com/plus3/orrery/asset"
	"github.com/plus3/orrery/config"
	"github.com/plus3/orrery/ecs"
	"github.com/plus3/orrery/ecs/debugui"
	debugui_ebiten "github.com/plus3/orrery/ecs/debugui/ebiten"
	"github.com/plus3/orrery/orrery"
	"github.com/plus3/orrery/render"
	"github.com/plus3/orrery/scene"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("orrery failed", "err", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Parse("orrery", args, os.Stderr)
	if err != nil {
		return err
	}

	level, _ := cfg.Log.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	catalog := orrery.DefaultCatalog()
	if err := orrery.ValidateCatalog(catalog); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	registry := ecs.NewComponentRegistry()
	orrery.RegisterComponents(registry)
	debugui.RegisterDebugUIComponents(registry)
	storage := ecs.NewStorage(registry)

	textures := asset.NewTextureLoader(os.DirFS(cfg.Assets.Dir), cfg.Assets.MaxTextureSize, logger)
	graph := scene.NewGraph()
	orrery.Spawn(storage, graph, catalog, textures)
	if err := orrery.AddEnvironment(graph, textures); err != nil {
		return err
	}

	if model := cfg.Assets.Model; model != "" {
		if !filepath.IsAbs(model) {
			model = filepath.Join(cfg.Assets.Dir, model)
		}
		logger.Info("loading model", "path", model)
		orrery.AttachModel(storage, asset.NewModelLoader(logger).Load(model), "")
	}

	w, h := cfg.Window.Width, cfg.Window.Height
	camera := scene.NewPerspectiveCamera(cfg.Camera.Fov, float32(w)/float32(h), cfg.Camera.Near, cfg.Camera.Far)
	camera.Position = cfg.Camera.Position
	ctx := render.NewSceneContext(graph, camera, w, h)
	ctx.Controls.EnableDamping = cfg.Camera.Damping
	ctx.Controls.DampingFactor = cfg.Camera.DampingFactor
	ctx.Controls.Update()

	scheduler := ecs.NewScheduler(storage)
	orrery.RegisterSystems(scheduler, logger)

	opts := app.Options{Resizable: cfg.Window.Resizable, Width: w, Height: h}
	if cfg.Debug.UI {
		backend := debugui_ebiten.NewImguiBackend(cfg.Window.Title, w, h)
		opts.Imgui = &backend

		debugui.SpawnDebugUI(storage, scheduler)
		scheduler.Register(&debugui.ImguiSystem{})
	} else {
		ebiten.SetWindowSize(w, h)
		ebiten.SetWindowTitle(cfg.Window.Title)
	}
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(ebiten.SyncWithFPS)

	game := app.NewGame(storage, scheduler, ctx, opts)
	if cfg.Debug.UI {
		app.SpawnBodyInspector(storage, game.Stats)
	}

	logger.Info("starting", "width", w, "height", h, "bodies", len(catalog.Bodies), "debug_ui", cfg.Debug.UI)
	return ebiten.RunGame(game)
}

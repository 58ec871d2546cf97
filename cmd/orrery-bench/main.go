// Command orrery-bench runs the orrery's kinematic systems without a window
// and prints a timing report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/plus3/orrery/ecs"
	"github.com/plus3/orrery/orrery"
	"github.com/plus3/orrery/render"
	"github.com/plus3/orrery/scene"
)

// blankTextures hands out textures that never load.
type blankTextures struct{}

func (blankTextures) Load(ref string) *scene.Texture { return scene.NewTexture(ref) }

func (blankTextures) LoadCube(refs [6]string) *scene.CubeTexture {
	cube := &scene.CubeTexture{}
	for i, ref := range refs {
		cube.Faces[i] = scene.NewTexture(ref)
	}
	return cube
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "how long to run")
	systems := flag.Int("systems", 1, "number of star systems to spawn")
	pipeline := flag.Bool("pipeline", false, "also run the triangle pipeline every frame")
	width := flag.Int("width", 1280, "pipeline viewport width")
	height := flag.Int("height", 720, "pipeline viewport height")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "include GC pause totals in the report")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if *systems < 1 {
		logger.Error("systems must be at least 1", "systems", *systems)
		os.Exit(2)
	}

	registry := ecs.NewComponentRegistry()
	orrery.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	graph := scene.NewGraph()
	catalog := orrery.DefaultCatalog()
	for range *systems {
		orrery.Spawn(storage, graph, catalog, blankTextures{})
	}
	if err := orrery.AddEnvironment(graph, blankTextures{}); err != nil {
		logger.Error("environment", "err", err)
		os.Exit(1)
	}

	scheduler := ecs.NewScheduler(storage)
	orrery.RegisterSystems(scheduler, logger)

	camera := scene.NewPerspectiveCamera(75, float32(*width)/float32(*height), 0.1, 1000)
	ctx := render.NewSceneContext(graph, camera, *width, *height)
	camera.Position = [3]float32{-90, 140, 140}
	ctx.Controls.Update()
	pipe := render.NewPipeline()

	report := &Report{
		Duration:       *duration,
		StarSystems:    *systems,
		Bodies:         storage.CollectStats().TotalEntityCount,
		Pipeline:       *pipeline,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info("running", "duration", *duration, "bodies", report.Bodies, "pipeline", *pipeline)
	runCtx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	start := time.Now()
	last := start
Loop:
	for {
		select {
		case <-runCtx.Done():
			break Loop
		default:
		}

		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now

		updateStart := time.Now()
		scheduler.Once(dt)
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))

		if *pipeline {
			w, h := ctx.Size()
			drawStart := time.Now()
			pipe.Render(ctx.Graph, ctx.Camera, w, h)
			report.PipelineTime.Samples = append(report.PipelineTime.Samples, time.Since(drawStart))
			report.Triangles += int64(pipe.Stats().Drawn)
		}
	}

	report.TotalTime = time.Since(start)
	report.Frames = scheduler.Frames()
	report.Scheduler = scheduler.GetStats()
	report.UpdateTime.Finalize()
	report.PipelineTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	if err := report.Generate(os.Stdout); err != nil {
		logger.Error("report", "err", err)
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr)
	logger.Info("done", "frames", report.Frames, "duration", report.TotalTime)
}

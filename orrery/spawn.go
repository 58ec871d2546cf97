package orrery

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/orrery/anim"
	"github.com/plus3/orrery/asset"
	"github.com/plus3/orrery/ecs"
	"github.com/plus3/orrery/scene"
)

// Scene lighting.
const (
	AmbientColor     = "#333333"
	AmbientIntensity = 1

	SunLightIntensity = 10000
	SunLightDistance  = 1000
	SunLightDecay     = 2
)

// Spawn builds the central body and every catalog body into graph, spawns
// one entity per body and installs the Registry, Playback and FrameClock
// singletons. The returned Registry is the stored singleton; spawning again
// replaces it.
func Spawn(storage *ecs.Storage, graph *scene.Graph, catalog Catalog, textures TextureSource) *Registry {
	reg := Registry{byName: make(map[string]int, len(catalog.Bodies))}

	reg.Central = CreateCentralBody(graph, catalog.Central, textures)
	reg.CentralEntity = storage.Spawn(
		Spin{Node: reg.Central.Self, Rate: catalog.Central.SpinRate},
		BodyName{Name: catalog.Central.Name},
		Central{},
	)

	for _, desc := range catalog.Bodies {
		body := CreateBody(graph, desc, textures)
		id := storage.Spawn(
			Spin{Node: body.Self, Rate: desc.SpinRate},
			Revolution{Pivot: body.Orbit, Rate: desc.OrbitRate},
			BodyName{Name: desc.Name},
		)

		reg.byName[desc.Name] = len(reg.Bodies)
		reg.Bodies = append(reg.Bodies, body)
		reg.Entities = append(reg.Entities, id)
	}

	ecs.NewSingleton(storage, Playback{})
	ecs.NewSingleton(storage, FrameClock{})
	storage.AddSingleton(reg)
	return ecs.NewSingleton[Registry](storage).Get()
}

// AttachModel installs a ModelSlot for a pending model load. ModelSystem
// parents the model under the central body once it resolves and plays clip.
func AttachModel(storage *ecs.Storage, future *asset.Future[*asset.Model], clip string) *ModelSlot {
	return ecs.NewSingleton(storage, ModelSlot{
		Future: future,
		Clip:   clip,
		Mixer:  anim.NewMixer(),
	}).Get()
}

// AddEnvironment lights graph with a dim ambient light and a point light at
// the sun, and sets the skybox.
func AddEnvironment(graph *scene.Graph, textures TextureSource) error {
	ambient, err := scene.NewAmbientLight(AmbientColor, AmbientIntensity)
	if err != nil {
		return fmt.Errorf("ambient light: %w", err)
	}
	graph.AddAmbientLight(ambient)

	graph.AddPointLight(&scene.PointLight{
		Position:  mgl32.Vec3{},
		Color:     scene.White,
		Intensity: SunLightIntensity,
		Distance:  SunLightDistance,
		Decay:     SunLightDecay,
	})

	graph.Background = textures.LoadCube(SkyboxTextures)
	return nil
}

package orrery_test

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/orrery/anim"
	"github.com/plus3/orrery/asset"
	"github.com/plus3/orrery/ecs"
	"github.com/plus3/orrery/orrery"
	"github.com/plus3/orrery/scene"
)

type fakeTextures struct {
	refs []string
}

func (f *fakeTextures) Load(ref string) *scene.Texture {
	f.refs = append(f.refs, ref)
	return scene.NewTexture(ref)
}

func (f *fakeTextures) LoadCube(refs [6]string) *scene.CubeTexture {
	cube := &scene.CubeTexture{}
	for i, ref := range refs {
		cube.Faces[i] = f.Load(ref)
	}
	return cube
}

func newWorld(t *testing.T, catalog orrery.Catalog) (*ecs.Storage, *ecs.Scheduler, *scene.Graph, *orrery.Registry) {
	t.Helper()

	registry := ecs.NewComponentRegistry()
	orrery.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	graph := scene.NewGraph()
	reg := orrery.Spawn(storage, graph, catalog, &fakeTextures{})

	scheduler := ecs.NewScheduler(storage)
	orrery.RegisterSystems(scheduler, slog.New(slog.DiscardHandler))
	return storage, scheduler, graph, reg
}

func TestCreateBodyParentsSphereUnderPivot(t *testing.T) {
	graph := scene.NewGraph()
	textures := &fakeTextures{}
	desc := orrery.BodyDescriptor{Name: "earth", Radius: 5, Texture: "earth.jpg", OrbitalDistance: 60}

	body := orrery.CreateBody(graph, desc, textures)

	require.NotNil(t, body.Orbit)
	require.Len(t, body.Orbit.Children(), 1)
	assert.Same(t, body.Self, body.Orbit.Children()[0])
	assert.Same(t, body.Orbit, body.Self.Parent())
	assert.Same(t, graph.Root, body.Orbit.Parent())

	assert.Equal(t, [3]float32{60, 0, 0}, [3]float32(body.Self.Position))
	assert.Equal(t, [3]float32{}, [3]float32(body.Orbit.Position))
	assert.Nil(t, body.Ring)

	require.NotNil(t, body.Self.Mesh)
	assert.Equal(t, scene.Standard, body.Self.Mesh.Material.Shading)
	assert.Equal(t, "earth.jpg", body.Self.Mesh.Material.Map.Ref)
	assert.Equal(t, []string{"earth.jpg"}, textures.refs)
}

func TestCreateBodyRing(t *testing.T) {
	graph := scene.NewGraph()
	desc := orrery.BodyDescriptor{
		Name:            "saturn",
		Radius:          9,
		OrbitalDistance: 120,
		Ring:            &orrery.RingDescriptor{InnerRadius: 12, OuterRadius: 20, Texture: "ring.png"},
	}

	body := orrery.CreateBody(graph, desc, &fakeTextures{})

	require.NotNil(t, body.Ring)
	assert.Same(t, body.Self, body.Ring.Parent(), "ring belongs to the body, not the pivot")
	assert.Len(t, body.Orbit.Children(), 1)
	assert.Equal(t, float32(math.Pi/2), body.Ring.Rotation.X())
	assert.Equal(t, scene.DoubleSide, body.Ring.Mesh.Material.Side)
	assert.Equal(t, "ring.png", body.Ring.Mesh.Material.Map.Ref)
}

func TestCreateBodyAtOrigin(t *testing.T) {
	graph := scene.NewGraph()
	body := orrery.CreateBody(graph, orrery.BodyDescriptor{Name: "venus", Radius: 4}, &fakeTextures{})

	require.NotNil(t, body.Orbit, "a body at distance zero still gets a pivot")
	assert.Same(t, body.Orbit, body.Self.Parent())
	assert.Equal(t, [3]float32{}, [3]float32(body.Self.Position))
}

func TestCreateCentralBody(t *testing.T) {
	graph := scene.NewGraph()
	body := orrery.CreateCentralBody(graph, orrery.Sun, &fakeTextures{})

	assert.Nil(t, body.Orbit)
	assert.Same(t, graph.Root, body.Self.Parent())
	assert.Equal(t, scene.Basic, body.Self.Mesh.Material.Shading)
}

func TestSunAndEarth(t *testing.T) {
	earth := orrery.BodyDescriptor{
		Name:            "earth",
		Radius:          5,
		OrbitalDistance: 60,
		SpinRate:        orrery.BodySpinRate,
		OrbitRate:       0.006,
	}
	storage, scheduler, graph, reg := newWorld(t, orrery.Catalog{
		Central: orrery.Sun,
		Bodies:  []orrery.BodyDescriptor{earth},
	})

	roots := graph.Root.Children()
	require.Len(t, roots, 2)
	assert.Same(t, reg.Central.Self, roots[0])

	body, ok := reg.Body("earth")
	require.True(t, ok)
	assert.Same(t, body.Orbit, roots[1])
	require.Len(t, body.Orbit.Children(), 1, "the sphere sits under the pivot, not the root")
	assert.Same(t, body.Self, body.Orbit.Children()[0])
	assert.InDelta(t, 5, body.Self.Mesh.Geometry.Positions[0].Len(), 1e-5, "sphere radius")

	scheduler.Once(1.0 / 60.0)

	assert.Equal(t, float32(0.004), reg.Central.Self.Rotation.Y())
	assert.Equal(t, float32(0.006), body.Orbit.Rotation.Y())
	assert.Equal(t, float32(0.01), body.Self.Rotation.Y())

	id, ok := reg.Entity("earth")
	require.True(t, ok)
	assert.Equal(t, "earth", ecs.ReadComponent[orrery.BodyName](storage, id).Name)

	sunId, ok := reg.Entity("sun")
	require.True(t, ok)
	assert.NotNil(t, ecs.ReadComponent[orrery.Central](storage, sunId))
	assert.Nil(t, ecs.ReadComponent[orrery.Revolution](storage, sunId))
}

func TestKinematicAccumulatesPerFrame(t *testing.T) {
	catalog := orrery.DefaultCatalog()
	storage, scheduler, _, reg := newWorld(t, catalog)

	const frames = 240
	for i := range frames {
		// The delta changes every pass; the increments must not.
		scheduler.Once(float64(i%3) * 0.02)
	}

	assert.InDelta(t, frames*orrery.Sun.SpinRate, reg.Central.Self.Rotation.Y(), 1e-4)
	for i, desc := range catalog.Bodies {
		body := reg.Bodies[i]
		assert.Equal(t, desc.Name, body.Name)
		assert.InDelta(t, frames*desc.SpinRate, body.Self.Rotation.Y(), 1e-4, desc.Name)
		assert.InDelta(t, frames*desc.OrbitRate, body.Orbit.Rotation.Y(), 1e-4, desc.Name)
	}

	var clock *orrery.FrameClock
	require.True(t, storage.ReadSingleton(&clock))
	assert.Equal(t, uint64(frames), clock.Frame)
}

func TestOrbitSweepsCircle(t *testing.T) {
	_, scheduler, _, reg := newWorld(t, orrery.Catalog{
		Central: orrery.Sun,
		Bodies: []orrery.BodyDescriptor{
			{Name: "probe", Radius: 1, OrbitalDistance: 50, OrbitRate: math.Pi / 8},
		},
	})
	probe := reg.Bodies[0]

	for range 4 {
		scheduler.Once(0)
	}

	// A quarter turn about Y carries +X to -Z.
	pos := probe.Self.WorldPosition()
	assert.InDelta(t, 0, pos.X(), 1e-3)
	assert.InDelta(t, 0, pos.Y(), 1e-3)
	assert.InDelta(t, -50, pos.Z(), 1e-3)
	assert.InDelta(t, 50, pos.Len(), 1e-3)
}

func TestPausedPlaybackHoldsAngles(t *testing.T) {
	storage, scheduler, _, reg := newWorld(t, orrery.DefaultCatalog())

	var playback *orrery.Playback
	require.True(t, storage.ReadSingleton(&playback))
	playback.Paused = true

	for range 10 {
		scheduler.Once(0.016)
	}
	assert.Zero(t, reg.Central.Self.Rotation.Y())
	assert.Zero(t, reg.Bodies[0].Orbit.Rotation.Y())

	playback.Paused = false
	scheduler.Once(0.016)
	assert.Equal(t, float32(0.004), reg.Central.Self.Rotation.Y())
}

func TestDefaultCatalog(t *testing.T) {
	catalog := orrery.DefaultCatalog()
	require.NoError(t, orrery.ValidateCatalog(catalog))
	require.Len(t, catalog.Bodies, 9)

	// Closer bodies never orbit slower; different distances mean different rates.
	for i, a := range catalog.Bodies {
		for _, b := range catalog.Bodies[i+1:] {
			if a.OrbitalDistance == b.OrbitalDistance {
				continue
			}
			assert.NotEqual(t, a.OrbitRate, b.OrbitRate, "%s vs %s", a.Name, b.Name)
			if a.OrbitalDistance < b.OrbitalDistance {
				assert.Greater(t, a.OrbitRate, b.OrbitRate, "%s vs %s", a.Name, b.Name)
			}
		}
	}

	var ringed []string
	for _, desc := range catalog.Bodies {
		if desc.Ring != nil {
			ringed = append(ringed, desc.Name)
		}
	}
	assert.Equal(t, []string{"saturn", "uranus"}, ringed)

	catalog.Bodies[0].Radius = 99
	assert.Equal(t, float32(3.2), orrery.DefaultCatalog().Bodies[0].Radius, "catalog is copied per call")
}

func TestValidateCatalog(t *testing.T) {
	catalog := orrery.Catalog{
		Central: orrery.BodyDescriptor{Name: "sun", Radius: 0},
		Bodies: []orrery.BodyDescriptor{
			{Name: "near", Radius: 1, OrbitalDistance: 10, OrbitRate: 0.001},
			{Name: "far", Radius: 1, OrbitalDistance: 20, OrbitRate: 0.002},
			{Name: "far", Radius: -1, OrbitalDistance: -5},
			{Name: "ringed", Radius: 1, OrbitalDistance: 30, Ring: &orrery.RingDescriptor{InnerRadius: 5, OuterRadius: 5}},
		},
	}

	err := orrery.ValidateCatalog(catalog)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, `central body "sun"`)
	assert.Contains(t, msg, `"near" at 10 orbits slower`)
	assert.Contains(t, msg, `"far": duplicate name`)
	assert.Contains(t, msg, "radius -1 must be positive")
	assert.Contains(t, msg, "orbital distance -5")
	assert.Contains(t, msg, `"ringed": ring radii`)
}

func newModel() *asset.Model {
	root := scene.NewNode("creature")
	clip := anim.NewClip("walk", []anim.Track{{
		Target:        root,
		Path:          anim.Translation,
		Interpolation: anim.Linear,
		Times:         []float32{0, 2},
		Values:        []float32{0, 0, 0, 2, 0, 0},
	}})
	return &asset.Model{Root: root, Clips: []*anim.Clip{clip}}
}

func TestModelAttachesAfterLoad(t *testing.T) {
	storage, scheduler, _, reg := newWorld(t, orrery.DefaultCatalog())

	future, resolve := asset.NewFuture[*asset.Model]()
	slot := orrery.AttachModel(storage, future, "")

	for range 3 {
		scheduler.Once(0.5)
	}
	assert.Nil(t, slot.Model)
	assert.Empty(t, reg.Central.Self.Children())
	assert.InDelta(t, 3*orrery.Sun.SpinRate, reg.Central.Self.Rotation.Y(), 1e-6, "bodies move while the model is pending")

	model := newModel()
	resolve(model, nil)

	scheduler.Once(0.5)
	require.Same(t, model, slot.Model)
	assert.Same(t, reg.Central.Self, model.Root.Parent())
	assert.Nil(t, slot.Future)
	assert.Zero(t, slot.Mixer.Time(), "install starts the clip from the beginning")

	scheduler.Once(0.25)
	assert.InDelta(t, 0.25, slot.Mixer.Time(), 1e-6)
	assert.InDelta(t, 0.25, model.Root.Position.X(), 1e-6)

	scheduler.Once(0.5)
	assert.InDelta(t, 0.75, slot.Mixer.Time(), 1e-6)
	assert.Len(t, reg.Central.Self.Children(), 1)
}

func TestModelLoadFailureLogsOnce(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	orrery.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	reg := orrery.Spawn(storage, scene.NewGraph(), orrery.DefaultCatalog(), &fakeTextures{})

	var logs bytes.Buffer
	scheduler := ecs.NewScheduler(storage)
	orrery.RegisterSystems(scheduler, slog.New(slog.NewTextHandler(&logs, nil)))

	slot := orrery.AttachModel(storage, asset.Resolved[*asset.Model](nil, errors.New("truncated glb")), "")

	for range 5 {
		scheduler.Once(0.016)
	}

	assert.Equal(t, 1, bytes.Count(logs.Bytes(), []byte("model load failed")))
	assert.Contains(t, logs.String(), "truncated glb")
	assert.Nil(t, slot.Future)
	assert.Nil(t, slot.Model)
	assert.Empty(t, reg.Central.Self.Children())
	assert.InDelta(t, 5*orrery.Sun.SpinRate, reg.Central.Self.Rotation.Y(), 1e-6)
}

func TestAddEnvironment(t *testing.T) {
	graph := scene.NewGraph()
	textures := &fakeTextures{}
	require.NoError(t, orrery.AddEnvironment(graph, textures))

	require.Len(t, graph.Ambient, 1)
	assert.InDelta(t, 0x33/255.0, graph.Ambient[0].Color.R, 1e-9)
	require.Len(t, graph.Points, 1)
	assert.Equal(t, float32(10000), graph.Points[0].Intensity)
	assert.Equal(t, float32(1000), graph.Points[0].Distance)
	require.NotNil(t, graph.Background)
	assert.Len(t, textures.refs, 6)
}

package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/plus3/orrery/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		archetypeId uint32
		index       uint32
	}{
		{0, 0},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{1, 0},
		{0, 1},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("archetype=%d,index=%d", tt.archetypeId, tt.index), func(t *testing.T) {
			id := ecs.NewEntityId(tt.archetypeId, tt.index)
			assert.Equal(t, tt.archetypeId, id.ArchetypeId())
			assert.Equal(t, tt.index, id.Index())
		})
	}
}

func TestSpawnAndGetComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Angle{Radians: 1.5}, &Rate{PerFrame: 0.01}, Magnitude(3))
	require.NotEqual(t, ecs.EntityId(0), id)

	angle := ecs.ReadComponent[Angle](storage, id)
	require.NotNil(t, angle)
	assert.Equal(t, float32(1.5), angle.Radians)

	rate := storage.GetComponent(id, reflect.TypeFor[Rate]()).(*Rate)
	assert.Equal(t, float32(0.01), rate.PerFrame)

	assert.Nil(t, ecs.ReadComponent[Label](storage, id))
	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Magnitude]()))
	assert.False(t, storage.HasComponent(id, reflect.TypeFor[Label]()))
}

func TestComponentPointersAreStable(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Angle{Radians: 1})
	angle := ecs.ReadComponent[Angle](storage, first)

	for i := range 500 {
		storage.Spawn(Angle{Radians: float32(i)})
	}

	angle.Radians = 42
	assert.Equal(t, float32(42), ecs.ReadComponent[Angle](storage, first).Radians)
}

func TestArchetypeIgnoresComponentOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Angle{}, Rate{})
	b := storage.Spawn(Rate{}, Angle{})

	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
	assert.NotEqual(t, a.Index(), b.Index())

	archetype := storage.GetArchetype(Rate{}, Angle{})
	require.NotNil(t, archetype)
	assert.Equal(t, 2, archetype.Len())
}

func TestDeleteReusesSlot(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Label{Value: "a"})
	storage.Spawn(Label{Value: "b"})
	storage.Delete(a)

	assert.Nil(t, ecs.ReadComponent[Label](storage, a))

	c := storage.Spawn(Label{Value: "c"})
	assert.Equal(t, a.Index(), c.Index())
	assert.Equal(t, "c", ecs.ReadComponent[Label](storage, c).Value)

	// Unknown IDs are ignored.
	storage.Delete(ecs.NewEntityId(7, 7))
}

func TestSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { storage.Spawn() })
	assert.Panics(t, func() { storage.Spawn(Clock{}) }, "unregistered component")
	assert.Panics(t, func() { storage.Spawn(map[string]int{}) })
}

func TestEntityRefLifecycle(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Label{Value: "earth"})
	ref := storage.CreateEntityRef(id)
	require.NotNil(t, ref)
	assert.Same(t, ref, storage.CreateEntityRef(id))

	resolved, ok := storage.ResolveEntityRef(ref)
	assert.True(t, ok)
	assert.Equal(t, id, resolved)

	storage.Delete(id)
	assert.False(t, ref.Alive())
	_, ok = storage.ResolveEntityRef(ref)
	assert.False(t, ok)

	assert.Nil(t, storage.CreateEntityRef(ecs.NewEntityId(99, 0)))
}

func TestSingletons(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	var clock *Clock
	assert.False(t, storage.ReadSingleton(&clock))

	accessor := ecs.NewSingleton(storage, Clock{Ticks: 3})
	require.True(t, storage.ReadSingleton(&clock))
	assert.Equal(t, 3, clock.Ticks)

	clock.Ticks++
	assert.Equal(t, 4, accessor.Get().Ticks)

	storage.AddSingleton(Clock{Ticks: 10})
	assert.Equal(t, 10, accessor.Get().Ticks, "earlier accessors see replaced value")

	assert.Panics(t, func() { storage.ReadSingleton(clock) })
}

func TestSingletonAddedLater(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	var accessor ecs.Singleton[Clock]
	accessor.Init(storage)
	assert.False(t, accessor.Exists())
	assert.Nil(t, accessor.Get())

	storage.AddSingleton(Clock{Ticks: 1})
	assert.True(t, accessor.Exists())
	assert.Equal(t, 1, accessor.Get().Ticks)
}

func TestCollectStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	stats := storage.CollectStats()
	assert.Zero(t, stats.ArchetypeCount)
	assert.Zero(t, stats.TotalEntityCount)
	assert.Zero(t, stats.SingletonCount)

	storage.Spawn(Angle{}, Label{})
	storage.Spawn(Angle{}, Label{})
	gone := storage.Spawn(Rate{})
	storage.Spawn(Rate{})
	storage.Delete(gone)
	ecs.NewSingleton(storage, Clock{})

	stats = storage.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 3, stats.TotalEntityCount)
	assert.Equal(t, 1, stats.SingletonCount)
	assert.Equal(t, []string{"ecs_test.Clock"}, stats.SingletonTypes)

	counts := map[int]bool{}
	for _, arch := range stats.ArchetypeBreakdown {
		counts[arch.EntityCount] = true
	}
	assert.Equal(t, map[int]bool{1: true, 2: true}, counts)
}

func TestArchetypesInIdOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Angle{})
	storage.Spawn(Angle{}, Rate{})
	storage.Spawn(Label{})

	var ids []uint32
	for archetype := range storage.Archetypes() {
		ids = append(ids, archetype.ID())
		assert.Same(t, archetype, storage.GetArchetypeById(archetype.ID()))
	}
	require.Len(t, ids, 3)
	assert.IsIncreasing(t, ids)
	assert.Nil(t, storage.GetArchetypeById(1))
}

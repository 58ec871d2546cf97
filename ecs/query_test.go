package ecs_test

import (
	"testing"

	"github.com/plus3/orrery/ecs"
	"github.com/stretchr/testify/assert"
)

func TestQuery(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Angle{}, Rate{PerFrame: 1})
	storage.Spawn(Angle{}, Rate{PerFrame: 2}, Pinned{})
	storage.Spawn(Angle{})

	query := ecs.NewQuery[struct {
		*Angle
		*Rate
	}](storage)

	t.Run("panics without execute", func(t *testing.T) {
		assert.Panics(t, func() {
			for range query.Iter() {
			}
		})
		assert.Panics(t, func() {
			for range query.Values() {
			}
		})
	})

	t.Run("execute collects matches", func(t *testing.T) {
		query.Execute()
		assert.Equal(t, 2, query.Len())

		ids := map[ecs.EntityId]bool{}
		for id := range query.Iter() {
			ids[id] = true
		}
		assert.Len(t, ids, 2)
	})

	t.Run("new archetypes appear after re-execute", func(t *testing.T) {
		storage.Spawn(Angle{}, Rate{}, Label{Value: "late"})
		assert.Equal(t, 2, query.Len())

		query.Execute()
		assert.Equal(t, 3, query.Len())
	})

	t.Run("values point into storage", func(t *testing.T) {
		query.Execute()
		for item := range query.Values() {
			item.Angle.Radians += item.Rate.PerFrame
		}

		sum := float32(0)
		for item := range ecs.NewView[struct{ *Angle }](storage).Iter() {
			sum += item.Angle.Radians
		}
		assert.Equal(t, float32(3), sum)
	})
}

package ecs

import (
	"reflect"
	"slices"
	"weak"

	"github.com/kamstrup/intmap"
)

// Archetype holds every entity that carries exactly the same set of
// component types, one storage column per type.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []iComponentStorage
	refs     *intmap.Map[EntityId, weak.Pointer[EntityRef]]
}

// NewArchetype creates an archetype for types, which must already be sorted
// by component ID.
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]iComponentStorage, len(types)),
		refs:     intmap.New[EntityId, weak.Pointer[EntityRef]](16),
	}

	for idx, typ := range types {
		a.storages[idx] = registry.info(typ).factory()
	}

	return a
}

// Spawn appends one entity and returns its slot index. Every column receives
// its component in the same call, so the indices line up.
func (a *Archetype) Spawn(components []any) uint32 {
	slot := -1
	for _, comp := range components {
		idx := a.column(componentType(comp))
		if idx < 0 {
			panic("component " + componentType(comp).String() + " does not belong to archetype")
		}
		pos := a.storages[idx].Append(comp)
		if slot >= 0 && pos != slot {
			panic("archetype columns out of sync")
		}
		slot = pos
	}
	return uint32(slot)
}

// GetComponent returns a pointer to the component of compType for the slot,
// or nil.
func (a *Archetype) GetComponent(entityIndex uint32, compType reflect.Type) any {
	idx := a.column(compType)
	if idx < 0 {
		return nil
	}
	return a.storages[idx].Get(int(entityIndex))
}

// Delete frees the slot and invalidates any EntityRef pointing at it.
func (a *Archetype) Delete(entityIndex uint32) {
	entityId := NewEntityId(a.id, entityIndex)

	if weakPtr, ok := a.refs.Get(entityId); ok {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = 0
			ref.Archetype = nil
		}
		a.refs.Del(entityId)
	}

	for _, storage := range a.storages {
		storage.Delete(int(entityIndex))
	}
}

// HasComponent reports whether compType is one of the archetype's columns.
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype hash.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the archetype's component types in column order.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	if len(a.storages) == 0 {
		return 0
	}
	return a.storages[0].Len()
}

// Iter yields the IDs of the archetype's live entities.
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}

		for index := range a.storages[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}

func (a *Archetype) column(compType reflect.Type) int {
	for i, typ := range a.types {
		if typ == compType {
			return i
		}
	}
	return -1
}

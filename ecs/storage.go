package ecs

import (
	"iter"
	"maps"
	"reflect"
	"slices"
	"unsafe"
	"weak"
)

type singletonEntry struct {
	value   reflect.Value // *T
	dataPtr unsafe.Pointer
}

// Storage owns every archetype and singleton of one world.
type Storage struct {
	archetypes map[uint32]*Archetype
	singletons map[reflect.Type]*singletonEntry
	registry   *ComponentRegistry
}

// NewStorage creates an empty world backed by registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		singletons: make(map[reflect.Type]*singletonEntry),
		registry:   registry,
	}
}

// Registry returns the component registry the storage was built with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Spawn creates an entity from components (values or pointers to values) and
// returns its ID. Components are copied into storage.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := s.sortedTypes(components)
	archetypeId := s.archetypeId(types)

	archetype, exists := s.archetypes[archetypeId]
	if !exists {
		archetype = NewArchetype(archetypeId, types, s.registry)
		s.archetypes[archetypeId] = archetype
	}

	return NewEntityId(archetypeId, archetype.Spawn(components))
}

// Delete removes the entity. Deleting an unknown ID does nothing.
func (s *Storage) Delete(id EntityId) {
	if archetype, ok := s.archetypes[id.ArchetypeId()]; ok {
		archetype.Delete(id.Index())
	}
}

// GetComponent returns a pointer to the entity's component of compType, or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent reports whether the entity's archetype carries compType.
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}
	return archetype.HasComponent(compType)
}

// GetArchetype returns the archetype for exactly the given component values,
// or nil when no entity with that set has been spawned.
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types := s.sortedTypes(components)
	return s.archetypes[s.archetypeId(types)]
}

// GetArchetypeById returns the archetype with the given ID, or nil.
func (s *Storage) GetArchetypeById(id uint32) *Archetype {
	return s.archetypes[id]
}

// Archetypes yields every archetype in ascending ID order.
func (s *Storage) Archetypes() iter.Seq[*Archetype] {
	ids := slices.Sorted(maps.Keys(s.archetypes))
	return func(yield func(*Archetype) bool) {
		for _, id := range ids {
			if !yield(s.archetypes[id]) {
				return
			}
		}
	}
}

// CreateEntityRef returns the shared EntityRef for id, creating it on first use.
func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	archetype := s.archetypes[id.ArchetypeId()]
	if archetype == nil {
		return nil
	}

	if weakPtr, ok := archetype.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			return ref
		}
		archetype.refs.Del(id)
	}

	ref := &EntityRef{Id: id, Archetype: archetype}
	archetype.refs.Put(id, weak.Make(ref))
	return ref
}

// ResolveEntityRef returns the current ID behind ref.
func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if !ref.Alive() {
		return 0, false
	}
	return ref.Id, true
}

// AddSingleton stores value as the world-wide instance of its type. An
// existing singleton of that type is overwritten in place, so accessors
// created earlier see the new value.
func (s *Storage) AddSingleton(value any) {
	t := reflect.TypeOf(value)
	if t == nil {
		panic("cannot add nil singleton")
	}

	if entry, ok := s.singletons[t]; ok {
		entry.value.Elem().Set(reflect.ValueOf(value))
		return
	}

	ptr := reflect.New(t)
	ptr.Elem().Set(reflect.ValueOf(value))
	s.singletons[t] = &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
}

// ReadSingleton points *target at the singleton of type T, where target is a
// **T. It reports whether the singleton exists.
func (s *Storage) ReadSingleton(target any) bool {
	tv := reflect.ValueOf(target)
	if tv.Kind() != reflect.Ptr || tv.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton target must be a pointer to a pointer")
	}

	entry := s.getSingletonEntry(tv.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	tv.Elem().Set(entry.value)
	return true
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

func (s *Storage) sortedTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		t := componentType(comp)
		switch t.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}
		types = append(types, t)
	}

	slices.SortFunc(types, func(a, b reflect.Type) int {
		return int(s.registry.info(a).id) - int(s.registry.info(b).id)
	})
	return types
}

// archetypeId hashes the sorted component IDs with 32-bit FNV-1a.
func (s *Storage) archetypeId(types []reflect.Type) uint32 {
	var h uint32 = 2166136261
	const prime uint32 = 16777619

	for _, t := range types {
		id := s.registry.info(t).id
		for shift := 0; shift < 32; shift += 8 {
			h ^= (id >> shift) & 0xFF
			h *= prime
		}
	}
	return h
}

func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// ComponentReader is anything that can look components up by entity.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T, or nil if it has none.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}

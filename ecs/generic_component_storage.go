package ecs

import (
	"iter"
	"reflect"
)

type componentInfo struct {
	id      uint32
	factory func() iComponentStorage
}

// ComponentRegistry assigns every component type a small numeric ID and knows
// how to build its storage column. Each Storage owns one registry, so several
// independent worlds can share a process.
type ComponentRegistry struct {
	components map[reflect.Type]componentInfo
	nextId     uint32
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		components: make(map[reflect.Type]componentInfo),
		nextId:     1,
	}
}

// RegisterComponent registers T with the registry. A type must be registered
// before any entity carrying it is spawned; registering twice is a no-op.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	if _, ok := r.components[t]; ok {
		return
	}

	r.components[t] = componentInfo{
		id: r.nextId,
		factory: func() iComponentStorage {
			return &genericComponentStorage[T]{}
		},
	}
	r.nextId++
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.components[t]
	return ok
}

func (r *ComponentRegistry) info(t reflect.Type) componentInfo {
	info, ok := r.components[t]
	if !ok {
		panic("component type " + t.String() + " not registered")
	}
	return info
}

const genericBlockSize = 64

// genericComponentStorage keeps components of type T in fixed-size blocks so
// pointers handed out by Get stay valid while the column grows.
type genericComponentStorage[T any] struct {
	blocks    []*[genericBlockSize]T
	filled    []*[genericBlockSize]bool
	freeSlots []int
	nextIndex int
	count     int
}

// Append stores item (a T or *T) and returns its slot, or -1 on a type mismatch.
func (cs *genericComponentStorage[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case T:
		value = v
	case *T:
		value = *v
	default:
		return -1
	}

	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
		if index/genericBlockSize >= len(cs.blocks) {
			cs.blocks = append(cs.blocks, new([genericBlockSize]T))
			cs.filled = append(cs.filled, new([genericBlockSize]bool))
		}
	}

	block, slot := index/genericBlockSize, index%genericBlockSize
	cs.blocks[block][slot] = value
	cs.filled[block][slot] = true
	cs.count++
	return index
}

// Get returns a *T for the slot, or nil when the slot is empty.
func (cs *genericComponentStorage[T]) Get(index int) any {
	if !cs.Has(index) {
		return nil
	}
	return &cs.blocks[index/genericBlockSize][index%genericBlockSize]
}

// Delete empties the slot and queues it for reuse.
func (cs *genericComponentStorage[T]) Delete(index int) {
	if !cs.Has(index) {
		return
	}

	block, slot := index/genericBlockSize, index%genericBlockSize
	var zero T
	cs.blocks[block][slot] = zero
	cs.filled[block][slot] = false
	cs.freeSlots = append(cs.freeSlots, index)
	cs.count--
}

func (cs *genericComponentStorage[T]) Has(index int) bool {
	if index < 0 || index >= cs.nextIndex {
		return false
	}
	return cs.filled[index/genericBlockSize][index%genericBlockSize]
}

func (cs *genericComponentStorage[T]) Len() int {
	return cs.count
}

// Iter yields occupied slots in ascending order.
func (cs *genericComponentStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			if !cs.filled[i/genericBlockSize][i%genericBlockSize] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}

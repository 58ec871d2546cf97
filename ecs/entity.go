package ecs

// EntityId packs the archetype ID into the upper 32 bits and the slot index
// inside that archetype into the lower 32 bits. The zero value never names a
// live entity.
type EntityId uint64

// NewEntityId builds an EntityId from an archetype ID and a slot index.
func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

// ArchetypeId returns the archetype half of the ID.
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index returns the slot half of the ID.
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// EntityRef is a handle that stays valid for as long as the entity lives.
// Deleting the entity resets Id to zero.
type EntityRef struct {
	Id        EntityId
	Archetype *Archetype
}

// Alive reports whether the referenced entity still exists.
func (r *EntityRef) Alive() bool {
	return r != nil && r.Id != 0
}

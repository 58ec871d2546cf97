package orrery

import (
	"github.com/plus3/orrery/anim"
	"github.com/plus3/orrery/asset"
	"github.com/plus3/orrery/ecs"
	"github.com/plus3/orrery/scene"
)

// Spin turns Node about its Y axis by Rate every frame.
type Spin struct {
	Node *scene.Node
	Rate float32
}

// Revolution turns an orbit pivot about Y by Rate every frame.
type Revolution struct {
	Pivot *scene.Node
	Rate  float32
}

// BodyName is the catalog name of a body entity.
type BodyName struct {
	Name string
}

// Central tags the central body's entity.
type Central struct{}

// Playback pauses the kinematic update while Paused is set.
type Playback struct {
	Paused bool
}

// FrameClock counts scheduler passes and the wall time they covered.
type FrameClock struct {
	Frame   uint64
	Elapsed float64
}

// ModelSlot holds the model attached to the central body. Future is the
// pending load and is cleared once it resolves; Model is set when the model
// has been parented; Clip names the clip to play, empty for the first.
type ModelSlot struct {
	Future *asset.Future[*asset.Model]
	Clip   string
	Model  *asset.Model
	Mixer  *anim.Mixer
}

// Registry is the fixed set of constructed bodies, in catalog order.
type Registry struct {
	Central       Body
	CentralEntity ecs.EntityId
	Bodies        []Body
	Entities      []ecs.EntityId

	byName map[string]int
}

// Body returns the orbiting body called name.
func (r *Registry) Body(name string) (Body, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Body{}, false
	}
	return r.Bodies[i], true
}

// Entity returns the entity of the body called name, the central body
// included.
func (r *Registry) Entity(name string) (ecs.EntityId, bool) {
	if name == r.Central.Name {
		return r.CentralEntity, true
	}
	i, ok := r.byName[name]
	if !ok {
		return 0, false
	}
	return r.Entities[i], true
}

// RegisterComponents registers every component this package spawns.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Spin](registry)
	ecs.RegisterComponent[Revolution](registry)
	ecs.RegisterComponent[BodyName](registry)
	ecs.RegisterComponent[Central](registry)
}

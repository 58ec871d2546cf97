package orrery

import (
	"math"

	"github.com/plus3/orrery/scene"
)

// TextureSource resolves texture refs. Load must return immediately; the
// pixels may arrive later.
type TextureSource interface {
	Load(ref string) *scene.Texture
	LoadCube(refs [6]string) *scene.CubeTexture
}

// Body is one constructed body. Orbit is nil for the central body, Ring is
// nil for bodies without one.
type Body struct {
	Name  string
	Self  *scene.Node
	Orbit *scene.Node
	Ring  *scene.Node
}

// CreateBody builds a lit sphere at (OrbitalDistance, 0, 0) under a new pivot
// at the origin and adds the pivot to graph. A ring, when described, is a
// double-sided annulus turned flat and parented to the sphere.
func CreateBody(graph *scene.Graph, desc BodyDescriptor, textures TextureSource) Body {
	self := scene.NewMeshNode(desc.Name,
		scene.NewSphereGeometry(desc.Radius, SphereSegments, SphereSegments),
		scene.NewStandardMaterial(textures.Load(desc.Texture)))
	self.Position[0] = desc.OrbitalDistance

	orbit := scene.NewNode(desc.Name + "-orbit")
	orbit.Add(self)
	graph.Add(orbit)

	body := Body{Name: desc.Name, Self: self, Orbit: orbit}
	if r := desc.Ring; r != nil {
		mat := scene.NewStandardMaterial(textures.Load(r.Texture))
		mat.Side = scene.DoubleSide

		ring := scene.NewMeshNode(desc.Name+"-ring",
			scene.NewRingGeometry(r.InnerRadius, r.OuterRadius, SphereSegments), mat)
		ring.Rotation[0] = math.Pi / 2
		self.Add(ring)
		body.Ring = ring
	}
	return body
}

// CreateCentralBody builds an unlit sphere at the origin and adds it to graph
// directly. It has no pivot.
func CreateCentralBody(graph *scene.Graph, desc BodyDescriptor, textures TextureSource) Body {
	self := scene.NewMeshNode(desc.Name,
		scene.NewSphereGeometry(desc.Radius, SphereSegments, SphereSegments),
		scene.NewBasicMaterial(textures.Load(desc.Texture)))
	graph.Add(self)
	return Body{Name: desc.Name, Self: self}
}

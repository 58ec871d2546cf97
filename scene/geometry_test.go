package scene_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/orrery/scene"
)

func TestSphereGeometry(t *testing.T) {
	g := scene.NewSphereGeometry(5, 30, 30)

	require.Len(t, g.Positions, 31*31)
	assert.Len(t, g.Normals, len(g.Positions))
	assert.Len(t, g.UVs, len(g.Positions))

	// Each band is two triangles per segment, except the polar bands which
	// collapse to one.
	assert.Equal(t, 30*30*2-2*30, g.TriangleCount())

	for i, p := range g.Positions {
		assert.InDelta(t, 5, p.Len(), 1e-4, "vertex %d", i)
		assert.InDelta(t, 1, g.Normals[i].Len(), 1e-4, "normal %d", i)
	}
	for _, idx := range g.Indices {
		assert.Less(t, int(idx), len(g.Positions))
	}

	assert.InDelta(t, 5, g.Positions[0].Y(), 1e-4, "first row is the top pole")
	assert.InDelta(t, 0, g.UVs[len(g.UVs)/2].Y()-0.5, 1e-4, "middle row maps to the middle of the image")
}

func TestSphereGeometryClampsSegments(t *testing.T) {
	g := scene.NewSphereGeometry(1, 0, 0)
	assert.Len(t, g.Positions, 4*3)
}

func TestSphereGeometryFacesOutward(t *testing.T) {
	g := scene.NewSphereGeometry(1, 8, 6)
	for i := 0; i < len(g.Indices); i += 3 {
		a := g.Positions[g.Indices[i]]
		b := g.Positions[g.Indices[i+1]]
		c := g.Positions[g.Indices[i+2]]
		normal := b.Sub(a).Cross(c.Sub(a))
		center := a.Add(b).Add(c).Mul(1.0 / 3)
		assert.Greater(t, normal.Dot(center), float32(0), "triangle %d faces inward", i/3)
	}
}

func TestRingGeometry(t *testing.T) {
	g := scene.NewRingGeometry(12, 20, 30)

	require.Len(t, g.Positions, 2*31)
	assert.Equal(t, 60, g.TriangleCount())

	for i, p := range g.Positions {
		assert.Zero(t, p.Z())
		r := p.Vec2().Len()
		if i <= 30 {
			assert.InDelta(t, 12, r, 1e-4)
		} else {
			assert.InDelta(t, 20, r, 1e-4)
		}
		uv := g.UVs[i]
		assert.GreaterOrEqual(t, uv.X(), float32(0))
		assert.LessOrEqual(t, uv.X(), float32(1))
	}
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, g.Normals[0])
}

func TestBoxGeometry(t *testing.T) {
	g := scene.NewBoxGeometry(2, 4, 6)

	require.Len(t, g.Positions, 24)
	require.Len(t, g.Groups, 6)
	assert.Equal(t, 12, g.TriangleCount())

	for face, group := range g.Groups {
		assert.Equal(t, face, group.MaterialIndex)
		assert.Equal(t, face*6, group.Start)
		assert.Equal(t, 6, group.Count)
	}

	for i := 0; i < 4; i++ {
		assert.InDelta(t, 1, g.Positions[scene.FacePositiveX*4+i].X(), 1e-6)
		assert.InDelta(t, -2, g.Positions[scene.FaceNegativeY*4+i].Y(), 1e-6)
		assert.InDelta(t, -3, g.Positions[scene.FaceNegativeZ*4+i].Z(), 1e-6)
	}
}

func TestDrawGroupsDefaultsToWholeGeometry(t *testing.T) {
	g := scene.NewRingGeometry(1, 2, 8)
	assert.Equal(t, []scene.Group{{Start: 0, Count: len(g.Indices)}}, g.DrawGroups())
}

func TestMeshMaterialFor(t *testing.T) {
	base := scene.NewBasicMaterial(nil)
	face := scene.NewBasicMaterial(nil)
	mesh := &scene.Mesh{Material: base, Materials: []*scene.Material{face}}

	assert.Same(t, face, mesh.MaterialFor(scene.Group{MaterialIndex: 0}))
	assert.Same(t, base, mesh.MaterialFor(scene.Group{MaterialIndex: 3}))
}

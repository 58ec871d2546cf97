package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh pairs geometry with the material it is drawn in. When the geometry
// has groups and Materials is set, group i is drawn with
// Materials[group.MaterialIndex] instead of Material.
type Mesh struct {
	Geometry  *Geometry
	Material  *Material
	Materials []*Material
}

// MaterialFor returns the material group g is drawn with.
func (m *Mesh) MaterialFor(g Group) *Material {
	if g.MaterialIndex < len(m.Materials) {
		return m.Materials[g.MaterialIndex]
	}
	return m.Material
}

// Group is a run of indices drawn with one material.
type Group struct {
	Start         int
	Count         int
	MaterialIndex int
}

// Geometry is an indexed triangle list. UVs are in image space: (0,0) is the
// top-left corner of the texture.
type Geometry struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
	Groups    []Group
}

// TriangleCount returns the number of triangles in the index list.
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// DrawGroups returns the geometry's groups, or one group covering every
// index when it has none.
func (g *Geometry) DrawGroups() []Group {
	if len(g.Groups) > 0 {
		return g.Groups
	}
	return []Group{{Start: 0, Count: len(g.Indices)}}
}

// NewSphereGeometry builds a UV sphere centered on the origin. The seam sits on
// -X and the poles on Y, with counter-clockwise front faces.
func NewSphereGeometry(radius float32, widthSegments, heightSegments int) *Geometry {
	widthSegments = max(3, widthSegments)
	heightSegments = max(2, heightSegments)

	g := &Geometry{}
	grid := make([][]uint32, 0, heightSegments+1)
	var index uint32

	for iy := 0; iy <= heightSegments; iy++ {
		row := make([]uint32, 0, widthSegments+1)
		v := float32(iy) / float32(heightSegments)

		// Pole vertices sit halfway across their segment.
		var uOffset float32
		switch iy {
		case 0:
			uOffset = 0.5 / float32(widthSegments)
		case heightSegments:
			uOffset = -0.5 / float32(widthSegments)
		}

		theta := v * math32.Pi
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			phi := u * 2 * math32.Pi

			p := mgl32.Vec3{
				-radius * math32.Cos(phi) * math32.Sin(theta),
				radius * math32.Cos(theta),
				radius * math32.Sin(phi) * math32.Sin(theta),
			}
			g.Positions = append(g.Positions, p)
			g.Normals = append(g.Normals, normalOf(p))
			g.UVs = append(g.UVs, mgl32.Vec2{u + uOffset, v})

			row = append(row, index)
			index++
		}
		grid = append(grid, row)
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]

			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}

	return g
}

// NewRingGeometry builds a flat annulus in the XY plane facing +Z. UVs map
// the ring's bounding square onto the whole texture.
func NewRingGeometry(innerRadius, outerRadius float32, thetaSegments int) *Geometry {
	thetaSegments = max(3, thetaSegments)

	g := &Geometry{}
	const phiSegments = 1
	radiusStep := (outerRadius - innerRadius) / phiSegments

	for j := 0; j <= phiSegments; j++ {
		radius := innerRadius + float32(j)*radiusStep
		for i := 0; i <= thetaSegments; i++ {
			segment := float32(i) / float32(thetaSegments) * 2 * math32.Pi
			x := radius * math32.Cos(segment)
			y := radius * math32.Sin(segment)

			g.Positions = append(g.Positions, mgl32.Vec3{x, y, 0})
			g.Normals = append(g.Normals, mgl32.Vec3{0, 0, 1})
			g.UVs = append(g.UVs, mgl32.Vec2{
				(x/outerRadius + 1) / 2,
				1 - (y/outerRadius+1)/2,
			})
		}
	}

	for j := 0; j < phiSegments; j++ {
		level := uint32(j * (thetaSegments + 1))
		for i := 0; i < thetaSegments; i++ {
			segment := uint32(i) + level
			a := segment
			b := segment + uint32(thetaSegments) + 1
			c := segment + uint32(thetaSegments) + 2
			d := segment + 1

			g.Indices = append(g.Indices, a, b, d, b, c, d)
		}
	}

	return g
}

// Box faces in group order.
const (
	FacePositiveX = iota
	FaceNegativeX
	FacePositiveY
	FaceNegativeY
	FacePositiveZ
	FaceNegativeZ
)

// NewBoxGeometry builds an axis-aligned box centered on the origin with one
// group per face, ordered +X, -X, +Y, -Y, +Z, -Z.
func NewBoxGeometry(width, height, depth float32) *Geometry {
	g := &Geometry{}
	g.boxPlane(2, 1, 0, -1, -1, depth, height, width, FacePositiveX)
	g.boxPlane(2, 1, 0, 1, -1, depth, height, -width, FaceNegativeX)
	g.boxPlane(0, 2, 1, 1, 1, width, depth, height, FacePositiveY)
	g.boxPlane(0, 2, 1, 1, -1, width, depth, -height, FaceNegativeY)
	g.boxPlane(0, 1, 2, 1, -1, width, height, depth, FacePositiveZ)
	g.boxPlane(0, 1, 2, -1, -1, width, height, -depth, FaceNegativeZ)
	return g
}

// boxPlane appends one face. u, v and w are axis indices; the face lies at
// half depth along w.
func (g *Geometry) boxPlane(u, v, w int, udir, vdir, width, height, depth float32, materialIndex int) {
	start := len(g.Indices)
	base := uint32(len(g.Positions))

	normalW := float32(1)
	if depth < 0 {
		normalW = -1
	}

	for iy := 0; iy <= 1; iy++ {
		y := float32(iy)*height - height/2
		for ix := 0; ix <= 1; ix++ {
			x := float32(ix)*width - width/2

			var p, n mgl32.Vec3
			p[u] = x * udir
			p[v] = y * vdir
			p[w] = depth / 2
			n[w] = normalW

			g.Positions = append(g.Positions, p)
			g.Normals = append(g.Normals, n)
			g.UVs = append(g.UVs, mgl32.Vec2{float32(ix), float32(iy)})
		}
	}

	a, b, c, d := base, base+2, base+3, base+1
	g.Indices = append(g.Indices, a, b, d, b, c, d)
	g.Groups = append(g.Groups, Group{Start: start, Count: 6, MaterialIndex: materialIndex})
}

func normalOf(p mgl32.Vec3) mgl32.Vec3 {
	if p.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return p.Normalize()
}

package render

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/plus3/orrery/scene"
)

// Vertex is a screen-space vertex: pixel position, image-space UV and an
// sRGB color that multiplies the texture.
type Vertex struct {
	X, Y       float32
	U, V       float32
	R, G, B, A float32
}

// Batch is a run of triangles drawn with one texture. A nil Texture means
// untextured. Indices fit uint16, so a batch never exceeds MaxBatchVertices.
type Batch struct {
	Texture  *scene.Texture
	Vertices []Vertex
	Indices  []uint16
}

// MaxBatchVertices bounds one batch so its indices fit uint16.
const MaxBatchVertices = 65535 / 3 * 3

// FrameStats counts what happened to triangles during one Render.
type FrameStats struct {
	Submitted int
	Culled    int
	Clipped   int
	Drawn     int
	Batches   int
}

// SkyboxSize is the edge length of the background cube centered on the
// camera. It must fit inside the far plane.
const SkyboxSize = 1000

type triangle struct {
	v       [3]Vertex
	depth   float32
	texture *scene.Texture
}

type clipVertex struct {
	pos   mgl32.Vec4
	uv    mgl32.Vec2
	color colorful.Color
}

// Pipeline projects, lights, clips, culls and depth-sorts a graph. One
// Pipeline reuses its buffers across frames and is not safe for concurrent
// use.
type Pipeline struct {
	sky       []triangle
	triangles []triangle
	batches   []Batch
	stats     FrameStats
	skybox    *scene.Node
}

// NewPipeline returns a pipeline with empty buffers.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// Stats returns the counts from the last Render.
func (p *Pipeline) Stats() FrameStats {
	return p.stats
}

// Render draws graph as seen by camera on a width x height surface. The
// returned batches are valid until the next call.
func (p *Pipeline) Render(graph *scene.Graph, camera *scene.Camera, width, height int) []Batch {
	p.sky = p.sky[:0]
	p.triangles = p.triangles[:0]
	p.batches = p.batches[:0]
	p.stats = FrameStats{}

	viewProj := camera.Projection().Mul4(camera.View())
	frame := &frameState{
		viewProj: viewProj,
		lights:   gatherLights(graph),
		width:    float32(width),
		height:   float32(height),
	}

	if graph.Background != nil {
		sky := p.skyboxNode(graph.Background)
		sky.Position = camera.Position
		world := sky.LocalMatrix()
		p.sky = p.submitMesh(p.sky, frame, sky.Mesh, world)
	}

	graph.Root.Traverse(func(node *scene.Node, world mgl32.Mat4) {
		if node.Mesh != nil {
			p.triangles = p.submitMesh(p.triangles, frame, node.Mesh, world)
		}
	})

	// Painter's order: farthest first.
	slices.SortStableFunc(p.triangles, func(a, b triangle) int {
		switch {
		case a.depth > b.depth:
			return -1
		case a.depth < b.depth:
			return 1
		}
		return 0
	})

	p.batch(p.sky)
	p.batch(p.triangles)
	p.stats.Drawn = len(p.sky) + len(p.triangles)
	p.stats.Batches = len(p.batches)
	return p.batches
}

func (p *Pipeline) skyboxNode(cube *scene.CubeTexture) *scene.Node {
	if p.skybox == nil || p.skybox.Mesh.Materials[0].Map != cube.Faces[0] {
		node := scene.NewNode("skybox")
		node.Mesh = &scene.Mesh{Geometry: scene.NewBoxGeometry(SkyboxSize, SkyboxSize, SkyboxSize)}
		for _, face := range cube.Faces {
			m := scene.NewBasicMaterial(face)
			m.Side = scene.BackSide
			node.Mesh.Materials = append(node.Mesh.Materials, m)
		}
		node.Mesh.Material = node.Mesh.Materials[0]
		p.skybox = node
	}
	return p.skybox
}

type frameState struct {
	viewProj mgl32.Mat4
	lights   lights
	width    float32
	height   float32
}

func (p *Pipeline) submitMesh(out []triangle, f *frameState, mesh *scene.Mesh, world mgl32.Mat4) []triangle {
	g := mesh.Geometry
	if g == nil {
		return out
	}
	normalMatrix := world.Mat3().Inv().Transpose()

	var corners [3]clipVertex
	for _, group := range g.DrawGroups() {
		m := mesh.MaterialFor(group)
		if m == nil {
			continue
		}
		tex := m.Map
		if !tex.Loaded() {
			tex = nil
		}

		end := min(group.Start+group.Count, len(g.Indices))
		for i := group.Start; i+2 < end; i += 3 {
			p.stats.Submitted++
			for k := 0; k < 3; k++ {
				corners[k] = vertexOf(f, g, m, world, normalMatrix, g.Indices[i+k])
			}
			out = p.emit(out, f, corners, m.Side, tex)
		}
	}
	return out
}

func vertexOf(f *frameState, g *scene.Geometry, m *scene.Material, world mgl32.Mat4, normalMatrix mgl32.Mat3, idx uint32) clipVertex {
	local := g.Positions[idx]
	worldPos := world.Mul4x1(local.Vec4(1))

	v := clipVertex{
		pos:   f.viewProj.Mul4x1(worldPos),
		color: m.Color,
	}
	if int(idx) < len(g.UVs) {
		v.uv = g.UVs[idx]
	}

	if m.Shading == scene.Standard {
		n := mgl32.Vec3{0, 1, 0}
		if int(idx) < len(g.Normals) {
			n = normalMatrix.Mul3x1(g.Normals[idx])
			if n.Len() > 0 {
				n = n.Normalize()
			}
		}
		v.color = shade(m, f.lights.irradiance(worldPos.Vec3(), n))
	}
	return v
}

// emit clips a triangle against the near plane, culls by facing and appends
// what survives.
func (p *Pipeline) emit(out []triangle, f *frameState, corners [3]clipVertex, side scene.Side, tex *scene.Texture) []triangle {
	if outsideFrustum(corners) {
		p.stats.Culled++
		return out
	}

	poly, clipped := clipNear(corners)
	if clipped {
		p.stats.Clipped++
	}
	if len(poly) < 3 {
		p.stats.Culled++
		return out
	}

	screen := make([]Vertex, len(poly))
	var depth float32
	for i, cv := range poly {
		invW := 1 / cv.pos.W()
		ndcX, ndcY := cv.pos.X()*invW, cv.pos.Y()*invW
		screen[i] = Vertex{
			X: (ndcX + 1) / 2 * f.width,
			Y: (1 - ndcY) / 2 * f.height,
			U: cv.uv.X(),
			V: cv.uv.Y(),
			R: float32(cv.color.R),
			G: float32(cv.color.G),
			B: float32(cv.color.B),
			A: 1,
		}
		depth += cv.pos.W()
	}
	depth /= float32(len(poly))

	// Screen Y points down, so counter-clockwise in NDC is negative here.
	area := signedArea(screen[0], screen[1], screen[2])
	front := area < 0
	switch {
	case area == 0,
		side == scene.FrontSide && !front,
		side == scene.BackSide && front:
		p.stats.Culled++
		return out
	}

	for i := 1; i+1 < len(screen); i++ {
		out = append(out, triangle{
			v:       [3]Vertex{screen[0], screen[i], screen[i+1]},
			depth:   depth,
			texture: tex,
		})
	}
	return out
}

func signedArea(a, b, c Vertex) float32 {
	return (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
}

// outsideFrustum reports whether all three corners lie beyond the same side
// or far plane of the clip volume.
func outsideFrustum(c [3]clipVertex) bool {
	test := func(beyond func(v mgl32.Vec4) bool) bool {
		return beyond(c[0].pos) && beyond(c[1].pos) && beyond(c[2].pos)
	}
	return test(func(v mgl32.Vec4) bool { return v.X() > v.W() }) ||
		test(func(v mgl32.Vec4) bool { return v.X() < -v.W() }) ||
		test(func(v mgl32.Vec4) bool { return v.Y() > v.W() }) ||
		test(func(v mgl32.Vec4) bool { return v.Y() < -v.W() }) ||
		test(func(v mgl32.Vec4) bool { return v.Z() > v.W() })
}

// clipNear cuts a triangle against the near plane z = -w. It returns the
// surviving convex polygon and whether any corner was cut away.
func clipNear(c [3]clipVertex) ([]clipVertex, bool) {
	dist := func(v clipVertex) float32 { return v.pos.Z() + v.pos.W() }

	inside := 0
	for _, v := range c {
		if dist(v) > 0 {
			inside++
		}
	}
	if inside == 3 {
		return c[:], false
	}
	if inside == 0 {
		return nil, true
	}

	poly := make([]clipVertex, 0, 4)
	for i := range c {
		a, b := c[i], c[(i+1)%3]
		da, db := dist(a), dist(b)
		if da > 0 {
			poly = append(poly, a)
		}
		if (da > 0) != (db > 0) {
			poly = append(poly, lerpClip(a, b, da/(da-db)))
		}
	}
	return poly, true
}

func lerpClip(a, b clipVertex, t float32) clipVertex {
	return clipVertex{
		pos:   a.pos.Add(b.pos.Sub(a.pos).Mul(t)),
		uv:    a.uv.Add(b.uv.Sub(a.uv).Mul(t)),
		color: a.color.BlendRgb(b.color, float64(t)),
	}
}

func (p *Pipeline) batch(tris []triangle) {
	for _, t := range tris {
		n := len(p.batches)
		if n == 0 || p.batches[n-1].Texture != t.texture || len(p.batches[n-1].Vertices)+3 > MaxBatchVertices {
			p.batches = append(p.batches, Batch{Texture: t.texture})
			n++
		}
		b := &p.batches[n-1]
		base := uint16(len(b.Vertices))
		b.Vertices = append(b.Vertices, t.v[:]...)
		b.Indices = append(b.Indices, base, base+1, base+2)
	}
}

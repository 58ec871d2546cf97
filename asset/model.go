package asset

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/plus3/orrery/anim"
	"github.com/plus3/orrery/scene"
)

// ErrNoScene is returned for documents without a scene to instantiate.
var ErrNoScene = errors.New("gltf document has no scene")

// Model is an instantiated glTF scene.
type Model struct {
	Root  *scene.Node
	Clips []*anim.Clip
}

// Clip returns the clip named name, or the first clip when name is empty.
func (m *Model) Clip(name string) *anim.Clip {
	for _, clip := range m.Clips {
		if name == "" || clip.Name == name {
			return clip
		}
	}
	return nil
}

// ModelLoader opens glTF and GLB files in the background.
type ModelLoader struct {
	logger *slog.Logger
}

// NewModelLoader returns a loader. A nil logger selects slog.Default().
func NewModelLoader(logger *slog.Logger) *ModelLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &ModelLoader{logger: logger}
}

// Load starts reading path and returns a future for the model.
func (l *ModelLoader) Load(path string) *Future[*Model] {
	return Go(func() (*Model, error) {
		start := time.Now()
		doc, err := gltf.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open model %s: %w", path, err)
		}

		model, err := BuildModel(doc)
		if err != nil {
			return nil, fmt.Errorf("build model %s: %w", path, err)
		}
		l.logger.Debug("model loaded", "path", path,
			"clips", len(model.Clips), "duration", time.Since(start))
		return model, nil
	})
}

// BuildModel instantiates the document's default scene, or its first scene
// when no default is set.
func BuildModel(doc *gltf.Document) (*Model, error) {
	if len(doc.Scenes) == 0 {
		return nil, ErrNoScene
	}
	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = *doc.Scene
	}
	if sceneIdx < 0 || sceneIdx >= len(doc.Scenes) {
		return nil, fmt.Errorf("default scene %d: %w", sceneIdx, ErrNoScene)
	}

	b := &modelBuilder{
		doc:   doc,
		nodes: make(map[int]*scene.Node),
	}

	gs := doc.Scenes[sceneIdx]
	root := scene.NewNode(gs.Name)
	for _, idx := range gs.Nodes {
		node, err := b.node(idx)
		if err != nil {
			return nil, err
		}
		root.Add(node)
	}

	model := &Model{Root: root}
	for i, ga := range doc.Animations {
		clip, err := b.clip(ga)
		if err != nil {
			return nil, fmt.Errorf("animation %d: %w", i, err)
		}
		model.Clips = append(model.Clips, clip)
	}
	return model, nil
}

type modelBuilder struct {
	doc   *gltf.Document
	nodes map[int]*scene.Node
}

func (b *modelBuilder) node(idx int) (*scene.Node, error) {
	if idx < 0 || idx >= len(b.doc.Nodes) {
		return nil, fmt.Errorf("node %d out of range", idx)
	}
	if _, seen := b.nodes[idx]; seen {
		return nil, fmt.Errorf("node %d appears twice in the hierarchy", idx)
	}

	gn := b.doc.Nodes[idx]
	node := scene.NewNode(gn.Name)
	b.nodes[idx] = node
	setTransform(node, gn)

	if gn.Mesh != nil {
		if err := b.attachMesh(node, *gn.Mesh); err != nil {
			return nil, fmt.Errorf("node %d: %w", idx, err)
		}
	}

	for _, childIdx := range gn.Children {
		child, err := b.node(childIdx)
		if err != nil {
			return nil, err
		}
		node.Add(child)
	}
	return node, nil
}

// attachMesh gives node its mesh. A mesh with several primitives becomes one
// child node per primitive.
func (b *modelBuilder) attachMesh(node *scene.Node, meshIdx int) error {
	if meshIdx < 0 || meshIdx >= len(b.doc.Meshes) {
		return fmt.Errorf("mesh %d out of range", meshIdx)
	}
	gm := b.doc.Meshes[meshIdx]

	var meshes []*scene.Mesh
	for i, p := range gm.Primitives {
		if p.Mode != gltf.PrimitiveTriangles {
			continue
		}
		mesh, err := b.primitive(p)
		if err != nil {
			return fmt.Errorf("mesh %d primitive %d: %w", meshIdx, i, err)
		}
		meshes = append(meshes, mesh)
	}

	if len(meshes) == 1 {
		node.Mesh = meshes[0]
		return nil
	}
	for _, mesh := range meshes {
		child := scene.NewNode(gm.Name)
		child.Mesh = mesh
		node.Add(child)
	}
	return nil
}

func (b *modelBuilder) primitive(p *gltf.Primitive) (*scene.Mesh, error) {
	posIdx, ok := p.Attributes[gltf.POSITION]
	if !ok {
		return nil, errors.New("primitive has no positions")
	}
	acr, err := b.accessor(posIdx)
	if err != nil {
		return nil, err
	}
	positions, err := modeler.ReadPosition(b.doc, acr, nil)
	if err != nil {
		return nil, err
	}

	g := &scene.Geometry{Positions: make([]mgl32.Vec3, len(positions))}
	for i, v := range positions {
		g.Positions[i] = mgl32.Vec3(v)
	}

	if idx, ok := p.Attributes[gltf.NORMAL]; ok {
		acr, err := b.accessor(idx)
		if err != nil {
			return nil, err
		}
		normals, err := modeler.ReadNormal(b.doc, acr, nil)
		if err != nil {
			return nil, err
		}
		g.Normals = make([]mgl32.Vec3, len(normals))
		for i, v := range normals {
			g.Normals[i] = mgl32.Vec3(v)
		}
	}

	if idx, ok := p.Attributes[gltf.TEXCOORD_0]; ok {
		acr, err := b.accessor(idx)
		if err != nil {
			return nil, err
		}
		uvs, err := modeler.ReadTextureCoord(b.doc, acr, nil)
		if err != nil {
			return nil, err
		}
		g.UVs = make([]mgl32.Vec2, len(uvs))
		for i, v := range uvs {
			g.UVs[i] = mgl32.Vec2(v)
		}
	}

	if p.Indices != nil {
		acr, err := b.accessor(*p.Indices)
		if err != nil {
			return nil, err
		}
		g.Indices, err = modeler.ReadIndices(b.doc, acr, nil)
		if err != nil {
			return nil, err
		}
	} else {
		g.Indices = make([]uint32, len(g.Positions))
		for i := range g.Indices {
			g.Indices[i] = uint32(i)
		}
	}

	if g.Normals == nil {
		g.Normals = flatNormals(g)
	}

	return &scene.Mesh{Geometry: g, Material: b.material(p.Material)}, nil
}

func (b *modelBuilder) material(idx *int) *scene.Material {
	m := scene.NewStandardMaterial(nil)
	if idx == nil || *idx < 0 || *idx >= len(b.doc.Materials) {
		return m
	}

	gm := b.doc.Materials[*idx]
	m.Name = gm.Name
	if gm.DoubleSided {
		m.Side = scene.DoubleSide
	}
	if pbr := gm.PBRMetallicRoughness; pbr != nil {
		c := pbr.BaseColorFactorOrDefault()
		m.Color = colorful.Color{R: c[0], G: c[1], B: c[2]}
	}
	return m
}

func (b *modelBuilder) clip(ga *gltf.Animation) (*anim.Clip, error) {
	var tracks []anim.Track
	for _, ch := range ga.Channels {
		if ch.Target.Node == nil {
			continue
		}
		target, ok := b.nodes[*ch.Target.Node]
		if !ok {
			// Nodes outside the instantiated scene.
			continue
		}

		var path anim.Path
		switch ch.Target.Path {
		case gltf.TRSTranslation:
			path = anim.Translation
		case gltf.TRSRotation:
			path = anim.Rotation
		case gltf.TRSScale:
			path = anim.Scale
		default:
			continue
		}

		if ch.Sampler < 0 || ch.Sampler >= len(ga.Samplers) {
			return nil, fmt.Errorf("sampler %d out of range", ch.Sampler)
		}
		sampler := ga.Samplers[ch.Sampler]

		times, err := b.readFloats(sampler.Input)
		if err != nil {
			return nil, fmt.Errorf("sampler input: %w", err)
		}
		values, err := b.readFloats(sampler.Output)
		if err != nil {
			return nil, fmt.Errorf("sampler output: %w", err)
		}

		tracks = append(tracks, anim.Track{
			Target:        target,
			Path:          path,
			Interpolation: interpolation(sampler.Interpolation),
			Times:         times,
			Values:        values,
		})
	}
	return anim.NewClip(ga.Name, tracks), nil
}

func (b *modelBuilder) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(b.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	return b.doc.Accessors[idx], nil
}

// readFloats reads a float accessor of any width as a flat slice.
func (b *modelBuilder) readFloats(idx int) ([]float32, error) {
	acr, err := b.accessor(idx)
	if err != nil {
		return nil, err
	}
	data, err := modeler.ReadAccessor(b.doc, acr, nil)
	if err != nil {
		return nil, err
	}

	switch v := data.(type) {
	case []float32:
		return v, nil
	case [][3]float32:
		out := make([]float32, 0, len(v)*3)
		for _, e := range v {
			out = append(out, e[:]...)
		}
		return out, nil
	case [][4]float32:
		out := make([]float32, 0, len(v)*4)
		for _, e := range v {
			out = append(out, e[:]...)
		}
		return out, nil
	}
	return nil, fmt.Errorf("accessor %d: unsupported component layout %T", idx, data)
}

func interpolation(i gltf.Interpolation) anim.Interpolation {
	switch i {
	case gltf.InterpolationStep:
		return anim.Step
	case gltf.InterpolationCubicSpline:
		return anim.CubicSpline
	}
	return anim.Linear
}

func setTransform(node *scene.Node, gn *gltf.Node) {
	if gn.Matrix != gltf.DefaultMatrix && gn.Matrix != [16]float64{} {
		var m mgl32.Mat4
		for i, v := range gn.Matrix {
			m[i] = float32(v)
		}
		node.Position, node.Quaternion, node.Scale = decompose(m)
		return
	}

	t := gn.TranslationOrDefault()
	r := gn.RotationOrDefault()
	s := gn.ScaleOrDefault()
	node.Position = mgl32.Vec3{float32(t[0]), float32(t[1]), float32(t[2])}
	node.Quaternion = mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	node.Scale = mgl32.Vec3{float32(s[0]), float32(s[1]), float32(s[2])}
}

// decompose splits a column-major TRS matrix without shear.
func decompose(m mgl32.Mat4) (mgl32.Vec3, mgl32.Quat, mgl32.Vec3) {
	translation := m.Col(3).Vec3()
	scale := mgl32.Vec3{m.Col(0).Vec3().Len(), m.Col(1).Vec3().Len(), m.Col(2).Vec3().Len()}

	var rot mgl32.Mat3
	for c := 0; c < 3; c++ {
		col := m.Col(c).Vec3()
		if scale[c] != 0 {
			col = col.Mul(1 / scale[c])
		}
		rot.SetCol(c, col)
	}
	return translation, mgl32.Mat4ToQuat(rot.Mat4()), scale
}

// flatNormals averages the normals of the faces around each vertex.
func flatNormals(g *scene.Geometry) []mgl32.Vec3 {
	normals := make([]mgl32.Vec3, len(g.Positions))
	for i := 0; i+2 < len(g.Indices); i += 3 {
		a, b, c := g.Indices[i], g.Indices[i+1], g.Indices[i+2]
		pa, pb, pc := g.Positions[a], g.Positions[b], g.Positions[c]
		n := pb.Sub(pa).Cross(pc.Sub(pa))
		normals[a] = normals[a].Add(n)
		normals[b] = normals[b].Add(n)
		normals[c] = normals[c].Add(n)
	}
	for i, n := range normals {
		if n.Len() > 0 {
			normals[i] = n.Normalize()
		} else {
			normals[i] = mgl32.Vec3{0, 1, 0}
		}
	}
	return normals
}

package scene

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Node is one element of the render graph. Its local transform is
// Translate(Position) * Rx*Ry*Rz(Rotation) * Quaternion * Scale, applied
// relative to its parent.
type Node struct {
	Name string

	Position   mgl32.Vec3
	Rotation   mgl32.Vec3 // Euler angles in radians, XYZ order
	Quaternion mgl32.Quat
	Scale      mgl32.Vec3

	// Mesh is nil for pure transform nodes such as orbit pivots.
	Mesh *Mesh

	Visible bool

	parent   *Node
	children []*Node
}

// NewNode returns an empty, visible node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:       name,
		Quaternion: mgl32.QuatIdent(),
		Scale:      mgl32.Vec3{1, 1, 1},
		Visible:    true,
	}
}

// NewMeshNode returns a node that draws geometry with material.
func NewMeshNode(name string, geometry *Geometry, material *Material) *Node {
	n := NewNode(name)
	n.Mesh = &Mesh{Geometry: geometry, Material: material}
	return n
}

// Add makes child a child of n, detaching it from any previous parent.
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child from n. It reports whether child was found.
func (n *Node) Remove(child *Node) bool {
	idx := slices.Index(n.children, child)
	if idx < 0 {
		return false
	}
	n.children = slices.Delete(n.children, idx, idx+1)
	child.parent = nil
	return true
}

// Parent returns the node's parent, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's children. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Find returns the first node in the subtree, n included, named name.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// LocalMatrix returns the node's transform relative to its parent.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	m := mgl32.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	m = m.Mul4(mgl32.HomogRotate3DX(n.Rotation.X()))
	m = m.Mul4(mgl32.HomogRotate3DY(n.Rotation.Y()))
	m = m.Mul4(mgl32.HomogRotate3DZ(n.Rotation.Z()))
	m = m.Mul4(n.Quaternion.Normalize().Mat4())
	return m.Mul4(mgl32.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z()))
}

// WorldMatrix returns the node's transform relative to the root.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// WorldPosition returns the node's origin in root coordinates.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return mgl32.TransformCoordinate(mgl32.Vec3{}, n.WorldMatrix())
}

// Traverse calls fn for every visible node of the subtree, parents before
// children, with each node's world matrix. Hidden nodes hide their subtree.
func (n *Node) Traverse(fn func(node *Node, world mgl32.Mat4)) {
	n.traverse(mgl32.Ident4(), fn)
}

func (n *Node) traverse(parentWorld mgl32.Mat4, fn func(*Node, mgl32.Mat4)) {
	if !n.Visible {
		return
	}
	world := parentWorld.Mul4(n.LocalMatrix())
	fn(n, world)
	for _, child := range n.children {
		child.traverse(world, fn)
	}
}

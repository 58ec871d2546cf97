package scene

import colorful "github.com/lucasb-eyer/go-colorful"

// Shading selects how a material responds to light.
type Shading int

const (
	// Basic materials ignore lights and draw at full color.
	Basic Shading = iota
	// Standard materials are lit by the graph's lights.
	Standard
)

func (s Shading) String() string {
	switch s {
	case Basic:
		return "basic"
	case Standard:
		return "standard"
	}
	return "unknown"
}

// Side selects which triangle faces are drawn.
type Side int

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

// Material describes a surface. Map may be nil or not yet loaded; either way
// the surface draws in Color alone.
type Material struct {
	Name    string
	Shading Shading
	Color   colorful.Color
	Map     *Texture
	Side    Side
}

// White is the default material color.
var White = colorful.Color{R: 1, G: 1, B: 1}

// NewBasicMaterial returns an unlit, front-sided material.
func NewBasicMaterial(m *Texture) *Material {
	return &Material{Shading: Basic, Color: White, Map: m}
}

// NewStandardMaterial returns a lit, front-sided material.
func NewStandardMaterial(m *Texture) *Material {
	return &Material{Shading: Standard, Color: White, Map: m}
}
